package bridge

import (
	"fmt"
	"sort"

	"github.com/chainsafe/icp-token/pkg/chain"
)

// Ledger is a consistent view of the bridge tables used to check invariants.
type Ledger struct {
	Supplies []*SupplyRecord
	Balances []*Balance
	Deposits []*DepositRecord
	Escrows  []*EscrowRecord
}

// InvariantReport lists every broken invariant found in a ledger.
type InvariantReport struct {
	Broken     bool     `json:"broken"`
	Violations []string `json:"violations,omitempty"`
}

type tokenKey struct {
	contract chain.Name
	code     string
}

func (k tokenKey) String() string {
	return fmt.Sprintf("%s:%s", k.contract, k.code)
}

// CheckInvariants runs all bridge invariants against l:
//   - the supply of every wrapped token equals the sum of its balances
//   - no balance refers to a token that was never created
//   - deposit and wrapped balances are valid and non-negative
//   - escrowed amounts are valid and strictly positive
func CheckInvariants(l Ledger) InvariantReport {
	var violations []string
	violations = append(violations, totalSupplyInvariant(l)...)
	violations = append(violations, depositInvariant(l)...)
	violations = append(violations, escrowInvariant(l)...)
	return InvariantReport{Broken: len(violations) > 0, Violations: violations}
}

func totalSupplyInvariant(l Ledger) []string {
	supplies := make(map[tokenKey]chain.Asset, len(l.Supplies))
	for _, s := range l.Supplies {
		supplies[tokenKey{s.Contract, s.Supply.Symbol.Code}] = s.Supply
	}

	var violations []string
	totals := make(map[tokenKey]int64, len(l.Supplies))
	for _, b := range l.Balances {
		key := tokenKey{b.Contract, b.Balance.Symbol.Code}
		if _, ok := supplies[key]; !ok {
			violations = append(violations, fmt.Sprintf("balance of %s in unknown token %s", b.Owner, key))
			continue
		}
		if !b.Balance.IsValid() || b.Balance.Amount < 0 {
			violations = append(violations, fmt.Sprintf("invalid balance %s of %s in %s", b.Balance, b.Owner, key))
		}
		totals[key] += b.Balance.Amount
	}

	keys := make([]tokenKey, 0, len(supplies))
	for key := range supplies {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })

	for _, key := range keys {
		supply := supplies[key]
		if supply.Amount < 0 {
			violations = append(violations, fmt.Sprintf("negative supply %s of %s", supply, key))
		}
		if totals[key] != supply.Amount {
			violations = append(violations, fmt.Sprintf(
				"supply of %s is %s but balances sum to %s",
				key, supply, chain.NewAsset(totals[key], supply.Symbol)))
		}
	}
	return violations
}

func depositInvariant(l Ledger) []string {
	var violations []string
	for _, d := range l.Deposits {
		if !d.Balance.IsValid() || d.Balance.Amount < 0 {
			violations = append(violations, fmt.Sprintf("invalid deposit %d of %s: %s", d.ID, d.Owner, d.Balance))
		}
	}
	return violations
}

func escrowInvariant(l Ledger) []string {
	var violations []string
	for _, e := range l.Escrows {
		if !e.Amount.IsValid() || !e.Amount.IsPositive() {
			violations = append(violations, fmt.Sprintf("invalid escrow %d of %s: %s", e.Sequence, e.Owner, e.Amount))
		}
	}
	return violations
}

// Custody sums the underlying tokens of contract that the bridge accounts for
// locally: deposit balances plus pending non-refund escrows, per symbol code.
func Custody(l Ledger, contract chain.Name) map[string]int64 {
	total := make(map[string]int64)
	for _, d := range l.Deposits {
		if d.Contract == contract {
			total[d.Balance.Symbol.Code] += d.Balance.Amount
		}
	}
	for _, e := range l.Escrows {
		if e.Contract == contract && !e.Refund {
			total[e.Amount.Symbol.Code] += e.Amount.Amount
		}
	}
	return total
}
