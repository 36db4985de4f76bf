// Package bridge defines the domain model of the ICP token bridge: the channel
// configuration, the escrow table keyed by channel sequence, the local deposit
// ledger and the wrapped token supply ledger.
package bridge

import (
	"time"

	"github.com/chainsafe/icp-token/pkg/chain"
)

// ChannelConfig names the two collaborators of the bridge. ICP is the local
// channel endpoint that issues sequence numbers and relays packets, Peer is
// the bridge contract on the other chain.
type ChannelConfig struct {
	ICP  chain.Name `json:"icp"`
	Peer chain.Name `json:"peer"`
}

// IsComplete reports whether both endpoints are set.
func (c *ChannelConfig) IsComplete() bool {
	return c != nil && !c.ICP.IsEmpty() && !c.Peer.IsEmpty()
}

// Account is an entry of the account registry.
type Account struct {
	Name      chain.Name `json:"name"`
	CreatedAt time.Time  `json:"created_at"`
}

// EscrowRecord is a balance locked on this side until the channel reports the
// outcome of the packet sent under Sequence.
type EscrowRecord struct {
	Sequence  uint64      `json:"sequence"`
	Contract  chain.Name  `json:"contract"`
	Owner     chain.Name  `json:"owner"`
	Amount    chain.Asset `json:"amount"`
	Refund    bool        `json:"refund"`
	CreatedAt time.Time   `json:"created_at"`
}

// DepositRecord holds underlying tokens an owner has deposited but not yet
// bridged. There is at most one record per (contract, owner, symbol code).
type DepositRecord struct {
	ID        uint64      `json:"id"`
	Contract  chain.Name  `json:"contract"`
	Owner     chain.Name  `json:"owner"`
	Balance   chain.Asset `json:"balance"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// SupplyRecord tracks the wrapped representation of one symbol of an
// underlying token contract.
type SupplyRecord struct {
	Contract chain.Name  `json:"contract"`
	Supply   chain.Asset `json:"supply"`
}

// Balance is a wrapped token balance of Owner.
type Balance struct {
	Contract chain.Name  `json:"contract"`
	Owner    chain.Name  `json:"owner"`
	Balance  chain.Asset `json:"balance"`
}

// DepositFilter narrows ListDeposits. Zero fields match everything.
type DepositFilter struct {
	Contract chain.Name
	Owner    chain.Name
}
