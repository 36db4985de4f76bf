package bridge

import "fmt"

// ReceiptStatus is the delivery status the channel reports for a sequence.
type ReceiptStatus uint8

const (
	ReceiptExecuted ReceiptStatus = 0
	ReceiptExpired  ReceiptStatus = 1
)

func (s ReceiptStatus) String() string {
	switch s {
	case ReceiptExecuted:
		return "executed"
	case ReceiptExpired:
		return "expired"
	default:
		return fmt.Sprintf("status(%d)", uint8(s))
	}
}

// Expired reports whether the packet never took effect on the peer.
func (s ReceiptStatus) Expired() bool {
	return s == ReceiptExpired
}

// EscrowState is the state of an escrow entry. Pending is the only
// non-terminal state.
type EscrowState string

const (
	EscrowPending     EscrowState = "pending"
	EscrowFinalized   EscrowState = "finalized"
	EscrowCompensated EscrowState = "compensated"
	// EscrowIgnored is the outcome of a receipt for a sequence with no escrow
	// entry: a replay or a receipt for something never dispatched here.
	EscrowIgnored EscrowState = "ignored"
)

// Transition is the result of applying a receipt to an escrow entry.
type Transition struct {
	From EscrowState
	To   EscrowState
	// Settlement is set when To is EscrowCompensated.
	Settlement *Settlement
}

// Erase reports whether the escrow entry must be removed. Every transition out
// of Pending does, which is what makes receipts idempotent.
func (t Transition) Erase() bool {
	return t.From == EscrowPending
}

// ResolveReceipt applies status to the escrow entry found for a sequence.
// A nil record yields an ignored transition.
func ResolveReceipt(record *EscrowRecord, status ReceiptStatus) Transition {
	if record == nil {
		return Transition{From: EscrowIgnored, To: EscrowIgnored}
	}
	if !status.Expired() {
		return Transition{From: EscrowPending, To: EscrowFinalized}
	}
	s := CompensationFor(record.Refund)
	return Transition{From: EscrowPending, To: EscrowCompensated, Settlement: &s}
}
