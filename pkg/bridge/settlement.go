package bridge

// Direction says whether a settlement adds to or restores a position on this
// side of the bridge.
type Direction uint8

const (
	// Credit applies an incoming transfer from the peer.
	Credit Direction = iota + 1
	// Debit undoes an outgoing transfer the peer never applied.
	Debit
)

func (d Direction) String() string {
	switch d {
	case Credit:
		return "credit"
	case Debit:
		return "debit"
	default:
		return "unknown"
	}
}

// Kind says which ledger a settlement moves funds on.
type Kind uint8

const (
	// Native moves underlying tokens held by the bridge account.
	Native Kind = iota + 1
	// Wrapped mints the wrapped representation.
	Wrapped
)

func (k Kind) String() string {
	switch k {
	case Native:
		return "native"
	case Wrapped:
		return "wrapped"
	default:
		return "unknown"
	}
}

// Settlement is how funds reach an account, resolved once from the refund
// flag of a packet:
//
//	receive,    refund=false  -> Credit/Wrapped  mint
//	receive,    refund=true   -> Credit/Native   native transfer out
//	compensate, refund=false  -> Debit/Native    native transfer back
//	compensate, refund=true   -> Debit/Wrapped   mint back
type Settlement struct {
	Direction Direction
	Kind      Kind
}

// ReceiveFor resolves the settlement of an incoming packet.
func ReceiveFor(refund bool) Settlement {
	if refund {
		// a refund packet returns underlying tokens that were never wrapped here
		return Settlement{Direction: Credit, Kind: Native}
	}
	return Settlement{Direction: Credit, Kind: Wrapped}
}

// CompensationFor resolves the settlement restoring an expired outgoing packet.
func CompensationFor(refund bool) Settlement {
	if refund {
		// the outgoing debit was a burn
		return Settlement{Direction: Debit, Kind: Wrapped}
	}
	return Settlement{Direction: Debit, Kind: Native}
}

// Mints reports whether the settlement mints wrapped tokens.
func (s Settlement) Mints() bool {
	return s.Kind == Wrapped
}

// Memo returns the memo attached to a native transfer for this settlement.
// Incoming refunds keep the memo of the packet.
func (s Settlement) Memo(packetMemo string) string {
	if s.Direction == Debit {
		return ReleaseMemo
	}
	return packetMemo
}

func (s Settlement) String() string {
	return s.Direction.String() + "/" + s.Kind.String()
}
