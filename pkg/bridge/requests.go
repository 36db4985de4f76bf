package bridge

import "github.com/chainsafe/icp-token/pkg/chain"

// InitConfigRequest sets the channel collaborators.
type InitConfigRequest struct {
	ICP  chain.Name `json:"icp" validate:"required"`
	Peer chain.Name `json:"peer" validate:"required"`
}

// RegisterAccountRequest adds an account to the registry.
type RegisterAccountRequest struct {
	Name chain.Name `json:"name" validate:"required"`
}

// CreateTokenRequest creates the wrapped ledger of one symbol of Contract.
type CreateTokenRequest struct {
	Contract chain.Name   `json:"contract" validate:"required"`
	Symbol   chain.Symbol `json:"symbol"`
}

// TransferRequest moves wrapped tokens between two accounts.
type TransferRequest struct {
	Contract chain.Name  `json:"contract" validate:"required"`
	From     chain.Name  `json:"from" validate:"required"`
	To       chain.Name  `json:"to" validate:"required"`
	Quantity chain.Asset `json:"quantity"`
	Memo     string      `json:"memo"`
}

// NativeTransferRequest is the notification of an underlying token transfer.
// Contract is the token contract that emitted it.
type NativeTransferRequest struct {
	Contract chain.Name  `json:"contract" validate:"required"`
	From     chain.Name  `json:"from" validate:"required"`
	To       chain.Name  `json:"to" validate:"required"`
	Quantity chain.Asset `json:"quantity"`
	Memo     string      `json:"memo"`
}

// BridgeRequest sends Quantity of Contract from From to To on the peer chain.
type BridgeRequest struct {
	Contract   chain.Name  `json:"contract" validate:"required"`
	From       chain.Name  `json:"from" validate:"required"`
	To         chain.Name  `json:"to" validate:"required"`
	Quantity   chain.Asset `json:"quantity"`
	Memo       string      `json:"memo"`
	Expiration uint32      `json:"expiration"`
}

// ReceiveRequest is a transfer arriving from the peer chain.
type ReceiveRequest struct {
	Contract chain.Name  `json:"contract" validate:"required"`
	From     chain.Name  `json:"from" validate:"required"`
	To       chain.Name  `json:"to" validate:"required"`
	Quantity chain.Asset `json:"quantity"`
	Memo     string      `json:"memo"`
	Refund   bool        `json:"refund"`
}

// ReceiptRequest is the delivery outcome the channel reports for Sequence.
type ReceiptRequest struct {
	Sequence uint64        `json:"sequence" validate:"required"`
	Status   ReceiptStatus `json:"status"`
	Data     []byte        `json:"data,omitempty"`
}

// DispatchResult describes a packet handed to the channel.
type DispatchResult struct {
	Sequence uint64        `json:"sequence"`
	Escrow   *EscrowRecord `json:"escrow"`
}

// IntakeOutcome says what a native transfer notification did.
type IntakeOutcome string

const (
	IntakeIgnored    IntakeOutcome = "ignored"
	IntakeDeposited  IntakeOutcome = "deposited"
	IntakeDispatched IntakeOutcome = "dispatched"
)

// IntakeResult is the result of a native transfer notification.
type IntakeResult struct {
	Outcome  IntakeOutcome   `json:"outcome"`
	Deposit  *DepositRecord  `json:"deposit,omitempty"`
	Dispatch *DispatchResult `json:"dispatch,omitempty"`
}

// ReceiveResult is the result of applying a peer transfer.
type ReceiveResult struct {
	Settlement string `json:"settlement"`
}

// ReceiptResult is the result of applying a receipt.
type ReceiptResult struct {
	Sequence   uint64      `json:"sequence"`
	Outcome    EscrowState `json:"outcome"`
	Settlement string      `json:"settlement,omitempty"`
}
