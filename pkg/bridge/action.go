package bridge

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/chainsafe/icp-token/pkg/chain"
)

// Action names used on the wire.
const (
	ActionReceive    = "icpreceive"
	ActionReceipt    = "icpreceipt"
	ActionSendAction = "sendaction"
	ActionTransfer   = "transfer"
	ActionNotify     = "notify"

	// PermissionSendAction is the permission of the channel account required
	// to hand a packet to the channel.
	PermissionSendAction = "sendaction"
	// PermissionActive is the default permission of an account.
	PermissionActive = "active"

	// ReleaseMemo is attached to native transfers that return locked assets.
	ReleaseMemo = "icp release locked asset"
)

// PermissionLevel is an actor@permission pair authorizing an action.
type PermissionLevel struct {
	Actor      chain.Name `json:"actor"`
	Permission string     `json:"permission"`
}

func (p PermissionLevel) String() string {
	return fmt.Sprintf("%s@%s", p.Actor, p.Permission)
}

// Action is an inline action addressed to Account.
type Action struct {
	Account       chain.Name        `json:"account"`
	Name          string            `json:"name"`
	Authorization []PermissionLevel `json:"authorization"`
	Data          json.RawMessage   `json:"data,omitempty"`
}

// NewAction builds an action with data serialized as JSON. A nil data leaves
// the payload empty.
func NewAction(account chain.Name, name string, data any, auth ...PermissionLevel) (Action, error) {
	a := Action{
		Account:       account,
		Name:          name,
		Authorization: auth,
	}
	if a.Authorization == nil {
		a.Authorization = []PermissionLevel{}
	}
	if data != nil {
		raw, err := json.Marshal(data)
		if err != nil {
			return Action{}, fmt.Errorf("failed to encode %s data: %w", name, err)
		}
		a.Data = raw
	}
	return a, nil
}

// ReceivePayload is the data of the icpreceive action applied on the peer.
type ReceivePayload struct {
	Contract chain.Name  `json:"contract"`
	From     chain.Name  `json:"from"`
	To       chain.Name  `json:"to"`
	Quantity chain.Asset `json:"quantity"`
	Memo     string      `json:"memo"`
	Refund   bool        `json:"refund"`
}

// SendActionPayload is handed to the channel. SendAction is delivered to the
// peer, ReceiveAction is invoked locally once the outcome is known.
type SendActionPayload struct {
	Seq           uint64 `json:"seq"`
	SendAction    []byte `json:"send_action"`
	Expiration    uint32 `json:"expiration"`
	ReceiveAction []byte `json:"receive_action"`
}

// TransferPayload is the data of a native token transfer.
type TransferPayload struct {
	From     chain.Name  `json:"from"`
	To       chain.Name  `json:"to"`
	Quantity chain.Asset `json:"quantity"`
	Memo     string      `json:"memo"`
}

// NotifyPayload tells Recipient that its wrapped balance changed.
type NotifyPayload struct {
	Recipient chain.Name  `json:"recipient"`
	Contract  chain.Name  `json:"contract"`
	Action    string      `json:"action"`
	Quantity  chain.Asset `json:"quantity"`
}

// OutboxKind is the kind of a queued outbound action.
type OutboxKind string

const (
	OutboxKindSendAction OutboxKind = ActionSendAction
	OutboxKindTransfer   OutboxKind = ActionTransfer
	OutboxKindNotify     OutboxKind = ActionNotify
)

// OutboxStatus is the delivery state of a queued action.
type OutboxStatus string

const (
	OutboxStatusPending   OutboxStatus = "pending"
	OutboxStatusDelivered OutboxStatus = "delivered"
	OutboxStatusFailed    OutboxStatus = "failed"
)

// Valid reports whether s is a known status.
func (s OutboxStatus) Valid() bool {
	switch s {
	case OutboxStatusPending, OutboxStatusDelivered, OutboxStatusFailed:
		return true
	}
	return false
}

// OutboxAction is an outbound action committed together with the state change
// that produced it and delivered afterwards by the outbox relayer.
type OutboxAction struct {
	ID        uuid.UUID    `json:"id"`
	Kind      OutboxKind   `json:"kind"`
	Target    chain.Name   `json:"target"`
	Action    Action       `json:"action"`
	Status    OutboxStatus `json:"status"`
	Attempts  int          `json:"attempts"`
	LastError string       `json:"last_error,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
	Sequence  *uint64      `json:"sequence,omitempty"`
}

// NewOutboxAction wraps action for delivery to its account.
func NewOutboxAction(kind OutboxKind, action Action, now time.Time) *OutboxAction {
	return &OutboxAction{
		ID:        uuid.New(),
		Kind:      kind,
		Target:    action.Account,
		Action:    action,
		Status:    OutboxStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
