// Package bridgestore persists the bridge tables. Every bridge entry point
// runs inside RunInTx so that its table changes, the channel sequence it
// consumes and the outbound actions it queues commit or roll back together.
package bridgestore

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/chainsafe/icp-token/pkg/bridge"
	"github.com/chainsafe/icp-token/pkg/chain"
)

var (
	ErrNotFound      = errors.New("record not found")
	ErrAlreadyExists = errors.New("record already exists")
)

// Reader reads the bridge tables.
type Reader interface {
	GetConfig(ctx context.Context) (*bridge.ChannelConfig, error)
	AccountExists(ctx context.Context, name chain.Name) (bool, error)

	GetSupply(ctx context.Context, contract chain.Name, code string) (*bridge.SupplyRecord, error)
	ListSupplies(ctx context.Context) ([]*bridge.SupplyRecord, error)
	GetBalance(ctx context.Context, contract, owner chain.Name, code string) (*bridge.Balance, error)
	ListBalances(ctx context.Context) ([]*bridge.Balance, error)

	GetDeposit(ctx context.Context, contract, owner chain.Name, code string) (*bridge.DepositRecord, error)
	ListDeposits(ctx context.Context, filter bridge.DepositFilter) ([]*bridge.DepositRecord, error)

	GetEscrow(ctx context.Context, seq uint64) (*bridge.EscrowRecord, error)
	ListEscrows(ctx context.Context) ([]*bridge.EscrowRecord, error)
	CountEscrows(ctx context.Context) (int, error)

	GetAction(ctx context.Context, id uuid.UUID) (*bridge.OutboxAction, error)

	// ListActions returns queued actions in creation order. An empty status
	// matches every status, a non-positive limit returns all of them.
	ListActions(ctx context.Context, status bridge.OutboxStatus, limit int) ([]*bridge.OutboxAction, error)
}

// Channel is the part of the packet channel that lives next to the bridge
// tables: the send-side sequence counter.
type Channel interface {
	// NextSequence consumes and returns the next sequence of channel,
	// starting at 1.
	NextSequence(ctx context.Context, channel chain.Name) (uint64, error)
}

// Outbox queues actions for delivery after commit.
type Outbox interface {
	EnqueueAction(ctx context.Context, action *bridge.OutboxAction) error
}

// Tx is a serializable transaction over the bridge tables.
type Tx interface {
	Reader
	Channel
	Outbox

	CreateConfig(ctx context.Context, cfg *bridge.ChannelConfig) error
	CreateAccount(ctx context.Context, account *bridge.Account) error

	CreateSupply(ctx context.Context, rec *bridge.SupplyRecord) error
	UpdateSupply(ctx context.Context, rec *bridge.SupplyRecord) error
	SaveBalance(ctx context.Context, bal *bridge.Balance) error

	// CreateDeposit inserts rec and assigns its ID.
	CreateDeposit(ctx context.Context, rec *bridge.DepositRecord) error
	UpdateDeposit(ctx context.Context, rec *bridge.DepositRecord) error
	DeleteDeposit(ctx context.Context, id uint64) error

	CreateEscrow(ctx context.Context, rec *bridge.EscrowRecord) error
	DeleteEscrow(ctx context.Context, seq uint64) error

	// RequeueAction puts a failed action back to pending with no attempts.
	// It keeps its queue position and last error.
	RequeueAction(ctx context.Context, id uuid.UUID, at time.Time) error
}

// Store is the bridge persistence layer.
type Store interface {
	Reader

	// RunInTx runs fn in a serializable transaction. Any error returned by
	// fn rolls back every change made through tx.
	RunInTx(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error

	ListPendingActions(ctx context.Context, limit int) ([]*bridge.OutboxAction, error)
	MarkActionDelivered(ctx context.Context, id uuid.UUID, at time.Time) error
	// MarkActionFailed records a failed delivery attempt. The action moves to
	// failed once maxAttempts attempts were made; the resulting status is
	// returned.
	MarkActionFailed(ctx context.Context, id uuid.UUID, lastErr string, maxAttempts int, at time.Time) (bridge.OutboxStatus, error)
}
