package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/chainsafe/icp-token/internal/metrics"
	"github.com/chainsafe/icp-token/pkg/auth"
	"github.com/chainsafe/icp-token/pkg/bridge"
	"github.com/chainsafe/icp-token/pkg/bridgestore"
	"github.com/chainsafe/icp-token/pkg/chain"
)

const (
	defaultCallbackPermission = "callback"
	defaultMemoMaxBytes       = 256
)

// Querier reads bridge state.
type Querier interface {
	GetConfig(ctx context.Context) (*bridge.ChannelConfig, error)
	GetEscrow(ctx context.Context, seq uint64) (*bridge.EscrowRecord, error)
	ListEscrows(ctx context.Context) ([]*bridge.EscrowRecord, error)
	ListDeposits(ctx context.Context, filter bridge.DepositFilter) ([]*bridge.DepositRecord, error)
	GetSupply(ctx context.Context, contract chain.Name, code string) (*bridge.SupplyRecord, error)
	GetBalance(ctx context.Context, contract, owner chain.Name, code string) (*bridge.Balance, error)
	ListOutbox(ctx context.Context, status bridge.OutboxStatus, limit int) ([]*bridge.OutboxAction, error)
	CheckInvariants(ctx context.Context) (*bridge.InvariantReport, error)
}

// Service defines the bridge entry points. Each command is one atomic
// execution: it either commits every table change, the sequence it consumed
// and the actions it queued, or none of them.
//
//go:generate mockery --name Service --output mocks --outpkg mocks --filename mock_service.go --with-expecter
type Service interface {
	Querier

	InitConfig(ctx context.Context, caller auth.Authority, req *bridge.InitConfigRequest) (*bridge.ChannelConfig, error)
	RegisterAccount(ctx context.Context, caller auth.Authority, req *bridge.RegisterAccountRequest) (*bridge.Account, error)
	CreateToken(ctx context.Context, caller auth.Authority, req *bridge.CreateTokenRequest) (*bridge.SupplyRecord, error)
	Transfer(ctx context.Context, caller auth.Authority, req *bridge.TransferRequest) (*bridge.Balance, error)

	OnNativeTransfer(ctx context.Context, caller auth.Authority, req *bridge.NativeTransferRequest) (*bridge.IntakeResult, error)
	BridgeTransfer(ctx context.Context, caller auth.Authority, req *bridge.BridgeRequest) (*bridge.DispatchResult, error)
	BridgeRefund(ctx context.Context, caller auth.Authority, req *bridge.BridgeRequest) (*bridge.DispatchResult, error)

	PeerReceive(ctx context.Context, caller auth.Authority, req *bridge.ReceiveRequest) (*bridge.ReceiveResult, error)
	PeerReceipt(ctx context.Context, caller auth.Authority, req *bridge.ReceiptRequest) (*bridge.ReceiptResult, error)

	RequeueAction(ctx context.Context, caller auth.Authority, id uuid.UUID) (*bridge.OutboxAction, error)
}

// ChannelFactory opens the packet channel of one execution. icp is the
// configured channel account and now the execution time.
type ChannelFactory func(tx bridgestore.Tx, icp chain.Name, now time.Time) Channel

// Config holds the identity of the bridge account.
type Config struct {
	// Self is the account the bridge runs as.
	Self chain.Name
	// CallbackPermission is the permission of Self the channel uses to
	// deliver peer transfers and receipts.
	CallbackPermission string
	// MemoMaxBytes bounds transfer memos.
	MemoMaxBytes int
	// Channel opens the packet channel. Packets are queued in the outbox
	// when it is nil.
	Channel ChannelFactory
}

type bridgeService struct {
	store  bridgestore.Store
	cfg    Config
	logger *zap.Logger
	now    func() time.Time
}

// NewService creates a new bridge service
func NewService(store bridgestore.Store, cfg Config, logger *zap.Logger) Service {
	if cfg.CallbackPermission == "" {
		cfg.CallbackPermission = defaultCallbackPermission
	}
	if cfg.MemoMaxBytes <= 0 {
		cfg.MemoMaxBytes = defaultMemoMaxBytes
	}
	if cfg.Channel == nil {
		cfg.Channel = func(tx bridgestore.Tx, icp chain.Name, now time.Time) Channel {
			return newOutboxChannel(tx, icp, now)
		}
	}
	return &bridgeService{
		store:  store,
		cfg:    cfg,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// run executes fn as one atomic execution on behalf of caller.
func (s *bridgeService) run(ctx context.Context, caller auth.Authority, fn func(ctx context.Context, e *execution) error) error {
	return s.store.RunInTx(ctx, func(ctx context.Context, tx bridgestore.Tx) error {
		return fn(ctx, &execution{
			tx:     tx,
			caller: caller,
			cfg:    s.cfg,
			now:    s.now(),
		})
	})
}

// requireCallback checks the caller is the channel callback authority.
func (s *bridgeService) requireCallback(caller auth.Authority) error {
	if err := auth.RequireAuth2(caller, s.cfg.Self, s.cfg.CallbackPermission); err != nil {
		return unauthorized(err)
	}
	return nil
}

// observeEscrows sets the pending escrow gauge from the committed escrow
// table.
func (s *bridgeService) observeEscrows(ctx context.Context) {
	n, err := s.store.CountEscrows(ctx)
	if err != nil {
		s.logger.Warn("failed to count pending escrows", zap.Error(err))
		return
	}
	metrics.EscrowPending.Set(float64(n))
}
