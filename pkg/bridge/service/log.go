package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/chainsafe/icp-token/pkg/auth"
	"github.com/chainsafe/icp-token/pkg/bridge"
	"github.com/chainsafe/icp-token/pkg/chain"
)

const serviceName = "BridgeService"

// logService wraps Service with automatic logging of all command calls
type logService struct {
	svc    Service
	logger *zap.Logger
}

// NewLog creates a logging decorator for the bridge Service.
// Commands are logged on entry and exit with their duration; queries are
// logged only when they fail.
func NewLog(svc Service, logger *zap.Logger) Service {
	return &logService{
		svc:    svc,
		logger: logger,
	}
}

// start logs method entry and returns the function logging its exit.
func (ls *logService) start(method string, caller auth.Authority, fields ...zap.Field) func(err error, result ...zap.Field) {
	start := time.Now()
	base := []zap.Field{
		zap.String("service", serviceName),
		zap.String("method", method),
		zap.Stringer("caller", caller),
	}
	ls.logger.Info(method+" started", append(base, fields...)...)

	return func(err error, result ...zap.Field) {
		duration := zap.Duration("duration", time.Since(start))
		if err != nil {
			ls.logger.Error(method+" failed", append(append(base, fields...), duration, zap.Error(err))...)
			return
		}
		ls.logger.Info(method+" completed", append(append(base, result...), duration)...)
	}
}

func (ls *logService) queryFailed(method string, err error) {
	if err != nil {
		ls.logger.Warn(method+" failed",
			zap.String("service", serviceName),
			zap.String("method", method),
			zap.Error(err),
		)
	}
}

func transferFields(contract, from, to chain.Name, quantity chain.Asset) []zap.Field {
	return []zap.Field{
		zap.Stringer("contract", contract),
		zap.Stringer("from", from),
		zap.Stringer("to", to),
		zap.Stringer("quantity", quantity),
	}
}

// InitConfig wraps the service method with logging
func (ls *logService) InitConfig(
	ctx context.Context,
	caller auth.Authority,
	req *bridge.InitConfigRequest,
) (cfg *bridge.ChannelConfig, err error) {
	done := ls.start("InitConfig", caller, zap.Stringer("icp", req.ICP), zap.Stringer("peer", req.Peer))
	defer func() { done(err) }()

	return ls.svc.InitConfig(ctx, caller, req)
}

// RegisterAccount wraps the service method with logging
func (ls *logService) RegisterAccount(
	ctx context.Context,
	caller auth.Authority,
	req *bridge.RegisterAccountRequest,
) (account *bridge.Account, err error) {
	done := ls.start("RegisterAccount", caller, zap.Stringer("account", req.Name))
	defer func() { done(err) }()

	return ls.svc.RegisterAccount(ctx, caller, req)
}

// CreateToken wraps the service method with logging
func (ls *logService) CreateToken(
	ctx context.Context,
	caller auth.Authority,
	req *bridge.CreateTokenRequest,
) (rec *bridge.SupplyRecord, err error) {
	done := ls.start("CreateToken", caller, zap.Stringer("contract", req.Contract), zap.Stringer("symbol", req.Symbol))
	defer func() { done(err) }()

	return ls.svc.CreateToken(ctx, caller, req)
}

// Transfer wraps the service method with logging
func (ls *logService) Transfer(
	ctx context.Context,
	caller auth.Authority,
	req *bridge.TransferRequest,
) (bal *bridge.Balance, err error) {
	done := ls.start("Transfer", caller, transferFields(req.Contract, req.From, req.To, req.Quantity)...)
	defer func() {
		if err != nil {
			done(err)
			return
		}
		done(nil, zap.Stringer("from_balance", bal.Balance))
	}()

	return ls.svc.Transfer(ctx, caller, req)
}

// OnNativeTransfer wraps the service method with logging
func (ls *logService) OnNativeTransfer(
	ctx context.Context,
	caller auth.Authority,
	req *bridge.NativeTransferRequest,
) (res *bridge.IntakeResult, err error) {
	done := ls.start("OnNativeTransfer", caller, transferFields(req.Contract, req.From, req.To, req.Quantity)...)
	defer func() {
		if err != nil {
			done(err)
			return
		}
		fields := []zap.Field{zap.String("outcome", string(res.Outcome))}
		if res.Dispatch != nil {
			fields = append(fields, zap.Uint64("sequence", res.Dispatch.Sequence))
		}
		done(nil, fields...)
	}()

	return ls.svc.OnNativeTransfer(ctx, caller, req)
}

// BridgeTransfer wraps the service method with logging
func (ls *logService) BridgeTransfer(
	ctx context.Context,
	caller auth.Authority,
	req *bridge.BridgeRequest,
) (res *bridge.DispatchResult, err error) {
	fields := append(transferFields(req.Contract, req.From, req.To, req.Quantity), zap.Uint32("expiration", req.Expiration))
	done := ls.start("BridgeTransfer", caller, fields...)
	defer func() {
		if err != nil {
			done(err)
			return
		}
		done(nil, zap.Uint64("sequence", res.Sequence))
	}()

	return ls.svc.BridgeTransfer(ctx, caller, req)
}

// BridgeRefund wraps the service method with logging
func (ls *logService) BridgeRefund(
	ctx context.Context,
	caller auth.Authority,
	req *bridge.BridgeRequest,
) (res *bridge.DispatchResult, err error) {
	fields := append(transferFields(req.Contract, req.From, req.To, req.Quantity), zap.Uint32("expiration", req.Expiration))
	done := ls.start("BridgeRefund", caller, fields...)
	defer func() {
		if err != nil {
			done(err)
			return
		}
		done(nil, zap.Uint64("sequence", res.Sequence))
	}()

	return ls.svc.BridgeRefund(ctx, caller, req)
}

// PeerReceive wraps the service method with logging
func (ls *logService) PeerReceive(
	ctx context.Context,
	caller auth.Authority,
	req *bridge.ReceiveRequest,
) (res *bridge.ReceiveResult, err error) {
	fields := append(transferFields(req.Contract, req.From, req.To, req.Quantity), zap.Bool("refund", req.Refund))
	done := ls.start("PeerReceive", caller, fields...)
	defer func() {
		if err != nil {
			done(err)
			return
		}
		done(nil, zap.String("settlement", res.Settlement))
	}()

	return ls.svc.PeerReceive(ctx, caller, req)
}

// PeerReceipt wraps the service method with logging
func (ls *logService) PeerReceipt(
	ctx context.Context,
	caller auth.Authority,
	req *bridge.ReceiptRequest,
) (res *bridge.ReceiptResult, err error) {
	done := ls.start("PeerReceipt", caller,
		zap.Uint64("sequence", req.Sequence),
		zap.Stringer("status", req.Status),
		zap.Int("data_bytes", len(req.Data)),
	)
	defer func() {
		if err != nil {
			done(err)
			return
		}
		done(nil, zap.String("outcome", string(res.Outcome)), zap.String("settlement", res.Settlement))
	}()

	return ls.svc.PeerReceipt(ctx, caller, req)
}

// RequeueAction wraps the service method with logging
func (ls *logService) RequeueAction(
	ctx context.Context,
	caller auth.Authority,
	id uuid.UUID,
) (res *bridge.OutboxAction, err error) {
	done := ls.start("RequeueAction", caller, zap.String("action_id", id.String()))
	defer func() {
		if err != nil {
			done(err)
			return
		}
		done(nil, zap.String("kind", string(res.Kind)), zap.Stringer("target", res.Target))
	}()

	return ls.svc.RequeueAction(ctx, caller, id)
}

func (ls *logService) GetConfig(ctx context.Context) (*bridge.ChannelConfig, error) {
	cfg, err := ls.svc.GetConfig(ctx)
	ls.queryFailed("GetConfig", err)
	return cfg, err
}

func (ls *logService) GetEscrow(ctx context.Context, seq uint64) (*bridge.EscrowRecord, error) {
	rec, err := ls.svc.GetEscrow(ctx, seq)
	ls.queryFailed("GetEscrow", err)
	return rec, err
}

func (ls *logService) ListEscrows(ctx context.Context) ([]*bridge.EscrowRecord, error) {
	escrows, err := ls.svc.ListEscrows(ctx)
	ls.queryFailed("ListEscrows", err)
	return escrows, err
}

func (ls *logService) ListDeposits(ctx context.Context, filter bridge.DepositFilter) ([]*bridge.DepositRecord, error) {
	deposits, err := ls.svc.ListDeposits(ctx, filter)
	ls.queryFailed("ListDeposits", err)
	return deposits, err
}

func (ls *logService) GetSupply(ctx context.Context, contract chain.Name, code string) (*bridge.SupplyRecord, error) {
	rec, err := ls.svc.GetSupply(ctx, contract, code)
	ls.queryFailed("GetSupply", err)
	return rec, err
}

func (ls *logService) GetBalance(ctx context.Context, contract, owner chain.Name, code string) (*bridge.Balance, error) {
	bal, err := ls.svc.GetBalance(ctx, contract, owner, code)
	ls.queryFailed("GetBalance", err)
	return bal, err
}

func (ls *logService) ListOutbox(ctx context.Context, status bridge.OutboxStatus, limit int) ([]*bridge.OutboxAction, error) {
	actions, err := ls.svc.ListOutbox(ctx, status, limit)
	ls.queryFailed("ListOutbox", err)
	return actions, err
}

// CheckInvariants wraps the service method with logging
func (ls *logService) CheckInvariants(ctx context.Context) (*bridge.InvariantReport, error) {
	report, err := ls.svc.CheckInvariants(ctx)
	if err != nil {
		ls.queryFailed("CheckInvariants", err)
		return nil, err
	}
	if report.Broken {
		ls.logger.Error("bridge invariants broken",
			zap.String("service", serviceName),
			zap.Strings("violations", report.Violations),
		)
	}
	return report, nil
}
