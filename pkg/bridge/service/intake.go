package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/chainsafe/icp-token/internal/metrics"
	"github.com/chainsafe/icp-token/pkg/auth"
	"github.com/chainsafe/icp-token/pkg/bridge"
	"github.com/chainsafe/icp-token/pkg/bridgestore"
)

// OnNativeTransfer handles the notification of an underlying token
// transfer. Transfers to the bridge account are either deposited or, when
// the memo carries a bridge directive, sent to the peer right away.
func (s *bridgeService) OnNativeTransfer(
	ctx context.Context,
	caller auth.Authority,
	req *bridge.NativeTransferRequest,
) (*bridge.IntakeResult, error) {
	// the token contract emits the notification
	if err := auth.RequireAuth(caller, req.Contract); err != nil {
		return nil, unauthorized(err)
	}
	if req.To != s.cfg.Self || req.From == s.cfg.Self {
		s.logger.Debug("ignoring native transfer not addressed to bridge",
			zap.Stringer("from", req.From),
			zap.Stringer("to", req.To),
		)
		return &bridge.IntakeResult{Outcome: bridge.IntakeIgnored}, nil
	}
	if err := validateQuantity(req.Quantity, "transfer"); err != nil {
		return nil, err
	}

	directive, ok, err := bridge.ParseDirective(req.Memo)
	if err != nil {
		return nil, invalid(err, "invalid icp token transfer memo")
	}

	res := &bridge.IntakeResult{}
	err = s.run(ctx, caller, func(ctx context.Context, e *execution) error {
		if err := e.validateMemo(req.Memo); err != nil {
			return err
		}
		if ok {
			dispatch, err := e.dispatch(ctx, packet{
				contract:   req.Contract,
				from:       req.From,
				to:         directive.To,
				quantity:   req.Quantity,
				memo:       req.Memo,
				expiration: directive.Expiration,
			})
			if err != nil {
				return err
			}
			res.Outcome, res.Dispatch = bridge.IntakeDispatched, dispatch
			return nil
		}

		deposit, err := e.deposit(ctx, req)
		if err != nil {
			return err
		}
		res.Outcome, res.Deposit = bridge.IntakeDeposited, deposit
		return nil
	})
	if err != nil {
		return nil, err
	}

	switch res.Outcome {
	case bridge.IntakeDispatched:
		metrics.DispatchedTotal.WithLabelValues("transfer").Inc()
		s.observeEscrows(ctx)
	case bridge.IntakeDeposited:
		metrics.DepositsTotal.Inc()
	}
	return res, nil
}

// deposit merges req into the deposit of its sender, creating it on first use.
func (e *execution) deposit(ctx context.Context, req *bridge.NativeTransferRequest) (*bridge.DepositRecord, error) {
	dep, err := e.tx.GetDeposit(ctx, req.Contract, req.From, req.Quantity.Symbol.Code)
	if errors.Is(err, bridgestore.ErrNotFound) {
		dep = &bridge.DepositRecord{
			Contract:  req.Contract,
			Owner:     req.From,
			Balance:   req.Quantity,
			UpdatedAt: e.now,
		}
		if err := e.tx.CreateDeposit(ctx, dep); err != nil {
			return nil, fmt.Errorf("failed to create deposit: %w", err)
		}
		return dep, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get deposit: %w", err)
	}

	sum, err := dep.Balance.Add(req.Quantity)
	if err != nil {
		return nil, invalid(err, "cannot merge deposit")
	}
	dep.Balance = sum
	dep.UpdatedAt = e.now
	if err := e.tx.UpdateDeposit(ctx, dep); err != nil {
		return nil, fmt.Errorf("failed to update deposit: %w", err)
	}
	return dep, nil
}
