package service

import (
	"context"
	"fmt"

	"github.com/chainsafe/icp-token/internal/metrics"
	apperrors "github.com/chainsafe/icp-token/pkg/app/errors"
	"github.com/chainsafe/icp-token/pkg/auth"
	"github.com/chainsafe/icp-token/pkg/bridge"
)

// BridgeTransfer sends underlying tokens deposited by req.From to the peer.
func (s *bridgeService) BridgeTransfer(
	ctx context.Context,
	caller auth.Authority,
	req *bridge.BridgeRequest,
) (*bridge.DispatchResult, error) {
	if err := s.checkBridgeRequest(caller, req); err != nil {
		return nil, err
	}

	var res *bridge.DispatchResult
	err := s.run(ctx, caller, func(ctx context.Context, e *execution) error {
		if err := e.consumeDeposit(ctx, req); err != nil {
			return err
		}
		var err error
		res, err = e.dispatch(ctx, packetOf(req, false))
		return err
	})
	if err != nil {
		return nil, err
	}

	metrics.DispatchedTotal.WithLabelValues("transfer").Inc()
	s.observeEscrows(ctx)
	return res, nil
}

// BridgeRefund burns wrapped tokens of req.From and sends the underlying
// tokens back to the peer.
func (s *bridgeService) BridgeRefund(
	ctx context.Context,
	caller auth.Authority,
	req *bridge.BridgeRequest,
) (*bridge.DispatchResult, error) {
	if err := s.checkBridgeRequest(caller, req); err != nil {
		return nil, err
	}

	var res *bridge.DispatchResult
	err := s.run(ctx, caller, func(ctx context.Context, e *execution) error {
		if err := e.burn(ctx, req.Contract, req.From, req.Quantity); err != nil {
			return err
		}
		var err error
		res, err = e.dispatch(ctx, packetOf(req, true))
		return err
	})
	if err != nil {
		return nil, err
	}

	metrics.DispatchedTotal.WithLabelValues("refund").Inc()
	s.observeEscrows(ctx)
	return res, nil
}

func (s *bridgeService) checkBridgeRequest(caller auth.Authority, req *bridge.BridgeRequest) error {
	if err := auth.RequireAuth(caller, req.From); err != nil {
		return unauthorized(err)
	}
	if err := validateName("to", req.To); err != nil {
		return err
	}
	if err := bridge.ValidateMemo(req.Memo, s.cfg.MemoMaxBytes); err != nil {
		return invalid(err, fmt.Sprintf("memo has more than %d bytes", s.cfg.MemoMaxBytes))
	}
	return nil
}

// consumeDeposit takes req.Quantity out of the deposit of req.From, erasing
// the deposit when it is used up.
func (e *execution) consumeDeposit(ctx context.Context, req *bridge.BridgeRequest) error {
	if err := validateQuantity(req.Quantity, "transfer"); err != nil {
		return err
	}

	dep, err := e.tx.GetDeposit(ctx, req.Contract, req.From, req.Quantity.Symbol.Code)
	if err != nil {
		return lookupError(err, bridge.ErrDepositNotFound, "no deposit object found")
	}
	if dep.Balance.Symbol != req.Quantity.Symbol {
		return invalid(bridge.ErrSymbolMismatch, "symbol precision mismatch")
	}
	if dep.Balance.Amount < req.Quantity.Amount {
		return apperrors.InsufficientFundsError(bridge.ErrOverdrawn, "overdrawn balance")
	}

	if dep.Balance.Amount == req.Quantity.Amount {
		if err := e.tx.DeleteDeposit(ctx, dep.ID); err != nil {
			return fmt.Errorf("failed to erase deposit: %w", err)
		}
		return nil
	}

	rest, err := dep.Balance.Sub(req.Quantity)
	if err != nil {
		return fmt.Errorf("failed to decrease deposit: %w", err)
	}
	dep.Balance = rest
	dep.UpdatedAt = e.now
	if err := e.tx.UpdateDeposit(ctx, dep); err != nil {
		return fmt.Errorf("failed to update deposit: %w", err)
	}
	return nil
}

func packetOf(req *bridge.BridgeRequest, refund bool) packet {
	return packet{
		contract:   req.Contract,
		from:       req.From,
		to:         req.To,
		quantity:   req.Quantity,
		memo:       req.Memo,
		expiration: req.Expiration,
		refund:     refund,
	}
}
