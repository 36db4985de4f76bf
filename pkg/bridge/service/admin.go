package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	apperrors "github.com/chainsafe/icp-token/pkg/app/errors"
	"github.com/chainsafe/icp-token/pkg/auth"
	"github.com/chainsafe/icp-token/pkg/bridge"
	"github.com/chainsafe/icp-token/pkg/bridgestore"
	"github.com/chainsafe/icp-token/pkg/chain"
)

// InitConfig sets the local channel endpoint and the peer contract. It can
// only run once.
func (s *bridgeService) InitConfig(
	ctx context.Context,
	caller auth.Authority,
	req *bridge.InitConfigRequest,
) (*bridge.ChannelConfig, error) {
	if err := auth.RequireAuth(caller, s.cfg.Self); err != nil {
		return nil, unauthorized(err)
	}
	if err := validateName("icp", req.ICP); err != nil {
		return nil, err
	}
	if err := validateName("peer", req.Peer); err != nil {
		return nil, err
	}

	cfg := &bridge.ChannelConfig{ICP: req.ICP, Peer: req.Peer}
	err := s.run(ctx, caller, func(ctx context.Context, e *execution) error {
		_, err := e.tx.GetConfig(ctx)
		switch {
		case err == nil:
			return apperrors.ConflictError(bridge.ErrAlreadyConfigured, "contracts already exist")
		case !errors.Is(err, bridgestore.ErrNotFound):
			return fmt.Errorf("failed to get channel config: %w", err)
		}

		if err := e.tx.CreateConfig(ctx, cfg); err != nil {
			if errors.Is(err, bridgestore.ErrAlreadyExists) {
				return apperrors.ConflictError(bridge.ErrAlreadyConfigured, "contracts already exist")
			}
			return fmt.Errorf("failed to save channel config: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// RegisterAccount adds name to the account registry.
func (s *bridgeService) RegisterAccount(
	ctx context.Context,
	caller auth.Authority,
	req *bridge.RegisterAccountRequest,
) (*bridge.Account, error) {
	if err := auth.RequireAuth(caller, s.cfg.Self); err != nil {
		return nil, unauthorized(err)
	}
	if err := validateName("new", req.Name); err != nil {
		return nil, err
	}

	var account *bridge.Account
	err := s.run(ctx, caller, func(ctx context.Context, e *execution) error {
		account = &bridge.Account{Name: req.Name, CreatedAt: e.now}
		if err := e.tx.CreateAccount(ctx, account); err != nil {
			if errors.Is(err, bridgestore.ErrAlreadyExists) {
				return apperrors.ConflictError(err, "account already exists")
			}
			return fmt.Errorf("failed to create account: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return account, nil
}

// CreateToken creates the wrapped ledger of one symbol of an underlying
// token contract with zero supply.
func (s *bridgeService) CreateToken(
	ctx context.Context,
	caller auth.Authority,
	req *bridge.CreateTokenRequest,
) (*bridge.SupplyRecord, error) {
	if err := auth.RequireAuth(caller, s.cfg.Self); err != nil {
		return nil, unauthorized(err)
	}
	if err := validateName("contract", req.Contract); err != nil {
		return nil, err
	}
	if err := req.Symbol.Validate(); err != nil {
		return nil, invalid(err, "invalid symbol name")
	}

	rec := &bridge.SupplyRecord{Contract: req.Contract, Supply: chain.NewAsset(0, req.Symbol)}
	err := s.run(ctx, caller, func(ctx context.Context, e *execution) error {
		if err := e.tx.CreateSupply(ctx, rec); err != nil {
			if errors.Is(err, bridgestore.ErrAlreadyExists) {
				return apperrors.ConflictError(bridge.ErrTokenExists, "token with symbol already exists")
			}
			return fmt.Errorf("failed to create token: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// Transfer moves wrapped tokens between two accounts and notifies both.
// It returns the balance of the sender after the transfer.
func (s *bridgeService) Transfer(
	ctx context.Context,
	caller auth.Authority,
	req *bridge.TransferRequest,
) (*bridge.Balance, error) {
	if req.From == req.To {
		return nil, invalid(bridge.ErrSelfTransfer, "cannot transfer to self")
	}
	if err := auth.RequireAuth(caller, req.From); err != nil {
		return nil, unauthorized(err)
	}

	var bal *bridge.Balance
	err := s.run(ctx, caller, func(ctx context.Context, e *execution) error {
		if err := e.requireAccount(ctx, req.To, "to"); err != nil {
			return err
		}
		if _, err := e.supplyFor(ctx, req.Contract, req.Quantity, "transfer"); err != nil {
			return err
		}
		if err := validateQuantity(req.Quantity, "transfer"); err != nil {
			return err
		}
		if err := e.validateMemo(req.Memo); err != nil {
			return err
		}

		if err := e.notify(ctx, req.From, req.Contract, bridge.ActionTransfer, req.Quantity); err != nil {
			return err
		}
		if err := e.notify(ctx, req.To, req.Contract, bridge.ActionTransfer, req.Quantity); err != nil {
			return err
		}

		if err := e.subBalance(ctx, req.Contract, req.From, req.Quantity); err != nil {
			return err
		}
		if err := e.addBalance(ctx, req.Contract, req.To, req.Quantity); err != nil {
			return err
		}

		var err error
		bal, err = e.tx.GetBalance(ctx, req.Contract, req.From, req.Quantity.Symbol.Code)
		if err != nil {
			return fmt.Errorf("failed to get balance: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return bal, nil
}

// RequeueAction returns a failed outbox action to the delivery queue at its
// original position. A sendaction that never reaches the channel leaves its
// escrow pending, so operators requeue it once the channel is reachable.
func (s *bridgeService) RequeueAction(
	ctx context.Context,
	caller auth.Authority,
	id uuid.UUID,
) (*bridge.OutboxAction, error) {
	if err := auth.RequireAuth(caller, s.cfg.Self); err != nil {
		return nil, unauthorized(err)
	}

	var action *bridge.OutboxAction
	err := s.run(ctx, caller, func(ctx context.Context, e *execution) error {
		var err error
		action, err = e.tx.GetAction(ctx, id)
		if err != nil {
			return lookupError(err, bridge.ErrActionNotFound, fmt.Sprintf("no outbox action %s", id))
		}
		if action.Status != bridge.OutboxStatusFailed {
			return apperrors.PreconditionFailedError(bridge.ErrActionNotFailed,
				fmt.Sprintf("outbox action %s is %s", id, action.Status))
		}
		if err := e.tx.RequeueAction(ctx, id, e.now); err != nil {
			return fmt.Errorf("failed to requeue outbox action: %w", err)
		}
		action.Status = bridge.OutboxStatusPending
		action.Attempts = 0
		action.UpdatedAt = e.now
		return nil
	})
	if err != nil {
		return nil, err
	}
	return action, nil
}
