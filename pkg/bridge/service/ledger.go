package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	apperrors "github.com/chainsafe/icp-token/pkg/app/errors"
	"github.com/chainsafe/icp-token/pkg/auth"
	"github.com/chainsafe/icp-token/pkg/bridge"
	"github.com/chainsafe/icp-token/pkg/bridgestore"
	"github.com/chainsafe/icp-token/pkg/chain"
)

// execution is one atomic run of an entry point. All state changes go
// through tx; outbound effects are queued on the outbox of the same tx.
type execution struct {
	tx     bridgestore.Tx
	caller auth.Authority
	cfg    Config
	now    time.Time
}

func (e *execution) self() chain.Name {
	return e.cfg.Self
}

func (e *execution) requireAccount(ctx context.Context, name chain.Name, role string) error {
	ok, err := e.tx.AccountExists(ctx, name)
	if err != nil {
		return fmt.Errorf("failed to check account: %w", err)
	}
	if !ok {
		return apperrors.ResourceNotFoundError(bridge.ErrAccountNotFound, role+" account does not exist")
	}
	return nil
}

// supplyFor loads the wrapped ledger of quantity's symbol and checks the
// precision matches. verb names the operation in the error message.
func (e *execution) supplyFor(ctx context.Context, contract chain.Name, quantity chain.Asset, verb string) (*bridge.SupplyRecord, error) {
	st, err := e.tx.GetSupply(ctx, contract, quantity.Symbol.Code)
	if err != nil {
		return nil, lookupError(err, bridge.ErrTokenNotFound, "token with symbol does not exist, create token before "+verb)
	}
	if quantity.Symbol != st.Supply.Symbol {
		return nil, invalid(bridge.ErrSymbolMismatch, "symbol precision mismatch")
	}
	return st, nil
}

// mint issues quantity of the wrapped token of contract to to. Only the
// bridge itself may mint.
func (e *execution) mint(ctx context.Context, contract, to chain.Name, quantity chain.Asset) error {
	if err := auth.RequireAuth(e.caller, e.self()); err != nil {
		return unauthorized(err)
	}
	if err := e.requireAccount(ctx, to, "to"); err != nil {
		return err
	}
	if err := validateQuantity(quantity, "mint"); err != nil {
		return err
	}

	st, err := e.supplyFor(ctx, contract, quantity, "mint")
	if err != nil {
		return err
	}
	if quantity.Amount > math.MaxInt64-st.Supply.Amount {
		return invalid(bridge.ErrSupplyOverflow, "quantity exceeds available supply")
	}
	supply, err := st.Supply.Add(quantity)
	if err != nil {
		return invalid(fmt.Errorf("%w: %w", bridge.ErrSupplyOverflow, err), "addition overflow")
	}

	if err := e.notify(ctx, to, contract, "mint", quantity); err != nil {
		return err
	}

	st.Supply = supply
	if err := e.tx.UpdateSupply(ctx, st); err != nil {
		return fmt.Errorf("failed to update supply: %w", err)
	}
	return e.addBalance(ctx, contract, to, quantity)
}

// burn retires quantity of the wrapped token of contract held by from.
func (e *execution) burn(ctx context.Context, contract, from chain.Name, quantity chain.Asset) error {
	if err := e.requireAccount(ctx, from, "from"); err != nil {
		return err
	}
	if err := validateQuantity(quantity, "burn"); err != nil {
		return err
	}

	st, err := e.supplyFor(ctx, contract, quantity, "burn")
	if err != nil {
		return err
	}
	if quantity.Amount > st.Supply.Amount {
		return apperrors.InsufficientFundsError(bridge.ErrSupplyExceeded, "quantity exceeds available supply")
	}

	if err := e.notify(ctx, from, contract, "burn", quantity); err != nil {
		return err
	}

	supply, err := st.Supply.Sub(quantity)
	if err != nil {
		return fmt.Errorf("failed to decrease supply: %w", err)
	}
	st.Supply = supply
	if err := e.tx.UpdateSupply(ctx, st); err != nil {
		return fmt.Errorf("failed to update supply: %w", err)
	}
	return e.subBalance(ctx, contract, from, quantity)
}

func (e *execution) addBalance(ctx context.Context, contract, owner chain.Name, quantity chain.Asset) error {
	bal, err := e.tx.GetBalance(ctx, contract, owner, quantity.Symbol.Code)
	switch {
	case errors.Is(err, bridgestore.ErrNotFound):
		bal = &bridge.Balance{Contract: contract, Owner: owner, Balance: quantity}
	case err != nil:
		return fmt.Errorf("failed to get balance: %w", err)
	default:
		sum, err := bal.Balance.Add(quantity)
		if err != nil {
			return invalid(fmt.Errorf("%w: %w", bridge.ErrSupplyOverflow, err), "addition overflow")
		}
		bal.Balance = sum
	}
	if err := e.tx.SaveBalance(ctx, bal); err != nil {
		return fmt.Errorf("failed to save balance: %w", err)
	}
	return nil
}

func (e *execution) subBalance(ctx context.Context, contract, owner chain.Name, quantity chain.Asset) error {
	bal, err := e.tx.GetBalance(ctx, contract, owner, quantity.Symbol.Code)
	if errors.Is(err, bridgestore.ErrNotFound) {
		return apperrors.InsufficientFundsError(bridge.ErrOverdrawn, "no balance object found")
	}
	if err != nil {
		return fmt.Errorf("failed to get balance: %w", err)
	}
	if bal.Balance.Amount < quantity.Amount {
		return apperrors.InsufficientFundsError(bridge.ErrOverdrawn, "overdrawn balance")
	}

	rest, err := bal.Balance.Sub(quantity)
	if err != nil {
		return invalid(fmt.Errorf("%w: %w", bridge.ErrSymbolMismatch, err), "symbol precision mismatch")
	}
	bal.Balance = rest
	if err := e.tx.SaveBalance(ctx, bal); err != nil {
		return fmt.Errorf("failed to save balance: %w", err)
	}
	return nil
}

// nativeTransfer queues a transfer of underlying tokens held by the bridge
// account on the token contract.
func (e *execution) nativeTransfer(ctx context.Context, contract, to chain.Name, quantity chain.Asset, memo string) error {
	if err := validateQuantity(quantity, "transfer"); err != nil {
		return err
	}
	action, err := bridge.NewAction(contract, bridge.ActionTransfer,
		bridge.TransferPayload{From: e.self(), To: to, Quantity: quantity, Memo: memo},
		bridge.PermissionLevel{Actor: e.self(), Permission: bridge.PermissionActive},
	)
	if err != nil {
		return err
	}
	if err := e.tx.EnqueueAction(ctx, bridge.NewOutboxAction(bridge.OutboxKindTransfer, action, e.now)); err != nil {
		return fmt.Errorf("failed to queue native transfer: %w", err)
	}
	return nil
}

// notify queues a notification to recipient about a wrapped ledger change.
func (e *execution) notify(ctx context.Context, recipient, contract chain.Name, name string, quantity chain.Asset) error {
	action, err := bridge.NewAction(recipient, bridge.ActionNotify, bridge.NotifyPayload{
		Recipient: recipient,
		Contract:  contract,
		Action:    name,
		Quantity:  quantity,
	})
	if err != nil {
		return err
	}
	if err := e.tx.EnqueueAction(ctx, bridge.NewOutboxAction(bridge.OutboxKindNotify, action, e.now)); err != nil {
		return fmt.Errorf("failed to queue notification: %w", err)
	}
	return nil
}

// settle moves quantity to to according to s.
func (e *execution) settle(ctx context.Context, s bridge.Settlement, contract, to chain.Name, quantity chain.Asset, memo string) error {
	if s.Mints() {
		return e.mint(ctx, contract, to, quantity)
	}
	return e.nativeTransfer(ctx, contract, to, quantity, s.Memo(memo))
}
