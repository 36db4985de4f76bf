package service

import (
	"context"
	"fmt"

	"github.com/chainsafe/icp-token/internal/metrics"
	apperrors "github.com/chainsafe/icp-token/pkg/app/errors"
	"github.com/chainsafe/icp-token/pkg/bridge"
	"github.com/chainsafe/icp-token/pkg/bridgestore"
	"github.com/chainsafe/icp-token/pkg/chain"
)

const maxOutboxPage = 500

func (s *bridgeService) GetConfig(ctx context.Context) (*bridge.ChannelConfig, error) {
	cfg, err := s.store.GetConfig(ctx)
	if err != nil {
		return nil, lookupError(err, bridge.ErrNotConfigured, "channel contracts are not configured")
	}
	return cfg, nil
}

func (s *bridgeService) GetEscrow(ctx context.Context, seq uint64) (*bridge.EscrowRecord, error) {
	rec, err := s.store.GetEscrow(ctx, seq)
	if err != nil {
		return nil, lookupError(err, nil, fmt.Sprintf("no escrow for sequence %d", seq))
	}
	return rec, nil
}

func (s *bridgeService) ListEscrows(ctx context.Context) ([]*bridge.EscrowRecord, error) {
	escrows, err := s.store.ListEscrows(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list escrows: %w", err)
	}
	return escrows, nil
}

func (s *bridgeService) ListDeposits(ctx context.Context, filter bridge.DepositFilter) ([]*bridge.DepositRecord, error) {
	deposits, err := s.store.ListDeposits(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list deposits: %w", err)
	}
	return deposits, nil
}

func (s *bridgeService) GetSupply(ctx context.Context, contract chain.Name, code string) (*bridge.SupplyRecord, error) {
	rec, err := s.store.GetSupply(ctx, contract, code)
	if err != nil {
		return nil, lookupError(err, bridge.ErrTokenNotFound, "token with symbol does not exist")
	}
	return rec, nil
}

func (s *bridgeService) GetBalance(ctx context.Context, contract, owner chain.Name, code string) (*bridge.Balance, error) {
	bal, err := s.store.GetBalance(ctx, contract, owner, code)
	if err != nil {
		return nil, lookupError(err, nil, "no balance object found")
	}
	return bal, nil
}

func (s *bridgeService) ListOutbox(ctx context.Context, status bridge.OutboxStatus, limit int) ([]*bridge.OutboxAction, error) {
	if status != "" && !status.Valid() {
		return nil, apperrors.BadRequestError(nil, fmt.Sprintf("unknown outbox status %q", status))
	}
	if limit <= 0 || limit > maxOutboxPage {
		limit = maxOutboxPage
	}
	actions, err := s.store.ListActions(ctx, status, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list outbox actions: %w", err)
	}
	return actions, nil
}

// CheckInvariants reads every bridge table in one transaction and checks the
// conservation invariants against that snapshot.
func (s *bridgeService) CheckInvariants(ctx context.Context) (*bridge.InvariantReport, error) {
	var ledger bridge.Ledger
	err := s.store.RunInTx(ctx, func(ctx context.Context, tx bridgestore.Tx) error {
		var err error
		if ledger.Supplies, err = tx.ListSupplies(ctx); err != nil {
			return fmt.Errorf("failed to list supplies: %w", err)
		}
		if ledger.Balances, err = tx.ListBalances(ctx); err != nil {
			return fmt.Errorf("failed to list balances: %w", err)
		}
		if ledger.Deposits, err = tx.ListDeposits(ctx, bridge.DepositFilter{}); err != nil {
			return fmt.Errorf("failed to list deposits: %w", err)
		}
		if ledger.Escrows, err = tx.ListEscrows(ctx); err != nil {
			return fmt.Errorf("failed to list escrows: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.EscrowPending.Set(float64(len(ledger.Escrows)))

	report := bridge.CheckInvariants(ledger)
	if report.Broken {
		metrics.ErrorsTotal.WithLabelValues("bridge", "invariant").Inc()
	}
	return &report, nil
}
