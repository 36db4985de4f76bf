package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/chainsafe/icp-token/internal/metrics"
	"github.com/chainsafe/icp-token/pkg/auth"
	"github.com/chainsafe/icp-token/pkg/bridge"
	"github.com/chainsafe/icp-token/pkg/bridgestore"
)

// PeerReceive applies a transfer arriving from the peer: a plain transfer
// mints the wrapped token, a refund releases underlying tokens held here.
func (s *bridgeService) PeerReceive(
	ctx context.Context,
	caller auth.Authority,
	req *bridge.ReceiveRequest,
) (*bridge.ReceiveResult, error) {
	if err := s.requireCallback(caller); err != nil {
		return nil, err
	}

	settlement := bridge.ReceiveFor(req.Refund)
	err := s.run(ctx, caller, func(ctx context.Context, e *execution) error {
		if err := e.validateMemo(req.Memo); err != nil {
			return err
		}
		return e.settle(ctx, settlement, req.Contract, req.To, req.Quantity, req.Memo)
	})
	if err != nil {
		return nil, err
	}

	metrics.ReceivedTotal.WithLabelValues(settlement.Kind.String()).Inc()
	return &bridge.ReceiveResult{Settlement: settlement.String()}, nil
}

// PeerReceipt resolves the escrow entry of a dispatched packet once the
// channel reports its outcome. Receipts for unknown sequences are ignored.
func (s *bridgeService) PeerReceipt(
	ctx context.Context,
	caller auth.Authority,
	req *bridge.ReceiptRequest,
) (*bridge.ReceiptResult, error) {
	if err := s.requireCallback(caller); err != nil {
		return nil, err
	}

	var t bridge.Transition
	err := s.run(ctx, caller, func(ctx context.Context, e *execution) error {
		record, err := e.tx.GetEscrow(ctx, req.Sequence)
		if err != nil && !errors.Is(err, bridgestore.ErrNotFound) {
			return fmt.Errorf("failed to get escrow: %w", err)
		}

		t = bridge.ResolveReceipt(record, req.Status)
		if t.Settlement != nil {
			if err := e.settle(ctx, *t.Settlement, record.Contract, record.Owner, record.Amount, ""); err != nil {
				return err
			}
		}
		if t.Erase() {
			if err := e.tx.DeleteEscrow(ctx, req.Sequence); err != nil {
				return fmt.Errorf("failed to erase escrow %d: %w", req.Sequence, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.ReceiptsTotal.WithLabelValues(string(t.To)).Inc()
	if t.Erase() {
		s.observeEscrows(ctx)
	}

	res := &bridge.ReceiptResult{Sequence: req.Sequence, Outcome: t.To}
	if t.Settlement != nil {
		res.Settlement = t.Settlement.String()
	}
	return res, nil
}
