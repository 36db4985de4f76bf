package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	apperrors "github.com/chainsafe/icp-token/pkg/app/errors"
	"github.com/chainsafe/icp-token/pkg/bridge"
	"github.com/chainsafe/icp-token/pkg/bridgestore"
	"github.com/chainsafe/icp-token/pkg/chain"
)

// Channel is the packet channel as the dispatcher sees it.
type Channel interface {
	// NextSequence consumes one sequence slot of channel. It must be called
	// once per packet.
	NextSequence(ctx context.Context, channel chain.Name) (uint64, error)
	// Dispatch hands a packet to the channel. send is delivered to the peer,
	// receipt is invoked locally with the delivery outcome.
	Dispatch(ctx context.Context, seq uint64, send, receipt bridge.Action, expiration uint32) error
}

// outboxChannel queues packets as sendaction actions of the channel account.
// The counter and the queue live in the bridge transaction, so a failed
// execution neither consumes a sequence nor leaves a packet behind.
type outboxChannel struct {
	tx  bridgestore.Tx
	icp chain.Name
	now time.Time
}

func newOutboxChannel(tx bridgestore.Tx, icp chain.Name, now time.Time) *outboxChannel {
	return &outboxChannel{tx: tx, icp: icp, now: now}
}

func (c *outboxChannel) NextSequence(ctx context.Context, channel chain.Name) (uint64, error) {
	return c.tx.NextSequence(ctx, channel)
}

func (c *outboxChannel) Dispatch(ctx context.Context, seq uint64, send, receipt bridge.Action, expiration uint32) error {
	packedSend, err := json.Marshal(send)
	if err != nil {
		return fmt.Errorf("failed to pack send action: %w", err)
	}
	packedReceipt, err := json.Marshal(receipt)
	if err != nil {
		return fmt.Errorf("failed to pack receipt action: %w", err)
	}

	action, err := bridge.NewAction(c.icp, bridge.ActionSendAction,
		bridge.SendActionPayload{
			Seq:           seq,
			SendAction:    packedSend,
			Expiration:    expiration,
			ReceiveAction: packedReceipt,
		},
		bridge.PermissionLevel{Actor: c.icp, Permission: bridge.PermissionSendAction},
	)
	if err != nil {
		return err
	}

	oa := bridge.NewOutboxAction(bridge.OutboxKindSendAction, action, c.now)
	oa.Sequence = &seq
	if err := c.tx.EnqueueAction(ctx, oa); err != nil {
		return fmt.Errorf("failed to queue packet %d: %w", seq, err)
	}
	return nil
}

// packet is a validated withdrawal to send to the peer.
type packet struct {
	contract   chain.Name
	from       chain.Name
	to         chain.Name
	quantity   chain.Asset
	memo       string
	expiration uint32
	refund     bool
}

// dispatch escrows p under a fresh sequence and hands it to the channel.
// The source balance must already be debited.
func (e *execution) dispatch(ctx context.Context, p packet) (*bridge.DispatchResult, error) {
	cfg, err := e.tx.GetConfig(ctx)
	if err != nil && !errors.Is(err, bridgestore.ErrNotFound) {
		return nil, fmt.Errorf("failed to get channel config: %w", err)
	}
	if !cfg.IsComplete() {
		if cfg == nil || cfg.Peer.IsEmpty() {
			return nil, apperrors.PreconditionFailedError(bridge.ErrNotConfigured, "empty remote peer contract")
		}
		return nil, apperrors.PreconditionFailedError(bridge.ErrNotConfigured, "empty local icp contract")
	}

	ch := e.cfg.Channel(e.tx, cfg.ICP, e.now)
	seq, err := ch.NextSequence(ctx, cfg.ICP)
	if err != nil {
		return nil, fmt.Errorf("failed to get next packet sequence: %w", err)
	}

	send, err := bridge.NewAction(cfg.Peer, bridge.ActionReceive, bridge.ReceivePayload{
		Contract: p.contract,
		From:     p.from,
		To:       p.to,
		Quantity: p.quantity,
		Memo:     p.memo,
		Refund:   p.refund,
	})
	if err != nil {
		return nil, err
	}
	receipt, err := bridge.NewAction(e.self(), bridge.ActionReceipt, nil)
	if err != nil {
		return nil, err
	}

	escrow := &bridge.EscrowRecord{
		Sequence:  seq,
		Contract:  p.contract,
		Owner:     p.from,
		Amount:    p.quantity,
		Refund:    p.refund,
		CreatedAt: e.now,
	}
	if err := e.tx.CreateEscrow(ctx, escrow); err != nil {
		return nil, fmt.Errorf("failed to escrow packet %d: %w", seq, err)
	}

	if err := ch.Dispatch(ctx, seq, send, receipt, p.expiration); err != nil {
		return nil, err
	}
	return &bridge.DispatchResult{Sequence: seq, Escrow: escrow}, nil
}
