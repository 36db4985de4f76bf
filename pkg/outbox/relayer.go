// Package outbox delivers the outbound actions the bridge queues together
// with its state changes.
package outbox

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/chainsafe/icp-token/internal/metrics"
	"github.com/chainsafe/icp-token/pkg/bridge"
	"github.com/chainsafe/icp-token/pkg/config"
)

// Store is the part of the bridge store the relayer drains
type Store interface {
	ListPendingActions(ctx context.Context, limit int) ([]*bridge.OutboxAction, error)
	MarkActionDelivered(ctx context.Context, id uuid.UUID, at time.Time) error
	MarkActionFailed(ctx context.Context, id uuid.UUID, lastErr string, maxAttempts int, at time.Time) (bridge.OutboxStatus, error)
}

// Sink hands one action to the chain
type Sink interface {
	Deliver(ctx context.Context, action *bridge.OutboxAction) error
}

// Relayer polls pending outbox actions and delivers them in queue order
type Relayer struct {
	store  Store
	sink   Sink
	cfg    *config.OutboxConfig
	logger *zap.Logger
	now    func() time.Time

	stopOnce sync.Once
	stopCh   chan struct{}
	wg       sync.WaitGroup
}

// NewRelayer creates a new outbox relayer
func NewRelayer(cfg *config.OutboxConfig, store Store, sink Sink, logger *zap.Logger) *Relayer {
	return &Relayer{
		store:  store,
		sink:   sink,
		cfg:    cfg,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
		stopCh: make(chan struct{}),
	}
}

// Start launches the polling loop. It returns immediately.
func (r *Relayer) Start(ctx context.Context) {
	r.logger.Info("Starting outbox relayer",
		zap.Duration("interval", r.cfg.Interval),
		zap.Int("batch_size", r.cfg.BatchSize))

	r.wg.Add(1)
	go r.run(ctx)
}

// Stop stops the polling loop and waits for the current batch to finish
func (r *Relayer) Stop() {
	r.stopOnce.Do(func() {
		r.logger.Info("Stopping outbox relayer")
		close(r.stopCh)
	})
	r.wg.Wait()
}

func (r *Relayer) run(ctx context.Context) {
	defer r.wg.Done()

	ticker := time.NewTicker(r.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-r.stopCh:
			return
		case <-ticker.C:
			if _, err := r.ProcessBatch(ctx); err != nil {
				r.logger.Error("Outbox batch failed", zap.Error(err))
				metrics.ErrorsTotal.WithLabelValues("outbox", "batch").Inc()
			}
		}
	}
}

// ProcessBatch delivers up to BatchSize pending actions and returns how many
// were delivered. The batch stops at the first failed delivery so later
// actions are not delivered ahead of it.
func (r *Relayer) ProcessBatch(ctx context.Context) (int, error) {
	start := time.Now()
	defer func() { metrics.OutboxBatchDuration.Observe(time.Since(start).Seconds()) }()

	actions, err := r.store.ListPendingActions(ctx, r.cfg.BatchSize)
	if err != nil {
		return 0, fmt.Errorf("failed to list pending actions: %w", err)
	}

	delivered := 0
	for _, action := range actions {
		if ctx.Err() != nil {
			return delivered, ctx.Err()
		}
		ok, err := r.deliver(ctx, action)
		if err != nil {
			return delivered, err
		}
		if !ok {
			break
		}
		delivered++
	}
	return delivered, nil
}

// deliver sends one action and records the outcome. It reports whether the
// action was delivered; the error is set only when recording failed.
func (r *Relayer) deliver(ctx context.Context, action *bridge.OutboxAction) (bool, error) {
	logger := r.logger.With(
		zap.String("action_id", action.ID.String()),
		zap.String("kind", string(action.Kind)),
		zap.Stringer("target", action.Target),
	)
	if action.Sequence != nil {
		logger = logger.With(zap.Uint64("sequence", *action.Sequence))
	}

	deliverCtx, cancel := ctx, context.CancelFunc(func() {})
	if r.cfg.RequestTimeout > 0 {
		deliverCtx, cancel = context.WithTimeout(ctx, r.cfg.RequestTimeout)
	}
	sendErr := r.sink.Deliver(deliverCtx, action)
	cancel()

	if sendErr == nil {
		if err := r.store.MarkActionDelivered(ctx, action.ID, r.now()); err != nil {
			return false, fmt.Errorf("failed to mark action %s delivered: %w", action.ID, err)
		}
		metrics.OutboxActionsTotal.WithLabelValues(string(action.Kind), string(bridge.OutboxStatusDelivered)).Inc()
		logger.Debug("Delivered outbox action")
		return true, nil
	}

	status, err := r.store.MarkActionFailed(ctx, action.ID, sendErr.Error(), r.cfg.MaxAttempts, r.now())
	if err != nil {
		return false, fmt.Errorf("failed to record delivery failure of %s: %w", action.ID, err)
	}
	if status == bridge.OutboxStatusFailed {
		metrics.OutboxActionsTotal.WithLabelValues(string(action.Kind), string(bridge.OutboxStatusFailed)).Inc()
		logger.Error("Giving up on outbox action",
			zap.Int("attempts", action.Attempts+1),
			zap.Error(sendErr))
		return false, nil
	}
	logger.Warn("Outbox delivery failed, will retry",
		zap.Int("attempts", action.Attempts+1),
		zap.Error(sendErr))
	return false, nil
}
