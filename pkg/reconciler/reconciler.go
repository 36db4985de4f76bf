package reconciler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/chainsafe/icp-token/pkg/bridge"
)

const defaultRunTimeout = 2 * time.Minute

// ErrInvariantBroken is returned by ReconcileAll when the ledger violates a
// conservation invariant.
var ErrInvariantBroken = errors.New("bridge invariant broken")

// LedgerChecker checks the bridge ledger against its invariants
type LedgerChecker interface {
	CheckInvariants(ctx context.Context) (*bridge.InvariantReport, error)
}

// Reconciler periodically checks that wrapped supply, balances, deposits and
// escrows still add up.
type Reconciler struct {
	checker LedgerChecker
	logger  *zap.Logger

	mu         sync.Mutex
	lastReport *bridge.InvariantReport
	lastRun    time.Time

	stopOnce sync.Once
	stopCh   chan struct{}
	wg       sync.WaitGroup
}

// New creates a new Reconciler
func New(checker LedgerChecker, logger *zap.Logger) *Reconciler {
	return &Reconciler{
		checker: checker,
		logger:  logger,
		stopCh:  make(chan struct{}),
	}
}

// ReconcileAll runs one invariant check. Violations are logged one by one
// and reported as ErrInvariantBroken.
func (r *Reconciler) ReconcileAll(ctx context.Context) error {
	report, err := r.checker.CheckInvariants(ctx)
	if err != nil {
		return fmt.Errorf("failed to check invariants: %w", err)
	}

	r.mu.Lock()
	r.lastReport, r.lastRun = report, time.Now().UTC()
	r.mu.Unlock()

	if !report.Broken {
		r.logger.Debug("Bridge ledger reconciled")
		return nil
	}
	for _, v := range report.Violations {
		r.logger.Error("Bridge invariant violated", zap.String("violation", v))
	}
	return fmt.Errorf("%w: %d violations", ErrInvariantBroken, len(report.Violations))
}

// LastReport returns the report of the last successful check and when it ran.
// The report is nil before the first check.
func (r *Reconciler) LastReport() (*bridge.InvariantReport, time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastReport, r.lastRun
}

// StartPeriodicReconciliation starts a background goroutine that reconciles periodically
func (r *Reconciler) StartPeriodicReconciliation(interval time.Duration) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		r.logger.Info("Started periodic reconciliation", zap.Duration("interval", interval))

		for {
			select {
			case <-ticker.C:
				ctx, cancel := context.WithTimeout(context.Background(), defaultRunTimeout)
				if err := r.ReconcileAll(ctx); err != nil {
					r.logger.Error("Periodic reconciliation failed", zap.Error(err))
				}
				cancel()
			case <-r.stopCh:
				r.logger.Info("Stopping periodic reconciliation")
				return
			}
		}
	}()
}

// Stop stops the periodic reconciliation
func (r *Reconciler) Stop() {
	r.stopOnce.Do(func() { close(r.stopCh) })
	r.wg.Wait()
}
