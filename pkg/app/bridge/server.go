// Package bridge implements app.Runner for the bridge service process.
package bridge

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	apphttp "github.com/chainsafe/icp-token/pkg/app/http"
	"github.com/chainsafe/icp-token/pkg/auth"
	"github.com/chainsafe/icp-token/pkg/bridge/service"
	"github.com/chainsafe/icp-token/pkg/bridgestore"
	"github.com/chainsafe/icp-token/pkg/chain"
	"github.com/chainsafe/icp-token/pkg/config"
	"github.com/chainsafe/icp-token/pkg/outbox"
	"github.com/chainsafe/icp-token/pkg/pgutil"
	"github.com/chainsafe/icp-token/pkg/reconciler"
)

// Server holds cfg to init the bridge server.
type Server struct {
	cfg *config.Config
}

// NewServer initializes new bridge server.
func NewServer(cfg *config.Config) *Server {
	return &Server{cfg: cfg}
}

func (s *Server) Run() error {
	if s.cfg == nil {
		return fmt.Errorf("bridge server config is nil")
	}
	cfg := s.cfg

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := config.NewLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("setup logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	self, err := chain.ParseName(cfg.Bridge.Self)
	if err != nil {
		return fmt.Errorf("invalid bridge account: %w", err)
	}

	logger.Info("Starting bridge server",
		zap.String("self", self.String()),
		zap.String("host", cfg.Server.Host),
		zap.Int("port", cfg.Server.Port),
		zap.String("database_driver", cfg.Database.Driver),
	)

	store, closeStore, err := s.openStore(ctx, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	secret, err := cfg.Auth.Secret()
	if err != nil {
		return err
	}
	validator := auth.NewValidator(secret, cfg.Auth.Issuer)

	bridgeService := service.NewLog(service.NewService(store, service.Config{
		Self:               self,
		CallbackPermission: cfg.Bridge.CallbackPermission,
		MemoMaxBytes:       cfg.Bridge.MemoMaxBytes,
	}, logger), logger)

	rec := reconciler.New(bridgeService, logger)
	s.runInitialReconcile(ctx, rec, logger)
	stopReconcile := s.startPeriodicReconcile(rec, logger)
	defer stopReconcile()

	stopRelayer := s.startRelayer(ctx, store, logger)
	// stopped explicitly after ServeAndWait returns, the defer is a safety net
	defer stopRelayer()

	metricsErr := s.startMetrics(ctx, logger)

	router := NewRouter(&cfg.Server, bridgeService, validator, logger)
	err = apphttp.ServeAndWait(ctx, "api", router, logger, &cfg.Server)

	stop()
	stopRelayer()
	stopReconcile()
	return errors.Join(err, <-metricsErr)
}

func (s *Server) openStore(ctx context.Context, logger *zap.Logger) (bridgestore.Store, func(), error) {
	if s.cfg.Database.Driver == config.DriverMemory {
		logger.Warn("Using in-memory store, state is lost on restart")
		return bridgestore.NewMemoryStore(), func() {}, nil
	}

	db, err := pgutil.ConnectDB(ctx, &s.cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("connect db: %w", err)
	}
	logger.Info("Connected to database",
		zap.String("host", s.cfg.Database.Host),
		zap.String("database", s.cfg.Database.Database),
	)
	return bridgestore.NewStore(db), func() { _ = db.Close() }, nil
}

func (s *Server) startRelayer(ctx context.Context, store bridgestore.Store, logger *zap.Logger) func() {
	if !s.cfg.Outbox.Enabled {
		logger.Info("Outbox relayer disabled")
		return func() {}
	}

	sink := outbox.NewHTTPSink(s.cfg.Outbox.Endpoints, s.cfg.Outbox.RequestTimeout, logger)
	relayer := outbox.NewRelayer(&s.cfg.Outbox, store, sink, logger)
	relayer.Start(ctx)
	return relayer.Stop
}

func (s *Server) runInitialReconcile(ctx context.Context, rec *reconciler.Reconciler, logger *zap.Logger) {
	timeout := s.cfg.Reconciliation.InitialTimeout
	if timeout <= 0 {
		return
	}

	logger.Info("Running initial ledger reconciliation", zap.Duration("timeout", timeout))

	startupCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := rec.ReconcileAll(startupCtx); err != nil {
		logger.Warn("Initial reconciliation failed (will retry periodically)", zap.Error(err))
		return
	}

	logger.Info("Initial ledger reconciliation completed")
}

func (s *Server) startPeriodicReconcile(rec *reconciler.Reconciler, logger *zap.Logger) func() {
	if s.cfg.Reconciliation.Interval <= 0 {
		return func() {}
	}

	logger.Info("Starting periodic reconciliation", zap.Duration("interval", s.cfg.Reconciliation.Interval))
	rec.StartPeriodicReconciliation(s.cfg.Reconciliation.Interval)
	return rec.Stop
}

// startMetrics serves the prometheus handler until ctx is done. The returned
// channel yields the result of the metrics server once it stops.
func (s *Server) startMetrics(ctx context.Context, logger *zap.Logger) <-chan error {
	errCh := make(chan error, 1)
	if !s.cfg.Monitoring.Enabled {
		errCh <- nil
		return errCh
	}

	go func() {
		errCh <- apphttp.ServeAndWait(ctx, "metrics", promhttp.Handler(), logger, s.cfg.MetricsServer())
	}()
	return errCh
}

// NewRouter builds the HTTP handler of the bridge API.
func NewRouter(cfg *config.ServerConfig, svc service.Service, validator auth.TokenValidator, logger *zap.Logger) chi.Router {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	if cfg.RequestTimeout > 0 {
		r.Use(middleware.Timeout(cfg.RequestTimeout))
	}

	// Health check
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	service.RegisterRoutes(r, svc, auth.Middleware(validator, logger), logger)
	return r
}
