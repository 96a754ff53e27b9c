package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/fracshare/rwaledger/internal/config"
	"github.com/fracshare/rwaledger/internal/domain"
	"github.com/fracshare/rwaledger/internal/manager"
	"github.com/fracshare/rwaledger/internal/repository"
	"github.com/fracshare/rwaledger/internal/server"
)

// Service wires the ledger components together and manages the HTTP server
// lifecycle.
//
// Initialization order:
//  1. Arena store
//  2. Notification sink
//  3. User manager (the authorization capability)
//  4. Portfolio index
//  5. Ledger managers (asset registry, token ledger, trade engine)
//  6. HTTP server
type Service struct {
	cfg    *config.Config
	logger zerolog.Logger
	http   *http.Server
}

// New creates a new Service instance with the given configuration and logger.
func New(cfg *config.Config, logger zerolog.Logger) (*Service, error) {
	admins, err := cfg.AdminIdentities()
	if err != nil {
		return nil, err
	}

	store := repository.NewMemoryStore()
	clock := domain.Clock(domain.SystemClock)

	notifier := manager.NewNotifier(store, clock, logger)
	users := manager.NewUserManager(store, notifier, clock, admins)
	portfolios := manager.NewPortfolioManager(store, logger)
	assets := manager.NewAssetManager(store, users, notifier, clock)
	tokens := manager.NewTokenManager(store, users, assets, notifier, portfolios, clock)
	trades := manager.NewTradeManager(store, users, tokens, notifier, clock)
	notifications := manager.NewNotificationManager(store, users)
	stats := manager.NewStatsManager(store)

	limiter := rate.NewLimiter(rate.Limit(cfg.RateLimit.RequestsPerSecond), cfg.RateLimit.Burst)
	srv := server.New(users, assets, tokens, trades, notifications, portfolios, stats, store, logger, limiter)

	return &Service{
		cfg:    cfg,
		logger: logger,
		http: &http.Server{
			Addr:         fmt.Sprintf(":%d", cfg.Server.HTTPPort),
			Handler:      srv.Router(),
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
		},
	}, nil
}

// Start runs the HTTP server until the context is cancelled, then shuts down
// gracefully.
func (s *Service) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().
			Str("addr", s.http.Addr).
			Str("environment", s.cfg.Service.Env).
			Msg("HTTP server listening")
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	s.logger.Info().Msg("HTTP server stopped")
	return nil
}
