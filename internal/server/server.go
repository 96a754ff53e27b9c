package server

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/fracshare/rwaledger/internal/domain"
	"github.com/fracshare/rwaledger/internal/manager"
	"github.com/fracshare/rwaledger/internal/repository"
)

// Server exposes the ledger components over HTTP/JSON. It is a thin boundary
// layer: it resolves the caller identity, decodes requests into plain
// records, and maps ledger error kinds to status codes. All business rules
// live in the managers.
type Server struct {
	users         *manager.UserManager
	assets        *manager.AssetManager
	tokens        *manager.TokenManager
	trades        *manager.TradeManager
	notifications *manager.NotificationManager
	portfolios    *manager.PortfolioManager
	stats         *manager.StatsManager
	repo          repository.Repository
	logger        zerolog.Logger
	limiter       *rate.Limiter
}

// New creates a Server over the given managers.
func New(
	users *manager.UserManager,
	assets *manager.AssetManager,
	tokens *manager.TokenManager,
	trades *manager.TradeManager,
	notifications *manager.NotificationManager,
	portfolios *manager.PortfolioManager,
	stats *manager.StatsManager,
	repo repository.Repository,
	logger zerolog.Logger,
	limiter *rate.Limiter,
) *Server {
	return &Server{
		users:         users,
		assets:        assets,
		tokens:        tokens,
		trades:        trades,
		notifications: notifications,
		portfolios:    portfolios,
		stats:         stats,
		repo:          repo,
		logger:        logger.With().Str("component", "http").Logger(),
		limiter:       limiter,
	}
}

// Router builds the HTTP routing table.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(s.logger))
	r.Use(rateLimit(s.limiter))
	r.Use(withCaller)
	r.Use(executionGate)

	r.Route("/users", func(r chi.Router) {
		r.Post("/", s.handleRegisterUser)
		r.Get("/", s.handleListUsers)
		r.Patch("/profile", s.handleUpdateProfile)
		r.Get("/{id}", s.handleGetUser)
		r.Put("/{id}/kyc", s.handleSetKYCStatus)
		r.Put("/{id}/role", s.handleSetRole)
	})

	r.Route("/assets", func(r chi.Router) {
		r.Post("/", s.handleCreateAsset)
		r.Get("/", s.handleListAssets)
		r.Get("/{id}", s.handleGetAsset)
		r.Patch("/{id}", s.handleUpdateAsset)
		r.Delete("/{id}", s.handleDeleteAsset)
		r.Post("/{id}/approve", s.handleApproveAsset)
		r.Post("/{id}/reject", s.handleRejectAsset)
	})

	r.Route("/tokens", func(r chi.Router) {
		r.Post("/", s.handleMintToken)
		r.Get("/", s.handleListTokens)
		r.Get("/{id}", s.handleGetToken)
		r.Post("/{id}/transfer", s.handleTransferToken)
	})

	r.Route("/trades", func(r chi.Router) {
		r.Post("/", s.handleCreateTrade)
		r.Get("/", s.handleListTrades)
		r.Get("/{id}", s.handleGetTrade)
		r.Post("/{id}/status", s.handleUpdateTradeStatus)
	})

	r.Route("/notifications", func(r chi.Router) {
		r.Get("/", s.handleListNotifications)
		r.Get("/all", s.handleListAllNotifications)
		r.Get("/{id}", s.handleGetNotification)
		r.Post("/{id}/read", s.handleMarkNotificationRead)
	})

	r.Route("/portfolios", func(r chi.Router) {
		r.Get("/", s.handleListPortfolios)
		r.Get("/{user}", s.handleGetPortfolio)
	})

	r.Get("/stats", s.handleStats)
	r.Get("/healthz", s.handleHealth)

	return r
}

// pathParam returns a raw route parameter.
func pathParam(r *http.Request, name string) string {
	return chi.URLParam(r, name)
}

// pathID parses the numeric {id} route parameter.
func pathID(r *http.Request, name string) (uint64, error) {
	return parseUint(chi.URLParam(r, name), name)
}

func parseUint(raw, name string) (uint64, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, domain.Errorf(domain.KindInvalidArgument, "invalid %s: %q", name, raw)
	}
	return id, nil
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	snapshot, err := s.stats.Snapshot(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snapshot)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.repo.Ping(r.Context()); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unhealthy"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
