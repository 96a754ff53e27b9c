package manager

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/fracshare/rwaledger/internal/domain"
	"github.com/fracshare/rwaledger/internal/repository"
)

// PortfolioManager maintains the denormalized per-identity view of held lots.
// It is rebuilt downstream of ledger mutations and is never authoritative;
// a reindex failure is logged and never fails the originating operation.
type PortfolioManager struct {
	repo   repository.Repository
	logger zerolog.Logger

	snapshots map[domain.Identity]domain.Portfolio
	order     []domain.Identity
}

// NewPortfolioManager creates a new PortfolioManager instance.
func NewPortfolioManager(repo repository.Repository, logger zerolog.Logger) *PortfolioManager {
	return &PortfolioManager{
		repo:      repo,
		logger:    logger.With().Str("component", "portfolio").Logger(),
		snapshots: make(map[domain.Identity]domain.Portfolio),
	}
}

// Reindex implements PortfolioIndex: it rebuilds the snapshot for each given
// identity from the token ledger.
func (m *PortfolioManager) Reindex(ctx context.Context, ids ...domain.Identity) {
	for _, id := range ids {
		if _, err := m.rebuild(ctx, id); err != nil {
			m.logger.Error().
				Err(err).
				Str("user_id", id.String()).
				Msg("Failed to reindex portfolio")
		}
	}
}

func (m *PortfolioManager) rebuild(ctx context.Context, id domain.Identity) (*domain.Portfolio, error) {
	lots, err := m.repo.ListTokens(ctx, &repository.TokenFilter{OwnerID: &id})
	if err != nil {
		return nil, err
	}

	p := domain.Portfolio{
		UserID:   id,
		TokenIDs: make([]uint64, 0, len(lots)),
		Value:    decimal.Zero,
	}
	for _, lot := range lots {
		p.TokenIDs = append(p.TokenIDs, lot.ID)
		p.AssetIDs = append(p.AssetIDs, lot.AssetID)
		lotValue := decimal.NewFromUint64(lot.Amount).Mul(decimal.NewFromUint64(lot.Price))
		p.Value = p.Value.Add(lotValue)
	}
	p.AssetIDs = lo.Uniq(p.AssetIDs)

	if _, ok := m.snapshots[id]; !ok {
		m.order = append(m.order, id)
	}
	m.snapshots[id] = p
	return &p, nil
}

// GetPortfolio returns the snapshot for an identity, building it on first
// access.
func (m *PortfolioManager) GetPortfolio(ctx context.Context, id domain.Identity) (*domain.Portfolio, error) {
	if p, ok := m.snapshots[id]; ok {
		out := p
		return &out, nil
	}
	return m.rebuild(ctx, id)
}

// ListPortfolios returns all snapshots in first-indexed order.
func (m *PortfolioManager) ListPortfolios(ctx context.Context) ([]*domain.Portfolio, error) {
	out := make([]*domain.Portfolio, 0, len(m.order))
	for _, id := range m.order {
		p := m.snapshots[id]
		out = append(out, &p)
	}
	return out, nil
}
