package manager

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/fracshare/rwaledger/internal/domain"
	"github.com/fracshare/rwaledger/internal/repository"
)

// StatsManager computes aggregate marketplace figures from the ledger arenas.
// Reads are public.
type StatsManager struct {
	repo repository.Repository
}

// NewStatsManager creates a new StatsManager instance.
func NewStatsManager(repo repository.Repository) *StatsManager {
	return &StatsManager{repo: repo}
}

// Snapshot returns the current marketplace aggregates. Value locked counts
// assets that passed review; average APY is over the same set.
func (m *StatsManager) Snapshot(ctx context.Context) (*domain.Stats, error) {
	assets, err := m.repo.ListAssets(ctx, nil)
	if err != nil {
		return nil, err
	}
	tokens, err := m.repo.ListTokens(ctx, nil)
	if err != nil {
		return nil, err
	}
	trades, err := m.repo.ListTrades(ctx, nil)
	if err != nil {
		return nil, err
	}

	stats := &domain.Stats{
		TotalAssets: len(assets),
		TotalValue:  decimal.Zero,
		AverageAPY:  decimal.Zero,
	}

	apySum := decimal.Zero
	for _, a := range assets {
		if a.Status == domain.AssetPending || a.Status == domain.AssetRejected {
			continue
		}
		stats.ApprovedAssets++
		stats.TotalValue = stats.TotalValue.Add(decimal.NewFromUint64(a.TotalValue))
		apySum = apySum.Add(decimal.NewFromFloat(a.APY))
	}
	if stats.ApprovedAssets > 0 {
		stats.AverageAPY = apySum.Div(decimal.NewFromInt(int64(stats.ApprovedAssets))).Round(4)
	}

	for _, t := range tokens {
		stats.TokensIssued += t.Amount
	}

	for _, t := range trades {
		switch t.Status {
		case domain.TradePending:
			stats.PendingTrades++
		case domain.TradeCompleted:
			stats.CompletedTrades++
		case domain.TradeCancelled:
			stats.CancelledTrades++
		}
	}

	return stats, nil
}
