package repository

import (
	"context"

	"github.com/samber/lo"

	"github.com/fracshare/rwaledger/internal/domain"
)

// CreateTrade stores a new trade and assigns its id in place.
func (s *MemoryStore) CreateTrade(ctx context.Context, trade *domain.Trade) error {
	trade.ID = s.trades.allocID()
	s.trades.put(trade.ID, *trade)
	return nil
}

// GetTrade returns the trade with the given id.
func (s *MemoryStore) GetTrade(ctx context.Context, id uint64) (*domain.Trade, error) {
	t, ok := s.trades.get(id)
	if !ok {
		return nil, domain.Errorf(domain.KindNotFound, "trade not found: %d", id)
	}
	return &t, nil
}

// UpdateTrade overwrites an existing trade record.
func (s *MemoryStore) UpdateTrade(ctx context.Context, trade *domain.Trade) error {
	if !s.trades.replace(trade.ID, *trade) {
		return domain.Errorf(domain.KindNotFound, "trade not found: %d", trade.ID)
	}
	return nil
}

// ListTrades returns trades in insertion order, optionally filtered.
func (s *MemoryStore) ListTrades(ctx context.Context, filter *TradeFilter) ([]*domain.Trade, error) {
	matched := lo.Filter(s.trades.all(), func(t domain.Trade, _ int) bool {
		if filter == nil {
			return true
		}
		if filter.PartyID != nil && !t.Party(*filter.PartyID) {
			return false
		}
		if filter.AssetID != nil && t.AssetID != *filter.AssetID {
			return false
		}
		if filter.TokenID != nil && t.TokenID != *filter.TokenID {
			return false
		}
		if filter.Status != nil && t.Status != *filter.Status {
			return false
		}
		return true
	})
	return lo.Map(matched, func(t domain.Trade, _ int) *domain.Trade {
		out := t
		return &out
	}), nil
}
