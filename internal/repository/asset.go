package repository

import (
	"context"

	"github.com/samber/lo"

	"github.com/fracshare/rwaledger/internal/domain"
)

// cloneAsset deep-copies an asset so arena state can never be mutated through
// a returned record.
func cloneAsset(a domain.Asset) domain.Asset {
	out := a
	out.Images = append([]string(nil), a.Images...)
	out.Documents = append([]string(nil), a.Documents...)
	out.LaunchDate = clonePtr(a.LaunchDate)
	out.FundingDeadline = clonePtr(a.FundingDeadline)
	out.MonthlyIncome = clonePtr(a.MonthlyIncome)
	out.RiskRating = clonePtr(a.RiskRating)
	if a.KeyMetrics != nil {
		km := domain.KeyMetrics{
			CapRate:         clonePtr(a.KeyMetrics.CapRate),
			OccupancyRate:   clonePtr(a.KeyMetrics.OccupancyRate),
			LocationScore:   clonePtr(a.KeyMetrics.LocationScore),
			LiquidityRating: clonePtr(a.KeyMetrics.LiquidityRating),
		}
		out.KeyMetrics = &km
	}
	return out
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// CreateAsset stores a new asset and assigns its id in place.
func (s *MemoryStore) CreateAsset(ctx context.Context, asset *domain.Asset) error {
	asset.ID = s.assets.allocID()
	s.assets.put(asset.ID, cloneAsset(*asset))
	return nil
}

// GetAsset returns the asset with the given id.
func (s *MemoryStore) GetAsset(ctx context.Context, id uint64) (*domain.Asset, error) {
	a, ok := s.assets.get(id)
	if !ok {
		return nil, domain.Errorf(domain.KindNotFound, "asset not found: %d", id)
	}
	out := cloneAsset(a)
	return &out, nil
}

// UpdateAsset overwrites an existing asset record.
func (s *MemoryStore) UpdateAsset(ctx context.Context, asset *domain.Asset) error {
	if !s.assets.replace(asset.ID, cloneAsset(*asset)) {
		return domain.Errorf(domain.KindNotFound, "asset not found: %d", asset.ID)
	}
	return nil
}

// DeleteAsset removes an asset record.
func (s *MemoryStore) DeleteAsset(ctx context.Context, id uint64) error {
	if !s.assets.remove(id) {
		return domain.Errorf(domain.KindNotFound, "asset not found: %d", id)
	}
	return nil
}

// ListAssets returns assets in insertion order, optionally filtered.
func (s *MemoryStore) ListAssets(ctx context.Context, filter *AssetFilter) ([]*domain.Asset, error) {
	matched := lo.Filter(s.assets.all(), func(a domain.Asset, _ int) bool {
		if filter == nil {
			return true
		}
		if filter.OwnerID != nil && a.OwnerID != *filter.OwnerID {
			return false
		}
		if filter.Status != nil && a.Status != *filter.Status {
			return false
		}
		if filter.Category != nil && a.Category != *filter.Category {
			return false
		}
		return true
	})
	return lo.Map(matched, func(a domain.Asset, _ int) *domain.Asset {
		out := cloneAsset(a)
		return &out
	}), nil
}
