package repository

import (
	"context"

	"github.com/samber/lo"

	"github.com/fracshare/rwaledger/internal/domain"
)

// CreateToken stores a new lot and assigns its id in place.
func (s *MemoryStore) CreateToken(ctx context.Context, token *domain.Token) error {
	token.ID = s.tokens.allocID()
	s.tokens.put(token.ID, *token)
	return nil
}

// GetToken returns the lot with the given id.
func (s *MemoryStore) GetToken(ctx context.Context, id uint64) (*domain.Token, error) {
	t, ok := s.tokens.get(id)
	if !ok {
		return nil, domain.Errorf(domain.KindNotFound, "token not found: %d", id)
	}
	return &t, nil
}

// UpdateToken overwrites an existing lot record.
func (s *MemoryStore) UpdateToken(ctx context.Context, token *domain.Token) error {
	if !s.tokens.replace(token.ID, *token) {
		return domain.Errorf(domain.KindNotFound, "token not found: %d", token.ID)
	}
	return nil
}

// ListTokens returns lots in insertion order, optionally filtered.
func (s *MemoryStore) ListTokens(ctx context.Context, filter *TokenFilter) ([]*domain.Token, error) {
	matched := lo.Filter(s.tokens.all(), func(t domain.Token, _ int) bool {
		if filter == nil {
			return true
		}
		if filter.OwnerID != nil && t.OwnerID != *filter.OwnerID {
			return false
		}
		if filter.AssetID != nil && t.AssetID != *filter.AssetID {
			return false
		}
		if filter.Status != nil && t.Status != *filter.Status {
			return false
		}
		return true
	})
	return lo.Map(matched, func(t domain.Token, _ int) *domain.Token {
		out := t
		return &out
	}), nil
}
