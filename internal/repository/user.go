package repository

import (
	"context"

	"github.com/fracshare/rwaledger/internal/domain"
)

func cloneUser(u domain.User) domain.User {
	out := u
	if u.Profile != nil {
		p := domain.Profile{
			Bio:    clonePtr(u.Profile.Bio),
			Avatar: clonePtr(u.Profile.Avatar),
		}
		out.Profile = &p
	}
	return out
}

// CreateUser stores a new user keyed by identity. Registering an identity
// twice is a conflict.
func (s *MemoryStore) CreateUser(ctx context.Context, user *domain.User) error {
	if _, ok := s.users[user.ID]; ok {
		return domain.Errorf(domain.KindAlreadyExists, "user already registered: %s", user.ID)
	}
	s.users[user.ID] = cloneUser(*user)
	s.userOrder = append(s.userOrder, user.ID)
	return nil
}

// GetUser returns the user with the given identity.
func (s *MemoryStore) GetUser(ctx context.Context, id domain.Identity) (*domain.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, domain.Errorf(domain.KindNotFound, "user not found: %s", id)
	}
	out := cloneUser(u)
	return &out, nil
}

// UpdateUser overwrites an existing user record.
func (s *MemoryStore) UpdateUser(ctx context.Context, user *domain.User) error {
	if _, ok := s.users[user.ID]; !ok {
		return domain.Errorf(domain.KindNotFound, "user not found: %s", user.ID)
	}
	s.users[user.ID] = cloneUser(*user)
	return nil
}

// ListUsers returns users in registration order.
func (s *MemoryStore) ListUsers(ctx context.Context) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(s.userOrder))
	for _, id := range s.userOrder {
		u := cloneUser(s.users[id])
		out = append(out, &u)
	}
	return out, nil
}
