package repository

import (
	"context"

	"github.com/samber/lo"

	"github.com/fracshare/rwaledger/internal/domain"
)

// CreateNotification stores a new notification and assigns its id in place.
func (s *MemoryStore) CreateNotification(ctx context.Context, n *domain.Notification) error {
	n.ID = s.notifications.allocID()
	s.notifications.put(n.ID, *n)
	return nil
}

// GetNotification returns the notification with the given id.
func (s *MemoryStore) GetNotification(ctx context.Context, id uint64) (*domain.Notification, error) {
	n, ok := s.notifications.get(id)
	if !ok {
		return nil, domain.Errorf(domain.KindNotFound, "notification not found: %d", id)
	}
	return &n, nil
}

// UpdateNotification overwrites an existing notification record.
func (s *MemoryStore) UpdateNotification(ctx context.Context, n *domain.Notification) error {
	if !s.notifications.replace(n.ID, *n) {
		return domain.Errorf(domain.KindNotFound, "notification not found: %d", n.ID)
	}
	return nil
}

// ListNotifications returns notifications in creation order, optionally
// filtered.
func (s *MemoryStore) ListNotifications(ctx context.Context, filter *NotificationFilter) ([]*domain.Notification, error) {
	matched := lo.Filter(s.notifications.all(), func(n domain.Notification, _ int) bool {
		if filter == nil {
			return true
		}
		if filter.UserID != nil && n.UserID != *filter.UserID {
			return false
		}
		if filter.UnreadOnly && n.Read {
			return false
		}
		return true
	})
	return lo.Map(matched, func(n domain.Notification, _ int) *domain.Notification {
		out := n
		return &out
	}), nil
}
