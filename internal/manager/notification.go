package manager

import (
	"context"

	"github.com/fracshare/rwaledger/internal/domain"
	"github.com/fracshare/rwaledger/internal/repository"
)

// NotificationManager is the read/acknowledge surface over the notification
// arena. Recording happens through the Notifier; this manager lets recipients
// list and acknowledge what was recorded for them.
type NotificationManager struct {
	repo repository.Repository
	auth Authorizer
}

// NewNotificationManager creates a new NotificationManager instance.
func NewNotificationManager(repo repository.Repository, auth Authorizer) *NotificationManager {
	return &NotificationManager{repo: repo, auth: auth}
}

// GetNotification retrieves a notification. Only the recipient or an admin
// may read it.
func (m *NotificationManager) GetNotification(ctx context.Context, caller domain.Identity, id uint64) (*domain.Notification, error) {
	n, err := m.repo.GetNotification(ctx, id)
	if err != nil {
		return nil, err
	}
	allowed, err := m.auth.IsOwnerOrAdmin(ctx, caller, n.UserID)
	if err != nil {
		return nil, domain.Errorf(domain.KindInternal, "authorization check failed: %v", err)
	}
	if !allowed {
		return nil, domain.Errorf(domain.KindUnauthorized, "caller %s may not read notification %d", caller, id)
	}
	return n, nil
}

// ListForUser returns the caller's own notifications in creation order.
func (m *NotificationManager) ListForUser(ctx context.Context, caller domain.Identity, unreadOnly bool) ([]*domain.Notification, error) {
	return m.repo.ListNotifications(ctx, &repository.NotificationFilter{
		UserID:     &caller,
		UnreadOnly: unreadOnly,
	})
}

// ListAll returns every notification. Admin only.
func (m *NotificationManager) ListAll(ctx context.Context, caller domain.Identity) ([]*domain.Notification, error) {
	admin, err := m.auth.IsAdmin(ctx, caller)
	if err != nil {
		return nil, domain.Errorf(domain.KindInternal, "authorization check failed: %v", err)
	}
	if !admin {
		return nil, domain.Errorf(domain.KindUnauthorized, "listing all notifications requires the admin role")
	}
	return m.repo.ListNotifications(ctx, nil)
}

// MarkRead acknowledges a notification. Only the recipient or an admin may
// acknowledge it.
func (m *NotificationManager) MarkRead(ctx context.Context, caller domain.Identity, id uint64) (*domain.Notification, error) {
	n, err := m.repo.GetNotification(ctx, id)
	if err != nil {
		return nil, err
	}
	allowed, err := m.auth.IsOwnerOrAdmin(ctx, caller, n.UserID)
	if err != nil {
		return nil, domain.Errorf(domain.KindInternal, "authorization check failed: %v", err)
	}
	if !allowed {
		return nil, domain.Errorf(domain.KindUnauthorized, "caller %s may not acknowledge notification %d", caller, id)
	}

	n.Read = true
	if err := m.repo.UpdateNotification(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}
