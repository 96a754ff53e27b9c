package manager

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/fracshare/rwaledger/internal/domain"
	"github.com/fracshare/rwaledger/internal/repository"
)

// Notifier records lifecycle notifications for participants. Emission is
// fire-and-forget: a failure is logged and never fails the originating ledger
// operation.
type Notifier interface {
	Notify(ctx context.Context, recipient domain.Identity, kind domain.NotificationKind, message string)
}

// PortfolioIndex is the downstream denormalized per-identity view of held
// lots. Reindexing happens after ledger mutations and, like notification
// emission, never fails the originating operation.
type PortfolioIndex interface {
	Reindex(ctx context.Context, ids ...domain.Identity)
}

// notificationSink is the in-process Notifier backed by the notification
// arena.
type notificationSink struct {
	repo   repository.Repository
	clock  domain.Clock
	logger zerolog.Logger
}

// NewNotifier creates the in-process notification sink.
func NewNotifier(repo repository.Repository, clock domain.Clock, logger zerolog.Logger) Notifier {
	return &notificationSink{
		repo:   repo,
		clock:  clock,
		logger: logger.With().Str("component", "notifier").Logger(),
	}
}

func (n *notificationSink) Notify(ctx context.Context, recipient domain.Identity, kind domain.NotificationKind, message string) {
	record := &domain.Notification{
		UserID:    recipient,
		Kind:      kind,
		Message:   message,
		CreatedAt: n.clock(),
	}
	if err := n.repo.CreateNotification(ctx, record); err != nil {
		n.logger.Error().
			Err(err).
			Str("recipient", recipient.String()).
			Str("kind", string(kind)).
			Msg("Failed to record notification")
		return
	}
	n.logger.Debug().
		Uint64("notification_id", record.ID).
		Str("recipient", recipient.String()).
		Str("kind", string(kind)).
		Msg("Recorded notification")
}
