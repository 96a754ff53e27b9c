package repository

import (
	"context"

	"github.com/fracshare/rwaledger/internal/domain"
)

// Repository defines the data access surface for all ledger entities. Each
// entity lives in an arena exclusively owned by its component: managers never
// reach into another entity's records except through the owning manager's
// operations.
//
// Implementations are not required to be safe for concurrent use; the service
// layer serializes operations (run-to-completion per call).
type Repository interface {
	// Asset operations
	CreateAsset(ctx context.Context, asset *domain.Asset) error
	GetAsset(ctx context.Context, id uint64) (*domain.Asset, error)
	UpdateAsset(ctx context.Context, asset *domain.Asset) error
	DeleteAsset(ctx context.Context, id uint64) error
	ListAssets(ctx context.Context, filter *AssetFilter) ([]*domain.Asset, error)

	// Token lot operations
	CreateToken(ctx context.Context, token *domain.Token) error
	GetToken(ctx context.Context, id uint64) (*domain.Token, error)
	UpdateToken(ctx context.Context, token *domain.Token) error
	ListTokens(ctx context.Context, filter *TokenFilter) ([]*domain.Token, error)

	// Trade operations
	CreateTrade(ctx context.Context, trade *domain.Trade) error
	GetTrade(ctx context.Context, id uint64) (*domain.Trade, error)
	UpdateTrade(ctx context.Context, trade *domain.Trade) error
	ListTrades(ctx context.Context, filter *TradeFilter) ([]*domain.Trade, error)

	// User operations
	CreateUser(ctx context.Context, user *domain.User) error
	GetUser(ctx context.Context, id domain.Identity) (*domain.User, error)
	UpdateUser(ctx context.Context, user *domain.User) error
	ListUsers(ctx context.Context) ([]*domain.User, error)

	// Notification operations
	CreateNotification(ctx context.Context, n *domain.Notification) error
	GetNotification(ctx context.Context, id uint64) (*domain.Notification, error)
	UpdateNotification(ctx context.Context, n *domain.Notification) error
	ListNotifications(ctx context.Context, filter *NotificationFilter) ([]*domain.Notification, error)

	// Health check
	Ping(ctx context.Context) error
}

// AssetFilter defines filtering options for asset queries.
type AssetFilter struct {
	OwnerID  *domain.Identity    // Filter by owning identity
	Status   *domain.AssetStatus // Filter by lifecycle status
	Category *string             // Filter by category
}

// TokenFilter defines filtering options for token lot queries.
type TokenFilter struct {
	OwnerID *domain.Identity    // Filter by current holder
	AssetID *uint64             // Filter by backing asset
	Status  *domain.TokenStatus // Filter by lot status
}

// TradeFilter defines filtering options for trade queries.
type TradeFilter struct {
	PartyID *domain.Identity    // Matches buyer or seller
	AssetID *uint64             // Filter by referenced asset
	TokenID *uint64             // Filter by referenced lot
	Status  *domain.TradeStatus // Filter by lifecycle status
}

// NotificationFilter defines filtering options for notification queries.
type NotificationFilter struct {
	UserID     *domain.Identity // Filter by recipient
	UnreadOnly bool             // Only return unread notifications
}
