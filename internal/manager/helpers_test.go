package manager

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/fracshare/rwaledger/internal/domain"
	"github.com/fracshare/rwaledger/internal/repository"
)

// testEnv wires every manager over a shared in-memory store with a fixed
// clock, one bootstrap admin, and two KYC-approved participants.
type testEnv struct {
	store         *repository.MemoryStore
	users         *UserManager
	assets        *AssetManager
	tokens        *TokenManager
	trades        *TradeManager
	notifications *NotificationManager
	portfolios    *PortfolioManager
	stats         *StatsManager

	admin domain.Identity
	alice domain.Identity
	bob   domain.Identity
	mallo domain.Identity // registered, KYC pending
	now   time.Time
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	env := &testEnv{
		store: repository.NewMemoryStore(),
		admin: domain.NewIdentity(),
		alice: domain.NewIdentity(),
		bob:   domain.NewIdentity(),
		mallo: domain.NewIdentity(),
		now:   time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
	clock := domain.Clock(func() time.Time { return env.now })
	logger := zerolog.Nop()

	notifier := NewNotifier(env.store, clock, logger)
	env.users = NewUserManager(env.store, notifier, clock, []domain.Identity{env.admin})
	env.portfolios = NewPortfolioManager(env.store, logger)
	env.assets = NewAssetManager(env.store, env.users, notifier, clock)
	env.tokens = NewTokenManager(env.store, env.users, env.assets, notifier, env.portfolios, clock)
	env.trades = NewTradeManager(env.store, env.users, env.tokens, notifier, clock)
	env.notifications = NewNotificationManager(env.store, env.users)
	env.stats = NewStatsManager(env.store)

	_, err := env.users.Register(ctx, env.admin, "admin", "admin@example.com", "wallet-admin")
	require.NoError(t, err)
	for name, id := range map[string]domain.Identity{"alice": env.alice, "bob": env.bob, "mallory": env.mallo} {
		_, err := env.users.Register(ctx, id, name, name+"@example.com", "wallet-"+name)
		require.NoError(t, err)
	}
	for _, id := range []domain.Identity{env.alice, env.bob} {
		_, err := env.users.SetKYCStatus(ctx, env.admin, id, domain.KYCApproved)
		require.NoError(t, err)
	}
	return env
}

// createApprovedAsset creates an asset owned by alice and approves it.
func (env *testEnv) createApprovedAsset(t *testing.T, totalTokens uint64) *domain.Asset {
	t.Helper()
	ctx := context.Background()

	asset := &domain.Asset{
		Name:        "Harbor View Apartments",
		Description: "12-unit residential building",
		Category:    "real-estate",
		Location:    "Lisbon",
		TotalValue:  1_000_000,
		TokenPrice:  100,
		TotalTokens: totalTokens,
		APY:         7.5,
	}
	require.NoError(t, env.assets.CreateAsset(ctx, env.alice, asset))

	approved, err := env.assets.ApproveAsset(ctx, env.admin, asset.ID)
	require.NoError(t, err)
	return approved
}

// mintLot mints a lot of the given size for alice against the asset.
func (env *testEnv) mintLot(t *testing.T, assetID, amount uint64) *domain.Token {
	t.Helper()
	token, err := env.tokens.Mint(context.Background(), env.alice, assetID, env.alice, amount, 100)
	require.NoError(t, err)
	return token
}
