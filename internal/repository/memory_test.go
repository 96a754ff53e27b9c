package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fracshare/rwaledger/internal/domain"
)

func TestMemoryStore_AssetLifecycle(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	owner := domain.NewIdentity()

	first := &domain.Asset{Name: "Mill", OwnerID: owner, Status: domain.AssetPending, TotalTokens: 10, AvailableTokens: 10}
	second := &domain.Asset{Name: "Dock", OwnerID: owner, Status: domain.AssetApproved, TotalTokens: 20, AvailableTokens: 20}
	require.NoError(t, store.CreateAsset(ctx, first))
	require.NoError(t, store.CreateAsset(ctx, second))

	// Monotonic ids starting at 1.
	assert.Equal(t, uint64(1), first.ID)
	assert.Equal(t, uint64(2), second.ID)

	got, err := store.GetAsset(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "Mill", got.Name)

	// Returned records are private copies.
	got.Name = "mutated"
	again, err := store.GetAsset(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "Mill", again.Name)

	_, err = store.GetAsset(ctx, 99)
	require.Error(t, err)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))

	first.Name = "Grain Mill"
	require.NoError(t, store.UpdateAsset(ctx, first))
	got, err = store.GetAsset(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "Grain Mill", got.Name)

	err = store.UpdateAsset(ctx, &domain.Asset{ID: 99})
	require.Error(t, err)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))

	require.NoError(t, store.DeleteAsset(ctx, first.ID))
	err = store.DeleteAsset(ctx, first.ID)
	require.Error(t, err)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))

	// Deleted ids are never reused.
	third := &domain.Asset{Name: "Pier", OwnerID: owner}
	require.NoError(t, store.CreateAsset(ctx, third))
	assert.Equal(t, uint64(3), third.ID)
}

func TestMemoryStore_ListAssets_FiltersAndOrder(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	alice := domain.NewIdentity()
	bob := domain.NewIdentity()

	seed := []*domain.Asset{
		{Name: "A", OwnerID: alice, Status: domain.AssetPending, Category: "real-estate"},
		{Name: "B", OwnerID: bob, Status: domain.AssetApproved, Category: "art"},
		{Name: "C", OwnerID: alice, Status: domain.AssetApproved, Category: "real-estate"},
	}
	for _, a := range seed {
		require.NoError(t, store.CreateAsset(ctx, a))
	}

	all, err := store.ListAssets(ctx, nil)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"A", "B", "C"}, []string{all[0].Name, all[1].Name, all[2].Name})

	approved := domain.AssetApproved
	byStatus, err := store.ListAssets(ctx, &AssetFilter{Status: &approved})
	require.NoError(t, err)
	assert.Len(t, byStatus, 2)

	category := "real-estate"
	byBoth, err := store.ListAssets(ctx, &AssetFilter{OwnerID: &alice, Category: &category, Status: &approved})
	require.NoError(t, err)
	require.Len(t, byBoth, 1)
	assert.Equal(t, "C", byBoth[0].Name)
}

func TestMemoryStore_TradeFilters(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	alice := domain.NewIdentity()
	bob := domain.NewIdentity()
	carol := domain.NewIdentity()

	seed := []*domain.Trade{
		{BuyerID: bob, SellerID: alice, TokenID: 1, AssetID: 1, Status: domain.TradePending},
		{BuyerID: carol, SellerID: alice, TokenID: 2, AssetID: 1, Status: domain.TradeCompleted},
		{BuyerID: alice, SellerID: bob, TokenID: 3, AssetID: 2, Status: domain.TradePending},
	}
	for _, tr := range seed {
		require.NoError(t, store.CreateTrade(ctx, tr))
	}

	// PartyID matches either side.
	byParty, err := store.ListTrades(ctx, &TradeFilter{PartyID: &alice})
	require.NoError(t, err)
	assert.Len(t, byParty, 3)

	byParty, err = store.ListTrades(ctx, &TradeFilter{PartyID: &carol})
	require.NoError(t, err)
	require.Len(t, byParty, 1)
	assert.Equal(t, uint64(2), byParty[0].TokenID)

	assetID := uint64(1)
	pending := domain.TradePending
	combined, err := store.ListTrades(ctx, &TradeFilter{AssetID: &assetID, Status: &pending})
	require.NoError(t, err)
	require.Len(t, combined, 1)
	assert.Equal(t, uint64(1), combined[0].TokenID)
}

func TestMemoryStore_Users(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	id := domain.NewIdentity()

	user := &domain.User{ID: id, Username: "alice", Email: "alice@example.com"}
	require.NoError(t, store.CreateUser(ctx, user))

	err := store.CreateUser(ctx, &domain.User{ID: id, Username: "alice2"})
	require.Error(t, err)
	assert.Equal(t, domain.KindAlreadyExists, domain.KindOf(err))

	_, err = store.GetUser(ctx, domain.NewIdentity())
	require.Error(t, err)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))

	// Profile copies are isolated from the caller's pointer.
	bio := "original"
	user.Profile = &domain.Profile{Bio: &bio}
	require.NoError(t, store.UpdateUser(ctx, user))
	bio = "mutated"

	got, err := store.GetUser(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, got.Profile)
	require.NotNil(t, got.Profile.Bio)
	assert.Equal(t, "original", *got.Profile.Bio)

	second := &domain.User{ID: domain.NewIdentity(), Username: "bob", Email: "bob@example.com"}
	require.NoError(t, store.CreateUser(ctx, second))

	all, err := store.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "alice", all[0].Username)
	assert.Equal(t, "bob", all[1].Username)
}

func TestMemoryStore_NotificationFilter(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	alice := domain.NewIdentity()
	bob := domain.NewIdentity()

	seed := []*domain.Notification{
		{UserID: alice, Kind: domain.NotifyTrade, Message: "one"},
		{UserID: bob, Kind: domain.NotifyKYC, Message: "two"},
		{UserID: alice, Kind: domain.NotifyAdmin, Message: "three"},
	}
	for _, n := range seed {
		require.NoError(t, store.CreateNotification(ctx, n))
	}

	mine, err := store.ListNotifications(ctx, &NotificationFilter{UserID: &alice})
	require.NoError(t, err)
	require.Len(t, mine, 2)

	mine[0].Read = true
	require.NoError(t, store.UpdateNotification(ctx, mine[0]))

	unread, err := store.ListNotifications(ctx, &NotificationFilter{UserID: &alice, UnreadOnly: true})
	require.NoError(t, err)
	require.Len(t, unread, 1)
	assert.Equal(t, "three", unread[0].Message)
}
