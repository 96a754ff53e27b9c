package manager

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fracshare/rwaledger/internal/domain"
)

func TestNotificationManager_Access(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	// KYC approvals in newTestEnv produced one notification each for alice
	// and bob.
	notes, err := env.notifications.ListForUser(ctx, env.alice, false)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, domain.NotifyKYC, notes[0].Kind)
	assert.False(t, notes[0].Read)

	// Only the recipient or an admin may read a single notification.
	_, err = env.notifications.GetNotification(ctx, env.bob, notes[0].ID)
	require.Error(t, err)
	assert.Equal(t, domain.KindUnauthorized, domain.KindOf(err))

	got, err := env.notifications.GetNotification(ctx, env.admin, notes[0].ID)
	require.NoError(t, err)
	assert.Equal(t, env.alice, got.UserID)

	_, err = env.notifications.GetNotification(ctx, env.alice, 9999)
	require.Error(t, err)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
}

func TestNotificationManager_MarkRead(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	notes, err := env.notifications.ListForUser(ctx, env.alice, false)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	id := notes[0].ID

	_, err = env.notifications.MarkRead(ctx, env.bob, id)
	require.Error(t, err)
	assert.Equal(t, domain.KindUnauthorized, domain.KindOf(err))

	acked, err := env.notifications.MarkRead(ctx, env.alice, id)
	require.NoError(t, err)
	assert.True(t, acked.Read)

	unread, err := env.notifications.ListForUser(ctx, env.alice, true)
	require.NoError(t, err)
	assert.Empty(t, unread)
}

func TestNotificationManager_ListAll(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.notifications.ListAll(ctx, env.alice)
	require.Error(t, err)
	assert.Equal(t, domain.KindUnauthorized, domain.KindOf(err))

	all, err := env.notifications.ListAll(ctx, env.admin)
	require.NoError(t, err)
	assert.Len(t, all, 2) // two KYC approvals in the fixture
}
