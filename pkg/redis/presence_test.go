package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPresence(t *testing.T) (*Presence, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewPresence(client), mr
}

func TestPresenceOnlineOffline(t *testing.T) {
	p, _ := newTestPresence(t)
	ctx := context.Background()

	require.NoError(t, p.SetOnline(ctx, 7, "alice"))

	online, err := p.IsOnline(ctx, 7)
	require.NoError(t, err)
	assert.True(t, online)

	users, err := p.OnlineUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, uint(7), users[0].UserID)
	assert.Equal(t, "alice", users[0].Username)

	require.NoError(t, p.SetOffline(ctx, 7))
	online, err = p.IsOnline(ctx, 7)
	require.NoError(t, err)
	assert.False(t, online)
}

func TestPresenceExpiry(t *testing.T) {
	p, mr := newTestPresence(t)
	ctx := context.Background()

	require.NoError(t, p.SetOnline(ctx, 1, "bob"))
	require.NoError(t, p.Refresh(ctx, 1))

	mr.FastForward(PresenceTTL + 1)

	assert.ErrorIs(t, p.Refresh(ctx, 1), ErrNotOnline)

	users, err := p.OnlineUsers(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)
}
