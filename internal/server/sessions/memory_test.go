package sessions

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/filesmanager/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	require.NoError(t, s.Set(ctx, "auth_t1", "u1", time.Hour))
	v, err := s.Get(ctx, "auth_t1")
	require.NoError(t, err)
	assert.Equal(t, "u1", v)

	require.NoError(t, s.Delete(ctx, "auth_t1"))
	_, err = s.Get(ctx, "auth_t1")
	assert.ErrorIs(t, err, common.ErrorNotFound)

	assert.NoError(t, s.Delete(ctx, "never-set"))
	assert.NoError(t, s.Ping(ctx))
}

func TestMemoryStore_Expiry(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	require.NoError(t, s.Set(ctx, "k", "v", 24*time.Hour))

	now = now.Add(24*time.Hour - time.Second)
	v, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", v)

	// A read does not extend the lifetime.
	now = now.Add(time.Second)
	_, err = s.Get(ctx, "k")
	assert.ErrorIs(t, err, common.ErrorNotFound)

	s.mu.RLock()
	_, kept := s.entries["k"]
	s.mu.RUnlock()
	assert.False(t, kept)
}
