package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInMemoryBlacklistStore(t *testing.T) {
	store := NewInMemoryBlacklistStore()
	defer store.Close()
	assert.NotNil(t, store.blacklist)
}

func TestInMemoryBlacklist_AddAndCheck(t *testing.T) {
	store := NewInMemoryBlacklistStore()
	defer store.Close()
	ctx := context.Background()

	listed, err := store.IsBlacklisted(ctx, "token")
	require.NoError(t, err)
	assert.False(t, listed)

	require.NoError(t, store.AddToBlacklist(ctx, "token", time.Now().Add(time.Hour)))

	listed, err = store.IsBlacklisted(ctx, "token")
	require.NoError(t, err)
	assert.True(t, listed)
}

func TestInMemoryBlacklist_CleanUpExpired(t *testing.T) {
	store := NewInMemoryBlacklistStore()
	defer store.Close()
	ctx := context.Background()

	require.NoError(t, store.AddToBlacklist(ctx, "expired-1", time.Now().Add(-time.Hour)))
	require.NoError(t, store.AddToBlacklist(ctx, "expired-2", time.Now().Add(-time.Minute)))
	require.NoError(t, store.AddToBlacklist(ctx, "valid", time.Now().Add(time.Hour)))

	store.CleanUpExpired()

	store.mu.RLock()
	assert.Len(t, store.blacklist, 1)
	_, exists := store.blacklist["valid"]
	store.mu.RUnlock()
	assert.True(t, exists)
}

func TestInMemoryBlacklist_CloseTwice(t *testing.T) {
	store := NewInMemoryBlacklistStore()
	store.Close()
	assert.NotPanics(t, store.Close)
}
