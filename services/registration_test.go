package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPendingStoreTakeIsSingleUse(t *testing.T) {
	store := NewPendingStore(30 * time.Minute)

	token := store.Put("a@b.com", "pw")
	require.NotEmpty(t, token)

	email, password, ok := store.Take(token)
	require.True(t, ok)
	assert.Equal(t, "a@b.com", email)
	assert.Equal(t, "pw", password)

	_, _, ok = store.Take(token)
	assert.False(t, ok)
}

func TestPendingStoreExpiry(t *testing.T) {
	store := NewPendingStore(30 * time.Minute)

	current := time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return current }

	token := store.Put("a@b.com", "pw")

	// Just inside the TTL.
	current = current.Add(29 * time.Minute)
	_, _, ok := store.Take(token)
	assert.True(t, ok)

	// Past the TTL.
	token = store.Put("a@b.com", "pw")
	current = current.Add(31 * time.Minute)
	_, _, ok = store.Take(token)
	assert.False(t, ok)
}

func TestPendingStoreTokensDistinctAtSameInstant(t *testing.T) {
	store := NewPendingStore(30 * time.Minute)

	// Pin the clock: token uniqueness must not depend on time moving.
	instant := time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return instant }

	first := store.Put("a@b.com", "pw-a")
	second := store.Put("c@d.com", "pw-c")
	require.NotEqual(t, first, second)

	email, _, ok := store.Take(first)
	require.True(t, ok)
	assert.Equal(t, "a@b.com", email)

	email, _, ok = store.Take(second)
	require.True(t, ok)
	assert.Equal(t, "c@d.com", email)
}

func TestPendingStoreUnknownToken(t *testing.T) {
	store := NewPendingStore(time.Minute)
	_, _, ok := store.Take("nope")
	assert.False(t, ok)
}
