package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryOnlyRoundTrip(t *testing.T) {
	c := New(nil, time.Hour)
	ctx := context.Background()

	_, ok := c.Get(ctx, "привет", "ru", "en")
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, "привет", "hello", "ru", "en"))

	got, ok := c.Get(ctx, "привет", "ru", "en")
	require.True(t, ok)
	assert.Equal(t, "hello", got)
}

func TestLanguagePairsAreIndependent(t *testing.T) {
	c := New(nil, time.Hour)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "привет", "hello", "ru", "en"))

	_, ok := c.Get(ctx, "привет", "ru", "de")
	assert.False(t, ok)
}

func TestExpiredEntriesAreMisses(t *testing.T) {
	c := New(nil, time.Hour)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "привет", "hello", "ru", "en"))

	c.mu.Lock()
	for k, e := range c.memory {
		e.expires = time.Now().Add(-time.Minute)
		c.memory[k] = e
	}
	c.mu.Unlock()

	_, ok := c.Get(ctx, "привет", "ru", "en")
	assert.False(t, ok)
}

func TestSetRefreshesExpiry(t *testing.T) {
	c := New(nil, time.Hour)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "привет", "hello", "ru", "en"))
	require.NoError(t, c.Set(ctx, "привет", "hi", "ru", "en"))

	got, ok := c.Get(ctx, "привет", "ru", "en")
	require.True(t, ok)
	assert.Equal(t, "hi", got)
}

func TestNilPoolSchemaAndPreloadAreNoOps(t *testing.T) {
	c := New(nil, 0)
	ctx := context.Background()

	assert.NoError(t, c.EnsureSchema(ctx))
	assert.NoError(t, c.Preload(ctx))
	assert.Equal(t, DefaultTTL, c.ttl)
}
