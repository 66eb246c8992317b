package cache

import (
	"context"
	"testing"

	"order-fulfillment-service/internal/domain"
	"order-fulfillment-service/internal/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreLookupOmitsUnknownKeys(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryCoordinateStore(ports.KeepExisting)

	require.NoError(t, store.Persist(ctx, "known st 1", &domain.Coordinates{Lat: 10, Lon: 20}))
	require.NoError(t, store.Persist(ctx, "failed st 2", nil))

	got, err := store.Lookup(ctx, []string{"known st 1", "failed st 2", "never seen"})
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, &domain.Coordinates{Lat: 10, Lon: 20}, got["known st 1"])

	// Negative entry is present with a nil value, distinct from absence.
	cached, ok := got["failed st 2"]
	assert.True(t, ok)
	assert.Nil(t, cached)

	_, ok = got["never seen"]
	assert.False(t, ok)
}

func TestMemoryStoreKeepExistingPolicy(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryCoordinateStore(ports.KeepExisting)

	require.NoError(t, store.Persist(ctx, "main st 5", nil))
	require.NoError(t, store.Persist(ctx, "main st 5", &domain.Coordinates{Lat: 1, Lon: 2}))

	got, err := store.Lookup(ctx, []string{"main st 5"})
	require.NoError(t, err)
	assert.Nil(t, got["main st 5"])
}

func TestMemoryStoreReplacePolicy(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryCoordinateStore(ports.Replace)

	require.NoError(t, store.Persist(ctx, "main st 5", nil))
	require.NoError(t, store.Persist(ctx, "main st 5", &domain.Coordinates{Lat: 1, Lon: 2}))

	got, err := store.Lookup(ctx, []string{"main st 5"})
	require.NoError(t, err)
	assert.Equal(t, &domain.Coordinates{Lat: 1, Lon: 2}, got["main st 5"])
}

func TestMemoryStoreTrimsAndRounds(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryCoordinateStore(ports.KeepExisting)

	require.NoError(t, store.Persist(ctx, "  spaced out 7  ", &domain.Coordinates{Lat: 10.1234, Lon: 20.5678}))

	got, err := store.Lookup(ctx, []string{"spaced out 7"})
	require.NoError(t, err)
	assert.Equal(t, &domain.Coordinates{Lat: 10.12, Lon: 20.57}, got["spaced out 7"])

	assert.Error(t, store.Persist(ctx, "   ", nil))
}
