package cache

import (
	"context"
	"testing"

	"order-fulfillment-service/internal/domain"
	"order-fulfillment-service/internal/ports"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisStore(t *testing.T, policy ports.PersistPolicy) *RedisCoordinateStore {
	t.Helper()

	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisCoordinateStore(client, policy)
}

func TestRedisStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newRedisStore(t, ports.KeepExisting)

	require.NoError(t, store.Persist(ctx, "lenina 10", &domain.Coordinates{Lat: 55.75, Lon: 37.62}))
	require.NoError(t, store.Persist(ctx, "nowhere 99", nil))

	got, err := store.Lookup(ctx, []string{"lenina 10", "nowhere 99", "unseen 1"})
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, &domain.Coordinates{Lat: 55.75, Lon: 37.62}, got["lenina 10"])

	cached, ok := got["nowhere 99"]
	assert.True(t, ok)
	assert.Nil(t, cached)
}

func TestRedisStoreKeepExistingIgnoresDuplicates(t *testing.T) {
	ctx := context.Background()
	store := newRedisStore(t, ports.KeepExisting)

	require.NoError(t, store.Persist(ctx, "lenina 10", nil))
	require.NoError(t, store.Persist(ctx, "lenina 10", &domain.Coordinates{Lat: 1, Lon: 2}))

	got, err := store.Lookup(ctx, []string{"lenina 10"})
	require.NoError(t, err)
	assert.Nil(t, got["lenina 10"])
}

func TestRedisStoreReplaceUpgradesNegativeEntry(t *testing.T) {
	ctx := context.Background()
	store := newRedisStore(t, ports.Replace)

	require.NoError(t, store.Persist(ctx, "lenina 10", nil))
	require.NoError(t, store.Persist(ctx, "lenina 10", &domain.Coordinates{Lat: 55.75, Lon: 37.62}))

	got, err := store.Lookup(ctx, []string{"lenina 10"})
	require.NoError(t, err)
	assert.Equal(t, &domain.Coordinates{Lat: 55.75, Lon: 37.62}, got["lenina 10"])
}

func TestRedisStoreLookupDedupesInput(t *testing.T) {
	ctx := context.Background()
	store := newRedisStore(t, ports.KeepExisting)

	require.NoError(t, store.Persist(ctx, "lenina 10", &domain.Coordinates{Lat: 55.75, Lon: 37.62}))

	got, err := store.Lookup(ctx, []string{" lenina 10 ", "lenina 10", "", "  "})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.NotNil(t, got["lenina 10"])
}
