package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"order-fulfillment-service/internal/adapters/cache"
	"order-fulfillment-service/internal/domain"
	"order-fulfillment-service/internal/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeGeocoder counts provider calls per address; addresses not listed in
// coords or errs resolve as permanent negatives.
type fakeGeocoder struct {
	coords map[string]domain.Coordinates
	errs   map[string]error
	calls  map[string]int
}

func newFakeGeocoder() *fakeGeocoder {
	return &fakeGeocoder{
		coords: map[string]domain.Coordinates{},
		errs:   map[string]error{},
		calls:  map[string]int{},
	}
}

func (f *fakeGeocoder) Geocode(_ context.Context, address string) (domain.Coordinates, error) {
	f.calls[address]++

	if err, ok := f.errs[address]; ok {
		return domain.Coordinates{}, err
	}
	if c, ok := f.coords[address]; ok {
		return c, nil
	}
	return domain.Coordinates{}, fmt.Errorf("geocode %q: %w", address, ports.ErrAddressNotFound)
}

func (f *fakeGeocoder) totalCalls() int {
	total := 0
	for _, n := range f.calls {
		total += n
	}
	return total
}

func TestResolveManyWarmCacheIssuesNoProviderCalls(t *testing.T) {
	ctx := context.Background()
	store := cache.NewMemoryCoordinateStore(ports.KeepExisting)
	geocoder := newFakeGeocoder()
	geocoder.coords["pushkina 1"] = domain.Coordinates{Lat: 55.75, Lon: 37.62}
	geocoder.coords["lenina 2"] = domain.Coordinates{Lat: 55.76, Lon: 37.64}

	resolver := NewCoordinateResolver(store, geocoder)

	first, err := resolver.ResolveMany(ctx, []string{"pushkina 1", "lenina 2"})
	require.NoError(t, err)
	require.Len(t, first, 2)
	assert.Equal(t, 2, geocoder.totalCalls())

	second, err := resolver.ResolveMany(ctx, []string{"pushkina 1", "lenina 2"})
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 2, geocoder.totalCalls(), "warm cache must issue zero extra provider calls")
}

func TestResolveManyCachesNegativeResults(t *testing.T) {
	ctx := context.Background()
	store := cache.NewMemoryCoordinateStore(ports.KeepExisting)
	geocoder := newFakeGeocoder()

	resolver := NewCoordinateResolver(store, geocoder)

	got, err := resolver.ResolveMany(ctx, []string{"no such street 9"})
	require.NoError(t, err)
	require.Contains(t, got, "no such street 9")
	assert.Nil(t, got["no such street 9"])
	assert.Equal(t, 1, geocoder.totalCalls())

	// The permanent negative is cached: no second provider call.
	got, err = resolver.ResolveMany(ctx, []string{"no such street 9"})
	require.NoError(t, err)
	assert.Nil(t, got["no such street 9"])
	assert.Equal(t, 1, geocoder.totalCalls())
	assert.Equal(t, 1, store.Len())
}

func TestResolveManyDoesNotCacheTransientFailures(t *testing.T) {
	ctx := context.Background()
	store := cache.NewMemoryCoordinateStore(ports.KeepExisting)
	geocoder := newFakeGeocoder()
	geocoder.errs["flaky ave 3"] = errors.New("geocode: unexpected status: 502")

	resolver := NewCoordinateResolver(store, geocoder)

	got, err := resolver.ResolveMany(ctx, []string{"flaky ave 3"})
	require.NoError(t, err)
	assert.Nil(t, got["flaky ave 3"])
	assert.Equal(t, 0, store.Len(), "transient failures must not be cached")

	// Provider recovers: the next run retries and succeeds.
	delete(geocoder.errs, "flaky ave 3")
	geocoder.coords["flaky ave 3"] = domain.Coordinates{Lat: 1.5, Lon: 2.5}

	got, err = resolver.ResolveMany(ctx, []string{"flaky ave 3"})
	require.NoError(t, err)
	assert.Equal(t, &domain.Coordinates{Lat: 1.5, Lon: 2.5}, got["flaky ave 3"])
	assert.Equal(t, 2, geocoder.calls["flaky ave 3"])
	assert.Equal(t, 1, store.Len())
}

func TestResolveManyNormalizesAndDedupes(t *testing.T) {
	ctx := context.Background()
	store := cache.NewMemoryCoordinateStore(ports.KeepExisting)
	geocoder := newFakeGeocoder()
	geocoder.coords["pushkina 1"] = domain.Coordinates{Lat: 55.75, Lon: 37.62}

	resolver := NewCoordinateResolver(store, geocoder)

	got, err := resolver.ResolveMany(ctx, []string{" pushkina 1 ", "pushkina 1", "", "   "})
	require.NoError(t, err)

	require.Len(t, got, 1)
	assert.Equal(t, &domain.Coordinates{Lat: 55.75, Lon: 37.62}, got["pushkina 1"])
	assert.Equal(t, 1, geocoder.totalCalls())
}

func TestResolveManyCoversEveryInputAddress(t *testing.T) {
	ctx := context.Background()
	store := cache.NewMemoryCoordinateStore(ports.KeepExisting)
	geocoder := newFakeGeocoder()
	geocoder.coords["good 1"] = domain.Coordinates{Lat: 10, Lon: 20}
	geocoder.errs["flaky 2"] = errors.New("dial tcp: connection refused")

	resolver := NewCoordinateResolver(store, geocoder)

	got, err := resolver.ResolveMany(ctx, []string{"good 1", "flaky 2", "missing 3"})
	require.NoError(t, err)

	require.Len(t, got, 3)
	assert.NotNil(t, got["good 1"])
	assert.Nil(t, got["flaky 2"])
	assert.Nil(t, got["missing 3"])
}
