package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"order-fulfillment-service/internal/domain"
	"order-fulfillment-service/internal/platform/obs"
	"order-fulfillment-service/internal/ports"

	"github.com/rs/zerolog/log"
)

// CoordinateResolver turns batches of address strings into coordinates,
// consulting the durable cache before the external geocoder.
//
// Outcome policy: resolved addresses and permanent negatives are persisted,
// transient provider failures are not, so a later run retries them. An
// address already cached never triggers another provider call.
type CoordinateResolver struct {
	store    ports.CoordinateStore
	geocoder ports.Geocoder
}

func NewCoordinateResolver(store ports.CoordinateStore, geocoder ports.Geocoder) *CoordinateResolver {
	return &CoordinateResolver{store: store, geocoder: geocoder}
}

// ResolveMany resolves a batch of addresses. The returned map covers every
// trimmed non-empty input address exactly once; a nil value means the address
// could not be resolved in this run. Geocoding errors never escape: they
// degrade to nil coordinates for the affected address only.
func (r *CoordinateResolver) ResolveMany(
	ctx context.Context,
	addresses []string,
) (_ map[string]*domain.Coordinates, err error) {
	defer obs.Time(ctx, "resolver.ResolveMany")(&err)

	seen := map[string]struct{}{}
	uniq := make([]string, 0, len(addresses))
	for _, a := range addresses {
		a = strings.TrimSpace(a)
		if a == "" {
			continue
		}

		if _, ok := seen[a]; ok {
			continue
		}
		seen[a] = struct{}{}
		uniq = append(uniq, a)
	}

	if len(uniq) == 0 {
		return map[string]*domain.Coordinates{}, nil
	}

	// One batched read for the whole run, not a read per address.
	cached, err := r.store.Lookup(ctx, uniq)
	if err != nil {
		return nil, fmt.Errorf("resolve addresses: lookup coordinate cache: %w", err)
	}

	out := make(map[string]*domain.Coordinates, len(uniq))
	misses := make([]string, 0, len(uniq))
	for _, a := range uniq {
		if coords, ok := cached[a]; ok {
			out[a] = coords
			continue
		}
		misses = append(misses, a)
	}

	// Sequential provider calls: the provider is rate limited and batch sizes
	// are small once the cache is warm.
	for _, a := range misses {
		coords, gerr := r.geocoder.Geocode(ctx, a)
		switch {
		case gerr == nil:
			out[a] = &coords
			r.persist(ctx, a, &coords)
		case errors.Is(gerr, ports.ErrAddressNotFound):
			out[a] = nil
			r.persist(ctx, a, nil)
		default:
			// Transient failure: unresolved for this run only, nothing cached.
			log.Warn().Err(gerr).Str("address", a).Msg("geocoding failed, will retry next run")
			out[a] = nil
		}
	}

	return out, nil
}

// persist swallows cache write failures (including duplicate-key races):
// losing a cache entry costs one extra provider call later, aborting the
// batch would cost the whole dashboard view.
func (r *CoordinateResolver) persist(ctx context.Context, address string, coords *domain.Coordinates) {
	if err := r.store.Persist(ctx, address, coords); err != nil {
		log.Warn().Err(err).Str("address", address).Msg("coordinate cache write failed")
	}
}
