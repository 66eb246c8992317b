package services

import (
	"context"
	"fmt"
	"strings"

	"order-fulfillment-service/internal/domain"
	"order-fulfillment-service/internal/platform/obs"
	"order-fulfillment-service/internal/ports"
)

// OrderAvailabilityPipeline annotates every open order with the restaurants
// that can fulfill it, ranked by distance from the delivery address.
//
// One run performs one availability-index build and one batched coordinate
// resolution for the union of all addresses the batch references. Orders
// whose address cannot be geocoded simply get an empty ranking; they never
// block the rest of the batch.
type OrderAvailabilityPipeline struct {
	orders      ports.OrderRepository
	restaurants ports.RestaurantRepository
	menu        ports.MenuRepository
	resolver    *CoordinateResolver
}

func NewOrderAvailabilityPipeline(
	orders ports.OrderRepository,
	restaurants ports.RestaurantRepository,
	menu ports.MenuRepository,
	resolver *CoordinateResolver,
) *OrderAvailabilityPipeline {
	return &OrderAvailabilityPipeline{
		orders:      orders,
		restaurants: restaurants,
		menu:        menu,
		resolver:    resolver,
	}
}

// AnnotateOpenOrders loads open orders and attaches the ranked candidate
// list to each. The annotation is ephemeral; persisted order state is not
// touched.
func (p *OrderAvailabilityPipeline) AnnotateOpenOrders(
	ctx context.Context,
) (_ []*domain.Order, err error) {
	defer obs.Time(ctx, "pipeline.AnnotateOpenOrders")(&err)

	orders, err := p.orders.ListOpenOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("annotate orders: list open orders: %w", err)
	}
	if len(orders) == 0 {
		return orders, nil
	}

	items, err := p.menu.ListAvailability(ctx)
	if err != nil {
		return nil, fmt.Errorf("annotate orders: list availability: %w", err)
	}
	idx := BuildAvailabilityIndex(items)

	restaurants, err := p.restaurants.ListRestaurants(ctx)
	if err != nil {
		return nil, fmt.Errorf("annotate orders: list restaurants: %w", err)
	}
	byID := make(map[int]*domain.Restaurant, len(restaurants))
	for _, r := range restaurants {
		byID[r.RestaurantID] = r
	}

	// Match before collecting addresses so restaurants no order references
	// are never geocoded.
	candidateIDs := make(map[int][]int, len(orders))
	seen := map[string]struct{}{}
	addresses := make([]string, 0, len(orders))

	collect := func(addr string) {
		addr = strings.TrimSpace(addr)
		if addr == "" {
			return
		}
		if _, ok := seen[addr]; ok {
			return
		}
		seen[addr] = struct{}{}
		addresses = append(addresses, addr)
	}

	for _, o := range orders {
		ids := idx.Match(o.RequiredProductIDs())
		candidateIDs[o.OrderID] = ids

		collect(o.Address)
		for _, id := range ids {
			if r, ok := byID[id]; ok {
				collect(r.Address)
			}
		}
	}

	coords, err := p.resolver.ResolveMany(ctx, addresses)
	if err != nil {
		return nil, fmt.Errorf("annotate orders: resolve coordinates: %w", err)
	}

	for _, o := range orders {
		origin := coords[strings.TrimSpace(o.Address)]

		ids := candidateIDs[o.OrderID]
		candidates := make([]Candidate, 0, len(ids))
		for _, id := range ids {
			r, ok := byID[id]
			if !ok {
				continue
			}
			candidates = append(candidates, Candidate{
				Restaurant: r,
				Coords:     coords[strings.TrimSpace(r.Address)],
			})
		}

		o.RankedRestaurants = RankByDistance(origin, candidates)
	}

	return orders, nil
}
