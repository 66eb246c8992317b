package services

import (
	"sort"

	"order-fulfillment-service/internal/domain"
)

// Candidate pairs a qualifying restaurant with its resolved coordinates,
// if any.
type Candidate struct {
	Restaurant *domain.Restaurant
	Coords     *domain.Coordinates
}

// RankByDistance orders candidates by great-circle distance from the origin,
// ascending. Candidates without coordinates are skipped; without an origin
// nothing can be ranked and the result is empty. The sort is stable, so
// exact-tie candidates keep their input order.
func RankByDistance(origin *domain.Coordinates, candidates []Candidate) []domain.RankedRestaurant {
	if origin == nil {
		return []domain.RankedRestaurant{}
	}

	ranked := make([]domain.RankedRestaurant, 0, len(candidates))
	for _, c := range candidates {
		if c.Coords == nil {
			continue
		}

		ranked = append(ranked, domain.RankedRestaurant{
			RestaurantID: c.Restaurant.RestaurantID,
			Name:         c.Restaurant.Name,
			DistanceKm:   domain.DistanceKm(*origin, *c.Coords),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].DistanceKm < ranked[j].DistanceKm
	})

	return ranked
}
