package services

import (
	"sort"

	"order-fulfillment-service/internal/domain"
)

// AvailabilityIndex maps restaurant id to the set of product ids it currently
// has available. Built once per batch and reused for every order, keeping
// matching linear in availability rows plus order line items.
type AvailabilityIndex map[int]map[int]struct{}

// BuildAvailabilityIndex inverts the availability relation. Rows with
// Availability=false are ignored: they never count toward fulfillment.
func BuildAvailabilityIndex(items []domain.MenuItem) AvailabilityIndex {
	idx := make(AvailabilityIndex)
	for _, item := range items {
		if !item.Availability {
			continue
		}

		products, ok := idx[item.RestaurantID]
		if !ok {
			products = make(map[int]struct{})
			idx[item.RestaurantID] = products
		}
		products[item.ProductID] = struct{}{}
	}
	return idx
}

// Match returns the ids of restaurants whose available products cover the
// whole required set, in ascending id order. Partial coverage excludes a
// restaurant entirely. An empty required set matches no restaurant.
func (idx AvailabilityIndex) Match(required map[int]struct{}) []int {
	if len(required) == 0 {
		return nil
	}

	matched := make([]int, 0, len(idx))
	for restaurantID, available := range idx {
		qualifies := true
		for productID := range required {
			if _, ok := available[productID]; !ok {
				qualifies = false
				break
			}
		}
		if qualifies {
			matched = append(matched, restaurantID)
		}
	}

	sort.Ints(matched)
	return matched
}
