package ports

import (
	"context"

	"order-fulfillment-service/internal/domain"
)

// Port: a boundary for retrieving Order aggregates from a data source.
type OrderRepository interface {
	// Retrieve open (pending or processing) orders with their line items and
	// computed total price, in ascending order id.
	ListOpenOrders(ctx context.Context) ([]*domain.Order, error)
}

// Port: a boundary for retrieving the restaurant directory.
type RestaurantRepository interface {
	// Retrieve all restaurants in ascending restaurant id.
	ListRestaurants(ctx context.Context) ([]*domain.Restaurant, error)
}

// Port: a boundary for retrieving menu state.
type MenuRepository interface {
	// Retrieve the full restaurant x product availability relation.
	ListAvailability(ctx context.Context) ([]domain.MenuItem, error)

	// Retrieve all products in ascending product id.
	ListProducts(ctx context.Context) ([]*domain.Product, error)
}
