package domain

// Restaurant as listed in the staff directory. The address string doubles as
// the key into the coordinate cache.
type Restaurant struct {
	RestaurantID int
	Name         string
	Address      string
	ContactPhone string
}

// Single product offered somewhere on the network's menus.
type Product struct {
	ProductID int
	Name      string
	Price     float64
}

// One row of the restaurant x product availability relation.
// Only rows with Availability=true count toward fulfillment.
type MenuItem struct {
	RestaurantID int
	ProductID    int
	Availability bool
}

// RankedRestaurant pairs a qualifying restaurant with its travel distance
// from an order's delivery address. Computed per pipeline run, never persisted.
type RankedRestaurant struct {
	RestaurantID int
	Name         string
	DistanceKm   float64
}
