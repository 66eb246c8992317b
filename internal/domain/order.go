package domain

import "time"

// Order lifecycle states. Pending and Processing orders are "open" and
// participate in the availability pipeline.
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
)

// Accepted payment types.
const (
	PaymentElectronic = "electronic"
	PaymentCash       = "cash"
)

// One line item of an order. Price is the unit price captured at order time.
type OrderItem struct {
	ProductID int
	Quantity  int
	Price     float64
}

// Customer order aggregate. RankedRestaurants is an ephemeral annotation
// attached by the availability pipeline and is never persisted.
type Order struct {
	OrderID      int
	FirstName    string
	LastName     string
	Phone        string
	Address      string
	Status       string
	Comment      string
	PaymentType  string
	RegisteredAt time.Time
	CalledAt     *time.Time
	DeliveredAt  *time.Time
	RestaurantID *int
	Items        []OrderItem
	TotalPrice   float64

	RankedRestaurants []RankedRestaurant
}

// RequiredProductIDs returns the set of distinct products the order needs.
// Quantities are irrelevant to fulfillment matching.
func (o *Order) RequiredProductIDs() map[int]struct{} {
	required := make(map[int]struct{}, len(o.Items))
	for _, item := range o.Items {
		required[item.ProductID] = struct{}{}
	}
	return required
}
