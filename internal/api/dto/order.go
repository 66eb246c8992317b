package dto

import "time"

type RankedRestaurantResponse struct {
	RestaurantID int     `json:"restaurant_id"`
	Name         string  `json:"name"`
	DistanceKm   float64 `json:"distance_km"`
}

type OrderItemResponse struct {
	ProductID int     `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

type OrderResponse struct {
	OrderID           int                        `json:"order_id"`
	FirstName         string                     `json:"firstname"`
	LastName          string                     `json:"lastname"`
	Phone             string                     `json:"phonenumber"`
	Address           string                     `json:"address"`
	Status            string                     `json:"status"`
	Comment           string                     `json:"comment,omitempty"`
	PaymentType       string                     `json:"payment_type"`
	RegisteredAt      time.Time                  `json:"registered_at"`
	CalledAt          *time.Time                 `json:"called_at"`
	DeliveredAt       *time.Time                 `json:"delivered_at"`
	RestaurantID      *int                       `json:"restaurant_id"`
	TotalPrice        float64                    `json:"total_price"`
	Items             []OrderItemResponse        `json:"items"`
	RankedRestaurants []RankedRestaurantResponse `json:"ranked_restaurants"`
}

type ListOrdersResponse struct {
	Orders []OrderResponse `json:"orders"`
}
