package dto

// Per-restaurant availability for one product. Restaurants without a menu
// row for the product are absent from the map.
type ProductResponse struct {
	ProductID    int          `json:"product_id"`
	Name         string       `json:"name"`
	Price        float64      `json:"price"`
	Availability map[int]bool `json:"availability"`
}

type ListProductsResponse struct {
	Products []ProductResponse `json:"products"`
}
