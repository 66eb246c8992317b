package handlers

import (
	"net/http"

	"order-fulfillment-service/internal/api/dto"
	"order-fulfillment-service/internal/ports"

	"github.com/rs/zerolog/log"
)

// ProductHandler exposes the product catalog with its per-restaurant
// availability vector.
type ProductHandler struct {
	Menu ports.MenuRepository
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	products, err := h.Menu.ListProducts(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("list products failed")
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	items, err := h.Menu.ListAvailability(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("list availability failed")
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	availability := map[int]map[int]bool{}
	for _, item := range items {
		byRestaurant, ok := availability[item.ProductID]
		if !ok {
			byRestaurant = map[int]bool{}
			availability[item.ProductID] = byRestaurant
		}
		byRestaurant[item.RestaurantID] = item.Availability
	}

	res := dto.ListProductsResponse{Products: make([]dto.ProductResponse, 0, len(products))}
	for _, p := range products {
		grid := availability[p.ProductID]
		if grid == nil {
			grid = map[int]bool{}
		}
		res.Products = append(res.Products, dto.ProductResponse{
			ProductID:    p.ProductID,
			Name:         p.Name,
			Price:        p.Price,
			Availability: grid,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
