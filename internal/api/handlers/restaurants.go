package handlers

import (
	"net/http"

	"order-fulfillment-service/internal/api/dto"
	"order-fulfillment-service/internal/ports"

	"github.com/rs/zerolog/log"
)

// RestaurantHandler exposes the restaurant directory.
type RestaurantHandler struct {
	Repo ports.RestaurantRepository
}

func (h *RestaurantHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	restaurants, err := h.Repo.ListRestaurants(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("list restaurants failed")
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListRestaurantsResponse{
		Restaurants: make([]dto.RestaurantResponse, 0, len(restaurants)),
	}
	for _, rest := range restaurants {
		res.Restaurants = append(res.Restaurants, dto.RestaurantResponse{
			RestaurantID: rest.RestaurantID,
			Name:         rest.Name,
			Address:      rest.Address,
			ContactPhone: rest.ContactPhone,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
