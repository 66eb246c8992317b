package handlers

import (
	"context"
	"net/http"

	"order-fulfillment-service/internal/api/dto"
	"order-fulfillment-service/internal/domain"

	"github.com/rs/zerolog/log"
)

// OrderAnnotator produces open orders annotated with ranked candidate
// restaurants. Satisfied by services.OrderAvailabilityPipeline.
type OrderAnnotator interface {
	AnnotateOpenOrders(ctx context.Context) ([]*domain.Order, error)
}

// OrderHandler exposes the annotated open-order listing.
type OrderHandler struct {
	Pipeline OrderAnnotator
}

func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	orders, err := h.Pipeline.AnnotateOpenOrders(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("annotate open orders failed")
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListOrdersResponse{Orders: make([]dto.OrderResponse, 0, len(orders))}
	for _, o := range orders {
		items := make([]dto.OrderItemResponse, 0, len(o.Items))
		for _, item := range o.Items {
			items = append(items, dto.OrderItemResponse{
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				Price:     item.Price,
			})
		}

		ranked := make([]dto.RankedRestaurantResponse, 0, len(o.RankedRestaurants))
		for _, rr := range o.RankedRestaurants {
			ranked = append(ranked, dto.RankedRestaurantResponse{
				RestaurantID: rr.RestaurantID,
				Name:         rr.Name,
				DistanceKm:   rr.DistanceKm,
			})
		}

		res.Orders = append(res.Orders, dto.OrderResponse{
			OrderID:           o.OrderID,
			FirstName:         o.FirstName,
			LastName:          o.LastName,
			Phone:             o.Phone,
			Address:           o.Address,
			Status:            o.Status,
			Comment:           o.Comment,
			PaymentType:       o.PaymentType,
			RegisteredAt:      o.RegisteredAt,
			CalledAt:          o.CalledAt,
			DeliveredAt:       o.DeliveredAt,
			RestaurantID:      o.RestaurantID,
			TotalPrice:        o.TotalPrice,
			Items:             items,
			RankedRestaurants: ranked,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
