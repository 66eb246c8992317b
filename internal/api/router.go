package api

import (
	"net/http"

	"order-fulfillment-service/internal/api/handlers"
	"order-fulfillment-service/internal/ports"

	"github.com/rs/cors"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(
	pipeline handlers.OrderAnnotator,
	restaurants ports.RestaurantRepository,
	menu ports.MenuRepository,
	allowedOrigins []string,
) http.Handler {
	mux := http.NewServeMux()

	orderHandler := &handlers.OrderHandler{Pipeline: pipeline}
	restaurantHandler := &handlers.RestaurantHandler{Repo: restaurants}
	productHandler := &handlers.ProductHandler{Menu: menu}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/orders", orderHandler.List)
	mux.HandleFunc("/restaurants", restaurantHandler.List)
	mux.HandleFunc("/products", productHandler.List)

	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	})

	return loggingMiddleware(c.Handler(mux))
}
