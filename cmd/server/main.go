package main

import (
	"database/sql"
	"flag"
	"fmt"
	"net/http"
	"strings"
	"time"

	"order-fulfillment-service/internal/adapters/cache"
	"order-fulfillment-service/internal/adapters/geocode"
	"order-fulfillment-service/internal/adapters/repositories"
	"order-fulfillment-service/internal/api"
	"order-fulfillment-service/internal/config"
	"order-fulfillment-service/internal/platform/db"
	"order-fulfillment-service/internal/platform/obs"
	"order-fulfillment-service/internal/ports"
	"order-fulfillment-service/internal/services"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// main is the application composition root.
// It wires concrete adapters (Postgres, Redis, the geocoding provider)
// behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("no .env file found (using environment variables)")
	}

	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	obs.SetupLogging(cfg.Logging.Level, cfg.Logging.Format)

	if strings.TrimSpace(cfg.Database.URL) == "" {
		log.Fatal().Msg("database url is required (DATABASE_URL)")
	}
	if strings.TrimSpace(cfg.Geocoder.APIKey) == "" {
		log.Fatal().Msg("geocoder api key is required (GEOCODER_API_KEY)")
	}

	conn, err := db.Open(cfg.Database.URL, db.Pool{
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("open database")
	}
	defer conn.Close()

	// Idempotent schema init keeps local runs zero-setup.
	if err := repositories.InitSchema(conn); err != nil {
		log.Fatal().Err(err).Msg("init schema")
	}

	store, err := newCoordinateStore(cfg, conn)
	if err != nil {
		log.Fatal().Err(err).Msg("init coordinate store")
	}

	geocoder, err := geocode.NewClient(
		cfg.Geocoder.APIKey,
		cfg.Geocoder.BaseURL,
		cfg.Geocoder.Timeout,
		cfg.Geocoder.RequestsPerSecond,
	)
	if err != nil {
		log.Fatal().Err(err).Msg("init geocoding client")
	}

	resolver := services.NewCoordinateResolver(store, geocoder)

	orderRepo := repositories.NewPostgresOrderRepository(conn)
	restaurantRepo := repositories.NewPostgresRestaurantRepository(conn)
	menuRepo := repositories.NewPostgresMenuRepository(conn)

	pipeline := services.NewOrderAvailabilityPipeline(orderRepo, restaurantRepo, menuRepo, resolver)

	router := api.NewRouter(pipeline, restaurantRepo, menuRepo, cfg.Server.AllowedOrigins)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	log.Info().Str("addr", addr).Str("cache_backend", cfg.Cache.Backend).Msg("server listening")
	if err := srv.ListenAndServe(); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func newCoordinateStore(cfg *config.Config, conn *sql.DB) (ports.CoordinateStore, error) {
	policy := ports.KeepExisting
	if strings.EqualFold(cfg.Cache.Policy, "replace") {
		policy = ports.Replace
	}

	switch strings.ToLower(cfg.Cache.Backend) {
	case "", "postgres":
		return cache.NewPostgresCoordinateStore(conn, policy), nil
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr: cfg.Cache.RedisAddr,
			DB:   cfg.Cache.RedisDB,
		})
		return cache.NewRedisCoordinateStore(client, policy), nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Cache.Backend)
	}
}
