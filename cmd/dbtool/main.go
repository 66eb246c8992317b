package main

import (
	"flag"
	"os"
	"strings"

	"order-fulfillment-service/internal/adapters/repositories"
	"order-fulfillment-service/internal/platform/db"
	"order-fulfillment-service/internal/platform/obs"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// dbtool initializes the schema and optionally seeds demo data.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("no .env file found (using environment variables)")
	}

	obs.SetupLogging(os.Getenv("ORDER_SERVICE_LOGGING_LEVEL"), "console")

	seedPath := flag.String("seed", "", "path to a JSON seed file (optional)")
	flag.Parse()

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		databaseURL = os.Getenv("ORDER_SERVICE_DATABASE_URL")
	}
	if strings.TrimSpace(databaseURL) == "" {
		log.Fatal().Msg("DATABASE_URL is required")
	}

	conn, err := db.Open(databaseURL, db.Pool{})
	if err != nil {
		log.Fatal().Err(err).Msg("open database")
	}
	defer conn.Close()

	log.Info().Msg("initializing database schema")
	if err := repositories.InitSchema(conn); err != nil {
		log.Fatal().Err(err).Msg("schema initialization failed")
	}
	log.Info().Msg("schema ready")

	if *seedPath == "" {
		return
	}

	log.Info().Str("path", *seedPath).Msg("seeding database")
	if err := repositories.SeedFromJSON(conn, *seedPath); err != nil {
		log.Fatal().Err(err).Msg("seeding failed")
	}
	log.Info().Msg("seeding complete")
}
