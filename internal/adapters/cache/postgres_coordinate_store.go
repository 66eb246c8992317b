package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"order-fulfillment-service/internal/domain"
	"order-fulfillment-service/internal/platform/obs"
	"order-fulfillment-service/internal/ports"
)

// PostgresCoordinateStore is a SQL-backed coordinate cache keyed by trimmed
// address text. NULL lat/lon record a negative result (address known to be
// unresolvable). Address keys are expected to be trimmed by the caller.
type PostgresCoordinateStore struct {
	DB     *sql.DB
	Policy ports.PersistPolicy
}

func NewPostgresCoordinateStore(db *sql.DB, policy ports.PersistPolicy) *PostgresCoordinateStore {
	return &PostgresCoordinateStore{DB: db, Policy: policy}
}

// Lookup fetches cached entries for the given addresses. Unknown addresses
// are omitted; a present nil value is a cached negative result.
func (s *PostgresCoordinateStore) Lookup(
	ctx context.Context,
	addresses []string,
) (_ map[string]*domain.Coordinates, err error) {
	defer obs.Time(ctx, "coordinate.cache.Lookup")(&err)

	if s.DB == nil {
		return nil, errors.New("coordinate cache: db is nil")
	}

	if len(addresses) == 0 {
		return map[string]*domain.Coordinates{}, nil
	}

	seen := map[string]struct{}{}
	uniq := make([]string, 0, len(addresses))
	for _, a := range addresses {
		a = strings.TrimSpace(a)
		if a == "" {
			continue
		}

		if _, ok := seen[a]; ok {
			continue
		}
		seen[a] = struct{}{}
		uniq = append(uniq, a)
	}

	if len(uniq) == 0 {
		return map[string]*domain.Coordinates{}, nil
	}

	q := `
	SELECT address, lat, lon
    FROM coordinate_cache
    WHERE address = ANY($1::text[]);
	`

	rows, err := s.DB.QueryContext(ctx, q, uniq)
	if err != nil {
		return nil, fmt.Errorf("lookup coordinate cache: query coordinate_cache table: %w", err)
	}
	defer rows.Close()

	out := make(map[string]*domain.Coordinates, len(uniq))
	for rows.Next() {
		var addr string
		var lat, lon sql.NullFloat64
		if err := rows.Scan(&addr, &lat, &lon); err != nil {
			return nil, fmt.Errorf("lookup coordinate cache: scan rows: %w", err)
		}

		if lat.Valid && lon.Valid {
			out[addr] = &domain.Coordinates{Lat: lat.Float64, Lon: lon.Float64}
		} else {
			out[addr] = nil
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("lookup coordinate cache: row iteration: %w", err)
	}

	return out, nil
}

// Persist stores one address -> coordinates-or-negative entry. Concurrent
// inserts for the same key resolve per the configured policy instead of
// raising a uniqueness violation.
func (s *PostgresCoordinateStore) Persist(
	ctx context.Context,
	address string,
	coords *domain.Coordinates,
) error {
	if s.DB == nil {
		return errors.New("coordinate cache: db is nil")
	}

	address = strings.TrimSpace(address)
	if address == "" {
		return errors.New("persist coordinate cache: empty address key")
	}

	var lat, lon any
	if coords != nil {
		lat = domain.Round2(coords.Lat)
		lon = domain.Round2(coords.Lon)
	}

	q := `
	INSERT INTO coordinate_cache (address, lat, lon)
    VALUES ($1, $2, $3)
	ON CONFLICT (address) DO NOTHING;
	`
	if s.Policy == ports.Replace {
		q = `
	INSERT INTO coordinate_cache (address, lat, lon)
    VALUES ($1, $2, $3)
	ON CONFLICT (address) DO UPDATE
	SET lat = EXCLUDED.lat,
		lon = EXCLUDED.lon;
	`
	}

	if _, err := s.DB.ExecContext(ctx, q, address, lat, lon); err != nil {
		return fmt.Errorf("persist coordinate cache address=%q: %w", address, err)
	}

	return nil
}
