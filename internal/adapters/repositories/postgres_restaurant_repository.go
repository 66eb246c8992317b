package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"order-fulfillment-service/internal/domain"
	"order-fulfillment-service/internal/platform/obs"
)

// PostgresRestaurantRepository reads the restaurant directory.
type PostgresRestaurantRepository struct {
	DB *sql.DB
}

func NewPostgresRestaurantRepository(db *sql.DB) *PostgresRestaurantRepository {
	return &PostgresRestaurantRepository{DB: db}
}

func (r *PostgresRestaurantRepository) ListRestaurants(ctx context.Context) (_ []*domain.Restaurant, err error) {
	defer obs.Time(ctx, "restaurants.ListRestaurants")(&err)

	if r.DB == nil {
		return nil, errors.New("restaurant repository: db is nil")
	}

	q := `
	SELECT restaurant_id, name, address, contact_phone
    FROM restaurants
    ORDER BY restaurant_id;
	`

	rows, err := r.DB.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list restaurants: query restaurants table: %w", err)
	}
	defer rows.Close()

	var restaurants []*domain.Restaurant
	for rows.Next() {
		var rest domain.Restaurant
		if err := rows.Scan(&rest.RestaurantID, &rest.Name, &rest.Address, &rest.ContactPhone); err != nil {
			return nil, fmt.Errorf("list restaurants: scan rows: %w", err)
		}
		restaurants = append(restaurants, &rest)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list restaurants: row iteration: %w", err)
	}

	return restaurants, nil
}
