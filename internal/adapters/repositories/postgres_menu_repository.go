package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"order-fulfillment-service/internal/domain"
	"order-fulfillment-service/internal/platform/obs"
)

// PostgresMenuRepository reads menu availability and the product catalog.
type PostgresMenuRepository struct {
	DB *sql.DB
}

func NewPostgresMenuRepository(db *sql.DB) *PostgresMenuRepository {
	return &PostgresMenuRepository{DB: db}
}

// ListAvailability returns the full restaurant x product relation, including
// rows explicitly marked unavailable.
func (r *PostgresMenuRepository) ListAvailability(ctx context.Context) (_ []domain.MenuItem, err error) {
	defer obs.Time(ctx, "menu.ListAvailability")(&err)

	if r.DB == nil {
		return nil, errors.New("menu repository: db is nil")
	}

	q := `
	SELECT restaurant_id, product_id, availability
    FROM restaurant_menu_items
    ORDER BY restaurant_id, product_id;
	`

	rows, err := r.DB.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list availability: query restaurant_menu_items table: %w", err)
	}
	defer rows.Close()

	var items []domain.MenuItem
	for rows.Next() {
		var item domain.MenuItem
		if err := rows.Scan(&item.RestaurantID, &item.ProductID, &item.Availability); err != nil {
			return nil, fmt.Errorf("list availability: scan rows: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list availability: row iteration: %w", err)
	}

	return items, nil
}

func (r *PostgresMenuRepository) ListProducts(ctx context.Context) (_ []*domain.Product, err error) {
	defer obs.Time(ctx, "menu.ListProducts")(&err)

	if r.DB == nil {
		return nil, errors.New("menu repository: db is nil")
	}

	q := `
	SELECT product_id, name, price
    FROM products
    ORDER BY product_id;
	`

	rows, err := r.DB.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list products: query products table: %w", err)
	}
	defer rows.Close()

	var products []*domain.Product
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ProductID, &p.Name, &p.Price); err != nil {
			return nil, fmt.Errorf("list products: scan rows: %w", err)
		}
		products = append(products, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list products: row iteration: %w", err)
	}

	return products, nil
}
