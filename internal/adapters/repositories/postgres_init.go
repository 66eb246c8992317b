package repositories

import (
	"database/sql"
	"errors"
	"fmt"
)

// Initialize the Postgres schema. Idempotent: safe to run on every startup.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createRestaurantsQuery := `
	CREATE TABLE IF NOT EXISTS restaurants (
		restaurant_id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		address TEXT NOT NULL DEFAULT '',
		contact_phone TEXT NOT NULL DEFAULT ''
	);
	`

	createProductsQuery := `
	CREATE TABLE IF NOT EXISTS products (
		product_id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		price NUMERIC(8,2) NOT NULL CHECK (price >= 0)
	);
	`

	createMenuItemsQuery := `
	CREATE TABLE IF NOT EXISTS restaurant_menu_items (
		restaurant_id INTEGER NOT NULL REFERENCES restaurants(restaurant_id) ON DELETE CASCADE,
		product_id INTEGER NOT NULL REFERENCES products(product_id) ON DELETE CASCADE,
		availability BOOLEAN NOT NULL DEFAULT TRUE,
		PRIMARY KEY (restaurant_id, product_id)
	);
	`

	createOrdersQuery := `
	CREATE TABLE IF NOT EXISTS orders (
		order_id INTEGER PRIMARY KEY,
		firstname TEXT NOT NULL,
		lastname TEXT NOT NULL,
		phonenumber TEXT NOT NULL,
		address TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'pending',
		comment TEXT NOT NULL DEFAULT '',
		payment_type TEXT NOT NULL DEFAULT 'cash',
		registered_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		called_at TIMESTAMPTZ,
		delivered_at TIMESTAMPTZ,
		restaurant_id INTEGER REFERENCES restaurants(restaurant_id)
	);
	`

	createOrderItemsQuery := `
	CREATE TABLE IF NOT EXISTS order_items (
		order_id INTEGER NOT NULL REFERENCES orders(order_id) ON DELETE CASCADE,
		product_id INTEGER NOT NULL REFERENCES products(product_id),
		quantity INTEGER NOT NULL CHECK (quantity > 0),
		price NUMERIC(8,2) NOT NULL,
		PRIMARY KEY (order_id, product_id)
	);
	`

	// Coordinate cache: NULL lat/lon marks an address known to be
	// unresolvable, so permanent failures are not retried.
	createCoordinateCacheQuery := `
	CREATE TABLE IF NOT EXISTS coordinate_cache (
		address TEXT PRIMARY KEY,
		lat NUMERIC(5,2),
		lon NUMERIC(5,2)
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_orders_status
    ON orders(status);
	`

	statements := []string{
		createRestaurantsQuery,
		createProductsQuery,
		createMenuItemsQuery,
		createOrdersQuery,
		createOrderItemsQuery,
		createCoordinateCacheQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}
