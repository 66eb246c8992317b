package repositories

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

type RestaurantSeed struct {
	RestaurantID int    `json:"restaurant_id"`
	Name         string `json:"name"`
	Address      string `json:"address"`
	ContactPhone string `json:"contact_phone"`
}

type ProductSeed struct {
	ProductID int     `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
}

type MenuItemSeed struct {
	RestaurantID int  `json:"restaurant_id"`
	ProductID    int  `json:"product_id"`
	Availability bool `json:"availability"`
}

type OrderItemSeed struct {
	ProductID int     `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

type OrderSeed struct {
	OrderID     int             `json:"order_id"`
	FirstName   string          `json:"firstname"`
	LastName    string          `json:"lastname"`
	Phone       string          `json:"phonenumber"`
	Address     string          `json:"address"`
	Status      string          `json:"status"`
	PaymentType string          `json:"payment_type"`
	Items       []OrderItemSeed `json:"items"`
}

type Seed struct {
	Restaurants []RestaurantSeed `json:"restaurants"`
	Products    []ProductSeed    `json:"products"`
	MenuItems   []MenuItemSeed   `json:"menu_items"`
	Orders      []OrderSeed      `json:"orders"`
}

// Populate the database with demo data from a JSON file.
func SeedFromJSON(db *sql.DB, jsonPath string) error {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed data: read %q: %w", jsonPath, err)
	}

	var seed Seed
	if err := json.Unmarshal(bytes, &seed); err != nil {
		return fmt.Errorf("seed data: parse json: %w", err)
	}

	if err := validateSeed(&seed); err != nil {
		return fmt.Errorf("seed data: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed data: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, r := range seed.Restaurants {
		_, err := tx.Exec(`
		INSERT INTO restaurants (restaurant_id, name, address, contact_phone)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (restaurant_id) DO UPDATE
		SET name = EXCLUDED.name,
			address = EXCLUDED.address,
			contact_phone = EXCLUDED.contact_phone;
		`, r.RestaurantID, r.Name, strings.TrimSpace(r.Address), r.ContactPhone)
		if err != nil {
			return fmt.Errorf("seed data: insert restaurant_id=%d: %w", r.RestaurantID, err)
		}
	}

	for _, p := range seed.Products {
		_, err := tx.Exec(`
		INSERT INTO products (product_id, name, price)
		VALUES ($1, $2, $3)
		ON CONFLICT (product_id) DO UPDATE
		SET name = EXCLUDED.name,
			price = EXCLUDED.price;
		`, p.ProductID, p.Name, p.Price)
		if err != nil {
			return fmt.Errorf("seed data: insert product_id=%d: %w", p.ProductID, err)
		}
	}

	for _, m := range seed.MenuItems {
		_, err := tx.Exec(`
		INSERT INTO restaurant_menu_items (restaurant_id, product_id, availability)
		VALUES ($1, $2, $3)
		ON CONFLICT (restaurant_id, product_id) DO UPDATE
		SET availability = EXCLUDED.availability;
		`, m.RestaurantID, m.ProductID, m.Availability)
		if err != nil {
			return fmt.Errorf("seed data: insert menu item restaurant_id=%d product_id=%d: %w",
				m.RestaurantID, m.ProductID, err)
		}
	}

	for _, o := range seed.Orders {
		status := o.Status
		if status == "" {
			status = "pending"
		}

		_, err := tx.Exec(`
		INSERT INTO orders (order_id, firstname, lastname, phonenumber, address, status, payment_type)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (order_id) DO UPDATE
		SET firstname = EXCLUDED.firstname,
			lastname = EXCLUDED.lastname,
			phonenumber = EXCLUDED.phonenumber,
			address = EXCLUDED.address,
			status = EXCLUDED.status,
			payment_type = EXCLUDED.payment_type;
		`, o.OrderID, o.FirstName, o.LastName, o.Phone, strings.TrimSpace(o.Address), status, o.PaymentType)
		if err != nil {
			return fmt.Errorf("seed data: insert order_id=%d: %w", o.OrderID, err)
		}

		for _, item := range o.Items {
			_, err := tx.Exec(`
			INSERT INTO order_items (order_id, product_id, quantity, price)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (order_id, product_id) DO UPDATE
			SET quantity = EXCLUDED.quantity,
				price = EXCLUDED.price;
			`, o.OrderID, item.ProductID, item.Quantity, item.Price)
			if err != nil {
				return fmt.Errorf("seed data: insert order item order_id=%d product_id=%d: %w",
					o.OrderID, item.ProductID, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed data: commit tx: %w", err)
	}

	return nil
}

func validateSeed(seed *Seed) error {
	for i, r := range seed.Restaurants {
		if r.RestaurantID <= 0 {
			return fmt.Errorf("invalid restaurant_id at index %d: %d", i, r.RestaurantID)
		}
		if strings.TrimSpace(r.Name) == "" {
			return fmt.Errorf("restaurant at index %d: name cannot be empty", i)
		}
	}

	for i, p := range seed.Products {
		if p.ProductID <= 0 {
			return fmt.Errorf("invalid product_id at index %d: %d", i, p.ProductID)
		}
		if p.Price < 0 {
			return fmt.Errorf("product_id=%d: price cannot be negative", p.ProductID)
		}
	}

	for i, o := range seed.Orders {
		if o.OrderID <= 0 {
			return fmt.Errorf("invalid order_id at index %d: %d", i, o.OrderID)
		}
		if strings.TrimSpace(o.Address) == "" {
			return fmt.Errorf("order_id=%d: address cannot be empty", o.OrderID)
		}
		for _, item := range o.Items {
			if item.Quantity <= 0 {
				return fmt.Errorf("order_id=%d product_id=%d: quantity must be positive",
					o.OrderID, item.ProductID)
			}
		}
	}

	return nil
}
