package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"order-fulfillment-service/internal/domain"
	"order-fulfillment-service/internal/platform/obs"
)

// PostgresOrderRepository reads Order aggregates from the orders and
// order_items tables.
type PostgresOrderRepository struct {
	DB *sql.DB
}

func NewPostgresOrderRepository(db *sql.DB) *PostgresOrderRepository {
	return &PostgresOrderRepository{DB: db}
}

// ListOpenOrders returns pending and processing orders with their line items
// and total price, in ascending order id. The total is computed in SQL as
// SUM(price * quantity) over the order's items.
func (r *PostgresOrderRepository) ListOpenOrders(ctx context.Context) (_ []*domain.Order, err error) {
	defer obs.Time(ctx, "orders.ListOpenOrders")(&err)

	if r.DB == nil {
		return nil, errors.New("order repository: db is nil")
	}

	q := `
	SELECT o.order_id, o.firstname, o.lastname, o.phonenumber, o.address,
		o.status, o.comment, o.payment_type, o.registered_at,
		o.called_at, o.delivered_at, o.restaurant_id,
		COALESCE(SUM(oi.price * oi.quantity), 0) AS total_price
    FROM orders o
    LEFT JOIN order_items oi ON oi.order_id = o.order_id
    WHERE o.status = ANY($1::text[])
    GROUP BY o.order_id
    ORDER BY o.order_id;
	`

	openStatuses := []string{domain.StatusPending, domain.StatusProcessing}

	rows, err := r.DB.QueryContext(ctx, q, openStatuses)
	if err != nil {
		return nil, fmt.Errorf("list open orders: query orders table: %w", err)
	}
	defer rows.Close()

	var orders []*domain.Order
	byID := map[int]*domain.Order{}
	for rows.Next() {
		var o domain.Order
		var calledAt, deliveredAt sql.NullTime
		var restaurantID sql.NullInt64

		err := rows.Scan(
			&o.OrderID, &o.FirstName, &o.LastName, &o.Phone, &o.Address,
			&o.Status, &o.Comment, &o.PaymentType, &o.RegisteredAt,
			&calledAt, &deliveredAt, &restaurantID,
			&o.TotalPrice,
		)
		if err != nil {
			return nil, fmt.Errorf("list open orders: scan rows: %w", err)
		}

		if calledAt.Valid {
			t := calledAt.Time
			o.CalledAt = &t
		}
		if deliveredAt.Valid {
			t := deliveredAt.Time
			o.DeliveredAt = &t
		}
		if restaurantID.Valid {
			id := int(restaurantID.Int64)
			o.RestaurantID = &id
		}

		orders = append(orders, &o)
		byID[o.OrderID] = &o
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list open orders: row iteration: %w", err)
	}

	if len(orders) == 0 {
		return orders, nil
	}

	if err := r.loadItems(ctx, byID); err != nil {
		return nil, err
	}

	return orders, nil
}

func (r *PostgresOrderRepository) loadItems(ctx context.Context, byID map[int]*domain.Order) error {
	ids := make([]int64, 0, len(byID))
	for id := range byID {
		ids = append(ids, int64(id))
	}

	q := `
	SELECT order_id, product_id, quantity, price
    FROM order_items
    WHERE order_id = ANY($1::bigint[])
    ORDER BY order_id, product_id;
	`

	rows, err := r.DB.QueryContext(ctx, q, ids)
	if err != nil {
		return fmt.Errorf("list open orders: query order_items table: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var orderID int
		var item domain.OrderItem
		if err := rows.Scan(&orderID, &item.ProductID, &item.Quantity, &item.Price); err != nil {
			return fmt.Errorf("list open orders: scan item rows: %w", err)
		}

		if o, ok := byID[orderID]; ok {
			o.Items = append(o.Items, item)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("list open orders: item row iteration: %w", err)
	}

	return nil
}
