package repositories

import (
	"context"
	"database/sql"
	"delivery-dispatch-service/internal/domain"
	"errors"
	"fmt"
)

// Postgres-backed implementation of the OrderRepository port.
type PostgresOrderRepository struct{ DB *sql.DB }

func NewPostgresOrderRepository(db *sql.DB) *PostgresOrderRepository {
	return &PostgresOrderRepository{DB: db}
}

// Return the driver's assigned orders that are still routable.
func (r *PostgresOrderRepository) ListAssignedNonTerminal(
	ctx context.Context,
	orgID, driverID string,
) ([]*domain.Order, error) {
	if r.DB == nil {
		return nil, errors.New("order repository: DB is nil")
	}

	query := `
	SELECT
		order_id,
		org_id,
		driver_id,
		delivery_address,
		status
	FROM orders
	WHERE org_id = $1
		AND driver_id = $2
		AND status NOT IN ($3, $4)
	ORDER BY order_id;
	`
	rows, err := r.DB.QueryContext(
		ctx, query,
		orgID, driverID,
		string(domain.StatusDelivered), string(domain.StatusFailed),
	)
	if err != nil {
		return nil, fmt.Errorf("list assigned orders: query orders table: %w", err)
	}
	defer rows.Close()

	orders := make([]*domain.Order, 0, 16)
	for rows.Next() {
		var o domain.Order
		var status string
		if err := rows.Scan(&o.OrderID, &o.OrgID, &o.DriverID, &o.DeliveryAddress, &status); err != nil {
			return nil, fmt.Errorf("list assigned orders: scan row: %w", err)
		}
		o.Status = domain.OrderStatus(status)
		orders = append(orders, &o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list assigned orders: row iteration: %w", err)
	}

	return orders, nil
}
