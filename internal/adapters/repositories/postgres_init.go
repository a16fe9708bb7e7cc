package repositories

import (
	"database/sql"
	"delivery-dispatch-service/internal/domain"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
)

// Initialize the orders schema.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createOrdersQuery := `
	CREATE TABLE IF NOT EXISTS orders (
		order_id TEXT PRIMARY KEY,
		org_id TEXT NOT NULL,
		driver_id TEXT NOT NULL DEFAULT '',
		delivery_address TEXT NOT NULL,
		status TEXT NOT NULL
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_orders_org_driver_status
	ON orders(org_id, driver_id, status);
	`

	statements := []string{
		createOrdersQuery,
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

type OrderSeed struct {
	OrderID         string `json:"order_id"`
	OrgID           string `json:"org_id"`
	DriverID        string `json:"driver_id"`
	DeliveryAddress string `json:"delivery_address"`
	Status          string `json:"status"`
}

// Populate the database with order data from a JSON file. Seeds without an
// order id get a generated one; seeds without a status start as Assigned so
// they are immediately routable.
func SeedFromJSON(db *sql.DB, jsonPath string) error {
	raw, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed orders: read %q: %w", jsonPath, err)
	}

	var data []OrderSeed
	if err := json.Unmarshal(raw, &data); err != nil {
		return fmt.Errorf("seed orders: parse json: %w", err)
	}

	rows := make([]OrderSeed, 0, len(data))
	for i, item := range data {
		if strings.TrimSpace(item.OrderID) == "" {
			item.OrderID = uuid.NewString()
		}
		if strings.TrimSpace(item.OrgID) == "" {
			return fmt.Errorf("seed orders: item at index %d: org_id cannot be empty", i+1)
		}
		if strings.TrimSpace(item.DeliveryAddress) == "" {
			return fmt.Errorf("seed orders: item at index %d: delivery_address cannot be empty", i+1)
		}
		if strings.TrimSpace(item.Status) == "" {
			item.Status = string(domain.StatusAssigned)
		}
		rows = append(rows, item)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed orders: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `
	INSERT INTO orders (
		order_id,
		org_id,
		driver_id,
		delivery_address,
		status
	)
	VALUES ($1, $2, $3, $4, $5)
	ON CONFLICT (order_id) DO UPDATE
	SET org_id = EXCLUDED.org_id,
		driver_id = EXCLUDED.driver_id,
		delivery_address = EXCLUDED.delivery_address,
		status = EXCLUDED.status;
	`
	stmt, err := tx.Prepare(query)
	if err != nil {
		return fmt.Errorf("seed orders: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, o := range rows {
		if _, err := stmt.Exec(o.OrderID, o.OrgID, o.DriverID, o.DeliveryAddress, o.Status); err != nil {
			return fmt.Errorf("seed orders: insert order_id=%s: %w", o.OrderID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed orders: commit tx: %w", err)
	}

	return nil
}
