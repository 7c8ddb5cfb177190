package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Capacity is kept as text because older rows carry unit suffixes ("50kg").
// customer_phone and date_sold are legacy columns read as fallbacks.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS products (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		capacity TEXT NOT NULL DEFAULT '',
		brand TEXT NOT NULL DEFAULT '',
		model TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS serials (
		id TEXT PRIMARY KEY,
		product_id TEXT,
		serial_number TEXT NOT NULL,
		brand TEXT NOT NULL DEFAULT '',
		model TEXT NOT NULL DEFAULT '',
		capacity TEXT,
		purchase_date TEXT NOT NULL DEFAULT '',
		selling_price NUMERIC(14,2),
		status TEXT NOT NULL DEFAULT '',
		customer_name TEXT NOT NULL DEFAULT '',
		customer_mobile TEXT NOT NULL DEFAULT '',
		customer_phone TEXT NOT NULL DEFAULT '',
		sale_date TEXT NOT NULL DEFAULT '',
		date_sold TEXT NOT NULL DEFAULT '',
		bill_book_number TEXT NOT NULL DEFAULT '',
		bill_number TEXT NOT NULL DEFAULT '',
		warranty_start_date TEXT NOT NULL DEFAULT '',
		warranty_end_date TEXT NOT NULL DEFAULT '',
		warranty_status TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS serials_serial_number_idx ON serials (serial_number)`,
	`CREATE INDEX IF NOT EXISTS serials_product_id_idx ON serials (product_id)`,
}

// Migrate creates missing tables and indexes.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schema {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("platform/db: migrate: %w", err)
		}
	}
	return nil
}
