package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS categories (
		id TEXT PRIMARY KEY,
		name VARCHAR(25) NOT NULL,
		description VARCHAR(100) NOT NULL DEFAULT '',
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT clock_timestamp()
	);`,
	`CREATE TABLE IF NOT EXISTS products (
		id TEXT PRIMARY KEY,
		name VARCHAR(100) NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		price NUMERIC(10, 2) NOT NULL CHECK (price >= 0),
		category_id TEXT REFERENCES categories (id) ON DELETE SET NULL,
		is_available BOOLEAN NOT NULL DEFAULT TRUE,
		preparation_time INT NOT NULL CHECK (preparation_time > 0),
		created_at TIMESTAMPTZ NOT NULL
	);`,
	`CREATE INDEX IF NOT EXISTS products_category_idx ON products (category_id);`,
	`CREATE TABLE IF NOT EXISTS orders (
		id TEXT PRIMARY KEY,
		customer VARCHAR(255) NOT NULL,
		order_date TIMESTAMPTZ NOT NULL,
		total_amount NUMERIC(10, 2) NOT NULL DEFAULT 0 CHECK (total_amount >= 0),
		status VARCHAR(20) NOT NULL CHECK (status IN ('pending', 'completed', 'canceled')),
		notes TEXT NOT NULL DEFAULT '',
		version INT NOT NULL DEFAULT 0
	);`,
	`CREATE TABLE IF NOT EXISTS order_items (
		id TEXT PRIMARY KEY,
		order_id TEXT NOT NULL REFERENCES orders (id) ON DELETE CASCADE,
		product_id TEXT NOT NULL REFERENCES products (id) ON DELETE RESTRICT,
		quantity INT NOT NULL DEFAULT 1 CHECK (quantity > 0),
		created_at TIMESTAMPTZ NOT NULL DEFAULT clock_timestamp()
	);`,
	`CREATE INDEX IF NOT EXISTS order_items_order_idx ON order_items (order_id);`,
	`CREATE INDEX IF NOT EXISTS order_items_product_idx ON order_items (product_id);`,
	`CREATE TABLE IF NOT EXISTS customers (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL UNIQUE,
		phone VARCHAR(15) NOT NULL,
		address TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT clock_timestamp()
	);`,
}

// Migrate creates the tables when they do not exist yet.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	for i, stmt := range schema {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("schema statement %d: %w", i, err)
		}
	}
	return nil
}
