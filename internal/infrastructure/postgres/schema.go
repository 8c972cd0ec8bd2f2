package postgres

import (
	"context"
	"fmt"
)

// schemaStatements DDL idempotente. items guarda el stock embebido (availableStock, soldOut, damaged);
// inventory_audit es append-only con un registro por correlation_id.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS categories (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL,
		department  TEXT NOT NULL DEFAULT '',
		tax         TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS items (
		id               TEXT PRIMARY KEY,
		name             TEXT NOT NULL,
		category_id      TEXT NOT NULL REFERENCES categories(id) ON DELETE RESTRICT,
		base_price       NUMERIC(14,2) NOT NULL,
		selling_price    NUMERIC(14,2) NOT NULL,
		available_stock  INTEGER NOT NULL CHECK (available_stock >= 0),
		sold_out         INTEGER NOT NULL DEFAULT 0,
		damaged          INTEGER NOT NULL DEFAULT 0,
		unit_of_measure  TEXT NOT NULL DEFAULT '',
		special_product  BOOLEAN NOT NULL DEFAULT FALSE,
		reviews          JSONB NOT NULL DEFAULT '[]'::jsonb,
		last_update_date TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_items_category ON items (category_id)`,
	`CREATE TABLE IF NOT EXISTS inventory_audit (
		id             TEXT PRIMARY KEY,
		correlation_id TEXT NOT NULL UNIQUE,
		status         TEXT NOT NULL,
		message        TEXT NOT NULL DEFAULT '',
		item_count     INTEGER NOT NULL,
		results        JSONB NOT NULL DEFAULT '[]'::jsonb,
		created_at     TIMESTAMPTZ NOT NULL
	)`,
}

// EnsureSchema crea las tablas si no existen.
func EnsureSchema(ctx context.Context, q Querier) error {
	for _, stmt := range schemaStatements {
		if _, err := q.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
