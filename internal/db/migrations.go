package db

import (
	"database/sql"
	"fmt"
)

// migrations is a list of SQL statements applied in order after schema creation.
// Each migration must be idempotent. Append new migrations at the end.
var migrations = []string{
	// Migration 1: Index the lowercase product name so case-insensitive
	// search doesn't scan the table once inventories grow.
	`CREATE INDEX IF NOT EXISTS idx_inventory_name ON inventory(product_name COLLATE NOCASE)`,
}

// Migrate ensures the schema and runs the database migrations.
func Migrate(db *sql.DB) error {
	if err := EnsureSchema(db); err != nil {
		return err
	}

	for i, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return fmt.Errorf("running migration %d: %w", i+1, err)
		}
	}

	return nil
}
