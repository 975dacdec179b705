package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mgracar/pinventory/internal/model"
)

// itemColumns is the column list shared by all item queries.
const itemColumns = `barcode, product_name, quantity, serial_number, category, created_at, updated_at`

func scanItem(row interface{ Scan(...any) error }) (*model.Item, error) {
	item := &model.Item{}
	var serial, category sql.NullString
	err := row.Scan(&item.Barcode, &item.Name, &item.Quantity, &serial, &category, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return nil, err
	}
	item.SerialNumber = serial.String
	item.Category = category.String
	return item, nil
}

// nullable maps the empty string to NULL for nullable text columns.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// GetItem returns an item by barcode, including soft-deleted (zero
// quantity) items, or nil if the barcode is unknown.
func GetItem(ctx context.Context, db *sql.DB, barcode string) (*model.Item, error) {
	item, err := scanItem(db.QueryRowContext(ctx,
		`SELECT `+itemColumns+` FROM inventory WHERE barcode = ?`, barcode,
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting item: %w", err)
	}
	return item, nil
}

// ListItems returns all items with quantity > 0 matching the filter.
func ListItems(ctx context.Context, db *sql.DB, filter model.ItemFilter) ([]model.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM inventory WHERE quantity > 0`
	var args []any

	if filter.Category != "" && filter.Category != "All" {
		query += ` AND category = ?`
		args = append(args, filter.Category)
	}
	if filter.Search != "" {
		// SQLite LIKE is case-insensitive for ASCII by default.
		pattern := "%" + filter.Search + "%"
		query += ` AND (product_name LIKE ? OR barcode LIKE ?)`
		args = append(args, pattern, pattern)
	}

	switch filter.Sort {
	case model.SortNameDesc:
		query += ` ORDER BY product_name DESC, barcode`
	case model.SortQuantityAsc:
		query += ` ORDER BY quantity ASC, barcode`
	case model.SortQuantityDesc:
		query += ` ORDER BY quantity DESC, barcode`
	default:
		query += ` ORDER BY product_name ASC, barcode`
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	defer rows.Close()

	var items []model.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

// ListCategories returns the distinct non-empty categories, sorted.
func ListCategories(ctx context.Context, db *sql.DB) ([]string, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT DISTINCT category FROM inventory
		 WHERE category IS NOT NULL AND category != ''
		 ORDER BY category ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	defer rows.Close()

	var categories []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("scanning category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// UpsertItem inserts an item, or on a barcode conflict overwrites
// name/serial/category and adds the submitted quantity to the stored
// one. This additive merge is the "Add Item" form contract.
func UpsertItem(ctx context.Context, db *sql.DB, barcode, name string, quantity int, serial, category string) (*model.Item, error) {
	if quantity < 0 {
		return nil, fmt.Errorf("quantity must be non-negative")
	}

	_, err := db.ExecContext(ctx,
		`INSERT INTO inventory (barcode, product_name, quantity, serial_number, category)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT (barcode) DO UPDATE SET
		     product_name  = excluded.product_name,
		     serial_number = excluded.serial_number,
		     category      = excluded.category,
		     quantity      = quantity + excluded.quantity,
		     updated_at    = CURRENT_TIMESTAMP`,
		barcode, name, quantity, nullable(serial), nullable(category),
	)
	if err != nil {
		return nil, fmt.Errorf("upserting item: %w", err)
	}

	return GetItem(ctx, db, barcode)
}

// CreateItem inserts a fresh item from a scan, with an empty serial.
func CreateItem(ctx context.Context, db *sql.DB, barcode, name string, quantity int, category string) (*model.Item, error) {
	_, err := db.ExecContext(ctx,
		`INSERT INTO inventory (barcode, product_name, quantity, serial_number, category)
		 VALUES (?, ?, ?, '', ?)`,
		barcode, name, quantity, nullable(category),
	)
	if err != nil {
		return nil, fmt.Errorf("creating item: %w", err)
	}

	return GetItem(ctx, db, barcode)
}

// UpdateItem overwrites all mutable fields of an item. The submitted
// quantity replaces the stored one, unlike UpsertItem.
func UpdateItem(ctx context.Context, db *sql.DB, barcode, name string, quantity int, serial, category string) error {
	if quantity < 0 {
		return fmt.Errorf("quantity must be non-negative")
	}

	_, err := db.ExecContext(ctx,
		`UPDATE inventory
		 SET product_name = ?, quantity = ?, serial_number = ?, category = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE barcode = ?`,
		name, quantity, nullable(serial), nullable(category), barcode,
	)
	if err != nil {
		return fmt.Errorf("updating item: %w", err)
	}
	return nil
}

// SoftDeleteItem zeroes an item's quantity. The row stays resolvable
// by barcode but disappears from the default list view.
func SoftDeleteItem(ctx context.Context, db *sql.DB, barcode string) error {
	_, err := db.ExecContext(ctx,
		`UPDATE inventory SET quantity = 0, updated_at = CURRENT_TIMESTAMP WHERE barcode = ?`,
		barcode,
	)
	if err != nil {
		return fmt.Errorf("soft-deleting item: %w", err)
	}
	return nil
}

// AdjustQuantity applies a delta to an item's quantity, floored at
// zero, and returns the item as stored afterwards. Returns nil if the
// barcode is unknown.
func AdjustQuantity(ctx context.Context, db *sql.DB, barcode string, delta int) (*model.Item, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	item, err := scanItem(tx.QueryRowContext(ctx,
		`SELECT `+itemColumns+` FROM inventory WHERE barcode = ?`, barcode,
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting item for adjustment: %w", err)
	}

	newQty := item.Quantity + delta
	if newQty < 0 {
		newQty = 0
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE inventory SET quantity = ?, updated_at = CURRENT_TIMESTAMP WHERE barcode = ?`,
		newQty, barcode,
	)
	if err != nil {
		return nil, fmt.Errorf("adjusting quantity: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing adjustment: %w", err)
	}

	item.Quantity = newQty
	return item, nil
}
