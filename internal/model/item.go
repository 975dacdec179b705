package model

import "time"

// Item represents a stock record, keyed by barcode.
type Item struct {
	Barcode      string    `json:"barcode"`
	Name         string    `json:"name"`
	Quantity     int       `json:"quantity"`
	SerialNumber string    `json:"serial_number,omitempty"`
	Category     string    `json:"category,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// DisplayName returns the item's name, or a placeholder when it's empty.
func (i *Item) DisplayName() string {
	if i.Name == "" {
		return "Unnamed Product"
	}
	return i.Name
}

// Sort orders for the inventory list.
const (
	SortNameAsc      = "name"
	SortNameDesc     = "name_desc"
	SortQuantityAsc  = "quantity_asc"
	SortQuantityDesc = "quantity_desc"
)

// ItemFilter narrows and orders the inventory list. Zero value means
// all items with quantity > 0, sorted by name ascending.
type ItemFilter struct {
	Search   string // case-insensitive substring over name or barcode
	Category string // exact match; empty or "All" disables the filter
	Sort     string // one of the Sort* constants; anything else falls back to name
}
