package model

import "time"

// Scan modes.
const (
	ModeAdd    = "add"
	ModeRemove = "remove"
)

// Session is the per-session scan context: which direction a scan
// adjusts quantity in, and which category newly created items get.
// Created lazily on first contact, never explicitly torn down.
type Session struct {
	ID        string    `json:"id"`
	Mode      string    `json:"mode"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"created_at"`
}
