// Package scan implements the barcode scan workflow: resolving a
// scanned barcode against the inventory, the external product lookup,
// or a manually entered name, and adjusting quantity by the session's
// scan mode.
package scan

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mgracar/pinventory/internal/model"
	"github.com/mgracar/pinventory/internal/store"
)

// NameLookup resolves a barcode to a suggested product name. An empty
// name with a nil error means the barcode is simply unknown.
type NameLookup interface {
	Lookup(ctx context.Context, barcode string) (string, error)
}

// Scanner processes scan submissions.
type Scanner struct {
	DB     *sql.DB
	Lookup NameLookup // optional; nil disables external lookup
}

// Result is the outcome of one scan submission, shaped for rendering.
type Result struct {
	OK      bool        `json:"ok"`
	Message string      `json:"message"`
	Item    *model.Item `json:"item,omitempty"`
	Created bool        `json:"created,omitempty"`

	// Barcode and PrefillName re-populate the form when the scan needs
	// a follow-up submission; FocusName asks the UI to move input
	// focus to the name field.
	Barcode     string `json:"barcode,omitempty"`
	PrefillName string `json:"prefill_name,omitempty"`
	FocusName   bool   `json:"focus_name,omitempty"`
}

// Scan runs the per-scan decision sequence. A returned error means the
// store failed and the request should abort; user-visible problems
// (empty barcode, unknown product) come back as a Result with OK false.
//
// Whether a name was submitted is the only signal that distinguishes a
// confirmation resubmission from a first scan: a submitted name always
// wins over the external suggestion.
func (s *Scanner) Scan(ctx context.Context, sess *model.Session, barcode, name string) (*Result, error) {
	barcode = strings.TrimSpace(barcode)
	name = strings.TrimSpace(name)

	if barcode == "" {
		return &Result{Message: "No barcode provided."}, nil
	}

	item, err := store.GetItem(ctx, s.DB, barcode)
	if err != nil {
		return nil, err
	}

	if item != nil {
		return s.adjustExisting(ctx, sess, item)
	}
	return s.resolveUnknown(ctx, sess, barcode, name)
}

// adjustExisting bumps the quantity of a known item by one in the
// session's mode direction, flooring at zero.
func (s *Scanner) adjustExisting(ctx context.Context, sess *model.Session, item *model.Item) (*Result, error) {
	delta := 1
	if sess.Mode == model.ModeRemove {
		delta = -1
	}

	updated, err := store.AdjustQuantity(ctx, s.DB, item.Barcode, delta)
	if err != nil {
		return nil, err
	}

	var msg string
	if sess.Mode == model.ModeRemove {
		msg = fmt.Sprintf("Removed 1 → %s (Now: %d)", updated.DisplayName(), updated.Quantity)
	} else {
		msg = fmt.Sprintf("Added 1 → %s (Now: %d)", updated.DisplayName(), updated.Quantity)
	}
	return &Result{OK: true, Message: msg, Item: updated}, nil
}

// resolveUnknown handles a barcode the store doesn't know: consult the
// external lookup, and either create the item (a name was submitted),
// offer the suggested name for confirmation, or ask for a name.
func (s *Scanner) resolveUnknown(ctx context.Context, sess *model.Session, barcode, name string) (*Result, error) {
	suggestion := ""
	if s.Lookup != nil {
		var err error
		suggestion, err = s.Lookup.Lookup(ctx, barcode)
		if err != nil {
			// Lookup failures are never fatal; scan continues as if
			// the barcode were unknown to the external database.
			slog.Warn("product lookup failed", "barcode", barcode, "error", err)
			suggestion = ""
		}
	}

	if name == "" {
		if suggestion == "" {
			return &Result{
				Message:   "No product found. Please enter a name.",
				Barcode:   barcode,
				FocusName: true,
			}, nil
		}
		// Suggested name goes back for confirmation; the row is only
		// created once the user resubmits with the name filled in.
		return &Result{
			OK:          true,
			Message:     fmt.Sprintf("Found %q. Submit again to confirm.", suggestion),
			Barcode:     barcode,
			PrefillName: suggestion,
		}, nil
	}

	quantity := 1
	if sess.Mode == model.ModeRemove {
		quantity = 0
	}
	category := sess.Category
	if category == "" {
		category = "Other"
	}

	item, err := store.CreateItem(ctx, s.DB, barcode, name, quantity, category)
	if err != nil {
		return nil, err
	}

	var msg string
	if sess.Mode == model.ModeRemove {
		msg = fmt.Sprintf("Created with 0 → %s", item.Name)
	} else {
		msg = fmt.Sprintf("Added 1 → %s (Now: 1)", item.Name)
	}
	return &Result{OK: true, Message: msg, Item: item, Created: true}, nil
}
