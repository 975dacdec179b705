package scan

import (
	"context"
	"errors"
	"testing"

	"github.com/mgracar/pinventory/internal/db"
	"github.com/mgracar/pinventory/internal/model"
	"github.com/mgracar/pinventory/internal/store"
)

// fakeLookup is a canned external lookup.
type fakeLookup struct {
	name string
	err  error
}

func (f *fakeLookup) Lookup(_ context.Context, _ string) (string, error) {
	return f.name, f.err
}

func addSession() *model.Session {
	return &model.Session{ID: "test", Mode: model.ModeAdd}
}

func removeSession() *model.Session {
	return &model.Session{ID: "test", Mode: model.ModeRemove}
}

func TestScanEmptyBarcode(t *testing.T) {
	scanner := &Scanner{DB: db.NewTestDB(t)}

	result, err := scanner.Scan(context.Background(), addSession(), "  ", "")
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if result.OK {
		t.Error("expected a user-visible error")
	}
	if result.Message != "No barcode provided." {
		t.Errorf("unexpected message %q", result.Message)
	}
}

func TestScanUnknownNoSuggestionNoName(t *testing.T) {
	database := db.NewTestDB(t)
	scanner := &Scanner{DB: database} // lookup disabled
	ctx := context.Background()

	result, err := scanner.Scan(ctx, addSession(), "111", "")
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if result.OK {
		t.Error("expected a user-visible error")
	}
	if result.Message != "No product found. Please enter a name." {
		t.Errorf("unexpected message %q", result.Message)
	}
	if !result.FocusName {
		t.Error("expected the focus hint for the name field")
	}
	if result.Barcode != "111" {
		t.Errorf("expected the barcode echoed back, got %q", result.Barcode)
	}

	// No mutation.
	if item, _ := store.GetItem(ctx, database, "111"); item != nil {
		t.Error("expected the store to be unchanged")
	}

	// Resubmission with a name creates the row.
	result, err = scanner.Scan(ctx, addSession(), "111", "Widget")
	if err != nil {
		t.Fatalf("Scan (resubmit): %v", err)
	}
	if !result.OK || !result.Created {
		t.Fatalf("expected a created result, got %+v", result)
	}

	item, _ := store.GetItem(ctx, database, "111")
	if item == nil {
		t.Fatal("expected the item to exist")
	}
	if item.Name != "Widget" || item.Quantity != 1 || item.Category != "Other" {
		t.Errorf("expected Widget/1/Other, got %+v", item)
	}
}

func TestScanUnknownWithSuggestionPrefillsOnly(t *testing.T) {
	database := db.NewTestDB(t)
	scanner := &Scanner{DB: database, Lookup: &fakeLookup{name: "Suggested Snack"}}
	ctx := context.Background()

	result, err := scanner.Scan(ctx, addSession(), "42", "")
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if result.PrefillName != "Suggested Snack" {
		t.Errorf("expected the suggestion as prefill, got %q", result.PrefillName)
	}
	if result.Created {
		t.Error("expected no row to be created yet")
	}
	if item, _ := store.GetItem(ctx, database, "42"); item != nil {
		t.Error("expected the store to be unchanged")
	}

	// Confirmation resubmission with the prefilled name creates it.
	result, err = scanner.Scan(ctx, addSession(), "42", "Suggested Snack")
	if err != nil {
		t.Fatalf("Scan (confirm): %v", err)
	}
	if !result.Created {
		t.Fatal("expected the row to be created")
	}
	item, _ := store.GetItem(ctx, database, "42")
	if item == nil || item.Name != "Suggested Snack" || item.Quantity != 1 {
		t.Errorf("expected Suggested Snack with quantity 1, got %+v", item)
	}
}

func TestScanUserNameOverridesSuggestion(t *testing.T) {
	database := db.NewTestDB(t)
	scanner := &Scanner{DB: database, Lookup: &fakeLookup{name: "API Name"}}
	ctx := context.Background()

	result, err := scanner.Scan(ctx, addSession(), "77", "My Name")
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if !result.Created {
		t.Fatal("expected the row to be created")
	}

	item, _ := store.GetItem(ctx, database, "77")
	if item.Name != "My Name" {
		t.Errorf("expected the submitted name to win, got %q", item.Name)
	}
}

func TestScanLookupFailureTreatedAsNoSuggestion(t *testing.T) {
	database := db.NewTestDB(t)
	scanner := &Scanner{DB: database, Lookup: &fakeLookup{err: errors.New("boom")}}

	result, err := scanner.Scan(context.Background(), addSession(), "88", "")
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if result.OK || !result.FocusName {
		t.Errorf("expected the lookup miss flow, got %+v", result)
	}
}

func TestScanExistingAddMode(t *testing.T) {
	database := db.NewTestDB(t)
	scanner := &Scanner{DB: database}
	ctx := context.Background()

	store.UpsertItem(ctx, database, "222", "Bolt", 3, "", "Hardware")

	result, err := scanner.Scan(ctx, addSession(), "222", "")
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if !result.OK {
		t.Fatalf("expected success, got %+v", result)
	}
	if result.Item.Quantity != 4 {
		t.Errorf("expected quantity 4, got %d", result.Item.Quantity)
	}
	if result.Message != "Added 1 → Bolt (Now: 4)" {
		t.Errorf("unexpected message %q", result.Message)
	}
}

func TestScanExistingRemoveMode(t *testing.T) {
	database := db.NewTestDB(t)
	scanner := &Scanner{DB: database}
	ctx := context.Background()

	store.UpsertItem(ctx, database, "222", "Bolt", 3, "", "Hardware")

	result, err := scanner.Scan(ctx, removeSession(), "222", "")
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if result.Message != "Removed 1 → Bolt (Now: 2)" {
		t.Errorf("unexpected message %q", result.Message)
	}

	// Repeated removes floor at zero.
	scanner.Scan(ctx, removeSession(), "222", "")
	scanner.Scan(ctx, removeSession(), "222", "")
	result, _ = scanner.Scan(ctx, removeSession(), "222", "")
	if result.Item.Quantity != 0 {
		t.Errorf("expected quantity floored at 0, got %d", result.Item.Quantity)
	}
}

func TestScanRemoveModeCreatesWithZero(t *testing.T) {
	database := db.NewTestDB(t)
	scanner := &Scanner{DB: database}
	ctx := context.Background()

	result, err := scanner.Scan(ctx, removeSession(), "999", "Phantom")
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if result.Message != "Created with 0 → Phantom" {
		t.Errorf("unexpected message %q", result.Message)
	}

	item, _ := store.GetItem(ctx, database, "999")
	if item.Quantity != 0 {
		t.Errorf("expected quantity 0, got %d", item.Quantity)
	}
}

func TestScanUsesSessionCategory(t *testing.T) {
	database := db.NewTestDB(t)
	scanner := &Scanner{DB: database}
	ctx := context.Background()

	sess := &model.Session{ID: "test", Mode: model.ModeAdd, Category: "Snacks"}
	scanner.Scan(ctx, sess, "31", "Chips")

	item, _ := store.GetItem(ctx, database, "31")
	if item.Category != "Snacks" {
		t.Errorf("expected the session category, got %q", item.Category)
	}
}

func TestScanRescanOfSoftDeletedItem(t *testing.T) {
	database := db.NewTestDB(t)
	scanner := &Scanner{DB: database, Lookup: &fakeLookup{name: "should not be used"}}
	ctx := context.Background()

	store.UpsertItem(ctx, database, "50", "Tape", 2, "", "")
	store.SoftDeleteItem(ctx, database, "50")

	// A zero-quantity row is existing, not re-created.
	result, err := scanner.Scan(ctx, addSession(), "50", "")
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if result.Created {
		t.Error("expected no new row for a soft-deleted barcode")
	}
	if result.Item.Quantity != 1 {
		t.Errorf("expected quantity 1 after rescan, got %d", result.Item.Quantity)
	}
}

func TestScanUnnamedProductFallback(t *testing.T) {
	database := db.NewTestDB(t)
	scanner := &Scanner{DB: database}
	ctx := context.Background()

	store.CreateItem(ctx, database, "60", "", 2, "")

	result, _ := scanner.Scan(ctx, removeSession(), "60", "")
	if result.Message != "Removed 1 → Unnamed Product (Now: 1)" {
		t.Errorf("unexpected message %q", result.Message)
	}
}
