package store

import (
	"context"
	"testing"

	"github.com/mgracar/pinventory/internal/db"
	"github.com/mgracar/pinventory/internal/model"
)

func TestGetOrCreateSessionDefaults(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	sess, err := GetOrCreateSession(ctx, database, "s1")
	if err != nil {
		t.Fatalf("GetOrCreateSession: %v", err)
	}
	if sess.Mode != model.ModeAdd {
		t.Errorf("expected default mode add, got %q", sess.Mode)
	}
	if sess.Category != "" {
		t.Errorf("expected empty default category, got %q", sess.Category)
	}

	// Second call returns the same session, not a fresh one.
	SetSessionCategory(ctx, database, "s1", "Tools")
	again, err := GetOrCreateSession(ctx, database, "s1")
	if err != nil {
		t.Fatalf("GetOrCreateSession (again): %v", err)
	}
	if again.Category != "Tools" {
		t.Errorf("expected persisted category Tools, got %q", again.Category)
	}
}

func TestToggleSessionMode(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	GetOrCreateSession(ctx, database, "s1")

	mode, err := ToggleSessionMode(ctx, database, "s1")
	if err != nil {
		t.Fatalf("ToggleSessionMode: %v", err)
	}
	if mode != model.ModeRemove {
		t.Errorf("expected remove after first toggle, got %q", mode)
	}

	// Double toggle returns to the original mode.
	mode, _ = ToggleSessionMode(ctx, database, "s1")
	if mode != model.ModeAdd {
		t.Errorf("expected add after second toggle, got %q", mode)
	}
}

func TestSessionsAreIndependent(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	GetOrCreateSession(ctx, database, "s1")
	GetOrCreateSession(ctx, database, "s2")

	ToggleSessionMode(ctx, database, "s1")

	s2, _ := GetOrCreateSession(ctx, database, "s2")
	if s2.Mode != model.ModeAdd {
		t.Errorf("expected s2 unaffected by s1 toggle, got mode %q", s2.Mode)
	}
}

func TestGetSessionSecretStable(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	first, err := GetSessionSecret(ctx, database)
	if err != nil {
		t.Fatalf("GetSessionSecret: %v", err)
	}
	if first == "" {
		t.Fatal("expected a generated secret")
	}

	second, _ := GetSessionSecret(ctx, database)
	if second != first {
		t.Error("expected the same secret on repeated calls")
	}
}
