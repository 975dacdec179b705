package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mgracar/pinventory/internal/model"
)

// GetOrCreateSession returns the scan session with the given ID,
// creating it with defaults (add mode, no category) on first contact.
// Uses INSERT OR IGNORE + re-SELECT to avoid TOCTOU races.
func GetOrCreateSession(ctx context.Context, db *sql.DB, id string) (*model.Session, error) {
	_, err := db.ExecContext(ctx,
		`INSERT OR IGNORE INTO sessions (id) VALUES (?)`, id,
	)
	if err != nil {
		return nil, fmt.Errorf("creating session: %w", err)
	}

	sess := &model.Session{}
	err = db.QueryRowContext(ctx,
		`SELECT id, mode, category, created_at FROM sessions WHERE id = ?`, id,
	).Scan(&sess.ID, &sess.Mode, &sess.Category, &sess.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("getting session: %w", err)
	}
	return sess, nil
}

// ToggleSessionMode flips the session between add and remove mode and
// returns the new mode.
func ToggleSessionMode(ctx context.Context, db *sql.DB, id string) (string, error) {
	_, err := db.ExecContext(ctx,
		`UPDATE sessions
		 SET mode = CASE mode WHEN 'add' THEN 'remove' ELSE 'add' END
		 WHERE id = ?`, id,
	)
	if err != nil {
		return "", fmt.Errorf("toggling session mode: %w", err)
	}

	var mode string
	err = db.QueryRowContext(ctx,
		`SELECT mode FROM sessions WHERE id = ?`, id,
	).Scan(&mode)
	if err != nil {
		return "", fmt.Errorf("getting session mode: %w", err)
	}
	return mode, nil
}

// SetSessionCategory updates the session's selected category. The
// category does not need to exist in the inventory yet.
func SetSessionCategory(ctx context.Context, db *sql.DB, id, category string) error {
	_, err := db.ExecContext(ctx,
		`UPDATE sessions SET category = ? WHERE id = ?`, category, id,
	)
	if err != nil {
		return fmt.Errorf("setting session category: %w", err)
	}
	return nil
}
