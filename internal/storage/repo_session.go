package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// SessionRepo persists the labeling session (saved entries, image list,
// imported file name) as key/value pairs so a restart can restore them.
type SessionRepo struct {
	db *sql.DB
}

func NewSessionRepo(db *sql.DB) *SessionRepo {
	return &SessionRepo{db: db}
}

func (r *SessionRepo) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := r.db.QueryRowContext(ctx, "SELECT value FROM session_state WHERE key = ?", key).Scan(&value)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", false, nil
		}
		return "", false, fmt.Errorf("get session state %q: %w", key, err)
	}
	return value, true, nil
}

func (r *SessionRepo) Set(ctx context.Context, key, value string) error {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	if _, err := r.db.ExecContext(
		ctx,
		`INSERT INTO session_state (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key,
		value,
		now,
	); err != nil {
		return fmt.Errorf("set session state %q: %w", key, err)
	}
	return nil
}

func (r *SessionRepo) Remove(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM session_state WHERE key = ?", key); err != nil {
		return fmt.Errorf("remove session state %q: %w", key, err)
	}
	return nil
}
