package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"inventory_tracker/internal/models"
)

type SessionRepository struct {
	db *sql.DB
}

func NewSessionRepository(db *sql.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

var _ Sessions = (*SessionRepository)(nil)

const (
	insertSessionSQL = `
		INSERT INTO sessions (token_hash, user_id, username, expires_at)
		VALUES (?, ?, ?, ?)
	`

	selectSessionSQL = `
		SELECT user_id, username, expires_at FROM sessions WHERE token_hash = ?
	`

	deleteSessionSQL        = `DELETE FROM sessions WHERE token_hash = ?`
	deleteExpiredSessionSQL = `DELETE FROM sessions WHERE expires_at <= ?`
)

// Create stores a session keyed by the HMAC of its token.
func (r *SessionRepository) Create(ctx context.Context, tokenHash string, s models.Session) error {
	_, err := r.db.ExecContext(ctx, insertSessionSQL,
		tokenHash, s.UserID, s.Username, s.ExpiresAt.UTC())
	if err != nil {
		return fmt.Errorf("insert session for user %d: %w", s.UserID, err)
	}
	return nil
}

// GetByTokenHash looks up a session. Returns (nil, nil) if not found.
func (r *SessionRepository) GetByTokenHash(ctx context.Context, tokenHash string) (*models.Session, error) {
	var s models.Session
	err := r.db.QueryRowContext(ctx, selectSessionSQL, tokenHash).
		Scan(&s.UserID, &s.Username, &s.ExpiresAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select session: %w", err)
	}
	s.ExpiresAt = s.ExpiresAt.UTC()
	return &s, nil
}

// Delete removes a single session. Deleting an absent token is not an error.
func (r *SessionRepository) Delete(ctx context.Context, tokenHash string) error {
	if _, err := r.db.ExecContext(ctx, deleteSessionSQL, tokenHash); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// DeleteExpired removes all sessions whose expiry is at or before now
// and reports how many were swept.
func (r *SessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, deleteExpiredSessionSQL, now.UTC())
	if err != nil {
		return 0, fmt.Errorf("delete expired sessions: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected for expired sessions: %w", err)
	}
	return n, nil
}
