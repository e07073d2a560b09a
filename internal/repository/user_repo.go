package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"inventory_tracker/internal/models"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Ensure implementation of Users interface at compile time.
var _ Users = (*UserRepository)(nil)

const (
	insertUserIfAbsentSQL   = `INSERT OR IGNORE INTO users (username, password_hash) VALUES (?, ?)`
	selectUserByUsernameSQL = `SELECT id, username, password_hash FROM users WHERE username = ?`
)

// CreateIfAbsent inserts a user unless the username already exists.
// Returns true when a row was actually inserted, so repeated seeding
// has an at-most-once effect.
func (r *UserRepository) CreateIfAbsent(ctx context.Context, username, passwordHash string) (bool, error) {
	res, err := r.db.ExecContext(ctx, insertUserIfAbsentSQL, username, passwordHash)
	if err != nil {
		return false, fmt.Errorf("insert user %q: %w", username, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected for user %q: %w", username, err)
	}
	return n > 0, nil
}

// GetByUsername fetches a user by exact username match. Returns (nil, nil) if not found.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	err := r.db.QueryRowContext(ctx, selectUserByUsernameSQL, username).
		Scan(&u.ID, &u.Username, &u.PasswordHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select user %q: %w", username, err)
	}
	return &u, nil
}
