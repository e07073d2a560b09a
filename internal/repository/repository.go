package repository

import (
	"context"
	"database/sql"
	"time"

	"inventory_tracker/internal/models"
)

type Users interface {
	CreateIfAbsent(ctx context.Context, username, hash string) (bool, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

type Products interface {
	List(ctx context.Context) ([]models.Product, error)
	Stats(ctx context.Context, threshold int) (models.Stats, error)
	GetByID(ctx context.Context, id int) (*models.Product, error)
	Insert(ctx context.Context, name, category string, price float64, quantity int) (int, time.Time, error)
	Update(ctx context.Context, id int, name, category string, price float64, quantity int) (bool, error)
	Delete(ctx context.Context, id int) (string, bool, error)
}

type Sessions interface {
	Create(ctx context.Context, tokenHash string, s models.Session) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*models.Session, error)
	Delete(ctx context.Context, tokenHash string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type Repository struct {
	Users    Users
	Products Products
	Sessions Sessions
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Users:    NewUserRepository(db),
		Products: NewProductRepository(db),
		Sessions: NewSessionRepository(db),
	}
}
