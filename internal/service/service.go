package service

import (
	"context"
	"time"

	"inventory_tracker/internal/models"
	"inventory_tracker/internal/repository"
)

// Authorization owns the credential and session lifecycle.
type Authorization interface {
	SignIn(ctx context.Context, username, password string) (string, *models.Session, error)
	Authenticate(ctx context.Context, token string) (*models.Session, error)
	SignOut(ctx context.Context, token string) error
	EnsureDefaultAdmin(ctx context.Context, username, password string) (bool, error)
}

// Inventory exposes product CRUD plus aggregate statistics.
type Inventory interface {
	List(ctx context.Context) ([]models.Product, error)
	Stats(ctx context.Context) (models.Stats, error)
	Get(ctx context.Context, id int) (*models.Product, error)
	Add(ctx context.Context, in ProductInput) (*models.Product, error)
	Update(ctx context.Context, id int, in ProductInput) (*models.Product, error)
	Delete(ctx context.Context, id int) (string, error)
	Threshold() int
}

// Sweeper runs the background loop that evicts expired sessions.
// Stop via context cancellation in main() for graceful shutdown.
type Sweeper interface {
	Run(ctx context.Context, tick time.Duration)
}

// Config carries the knobs the service layer needs from main().
type Config struct {
	SessionSecret     string
	LowStockThreshold int
}

type Service struct {
	Authorization
	Inventory
	Sweeper
}

// NewService wires the repository layer into concrete services.
func NewService(repos *repository.Repository, cfg Config) *Service {
	return &Service{
		Authorization: NewAuthService(repos.Users, repos.Sessions, cfg.SessionSecret),
		Inventory:     NewInventoryService(repos.Products, cfg.LowStockThreshold),
		Sweeper:       NewSessionSweeper(repos.Sessions),
	}
}
