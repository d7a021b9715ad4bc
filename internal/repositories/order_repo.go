package repositories

import (
	"context"

	"lessonshop/internal/models"
)

// OrderRepository defines the interface for order data access.
// Orders are never updated or deleted.
type OrderRepository interface {
	// GetAll returns every order, newest first.
	GetAll(ctx context.Context) ([]models.Order, error)
	GetByID(ctx context.Context, id string) (*models.Order, error)
	Create(ctx context.Context, order *models.Order) error
}
