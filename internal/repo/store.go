package repo

import (
	"context"

	"github.com/thankimquy/FOODORDER/internal/domain"
)

// EntityStore is the persistence contract for the two entity collections.
// Deletes are idempotent: removing an absent id is not an error. UpdateOrder
// returns domain.ErrNotFound when the id is absent. ReplaceAll clears and
// repopulates both collections as one transaction.
type EntityStore interface {
	Foods(ctx context.Context) ([]domain.FoodItem, error)
	GetFood(ctx context.Context, id string) (domain.FoodItem, error)
	InsertFood(ctx context.Context, food domain.FoodItem) error
	DeleteFood(ctx context.Context, id string) error
	CountFoods(ctx context.Context) (int64, error)

	Orders(ctx context.Context) ([]domain.Order, error)
	GetOrder(ctx context.Context, id string) (domain.Order, error)
	InsertOrder(ctx context.Context, order domain.Order) error
	UpdateOrder(ctx context.Context, order domain.Order) error
	DeleteOrder(ctx context.Context, id string) error

	ReplaceAll(ctx context.Context, foods []domain.FoodItem, orders []domain.Order) error
}
