// Package memory provides a mutex-guarded in-memory EntityStore used in tests
// and when the service runs without a database.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/thankimquy/FOODORDER/internal/domain"
)

type Store struct {
	mu     sync.RWMutex
	foods  []domain.FoodItem
	orders []domain.Order
}

func New() *Store {
	return &Store{}
}

func (s *Store) Foods(ctx context.Context) ([]domain.FoodItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return cloneFoods(s.foods), nil
}

func (s *Store) GetFood(ctx context.Context, id string) (domain.FoodItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, f := range s.foods {
		if f.ID == id {
			return f, nil
		}
	}
	return domain.FoodItem{}, fmt.Errorf("food %s: %w", id, domain.ErrNotFound)
}

func (s *Store) InsertFood(ctx context.Context, food domain.FoodItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.foods = append(s.foods, food)
	return nil
}

func (s *Store) DeleteFood(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, f := range s.foods {
		if f.ID == id {
			s.foods = append(s.foods[:i], s.foods[i+1:]...)
			return nil
		}
	}
	return nil
}

func (s *Store) CountFoods(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return int64(len(s.foods)), nil
}

func (s *Store) Orders(ctx context.Context) ([]domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return cloneOrders(s.orders), nil
}

func (s *Store) GetOrder(ctx context.Context, id string) (domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, o := range s.orders {
		if o.ID == id {
			return cloneOrder(o), nil
		}
	}
	return domain.Order{}, fmt.Errorf("order %s: %w", id, domain.ErrNotFound)
}

func (s *Store) InsertOrder(ctx context.Context, order domain.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.orders = append(s.orders, cloneOrder(order))
	return nil
}

func (s *Store) UpdateOrder(ctx context.Context, order domain.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, o := range s.orders {
		if o.ID == order.ID {
			s.orders[i] = cloneOrder(order)
			return nil
		}
	}
	return fmt.Errorf("order %s: %w", order.ID, domain.ErrNotFound)
}

func (s *Store) DeleteOrder(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, o := range s.orders {
		if o.ID == id {
			s.orders = append(s.orders[:i], s.orders[i+1:]...)
			return nil
		}
	}
	return nil
}

// ReplaceAll swaps both collections under one lock so readers never observe
// one collection cleared and the other still populated.
func (s *Store) ReplaceAll(ctx context.Context, foods []domain.FoodItem, orders []domain.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.foods = cloneFoods(foods)
	s.orders = cloneOrders(orders)
	return nil
}

func cloneFoods(foods []domain.FoodItem) []domain.FoodItem {
	out := make([]domain.FoodItem, len(foods))
	copy(out, foods)
	return out
}

func cloneOrder(o domain.Order) domain.Order {
	items := make([]domain.OrderItem, len(o.Items))
	copy(items, o.Items)
	o.Items = items
	return o
}

func cloneOrders(orders []domain.Order) []domain.Order {
	out := make([]domain.Order, len(orders))
	for i, o := range orders {
		out[i] = cloneOrder(o)
	}
	return out
}
