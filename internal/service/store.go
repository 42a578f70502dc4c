package service

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/thankimquy/FOODORDER/internal/domain"
	"github.com/thankimquy/FOODORDER/internal/id"
	"github.com/thankimquy/FOODORDER/internal/queue"
	"github.com/thankimquy/FOODORDER/internal/repo"
	"go.uber.org/zap"
)

// StoreService owns the entity collections: it validates input, assigns ids
// and timestamps, persists through the EntityStore and publishes a store
// event after every committed mutation. Publishing is best-effort; a broker
// failure never rolls back or fails the mutation.
type StoreService struct {
	store  repo.EntityStore
	broker queue.Broker
	idgen  id.Generator
	now    func() time.Time
	logger *zap.SugaredLogger
}

func NewStoreService(
	store repo.EntityStore,
	broker queue.Broker,
	idgen id.Generator,
	now func() time.Time,
	logger *zap.SugaredLogger,
) *StoreService {
	return &StoreService{
		store:  store,
		broker: broker,
		idgen:  idgen,
		now:    now,
		logger: logger,
	}
}

func (s *StoreService) Foods(ctx context.Context) ([]domain.FoodItem, error) {
	return s.store.Foods(ctx)
}

func (s *StoreService) Orders(ctx context.Context) ([]domain.Order, error) {
	return s.store.Orders(ctx)
}

func (s *StoreService) AddFood(ctx context.Context, name string, price float64) (domain.FoodItem, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.FoodItem{}, fmt.Errorf("%w: food name is required", domain.ErrValidation)
	}
	if math.IsNaN(price) || math.IsInf(price, 0) || price < 0 {
		return domain.FoodItem{}, fmt.Errorf("%w: price must be a non-negative number", domain.ErrValidation)
	}

	food := domain.FoodItem{
		ID:    s.idgen.NewID(),
		Name:  name,
		Price: price,
	}

	if err := s.store.InsertFood(ctx, food); err != nil {
		return domain.FoodItem{}, fmt.Errorf("failed to save food: %w", err)
	}

	s.publish(ctx, domain.EventFoodCreated, food.ID)
	s.logger.Infow("food created", "food_id", food.ID, "name", food.Name)

	return food, nil
}

func (s *StoreService) RemoveFood(ctx context.Context, foodID string) error {
	// idempotent, and orders referencing the food are left alone
	if err := s.store.DeleteFood(ctx, foodID); err != nil {
		return fmt.Errorf("failed to delete food: %w", err)
	}

	s.publish(ctx, domain.EventFoodDeleted, foodID)
	s.logger.Infow("food deleted", "food_id", foodID)

	return nil
}

func (s *StoreService) AddOrder(ctx context.Context, customerName string, quantities map[string]int) (domain.Order, error) {
	items, err := buildItems(customerName, quantities)
	if err != nil {
		return domain.Order{}, err
	}

	order := domain.Order{
		ID:           s.idgen.NewID(),
		CustomerName: strings.TrimSpace(customerName),
		Items:        items,
		OrderDate:    s.now().Format(domain.OrderDateLayout),
	}

	if err := s.store.InsertOrder(ctx, order); err != nil {
		return domain.Order{}, fmt.Errorf("failed to save order: %w", err)
	}

	s.publish(ctx, domain.EventOrderCreated, order.ID)
	s.logger.Infow("order created", "order_id", order.ID, "customer", order.CustomerName, "lines", len(order.Items))

	return order, nil
}

// UpdateOrder replaces the customer name and lines of an existing order while
// keeping its id and original order date.
func (s *StoreService) UpdateOrder(ctx context.Context, orderID, customerName string, quantities map[string]int) (domain.Order, error) {
	existing, err := s.store.GetOrder(ctx, orderID)
	if err != nil {
		return domain.Order{}, err
	}

	items, err := buildItems(customerName, quantities)
	if err != nil {
		return domain.Order{}, err
	}

	updated := domain.Order{
		ID:           existing.ID,
		CustomerName: strings.TrimSpace(customerName),
		Items:        items,
		OrderDate:    existing.OrderDate,
	}

	if err := s.store.UpdateOrder(ctx, updated); err != nil {
		return domain.Order{}, fmt.Errorf("failed to update order: %w", err)
	}

	s.publish(ctx, domain.EventOrderUpdated, updated.ID)
	s.logger.Infow("order updated", "order_id", updated.ID, "customer", updated.CustomerName)

	return updated, nil
}

func (s *StoreService) RemoveOrder(ctx context.Context, orderID string) error {
	if err := s.store.DeleteOrder(ctx, orderID); err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}

	s.publish(ctx, domain.EventOrderDeleted, orderID)
	s.logger.Infow("order deleted", "order_id", orderID)

	return nil
}

// ReplaceAll swaps the entire store contents. Import payloads land here
// unvalidated: the codecs already applied their own per-row degradation.
func (s *StoreService) ReplaceAll(ctx context.Context, snap domain.Snapshot) error {
	if err := s.store.ReplaceAll(ctx, snap.Foods, snap.Orders); err != nil {
		return fmt.Errorf("failed to replace store contents: %w", err)
	}

	s.publish(ctx, domain.EventStoreReplaced, "")
	s.logger.Infow("store replaced", "foods", len(snap.Foods), "orders", len(snap.Orders))

	return nil
}

// MigrateIfEmpty seeds the store from a legacy snapshot, but only when the
// food collection is empty. Safe to call on every startup.
func (s *StoreService) MigrateIfEmpty(ctx context.Context, snap domain.Snapshot) (bool, error) {
	count, err := s.store.CountFoods(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to count foods: %w", err)
	}
	if count > 0 {
		return false, nil
	}

	if err := s.store.ReplaceAll(ctx, snap.Foods, snap.Orders); err != nil {
		return false, fmt.Errorf("failed to migrate legacy data: %w", err)
	}

	s.publish(ctx, domain.EventStoreMigrated, "")
	s.logger.Infow("legacy data migrated", "foods", len(snap.Foods), "orders", len(snap.Orders))

	return true, nil
}

func (s *StoreService) Stats(ctx context.Context) (domain.Stats, error) {
	foods, err := s.store.Foods(ctx)
	if err != nil {
		return domain.Stats{}, err
	}
	orders, err := s.store.Orders(ctx)
	if err != nil {
		return domain.Stats{}, err
	}

	return domain.Stats{
		TotalRevenue: domain.TotalRevenue(orders, foods),
		OrderCount:   len(orders),
		FoodCount:    len(foods),
		SalesByFood:  domain.SalesByFood(orders),
	}, nil
}

// buildItems turns a draft quantity map into order lines: non-positive
// quantities are dropped, the rest collapse to one line per food id, sorted
// for determinism.
func buildItems(customerName string, quantities map[string]int) ([]domain.OrderItem, error) {
	if strings.TrimSpace(customerName) == "" {
		return nil, fmt.Errorf("%w: customer name is required", domain.ErrValidation)
	}

	foodIDs := make([]string, 0, len(quantities))
	for foodID, qty := range quantities {
		if qty > 0 {
			foodIDs = append(foodIDs, foodID)
		}
	}
	sort.Strings(foodIDs)

	items := make([]domain.OrderItem, 0, len(foodIDs))
	for _, foodID := range foodIDs {
		items = append(items, domain.OrderItem{FoodID: foodID, Quantity: quantities[foodID]})
	}

	if len(items) == 0 {
		return nil, fmt.Errorf("%w: order must contain at least one item", domain.ErrValidation)
	}

	return items, nil
}

func (s *StoreService) publish(ctx context.Context, eventType, entityID string) {
	event := domain.StoreEvent{
		EventType: eventType,
		EntityID:  entityID,
		Timestamp: s.now(),
	}

	eventBytes, err := json.Marshal(event)
	if err != nil {
		s.logger.Errorw("failed to marshal store event", "event_type", eventType, "error", err)
		return
	}

	if err := s.broker.Publish(ctx, queue.QueueStoreEvents, eventBytes); err != nil {
		s.logger.Errorw("failed to publish store event", "event_type", eventType, "error", err)
	}
}
