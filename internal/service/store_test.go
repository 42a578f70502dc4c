package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thankimquy/FOODORDER/internal/domain"
	"github.com/thankimquy/FOODORDER/internal/id"
	"github.com/thankimquy/FOODORDER/internal/queue"
	"github.com/thankimquy/FOODORDER/internal/store/memory"
	"go.uber.org/zap"
)

func testClock() time.Time {
	return time.Date(2025, 3, 5, 10, 30, 0, 0, time.UTC)
}

func newTestStoreService() (*StoreService, *queue.MemoryBroker) {
	broker := queue.NewMemoryBroker()
	return NewStoreService(
		memory.New(),
		broker,
		id.NewSequence("id"),
		testClock,
		zap.NewNop().Sugar(),
	), broker
}

func TestAddFood(t *testing.T) {
	s, _ := newTestStoreService()
	ctx := context.Background()

	first, err := s.AddFood(ctx, "Phở bò", 45000)
	require.NoError(t, err)
	second, err := s.AddFood(ctx, "Bún chả", 40000)
	require.NoError(t, err)

	assert.Equal(t, "Phở bò", first.Name)
	assert.Equal(t, float64(45000), first.Price)
	assert.NotEmpty(t, first.ID)
	assert.NotEqual(t, first.ID, second.ID)

	foods, err := s.Foods(ctx)
	require.NoError(t, err)
	assert.Len(t, foods, 2)
}

func TestAddFood_Validation(t *testing.T) {
	s, _ := newTestStoreService()
	ctx := context.Background()

	_, err := s.AddFood(ctx, "", 1000)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = s.AddFood(ctx, "   ", 1000)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = s.AddFood(ctx, "Phở bò", -1)
	assert.ErrorIs(t, err, domain.ErrValidation)

	foods, err := s.Foods(ctx)
	require.NoError(t, err)
	assert.Empty(t, foods)
}

func TestAddOrder_DropsZeroQuantities(t *testing.T) {
	s, _ := newTestStoreService()
	ctx := context.Background()

	order, err := s.AddOrder(ctx, "Minh", map[string]int{"food-a": 0, "food-b": 3})
	require.NoError(t, err)

	require.Len(t, order.Items, 1)
	assert.Equal(t, "food-b", order.Items[0].FoodID)
	assert.Equal(t, 3, order.Items[0].Quantity)
	assert.Equal(t, testClock().Format(domain.OrderDateLayout), order.OrderDate)
}

func TestAddOrder_Validation(t *testing.T) {
	s, _ := newTestStoreService()
	ctx := context.Background()

	_, err := s.AddOrder(ctx, "", map[string]int{"food-a": 1})
	assert.ErrorIs(t, err, domain.ErrValidation)

	// every quantity filtered out leaves an empty order
	_, err = s.AddOrder(ctx, "Minh", map[string]int{"food-a": 0, "food-b": -2})
	assert.ErrorIs(t, err, domain.ErrValidation)

	orders, err := s.Orders(ctx)
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestUpdateOrder_PreservesIDAndDate(t *testing.T) {
	s, _ := newTestStoreService()
	ctx := context.Background()

	created, err := s.AddOrder(ctx, "Minh", map[string]int{"food-a": 2})
	require.NoError(t, err)

	updated, err := s.UpdateOrder(ctx, created.ID, "Lan", map[string]int{"food-b": 1})
	require.NoError(t, err)

	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, created.OrderDate, updated.OrderDate)
	assert.Equal(t, "Lan", updated.CustomerName)
	require.Len(t, updated.Items, 1)
	assert.Equal(t, "food-b", updated.Items[0].FoodID)
}

func TestUpdateOrder_NotFound(t *testing.T) {
	s, _ := newTestStoreService()
	ctx := context.Background()

	existing, err := s.AddOrder(ctx, "Minh", map[string]int{"food-a": 2})
	require.NoError(t, err)

	_, err = s.UpdateOrder(ctx, "missing", "Lan", map[string]int{"food-b": 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// the failed call left the store untouched
	orders, err := s.Orders(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, existing, orders[0])
}

func TestRemoveFood_KeepsReferencingOrders(t *testing.T) {
	s, _ := newTestStoreService()
	ctx := context.Background()

	food, err := s.AddFood(ctx, "Phở bò", 45000)
	require.NoError(t, err)
	order, err := s.AddOrder(ctx, "Minh", map[string]int{food.ID: 2})
	require.NoError(t, err)

	require.NoError(t, s.RemoveFood(ctx, food.ID))

	orders, err := s.Orders(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, order.ID, orders[0].ID)

	// the dangling line now values to zero
	foods, err := s.Foods(ctx)
	require.NoError(t, err)
	assert.Equal(t, float64(0), domain.OrderTotal(orders[0], foods))
}

func TestRemoveFood_Idempotent(t *testing.T) {
	s, _ := newTestStoreService()
	ctx := context.Background()

	assert.NoError(t, s.RemoveFood(ctx, "never-existed"))
	assert.NoError(t, s.RemoveOrder(ctx, "never-existed"))
}

func TestReplaceAll(t *testing.T) {
	s, _ := newTestStoreService()
	ctx := context.Background()

	_, err := s.AddFood(ctx, "Phở bò", 45000)
	require.NoError(t, err)

	snap := domain.Snapshot{
		Foods:  []domain.FoodItem{{ID: "imported-f1", Name: "Bánh mì", Price: 20000}},
		Orders: []domain.Order{{ID: "imported-o1", CustomerName: "Lan", Items: []domain.OrderItem{{FoodID: "imported-f1", Quantity: 1}}, OrderDate: "x"}},
	}
	require.NoError(t, s.ReplaceAll(ctx, snap))

	foods, err := s.Foods(ctx)
	require.NoError(t, err)
	require.Len(t, foods, 1)
	assert.Equal(t, "imported-f1", foods[0].ID)

	orders, err := s.Orders(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "imported-o1", orders[0].ID)
}

func TestMigrateIfEmpty(t *testing.T) {
	s, _ := newTestStoreService()
	ctx := context.Background()

	legacy := domain.Snapshot{
		Foods:  []domain.FoodItem{{ID: "legacy-f1", Name: "Phở bò", Price: 45000}},
		Orders: []domain.Order{{ID: "legacy-o1", CustomerName: "Minh", Items: []domain.OrderItem{{FoodID: "legacy-f1", Quantity: 1}}, OrderDate: "x"}},
	}

	migrated, err := s.MigrateIfEmpty(ctx, legacy)
	require.NoError(t, err)
	assert.True(t, migrated)

	foods, err := s.Foods(ctx)
	require.NoError(t, err)
	assert.Len(t, foods, 1)

	// repeated calls are no-ops
	migrated, err = s.MigrateIfEmpty(ctx, domain.Snapshot{
		Foods: []domain.FoodItem{{ID: "other", Name: "Khác", Price: 1}},
	})
	require.NoError(t, err)
	assert.False(t, migrated)

	foods, err = s.Foods(ctx)
	require.NoError(t, err)
	require.Len(t, foods, 1)
	assert.Equal(t, "legacy-f1", foods[0].ID)
}

func TestMigrateIfEmpty_PopulatedStore(t *testing.T) {
	s, _ := newTestStoreService()
	ctx := context.Background()

	existing, err := s.AddFood(ctx, "Phở bò", 45000)
	require.NoError(t, err)
	order, err := s.AddOrder(ctx, "Minh", map[string]int{existing.ID: 1})
	require.NoError(t, err)

	migrated, err := s.MigrateIfEmpty(ctx, domain.Snapshot{
		Foods: []domain.FoodItem{{ID: "legacy-f1", Name: "Khác", Price: 1}},
	})
	require.NoError(t, err)
	assert.False(t, migrated)

	foods, err := s.Foods(ctx)
	require.NoError(t, err)
	require.Len(t, foods, 1)
	assert.Equal(t, existing, foods[0])

	orders, err := s.Orders(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, order, orders[0])
}

func TestMutationsPublishEvents(t *testing.T) {
	s, broker := newTestStoreService()
	ctx := context.Background()

	var events []string
	err := broker.Subscribe(ctx, queue.QueueStoreEvents, func(ctx context.Context, msg []byte) error {
		events = append(events, string(msg))
		return nil
	})
	require.NoError(t, err)

	food, err := s.AddFood(ctx, "Phở bò", 45000)
	require.NoError(t, err)
	_, err = s.AddOrder(ctx, "Minh", map[string]int{food.ID: 1})
	require.NoError(t, err)
	require.NoError(t, s.RemoveFood(ctx, food.ID))

	require.Len(t, events, 3)
	assert.Contains(t, events[0], domain.EventFoodCreated)
	assert.Contains(t, events[1], domain.EventOrderCreated)
	assert.Contains(t, events[2], domain.EventFoodDeleted)
}
