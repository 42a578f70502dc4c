package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thankimquy/FOODORDER/internal/domain"
)

func TestFoodLifecycle(t *testing.T) {
	s := New()
	ctx := context.Background()

	require.NoError(t, s.InsertFood(ctx, domain.FoodItem{ID: "f1", Name: "Phở bò", Price: 45000}))
	require.NoError(t, s.InsertFood(ctx, domain.FoodItem{ID: "f2", Name: "Bánh mì", Price: 20000}))

	count, err := s.CountFoods(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	food, err := s.GetFood(ctx, "f1")
	require.NoError(t, err)
	assert.Equal(t, "Phở bò", food.Name)

	_, err = s.GetFood(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, s.DeleteFood(ctx, "f1"))
	require.NoError(t, s.DeleteFood(ctx, "f1")) // idempotent

	foods, err := s.Foods(ctx)
	require.NoError(t, err)
	require.Len(t, foods, 1)
	assert.Equal(t, "f2", foods[0].ID)
}

func TestOrderLifecycle(t *testing.T) {
	s := New()
	ctx := context.Background()

	order := domain.Order{
		ID:           "o1",
		CustomerName: "Minh",
		Items:        []domain.OrderItem{{FoodID: "f1", Quantity: 2}},
		OrderDate:    "10:30:00 5/3/2025",
	}
	require.NoError(t, s.InsertOrder(ctx, order))

	got, err := s.GetOrder(ctx, "o1")
	require.NoError(t, err)
	assert.Equal(t, order, got)

	_, err = s.GetOrder(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	order.CustomerName = "Lan"
	require.NoError(t, s.UpdateOrder(ctx, order))

	got, err = s.GetOrder(ctx, "o1")
	require.NoError(t, err)
	assert.Equal(t, "Lan", got.CustomerName)

	err = s.UpdateOrder(ctx, domain.Order{ID: "missing"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, s.DeleteOrder(ctx, "o1"))
	require.NoError(t, s.DeleteOrder(ctx, "o1")) // idempotent

	orders, err := s.Orders(ctx)
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestReturnedSlicesAreCopies(t *testing.T) {
	s := New()
	ctx := context.Background()

	require.NoError(t, s.InsertOrder(ctx, domain.Order{
		ID:    "o1",
		Items: []domain.OrderItem{{FoodID: "f1", Quantity: 1}},
	}))

	orders, err := s.Orders(ctx)
	require.NoError(t, err)
	orders[0].Items[0].Quantity = 99

	got, err := s.GetOrder(ctx, "o1")
	require.NoError(t, err)
	assert.Equal(t, 1, got.Items[0].Quantity)
}

func TestReplaceAll(t *testing.T) {
	s := New()
	ctx := context.Background()

	require.NoError(t, s.InsertFood(ctx, domain.FoodItem{ID: "old-f", Name: "Cũ", Price: 1}))
	require.NoError(t, s.InsertOrder(ctx, domain.Order{ID: "old-o", CustomerName: "Cũ"}))

	foods := []domain.FoodItem{{ID: "new-f", Name: "Mới", Price: 2}}
	orders := []domain.Order{{ID: "new-o", CustomerName: "Mới", Items: []domain.OrderItem{{FoodID: "new-f", Quantity: 1}}}}
	require.NoError(t, s.ReplaceAll(ctx, foods, orders))

	gotFoods, err := s.Foods(ctx)
	require.NoError(t, err)
	require.Len(t, gotFoods, 1)
	assert.Equal(t, "new-f", gotFoods[0].ID)

	gotOrders, err := s.Orders(ctx)
	require.NoError(t, err)
	require.Len(t, gotOrders, 1)
	assert.Equal(t, "new-o", gotOrders[0].ID)

	require.NoError(t, s.ReplaceAll(ctx, nil, nil))

	count, err := s.CountFoods(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}
