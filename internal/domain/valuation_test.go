package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderTotal(t *testing.T) {
	foods := []FoodItem{
		{ID: "food-a", Name: "Phở bò", Price: 10000},
		{ID: "food-b", Name: "Bún chả", Price: 5000},
	}
	order := Order{
		ID:           "order-1",
		CustomerName: "Minh",
		Items: []OrderItem{
			{FoodID: "food-a", Quantity: 2},
			{FoodID: "food-b", Quantity: 1},
		},
	}

	assert.Equal(t, float64(25000), OrderTotal(order, foods))
}

func TestOrderTotal_DanglingReference(t *testing.T) {
	foods := []FoodItem{
		{ID: "food-a", Name: "Phở bò", Price: 10000},
	}
	order := Order{
		ID: "order-1",
		Items: []OrderItem{
			{FoodID: "food-a", Quantity: 1},
			{FoodID: "deleted-food", Quantity: 3},
		},
	}

	// the dangling line contributes zero instead of failing
	assert.Equal(t, float64(10000), OrderTotal(order, foods))
	assert.Equal(t, float64(0), LineTotal(OrderItem{FoodID: "deleted-food", Quantity: 3}, foods))
}

func TestTotalRevenue(t *testing.T) {
	foods := []FoodItem{
		{ID: "food-a", Price: 1000},
	}
	orders := []Order{
		{ID: "o1", Items: []OrderItem{{FoodID: "food-a", Quantity: 2}}},
		{ID: "o2", Items: []OrderItem{{FoodID: "food-a", Quantity: 3}}},
	}

	assert.Equal(t, float64(5000), TotalRevenue(orders, foods))
	assert.Equal(t, float64(0), TotalRevenue(nil, foods))
}

func TestSalesByFood(t *testing.T) {
	orders := []Order{
		{ID: "o1", Items: []OrderItem{
			{FoodID: "food-a", Quantity: 2},
			{FoodID: "food-b", Quantity: 1},
		}},
		{ID: "o2", Items: []OrderItem{
			{FoodID: "food-a", Quantity: 5},
			{FoodID: "deleted-food", Quantity: 4},
		}},
	}

	sales := SalesByFood(orders)

	assert.Equal(t, 7, sales["food-a"])
	assert.Equal(t, 1, sales["food-b"])
	// ids of foods deleted since then are kept
	assert.Equal(t, 4, sales["deleted-food"])
}
