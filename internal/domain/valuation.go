package domain

// Valuation is computed against an explicit menu snapshot so results stay
// point-in-time consistent. A line whose food item no longer exists values to
// zero instead of failing.

func LineTotal(item OrderItem, foods []FoodItem) float64 {
	food, ok := FindFood(foods, item.FoodID)
	if !ok {
		return 0
	}
	return food.Price * float64(item.Quantity)
}

func OrderTotal(order Order, foods []FoodItem) float64 {
	var sum float64
	for _, item := range order.Items {
		sum += LineTotal(item, foods)
	}
	return sum
}

func TotalRevenue(orders []Order, foods []FoodItem) float64 {
	var sum float64
	for _, order := range orders {
		sum += OrderTotal(order, foods)
	}
	return sum
}

// SalesByFood sums quantities sold per food id across all orders. Ids of
// foods deleted after the orders were placed stay in the result.
func SalesByFood(orders []Order) map[string]int {
	sales := make(map[string]int)
	for _, order := range orders {
		for _, item := range order.Items {
			sales[item.FoodID] += item.Quantity
		}
	}
	return sales
}

// Stats is the dashboard aggregate derived from the current store contents.
type Stats struct {
	TotalRevenue float64        `json:"total_revenue"`
	OrderCount   int            `json:"order_count"`
	FoodCount    int            `json:"food_count"`
	SalesByFood  map[string]int `json:"sales_by_food"`
}
