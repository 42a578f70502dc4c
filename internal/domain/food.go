package domain

type FoodItem struct {
	ID    string  `bson:"_id" json:"id"`
	Name  string  `bson:"name" json:"name"`
	Price float64 `bson:"price" json:"price"`
}

// FindFood looks a food item up by id in a point-in-time snapshot of the menu.
func FindFood(foods []FoodItem, id string) (FoodItem, bool) {
	for _, f := range foods {
		if f.ID == id {
			return f, true
		}
	}
	return FoodItem{}, false
}
