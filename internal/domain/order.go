package domain

// OrderDateLayout is the display format orders are stamped with. It is stored
// and exported verbatim, so changing it breaks round-trips with old exports.
const OrderDateLayout = "15:04:05 2/1/2006"

type OrderItem struct {
	FoodID   string `bson:"food_id" json:"foodId"`
	Quantity int    `bson:"quantity" json:"quantity"`
}

type Order struct {
	ID           string      `bson:"_id" json:"id"`
	CustomerName string      `bson:"customer_name" json:"customerName"`
	Items        []OrderItem `bson:"items" json:"items"`
	OrderDate    string      `bson:"order_date" json:"orderDate"`
}

// Snapshot is the full store contents as exchanged with the snapshot codec,
// the legacy store and the excel codec.
type Snapshot struct {
	Foods  []FoodItem `json:"foods"`
	Orders []Order    `json:"orders"`
}
