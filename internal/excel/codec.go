// Package excel encodes the store contents to the two-sheet xlsx format and
// decodes it back. The sheet and header names are the wire contract: they
// must match older exports byte for byte or round-trips break.
package excel

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/thankimquy/FOODORDER/internal/domain"
	"github.com/thankimquy/FOODORDER/internal/id"
	"github.com/xuri/excelize/v2"
)

const (
	SheetFoods  = "Thực đơn"
	SheetOrders = "Danh sách đặt hàng"

	headerFoodID    = "Mã món"
	headerFoodName  = "Tên món ăn"
	headerFoodPrice = "Giá (VNĐ)"

	headerOrderID      = "Mã đơn hàng"
	headerCustomerName = "Tên khách hàng"
	headerItemName     = "Món ăn"
	headerUnitPrice    = "Đơn giá"
	headerQuantity     = "Số lượng"
	headerLineAmount   = "Thành tiền"
	headerOrderDate    = "Ngày đặt"

	// placeholders for cells that cannot be resolved
	placeholderDeleted  = "Đã xóa"
	placeholderNoName   = "Không tên"
	placeholderCustomer = "Khách ẩn danh"
)

type Codec struct {
	idgen id.Generator
	now   func() time.Time
}

func NewCodec(idgen id.Generator, now func() time.Time) *Codec {
	return &Codec{
		idgen: idgen,
		now:   now,
	}
}

// Encode flattens the store into the two sheets. Order lines referencing a
// deleted food export with a placeholder name and zero price.
func (c *Codec) Encode(snap domain.Snapshot) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName(f.GetSheetName(0), SheetFoods); err != nil {
		return nil, fmt.Errorf("failed to create foods sheet: %w", err)
	}
	if _, err := f.NewSheet(SheetOrders); err != nil {
		return nil, fmt.Errorf("failed to create orders sheet: %w", err)
	}

	foodHeader := []interface{}{headerFoodID, headerFoodName, headerFoodPrice}
	if err := f.SetSheetRow(SheetFoods, "A1", &foodHeader); err != nil {
		return nil, fmt.Errorf("failed to write foods header: %w", err)
	}
	for i, food := range snap.Foods {
		row := []interface{}{food.ID, food.Name, food.Price}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(SheetFoods, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write food row: %w", err)
		}
	}

	orderHeader := []interface{}{
		headerOrderID, headerCustomerName, headerItemName,
		headerUnitPrice, headerQuantity, headerLineAmount, headerOrderDate,
	}
	if err := f.SetSheetRow(SheetOrders, "A1", &orderHeader); err != nil {
		return nil, fmt.Errorf("failed to write orders header: %w", err)
	}

	rowNum := 2
	for _, order := range snap.Orders {
		for _, item := range order.Items {
			itemName := placeholderDeleted
			var unitPrice float64
			if food, ok := domain.FindFood(snap.Foods, item.FoodID); ok {
				itemName = food.Name
				unitPrice = food.Price
			}

			row := []interface{}{
				order.ID, order.CustomerName, itemName,
				unitPrice, item.Quantity, unitPrice * float64(item.Quantity), order.OrderDate,
			}
			cell, _ := excelize.CoordinatesToCellName(1, rowNum)
			if err := f.SetSheetRow(SheetOrders, cell, &row); err != nil {
				return nil, fmt.Errorf("failed to write order row: %w", err)
			}
			rowNum++
		}
	}

	return f, nil
}

func (c *Codec) Write(w io.Writer, snap domain.Snapshot) error {
	f, err := c.Encode(snap)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}

	return nil
}

// Decode reconstructs entities from the two sheets. Row-level malformation
// degrades per cell (defaults, dropped lines) instead of aborting; only an
// unreadable container or both sheets missing is an error.
//
// Order lines are re-resolved against the imported menu BY NAME, not by id,
// mirroring the historical export format. Renaming a food between export and
// import therefore orphans the lines referencing the old name; rows whose
// name no longer resolves contribute no line.
func (c *Codec) Decode(r io.Reader) (domain.Snapshot, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("%w: unreadable workbook: %v", domain.ErrImport, err)
	}
	defer f.Close()

	foodRows, foodErr := f.GetRows(SheetFoods)
	orderRows, orderErr := f.GetRows(SheetOrders)
	if foodErr != nil && orderErr != nil {
		return domain.Snapshot{}, fmt.Errorf("%w: no recognizable sheets in workbook", domain.ErrImport)
	}

	foods := c.decodeFoods(foodRows)
	orders := c.decodeOrders(orderRows, foods)

	return domain.Snapshot{Foods: foods, Orders: orders}, nil
}

func (c *Codec) decodeFoods(rows [][]string) []domain.FoodItem {
	foods := []domain.FoodItem{}
	if len(rows) == 0 {
		return foods
	}

	cols := headerIndex(rows[0])
	for _, row := range rows[1:] {
		if emptyRow(row) {
			continue
		}

		foodID := cellValue(row, column(cols, headerFoodID))
		if foodID == "" {
			foodID = c.idgen.NewID()
		}

		name := cellValue(row, column(cols, headerFoodName))
		if name == "" {
			name = placeholderNoName
		}

		price, err := strconv.ParseFloat(strings.TrimSpace(cellValue(row, column(cols, headerFoodPrice))), 64)
		if err != nil {
			price = 0
		}

		foods = append(foods, domain.FoodItem{ID: foodID, Name: name, Price: price})
	}

	return foods
}

func (c *Codec) decodeOrders(rows [][]string, foods []domain.FoodItem) []domain.Order {
	orders := []domain.Order{}
	if len(rows) == 0 {
		return orders
	}

	byName := make(map[string]string, len(foods))
	for _, f := range foods {
		if _, exists := byName[f.Name]; !exists {
			byName[f.Name] = f.ID
		}
	}

	cols := headerIndex(rows[0])
	index := make(map[string]int)
	for _, row := range rows[1:] {
		if emptyRow(row) {
			continue
		}

		customerName := cellValue(row, column(cols, headerCustomerName))
		orderDate := cellValue(row, column(cols, headerOrderDate))

		// rows without an order id fall back to a synthetic grouping key;
		// rows with nothing to group on get a fresh id so they do not all
		// collide into one order
		orderID := cellValue(row, column(cols, headerOrderID))
		if orderID == "" {
			orderID = customerName + orderDate
		}
		if orderID == "" {
			orderID = c.idgen.NewID()
		}

		pos, exists := index[orderID]
		if !exists {
			if customerName == "" {
				customerName = placeholderCustomer
			}
			if orderDate == "" {
				orderDate = c.now().Format(domain.OrderDateLayout)
			}
			orders = append(orders, domain.Order{
				ID:           orderID,
				CustomerName: customerName,
				Items:        []domain.OrderItem{},
				OrderDate:    orderDate,
			})
			pos = len(orders) - 1
			index[orderID] = pos
		}

		// unresolved names contribute no line at all
		foodID, ok := byName[cellValue(row, column(cols, headerItemName))]
		if !ok {
			continue
		}

		// zero coerces to one the same way an unparseable cell does, a
		// stored line always carries a positive quantity
		quantity, err := strconv.Atoi(strings.TrimSpace(cellValue(row, column(cols, headerQuantity))))
		if err != nil || quantity == 0 {
			quantity = 1
		}

		orders[pos].Items = append(orders[pos].Items, domain.OrderItem{
			FoodID:   foodID,
			Quantity: quantity,
		})
	}

	return orders
}

// headerIndex maps header text to column position so decoding survives
// reordered columns.
func headerIndex(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}
	return cols
}

func column(cols map[string]int, name string) int {
	if i, ok := cols[name]; ok {
		return i
	}
	return -1
}

func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func emptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
