package models

// OrderLine is a single position of an order. ProductName and Price are
// denormalized from the selected product; RowSum is derived locally and
// must be recalculated whenever Quantity or Price change.
type OrderLine struct {
	ID          int64   `json:"id"`
	OrderID     int64   `json:"orderId"`
	ProductID   int64   `json:"productId"`
	ProductName string  `json:"productName,omitempty"`
	Price       float64 `json:"price"`
	Quantity    int64   `json:"quantity"`
	RowSum      float64 `json:"rowSum"`
}

// Recalc refreshes the derived line total.
func (l *OrderLine) Recalc() {
	l.RowSum = float64(l.Quantity) * l.Price
}

func (l *OrderLine) UnmarshalJSON(data []byte) error {
	m, err := decodeObject(data)
	if err != nil {
		return err
	}
	l.ID, _ = idField(m)
	l.OrderID, _ = intField(m, "orderId", "OrderId", "OrderID")
	l.ProductID, _ = intField(m, "productId", "ProductId", "ProductID")
	l.ProductName, _ = strField(m, "productName", "ProductName")
	l.Price, _ = numField(m, "price", "Price")
	l.Quantity, _ = intField(m, "quantity", "Quantity")
	if rowSum, ok := numField(m, "rowSum", "RowSum"); ok {
		l.RowSum = rowSum
	} else {
		l.Recalc()
	}
	return nil
}

type Order struct {
	ID        int64       `json:"id"`
	UserID    int64       `json:"userId"`
	UserEmail string      `json:"userEmail,omitempty"`
	Status    string      `json:"status,omitempty"`
	CreatedAt string      `json:"createdAt,omitempty"`
	Items     []OrderLine `json:"items"`
	Total     float64     `json:"total"`
}

// Recalc refreshes the derived order total from its lines.
func (o *Order) Recalc() {
	var total float64
	for i := range o.Items {
		total += o.Items[i].RowSum
	}
	o.Total = total
}

func (o *Order) UnmarshalJSON(data []byte) error {
	m, err := decodeObject(data)
	if err != nil {
		return err
	}
	o.ID, _ = idField(m)
	o.UserID, _ = intField(m, "userId", "UserId", "UserID")
	o.UserEmail, _ = strField(m, "userEmail", "UserEmail")
	o.Status, _ = strField(m, "status", "Status")
	o.CreatedAt, _ = strField(m, "createdAt", "CreatedAt")

	o.Items = nil
	if items, ok := firstAny(m, "items", "Items", "orderItems", "OrderItems"); ok {
		if err := reparse(items, &o.Items); err != nil {
			return err
		}
	}
	if total, ok := numField(m, "total", "Total"); ok {
		o.Total = total
	} else {
		o.Recalc()
	}
	return nil
}
