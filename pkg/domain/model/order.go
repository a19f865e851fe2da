package model

// Order is a customer order. Orders are immutable once written and are
// only ever appended to their backing file.
type Order struct {
	ID        string
	ProductID string
	Quantity  int
	Date      string // YYYY-MM-DD
}

// SupplierOrder is a restock order placed with a supplier. Placing one
// increments the ordered product's stock.
type SupplierOrder struct {
	ID         string
	SupplierID string
	ProductID  string
	Quantity   int
	Date       string // YYYY-MM-DD
}

type OrderRepository interface {
	NextID() (string, error)
	All() []*Order
	Insert(order *Order) error
}

type SupplierOrderRepository interface {
	NextID() (string, error)
	All() []*SupplierOrder
	Insert(order *SupplierOrder) error
}
