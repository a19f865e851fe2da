package model

type ProductAdded struct {
	ProductID string
	Name      string
}

func (e ProductAdded) Type() string { return "ProductAdded" }

type ProductUpdated struct {
	ProductID string
}

func (e ProductUpdated) Type() string { return "ProductUpdated" }

type SupplierAdded struct {
	SupplierID string
	Name       string
}

func (e SupplierAdded) Type() string { return "SupplierAdded" }

type OrderPlaced struct {
	OrderID   string
	ProductID string
	Quantity  int
	NewStock  int
}

func (e OrderPlaced) Type() string { return "OrderPlaced" }

type StockReplenished struct {
	OrderID    string
	SupplierID string
	ProductID  string
	Quantity   int
	NewStock   int
}

func (e StockReplenished) Type() string { return "StockReplenished" }
