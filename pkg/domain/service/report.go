package service

import (
	"sort"

	"inventory/pkg/domain/model"
)

// DefaultLowStockThreshold mirrors the "< 5 units" rule of the low stock
// report.
const DefaultLowStockThreshold = 5

type InventoryRow struct {
	ProductID    string
	Name         string
	Description  string
	Price        float64
	Stock        int
	SupplierName string // "N/A" when unassigned or unknown
}

type SupplierRow struct {
	SupplierID string
	Name       string
	Contact    string
}

type LowStockRow struct {
	ProductID string
	Name      string
	Stock     int
}

type SalesRow struct {
	ProductID    string
	Name         string
	QuantitySold int
	Revenue      float64
}

type SupplierOrderRow struct {
	OrderID     string
	ProductName string
	Quantity    int
	Date        string
}

// SupplierHistory groups customer orders under the supplier of the ordered
// product. The zero-ID entry collects orders for products without a
// resolvable supplier.
type SupplierHistory struct {
	SupplierID   string
	SupplierName string
	Orders       []SupplierOrderRow
}

type RestockRow struct {
	OrderID      string
	SupplierName string
	ProductName  string
	Quantity     int
	Date         string
}

// ReportEngine derives read-only views over the current store contents. It
// never mutates; empty results are empty slices, never errors.
type ReportEngine interface {
	ListProducts() []InventoryRow
	ListSuppliers() []SupplierRow
	LowStock(threshold int) []LowStockRow
	Sales() []SalesRow
	SupplierOrderHistory(supplierID string) []SupplierHistory
	RestockHistory() []RestockRow
}

func NewReportEngine(
	products model.ProductRepository,
	suppliers model.SupplierRepository,
	orders model.OrderRepository,
	supplierOrders model.SupplierOrderRepository,
) ReportEngine {
	return &reportEngine{
		products:       products,
		suppliers:      suppliers,
		orders:         orders,
		supplierOrders: supplierOrders,
	}
}

type reportEngine struct {
	products       model.ProductRepository
	suppliers      model.SupplierRepository
	orders         model.OrderRepository
	supplierOrders model.SupplierOrderRepository
}

func (e *reportEngine) ListProducts() []InventoryRow {
	rows := []InventoryRow{}
	for _, product := range e.products.All() {
		supplierName := "N/A"
		if product.SupplierID != "" {
			if supplier, err := e.suppliers.Find(product.SupplierID); err == nil {
				supplierName = supplier.Name
			}
		}
		rows = append(rows, InventoryRow{
			ProductID:    product.ID,
			Name:         product.Name,
			Description:  product.Description,
			Price:        product.Price,
			Stock:        product.Stock,
			SupplierName: supplierName,
		})
	}
	return rows
}

func (e *reportEngine) ListSuppliers() []SupplierRow {
	rows := []SupplierRow{}
	for _, supplier := range e.suppliers.All() {
		rows = append(rows, SupplierRow{SupplierID: supplier.ID, Name: supplier.Name, Contact: supplier.Contact})
	}
	return rows
}

func (e *reportEngine) LowStock(threshold int) []LowStockRow {
	if threshold <= 0 {
		threshold = DefaultLowStockThreshold
	}
	rows := []LowStockRow{}
	for _, product := range e.products.All() {
		if product.Stock < threshold {
			rows = append(rows, LowStockRow{ProductID: product.ID, Name: product.Name, Stock: product.Stock})
		}
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Stock < rows[j].Stock })
	return rows
}

func (e *reportEngine) Sales() []SalesRow {
	totals := make(map[string]int)
	for _, order := range e.orders.All() {
		totals[order.ProductID] += order.Quantity
	}

	rows := []SalesRow{}
	for _, product := range e.products.All() {
		sold := totals[product.ID]
		rows = append(rows, SalesRow{
			ProductID:    product.ID,
			Name:         product.Name,
			QuantitySold: sold,
			Revenue:      float64(sold) * product.Price,
		})
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].QuantitySold > rows[j].QuantitySold })
	return rows
}

// SupplierOrderHistory groups customer orders by the supplier of the ordered
// product. A non-empty supplierID narrows the result to that supplier.
// Orders whose product has no supplier, or a supplier id that does not
// resolve, land in a trailing unassigned bucket.
func (e *reportEngine) SupplierOrderHistory(supplierID string) []SupplierHistory {
	bySupplier := make(map[string][]SupplierOrderRow)
	for _, order := range e.orders.All() {
		product, err := e.products.Find(order.ProductID)
		if err != nil {
			continue
		}
		key := product.SupplierID
		if key != "" {
			if _, err := e.suppliers.Find(key); err != nil {
				key = ""
			}
		}
		bySupplier[key] = append(bySupplier[key], SupplierOrderRow{
			OrderID:     order.ID,
			ProductName: product.Name,
			Quantity:    order.Quantity,
			Date:        order.Date,
		})
	}

	histories := []SupplierHistory{}
	for _, supplier := range e.suppliers.All() {
		if supplierID != "" && supplier.ID != supplierID {
			continue
		}
		histories = append(histories, SupplierHistory{
			SupplierID:   supplier.ID,
			SupplierName: supplier.Name,
			Orders:       bySupplier[supplier.ID],
		})
	}
	if supplierID == "" {
		if unassigned := bySupplier[""]; len(unassigned) > 0 {
			histories = append(histories, SupplierHistory{SupplierName: "Unassigned", Orders: unassigned})
		}
	}
	return histories
}

func (e *reportEngine) RestockHistory() []RestockRow {
	rows := []RestockRow{}
	for _, order := range e.supplierOrders.All() {
		supplierName := "Unknown Supplier"
		if supplier, err := e.suppliers.Find(order.SupplierID); err == nil {
			supplierName = supplier.Name
		}
		productName := "Unknown Product"
		if product, err := e.products.Find(order.ProductID); err == nil {
			productName = product.Name
		}
		rows = append(rows, RestockRow{
			OrderID:      order.ID,
			SupplierName: supplierName,
			ProductName:  productName,
			Quantity:     order.Quantity,
			Date:         order.Date,
		})
	}
	return rows
}
