package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"inventory/pkg/domain/model"
	"inventory/pkg/domain/service"
)

// menu is the interactive presentation layer. It only prompts, calls the
// inventory service or report engine, and renders the result.
type menu struct {
	in      *bufio.Reader
	out     io.Writer
	svc     service.InventoryService
	reports service.ReportEngine
}

func newMenu(in io.Reader, out io.Writer, svc service.InventoryService, reports service.ReportEngine) *menu {
	return &menu{in: bufio.NewReader(in), out: out, svc: svc, reports: reports}
}

func (m *menu) run() error {
	for {
		fmt.Fprintln(m.out, "\n1. Add Product\n2. Update Product\n3. Add Supplier\n4. Place Customer Order\n5. Place Supplier Order\n6. View Inventory\n7. Generate Reports\n8. Exit")
		choice, ok := m.prompt("Enter your choice (1-8): ")
		if !ok {
			fmt.Fprintln(m.out, "\nExiting system. Goodbye!")
			return nil
		}
		switch choice {
		case "1":
			m.addProduct()
		case "2":
			m.updateProduct()
		case "3":
			m.addSupplier()
		case "4":
			m.placeOrder()
		case "5":
			m.placeSupplierOrder()
		case "6":
			m.viewInventory()
		case "7":
			m.reportsMenu()
		case "8":
			fmt.Fprintln(m.out, "Exiting system. Goodbye!")
			return nil
		default:
			fmt.Fprintln(m.out, "Invalid choice, please try again.")
		}
	}
}

func (m *menu) addProduct() {
	id, ok := m.prompt("Enter product ID: ")
	if !ok {
		return
	}
	name, ok := m.prompt("Enter product name: ")
	if !ok {
		return
	}
	description, ok := m.prompt("Enter product description: ")
	if !ok {
		return
	}
	price, ok := m.promptFloat("Enter product price: ")
	if !ok {
		return
	}
	stock, ok := m.promptInt("Enter initial stock: ")
	if !ok {
		return
	}

	fmt.Fprintln(m.out, "\nAvailable suppliers:")
	for _, row := range m.reports.ListSuppliers() {
		fmt.Fprintf(m.out, "%s: %s\n", row.SupplierID, row.Name)
	}
	supplierID, ok := m.prompt("Enter supplier ID (press Enter to skip): ")
	if !ok {
		return
	}

	if _, err := m.svc.AddProduct(id, name, description, price, stock, supplierID); err != nil {
		m.showError(err)
		return
	}
	fmt.Fprintln(m.out, "Product added successfully!")
}

func (m *menu) updateProduct() {
	id, ok := m.prompt("Enter product ID to update: ")
	if !ok {
		return
	}

	changes := service.ProductChanges{}
	name, ok := m.prompt("Enter new name (press Enter to keep current): ")
	if !ok {
		return
	}
	if name != "" {
		changes.Name = &name
	}
	description, ok := m.prompt("Enter new description (press Enter to keep current): ")
	if !ok {
		return
	}
	if description != "" {
		changes.Description = &description
	}
	raw, ok := m.prompt("Enter new price (press Enter to keep current): ")
	if !ok {
		return
	}
	if raw != "" {
		price, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			fmt.Fprintln(m.out, "Invalid numeric input")
			return
		}
		changes.Price = &price
	}
	raw, ok = m.prompt("Enter new stock (press Enter to keep current): ")
	if !ok {
		return
	}
	if raw != "" {
		stock, err := strconv.Atoi(raw)
		if err != nil {
			fmt.Fprintln(m.out, "Invalid numeric input")
			return
		}
		changes.Stock = &stock
	}
	raw, ok = m.prompt("Enter new supplier ID (press Enter to keep current, 'none' to remove): ")
	if !ok {
		return
	}
	if raw != "" {
		supplierID := raw
		if strings.EqualFold(raw, "none") {
			supplierID = ""
		}
		changes.SupplierID = &supplierID
	}

	if err := m.svc.UpdateProduct(id, changes); err != nil {
		m.showError(err)
		return
	}
	fmt.Fprintln(m.out, "Product updated successfully!")
}

func (m *menu) addSupplier() {
	id, ok := m.prompt("Enter supplier ID: ")
	if !ok {
		return
	}
	name, ok := m.prompt("Enter supplier name: ")
	if !ok {
		return
	}
	contact, ok := m.prompt("Enter supplier contact details: ")
	if !ok {
		return
	}

	if _, err := m.svc.AddSupplier(id, name, contact); err != nil {
		m.showError(err)
		return
	}
	fmt.Fprintln(m.out, "Supplier added successfully!")
}

func (m *menu) placeOrder() {
	m.viewInventory()
	productID, ok := m.prompt("Enter product ID: ")
	if !ok {
		return
	}
	quantity, ok := m.promptInt("Enter quantity: ")
	if !ok {
		return
	}

	if _, err := m.svc.PlaceOrder(productID, quantity, today()); err != nil {
		m.showError(err)
		return
	}
	fmt.Fprintln(m.out, "Customer order placed successfully!")
}

func (m *menu) placeSupplierOrder() {
	fmt.Fprintln(m.out, "\nAvailable suppliers:")
	for _, row := range m.reports.ListSuppliers() {
		fmt.Fprintf(m.out, "%s: %s\n", row.SupplierID, row.Name)
	}
	supplierID, ok := m.prompt("Enter supplier ID: ")
	if !ok {
		return
	}
	m.viewInventory()
	productID, ok := m.prompt("Enter product ID: ")
	if !ok {
		return
	}
	quantity, ok := m.promptInt("Enter quantity: ")
	if !ok {
		return
	}

	if _, err := m.svc.PlaceSupplierOrder(supplierID, productID, quantity, today()); err != nil {
		m.showError(err)
		return
	}
	fmt.Fprintln(m.out, "Supplier order placed successfully and inventory updated!")
}

func (m *menu) viewInventory() {
	fmt.Fprintln(m.out, "\nCurrent Inventory:")
	fmt.Fprintln(m.out, "ID | Name | Stock | Description | Price | Supplier")
	for _, row := range m.reports.ListProducts() {
		fmt.Fprintf(m.out, "%s | %s | %d | %s | $%.2f | %s\n",
			row.ProductID, row.Name, row.Stock, row.Description, row.Price, row.SupplierName)
	}
}

func (m *menu) reportsMenu() {
	for {
		fmt.Fprintln(m.out, "\nReports Menu:")
		fmt.Fprintf(m.out, "1. Low Stock Items (< %d units)\n", service.DefaultLowStockThreshold)
		fmt.Fprintln(m.out, "2. Product Sales Report\n3. Supplier Order History\n4. Supplier Restock History\n5. Back to Main Menu")

		choice, ok := m.prompt("Enter your choice (1-5): ")
		if !ok {
			return
		}
		switch choice {
		case "1":
			m.lowStockReport()
		case "2":
			m.salesReport()
		case "3":
			m.supplierHistoryReport()
		case "4":
			m.restockReport()
		case "5":
			return
		default:
			fmt.Fprintln(m.out, "Invalid choice!")
		}
	}
}

func (m *menu) lowStockReport() {
	rows := m.reports.LowStock(service.DefaultLowStockThreshold)
	if len(rows) == 0 {
		fmt.Fprintln(m.out, "\nNo low stock items found.")
		return
	}
	fmt.Fprintln(m.out, "\nLow Stock Items:")
	fmt.Fprintln(m.out, "ID | Name | Stock")
	for _, row := range rows {
		fmt.Fprintf(m.out, "%s | %s | %d\n", row.ProductID, row.Name, row.Stock)
	}
}

func (m *menu) salesReport() {
	fmt.Fprintln(m.out, "\nProduct Sales Report:")
	fmt.Fprintln(m.out, "Product ID | Product Name | Total Quantity Sold | Total Revenue")
	for _, row := range m.reports.Sales() {
		fmt.Fprintf(m.out, "%s | %s | %d | $%.2f\n", row.ProductID, row.Name, row.QuantitySold, row.Revenue)
	}
}

func (m *menu) supplierHistoryReport() {
	fmt.Fprintln(m.out, "\nSupplier Order History:")
	for _, history := range m.reports.SupplierOrderHistory("") {
		fmt.Fprintf(m.out, "\n%s:\n", history.SupplierName)
		if len(history.Orders) == 0 {
			fmt.Fprintln(m.out, "  (no orders)")
			continue
		}
		for _, order := range history.Orders {
			fmt.Fprintf(m.out, "  %s | %s | %d | %s\n", order.OrderID, order.ProductName, order.Quantity, order.Date)
		}
	}
}

func (m *menu) restockReport() {
	rows := m.reports.RestockHistory()
	if len(rows) == 0 {
		fmt.Fprintln(m.out, "\nNo supplier orders found.")
		return
	}
	fmt.Fprintln(m.out, "\nSupplier Restock History:")
	fmt.Fprintln(m.out, "Order ID | Supplier | Product | Quantity | Order Date")
	for _, row := range rows {
		fmt.Fprintf(m.out, "%s | %s | %s | %d | %s\n", row.OrderID, row.SupplierName, row.ProductName, row.Quantity, row.Date)
	}
}

// prompt reads one line of input. ok is false once input is exhausted or
// unreadable, which callers treat as "leave the current dialog"; run exits
// the program on it instead of reprompting forever.
func (m *menu) prompt(label string) (string, bool) {
	fmt.Fprint(m.out, label)
	line, err := m.in.ReadString('\n')
	if err != nil && line == "" {
		return "", false
	}
	return strings.TrimSpace(line), true
}

func (m *menu) promptFloat(label string) (float64, bool) {
	raw, ok := m.prompt(label)
	if !ok {
		return 0, false
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		fmt.Fprintln(m.out, "Invalid numeric input")
		return 0, false
	}
	return value, true
}

func (m *menu) promptInt(label string) (int, bool) {
	raw, ok := m.prompt(label)
	if !ok {
		return 0, false
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		fmt.Fprintln(m.out, "Invalid numeric input")
		return 0, false
	}
	return value, true
}

// showError renders recoverable errors and aborts on persistence failures,
// which risk memory/disk divergence and must not be swallowed.
func (m *menu) showError(err error) {
	var persistence *service.PersistenceError
	if errors.As(err, &persistence) {
		log.WithError(err).Fatal("backing file could not be written")
	}

	switch {
	case errors.Is(err, model.ErrProductNotFound):
		fmt.Fprintln(m.out, "Product not found!")
	case errors.Is(err, model.ErrSupplierNotFound), errors.Is(err, service.ErrUnknownSupplier):
		fmt.Fprintln(m.out, "Supplier not found!")
	case errors.Is(err, model.ErrDuplicateID):
		fmt.Fprintln(m.out, "Invalid or duplicate ID!")
	case errors.Is(err, service.ErrInsufficientStock), errors.Is(err, service.ErrInvalidQuantity):
		fmt.Fprintln(m.out, "Insufficient stock or invalid quantity!")
	default:
		fmt.Fprintf(m.out, "Error: %v\n", err)
	}
}

func today() string {
	return time.Now().Format("2006-01-02")
}
