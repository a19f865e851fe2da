package service

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"inventory/pkg/domain/model"
)

var (
	ErrInvalidQuantity   = errors.New("quantity must be a positive number")
	ErrInsufficientStock = errors.New("insufficient stock for requested quantity")
	ErrUnknownSupplier   = errors.New("supplier is not registered")
)

const dateLayout = "2006-01-02"

// ValidationError reports caller input that violates a field constraint.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// PersistenceError reports that a backing file could not be written after an
// in-memory mutation was already accepted. It is fatal for the enclosing
// operation: memory and disk may have diverged.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure during %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

type Event interface {
	Type() string
}

type EventDispatcher interface {
	Dispatch(event Event) error
}

// ProductChanges carries the fields of an update; nil means keep current.
// An empty *SupplierID clears the assignment.
type ProductChanges struct {
	Name        *string
	Description *string
	Price       *float64
	Stock       *int
	SupplierID  *string
}

type InventoryService interface {
	AddProduct(id, name, description string, price float64, stock int, supplierID string) (*model.Product, error)
	UpdateProduct(id string, changes ProductChanges) error
	AddSupplier(id, name, contact string) (*model.Supplier, error)
	PlaceOrder(productID string, quantity int, date string) (*model.Order, error)
	PlaceSupplierOrder(supplierID, productID string, quantity int, date string) (*model.SupplierOrder, error)
}

func NewInventoryService(
	products model.ProductRepository,
	suppliers model.SupplierRepository,
	orders model.OrderRepository,
	supplierOrders model.SupplierOrderRepository,
	dispatcher EventDispatcher,
) InventoryService {
	return &inventoryService{
		products:       products,
		suppliers:      suppliers,
		orders:         orders,
		supplierOrders: supplierOrders,
		dispatcher:     dispatcher,
	}
}

type inventoryService struct {
	products       model.ProductRepository
	suppliers      model.SupplierRepository
	orders         model.OrderRepository
	supplierOrders model.SupplierOrderRepository
	dispatcher     EventDispatcher
}

func (s *inventoryService) AddProduct(id, name, description string, price float64, stock int, supplierID string) (*model.Product, error) {
	if err := validateID("product_id", id); err != nil {
		return nil, err
	}
	if err := validateText("name", name, true); err != nil {
		return nil, err
	}
	if err := validateText("description", description, false); err != nil {
		return nil, err
	}
	if err := validatePrice(price); err != nil {
		return nil, err
	}
	if stock < 0 {
		return nil, &ValidationError{Field: "stock", Reason: "must not be negative"}
	}
	if err := s.resolveSupplier(supplierID); err != nil {
		return nil, err
	}

	product := &model.Product{
		ID:          id,
		Name:        name,
		Description: description,
		Price:       price,
		Stock:       stock,
		SupplierID:  supplierID,
	}

	if err := s.products.Insert(product); err != nil {
		if errors.Is(err, model.ErrDuplicateID) {
			return nil, err
		}
		return nil, &PersistenceError{Op: "add product", Err: err}
	}

	_ = s.dispatcher.Dispatch(model.ProductAdded{ProductID: id, Name: name})
	return product, nil
}

func (s *inventoryService) UpdateProduct(id string, changes ProductChanges) error {
	product, err := s.products.Find(id)
	if err != nil {
		return err
	}

	if changes.Name != nil {
		if err := validateText("name", *changes.Name, true); err != nil {
			return err
		}
		product.Name = *changes.Name
	}
	if changes.Description != nil {
		if err := validateText("description", *changes.Description, false); err != nil {
			return err
		}
		product.Description = *changes.Description
	}
	if changes.Price != nil {
		if err := validatePrice(*changes.Price); err != nil {
			return err
		}
		product.Price = *changes.Price
	}
	if changes.Stock != nil {
		if *changes.Stock < 0 {
			return &ValidationError{Field: "stock", Reason: "must not be negative"}
		}
		product.Stock = *changes.Stock
	}
	if changes.SupplierID != nil {
		if err := s.resolveSupplier(*changes.SupplierID); err != nil {
			return err
		}
		product.SupplierID = *changes.SupplierID
	}

	if err := s.products.Update(product); err != nil {
		if errors.Is(err, model.ErrProductNotFound) {
			return err
		}
		return &PersistenceError{Op: "update product", Err: err}
	}

	_ = s.dispatcher.Dispatch(model.ProductUpdated{ProductID: id})
	return nil
}

func (s *inventoryService) AddSupplier(id, name, contact string) (*model.Supplier, error) {
	if err := validateID("supplier_id", id); err != nil {
		return nil, err
	}
	if err := validateText("name", name, true); err != nil {
		return nil, err
	}
	if err := validateText("contact", contact, false); err != nil {
		return nil, err
	}

	supplier := &model.Supplier{ID: id, Name: name, Contact: contact}

	if err := s.suppliers.Insert(supplier); err != nil {
		if errors.Is(err, model.ErrDuplicateID) {
			return nil, err
		}
		return nil, &PersistenceError{Op: "add supplier", Err: err}
	}

	_ = s.dispatcher.Dispatch(model.SupplierAdded{SupplierID: id, Name: name})
	return supplier, nil
}

// PlaceOrder decrements stock and appends the order as one logical unit: any
// failure after the quantity and stock checks is reported as a
// PersistenceError rather than silently losing the order record.
func (s *inventoryService) PlaceOrder(productID string, quantity int, date string) (*model.Order, error) {
	product, err := s.products.Find(productID)
	if err != nil {
		return nil, err
	}
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	if err := validateDate(date); err != nil {
		return nil, err
	}
	if product.Stock < quantity {
		return nil, ErrInsufficientStock
	}

	product.Stock -= quantity
	if err := s.products.Update(product); err != nil {
		return nil, &PersistenceError{Op: "place order", Err: err}
	}

	orderID, err := s.orders.NextID()
	if err != nil {
		return nil, &PersistenceError{Op: "place order", Err: err}
	}
	order := &model.Order{ID: orderID, ProductID: productID, Quantity: quantity, Date: date}
	if err := s.orders.Insert(order); err != nil {
		return nil, &PersistenceError{Op: "place order", Err: err}
	}

	_ = s.dispatcher.Dispatch(model.OrderPlaced{
		OrderID:   orderID,
		ProductID: productID,
		Quantity:  quantity,
		NewStock:  product.Stock,
	})
	return order, nil
}

// PlaceSupplierOrder is the restocking counterpart of PlaceOrder: it
// increments the product's stock by the ordered quantity.
func (s *inventoryService) PlaceSupplierOrder(supplierID, productID string, quantity int, date string) (*model.SupplierOrder, error) {
	if _, err := s.suppliers.Find(supplierID); err != nil {
		return nil, err
	}
	product, err := s.products.Find(productID)
	if err != nil {
		return nil, err
	}
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	if err := validateDate(date); err != nil {
		return nil, err
	}

	product.Stock += quantity
	if err := s.products.Update(product); err != nil {
		return nil, &PersistenceError{Op: "place supplier order", Err: err}
	}

	orderID, err := s.supplierOrders.NextID()
	if err != nil {
		return nil, &PersistenceError{Op: "place supplier order", Err: err}
	}
	order := &model.SupplierOrder{
		ID:         orderID,
		SupplierID: supplierID,
		ProductID:  productID,
		Quantity:   quantity,
		Date:       date,
	}
	if err := s.supplierOrders.Insert(order); err != nil {
		return nil, &PersistenceError{Op: "place supplier order", Err: err}
	}

	_ = s.dispatcher.Dispatch(model.StockReplenished{
		OrderID:    orderID,
		SupplierID: supplierID,
		ProductID:  productID,
		Quantity:   quantity,
		NewStock:   product.Stock,
	})
	return order, nil
}

func (s *inventoryService) resolveSupplier(supplierID string) error {
	if supplierID == "" {
		return nil
	}
	if err := validateText("supplier_id", supplierID, true); err != nil {
		return err
	}
	if _, err := s.suppliers.Find(supplierID); err != nil {
		return ErrUnknownSupplier
	}
	return nil
}

func validateID(field, id string) error {
	if strings.TrimSpace(id) == "" {
		return &ValidationError{Field: field, Reason: "must not be empty"}
	}
	return validateText(field, id, true)
}

// validateText rejects the record delimiter and line breaks so that no
// accepted value can corrupt the row layout on disk.
func validateText(field, value string, required bool) error {
	if required && strings.TrimSpace(value) == "" {
		return &ValidationError{Field: field, Reason: "must not be empty"}
	}
	if strings.ContainsAny(value, "|\r\n") {
		return &ValidationError{Field: field, Reason: "must not contain '|' or line breaks"}
	}
	return nil
}

func validatePrice(price float64) error {
	if price < 0 || math.IsNaN(price) || math.IsInf(price, 0) {
		return &ValidationError{Field: "price", Reason: "must be a non-negative number"}
	}
	return nil
}

func validateDate(date string) error {
	if _, err := time.Parse(dateLayout, date); err != nil {
		return &ValidationError{Field: "date", Reason: "must be a YYYY-MM-DD date"}
	}
	return nil
}
