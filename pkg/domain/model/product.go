package model

import "errors"

var (
	ErrProductNotFound = errors.New("product not found")
	ErrDuplicateID     = errors.New("identifier already exists")
)

type Product struct {
	ID          string
	Name        string
	Description string
	Price       float64
	Stock       int
	SupplierID  string // empty until a supplier is assigned
}

type ProductRepository interface {
	Find(id string) (*Product, error)
	All() []*Product
	Insert(product *Product) error
	Update(product *Product) error
}
