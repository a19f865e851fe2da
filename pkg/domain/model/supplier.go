package model

import "errors"

var ErrSupplierNotFound = errors.New("supplier not found")

type Supplier struct {
	ID      string
	Name    string
	Contact string
}

type SupplierRepository interface {
	Find(id string) (*Supplier, error)
	All() []*Supplier
	Insert(supplier *Supplier) error
}
