package storage

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"inventory/pkg/domain/model"
)

// SupplierStore mirrors ProductStore for suppliers. Suppliers are never
// updated or deleted once registered, so only Find, All and Insert exist.
type SupplierStore struct {
	path  string
	byID  map[string]*model.Supplier
	order []string
}

func NewSupplierStore(path string) (*SupplierStore, error) {
	s := &SupplierStore{path: path, byID: make(map[string]*model.Supplier)}
	err := readRecords(path, supplierHeader, func(line string) error {
		supplier, err := decodeSupplier(line)
		if err != nil {
			return err
		}
		if _, ok := s.byID[supplier.ID]; ok {
			log.WithFields(log.Fields{"file": path, "supplier_id": supplier.ID}).
				Warn("duplicate supplier id, keeping last record")
		} else {
			s.order = append(s.order, supplier.ID)
		}
		s.byID[supplier.ID] = supplier
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (s *SupplierStore) Find(id string) (*model.Supplier, error) {
	supplier, ok := s.byID[id]
	if !ok {
		return nil, model.ErrSupplierNotFound
	}
	clone := *supplier
	return &clone, nil
}

func (s *SupplierStore) All() []*model.Supplier {
	suppliers := make([]*model.Supplier, 0, len(s.order))
	for _, id := range s.order {
		clone := *s.byID[id]
		suppliers = append(suppliers, &clone)
	}
	return suppliers
}

func (s *SupplierStore) Insert(supplier *model.Supplier) error {
	if _, ok := s.byID[supplier.ID]; ok {
		return errors.Wrapf(model.ErrDuplicateID, "supplier %s", supplier.ID)
	}
	clone := *supplier
	s.byID[supplier.ID] = &clone
	s.order = append(s.order, supplier.ID)
	return s.persist()
}

func (s *SupplierStore) persist() error {
	lines := make([]string, 0, len(s.order))
	for _, id := range s.order {
		line, err := encodeSupplier(s.byID[id])
		if err != nil {
			return err
		}
		lines = append(lines, line)
	}
	return replaceFile(s.path, supplierHeader, lines)
}
