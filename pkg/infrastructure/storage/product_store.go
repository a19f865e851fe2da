package storage

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"inventory/pkg/domain/model"
)

// ProductStore is the in-memory source of truth for products, backed by one
// pipe-delimited file that is fully rewritten on every mutation.
type ProductStore struct {
	path  string
	byID  map[string]*model.Product
	order []string // ids in file order, stable for reports
}

func NewProductStore(path string) (*ProductStore, error) {
	s := &ProductStore{path: path, byID: make(map[string]*model.Product)}
	err := readRecords(path, productHeader, func(line string) error {
		product, err := decodeProduct(line)
		if err != nil {
			return err
		}
		if _, ok := s.byID[product.ID]; ok {
			log.WithFields(log.Fields{"file": path, "product_id": product.ID}).
				Warn("duplicate product id, keeping last record")
		} else {
			s.order = append(s.order, product.ID)
		}
		s.byID[product.ID] = product
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (s *ProductStore) Find(id string) (*model.Product, error) {
	product, ok := s.byID[id]
	if !ok {
		return nil, model.ErrProductNotFound
	}
	clone := *product
	return &clone, nil
}

func (s *ProductStore) All() []*model.Product {
	products := make([]*model.Product, 0, len(s.order))
	for _, id := range s.order {
		clone := *s.byID[id]
		products = append(products, &clone)
	}
	return products
}

func (s *ProductStore) Insert(product *model.Product) error {
	if _, ok := s.byID[product.ID]; ok {
		return errors.Wrapf(model.ErrDuplicateID, "product %s", product.ID)
	}
	clone := *product
	s.byID[product.ID] = &clone
	s.order = append(s.order, product.ID)
	return s.persist()
}

func (s *ProductStore) Update(product *model.Product) error {
	if _, ok := s.byID[product.ID]; !ok {
		return model.ErrProductNotFound
	}
	clone := *product
	s.byID[product.ID] = &clone
	return s.persist()
}

func (s *ProductStore) persist() error {
	lines := make([]string, 0, len(s.order))
	for _, id := range s.order {
		line, err := encodeProduct(s.byID[id])
		if err != nil {
			return err
		}
		lines = append(lines, line)
	}
	return replaceFile(s.path, productHeader, lines)
}
