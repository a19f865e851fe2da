package storage

import (
	"fmt"
	"strconv"

	"github.com/pkg/errors"

	"inventory/pkg/domain/model"
)

// idSequence extracts the numeric suffix of an order id such as "O001" or
// "SO042". Ids without a parseable suffix count as zero.
func idSequence(id string) int {
	i := 0
	for i < len(id) && (id[i] < '0' || id[i] > '9') {
		i++
	}
	seq, err := strconv.Atoi(id[i:])
	if err != nil {
		return 0
	}
	return seq
}

// OrderStore keeps customer orders. Orders are immutable once written, so
// inserts append a single encoded line instead of rewriting the file.
type OrderStore struct {
	path    string
	orders  []*model.Order
	lastSeq int
}

func NewOrderStore(path string) (*OrderStore, error) {
	s := &OrderStore{path: path}
	err := readRecords(path, orderHeader, func(line string) error {
		order, err := decodeOrder(line)
		if err != nil {
			return err
		}
		s.orders = append(s.orders, order)
		if seq := idSequence(order.ID); seq > s.lastSeq {
			s.lastSeq = seq
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

// NextID assigns ids of the form O001, O002, ... continuing past the highest
// suffix seen on disk, so an id lost to a skipped corrupt row is never
// reassigned.
func (s *OrderStore) NextID() (string, error) {
	return fmt.Sprintf("O%03d", s.lastSeq+1), nil
}

func (s *OrderStore) All() []*model.Order {
	orders := make([]*model.Order, 0, len(s.orders))
	for _, order := range s.orders {
		clone := *order
		orders = append(orders, &clone)
	}
	return orders
}

func (s *OrderStore) Insert(order *model.Order) error {
	for _, existing := range s.orders {
		if existing.ID == order.ID {
			return errors.Wrapf(model.ErrDuplicateID, "order %s", order.ID)
		}
	}
	line, err := encodeOrder(order)
	if err != nil {
		return err
	}
	if err := appendRecord(s.path, orderHeader, line); err != nil {
		return err
	}
	clone := *order
	s.orders = append(s.orders, &clone)
	if seq := idSequence(order.ID); seq > s.lastSeq {
		s.lastSeq = seq
	}
	return nil
}

// SupplierOrderStore keeps restock orders, append-only like OrderStore.
type SupplierOrderStore struct {
	path    string
	orders  []*model.SupplierOrder
	lastSeq int
}

func NewSupplierOrderStore(path string) (*SupplierOrderStore, error) {
	s := &SupplierOrderStore{path: path}
	err := readRecords(path, supplierOrderHeader, func(line string) error {
		order, err := decodeSupplierOrder(line)
		if err != nil {
			return err
		}
		s.orders = append(s.orders, order)
		if seq := idSequence(order.ID); seq > s.lastSeq {
			s.lastSeq = seq
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (s *SupplierOrderStore) NextID() (string, error) {
	return fmt.Sprintf("SO%03d", s.lastSeq+1), nil
}

func (s *SupplierOrderStore) All() []*model.SupplierOrder {
	orders := make([]*model.SupplierOrder, 0, len(s.orders))
	for _, order := range s.orders {
		clone := *order
		orders = append(orders, &clone)
	}
	return orders
}

func (s *SupplierOrderStore) Insert(order *model.SupplierOrder) error {
	for _, existing := range s.orders {
		if existing.ID == order.ID {
			return errors.Wrapf(model.ErrDuplicateID, "supplier order %s", order.ID)
		}
	}
	line, err := encodeSupplierOrder(order)
	if err != nil {
		return err
	}
	if err := appendRecord(s.path, supplierOrderHeader, line); err != nil {
		return err
	}
	clone := *order
	s.orders = append(s.orders, &clone)
	if seq := idSequence(order.ID); seq > s.lastSeq {
		s.lastSeq = seq
	}
	return nil
}
