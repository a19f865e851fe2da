package tests

import (
	"fmt"

	"inventory/pkg/domain/model"
	"inventory/pkg/domain/service"
)

type mockProductRepository struct {
	store     map[string]*model.Product
	order     []string
	updateErr error
}

func newMockProductRepository() *mockProductRepository {
	return &mockProductRepository{store: make(map[string]*model.Product)}
}

func (m *mockProductRepository) Find(id string) (*model.Product, error) {
	if p, ok := m.store[id]; ok {
		clone := *p
		return &clone, nil
	}
	return nil, model.ErrProductNotFound
}

func (m *mockProductRepository) All() []*model.Product {
	products := make([]*model.Product, 0, len(m.order))
	for _, id := range m.order {
		clone := *m.store[id]
		products = append(products, &clone)
	}
	return products
}

func (m *mockProductRepository) Insert(p *model.Product) error {
	if _, ok := m.store[p.ID]; ok {
		return model.ErrDuplicateID
	}
	clone := *p
	m.store[p.ID] = &clone
	m.order = append(m.order, p.ID)
	return nil
}

func (m *mockProductRepository) Update(p *model.Product) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	if _, ok := m.store[p.ID]; !ok {
		return model.ErrProductNotFound
	}
	clone := *p
	m.store[p.ID] = &clone
	return nil
}

type mockSupplierRepository struct {
	store map[string]*model.Supplier
	order []string
}

func newMockSupplierRepository() *mockSupplierRepository {
	return &mockSupplierRepository{store: make(map[string]*model.Supplier)}
}

func (m *mockSupplierRepository) Find(id string) (*model.Supplier, error) {
	if s, ok := m.store[id]; ok {
		clone := *s
		return &clone, nil
	}
	return nil, model.ErrSupplierNotFound
}

func (m *mockSupplierRepository) All() []*model.Supplier {
	suppliers := make([]*model.Supplier, 0, len(m.order))
	for _, id := range m.order {
		clone := *m.store[id]
		suppliers = append(suppliers, &clone)
	}
	return suppliers
}

func (m *mockSupplierRepository) Insert(s *model.Supplier) error {
	if _, ok := m.store[s.ID]; ok {
		return model.ErrDuplicateID
	}
	clone := *s
	m.store[s.ID] = &clone
	m.order = append(m.order, s.ID)
	return nil
}

type mockOrderRepository struct {
	orders    []*model.Order
	insertErr error
}

func (m *mockOrderRepository) NextID() (string, error) {
	return fmt.Sprintf("O%03d", len(m.orders)+1), nil
}

func (m *mockOrderRepository) All() []*model.Order {
	orders := make([]*model.Order, 0, len(m.orders))
	for _, o := range m.orders {
		clone := *o
		orders = append(orders, &clone)
	}
	return orders
}

func (m *mockOrderRepository) Insert(o *model.Order) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	clone := *o
	m.orders = append(m.orders, &clone)
	return nil
}

type mockSupplierOrderRepository struct {
	orders []*model.SupplierOrder
}

func (m *mockSupplierOrderRepository) NextID() (string, error) {
	return fmt.Sprintf("SO%03d", len(m.orders)+1), nil
}

func (m *mockSupplierOrderRepository) All() []*model.SupplierOrder {
	orders := make([]*model.SupplierOrder, 0, len(m.orders))
	for _, o := range m.orders {
		clone := *o
		orders = append(orders, &clone)
	}
	return orders
}

func (m *mockSupplierOrderRepository) Insert(o *model.SupplierOrder) error {
	clone := *o
	m.orders = append(m.orders, &clone)
	return nil
}

type mockEventDispatcher struct {
	events []service.Event
}

func (m *mockEventDispatcher) Dispatch(event service.Event) error {
	m.events = append(m.events, event)
	return nil
}

func (m *mockEventDispatcher) Reset() {
	m.events = nil
}
