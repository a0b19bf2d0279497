package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/shopcore/checkout/internal/cache"
	"github.com/shopcore/checkout/internal/domain"
)

type mockCartRepository struct {
	m     sync.Mutex
	items map[string][]domain.CartItem
	err   error
}

func newMockCartRepository() *mockCartRepository {
	return &mockCartRepository{items: map[string][]domain.CartItem{}}
}

func (m *mockCartRepository) GetCart(_ context.Context, ownerID string) (domain.Cart, error) {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return domain.Cart{}, m.err
	}
	return domain.Cart{OwnerID: ownerID, Items: append([]domain.CartItem(nil), m.items[ownerID]...)}, nil
}

func (m *mockCartRepository) FindItem(_ context.Context, ownerID string, itemID uuid.UUID) (domain.CartItem, bool, error) {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return domain.CartItem{}, false, m.err
	}
	for _, item := range m.items[ownerID] {
		if item.ID == itemID {
			return item, true, nil
		}
	}
	return domain.CartItem{}, false, nil
}

func (m *mockCartRepository) FindItemByProduct(_ context.Context, ownerID string, productID uuid.UUID) (domain.CartItem, bool, error) {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return domain.CartItem{}, false, m.err
	}
	for _, item := range m.items[ownerID] {
		if item.ProductID == productID {
			return item, true, nil
		}
	}
	return domain.CartItem{}, false, nil
}

func (m *mockCartRepository) InsertItem(_ context.Context, ownerID string, item domain.CartItem) (domain.CartItem, error) {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return domain.CartItem{}, m.err
	}
	item.ID = uuid.New()
	m.items[ownerID] = append(m.items[ownerID], item)
	return item, nil
}

func (m *mockCartRepository) UpdateItemQuantity(_ context.Context, ownerID string, itemID uuid.UUID, quantity int32) (bool, error) {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return false, m.err
	}
	for i := range m.items[ownerID] {
		if m.items[ownerID][i].ID == itemID {
			m.items[ownerID][i].Quantity = quantity
			return true, nil
		}
	}
	return false, nil
}

func (m *mockCartRepository) SetItemPrice(_ context.Context, ownerID string, itemID uuid.UUID, price domain.Money) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return m.err
	}
	for i := range m.items[ownerID] {
		if m.items[ownerID][i].ID == itemID && m.items[ownerID][i].UnitPrice == nil {
			m.items[ownerID][i].UnitPrice = &price
		}
	}
	return nil
}

func (m *mockCartRepository) DeleteItem(_ context.Context, ownerID string, itemID uuid.UUID) (bool, error) {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return false, m.err
	}
	for i, item := range m.items[ownerID] {
		if item.ID == itemID {
			m.items[ownerID] = append(m.items[ownerID][:i], m.items[ownerID][i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (m *mockCartRepository) Clear(_ context.Context, ownerID string) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return m.err
	}
	m.items[ownerID] = nil
	return nil
}

type mockProductStore struct {
	m        sync.Mutex
	products map[uuid.UUID]domain.Product
}

func newMockProductStore() *mockProductStore {
	return &mockProductStore{products: map[uuid.UUID]domain.Product{}}
}

func (m *mockProductStore) put(p domain.Product) {
	m.m.Lock()
	defer m.m.Unlock()
	m.products[p.ID] = p
}

func (m *mockProductStore) GetProduct(_ context.Context, productID uuid.UUID) (domain.Product, error) {
	m.m.Lock()
	defer m.m.Unlock()
	p, ok := m.products[productID]
	if !ok {
		return domain.Product{}, fmt.Errorf("product[%s]: %w", productID, domain.ErrNotFound)
	}
	return p, nil
}

func (m *mockProductStore) DecrementStock(_ context.Context, productID uuid.UUID, quantity int32) error {
	m.m.Lock()
	defer m.m.Unlock()
	p, ok := m.products[productID]
	if !ok || p.AvailableQuantity < quantity {
		return domain.ErrConflict
	}
	p.AvailableQuantity -= quantity
	m.products[productID] = p
	return nil
}

type mockCheckoutRepository struct {
	order domain.Order
	err   error
	calls int
}

func (m *mockCheckoutRepository) PlaceOrder(context.Context, string) (domain.Order, error) {
	m.calls++
	if m.err != nil {
		return domain.Order{}, m.err
	}
	return m.order, nil
}

type mockOrderRepository struct {
	orders        []domain.Order
	updatedID     uuid.UUID
	updatedStatus domain.OrderStatus
	updateFound   bool
	err           error
}

func (m *mockOrderRepository) Create(_ context.Context, order domain.Order) (domain.Order, error) {
	if m.err != nil {
		return domain.Order{}, m.err
	}
	m.orders = append(m.orders, order)
	return order, nil
}

func (m *mockOrderRepository) ListByOwner(_ context.Context, ownerID string) ([]domain.Order, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []domain.Order
	for _, o := range m.orders {
		if o.OwnerID == ownerID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (m *mockOrderRepository) Get(_ context.Context, ownerID string, orderID uuid.UUID) (domain.Order, error) {
	if m.err != nil {
		return domain.Order{}, m.err
	}
	for _, o := range m.orders {
		if o.ID == orderID && o.OwnerID == ownerID {
			return o, nil
		}
	}
	return domain.Order{}, fmt.Errorf("order[%s]: %w", orderID, domain.ErrNotFound)
}

func (m *mockOrderRepository) ListAll(context.Context) ([]domain.Order, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.orders, nil
}

func (m *mockOrderRepository) UpdateStatus(_ context.Context, orderID uuid.UUID, status domain.OrderStatus) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	m.updatedID = orderID
	m.updatedStatus = status
	return m.updateFound, nil
}

// missCache always misses and counts invalidations.
type missCache struct {
	m       sync.Mutex
	deletes int
}

func (c *missCache) Get(context.Context, string) (domain.Cart, error) {
	return domain.Cart{}, cache.ErrCacheMiss
}

func (c *missCache) Set(context.Context, string, domain.Cart) error { return nil }

func (c *missCache) Delete(context.Context, string) error {
	c.m.Lock()
	defer c.m.Unlock()
	c.deletes++
	return nil
}

func (c *missCache) deleteCount() int {
	c.m.Lock()
	defer c.m.Unlock()
	return c.deletes
}
