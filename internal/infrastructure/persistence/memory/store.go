// Package memory is an in-process repository.Store. Transactions are serialized by a
// single mutex and rolled back by restoring a snapshot.
package memory

import (
	"context"
	"sync"

	"github.com/Hala-ashour/Restaurant98/internal/domain/catalog"
	"github.com/Hala-ashour/Restaurant98/internal/domain/customer"
	"github.com/Hala-ashour/Restaurant98/internal/domain/order"
	"github.com/Hala-ashour/Restaurant98/internal/domain/repository"
)

type data struct {
	seq        int64
	products   map[string]catalog.Product
	categories map[string]catalog.Category
	orders     map[string]order.Order
	items      map[string]order.Item
	customers  map[string]customer.Customer
	// insertion sequence per id, used for stable ordering
	order map[string]int64
}

func newData() *data {
	return &data{
		products:   make(map[string]catalog.Product),
		categories: make(map[string]catalog.Category),
		orders:     make(map[string]order.Order),
		items:      make(map[string]order.Item),
		customers:  make(map[string]customer.Customer),
		order:      make(map[string]int64),
	}
}

func (d *data) clone() *data {
	c := newData()
	c.seq = d.seq
	for k, v := range d.products {
		if v.CategoryID != nil {
			id := *v.CategoryID
			v.CategoryID = &id
		}
		c.products[k] = v
	}
	for k, v := range d.categories {
		c.categories[k] = v
	}
	for k, v := range d.orders {
		c.orders[k] = v
	}
	for k, v := range d.items {
		c.items[k] = v
	}
	for k, v := range d.customers {
		c.customers[k] = v
	}
	for k, v := range d.order {
		c.order[k] = v
	}
	return c
}

func (d *data) track(id string) {
	d.seq++
	d.order[id] = d.seq
}

type Store struct {
	mu   *sync.Mutex
	data *data
	inTx bool
}

var _ repository.Store = (*Store)(nil)

func NewStore() *Store {
	return &Store{mu: &sync.Mutex{}, data: newData()}
}

func (s *Store) lock() func() {
	if s.inTx {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

func (s *Store) Products() repository.ProductRepository    { return &productRepo{s} }
func (s *Store) Categories() repository.CategoryRepository { return &categoryRepo{s} }
func (s *Store) Orders() repository.OrderRepository        { return &orderRepo{s} }
func (s *Store) Customers() repository.CustomerRepository  { return &customerRepo{s} }

func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, tx repository.Store) error) error {
	if s.inTx {
		return fn(ctx, s)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.data.clone()
	tx := &Store{mu: s.mu, data: s.data, inTx: true}
	err := fn(ctx, tx)
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		*s.data = *snapshot
	}
	return err
}
