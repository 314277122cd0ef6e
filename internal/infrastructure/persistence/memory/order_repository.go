package memory

import (
	"context"
	"sort"

	"github.com/Hala-ashour/Restaurant98/internal/domain/apperr"
	"github.com/Hala-ashour/Restaurant98/internal/domain/order"
	"github.com/Hala-ashour/Restaurant98/internal/domain/repository"
)

type orderRepo struct {
	s *Store
}

func (r *orderRepo) Create(_ context.Context, o *order.Order) error {
	defer r.s.lock()()
	stored := *o
	stored.Items = nil
	r.s.data.orders[o.ID] = stored
	r.s.data.track(o.ID)
	return nil
}

func (r *orderRepo) FindByID(_ context.Context, id string) (*order.Order, error) {
	defer r.s.lock()()
	return r.load(id)
}

func (r *orderRepo) LockByID(_ context.Context, id string) (*order.Order, error) {
	defer r.s.lock()()
	return r.load(id)
}

// load expects the store lock to be held.
func (r *orderRepo) load(id string) (*order.Order, error) {
	o, ok := r.s.data.orders[id]
	if !ok {
		return nil, apperr.NotFound("order", id)
	}

	items := make([]order.Item, 0)
	for _, item := range r.s.data.items {
		if item.OrderID != id {
			continue
		}
		p, ok := r.s.data.products[item.ProductID]
		if ok {
			item.UnitPrice = p.Price
			item.ProductAvailable = p.IsAvailable
		}
		items = append(items, item)
	}
	seq := r.s.data.order
	sort.Slice(items, func(i, j int) bool { return seq[items[i].ID] < seq[items[j].ID] })
	o.Items = items
	return &o, nil
}

func (r *orderRepo) Update(_ context.Context, o *order.Order) error {
	defer r.s.lock()()
	stored, ok := r.s.data.orders[o.ID]
	if !ok {
		return apperr.NotFound("order", o.ID)
	}
	if stored.Version != o.Version {
		return order.ErrStaleOrder
	}

	o.Version++
	updated := *o
	updated.Items = nil
	updated.CreatedAt = stored.CreatedAt
	r.s.data.orders[o.ID] = updated
	return nil
}

func (r *orderRepo) AddItem(_ context.Context, item *order.Item) error {
	defer r.s.lock()()
	if _, ok := r.s.data.orders[item.OrderID]; !ok {
		return apperr.NotFound("order", item.OrderID)
	}
	if _, ok := r.s.data.products[item.ProductID]; !ok {
		return order.ErrUnknownProduct
	}
	r.s.data.items[item.ID] = *item
	r.s.data.track(item.ID)
	return nil
}

func (r *orderRepo) Delete(_ context.Context, id string) error {
	defer r.s.lock()()
	if _, ok := r.s.data.orders[id]; !ok {
		return apperr.NotFound("order", id)
	}
	for itemID, item := range r.s.data.items {
		if item.OrderID == id {
			delete(r.s.data.items, itemID)
			delete(r.s.data.order, itemID)
		}
	}
	delete(r.s.data.orders, id)
	delete(r.s.data.order, id)
	return nil
}

// List returns matching orders newest first, without items.
func (r *orderRepo) List(_ context.Context, f repository.OrderFilter, page repository.Page) (repository.PageResult[order.Order], error) {
	defer r.s.lock()()
	out := make([]order.Order, 0, len(r.s.data.orders))
	for _, o := range r.s.data.orders {
		if f.Match(o) {
			out = append(out, o)
		}
	}
	seq := r.s.data.order
	sort.Slice(out, func(i, j int) bool { return seq[out[i].ID] > seq[out[j].ID] })
	return repository.Slice(out, page), nil
}
