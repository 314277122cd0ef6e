package memory

import (
	"context"
	"sort"

	"github.com/Hala-ashour/Restaurant98/internal/domain/apperr"
	"github.com/Hala-ashour/Restaurant98/internal/domain/customer"
	"github.com/Hala-ashour/Restaurant98/internal/domain/repository"
)

type customerRepo struct {
	s *Store
}

func (r *customerRepo) userTaken(userID, exceptID string) bool {
	for id, c := range r.s.data.customers {
		if c.UserID == userID && id != exceptID {
			return true
		}
	}
	return false
}

func (r *customerRepo) Create(_ context.Context, c *customer.Customer) error {
	defer r.s.lock()()
	if r.userTaken(c.UserID, "") {
		return customer.ErrUserHasRecord
	}
	r.s.data.customers[c.ID] = *c
	r.s.data.track(c.ID)
	return nil
}

func (r *customerRepo) Update(_ context.Context, c *customer.Customer) error {
	defer r.s.lock()()
	if _, ok := r.s.data.customers[c.ID]; !ok {
		return apperr.NotFound("customer", c.ID)
	}
	if r.userTaken(c.UserID, c.ID) {
		return customer.ErrUserHasRecord
	}
	r.s.data.customers[c.ID] = *c
	return nil
}

func (r *customerRepo) FindByID(_ context.Context, id string) (*customer.Customer, error) {
	defer r.s.lock()()
	c, ok := r.s.data.customers[id]
	if !ok {
		return nil, apperr.NotFound("customer", id)
	}
	return &c, nil
}

func (r *customerRepo) Delete(_ context.Context, id string) error {
	defer r.s.lock()()
	if _, ok := r.s.data.customers[id]; !ok {
		return apperr.NotFound("customer", id)
	}
	delete(r.s.data.customers, id)
	delete(r.s.data.order, id)
	return nil
}

func (r *customerRepo) List(_ context.Context, f repository.CustomerFilter, page repository.Page) (repository.PageResult[customer.Customer], error) {
	defer r.s.lock()()
	out := make([]customer.Customer, 0, len(r.s.data.customers))
	for _, c := range r.s.data.customers {
		if f.Match(c) {
			out = append(out, c)
		}
	}
	seq := r.s.data.order
	sort.Slice(out, func(i, j int) bool { return seq[out[i].ID] < seq[out[j].ID] })
	return repository.Slice(out, page), nil
}
