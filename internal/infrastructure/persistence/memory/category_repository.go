package memory

import (
	"context"
	"sort"

	"github.com/Hala-ashour/Restaurant98/internal/domain/apperr"
	"github.com/Hala-ashour/Restaurant98/internal/domain/catalog"
	"github.com/Hala-ashour/Restaurant98/internal/domain/repository"
)

type categoryRepo struct {
	s *Store
}

func (r *categoryRepo) Create(_ context.Context, c *catalog.Category) error {
	defer r.s.lock()()
	r.s.data.categories[c.ID] = *c
	r.s.data.track(c.ID)
	return nil
}

func (r *categoryRepo) Update(_ context.Context, c *catalog.Category) error {
	defer r.s.lock()()
	if _, ok := r.s.data.categories[c.ID]; !ok {
		return apperr.NotFound("category", c.ID)
	}
	r.s.data.categories[c.ID] = *c
	return nil
}

func (r *categoryRepo) FindByID(_ context.Context, id string) (*catalog.Category, error) {
	defer r.s.lock()()
	c, ok := r.s.data.categories[id]
	if !ok {
		return nil, apperr.NotFound("category", id)
	}
	return &c, nil
}

func (r *categoryRepo) Delete(_ context.Context, id string) error {
	defer r.s.lock()()
	if _, ok := r.s.data.categories[id]; !ok {
		return apperr.NotFound("category", id)
	}
	for pid, p := range r.s.data.products {
		if p.CategoryID != nil && *p.CategoryID == id {
			p.CategoryID = nil
			r.s.data.products[pid] = p
		}
	}
	delete(r.s.data.categories, id)
	delete(r.s.data.order, id)
	return nil
}

func (r *categoryRepo) List(ctx context.Context, f repository.CategoryFilter, page repository.Page) (repository.PageResult[catalog.Category], error) {
	all, err := r.ListAll(ctx, f)
	if err != nil {
		return repository.PageResult[catalog.Category]{}, err
	}
	return repository.Slice(all, page), nil
}

// ListAll returns matching categories in creation order.
func (r *categoryRepo) ListAll(_ context.Context, f repository.CategoryFilter) ([]catalog.Category, error) {
	defer r.s.lock()()
	out := make([]catalog.Category, 0, len(r.s.data.categories))
	for _, c := range r.s.data.categories {
		if f.Match(c) {
			out = append(out, c)
		}
	}
	seq := r.s.data.order
	sort.Slice(out, func(i, j int) bool { return seq[out[i].ID] < seq[out[j].ID] })
	return out, nil
}
