package memory

import (
	"context"
	"sort"

	"github.com/Hala-ashour/Restaurant98/internal/domain/apperr"
	"github.com/Hala-ashour/Restaurant98/internal/domain/catalog"
	"github.com/Hala-ashour/Restaurant98/internal/domain/repository"
)

type productRepo struct {
	s *Store
}

func copyProduct(p catalog.Product) *catalog.Product {
	if p.CategoryID != nil {
		id := *p.CategoryID
		p.CategoryID = &id
	}
	return &p
}

func (r *productRepo) Create(_ context.Context, p *catalog.Product) error {
	defer r.s.lock()()
	if p.CategoryID != nil {
		if _, ok := r.s.data.categories[*p.CategoryID]; !ok {
			return apperr.NotFound("category", *p.CategoryID)
		}
	}
	r.s.data.products[p.ID] = *copyProduct(*p)
	r.s.data.track(p.ID)
	return nil
}

func (r *productRepo) Update(_ context.Context, p *catalog.Product) error {
	defer r.s.lock()()
	existing, ok := r.s.data.products[p.ID]
	if !ok {
		return apperr.NotFound("product", p.ID)
	}
	if p.CategoryID != nil {
		if _, ok := r.s.data.categories[*p.CategoryID]; !ok {
			return apperr.NotFound("category", *p.CategoryID)
		}
	}
	updated := *copyProduct(*p)
	updated.CreatedAt = existing.CreatedAt
	r.s.data.products[p.ID] = updated
	return nil
}

func (r *productRepo) FindByID(_ context.Context, id string) (*catalog.Product, error) {
	defer r.s.lock()()
	p, ok := r.s.data.products[id]
	if !ok {
		return nil, apperr.NotFound("product", id)
	}
	return copyProduct(p), nil
}

// LockByIDs only checks existence; the store mutex already serializes transactions.
func (r *productRepo) LockByIDs(_ context.Context, ids []string) error {
	defer r.s.lock()()
	for _, id := range ids {
		if _, ok := r.s.data.products[id]; !ok {
			return apperr.NotFound("product", id)
		}
	}
	return nil
}

func (r *productRepo) SetAvailability(_ context.Context, ids []string, available bool) error {
	defer r.s.lock()()
	for _, id := range ids {
		p, ok := r.s.data.products[id]
		if !ok {
			return apperr.NotFound("product", id)
		}
		p.IsAvailable = available
		r.s.data.products[id] = p
	}
	return nil
}

func (r *productRepo) IsReferenced(_ context.Context, id string) (bool, error) {
	defer r.s.lock()()
	for _, item := range r.s.data.items {
		if item.ProductID == id {
			return true, nil
		}
	}
	return false, nil
}

func (r *productRepo) Delete(_ context.Context, id string) error {
	defer r.s.lock()()
	if _, ok := r.s.data.products[id]; !ok {
		return apperr.NotFound("product", id)
	}
	for _, item := range r.s.data.items {
		if item.ProductID == id {
			return catalog.ErrProductReferenced
		}
	}
	delete(r.s.data.products, id)
	delete(r.s.data.order, id)
	return nil
}

func (r *productRepo) List(ctx context.Context, f repository.ProductFilter, page repository.Page) (repository.PageResult[catalog.Product], error) {
	all, err := r.ListAll(ctx, f)
	if err != nil {
		return repository.PageResult[catalog.Product]{}, err
	}
	return repository.Slice(all, page), nil
}

// ListAll returns matching products newest first.
func (r *productRepo) ListAll(_ context.Context, f repository.ProductFilter) ([]catalog.Product, error) {
	defer r.s.lock()()
	out := make([]catalog.Product, 0, len(r.s.data.products))
	for _, p := range r.s.data.products {
		if f.Match(p) {
			out = append(out, *copyProduct(p))
		}
	}
	seq := r.s.data.order
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return seq[out[i].ID] > seq[out[j].ID]
	})
	return out, nil
}
