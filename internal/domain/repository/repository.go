// Package repository declares the storage ports the application layer depends on.
// Lookups of missing rows fail with an apperr.ErrNotFound error.
package repository

import (
	"context"

	"github.com/Hala-ashour/Restaurant98/internal/domain/catalog"
	"github.com/Hala-ashour/Restaurant98/internal/domain/customer"
	"github.com/Hala-ashour/Restaurant98/internal/domain/order"
)

type ProductRepository interface {
	Create(ctx context.Context, p *catalog.Product) error
	Update(ctx context.Context, p *catalog.Product) error
	FindByID(ctx context.Context, id string) (*catalog.Product, error)
	// LockByIDs takes row locks on the given products in ascending id order.
	LockByIDs(ctx context.Context, ids []string) error
	SetAvailability(ctx context.Context, ids []string, available bool) error
	IsReferenced(ctx context.Context, id string) (bool, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f ProductFilter, page Page) (PageResult[catalog.Product], error)
	ListAll(ctx context.Context, f ProductFilter) ([]catalog.Product, error)
}

type CategoryRepository interface {
	Create(ctx context.Context, c *catalog.Category) error
	Update(ctx context.Context, c *catalog.Category) error
	FindByID(ctx context.Context, id string) (*catalog.Category, error)
	// Delete removes the category and clears the category of its products.
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f CategoryFilter, page Page) (PageResult[catalog.Category], error)
	ListAll(ctx context.Context, f CategoryFilter) ([]catalog.Category, error)
}

type OrderRepository interface {
	Create(ctx context.Context, o *order.Order) error
	// FindByID loads the order with its items priced at the current product price.
	FindByID(ctx context.Context, id string) (*order.Order, error)
	// LockByID is FindByID holding a row lock on the order until the transaction ends.
	LockByID(ctx context.Context, id string) (*order.Order, error)
	// Update persists the order's own fields. It fails with order.ErrStaleOrder when
	// o.Version no longer matches the stored version and bumps o.Version on success.
	Update(ctx context.Context, o *order.Order) error
	AddItem(ctx context.Context, item *order.Item) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f OrderFilter, page Page) (PageResult[order.Order], error)
}

type CustomerRepository interface {
	Create(ctx context.Context, c *customer.Customer) error
	Update(ctx context.Context, c *customer.Customer) error
	FindByID(ctx context.Context, id string) (*customer.Customer, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f CustomerFilter, page Page) (PageResult[customer.Customer], error)
}

// Store groups the repositories over one backing store.
type Store interface {
	Products() ProductRepository
	Categories() CategoryRepository
	Orders() OrderRepository
	Customers() CustomerRepository

	// WithinTx runs fn against a Store bound to one transaction. The transaction
	// commits when fn returns nil and rolls back otherwise. Nested calls join the
	// outer transaction.
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx Store) error) error
}

// ProductCache is a read-through cache in front of ProductRepository.FindByID.
type ProductCache interface {
	Get(ctx context.Context, id string) (*catalog.Product, bool)
	Set(ctx context.Context, p *catalog.Product)
	Invalidate(ctx context.Context, ids ...string)
}

// NopProductCache is used when no cache backend is configured.
type NopProductCache struct{}

func (NopProductCache) Get(context.Context, string) (*catalog.Product, bool) { return nil, false }
func (NopProductCache) Set(context.Context, *catalog.Product)                {}
func (NopProductCache) Invalidate(context.Context, ...string)                {}
