package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domain "github.com/Hala-ashour/Restaurant98/internal/domain/catalog"
	"github.com/Hala-ashour/Restaurant98/internal/domain/repository"
	"github.com/Hala-ashour/Restaurant98/pkg/logger"
)

type Service struct {
	store repository.Store
	cache repository.ProductCache
	log   logger.Logger
}

func NewService(store repository.Store, cache repository.ProductCache, log logger.Logger) *Service {
	if cache == nil {
		cache = repository.NopProductCache{}
	}
	if log == nil {
		log = logger.Nop{}
	}
	return &Service{store: store, cache: cache, log: log}
}

type CategoryCommand struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"is_active"`
}

// ProductCommand carries optional product fields. A CategoryID of "" clears the category.
type ProductCommand struct {
	Name            *string          `json:"name"`
	Description     *string          `json:"description"`
	Price           *decimal.Decimal `json:"price"`
	CategoryID      *string          `json:"category"`
	IsAvailable     *bool            `json:"is_available"`
	PreparationTime *int             `json:"preparation_time"`
}

// Availability is the answer of the availability check endpoint.
type Availability struct {
	ProductID   string `json:"product_id"`
	IsAvailable bool   `json:"is_available"`
	Message     string `json:"message"`
}

// MenuSection lists the available products of one active category.
type MenuSection struct {
	CategoryID   string           `json:"category_id"`
	CategoryName string           `json:"category_name"`
	Products     []domain.Product `json:"products"`
}

/* ================= categories ================= */

func (s *Service) CreateCategory(ctx context.Context, cmd CategoryCommand) (*domain.Category, error) {
	c, err := domain.NewCategory(uuid.NewString(), deref(cmd.Name), deref(cmd.Description), derefBool(cmd.IsActive, true))
	if err != nil {
		return nil, err
	}
	if err := s.store.Categories().Create(ctx, c); err != nil {
		return nil, fmt.Errorf("save category: %w", err)
	}
	return c, nil
}

func (s *Service) UpdateCategory(ctx context.Context, id string, cmd CategoryCommand) (*domain.Category, error) {
	c, err := s.store.Categories().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cmd.Name != nil {
		c.Name = strings.TrimSpace(*cmd.Name)
	}
	if cmd.Description != nil {
		c.Description = *cmd.Description
	}
	if cmd.IsActive != nil {
		c.IsActive = *cmd.IsActive
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if err := s.store.Categories().Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) GetCategory(ctx context.Context, id string) (*domain.Category, error) {
	return s.store.Categories().FindByID(ctx, id)
}

func (s *Service) ListCategories(ctx context.Context, f repository.CategoryFilter, page repository.Page) (repository.PageResult[domain.Category], error) {
	return s.store.Categories().List(ctx, f, page)
}

// DeleteCategory removes the category. Its products stay and lose their category.
func (s *Service) DeleteCategory(ctx context.Context, id string) error {
	var affected []string
	err := s.store.WithinTx(ctx, func(ctx context.Context, tx repository.Store) error {
		products, err := tx.Products().ListAll(ctx, repository.ProductFilter{CategoryID: &id})
		if err != nil {
			return err
		}
		for _, p := range products {
			affected = append(affected, p.ID)
		}
		return tx.Categories().Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	s.cache.Invalidate(ctx, affected...)
	s.log.WithContext(ctx).Info("category deleted",
		logger.String("category_id", id),
		logger.Int("products_uncategorized", len(affected)),
	)
	return nil
}

/* ================= products ================= */

func (s *Service) CreateProduct(ctx context.Context, cmd ProductCommand) (*domain.Product, error) {
	price := decimal.Zero
	if cmd.Price != nil {
		price = *cmd.Price
	}
	p, err := domain.NewProduct(
		uuid.NewString(),
		deref(cmd.Name),
		deref(cmd.Description),
		price,
		nonEmpty(cmd.CategoryID),
		derefBool(cmd.IsAvailable, true),
		derefInt(cmd.PreparationTime),
	)
	if err != nil {
		return nil, err
	}
	if err := s.store.Products().Create(ctx, p); err != nil {
		return nil, fmt.Errorf("save product: %w", err)
	}
	return p, nil
}

func (s *Service) UpdateProduct(ctx context.Context, id string, cmd ProductCommand) (*domain.Product, error) {
	p, err := s.store.Products().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cmd.Name != nil {
		p.Name = strings.TrimSpace(*cmd.Name)
	}
	if cmd.Description != nil {
		p.Description = *cmd.Description
	}
	if cmd.Price != nil {
		p.Price = cmd.Price.Round(2)
	}
	if cmd.CategoryID != nil {
		p.CategoryID = nonEmpty(cmd.CategoryID)
	}
	if cmd.IsAvailable != nil {
		p.IsAvailable = *cmd.IsAvailable
	}
	if cmd.PreparationTime != nil {
		p.PreparationTime = *cmd.PreparationTime
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	if err := s.store.Products().Update(ctx, p); err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, p.ID)
	return p, nil
}

// GetProduct reads through the product cache.
func (s *Service) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	if p, ok := s.cache.Get(ctx, id); ok {
		return p, nil
	}
	p, err := s.store.Products().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.cache.Set(ctx, p)
	return p, nil
}

func (s *Service) ListProducts(ctx context.Context, f repository.ProductFilter, page repository.Page) (repository.PageResult[domain.Product], error) {
	return s.store.Products().List(ctx, f, page)
}

func (s *Service) ListAvailableProducts(ctx context.Context, page repository.Page) (repository.PageResult[domain.Product], error) {
	available := true
	return s.store.Products().List(ctx, repository.ProductFilter{Available: &available}, page)
}

// DeleteProduct fails with ErrProductReferenced while any order item points at the product.
func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	err := s.store.WithinTx(ctx, func(ctx context.Context, tx repository.Store) error {
		if _, err := tx.Products().FindByID(ctx, id); err != nil {
			return err
		}
		referenced, err := tx.Products().IsReferenced(ctx, id)
		if err != nil {
			return err
		}
		if referenced {
			return fmt.Errorf("%w: %s", domain.ErrProductReferenced, id)
		}
		return tx.Products().Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	s.cache.Invalidate(ctx, id)
	return nil
}

func (s *Service) CheckAvailability(ctx context.Context, id string) (*Availability, error) {
	p, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	return &Availability{
		ProductID:   p.ID,
		IsAvailable: p.IsAvailable,
		Message:     p.AvailabilityMessage(),
	}, nil
}

// MenuByCategory groups available products under their active categories.
// Categories without available products are left out.
func (s *Service) MenuByCategory(ctx context.Context) ([]MenuSection, error) {
	active := true
	categories, err := s.store.Categories().ListAll(ctx, repository.CategoryFilter{Active: &active})
	if err != nil {
		return nil, err
	}
	products, err := s.store.Products().ListAll(ctx, repository.ProductFilter{Available: &active})
	if err != nil {
		return nil, err
	}

	byCategory := make(map[string][]domain.Product)
	for _, p := range products {
		if p.CategoryID != nil {
			byCategory[*p.CategoryID] = append(byCategory[*p.CategoryID], p)
		}
	}

	menu := make([]MenuSection, 0, len(categories))
	for _, c := range categories {
		if len(byCategory[c.ID]) == 0 {
			continue
		}
		menu = append(menu, MenuSection{
			CategoryID:   c.ID,
			CategoryName: c.Name,
			Products:     byCategory[c.ID],
		})
	}
	return menu, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefBool(b *bool, def bool) bool {
	if b == nil {
		return def
	}
	return *b
}

func derefInt(i *int) int {
	if i == nil {
		return 0
	}
	return *i
}

func nonEmpty(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
