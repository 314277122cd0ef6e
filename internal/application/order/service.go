package order

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/Hala-ashour/Restaurant98/internal/domain/apperr"
	domain "github.com/Hala-ashour/Restaurant98/internal/domain/order"
	"github.com/Hala-ashour/Restaurant98/internal/domain/repository"
	"github.com/Hala-ashour/Restaurant98/pkg/logger"
)

// Publisher announces committed status changes to other systems.
type Publisher interface {
	PublishStatusChanged(ctx context.Context, evt domain.StatusChanged) error
}

type NopPublisher struct{}

func (NopPublisher) PublishStatusChanged(context.Context, domain.StatusChanged) error { return nil }

type Service struct {
	store     repository.Store
	cache     repository.ProductCache
	publisher Publisher
	policy    domain.TransitionPolicy
	log       logger.Logger
}

type Option func(*Service)

func WithPublisher(p Publisher) Option {
	return func(s *Service) { s.publisher = p }
}

func WithProductCache(c repository.ProductCache) Option {
	return func(s *Service) { s.cache = c }
}

func WithTransitionPolicy(p domain.TransitionPolicy) Option {
	return func(s *Service) { s.policy = p }
}

func WithLogger(l logger.Logger) Option {
	return func(s *Service) { s.log = l }
}

func NewService(store repository.Store, opts ...Option) *Service {
	s := &Service{
		store:     store,
		cache:     repository.NopProductCache{},
		publisher: NopPublisher{},
		policy:    domain.PolicyPermissive,
		log:       logger.Nop{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type CreateOrderCommand struct {
	Customer string `json:"customer"`
	Status   string `json:"status"`
	Notes    string `json:"notes"`
}

// UpdateOrderCommand changes the order's own fields. Status is not part of it:
// status writes go through SetStatus so the cascade is never a side effect.
type UpdateOrderCommand struct {
	Customer *string `json:"customer"`
	Notes    *string `json:"notes"`
}

func (s *Service) CreateOrder(ctx context.Context, cmd CreateOrderCommand) (*domain.Order, error) {
	var status domain.Status
	if strings.TrimSpace(cmd.Status) != "" {
		parsed, err := domain.ParseStatus(cmd.Status)
		if err != nil {
			return nil, err
		}
		status = parsed
	}

	order, err := domain.NewOrder(uuid.NewString(), cmd.Customer, status, cmd.Notes)
	if err != nil {
		return nil, err
	}

	if err := s.store.Orders().Create(ctx, order); err != nil {
		return nil, fmt.Errorf("save order: %w", err)
	}

	s.log.WithContext(ctx).Debug("order created",
		logger.String("order_id", order.ID),
		logger.String("status", string(order.Status)),
	)
	return order, nil
}

// AddItem attaches a product line to the order. The total is not recomputed.
func (s *Service) AddItem(ctx context.Context, orderID, productID string, quantity int) (*domain.Item, error) {
	if quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}

	var item *domain.Item
	err := s.store.WithinTx(ctx, func(ctx context.Context, tx repository.Store) error {
		if _, err := tx.Orders().LockByID(ctx, orderID); err != nil {
			return err
		}

		product, err := tx.Products().FindByID(ctx, productID)
		if errors.Is(err, apperr.ErrNotFound) {
			return fmt.Errorf("%w %s", domain.ErrUnknownProduct, productID)
		}
		if err != nil {
			return err
		}

		item, err = domain.NewItem(uuid.NewString(), orderID, productID, quantity)
		if err != nil {
			return err
		}
		item.UnitPrice = product.Price
		item.ProductAvailable = product.IsAvailable

		return tx.Orders().AddItem(ctx, item)
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

// SetStatus writes the status and flips the availability of every product on the
// order in one transaction. The cascade runs even when the status is unchanged.
func (s *Service) SetStatus(ctx context.Context, orderID, rawStatus string) (*domain.Order, error) {
	status, err := domain.ParseStatus(rawStatus)
	if err != nil {
		return nil, err
	}

	var (
		order    *domain.Order
		previous domain.Status
	)
	err = s.store.WithinTx(ctx, func(ctx context.Context, tx repository.Store) error {
		var err error
		order, err = tx.Orders().LockByID(ctx, orderID)
		if err != nil {
			return err
		}

		previous, err = order.ChangeStatus(status, s.policy)
		if err != nil {
			return fmt.Errorf("%w: %s -> %s", err, order.Status, status)
		}

		productIDs := order.ProductIDs()
		available := status.ProductAvailability()
		if err := tx.Products().LockByIDs(ctx, productIDs); err != nil {
			return fmt.Errorf("lock products: %w", err)
		}
		if err := tx.Products().SetAvailability(ctx, productIDs, available); err != nil {
			return fmt.Errorf("set product availability: %w", err)
		}
		for i := range order.Items {
			order.Items[i].ProductAvailable = available
		}

		return tx.Orders().Update(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	evt := order.StatusChangedEvent(previous)
	s.cache.Invalidate(ctx, evt.ProductIDs...)

	log := s.log.WithContext(ctx)
	log.Info("order status changed",
		logger.String("order_id", order.ID),
		logger.String("from", string(previous)),
		logger.String("to", string(order.Status)),
		logger.Strings("product_ids", evt.ProductIDs),
		logger.Bool("products_available", evt.ProductsAvailable),
	)

	if err := s.publisher.PublishStatusChanged(ctx, evt); err != nil {
		log.Error("publish order status event failed",
			logger.String("order_id", order.ID),
			logger.Error(err),
		)
	}
	return order, nil
}

// RecomputeTotal sets the total to the sum of the line totals at current prices and persists it.
func (s *Service) RecomputeTotal(ctx context.Context, orderID string) (*domain.Order, error) {
	var order *domain.Order
	err := s.store.WithinTx(ctx, func(ctx context.Context, tx repository.Store) error {
		var err error
		order, err = tx.Orders().LockByID(ctx, orderID)
		if err != nil {
			return err
		}
		order.RecalculateTotal()
		return tx.Orders().Update(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	s.log.WithContext(ctx).Debug("order total recomputed",
		logger.String("order_id", order.ID),
		logger.String("total_amount", order.TotalAmount.StringFixed(2)),
	)
	return order, nil
}

func (s *Service) UpdateOrder(ctx context.Context, orderID string, cmd UpdateOrderCommand) (*domain.Order, error) {
	order, err := s.store.Orders().FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if cmd.Customer != nil {
		customer := strings.TrimSpace(*cmd.Customer)
		if customer == "" {
			return nil, domain.ErrMissingCustomer
		}
		order.Customer = customer
	}
	if cmd.Notes != nil {
		order.Notes = *cmd.Notes
	}

	if err := s.store.Orders().Update(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *Service) GetOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	return s.store.Orders().FindByID(ctx, orderID)
}

func (s *Service) ListOrders(ctx context.Context, f repository.OrderFilter, page repository.Page) (repository.PageResult[domain.Order], error) {
	return s.store.Orders().List(ctx, f, page)
}

// DeleteOrder removes the order and its items. Product availability is left as is.
func (s *Service) DeleteOrder(ctx context.Context, orderID string) error {
	return s.store.Orders().Delete(ctx, orderID)
}

// HandleKitchenCommand applies a status command received from the kitchen feed.
func (s *Service) HandleKitchenCommand(ctx context.Context, orderID, status string) error {
	if orderID == "" {
		return domain.ErrMissingField
	}
	_, err := s.SetStatus(ctx, orderID, status)
	return err
}
