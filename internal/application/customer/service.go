package customer

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	domain "github.com/Hala-ashour/Restaurant98/internal/domain/customer"
	"github.com/Hala-ashour/Restaurant98/internal/domain/repository"
	"github.com/Hala-ashour/Restaurant98/pkg/logger"
)

type Service struct {
	store repository.Store
	log   logger.Logger
}

func NewService(store repository.Store, log logger.Logger) *Service {
	if log == nil {
		log = logger.Nop{}
	}
	return &Service{store: store, log: log}
}

type CustomerCommand struct {
	UserID  *string `json:"user"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
}

func (s *Service) CreateCustomer(ctx context.Context, cmd CustomerCommand) (*domain.Customer, error) {
	c, err := domain.NewCustomer(uuid.NewString(), value(cmd.UserID), value(cmd.Phone), value(cmd.Address))
	if err != nil {
		return nil, err
	}
	if err := s.store.Customers().Create(ctx, c); err != nil {
		return nil, fmt.Errorf("save customer: %w", err)
	}
	s.log.WithContext(ctx).Info("customer created",
		logger.String("customer_id", c.ID),
		logger.String("user_id", c.UserID),
	)
	return c, nil
}

func (s *Service) UpdateCustomer(ctx context.Context, id string, cmd CustomerCommand) (*domain.Customer, error) {
	c, err := s.store.Customers().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cmd.UserID != nil {
		c.UserID = strings.TrimSpace(*cmd.UserID)
	}
	if cmd.Phone != nil {
		c.Phone = strings.TrimSpace(*cmd.Phone)
	}
	if cmd.Address != nil {
		c.Address = *cmd.Address
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if err := s.store.Customers().Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) GetCustomer(ctx context.Context, id string) (*domain.Customer, error) {
	return s.store.Customers().FindByID(ctx, id)
}

func (s *Service) ListCustomers(ctx context.Context, f repository.CustomerFilter, page repository.Page) (repository.PageResult[domain.Customer], error) {
	return s.store.Customers().List(ctx, f, page)
}

func (s *Service) DeleteCustomer(ctx context.Context, id string) error {
	return s.store.Customers().Delete(ctx, id)
}

func value(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
