package catalog

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

const (
	CategoryNameMaxLen        = 25
	CategoryDescriptionMaxLen = 100
	ProductNameMaxLen         = 100

	MessageAvailable   = "Available for order"
	MessageUnavailable = "Currently unavailable"
)

type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	IsActive    bool   `json:"is_active"`
}

func NewCategory(id, name, description string, isActive bool) (*Category, error) {
	c := &Category{
		ID:          id,
		Name:        strings.TrimSpace(name),
		Description: description,
		IsActive:    isActive,
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Category) Validate() error {
	if c.Name == "" {
		return ErrMissingName
	}
	if utf8.RuneCountInString(c.Name) > CategoryNameMaxLen {
		return ErrNameTooLong
	}
	if utf8.RuneCountInString(c.Description) > CategoryDescriptionMaxLen {
		return ErrDescriptionTooLong
	}
	return nil
}

// Product is a menu entry. IsAvailable is flipped by order status cascades.
type Product struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	Price           decimal.Decimal `json:"price"`
	CategoryID      *string         `json:"category"`
	IsAvailable     bool            `json:"is_available"`
	PreparationTime int             `json:"preparation_time"`
	CreatedAt       time.Time       `json:"created_at"`
}

func NewProduct(id, name, description string, price decimal.Decimal, categoryID *string, isAvailable bool, preparationTime int) (*Product, error) {
	p := &Product{
		ID:              id,
		Name:            strings.TrimSpace(name),
		Description:     description,
		Price:           price.Round(2),
		CategoryID:      categoryID,
		IsAvailable:     isAvailable,
		PreparationTime: preparationTime,
		CreatedAt:       time.Now().UTC(),
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Product) Validate() error {
	if p.Name == "" {
		return ErrMissingName
	}
	if utf8.RuneCountInString(p.Name) > ProductNameMaxLen {
		return ErrNameTooLong
	}
	if p.Price.IsNegative() {
		return ErrInvalidPrice
	}
	if p.PreparationTime <= 0 {
		return ErrInvalidPreparationTime
	}
	return nil
}

// AvailabilityMessage is the human readable label shown by the availability check.
func (p *Product) AvailabilityMessage() string {
	if p.IsAvailable {
		return MessageAvailable
	}
	return MessageUnavailable
}
