package repository

import (
	"github.com/shopspring/decimal"

	"github.com/Hala-ashour/Restaurant98/internal/domain/catalog"
	"github.com/Hala-ashour/Restaurant98/internal/domain/customer"
	"github.com/Hala-ashour/Restaurant98/internal/domain/order"
)

type ProductFilter struct {
	CategoryID *string
	Available  *bool
	PriceGT    *decimal.Decimal
	PriceLT    *decimal.Decimal
}

func (f ProductFilter) Match(p catalog.Product) bool {
	if f.CategoryID != nil && (p.CategoryID == nil || *p.CategoryID != *f.CategoryID) {
		return false
	}
	if f.Available != nil && p.IsAvailable != *f.Available {
		return false
	}
	if f.PriceGT != nil && !p.Price.GreaterThan(*f.PriceGT) {
		return false
	}
	if f.PriceLT != nil && !p.Price.LessThan(*f.PriceLT) {
		return false
	}
	return true
}

type CategoryFilter struct {
	Active *bool
}

func (f CategoryFilter) Match(c catalog.Category) bool {
	return f.Active == nil || c.IsActive == *f.Active
}

type OrderFilter struct {
	Status   *order.Status
	Customer string
}

func (f OrderFilter) Match(o order.Order) bool {
	if f.Status != nil && o.Status != *f.Status {
		return false
	}
	return f.Customer == "" || o.Customer == f.Customer
}

type CustomerFilter struct {
	Phone string
}

func (f CustomerFilter) Match(c customer.Customer) bool {
	return f.Phone == "" || c.Phone == f.Phone
}
