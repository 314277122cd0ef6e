package order

import (
	"time"

	"github.com/shopspring/decimal"
)

// StatusChanged is emitted after a status write and its availability cascade commit.
type StatusChanged struct {
	OrderID           string
	PreviousStatus    Status
	Status            Status
	ProductIDs        []string
	ProductsAvailable bool
	TotalAmount       decimal.Decimal
	OccurredAt        time.Time
}

func (o *Order) StatusChangedEvent(previous Status) StatusChanged {
	return StatusChanged{
		OrderID:           o.ID,
		PreviousStatus:    previous,
		Status:            o.Status,
		ProductIDs:        o.ProductIDs(),
		ProductsAvailable: o.Status.ProductAvailability(),
		TotalAmount:       o.TotalAmount,
		OccurredAt:        time.Now().UTC(),
	}
}
