package order

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const DefaultQuantity = 1

type Order struct {
	ID          string          `json:"id"`
	Customer    string          `json:"customer"`
	CreatedAt   time.Time       `json:"order_date"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Status      Status          `json:"status"`
	Notes       string          `json:"notes"`
	Version     int             `json:"-"`
	Items       []Item          `json:"items,omitempty"`
}

// Item is one order line. UnitPrice and ProductAvailable mirror the product at load time.
type Item struct {
	ID               string          `json:"id"`
	OrderID          string          `json:"order"`
	ProductID        string          `json:"product"`
	Quantity         int             `json:"quantity"`
	UnitPrice        decimal.Decimal `json:"unit_price"`
	ProductAvailable bool            `json:"product_available"`
}

func NewOrder(id, customer string, status Status, notes string) (*Order, error) {
	customer = strings.TrimSpace(customer)
	if id == "" {
		return nil, ErrMissingField
	}
	if customer == "" {
		return nil, ErrMissingCustomer
	}
	if status == "" {
		status = StatusPending
	}
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	return &Order{
		ID:          id,
		Customer:    customer,
		CreatedAt:   time.Now().UTC(),
		TotalAmount: decimal.Zero,
		Status:      status,
		Notes:       notes,
	}, nil
}

func NewItem(id, orderID, productID string, quantity int) (*Item, error) {
	if id == "" || orderID == "" || productID == "" {
		return nil, ErrMissingField
	}
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	return &Item{
		ID:        id,
		OrderID:   orderID,
		ProductID: productID,
		Quantity:  quantity,
	}, nil
}

// LineTotal is quantity times the current unit price. It is never stored.
func (i Item) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// RecalculateTotal sets TotalAmount to the sum of the line totals of the loaded items.
func (o *Order) RecalculateTotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.LineTotal())
	}
	o.TotalAmount = total.Round(2)
	return o.TotalAmount
}

// ChangeStatus moves the order to next under policy and returns the previous status.
func (o *Order) ChangeStatus(next Status, policy TransitionPolicy) (Status, error) {
	if !next.Valid() {
		return "", ErrInvalidStatus
	}
	prev := o.Status
	if !policy.Allows(prev, next) {
		return "", ErrInvalidTransition
	}
	o.Status = next
	return prev, nil
}

// ProductIDs returns the distinct product ids of the loaded items in ascending order.
func (o *Order) ProductIDs() []string {
	seen := make(map[string]struct{}, len(o.Items))
	ids := make([]string, 0, len(o.Items))
	for _, item := range o.Items {
		if _, ok := seen[item.ProductID]; ok {
			continue
		}
		seen[item.ProductID] = struct{}{}
		ids = append(ids, item.ProductID)
	}
	sort.Strings(ids)
	return ids
}
