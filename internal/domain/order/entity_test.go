package order

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOrder_DefaultsToPending(t *testing.T) {
	o, err := NewOrder("o1", "Test Customer", "", "")

	require.NoError(t, err)
	assert.Equal(t, StatusPending, o.Status)
	assert.True(t, o.TotalAmount.IsZero())
	assert.False(t, o.CreatedAt.IsZero())
}

func TestNewOrder_Invalid(t *testing.T) {
	_, err := NewOrder("o1", "  ", StatusPending, "")
	assert.ErrorIs(t, err, ErrMissingCustomer)

	_, err = NewOrder("o1", "Bob", Status("lost"), "")
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = NewOrder("", "Bob", StatusPending, "")
	assert.ErrorIs(t, err, ErrMissingField)
}

func TestNewItem_InvalidQuantity(t *testing.T) {
	for _, q := range []int{0, -3} {
		item, err := NewItem("i1", "o1", "p1", q)

		assert.Nil(t, item)
		assert.ErrorIs(t, err, ErrInvalidQuantity)
	}
}

func TestItem_LineTotal(t *testing.T) {
	item := Item{Quantity: 2, UnitPrice: decimal.RequireFromString("3.50")}

	assert.True(t, decimal.RequireFromString("7.00").Equal(item.LineTotal()))
}

func TestOrder_RecalculateTotal(t *testing.T) {
	o := &Order{Items: []Item{
		{ProductID: "p1", Quantity: 2, UnitPrice: decimal.RequireFromString("3.50")},
		{ProductID: "p2", Quantity: 3, UnitPrice: decimal.RequireFromString("7.99")},
	}}

	total := o.RecalculateTotal()

	assert.Equal(t, "30.97", total.StringFixed(2))
	assert.True(t, total.Equal(o.TotalAmount))
}

func TestOrder_RecalculateTotal_NoItems(t *testing.T) {
	o := &Order{TotalAmount: decimal.NewFromInt(12)}

	assert.True(t, o.RecalculateTotal().IsZero())
}

func TestOrder_ChangeStatus(t *testing.T) {
	o := &Order{Status: StatusPending}

	prev, err := o.ChangeStatus(StatusCompleted, PolicyPermissive)
	require.NoError(t, err)
	assert.Equal(t, StatusPending, prev)
	assert.Equal(t, StatusCompleted, o.Status)

	_, err = o.ChangeStatus(StatusPending, PolicyStrict)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, StatusCompleted, o.Status)

	_, err = o.ChangeStatus(Status("bogus"), PolicyPermissive)
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestOrder_ProductIDs(t *testing.T) {
	o := &Order{Items: []Item{{ProductID: "b"}, {ProductID: "a"}, {ProductID: "b"}}}

	assert.Equal(t, []string{"a", "b"}, o.ProductIDs())
}
