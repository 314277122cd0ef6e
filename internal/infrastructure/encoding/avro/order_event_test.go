package avro

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hala-ashour/Restaurant98/internal/domain/order"
)

func TestOrderEventCodec_RoundTrip(t *testing.T) {
	codec, err := NewOrderEventCodec()
	require.NoError(t, err)

	occurred := time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)
	evt := order.StatusChanged{
		OrderID:           "order-1",
		PreviousStatus:    order.StatusPending,
		Status:            order.StatusCompleted,
		ProductIDs:        []string{"p1", "p2"},
		ProductsAvailable: false,
		TotalAmount:       decimal.RequireFromString("34.50"),
		OccurredAt:        occurred,
	}

	binary, err := codec.Encode(evt)
	require.NoError(t, err)

	got, err := codec.Decode(binary)
	require.NoError(t, err)
	assert.Equal(t, evt.OrderID, got.OrderID)
	assert.Equal(t, order.StatusPending, got.PreviousStatus)
	assert.Equal(t, order.StatusCompleted, got.Status)
	assert.Equal(t, []string{"p1", "p2"}, got.ProductIDs)
	assert.False(t, got.ProductsAvailable)
	assert.Equal(t, "34.50", got.TotalAmount.StringFixed(2))
	assert.True(t, occurred.Equal(got.OccurredAt))
}

func TestOrderEventCodec_EmptyProducts(t *testing.T) {
	codec, err := NewOrderEventCodec()
	require.NoError(t, err)

	binary, err := codec.Encode(order.StatusChanged{
		OrderID:           "order-2",
		PreviousStatus:    order.StatusPending,
		Status:            order.StatusCanceled,
		ProductsAvailable: true,
		TotalAmount:       decimal.Zero,
		OccurredAt:        time.Now(),
	})
	require.NoError(t, err)

	got, err := codec.Decode(binary)
	require.NoError(t, err)
	assert.Empty(t, got.ProductIDs)
	assert.Equal(t, "0.00", got.TotalAmount.StringFixed(2))
}

func TestEncoder_EncodeJSON_RejectsNonObject(t *testing.T) {
	enc, err := NewEncoder(OrderStatusChangedSchema)
	require.NoError(t, err)

	_, err = enc.EncodeJSON([]byte(`[1,2,3]`))

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "object/record")
}

func TestNewEncoder_InvalidSchema(t *testing.T) {
	_, err := NewEncoder(`{"type": "record"}`)
	assert.Error(t, err)
}
