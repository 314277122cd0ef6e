package avro

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Hala-ashour/Restaurant98/internal/domain/order"
)

// OrderEventCodec encodes StatusChanged events with OrderStatusChangedSchema.
type OrderEventCodec struct {
	enc *Encoder
}

func NewOrderEventCodec() (*OrderEventCodec, error) {
	enc, err := NewEncoder(OrderStatusChangedSchema)
	if err != nil {
		return nil, err
	}
	return &OrderEventCodec{enc: enc}, nil
}

func (c *OrderEventCodec) Encode(evt order.StatusChanged) ([]byte, error) {
	return c.enc.EncodeNative(ToStatusChangedNative(evt))
}

func (c *OrderEventCodec) Decode(binary []byte) (order.StatusChanged, error) {
	native, err := c.enc.DecodeNative(binary)
	if err != nil {
		return order.StatusChanged{}, err
	}
	record, ok := native.(map[string]interface{})
	if !ok {
		return order.StatusChanged{}, fmt.Errorf("avro record expected, got %T", native)
	}
	return FromStatusChangedNative(record)
}

// ToStatusChangedNative maps the event to the goavro native form.
func ToStatusChangedNative(evt order.StatusChanged) map[string]interface{} {
	ids := make([]interface{}, 0, len(evt.ProductIDs))
	for _, id := range evt.ProductIDs {
		ids = append(ids, id)
	}
	return map[string]interface{}{
		"order_id":           evt.OrderID,
		"previous_status":    string(evt.PreviousStatus),
		"status":             string(evt.Status),
		"product_ids":        ids,
		"products_available": evt.ProductsAvailable,
		"total_amount":       evt.TotalAmount.StringFixed(2),
		"occurred_at":        evt.OccurredAt.UTC(),
	}
}

func FromStatusChangedNative(record map[string]interface{}) (order.StatusChanged, error) {
	var evt order.StatusChanged
	var ok bool

	if evt.OrderID, ok = record["order_id"].(string); !ok {
		return evt, fmt.Errorf("order_id: unexpected type %T", record["order_id"])
	}
	prev, _ := record["previous_status"].(string)
	status, _ := record["status"].(string)
	evt.PreviousStatus = order.Status(prev)
	evt.Status = order.Status(status)

	ids, _ := record["product_ids"].([]interface{})
	evt.ProductIDs = make([]string, 0, len(ids))
	for _, id := range ids {
		s, ok := id.(string)
		if !ok {
			return evt, fmt.Errorf("product_ids: unexpected item type %T", id)
		}
		evt.ProductIDs = append(evt.ProductIDs, s)
	}

	evt.ProductsAvailable, _ = record["products_available"].(bool)

	amount, _ := record["total_amount"].(string)
	total, err := decimal.NewFromString(amount)
	if err != nil {
		return evt, fmt.Errorf("total_amount: %w", err)
	}
	evt.TotalAmount = total

	if evt.OccurredAt, ok = record["occurred_at"].(time.Time); !ok {
		return evt, fmt.Errorf("occurred_at: unexpected type %T", record["occurred_at"])
	}
	return evt, nil
}
