package avro

// OrderStatusChangedSchema describes the event published after an order status write commits.
// total_amount is a fixed two-decimal string so amounts never pass through a float.
const OrderStatusChangedSchema = `{
	"type": "record",
	"name": "OrderStatusChanged",
	"namespace": "com.restaurant.order",
	"fields": [
		{"name": "order_id", "type": "string"},
		{"name": "previous_status", "type": "string"},
		{"name": "status", "type": "string"},
		{"name": "product_ids", "type": {"type": "array", "items": "string"}, "default": []},
		{"name": "products_available", "type": "boolean"},
		{"name": "total_amount", "type": "string"},
		{"name": "occurred_at", "type": {"type": "long", "logicalType": "timestamp-millis"}}
	]
}`
