package kafka

import "time"

// EventType определяет тип события
type EventType string

const (
	// EventTypeOrderPlaced — заказ размещён: сток списан, позиции зафиксированы.
	EventTypeOrderPlaced EventType = "order.placed"
)

// Topics для Kafka
const (
	TopicOrderEvents     = "storefront.order.events"
	TopicDeadLetterQueue = "storefront.dlq" // Dead Letter Queue для failed messages
)

// OrderPlacedEvent — payload события размещения заказа.
type OrderPlacedEvent struct {
	EventType   EventType        `json:"event_type"`
	OrderID     string           `json:"order_id"`
	CustomerID  string           `json:"customer_id"`
	AmountMinor int64            `json:"amount_minor"`
	Items       []OrderEventItem `json:"items"`
	Timestamp   time.Time        `json:"timestamp"`
}

// OrderEventItem — позиция заказа в событии.
type OrderEventItem struct {
	ProductID  string `json:"product_id"`
	Qty        int32  `json:"qty"`
	PriceMinor int64  `json:"price_minor"`
}

// NewOrderPlacedEvent создает событие размещения заказа.
func NewOrderPlacedEvent(orderID, customerID string, amountMinor int64, items []OrderEventItem) *OrderPlacedEvent {
	return &OrderPlacedEvent{
		EventType:   EventTypeOrderPlaced,
		OrderID:     orderID,
		CustomerID:  customerID,
		AmountMinor: amountMinor,
		Items:       items,
		Timestamp:   time.Now(),
	}
}
