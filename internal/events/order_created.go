package events

import "time"

const EventTypeOrderCreated = "OrderCreated"

type OrderItem struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// OrderCreated is the contract published to the order.created queue after
// a checkout commits. Downstream consumers (fulfilment, notifications)
// key on OrderID.
type OrderCreated struct {
	EventType   string      `json:"eventType"`
	OrderID     string      `json:"orderId"`
	UserID      string      `json:"userId"`
	Items       []OrderItem `json:"items"`
	TotalAmount float64     `json:"totalAmount"`
	Timestamp   time.Time   `json:"timestamp"`
}
