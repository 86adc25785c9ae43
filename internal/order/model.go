package order

import "time"

type Item struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

type Order struct {
	ID              string    `json:"orderId"`
	UserID          string    `json:"userId"`
	CustomerName    string    `json:"customerName"`
	CustomerPhone   string    `json:"customerPhone,omitempty"`
	ShippingAddress string    `json:"shippingAddress"`
	Status          Status    `json:"status"`
	TotalAmount     float64   `json:"totalAmount"`
	Items           []Item    `json:"items"`
	CreatedAt       time.Time `json:"createdAt"`
}
