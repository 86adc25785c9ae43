package catalog

import "time"

type Product struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	Price         float64   `json:"price"`
	ImageURL      string    `json:"imageUrl,omitempty"`
	CategoryID    *string   `json:"categoryId"`
	CategoryName  string    `json:"categoryName,omitempty"`
	StockQuantity int       `json:"stockQuantity"`
	Active        bool      `json:"active"`
	CreatedAt     time.Time `json:"createdAt"`
}

type Category struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}
