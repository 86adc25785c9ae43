package cart

import "time"

// Product is the catalog data captured when an item enters the cart.
// Price and display fields are frozen at insertion time; later catalog
// edits do not touch items already in a cart.
type Product struct {
	ID       string  `json:"productId"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	ImageURL string  `json:"imageUrl,omitempty"`
}

type Item struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	ImageURL  string  `json:"imageUrl,omitempty"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

// Cart holds the line items for one user session. ItemCount and Total are
// derived from Items and recomputed after every transition; they are never
// written independently.
type Cart struct {
	UserID    string    `json:"userId"`
	Items     []Item    `json:"items"`
	ItemCount int       `json:"itemCount"`
	Total     float64   `json:"totalAmount"`
	UpdatedAt time.Time `json:"updatedAt"`
}
