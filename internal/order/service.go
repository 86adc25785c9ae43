package order

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/santos123-art/variety-vibe-store/internal/cart"
)

var ErrEmptyCart = errors.New("cart is empty")

// Publisher emits domain events after state changes have been committed.
type Publisher interface {
	PublishOrderCreated(ctx context.Context, o *Order) error
}

// CheckoutRequest carries the customer contact fields collected at
// checkout. It is validated before anything touches the database.
type CheckoutRequest struct {
	CustomerName    string `json:"customerName"`
	CustomerPhone   string `json:"customerPhone"`
	ShippingAddress string `json:"shippingAddress"`
}

func (r CheckoutRequest) Validate() error {
	if strings.TrimSpace(r.CustomerName) == "" {
		return errors.New("customerName is required")
	}
	if strings.TrimSpace(r.ShippingAddress) == "" {
		return errors.New("shippingAddress is required")
	}
	return nil
}

// Service turns a cart into a persisted order. The cart is cleared only
// after the order transaction has committed; a failed placement leaves it
// untouched so the customer can retry.
type Service struct {
	orders    Repository
	carts     *cart.Store
	publisher Publisher
	logger    *log.Logger
}

func NewService(orders Repository, carts *cart.Store, publisher Publisher, logger *log.Logger) *Service {
	return &Service{orders: orders, carts: carts, publisher: publisher, logger: logger}
}

func (s *Service) Checkout(ctx context.Context, userID string, req CheckoutRequest) (*Order, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	snap := s.carts.Get(userID)
	if len(snap.Items) == 0 {
		return nil, ErrEmptyCart
	}

	o := &Order{
		UserID:          userID,
		CustomerName:    strings.TrimSpace(req.CustomerName),
		CustomerPhone:   strings.TrimSpace(req.CustomerPhone),
		ShippingAddress: strings.TrimSpace(req.ShippingAddress),
		Status:          StatusPending,
		TotalAmount:     snap.Total,
		CreatedAt:       time.Now().UTC(),
	}
	for _, it := range snap.Items {
		o.Items = append(o.Items, Item{
			ProductID: it.ProductID,
			Name:      it.Name,
			Quantity:  it.Quantity,
			Price:     it.Price,
		})
	}

	if err := s.orders.PlaceOrder(ctx, o); err != nil {
		return nil, fmt.Errorf("place order: %w", err)
	}

	// The order is committed at this point. A lost event is logged, not
	// surfaced: failing the request now would strand a real order.
	if err := s.publisher.PublishOrderCreated(ctx, o); err != nil {
		s.logger.Printf("publish OrderCreated for %s: %v", o.ID, err)
	}

	s.carts.Clear(userID)
	return o, nil
}
