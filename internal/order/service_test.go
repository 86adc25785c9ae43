package order

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/santos123-art/variety-vibe-store/internal/cart"
)

type fakeRepo struct {
	placeOrderFunc func(ctx context.Context, o *Order) error
	placed         []*Order
}

func (f *fakeRepo) PlaceOrder(ctx context.Context, o *Order) error {
	f.placed = append(f.placed, o)
	if f.placeOrderFunc != nil {
		return f.placeOrderFunc(ctx, o)
	}
	if o.ID == "" {
		o.ID = "order-1"
	}
	return nil
}

func (f *fakeRepo) GetByID(ctx context.Context, orderID string) (*Order, error) { return nil, nil }
func (f *fakeRepo) ListByUser(ctx context.Context, userID string) ([]Order, error) {
	return nil, nil
}
func (f *fakeRepo) ListAll(ctx context.Context) ([]Order, error) { return nil, nil }
func (f *fakeRepo) UpdateStatus(ctx context.Context, orderID string, status Status) error {
	return nil
}

type fakePublisher struct {
	published []*Order
	err       error
}

func (f *fakePublisher) PublishOrderCreated(ctx context.Context, o *Order) error {
	f.published = append(f.published, o)
	return f.err
}

func discardLogger() *log.Logger { return log.New(io.Discard, "", 0) }

func validRequest() CheckoutRequest {
	return CheckoutRequest{
		CustomerName:    "Ana Souza",
		CustomerPhone:   "+55 11 99999-0000",
		ShippingAddress: "Rua das Flores 123, São Paulo",
	}
}

func TestCheckout_Success(t *testing.T) {
	repo := &fakeRepo{}
	pub := &fakePublisher{}
	carts := cart.NewStore()
	carts.AddItem("u1", cart.Product{ID: "p1", Name: "Mug", Price: 10})
	carts.AddItem("u1", cart.Product{ID: "p1", Name: "Mug", Price: 10})
	carts.AddItem("u1", cart.Product{ID: "p2", Name: "Shirt", Price: 25})

	svc := NewService(repo, carts, pub, discardLogger())
	o, err := svc.Checkout(context.Background(), "u1", validRequest())
	require.NoError(t, err)

	assert.Equal(t, StatusPending, o.Status)
	assert.Equal(t, 45.0, o.TotalAmount)
	require.Len(t, o.Items, 2)
	assert.Equal(t, 2, o.Items[0].Quantity)

	require.Len(t, pub.published, 1)
	assert.Empty(t, carts.Get("u1").Items, "cart must be cleared after success")
}

func TestCheckout_EmptyCart(t *testing.T) {
	svc := NewService(&fakeRepo{}, cart.NewStore(), &fakePublisher{}, discardLogger())

	_, err := svc.Checkout(context.Background(), "u1", validRequest())
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestCheckout_InvalidRequest(t *testing.T) {
	carts := cart.NewStore()
	carts.AddItem("u1", cart.Product{ID: "p1", Price: 10})
	repo := &fakeRepo{}
	svc := NewService(repo, carts, &fakePublisher{}, discardLogger())

	_, err := svc.Checkout(context.Background(), "u1", CheckoutRequest{ShippingAddress: "somewhere"})
	require.Error(t, err)
	assert.Empty(t, repo.placed, "validation must run before any persistence")
}

func TestCheckout_PlacementFailureLeavesCartUntouched(t *testing.T) {
	repo := &fakeRepo{
		placeOrderFunc: func(ctx context.Context, o *Order) error {
			return &StockError{ProductID: "p1", Requested: 2, Available: 1}
		},
	}
	pub := &fakePublisher{}
	carts := cart.NewStore()
	carts.AddItem("u1", cart.Product{ID: "p1", Price: 10})
	carts.AddItem("u1", cart.Product{ID: "p1", Price: 10})

	svc := NewService(repo, carts, pub, discardLogger())
	_, err := svc.Checkout(context.Background(), "u1", validRequest())

	assert.ErrorIs(t, err, ErrInsufficientStock)
	assert.Empty(t, pub.published)
	assert.Equal(t, 2, carts.Get("u1").ItemCount, "failed placement must not clear the cart")
}

func TestCheckout_PublishFailureStillSucceeds(t *testing.T) {
	repo := &fakeRepo{}
	pub := &fakePublisher{err: errors.New("broker down")}
	carts := cart.NewStore()
	carts.AddItem("u1", cart.Product{ID: "p1", Price: 10})

	svc := NewService(repo, carts, pub, discardLogger())
	o, err := svc.Checkout(context.Background(), "u1", validRequest())

	require.NoError(t, err)
	assert.NotEmpty(t, o.ID)
	assert.Empty(t, carts.Get("u1").Items)
}

func TestStockErrorUnwraps(t *testing.T) {
	err := error(&StockError{ProductID: "p1", Requested: 3, Available: 1})
	assert.ErrorIs(t, err, ErrInsufficientStock)

	var se *StockError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, 1, se.Available)
}
