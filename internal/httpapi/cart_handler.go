package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/santos123-art/variety-vibe-store/internal/cart"
	"github.com/santos123-art/variety-vibe-store/internal/catalog"
	"github.com/santos123-art/variety-vibe-store/internal/middleware"
	"github.com/santos123-art/variety-vibe-store/internal/order"
)

type CartHandler struct {
	store    *cart.Store
	catalog  catalog.Repository
	checkout *order.Service
}

func NewCartHandler(store *cart.Store, catalogRepo catalog.Repository, checkout *order.Service) *CartHandler {
	return &CartHandler{store: store, catalog: catalogRepo, checkout: checkout}
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	writeJSON(w, http.StatusOK, h.store.Get(userID))
}

// AddItem looks the product up so price and display fields are captured
// server-side at insertion time, not trusted from the client.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var body struct {
		ProductID string `json:"productId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if body.ProductID == "" {
		writeError(w, http.StatusBadRequest, "productId is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	p, err := h.catalog.GetProduct(ctx, body.ProductID)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			writeError(w, http.StatusNotFound, "product not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to load product")
		return
	}
	if !p.Active {
		writeError(w, http.StatusConflict, "product is not available")
		return
	}

	c := h.store.AddItem(userID, cart.Product{
		ID:       p.ID,
		Name:     p.Name,
		Price:    p.Price,
		ImageURL: p.ImageURL,
	})
	writeJSON(w, http.StatusOK, c)
}

func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	productID := chi.URLParam(r, "productId")

	var body struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	// quantity <= 0 removes the line; the transition is total either way
	c := h.store.UpdateQuantity(userID, productID, body.Quantity)
	writeJSON(w, http.StatusOK, c)
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	productID := chi.URLParam(r, "productId")

	c := h.store.RemoveItem(userID, productID)
	writeJSON(w, http.StatusOK, c)
}

func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	writeJSON(w, http.StatusOK, h.store.Clear(userID))
}

func (h *CartHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req order.CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	o, err := h.checkout.Checkout(ctx, userID, req)
	if err != nil {
		var stockErr *order.StockError
		switch {
		case errors.Is(err, order.ErrEmptyCart):
			writeError(w, http.StatusBadRequest, "cart is empty")
		case errors.As(err, &stockErr):
			writeJSON(w, http.StatusConflict, map[string]any{
				"error":   "insufficient stock",
				"product": stockErr,
			})
		case req.Validate() != nil:
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "failed to place order")
		}
		return
	}

	writeJSON(w, http.StatusCreated, o)
}
