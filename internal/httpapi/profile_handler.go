package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/santos123-art/variety-vibe-store/internal/middleware"
	"github.com/santos123-art/variety-vibe-store/internal/order"
	"github.com/santos123-art/variety-vibe-store/internal/profile"
)

type ProfileHandler struct {
	profiles profile.Repository
	orders   order.Repository
}

func NewProfileHandler(profiles profile.Repository, orders order.Repository) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, orders: orders}
}

func (h *ProfileHandler) GetMyProfile(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	p, err := h.profiles.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, profile.ErrNotFound) {
			writeError(w, http.StatusNotFound, "profile not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to load profile")
		return
	}

	writeJSON(w, http.StatusOK, p)
}

type profileRequest struct {
	Email    string `json:"email"`
	FullName string `json:"fullName"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

func (r *profileRequest) validate() error {
	if strings.TrimSpace(r.Email) == "" {
		return errors.New("email is required")
	}
	return nil
}

func (h *ProfileHandler) UpdateMyProfile(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req profileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	p := &profile.Profile{
		ID:       userID,
		Email:    strings.TrimSpace(req.Email),
		FullName: strings.TrimSpace(req.FullName),
		Phone:    strings.TrimSpace(req.Phone),
		Address:  strings.TrimSpace(req.Address),
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	if err := h.profiles.Upsert(ctx, p); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to save profile")
		return
	}

	writeJSON(w, http.StatusOK, p)
}

func (h *ProfileHandler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	customers, err := h.profiles.List(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load customers")
		return
	}
	if customers == nil {
		customers = []profile.Profile{}
	}

	writeJSON(w, http.StatusOK, customers)
}

// GetCustomer returns a customer's profile together with their order
// history, mirroring the back office detail view.
func (h *ProfileHandler) GetCustomer(w http.ResponseWriter, r *http.Request) {
	customerID := chi.URLParam(r, "customerId")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	p, err := h.profiles.Get(ctx, customerID)
	if err != nil {
		if errors.Is(err, profile.ErrNotFound) {
			writeError(w, http.StatusNotFound, "customer not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to load customer")
		return
	}

	orders, err := h.orders.ListByUser(ctx, customerID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load customer orders")
		return
	}
	if orders == nil {
		orders = []order.Order{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"profile": p,
		"orders":  orders,
	})
}
