package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/santos123-art/variety-vibe-store/internal/catalog"
)

// CatalogHandler serves the public storefront reads. Inactive products
// are invisible here; the admin surface has its own handler.
type CatalogHandler struct {
	repo catalog.Repository
}

func NewCatalogHandler(repo catalog.Repository) *CatalogHandler {
	return &CatalogHandler{repo: repo}
}

func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	products, err := h.repo.ListActiveProducts(ctx, r.URL.Query().Get("category"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load products")
		return
	}
	if products == nil {
		products = []catalog.Product{}
	}

	writeJSON(w, http.StatusOK, products)
}

func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productId")

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	p, err := h.repo.GetProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			writeError(w, http.StatusNotFound, "product not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to load product")
		return
	}
	if !p.Active {
		writeError(w, http.StatusNotFound, "product not found")
		return
	}

	writeJSON(w, http.StatusOK, p)
}

func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	categories, err := h.repo.ListCategories(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load categories")
		return
	}
	if categories == nil {
		categories = []catalog.Category{}
	}

	writeJSON(w, http.StatusOK, categories)
}
