package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/santos123-art/variety-vibe-store/internal/catalog"
)

// AdminCatalogHandler backs the product and category management screens.
// Requests are decoded into typed structs and validated before any
// mutation reaches the repository.
type AdminCatalogHandler struct {
	repo catalog.Repository
}

func NewAdminCatalogHandler(repo catalog.Repository) *AdminCatalogHandler {
	return &AdminCatalogHandler{repo: repo}
}

type productRequest struct {
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	Price         float64 `json:"price"`
	ImageURL      string  `json:"imageUrl"`
	CategoryID    *string `json:"categoryId"`
	StockQuantity int     `json:"stockQuantity"`
	Active        bool    `json:"active"`
}

func (r *productRequest) validate() error {
	if len(strings.TrimSpace(r.Name)) < 3 {
		return errors.New("name must be at least 3 characters")
	}
	if r.Price <= 0 {
		return errors.New("price must be positive")
	}
	if r.StockQuantity < 0 {
		return errors.New("stockQuantity cannot be negative")
	}
	if r.ImageURL != "" {
		if _, err := url.ParseRequestURI(r.ImageURL); err != nil {
			return errors.New("imageUrl is not a valid URL")
		}
	}
	if r.CategoryID != nil && *r.CategoryID == "" {
		r.CategoryID = nil
	}
	return nil
}

func (r *productRequest) toProduct(id string) *catalog.Product {
	return &catalog.Product{
		ID:            id,
		Name:          strings.TrimSpace(r.Name),
		Description:   strings.TrimSpace(r.Description),
		Price:         r.Price,
		ImageURL:      r.ImageURL,
		CategoryID:    r.CategoryID,
		StockQuantity: r.StockQuantity,
		Active:        r.Active,
	}
}

func (h *AdminCatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	products, err := h.repo.ListProducts(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load products")
		return
	}
	if products == nil {
		products = []catalog.Product{}
	}

	writeJSON(w, http.StatusOK, products)
}

func (h *AdminCatalogHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	p := req.toProduct("")
	if err := h.repo.CreateProduct(ctx, p); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create product")
		return
	}

	writeJSON(w, http.StatusCreated, p)
}

func (h *AdminCatalogHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productId")

	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	p := req.toProduct(productID)
	if err := h.repo.UpdateProduct(ctx, p); err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			writeError(w, http.StatusNotFound, "product not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to update product")
		return
	}

	writeJSON(w, http.StatusOK, p)
}

func (h *AdminCatalogHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productId")

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	if err := h.repo.DeleteProduct(ctx, productID); err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			writeError(w, http.StatusNotFound, "product not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to delete product")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type categoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (r *categoryRequest) validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return errors.New("name is required")
	}
	return nil
}

func (h *AdminCatalogHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	c := &catalog.Category{
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
	}
	if err := h.repo.CreateCategory(ctx, c); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create category")
		return
	}

	writeJSON(w, http.StatusCreated, c)
}

func (h *AdminCatalogHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	categoryID := chi.URLParam(r, "categoryId")

	var req categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	c := &catalog.Category{
		ID:          categoryID,
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
	}
	if err := h.repo.UpdateCategory(ctx, c); err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			writeError(w, http.StatusNotFound, "category not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to update category")
		return
	}

	writeJSON(w, http.StatusOK, c)
}

func (h *AdminCatalogHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	categoryID := chi.URLParam(r, "categoryId")

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	if err := h.repo.DeleteCategory(ctx, categoryID); err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			writeError(w, http.StatusNotFound, "category not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to delete category")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
