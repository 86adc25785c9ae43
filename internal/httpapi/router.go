package httpapi

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/santos123-art/variety-vibe-store/internal/cart"
	"github.com/santos123-art/variety-vibe-store/internal/catalog"
	"github.com/santos123-art/variety-vibe-store/internal/middleware"
	"github.com/santos123-art/variety-vibe-store/internal/order"
	"github.com/santos123-art/variety-vibe-store/internal/profile"
)

type Deps struct {
	Catalog          catalog.Repository
	Carts            *cart.Store
	Orders           order.Repository
	Checkout         *order.Service
	Profiles         profile.Repository
	Logger           *log.Logger
	CORSAllowOrigins []string
}

func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Logger)
	r.Use(middleware.CorrelationID)
	r.Use(middleware.CORS(deps.CORSAllowOrigins))

	catalogH := NewCatalogHandler(deps.Catalog)
	cartH := NewCartHandler(deps.Carts, deps.Catalog, deps.Checkout)
	orderH := NewOrderHandler(deps.Orders)
	profileH := NewProfileHandler(deps.Profiles, deps.Orders)
	adminH := NewAdminCatalogHandler(deps.Catalog)

	r.Get("/health", healthHandler)

	r.Route("/api", func(r chi.Router) {
		r.Get("/products", catalogH.ListProducts)
		r.Get("/products/{productId}", catalogH.GetProduct)
		r.Get("/categories", catalogH.ListCategories)

		r.Route("/me", func(r chi.Router) {
			r.Use(middleware.RequireUserID)

			r.Get("/cart", cartH.GetCart)
			r.Post("/cart/items", cartH.AddItem)
			r.Patch("/cart/items/{productId}", cartH.UpdateQuantity)
			r.Delete("/cart/items/{productId}", cartH.RemoveItem)
			r.Delete("/cart", cartH.ClearCart)
			r.Post("/checkout", cartH.Checkout)

			r.Get("/orders", orderH.ListMyOrders)
			r.Get("/orders/{orderId}", orderH.GetMyOrder)

			r.Get("/profile", profileH.GetMyProfile)
			r.Put("/profile", profileH.UpdateMyProfile)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.RequireUserID)
			r.Use(middleware.RequireAdmin(deps.Profiles, deps.Logger))

			r.Get("/products", adminH.ListProducts)
			r.Post("/products", adminH.CreateProduct)
			r.Put("/products/{productId}", adminH.UpdateProduct)
			r.Delete("/products/{productId}", adminH.DeleteProduct)

			r.Get("/categories", catalogH.ListCategories)
			r.Post("/categories", adminH.CreateCategory)
			r.Put("/categories/{categoryId}", adminH.UpdateCategory)
			r.Delete("/categories/{categoryId}", adminH.DeleteCategory)

			r.Get("/orders", orderH.ListAllOrders)
			r.Patch("/orders/{orderId}/status", orderH.UpdateStatus)

			r.Get("/customers", profileH.ListCustomers)
			r.Get("/customers/{customerId}", profileH.GetCustomer)
		})
	})

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": "variety-vibe-store",
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
