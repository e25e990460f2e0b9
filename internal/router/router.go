package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/arrivederci/menu-api/internal/api/category"
	"github.com/arrivederci/menu-api/internal/api/product"
	"github.com/arrivederci/menu-api/internal/api/session"
)

// Config contains dependencies needed for the router setup.
type Config struct {
	SessionHandler  *session.Handler
	CategoryHandler *category.Handler
	ProductHandler  *product.Handler

	// RequireAuth guards the mutating routes; attached per route group
	// rather than per handler so the read endpoints stay public.
	RequireAuth func(http.Handler) http.Handler

	// AllowedOrigins is the fixed frontend allow-list, possibly extended by
	// CORS_ORIGIN.
	AllowedOrigins []string

	// MetricsHandler serves the Prometheus exposition format.
	MetricsHandler http.Handler
}

// SetupRouter wires routes, CORS and the auth gate. Server-wide middleware
// (request id, logger, recoverer, security headers) is applied in main.go
// before mounting this router.
func SetupRouter(cfg *Config) chi.Router {
	r := chi.NewRouter()

	// Preflight OPTIONS requests short-circuit here with 204.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-CSRF-Token"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("pong"))
	})

	if cfg.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", cfg.MetricsHandler)
	}

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/login", cfg.SessionHandler.Login)
		r.Post("/auth/logout", cfg.SessionHandler.Logout)
		r.Get("/auth/check", cfg.SessionHandler.Check)

		// Public catalog reads for the storefront.
		r.Get("/categorias", cfg.CategoryHandler.ListCategorias)
		r.Get("/productos", cfg.ProductHandler.ListProductos)

		// Mutations require an authenticated admin session.
		r.Group(func(r chi.Router) {
			r.Use(cfg.RequireAuth)

			r.Post("/categorias", cfg.CategoryHandler.CreateCategoria)
			r.Delete("/categorias/{id}", cfg.CategoryHandler.DeleteCategoria)

			r.Post("/productos", cfg.ProductHandler.CreateProducto)
			r.Put("/productos/{id}", cfg.ProductHandler.UpdateProducto)
			r.Delete("/productos/{id}", cfg.ProductHandler.DeleteProducto)
		})
	})

	return r
}
