package container

import (
	"log/slog"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/arrivederci/menu-api/config"
	"github.com/arrivederci/menu-api/internal/api/category"
	"github.com/arrivederci/menu-api/internal/api/product"
	"github.com/arrivederci/menu-api/internal/api/session"
)

// Container holds all application dependencies.
type Container struct {
	Config *config.Config
	Logger *slog.Logger
	Pool   *pgxpool.Pool

	SessionHandler  *session.Handler
	CategoryHandler *category.Handler
	ProductHandler  *product.Handler

	RequireAuth func(http.Handler) http.Handler
}

// NewContainer wires repositories, services and handlers onto the shared
// connection pool.
func NewContainer(cfg *config.Config, pool *pgxpool.Pool, logger *slog.Logger) *Container {
	cookies := session.CookieConfig{Secure: cfg.IsProduction()}

	sessionRepo := session.NewPostgresRepository(pool, logger)
	sessionService := session.NewService(sessionRepo, cfg.Session.SecretKey, cfg.Session.Lifetime)
	sessionHandler := session.NewHandler(sessionService, cookies, logger)

	categoryRepo := category.NewPostgresRepository(pool, logger)
	categoryService := category.NewService(categoryRepo)
	categoryHandler := category.NewHandler(categoryService, logger)

	productRepo := product.NewPostgresRepository(pool, logger)
	productService := product.NewService(productRepo, categoryService)
	productHandler := product.NewHandler(productService, logger)

	return &Container{
		Config:          cfg,
		Logger:          logger,
		Pool:            pool,
		SessionHandler:  sessionHandler,
		CategoryHandler: categoryHandler,
		ProductHandler:  productHandler,
		RequireAuth:     session.RequireAuth(sessionService, cookies, logger),
	}
}
