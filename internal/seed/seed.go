// Package seed holds the idempotent bootstrap population: the default admin
// user and, when the menu is empty, a set of example categories and products.
package seed

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"
)

// DB is the subset of pgxpool.Pool the seeders use.
type DB interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
}

type demoCategoria struct {
	Nombre string
	Valor  string
}

type demoProducto struct {
	Nombre      string
	Descripcion string
	Precio      float64
	Categoria   string
	ImagenURL   string
}

var demoCategorias = []demoCategoria{
	{"Cafés", "cafes"},
	{"Postres", "postres"},
	{"Bebidas", "bebidas"},
	{"Sándwiches", "sandwiches"},
	{"Desayunos", "desayunos"},
}

var demoProductos = []demoProducto{
	{"Espresso", "Café espresso italiano tradicional", 2.50, "cafes", "https://images.unsplash.com/photo-1610889556528-9a770e32642f?w=500&auto=format"},
	{"Cappuccino", "Espresso con leche espumada y cacao en polvo", 3.50, "cafes", "https://images.unsplash.com/photo-1572442388796-11668a67e53d?w=500&auto=format"},
	{"Latte", "Café con leche cremosa", 3.00, "cafes", "https://images.unsplash.com/photo-1561047029-3000c68339ca?w=500&auto=format"},
	{"Mocaccino", "Café con chocolate y leche espumada", 4.00, "cafes", "https://images.unsplash.com/photo-1534687941688-651ccaafbff8?w=500&auto=format"},
	{"Tiramisú", "Postre italiano tradicional con café y mascarpone", 5.00, "postres", "https://images.unsplash.com/photo-1571877227200-a0d98ea607e9?w=500&auto=format"},
	{"Cannoli", "Dulce siciliano relleno de crema de ricotta", 4.00, "postres", "https://images.unsplash.com/photo-1551504734-5ee1c4a1479b?w=500&auto=format"},
	{"Panna Cotta", "Postre cremoso con salsa de frutos rojos", 4.50, "postres", "https://images.unsplash.com/photo-1488477181946-6428a0291777?w=500&auto=format"},
	{"Limonada Casera", "Limonada fresca con menta", 3.00, "bebidas", "https://images.unsplash.com/photo-1621263764928-df1444c5e859?w=500&auto=format"},
	{"Panini Caprese", "Sándwich con mozzarella, tomate y albahaca", 6.50, "sandwiches", "https://images.unsplash.com/photo-1528735602780-2552fd46c7af?w=500&auto=format"},
	{"Desayuno Italiano", "Cappuccino, croissant y jugo de naranja", 8.50, "desayunos", "https://images.unsplash.com/photo-1495214783159-3503fd1b572d?w=500&auto=format"},
}

// EnsureAdmin creates the administrator account if no user with that name
// exists. Safe to rerun.
func EnsureAdmin(ctx context.Context, db DB, username, password string, logger *slog.Logger) error {
	var exists bool
	err := db.QueryRow(ctx,
		"SELECT EXISTS (SELECT 1 FROM usuario WHERE username = $1)", username).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check admin user: %w", err)
	}
	if exists {
		logger.InfoContext(ctx, "Admin user already exists", slog.String("username", username))
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	_, err = db.Exec(ctx,
		"INSERT INTO usuario (username, password_hash) VALUES ($1, $2)",
		username, string(hash))
	if err != nil {
		return fmt.Errorf("failed to insert admin user: %w", err)
	}

	logger.InfoContext(ctx, "Admin user created", slog.String("username", username))
	return nil
}

// SeedDemoData populates example categories and products in one transaction.
// It is a no-op when any category already exists.
func SeedDemoData(ctx context.Context, db DB, logger *slog.Logger) error {
	var populated bool
	err := db.QueryRow(ctx, "SELECT EXISTS (SELECT 1 FROM categoria)").Scan(&populated)
	if err != nil {
		return fmt.Errorf("failed to check existing data: %w", err)
	}
	if populated {
		logger.InfoContext(ctx, "Demo data already present, skipping seed")
		return nil
	}

	tx, err := db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("failed to start seed transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, c := range demoCategorias {
		if _, err := tx.Exec(ctx,
			"INSERT INTO categoria (nombre, valor) VALUES ($1, $2)",
			c.Nombre, c.Valor); err != nil {
			return fmt.Errorf("failed to seed category %q: %w", c.Valor, err)
		}
	}

	for _, p := range demoProductos {
		if _, err := tx.Exec(ctx,
			`INSERT INTO producto (nombre, descripcion, precio, categoria, disponible, imagen_url, fecha_creacion, fecha_actualizacion)
             VALUES ($1, $2, $3, $4, TRUE, $5, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`,
			p.Nombre, p.Descripcion, p.Precio, p.Categoria, p.ImagenURL); err != nil {
			return fmt.Errorf("failed to seed product %q: %w", p.Nombre, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit seed transaction: %w", err)
	}

	logger.InfoContext(ctx, "Demo data created",
		slog.Int("categorias", len(demoCategorias)),
		slog.Int("productos", len(demoProductos)))
	return nil
}
