package product

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var _ Repository = (*PostgresRepository)(nil)

// DB is the subset of pgxpool.Pool the repository uses. Declared here so
// tests can substitute a pgxmock pool.
type DB interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

type Repository interface {
	ListProductos(ctx context.Context) ([]Producto, error)
	GetProducto(ctx context.Context, id int) (*Producto, error)
	CreateProducto(ctx context.Context, p *Producto) (*Producto, error)
	UpdateProducto(ctx context.Context, p *Producto) (*Producto, error)
	DeleteProducto(ctx context.Context, id int) error
}

type PostgresRepository struct {
	logger *slog.Logger
	db     DB
}

func NewPostgresRepository(db DB, logger *slog.Logger) *PostgresRepository {
	return &PostgresRepository{
		logger: logger,
		db:     db,
	}
}

const productoColumns = "id, nombre, descripcion, precio, categoria, disponible, imagen_url, fecha_creacion, fecha_actualizacion"

func scanProducto(row pgx.Row, p *Producto) error {
	return row.Scan(&p.ID, &p.Nombre, &p.Descripcion, &p.Precio, &p.Categoria,
		&p.Disponible, &p.ImagenURL, &p.FechaCreacion, &p.FechaActualizacion)
}

func (r *PostgresRepository) ListProductos(ctx context.Context) ([]Producto, error) {
	rows, err := r.db.Query(ctx, "SELECT "+productoColumns+" FROM producto ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	productos := []Producto{}
	for rows.Next() {
		var p Producto
		if err := rows.Scan(&p.ID, &p.Nombre, &p.Descripcion, &p.Precio, &p.Categoria,
			&p.Disponible, &p.ImagenURL, &p.FechaCreacion, &p.FechaActualizacion); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		productos = append(productos, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading products: %w", err)
	}
	return productos, nil
}

func (r *PostgresRepository) GetProducto(ctx context.Context, id int) (*Producto, error) {
	var p Producto
	err := scanProducto(r.db.QueryRow(ctx,
		"SELECT "+productoColumns+" FROM producto WHERE id = $1", id), &p)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load product: %w", err)
	}
	return &p, nil
}

func (r *PostgresRepository) CreateProducto(ctx context.Context, p *Producto) (*Producto, error) {
	now := time.Now()
	created := *p
	created.FechaCreacion = now
	created.FechaActualizacion = now

	err := r.db.QueryRow(ctx,
		`INSERT INTO producto (nombre, descripcion, precio, categoria, disponible, imagen_url, fecha_creacion, fecha_actualizacion)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`,
		p.Nombre, p.Descripcion, p.Precio, p.Categoria, p.Disponible, p.ImagenURL, now, now,
	).Scan(&created.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to insert product: %w", err)
	}
	return &created, nil
}

// UpdateProducto writes the full merged record back and refreshes
// fecha_actualizacion.
func (r *PostgresRepository) UpdateProducto(ctx context.Context, p *Producto) (*Producto, error) {
	now := time.Now()
	updated := *p
	updated.FechaActualizacion = now

	tag, err := r.db.Exec(ctx,
		`UPDATE producto
         SET nombre = $1, descripcion = $2, precio = $3, categoria = $4, disponible = $5, imagen_url = $6, fecha_actualizacion = $7
         WHERE id = $8`,
		p.Nombre, p.Descripcion, p.Precio, p.Categoria, p.Disponible, p.ImagenURL, now, p.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrNotFound
	}
	return &updated, nil
}

func (r *PostgresRepository) DeleteProducto(ctx context.Context, id int) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM producto WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
