package category

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

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
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
}

type Repository interface {
	ListCategorias(ctx context.Context) ([]Categoria, error)
	CreateCategoria(ctx context.Context, nombre, valor string) (*Categoria, error)
	DeleteCategoria(ctx context.Context, id int) error
	CategoriaExists(ctx context.Context, valor string) (bool, error)
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

func (r *PostgresRepository) ListCategorias(ctx context.Context) ([]Categoria, error) {
	rows, err := r.db.Query(ctx, "SELECT id, nombre, valor FROM categoria ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	categorias := []Categoria{}
	for rows.Next() {
		var c Categoria
		if err := rows.Scan(&c.ID, &c.Nombre, &c.Valor); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categorias = append(categorias, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading categories: %w", err)
	}
	return categorias, nil
}

// CreateCategoria inserts a category after checking name and slug uniqueness
// inside the same transaction.
func (r *PostgresRepository) CreateCategoria(ctx context.Context, nombre, valor string) (*Categoria, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var exists bool
	err = tx.QueryRow(ctx,
		"SELECT EXISTS (SELECT 1 FROM categoria WHERE nombre = $1 OR valor = $2)",
		nombre, valor).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("failed to check category uniqueness: %w", err)
	}
	if exists {
		return nil, ErrConflict
	}

	categoria := Categoria{Nombre: nombre, Valor: valor}
	err = tx.QueryRow(ctx,
		"INSERT INTO categoria (nombre, valor) VALUES ($1, $2) RETURNING id",
		nombre, valor).Scan(&categoria.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to insert category: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return &categoria, nil
}

// DeleteCategoria removes a category unless any product references its slug.
// The guard runs in the same transaction as the delete, in addition to the
// foreign key on producto.categoria.
func (r *PostgresRepository) DeleteCategoria(ctx context.Context, id int) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var valor string
	err = tx.QueryRow(ctx, "SELECT valor FROM categoria WHERE id = $1", id).Scan(&valor)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to load category: %w", err)
	}

	var referenced bool
	err = tx.QueryRow(ctx,
		"SELECT EXISTS (SELECT 1 FROM producto WHERE categoria = $1)",
		valor).Scan(&referenced)
	if err != nil {
		return fmt.Errorf("failed to check category references: %w", err)
	}
	if referenced {
		return ErrReferenced
	}

	if _, err := tx.Exec(ctx, "DELETE FROM categoria WHERE id = $1", id); err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (r *PostgresRepository) CategoriaExists(ctx context.Context, valor string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		"SELECT EXISTS (SELECT 1 FROM categoria WHERE valor = $1)",
		valor).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check category existence: %w", err)
	}
	return exists, nil
}
