package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"golang.org/x/crypto/bcrypt"
)

var _ Repository = (*PostgresRepository)(nil)

// DB is the subset of pgxpool.Pool the repository uses. Declared here so
// tests can substitute a pgxmock pool.
type DB interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

type Repository interface {
	Authenticate(ctx context.Context, username, password string) (*User, error)
	GetUserByID(ctx context.Context, id int) (*User, error)
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

// Authenticate verifies the credentials against the usuario table and, on
// success, refreshes ultimo_acceso. Unknown user and wrong password collapse
// into the same error so callers cannot enumerate accounts.
func (r *PostgresRepository) Authenticate(ctx context.Context, username, password string) (*User, error) {
	var user User
	err := r.db.QueryRow(ctx,
		"SELECT id, username, password_hash FROM usuario WHERE username = $1",
		username).Scan(&user.ID, &user.Username, &user.PasswordHash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUnauthenticated
		}
		return nil, fmt.Errorf("authenticate: query failed: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrUnauthenticated
	}

	now := time.Now()
	_, err = r.db.Exec(ctx,
		"UPDATE usuario SET ultimo_acceso = $1 WHERE id = $2",
		now, user.ID)
	if err != nil {
		return nil, fmt.Errorf("authenticate: last-login update failed: %w", err)
	}
	user.UltimoAcceso = &now

	return &user, nil
}

// GetUserByID resolves a session's user id back to a usuario row.
func (r *PostgresRepository) GetUserByID(ctx context.Context, id int) (*User, error) {
	var user User
	err := r.db.QueryRow(ctx,
		"SELECT id, username, ultimo_acceso FROM usuario WHERE id = $1",
		id).Scan(&user.ID, &user.Username, &user.UltimoAcceso)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get user by id: query failed: %w", err)
	}
	return &user, nil
}
