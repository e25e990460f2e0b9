// Command schemaupdate adds the fecha_creacion and fecha_actualizacion
// columns to the producto table when they are missing. It is purely additive
// and safe to rerun; existing deployments created before the timestamp
// columns use it instead of a full re-migration.
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
)

var timestampColumns = []string{"fecha_creacion", "fecha_actualizacion"}

func main() {
	_ = godotenv.Load()

	logger := slog.New(tint.NewHandler(os.Stdout, &tint.Options{TimeFormat: time.Kitchen}))

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		logger.Error("DATABASE_URL is not set")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	conn, err := pgx.Connect(ctx, databaseURL)
	if err != nil {
		logger.Error("Failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer conn.Close(ctx)

	rows, err := conn.Query(ctx,
		`SELECT column_name FROM information_schema.columns
         WHERE table_name = 'producto' AND column_name = ANY($1)`,
		timestampColumns)
	if err != nil {
		logger.Error("Failed to inspect producto columns", slog.Any("error", err))
		os.Exit(1)
	}
	existing := map[string]bool{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			rows.Close()
			logger.Error("Failed to scan column name", slog.Any("error", err))
			os.Exit(1)
		}
		existing[name] = true
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		logger.Error("Failed reading columns", slog.Any("error", err))
		os.Exit(1)
	}

	added := 0
	for _, column := range timestampColumns {
		if existing[column] {
			logger.Info("Column already present", slog.String("column", column))
			continue
		}
		_, err := conn.Exec(ctx,
			"ALTER TABLE producto ADD COLUMN "+column+" TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP")
		if err != nil {
			logger.Error("Failed to add column", slog.String("column", column), slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("Column added", slog.String("column", column))
		added++
	}

	if added == 0 {
		logger.Info("Schema already up to date")
	} else {
		logger.Info("Schema updated", slog.Int("columns_added", added))
	}
}
