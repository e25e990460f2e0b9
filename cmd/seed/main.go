// Command seed populates the demo categories and products. It is a no-op
// when the categoria table already has rows.
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"

	database "github.com/arrivederci/menu-api/app/db"
	"github.com/arrivederci/menu-api/internal/seed"
)

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

	pool, err := database.Init(databaseURL, logger)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	if err := seed.SeedDemoData(ctx, pool, logger); err != nil {
		logger.Error("Failed to seed demo data", slog.Any("error", err))
		os.Exit(1)
	}
}
