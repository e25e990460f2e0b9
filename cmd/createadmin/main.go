// Command createadmin creates an administrator account. It is a no-op when
// the user already exists. Username and password come from flags.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"

	database "github.com/arrivederci/menu-api/app/db"
	"github.com/arrivederci/menu-api/internal/seed"
)

var (
	username = flag.String("username", "admin", "admin username")
	password = flag.String("password", "admin123", "admin password")
)

func main() {
	flag.Parse()
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

	if err := seed.EnsureAdmin(ctx, pool, *username, *password, logger); err != nil {
		logger.Error("Failed to create admin user", slog.Any("error", err))
		os.Exit(1)
	}
}
