// Command diagnose performs read-only health checks against the menu
// backend's environment: required variables, database reachability and row
// counts, system resources, and (in development mode) live probes of the
// public read endpoints. It exits non-zero when any check fails and never
// writes to the database.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/mem"
	"golang.org/x/sync/errgroup"
)

const (
	cpuWarnPercent  = 80.0
	memWarnPercent  = 85.0
	diskWarnPercent = 90.0
)

var requiredVars = []string{"DATABASE_URL", "SECRET_KEY", "APP_ENV"}

func main() {
	_ = godotenv.Load()

	logger := slog.New(tint.NewHandler(os.Stdout, &tint.Options{TimeFormat: time.Kitchen}))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	logger.Info("Starting menu backend diagnostics")

	results := map[string]bool{
		"env_variables":    checkEnvVariables(logger),
		"database":         checkDatabase(ctx, logger),
		"system_resources": checkSystemResources(logger),
	}

	if os.Getenv("APP_ENV") == "development" {
		results["api_endpoints"] = checkAPIEndpoints(ctx, logger)
	}

	allPassed := true
	logger.Info("=== Diagnostic summary ===")
	for check, passed := range results {
		status := "PASS"
		if !passed {
			status = "FAIL"
			allPassed = false
		}
		logger.Info("Check result", slog.String("check", check), slog.String("status", status))
	}

	if !allPassed {
		logger.Warn("Some checks failed, review the output above")
		os.Exit(1)
	}
	logger.Info("All checks passed")
}

func checkEnvVariables(logger *slog.Logger) bool {
	missing := 0
	for _, name := range requiredVars {
		value := os.Getenv(name)
		if value == "" {
			logger.Error("Missing environment variable", slog.String("var", name))
			missing++
			continue
		}
		logger.Info("Environment variable present", slog.String("var", name), slog.String("value", mask(name, value)))
	}
	return missing == 0
}

// mask hides secrets, keeping only the edges for recognition. APP_ENV is not
// sensitive and is logged as-is.
func mask(name, value string) string {
	if name == "APP_ENV" {
		return value
	}
	if len(value) > 10 {
		return value[:5] + "..." + value[len(value)-5:]
	}
	return "***"
}

func checkDatabase(ctx context.Context, logger *slog.Logger) bool {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		logger.Error("Cannot check database: DATABASE_URL is not set")
		return false
	}

	start := time.Now()
	conn, err := pgx.Connect(ctx, databaseURL)
	if err != nil {
		logger.Error("Database connection failed", slog.Any("error", err))
		return false
	}
	defer conn.Close(ctx)

	var one int
	if err := conn.QueryRow(ctx, "SELECT 1").Scan(&one); err != nil {
		logger.Error("Database round-trip failed", slog.Any("error", err))
		return false
	}
	logger.Info("Database round-trip successful", slog.Duration("latency", time.Since(start)))

	rows, err := conn.Query(ctx,
		"SELECT table_name FROM information_schema.tables WHERE table_schema = 'public'")
	if err != nil {
		logger.Error("Failed to list tables", slog.Any("error", err))
		return false
	}
	tables := map[string]bool{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			rows.Close()
			logger.Error("Failed to scan table name", slog.Any("error", err))
			return false
		}
		tables[name] = true
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		logger.Error("Failed reading tables", slog.Any("error", err))
		return false
	}

	for _, table := range []string{"usuario", "categoria", "producto"} {
		if !tables[table] {
			logger.Warn("Expected table missing", slog.String("table", table))
			continue
		}
		var count int
		if err := conn.QueryRow(ctx, "SELECT COUNT(*) FROM "+table).Scan(&count); err != nil {
			logger.Error("Failed to count rows", slog.String("table", table), slog.Any("error", err))
			return false
		}
		logger.Info("Table row count", slog.String("table", table), slog.Int("rows", count))
	}

	return true
}

func checkSystemResources(logger *slog.Logger) bool {
	warnings := 0

	if percents, err := cpu.Percent(time.Second, false); err == nil && len(percents) > 0 {
		logger.Info("CPU usage", slog.Float64("percent", percents[0]))
		if percents[0] > cpuWarnPercent {
			logger.Warn("High CPU usage", slog.Float64("percent", percents[0]))
			warnings++
		}
	} else if err != nil {
		logger.Warn("Could not read CPU usage", slog.Any("error", err))
	}

	if vm, err := mem.VirtualMemory(); err == nil {
		logger.Info("Memory usage",
			slog.Float64("percent", vm.UsedPercent),
			slog.Uint64("available_mb", vm.Available/(1024*1024)))
		if vm.UsedPercent > memWarnPercent {
			logger.Warn("High memory usage", slog.Float64("percent", vm.UsedPercent))
			warnings++
		}
	} else {
		logger.Warn("Could not read memory usage", slog.Any("error", err))
	}

	if du, err := disk.Usage("/"); err == nil {
		logger.Info("Disk usage",
			slog.Float64("percent", du.UsedPercent),
			slog.Uint64("free_gb", du.Free/(1024*1024*1024)))
		if du.UsedPercent > diskWarnPercent {
			logger.Warn("Low disk space", slog.Float64("percent", du.UsedPercent))
			warnings++
		}
	} else {
		logger.Warn("Could not read disk usage", slog.Any("error", err))
	}

	return warnings == 0
}

// checkAPIEndpoints probes the public read endpoints of a locally running
// server. The probes run concurrently and are read-only.
func checkAPIEndpoints(ctx context.Context, logger *slog.Logger) bool {
	baseURL := os.Getenv("API_BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080/api"
	}

	client := &http.Client{Timeout: 10 * time.Second}
	g, ctx := errgroup.WithContext(ctx)

	for _, endpoint := range []string{"/productos", "/categorias"} {
		g.Go(func() error {
			url := baseURL + endpoint
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
			if err != nil {
				return err
			}
			resp, err := client.Do(req)
			if err != nil {
				return fmt.Errorf("GET %s: %w", url, err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusOK {
				return fmt.Errorf("GET %s: unexpected status %d", url, resp.StatusCode)
			}

			var items []json.RawMessage
			if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
				return fmt.Errorf("GET %s: invalid JSON body: %w", url, err)
			}
			logger.Info("Endpoint probe successful", slog.String("endpoint", endpoint), slog.Int("items", len(items)))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		logger.Error("Endpoint probe failed", slog.Any("error", err))
		return false
	}
	return true
}
