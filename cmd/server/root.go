package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"

	"foodlog/internal/config"
	"foodlog/internal/db"
	"foodlog/pkg/logging"
)

var dbURL string

var rootCmd = &cobra.Command{
	Use:          "foodlog",
	Short:        "foodlog is a web app for tracking daily food intake",
	Long:         "foodlog serves the food diary web app. Without a subcommand it runs the HTTP server.",
	RunE:         runServe,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbURL, "db", "", "Database URL (overrides DATABASE_URL)")
	rootCmd.AddCommand(serveCmd, migrateCmd, seedCmd)
}

// loadConfig reads the environment, applies flag overrides and sets up the
// lifecycle logger.
func loadConfig() config.Config {
	cfg := config.Load()
	if dbURL != "" {
		cfg.DatabaseURL = dbURL
	}
	logging.Setup(cfg.LogLevel)
	return cfg
}

// openMigrated opens the configured database and applies the schema.
func openMigrated(cfg config.Config) (*sqlx.DB, error) {
	conn, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := db.RunMigrations(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}
	return conn, nil
}

func seedFoods(ctx context.Context, conn *sqlx.DB, path string) error {
	foods, err := db.LoadFoodSeed(path)
	if err != nil {
		return fmt.Errorf("load food seed: %w", err)
	}
	n, err := db.SeedFoods(ctx, conn, foods)
	if err != nil {
		return fmt.Errorf("seed foods: %w", err)
	}
	source := path
	if source == "" {
		source = "embedded"
	}
	slog.Info("food reference seeded", "rows", n, "source", source)
	return nil
}
