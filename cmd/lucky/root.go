package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/pkordes/lucky/internal/config"
	"github.com/pkordes/lucky/internal/database"
)

var rootCmd = &cobra.Command{
	Use:   "lucky",
	Short: "Lucky - pick a random restaurant",
	Long: `Lucky serves GET /lucky, which answers with the name of one restaurant
drawn uniformly at random from the store named by DATABASE_URL.

Configuration is read from the environment; see "lucky serve --help".`,
	SilenceUsage: true,
}

// newLogger builds the JSON slog logger used by every command.
// Unknown levels fall back to info.
func newLogger(w io.Writer, level string) *slog.Logger {
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(level)); err != nil {
		logLevel = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: logLevel,
	}))
}

// openStore opens the configured store and, when AUTO_MIGRATE is set,
// applies pending migrations before handing it back.
func openStore(ctx context.Context, cfg config.Config, log *slog.Logger) (*database.DB, error) {
	db, err := database.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	log.Info("database connection established", "driver", db.Driver)

	if cfg.AutoMigrate {
		results, err := db.Migrate(ctx)
		if err != nil {
			db.Close()
			return nil, err
		}
		log.Info("migrations applied", "count", len(results))
	}
	return db, nil
}

// loadConfig wraps config.Load so every command reports config errors the same way.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, fmt.Errorf("configuration error: %w", err)
	}
	return cfg, nil
}
