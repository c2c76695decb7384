package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver for database/sql
	"github.com/pressly/goose/v3"

	"github.com/lingobeats/lingobeats-backend/internal/config"
)

// Migrate applies pending goose migrations from the configured directory.
// goose needs database/sql, so it gets its own short-lived connection.
func Migrate(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) error {
	db, err := sql.Open("pgx", cfg.DSN)
	if err != nil {
		return fmt.Errorf("open migration connection: %w", err)
	}
	defer db.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, os.DirFS(cfg.MigrationsDir))
	if err != nil {
		return fmt.Errorf("goose provider: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	if len(results) > 0 {
		logger.InfoContext(ctx, "migrations applied", slog.Int("count", len(results)))
	}
	return nil
}
