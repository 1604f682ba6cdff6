package main

import (
	"context"
	"fmt"
	"os"

	"tomato-harvest/internal/config"
	"tomato-harvest/internal/db"
	"tomato-harvest/internal/logx"
	"tomato-harvest/internal/migrate"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	logger := logx.Component(logx.New(cfg.Environment()), "migrate")

	if err := run(context.Background(), cfg, logger); err != nil {
		logger.Error().Err(err).Msg("migrate failed")
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, logger zerolog.Logger) error {
	pool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		return fmt.Errorf("connect db: %w", err)
	}
	defer pool.Close()

	if err := migrate.Apply(ctx, pool); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	version, dirty, err := migrate.Version(ctx, pool)
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	logger.Info().Uint("version", version).Bool("dirty", dirty).Msg("migrations applied")
	return nil
}
