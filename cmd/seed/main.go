package main

import (
	"context"
	"fmt"
	"os"

	"tomato-harvest/internal/config"
	"tomato-harvest/internal/db"
	"tomato-harvest/internal/logx"
	"tomato-harvest/internal/migrate"
	productrepo "tomato-harvest/internal/repository/product"
	"tomato-harvest/internal/seed"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	flag "github.com/spf13/pflag"
)

func main() {
	var withMigrate bool
	flag.BoolVar(&withMigrate, "migrate", false, "apply migrations before seeding")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	logger := logx.Component(logx.New(cfg.Environment()), "seed")

	if err := run(context.Background(), cfg, logger, withMigrate); err != nil {
		logger.Error().Err(err).Msg("seed failed")
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, logger zerolog.Logger, withMigrate bool) error {
	pool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		return fmt.Errorf("connect db: %w", err)
	}
	defer pool.Close()

	if withMigrate {
		if err := migrate.Apply(ctx, pool); err != nil {
			return fmt.Errorf("apply migrations: %w", err)
		}
	}

	n, err := seed.Apply(ctx, productrepo.NewPostgres(pool, logger))
	if err != nil {
		return fmt.Errorf("seed apply: %w", err)
	}
	logger.Info().Int("products", n).Msg("seed applied")
	return nil
}
