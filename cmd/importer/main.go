package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"tomato-harvest/internal/config"
	"tomato-harvest/internal/db"
	"tomato-harvest/internal/importer"
	"tomato-harvest/internal/logx"
	productrepo "tomato-harvest/internal/repository/product"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	flag "github.com/spf13/pflag"
)

func main() {
	var (
		filePath string
		dryRun   bool
	)
	flag.StringVarP(&filePath, "file", "f", "", "path to the catalog CSV (id,name,description,price,imageUrl)")
	flag.BoolVar(&dryRun, "dry-run", false, "parse and validate the file without writing")
	flag.Parse()

	if filePath == "" {
		flag.Usage()
		os.Exit(2)
	}

	_ = godotenv.Load()

	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	logger := logx.Component(logx.New(cfg.Environment()), "importer")

	if err := run(context.Background(), cfg, logger, filePath, dryRun); err != nil {
		logger.Error().Err(err).Msg("import failed")
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, logger zerolog.Logger, filePath string, dryRun bool) error {
	f, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	if dryRun {
		products, err := importer.Parse(f)
		if err != nil {
			return fmt.Errorf("parse: %w", err)
		}
		fmt.Printf("%d products parsed from %s\n", len(products), filePath)
		return nil
	}

	pool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		return fmt.Errorf("connect db: %w", err)
	}
	defer pool.Close()

	imp := importer.NewCSVImporter(f, productrepo.NewPostgres(pool, logger))

	start := time.Now()
	count, err := imp.Run(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("Imported %d products in %s\n", count, time.Since(start).Truncate(time.Millisecond))
	return nil
}
