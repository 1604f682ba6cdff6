package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tomato-harvest/internal/catalog"
	"tomato-harvest/internal/checkout"
	"tomato-harvest/internal/config"
	"tomato-harvest/internal/db"
	"tomato-harvest/internal/httpserver"
	"tomato-harvest/internal/logx"
	"tomato-harvest/internal/metrics"
	productrepo "tomato-harvest/internal/repository/product"
	"tomato-harvest/internal/session"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

const sweepInterval = time.Minute

func main() {
	envErr := godotenv.Load()

	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	logger := logx.Component(logx.New(cfg.Environment()), "storefront")
	if envErr != nil && !errors.Is(envErr, os.ErrNotExist) {
		logger.Warn().Err(envErr).Msg("could not read .env")
	}

	if err := run(cfg, logger); err != nil {
		logger.Error().Err(err).Msg("storefront stopped")
		os.Exit(1)
	}
}

func run(cfg config.Config, logger zerolog.Logger) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var (
		checks []httpserver.ReadinessCheck
		pool   *pgxpool.Pool
		err    error
	)
	if cfg.CatalogSource == config.CatalogPostgres {
		pool, err = db.Connect(ctx, cfg.DBConnString)
		if err != nil {
			return fmt.Errorf("connect to db: %w", err)
		}
		defer pool.Close()
		checks = append(checks, httpserver.ReadinessCheck{Name: "postgres", Ping: pool.Ping})
	}

	cat, err := loadCatalog(ctx, cfg, pool, logger)
	if err != nil {
		return fmt.Errorf("load %s catalog: %w", cfg.CatalogSource, err)
	}
	logger.Info().Int("products", cat.Len()).Str("source", cfg.CatalogSource).Msg("catalog loaded")

	m := metrics.New()

	var backend session.Backend
	switch cfg.SessionBackend {
	case config.SessionRedis:
		client, err := session.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			return fmt.Errorf("connect to redis: %w", err)
		}
		defer client.Close()
		store := session.NewRedis(client, cfg.SessionTTL)
		backend = store
		checks = append(checks, httpserver.ReadinessCheck{Name: "redis", Ping: store.Ping})
	default:
		mem := session.NewMemory(cfg.SessionTTL)
		go mem.Run(ctx, sweepInterval, func(dropped int) {
			m.SessionsExpired(dropped)
			m.SetActiveSessions(mem.Len())
		})
		backend = mem
	}

	sessions := session.NewManager(backend, cat, logx.Component(logger, "session"))
	checkoutSvc := checkout.NewService(
		checkout.NewPlaceholder(logx.Component(logger, "checkout")),
		m,
		logx.Component(logger, "checkout"),
	)

	srv, err := httpserver.New(cfg.HTTPAddr, logx.Component(logger, "http"), httpserver.Deps{
		Catalog:      cat,
		Sessions:     sessions,
		Checkout:     checkoutSvc,
		Metrics:      m,
		CookieName:   cfg.SessionCookie,
		SecureCookie: cfg.SessionSecureCookie,
		CORSOrigins:  cfg.CORSAllowedOrigins,
		Checks:       checks,
	})
	if err != nil {
		return fmt.Errorf("init server: %w", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	var runErr error
	select {
	case sig := <-stopCh:
		logger.Info().Str("signal", sig.String()).Msg("shutting down")
	case runErr = <-serverErr:
		logger.Error().Err(runErr).Msg("server error")
	}
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Join(runErr, fmt.Errorf("graceful shutdown: %w", err))
	}
	logger.Info().Msg("server stopped")
	return runErr
}

func loadCatalog(ctx context.Context, cfg config.Config, pool *pgxpool.Pool, logger zerolog.Logger) (*catalog.Catalog, error) {
	switch cfg.CatalogSource {
	case config.CatalogCSV:
		f, err := os.Open(cfg.CatalogFile)
		if err != nil {
			return nil, fmt.Errorf("open catalog file: %w", err)
		}
		defer f.Close()
		return catalog.FromCSV(f)
	case config.CatalogPostgres:
		return catalog.FromRepository(ctx, productrepo.NewPostgres(pool, logx.Component(logger, "products")))
	default:
		return catalog.Default(), nil
	}
}
