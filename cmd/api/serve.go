package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	spycatagency "github.com/4oBuko/spycats/internal"
	"github.com/4oBuko/spycats/internal/config"
	"github.com/4oBuko/spycats/internal/database"
	"github.com/4oBuko/spycats/internal/repositories"
	"github.com/4oBuko/spycats/internal/services"
	"github.com/4oBuko/spycats/pkg/catapi"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Open(cfg.Database, logger.Named("gorm"), cfg.Debug)
	if err != nil {
		return err
	}
	defer database.Close(db)
	if err := database.Migrate(db); err != nil {
		return err
	}

	cache, closeCache, err := newBreedCache(cfg)
	if err != nil {
		return err
	}
	defer closeCache()

	opts := []catapi.Option{
		catapi.WithTimeout(cfg.Breeds.Timeout),
		catapi.WithLogger(logger.Named("catapi")),
	}
	if cache != nil {
		opts = append(opts, catapi.WithCache(cache))
	}
	catAPI := catapi.NewCatAPIClient(cfg.Breeds.URL, cfg.Breeds.MaxRetries, cfg.Breeds.RetryDelay, opts...)

	catRepo := repositories.NewGormCatRepository(db)
	catService := services.NewDefaultCatService(catRepo, catAPI)
	missionRepo := repositories.NewGormMissionRepository(db)
	targetRepo := repositories.NewGormTargetRepository(db)
	missionService := services.NewDefaultMissionService(missionRepo, targetRepo, catRepo)
	server := spycatagency.NewServer(catService, missionService, spycatagency.Options{
		Addr:          cfg.HTTP.Addr,
		CorsOrigins:   cfg.HTTP.CorsOrigins,
		EnableMetrics: cfg.Metrics.Enabled,
		Logger:        logger.Named("http"),
		HealthCheck: func(ctx context.Context) error {
			return database.Ping(ctx, db)
		},
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.Run()
	}()

	select {
	case err := <-serveErr:
		return fmt.Errorf("server failed to start: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	logger.Info("server exited")
	return nil
}

// newBreedCache picks the breed list cache: none when cache_ttl is zero,
// Redis when a URL is configured, memory otherwise.
func newBreedCache(cfg config.Config) (catapi.BreedCache, func() error, error) {
	noop := func() error { return nil }
	if cfg.Breeds.CacheTTL <= 0 {
		return nil, noop, nil
	}
	if cfg.Redis.URL == "" {
		return catapi.NewMemoryCache(cfg.Breeds.CacheTTL), noop, nil
	}

	redisOptions, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid redis url: %w", err)
	}
	client := redis.NewClient(redisOptions)
	return catapi.NewRedisCache(client, cfg.Breeds.CacheTTL), client.Close, nil
}
