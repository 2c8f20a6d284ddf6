package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"debt-tracker/config"
	httpLayer "debt-tracker/http"
	"debt-tracker/repository"
	"debt-tracker/service"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

type snapshotStore interface {
	repository.SnapshotRepository
	io.Closer
}

type nopCloser struct {
	repository.SnapshotRepository
}

func (nopCloser) Close() error { return nil }

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log := newLogger(cfg)
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cache, closeCache, err := buildCache(ctx, cfg.Cache, log)
	if err != nil {
		return err
	}
	defer closeCache()

	store, err := buildSnapshotStore(ctx, cfg.Storage)
	if err != nil {
		return err
	}
	defer store.Close()

	rateLimiter := httpLayer.NewRateLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Window())
	defer rateLimiter.Stop()

	router := httpLayer.NewRouter(httpLayer.RouterDeps{
		Payoff: service.NewPayoffService(
			cache,
			service.NewExplanationService(cfg.Explanation, log),
			log,
		),
		Health:    service.NewHealthService(log),
		Snapshots: service.NewSnapshotService(store, log),
		Limiter:   rateLimiter,
		Logger:    log,
	})

	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  config.GetDuration(cfg.Server.ReadTimeout),
		WriteTimeout: config.GetDuration(cfg.Server.WriteTimeout),
		IdleTimeout:  config.GetDuration(cfg.Server.IdleTimeout),
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("API listening",
			zap.String("address", cfg.Server.Address),
			zap.String("cache", cfg.Cache.Driver),
			zap.String("storage", cfg.Storage.Driver),
			zap.Bool("explanations_enabled", cfg.Explanation.Enabled()),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("starting server: %w", err)
	case <-ctx.Done():
		log.Info("shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.GetDuration(cfg.Server.ShutdownTimeout))
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("error during server shutdown", zap.Error(err))
		return err
	}

	log.Info("server exited")
	return nil
}

func buildCache(
	ctx context.Context,
	cfg config.CacheConfig,
	log *zap.Logger,
) (repository.CacheRepository, func(), error) {

	switch cfg.Driver {
	case "redis":
		redisCache := repository.NewRedisCache(repository.RedisOptions{
			Addr:     cfg.RedisAddress,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			TTL:      cfg.TTL(),
		})
		if err := redisCache.Ping(ctx); err != nil {
			_ = redisCache.Close()
			return nil, nil, err
		}
		return redisCache, func() {
			if err := redisCache.Close(); err != nil {
				log.Warn("closing redis cache", zap.Error(err))
			}
		}, nil
	case "none":
		return repository.NoopCache{}, func() {}, nil
	default:
		return repository.NewMemoryCache(), func() {}, nil
	}
}

func buildSnapshotStore(ctx context.Context, cfg config.StorageConfig) (snapshotStore, error) {
	switch cfg.Driver {
	case "sqlite":
		return repository.OpenSQLite(ctx, cfg.DSN)
	case "postgres":
		return repository.OpenPostgres(ctx, cfg.DSN)
	case "mongo":
		return repository.OpenMongo(ctx, cfg.DSN, cfg.Database)
	default:
		return nopCloser{repository.NewSnapshotRepositoryMemory()}, nil
	}
}
