package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Harshitk-cp/voxbridge/internal/api"
	"github.com/Harshitk-cp/voxbridge/internal/buildconfig"
	"github.com/Harshitk-cp/voxbridge/internal/config"
	"github.com/Harshitk-cp/voxbridge/internal/logging"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

func main() {
	_ = config.Load()

	logger, err := logging.New(config.LogLevel())
	if err != nil {
		logger, _ = zap.NewProduction()
		logger.Warn("falling back to info logging", zap.Error(err))
	}
	defer func() { _ = logger.Sync() }()

	providers, err := config.LoadProviders()
	if err != nil {
		logger.Fatal("failed to load provider config", zap.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var pool *pgxpool.Pool
	if dbURL := config.DatabaseURL(); dbURL != "" {
		pool, err = pgxpool.New(ctx, dbURL)
		if err != nil {
			logger.Fatal("failed to connect to database", zap.Error(err))
		}
		defer pool.Close()

		if err := pool.Ping(ctx); err != nil {
			logger.Fatal("failed to ping database", zap.Error(err))
		}
		logger.Info("connected to database, llm resource ledger enabled")
	} else {
		logger.Info("DATABASE_URL not set, llm resources will only be logged")
	}

	app, err := api.NewApp(api.Deps{
		Providers: providers,
		DB:        pool,
		Logger:    logger,
	})
	if err != nil {
		logger.Fatal("failed to build app", zap.Error(err))
	}

	app.StartCleanup(ctx)

	addr := config.ServerAddr()
	srv := &http.Server{
		Addr:    addr,
		Handler: app.Router,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info("server starting", zap.String("addr", addr), zap.String("version", buildconfig.Version()))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("shutting down server")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server stopped")
}
