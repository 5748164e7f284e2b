package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"blog_backend/internal/app/di"
	"blog_backend/internal/app/router"
	"blog_backend/internal/config"
	"blog_backend/internal/platform/db"
	"blog_backend/internal/platform/logging"
	"blog_backend/internal/platform/observability"
	infraredis "blog_backend/internal/platform/redis"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// 設定読み込み（.env → 環境変数）
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := logging.Setup(os.Stdout, cfg.LogLevel)

	if err := observability.InitSentry(cfg.SentryDSN, cfg.Env); err != nil {
		logger.Warn("sentry disabled", "error", err)
	}
	defer observability.FlushSentry()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// db
	gdb, err := db.OpenDB(cfg)
	if err != nil {
		return err
	}
	if sqlDB, err := gdb.DB(); err == nil {
		defer func() {
			if err := sqlDB.Close(); err != nil {
				logger.Error("failed to close database", "error", err)
			}
		}()
	}

	// Redis（レート制限に必須）
	rdb, err := infraredis.NewRedisClient(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			logger.Error("failed to close Redis client", "error", err)
		}
	}()

	app, err := di.NewApp(cfg, gdb, rdb)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router.NewRouter(cfg, app, logger),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", cfg.HTTPAddr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
