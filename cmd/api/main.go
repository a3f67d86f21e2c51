package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bookrec/internal/config"
	"bookrec/internal/logger"
	"bookrec/internal/platform/googlebooks"
	"bookrec/internal/recommend"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
)

func main() {
	config.LoadEnvFiles()
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("config: %v", err)
	}
	logger.SetLevel(cfg.LogLevel)
	if cfg.LogJSON {
		logger.UseJSON()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		runs  recommend.RunRepository
		ready pinger
	)
	if cfg.DatabaseDSN != "" {
		dbPool := mustOpenDB(ctx, cfg.DatabaseDSN)
		defer dbPool.Close()
		runs = recommend.NewPostgresRepo(dbPool)
		ready = dbPool
	} else {
		logrus.Info("DB_DSN not set, fetch history disabled")
	}

	client := googlebooks.NewClient(googlebooks.Options{
		BaseURL:    cfg.Upstream.BaseURL,
		APIKey:     cfg.Upstream.APIKey,
		UserAgent:  cfg.Upstream.UserAgent,
		Timeout:    cfg.Upstream.Timeout,
		RPS:        cfg.Upstream.RPS,
		MaxRetries: cfg.Upstream.MaxRetries,
	})

	cache, err := recommend.NewResultCache(cfg.Cache.Size, cfg.Cache.TTL)
	if err != nil {
		logrus.Fatalf("cannot build result cache: %v", err)
	}
	defer cache.Close()

	svc := recommend.NewService(recommend.NewCatalogFetcher(client, 0), cache, runs)

	handler, rateLimiter, err := newRouter(cfg, svc, ready)
	if err != nil {
		logrus.Fatalf("cannot build router: %v", err)
	}
	defer rateLimiter.Stop()

	httpServer := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      handler,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: cfg.Upstream.Timeout*4 + 10*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logrus.WithError(err).Warn("graceful shutdown failed")
		}
	}()

	logrus.Infof("Starting server on %s", cfg.HTTP.Addr)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logrus.Fatalf("server error: %v", err)
	}
	logrus.Info("server stopped")
}

func mustOpenDB(ctx context.Context, dsn string) *pgxpool.Pool {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		logrus.Fatalf("cannot create db pool: %v", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		logrus.Fatalf("cannot ping database (%s): %v", config.RedactDSN(dsn), err)
	}
	logrus.Info("database connection OK")
	return pool
}
