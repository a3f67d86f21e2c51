package main

import (
	"context"
	"net/http"
	"time"

	"bookrec/internal/config"
	"bookrec/internal/httpx"
	"bookrec/internal/recommend"
	"bookrec/internal/web"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// pinger is satisfied by *pgxpool.Pool.
type pinger interface {
	Ping(ctx context.Context) error
}

func newRouter(cfg config.Config, svc *recommend.Service, db pinger) (http.Handler, *httpx.RateLimitMiddleware, error) {
	pages, err := web.NewHandler(svc)
	if err != nil {
		return nil, nil, err
	}
	api := recommend.NewHTTPHandler(svc)

	router := http.NewServeMux()

	router.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		if db != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
			defer cancel()
			if err := db.Ping(ctx); err != nil {
				http.Error(w, "db not ready", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})
	router.Handle("GET /metrics", promhttp.Handler())

	router.HandleFunc("GET /v1/books", api.List)
	router.HandleFunc("GET /v1/books/top", api.Top)
	router.HandleFunc("GET /v1/books/select", api.Select)
	router.HandleFunc("GET /v1/runs", api.Runs)

	pages.Register(router)

	rateLimiter := httpx.NewRateLimitMiddleware(cfg.HTTP.RateLimitRPS, cfg.HTTP.RateLimitBurst)

	handler := httpx.Chain(router,
		httpx.RecoveryMiddleware,
		httpx.RequestIDMiddleware,
		httpx.AccessLogMiddleware,
		httpx.SecurityHeadersMiddleware(cfg.HTTP.EnableHSTS),
		httpx.CORSMiddleware(cfg.HTTP.AllowedOrigins),
		rateLimiter.Middleware,
		httpx.RequestSizeLimitMiddleware(cfg.HTTP.MaxBodyBytes),
		httpx.MetricsMiddleware,
	)
	return handler, rateLimiter, nil
}
