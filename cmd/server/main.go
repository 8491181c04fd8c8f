package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/republica/internal/auth"
	"github.com/mmynk/republica/internal/config"
	"github.com/mmynk/republica/internal/finance"
	"github.com/mmynk/republica/internal/middleware"
	"github.com/mmynk/republica/internal/service"
	"github.com/mmynk/republica/internal/storage"
	"github.com/mmynk/republica/internal/storage/sqlite"
	"github.com/mmynk/republica/pkg/api/apiconnect"
	"github.com/mmynk/republica/pkg/logging"
)

func main() {
	cfg := config.Load()
	logging.Setup(cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		slog.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	// Initialize SQLite storage
	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DBPath)

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenDuration)
	ledger := finance.New(store, finance.WithDueDay(cfg.BillingDueDay))

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	mux := setupRouter(routerDeps{
		ledger:        ledger,
		authenticator: auth.NewPasswordAuthenticator(store),
		jwtManager:    jwtManager,
		provider:      auth.NewIdentityProvider(jwtManager, store),
		members:       store,
		registry:      reg,
	})

	// Add logging and CORS middleware
	loggedHandler := loggingMiddleware(corsMiddleware(mux))

	// Wrap with h2c for HTTP/2 without TLS (required for Connect)
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           h2c.NewHandler(loggedHandler, &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("Connect server starting", "address", server.Addr, "url", fmt.Sprintf("http://localhost%s", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("Shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Graceful shutdown failed", "error", err)
	}
	slog.Info("Server stopped")
}

type routerDeps struct {
	ledger        *finance.Service
	authenticator auth.Authenticator
	jwtManager    *auth.JWTManager
	provider      *auth.IdentityProvider
	members       storage.Directory
	registry      *prometheus.Registry
}

// setupRouter registers the Connect services plus the health and metrics endpoints.
func setupRouter(deps routerDeps) *http.ServeMux {
	metrics := middleware.NewMetrics(deps.registry)
	logger := slog.Default()

	mux := http.NewServeMux()

	// Register Connect services. Metrics see every call, auth runs before logging
	// so log lines carry the member.
	financePath, financeHandler := apiconnect.NewFinanceServiceHandler(
		service.NewFinanceService(deps.ledger),
		connect.WithInterceptors(
			metrics.Interceptor(),
			middleware.RequireAuth(deps.provider),
			middleware.LoggingInterceptor(slog.Default()),
		),
	)
	mux.Handle(financePath, financeHandler)

	authPath, authHandler := apiconnect.NewAuthServiceHandler(
		service.NewAuthService(deps.authenticator, deps.jwtManager, deps.members, logger),
		connect.WithInterceptors(
			metrics.Interceptor(),
			middleware.OptionalAuth(deps.provider),
			middleware.LoggingInterceptor(slog.Default()),
		),
	)
	mux.Handle(authPath, authHandler)

	mux.Handle("GET /metrics", promhttp.HandlerFor(deps.registry, promhttp.HandlerOpts{Registry: deps.registry}))
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "ok")
	})

	return mux
}

// loggingMiddleware logs all incoming requests
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		slog.Debug("Request received",
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"user_agent", r.UserAgent(),
		)

		next.ServeHTTP(w, r)

		slog.Debug("Request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

// corsMiddleware adds CORS headers for browser access
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type, Connect-Protocol-Version, Connect-Timeout-Ms")
		w.Header().Set("Access-Control-Expose-Headers", "Connect-Protocol-Version, Connect-Timeout-Ms")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
