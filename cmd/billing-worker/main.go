package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mmynk/republica/internal/config"
	"github.com/mmynk/republica/internal/finance"
	"github.com/mmynk/republica/internal/queue"
	"github.com/mmynk/republica/internal/storage/sqlite"
	"github.com/mmynk/republica/pkg/logging"
)

// reconnectDelay is how long the worker waits before consuming again after the
// broker channel closes.
const reconnectDelay = 5 * time.Second

func main() {
	cfg := config.Load()
	logging.Setup(cfg.LogLevel)

	slog.Info("Starting billing-worker")

	if err := cfg.RequireAMQP(); err != nil {
		slog.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err, "path", cfg.DBPath)
		os.Exit(1)
	}
	defer store.Close()

	ledger := finance.New(store, finance.WithDueDay(cfg.BillingDueDay))
	handler := newBillingHandler(ledger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	for ctx.Err() == nil {
		err := consume(ctx, cfg, handler)
		if ctx.Err() != nil {
			break
		}
		slog.Warn("Consumer stopped, reconnecting", "error", err, "delay", reconnectDelay)

		select {
		case <-ctx.Done():
		case <-time.After(reconnectDelay):
		}
	}

	slog.Info("Billing-worker shutdown complete")
}

func consume(ctx context.Context, cfg *config.Config, handler queue.Handler) error {
	client, err := queue.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		return err
	}
	defer client.Close()

	return client.ConsumeBillingRequests(ctx, handler)
}
