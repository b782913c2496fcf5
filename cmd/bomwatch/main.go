package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"

	"github.com/stormpetrel/bomwatch/internal/adapter/bom"
	httpadapter "github.com/stormpetrel/bomwatch/internal/adapter/http"
	kafkaadapter "github.com/stormpetrel/bomwatch/internal/adapter/kafka"
	redisadapter "github.com/stormpetrel/bomwatch/internal/adapter/redis"
	"github.com/stormpetrel/bomwatch/internal/config"
	"github.com/stormpetrel/bomwatch/internal/observability"
	"github.com/stormpetrel/bomwatch/internal/pipeline"
)

func main() {
	godotenv.Load() //nolint:errcheck // .env is optional

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	store, err := redisadapter.NewStore(cfg.RedisURL, cfg.WarningTTL)
	if err != nil {
		logger.Error("failed to create redis store", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := store.Ping(ctx); err != nil {
		logger.Error("redis unreachable", "error", err)
		os.Exit(1)
	}

	feedClient := bom.NewClient(cfg.BOMBaseURL, cfg.FeedTimeout, logger)

	// Notification sink is feature-flagged: Kafka when configured,
	// log-only otherwise.
	var notifier pipeline.Notifier
	var kafkaNotifier *kafkaadapter.Notifier
	if cfg.KafkaEnabled {
		kafkaNotifier = kafkaadapter.NewNotifier(cfg, logger)
		notifier = kafkaNotifier
		logger.Info("kafka notifications enabled", "topic", cfg.KafkaAlertTopic)
	} else {
		notifier = pipeline.NewLogNotifier(logger)
		logger.Info("kafka notifications disabled, logging only")
	}

	checker := pipeline.NewChecker(store, feedClient, notifier, logger, metrics)
	scheduler := pipeline.NewScheduler(checker, clockwork.NewRealClock(), cfg.CheckInterval, logger, metrics)

	srv := httpadapter.NewServer(cfg.HTTPAddr, checker, scheduler, store, logger)

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Start check scheduler.
	go func() {
		if err := scheduler.Run(ctx); err != nil {
			logger.Error("scheduler error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if kafkaNotifier != nil {
		if err := kafkaNotifier.Close(); err != nil {
			logger.Error("kafka notifier close error", "error", err)
		}
	}
	if err := store.Close(); err != nil {
		logger.Error("redis store close error", "error", err)
	}

	logger.Info("shutdown complete")
}
