package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	RedisURL string

	KafkaBrokers    []string
	KafkaAlertTopic string
	KafkaEnabled    bool

	HTTPAddr  string
	LogLevel  string
	LogFormat string

	CheckInterval   time.Duration
	FeedTimeout     time.Duration
	ShutdownTimeout time.Duration

	// BOMBaseURL overrides the feed host, for tests and mock servers.
	BOMBaseURL string

	// WarningTTL bounds how long per-warning detail keys live in the
	// results store after their notification fired.
	WarningTTL time.Duration
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	checkInterval, err := parseDuration("CHECK_INTERVAL", "5m")
	if err != nil {
		return nil, err
	}
	feedTimeout, err := parseDuration("FEED_TIMEOUT", "30s")
	if err != nil {
		return nil, err
	}
	shutdownTimeout, err := parseDuration("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}
	warningTTL, err := parseDuration("WARNING_TTL", "72h")
	if err != nil {
		return nil, err
	}

	kafkaEnabled := false
	if v := os.Getenv("KAFKA_ENABLED"); v != "" {
		kafkaEnabled = v == "true"
	}

	cfg := &Config{
		RedisURL:        envOrDefault("REDIS_URL", "redis://localhost:6379"),
		KafkaBrokers:    splitBrokers(envOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaAlertTopic: envOrDefault("KAFKA_ALERT_TOPIC", "weather-alerts"),
		KafkaEnabled:    kafkaEnabled,
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		CheckInterval:   checkInterval,
		FeedTimeout:     feedTimeout,
		ShutdownTimeout: shutdownTimeout,
		BOMBaseURL:      envOrDefault("BOM_BASE_URL", "http://www.bom.gov.au"),
		WarningTTL:      warningTTL,
	}

	if cfg.RedisURL == "" {
		return nil, errors.New("REDIS_URL is required")
	}
	if cfg.KafkaEnabled && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_ENABLED is true but KAFKA_BROKERS is not set")
	}
	if cfg.KafkaEnabled && cfg.KafkaAlertTopic == "" {
		return nil, errors.New("KAFKA_ENABLED is true but KAFKA_ALERT_TOPIC is not set")
	}

	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseDuration(key, def string) (time.Duration, error) {
	raw := envOrDefault(key, def)
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, raw)
	}
	return d, nil
}

func splitBrokers(raw string) []string {
	var brokers []string
	for _, b := range strings.Split(raw, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}
