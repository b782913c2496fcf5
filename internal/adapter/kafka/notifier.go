package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/stormpetrel/bomwatch/internal/config"
	"github.com/stormpetrel/bomwatch/internal/domain"
)

// Notifier publishes eligible warnings to the alert Kafka topic, where a
// downstream push worker turns them into user-visible notifications.
// It implements pipeline.Notifier.
type Notifier struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewNotifier creates a Kafka producer for the configured alert topic.
func NewNotifier(cfg *config.Config, logger *slog.Logger) *Notifier {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaAlertTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Notifier{writer: w, logger: logger}
}

// Notify publishes one warning alert. Delivery is best-effort from the
// pipeline's perspective; the caller logs and continues on error.
func (n *Notifier) Notify(ctx context.Context, warning domain.Warning, locationName string) error {
	msg, err := serializeAlert(warning, locationName)
	if err != nil {
		return err
	}
	return n.writer.WriteMessages(ctx, msg)
}

func (n *Notifier) Close() error {
	return n.writer.Close()
}

// alertPayload is the wire format consumed by the push worker. Severe
// warnings escalate urgency and ask the client to keep the notification
// on screen until dismissed.
type alertPayload struct {
	Warning            domain.Warning `json:"warning"`
	LocationName       string         `json:"location_name,omitempty"`
	Message            string         `json:"message"`
	Urgency            string         `json:"urgency"`
	RequireInteraction bool           `json:"require_interaction"`
	SentAt             time.Time      `json:"sent_at"`
}

// serializeAlert marshals a warning into a Kafka message keyed by warning ID.
func serializeAlert(warning domain.Warning, locationName string) (kafkago.Message, error) {
	area := locationName
	if area == "" {
		area = string(warning.Region)
	}

	payload := alertPayload{
		Warning:            warning,
		LocationName:       locationName,
		Message:            fmt.Sprintf("%s warning active for %s", warning.Type, area),
		Urgency:            "normal",
		RequireInteraction: false,
		SentAt:             domain.Now(),
	}
	if warning.Severity == domain.SeveritySevere {
		payload.Urgency = "critical"
		payload.RequireInteraction = true
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize alert: %w", err)
	}

	return kafkago.Message{
		Key:   []byte(warning.ID),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "severity", Value: []byte(warning.Severity)},
			{Key: "warning_type", Value: []byte(warning.Type)},
			{Key: "state", Value: []byte(warning.Region)},
		},
	}, nil
}
