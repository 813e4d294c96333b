package journal

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/segmentio/kafka-go"
	"github.com/veloraeats/dispatch-service/internal/config"
	"github.com/veloraeats/dispatch-service/internal/entities"
)

// Journal mirrors every realtime event onto a kafka topic so other
// services (analytics, notifications) can replay what subscribers saw.
// The room name rides along as the message key, which also keeps one
// room's events in order within a partition.
type Journal struct {
	logger *slog.Logger
	writer *kafka.Writer
}

func New(logger *slog.Logger, cfg config.Kafka) *Journal {
	return &Journal{
		logger: logger.With(slog.String("service", "journal")),
		writer: &kafka.Writer{
			Addr:         kafka.TCP(cfg.Brokers...),
			Topic:        cfg.EventsTopic,
			Balancer:     &kafka.Hash{},
			BatchTimeout: cfg.BatchTimeout,
		},
	}
}

func (j *Journal) Publish(ctx context.Context, room string, event entities.Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	err = j.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(room),
		Value: data,
	})
	if err != nil {
		return fmt.Errorf("failed to write event: %w", err)
	}
	return nil
}

func (j *Journal) Close() error {
	return j.writer.Close()
}
