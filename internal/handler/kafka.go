package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/segmentio/kafka-go"
	"github.com/veloraeats/dispatch-service/internal/config"
	"github.com/veloraeats/dispatch-service/internal/entities"
)

type kafkaHandler struct {
	dlq      *kafka.Writer
	reader   *kafka.Reader
	logger   *slog.Logger
	validate *validator.Validate
	ingestor LocationIngestor
}

func NewKafkaHandler(logger *slog.Logger, cfg config.Kafka, ingestor LocationIngestor) *kafkaHandler {
	return &kafkaHandler{
		logger: logger.With(slog.String("handler", "kafka")),
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers: cfg.Brokers,
			GroupID: cfg.GroupID,
			Topic:   cfg.PingsTopic,
			MaxWait: cfg.ReaderMaxWait,
		}),
		dlq: &kafka.Writer{
			Addr:         kafka.TCP(cfg.Brokers...),
			Balancer:     &kafka.LeastBytes{},
			BatchTimeout: cfg.BatchTimeout,
		},
		validate: validator.New(),
		ingestor: ingestor,
	}
}

// Consume reads location pings until ctx is cancelled. Malformed
// messages go to the DLQ; pings the domain rejects (out of range, poor
// accuracy) are counted and dropped, since redelivery cannot fix them.
func (h *kafkaHandler) Consume(ctx context.Context) {
	for {
		m, err := h.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
				break
			}
			h.logger.Error("failed to fetch message", slog.Any("error", err))
			continue
		}

		if err := h.handlePing(ctx, m); err != nil {
			switch {
			case errors.Is(err, entities.ErrOutOfRange):
				pingsRejected.WithLabelValues("out_of_range").Inc()
			case errors.Is(err, entities.ErrPoorAccuracy):
				pingsRejected.WithLabelValues("poor_accuracy").Inc()
			default:
				h.logger.Error("failed to handle ping", slog.Any("error", err))
				if err := h.writeToDLQ(ctx, m); err != nil {
					h.logger.Error("failed to write message to DLQ", slog.Any("error", err))
					continue
				}
				pingsDLQ.Inc()
			}
		} else {
			pingsProcessed.Inc()
		}

		if err := h.reader.CommitMessages(ctx, m); err != nil {
			commitErrors.Inc()
			h.logger.Error("failed to commit message", slog.Any("error", err))
		}
	}
}

func (h *kafkaHandler) handlePing(ctx context.Context, m kafka.Message) error {
	start := time.Now()
	defer func() {
		pingProcessingDuration.Observe(time.Since(start).Seconds())
	}()

	var ping Ping
	if err := json.Unmarshal(m.Value, &ping); err != nil {
		return fmt.Errorf("failed to unmarshal ping: %w", err)
	}
	if err := h.validate.Struct(ping); err != nil {
		return fmt.Errorf("invalid ping data: %w", err)
	}

	return h.ingestor.Ingest(ctx, PingToEntity(ping))
}

func (h *kafkaHandler) writeToDLQ(ctx context.Context, m kafka.Message) error {
	m.Topic = fmt.Sprintf("%s-dlq", m.Topic)
	return h.dlq.WriteMessages(ctx, m)
}

func (h *kafkaHandler) Close() error {
	if err := h.reader.Close(); err != nil {
		return err
	}
	return h.dlq.Close()
}
