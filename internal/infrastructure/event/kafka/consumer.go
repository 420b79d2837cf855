// Package kafka consumes upload-notification events for bulk file ingestion.
package kafka

import (
	"context"
	"encoding/json"

	"github.com/segmentio/kafka-go"

	"stockyard/internal/core/apperror"
	"stockyard/internal/domain/upload"
	"stockyard/pkg/logger"
)

// UploadNotification is the event published when a bulk file lands in the
// upload bucket.
type UploadNotification struct {
	Bucket string `json:"bucket"`
	Key    string `json:"key"`
}

// ConsumerConfig holds Kafka consumer settings.
type ConsumerConfig struct {
	Brokers []string
	Topic   string
	GroupID string
}

// UploadConsumer reads upload notifications and hands them to the upload
// service. At-least-once: offsets are committed only after handling.
type UploadConsumer struct {
	reader  *kafka.Reader
	service *upload.Service
}

// NewUploadConsumer creates a new upload notification consumer.
func NewUploadConsumer(cfg ConsumerConfig, service *upload.Service) *UploadConsumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Brokers,
		GroupID:  cfg.GroupID,
		Topic:    cfg.Topic,
		MinBytes: 1,
		MaxBytes: 10e6, // 10MB
	})

	return &UploadConsumer{
		reader:  reader,
		service: service,
	}
}

// Start consumes until the context is cancelled.
func (c *UploadConsumer) Start(ctx context.Context) error {
	logger.Info(ctx, "starting upload notification consumer",
		"topic", c.reader.Config().Topic,
		"group_id", c.reader.Config().GroupID,
	)

	for {
		m, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				logger.Info(ctx, "consumer context cancelled, stopping")
				return nil
			}
			logger.Error(ctx, "failed to fetch message", "error", err)
			continue
		}

		if c.processMessage(ctx, m) {
			if err := c.reader.CommitMessages(ctx, m); err != nil {
				logger.Error(ctx, "failed to commit offset",
					"error", err,
					"partition", m.Partition,
					"offset", m.Offset,
				)
			}
		}
	}
}

// processMessage handles one notification. Returns true when the offset
// should be committed.
func (c *UploadConsumer) processMessage(ctx context.Context, m kafka.Message) bool {
	var notification UploadNotification
	if err := json.Unmarshal(m.Value, &notification); err != nil {
		// Re-delivery cannot fix a malformed payload; log and move on.
		logger.Error(ctx, "malformed upload notification",
			"error", err,
			"partition", m.Partition,
			"offset", m.Offset,
		)
		return true
	}

	if err := c.service.HandleNotification(ctx, notification.Key); err != nil {
		// Envelope-level failures are terminal for the file as well; only
		// infrastructure failures warrant a retry via re-delivery.
		if _, isApp := apperror.AsAppError(err); isApp {
			logger.Error(ctx, "upload rejected", "key", notification.Key, "error", err)
			return true
		}
		logger.Error(ctx, "upload failed, will retry", "key", notification.Key, "error", err)
		return false
	}

	logger.Info(ctx, "upload processed", "key", notification.Key)
	return true
}

// Close releases the underlying reader.
func (c *UploadConsumer) Close() error {
	return c.reader.Close()
}
