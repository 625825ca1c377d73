package kafka

import (
	"context"
	"errors"
	"fmt"

	kafkago "github.com/segmentio/kafka-go"

	"order_compare/internal/config"
	domain "order_compare/internal/domain/comparison"
	"order_compare/pkg/logger"
)

type SummaryDecoder interface {
	Decode(binary []byte) (domain.Summary, error)
}

// SummaryHandler lưu summary đã consume (Postgres history).
type SummaryHandler interface {
	RecordComparison(ctx context.Context, s domain.Summary) error
}

type messageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// ComparisonConsumer moves comparison events into the history store.
type ComparisonConsumer struct {
	reader  messageReader
	decoder SummaryDecoder
	handler SummaryHandler
	logger  logger.Logger
}

func NewComparisonConsumer(cfg config.KafkaConfig, decoder SummaryDecoder, handler SummaryHandler, log logger.Logger) *ComparisonConsumer {
	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:  cfg.Brokers,
		GroupID:  cfg.ConsumerGroup,
		Topic:    cfg.ComparisonTopic,
		MinBytes: 1e3,
		MaxBytes: 1e6,
	})

	return &ComparisonConsumer{
		reader:  reader,
		decoder: decoder,
		handler: handler,
		logger:  log,
	}
}

// Start blocks until ctx is done or the reader fails. Undecodable messages
// are logged and committed, handler errors stop the loop without a commit.
func (c *ComparisonConsumer) Start(ctx context.Context) error {
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil
			}
			return fmt.Errorf("fetch message: %w", err)
		}

		summary, err := c.decoder.Decode(msg.Value)
		if err != nil {
			c.logger.Warn("Skipping undecodable comparison event",
				logger.Int64("offset", msg.Offset),
				logger.Error(err))
		} else if err := c.handler.RecordComparison(ctx, summary); err != nil {
			return fmt.Errorf("handle comparison %s: %w", summary.ID, err)
		}

		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			return fmt.Errorf("commit offset %d: %w", msg.Offset, err)
		}
	}
}

func (c *ComparisonConsumer) Close() {
	_ = c.reader.Close()
}
