package kafka

import (
	"context"
	"fmt"
	"time"

	"github.com/twmb/franz-go/pkg/kgo"

	"order_compare/internal/config"
	domain "order_compare/internal/domain/comparison"
	"order_compare/pkg/logger"
)

// SummaryEncoder chuyển summary sang bytes (Avro) trước khi publish.
type SummaryEncoder interface {
	Encode(s domain.Summary) ([]byte, error)
}

type recordProducer interface {
	ProduceSync(ctx context.Context, rs ...*kgo.Record) kgo.ProduceResults
	Close()
}

// ComparisonProducer publishes comparison summaries, keyed by comparison id.
type ComparisonProducer struct {
	client  recordProducer
	encoder SummaryEncoder
	topic   string
	logger  logger.Logger
}

func NewComparisonProducer(cfg config.KafkaConfig, encoder SummaryEncoder, log logger.Logger) (*ComparisonProducer, error) {
	log.Info("Connecting kafka producer",
		logger.Strings("brokers", cfg.Brokers),
		logger.String("topic", cfg.ComparisonTopic))

	client, err := kgo.NewClient(
		kgo.SeedBrokers(cfg.Brokers...),
		kgo.DefaultProduceTopic(cfg.ComparisonTopic),
		kgo.RequiredAcks(kgo.AllISRAcks()),
		kgo.DisableIdempotentWrite(),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka producer: %w", err)
	}

	return &ComparisonProducer{
		client:  client,
		encoder: encoder,
		topic:   cfg.ComparisonTopic,
		logger:  log,
	}, nil
}

// RecordComparison encodes and publishes one summary synchronously.
func (p *ComparisonProducer) RecordComparison(ctx context.Context, s domain.Summary) error {
	if s.ID == "" {
		return fmt.Errorf("summary id is empty")
	}

	payload, err := p.encoder.Encode(s)
	if err != nil {
		return fmt.Errorf("encode summary %s: %w", s.ID, err)
	}

	rec := &kgo.Record{
		Topic:     p.topic,
		Key:       []byte(s.ID),
		Value:     payload,
		Timestamp: time.Now().UTC(),
	}

	// chỉ 1 record nên FirstErr là đủ
	if err := p.client.ProduceSync(ctx, rec).FirstErr(); err != nil {
		p.logger.Error("Failed to publish comparison",
			logger.String("topic", p.topic),
			logger.String("comparison_id", s.ID),
			logger.Int("payload_size", len(payload)),
			logger.Error(err))
		return fmt.Errorf("publish to kafka topic %s: %w", p.topic, err)
	}

	p.logger.Debug("Published comparison", logger.String("comparison_id", s.ID))
	return nil
}

func (p *ComparisonProducer) Close() {
	p.logger.Info("Closing kafka producer", logger.String("topic", p.topic))
	p.client.Close()
}
