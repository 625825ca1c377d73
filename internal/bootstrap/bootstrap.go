// Package bootstrap wires the comparison service from configuration. Both
// binaries share it.
package bootstrap

import (
	"context"
	"fmt"

	app "order_compare/internal/application/comparison"
	"order_compare/internal/config"
	domain "order_compare/internal/domain/comparison"
	"order_compare/internal/domain/repository"
	"order_compare/internal/infrastructure/cache"
	"order_compare/internal/infrastructure/encoding/avro"
	"order_compare/internal/infrastructure/http/catkissfish"
	"order_compare/internal/infrastructure/http/shopify"
	kafkainfra "order_compare/internal/infrastructure/messaging/kafka"
	"order_compare/internal/infrastructure/persistence/postgres"
	"order_compare/pkg/logger"
)

// Components holds the service and the optional infrastructure behind it.
// History is nil without Postgres, Codec is nil without Kafka.
type Components struct {
	Service *app.Service
	History repository.ComparisonRepository
	Codec   *avro.ComparisonCodec

	closers []func()
}

// Close releases everything in reverse creation order.
func (c *Components) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
}

// New builds the comparison service. Redis, Postgres and Kafka are only
// connected when configured.
func New(ctx context.Context, cfg *config.Config, log logger.Logger) (*Components, error) {
	c := &Components{}

	store, err := tokenStore(ctx, cfg.Redis, log, c)
	if err != nil {
		c.Close()
		return nil, err
	}

	factory := catkissfish.NewClient(cfg.CatKissFish, log)
	tokens := catkissfish.NewTokenSource(factory, store, log)
	shop := shopify.NewClient(cfg.Shopify, log)

	opts := []app.Option{
		app.WithProjectionOptions(domain.ProjectionOptions{
			ReverseDesignHistory: cfg.Compare.ReverseDesignHistory,
			DropLastEffectImage:  cfg.Compare.DropLastEffectImage,
		}),
	}

	if cfg.DB.Enabled() {
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			c.Close()
			return nil, err
		}
		c.closers = append(c.closers, pool.Close)
		history := postgres.NewComparisonRepository(pool)
		c.History = history
		opts = append(opts, app.WithHistory(history))
		log.Info("comparison history enabled", logger.String("host", cfg.DB.Host))
	}

	switch {
	case cfg.Kafka.Enabled():
		codec, err := avro.NewComparisonCodec()
		if err != nil {
			c.Close()
			return nil, err
		}
		producer, err := kafkainfra.NewComparisonProducer(cfg.Kafka, codec, log)
		if err != nil {
			c.Close()
			return nil, err
		}
		c.Codec = codec
		c.closers = append(c.closers, producer.Close)
		opts = append(opts, app.WithRecorder(producer))
	case c.History != nil:
		// không có Kafka thì ghi thẳng vào Postgres
		opts = append(opts, app.WithRecorder(c.History))
	}

	c.Service = app.NewService(tokens, factory, shop, log, opts...)
	return c, nil
}

func tokenStore(ctx context.Context, cfg config.RedisConfig, log logger.Logger, c *Components) (catkissfish.TokenStore, error) {
	if !cfg.Enabled() {
		return cache.NewMemoryTokenStore(), nil
	}

	store, err := cache.NewRedisTokenStore(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("token store: %w", err)
	}
	c.closers = append(c.closers, func() { _ = store.Close() })
	log.Info("using redis token store", logger.String("addr", cfg.Addr))
	return store, nil
}
