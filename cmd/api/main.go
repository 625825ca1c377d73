package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"order_compare/internal/bootstrap"
	"order_compare/internal/config"
	ginserver "order_compare/internal/infrastructure/http/gin"
	kafkainfra "order_compare/internal/infrastructure/messaging/kafka"
	"order_compare/internal/infrastructure/telemetry"
	"order_compare/internal/interfaces/http/handler"
	"order_compare/internal/interfaces/http/router"
	"order_compare/pkg/logger"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config failed: %v", err)
	}

	appLogger, err := logger.NewZapLogger(cfg.App.Env)
	if err != nil {
		log.Fatalf("init logger failed: %v", err)
	}
	defer func() { _ = appLogger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracer, err := telemetry.InitTracer(ctx, cfg.Telemetry, version)
	if err != nil {
		appLogger.Fatal("init tracer failed", logger.Error(err))
	}
	defer func() { _ = shutdownTracer(context.Background()) }()

	components, err := bootstrap.New(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Fatal("wire services failed", logger.Error(err))
	}
	defer components.Close()

	// Kafka + Postgres: consumer chuyển event vào bảng history
	if components.Codec != nil && components.History != nil {
		consumer := kafkainfra.NewComparisonConsumer(cfg.Kafka, components.Codec, components.History, appLogger)
		defer consumer.Close()
		go func() {
			if err := consumer.Start(ctx); err != nil {
				appLogger.Error("kafka consumer stopped", logger.Error(err))
			}
		}()
	}

	engine := ginserver.NewEngine(cfg.Telemetry.ServiceName, appLogger)
	router.RegisterRoutes(engine,
		handler.NewComparisonHandler(components.Service, appLogger),
		handler.NewPageHandler(components.Service),
	)

	server := ginserver.NewServer(cfg.Server, engine, appLogger)
	if err := server.Run(ctx); err != nil {
		appLogger.Error("server run failed", logger.Error(err))
	}
}
