package main

import (
	"context"
	"os/signal"
	"syscall"

	"jobportal_backend/internal/app"
	"jobportal_backend/internal/config"
	"jobportal_backend/internal/logger"
	"jobportal_backend/internal/workers"
)

// mailworker читает письма из очереди RabbitMQ (dispatch.type=amqp) и отправляет их
func main() {
	cfg := config.GetConfig()
	logger.Init(cfg.Server.Env)

	if cfg.Dispatch.AMQPURL == "" {
		logger.Fatal("AMQP_URL is not configured")
	}

	provider, err := app.NewEmailProvider(cfg)
	if err != nil {
		logger.Fatal("Failed to initialize email provider", "error", err)
	}
	defer provider.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	consumer := workers.NewAMQPConsumer(cfg.Dispatch.AMQPURL, cfg.Dispatch.Queue, provider)
	logger.Info("Mail worker starting", "queue", cfg.Dispatch.Queue, "workers", cfg.Dispatch.Workers)
	if err := consumer.Run(ctx, cfg.Dispatch.Workers); err != nil {
		logger.Fatal("Mail worker stopped with error", "error", err)
	}
	logger.Info("Mail worker stopped")
}
