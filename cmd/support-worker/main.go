package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"expensetracker/internal/config"
	"expensetracker/internal/database"
	apperrors "expensetracker/internal/errors"
	"expensetracker/internal/logger"
	"expensetracker/internal/messaging"
	"expensetracker/internal/services"
)

func main() {
	logger.Init(os.Getenv("ENV"), os.Getenv("LOG_LEVEL"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Support worker error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if cfg.AMQPURL == "" {
		return errors.New("AMQP_URL is required")
	}

	dbConfig, err := database.NewConfig(cfg)
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}
	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer func() {
		if err := dbManager.Close(); err != nil {
			log.Warnf("database close error: %v", err)
		}
	}()

	support := services.NewSupportService(dbManager.DB(), nil)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	handler := func(ctx context.Context, msg *messaging.ContactMessage) error {
		log.Infow("Support message received",
			"message_id", msg.ID,
			"user_id", msg.UserID,
			"subject", msg.Subject,
		)
		err := support.MarkDelivered(ctx, msg.ID)
		if errors.Is(err, apperrors.ErrNotFound) {
			// Unknown ids would be redelivered forever.
			log.Warnw("Dropping message for unknown support message", "message_id", msg.ID)
			return nil
		}
		return err
	}

	log.Infow("Starting support worker", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
	if err := messaging.Consume(ctx, cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue, handler); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	log.Info("Support worker stopped")
	return nil
}
