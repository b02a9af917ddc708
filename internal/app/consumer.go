package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go-bizdocs/internal/config"
	"go-bizdocs/internal/events"
	"go-bizdocs/internal/messaging/kafka/consumer"
	"go-bizdocs/internal/shared/connection"

	"go.uber.org/zap"
)

const documentPDFGroupID = "go-bizdocs-document-pdf"

// RunConsumer renders and stores PDFs requested through the outbox.
func RunConsumer(cfg config.Config) error {
	logger := zap.L().Named("app.consumer")

	if err := cfg.RequireKafka(); err != nil {
		return err
	}

	gormDB, err := connection.ConnectGORMWithRetry(
		cfg.DBHost,
		cfg.DBUser,
		cfg.DBPassword,
		cfg.DBName,
		cfg.DBPort,
		cfg.DBSSLMode,
		cfg.MaxRetries,
	)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	redisClient, err := connection.ConnectRedisWithRetry(cfg.RedisAddr, cfg.MaxRetries)
	if err != nil {
		return err
	}
	defer redisClient.Close()

	docs := buildDocumentServices(cfg, sqlDB, gormDB, redisClient, zap.L())

	reader := connection.NewKafkaReader(cfg.KafkaBroker, events.DocumentPDFRequestedTopic, documentPDFGroupID)
	defer reader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go consumer.ConsumeDocumentPDFRequested(ctx, reader, docs.salesdoc, logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	cancel()

	return nil
}
