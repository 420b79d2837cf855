// Package main is the entry point for the stockyard upload worker.
//
// The worker consumes upload notifications from Kafka, downloads the
// referenced file from the bucket and reconciles its records into the
// database. Failed records are written back to the bucket.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	gcs "cloud.google.com/go/storage"

	"stockyard/internal/config"
	"stockyard/internal/domain/upload"
	"stockyard/internal/infrastructure/event/kafka"
	"stockyard/internal/infrastructure/filestore"
	"stockyard/internal/infrastructure/storage/postgres"
	"stockyard/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{
		Level:       cfg.LogLevel,
		Development: cfg.LogDevelopment,
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info("starting stockyard upload worker")

	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(cfg.DatabaseURL))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	gcsClient, err := gcs.NewClient(ctx)
	if err != nil {
		log.Fatalw("failed to create storage client", "error", err)
	}
	defer gcsClient.Close()

	store := filestore.NewGCSStore(gcsClient, cfg.UploadBucket)

	articleRepo := postgres.NewArticleRepo(pool)
	productRepo := postgres.NewProductRepo(pool)
	uploadService := upload.NewService(articleRepo, productRepo, store)

	consumer := kafka.NewUploadConsumer(kafka.ConsumerConfig{
		Brokers: cfg.KafkaBrokers,
		Topic:   cfg.UploadTopic,
		GroupID: cfg.UploadGroup,
	}, uploadService)
	defer consumer.Close()

	log.Infow("consuming upload notifications", "topic", cfg.UploadTopic, "group", cfg.UploadGroup)
	if err := consumer.Start(ctx); err != nil && ctx.Err() == nil {
		log.Fatalw("consumer stopped unexpectedly", "error", err)
	}
	log.Info("worker stopped")
}
