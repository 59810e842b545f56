package main

import (
	"context"
	"errors"
	"os"
	"time"

	"spareplan/internal/amqp"
	"spareplan/internal/backend"
	"spareplan/internal/cli"
	"spareplan/internal/export"
	"spareplan/internal/ledger"
	applog "spareplan/internal/log"
	"spareplan/internal/worker"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(applog.ComponentWorker)
	cfg := cli.LoadAndValidateConfig(logger)

	logger.Info("Starting spareplan-worker")

	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the worker")
		os.Exit(1)
	}
	if cfg.GoogleSpreadsheetID == "" {
		logger.Error("GOOGLE_SPREADSHEET_ID is required for the worker")
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	result, err := backend.Create(ctx, cfg, logger.Logger)
	if err != nil {
		logger.Error("Failed to initialize storage backend", "error", err, "backend", cfg.StorageBackend)
		os.Exit(1)
	}

	exporter, err := export.NewFromEnv(ctx)
	if err != nil {
		logger.Error("Failed to initialize Google Sheets exporter", "error", err)
		os.Exit(1)
	}
	logger.Info("Google Sheets exporter initialized", "spreadsheet_id", cfg.GoogleSpreadsheetID)

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", "error", err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	shutdownCtx, done := cli.GracefulShutdown(logger.Logger, 30*time.Second, func() {
		cancel()
		amqpClient.Close()
		if result.Cleanup != nil {
			cleanupCtx, cleanupCancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cleanupCancel()
			if err := result.Cleanup(cleanupCtx); err != nil {
				logger.Error("Backend cleanup error", "error", err)
			}
		}
	})

	w := worker.New(ledger.New(result.Store), amqpClient, exporter, cfg.ExportCron)
	logger.Info("Worker running", "queue", cfg.AMQPQueue, "schedule", cfg.ExportCron)
	if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Worker error", "error", err)
		os.Exit(1)
	}

	cli.WaitForShutdown(shutdownCtx, done)
	logger.Info("Worker stopped gracefully")
}
