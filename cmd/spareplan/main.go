package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"spareplan/internal/amqp"
	"spareplan/internal/backend"
	"spareplan/internal/cli"
	apphttp "spareplan/internal/http"
	"spareplan/internal/ledger"
	applog "spareplan/internal/log"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(applog.ComponentServer)
	cfg := cli.LoadAndValidateConfig(logger)

	ctx := context.Background()

	result, err := backend.Create(ctx, cfg, logger.Logger)
	if err != nil {
		logger.Error("Failed to initialize storage backend", "error", err, "backend", cfg.StorageBackend)
		os.Exit(1)
	}

	// AMQP is optional: without a broker the server runs standalone and the
	// worker just never hears about mutations.
	var opts []ledger.Option
	var amqpClient *amqp.Client
	if cfg.AMQPURL != "" {
		amqpClient, err = amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("Failed to initialize AMQP client, continuing without events", "error", err)
		} else {
			opts = append(opts, ledger.WithPublisher(amqpClient))
			logger.Info("Initialized AMQP client", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
		}
	}

	store := ledger.New(result.Store, opts...)
	if err := store.Load(ctx); err != nil {
		logger.Error("Failed to load ledger", "error", err)
		os.Exit(1)
	}

	srv := apphttp.NewServer(":"+cfg.Port, store)
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	shutdownCtx, done := cli.GracefulShutdown(logger.Logger, 30*time.Second, func() {
		stopCtx, stopCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer stopCancel()
		if err := srv.Shutdown(stopCtx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
		if amqpClient != nil {
			amqpClient.Close()
		}
		if result.Cleanup != nil {
			if err := result.Cleanup(stopCtx); err != nil {
				logger.Error("Backend cleanup error", "error", err)
			}
		}
	})

	logger.Info("Starting spareplan server", "port", cfg.Port, "backend", cfg.StorageBackend)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", "error", err, "port", cfg.Port)
		os.Exit(1)
	}

	cli.WaitForShutdown(shutdownCtx, done)
	logger.Info("Server stopped gracefully")
}
