// Command spareplan-import loads a bank CSV export into the ledger from the
// command line, bypassing the HTTP API.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"spareplan/internal/backend"
	"spareplan/internal/cli"
	"spareplan/internal/ingest"
	"spareplan/internal/ledger"
	applog "spareplan/internal/log"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(applog.ComponentImport)

	var path string
	flag.StringVar(&path, "file", "", "path to the CSV file to import")
	flag.Parse()
	if path == "" {
		fmt.Fprintln(os.Stderr, "usage: spareplan-import -file <transactions.csv>")
		os.Exit(2)
	}

	cfg := cli.LoadAndValidateConfig(logger)
	ctx := context.Background()

	result, err := backend.Create(ctx, cfg, logger.Logger)
	if err != nil {
		logger.Error("Failed to initialize storage backend", "error", err, "backend", cfg.StorageBackend)
		os.Exit(1)
	}
	defer func() {
		if result.Cleanup != nil {
			_ = result.Cleanup(ctx)
		}
	}()

	store := ledger.New(result.Store)
	if err := store.Load(ctx); err != nil {
		logger.Error("Failed to load ledger", "error", err)
		os.Exit(1)
	}

	f, err := os.Open(path)
	if err != nil {
		logger.Error("Failed to open CSV file", "error", err, "path", path)
		os.Exit(1)
	}
	defer f.Close()

	res, err := ingest.NewImporter(store).Import(ctx, f)
	if err != nil {
		logger.Error("Import failed", "error", err, "path", path)
		os.Exit(1)
	}

	logger.Info("Import finished", "path", path, "imported", res.Imported, "skipped", res.Skipped)
}
