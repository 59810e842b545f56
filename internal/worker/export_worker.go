// Package worker keeps the spreadsheet mirror of the ledger up to date. It
// exports on every ledger event and on a cron schedule as a catch-up for
// events lost while the worker was down.
package worker

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"

	"spareplan/internal/amqp"
	"spareplan/internal/core"
	"spareplan/internal/ledger"
)

// Exporter receives full ledger snapshots.
type Exporter interface {
	ExportSnapshot(ctx context.Context, transactions []core.Transaction, budgets []core.BudgetLimit) error
}

// EventSource delivers ledger events until the context is cancelled.
type EventSource interface {
	ConsumeLedgerEvents(ctx context.Context, handler func(*amqp.LedgerEvent) error) error
}

type ExportWorker struct {
	store    *ledger.Store
	source   EventSource
	exporter Exporter
	schedule string
}

// New builds a worker over its own ledger store instance. The store must
// share the persistence backend with the server so reloads see its writes.
func New(store *ledger.Store, source EventSource, exporter Exporter, schedule string) *ExportWorker {
	return &ExportWorker{
		store:    store,
		source:   source,
		exporter: exporter,
		schedule: schedule,
	}
}

// Run consumes events and ticks the cron schedule until the context is
// cancelled. Both loops run concurrently; the first hard failure stops both.
func (w *ExportWorker) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		err := w.source.ConsumeLedgerEvents(ctx, func(event *amqp.LedgerEvent) error {
			return w.exportLatest(ctx, "event", event.Kind)
		})
		if ctx.Err() != nil {
			return nil
		}
		return err
	})

	g.Go(func() error {
		c := cron.New()
		_, err := c.AddFunc(w.schedule, func() {
			if err := w.exportLatest(ctx, "schedule", w.schedule); err != nil {
				slog.ErrorContext(ctx, "Scheduled export failed", "error", err)
			}
		})
		if err != nil {
			return fmt.Errorf("invalid export schedule %q: %w", w.schedule, err)
		}
		c.Start()
		<-ctx.Done()
		<-c.Stop().Done()
		return nil
	})

	return g.Wait()
}

// exportLatest reloads the ledger from the shared backend and pushes a full
// snapshot. Reload-then-export keeps the worker stateless between events.
func (w *ExportWorker) exportLatest(ctx context.Context, trigger, detail string) error {
	if err := w.store.Load(ctx); err != nil {
		return fmt.Errorf("reload ledger: %w", err)
	}
	transactions := w.store.Transactions()
	budgets := w.store.Budgets()
	if err := w.exporter.ExportSnapshot(ctx, transactions, budgets); err != nil {
		return fmt.Errorf("export snapshot: %w", err)
	}
	slog.InfoContext(ctx, "Ledger snapshot exported",
		"trigger", trigger,
		"detail", detail,
		"transactions", len(transactions))
	return nil
}
