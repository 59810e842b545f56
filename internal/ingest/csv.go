// Package ingest turns exported bank CSV files into ledger transactions.
//
// The accepted format is the loose four-column export many Norwegian banks
// produce: amount,category,description,date with a header on the first line.
// The amount's sign classifies the row (positive income, negative expense);
// the stored amount is always the absolute value.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"spareplan/internal/core"
	"spareplan/internal/ledger"
)

// Result reports how many data lines became transactions and how many were
// dropped as malformed.
type Result struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}

type Importer struct {
	store *ledger.Store
}

func NewImporter(store *ledger.Store) *Importer {
	return &Importer{store: store}
}

// Import reads the whole CSV and adds one transaction per well-formed data
// line. Malformed lines are skipped, never fatal; a persistence failure is.
func (im *Importer) Import(ctx context.Context, r io.Reader) (Result, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Result{}, fmt.Errorf("read csv: %w", err)
	}

	var res Result
	lines := strings.Split(string(data), "\n")
	for i, line := range lines {
		if i == 0 {
			continue // header
		}
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		draft, ok := parseLine(line)
		if !ok {
			res.Skipped++
			continue
		}
		if _, err := im.store.AddTransaction(ctx, draft); err != nil {
			if isInvalidDraft(err) {
				res.Skipped++
				continue
			}
			return res, fmt.Errorf("import line %d: %w", i+1, err)
		}
		res.Imported++
	}

	slog.InfoContext(ctx, "CSV import finished", "imported", res.Imported, "skipped", res.Skipped)
	return res, nil
}

// parseLine splits a raw CSV line into a transaction draft. The format is
// plain comma-separated with no quoting support; extra columns are ignored.
func parseLine(line string) (ledger.TransactionDraft, bool) {
	fields := strings.Split(line, ",")
	if len(fields) < 4 {
		return ledger.TransactionDraft{}, false
	}
	for _, f := range fields[:4] {
		if strings.TrimSpace(f) == "" {
			return ledger.TransactionDraft{}, false
		}
	}

	cents, err := core.ParseSignedDecimalToCents(fields[0])
	if err != nil || cents == 0 {
		return ledger.TransactionDraft{}, false
	}

	txType := core.Income
	if cents < 0 {
		txType = core.Expense
		cents = -cents
	}

	return ledger.TransactionDraft{
		Amount:      core.Money{Cents: cents},
		Category:    strings.TrimSpace(fields[1]),
		Description: strings.TrimSpace(fields[2]),
		Date:        core.ParseDate(fields[3]),
		Type:        txType,
	}, true
}

func isInvalidDraft(err error) bool {
	for _, known := range []error{
		core.ErrInvalidAmount,
		core.ErrEmptyCategory,
		core.ErrEmptyDescription,
		core.ErrInvalidType,
	} {
		if errors.Is(err, known) {
			return true
		}
	}
	return false
}
