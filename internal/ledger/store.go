// Package ledger owns the raw collections of the finance model
// (transactions, budget limits, savings goals) and every mutation entry
// point. Each successful mutation is mirrored to the persistence backend
// under one fixed key before control returns to the caller.
package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"spareplan/internal/core"
	"spareplan/internal/kvstore"
)

// EventPublisher receives a notification after every successful mutation.
// Publish failures never fail the mutation; the ledger record is already
// saved locally.
type EventPublisher interface {
	PublishLedgerEvent(ctx context.Context, kind, entityID string) error
}

// Mutation kinds handed to the event publisher.
const (
	EventTransactionAdded = "transaction.added"
	EventBudgetUpdated    = "budget.updated"
	EventGoalAdded        = "goal.added"
	EventGoalContributed  = "goal.contributed"
	EventLedgerReset      = "ledger.reset"
)

type TransactionDraft struct {
	Amount      core.Money
	Category    string
	Description string
	Date        core.Date
	Type        core.TransactionType
}

type GoalDraft struct {
	Name         string
	TargetAmount core.Money
	Deadline     core.Date
	Category     string
}

// Store holds the collections behind a mutex. The contract is single-writer,
// but the HTTP host serves requests concurrently.
type Store struct {
	mu           sync.Mutex
	kv           kvstore.Store
	publisher    EventPublisher
	now          func() time.Time
	seq          int64
	transactions []core.Transaction
	budgets      []core.BudgetLimit
	goals        []core.SavingsGoal
}

type Option func(*Store)

// WithPublisher attaches an event publisher notified after each mutation.
func WithPublisher(p EventPublisher) Option {
	return func(s *Store) { s.publisher = p }
}

// WithClock overrides the wall clock used for ID generation.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func New(kv kvstore.Store, opts ...Option) *Store {
	s := &Store{kv: kv, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load restores the collections from the persistence backend. An absent key
// or unparseable blob falls back to seed defaults (field-by-field); only a
// failing backend is an error.
func (s *Store) Load(ctx context.Context) error {
	blob, ok, err := s.kv.Load(ctx, StorageKey)
	if err != nil {
		return fmt.Errorf("load ledger record: %w", err)
	}

	var st persistedState
	if ok {
		st = decodeState(blob)
	} else {
		st = seedState()
	}

	s.mu.Lock()
	s.transactions = st.Transactions
	s.budgets = st.Budgets
	s.goals = st.SavingsGoals
	s.mu.Unlock()

	slog.InfoContext(ctx, "Ledger loaded",
		"persisted", ok,
		"transactions", len(st.Transactions),
		"budgets", len(st.Budgets),
		"goals", len(st.SavingsGoals))
	return nil
}

// AddTransaction validates the draft, assigns a process-unique ID, prepends
// the transaction (most recent first) and persists the full state.
func (s *Store) AddTransaction(ctx context.Context, d TransactionDraft) (core.Transaction, error) {
	tx := core.Transaction{
		Amount:      d.Amount,
		Category:    strings.TrimSpace(d.Category),
		Description: strings.TrimSpace(d.Description),
		Date:        d.Date,
		Type:        d.Type,
	}
	if err := tx.Validate(); err != nil {
		return core.Transaction{}, err
	}

	s.mu.Lock()
	tx.ID = s.newIDLocked()
	s.transactions = append([]core.Transaction{tx}, s.transactions...)
	err := s.persistLocked(ctx)
	s.mu.Unlock()
	if err != nil {
		return tx, err
	}

	slog.InfoContext(ctx, "Transaction added",
		"id", tx.ID,
		"type", tx.Type,
		"category", tx.Category,
		"amount_cents", tx.Amount.Cents)
	s.publish(ctx, EventTransactionAdded, tx.ID)
	return tx, nil
}

// UpdateBudgetLimit replaces the limit of an existing category. An unknown
// category is a no-op returning false: budgets are pre-seeded, never created
// through this path.
func (s *Store) UpdateBudgetLimit(ctx context.Context, category string, limit core.Money) (bool, error) {
	if limit.Cents < 0 {
		return false, core.ErrInvalidAmount
	}

	s.mu.Lock()
	idx := -1
	for i := range s.budgets {
		if s.budgets[i].Category == category {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return false, nil
	}
	s.budgets[idx].Limit = limit
	err := s.persistLocked(ctx)
	s.mu.Unlock()
	if err != nil {
		return true, err
	}

	slog.InfoContext(ctx, "Budget limit updated", "category", category, "limit_cents", limit.Cents)
	s.publish(ctx, EventBudgetUpdated, category)
	return true, nil
}

// AddSavingsGoal appends a new goal (insertion order, unlike transactions)
// with CurrentAmount starting at zero.
func (s *Store) AddSavingsGoal(ctx context.Context, d GoalDraft) (core.SavingsGoal, error) {
	goal := core.SavingsGoal{
		Name:         strings.TrimSpace(d.Name),
		TargetAmount: d.TargetAmount,
		Deadline:     d.Deadline,
		Category:     strings.TrimSpace(d.Category),
	}
	if err := goal.Validate(); err != nil {
		return core.SavingsGoal{}, err
	}

	s.mu.Lock()
	goal.ID = s.newIDLocked()
	s.goals = append(s.goals, goal)
	err := s.persistLocked(ctx)
	s.mu.Unlock()
	if err != nil {
		return goal, err
	}

	slog.InfoContext(ctx, "Savings goal added",
		"id", goal.ID,
		"name", goal.Name,
		"target_cents", goal.TargetAmount.Cents)
	s.publish(ctx, EventGoalAdded, goal.ID)
	return goal, nil
}

// Contribute adds a positive amount to a goal's current total. Contributions
// are additive only; an unknown id is a no-op returning false.
func (s *Store) Contribute(ctx context.Context, id string, amount core.Money) (bool, error) {
	if err := amount.Validate(); err != nil {
		return false, err
	}

	s.mu.Lock()
	idx := -1
	for i := range s.goals {
		if s.goals[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return false, nil
	}
	s.goals[idx].CurrentAmount.Cents += amount.Cents
	err := s.persistLocked(ctx)
	s.mu.Unlock()
	if err != nil {
		return true, err
	}

	slog.InfoContext(ctx, "Goal contribution recorded", "id", id, "amount_cents", amount.Cents)
	s.publish(ctx, EventGoalContributed, id)
	return true, nil
}

// Reset clears all three collections and removes the persisted record
// entirely. This is distinct from restoring defaults: the next Load on an
// empty backend reseeds, but the running store stays empty.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	s.transactions = []core.Transaction{}
	s.budgets = []core.BudgetLimit{}
	s.goals = []core.SavingsGoal{}
	err := s.kv.Remove(ctx, StorageKey)
	s.mu.Unlock()
	if err != nil {
		return fmt.Errorf("remove ledger record: %w", err)
	}

	slog.InfoContext(ctx, "Ledger reset")
	s.publish(ctx, EventLedgerReset, "")
	return nil
}

// Transactions returns a copy of the transaction log, most recent first.
func (s *Store) Transactions() []core.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Transaction(nil), s.transactions...)
}

func (s *Store) Budgets() []core.BudgetLimit {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.BudgetLimit(nil), s.budgets...)
}

func (s *Store) Goals() []core.SavingsGoal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.SavingsGoal(nil), s.goals...)
}

// Summary recomputes every derived figure from the current collections.
func (s *Store) Summary() core.Summary {
	s.mu.Lock()
	txs := append([]core.Transaction(nil), s.transactions...)
	budgets := append([]core.BudgetLimit(nil), s.budgets...)
	s.mu.Unlock()
	return core.Summarize(txs, budgets)
}

// persistLocked mirrors the full state to the backend. Callers hold s.mu.
// On failure the in-memory mutation is kept and the error surfaces to the
// caller.
func (s *Store) persistLocked(ctx context.Context) error {
	blob, err := encodeState(persistedState{
		Transactions: s.transactions,
		Budgets:      s.budgets,
		SavingsGoals: s.goals,
	})
	if err != nil {
		return fmt.Errorf("encode ledger record: %w", err)
	}
	if err := s.kv.Save(ctx, StorageKey, blob); err != nil {
		return fmt.Errorf("persist ledger record: %w", err)
	}
	return nil
}

// newIDLocked generates a process-unique ID: millisecond timestamp plus a
// monotonic counter suffix, so rapid successive creations (CSV import) never
// collide within one clock tick. Callers hold s.mu.
func (s *Store) newIDLocked() string {
	s.seq++
	return strconv.FormatInt(s.now().UnixMilli(), 10) + "-" + strconv.FormatInt(s.seq, 10)
}

func (s *Store) publish(ctx context.Context, kind, entityID string) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishLedgerEvent(ctx, kind, entityID); err != nil {
		slog.WarnContext(ctx, "Failed to publish ledger event",
			"kind", kind, "entity_id", entityID, "error", err)
	}
}
