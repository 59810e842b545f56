package ledger

import (
	"encoding/json"

	"spareplan/internal/core"
)

// StorageKey is the single fixed key the ledger record lives under.
const StorageKey = "financeData"

// persistedState is the one logical record mirrored to the persistence
// backend. Budget entries carry only the stored limit; a legacy "spent"
// field on previously persisted budgets is ignored on load and never
// written back.
type persistedState struct {
	Transactions []core.Transaction `json:"transactions"`
	Budgets      []core.BudgetLimit `json:"budgets"`
	SavingsGoals []core.SavingsGoal `json:"savingsGoals"`
}

func encodeState(st persistedState) (string, error) {
	if st.Transactions == nil {
		st.Transactions = []core.Transaction{}
	}
	if st.Budgets == nil {
		st.Budgets = []core.BudgetLimit{}
	}
	if st.SavingsGoals == nil {
		st.SavingsGoals = []core.SavingsGoal{}
	}
	data, err := json.Marshal(st)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// decodeState parses a persisted blob, degrading field-by-field: each of the
// three arrays that is missing or undecodable falls back to its own seed
// default rather than failing the whole load. An unparseable blob yields the
// full seed state. decodeState never returns an error.
func decodeState(blob string) persistedState {
	var raw struct {
		Transactions json.RawMessage `json:"transactions"`
		Budgets      json.RawMessage `json:"budgets"`
		SavingsGoals json.RawMessage `json:"savingsGoals"`
	}
	if err := json.Unmarshal([]byte(blob), &raw); err != nil {
		return seedState()
	}

	st := persistedState{
		Transactions: seedTransactions(),
		Budgets:      seedBudgets(),
		SavingsGoals: seedGoals(),
	}
	if raw.Transactions != nil {
		var txs []core.Transaction
		if err := json.Unmarshal(raw.Transactions, &txs); err == nil && txs != nil {
			st.Transactions = txs
		}
	}
	if raw.Budgets != nil {
		var budgets []core.BudgetLimit
		if err := json.Unmarshal(raw.Budgets, &budgets); err == nil && budgets != nil {
			st.Budgets = budgets
		}
	}
	if raw.SavingsGoals != nil {
		var goals []core.SavingsGoal
		if err := json.Unmarshal(raw.SavingsGoals, &goals); err == nil && goals != nil {
			st.SavingsGoals = goals
		}
	}
	return st
}

// seedState is the first-run demonstration data set.
func seedState() persistedState {
	return persistedState{
		Transactions: seedTransactions(),
		Budgets:      seedBudgets(),
		SavingsGoals: seedGoals(),
	}
}

func seedTransactions() []core.Transaction {
	return []core.Transaction{
		{
			ID:          "1",
			Amount:      core.Money{Cents: 4_500_000},
			Category:    "Lønn",
			Description: "Månedslønn",
			Date:        core.ParseDate("2025-01-01"),
			Type:        core.Income,
		},
		{
			ID:          "2",
			Amount:      core.Money{Cents: 850_000},
			Category:    "Mat",
			Description: "Dagligvarer",
			Date:        core.ParseDate("2025-01-02"),
			Type:        core.Expense,
		},
	}
}

func seedBudgets() []core.BudgetLimit {
	return []core.BudgetLimit{
		{Category: "Mat", Limit: core.Money{Cents: 1_000_000}},
		{Category: "Bolig", Limit: core.Money{Cents: 1_200_000}},
	}
}

func seedGoals() []core.SavingsGoal {
	return []core.SavingsGoal{}
}
