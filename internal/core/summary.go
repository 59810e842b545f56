package core

// EffectiveBudget pairs a stored limit with the spent figure derived from
// the transaction log.
type EffectiveBudget struct {
	Category string `json:"category"`
	Limit    Money  `json:"limit"`
	Spent    Money  `json:"spent"`
}

// Projection is a linear extrapolation of savings at the historical average
// monthly rate. It is not a forecast model.
type Projection struct {
	SixMonths Money `json:"sixMonths"`
	OneYear   Money `json:"oneYear"`
}

// CategoryAmount represents an amount aggregated by category name.
type CategoryAmount struct {
	Category string `json:"category"`
	Amount   Money  `json:"amount"`
}

// Summary bundles every derived figure the dashboard reads. All fields are
// recomputed from the raw collections on demand; nothing here is stored.
type Summary struct {
	TotalIncome        Money             `json:"totalIncome"`
	TotalExpenses      Money             `json:"totalExpenses"`
	NetSavings         Money             `json:"netSavings"`
	ExpensesByCategory []CategoryAmount  `json:"expensesByCategory"`
	Budgets            []EffectiveBudget `json:"budgets"`
	Warnings           []EffectiveBudget `json:"warnings"`
	Projection         Projection        `json:"projection"`
}

// TotalIncome sums the amounts of all income transactions.
func TotalIncome(transactions []Transaction) Money {
	var sum int64
	for _, tx := range transactions {
		if tx.Type == Income {
			sum += tx.Amount.Cents
		}
	}
	return Money{Cents: sum}
}

// TotalExpenses sums the amounts of all expense transactions.
func TotalExpenses(transactions []Transaction) Money {
	var sum int64
	for _, tx := range transactions {
		if tx.Type == Expense {
			sum += tx.Amount.Cents
		}
	}
	return Money{Cents: sum}
}

// ExpensesByCategory maps each category to its summed expense amount.
// Categories without any expense transaction are absent, not zero-valued.
func ExpensesByCategory(transactions []Transaction) map[string]Money {
	out := make(map[string]Money)
	for _, tx := range transactions {
		if tx.Type != Expense {
			continue
		}
		m := out[tx.Category]
		m.Cents += tx.Amount.Cents
		out[tx.Category] = m
	}
	return out
}

// EffectiveBudgets derives spent figures for every stored limit, preserving
// the order of the budget collection. Spent is always the derived figure;
// it is never independently settable.
func EffectiveBudgets(limits []BudgetLimit, byCategory map[string]Money) []EffectiveBudget {
	out := make([]EffectiveBudget, 0, len(limits))
	for _, b := range limits {
		out = append(out, EffectiveBudget{
			Category: b.Category,
			Limit:    b.Limit,
			Spent:    byCategory[b.Category],
		})
	}
	return out
}

// Warnings returns every budget where more than 80% of the limit is spent.
// A zero limit never warns.
func Warnings(budgets []EffectiveBudget) []EffectiveBudget {
	var out []EffectiveBudget
	for _, b := range budgets {
		if b.Limit.Cents == 0 {
			continue
		}
		// spent/limit > 0.8, kept in integer arithmetic
		if b.Spent.Cents*10 > b.Limit.Cents*8 {
			out = append(out, b)
		}
	}
	return out
}

// Project extrapolates savings over six and twelve months from the average
// monthly rate across the inclusive month span of the transaction log.
// The max(1, span) floor guards single-month logs and division by zero.
func Project(transactions []Transaction, totalIncome, totalExpenses Money) Projection {
	if len(transactions) == 0 {
		return Projection{}
	}
	months := int64(monthsSpanned(transactions))
	net := totalIncome.Cents - totalExpenses.Cents
	// Multiply before dividing so the per-month remainder is not dropped
	// six- and twelve-fold.
	return Projection{
		SixMonths: Money{Cents: net * 6 / months},
		OneYear:   Money{Cents: net * 12 / months},
	}
}

func monthsSpanned(transactions []Transaction) int {
	var earliest, latest Date
	for _, tx := range transactions {
		if !tx.Date.IsParsed() {
			continue
		}
		if !earliest.IsParsed() || tx.Date.Time().Before(earliest.Time()) {
			earliest = tx.Date
		}
		if !latest.IsParsed() || tx.Date.Time().After(latest.Time()) {
			latest = tx.Date
		}
	}
	span := (latest.Year()-earliest.Year())*12 + (latest.Month() - earliest.Month()) + 1
	if span < 1 {
		return 1
	}
	return span
}

// Summarize computes the full derived view in one pass-friendly call.
func Summarize(transactions []Transaction, limits []BudgetLimit) Summary {
	income := TotalIncome(transactions)
	expenses := TotalExpenses(transactions)
	byCategory := ExpensesByCategory(transactions)

	// First-seen order keeps the breakdown stable across recomputes.
	categories := make([]CategoryAmount, 0, len(byCategory))
	seen := make(map[string]bool, len(byCategory))
	for _, tx := range transactions {
		if tx.Type != Expense || seen[tx.Category] {
			continue
		}
		seen[tx.Category] = true
		categories = append(categories, CategoryAmount{Category: tx.Category, Amount: byCategory[tx.Category]})
	}
	budgets := EffectiveBudgets(limits, byCategory)

	return Summary{
		TotalIncome:        income,
		TotalExpenses:      expenses,
		NetSavings:         Money{Cents: income.Cents - expenses.Cents},
		ExpensesByCategory: categories,
		Budgets:            budgets,
		Warnings:           Warnings(budgets),
		Projection:         Project(transactions, income, expenses),
	}
}
