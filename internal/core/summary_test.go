package core

import "testing"

func kr(kroner int64) Money { return Money{Cents: kroner * 100} }

func sampleTransactions() []Transaction {
	return []Transaction{
		{ID: "1", Amount: kr(45000), Category: "Lønn", Description: "Månedslønn", Date: ParseDate("2025-01-01"), Type: Income},
		{ID: "2", Amount: kr(8500), Category: "Mat", Description: "Dagligvarer", Date: ParseDate("2025-01-02"), Type: Expense},
		{ID: "3", Amount: kr(12000), Category: "Bolig", Description: "Husleie", Date: ParseDate("2025-01-03"), Type: Expense},
	}
}

func TestTotalsAndNetSavings(t *testing.T) {
	txs := sampleTransactions()
	income := TotalIncome(txs)
	expenses := TotalExpenses(txs)
	if income != kr(45000) {
		t.Fatalf("income = %d", income.Cents)
	}
	if expenses != kr(20500) {
		t.Fatalf("expenses = %d", expenses.Cents)
	}
	if net := income.Cents - expenses.Cents; net != kr(24500).Cents {
		t.Fatalf("net = %d", net)
	}
}

func TestExpensesByCategory(t *testing.T) {
	byCat := ExpensesByCategory(sampleTransactions())
	if len(byCat) != 2 {
		t.Fatalf("unexpected categories: %v", byCat)
	}
	if byCat["Mat"] != kr(8500) || byCat["Bolig"] != kr(12000) {
		t.Fatalf("unexpected sums: %v", byCat)
	}
	// Income categories never appear
	if _, ok := byCat["Lønn"]; ok {
		t.Fatalf("income category leaked into expense breakdown")
	}
	// Values sum to total expenses
	var sum int64
	for _, m := range byCat {
		sum += m.Cents
	}
	if sum != TotalExpenses(sampleTransactions()).Cents {
		t.Fatalf("category sum %d != total expenses", sum)
	}
}

func TestEffectiveBudgets(t *testing.T) {
	limits := []BudgetLimit{
		{Category: "Mat", Limit: kr(10000)},
		{Category: "Bolig", Limit: kr(12000)},
		{Category: "Fritid", Limit: kr(3000)},
	}
	budgets := EffectiveBudgets(limits, ExpensesByCategory(sampleTransactions()))
	if len(budgets) != 3 {
		t.Fatalf("expected 3 budgets, got %d", len(budgets))
	}
	// Same order as the stored collection
	if budgets[0].Category != "Mat" || budgets[0].Spent != kr(8500) || budgets[0].Limit != kr(10000) {
		t.Fatalf("unexpected Mat budget: %+v", budgets[0])
	}
	// No matching expenses means zero spent, not absence
	if budgets[2].Category != "Fritid" || budgets[2].Spent.Cents != 0 {
		t.Fatalf("unexpected Fritid budget: %+v", budgets[2])
	}
}

func TestWarnings(t *testing.T) {
	budgets := []EffectiveBudget{
		{Category: "Mat", Limit: kr(10000), Spent: kr(8500)},   // 85% -> warns
		{Category: "Bolig", Limit: kr(12000), Spent: kr(9600)}, // exactly 80% -> no warning
		{Category: "Fritid", Limit: Money{}, Spent: kr(100)},   // zero limit never warns
	}
	warnings := Warnings(budgets)
	if len(warnings) != 1 || warnings[0].Category != "Mat" {
		t.Fatalf("unexpected warnings: %+v", warnings)
	}
}

func TestProjectEmpty(t *testing.T) {
	p := Project(nil, Money{}, Money{})
	if p.SixMonths.Cents != 0 || p.OneYear.Cents != 0 {
		t.Fatalf("expected zero projection, got %+v", p)
	}
}

func TestProjectSingleMonth(t *testing.T) {
	txs := sampleTransactions()
	income := TotalIncome(txs)
	expenses := TotalExpenses(txs)
	p := Project(txs, income, expenses)
	if p.SixMonths != kr(24500*6) {
		t.Fatalf("sixMonths = %d", p.SixMonths.Cents)
	}
	if p.OneYear != kr(294000) {
		t.Fatalf("oneYear = %d", p.OneYear.Cents)
	}
}

func TestProjectMultiMonthSpan(t *testing.T) {
	txs := []Transaction{
		{Amount: kr(3000), Category: "Lønn", Description: "x", Date: ParseDate("2024-11-15"), Type: Income},
		{Amount: kr(1000), Category: "Mat", Description: "y", Date: ParseDate("2025-01-10"), Type: Expense},
	}
	// Nov, Dec, Jan -> 3 months inclusive
	p := Project(txs, TotalIncome(txs), TotalExpenses(txs))
	if want := kr(2000).Cents * 12 / 3; p.OneYear.Cents != want {
		t.Fatalf("oneYear = %d, want %d", p.OneYear.Cents, want)
	}
	if want := kr(2000).Cents * 6 / 3; p.SixMonths.Cents != want {
		t.Fatalf("sixMonths = %d, want %d", p.SixMonths.Cents, want)
	}
}

func TestProjectKeepsSubMonthlyRemainder(t *testing.T) {
	// 100 øre net over three months: a per-month division would truncate
	// to 33 øre and project 396 instead of 400.
	txs := []Transaction{
		{Amount: Money{Cents: 50}, Category: "Lønn", Description: "x", Date: ParseDate("2024-11-15"), Type: Income},
		{Amount: Money{Cents: 50}, Category: "Lønn", Description: "y", Date: ParseDate("2025-01-10"), Type: Income},
	}
	p := Project(txs, TotalIncome(txs), TotalExpenses(txs))
	if p.OneYear.Cents != 400 {
		t.Fatalf("oneYear = %d, want 400", p.OneYear.Cents)
	}
	if p.SixMonths.Cents != 200 {
		t.Fatalf("sixMonths = %d, want 200", p.SixMonths.Cents)
	}
}

func TestProjectIgnoresUnparsedDates(t *testing.T) {
	txs := []Transaction{
		{Amount: kr(100), Category: "Mat", Description: "x", Date: ParseDate("whenever"), Type: Expense},
	}
	// No parseable dates still floors the span at one month
	p := Project(txs, Money{}, TotalExpenses(txs))
	if p.OneYear != kr(-1200) {
		t.Fatalf("oneYear = %d", p.OneYear.Cents)
	}
}

func TestSummarize(t *testing.T) {
	limits := []BudgetLimit{{Category: "Mat", Limit: kr(10000)}}
	s := Summarize(sampleTransactions(), limits)
	if s.NetSavings != kr(24500) {
		t.Fatalf("net = %d", s.NetSavings.Cents)
	}
	if len(s.ExpensesByCategory) != 2 || s.ExpensesByCategory[0].Category != "Mat" {
		t.Fatalf("unexpected breakdown: %+v", s.ExpensesByCategory)
	}
	if len(s.Warnings) != 1 || s.Warnings[0].Category != "Mat" {
		t.Fatalf("unexpected warnings: %+v", s.Warnings)
	}
	if s.Projection.OneYear != kr(294000) {
		t.Fatalf("projection = %+v", s.Projection)
	}
}
