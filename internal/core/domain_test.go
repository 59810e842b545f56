package core

import (
	"encoding/json"
	"testing"
)

func TestParseDate(t *testing.T) {
	d := ParseDate("2025-01-02")
	if !d.IsParsed() || d.Year() != 2025 || d.Month() != 1 {
		t.Fatalf("unexpected date: %+v", d)
	}

	// Unparseable input stays opaque but round-trips
	d = ParseDate("sometime in January")
	if d.IsParsed() {
		t.Fatalf("expected unparsed date")
	}
	if d.Raw != "sometime in January" {
		t.Fatalf("raw text not preserved: %q", d.Raw)
	}
}

func TestDateJSONRoundTrip(t *testing.T) {
	for _, s := range []string{"2025-01-02", "not-a-date"} {
		b, err := json.Marshal(ParseDate(s))
		if err != nil {
			t.Fatalf("marshal %q: %v", s, err)
		}
		var d Date
		if err := json.Unmarshal(b, &d); err != nil {
			t.Fatalf("unmarshal %q: %v", b, err)
		}
		if d.Raw != s {
			t.Fatalf("round trip changed %q to %q", s, d.Raw)
		}
	}
}

func TestMoneyValidate(t *testing.T) {
	if err := (Money{Cents: 1}).Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := (Money{Cents: 0}).Validate(); err == nil {
		t.Fatalf("expected error for zero")
	}
	if err := (Money{Cents: -100}).Validate(); err == nil {
		t.Fatalf("expected error for negative")
	}
}

func TestTransactionValidate(t *testing.T) {
	good := Transaction{
		Amount:      Money{Cents: 850000},
		Category:    "Mat",
		Description: "Dagligvarer",
		Date:        NewDate(2025, 1, 2),
		Type:        Expense,
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []Transaction{
		{Amount: Money{Cents: 0}, Category: "c", Description: "d", Type: Expense},
		{Amount: Money{Cents: 1}, Category: "", Description: "d", Type: Expense},
		{Amount: Money{Cents: 1}, Category: "c", Description: " ", Type: Expense},
		{Amount: Money{Cents: 1}, Category: "c", Description: "d", Type: "transfer"},
	}
	for i, tx := range bads {
		if err := tx.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestSavingsGoalValidate(t *testing.T) {
	good := SavingsGoal{Name: "Ferie", TargetAmount: Money{Cents: 1}, Deadline: NewDate(2025, 12, 31)}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := (SavingsGoal{Name: "", TargetAmount: Money{Cents: 1}}).Validate(); err == nil {
		t.Fatalf("expected error for empty name")
	}
	if err := (SavingsGoal{Name: "x", TargetAmount: Money{Cents: 0}}).Validate(); err == nil {
		t.Fatalf("expected error for zero target")
	}
}
