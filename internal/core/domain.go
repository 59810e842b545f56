package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

type (
	TransactionType string

	// Date is a calendar date without time-of-day semantics. Input that is
	// not ISO YYYY-MM-DD is kept as opaque text and round-trips unchanged,
	// but contributes nothing to month-span computations.
	Date struct {
		Raw string
		t   time.Time
	}

	Money struct {
		Cents int64
	}

	// Transaction is immutable once created; there is no edit or delete
	// operation in the ledger contract.
	Transaction struct {
		ID          string          `json:"id"`
		Amount      Money           `json:"amount"`
		Category    string          `json:"category"`
		Description string          `json:"description"`
		Date        Date            `json:"date"`
		Type        TransactionType `json:"type"`
	}

	// BudgetLimit is the stored half of a budget: the spending ceiling for a
	// category. Spent is never stored; it is always derived from the
	// transaction log so the two cannot drift apart.
	BudgetLimit struct {
		Category string `json:"category"`
		Limit    Money  `json:"limit"`
	}

	SavingsGoal struct {
		ID            string `json:"id"`
		Name          string `json:"name"`
		TargetAmount  Money  `json:"targetAmount"`
		CurrentAmount Money  `json:"currentAmount"`
		Deadline      Date   `json:"deadline"`
		Category      string `json:"category"`
	}
)

var (
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrEmptyCategory    = errors.New("empty category")
	ErrEmptyDescription = errors.New("empty description")
	ErrEmptyName        = errors.New("empty name")
	ErrInvalidType      = errors.New("invalid transaction type")
)

// NewDate builds a parsed Date from year, month, day.
func NewDate(year, month, day int) Date {
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return Date{Raw: t.Format("2006-01-02"), t: t}
}

// ParseDate accepts ISO YYYY-MM-DD. Anything else is retained verbatim as an
// opaque, unparsed date.
func ParseDate(s string) Date {
	s = strings.TrimSpace(s)
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return Date{Raw: s, t: t}
	}
	return Date{Raw: s}
}

// IsParsed reports whether the date carries usable year/month information.
func (d Date) IsParsed() bool {
	return !d.t.IsZero()
}

// Year returns the year, or 0 for unparsed dates.
func (d Date) Year() int {
	if !d.IsParsed() {
		return 0
	}
	return d.t.Year()
}

// Month returns the month 1-12, or 0 for unparsed dates.
func (d Date) Month() int {
	if !d.IsParsed() {
		return 0
	}
	return int(d.t.Month())
}

// Time returns the underlying time, zero for unparsed dates.
func (d Date) Time() time.Time {
	return d.t
}

func (d Date) String() string {
	return d.Raw
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + strings.ReplaceAll(d.Raw, `"`, ``) + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	*d = ParseDate(s)
	return nil
}

func (t TransactionType) Validate() error {
	switch t {
	case Income, Expense:
		return nil
	default:
		return ErrInvalidType
	}
}

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (tx Transaction) Validate() error {
	if err := tx.Amount.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(tx.Category) == "" {
		return ErrEmptyCategory
	}
	if strings.TrimSpace(tx.Description) == "" {
		return ErrEmptyDescription
	}
	return tx.Type.Validate()
}

func (b BudgetLimit) Validate() error {
	if strings.TrimSpace(b.Category) == "" {
		return ErrEmptyCategory
	}
	if b.Limit.Cents < 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (g SavingsGoal) Validate() error {
	if strings.TrimSpace(g.Name) == "" {
		return ErrEmptyName
	}
	if err := g.TargetAmount.Validate(); err != nil {
		return err
	}
	if g.CurrentAmount.Cents < 0 {
		return ErrInvalidAmount
	}
	return nil
}
