// Package core holds the finance domain model and the aggregation engine.
//
// Amounts are carried as integer øre to keep arithmetic exact; parsing and
// formatting to decimal kroner happens only at the boundaries.
package core

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// ParseDecimalToCents converts a positive decimal string to øre with half-up
// rounding on the third decimal place. Accepts both dot (12.34) and comma
// (12,34) separators. Returns an error for invalid formats, signed values,
// or zero amounts.
func ParseDecimalToCents(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return 0, ErrInvalidAmount
	}
	cents, err := decimalToCents(s)
	if err != nil {
		return 0, err
	}
	if cents <= 0 {
		return 0, ErrInvalidAmount
	}
	return cents, nil
}

// ParseSignedDecimalToCents is the signed variant used by CSV ingestion,
// where the sign classifies the row rather than invalidating it.
func ParseSignedDecimalToCents(s string) (int64, error) {
	s = strings.TrimSpace(s)
	neg := false
	switch {
	case strings.HasPrefix(s, "-"):
		neg = true
		s = s[1:]
	case strings.HasPrefix(s, "+"):
		s = s[1:]
	}
	cents, err := decimalToCents(s)
	if err != nil {
		return 0, err
	}
	if neg {
		cents = -cents
	}
	return cents, nil
}

func decimalToCents(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	// Normalize decimal comma to dot
	s = strings.ReplaceAll(s, ",", ".")
	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return 0, ErrInvalidAmount
	}
	intPart := parts[0]
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
	}
	if intPart == "" {
		intPart = "0"
	}
	if intPart == "0" && fracPart == "" && len(parts) == 2 {
		return 0, ErrInvalidAmount
	}
	for _, r := range intPart {
		if !unicode.IsDigit(r) {
			return 0, ErrInvalidAmount
		}
	}
	for _, r := range fracPart {
		if !unicode.IsDigit(r) {
			return 0, ErrInvalidAmount
		}
	}
	iv, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	// Prevent overflow when multiplying by 100
	const maxSafeInt64 = (1<<63 - 1) / 100
	if iv > maxSafeInt64 {
		return 0, ErrInvalidAmount
	}
	// Take the first two fractional digits; half-up rounding on the third
	var fracCents int64
	if len(fracPart) > 0 {
		fracCents = int64(fracPart[0]-'0') * 10
		if len(fracPart) > 1 {
			fracCents += int64(fracPart[1] - '0')
			if len(fracPart) > 2 && fracPart[2] >= '5' {
				fracCents++
			}
		}
	}
	return iv*100 + fracCents, nil
}

// Kroner returns the kroner value as a float64 for display purposes.
// Use øre for calculations to avoid floating-point precision issues.
func (m Money) Kroner() float64 {
	return float64(m.Cents) / 100.0
}

// FormatKroner renders øre as a kroner string (e.g. "8500,00 kr").
func FormatKroner(cents int64) string {
	neg := cents < 0
	if neg {
		cents = -cents
	}
	s := strconv.FormatInt(cents/100, 10) + "," + fmt.Sprintf("%02d", cents%100)
	if neg {
		return "-" + s + " kr"
	}
	return s + " kr"
}

// MarshalJSON writes the amount as a decimal kroner number so the persisted
// record keeps the original shape: whole-krone amounts serialize without a
// fraction ("amount": 8500).
func (m Money) MarshalJSON() ([]byte, error) {
	cents := m.Cents
	neg := cents < 0
	if neg {
		cents = -cents
	}
	var s string
	if cents%100 == 0 {
		s = strconv.FormatInt(cents/100, 10)
	} else {
		s = fmt.Sprintf("%d.%02d", cents/100, cents%100)
	}
	if neg {
		s = "-" + s
	}
	return []byte(s), nil
}

func (m *Money) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	cents, err := ParseSignedDecimalToCents(s)
	if err != nil {
		return fmt.Errorf("parse money %q: %w", s, err)
	}
	m.Cents = cents
	return nil
}
