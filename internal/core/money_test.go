package core

import (
	"encoding/json"
	"testing"
)

func TestParseDecimalToCents(t *testing.T) {
	cases := []struct {
		in   string
		want int64
		ok   bool
	}{
		{"12.34", 1234, true},
		{"12,34", 1234, true},
		{"12.344", 1234, true}, // third decimal below 5 truncates
		{"12.345", 1235, true}, // half-up on the third decimal
		{"12.346", 1235, true},
		{"8500", 850000, true},
		{"0", 0, false},
		{"-5", 0, false},
		{"+5", 0, false},
		{"abc", 0, false},
		{"", 0, false},
		{"1.2.3", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseDecimalToCents(tc.in)
		if tc.ok && (err != nil || got != tc.want) {
			t.Fatalf("ParseDecimalToCents(%q) = %d, %v; want %d", tc.in, got, err, tc.want)
		}
		if !tc.ok && err == nil {
			t.Fatalf("ParseDecimalToCents(%q) expected error", tc.in)
		}
	}
}

func TestParseSignedDecimalToCents(t *testing.T) {
	cases := []struct {
		in   string
		want int64
		ok   bool
	}{
		{"-500", -50000, true},
		{"500", 50000, true},
		{"+2,50", 250, true},
		{"0", 0, true},
		{"--1", 0, false},
		{"x", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseSignedDecimalToCents(tc.in)
		if tc.ok && (err != nil || got != tc.want) {
			t.Fatalf("ParseSignedDecimalToCents(%q) = %d, %v; want %d", tc.in, got, err, tc.want)
		}
		if !tc.ok && err == nil {
			t.Fatalf("ParseSignedDecimalToCents(%q) expected error", tc.in)
		}
	}
}

func TestMoneyJSON(t *testing.T) {
	// Whole kroner serialize without a fraction, matching the stored shape
	b, err := json.Marshal(Money{Cents: 850000})
	if err != nil || string(b) != "8500" {
		t.Fatalf("marshal = %s, %v; want 8500", b, err)
	}
	b, _ = json.Marshal(Money{Cents: 850050})
	if string(b) != "8500.50" {
		t.Fatalf("marshal = %s; want 8500.50", b)
	}

	var m Money
	if err := json.Unmarshal([]byte("8500"), &m); err != nil || m.Cents != 850000 {
		t.Fatalf("unmarshal = %+v, %v", m, err)
	}
	if err := json.Unmarshal([]byte("8500.5"), &m); err != nil || m.Cents != 850050 {
		t.Fatalf("unmarshal = %+v, %v", m, err)
	}
	if err := json.Unmarshal([]byte(`"nope"`), &m); err == nil {
		t.Fatalf("expected error for non-numeric money")
	}
}

func TestFormatKroner(t *testing.T) {
	if s := FormatKroner(850050); s != "8500,50 kr" {
		t.Fatalf("got %q", s)
	}
	if s := FormatKroner(-1200); s != "-12,00 kr" {
		t.Fatalf("got %q", s)
	}
}
