package amqp

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestExponentialBackoff(t *testing.T) {
	tests := []struct {
		attempt  int
		expected time.Duration
	}{
		{0, 1 * time.Second},
		{1, 2 * time.Second},
		{2, 4 * time.Second},
		{3, 8 * time.Second},
		{4, 16 * time.Second},
		{5, 30 * time.Second},  // capped at 30s
		{10, 30 * time.Second}, // capped at 30s
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("attempt_%d", tt.attempt), func(t *testing.T) {
			result := exponentialBackoff(tt.attempt)
			if result != tt.expected {
				t.Errorf("exponentialBackoff(%d) = %v, want %v", tt.attempt, result, tt.expected)
			}
		})
	}
}

func TestIsConnectionError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: false,
		},
		{
			name:     "connection refused",
			err:      errors.New("connection refused"),
			expected: true,
		},
		{
			name:     "closed connection",
			err:      errors.New("connection closed"),
			expected: true,
		},
		{
			name:     "EOF error",
			err:      errors.New("unexpected EOF"),
			expected: true,
		},
		{
			name:     "broken pipe",
			err:      errors.New("broken pipe"),
			expected: true,
		},
		{
			name:     "closed message channel",
			err:      errors.New("message channel closed"),
			expected: true,
		},
		{
			name:     "other error",
			err:      errors.New("some other error"),
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := isConnectionError(tt.err)
			if result != tt.expected {
				t.Errorf("isConnectionError(%v) = %v, want %v", tt.err, result, tt.expected)
			}
		})
	}
}

func TestNewLedgerEvent(t *testing.T) {
	event := NewLedgerEvent("transaction.added", "1756-3")

	if event.Kind != "transaction.added" {
		t.Errorf("Kind = %v, want transaction.added", event.Kind)
	}
	if event.EntityID != "1756-3" {
		t.Errorf("EntityID = %v, want 1756-3", event.EntityID)
	}
	if event.OccurredAt.IsZero() {
		t.Error("OccurredAt should not be zero")
	}
	if time.Since(event.OccurredAt) > time.Second {
		t.Error("OccurredAt should be recent")
	}
}

func TestLedgerEvent_JSON(t *testing.T) {
	occurredAt := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	event := &LedgerEvent{
		Kind:       "goal.contributed",
		EntityID:   "42-7",
		OccurredAt: occurredAt,
	}

	jsonBytes, err := event.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON() error = %v", err)
	}

	parsed, err := LedgerEventFromJSON(jsonBytes)
	if err != nil {
		t.Fatalf("LedgerEventFromJSON() error = %v", err)
	}

	if parsed.Kind != event.Kind {
		t.Errorf("Parsed Kind = %v, want %v", parsed.Kind, event.Kind)
	}
	if parsed.EntityID != event.EntityID {
		t.Errorf("Parsed EntityID = %v, want %v", parsed.EntityID, event.EntityID)
	}
	if !parsed.OccurredAt.Equal(event.OccurredAt) {
		t.Errorf("Parsed OccurredAt = %v, want %v", parsed.OccurredAt, event.OccurredAt)
	}
}

func TestLedgerEvent_InvalidJSON(t *testing.T) {
	if _, err := LedgerEventFromJSON([]byte(`{"kind": 3}`)); err == nil {
		t.Error("LedgerEventFromJSON() should fail with invalid JSON")
	}
}
