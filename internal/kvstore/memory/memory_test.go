package memory

import (
	"context"
	"testing"
)

func TestStoreRoundTrip(t *testing.T) {
	s := New()
	ctx := context.Background()

	if _, ok, err := s.Load(ctx, "financeData"); ok || err != nil {
		t.Fatalf("expected absent key, got ok=%v err=%v", ok, err)
	}

	if err := s.Save(ctx, "financeData", `{"a":1}`); err != nil {
		t.Fatalf("save: %v", err)
	}
	v, ok, err := s.Load(ctx, "financeData")
	if err != nil || !ok || v != `{"a":1}` {
		t.Fatalf("load = %q, %v, %v", v, ok, err)
	}

	if err := s.Remove(ctx, "financeData"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, ok, _ := s.Load(ctx, "financeData"); ok {
		t.Fatalf("key survived remove")
	}
	// Removing an absent key is not an error
	if err := s.Remove(ctx, "financeData"); err != nil {
		t.Fatalf("remove absent: %v", err)
	}
}
