package amqp

import (
	"encoding/json"
	"time"
)

// LedgerEvent is the lightweight notification published after each ledger
// mutation. It carries only the event kind and entity ID; consumers reload
// the full ledger record from the shared persistence backend.
type LedgerEvent struct {
	Kind       string    `json:"kind"`
	EntityID   string    `json:"entityId"`
	OccurredAt time.Time `json:"occurredAt"`
}

// NewLedgerEvent creates an event stamped with the current time.
func NewLedgerEvent(kind, entityID string) *LedgerEvent {
	return &LedgerEvent{
		Kind:       kind,
		EntityID:   entityID,
		OccurredAt: time.Now(),
	}
}

// ToJSON converts the event to JSON bytes
func (e *LedgerEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// LedgerEventFromJSON creates an event from JSON bytes
func LedgerEventFromJSON(data []byte) (*LedgerEvent, error) {
	var e LedgerEvent
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, err
	}
	return &e, nil
}
