// Package kvstore defines the persistence boundary of the ledger: an opaque
// string key-value store. No schema is enforced here; the ledger owns all
// (de)serialization.
package kvstore

import "context"

// Store is the port implemented by every persistence backend.
type Store interface {
	// Load returns the value for key, with ok=false when the key is absent.
	Load(ctx context.Context, key string) (value string, ok bool, err error)

	// Save writes the value under key, replacing any previous value.
	Save(ctx context.Context, key, value string) error

	// Remove deletes the key entirely. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error
}
