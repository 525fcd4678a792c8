package repository

import "context"

// KeyValueStore is the persistence collaborator: serialized aggregates stored
// under fixed keys.
type KeyValueStore interface {
	// Load returns the value stored under key; found is false when nothing is stored.
	Load(ctx context.Context, key string) (value string, found bool, err error)
	Save(ctx context.Context, key, value string) error
}
