package session

import "context"

// Storage is a string key/value store with the semantics of browser local
// storage: reads of absent keys are not errors and removal is unconditional.
type Storage interface {
	GetItem(ctx context.Context, key string) (string, bool, error)
	SetItem(ctx context.Context, key, value string) error
	RemoveItem(ctx context.Context, keys ...string) error
}

// Purger is implemented by storages whose entries must be expired by hand.
type Purger interface {
	PurgeExpired(ctx context.Context) (int64, error)
}
