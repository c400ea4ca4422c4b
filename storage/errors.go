package storage

import "errors"

var (
	// ErrNotFound is returned when a key has no value at the requested root.
	// Note: badger has its own badger.ErrKeyNotFound; storage implementations
	// convert it so callers only ever match against storage.ErrNotFound.
	ErrNotFound = errors.New("key not found")

	// ErrRootNotFound is returned when checking out a root that was never
	// committed to the store.
	ErrRootNotFound = errors.New("state root not found")
)
