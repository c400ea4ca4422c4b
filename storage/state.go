package storage

import (
	"github.com/meridian-chain/meridian-go/model/gstate"
)

// Write is one key/value pair of a batched commit.
type Write struct {
	Key   gstate.Key
	Value gstate.StoredValue
}

// StateReader provides point reads against one fixed state root. Readers of
// a published root always see a consistent snapshot: an in-progress commit is
// invisible until it publishes a new root.
type StateReader interface {
	// Read returns the stored value at key, or ErrNotFound if the key has no
	// value at the reader's root.
	Read(key gstate.Key) (gstate.StoredValue, error)
}

// StateProvider is the persistent, content-addressed global state store. It
// supports point reads at a given root and atomic batched writes producing a
// new root. Committing never mutates any previously published root.
type StateProvider interface {
	// EmptyRoot returns the root of the empty state.
	EmptyRoot() gstate.Digest

	// HasRoot reports whether root identifies a committed (or empty) state.
	HasRoot(root gstate.Digest) (bool, error)

	// Checkout returns a reader pinned to the given root.
	// It returns ErrRootNotFound for an unknown root.
	Checkout(root gstate.Digest) (StateReader, error)

	// Commit atomically applies the writes on top of root and returns the
	// new root. Either every write lands or, on error, none do and root
	// remains fully readable.
	Commit(root gstate.Digest, writes []Write) (gstate.Digest, error)
}
