// Package tracking implements the in-memory, mutable overlay an upgrade run
// executes against: reads are buffered to avoid re-fetching, writes are
// buffered so the persistent store stays untouched until one atomic commit,
// and every access is appended to an ordered effect log.
package tracking

import (
	"errors"
	"fmt"

	"github.com/meridian-chain/meridian-go/model/gstate"
	"github.com/meridian-chain/meridian-go/storage"
)

// ErrAlreadyCommitted is returned when Commit is invoked more than once.
var ErrAlreadyCommitted = errors.New("tracking copy already committed")

type cachedRead struct {
	value gstate.StoredValue
	found bool
}

// TrackingCopy is a mutable overlay over one fixed root of the persistent
// store. It is owned exclusively by a single upgrade run: the orchestrator
// passes the same instance down through the override applier and the system
// contract upgrader, so no synchronization is required.
//
// Discarding a tracking copy without calling Commit leaves the store
// byte-identical at the pre-state root.
type TrackingCopy struct {
	state     storage.StateProvider
	reader    storage.StateReader
	preState  gstate.Digest
	readCache map[gstate.Key]cachedRead
	writes    map[gstate.Key]gstate.StoredValue
	effects   []Transform
	committed bool
}

// NewTrackingCopy checks out the pre-state root and wraps it in a fresh
// overlay. It returns storage.ErrRootNotFound for an unknown root.
func NewTrackingCopy(state storage.StateProvider, preState gstate.Digest) (*TrackingCopy, error) {
	reader, err := state.Checkout(preState)
	if err != nil {
		return nil, fmt.Errorf("cannot checkout pre-state %s: %w", preState, err)
	}
	return &TrackingCopy{
		state:     state,
		reader:    reader,
		preState:  preState,
		readCache: make(map[gstate.Key]cachedRead),
		writes:    make(map[gstate.Key]gstate.StoredValue),
	}, nil
}

// PreStateHash returns the root the overlay was created over.
func (tc *TrackingCopy) PreStateHash() gstate.Digest {
	return tc.preState
}

// Read returns the value at key, consulting the write buffer first, then the
// read cache, then the store at the pre-state root. The access is recorded
// in the effect log regardless of hit or miss. Absent keys return found ==
// false with a nil error.
func (tc *TrackingCopy) Read(key gstate.Key) (gstate.StoredValue, bool, error) {
	tc.effects = append(tc.effects, Transform{Kind: TransformRead, Key: key})

	if value, ok := tc.writes[key]; ok {
		return value, true, nil
	}
	if cached, ok := tc.readCache[key]; ok {
		return cached.value, cached.found, nil
	}

	value, err := tc.reader.Read(key)
	if errors.Is(err, storage.ErrNotFound) {
		tc.readCache[key] = cachedRead{}
		return gstate.StoredValue{}, false, nil
	}
	if err != nil {
		return gstate.StoredValue{}, false, fmt.Errorf("cannot read %s: %w", key, err)
	}
	tc.readCache[key] = cachedRead{value: value, found: true}
	return value, true, nil
}

// Write buffers the value for key, replacing any previously buffered value,
// and appends a write record. The store is never touched before Commit.
func (tc *TrackingCopy) Write(key gstate.Key, value gstate.StoredValue) {
	tc.writes[key] = value
	tc.effects = append(tc.effects, Transform{Kind: TransformWrite, Key: key, Value: &value})
}

// Commit atomically applies every buffered write to the persistent store on
// top of the pre-state root and returns the new root. It may be invoked at
// most once; either all buffered writes land or none do.
func (tc *TrackingCopy) Commit() (gstate.Digest, error) {
	if tc.committed {
		return gstate.EmptyDigest, ErrAlreadyCommitted
	}

	keys := make([]gstate.Key, 0, len(tc.writes))
	for key := range tc.writes {
		keys = append(keys, key)
	}
	gstate.SortKeys(keys)

	batch := make([]storage.Write, 0, len(keys))
	for _, key := range keys {
		batch = append(batch, storage.Write{Key: key, Value: tc.writes[key]})
	}

	newRoot, err := tc.state.Commit(tc.preState, batch)
	if err != nil {
		return gstate.EmptyDigest, fmt.Errorf("cannot commit tracking copy: %w", err)
	}
	tc.committed = true
	return newRoot, nil
}

// Finalize materializes the effect log accumulated so far.
func (tc *TrackingCopy) Finalize() ExecutionEffect {
	transforms := make([]Transform, len(tc.effects))
	copy(transforms, tc.effects)
	return ExecutionEffect{Transforms: transforms}
}

// BufferedKeys returns the distinct keys with buffered writes, in canonical
// order. Exposed for logging and tests.
func (tc *TrackingCopy) BufferedKeys() []gstate.Key {
	keys := make([]gstate.Key, 0, len(tc.writes))
	for key := range tc.writes {
		keys = append(keys, key)
	}
	return gstate.SortKeys(keys)
}
