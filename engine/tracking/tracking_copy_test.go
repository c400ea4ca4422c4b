package tracking_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridian-chain/meridian-go/engine/tracking"
	"github.com/meridian-chain/meridian-go/model/gstate"
	"github.com/meridian-chain/meridian-go/storage"
	"github.com/meridian-chain/meridian-go/storage/memtrie"
	"github.com/meridian-chain/meridian-go/utils/unittest"
)

// countingStore wraps a node store and counts reads against the backend.
type countingStore struct {
	memtrie.NodeStore
	gets int
}

func (c *countingStore) GetNode(hash gstate.Digest) ([]byte, error) {
	c.gets++
	return c.NodeStore.GetNode(hash)
}

func seededState(t *testing.T, store memtrie.NodeStore, writes ...storage.Write) (*memtrie.State, gstate.Digest) {
	state := memtrie.NewState(store)
	root, err := state.Commit(state.EmptyRoot(), writes)
	require.NoError(t, err)
	return state, root
}

func TestTrackingCopy_UnknownRoot(t *testing.T) {
	state := memtrie.NewState(memtrie.NewInMemNodeStore())

	_, err := tracking.NewTrackingCopy(state, unittest.DigestFixture())
	require.ErrorIs(t, err, storage.ErrRootNotFound)
}

func TestTrackingCopy_ReadThrough(t *testing.T) {
	key := unittest.KeyFixture()
	value := unittest.CLValueFixture()
	state, root := seededState(t, memtrie.NewInMemNodeStore(), storage.Write{Key: key, Value: value})

	tc, err := tracking.NewTrackingCopy(state, root)
	require.NoError(t, err)
	assert.Equal(t, root, tc.PreStateHash())

	got, found, err := tc.Read(key)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, value, got)

	_, found, err = tc.Read(unittest.KeyFixture())
	require.NoError(t, err)
	assert.False(t, found)
}

func TestTrackingCopy_ReadsAreCached(t *testing.T) {
	key := unittest.KeyFixture()
	value := unittest.CLValueFixture()
	counting := &countingStore{NodeStore: memtrie.NewInMemNodeStore()}
	state, root := seededState(t, counting, storage.Write{Key: key, Value: value})

	tc, err := tracking.NewTrackingCopy(state, root)
	require.NoError(t, err)

	_, _, err = tc.Read(key)
	require.NoError(t, err)
	before := counting.gets

	// repeated reads of the same key are served from the overlay
	for i := 0; i < 5; i++ {
		got, found, err := tc.Read(key)
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, value, got)
	}
	assert.Equal(t, before, counting.gets)

	// misses are cached too
	missing := unittest.KeyFixture()
	_, _, err = tc.Read(missing)
	require.NoError(t, err)
	before = counting.gets
	_, found, err := tc.Read(missing)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, before, counting.gets)
}

func TestTrackingCopy_WriteBuffersAndShadows(t *testing.T) {
	key := unittest.KeyFixture()
	stale := unittest.CLValueFixture()
	fresh := unittest.CLValueFixture()
	state, root := seededState(t, memtrie.NewInMemNodeStore(), storage.Write{Key: key, Value: stale})

	tc, err := tracking.NewTrackingCopy(state, root)
	require.NoError(t, err)

	tc.Write(key, fresh)

	// reads through the overlay observe the buffered write
	got, found, err := tc.Read(key)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, fresh, got)

	// the store at the pre-state root is untouched
	reader, err := state.Checkout(root)
	require.NoError(t, err)
	persisted, err := reader.Read(key)
	require.NoError(t, err)
	assert.Equal(t, stale, persisted)
}

func TestTrackingCopy_EffectLogOrder(t *testing.T) {
	state := memtrie.NewState(memtrie.NewInMemNodeStore())
	tc, err := tracking.NewTrackingCopy(state, state.EmptyRoot())
	require.NoError(t, err)

	keyA := unittest.KeyFixture()
	keyB := unittest.KeyFixture()
	value := unittest.CLValueFixture()

	_, _, err = tc.Read(keyA)
	require.NoError(t, err)
	tc.Write(keyA, value)
	tc.Write(keyB, value)
	_, _, err = tc.Read(keyB)
	require.NoError(t, err)

	effect := tc.Finalize()
	require.Len(t, effect.Transforms, 4)
	assert.Equal(t, tracking.TransformRead, effect.Transforms[0].Kind)
	assert.Equal(t, keyA, effect.Transforms[0].Key)
	assert.Equal(t, tracking.TransformWrite, effect.Transforms[1].Kind)
	assert.Equal(t, keyA, effect.Transforms[1].Key)
	assert.Equal(t, tracking.TransformWrite, effect.Transforms[2].Kind)
	assert.Equal(t, keyB, effect.Transforms[2].Key)
	assert.Equal(t, tracking.TransformRead, effect.Transforms[3].Kind)
	assert.Equal(t, keyB, effect.Transforms[3].Key)

	assert.Equal(t, []gstate.Key{keyA, keyB}, effect.Reads())
	assert.Equal(t, []gstate.Key{keyA, keyB}, effect.Writes())

	reads, writes := effect.CountFor(keyA)
	assert.Equal(t, 1, reads)
	assert.Equal(t, 1, writes)
}

func TestExecutionEffect_WriteSetDeduplicates(t *testing.T) {
	state := memtrie.NewState(memtrie.NewInMemNodeStore())
	tc, err := tracking.NewTrackingCopy(state, state.EmptyRoot())
	require.NoError(t, err)

	keyA := unittest.KeyFixture()
	keyB := unittest.KeyFixture()
	tc.Write(keyA, unittest.CLValueFixture())
	tc.Write(keyB, unittest.CLValueFixture())
	tc.Write(keyA, unittest.CLValueFixture())

	effect := tc.Finalize()

	// the log keeps every write event, the write set counts each key once
	assert.Equal(t, []gstate.Key{keyA, keyB, keyA}, effect.Writes())
	assert.Equal(t, []gstate.Key{keyA, keyB}, effect.WriteSet())
}

func TestTrackingCopy_Commit(t *testing.T) {
	state := memtrie.NewState(memtrie.NewInMemNodeStore())
	tc, err := tracking.NewTrackingCopy(state, state.EmptyRoot())
	require.NoError(t, err)

	key := unittest.KeyFixture()
	value := unittest.CLValueFixture()
	tc.Write(key, value)

	newRoot, err := tc.Commit()
	require.NoError(t, err)
	require.NotEqual(t, state.EmptyRoot(), newRoot)

	reader, err := state.Checkout(newRoot)
	require.NoError(t, err)
	got, err := reader.Read(key)
	require.NoError(t, err)
	assert.Equal(t, value, got)

	_, err = tc.Commit()
	require.ErrorIs(t, err, tracking.ErrAlreadyCommitted)
}

func TestTrackingCopy_DiscardLeavesStoreUntouched(t *testing.T) {
	store := memtrie.NewInMemNodeStore()
	key := unittest.KeyFixture()
	value := unittest.CLValueFixture()
	state, root := seededState(t, store, storage.Write{Key: key, Value: value})
	nodesBefore := store.Len()

	tc, err := tracking.NewTrackingCopy(state, root)
	require.NoError(t, err)
	tc.Write(unittest.KeyFixture(), unittest.CLValueFixture())
	tc.Write(key, unittest.CLValueFixture())
	// tc goes out of scope without Commit

	assert.Equal(t, nodesBefore, store.Len())
	reader, err := state.Checkout(root)
	require.NoError(t, err)
	got, err := reader.Read(key)
	require.NoError(t, err)
	assert.Equal(t, value, got)
}

func TestTrackingCopy_BufferedKeysSorted(t *testing.T) {
	state := memtrie.NewState(memtrie.NewInMemNodeStore())
	tc, err := tracking.NewTrackingCopy(state, state.EmptyRoot())
	require.NoError(t, err)

	value := unittest.CLValueFixture()
	for i := 0; i < 6; i++ {
		tc.Write(unittest.KeyFixture(), value)
	}
	tc.Write(unittest.URefKeyFixture(), value)

	keys := tc.BufferedKeys()
	require.Len(t, keys, 7)
	for i := 1; i < len(keys); i++ {
		assert.True(t, keys[i-1].Compare(keys[i]) < 0)
	}
}
