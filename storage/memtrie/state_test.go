package memtrie_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridian-chain/meridian-go/model/gstate"
	"github.com/meridian-chain/meridian-go/storage"
	"github.com/meridian-chain/meridian-go/storage/memtrie"
	"github.com/meridian-chain/meridian-go/utils/unittest"
)

func TestState_EmptyRoot(t *testing.T) {
	state := memtrie.NewState(memtrie.NewInMemNodeStore())

	known, err := state.HasRoot(state.EmptyRoot())
	require.NoError(t, err)
	assert.True(t, known)

	reader, err := state.Checkout(state.EmptyRoot())
	require.NoError(t, err)

	_, err = reader.Read(unittest.KeyFixture())
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestState_UnknownRoot(t *testing.T) {
	state := memtrie.NewState(memtrie.NewInMemNodeStore())

	known, err := state.HasRoot(unittest.DigestFixture())
	require.NoError(t, err)
	assert.False(t, known)

	_, err = state.Checkout(unittest.DigestFixture())
	require.ErrorIs(t, err, storage.ErrRootNotFound)

	_, err = state.Commit(unittest.DigestFixture(), nil)
	require.ErrorIs(t, err, storage.ErrRootNotFound)
}

func TestState_CommitAndRead(t *testing.T) {
	state := memtrie.NewState(memtrie.NewInMemNodeStore())

	writes := make([]storage.Write, 0, 10)
	for i := 0; i < 10; i++ {
		writes = append(writes, storage.Write{
			Key:   unittest.KeyFixture(),
			Value: unittest.CLValueFixture(),
		})
	}

	root, err := state.Commit(state.EmptyRoot(), writes)
	require.NoError(t, err)
	require.NotEqual(t, state.EmptyRoot(), root)

	reader, err := state.Checkout(root)
	require.NoError(t, err)

	for _, w := range writes {
		got, err := reader.Read(w.Key)
		require.NoError(t, err)
		assert.Equal(t, w.Value, got)
	}

	_, err = reader.Read(unittest.KeyFixture())
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestState_EmptyCommitKeepsRoot(t *testing.T) {
	state := memtrie.NewState(memtrie.NewInMemNodeStore())

	root, err := state.Commit(state.EmptyRoot(), nil)
	require.NoError(t, err)
	assert.Equal(t, state.EmptyRoot(), root)
}

func TestState_RootIndependentOfWriteOrder(t *testing.T) {
	writes := make([]storage.Write, 0, 8)
	for i := 0; i < 8; i++ {
		writes = append(writes, storage.Write{
			Key:   unittest.KeyFixture(),
			Value: unittest.CLValueFixture(),
		})
	}
	reversed := make([]storage.Write, len(writes))
	for i, w := range writes {
		reversed[len(writes)-1-i] = w
	}

	first := memtrie.NewState(memtrie.NewInMemNodeStore())
	second := memtrie.NewState(memtrie.NewInMemNodeStore())

	rootA, err := first.Commit(first.EmptyRoot(), writes)
	require.NoError(t, err)
	rootB, err := second.Commit(second.EmptyRoot(), reversed)
	require.NoError(t, err)

	assert.Equal(t, rootA, rootB)
}

func TestState_LaterWriteWins(t *testing.T) {
	state := memtrie.NewState(memtrie.NewInMemNodeStore())

	key := unittest.KeyFixture()
	stale := unittest.CLValueFixture()
	fresh := unittest.CLValueFixture()

	root, err := state.Commit(state.EmptyRoot(), []storage.Write{
		{Key: key, Value: stale},
		{Key: key, Value: fresh},
	})
	require.NoError(t, err)

	reader, err := state.Checkout(root)
	require.NoError(t, err)
	got, err := reader.Read(key)
	require.NoError(t, err)
	assert.Equal(t, fresh, got)
}

func TestState_HistoricalRootsStayReadable(t *testing.T) {
	state := memtrie.NewState(memtrie.NewInMemNodeStore())

	key := unittest.KeyFixture()
	before := unittest.CLValueFixture()
	after := unittest.CLValueFixture()
	extraKey := unittest.KeyFixture()

	rootV1, err := state.Commit(state.EmptyRoot(), []storage.Write{{Key: key, Value: before}})
	require.NoError(t, err)

	rootV2, err := state.Commit(rootV1, []storage.Write{
		{Key: key, Value: after},
		{Key: extraKey, Value: unittest.CLValueFixture()},
	})
	require.NoError(t, err)
	require.NotEqual(t, rootV1, rootV2)

	// the old root still resolves the old value and stays blind to later keys
	readerV1, err := state.Checkout(rootV1)
	require.NoError(t, err)
	got, err := readerV1.Read(key)
	require.NoError(t, err)
	assert.Equal(t, before, got)
	_, err = readerV1.Read(extraKey)
	require.ErrorIs(t, err, storage.ErrNotFound)

	readerV2, err := state.Checkout(rootV2)
	require.NoError(t, err)
	got, err = readerV2.Read(key)
	require.NoError(t, err)
	assert.Equal(t, after, got)
}

func TestState_StoredValueVariantsSurvive(t *testing.T) {
	state := memtrie.NewState(memtrie.NewInMemNodeStore())

	contract := unittest.ContractFixture(gstate.NewProtocolVersion(1, 0, 0))
	pkg := gstate.NewContractPackage()
	pkg.InsertVersion(1, gstate.ContractHash(unittest.AddrFixture()))

	contractKey := unittest.KeyFixture()
	packageKey := unittest.KeyFixture()

	root, err := state.Commit(state.EmptyRoot(), []storage.Write{
		{Key: contractKey, Value: gstate.ContractStoredValue(contract)},
		{Key: packageKey, Value: gstate.ContractPackageStoredValue(pkg)},
	})
	require.NoError(t, err)

	reader, err := state.Checkout(root)
	require.NoError(t, err)

	value, err := reader.Read(contractKey)
	require.NoError(t, err)
	gotContract, ok := value.AsContract()
	require.True(t, ok)
	assert.Equal(t, contract, gotContract)

	value, err = reader.Read(packageKey)
	require.NoError(t, err)
	gotPackage, ok := value.AsContractPackage()
	require.True(t, ok)
	assert.Equal(t, pkg, gotPackage)
}

func TestCachedNodeStore_ServesCommittedNodes(t *testing.T) {
	backend := memtrie.NewInMemNodeStore()
	cached, err := memtrie.NewCachedNodeStore(backend, 16)
	require.NoError(t, err)

	state := memtrie.NewState(cached)
	key := unittest.KeyFixture()
	value := unittest.CLValueFixture()

	root, err := state.Commit(state.EmptyRoot(), []storage.Write{{Key: key, Value: value}})
	require.NoError(t, err)

	reader, err := state.Checkout(root)
	require.NoError(t, err)
	got, err := reader.Read(key)
	require.NoError(t, err)
	assert.Equal(t, value, got)

	_, err = cached.GetNode(unittest.DigestFixture())
	require.ErrorIs(t, err, storage.ErrNotFound)
}
