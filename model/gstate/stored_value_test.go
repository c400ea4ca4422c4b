package gstate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridian-chain/meridian-go/model/gstate"
	"github.com/meridian-chain/meridian-go/utils/unittest"
)

func TestStoredValue_VariantAccess(t *testing.T) {
	contract := unittest.ContractFixture(gstate.NewProtocolVersion(1, 0, 0))
	value := gstate.ContractStoredValue(contract)

	require.Equal(t, gstate.TagContract, value.Tag())

	got, ok := value.AsContract()
	require.True(t, ok)
	assert.Equal(t, contract, got)

	_, ok = value.AsCLValue()
	assert.False(t, ok)
	_, ok = value.AsContractPackage()
	assert.False(t, ok)
}

func TestStoredValue_ContractRoundTrip(t *testing.T) {
	contract := unittest.ContractFixture(gstate.NewProtocolVersion(2, 1, 0))

	encoded, err := gstate.EncodeStoredValue(gstate.ContractStoredValue(contract))
	require.NoError(t, err)

	decoded, err := gstate.DecodeStoredValue(encoded)
	require.NoError(t, err)
	require.Equal(t, gstate.TagContract, decoded.Tag())

	got, ok := decoded.AsContract()
	require.True(t, ok)
	assert.Equal(t, contract, got)
}

func TestStoredValue_ContractPackageRoundTrip(t *testing.T) {
	hash := gstate.ContractHash(unittest.AddrFixture())
	pkg := gstate.NewContractPackage()
	pkg.InsertVersion(1, hash)
	require.NoError(t, pkg.DisableVersion(hash))
	pkg.InsertVersion(2, hash)

	encoded, err := gstate.EncodeStoredValue(gstate.ContractPackageStoredValue(pkg))
	require.NoError(t, err)

	decoded, err := gstate.DecodeStoredValue(encoded)
	require.NoError(t, err)

	got, ok := decoded.AsContractPackage()
	require.True(t, ok)
	assert.Equal(t, pkg, got)
}

func TestStoredValue_DeterministicEncoding(t *testing.T) {
	// roots are hashes over encoded values, so encoding identical values
	// must be byte-identical run to run
	contract := unittest.ContractFixture(gstate.NewProtocolVersion(1, 0, 0))

	first, err := gstate.EncodeStoredValue(gstate.ContractStoredValue(contract))
	require.NoError(t, err)
	second, err := gstate.EncodeStoredValue(gstate.ContractStoredValue(contract))
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestStoredValue_EmptyValueRejected(t *testing.T) {
	_, err := gstate.EncodeStoredValue(gstate.StoredValue{})
	require.Error(t, err)

	_, err = gstate.DecodeStoredValue([]byte{0xff, 0xff})
	require.Error(t, err)
}

func TestCLValue_RoundTrip(t *testing.T) {
	encoded, err := gstate.MarshalCLValue(uint32(100))
	require.NoError(t, err)

	var decoded uint32
	require.NoError(t, gstate.UnmarshalCLValue(encoded, &decoded))
	assert.Equal(t, uint32(100), decoded)
}
