package unittest

import (
	"crypto/rand"
	"fmt"

	"github.com/meridian-chain/meridian-go/model/gstate"
)

// AddrFixture returns a random 32-byte address.
func AddrFixture() [32]byte {
	var addr [32]byte
	_, err := rand.Read(addr[:])
	if err != nil {
		panic(fmt.Sprintf("cannot read random bytes: %v", err))
	}
	return addr
}

// DigestFixture returns a random digest.
func DigestFixture() gstate.Digest {
	return gstate.Digest(AddrFixture())
}

// KeyFixture returns a random hash key.
func KeyFixture() gstate.Key {
	return gstate.HashKey(AddrFixture())
}

// URefKeyFixture returns a random uref key.
func URefKeyFixture() gstate.Key {
	return gstate.URefKey(AddrFixture())
}

// CLValueFixture returns a stored value wrapping random bytes.
func CLValueFixture() gstate.StoredValue {
	payload := AddrFixture()
	return gstate.CLValueStoredValue(gstate.CLValue{Raw: payload[:]})
}

// ContractFixture returns a stored contract with random addresses and one
// named key.
func ContractFixture(version gstate.ProtocolVersion) *gstate.Contract {
	return gstate.NewContract(
		gstate.ContractPackageHash(AddrFixture()),
		gstate.ContractWasmHash(AddrFixture()),
		gstate.NamedKeys{"pointer": URefKeyFixture()},
		gstate.NewEntryPoints(
			gstate.NewEntryPoint("call", nil, gstate.CLTypeUnit, gstate.AccessPublic, gstate.EntryPointTypeContract),
		),
		version,
	)
}
