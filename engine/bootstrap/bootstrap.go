// Package bootstrap establishes the minimal chain state the upgrade engine
// operates on: the four system contracts with their version registries, the
// registry of contract names to addresses, the on-chain protocol version
// record, and the initial economic parameters.
//
// It is a deliberately small slice of genesis: no accounts, balances or wasm
// blobs are installed.
package bootstrap

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/meridian-chain/meridian-go/engine/errors"
	"github.com/meridian-chain/meridian-go/model/gstate"
	"github.com/meridian-chain/meridian-go/storage"
	"github.com/meridian-chain/meridian-go/system"
)

// Default economic parameters installed at genesis.
const (
	DefaultValidatorSlots          = uint32(100)
	DefaultAuctionDelay            = uint64(1)
	DefaultLockedFundsPeriodMillis = uint64(90 * 24 * 60 * 60 * 1000)
	DefaultUnbondingDelay          = uint64(7)
)

// DefaultRoundSeigniorageRate is the genesis per-round inflation rate.
var DefaultRoundSeigniorageRate = gstate.NewRatio(7, 175070816)

// Commit installs the system contracts into an empty state and returns the
// genesis root together with the registry of contract addresses.
func Commit(
	state storage.StateProvider,
	log zerolog.Logger,
	version gstate.ProtocolVersion,
) (gstate.Digest, system.Registry, error) {

	registry := make(system.Registry, len(system.ContractNames()))
	var writes []storage.Write

	for _, name := range system.ContractNames() {
		contractWrites, contractHash, err := systemContractWrites(name, version)
		if err != nil {
			return gstate.EmptyDigest, nil, err
		}
		writes = append(writes, contractWrites...)
		registry[name] = contractHash
	}

	registryValue, err := gstate.MarshalCLValue(registry)
	if err != nil {
		return gstate.EmptyDigest, nil, errors.NewFailedToCreateSystemRegistryError(
			"cannot encode registry: %v", err)
	}
	writes = append(writes, storage.Write{
		Key:   system.RegistryKey(),
		Value: gstate.CLValueStoredValue(registryValue),
	})

	versionValue, err := gstate.MarshalCLValue(version)
	if err != nil {
		return gstate.EmptyDigest, nil, errors.NewSerializationError(err)
	}
	writes = append(writes, storage.Write{
		Key:   system.ProtocolVersionKey(),
		Value: gstate.CLValueStoredValue(versionValue),
	})

	root, err := state.Commit(state.EmptyRoot(), writes)
	if err != nil {
		return gstate.EmptyDigest, nil, fmt.Errorf("cannot commit genesis state: %w", err)
	}

	log.Info().
		Str("post_state_hash", root.String()).
		Str("protocol_version", version.String()).
		Msg("system contracts bootstrapped")
	return root, registry, nil
}

// systemContractWrites produces the writes installing one system contract:
// its contract value, its package with the version slot enabled, and the
// initial values behind its economic named keys.
func systemContractWrites(
	name string,
	version gstate.ProtocolVersion,
) ([]storage.Write, gstate.ContractHash, error) {

	contractHash := gstate.ContractHash(deriveAddr(name, "contract"))
	packageHash := gstate.ContractPackageHash(deriveAddr(name, "package"))
	wasmHash := gstate.ContractWasmHash(deriveAddr(name, "wasm"))

	entryPoints, ok := system.EntryPointsFor(name)
	if !ok {
		return nil, gstate.ContractHash{}, fmt.Errorf("unknown system contract %q", name)
	}

	namedKeys := make(gstate.NamedKeys)
	var writes []storage.Write
	for namedKey, initial := range economicDefaults(name) {
		target := gstate.URefKey(deriveAddr(name, namedKey))
		namedKeys[namedKey] = target
		value, err := gstate.MarshalCLValue(initial)
		if err != nil {
			return nil, gstate.ContractHash{}, errors.NewSerializationError(err)
		}
		writes = append(writes, storage.Write{
			Key:   target,
			Value: gstate.CLValueStoredValue(value),
		})
	}

	contract := gstate.NewContract(packageHash, wasmHash, namedKeys, entryPoints, version)
	writes = append(writes, storage.Write{
		Key:   contractHash.Key(),
		Value: gstate.ContractStoredValue(contract),
	})

	contractPackage := gstate.NewContractPackage()
	contractPackage.InsertVersion(version.Major, contractHash)
	writes = append(writes, storage.Write{
		Key:   packageHash.Key(),
		Value: gstate.ContractPackageStoredValue(contractPackage),
	})

	return writes, contractHash, nil
}

// economicDefaults returns the named keys a system contract exposes economic
// parameters through, with their genesis values.
func economicDefaults(name string) map[string]interface{} {
	switch name {
	case system.Auction:
		return map[string]interface{}{
			system.NamedKeyValidatorSlots:    DefaultValidatorSlots,
			system.NamedKeyAuctionDelay:      DefaultAuctionDelay,
			system.NamedKeyLockedFundsPeriod: DefaultLockedFundsPeriodMillis,
			system.NamedKeyUnbondingDelay:    DefaultUnbondingDelay,
		}
	case system.Mint:
		return map[string]interface{}{
			system.NamedKeyRoundSeigniorageRate: DefaultRoundSeigniorageRate,
		}
	default:
		return nil
	}
}

// deriveAddr derives a contract's permanent addresses from its logical
// identity. Addresses are stable across networks and upgrades.
func deriveAddr(name, kind string) [32]byte {
	return gstate.HashBytes([]byte("meridian-system-" + name + "-" + kind))
}
