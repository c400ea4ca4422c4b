package engine

import (
	"fmt"

	"github.com/meridian-chain/meridian-go/engine/errors"
	"github.com/meridian-chain/meridian-go/engine/tracking"
	"github.com/meridian-chain/meridian-go/model/gstate"
	"github.com/meridian-chain/meridian-go/system"
)

// UpgradeSuccess is the result of a successfully executed upgrade.
type UpgradeSuccess struct {
	// PostStateHash is the new state root generated after all effects were
	// applied.
	PostStateHash gstate.Digest
	// ExecutionEffect is the ordered log of reads and writes performed
	// during the run.
	ExecutionEffect tracking.ExecutionEffect
}

func (s UpgradeSuccess) String() string {
	return fmt.Sprintf("success: %s (%d effects)", s.PostStateHash, len(s.ExecutionEffect.Transforms))
}

// systemUpgrader conducts the actual migration of the system contracts to a
// new major protocol version.
type systemUpgrader struct {
	newProtocolVersion gstate.ProtocolVersion
	trackingCopy       *tracking.TrackingCopy
}

func newSystemUpgrader(
	newProtocolVersion gstate.ProtocolVersion,
	trackingCopy *tracking.TrackingCopy,
) *systemUpgrader {
	return &systemUpgrader{
		newProtocolVersion: newProtocolVersion,
		trackingCopy:       trackingCopy,
	}
}

// upgradeSystemContractsMajorVersion bumps every system contract to the new
// major version, in the fixed order mint, auction, handle_payment,
// standard_payment. A failure on any contract aborts the whole run; nothing
// is persisted because all writes are buffered in the tracking copy.
func (u *systemUpgrader) upgradeSystemContractsMajorVersion(registry system.Registry) error {
	for _, name := range system.ContractNames() {
		contractHash, ok := registry[name]
		if !ok {
			return errors.NewUnableToRetrieveSystemContractError(name)
		}
		entryPoints, ok := system.EntryPointsFor(name)
		if !ok {
			return errors.NewUnableToRetrieveSystemContractError(name)
		}
		if err := u.storeContract(contractHash, name, entryPoints); err != nil {
			return err
		}
	}
	return nil
}

// storeContract re-derives one system contract under the new protocol
// version. The contract keeps its address, package hash, wasm hash and named
// keys; only the entry-point table and protocol version are replaced. The
// package disables the superseded version slot and registers the same
// address as the enabled version for the new major version.
func (u *systemUpgrader) storeContract(
	contractHash gstate.ContractHash,
	contractName string,
	entryPoints gstate.EntryPoints,
) error {

	value, found, err := u.trackingCopy.Read(contractHash.Key())
	if err != nil || !found {
		return errors.NewUnableToRetrieveSystemContractError(contractName)
	}
	contract, ok := value.AsContract()
	if !ok {
		return errors.NewUnableToRetrieveSystemContractError(contractName)
	}

	packageKey := contract.ContractPackageHash.Key()
	value, found, err = u.trackingCopy.Read(packageKey)
	if err != nil || !found {
		return errors.NewUnableToRetrieveSystemContractPackageError(contractName)
	}
	contractPackage, ok := value.AsContractPackage()
	if !ok {
		return errors.NewUnableToRetrieveSystemContractPackageError(contractName)
	}

	if err := contractPackage.DisableVersion(contractHash); err != nil {
		return errors.NewFailedToDisablePreviousVersionError(contractName)
	}

	newContract := gstate.NewContract(
		contract.ContractPackageHash,
		contract.ContractWasmHash,
		contract.NamedKeys.Clone(),
		entryPoints,
		u.newProtocolVersion,
	)
	u.trackingCopy.Write(contractHash.Key(), gstate.ContractStoredValue(newContract))

	contractPackage.InsertVersion(u.newProtocolVersion.Major, contractHash)
	u.trackingCopy.Write(packageKey, gstate.ContractPackageStoredValue(contractPackage))

	return nil
}
