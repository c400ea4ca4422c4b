package gstate

import "encoding/hex"

// ContractHash is the permanent address of a stored contract. It never
// changes across protocol upgrades; only the value stored under it does.
type ContractHash [keyAddrLength]byte

// Key returns the global state key the contract is stored under.
func (h ContractHash) Key() Key {
	return HashKey(h)
}

func (h ContractHash) String() string {
	return hex.EncodeToString(h[:])
}

// ContractPackageHash is the address of a contract's version registry.
type ContractPackageHash [keyAddrLength]byte

// Key returns the global state key the contract package is stored under.
func (h ContractPackageHash) Key() Key {
	return HashKey(h)
}

func (h ContractPackageHash) String() string {
	return hex.EncodeToString(h[:])
}

// ContractWasmHash addresses a contract's immutable code blob.
type ContractWasmHash [keyAddrLength]byte

func (h ContractWasmHash) String() string {
	return hex.EncodeToString(h[:])
}

// NamedKeys maps human-readable names to keys owned by a contract. The
// mapping is carried over unchanged across protocol upgrades.
type NamedKeys map[string]Key

// Clone returns a deep copy of the named keys.
func (n NamedKeys) Clone() NamedKeys {
	cloned := make(NamedKeys, len(n))
	for name, key := range n {
		cloned[name] = key
	}
	return cloned
}

// Contract is one stored contract version. The package hash, wasm hash and
// named keys are invariant across a version bump; only the entry point table
// and the protocol version are replaced.
type Contract struct {
	ContractPackageHash ContractPackageHash `cbor:"0,keyasint" json:"contract_package_hash"`
	ContractWasmHash    ContractWasmHash    `cbor:"1,keyasint" json:"contract_wasm_hash"`
	NamedKeys           NamedKeys           `cbor:"2,keyasint" json:"named_keys"`
	EntryPoints         EntryPoints         `cbor:"3,keyasint" json:"entry_points"`
	ProtocolVersion     ProtocolVersion     `cbor:"4,keyasint" json:"protocol_version"`
}

// NewContract constructs a stored contract value.
func NewContract(
	packageHash ContractPackageHash,
	wasmHash ContractWasmHash,
	namedKeys NamedKeys,
	entryPoints EntryPoints,
	protocolVersion ProtocolVersion,
) *Contract {
	return &Contract{
		ContractPackageHash: packageHash,
		ContractWasmHash:    wasmHash,
		NamedKeys:           namedKeys,
		EntryPoints:         entryPoints,
		ProtocolVersion:     protocolVersion,
	}
}
