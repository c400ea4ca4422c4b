package gstate

import "fmt"

// StoredValueTag discriminates the variants of StoredValue.
type StoredValueTag uint8

const (
	// TagCLValue marks a raw typed value.
	TagCLValue StoredValueTag = iota
	// TagContract marks a stored contract.
	TagContract
	// TagContractPackage marks a contract version registry.
	TagContractPackage
)

func (t StoredValueTag) String() string {
	switch t {
	case TagCLValue:
		return "cl_value"
	case TagContract:
		return "contract"
	case TagContractPackage:
		return "contract_package"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(t))
	}
}

// CLValue is an opaque, codec-encoded value stored in global state. The
// engine treats its payload as authoritative bytes; interpretation belongs
// to whoever wrote it.
type CLValue struct {
	Raw []byte `cbor:"0,keyasint" json:"raw"`
}

// StoredValue is the closed union over everything persistable in global
// state. Exactly one variant pointer is non-nil. Storing a value at a Key
// overwrites whatever was there wholesale.
type StoredValue struct {
	clValue         *CLValue
	contract        *Contract
	contractPackage *ContractPackage
}

// CLValueStoredValue wraps a CLValue.
func CLValueStoredValue(v CLValue) StoredValue {
	return StoredValue{clValue: &v}
}

// ContractStoredValue wraps a Contract.
func ContractStoredValue(c *Contract) StoredValue {
	return StoredValue{contract: c}
}

// ContractPackageStoredValue wraps a ContractPackage.
func ContractPackageStoredValue(p *ContractPackage) StoredValue {
	return StoredValue{contractPackage: p}
}

// Tag returns the variant tag.
func (v StoredValue) Tag() StoredValueTag {
	switch {
	case v.contract != nil:
		return TagContract
	case v.contractPackage != nil:
		return TagContractPackage
	default:
		return TagCLValue
	}
}

// AsCLValue returns the CLValue variant, or false on variant mismatch.
func (v StoredValue) AsCLValue() (CLValue, bool) {
	if v.clValue == nil {
		return CLValue{}, false
	}
	return *v.clValue, true
}

// AsContract returns the Contract variant, or false on variant mismatch.
// Callers must reject mismatches with a typed error instead of panicking.
func (v StoredValue) AsContract() (*Contract, bool) {
	if v.contract == nil {
		return nil, false
	}
	return v.contract, true
}

// AsContractPackage returns the ContractPackage variant, or false on variant
// mismatch.
func (v StoredValue) AsContractPackage() (*ContractPackage, bool) {
	if v.contractPackage == nil {
		return nil, false
	}
	return v.contractPackage, true
}

func (v StoredValue) String() string {
	return v.Tag().String()
}
