package gstate

import "sort"

// CLType names the declared type of an entry point argument or return value.
type CLType string

const (
	CLTypeUnit      CLType = "unit"
	CLTypeBool      CLType = "bool"
	CLTypeU64       CLType = "u64"
	CLTypeU512      CLType = "u512"
	CLTypeString    CLType = "string"
	CLTypeKey       CLType = "key"
	CLTypeURef      CLType = "uref"
	CLTypePublicKey CLType = "public_key"
)

// EntryPointAccess controls who may invoke an entry point.
type EntryPointAccess string

const (
	// AccessPublic entry points are callable by anyone.
	AccessPublic EntryPointAccess = "public"
)

// EntryPointType distinguishes session code from contract code.
type EntryPointType string

const (
	EntryPointTypeContract EntryPointType = "contract"
	EntryPointTypeSession  EntryPointType = "session"
)

// Parameter is one declared argument of an entry point.
type Parameter struct {
	Name string `cbor:"0,keyasint" json:"name"`
	Type CLType `cbor:"1,keyasint" json:"type"`
}

// NewParameter constructs an entry point parameter.
func NewParameter(name string, typ CLType) Parameter {
	return Parameter{Name: name, Type: typ}
}

// EntryPoint declares one invocable function of a stored contract.
type EntryPoint struct {
	Name   string           `cbor:"0,keyasint" json:"name"`
	Args   []Parameter      `cbor:"1,keyasint" json:"args"`
	Ret    CLType           `cbor:"2,keyasint" json:"ret"`
	Access EntryPointAccess `cbor:"3,keyasint" json:"access"`
	Type   EntryPointType   `cbor:"4,keyasint" json:"type"`
}

// NewEntryPoint constructs a public contract entry point.
func NewEntryPoint(name string, args []Parameter, ret CLType, access EntryPointAccess, typ EntryPointType) EntryPoint {
	return EntryPoint{Name: name, Args: args, Ret: ret, Access: access, Type: typ}
}

// EntryPoints is the entry-point table of a contract, keyed by name.
type EntryPoints map[string]EntryPoint

// NewEntryPoints builds a table from the given entry points. Later entries
// with duplicate names overwrite earlier ones.
func NewEntryPoints(entryPoints ...EntryPoint) EntryPoints {
	table := make(EntryPoints, len(entryPoints))
	for _, ep := range entryPoints {
		table[ep.Name] = ep
	}
	return table
}

// Names returns the entry point names in lexicographic order.
func (e EntryPoints) Names() []string {
	names := make([]string, 0, len(e))
	for name := range e {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
