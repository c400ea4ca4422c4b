package gstate

import (
	"errors"
	"sort"
)

// ErrVersionNotEnabled is returned when disabling a contract hash that is not
// a currently enabled version of the package. Disabling an already disabled
// or absent hash is an error, not a no-op.
var ErrVersionNotEnabled = errors.New("contract hash is not an enabled version of the package")

// ContractVersion is one registered version slot of a contract package.
type ContractVersion struct {
	ContractHash ContractHash `cbor:"0,keyasint" json:"contract_hash"`
	Disabled     bool         `cbor:"1,keyasint" json:"disabled"`
}

// ContractPackage is the version registry for one logical contract. It maps
// a protocol major version to a contract hash plus an enabled flag. The
// registry is append-only with soft-disable: superseded slots are marked
// disabled but never removed.
type ContractPackage struct {
	Versions map[uint32]ContractVersion `cbor:"0,keyasint" json:"versions"`
}

// NewContractPackage constructs an empty version registry.
func NewContractPackage() *ContractPackage {
	return &ContractPackage{
		Versions: make(map[uint32]ContractVersion),
	}
}

// InsertVersion registers the contract hash as the enabled version for the
// given protocol major version, replacing any slot already present for it.
func (p *ContractPackage) InsertVersion(major uint32, hash ContractHash) {
	if p.Versions == nil {
		p.Versions = make(map[uint32]ContractVersion)
	}
	p.Versions[major] = ContractVersion{ContractHash: hash}
}

// DisableVersion marks every enabled slot holding the given contract hash as
// disabled. It returns ErrVersionNotEnabled if the hash is not currently an
// enabled version of the package.
func (p *ContractPackage) DisableVersion(hash ContractHash) error {
	disabled := false
	for major, version := range p.Versions {
		if version.ContractHash == hash && !version.Disabled {
			version.Disabled = true
			p.Versions[major] = version
			disabled = true
		}
	}
	if !disabled {
		return ErrVersionNotEnabled
	}
	return nil
}

// IsVersionEnabled reports whether the slot for the given major version holds
// the hash and is enabled.
func (p *ContractPackage) IsVersionEnabled(major uint32, hash ContractHash) bool {
	version, ok := p.Versions[major]
	return ok && version.ContractHash == hash && !version.Disabled
}

// CurrentVersion returns the highest major version with an enabled slot.
func (p *ContractPackage) CurrentVersion() (uint32, ContractHash, bool) {
	majors := make([]int, 0, len(p.Versions))
	for major := range p.Versions {
		majors = append(majors, int(major))
	}
	sort.Sort(sort.Reverse(sort.IntSlice(majors)))
	for _, major := range majors {
		version := p.Versions[uint32(major)]
		if !version.Disabled {
			return uint32(major), version.ContractHash, true
		}
	}
	return 0, ContractHash{}, false
}
