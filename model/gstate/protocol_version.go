package gstate

import (
	"fmt"
	"strconv"
	"strings"
)

// ProtocolVersion is the semantic version of the network protocol. Only the
// major component gates system contract migration during an upgrade.
type ProtocolVersion struct {
	Major uint32 `cbor:"0,keyasint" json:"major"`
	Minor uint32 `cbor:"1,keyasint" json:"minor"`
	Patch uint32 `cbor:"2,keyasint" json:"patch"`
}

// NewProtocolVersion constructs a protocol version from its components.
func NewProtocolVersion(major, minor, patch uint32) ProtocolVersion {
	return ProtocolVersion{Major: major, Minor: minor, Patch: patch}
}

// ParseProtocolVersion parses a "major.minor.patch" string.
func ParseProtocolVersion(s string) (ProtocolVersion, error) {
	parts := strings.Split(s, ".")
	if len(parts) != 3 {
		return ProtocolVersion{}, fmt.Errorf("expecting major.minor.patch but got %q", s)
	}
	components := make([]uint32, 3)
	for i, part := range parts {
		n, err := strconv.ParseUint(part, 10, 32)
		if err != nil {
			return ProtocolVersion{}, fmt.Errorf("invalid version component %q: %w", part, err)
		}
		components[i] = uint32(n)
	}
	return NewProtocolVersion(components[0], components[1], components[2]), nil
}

// Compare returns -1, 0 or 1 if v is respectively lower than, equal to or
// greater than other, comparing major, then minor, then patch.
func (v ProtocolVersion) Compare(other ProtocolVersion) int {
	pairs := [][2]uint32{
		{v.Major, other.Major},
		{v.Minor, other.Minor},
		{v.Patch, other.Patch},
	}
	for _, pair := range pairs {
		if pair[0] < pair[1] {
			return -1
		}
		if pair[0] > pair[1] {
			return 1
		}
	}
	return 0
}

// GreaterThan returns true if v is strictly greater than other.
func (v ProtocolVersion) GreaterThan(other ProtocolVersion) bool {
	return v.Compare(other) > 0
}

// IsMajorBumpFrom returns true if upgrading from prev to v increments the
// major component. Minor and patch bumps leave system contracts untouched.
func (v ProtocolVersion) IsMajorBumpFrom(prev ProtocolVersion) bool {
	return v.Major > prev.Major
}

func (v ProtocolVersion) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}
