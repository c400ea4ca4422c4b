package gstate

import "fmt"

// EraID identifies one consensus era. Upgrades activate at era boundaries,
// decided by the consensus layer; the upgrade engine only carries the value
// through for auditing.
type EraID uint64

func (e EraID) String() string {
	return fmt.Sprintf("era %d", uint64(e))
}

// Ratio is an exact unsigned rational, used for the round seigniorage rate.
type Ratio struct {
	Numerator   uint64 `cbor:"0,keyasint" json:"numerator"`
	Denominator uint64 `cbor:"1,keyasint" json:"denominator"`
}

// NewRatio constructs a Ratio. A zero denominator is the caller's bug and is
// rejected wherever the ratio is applied.
func NewRatio(numerator, denominator uint64) Ratio {
	return Ratio{Numerator: numerator, Denominator: denominator}
}

func (r Ratio) String() string {
	return fmt.Sprintf("%d/%d", r.Numerator, r.Denominator)
}
