package engine

import (
	"github.com/meridian-chain/meridian-go/model/gstate"
)

// UpgradeConfig fully describes one protocol upgrade. It is populated once
// by the caller, typically from a network-wide chainspec diff, and is
// immutable thereafter except that the orchestrator may rebase the pre-state
// hash before execution (e.g. for chained multi-step upgrades).
//
// No validation logic lives here; validity is judged by the orchestrator
// against live state.
type UpgradeConfig struct {
	preStateHash               gstate.Digest
	currentProtocolVersion     gstate.ProtocolVersion
	newProtocolVersion         gstate.ProtocolVersion
	activationPoint            *gstate.EraID
	newValidatorSlots          *uint32
	newAuctionDelay            *uint64
	newLockedFundsPeriodMillis *uint64
	newRoundSeigniorageRate    *gstate.Ratio
	newUnbondingDelay          *uint64
	globalStateUpdate          map[gstate.Key]gstate.StoredValue
}

// NewUpgradeConfig constructs an upgrade config. Optional parameters are nil
// when the upgrade leaves them unchanged.
func NewUpgradeConfig(
	preStateHash gstate.Digest,
	currentProtocolVersion gstate.ProtocolVersion,
	newProtocolVersion gstate.ProtocolVersion,
	activationPoint *gstate.EraID,
	newValidatorSlots *uint32,
	newAuctionDelay *uint64,
	newLockedFundsPeriodMillis *uint64,
	newRoundSeigniorageRate *gstate.Ratio,
	newUnbondingDelay *uint64,
	globalStateUpdate map[gstate.Key]gstate.StoredValue,
) *UpgradeConfig {
	return &UpgradeConfig{
		preStateHash:               preStateHash,
		currentProtocolVersion:     currentProtocolVersion,
		newProtocolVersion:         newProtocolVersion,
		activationPoint:            activationPoint,
		newValidatorSlots:          newValidatorSlots,
		newAuctionDelay:            newAuctionDelay,
		newLockedFundsPeriodMillis: newLockedFundsPeriodMillis,
		newRoundSeigniorageRate:    newRoundSeigniorageRate,
		newUnbondingDelay:          newUnbondingDelay,
		globalStateUpdate:          globalStateUpdate,
	}
}

// PreStateHash returns the state root the upgrade starts from.
func (c *UpgradeConfig) PreStateHash() gstate.Digest {
	return c.preStateHash
}

// CurrentProtocolVersion returns the version the chain must currently be on.
func (c *UpgradeConfig) CurrentProtocolVersion() gstate.ProtocolVersion {
	return c.currentProtocolVersion
}

// NewProtocolVersion returns the version the upgrade activates.
func (c *UpgradeConfig) NewProtocolVersion() gstate.ProtocolVersion {
	return c.newProtocolVersion
}

// ActivationPoint returns the era the upgrade activates at, if specified.
func (c *UpgradeConfig) ActivationPoint() *gstate.EraID {
	return c.activationPoint
}

// NewValidatorSlots returns the new validator slot count, if specified.
func (c *UpgradeConfig) NewValidatorSlots() *uint32 {
	return c.newValidatorSlots
}

// NewAuctionDelay returns the new auction delay, if specified.
func (c *UpgradeConfig) NewAuctionDelay() *uint64 {
	return c.newAuctionDelay
}

// NewLockedFundsPeriodMillis returns the new locked funds period, if
// specified.
func (c *UpgradeConfig) NewLockedFundsPeriodMillis() *uint64 {
	return c.newLockedFundsPeriodMillis
}

// NewRoundSeigniorageRate returns the new round seigniorage rate, if
// specified.
func (c *UpgradeConfig) NewRoundSeigniorageRate() *gstate.Ratio {
	return c.newRoundSeigniorageRate
}

// NewUnbondingDelay returns the new unbonding delay, if specified.
func (c *UpgradeConfig) NewUnbondingDelay() *uint64 {
	return c.newUnbondingDelay
}

// GlobalStateUpdate returns the map of explicit key overrides. Overrides are
// authoritative: they replace whatever is present, including creating
// previously absent keys.
func (c *UpgradeConfig) GlobalStateUpdate() map[gstate.Key]gstate.StoredValue {
	return c.globalStateUpdate
}

// SetPreStateHash rebases the upgrade onto a different starting root. Used
// by the orchestrating caller when a prior step changed the working root.
func (c *UpgradeConfig) SetPreStateHash(preStateHash gstate.Digest) {
	c.preStateHash = preStateHash
}
