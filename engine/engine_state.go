// Package engine implements the protocol-upgrade transition engine: the
// component that atomically rewrites the persistent global state when the
// network's protocol version changes. It applies operator-specified state
// overrides and economic-parameter changes and, on a major version bump,
// transactionally replaces the entry-point tables and version metadata of
// the built-in system contracts while preserving their permanent addresses.
//
// A run either commits completely, publishing a new state root, or fails
// with a typed error leaving the prior root byte-identical. The engine
// provides no mutual exclusion across runs; the scheduling caller serializes
// upgrade execution, typically one upgrade finalized per activation point.
package engine

import (
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog"

	"github.com/meridian-chain/meridian-go/engine/errors"
	"github.com/meridian-chain/meridian-go/engine/tracking"
	"github.com/meridian-chain/meridian-go/model/gstate"
	"github.com/meridian-chain/meridian-go/module"
	"github.com/meridian-chain/meridian-go/storage"
	"github.com/meridian-chain/meridian-go/system"
)

// EngineState executes protocol upgrades against a persistent state
// provider.
type EngineState struct {
	state   storage.StateProvider
	log     zerolog.Logger
	metrics module.UpgradeMetrics
}

// New constructs an upgrade engine over the given state provider.
func New(state storage.StateProvider, log zerolog.Logger, metrics module.UpgradeMetrics) *EngineState {
	return &EngineState{
		state:   state,
		log:     log.With().Str("component", "upgrade_engine").Logger(),
		metrics: metrics,
	}
}

// CommitUpgrade runs one protocol upgrade to completion. On success it
// returns the new state root together with the materialized effect log; on
// any failure it returns a typed error and the store's prior root remains
// completely unmodified. There is no mid-run cancellation: a run either
// commits or aborts outright.
func (e *EngineState) CommitUpgrade(config *UpgradeConfig) (*UpgradeSuccess, error) {
	start := time.Now()
	e.metrics.UpgradeStarted()

	log := e.log.With().
		Str("pre_state_hash", config.PreStateHash().String()).
		Str("current_version", config.CurrentProtocolVersion().String()).
		Str("new_version", config.NewProtocolVersion().String()).
		Logger()

	success, err := e.commitUpgrade(log, config)
	if err != nil {
		e.metrics.UpgradeFailed()
		log.Warn().Err(err).Msg("protocol upgrade aborted")
		return nil, err
	}

	e.metrics.UpgradeExecuted(time.Since(start), len(success.ExecutionEffect.WriteSet()))
	log.Info().
		Str("post_state_hash", success.PostStateHash.String()).
		Int("effects", len(success.ExecutionEffect.Transforms)).
		Msg("protocol upgrade committed")
	return success, nil
}

func (e *EngineState) commitUpgrade(log zerolog.Logger, config *UpgradeConfig) (*UpgradeSuccess, error) {

	// stage 1: validate the config against live state
	trackingCopy, err := tracking.NewTrackingCopy(e.state, config.PreStateHash())
	if err != nil {
		return nil, errors.NewInvalidUpgradeConfigError(
			"pre-state hash %s is not readable: %v", config.PreStateHash(), err)
	}
	if err := e.validate(trackingCopy, config); err != nil {
		return nil, err
	}

	// stage 2: apply explicit global state overrides
	e.applyGlobalStateUpdate(trackingCopy, config)

	// stage 3: migrate system contracts on a major version bump
	newVersion := config.NewProtocolVersion()
	if newVersion.IsMajorBumpFrom(config.CurrentProtocolVersion()) {
		registry, err := e.readSystemRegistry(trackingCopy)
		if err != nil {
			return nil, err
		}
		upgrader := newSystemUpgrader(newVersion, trackingCopy)
		if err := upgrader.upgradeSystemContractsMajorVersion(registry); err != nil {
			return nil, err
		}
		log.Debug().Msg("system contracts migrated to new major version")
	}

	// stage 4: apply economic parameter changes through named keys
	if err := e.applyEconomicParameters(trackingCopy, config); err != nil {
		return nil, err
	}

	// record the activated protocol version
	versionValue, err := gstate.MarshalCLValue(newVersion)
	if err != nil {
		return nil, errors.NewSerializationError(err)
	}
	trackingCopy.Write(system.ProtocolVersionKey(), gstate.CLValueStoredValue(versionValue))

	// stage 5: commit the tracking copy, publishing the new root
	postStateHash, err := trackingCopy.Commit()
	if err != nil {
		return nil, err
	}

	return &UpgradeSuccess{
		PostStateHash:   postStateHash,
		ExecutionEffect: trackingCopy.Finalize(),
	}, nil
}

// validate checks the config against the on-chain recorded protocol version.
// Validation mutates nothing, so probing the same invalid config repeatedly
// yields the same error kind every time.
func (e *EngineState) validate(trackingCopy *tracking.TrackingCopy, config *UpgradeConfig) error {
	var issues *multierror.Error

	recorded, err := e.readRecordedVersion(trackingCopy)
	if err != nil {
		issues = multierror.Append(issues, err)
	} else if recorded != config.CurrentProtocolVersion() {
		issues = multierror.Append(issues, &versionMismatch{
			recorded: recorded,
			declared: config.CurrentProtocolVersion(),
		})
	}

	if !config.NewProtocolVersion().GreaterThan(config.CurrentProtocolVersion()) {
		issues = multierror.Append(issues, &versionNotIncreased{
			current: config.CurrentProtocolVersion(),
			next:    config.NewProtocolVersion(),
		})
	}

	if rate := config.NewRoundSeigniorageRate(); rate != nil && rate.Denominator == 0 {
		issues = multierror.Append(issues, &zeroDenominator{})
	}

	if err := issues.ErrorOrNil(); err != nil {
		return errors.NewInvalidUpgradeConfigWrappedError(err)
	}
	return nil
}

// applyGlobalStateUpdate writes every override pair through the tracking
// copy verbatim, in canonical key order so the effect log is reproducible.
func (e *EngineState) applyGlobalStateUpdate(trackingCopy *tracking.TrackingCopy, config *UpgradeConfig) {
	update := config.GlobalStateUpdate()
	keys := make([]gstate.Key, 0, len(update))
	for key := range update {
		keys = append(keys, key)
	}
	for _, key := range gstate.SortKeys(keys) {
		trackingCopy.Write(key, update[key])
	}
}

// applyEconomicParameters writes each configured parameter into the URef
// named key of the contract owning it: validator slots, auction delay,
// locked funds period and unbonding delay live on the auction contract, the
// round seigniorage rate on the mint.
func (e *EngineState) applyEconomicParameters(trackingCopy *tracking.TrackingCopy, config *UpgradeConfig) error {
	type paramWrite struct {
		contract string
		namedKey string
		value    interface{}
	}

	var params []paramWrite
	if v := config.NewValidatorSlots(); v != nil {
		params = append(params, paramWrite{system.Auction, system.NamedKeyValidatorSlots, *v})
	}
	if v := config.NewAuctionDelay(); v != nil {
		params = append(params, paramWrite{system.Auction, system.NamedKeyAuctionDelay, *v})
	}
	if v := config.NewLockedFundsPeriodMillis(); v != nil {
		params = append(params, paramWrite{system.Auction, system.NamedKeyLockedFundsPeriod, *v})
	}
	if v := config.NewUnbondingDelay(); v != nil {
		params = append(params, paramWrite{system.Auction, system.NamedKeyUnbondingDelay, *v})
	}
	if v := config.NewRoundSeigniorageRate(); v != nil {
		params = append(params, paramWrite{system.Mint, system.NamedKeyRoundSeigniorageRate, *v})
	}
	if len(params) == 0 {
		return nil
	}

	registry, err := e.readSystemRegistry(trackingCopy)
	if err != nil {
		return err
	}

	for _, param := range params {
		if err := e.writeNamedKeyValue(trackingCopy, registry, param.contract, param.namedKey, param.value); err != nil {
			return err
		}
	}
	return nil
}

func (e *EngineState) writeNamedKeyValue(
	trackingCopy *tracking.TrackingCopy,
	registry system.Registry,
	contractName string,
	namedKey string,
	value interface{},
) error {

	contractHash, ok := registry[contractName]
	if !ok {
		return errors.NewUnableToRetrieveSystemContractError(contractName)
	}
	stored, found, err := trackingCopy.Read(contractHash.Key())
	if err != nil || !found {
		return errors.NewUnableToRetrieveSystemContractError(contractName)
	}
	contract, ok := stored.AsContract()
	if !ok {
		return errors.NewUnableToRetrieveSystemContractError(contractName)
	}

	target, ok := contract.NamedKeys[namedKey]
	if !ok {
		return errors.NewInvalidUpgradeConfigError(
			"system contract %s has no named key %q", contractName, namedKey)
	}

	encoded, err := gstate.MarshalCLValue(value)
	if err != nil {
		return errors.NewSerializationError(err)
	}
	trackingCopy.Write(target, gstate.CLValueStoredValue(encoded))
	return nil
}

// readSystemRegistry loads the registry of system contract names to
// addresses, established by bootstrap.
func (e *EngineState) readSystemRegistry(trackingCopy *tracking.TrackingCopy) (system.Registry, error) {
	stored, found, err := trackingCopy.Read(system.RegistryKey())
	if err != nil || !found {
		return nil, errors.NewFailedToCreateSystemRegistryError("registry is not present in global state")
	}
	encoded, ok := stored.AsCLValue()
	if !ok {
		return nil, errors.NewFailedToCreateSystemRegistryError("registry is stored as %s", stored.Tag())
	}
	var registry system.Registry
	if err := gstate.UnmarshalCLValue(encoded, &registry); err != nil {
		return nil, errors.NewFailedToCreateSystemRegistryError("cannot decode registry: %v", err)
	}
	return registry, nil
}

// readRecordedVersion loads the protocol version recorded on chain.
func (e *EngineState) readRecordedVersion(trackingCopy *tracking.TrackingCopy) (gstate.ProtocolVersion, error) {
	stored, found, err := trackingCopy.Read(system.ProtocolVersionKey())
	if err != nil {
		return gstate.ProtocolVersion{}, err
	}
	if !found {
		return gstate.ProtocolVersion{}, &versionNotRecorded{}
	}
	encoded, ok := stored.AsCLValue()
	if !ok {
		return gstate.ProtocolVersion{}, &versionNotRecorded{}
	}
	var version gstate.ProtocolVersion
	if err := gstate.UnmarshalCLValue(encoded, &version); err != nil {
		return gstate.ProtocolVersion{}, &versionNotRecorded{}
	}
	return version, nil
}
