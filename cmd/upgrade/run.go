package main

import (
	"encoding/hex"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/meridian-chain/meridian-go/engine"
	"github.com/meridian-chain/meridian-go/model/gstate"
	"github.com/meridian-chain/meridian-go/module/metrics"
	"github.com/meridian-chain/meridian-go/storage/memtrie"
)

var flagUpgradeFile string

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "execute one upgrade config and print the post-state hash",
	RunE:  runUpgrade,
}

func init() {
	runCmd.Flags().StringVar(&flagUpgradeFile, "upgrade", "",
		"upgrade config file (json, toml or yaml)")
	_ = runCmd.MarkFlagRequired("upgrade")
}

// upgradeFile is the on-disk form of an upgrade config. Override values are
// hex-encoded stored values in the state's own serialization format.
type upgradeFile struct {
	PreStateHash               string            `mapstructure:"pre_state_hash"`
	CurrentProtocolVersion     string            `mapstructure:"current_protocol_version"`
	NewProtocolVersion         string            `mapstructure:"new_protocol_version"`
	ActivationPoint            *uint64           `mapstructure:"activation_point"`
	NewValidatorSlots          *uint32           `mapstructure:"new_validator_slots"`
	NewAuctionDelay            *uint64           `mapstructure:"new_auction_delay"`
	NewLockedFundsPeriodMillis *uint64           `mapstructure:"new_locked_funds_period_millis"`
	NewRoundSeigniorageRate    *[2]uint64        `mapstructure:"new_round_seigniorage_rate"`
	NewUnbondingDelay          *uint64           `mapstructure:"new_unbonding_delay"`
	GlobalStateUpdate          map[string]string `mapstructure:"global_state_update"`
}

func runUpgrade(*cobra.Command, []string) error {
	log := newLogger()

	config, err := loadUpgradeConfig(flagUpgradeFile)
	if err != nil {
		return fmt.Errorf("cannot load upgrade config: %w", err)
	}

	collector := metrics.NewUpgradeCollector(prometheus.DefaultRegisterer)

	return withState(log, func(state *memtrie.State) error {
		engineState := engine.New(state, log, collector)
		success, err := engineState.CommitUpgrade(config)
		if err != nil {
			return err
		}
		fmt.Println(success.PostStateHash.String())
		return nil
	})
}

func loadUpgradeConfig(path string) (*engine.UpgradeConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}
	var file upgradeFile
	if err := v.Unmarshal(&file); err != nil {
		return nil, err
	}

	preStateHash, err := gstate.HexToDigest(file.PreStateHash)
	if err != nil {
		return nil, fmt.Errorf("invalid pre_state_hash: %w", err)
	}
	currentVersion, err := gstate.ParseProtocolVersion(file.CurrentProtocolVersion)
	if err != nil {
		return nil, fmt.Errorf("invalid current_protocol_version: %w", err)
	}
	newVersion, err := gstate.ParseProtocolVersion(file.NewProtocolVersion)
	if err != nil {
		return nil, fmt.Errorf("invalid new_protocol_version: %w", err)
	}

	var activationPoint *gstate.EraID
	if file.ActivationPoint != nil {
		era := gstate.EraID(*file.ActivationPoint)
		activationPoint = &era
	}

	var seigniorageRate *gstate.Ratio
	if file.NewRoundSeigniorageRate != nil {
		rate := gstate.NewRatio(file.NewRoundSeigniorageRate[0], file.NewRoundSeigniorageRate[1])
		seigniorageRate = &rate
	}

	update := make(map[gstate.Key]gstate.StoredValue, len(file.GlobalStateUpdate))
	for keyStr, valueHex := range file.GlobalStateUpdate {
		key, err := gstate.ParseKey(keyStr)
		if err != nil {
			return nil, fmt.Errorf("invalid override key %q: %w", keyStr, err)
		}
		raw, err := hex.DecodeString(valueHex)
		if err != nil {
			return nil, fmt.Errorf("invalid override value for %q: %w", keyStr, err)
		}
		value, err := gstate.DecodeStoredValue(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid stored value for %q: %w", keyStr, err)
		}
		update[key] = value
	}

	return engine.NewUpgradeConfig(
		preStateHash,
		currentVersion,
		newVersion,
		activationPoint,
		file.NewValidatorSlots,
		file.NewAuctionDelay,
		file.NewLockedFundsPeriodMillis,
		seigniorageRate,
		file.NewUnbondingDelay,
		update,
	), nil
}
