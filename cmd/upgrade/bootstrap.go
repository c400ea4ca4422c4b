package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/meridian-chain/meridian-go/engine/bootstrap"
	"github.com/meridian-chain/meridian-go/model/gstate"
	"github.com/meridian-chain/meridian-go/storage/memtrie"
)

var flagGenesisVersion string

var bootstrapCmd = &cobra.Command{
	Use:   "bootstrap",
	Short: "install the system contracts into an empty global state",
	RunE:  runBootstrap,
}

func init() {
	bootstrapCmd.Flags().StringVar(&flagGenesisVersion, "protocol-version", "1.0.0",
		"genesis protocol version (major.minor.patch)")
}

func runBootstrap(*cobra.Command, []string) error {
	log := newLogger()

	version, err := gstate.ParseProtocolVersion(flagGenesisVersion)
	if err != nil {
		return err
	}

	return withState(log, func(state *memtrie.State) error {
		root, registry, err := bootstrap.Commit(state, log, version)
		if err != nil {
			return err
		}
		for _, name := range registry.Names() {
			log.Info().
				Str("contract", name).
				Str("contract_hash", registry[name].String()).
				Msg("system contract installed")
		}
		fmt.Println(root.String())
		return nil
	})
}
