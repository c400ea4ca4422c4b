// meridian-upgrade is an operational tool for executing protocol upgrades
// against a Badger-backed global state: bootstrap a fresh state, then run
// upgrade configs against it.
package main

import (
	"os"

	"github.com/dgraph-io/badger/v2"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/meridian-chain/meridian-go/storage/badgerstore"
	"github.com/meridian-chain/meridian-go/storage/memtrie"
)

var flagDataDir string

var rootCmd = &cobra.Command{
	Use:   "meridian-upgrade",
	Short: "execute protocol upgrades against a persisted global state",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "datadir", "",
		"directory holding the global state database")
	_ = rootCmd.MarkPersistentFlagRequired("datadir")

	rootCmd.AddCommand(bootstrapCmd)
	rootCmd.AddCommand(runCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger() zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(zerolog.InfoLevel).
		With().Timestamp().Logger()
}

// withState opens the Badger-backed state provider and runs f against it.
func withState(log zerolog.Logger, f func(*memtrie.State) error) error {
	opts := badger.DefaultOptions(flagDataDir).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return err
	}
	defer db.Close()

	nodes, err := memtrie.NewCachedNodeStore(badgerstore.NewNodeStore(db), 10_000)
	if err != nil {
		return err
	}
	return f(memtrie.NewState(nodes))
}
