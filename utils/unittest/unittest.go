package unittest

import (
	"os"
	"testing"

	"github.com/dgraph-io/badger/v2"
	"github.com/stretchr/testify/require"
)

// TempDir returns a fresh temporary directory.
func TempDir(t testing.TB) string {
	dir, err := os.MkdirTemp("", "meridian-testing-temp-")
	require.NoError(t, err)
	return dir
}

// RunWithTempDir runs f with a temporary directory that is removed
// afterwards.
func RunWithTempDir(t testing.TB, f func(string)) {
	dir := TempDir(t)
	defer os.RemoveAll(dir)
	f(dir)
}

// BadgerDB opens a Badger database in dir, tuned for tests.
func BadgerDB(t testing.TB, dir string) *badger.DB {
	opts := badger.
		DefaultOptions(dir).
		WithKeepL0InMemory(true).
		WithLogger(nil)
	db, err := badger.Open(opts)
	require.NoError(t, err)
	return db
}

// RunWithBadgerDB runs f with a temporary Badger database that is closed and
// removed afterwards.
func RunWithBadgerDB(t testing.TB, f func(*badger.DB)) {
	RunWithTempDir(t, func(dir string) {
		db := BadgerDB(t, dir)
		defer db.Close()
		f(db)
	})
}
