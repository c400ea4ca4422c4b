// Package badgerstore persists trie nodes in a Badger key/value database so
// committed global states survive process restarts.
package badgerstore

import (
	"github.com/dgraph-io/badger/v2"
	"github.com/pkg/errors"

	"github.com/meridian-chain/meridian-go/model/gstate"
	"github.com/meridian-chain/meridian-go/storage"
	"github.com/meridian-chain/meridian-go/storage/memtrie"
)

// nodeKeyPrefix namespaces trie nodes within the database.
var nodeKeyPrefix = []byte("tn/")

// NodeStore is a Badger-backed memtrie.NodeStore.
type NodeStore struct {
	db *badger.DB
}

var _ memtrie.NodeStore = (*NodeStore)(nil)

// NewNodeStore constructs a node store over an opened Badger database.
func NewNodeStore(db *badger.DB) *NodeStore {
	return &NodeStore{db: db}
}

func nodeKey(hash gstate.Digest) []byte {
	key := make([]byte, 0, len(nodeKeyPrefix)+gstate.DigestLength)
	key = append(key, nodeKeyPrefix...)
	key = append(key, hash[:]...)
	return key
}

// GetNode returns the encoded node stored under hash, converting Badger's
// not-found error to storage.ErrNotFound.
func (s *NodeStore) GetNode(hash gstate.Digest) ([]byte, error) {
	var data []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(nodeKey(hash))
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrapf(err, "cannot retrieve trie node %s", hash)
	}
	return data, nil
}

// PutNodes stores the batch in one transaction. Nodes are content-addressed
// and immutable, so re-writing an existing node is harmless.
func (s *NodeStore) PutNodes(nodes map[gstate.Digest][]byte) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		for hash, data := range nodes {
			if err := txn.Set(nodeKey(hash), data); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return errors.Wrap(err, "cannot persist trie nodes")
	}
	return nil
}
