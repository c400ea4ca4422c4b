package memtrie

import (
	"sync"

	lru "github.com/hashicorp/golang-lru"
	"github.com/pkg/errors"

	"github.com/meridian-chain/meridian-go/model/gstate"
	"github.com/meridian-chain/meridian-go/storage"
)

// NodeStore persists encoded trie nodes under their content address. Nodes
// are immutable once written, so a store never overwrites and never deletes.
type NodeStore interface {
	// GetNode returns the encoded node stored under hash, or
	// storage.ErrNotFound.
	GetNode(hash gstate.Digest) ([]byte, error)

	// PutNodes stores a batch of encoded nodes atomically.
	PutNodes(nodes map[gstate.Digest][]byte) error
}

// InMemNodeStore is a map-backed NodeStore, used in tests and as the default
// backing for transient states.
type InMemNodeStore struct {
	mu    sync.RWMutex
	nodes map[gstate.Digest][]byte
}

var _ NodeStore = (*InMemNodeStore)(nil)

// NewInMemNodeStore constructs an empty in-memory node store.
func NewInMemNodeStore() *InMemNodeStore {
	return &InMemNodeStore{
		nodes: make(map[gstate.Digest][]byte),
	}
}

func (s *InMemNodeStore) GetNode(hash gstate.Digest) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.nodes[hash]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return data, nil
}

func (s *InMemNodeStore) PutNodes(nodes map[gstate.Digest][]byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for hash, data := range nodes {
		s.nodes[hash] = data
	}
	return nil
}

// Len returns the number of stored nodes.
func (s *InMemNodeStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.nodes)
}

// CachedNodeStore wraps a NodeStore with an LRU cache over encoded nodes.
// Since nodes are immutable the cache can never go stale.
type CachedNodeStore struct {
	backend NodeStore
	cache   *lru.Cache
}

var _ NodeStore = (*CachedNodeStore)(nil)

// NewCachedNodeStore wraps backend with an LRU cache holding up to limit
// nodes.
func NewCachedNodeStore(backend NodeStore, limit int) (*CachedNodeStore, error) {
	cache, err := lru.New(limit)
	if err != nil {
		return nil, errors.Wrap(err, "cannot create node cache")
	}
	return &CachedNodeStore{backend: backend, cache: cache}, nil
}

func (s *CachedNodeStore) GetNode(hash gstate.Digest) ([]byte, error) {
	if data, ok := s.cache.Get(hash); ok {
		return data.([]byte), nil
	}
	data, err := s.backend.GetNode(hash)
	if err != nil {
		return nil, err
	}
	s.cache.Add(hash, data)
	return data, nil
}

func (s *CachedNodeStore) PutNodes(nodes map[gstate.Digest][]byte) error {
	if err := s.backend.PutNodes(nodes); err != nil {
		return err
	}
	for hash, data := range nodes {
		s.cache.Add(hash, data)
	}
	return nil
}
