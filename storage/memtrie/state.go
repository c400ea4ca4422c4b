// Package memtrie implements the persistent global state as an immutable,
// copy-on-write binary Merkle trie of content-addressed nodes.
//
// Every committed update produces a fresh root digest while sharing all
// untouched subtrees with prior roots, so any historical root stays readable
// for as long as its nodes are retained. The node store is pluggable: tests
// use the in-memory store, deployments persist nodes in Badger.
package memtrie

import (
	"errors"
	"fmt"
	"sort"

	"github.com/meridian-chain/meridian-go/model/gstate"
	"github.com/meridian-chain/meridian-go/storage"
)

// State is a trie-backed storage.StateProvider.
type State struct {
	nodes NodeStore
}

var _ storage.StateProvider = (*State)(nil)

// NewState constructs a state provider over the given node store.
func NewState(nodes NodeStore) *State {
	return &State{nodes: nodes}
}

// EmptyRoot returns the root digest of the empty state.
func (s *State) EmptyRoot() gstate.Digest {
	return emptyRootHash
}

// HasRoot reports whether root identifies a committed or empty state.
func (s *State) HasRoot(root gstate.Digest) (bool, error) {
	if root == emptyRootHash {
		return true, nil
	}
	_, err := s.nodes.GetNode(root)
	if errors.Is(err, storage.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("cannot look up root node: %w", err)
	}
	return true, nil
}

// Checkout returns a reader pinned to the given root.
func (s *State) Checkout(root gstate.Digest) (storage.StateReader, error) {
	known, err := s.HasRoot(root)
	if err != nil {
		return nil, err
	}
	if !known {
		return nil, storage.ErrRootNotFound
	}
	return &reader{nodes: s.nodes, root: root}, nil
}

// Commit applies the writes on top of root and returns the new root. All new
// nodes are assembled in memory first and stored in one batch, so a failure
// leaves every previously published root untouched.
func (s *State) Commit(root gstate.Digest, writes []storage.Write) (gstate.Digest, error) {
	known, err := s.HasRoot(root)
	if err != nil {
		return gstate.EmptyDigest, err
	}
	if !known {
		return gstate.EmptyDigest, storage.ErrRootNotFound
	}
	if len(writes) == 0 {
		return root, nil
	}

	payloads := make([]payload, 0, len(writes))
	for _, w := range writes {
		value, err := gstate.EncodeStoredValue(w.Value)
		if err != nil {
			return gstate.EmptyDigest, fmt.Errorf("cannot encode value for %s: %w", w.Key, err)
		}
		payloads = append(payloads, payload{path: pathOf(w.Key), value: value})
	}
	// later writes to the same key win, then dedupe and order by path so the
	// resulting root is independent of the caller's write order
	sort.SliceStable(payloads, func(i, j int) bool {
		return lessPath(payloads[i].path, payloads[j].path)
	})
	deduped := payloads[:0]
	for i, p := range payloads {
		if i+1 < len(payloads) && payloads[i+1].path == p.path {
			continue
		}
		deduped = append(deduped, p)
	}

	newNodes := make(map[gstate.Digest][]byte)
	rootHash := root
	if rootHash == emptyRootHash {
		rootHash = gstate.EmptyDigest
	}
	newRoot, err := s.insert(rootHash, 0, deduped, newNodes)
	if err != nil {
		return gstate.EmptyDigest, err
	}
	if err := s.nodes.PutNodes(newNodes); err != nil {
		return gstate.EmptyDigest, fmt.Errorf("cannot persist trie nodes: %w", err)
	}
	return newRoot, nil
}

type payload struct {
	path  [pathLength]byte
	value []byte
}

func lessPath(a, b [pathLength]byte) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}

// insert recursively rebuilds the subtree rooted at nodeHash with the sorted,
// path-distinct payloads applied, collecting every new node into out. The
// zero digest denotes an empty subtree.
func (s *State) insert(
	nodeHash gstate.Digest,
	depth int,
	payloads []payload,
	out map[gstate.Digest][]byte,
) (gstate.Digest, error) {

	if len(payloads) == 0 {
		return nodeHash, nil
	}
	if depth > maxDepth {
		return gstate.EmptyDigest, fmt.Errorf("trie depth exceeded at %d", depth)
	}

	if nodeHash == (gstate.Digest{}) {
		return s.build(depth, payloads, out), nil
	}

	data, err := s.nodes.GetNode(nodeHash)
	if err != nil {
		return gstate.EmptyDigest, fmt.Errorf("cannot load trie node %s: %w", nodeHash, err)
	}
	n, err := decodeNode(data)
	if err != nil {
		return gstate.EmptyDigest, fmt.Errorf("corrupt trie node %s: %w", nodeHash, err)
	}

	if n.isLeaf {
		// merge the existing payload unless one of the writes replaces it.
		// payloads shares its backing array with the sibling subtree's
		// slice, so merging always copies.
		replaced := false
		for _, p := range payloads {
			if p.path == n.path {
				replaced = true
				break
			}
		}
		merged := make([]payload, len(payloads), len(payloads)+1)
		copy(merged, payloads)
		if !replaced {
			merged = append(merged, payload{path: n.path, value: n.value})
			sort.Slice(merged, func(i, j int) bool {
				return lessPath(merged[i].path, merged[j].path)
			})
		}
		return s.build(depth, merged, out), nil
	}

	split := sort.Search(len(payloads), func(i int) bool {
		return bitAt(payloads[i].path, depth) == 1
	})
	left, err := s.insert(n.left, depth+1, payloads[:split], out)
	if err != nil {
		return gstate.EmptyDigest, err
	}
	right, err := s.insert(n.right, depth+1, payloads[split:], out)
	if err != nil {
		return gstate.EmptyDigest, err
	}
	return store(newBranch(left, right), out), nil
}

// build constructs a fresh subtree from sorted, path-distinct payloads.
func (s *State) build(depth int, payloads []payload, out map[gstate.Digest][]byte) gstate.Digest {
	if len(payloads) == 0 {
		return gstate.EmptyDigest
	}
	if len(payloads) == 1 {
		return store(newLeaf(payloads[0].path, payloads[0].value), out)
	}
	split := sort.Search(len(payloads), func(i int) bool {
		return bitAt(payloads[i].path, depth) == 1
	})
	left := s.build(depth+1, payloads[:split], out)
	right := s.build(depth+1, payloads[split:], out)
	return store(newBranch(left, right), out)
}

func store(n *node, out map[gstate.Digest][]byte) gstate.Digest {
	data := n.encode()
	hash := gstate.HashBytes(data)
	out[hash] = data
	return hash
}

// reader is a storage.StateReader pinned to one root.
type reader struct {
	nodes NodeStore
	root  gstate.Digest
}

var _ storage.StateReader = (*reader)(nil)

func (r *reader) Read(key gstate.Key) (gstate.StoredValue, error) {
	if r.root == emptyRootHash {
		return gstate.StoredValue{}, storage.ErrNotFound
	}
	path := pathOf(key)
	nodeHash := r.root
	for depth := 0; depth <= maxDepth; depth++ {
		data, err := r.nodes.GetNode(nodeHash)
		if err != nil {
			return gstate.StoredValue{}, fmt.Errorf("cannot load trie node %s: %w", nodeHash, err)
		}
		n, err := decodeNode(data)
		if err != nil {
			return gstate.StoredValue{}, fmt.Errorf("corrupt trie node %s: %w", nodeHash, err)
		}
		if n.isLeaf {
			if n.path != path {
				return gstate.StoredValue{}, storage.ErrNotFound
			}
			return gstate.DecodeStoredValue(n.value)
		}
		if bitAt(path, depth) == 0 {
			nodeHash = n.left
		} else {
			nodeHash = n.right
		}
		if nodeHash == (gstate.Digest{}) {
			return gstate.StoredValue{}, storage.ErrNotFound
		}
	}
	return gstate.StoredValue{}, fmt.Errorf("trie depth exceeded reading %s", key)
}
