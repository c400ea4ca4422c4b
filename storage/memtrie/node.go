package memtrie

import (
	"fmt"

	"github.com/meridian-chain/meridian-go/model/gstate"
)

const (
	nodeTagLeaf   = byte(0x00)
	nodeTagBranch = byte(0x01)
	nodeTagEmpty  = byte(0x02)

	// pathLength is the byte length of a trie path. Paths are blake2b
	// digests of the canonical key form, so the trie has a maximum depth of
	// 256 edges.
	pathLength = gstate.DigestLength
	maxDepth   = pathLength * 8
)

// emptyRootHash is the root of the empty state. An empty subtree below a
// branch is referenced by the zero digest instead.
var emptyRootHash = gstate.HashBytes([]byte{nodeTagEmpty})

// node is one vertex of the trie. Tries are immutable: an update creates new
// nodes along the changed paths and shares every untouched subtree with the
// previous root, which is what keeps all historical roots readable.
//
// A subtree holding exactly one payload is always represented by a single
// leaf, so the trie shape is a canonical function of its contents and equal
// states always produce equal roots.
type node struct {
	isLeaf bool

	// leaf fields
	path  [pathLength]byte
	value []byte

	// branch fields; the zero digest denotes an empty child
	left  gstate.Digest
	right gstate.Digest
}

func newLeaf(path [pathLength]byte, value []byte) *node {
	return &node{isLeaf: true, path: path, value: value}
}

func newBranch(left, right gstate.Digest) *node {
	return &node{left: left, right: right}
}

// encode returns the canonical byte form the node is hashed and stored under.
func (n *node) encode() []byte {
	if n.isLeaf {
		b := make([]byte, 0, 1+pathLength+len(n.value))
		b = append(b, nodeTagLeaf)
		b = append(b, n.path[:]...)
		b = append(b, n.value...)
		return b
	}
	b := make([]byte, 0, 1+2*gstate.DigestLength)
	b = append(b, nodeTagBranch)
	b = append(b, n.left[:]...)
	b = append(b, n.right[:]...)
	return b
}

// hash returns the node's content address.
func (n *node) hash() gstate.Digest {
	return gstate.HashBytes(n.encode())
}

func decodeNode(data []byte) (*node, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty node encoding")
	}
	switch data[0] {
	case nodeTagLeaf:
		if len(data) < 1+pathLength {
			return nil, fmt.Errorf("leaf encoding too short: %d bytes", len(data))
		}
		n := &node{isLeaf: true}
		copy(n.path[:], data[1:1+pathLength])
		n.value = append([]byte(nil), data[1+pathLength:]...)
		return n, nil
	case nodeTagBranch:
		if len(data) != 1+2*gstate.DigestLength {
			return nil, fmt.Errorf("branch encoding has %d bytes", len(data))
		}
		n := &node{}
		copy(n.left[:], data[1:1+gstate.DigestLength])
		copy(n.right[:], data[1+gstate.DigestLength:])
		return n, nil
	default:
		return nil, fmt.Errorf("unknown node tag %d", data[0])
	}
}

// bitAt returns the bit of path at the given depth, most significant first.
func bitAt(path [pathLength]byte, depth int) int {
	return int(path[depth/8]>>(7-depth%8)) & 1
}

// pathOf derives the trie path of a global state key.
func pathOf(key gstate.Key) [pathLength]byte {
	return gstate.HashBytes(key.CanonicalForm())
}
