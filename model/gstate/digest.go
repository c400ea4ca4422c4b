package gstate

import (
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/blake2b"
)

// DigestLength is the byte length of a Digest.
const DigestLength = 32

// Digest is a 32-byte blake2b hash addressing a node or root in the
// global state trie.
type Digest [DigestLength]byte

// EmptyDigest is the zero digest. It is not a valid trie root.
var EmptyDigest = Digest{}

// HashBytes hashes raw bytes into a Digest.
func HashBytes(data []byte) Digest {
	return Digest(blake2b.Sum256(data))
}

// ToDigest converts a byte slice into a Digest.
// It returns an error if the slice has an invalid length.
func ToDigest(b []byte) (Digest, error) {
	var d Digest
	if len(b) != DigestLength {
		return EmptyDigest, fmt.Errorf("expecting %d bytes but got %d bytes", DigestLength, len(b))
	}
	copy(d[:], b)
	return d, nil
}

// HexToDigest parses a hex-encoded digest. Useful for CLI input and fixtures.
func HexToDigest(s string) (Digest, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return EmptyDigest, fmt.Errorf("cannot decode digest hex: %w", err)
	}
	return ToDigest(b)
}

func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// IsEmpty returns true for the zero digest.
func (d Digest) IsEmpty() bool {
	return d == EmptyDigest
}
