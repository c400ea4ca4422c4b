package gstate

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
)

// KeyTag discriminates the address space a Key belongs to.
type KeyTag uint8

const (
	// KeyTagAccount addresses an account context.
	KeyTagAccount KeyTag = iota
	// KeyTagHash addresses stored contracts and contract packages.
	KeyTagHash
	// KeyTagURef addresses an unforgeable reference to a stored value,
	// typically one reachable through a contract's named keys.
	KeyTagURef
)

const (
	keyAddrLength = 32

	accountKeyPrefix = "account-"
	hashKeyPrefix    = "hash-"
	urefKeyPrefix    = "uref-"
)

// Key is a fixed-width address into the global state. Equality and ordering
// are total and bytewise over the canonical form (tag byte followed by the
// 32-byte address).
type Key struct {
	Tag  KeyTag
	Addr [keyAddrLength]byte
}

// AccountKey returns the Key addressing an account context.
func AccountKey(addr [keyAddrLength]byte) Key {
	return Key{Tag: KeyTagAccount, Addr: addr}
}

// HashKey returns the Key addressing a raw hash, such as a contract or
// contract package address.
func HashKey(addr [keyAddrLength]byte) Key {
	return Key{Tag: KeyTagHash, Addr: addr}
}

// URefKey returns the Key addressing an unforgeable reference.
func URefKey(addr [keyAddrLength]byte) Key {
	return Key{Tag: KeyTagURef, Addr: addr}
}

// CanonicalForm returns the byte representation used for ordering and for
// deriving the key's trie path. Changing this impacts every trie root.
func (k Key) CanonicalForm() []byte {
	b := make([]byte, 0, 1+keyAddrLength)
	b = append(b, byte(k.Tag))
	b = append(b, k.Addr[:]...)
	return b
}

// Compare orders keys bytewise over their canonical form.
func (k Key) Compare(other Key) int {
	return bytes.Compare(k.CanonicalForm(), other.CanonicalForm())
}

func (k Key) String() string {
	switch k.Tag {
	case KeyTagAccount:
		return accountKeyPrefix + hex.EncodeToString(k.Addr[:])
	case KeyTagHash:
		return hashKeyPrefix + hex.EncodeToString(k.Addr[:])
	case KeyTagURef:
		return urefKeyPrefix + hex.EncodeToString(k.Addr[:])
	default:
		return fmt.Sprintf("unknown-%d-%s", k.Tag, hex.EncodeToString(k.Addr[:]))
	}
}

// ParseKey parses the string form produced by String, e.g.
// "hash-0101...01". Used by the CLI when reading override files.
func ParseKey(s string) (Key, error) {
	var tag KeyTag
	var rest string
	switch {
	case strings.HasPrefix(s, accountKeyPrefix):
		tag, rest = KeyTagAccount, strings.TrimPrefix(s, accountKeyPrefix)
	case strings.HasPrefix(s, hashKeyPrefix):
		tag, rest = KeyTagHash, strings.TrimPrefix(s, hashKeyPrefix)
	case strings.HasPrefix(s, urefKeyPrefix):
		tag, rest = KeyTagURef, strings.TrimPrefix(s, urefKeyPrefix)
	default:
		return Key{}, fmt.Errorf("unknown key prefix in %q", s)
	}
	b, err := hex.DecodeString(rest)
	if err != nil {
		return Key{}, fmt.Errorf("cannot decode key address: %w", err)
	}
	if len(b) != keyAddrLength {
		return Key{}, fmt.Errorf("expecting %d address bytes but got %d", keyAddrLength, len(b))
	}
	k := Key{Tag: tag}
	copy(k.Addr[:], b)
	return k, nil
}

func (k Key) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Key) UnmarshalText(text []byte) error {
	parsed, err := ParseKey(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// SortKeys sorts keys in place in canonical bytewise order and returns the
// slice for convenience.
func SortKeys(keys []Key) []Key {
	sort.Slice(keys, func(i, j int) bool {
		return keys[i].Compare(keys[j]) < 0
	})
	return keys
}
