package tracking

import (
	"fmt"

	"github.com/meridian-chain/meridian-go/model/gstate"
)

// TransformKind discriminates effect log entries.
type TransformKind uint8

const (
	// TransformRead records a read through the tracking copy, hit or miss.
	TransformRead TransformKind = iota
	// TransformWrite records a buffered write.
	TransformWrite
)

func (k TransformKind) String() string {
	switch k {
	case TransformRead:
		return "read"
	case TransformWrite:
		return "write"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(k))
	}
}

// Transform is one entry of the effect log. Value is set for writes only.
type Transform struct {
	Kind  TransformKind
	Key   gstate.Key
	Value *gstate.StoredValue
}

// ExecutionEffect is the ordered record of every read and write performed
// through a tracking copy during one upgrade run. Callers use it for
// auditing and for computing storage diffs.
type ExecutionEffect struct {
	Transforms []Transform
}

// Reads returns the keys of all read transforms, in log order.
func (e ExecutionEffect) Reads() []gstate.Key {
	return e.keysOf(TransformRead)
}

// Writes returns the keys of all write transforms, in log order.
func (e ExecutionEffect) Writes() []gstate.Key {
	return e.keysOf(TransformWrite)
}

// WriteSet returns the distinct keys written, in order of first write. A key
// touched by several transforms, such as an override later rewritten by the
// contract migration, appears once.
func (e ExecutionEffect) WriteSet() []gstate.Key {
	seen := make(map[gstate.Key]struct{})
	var keys []gstate.Key
	for _, t := range e.Transforms {
		if t.Kind != TransformWrite {
			continue
		}
		if _, ok := seen[t.Key]; ok {
			continue
		}
		seen[t.Key] = struct{}{}
		keys = append(keys, t.Key)
	}
	return keys
}

func (e ExecutionEffect) keysOf(kind TransformKind) []gstate.Key {
	var keys []gstate.Key
	for _, t := range e.Transforms {
		if t.Kind == kind {
			keys = append(keys, t.Key)
		}
	}
	return keys
}

// CountFor returns how many reads and writes the log holds for key.
func (e ExecutionEffect) CountFor(key gstate.Key) (reads, writes int) {
	for _, t := range e.Transforms {
		if t.Key != key {
			continue
		}
		switch t.Kind {
		case TransformRead:
			reads++
		case TransformWrite:
			writes++
		}
	}
	return reads, writes
}
