package marshal

import (
	"unicode/utf8"

	genesisbridge "github.com/auraframes/genesis-bridge"
	"github.com/auraframes/genesis-bridge/errors"
)

// Memory is the read view of guest linear memory.
type Memory = genesisbridge.Memory

// Ref is a packed reference to a byte range in guest linear memory:
// length in the high 32 bits, pointer in the low 32 bits.
type Ref uint64

// PackRef builds a Ref from a pointer and length.
func PackRef(ptr, length uint32) Ref {
	return Ref(uint64(length)<<32 | uint64(ptr))
}

// Ptr returns the start offset of the referenced range.
func (r Ref) Ptr() uint32 {
	return uint32(r)
}

// Len returns the length of the referenced range in bytes.
func (r Ref) Len() uint32 {
	return uint32(r >> 32)
}

// LiftString copies the bytes referenced by r out of mem and returns them
// as a Go string. The result is independent of mem: mutating or closing
// the guest afterwards does not affect it.
func LiftString(mem Memory, r Ref) (string, error) {
	if r.Len() == 0 {
		return "", nil
	}

	data, ok := mem.Read(r.Ptr(), r.Len())
	if !ok {
		return "", errors.OutOfBounds(errors.PhaseMarshal, r.Ptr(), r.Len(), mem.Size())
	}
	if !utf8.Valid(data) {
		return "", errors.InvalidUTF8(errors.PhaseMarshal, data)
	}

	// string() copies; data may alias guest memory.
	return string(data), nil
}
