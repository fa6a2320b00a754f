package genesisbridge

// Memory is the host's read view of guest linear memory.
type Memory interface {
	// Read returns length bytes starting at offset, or false if the
	// range is out of bounds. The returned slice may alias guest
	// memory; callers that retain the data must copy it.
	Read(offset, length uint32) ([]byte, bool)

	// Size returns the current size of the memory in bytes.
	Size() uint32
}
