package marshal

import (
	stderrors "errors"
	"testing"

	"github.com/auraframes/genesis-bridge/errors"
)

// fakeMemory is a Memory backed by a plain byte slice.
type fakeMemory []byte

func (m fakeMemory) Read(offset, length uint32) ([]byte, bool) {
	if uint64(offset)+uint64(length) > uint64(len(m)) {
		return nil, false
	}
	return m[offset : offset+length], true
}

func (m fakeMemory) Size() uint32 {
	return uint32(len(m))
}

func TestRefPacking(t *testing.T) {
	tests := []struct {
		ptr, length uint32
	}{
		{0, 0},
		{8, 27},
		{1024, 65536},
		{0xffffffff, 0xffffffff},
	}

	for _, tc := range tests {
		r := PackRef(tc.ptr, tc.length)
		if r.Ptr() != tc.ptr || r.Len() != tc.length {
			t.Errorf("PackRef(%d, %d) round trip = (%d, %d)", tc.ptr, tc.length, r.Ptr(), r.Len())
		}
	}
}

func TestLiftString(t *testing.T) {
	mem := fakeMemory("........Hello from Genesis C++ Core")

	got, err := LiftString(mem, PackRef(8, 27))
	if err != nil {
		t.Fatalf("LiftString: %v", err)
	}
	if want := "Hello from Genesis C++ Core"; got != want {
		t.Errorf("LiftString = %q, want %q", got, want)
	}
}

func TestLiftStringCopies(t *testing.T) {
	mem := fakeMemory("hello")

	got, err := LiftString(mem, PackRef(0, 5))
	if err != nil {
		t.Fatalf("LiftString: %v", err)
	}

	// Mutating guest memory must not change the lifted string.
	mem[0] = 'X'
	if got != "hello" {
		t.Errorf("lifted string aliases guest memory: %q", got)
	}
}

func TestLiftStringEmpty(t *testing.T) {
	got, err := LiftString(fakeMemory(nil), PackRef(0, 0))
	if err != nil {
		t.Fatalf("LiftString: %v", err)
	}
	if got != "" {
		t.Errorf("LiftString = %q, want empty", got)
	}
}

func TestLiftStringOutOfBounds(t *testing.T) {
	mem := fakeMemory("short")

	tests := []struct {
		name string
		ref  Ref
	}{
		{"past end", PackRef(0, 32)},
		{"offset past end", PackRef(64, 1)},
		{"wrap around", PackRef(0xffffffff, 2)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LiftString(mem, tc.ref)
			if !stderrors.Is(err, &errors.Error{Phase: errors.PhaseMarshal, Kind: errors.KindOutOfBounds}) {
				t.Errorf("expected marshal/out_of_bounds, got %v", err)
			}
		})
	}
}

func TestLiftStringInvalidUTF8(t *testing.T) {
	mem := fakeMemory{0xff, 0xfe, 0xfd}

	_, err := LiftString(mem, PackRef(0, 3))
	if !stderrors.Is(err, &errors.Error{Phase: errors.PhaseMarshal, Kind: errors.KindInvalidUTF8}) {
		t.Errorf("expected marshal/invalid_utf8, got %v", err)
	}
}
