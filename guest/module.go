package guest

import (
	"fmt"

	"github.com/auraframes/genesis-bridge/errors"
	"github.com/auraframes/genesis-bridge/guest/internal/binary"
	"github.com/auraframes/genesis-bridge/symbol"
)

// Text is the greeting the canonical guest carries.
const Text = "Hello from Genesis C++ Core"

// DefaultExport is the caller-side reference the canonical guest serves.
var DefaultExport = symbol.Export{
	Type:   "com.auraframes.fx.MainActivity",
	Method: "stringFromJNI",
}

// MemoryExport is the name the guest exports its linear memory under.
const MemoryExport = "memory"

// TextOffset is where the greeting bytes start in linear memory.
// Offset 0 is left unused so a zero Ref never points at valid text.
const TextOffset = 8

const pageSize = 65536

// WASM binary format constants, per the core spec.
const (
	wasmMagic   = 0x6d736100 // "\0asm"
	wasmVersion = 1

	sectionType     = 1
	sectionFunction = 3
	sectionMemory   = 5
	sectionExport   = 7
	sectionCode     = 10
	sectionData     = 11

	funcTypeByte = 0x60
	valTypeI64   = 0x7e

	exportKindFunc   = 0x00
	exportKindMemory = 0x02

	opI32Const = 0x41
	opI64Const = 0x42
	opEnd      = 0x0b
)

// Default returns the canonical greeting guest binary.
func Default() []byte {
	wasm, err := Build(DefaultExport, Text)
	if err != nil {
		// Unreachable: the canonical export and text are valid.
		panic(fmt.Sprintf("guest: build canonical module: %v", err))
	}
	return wasm
}

// Build synthesizes a guest binary exporting text under the mangled name
// of export. The exported function takes nothing and returns the packed
// reference to the text bytes.
func Build(export symbol.Export, text string) ([]byte, error) {
	if err := export.Validate(); err != nil {
		return nil, err
	}
	if len(text) > pageSize-TextOffset {
		return nil, errors.InvalidInput(errors.PhaseBuild,
			fmt.Sprintf("text of %d bytes does not fit one memory page", len(text)))
	}

	packed := int64(len(text))<<32 | TextOffset

	w := binary.NewWriter()
	w.WriteU32LE(wasmMagic)
	w.WriteU32LE(wasmVersion)

	// Type section: one type, () -> i64.
	sec := binary.NewWriter()
	sec.WriteU32(1)
	sec.Byte(funcTypeByte)
	sec.WriteU32(0) // no params
	sec.WriteU32(1)
	sec.Byte(valTypeI64)
	w.WriteSection(sectionType, sec.Bytes())

	// Function section: one function of type 0.
	sec = binary.NewWriter()
	sec.WriteU32(1)
	sec.WriteU32(0)
	w.WriteSection(sectionFunction, sec.Bytes())

	// Memory section: exactly one page, fixed.
	sec = binary.NewWriter()
	sec.WriteU32(1)
	sec.Byte(0x01) // limits with max
	sec.WriteU32(1)
	sec.WriteU32(1)
	w.WriteSection(sectionMemory, sec.Bytes())

	// Export section: the function under its mangled symbol, plus memory.
	sec = binary.NewWriter()
	sec.WriteU32(2)
	sec.WriteName(export.Mangle())
	sec.Byte(exportKindFunc)
	sec.WriteU32(0)
	sec.WriteName(MemoryExport)
	sec.Byte(exportKindMemory)
	sec.WriteU32(0)
	w.WriteSection(sectionExport, sec.Bytes())

	// Code section: body is just "i64.const packed".
	body := binary.NewWriter()
	body.WriteU32(0) // no locals
	body.Byte(opI64Const)
	body.WriteS64(packed)
	body.Byte(opEnd)

	sec = binary.NewWriter()
	sec.WriteU32(1)
	sec.WriteU32(uint32(body.Len()))
	sec.WriteBytes(body.Bytes())
	w.WriteSection(sectionCode, sec.Bytes())

	// Data section: active segment with the text at TextOffset.
	sec = binary.NewWriter()
	sec.WriteU32(1)
	sec.WriteU32(0) // active, memory 0
	sec.Byte(opI32Const)
	sec.WriteS64(TextOffset)
	sec.Byte(opEnd)
	sec.WriteVec([]byte(text))
	w.WriteSection(sectionData, sec.Bytes())

	return w.Bytes(), nil
}
