// Package guest synthesizes the greeting guest module.
//
// The guest is the "native layer" of the bridge: a core WASM module with
// one page of exported linear memory, an active data segment holding the
// greeting bytes, and a single exported function. The function takes no
// parameters and returns a packed i64 reference (length<<32 | pointer) to
// the greeting bytes, which the host lifts into a Go string.
//
// The module is synthesized in memory at bridge construction time; there
// is no .wasm file on disk and no toolchain involved.
package guest
