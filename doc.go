// Package genesisbridge hosts the Genesis native greeting core as a
// WebAssembly module and exposes it to Go callers.
//
// The original core is a JNI stub compiled into an Android application:
// one exported function that builds the text "Hello from Genesis C++ Core"
// in native memory and hands it back across the managed/native boundary.
// This library keeps that contract but swaps the interop mechanism: the
// native layer is a synthesized core WASM guest executed with wazero, and
// the host side of the boundary is Go.
//
// # Architecture Overview
//
//	genesisbridge/       Root package with the linear memory read interface
//	├── bridge/          High-level API: load the guest, call the export
//	├── guest/           Synthesizes the greeting guest WASM binary
//	├── marshal/         Lifts guest strings across the boundary
//	├── symbol/          JNI-style export symbol mangling
//	└── errors/          Structured error types
//
// # Quick Start
//
//	b, err := bridge.New(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer b.Close(ctx)
//
//	greeting, err := b.Greeting(ctx)
//	fmt.Println(greeting) // "Hello from Genesis C++ Core"
//
// # Thread Safety
//
// Bridge is safe for concurrent use. Guest instances are not safe for
// concurrent calls, so the bridge keeps a pool of them and each Greeting
// call borrows one for the duration of the call.
//
// # Memory Model
//
// The greeting bytes live in an active data segment of the guest's linear
// memory. The export returns a packed pointer/length reference; the host
// copies the bytes out, so every returned string is independent of guest
// state and of every other call.
package genesisbridge
