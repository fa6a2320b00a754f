package guest

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/tetratelabs/wazero"

	"github.com/auraframes/genesis-bridge/symbol"
)

func TestBuildHeader(t *testing.T) {
	wasm, err := Build(DefaultExport, Text)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	header := []byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00}
	if !bytes.HasPrefix(wasm, header) {
		t.Errorf("binary starts with %x, want magic and version %x", wasm[:8], header)
	}
}

func TestDefaultInstantiates(t *testing.T) {
	ctx := context.Background()
	r := wazero.NewRuntime(ctx)
	defer r.Close(ctx)

	mod, err := r.Instantiate(ctx, Default())
	if err != nil {
		t.Fatalf("Instantiate: %v", err)
	}

	fn := mod.ExportedFunction(DefaultExport.Mangle())
	if fn == nil {
		t.Fatalf("export %q missing", DefaultExport.Mangle())
	}

	results, err := fn.Call(ctx)
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}

	packed := results[0]
	ptr := uint32(packed)
	length := uint32(packed >> 32)
	if ptr != TextOffset {
		t.Errorf("pointer = %d, want %d", ptr, TextOffset)
	}
	if int(length) != len(Text) {
		t.Errorf("length = %d, want %d", length, len(Text))
	}

	data, ok := mod.Memory().Read(ptr, length)
	if !ok {
		t.Fatal("text range out of bounds")
	}
	if string(data) != Text {
		t.Errorf("memory holds %q, want %q", data, Text)
	}
}

func TestBuildCustomExport(t *testing.T) {
	ctx := context.Background()
	r := wazero.NewRuntime(ctx)
	defer r.Close(ctx)

	export := symbol.Export{Type: "org.example.my_pkg.Widget", Method: "label"}
	wasm, err := Build(export, "custom text")
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	mod, err := r.Instantiate(ctx, wasm)
	if err != nil {
		t.Fatalf("Instantiate: %v", err)
	}

	fn := mod.ExportedFunction("Java_org_example_my_1pkg_Widget_label")
	if fn == nil {
		t.Fatal("expected mangled export with _1 escape")
	}

	results, err := fn.Call(ctx)
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	data, ok := mod.Memory().Read(uint32(results[0]), uint32(results[0]>>32))
	if !ok {
		t.Fatal("text range out of bounds")
	}
	if string(data) != "custom text" {
		t.Errorf("memory holds %q, want %q", data, "custom text")
	}
}

func TestBuildEmptyText(t *testing.T) {
	ctx := context.Background()
	r := wazero.NewRuntime(ctx)
	defer r.Close(ctx)

	wasm, err := Build(DefaultExport, "")
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	mod, err := r.Instantiate(ctx, wasm)
	if err != nil {
		t.Fatalf("Instantiate: %v", err)
	}

	results, err := mod.ExportedFunction(DefaultExport.Mangle()).Call(ctx)
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	if length := uint32(results[0] >> 32); length != 0 {
		t.Errorf("length = %d, want 0", length)
	}
}

func TestBuildRejectsInvalidInput(t *testing.T) {
	if _, err := Build(symbol.Export{}, Text); err == nil {
		t.Error("expected error for empty export")
	}

	oversized := strings.Repeat("x", pageSize)
	if _, err := Build(DefaultExport, oversized); err == nil {
		t.Error("expected error for text larger than one page")
	}
}
