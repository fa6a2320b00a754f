package bridge

import (
	"context"
	"sync"
	"testing"

	"go.uber.org/zap"

	"github.com/auraframes/genesis-bridge/guest"
	"github.com/auraframes/genesis-bridge/symbol"
)

func newTestBridge(t *testing.T, opts ...Option) *Bridge {
	t.Helper()
	ctx := context.Background()
	b, err := New(ctx, opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() {
		if err := b.Close(ctx); err != nil {
			t.Errorf("Close: %v", err)
		}
	})
	return b
}

func TestGreeting(t *testing.T) {
	b := newTestBridge(t)

	got, err := b.Greeting(context.Background())
	if err != nil {
		t.Fatalf("Greeting: %v", err)
	}
	if got != guest.Text {
		t.Errorf("Greeting = %q, want %q", got, guest.Text)
	}
}

func TestGreetingDeterminism(t *testing.T) {
	b := newTestBridge(t)
	ctx := context.Background()

	for i := 0; i < 1000; i++ {
		got, err := b.Greeting(ctx)
		if err != nil {
			t.Fatalf("call %d: %v", i, err)
		}
		if got != guest.Text {
			t.Fatalf("call %d = %q, want %q", i, got, guest.Text)
		}
	}
}

func TestGreetingConcurrent(t *testing.T) {
	b := newTestBridge(t, WithPoolSize(4))
	ctx := context.Background()

	const callers = 8
	results := make([]string, callers)
	errs := make([]error, callers)

	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = b.Greeting(ctx)
		}(i)
	}
	wg.Wait()

	for i := 0; i < callers; i++ {
		if errs[i] != nil {
			t.Fatalf("caller %d: %v", i, errs[i])
		}
		if results[i] != guest.Text {
			t.Errorf("caller %d = %q, want %q", i, results[i], guest.Text)
		}
	}
}

func TestGreetingCustomExportAndText(t *testing.T) {
	export := symbol.Export{Type: "org.example.Widget", Method: "label"}
	b := newTestBridge(t, WithExport(export), WithText("custom text"))

	if b.Symbol() != "Java_org_example_Widget_label" {
		t.Errorf("Symbol = %q", b.Symbol())
	}
	if b.Export() != export {
		t.Errorf("Export = %+v, want %+v", b.Export(), export)
	}

	got, err := b.Greeting(context.Background())
	if err != nil {
		t.Fatalf("Greeting: %v", err)
	}
	if got != "custom text" {
		t.Errorf("Greeting = %q, want %q", got, "custom text")
	}
}

func TestNewRejectsInvalidExport(t *testing.T) {
	_, err := New(context.Background(), WithExport(symbol.Export{Method: "greet"}))
	if err == nil {
		t.Fatal("expected error for export without type")
	}
}

func TestExports(t *testing.T) {
	b := newTestBridge(t)

	exports := b.Exports()
	if len(exports) != 1 {
		t.Fatalf("Exports = %v, want exactly the greeting function", exports)
	}
	if exports[0] != guest.DefaultExport.Mangle() {
		t.Errorf("Exports[0] = %q, want %q", exports[0], guest.DefaultExport.Mangle())
	}
}

func TestGreetingWithLogger(t *testing.T) {
	// Logging must not affect the result.
	b := newTestBridge(t, WithLogger(zap.NewExample()))

	got, err := b.Greeting(context.Background())
	if err != nil {
		t.Fatalf("Greeting: %v", err)
	}
	if got != guest.Text {
		t.Errorf("Greeting = %q, want %q", got, guest.Text)
	}
}
