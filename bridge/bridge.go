package bridge

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"strings"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	"github.com/auraframes/genesis-bridge/errors"
	"github.com/auraframes/genesis-bridge/guest"
	"github.com/auraframes/genesis-bridge/marshal"
	"github.com/auraframes/genesis-bridge/symbol"
)

// Bridge hosts the greeting guest and exposes its export to Go callers.
type Bridge struct {
	runtime  wazero.Runtime
	compiled wazero.CompiledModule
	pool     *instancePool
	logger   *zap.Logger
	export   symbol.Export
	name     string
}

type config struct {
	logger   *zap.Logger
	export   symbol.Export
	text     string
	poolSize int
}

// Option configures a Bridge.
type Option func(*config)

// WithLogger sets the bridge logger. The default is a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *config) { c.logger = l }
}

// WithPoolSize caps how many idle guest instances the bridge keeps.
// Extra instances are created on demand under concurrent load and
// discarded when the pool is full.
func WithPoolSize(n int) Option {
	return func(c *config) { c.poolSize = n }
}

// WithExport overrides the caller-side reference the guest is exported
// under. The default is guest.DefaultExport.
func WithExport(e symbol.Export) Option {
	return func(c *config) { c.export = e }
}

// WithText overrides the text the guest serves. The default is guest.Text.
func WithText(text string) Option {
	return func(c *config) { c.text = text }
}

// New builds the greeting guest, compiles it, validates its export
// against the declared contract, and warms one instance.
func New(ctx context.Context, opts ...Option) (*Bridge, error) {
	cfg := &config{
		logger:   zap.NewNop(),
		export:   guest.DefaultExport,
		text:     guest.Text,
		poolSize: runtime.GOMAXPROCS(0),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.poolSize < 1 {
		cfg.poolSize = 1
	}

	wasm, err := guest.Build(cfg.export, cfg.text)
	if err != nil {
		return nil, err
	}

	r := wazero.NewRuntime(ctx)

	compiled, err := r.CompileModule(ctx, wasm)
	if err != nil {
		_ = r.Close(ctx)
		return nil, errors.Load("compile guest", err)
	}

	name := cfg.export.Mangle()
	if err := validateExport(compiled, name); err != nil {
		_ = r.Close(ctx)
		return nil, err
	}

	b := &Bridge{
		runtime:  r,
		compiled: compiled,
		logger:   cfg.logger,
		export:   cfg.export,
		name:     name,
	}
	b.pool = newInstancePool(cfg.poolSize, b.instantiate)

	// Warm one instance so instantiation errors surface at construction
	// time, not on the first call.
	inst, err := b.pool.get(ctx)
	if err != nil {
		_ = r.Close(ctx)
		return nil, err
	}
	b.pool.put(ctx, inst)

	b.logger.Debug("guest loaded",
		zap.String("symbol", name),
		zap.Int("binary_bytes", len(wasm)),
		zap.Int("pool_size", cfg.poolSize),
	)

	return b, nil
}

// Greeting invokes the guest's export and returns the text it serves.
// Safe for concurrent use.
func (b *Bridge) Greeting(ctx context.Context) (string, error) {
	inst, err := b.pool.get(ctx)
	if err != nil {
		return "", err
	}
	defer b.pool.put(ctx, inst)

	results, err := inst.fn.Call(ctx)
	if err != nil {
		return "", errors.Wrap(errors.PhaseCall, errors.KindCallFailed, err, "invoke export").WithSymbol(b.name)
	}

	text, err := marshal.LiftString(inst.memory, marshal.Ref(results[0]))
	if err != nil {
		if e, ok := err.(*errors.Error); ok {
			return "", e.WithSymbol(b.name)
		}
		return "", err
	}

	b.logger.Debug("greeting served", zap.String("symbol", b.name), zap.Int("bytes", len(text)))
	return text, nil
}

// Symbol returns the mangled name the guest exports its function under.
func (b *Bridge) Symbol() string {
	return b.name
}

// Export returns the caller-side reference the bridge serves.
func (b *Bridge) Export() symbol.Export {
	return b.export
}

// Exports returns the guest's exported function names, sorted.
func (b *Bridge) Exports() []string {
	defs := b.compiled.ExportedFunctions()
	names := make([]string, 0, len(defs))
	for name := range defs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Close releases the pool and all runtime resources.
func (b *Bridge) Close(ctx context.Context) error {
	b.pool.close(ctx)
	return b.runtime.Close(ctx)
}

func (b *Bridge) instantiate(ctx context.Context) (*guestInstance, error) {
	mod, err := b.runtime.InstantiateModule(ctx, b.compiled,
		wazero.NewModuleConfig().WithName(""))
	if err != nil {
		return nil, errors.Instantiation(err)
	}

	fn := mod.ExportedFunction(b.name)
	if fn == nil {
		_ = mod.Close(ctx)
		return nil, errors.NotFound(errors.PhaseLink, "export", b.name)
	}
	mem := mod.Memory()
	if mem == nil {
		_ = mod.Close(ctx)
		return nil, errors.NotFound(errors.PhaseLink, "export", guest.MemoryExport)
	}

	return &guestInstance{module: mod, fn: fn, memory: mem}, nil
}

// validateExport checks the compiled guest's core signature against the
// declared WIT contract.
func validateExport(compiled wazero.CompiledModule, name string) error {
	def, ok := compiled.ExportedFunctions()[name]
	if !ok {
		return errors.NotFound(errors.PhaseLink, "export", name)
	}

	wantParams, wantResults, err := greetingCoreShape()
	if err != nil {
		return err
	}

	params, results := def.ParamTypes(), def.ResultTypes()
	if len(params) != len(wantParams) || len(results) != len(wantResults) {
		return errors.TypeMismatch(errors.PhaseLink, name,
			shapeString(wantParams, wantResults), shapeString(params, results))
	}
	for i := range results {
		if results[i] != wantResults[i] {
			return errors.TypeMismatch(errors.PhaseLink, name,
				shapeString(wantParams, wantResults), shapeString(params, results))
		}
	}
	return nil
}

func shapeString(params, results []api.ValueType) string {
	names := make([]string, len(results))
	for i, r := range results {
		names[i] = api.ValueTypeName(r)
	}
	return fmt.Sprintf("func(%d params) -> (%s)", len(params), strings.Join(names, ", "))
}
