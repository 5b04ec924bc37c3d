package packrat

import (
	"github.com/parsekit/packrat/arena"
	"github.com/parsekit/packrat/comb"
	"github.com/parsekit/packrat/errs"
	"github.com/parsekit/packrat/stream"
	"github.com/parsekit/packrat/token"
)

// Config collects the functional options SPEC_FULL.md §A.3 specifies
// (`packrat.WithBackend`, `packrat.WithBlockSize`, `packrat.WithAllocator`
// at the root-facade level; this package's Config is the backend-local
// subset consumed by Parse).
type Config struct {
	BlockSize int
	Allocator arena.Allocator
}

// Option configures a Config.
type Option func(*Config)

// WithBlockSize overrides the arena's block size for this parse.
func WithBlockSize(n int) Option {
	return func(c *Config) { c.BlockSize = n }
}

// WithAllocator substitutes the backing Allocator (e.g. a SlabAllocator
// for embedded-style tests, per spec.md §6.5).
func WithAllocator(a arena.Allocator) Option {
	return func(c *Config) { c.Allocator = a }
}

func newConfig(opts []Option) *Config {
	c := &Config{BlockSize: arena.DefaultBlockSize, Allocator: arena.SystemAllocator}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Result is spec.md §6.3's ParseResult: the root token (if any), the
// total bits consumed, and the owning Arena. Callers must not retain
// AST references after calling Result.Arena.FreeAll.
type Result struct {
	AST       *token.Token
	BitLength int64
	Arena     *arena.Arena
}

// Parse runs root against input under opts, implementing spec.md §4.4's
// packrat evaluator end to end: arena creation, out-of-memory unwinding
// via the arena's except-handler, engine construction, and teardown on
// failure.
//
// Grounded on spec.md §4.4's closing paragraph ("the packrat entry point
// installs a longjmp-style escape on the arena") and §9's replacement
// design note: here an explicit recover()-free escape is unnecessary —
// arena.Arena's except-handler callback already gives Parse an explicit
// hook, invoked synchronously rather than via non-local control transfer.
func Parse(root *comb.Node, input []byte, opts ...Option) (*Result, error) {
	cfg := newConfig(opts)
	a := arena.New(cfg.Allocator, cfg.BlockSize)

	var oomErr error
	a.SetExceptHandler(func(err error) { oomErr = err })

	ctx := comb.NewCtx(stream.New(input), a)
	engine := NewEngine(ctx)

	ast, ok := engine.doParse(root)
	if oomErr != nil {
		a.FreeAll()
		return nil, errs.ErrOOM
	}
	if !ok {
		a.FreeAll()
		return &Result{Arena: a}, nil
	}

	a.Keep(ast)
	return &Result{AST: &ast, BitLength: ast.BitLength, Arena: a}, nil
}
