package packrat

import (
	"github.com/npillmayer/schuko/tracing"

	"github.com/parsekit/packrat/arena"
	"github.com/parsekit/packrat/backend"
	"github.com/parsekit/packrat/comb"
	pkrt "github.com/parsekit/packrat/backend/packrat"
	"github.com/parsekit/packrat/errs"
	"github.com/parsekit/packrat/token"

	_ "github.com/parsekit/packrat/backend/glr"
	_ "github.com/parsekit/packrat/backend/lalr"
	_ "github.com/parsekit/packrat/backend/ll"
	_ "github.com/parsekit/packrat/backend/regular"
)

func tracer() tracing.Trace {
	return tracing.Select("packrat")
}

// Option configures a Compile/Parse call (SPEC_FULL.md §A.3), the
// root-facade counterpart of backend/packrat's package-local Config.
type Option func(*config)

type config struct {
	backendSpec string
	blockSize   int
	allocator   arena.Allocator
}

// WithBackend selects a backend by its "name(params)" string form
// (spec.md §6.2). Defaults to "packrat".
func WithBackend(spec string) Option {
	return func(c *config) { c.backendSpec = spec }
}

// WithBlockSize overrides the packrat backend's arena block size. It takes
// effect when passed to Parse or ParseStart; Compile ignores it.
func WithBlockSize(n int) Option {
	return func(c *config) { c.blockSize = n }
}

// WithAllocator substitutes the packrat backend's Allocator. It takes
// effect when passed to Parse or ParseStart; Compile ignores it.
func WithAllocator(a arena.Allocator) Option {
	return func(c *config) { c.allocator = a }
}

func newConfig(opts []Option) *config {
	c := &config{backendSpec: "packrat", blockSize: arena.DefaultBlockSize, allocator: arena.SystemAllocator}
	for _, o := range opts {
		o(c)
	}
	return c
}

// ParseResult is spec.md §6.3's result value: the parsed token tree (nil
// on no-parse), the total bits consumed, and the arena results were
// allocated from. AST references are only valid until Arena.FreeAll is
// called.
type ParseResult struct {
	AST       *token.Token
	BitLength int64
	Arena     *arena.Arena
}

// Parser is a compiled grammar bound to a backend, returned by Compile.
type Parser struct {
	root   *comb.Node
	kind   backend.Kind
	params []int
}

// Compile selects a backend for root per opts' WithBackend (default
// "packrat") and returns a Parser ready for Parse/ParseStart. Mirrors
// spec.md §6.1's `compile(parser, backend, params)` entry point.
func Compile(root *comb.Node, opts ...Option) (*Parser, error) {
	cfg := newConfig(opts)
	spec, err := backend.ParseSpec(cfg.backendSpec)
	if err != nil {
		return nil, err
	}
	if _, ok := backend.Lookup(spec.Kind); !ok {
		return nil, errs.ErrBackendUnavailable
	}
	tracer().Debugf("packrat: compiled grammar for backend %s", spec)
	return &Parser{root: root, kind: spec.Kind, params: spec.Params}, nil
}

// Parse executes p against input, implementing spec.md §6.1's
// `parse(parser, bytes, len)`. Only the packrat backend is fully
// specified; other registered backends report errs.ErrBackendUnavailable
// (or, for `regular`, require going through backend/regular.CompileGrammar
// directly, since a comb.Node cannot express a regex rule set).
func (p *Parser) Parse(input []byte, opts ...Option) (*ParseResult, error) {
	cfg := newConfig(opts)
	if p.kind == backend.Packrat {
		res, err := pkrt.Parse(p.root, input, pkrt.WithBlockSize(cfg.blockSize), pkrt.WithAllocator(cfg.allocator))
		if err != nil {
			return nil, err
		}
		return &ParseResult{AST: res.AST, BitLength: res.BitLength, Arena: res.Arena}, nil
	}

	b, ok := backend.Lookup(p.kind)
	if !ok {
		return nil, errs.ErrBackendUnavailable
	}
	c, err := b.Compile(p.root, p.params)
	if err != nil {
		return nil, err
	}
	ast, err := b.Parse(c, input)
	if err != nil {
		return nil, err
	}
	return &ParseResult{AST: ast}, nil
}

// Session is a chunked parse in progress (spec.md §4.5/§6.1).
type Session struct {
	root *comb.Node
	kind backend.Kind
	opts []Option
	pr   *pkrt.Session
	bs   backend.Session
}

// ParseStart begins a chunked parse of p's grammar.
func (p *Parser) ParseStart(opts ...Option) *Session {
	s := &Session{root: p.root, kind: p.kind, opts: opts}
	if p.kind == backend.Packrat {
		cfg := newConfig(opts)
		s.pr = pkrt.ParseStart(p.root, pkrt.WithBlockSize(cfg.blockSize), pkrt.WithAllocator(cfg.allocator))
		return s
	}
	if b, ok := backend.Lookup(p.kind); ok {
		if c, err := b.Compile(p.root, p.params); err == nil {
			s.bs = b.ParseStart(c)
		}
	}
	return s
}

// ParseChunk feeds the next slice of input.
func (s *Session) ParseChunk(data []byte, isLast bool) {
	if s.pr != nil {
		s.pr.ParseChunk(data, isLast)
		return
	}
	if s.bs != nil {
		s.bs.ParseChunk(data, isLast)
	}
}

// ParseFinish completes the chunked parse.
func (s *Session) ParseFinish() (*ParseResult, error) {
	if s.pr != nil {
		res, err := s.pr.ParseFinish()
		if err != nil {
			return nil, err
		}
		return &ParseResult{AST: res.AST, BitLength: res.BitLength, Arena: res.Arena}, nil
	}
	if s.bs != nil {
		ast, err := s.bs.ParseFinish()
		if err != nil {
			return nil, err
		}
		return &ParseResult{AST: ast}, nil
	}
	return nil, errs.ErrBackendUnavailable
}
