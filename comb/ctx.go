package comb

import (
	"github.com/parsekit/packrat/arena"
	"github.com/parsekit/packrat/stream"
	"github.com/parsekit/packrat/token"
)

// Ctx is the per-parse state threaded through every evaluator: the
// mutable cursor, the owning arena, the symbol table for put/get/free
// value, and a recursive dispatch hook. Primitive evaluators mutate
// Stream directly; higher-order evaluators snapshot it (a cheap value
// copy, per spec.md §3.1) before trying a child and restore it on
// failure.
type Ctx struct {
	Stream  stream.InputStream
	Arena   *arena.Arena
	Symbols *SymbolTable

	// Eval is the recursive-dispatch entry point every higher-order
	// evaluator calls for its children, instead of invoking a child's
	// Evaluate directly. The packrat backend installs its memoized
	// do_parse here (spec.md §4.4); a backend with no memoization (or a
	// unit test exercising comb in isolation) keeps the default NewCtx
	// installs, which just calls Evaluate with no caching.
	Eval func(n *Node) (token.Token, bool)
}

// NewCtx creates a Ctx over in, defaulting Eval to direct (unmemoized)
// recursive-descent dispatch; callers that want packrat memoization
// should overwrite Eval after construction (see backend/packrat).
func NewCtx(in stream.InputStream, a *arena.Arena) *Ctx {
	ctx := &Ctx{Stream: in, Arena: a, Symbols: NewSymbolTable()}
	ctx.Eval = func(n *Node) (token.Token, bool) { return Evaluate(ctx, n) }
	return ctx
}

// snapshot/restore are named helpers for the common backtracking idiom:
// copy the cursor before trying something that might fail, restore it if
// it does. Every higher-order evaluator that can fail uses this pattern
// (spec.md §8: "Backtracking conservativeness").
func (ctx *Ctx) snapshot() stream.InputStream { return ctx.Stream }
func (ctx *Ctx) restore(s stream.InputStream) { ctx.Stream = s }
