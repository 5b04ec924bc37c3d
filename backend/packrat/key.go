package packrat

import (
	"fmt"

	"github.com/cnf/structhash"
	"github.com/npillmayer/schuko/tracing"
	"github.com/parsekit/packrat/comb"
	"github.com/parsekit/packrat/stream"
)

func tracer() tracing.Trace {
	return tracing.Select("packrat.backend")
}

// cacheKey is spec.md §4.4's `(combinator_identity, input_position_snapshot)`
// pair, reduced to a comparable Go map key. The combinator's pointer
// identity is captured via its %p formatting (spec.md §9 notes this is
// the natural key shape, acknowledging a "stable integer identity"
// variant exists for serializable keys — not needed here since the cache
// never outlives one Go process/parse). The position fields hashed are
// exactly those that determine logical bit position and read semantics;
// the borrowed Input byte slice itself is deliberately excluded; since it
// is shared (not content-varying) across every snapshot within one
// parse, hashing it would only waste cycles restating the same bytes.
//
// Grounded on gorgo's `lr/earley` package, which hashes an anonymous
// struct of (item, state) via structhash.Hash(..., 1) to build a cache
// key (lr/earley/earley.go's `hash` helper) — the same recipe applied
// here to (combinator pointer, stream position).
type cacheKey string

func makeKey(n *comb.Node, s *stream.InputStream) cacheKey {
	h, err := structhash.Hash(struct {
		Node       string
		Pos        int
		Index      int
		Bit        int
		Margin     int
		Endianness stream.Endianness
		LastChunk  bool
	}{
		Node:       fmt.Sprintf("%p", n),
		Pos:        s.Pos,
		Index:      s.Index,
		Bit:        s.Bit,
		Margin:     s.Margin,
		Endianness: s.Endianness,
		LastChunk:  s.LastChunk,
	}, 1)
	if err != nil {
		// structhash only fails on unhashable field types; every field
		// above is a plain comparable value, so this cannot happen.
		panic(fmt.Sprintf("packrat: cache key hashing failed: %v", err))
	}
	return cacheKey(h)
}
