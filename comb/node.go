/*
Package comb implements the combinator IR spec.md §3.3/§4.3 describes: an
immutable Node for every primitive recognizer and higher-order combinator,
each carrying its Kind (which Evaluate dispatches on) and the three
capability predicates other backends (and the packrat engine itself)
consume.

Grounded on the teacher's (`npillmayer/gorgo`) `lr.Symbol`/`lr.Rule`
immutable-value style (lr/tables.go) for the "cheap immutable node"
shape, and on `terex.Atom` (terex/terex.go) for the tagged-discriminator
pattern reused here for Kind.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package comb

import (
	"github.com/npillmayer/schuko/tracing"
	"github.com/parsekit/packrat/token"
)

func tracer() tracing.Trace {
	return tracing.Select("packrat.comb")
}

// Kind discriminates a Node's combinator variety.
type Kind uint8

const (
	KindCh Kind = iota
	KindChRange
	KindIn
	KindNotIn
	KindBits
	KindBytes
	KindToken
	KindEnd
	KindEpsilon
	KindNothing
	KindSkip
	KindSeek
	KindTell

	KindSequence
	KindChoice
	KindLeft
	KindRight
	KindMiddle
	KindOptional
	KindIgnore
	KindMany
	KindMany1
	KindRepeatN
	KindSepBy
	KindSepBy1
	KindButnot
	KindDifference
	KindXor
	KindPermutation
	KindAnd
	KindNot
	KindAction
	KindAttrBool
	KindWithEndianness
	KindBind
	KindPutValue
	KindGetValue
	KindFreeValue
	KindIndirect
)

// Whence is the seek() combinator's parameter. Its values mirror
// stream.Whence, to which the seek evaluator converts it.
type Whence int

const (
	SeekSet Whence = iota
	SeekCur
	SeekEnd
)

// ActionFunc is the user callback for action(); its result must already
// be a valid Token (arena-allocated if it owns bytes).
type ActionFunc func(token.Token) token.Token

// PredFunc is the user predicate for attr_bool().
type PredFunc func(token.Token) bool

// ContinuationFunc is the user callback for bind(); it returns the next
// Node to evaluate, or nil to fail the bind.
type ContinuationFunc func(token.Token) *Node

// Node is an immutable value describing one parser. Cycles are formed
// only through KindIndirect, whose Target field is a once-written pointer
// slot (see Indirect/BindIndirect).
type Node struct {
	Kind Kind

	// Structural children, meaning depends on Kind.
	Children []*Node

	// Primitive parameters.
	Byte       byte   // ch
	Lo, Hi     byte   // ch_range
	Set        [256]bool // in / not_in
	BitWidth   int    // bits / skip
	Signed     bool   // bits
	ByteCount  int    // bytes
	Literal    []byte // token
	SeekOffset int64  // seek
	SeekWhence Whence // seek
	RepeatCount int   // repeat_n

	// Higher-order parameters.
	Action       ActionFunc
	Pred         PredFunc
	Continuation ContinuationFunc
	Endianness   uint8 // bitmask matching stream.Endianness; with_endianness
	Name         string // put_value/get_value/free_value

	// Indirect's late-bound slot.
	Target *Node

	// Capability vector (spec.md §3.3).
	IsValidRegular bool
	IsValidCF      bool
	IsHigherOrder  bool

	// Label is an optional human-readable name, used only for tracing and
	// error messages; it has no semantic effect.
	Label string
}

// newPrimitive builds a Node for a primitive recognizer (is_higher_order
// = false). Primitives that break regular/context-free validity (seek,
// tell, skip per spec.md §4.3) pass the appropriate flags explicitly.
func newPrimitive(k Kind, validRegular, validCF bool) *Node {
	return &Node{Kind: k, IsValidRegular: validRegular, IsValidCF: validCF, IsHigherOrder: false}
}

// newHigherOrder builds a Node for a higher-order combinator, whose
// capability flags are the conjunction of its children's (structural
// combinators are closed under regular/CF validity; spec.md §4.3 lists
// the exceptions that break one or both, which callers pass explicitly).
func newHigherOrder(k Kind, children []*Node, validRegular, validCF bool) *Node {
	return &Node{
		Kind:           k,
		Children:       children,
		IsValidRegular: validRegular,
		IsValidCF:      validCF,
		IsHigherOrder:  true,
	}
}

// allChildren reports the conjunction of a predicate over every child,
// used to compute capability flags for structural combinators that are
// closed under regular/CF validity.
func allChildren(children []*Node, pred func(*Node) bool) bool {
	for _, c := range children {
		if !pred(c) {
			return false
		}
	}
	return true
}

func isValidRegular(n *Node) bool { return n.IsValidRegular }
func isValidCF(n *Node) bool      { return n.IsValidCF }
