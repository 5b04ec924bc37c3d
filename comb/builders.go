package comb

// --- Primitive recognizers (spec.md §4.3) ---------------------------------

// Ch matches a single byte exactly equal to c.
func Ch(c byte) *Node {
	n := newPrimitive(KindCh, true, true)
	n.Byte = c
	return n
}

// ChRange matches a single byte in [lo, hi].
func ChRange(lo, hi byte) *Node {
	n := newPrimitive(KindChRange, true, true)
	n.Lo, n.Hi = lo, hi
	return n
}

// In matches a single byte present in set.
func In(set []byte) *Node {
	n := newPrimitive(KindIn, true, true)
	for _, b := range set {
		n.Set[b] = true
	}
	return n
}

// NotIn matches a single byte absent from set.
func NotIn(set []byte) *Node {
	n := newPrimitive(KindNotIn, true, true)
	for _, b := range set {
		n.Set[b] = true
	}
	return n
}

// Bits consumes n bits (1..64), emitting UInt or SInt depending on signed.
func Bits(n int, signed bool) *Node {
	nd := newPrimitive(KindBits, true, true)
	nd.BitWidth = n
	nd.Signed = signed
	return nd
}

// Uint8/16/32/64 and Int8/16/32/64 are the shorthand combinators spec.md
// §4.3 names for bits(8k, sign).
func Uint8() *Node  { return Bits(8, false) }
func Uint16() *Node { return Bits(16, false) }
func Uint32() *Node { return Bits(32, false) }
func Uint64() *Node { return Bits(64, false) }
func Int8() *Node   { return Bits(8, true) }
func Int16() *Node  { return Bits(16, true) }
func Int32() *Node  { return Bits(32, true) }
func Int64() *Node  { return Bits(64, true) }

// Bytes consumes exactly n bytes, emitting a Bytes token (n == 0 is the
// empty-bytes success).
func Bytes(n int) *Node {
	nd := newPrimitive(KindBytes, true, true)
	nd.ByteCount = n
	return nd
}

// Token matches literal byte-for-byte.
func Token(literal []byte) *Node {
	n := newPrimitive(KindToken, true, true)
	n.Literal = literal
	return n
}

// End succeeds with None only at end-of-stream; in chunked mode before
// the last chunk it requests more input instead of committing to failure.
func End() *Node { return newPrimitive(KindEnd, true, true) }

// Epsilon always succeeds with None, consuming nothing.
func Epsilon() *Node { return newPrimitive(KindEpsilon, true, true) }

// Nothing always fails.
func Nothing() *Node { return newPrimitive(KindNothing, true, true) }

// Skip consumes n bits, emitting None. Breaks CF/regular validity
// (spec.md §4.3).
func Skip(n int) *Node {
	nd := newPrimitive(KindSkip, false, false)
	nd.BitWidth = n
	return nd
}

// Seek repositions the cursor; emits UInt(new_position). Breaks
// CF/regular validity.
func Seek(offset int64, whence Whence) *Node {
	n := newPrimitive(KindSeek, false, false)
	n.SeekOffset = offset
	n.SeekWhence = whence
	return n
}

// Tell emits the current bit position, consuming nothing. Breaks
// CF/regular validity.
func Tell() *Node { return newPrimitive(KindTell, false, false) }

// --- Structural higher-order combinators ----------------------------------

// Sequence runs children in order; children producing None are suppressed
// from the result.
func Sequence(children ...*Node) *Node {
	return newHigherOrder(KindSequence, children,
		allChildren(children, isValidRegular), allChildren(children, isValidCF))
}

// Choice tries each alternative in order; first success wins.
func Choice(children ...*Node) *Node {
	return newHigherOrder(KindChoice, children,
		allChildren(children, isValidRegular), allChildren(children, isValidCF))
}

// Left runs p then q, keeping only p's result.
func Left(p, q *Node) *Node {
	return newHigherOrder(KindLeft, []*Node{p, q}, p.IsValidRegular && q.IsValidRegular, p.IsValidCF && q.IsValidCF)
}

// Right runs p then q, keeping only q's result.
func Right(p, q *Node) *Node {
	return newHigherOrder(KindRight, []*Node{p, q}, p.IsValidRegular && q.IsValidRegular, p.IsValidCF && q.IsValidCF)
}

// Middle runs p, x, q in order, keeping only x's result.
func Middle(p, x, q *Node) *Node {
	children := []*Node{p, x, q}
	return newHigherOrder(KindMiddle, children,
		allChildren(children, isValidRegular), allChildren(children, isValidCF))
}

// Optional tries p; on failure restores and succeeds with None. Never
// fails.
func Optional(p *Node) *Node {
	return newHigherOrder(KindOptional, []*Node{p}, p.IsValidRegular, p.IsValidCF)
}

// Ignore runs p; on success its result is replaced with None but the
// cursor still advances as p would.
func Ignore(p *Node) *Node {
	return newHigherOrder(KindIgnore, []*Node{p}, p.IsValidRegular, p.IsValidCF)
}

// Many matches p zero or more times.
func Many(p *Node) *Node {
	return newHigherOrder(KindMany, []*Node{p}, p.IsValidRegular, p.IsValidCF)
}

// Many1 matches p one or more times.
func Many1(p *Node) *Node {
	return newHigherOrder(KindMany1, []*Node{p}, p.IsValidRegular, p.IsValidCF)
}

// RepeatN matches p exactly n times.
func RepeatN(p *Node, n int) *Node {
	nd := newHigherOrder(KindRepeatN, []*Node{p}, p.IsValidRegular, p.IsValidCF)
	nd.RepeatCount = n
	return nd
}

// SepBy matches a (possibly empty) p-separated-by-sep list.
func SepBy(p, sep *Node) *Node {
	return newHigherOrder(KindSepBy, []*Node{p, sep}, p.IsValidRegular && sep.IsValidRegular, p.IsValidCF && sep.IsValidCF)
}

// SepBy1 is SepBy but requires at least one match.
func SepBy1(p, sep *Node) *Node {
	return newHigherOrder(KindSepBy1, []*Node{p, sep}, p.IsValidRegular && sep.IsValidRegular, p.IsValidCF && sep.IsValidCF)
}

// Butnot succeeds iff p matches and q either fails or matches a strictly
// shorter span.
func Butnot(p, q *Node) *Node {
	return newHigherOrder(KindButnot, []*Node{p, q}, p.IsValidRegular && q.IsValidRegular, p.IsValidCF && q.IsValidCF)
}

// Difference succeeds iff p matches and q either fails or matches a
// strictly longer span.
func Difference(p, q *Node) *Node {
	return newHigherOrder(KindDifference, []*Node{p, q}, p.IsValidRegular && q.IsValidRegular, p.IsValidCF && q.IsValidCF)
}

// Xor succeeds iff exactly one of p, q matches.
func Xor(p, q *Node) *Node {
	return newHigherOrder(KindXor, []*Node{p, q}, p.IsValidRegular && q.IsValidRegular, p.IsValidCF && q.IsValidCF)
}

// Permutation matches each child exactly once, in any order, left-biased
// over the remaining unmatched arguments at each step.
func Permutation(children ...*Node) *Node {
	return newHigherOrder(KindPermutation, children,
		allChildren(children, isValidRegular), allChildren(children, isValidCF))
}

// And is positive lookahead: restores the cursor, succeeds with None iff
// p succeeded.
func And(p *Node) *Node {
	return newHigherOrder(KindAnd, []*Node{p}, p.IsValidRegular, p.IsValidCF)
}

// Not is negative lookahead: restores the cursor, succeeds with None iff
// p failed (propagating overrun rather than committing, in chunked mode).
func Not(p *Node) *Node {
	return newHigherOrder(KindNot, []*Node{p}, p.IsValidRegular, p.IsValidCF)
}

// Action runs p then applies f to its result. Breaks CF/regular validity
// (spec.md §4.3: action is consumed only by the packrat path).
func Action(p *Node, f ActionFunc) *Node {
	n := newHigherOrder(KindAction, []*Node{p}, false, false)
	n.Action = f
	return n
}

// AttrBool runs p then succeeds iff pred(result) is true. Breaks
// CF/regular validity.
func AttrBool(p *Node, pred PredFunc) *Node {
	n := newHigherOrder(KindAttrBool, []*Node{p}, false, false)
	n.Pred = pred
	return n
}

// WithEndianness sets byte/bit order for the duration of p, restoring it
// afterward regardless of outcome.
func WithEndianness(mask uint8, p *Node) *Node {
	n := newHigherOrder(KindWithEndianness, []*Node{p}, p.IsValidRegular, p.IsValidCF)
	n.Endianness = mask
	return n
}

// Bind runs p, calls k on its result to obtain a continuation parser, and
// runs that. Breaks CF/regular validity.
func Bind(p *Node, k ContinuationFunc) *Node {
	n := newHigherOrder(KindBind, []*Node{p}, false, false)
	n.Continuation = k
	return n
}

// PutValue runs p; on success stores name -> result in the current symbol
// table, failing (and rolling back) if name is already bound. Breaks
// CF/regular validity.
func PutValue(p *Node, name string) *Node {
	n := newHigherOrder(KindPutValue, []*Node{p}, false, false)
	n.Name = name
	return n
}

// GetValue emits the value stored under name, failing if absent. Breaks
// CF/regular validity.
func GetValue(name string) *Node {
	n := newHigherOrder(KindGetValue, nil, false, false)
	n.Name = name
	return n
}

// FreeValue is GetValue but also removes the mapping. Breaks CF/regular
// validity.
func FreeValue(name string) *Node {
	n := newHigherOrder(KindFreeValue, nil, false, false)
	n.Name = name
	return n
}

// Indirect creates an unbound placeholder. Evaluating it before
// BindIndirect installs a target is a programmer error (fails the
// parse, per spec.md §7).
func Indirect() *Node {
	return &Node{Kind: KindIndirect, IsHigherOrder: true}
}

// BindIndirect installs p as slot's target exactly once; a second call
// panics, since rebinding an indirect slot is a programmer error detected
// at graph-construction time rather than parse time.
func BindIndirect(slot, p *Node) {
	if slot.Kind != KindIndirect {
		panic("comb: BindIndirect target is not an Indirect node")
	}
	if slot.Target != nil {
		panic("comb: indirect slot already bound")
	}
	slot.Target = p
	slot.IsValidRegular = p.IsValidRegular
	slot.IsValidCF = p.IsValidCF
}
