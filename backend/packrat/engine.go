/*
Package packrat implements the packrat evaluator spec.md §4.4 specifies:
Warth et al.'s algorithm for direct and indirect left recursion over a
memoizing recursive-descent core, ported procedure-for-procedure from
`original_source/src/backends/packrat.c`'s do_parse/recall/setup_lr/
lr_answer/grow.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package packrat

import (
	"github.com/parsekit/packrat/comb"
	"github.com/parsekit/packrat/stream"
	"github.com/parsekit/packrat/token"
)

// Engine holds the per-parse memoization state: the cache, the active
// left-recursion stack, and the recursion-head map (spec.md §3.4).
type Engine struct {
	ctx            *comb.Ctx
	cache          map[cacheKey]*cacheEntry
	lrStack        []*LRFrame
	recursionHeads map[int64]*RecursionHead
}

// NewEngine creates an Engine bound to ctx and installs its memoized
// do_parse as ctx.Eval, so every higher-order combinator's recursive
// dispatch goes through the packrat cache rather than calling a child's
// raw evaluator directly (spec.md §4.4's entire reason to exist).
func NewEngine(ctx *comb.Ctx) *Engine {
	e := &Engine{
		ctx:            ctx,
		cache:          make(map[cacheKey]*cacheEntry),
		recursionHeads: make(map[int64]*RecursionHead),
	}
	ctx.Eval = e.doParse
	return e
}

// performLowlevelParse snapshots the cursor, invokes n's raw evaluator
// (which recurses back through ctx.Eval — i.e. Engine.doParse — for any
// children), and on success fixes up the result's position/bit-length to
// the consumed span. An evaluator that reports success but leaves
// Overrun set is demoted to failure (spec.md §4.4 step 3b).
func (e *Engine) performLowlevelParse(n *comb.Node) (token.Token, bool) {
	snap := e.ctx.Stream
	res, ok := comb.Evaluate(e.ctx, n)
	if ok && e.ctx.Stream.Overrun {
		e.ctx.Stream = snap
		return token.Token{}, false
	}
	if !ok {
		return token.Token{}, false
	}
	res.Index = int64(snap.Pos) + int64(snap.Index)
	res.BitOffset = int8(snap.Bit)
	res.BitLength = e.ctx.Stream.PositionBits() - snap.PositionBits()
	return res, true
}

// doParse is spec.md §4.4's central procedure.
func (e *Engine) doParse(n *comb.Node) (token.Token, bool) {
	if !n.IsHigherOrder {
		return e.performLowlevelParse(n)
	}

	startPos := e.ctx.Stream
	k := makeKey(n, &e.ctx.Stream)

	entry, found := e.recall(k, n)
	if !found {
		frame := newLRFrame(n)
		e.lrStack = append(e.lrStack, frame)
		e.cache[k] = leftEntry(frame, startPos)

		result, ok := e.performLowlevelParse(n)

		e.lrStack = e.lrStack[:len(e.lrStack)-1]
		if cur := e.cache[k]; cur != nil {
			cur.savedPos = e.ctx.Stream
		}

		if frame.head == nil {
			e.cache[k] = rightEntry(ok, result, e.ctx.Stream)
			return result, ok
		}
		frame.seedOK = ok
		frame.seed = result
		return e.lrAnswer(k, n, frame, startPos)
	}

	if !entry.isLeft {
		e.ctx.Stream = entry.savedPos
		return entry.result, entry.resultOK
	}

	e.setupLR(n, entry.frame)
	return entry.frame.seed, entry.frame.seedOK
}

// recall reconciles a cache lookup with recursion-head state (spec.md
// §4.4's `recall`).
func (e *Engine) recall(k cacheKey, n *comb.Node) (*cacheEntry, bool) {
	pos := e.ctx.Stream.PositionBits()
	head, hasHead := e.recursionHeads[pos]
	entry, cached := e.cache[k]

	if !hasHead {
		return entry, cached
	}
	if !cached && n != head.head && !head.involvedSet.Contains(n) {
		synth := rightEntry(false, token.Token{}, e.ctx.Stream)
		e.cache[k] = synth
		return synth, true
	}
	if cached && head.evalSet.Contains(n) {
		head.evalSet.Remove(n)
		result, ok := e.performLowlevelParse(n)
		updated := rightEntry(ok, result, e.ctx.Stream)
		e.cache[k] = updated
		return updated, true
	}
	return entry, cached
}

// setupLR extends recursion-tracking metadata for a newly observed
// left-recursive re-entry (spec.md §4.4's `setup_lr`).
func (e *Engine) setupLR(p *comb.Node, frame *LRFrame) {
	if frame.head == nil {
		frame.head = newRecursionHead(p)
	}
	for i := len(e.lrStack) - 1; i >= 0; i-- {
		f := e.lrStack[i]
		if f.rule == p {
			break
		}
		f.head = frame.head
		frame.head.involvedSet.Add(f.rule)
	}
}

// lrAnswer is spec.md §4.4's `lr_answer`.
func (e *Engine) lrAnswer(k cacheKey, n *comb.Node, frame *LRFrame, startPos stream.InputStream) (token.Token, bool) {
	if frame.head.head != n {
		return frame.seed, frame.seedOK
	}
	e.cache[k] = rightEntry(frame.seedOK, frame.seed, e.ctx.Stream)
	if !frame.seedOK {
		return frame.seed, false
	}
	return e.grow(k, n, startPos, frame.head)
}

// grow is spec.md §4.4's `grow`: iterative seed-growth, terminating
// because each iteration either consumes strictly more input than the
// last or declines (spec.md §4.4's key invariant, restated as the
// "Growth monotonicity" testable property in §8).
func (e *Engine) grow(k cacheKey, n *comb.Node, startPos stream.InputStream, head *RecursionHead) (token.Token, bool) {
	pos := startPos.PositionBits()
	e.recursionHeads[pos] = head

	fresh := newNodeSet()
	for _, v := range head.involvedSet.Values() {
		fresh.Add(v)
	}
	head.evalSet = fresh

	e.ctx.Stream = startPos
	result, ok := e.performLowlevelParse(n)
	newPos := e.ctx.Stream

	cached := e.cache[k]
	if ok && newPos.PositionBits() > cached.savedPos.PositionBits() {
		e.cache[k] = rightEntry(ok, result, newPos)
		return e.grow(k, n, startPos, head)
	}

	delete(e.recursionHeads, pos)
	e.ctx.Stream = cached.savedPos
	return cached.result, cached.resultOK
}
