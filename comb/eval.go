package comb

import (
	"github.com/parsekit/packrat/stream"
	"github.com/parsekit/packrat/token"
)

// Evaluate is the raw, unmemoized evaluator for n — spec.md §4.4's
// "perform_lowlevel_parse" target. It is called directly by Ctx.Eval in
// the no-memoization case, and by the packrat backend's do_parse, which
// caches the results of higher-order nodes per (node, position) and calls
// it again for each left-recursion growth step. Every branch that fails
// restores ctx.Stream's position to its value at entry, satisfying the
// "backtracking conservativeness" invariant (spec.md §8); end(), seek()
// and not() may additionally leave Overrun set to request more input.
func Evaluate(ctx *Ctx, n *Node) (token.Token, bool) {
	switch n.Kind {
	case KindCh:
		return evalCh(ctx, n)
	case KindChRange:
		return evalChRange(ctx, n)
	case KindIn:
		return evalInSet(ctx, n, true)
	case KindNotIn:
		return evalInSet(ctx, n, false)
	case KindBits:
		return evalBits(ctx, n)
	case KindBytes:
		return evalBytes(ctx, n)
	case KindToken:
		return evalToken(ctx, n)
	case KindEnd:
		return evalEnd(ctx, n)
	case KindEpsilon:
		return token.NoneToken(), true
	case KindNothing:
		return token.Token{}, false
	case KindSkip:
		return evalSkip(ctx, n)
	case KindSeek:
		return evalSeek(ctx, n)
	case KindTell:
		return token.UIntToken(uint64(ctx.Stream.PositionBits())), true

	case KindSequence:
		return evalSequence(ctx, n)
	case KindChoice:
		return evalChoice(ctx, n)
	case KindLeft:
		return evalLeft(ctx, n)
	case KindRight:
		return evalRight(ctx, n)
	case KindMiddle:
		return evalMiddle(ctx, n)
	case KindOptional:
		return evalOptional(ctx, n)
	case KindIgnore:
		return evalIgnore(ctx, n)
	case KindMany:
		return evalMany(ctx, n, false)
	case KindMany1:
		return evalMany(ctx, n, true)
	case KindRepeatN:
		return evalRepeatN(ctx, n)
	case KindSepBy:
		return evalSepBy(ctx, n, false)
	case KindSepBy1:
		return evalSepBy(ctx, n, true)
	case KindButnot:
		return evalButnot(ctx, n)
	case KindDifference:
		return evalDifference(ctx, n)
	case KindXor:
		return evalXor(ctx, n)
	case KindPermutation:
		return evalPermutation(ctx, n)
	case KindAnd:
		return evalAnd(ctx, n)
	case KindNot:
		return evalNot(ctx, n)
	case KindAction:
		return evalAction(ctx, n)
	case KindAttrBool:
		return evalAttrBool(ctx, n)
	case KindWithEndianness:
		return evalWithEndianness(ctx, n)
	case KindBind:
		return evalBind(ctx, n)
	case KindPutValue:
		return evalPutValue(ctx, n)
	case KindGetValue:
		t, ok := ctx.Symbols.Get(n.Name)
		return t, ok
	case KindFreeValue:
		t, ok := ctx.Symbols.Free(n.Name)
		return t, ok
	case KindIndirect:
		return evalIndirect(ctx, n)
	default:
		tracer().Errorf("comb: unknown node kind %d", n.Kind)
		return token.Token{}, false
	}
}

// --- primitives ------------------------------------------------------------

func evalCh(ctx *Ctx, n *Node) (token.Token, bool) {
	snap := ctx.snapshot()
	v := ctx.Stream.ReadBits(8, false)
	if ctx.Stream.Overrun || byte(v) != n.Byte {
		ctx.restore(snap)
		return token.Token{}, false
	}
	return token.UIntToken(uint64(v)), true
}

func evalChRange(ctx *Ctx, n *Node) (token.Token, bool) {
	snap := ctx.snapshot()
	v := ctx.Stream.ReadBits(8, false)
	if ctx.Stream.Overrun || byte(v) < n.Lo || byte(v) > n.Hi {
		ctx.restore(snap)
		return token.Token{}, false
	}
	return token.UIntToken(uint64(v)), true
}

func evalInSet(ctx *Ctx, n *Node, wantMember bool) (token.Token, bool) {
	snap := ctx.snapshot()
	v := ctx.Stream.ReadBits(8, false)
	if ctx.Stream.Overrun || n.Set[byte(v)] != wantMember {
		ctx.restore(snap)
		return token.Token{}, false
	}
	return token.UIntToken(uint64(v)), true
}

func evalBits(ctx *Ctx, n *Node) (token.Token, bool) {
	snap := ctx.snapshot()
	v := ctx.Stream.ReadBits(n.BitWidth, n.Signed)
	if ctx.Stream.Overrun {
		ctx.restore(snap)
		return token.Token{}, false
	}
	if n.Signed {
		return token.SIntToken(v), true
	}
	return token.UIntToken(uint64(v)), true
}

func readBytes(ctx *Ctx, n int) ([]byte, bool) {
	buf := make([]byte, n)
	for i := 0; i < n; i++ {
		v := ctx.Stream.ReadBits(8, false)
		if ctx.Stream.Overrun {
			return nil, false
		}
		buf[i] = byte(v)
	}
	return buf, true
}

func evalBytes(ctx *Ctx, n *Node) (token.Token, bool) {
	if n.ByteCount == 0 {
		return token.BytesToken(nil), true
	}
	snap := ctx.snapshot()
	buf, ok := readBytes(ctx, n.ByteCount)
	if !ok {
		ctx.restore(snap)
		return token.Token{}, false
	}
	return token.BytesToken(buf), true
}

func evalToken(ctx *Ctx, n *Node) (token.Token, bool) {
	if len(n.Literal) == 0 {
		return token.BytesToken(nil), true
	}
	snap := ctx.snapshot()
	buf, ok := readBytes(ctx, len(n.Literal))
	if !ok {
		ctx.restore(snap)
		return token.Token{}, false
	}
	for i := range buf {
		if buf[i] != n.Literal[i] {
			ctx.restore(snap)
			return token.Token{}, false
		}
	}
	return token.BytesToken(buf), true
}

func evalEnd(ctx *Ctx, n *Node) (token.Token, bool) {
	if ctx.Stream.AtEnd() {
		return token.NoneToken(), true
	}
	if !ctx.Stream.LastChunk {
		ctx.Stream.Overrun = true
	}
	return token.Token{}, false
}

func evalSkip(ctx *Ctx, n *Node) (token.Token, bool) {
	snap := ctx.snapshot()
	ctx.Stream.SkipBits(n.BitWidth)
	if ctx.Stream.Overrun {
		ctx.restore(snap)
		return token.Token{}, false
	}
	return token.NoneToken(), true
}

func evalSeek(ctx *Ctx, n *Node) (token.Token, bool) {
	snap := ctx.snapshot()
	pos := ctx.Stream.SeekBits(stream.Whence(n.SeekWhence), n.SeekOffset)
	if ctx.Stream.Overrun {
		ctx.restore(snap)
		ctx.Stream.Overrun = true // preserve the "request more input" signal
		return token.Token{}, false
	}
	return token.UIntToken(uint64(pos)), true
}

// --- structural combinators --------------------------------------------

func evalSequence(ctx *Ctx, n *Node) (token.Token, bool) {
	snap := ctx.snapshot()
	arr := token.NewArray(len(n.Children))
	for _, c := range n.Children {
		res, ok := ctx.Eval(c)
		if !ok {
			ctx.restore(snap)
			return token.Token{}, false
		}
		if !res.IsNone() {
			arr.Append(res)
		}
	}
	return token.SequenceToken(arr), true
}

func evalChoice(ctx *Ctx, n *Node) (token.Token, bool) {
	entry := ctx.snapshot()
	for _, c := range n.Children {
		snap := ctx.snapshot()
		res, ok := ctx.Eval(c)
		if ok {
			return res, true
		}
		ctx.restore(snap)
	}
	ctx.restore(entry)
	return token.Token{}, false
}

func evalLeft(ctx *Ctx, n *Node) (token.Token, bool) {
	snap := ctx.snapshot()
	p, ok := ctx.Eval(n.Children[0])
	if !ok {
		ctx.restore(snap)
		return token.Token{}, false
	}
	if _, ok := ctx.Eval(n.Children[1]); !ok {
		ctx.restore(snap)
		return token.Token{}, false
	}
	return p, true
}

func evalRight(ctx *Ctx, n *Node) (token.Token, bool) {
	snap := ctx.snapshot()
	if _, ok := ctx.Eval(n.Children[0]); !ok {
		ctx.restore(snap)
		return token.Token{}, false
	}
	q, ok := ctx.Eval(n.Children[1])
	if !ok {
		ctx.restore(snap)
		return token.Token{}, false
	}
	return q, true
}

func evalMiddle(ctx *Ctx, n *Node) (token.Token, bool) {
	snap := ctx.snapshot()
	if _, ok := ctx.Eval(n.Children[0]); !ok {
		ctx.restore(snap)
		return token.Token{}, false
	}
	x, ok := ctx.Eval(n.Children[1])
	if !ok {
		ctx.restore(snap)
		return token.Token{}, false
	}
	if _, ok := ctx.Eval(n.Children[2]); !ok {
		ctx.restore(snap)
		return token.Token{}, false
	}
	return x, true
}

func evalOptional(ctx *Ctx, n *Node) (token.Token, bool) {
	snap := ctx.snapshot()
	res, ok := ctx.Eval(n.Children[0])
	if ok {
		return res, true
	}
	ctx.restore(snap)
	return token.NoneToken(), true
}

func evalIgnore(ctx *Ctx, n *Node) (token.Token, bool) {
	snap := ctx.snapshot()
	_, ok := ctx.Eval(n.Children[0])
	if !ok {
		ctx.restore(snap)
		return token.Token{}, false
	}
	return token.NoneToken(), true
}

func evalMany(ctx *Ctx, n *Node, atLeastOne bool) (token.Token, bool) {
	entry := ctx.snapshot()
	arr := token.NewArray(4)
	count := 0
	for {
		snap := ctx.snapshot()
		res, ok := ctx.Eval(n.Children[0])
		if !ok {
			overran := ctx.Stream.Overrun
			ctx.restore(snap)
			if overran {
				ctx.restore(entry)
				return token.Token{}, false
			}
			break
		}
		if !res.IsNone() {
			arr.Append(res)
		}
		count++
	}
	if atLeastOne && count == 0 {
		ctx.restore(entry)
		return token.Token{}, false
	}
	return token.SequenceToken(arr), true
}

func evalRepeatN(ctx *Ctx, n *Node) (token.Token, bool) {
	entry := ctx.snapshot()
	arr := token.NewArray(n.RepeatCount)
	for i := 0; i < n.RepeatCount; i++ {
		res, ok := ctx.Eval(n.Children[0])
		if !ok {
			ctx.restore(entry)
			return token.Token{}, false
		}
		if !res.IsNone() {
			arr.Append(res)
		}
	}
	return token.SequenceToken(arr), true
}

func evalSepBy(ctx *Ctx, n *Node, atLeastOne bool) (token.Token, bool) {
	p, sep := n.Children[0], n.Children[1]
	entry := ctx.snapshot()
	arr := token.NewArray(4)

	firstSnap := ctx.snapshot()
	res, ok := ctx.Eval(p)
	if !ok {
		if ctx.Stream.Overrun {
			ctx.restore(entry)
			return token.Token{}, false
		}
		ctx.restore(firstSnap)
		if atLeastOne {
			return token.Token{}, false
		}
		return token.SequenceToken(arr), true
	}
	if !res.IsNone() {
		arr.Append(res)
	}

	for {
		beforeSep := ctx.snapshot()
		if _, ok := ctx.Eval(sep); !ok {
			overran := ctx.Stream.Overrun
			ctx.restore(beforeSep)
			if overran {
				ctx.restore(entry)
				return token.Token{}, false
			}
			break
		}
		res, ok := ctx.Eval(p)
		if !ok {
			overran := ctx.Stream.Overrun
			ctx.restore(beforeSep)
			if overran {
				ctx.restore(entry)
				return token.Token{}, false
			}
			break
		}
		if !res.IsNone() {
			arr.Append(res)
		}
	}
	return token.SequenceToken(arr), true
}

func evalButnot(ctx *Ctx, n *Node) (token.Token, bool) {
	entry := ctx.snapshot()
	p, q := n.Children[0], n.Children[1]
	pRes, ok := ctx.Eval(p)
	if !ok {
		ctx.restore(entry)
		return token.Token{}, false
	}
	afterP := ctx.snapshot()
	ctx.restore(entry)
	_, qOK := ctx.Eval(q)
	afterQ := ctx.snapshot()
	ctx.restore(afterP)
	if !qOK {
		return pRes, true
	}
	pLen := afterP.PositionBits() - entry.PositionBits()
	qLen := afterQ.PositionBits() - entry.PositionBits()
	if qLen < pLen {
		return pRes, true
	}
	ctx.restore(entry)
	return token.Token{}, false
}

func evalDifference(ctx *Ctx, n *Node) (token.Token, bool) {
	entry := ctx.snapshot()
	p, q := n.Children[0], n.Children[1]
	pRes, ok := ctx.Eval(p)
	if !ok {
		ctx.restore(entry)
		return token.Token{}, false
	}
	afterP := ctx.snapshot()
	ctx.restore(entry)
	_, qOK := ctx.Eval(q)
	afterQ := ctx.snapshot()
	ctx.restore(afterP)
	if !qOK {
		return pRes, true
	}
	pLen := afterP.PositionBits() - entry.PositionBits()
	qLen := afterQ.PositionBits() - entry.PositionBits()
	if qLen > pLen {
		return pRes, true
	}
	ctx.restore(entry)
	return token.Token{}, false
}

func evalXor(ctx *Ctx, n *Node) (token.Token, bool) {
	entry := ctx.snapshot()
	p, q := n.Children[0], n.Children[1]
	pRes, pOK := ctx.Eval(p)
	afterP := ctx.snapshot()
	ctx.restore(entry)
	qRes, qOK := ctx.Eval(q)
	afterQ := ctx.snapshot()

	switch {
	case pOK && !qOK:
		ctx.restore(afterP)
		return pRes, true
	case qOK && !pOK:
		ctx.restore(afterQ)
		return qRes, true
	default:
		ctx.restore(entry)
		return token.Token{}, false
	}
}

func evalPermutation(ctx *Ctx, n *Node) (token.Token, bool) {
	entry := ctx.snapshot()
	count := len(n.Children)
	matched := make([]bool, count)
	results := make([]token.Token, count)
	done := 0

	for done < count {
		progressed := false
		deferredIdx := -1

		for i, c := range n.Children {
			if matched[i] {
				continue
			}
			snap := ctx.snapshot()
			res, ok := ctx.Eval(c)
			if !ok {
				ctx.restore(snap)
				continue
			}
			if res.IsNone() {
				if deferredIdx == -1 {
					deferredIdx = i
				}
				ctx.restore(snap)
				continue
			}
			results[i] = res
			matched[i] = true
			done++
			progressed = true
			break
		}

		if !progressed {
			if deferredIdx != -1 {
				results[deferredIdx] = token.NoneToken()
				matched[deferredIdx] = true
				done++
				continue
			}
			ctx.restore(entry)
			return token.Token{}, false
		}
	}

	arr := token.NewArray(count)
	for _, r := range results {
		arr.Append(r)
	}
	return token.SequenceToken(arr), true
}

func evalAnd(ctx *Ctx, n *Node) (token.Token, bool) {
	snap := ctx.snapshot()
	_, ok := ctx.Eval(n.Children[0])
	ctx.restore(snap)
	if !ok {
		return token.Token{}, false
	}
	return token.NoneToken(), true
}

func evalNot(ctx *Ctx, n *Node) (token.Token, bool) {
	snap := ctx.snapshot()
	_, ok := ctx.Eval(n.Children[0])
	overran := ctx.Stream.Overrun
	ctx.restore(snap)
	if ok {
		return token.Token{}, false
	}
	if overran {
		ctx.Stream.Overrun = true
		return token.Token{}, false
	}
	return token.NoneToken(), true
}

func evalAction(ctx *Ctx, n *Node) (token.Token, bool) {
	snap := ctx.snapshot()
	res, ok := ctx.Eval(n.Children[0])
	if !ok {
		ctx.restore(snap)
		return token.Token{}, false
	}
	return n.Action(res), true
}

func evalAttrBool(ctx *Ctx, n *Node) (token.Token, bool) {
	snap := ctx.snapshot()
	res, ok := ctx.Eval(n.Children[0])
	if !ok {
		ctx.restore(snap)
		return token.Token{}, false
	}
	if !n.Pred(res) {
		ctx.restore(snap)
		return token.Token{}, false
	}
	return res, true
}

func evalWithEndianness(ctx *Ctx, n *Node) (token.Token, bool) {
	old := ctx.Stream.Endianness
	ctx.Stream.Endianness = stream.Endianness(n.Endianness)
	res, ok := ctx.Eval(n.Children[0])
	ctx.Stream.Endianness = old
	return res, ok
}

func evalBind(ctx *Ctx, n *Node) (token.Token, bool) {
	snap := ctx.snapshot()
	res, ok := ctx.Eval(n.Children[0])
	if !ok {
		ctx.restore(snap)
		return token.Token{}, false
	}
	next := n.Continuation(res)
	if next == nil {
		ctx.restore(snap)
		return token.Token{}, false
	}
	res2, ok2 := ctx.Eval(next)
	if !ok2 {
		ctx.restore(snap)
		return token.Token{}, false
	}
	return res2, true
}

func evalPutValue(ctx *Ctx, n *Node) (token.Token, bool) {
	streamSnap := ctx.snapshot()
	res, ok := ctx.Eval(n.Children[0])
	if !ok {
		ctx.restore(streamSnap)
		return token.Token{}, false
	}
	if !ctx.Symbols.Put(n.Name, res) {
		ctx.restore(streamSnap)
		return token.Token{}, false
	}
	return res, true
}

func evalIndirect(ctx *Ctx, n *Node) (token.Token, bool) {
	if n.Target == nil {
		tracer().Errorf("comb: evaluated unbound indirect %q", n.Label)
		return token.Token{}, false
	}
	return ctx.Eval(n.Target)
}
