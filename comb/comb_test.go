package comb

import (
	"testing"

	"github.com/parsekit/packrat/arena"
	"github.com/parsekit/packrat/stream"
	"github.com/parsekit/packrat/token"
)

func run(t *testing.T, n *Node, input string) (token.Token, bool, *Ctx) {
	t.Helper()
	a := arena.New(arena.SystemAllocator, 0)
	ctx := NewCtx(stream.New([]byte(input)), a)
	res, ok := ctx.Eval(n)
	return res, ok, ctx
}

func TestSequenceOfChars(t *testing.T) {
	g := Sequence(Ch('a'), Ch('b'), Ch('c'))
	res, ok, _ := run(t, g, "abc")
	if !ok {
		t.Fatalf("want success on \"abc\"")
	}
	if res.Seq().Len() != 3 {
		t.Fatalf("want 3 children, got %d", res.Seq().Len())
	}
	if _, ok, _ := run(t, g, "abx"); ok {
		t.Fatalf("want failure on \"abx\"")
	}
}

func TestManyOfChoice(t *testing.T) {
	g := Many(Choice(Ch('a'), Ch('b')))
	res, ok, ctx := run(t, g, "aabba")
	if !ok {
		t.Fatalf("want success")
	}
	if res.Seq().Len() != 5 {
		t.Fatalf("want 5 matches, got %d", res.Seq().Len())
	}
	if !ctx.Stream.AtEnd() {
		t.Fatalf("want cursor at end of input")
	}

	res2, ok2, _ := run(t, g, "")
	if !ok2 || res2.Seq().Len() != 0 {
		t.Fatalf("want empty success on empty input")
	}
}

func TestPermutationWithOptional(t *testing.T) {
	g := Permutation(Ch('a'), Ch('b'), Optional(Ch('c')))
	res, ok, _ := run(t, g, "ba")
	if !ok {
		t.Fatalf("want success on \"ba\"")
	}
	if res.Seq().At(0).UInt() != 'a' || res.Seq().At(1).UInt() != 'b' || !res.Seq().At(2).IsNone() {
		t.Fatalf("want (a b null), got %v", res)
	}

	res, ok, _ = run(t, g, "cab")
	if !ok || res.Seq().At(2).UInt() != 'c' {
		t.Fatalf("want c matched at index 2 when present, got %v ok=%v", res, ok)
	}

	if _, ok, _ := run(t, g, "cc"); ok {
		t.Fatalf("want failure on \"cc\"")
	}
}

func TestOptionalNeverFails(t *testing.T) {
	g := Optional(Ch('z'))
	res, ok, ctx := run(t, g, "a")
	if !ok || !res.IsNone() {
		t.Fatalf("want (None, true) on a mismatch, got (%v, %v)", res, ok)
	}
	if ctx.Stream.Index != 0 {
		t.Fatalf("want cursor unmoved after a failed optional, got index %d", ctx.Stream.Index)
	}
}

func TestAndConsumesNothing(t *testing.T) {
	g := And(Ch('a'))
	_, ok, ctx := run(t, g, "a")
	if !ok {
		t.Fatalf("want success")
	}
	if ctx.Stream.Index != 0 || ctx.Stream.Bit != 0 {
		t.Fatalf("want cursor unchanged by and(), got index=%d bit=%d", ctx.Stream.Index, ctx.Stream.Bit)
	}
}

func TestIgnorePreservesAdvancement(t *testing.T) {
	plain := Ch('a')
	ignored := Ignore(Ch('a'))

	_, _, ctxPlain := run(t, plain, "a")
	res, ok, ctxIgnored := run(t, ignored, "a")
	if !ok || !res.IsNone() {
		t.Fatalf("want (None, true), got (%v, %v)", res, ok)
	}
	if ctxPlain.Stream.PositionBits() != ctxIgnored.Stream.PositionBits() {
		t.Fatalf("ignore() should advance identically to the wrapped parser")
	}
}

func TestRepeatNZeroAlwaysSucceeds(t *testing.T) {
	g := RepeatN(Ch('a'), 0)
	res, ok, _ := run(t, g, "xyz")
	if !ok || res.Seq().Len() != 0 {
		t.Fatalf("want empty success, got (%v, %v)", res, ok)
	}
}

func TestSepByEmptyInputSucceeds(t *testing.T) {
	g := SepBy(Ch('a'), Ch(','))
	res, ok, _ := run(t, g, "")
	if !ok || res.Seq().Len() != 0 {
		t.Fatalf("want empty success on empty input, got (%v, %v)", res, ok)
	}
}

func TestButnotPrefersShorterMismatch(t *testing.T) {
	g := Butnot(Token([]byte("ab")), Token([]byte("abc")))
	if _, ok, _ := run(t, g, "abc"); ok {
		t.Fatalf("want failure: q matches a longer span than p")
	}
	if _, ok, _ := run(t, g, "abx"); !ok {
		t.Fatalf("want success: q does not match")
	}
}

func TestWithEndiannessRestoresAfterward(t *testing.T) {
	inner := Bits(16, false)
	g := Sequence(WithEndianness(0, inner), Tell())
	res, ok, ctx := run(t, g, "\x01\x02")
	if !ok {
		t.Fatalf("want success")
	}
	// little-endian bytes/bits: 0x01 0x02 -> 0x0201
	if res.Seq().At(0).UInt() != 0x0201 {
		t.Fatalf("want 0x0201 under LE/LE, got 0x%x", res.Seq().At(0).UInt())
	}
	if ctx.Stream.Endianness != stream.DefaultEndianness {
		t.Fatalf("want outer endianness restored after with_endianness, got %v", ctx.Stream.Endianness)
	}
}

func TestPutGetFreeValue(t *testing.T) {
	slot := PutValue(Ch('a'), "x")
	get := GetValue("x")
	free := FreeValue("x")
	g := Sequence(slot, get, free)
	res, ok, _ := run(t, g, "a")
	if !ok {
		t.Fatalf("want success")
	}
	if res.Seq().Len() != 3 {
		t.Fatalf("want 3 children, got %d", res.Seq().Len())
	}

	dup := Sequence(PutValue(Ch('a'), "y"), PutValue(Ch('a'), "y"))
	if _, ok, _ := run(t, dup, "aa"); ok {
		t.Fatalf("want failure: rebinding an existing name is an error")
	}
}

func TestBindThreadsValueIntoContinuation(t *testing.T) {
	g := Bind(Bits(8, false), func(t token.Token) *Node {
		return RepeatN(Ch('x'), int(t.UInt()))
	})
	res, ok, _ := run(t, g, "\x02xx")
	if !ok || res.Seq().Len() != 2 {
		t.Fatalf("want 2 matched x's, got (%v, %v)", res, ok)
	}
}

func TestIndirectSupportsLeftRecursionShapeGraph(t *testing.T) {
	// Graph construction only: verify BindIndirect wires the slot and an
	// unbound indirect fails cleanly (actual left-recursive evaluation is
	// exercised by the packrat backend's tests).
	slot := Indirect()
	if _, ok, _ := run(t, slot, "a"); ok {
		t.Fatalf("want failure evaluating an unbound indirect")
	}
	BindIndirect(slot, Ch('a'))
	res, ok, _ := run(t, slot, "a")
	if !ok || res.UInt() != 'a' {
		t.Fatalf("want bound indirect to delegate to its target")
	}
}
