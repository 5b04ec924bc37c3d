package packrat

import (
	"testing"

	"github.com/parsekit/packrat/comb"
)

func mustParse(t *testing.T, root *comb.Node, input string) *Result {
	t.Helper()
	res, err := Parse(root, []byte(input))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	return res
}

func TestSequenceOfCharsThroughEngine(t *testing.T) {
	g := comb.Sequence(comb.Ch('a'), comb.Ch('b'), comb.Ch('c'))
	res := mustParse(t, g, "abc")
	if res.AST == nil {
		t.Fatalf("want success on \"abc\"")
	}
	if res.AST.Seq().Len() != 3 {
		t.Fatalf("want 3 children, got %d", res.AST.Seq().Len())
	}

	res2 := mustParse(t, g, "abx")
	if res2.AST != nil {
		t.Fatalf("want no parse on \"abx\"")
	}
}

// leftRecursiveExpr builds E -> E '+' D | D ; D -> [0-9], the grammar
// spec.md §8 scenario 2 names as demonstrating indirect left recursion.
func leftRecursiveExpr() *comb.Node {
	e := comb.Indirect()
	d := comb.ChRange('0', '9')
	ePlusD := comb.Sequence(e, comb.Ch('+'), d)
	comb.BindIndirect(e, comb.Choice(ePlusD, d))
	return e
}

func TestLeftRecursiveExpressionIsLeftAssociative(t *testing.T) {
	g := leftRecursiveExpr()
	res := mustParse(t, g, "1+2+3")
	if res.AST == nil {
		t.Fatalf("want success on \"1+2+3\"")
	}
	ast := *res.AST
	// Top level: (E+D) -> Sequence(innerE, '+', '3')
	if ast.Seq().Len() != 3 {
		t.Fatalf("want top-level sequence of 3, got %d: %v", ast.Seq().Len(), ast)
	}
	if ast.Seq().At(1).UInt() != '+' || ast.Seq().At(2).UInt() != '3' {
		t.Fatalf("want top level ... + 3, got %v", ast)
	}
	inner := ast.Seq().At(0)
	if inner.Seq() == nil || inner.Seq().Len() != 3 {
		t.Fatalf("want left child to itself be a 3-element sequence (1 + 2), got %v", inner)
	}
	if inner.Seq().At(0).UInt() != '1' || inner.Seq().At(1).UInt() != '+' || inner.Seq().At(2).UInt() != '2' {
		t.Fatalf("want (1 + 2), got %v", inner)
	}
}

func TestLeftRecursiveExpressionSingleDigit(t *testing.T) {
	g := leftRecursiveExpr()
	res := mustParse(t, g, "7")
	if res.AST == nil {
		t.Fatalf("want success on a bare digit")
	}
	if res.AST.UInt() != '7' {
		t.Fatalf("want the bare digit itself, got %v", res.AST)
	}
}

func TestChunkedTokenMatchesAcrossStashedChunks(t *testing.T) {
	g := comb.Token([]byte("foobar"))
	sess := ParseStart(g)
	sess.ParseChunk([]byte("foo"), false)
	sess.ParseChunk([]byte("bar"), true)
	res, err := sess.ParseFinish()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.AST == nil {
		t.Fatalf("want a match: chunks concatenate to the full literal")
	}
	if string(res.AST.Bytes()) != "foobar" {
		t.Fatalf("want foobar, got %q", res.AST.Bytes())
	}
}

func TestChunkedTokenMismatchAcrossStashedChunks(t *testing.T) {
	g := comb.Token([]byte("foobar"))
	sess := ParseStart(g)
	sess.ParseChunk([]byte("foo"), false)
	sess.ParseChunk([]byte("baz"), true)
	res, err := sess.ParseFinish()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.AST != nil {
		t.Fatalf("want no parse on \"foobaz\"")
	}
}
