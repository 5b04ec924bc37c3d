package packrat

import "testing"

import "github.com/parsekit/packrat/comb"

func TestCompileDefaultsToPackratBackend(t *testing.T) {
	g := comb.Sequence(comb.Ch('a'), comb.Ch('b'))
	p, err := Compile(g)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	res, err := p.Parse([]byte("ab"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if res.AST == nil {
		t.Fatalf("want a match on \"ab\"")
	}
}

func TestCompileUnknownBackendErrors(t *testing.T) {
	g := comb.Ch('a')
	if _, err := Compile(g, WithBackend("bogus")); err == nil {
		t.Fatalf("want an error for an unknown backend spec")
	}
}

func TestCompileUnavailableBackendReportsOnParse(t *testing.T) {
	g := comb.Ch('a')
	p, err := Compile(g, WithBackend("lalr(1)"))
	if err != nil {
		t.Fatalf("Compile should succeed even though lalr is unavailable: %v", err)
	}
	if _, err := p.Parse([]byte("a")); err == nil {
		t.Fatalf("want ErrBackendUnavailable from Parse")
	}
}

func TestChunkedSessionThroughFacade(t *testing.T) {
	g := comb.Token([]byte("hi"))
	p, err := Compile(g)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	sess := p.ParseStart()
	sess.ParseChunk([]byte("h"), false)
	sess.ParseChunk([]byte("i"), true)
	res, err := sess.ParseFinish()
	if err != nil {
		t.Fatalf("ParseFinish: %v", err)
	}
	if res.AST == nil || string(res.AST.Bytes()) != "hi" {
		t.Fatalf("want hi, got %v", res.AST)
	}
}
