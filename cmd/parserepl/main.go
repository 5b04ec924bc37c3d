/*
Command parserepl is an interactive sandbox for experimenting with
combinator grammars, the way `terex/terexlang/trepl` is for the
teacher's term-rewriting language. It ships a small left-recursive
arithmetic grammar (sums and products over parenthesized integers,
demonstrating spec.md §8 scenario 2's left-recursion handling) and
prints every parsed line two ways: the compact unamb form and a pterm
tree.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package main

import (
	"flag"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/pterm/pterm"

	"github.com/parsekit/packrat"
	"github.com/parsekit/packrat/comb"
	"github.com/parsekit/packrat/token"
	"github.com/parsekit/packrat/unamb"
)

func tracer() tracing.Trace {
	return tracing.Select("packrat.parserepl")
}

// arithGrammar builds:
//
//	Expr   -> Expr ('+'|'-') Term | Term
//	Term   -> Term ('*'|'/') Factor | Factor
//	Factor -> digit+ | '(' Expr ')'
//
// following spec.md §8 scenario 2's left-recursive expression grammar,
// extended with subtraction/division/parentheses as the demo command's
// one elaboration beyond the bare test fixture.
func arithGrammar() *comb.Node {
	expr := comb.Indirect()
	term := comb.Indirect()
	digits := comb.Many1(comb.ChRange('0', '9'))
	factor := comb.Choice(digits, comb.Middle(comb.Ch('('), expr, comb.Ch(')')))
	comb.BindIndirect(term, comb.Choice(
		comb.Sequence(term, comb.In([]byte("*/")), factor),
		factor,
	))
	comb.BindIndirect(expr, comb.Choice(
		comb.Sequence(expr, comb.In([]byte("+-")), term),
		term,
	))
	return expr
}

func main() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{Text: "  >>", Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack)}
	pterm.Error.Prefix = pterm.Prefix{Text: "  Error", Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack)}

	gtrace.SyntaxTracer = gologadapter.New()
	tlevel := flag.String("trace", "Info", "Trace level [Debug|Info|Error]")
	flag.Parse()
	tracer().SetTraceLevel(tracing.TraceLevelFromString(*tlevel))
	pterm.Info.Println("Welcome to parserepl")

	g := arithGrammar()
	p, err := packrat.Compile(g)
	if err != nil {
		tracer().Errorf("compiling grammar: %v", err)
		os.Exit(2)
	}

	if rest := strings.TrimSpace(strings.Join(flag.Args(), " ")); rest != "" {
		evalLine(p, rest)
		return
	}

	repl, err := readline.New("parserepl> ")
	if err != nil {
		tracer().Errorf("%v", err)
		os.Exit(3)
	}
	tracer().Infof("Quit with <ctrl>D")
	for {
		line, err := repl.Readline()
		if err != nil {
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		evalLine(p, line)
	}
	pterm.Info.Println("Good bye!")
}

func evalLine(p *packrat.Parser, line string) {
	res, err := p.Parse([]byte(line))
	if err != nil {
		pterm.Error.Println(err.Error())
		return
	}
	if res.AST == nil {
		pterm.Error.Println("no parse")
		return
	}
	pterm.Info.Println(unamb.Write(*res.AST))
	root := treeNode(*res.AST)
	pterm.DefaultTree.WithRoot(root).Render()
}

// treeNode renders a token as a pterm tree, one child per sequence
// element, matching trepl's indentedListFrom/leveledElem walk
// (terex/terexlang/trepl/repl.go) but over token.Token instead of
// terex.GCons.
func treeNode(t token.Token) pterm.TreeNode {
	if t.Kind != token.Sequence {
		return pterm.TreeNode{Text: unamb.Write(t)}
	}
	seq := t.Seq()
	children := make([]pterm.TreeNode, seq.Len())
	for i := 0; i < seq.Len(); i++ {
		children[i] = treeNode(seq.At(i))
	}
	return pterm.TreeNode{Text: "seq", Children: children}
}
