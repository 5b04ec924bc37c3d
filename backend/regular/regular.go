/*
Package regular is the one fully working collaborator backend
SPEC_FULL.md §B names alongside packrat: a "regular" grammar is exactly
what a DFA-based lexer recognizes, so compile builds a
`github.com/timtadh/lexmachine` DFA from a set of named regex rules and
parse tokenizes input into a flat sequence of `token.Token`s.

Grounded on the teacher's `lr/scanner/lexmach` adapter
(lr/scanner/lexmach/lexmachine.go): the same `lexmachine.NewLexer`/
`Lexer.Add`/`Lexer.Compile`/`Lexer.Scanner` call sequence, narrowed from
lexmach's parser-facing `scanner.Tokenizer` interface down to this
module's `backend.Backend` vtable — compile builds the DFA once,
parse drains a fresh `lexmachine.Scanner` over the given input into a
`token.Sequence`.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package regular

import (
	"fmt"

	"github.com/npillmayer/schuko/tracing"
	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"

	"github.com/parsekit/packrat/backend"
	"github.com/parsekit/packrat/comb"
	"github.com/parsekit/packrat/errs"
	"github.com/parsekit/packrat/token"
)

func tracer() tracing.Trace {
	return tracing.Select("packrat.backend.regular")
}

func init() {
	backend.Register(backend.Regular, adapter{})
}

// Rule is one named regular-expression rule. id is the lexmachine token
// type id reported back on a match; name is used only for tracing.
type Rule struct {
	Name  string
	Regex string
	ID    int
}

// Grammar is what CompileGrammar expects: comb's IR has no notion of
// regular expressions, so a regular-backend grammar is handed in
// directly as a rule set rather than built from
// comb.Node combinators (spec.md §1 excludes grammar desugaring to this
// backend's native form).
type Grammar struct {
	Rules []Rule
}

type compiled struct {
	lexer *lexmachine.Lexer
}

func (compiled) Backend() backend.Kind { return backend.Regular }

type adapter struct{}

func (adapter) Name() string { return "regular" }

// Compile builds the DFA. Since comb.Node has no regular-expression
// payload of its own, callers drive this backend through CompileGrammar
// directly rather than through the Backend vtable's generic
// comb.Node-based Compile (which exists to satisfy the interface but
// cannot express a rule set and always fails with ErrBadBackendSpec).
func (adapter) Compile(root *comb.Node, params []int) (backend.Compiled, error) {
	return nil, fmt.Errorf("%w: regular backend requires CompileGrammar, not a comb.Node", errs.ErrBadBackendSpec)
}

func (adapter) Parse(c backend.Compiled, input []byte) (*token.Token, error) {
	cc, ok := c.(*compiled)
	if !ok {
		return nil, errs.ErrBadBackendSpec
	}
	toks, err := scan(cc.lexer, input)
	if err != nil {
		return nil, err
	}
	seq := token.SequenceToken(toks)
	return &seq, nil
}

func (adapter) ParseStart(c backend.Compiled) backend.Session {
	return &session{c: c.(*compiled)}
}

type session struct {
	c   *compiled
	buf []byte
}

func (s *session) ParseChunk(data []byte, isLast bool) {
	s.buf = append(s.buf, data...)
}

func (s *session) ParseFinish() (*token.Token, error) {
	toks, err := scan(s.c.lexer, s.buf)
	if err != nil {
		return nil, err
	}
	seq := token.SequenceToken(toks)
	return &seq, nil
}

// CompileGrammar builds a DFA-backed compiled handle from g, the entry
// point regular-backend callers use in place of the generic
// backend.Backend.Compile (see Compile's doc comment).
func CompileGrammar(g Grammar) (backend.Compiled, error) {
	lexer := lexmachine.NewLexer()
	for _, r := range g.Rules {
		rule := r
		lexer.Add([]byte(rule.Regex), func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
			return s.Token(rule.ID, rule.Name, m), nil
		})
	}
	if err := lexer.Compile(); err != nil {
		tracer().Errorf("regular: DFA compile failed: %v", err)
		return nil, fmt.Errorf("%w: %v", errs.ErrBadBackendSpec, err)
	}
	return &compiled{lexer: lexer}, nil
}

// scan drains a fresh lexmachine.Scanner over input into an Array of
// Bytes tokens, one per match, mirroring lexmach's NextToken loop
// (lr/scanner/lexmach/lexmachine.go) but collecting a flat sequence
// instead of feeding a parser one token at a time.
func scan(lexer *lexmachine.Lexer, input []byte) (*token.Array, error) {
	scanner, err := lexer.Scanner(input)
	if err != nil {
		return nil, err
	}
	out := token.NewArray(8)
	for {
		tok, err, eof := scanner.Next()
		if err != nil {
			if ui, is := err.(*machines.UnconsumedInput); is {
				scanner.TC = ui.FailTC
				tracer().Errorf("regular: unconsumed input at %d", ui.FailTC)
				continue
			}
			return nil, err
		}
		if eof {
			break
		}
		lt := tok.(*lexmachine.Token)
		out.Append(token.BytesToken(lt.Lexeme))
	}
	return out, nil
}
