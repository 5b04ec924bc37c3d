package packrat

import "github.com/parsekit/packrat/comb"

// Session is the suspended-parse handle behind ParseStart/ParseChunk/
// ParseFinish (spec.md §4.5, §6.1). It is the naive reference
// implementation spec.md describes: no incremental packrat state is
// carried between chunks, and no parse attempt happens until
// ParseFinish. ParseChunk merely stashes (concatenates) each slice it is
// given; ParseFinish runs exactly one full, ordinary Parse over the
// concatenated buffer, treating it as complete input — "a full
// implementation would concatenate chunks and either restart the parse
// on each chunk boundary, or save/restore the packrat state between
// chunks" (spec.md §4.5); this is the concatenate-and-restart-once
// reading of that tradeoff, the cheapest one consistent with spec.md
// §8 scenario 6's worked example (matching "foobar" split across two
// chunks). See DESIGN.md's Open Question entry for why this is preserved
// rather than upgraded to true incremental streaming.
type Session struct {
	root      *comb.Node
	opts      []Option
	buf       []byte
	lastChunk bool
}

// ParseStart begins a chunked parse of root.
func ParseStart(root *comb.Node, opts ...Option) *Session {
	return &Session{root: root, opts: opts}
}

// ParseChunk appends the next slice of input. isLast is recorded on the
// session, but ParseFinish does not consult it: its single full re-parse
// always treats the concatenated buffer as the last chunk, so end() and
// seek(END) see complete input whatever isLast said.
func (s *Session) ParseChunk(data []byte, isLast bool) {
	s.buf = append(s.buf, data...)
	if isLast {
		s.lastChunk = true
	}
}

// ParseFinish executes the parse against the concatenated input. The
// session keeps its buffer; the parse's own state lives in the returned
// Result's Arena.
func (s *Session) ParseFinish() (*Result, error) {
	return Parse(s.root, s.buf, s.opts...)
}
