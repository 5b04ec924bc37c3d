// Package errs collects the sentinel errors shared across the parser
// engine, following spec.md §7's taxonomy: parse failure is a nil result,
// not an error, so the values here cover everything that is NOT an
// ordinary "no match" — overrun, out-of-memory, and programmer errors.
package errs

import "errors"

var (
	// ErrOverrun names a read past available input. In chunked mode on a
	// non-terminal chunk this means "need more input", not "no parse".
	// The evaluators signal it through InputStream.Overrun and do not
	// return this value.
	ErrOverrun = errors.New("packrat: read past end of input")

	// ErrOOM signals the arena's backing allocator refused a request. The
	// arena is torn down and the parse reports failure.
	ErrOOM = errors.New("packrat: arena out of memory")

	// ErrUnboundIndirect names the error of evaluating an indirect()
	// placeholder before bind_indirect() installed a concrete parser. The
	// indirect evaluator reports this as an ordinary failure (a false ok)
	// and does not return this value.
	ErrUnboundIndirect = errors.New("packrat: evaluated an unbound indirect parser")

	// ErrNameTaken names put_value finding the symbol table already
	// holding an entry under the given name. put_value reports this as an
	// ordinary failure and does not return this value.
	ErrNameTaken = errors.New("packrat: symbol already bound")

	// ErrNameMissing names get_value/free_value finding no entry under the
	// given name. They report this as an ordinary failure and do not
	// return this value.
	ErrNameMissing = errors.New("packrat: symbol not bound")

	// ErrBackendUnavailable is returned by Compile for a registered backend
	// name whose algorithm is an external collaborator not implemented by
	// this core (see spec.md §1 and §6.2).
	ErrBackendUnavailable = errors.New("packrat: backend not implemented by this core")

	// ErrBadBackendSpec is returned when a "name(params)" backend string
	// does not parse.
	ErrBadBackendSpec = errors.New("packrat: malformed backend specification")

	// ErrNoParse is the conventional "ordinary failure" sentinel for
	// call sites that want an error rather than a nil *token.Token. The
	// combinator evaluators themselves return (token.Token{}, false) for
	// failure, and Parse returns a result with a nil AST; nothing in this
	// module returns this value.
	ErrNoParse = errors.New("packrat: no parse")
)
