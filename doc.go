/*
Package packrat is a combinator parser engine with Warth-style packrat
left recursion.

Parsers are built from small combinator constructors (package comb:
Ch, Sequence, Choice, Many, Indirect, ...) into an immutable IR. Compile
selects a backend (packrat is the one fully specified here; regular,
lalr, glr and ll are registered collaborators, see package backend) and
Parse runs the resulting grammar against a byte slice, returning a
ParseResult carrying the parsed token tree and the arena it was built
in.

Package structure:

■ stream: the bit-addressable input cursor (InputStream) and its
BitWriter counterpart.

■ token: the tagged-union parse result value and its user-extensible
type registry.

■ arena: the per-parse bump allocator; a parse result is kept alive by
the arena it was built in (the symbol table is an ordinary map).

■ comb: combinator constructors, the immutable IR (Node), and the raw
(unmemoized) evaluator every node kind implements.

■ backend: the backend-selection vtable (compile/parse/parse_start,chunk,
finish) and its subpackages packrat, regular, lalr, glr, ll.

■ unamb: the compact, unambiguous ASCII serialization of a parse result.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package packrat
