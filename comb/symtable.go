package comb

import "github.com/parsekit/packrat/token"

// SymbolTable implements put_value/get_value/free_value (spec.md §4.3,
// §9 "Symbol table as stack"): a single-entry-per-name map, not a proper
// lexical scope — rebinding an existing name is an error, matching the
// documented semantics exactly rather than silently shadowing.
//
// Grounded on the teacher's runtime.SymbolTable (runtime/symtable.go),
// narrowed from a name->*Tag map to a name->token.Token map since this
// domain has no need for the scope tree gorgo's version maintains.
type SymbolTable struct {
	table map[string]token.Token
}

// NewSymbolTable creates an empty table.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{table: make(map[string]token.Token)}
}

// Put inserts name -> t, failing if name is already bound.
func (s *SymbolTable) Put(name string, t token.Token) bool {
	if _, ok := s.table[name]; ok {
		return false
	}
	s.table[name] = t
	return true
}

// Get returns the value stored under name, and whether it was present.
func (s *SymbolTable) Get(name string) (token.Token, bool) {
	t, ok := s.table[name]
	return t, ok
}

// Free removes name's mapping, returning its prior value and whether it
// was present.
func (s *SymbolTable) Free(name string) (token.Token, bool) {
	t, ok := s.table[name]
	if ok {
		delete(s.table, name)
	}
	return t, ok
}

// snapshot/restore copy the table shallowly (values are immutable Tokens)
// and reinstate such a copy. The put_value evaluator does not call them:
// Put refuses a taken name without changing the table, so there is
// nothing to roll back.
func (s *SymbolTable) snapshot() map[string]token.Token {
	cp := make(map[string]token.Token, len(s.table))
	for k, v := range s.table {
		cp[k] = v
	}
	return cp
}

func (s *SymbolTable) restore(saved map[string]token.Token) {
	s.table = saved
}
