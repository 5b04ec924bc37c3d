/*
Package backend holds the backend-selection vtable spec.md §6.2 requires:
an `HParserBackend`-equivalent enum (Kind), a vtable every backend
implements (compile/parse/parse_start/chunk/finish, a Name, and the
`name(params)` string form), and a small registry other packages use to
resolve a backend by name.

Grounded on gorgo's own multi-algorithm `lr` package family (`lr/slr`,
`lr/glr`, `lr/earley`), which this backend tree is deliberately modeled
after: one package per algorithm, a shared entry-point shape, and a
string-keyed selection mechanism — here expressed as a registry instead
of gorgo's direct `slr.NewParser`/`glr.NewParser` calls, since spec.md
§6.2 names string-form backend selection as part of the core's contract.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package backend

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/parsekit/packrat/comb"
	"github.com/parsekit/packrat/errs"
	"github.com/parsekit/packrat/token"
)

// Kind tags a supported backend (spec.md §6.2's HParserBackend).
type Kind uint8

const (
	Packrat Kind = iota
	Regular
	LALR
	GLR
	LL
)

func (k Kind) String() string {
	switch k {
	case Packrat:
		return "packrat"
	case Regular:
		return "regular"
	case LALR:
		return "lalr"
	case GLR:
		return "glr"
	case LL:
		return "ll"
	default:
		return "unknown"
	}
}

// Spec is a parsed "name(params)" backend specification (spec.md §6.2):
// packrat takes no params; LL(k)/LALR/GLR take a single integer k.
type Spec struct {
	Kind   Kind
	Params []int
}

// ParseSpec parses strings of the form `name` or `name(p, ...)` where
// each param is a comma-separated integer literal, per spec.md §6.2.
func ParseSpec(s string) (Spec, error) {
	s = strings.TrimSpace(s)
	name := s
	paramsStr := ""
	if i := strings.IndexByte(s, '('); i >= 0 {
		if !strings.HasSuffix(s, ")") {
			return Spec{}, fmt.Errorf("%w: %q missing closing paren", errs.ErrBadBackendSpec, s)
		}
		name = strings.TrimSpace(s[:i])
		paramsStr = s[i+1 : len(s)-1]
	}

	var kind Kind
	switch name {
	case "packrat":
		kind = Packrat
	case "regular":
		kind = Regular
	case "lalr":
		kind = LALR
	case "glr":
		kind = GLR
	case "ll":
		kind = LL
	default:
		return Spec{}, fmt.Errorf("%w: unknown backend %q", errs.ErrBadBackendSpec, name)
	}

	var params []int
	if paramsStr != "" {
		for _, p := range strings.Split(paramsStr, ",") {
			p = strings.TrimSpace(p)
			n, err := strconv.Atoi(p)
			if err != nil {
				return Spec{}, fmt.Errorf("%w: bad parameter %q in %q", errs.ErrBadBackendSpec, p, s)
			}
			params = append(params, n)
		}
	}
	return Spec{Kind: kind, Params: params}, nil
}

// String renders s back to its `name(params)` form.
func (s Spec) String() string {
	if len(s.Params) == 0 {
		return s.Kind.String()
	}
	parts := make([]string, len(s.Params))
	for i, p := range s.Params {
		parts[i] = strconv.Itoa(p)
	}
	return s.Kind.String() + "(" + strings.Join(parts, ",") + ")"
}

// Compiled is what compile() returns: a backend-specific handle that
// Parse/ParseStart know how to drive. Implementations type-assert their
// own concrete type out of the Backend that produced it.
type Compiled interface {
	Backend() Kind
}

// Session is the chunked-parse handle a backend's ParseStart returns.
type Session interface {
	ParseChunk(data []byte, isLast bool)
	ParseFinish() (*token.Token, error)
}

// Backend is the vtable spec.md §6.2 requires every collaborator
// implement: compile, parse, and the chunked parse_start/chunk/finish
// triple, plus naming.
type Backend interface {
	Name() string
	Compile(root *comb.Node, params []int) (Compiled, error)
	Parse(c Compiled, input []byte) (*token.Token, error)
	ParseStart(c Compiled) Session
}

var (
	registryMu sync.RWMutex
	registry   = map[Kind]Backend{}
)

// Register installs b under its Kind, overwriting any previous
// registration for that Kind. Called from each backend subpackage's
// init(), mirroring the teacher's pattern of package-level registration
// (e.g. lexmach's token-action tables) rather than a hand-maintained
// switch statement here.
func Register(k Kind, b Backend) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[k] = b
}

// Lookup resolves a registered backend by Kind.
func Lookup(k Kind) (Backend, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	b, ok := registry[k]
	return b, ok
}
