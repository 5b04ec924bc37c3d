/*
Package lalr registers the "lalr(k)" backend name and its string form
(spec.md §6.2) but does not implement LALR table construction: that is
genuine external-collaborator territory spec.md §1 places out of scope,
and the real algorithm lives in the teacher's `gorgo/lr/slr` package
(SLR being the k=1 special case LALR generalizes). Compile always
returns errs.ErrBackendUnavailable, the typed "not in this core"
response spec.md §7 names for compilation failure, rather than a panic.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package lalr

import (
	"github.com/parsekit/packrat/backend"
	"github.com/parsekit/packrat/comb"
	"github.com/parsekit/packrat/errs"
	"github.com/parsekit/packrat/token"
)

func init() {
	backend.Register(backend.LALR, adapter{})
}

type adapter struct{}

func (adapter) Name() string { return "lalr" }

func (adapter) Compile(root *comb.Node, params []int) (backend.Compiled, error) {
	return nil, errs.ErrBackendUnavailable
}

func (adapter) Parse(c backend.Compiled, input []byte) (*token.Token, error) {
	return nil, errs.ErrBackendUnavailable
}

func (adapter) ParseStart(c backend.Compiled) backend.Session {
	return nil
}
