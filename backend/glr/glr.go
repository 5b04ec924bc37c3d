/*
Package glr registers the "glr" backend name (spec.md §6.2) as an
unavailable, genuine external collaborator; the real GLR table
construction and Tomita-style graph-structured stack live in the
teacher's `gorgo/lr/glr` package, which spec.md §1 explicitly excludes
from this core's scope. Compile always returns
errs.ErrBackendUnavailable.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package glr

import (
	"github.com/parsekit/packrat/backend"
	"github.com/parsekit/packrat/comb"
	"github.com/parsekit/packrat/errs"
	"github.com/parsekit/packrat/token"
)

func init() {
	backend.Register(backend.GLR, adapter{})
}

type adapter struct{}

func (adapter) Name() string { return "glr" }

func (adapter) Compile(root *comb.Node, params []int) (backend.Compiled, error) {
	return nil, errs.ErrBackendUnavailable
}

func (adapter) Parse(c backend.Compiled, input []byte) (*token.Token, error) {
	return nil, errs.ErrBackendUnavailable
}

func (adapter) ParseStart(c backend.Compiled) backend.Session {
	return nil
}
