/*
Package ll registers the "ll(k)" backend name (spec.md §6.2) as an
unavailable, genuine external collaborator. spec.md §1 excludes
predictive LL(k) table construction and its first/follow/predict
analyses from this core; the nearest teacher relative is
`gorgo/lr/earley`, which subsumes LL(k) grammars but is its own
distinct algorithm. Compile always returns errs.ErrBackendUnavailable.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package ll

import (
	"github.com/parsekit/packrat/backend"
	"github.com/parsekit/packrat/comb"
	"github.com/parsekit/packrat/errs"
	"github.com/parsekit/packrat/token"
)

func init() {
	backend.Register(backend.LL, adapter{})
}

type adapter struct{}

func (adapter) Name() string { return "ll" }

func (adapter) Compile(root *comb.Node, params []int) (backend.Compiled, error) {
	return nil, errs.ErrBackendUnavailable
}

func (adapter) Parse(c backend.Compiled, input []byte) (*token.Token, error) {
	return nil, errs.ErrBackendUnavailable
}

func (adapter) ParseStart(c backend.Compiled) backend.Session {
	return nil
}
