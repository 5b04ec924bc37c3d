package packrat

import (
	"github.com/parsekit/packrat/backend"
	"github.com/parsekit/packrat/comb"
	"github.com/parsekit/packrat/token"
)

func init() {
	backend.Register(backend.Packrat, adapter{})
}

// compiled is the Compiled handle packrat's compile() hands back: there
// are no backend-specific tables to attach (spec.md §6.1's "only PACKRAT
// is specified here" — compile is close to an identity operation for this
// backend), so it is just the root node plus the Kind tag.
type compiled struct {
	root *comb.Node
}

func (c compiled) Backend() backend.Kind { return backend.Packrat }

// adapter satisfies backend.Backend, letting the root facade (and any
// other collaborator) drive this engine through the generic vtable
// instead of importing backend/packrat directly.
type adapter struct{}

func (adapter) Name() string { return "packrat" }

func (adapter) Compile(root *comb.Node, params []int) (backend.Compiled, error) {
	return compiled{root: root}, nil
}

func (adapter) Parse(c backend.Compiled, input []byte) (*token.Token, error) {
	cc := c.(compiled)
	res, err := Parse(cc.root, input)
	if err != nil {
		return nil, err
	}
	return res.AST, nil
}

func (adapter) ParseStart(c backend.Compiled) backend.Session {
	cc := c.(compiled)
	return &sessionAdapter{sess: ParseStart(cc.root)}
}

// sessionAdapter adapts this package's Session (ParseChunk/ParseFinish)
// to backend.Session's signature.
type sessionAdapter struct {
	sess *Session
}

func (s *sessionAdapter) ParseChunk(data []byte, isLast bool) {
	s.sess.ParseChunk(data, isLast)
}

func (s *sessionAdapter) ParseFinish() (*token.Token, error) {
	res, err := s.sess.ParseFinish()
	if err != nil {
		return nil, err
	}
	return res.AST, nil
}
