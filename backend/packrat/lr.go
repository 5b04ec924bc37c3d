package packrat

import (
	"reflect"

	"github.com/emirpasic/gods/sets/treeset"
	"github.com/parsekit/packrat/comb"
	"github.com/parsekit/packrat/token"
)

// nodeComparator orders *comb.Node values by pointer identity, giving
// gods' treeset a total order without resorting to unsafe.Pointer
// arithmetic (reflect.Value.Pointer is the sanctioned way to obtain a
// comparable address for this purpose).
func nodeComparator(a, b interface{}) int {
	pa := reflect.ValueOf(a).Pointer()
	pb := reflect.ValueOf(b).Pointer()
	switch {
	case pa < pb:
		return -1
	case pa > pb:
		return 1
	default:
		return 0
	}
}

func newNodeSet() *treeset.Set { return treeset.NewWith(nodeComparator) }

// RecursionHead tracks one left-recursion's head combinator and the set
// of combinators known to participate in growing it (spec.md §3.4).
// Grounded on `lr/earley`'s use of `emirpasic/gods`' treeset for
// grammar-analysis bookkeeping (lr/tables.go), applied here to the
// involved/eval sets Warth's algorithm needs.
type RecursionHead struct {
	head        *comb.Node
	involvedSet *treeset.Set // of *comb.Node
	evalSet     *treeset.Set // of *comb.Node
}

func newRecursionHead(head *comb.Node) *RecursionHead {
	return &RecursionHead{head: head, involvedSet: newNodeSet(), evalSet: newNodeSet()}
}

// LRFrame is a left-recursion stack frame: the current best seed, the
// rule it belongs to, and a back-pointer to the recursion head once one
// has been established (spec.md §3.4).
type LRFrame struct {
	rule     *comb.Node
	seedOK   bool
	seed     token.Token
	head     *RecursionHead
}

func newLRFrame(rule *comb.Node) *LRFrame {
	return &LRFrame{rule: rule, seedOK: false}
}
