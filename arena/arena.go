/*
Package arena implements a bump-style region allocator tied to the
lifetime of a single parse.

A parse allocates many small, short-lived objects (tokens, cache entries,
left-recursion frames) that all die together at the end of the parse. Rather
than track each one individually, an Arena hands out memory from a chain of
fixed-size blocks and frees the whole chain at once.

Ported from the block-chain design of the C `hammer` library's
`src/allocator.c` (see original_source/ in the retrieval pack this module
was built from): a singly linked list of blocks, default block size 4096,
oversized allocations get a dedicated block spliced in just behind the head
so the head stays fillable, and `FreeAll` drops the whole chain at once.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package arena

import (
	"github.com/npillmayer/schuko/tracing"
)

func tracer() tracing.Trace {
	return tracing.Select("packrat.arena")
}

// DefaultBlockSize is used when a zero block size is requested.
const DefaultBlockSize = 4096

// block is one link in the arena's chain of storage.
type block struct {
	next  *block
	store []byte
	used  int
}

func (b *block) free() int { return len(b.store) - b.used }

// Arena is a bump allocator for the transient and result state of one
// parse. It is not safe for concurrent use; each parse owns exactly one
// Arena (see spec.md §5).
type Arena struct {
	alloc     Allocator
	head      *block
	blockSize int

	used   int
	wasted int

	// exceptHandler, if set, is invoked with the backing allocator's error
	// when that allocator is exhausted; Alloc then returns nil (as it also
	// does when no handler is installed). The packrat backend installs one
	// so that out-of-memory unwinds straight out of Parse, the one
	// condition spec.md §7 allows to skip the ordinary return-value
	// plumbing (see spec.md §9's design note on replacing longjmp).
	exceptHandler func(error)

	// owned keeps every token-shaped value allocated by this arena alive
	// only as long as the arena itself is: FreeAll drops the slice, and
	// with it the last strong reference most callers hold, so the garbage
	// collector is free to reclaim it. This gives us the documented
	// "freeing the arena invalidates all result pointers" contract without
	// resorting to unsafe, self-managed storage for arbitrary pointer-typed
	// Go values (see DESIGN.md's note on this tradeoff).
	owned []interface{}

	detailed *DetailedStats
}

// DetailedStats mirrors the optional per-category counters the C arena
// keeps under DETAILED_ARENA_STATS, exposed unconditionally here since the
// cost of a handful of counters is immaterial in Go.
type DetailedStats struct {
	SmallAllocs, SmallBytes int
	LargeAllocs, LargeBytes int
	BlocksAllocated         int
}

// New creates an Arena backed by the given Allocator, using blockSize for
// each chain link (0 selects DefaultBlockSize).
func New(alloc Allocator, blockSize int) *Arena {
	if alloc == nil {
		alloc = SystemAllocator
	}
	if blockSize <= 0 {
		blockSize = DefaultBlockSize
	}
	a := &Arena{
		alloc:     alloc,
		blockSize: blockSize,
		detailed:  &DetailedStats{},
	}
	a.head = a.newBlock(blockSize)
	a.wasted = blockSize
	return a
}

// SetExceptHandler installs a callback invoked with the backing
// allocator's error on exhaustion (Alloc itself returns nil), so a caller
// (e.g. the packrat backend) learns of the failure at its Parse entry
// point.
func (a *Arena) SetExceptHandler(h func(error)) { a.exceptHandler = h }

func (a *Arena) newBlock(size int) *block {
	buf, err := a.alloc.Alloc(size)
	if err != nil {
		a.fail(err)
		return nil
	}
	a.detailed.BlocksAllocated++
	return &block{store: buf}
}

func (a *Arena) fail(err error) {
	tracer().Errorf("arena: allocation failed: %v", err)
	if a.exceptHandler != nil {
		a.exceptHandler(err)
		return
	}
}

// Alloc returns an n-byte, zero-initialized region owned by this arena.
func (a *Arena) Alloc(n int) []byte {
	return a.allocRaw(n, true)
}

// AllocNoInit is identical to Alloc but skips zeroing the returned region.
func (a *Arena) AllocNoInit(n int) []byte {
	return a.allocRaw(n, false)
}

func (a *Arena) allocRaw(n int, zero bool) []byte {
	if n < 0 {
		n = 0
	}
	if a.head == nil {
		// FreeAll dropped the chain; start a fresh one.
		if a.head = a.newBlock(a.blockSize); a.head == nil {
			return nil
		}
		a.wasted += a.blockSize
	}
	if n > a.blockSize {
		// Oversized: give it its own block, splice in one position behind
		// the head so the head remains the one we keep bump-allocating
		// into.
		blk := a.newBlock(n)
		if blk == nil {
			return nil
		}
		blk.used = n
		blk.next = a.head.next
		a.head.next = blk
		a.used += n
		a.detailed.LargeAllocs++
		a.detailed.LargeBytes += n
		return blk.store[:n]
	}
	if n > a.head.free() {
		newHead := a.newBlock(a.blockSize)
		if newHead == nil {
			return nil
		}
		newHead.next = a.head
		a.head = newHead
		a.wasted += a.blockSize
	}
	region := a.head.store[a.head.used : a.head.used+n]
	a.head.used += n
	a.used += n
	a.wasted -= n
	a.detailed.SmallAllocs++
	a.detailed.SmallBytes += n
	if zero {
		for i := range region {
			region[i] = 0
		}
	}
	return region
}

// Realloc grows (or shrinks) a previous allocation. Since individual
// blocks are never freed piecemeal, this always performs a fresh
// allocation and copies the overlap — the same "wasteful but correct"
// compromise spec.md §9 records as an accepted limitation of the original
// h_arena_realloc.
func (a *Arena) Realloc(ptr []byte, n int) []byte {
	fresh := a.Alloc(n)
	copy(fresh, ptr)
	return fresh
}

// Keep registers v as owned by this arena, so it survives exactly as long
// as the arena does (see the `owned` field doc).
func (a *Arena) Keep(v interface{}) {
	a.owned = append(a.owned, v)
}

// FreeAll releases every block and drops every kept value. The Arena
// itself remains usable only in the sense that further Alloc calls would
// start a fresh chain; in practice a parse discards the Arena entirely
// after this call.
func (a *Arena) FreeAll() {
	a.head = nil
	a.owned = nil
	a.used = 0
	a.wasted = 0
}

// Used returns the number of bytes handed out so far.
func (a *Arena) Used() int { return a.used }

// Wasted returns the number of allocated-but-unused bytes across all
// blocks (bump-allocator fragmentation).
func (a *Arena) Wasted() int { return a.wasted }

// Detailed returns the optional per-category counters.
func (a *Arena) Detailed() DetailedStats { return *a.detailed }
