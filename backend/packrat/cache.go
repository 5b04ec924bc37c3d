package packrat

import (
	"github.com/parsekit/packrat/stream"
	"github.com/parsekit/packrat/token"
)

// cacheEntry is spec.md §3.4's CacheEntry: either a concrete cached
// result (`Right`) or a sentinel marking active left-recursion growth
// (`Left`). Every entry also stores the stream snapshot to restore on a
// cache hit, per spec.md §3.4 ("Each entry also stores the input-stream
// snapshot to be restored on a cache hit").
type cacheEntry struct {
	isLeft bool
	frame  *LRFrame // set iff isLeft

	resultOK bool // set iff !isLeft
	result   token.Token

	savedPos stream.InputStream
}

func rightEntry(ok bool, result token.Token, pos stream.InputStream) *cacheEntry {
	return &cacheEntry{isLeft: false, resultOK: ok, result: result, savedPos: pos}
}

func leftEntry(frame *LRFrame, pos stream.InputStream) *cacheEntry {
	return &cacheEntry{isLeft: true, frame: frame, savedPos: pos}
}
