package arena

import (
	"bytes"
	"testing"
)

func TestAllocZeroed(t *testing.T) {
	a := New(SystemAllocator, 64)
	buf := a.Alloc(16)
	if len(buf) != 16 {
		t.Fatalf("want 16 bytes, got %d", len(buf))
	}
	if !bytes.Equal(buf, make([]byte, 16)) {
		t.Fatalf("Alloc did not zero-initialize the region")
	}
}

func TestAllocGrowsNewBlock(t *testing.T) {
	a := New(SystemAllocator, 8)
	first := a.Alloc(8)
	second := a.Alloc(8)
	for i := range first {
		first[i] = 0xAA
	}
	for i := range second {
		second[i] = 0xBB
	}
	if !bytes.Equal(first, bytes.Repeat([]byte{0xAA}, 8)) {
		t.Fatalf("first block corrupted by second allocation")
	}
	if a.Used() != 16 {
		t.Fatalf("want used=16, got %d", a.Used())
	}
}

func TestAllocOversizedGetsDedicatedBlock(t *testing.T) {
	a := New(SystemAllocator, 8)
	big := a.Alloc(100)
	if len(big) != 100 {
		t.Fatalf("want 100 bytes, got %d", len(big))
	}
	// the head block must still be usable for small allocations afterwards
	small := a.Alloc(4)
	if len(small) != 4 {
		t.Fatalf("head block unusable after oversized alloc: got %d bytes", len(small))
	}
}

func TestFreeAllDropsOwned(t *testing.T) {
	a := New(SystemAllocator, 64)
	type token struct{ n int }
	tok := &token{n: 7}
	a.Keep(tok)
	a.FreeAll()
	if a.Used() != 0 {
		t.Fatalf("want used=0 after FreeAll, got %d", a.Used())
	}
	if a.owned != nil {
		t.Fatalf("want owned slice cleared after FreeAll")
	}
}

func TestReallocCopiesOverlap(t *testing.T) {
	a := New(SystemAllocator, 64)
	buf := a.Alloc(4)
	copy(buf, []byte{1, 2, 3, 4})
	grown := a.Realloc(buf, 8)
	if !bytes.Equal(grown[:4], []byte{1, 2, 3, 4}) {
		t.Fatalf("Realloc did not preserve original bytes: %v", grown)
	}
}

func TestSlabAllocatorExhaustionUnwindsThroughExceptHandler(t *testing.T) {
	slab := NewSlabAllocator(make([]byte, 16))
	a := New(slab, 16)
	var oomErr error
	a.SetExceptHandler(func(err error) { oomErr = err })
	_ = a.Alloc(1) // already consumed by New's initial block
	a.Alloc(9999)  // forces a new block the slab cannot satisfy
	if oomErr == nil {
		t.Fatalf("want except handler invoked on slab exhaustion")
	}
}
