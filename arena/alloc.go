package arena

import "fmt"

// Allocator is the three-function vtable spec.md §6.5 describes: alloc,
// realloc, free, parameterized by whatever backing store implements it.
// The Arena is built on top of one of these rather than calling Go's
// allocator directly, so a caller can substitute a fixed-size buffer (see
// SlabAllocator) the way the C test suite substitutes a slab allocator for
// embedded-style tests.
type Allocator interface {
	Alloc(n int) ([]byte, error)
	Realloc(buf []byte, n int) ([]byte, error)
	Free(buf []byte)
}

// systemAllocator delegates to the Go runtime allocator, analogous to
// hammer's system_allocator delegating to the C runtime.
type systemAllocator struct{}

// SystemAllocator is the default Allocator, backed by ordinary Go slices.
var SystemAllocator Allocator = systemAllocator{}

func (systemAllocator) Alloc(n int) ([]byte, error) {
	return make([]byte, n), nil
}

func (systemAllocator) Realloc(buf []byte, n int) ([]byte, error) {
	fresh := make([]byte, n)
	copy(fresh, buf)
	return fresh, nil
}

func (systemAllocator) Free([]byte) {
	// The garbage collector reclaims it; nothing to do.
}

// SlabAllocator is a bump allocator over a single caller-provided buffer.
// It never grows: once the buffer is exhausted, Alloc reports ErrOOM-shaped
// failure. Useful for tests that want to exercise the arena's
// out-of-memory path deterministically, the way the C test suite's slab
// allocator is used for constrained/embedded-style tests.
type SlabAllocator struct {
	buf    []byte
	offset int
}

// NewSlabAllocator wraps buf for bump-allocation. buf's capacity is the
// hard ceiling for every allocation made through this Allocator for the
// remainder of its lifetime.
func NewSlabAllocator(buf []byte) *SlabAllocator {
	return &SlabAllocator{buf: buf}
}

func (s *SlabAllocator) Alloc(n int) ([]byte, error) {
	if s.offset+n > len(s.buf) {
		return nil, fmt.Errorf("packrat: slab allocator exhausted (%d of %d bytes used, %d requested)",
			s.offset, len(s.buf), n)
	}
	region := s.buf[s.offset : s.offset+n]
	s.offset += n
	return region, nil
}

func (s *SlabAllocator) Realloc(buf []byte, n int) ([]byte, error) {
	fresh, err := s.Alloc(n)
	if err != nil {
		return nil, err
	}
	copy(fresh, buf)
	return fresh, nil
}

func (s *SlabAllocator) Free([]byte) {
	// Slab allocators never free individual regions; the whole slab is
	// reclaimed by the caller discarding it (or re-wrapping it for reuse).
}

// Remaining reports how many bytes of the slab have not yet been handed
// out, useful for test assertions.
func (s *SlabAllocator) Remaining() int { return len(s.buf) - s.offset }
