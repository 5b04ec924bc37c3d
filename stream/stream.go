/*
Package stream implements the bit-addressable input cursor spec.md §3.1
and §4.2 describe: a value-type InputStream over a borrowed byte slice,
with independent byte- and bit-order flags and a sticky overrun marker.

The bit-level reading algorithm is ported from (and verified bit-for-bit
against) the test vectors in original_source/tests/t_bitreader.c — the
hammer C library's src/bitreader.c itself was not present in the retrieval
pack this module was built from, so the four endianness combinations were
reconstructed from those vectors rather than transliterated line-for-line.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package stream

import (
	"github.com/npillmayer/schuko/tracing"
)

func tracer() tracing.Trace {
	return tracing.Select("packrat.stream")
}

// InputStream is a cheap-to-copy cursor over a byte slice. Combinators
// that may need to backtrack simply save a value-copy and restore it,
// exactly reproducing a prior cursor including the Overrun flag (spec.md
// §4.2).
type InputStream struct {
	Input []byte // borrowed bytes of the current chunk

	Pos   int // byte offset of this chunk's start in the logical stream
	Index int // byte offset within the current chunk
	Bit   int // bits already consumed in the current byte, 0..7
	Margin int // trailing bits of the last byte to ignore

	Endianness Endianness

	Overrun   bool // sticky: cleared only by restoring a saved snapshot
	LastChunk bool // true once no further chunks will be supplied
}

// New creates an InputStream over a complete (single-chunk, "last chunk")
// input buffer.
func New(input []byte) InputStream {
	return InputStream{
		Input:      input,
		Endianness: DefaultEndianness,
		LastChunk:  true,
	}
}

// NewChunk creates an InputStream for the first chunk of a multi-chunk
// parse; lastChunk should be false unless this is known to be the only
// chunk that will ever arrive.
func NewChunk(input []byte, lastChunk bool) InputStream {
	return InputStream{
		Input:      input,
		Endianness: DefaultEndianness,
		LastChunk:  lastChunk,
	}
}

// availableBits reports how many unread bits remain in this chunk, not
// counting Margin.
func (s *InputStream) availableBits() int64 {
	total := int64(len(s.Input)-s.Index)*8 - int64(s.Bit) - int64(s.Margin)
	if total < 0 {
		return 0
	}
	return total
}

// PositionBits returns the current absolute bit position in the logical
// (multi-chunk) stream.
func (s *InputStream) PositionBits() int64 {
	return (int64(s.Pos)+int64(s.Index))*8 + int64(s.Bit) + int64(s.Margin)
}

const maxBitWidth = 64

// ReadBits consumes the next n bits (1 <= n <= 64) according to the
// current byte- and bit-order, returning the result sign-extended from
// bit n-1 when signed is true. A read past available input sets Overrun
// and returns 0 without moving the cursor.
//
// Endianness combinations are the product of two independent choices. The
// stream is processed one (partial-)byte chunk at a time: each chunk
// contributes a sub-value extracted according to the bit-order, and
// successive chunks are combined into the final result according to the
// byte-order — earlier chunks land in the high-order bits for
// ByteBigEndian, in the low-order bits for byte-little-endian.
func (s *InputStream) ReadBits(n int, signed bool) int64 {
	if n < 1 || n > maxBitWidth {
		tracer().Errorf("read_bits: invalid width %d", n)
		return 0
	}
	if int64(n) > s.availableBits() {
		s.Overrun = true
		return 0
	}

	var acc uint64
	remaining := n
	bitsSoFar := 0
	for remaining > 0 {
		byteVal := uint64(s.Input[s.Index])
		free := 8 - s.Bit
		chunk := remaining
		if chunk > free {
			chunk = free
		}
		var sub uint64
		if s.Endianness.bitBig() {
			shift := 8 - s.Bit - chunk
			sub = (byteVal >> uint(shift)) & mask(chunk)
		} else {
			sub = (byteVal >> uint(s.Bit)) & mask(chunk)
		}

		if s.Endianness.byteBig() {
			acc = (acc << uint(chunk)) | sub
		} else {
			acc |= sub << uint(bitsSoFar)
		}

		s.Bit += chunk
		if s.Bit == 8 {
			s.Bit = 0
			s.Index++
		}
		remaining -= chunk
		bitsSoFar += chunk
	}

	if signed && n < 64 {
		signBit := uint64(1) << uint(n-1)
		if acc&signBit != 0 {
			acc |= ^uint64(0) << uint(n)
		}
	}
	return int64(acc)
}

func mask(bits int) uint64 {
	if bits >= 64 {
		return ^uint64(0)
	}
	return (uint64(1) << uint(bits)) - 1
}

// SkipBits advances the cursor by n bits without producing a value,
// setting Overrun if doing so would pass end-of-stream.
func (s *InputStream) SkipBits(n int) {
	if int64(n) > s.availableBits() {
		s.Overrun = true
		// advance as far as possible: on overrun the position is left at
		// end-of-input (unlike ReadBits, which does not move the cursor).
		n = int(s.availableBits())
	}
	total := s.Index*8 + s.Bit + n
	s.Index = total / 8
	s.Bit = total % 8
}

// Whence selects the reference point for SeekBits.
type Whence int

const (
	SeekSet Whence = iota
	SeekCur
	SeekEnd
)

// SeekBits sets the cursor to an absolute bit position relative to
// whence. Overshoot sets Overrun and clamps the cursor to end-of-stream.
// A SeekEnd before the last chunk arrives sets Overrun and requests more
// input, the same way end() does (spec.md §4.3).
func (s *InputStream) SeekBits(whence Whence, offset int64) int64 {
	var base int64
	switch whence {
	case SeekSet:
		base = 0
	case SeekCur:
		base = s.PositionBits()
	case SeekEnd:
		if !s.LastChunk {
			s.Overrun = true
			return s.PositionBits()
		}
		base = int64(len(s.Input))*8 - int64(s.Margin)
	}
	target := base + offset
	streamStart := int64(s.Pos) * 8
	local := target - streamStart
	maxLocal := int64(len(s.Input))*8 - int64(s.Margin)
	if local < 0 || local > maxLocal {
		s.Overrun = true
		if local > maxLocal {
			local = maxLocal
		} else {
			local = 0
		}
	}
	s.Index = int(local / 8)
	s.Bit = int(local % 8)
	return s.PositionBits()
}

// AtEnd reports whether the cursor has consumed every bit of available
// (non-margin) input in the current chunk.
func (s *InputStream) AtEnd() bool {
	return s.availableBits() == 0
}
