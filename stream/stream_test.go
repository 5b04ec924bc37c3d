package stream

import "testing"

// Test vectors below are taken from original_source/tests/t_bitreader.c so
// the port can be checked against known-good hammer output by inspection,
// since this module's own test suite is never executed as part of building
// it.

func TestReadBitsByteBigBitBig(t *testing.T) {
	s := New([]byte{0x6A, 0x5A})
	s.Endianness = ByteBigEndian | BitBigEndian
	if got := s.ReadBits(3, false); got != 0x03 {
		t.Fatalf("first 3 bits: want 0x03, got 0x%x", got)
	}
	if got := s.ReadBits(8, false); got != 0x52 {
		t.Fatalf("next 8 bits: want 0x52, got 0x%x", got)
	}
	if got := s.ReadBits(5, false); got != 0x1A {
		t.Fatalf("last 5 bits: want 0x1A, got 0x%x", got)
	}
	if s.Overrun {
		t.Fatalf("unexpected overrun")
	}
}

func TestReadBitsByteLittleBitLittle(t *testing.T) {
	s := New([]byte{0x6A, 0x5A})
	s.Endianness = 0 // neither flag set: LE bytes, LE bits
	if got := s.ReadBits(3, false); got != 0x02 {
		t.Fatalf("first 3 bits: want 0x02, got 0x%x", got)
	}
	if got := s.ReadBits(8, false); got != 0x4D {
		t.Fatalf("next 8 bits: want 0x4D, got 0x%x", got)
	}
	if got := s.ReadBits(5, false); got != 0x0B {
		t.Fatalf("last 5 bits: want 0x0B, got 0x%x", got)
	}
}

func TestReadBitsSpanningBytesBigEndian(t *testing.T) {
	s := New([]byte{0x6A, 0x5A})
	s.Endianness = ByteBigEndian | BitBigEndian
	if got := s.ReadBits(11, false); got != 0x352 {
		t.Fatalf("11-bit BE span: want 0x352, got 0x%x", got)
	}
}

func TestReadBitsSpanningBytesLittleEndian(t *testing.T) {
	s := New([]byte{0x6A, 0x5A})
	s.Endianness = 0
	if got := s.ReadBits(11, false); got != 0x26A {
		t.Fatalf("11-bit LE span: want 0x26A, got 0x%x", got)
	}
}

func TestReadBitsOffsetReadsBigEndian(t *testing.T) {
	s := New([]byte{0x6A, 0x5A})
	s.Endianness = ByteBigEndian | BitBigEndian
	if got := s.ReadBits(4, false); got != 0x6 {
		t.Fatalf("leading nibble: want 0x6, got 0x%x", got)
	}
	if got := s.ReadBits(4, false); got != 0xA {
		t.Fatalf("first offset nibble: want 0xA, got 0x%x", got)
	}
	if got := s.ReadBits(8, false); got != 0x5A {
		t.Fatalf("trailing byte: want 0x5A, got 0x%x", got)
	}
}

func TestReadBitsOverrunIsSticky(t *testing.T) {
	s := New([]byte{0xFF})
	s.Endianness = DefaultEndianness
	s.ReadBits(8, false)
	if s.ReadBits(1, false) != 0 {
		t.Fatalf("read past end should yield 0")
	}
	if !s.Overrun {
		t.Fatalf("want Overrun set after reading past end")
	}
}

func TestSnapshotRestoreUndoesOverrun(t *testing.T) {
	s := New([]byte{0xFF})
	snap := s
	s.ReadBits(8, false)
	s.ReadBits(1, false) // overruns
	if !s.Overrun {
		t.Fatalf("sanity: expected overrun before restore")
	}
	s = snap
	if s.Overrun {
		t.Fatalf("restoring snapshot should clear overrun")
	}
	if got := s.ReadBits(8, false); got != 0xFF {
		t.Fatalf("restored stream should re-read original bits, got 0x%x", got)
	}
}

func TestSignedReadSignExtends(t *testing.T) {
	s := New([]byte{0b1000_0000})
	s.Endianness = ByteBigEndian | BitBigEndian
	if got := s.ReadBits(1, true); got != -1 {
		t.Fatalf("signed single set bit should read as -1, got %d", got)
	}
}

func TestMarginExcludesTrailingBits(t *testing.T) {
	s := New([]byte{0xFF})
	s.Margin = 4
	s.Endianness = ByteBigEndian | BitBigEndian
	if s.availableBits() != 4 {
		t.Fatalf("want 4 available bits with margin=4, got %d", s.availableBits())
	}
	s.ReadBits(4, false)
	if !s.AtEnd() {
		t.Fatalf("want AtEnd once margin-excluded bits are all that remain")
	}
}

func TestSeekBitsSetAndCur(t *testing.T) {
	s := New([]byte{0x00, 0xFF})
	s.Endianness = ByteBigEndian | BitBigEndian
	s.SeekBits(SeekSet, 8)
	if got := s.ReadBits(8, false); got != 0xFF {
		t.Fatalf("seek to byte 1 then read: want 0xFF, got 0x%x", got)
	}
	s.SeekBits(SeekCur, -8)
	if got := s.ReadBits(4, false); got != 0xF {
		t.Fatalf("seek back 8 bits then read nibble: want 0xF, got 0x%x", got)
	}
}

func TestSeekBitsEndRequiresLastChunk(t *testing.T) {
	s := NewChunk([]byte{0x00}, false)
	s.SeekBits(SeekEnd, 0)
	if !s.Overrun {
		t.Fatalf("want Overrun requesting seek-to-end before last chunk arrives")
	}
}

func TestSkipBitsAdvancesCursor(t *testing.T) {
	s := New([]byte{0xAB, 0xCD})
	s.Endianness = ByteBigEndian | BitBigEndian
	s.SkipBits(8)
	if got := s.ReadBits(8, false); got != 0xCD {
		t.Fatalf("want 0xCD after skipping first byte, got 0x%x", got)
	}
}
