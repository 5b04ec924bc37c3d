package stream

import "testing"

func TestBitWriterRoundTripsThroughReadBits(t *testing.T) {
	cases := []Endianness{
		ByteBigEndian | BitBigEndian,
		0,
		ByteBigEndian,
		BitBigEndian,
	}
	for _, e := range cases {
		w := NewBitWriter(e)
		w.WriteBits(3, 0x5)
		w.WriteBits(8, 0xAB)
		w.WriteBits(5, 0x11)
		buf := w.Flush()

		s := New(buf)
		s.Endianness = e
		if got := s.ReadBits(3, false); got != 0x5 {
			t.Fatalf("endianness %v: first field: want 0x5, got 0x%x", e, got)
		}
		if got := s.ReadBits(8, false); got != 0xAB {
			t.Fatalf("endianness %v: second field: want 0xAB, got 0x%x", e, got)
		}
		if got := s.ReadBits(5, false); got != 0x11 {
			t.Fatalf("endianness %v: third field: want 0x11, got 0x%x", e, got)
		}
	}
}

func TestBitWriterFlushPadsPartialByte(t *testing.T) {
	w := NewBitWriter(ByteBigEndian | BitBigEndian)
	w.WriteBits(3, 0x7)
	buf := w.Flush()
	if len(buf) != 1 {
		t.Fatalf("want 1 byte after flushing 3 bits, got %d", len(buf))
	}
}

func TestBitWriterBitsWrittenTracksPartialByte(t *testing.T) {
	w := NewBitWriter(DefaultEndianness)
	w.WriteBits(5, 0x1F)
	if w.BitsWritten() != 5 {
		t.Fatalf("want 5 bits written, got %d", w.BitsWritten())
	}
	w.WriteBits(3, 0x1)
	if w.BitsWritten() != 8 {
		t.Fatalf("want 8 bits written, got %d", w.BitsWritten())
	}
}
