package stream

// Endianness packs the two independent orderings InputStream needs: which
// byte of a multi-byte read contributes the high-order bits of the result,
// and which bit of a byte is read first. Named and valued after hammer's
// BYTE_BIG_ENDIAN / BIT_BIG_ENDIAN flags (original_source/src/hammer.h) so
// the bit patterns read the same way in both.
type Endianness uint8

const (
	// ByteBigEndian: the first byte consumed contributes the high-order
	// bits of a multi-byte result.
	ByteBigEndian Endianness = 1 << iota
	// BitBigEndian: within a byte, the first bit consumed is the most
	// significant.
	BitBigEndian
)

// DefaultEndianness matches hammer's DEFAULT_ENDIANNESS: big-endian bits
// within big-endian bytes.
const DefaultEndianness = ByteBigEndian | BitBigEndian

func (e Endianness) byteBig() bool { return e&ByteBigEndian != 0 }
func (e Endianness) bitBig() bool  { return e&BitBigEndian != 0 }

// String renders the flag combination for diagnostics.
func (e Endianness) String() string {
	byteOrd, bitOrd := "LE", "LE"
	if e.byteBig() {
		byteOrd = "BE"
	}
	if e.bitBig() {
		bitOrd = "BE"
	}
	return "byte=" + byteOrd + ",bit=" + bitOrd
}
