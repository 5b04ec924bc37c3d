/*
Package unamb implements `write_result_unamb` (spec.md §6.4): the compact,
unambiguous ASCII serialization of a parse result that the test suite
relies on for exact-match assertions.

There is no teacher analogue for this exact grammar — gorgo's closest
relative, `terex.Atom.String`, renders a different, human-readable form —
so this package is written directly against spec.md §6.4's grammar rather
than adapted from existing code; it reuses `token`'s type registry for
the `{ user ... }` writer hook.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package unamb

import (
	"strconv"
	"strings"

	"github.com/parsekit/packrat/token"
)

// Write renders t per spec.md §6.4's grammar.
func Write(t token.Token) string {
	var b strings.Builder
	write(&b, t)
	return b.String()
}

func write(b *strings.Builder, t token.Token) {
	switch t.Kind {
	case token.None:
		b.WriteString("null")
	case token.Err:
		b.WriteString("ERR")
	case token.Bytes:
		writeBytes(b, t.Bytes())
	case token.SInt:
		v := t.SInt()
		if v < 0 {
			b.WriteString("s-0x")
			b.WriteString(strconv.FormatInt(-v, 16))
		} else {
			b.WriteString("s0x")
			b.WriteString(strconv.FormatInt(v, 16))
		}
	case token.UInt:
		b.WriteString("u0x")
		b.WriteString(strconv.FormatUint(t.UInt(), 16))
	case token.Double:
		b.WriteString("d")
		b.WriteString(formatHexFloat(t.Double()))
	case token.Float:
		b.WriteString("f")
		b.WriteString(formatHexFloat(float64(t.Float32())))
	case token.Sequence:
		b.WriteString("(")
		seq := t.Seq()
		for i := 0; i < seq.Len(); i++ {
			if i > 0 {
				b.WriteString(" ")
			}
			write(b, seq.At(i))
		}
		b.WriteString(")")
	case token.User:
		b.WriteString("{ user ")
		b.WriteString(token.WriteUnamb(t.UserTypeID(), t.UserData()))
		b.WriteString(" }")
	default:
		b.WriteString("?")
	}
}

func writeBytes(b *strings.Builder, data []byte) {
	b.WriteString("<")
	for i, c := range data {
		if i > 0 {
			b.WriteString(".")
		}
		h := strconv.FormatUint(uint64(c), 16)
		if len(h) < 2 {
			h = "0" + h
		}
		b.WriteString(h)
	}
	b.WriteString(">")
}

// formatHexFloat renders v in C99's %a hex-float form, e.g. 0x1.8p+1.
func formatHexFloat(v float64) string {
	s := strconv.FormatFloat(v, 'x', -1, 64)
	// strconv pads the exponent to two digits ("p+01"); %a does not.
	if i := strings.IndexByte(s, 'p'); i >= 0 && i+3 < len(s) && s[i+2] == '0' {
		s = s[:i+2] + s[i+3:]
	}
	return s
}
