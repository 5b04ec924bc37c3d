/*
Package token implements the tagged-union parse result value spec.md §3.2
describes: the `Token` produced by every combinator evaluator, plus the
counted, doubling `Sequence` container and the process-wide user token-type
registry (§6.6).

Grounded on the teacher's (`npillmayer/gorgo`) `terex.Atom`/`terex.AtomType`
pair (terex/terex.go): a small integer discriminator plus an `interface{}`
payload, with a `String`/pretty-print method switching on the discriminator.
Where gorgo's Atom is general-purpose (Lisp-style cons cells, symbols,
operators), Token is narrowed to exactly the variants spec.md names.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package token

import (
	"fmt"
	"sync"

	"github.com/npillmayer/schuko/tracing"
)

func tracer() tracing.Trace {
	return tracing.Select("packrat.token")
}

// Kind discriminates a Token's variant.
type Kind uint8

const (
	None Kind = iota
	Bytes
	SInt
	UInt
	Double
	Float
	Sequence
	Err
	User
)

func (k Kind) String() string {
	switch k {
	case None:
		return "None"
	case Bytes:
		return "Bytes"
	case SInt:
		return "SInt"
	case UInt:
		return "UInt"
	case Double:
		return "Double"
	case Float:
		return "Float"
	case Sequence:
		return "Sequence"
	case Err:
		return "Err"
	case User:
		return "User"
	default:
		return "Unknown"
	}
}

// Token is the tagged value every combinator evaluator produces. Index,
// BitOffset and BitLength record where in the input the token began and
// how much it consumed, independent of its Kind.
type Token struct {
	Kind Kind

	bytesVal []byte
	sintVal  int64
	uintVal  uint64
	doubleVal float64
	floatVal  float32
	seq       *Array
	errMsg    string
	userType  uint32
	userData  interface{}

	Index     int64 // byte offset where this token began
	BitOffset int8
	BitLength int64
}

// NoneToken is the canonical empty-success marker (epsilon, ignore, a
// missed optional).
func NoneToken() Token { return Token{Kind: None} }

// BytesToken wraps a borrowed (or arena-copied) byte slice.
func BytesToken(b []byte) Token { return Token{Kind: Bytes, bytesVal: b} }

// SIntToken wraps a signed integer result.
func SIntToken(v int64) Token { return Token{Kind: SInt, sintVal: v} }

// UIntToken wraps an unsigned integer result.
func UIntToken(v uint64) Token { return Token{Kind: UInt, uintVal: v} }

// DoubleToken wraps a float64 result.
func DoubleToken(v float64) Token { return Token{Kind: Double, doubleVal: v} }

// FloatToken wraps a float32 result.
func FloatToken(v float32) Token { return Token{Kind: Float, floatVal: v} }

// SequenceToken wraps an ordered list of children.
func SequenceToken(children *Array) Token { return Token{Kind: Sequence, seq: children} }

// ErrToken constructs an explicit error token (package unamb writes it as
// ERR). No evaluator or backend in this module produces one; the
// unavailable backends report errs.ErrBackendUnavailable instead.
func ErrToken(msg string) Token { return Token{Kind: Err, errMsg: msg} }

// UserToken wraps a caller-defined payload under a registered type id (see
// the registry in registry.go). typeID must have been obtained from
// AllocateTokenType/AllocateTokenNew.
func UserToken(typeID uint32, payload interface{}) Token {
	return Token{Kind: User, userType: typeID, userData: payload}
}

// Bytes returns the wrapped byte slice; valid only when Kind == Bytes.
func (t Token) Bytes() []byte { return t.bytesVal }

// SInt returns the wrapped signed integer; valid only when Kind == SInt.
func (t Token) SInt() int64 { return t.sintVal }

// UInt returns the wrapped unsigned integer; valid only when Kind == UInt.
func (t Token) UInt() uint64 { return t.uintVal }

// Double returns the wrapped float64; valid only when Kind == Double.
func (t Token) Double() float64 { return t.doubleVal }

// Float32 returns the wrapped float32; valid only when Kind == Float.
func (t Token) Float32() float32 { return t.floatVal }

// Seq returns the child array; valid only when Kind == Sequence.
func (t Token) Seq() *Array { return t.seq }

// ErrMsg returns the error's message; valid only when Kind == Err.
func (t Token) ErrMsg() string { return t.errMsg }

// UserTypeID returns the registered type id; valid only when Kind == User.
func (t Token) UserTypeID() uint32 { return t.userType }

// UserData returns the caller payload; valid only when Kind == User.
func (t Token) UserData() interface{} { return t.userData }

// IsNone reports whether t is the empty-success marker.
func (t Token) IsNone() bool { return t.Kind == None }

// String renders a short debug form; write_result_unamb (package unamb)
// is the canonical serialization spec.md §6.4 names.
func (t Token) String() string {
	switch t.Kind {
	case None:
		return "None"
	case Bytes:
		return fmt.Sprintf("Bytes(% x)", t.bytesVal)
	case SInt:
		return fmt.Sprintf("SInt(%d)", t.sintVal)
	case UInt:
		return fmt.Sprintf("UInt(%d)", t.uintVal)
	case Double:
		return fmt.Sprintf("Double(%g)", t.doubleVal)
	case Float:
		return fmt.Sprintf("Float(%g)", t.floatVal)
	case Sequence:
		return fmt.Sprintf("Sequence(%d)", t.seq.Len())
	case Err:
		return "Err(" + t.errMsg + ")"
	case User:
		name := nameFor(t.userType)
		return fmt.Sprintf("User(%s)", name)
	default:
		return "?"
	}
}

// registryMu is not used: String looks names up through GetTokenTypeName,
// which takes the lock of the registry in registry.go.
var registryMu sync.RWMutex

func nameFor(id uint32) string {
	name, _ := GetTokenTypeName(id)
	if name == "" {
		return fmt.Sprintf("#%d", id)
	}
	return name
}
