package unamb

import (
	"testing"

	"github.com/parsekit/packrat/token"
)

func TestWriteNone(t *testing.T) {
	if got := Write(token.NoneToken()); got != "null" {
		t.Fatalf("want null, got %q", got)
	}
}

func TestWriteErr(t *testing.T) {
	if got := Write(token.ErrToken("boom")); got != "ERR" {
		t.Fatalf("want ERR, got %q", got)
	}
}

func TestWriteBytes(t *testing.T) {
	got := Write(token.BytesToken([]byte{0x66, 0x6f, 0x6f}))
	want := "<66.6f.6f>"
	if got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
}

func TestWriteBytesPadsSingleHexDigit(t *testing.T) {
	got := Write(token.BytesToken([]byte{0x01, 0x0a}))
	want := "<01.0a>"
	if got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
}

func TestWriteSInt(t *testing.T) {
	if got := Write(token.SIntToken(255)); got != "s0xff" {
		t.Fatalf("want s0xff, got %q", got)
	}
	if got := Write(token.SIntToken(-255)); got != "s-0xff" {
		t.Fatalf("want s-0xff, got %q", got)
	}
}

func TestWriteUInt(t *testing.T) {
	if got := Write(token.UIntToken(255)); got != "u0xff" {
		t.Fatalf("want u0xff, got %q", got)
	}
}

func TestWriteSequenceNested(t *testing.T) {
	arr := token.NewArray(2)
	arr.Append(token.UIntToken('a'))
	arr.Append(token.UIntToken('b'))
	got := Write(token.SequenceToken(arr))
	want := "(u0x61 u0x62)"
	if got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
}

func TestWriteUserTokenUsesRegisteredWriter(t *testing.T) {
	id := token.AllocateTokenNew("unamb-test-type", func(payload interface{}) string {
		return payload.(string)
	}, nil)
	got := Write(token.UserToken(id, "payload-text"))
	want := "{ user payload-text }"
	if got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
}

func TestWriteUserTokenWithoutWriterFallsBack(t *testing.T) {
	id := token.AllocateTokenNew("unamb-test-type-nowriter", nil, nil)
	got := Write(token.UserToken(id, nil))
	want := "{ user ? }"
	if got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
}
