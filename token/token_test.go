package token

import "testing"

func TestNoneTokenIsNone(t *testing.T) {
	if !NoneToken().IsNone() {
		t.Fatalf("NoneToken should report IsNone")
	}
	if UIntToken(1).IsNone() {
		t.Fatalf("UIntToken should not report IsNone")
	}
}

func TestArrayAppendGrowsByDoubling(t *testing.T) {
	a := NewArray(2)
	for i := 0; i < 10; i++ {
		a.Append(UIntToken(uint64(i)))
	}
	if a.Len() != 10 {
		t.Fatalf("want 10 items, got %d", a.Len())
	}
	for i := 0; i < 10; i++ {
		if a.At(i).UInt() != uint64(i) {
			t.Fatalf("item %d: want %d, got %d", i, i, a.At(i).UInt())
		}
	}
}

func TestAllocateTokenTypeIsIdempotent(t *testing.T) {
	id1 := AllocateTokenType("packrat_test.widget")
	id2 := AllocateTokenType("packrat_test.widget")
	if id1 != id2 {
		t.Fatalf("re-registering the same name should return the same id: %d != %d", id1, id2)
	}
	if id1 < TTUser {
		t.Fatalf("user type id should be >= TTUser (%d), got %d", TTUser, id1)
	}
}

func TestAllocateTokenTypeAssignsDistinctIDs(t *testing.T) {
	id1 := AllocateTokenType("packrat_test.alpha")
	id2 := AllocateTokenType("packrat_test.beta")
	if id1 == id2 {
		t.Fatalf("distinct names should get distinct ids")
	}
}

func TestGetTokenTypeNameRoundTrips(t *testing.T) {
	id := AllocateTokenType("packrat_test.roundtrip")
	name, ok := GetTokenTypeName(id)
	if !ok || name != "packrat_test.roundtrip" {
		t.Fatalf("want (packrat_test.roundtrip, true), got (%q, %v)", name, ok)
	}
}

func TestGetTokenTypeNumberUnknownName(t *testing.T) {
	if _, ok := GetTokenTypeNumber("packrat_test.never_registered"); ok {
		t.Fatalf("want ok=false for an unregistered name")
	}
}

func TestUserTokenWriterRoundTrips(t *testing.T) {
	id := AllocateTokenNew("packrat_test.tagged", func(payload interface{}) string {
		return "tagged:" + payload.(string)
	}, nil)
	tok := UserToken(id, "hello")
	if got := WriteUnamb(tok.UserTypeID(), tok.UserData()); got != "tagged:hello" {
		t.Fatalf("want tagged:hello, got %q", got)
	}
}
