package types

import "testing"

// TestPrimitiveIdentity is spec.md §8 scenario S1: resolving a primitive
// twice returns the same TypeID, and its pointer form is memoized.
func TestPrimitiveIdentity(t *testing.T) {
	in := NewInterner()
	i32a := in.Numerical(Int32)
	i32b := in.Numerical(Int32)
	if i32a != i32b {
		t.Fatalf("Numerical(Int32) not stable: %v != %v", i32a, i32b)
	}

	p1 := in.MakePointerTo(i32a)
	p2 := in.MakePointerTo(i32a)
	if p1 != p2 {
		t.Fatalf("MakePointerTo not memoized: %v != %v", p1, p2)
	}
}

func TestPointerIsStructural(t *testing.T) {
	in := NewInterner()
	i32 := in.Numerical(Int32)
	i64 := in.Numerical(Int64)
	if in.MakePointerTo(i32) == in.MakePointerTo(i64) {
		t.Fatal("pointers to distinct pointees must not collide")
	}
}

func TestFunctionTypeIsStructural(t *testing.T) {
	in := NewInterner()
	i32 := in.Numerical(Int32)
	f1 := in.MakeFunction(i32, []TypeID{i32, i32}, ConventionC)
	f2 := in.MakeFunction(i32, []TypeID{i32, i32}, ConventionC)
	if f1 != f2 {
		t.Fatalf("identical function signatures interned differently: %v != %v", f1, f2)
	}

	f3 := in.MakeFunction(i32, []TypeID{i32}, ConventionC)
	if f1 == f3 {
		t.Fatal("distinct arities must not collide")
	}
}

// TestStructIdentityByCreation is spec.md §8 scenario S6 (first half): two
// structs sharing a name are rejected, and struct identity is never
// structural.
func TestStructIdentityByCreation(t *testing.T) {
	in := NewInterner()
	i32 := in.Numerical(Int32)
	members := []Member{{Name: "x", Type: i32}, {Name: "y", Type: i32}}

	p1, ok := in.MakeStruct("P", members)
	if !ok {
		t.Fatal("first MakeStruct(\"P\", ...) must succeed")
	}
	if _, ok := in.MakeStruct("P", members); ok {
		t.Fatal("duplicate struct name must fail")
	}

	q, ok := in.MakeStruct("Q", members)
	if !ok {
		t.Fatal("MakeStruct(\"Q\", ...) with identical members must still succeed")
	}
	if p1 == q {
		t.Fatal("structurally identical structs with different names must not be identity-equal")
	}
}

func TestStructMemberLookup(t *testing.T) {
	in := NewInterner()
	i32 := in.Numerical(Int32)
	id, ok := in.MakeStruct("Point", []Member{{Name: "x", Type: i32}, {Name: "y", Type: i32}})
	if !ok {
		t.Fatal("MakeStruct failed")
	}
	st := in.MustLookup(id)
	idx, ok := st.Struct.Index("y")
	if !ok || idx != 1 {
		t.Fatalf("Index(y) = (%d, %v), want (1, true)", idx, ok)
	}
	if st.Struct.HasMember("z") {
		t.Fatal("HasMember(z) should be false")
	}
}

func TestStrRendersNestedTypes(t *testing.T) {
	in := NewInterner()
	i32 := in.Numerical(Int32)
	ptr := in.MakePointerTo(i32)
	if got, want := in.Str(i32), "i32"; got != want {
		t.Fatalf("Str(i32) = %q, want %q", got, want)
	}
	if got, want := in.Str(ptr), "*i32"; got != want {
		t.Fatalf("Str(*i32) = %q, want %q", got, want)
	}

	fn := in.MakeFunction(in.Builtins().Void, []TypeID{i32, ptr}, ConventionC)
	want := "#[callingConvention=C] (i32, *i32) -> void"
	if got := in.Str(fn); got != want {
		t.Fatalf("Str(fn) = %q, want %q", got, want)
	}
}
