package symbols

import (
	"testing"

	"yo/internal/ast"
	"yo/internal/source"
	"yo/internal/types"
)

func TestCanonicalNameIgnoresParamTypes(t *testing.T) {
	if got, want := CanonicalName(ast.FnFree, "", "f"), "f"; got != want {
		t.Fatalf("CanonicalName = %q, want %q", got, want)
	}
	if got, want := CanonicalName(ast.FnInstanceMethod, "Point", "len"), "Point::len"; got != want {
		t.Fatalf("CanonicalName = %q, want %q", got, want)
	}
}

func TestCanonicalNameNormalizesUnicodeToNFC(t *testing.T) {
	decomposed := "cafe\u0301"  // "e" plus a combining acute accent
	precomposed := "caf\u00e9" // precomposed e-with-acute
	if got, want := CanonicalName(ast.FnFree, "", decomposed), CanonicalName(ast.FnFree, "", precomposed); got != want {
		t.Fatalf("CanonicalName should normalize combining marks to NFC: %q != %q", got, want)
	}
}

func TestArgumentOffset(t *testing.T) {
	cases := []struct {
		kind ast.FunctionKind
		want int
	}{
		{ast.FnFree, 0},
		{ast.FnStaticMethod, 0},
		{ast.FnInstanceMethod, 1},
		{ast.FnOperator, 0},
	}
	for _, c := range cases {
		if got := ArgumentOffset(c.kind); got != c.want {
			t.Errorf("ArgumentOffset(%v) = %d, want %d", c.kind, got, c.want)
		}
	}
}

func TestMangleInjectiveOverSignedness(t *testing.T) {
	in := types.NewInterner()
	b := in.Builtins()
	m1 := Mangle(ast.FnFree, "", "f", []types.TypeID{b.Int32}, b.Int32, in)
	m2 := Mangle(ast.FnFree, "", "f", []types.TypeID{b.UInt32}, b.UInt32, in)
	if m1 == m2 {
		t.Fatalf("distinct signatures mangled identically: %q", m1)
	}
}

func TestRegisterIdempotentForwardDeclaration(t *testing.T) {
	in := types.NewInterner()
	b := in.Builtins()
	reg := NewRegistry()
	c1 := &ResolvedCallable{
		Canonical: "f", Mangled: Mangle(ast.FnFree, "", "f", []types.TypeID{b.Int32}, b.Int32, in),
		Kind: ast.FnFree, ParamTypes: []types.TypeID{b.Int32}, RetType: b.Int32,
	}
	got1, errDiag := reg.Register(c1, source.Span{})
	if errDiag != nil {
		t.Fatalf("first registration failed: %v", errDiag)
	}
	c2 := *c1
	got2, errDiag := reg.Register(&c2, source.Span{})
	if errDiag != nil {
		t.Fatalf("idempotent re-registration failed: %v", errDiag)
	}
	if got1 != got2 {
		t.Fatalf("idempotent re-registration should return the original callable")
	}
}

func TestRegisterRedefinitionOnIncompatibleSignature(t *testing.T) {
	in := types.NewInterner()
	b := in.Builtins()
	reg := NewRegistry()
	mangled := Mangle(ast.FnFree, "", "f", []types.TypeID{b.Int32}, b.Int32, in)
	c1 := &ResolvedCallable{Canonical: "f", Mangled: mangled, Kind: ast.FnFree, ParamTypes: []types.TypeID{b.Int32}, RetType: b.Int32}
	if _, errDiag := reg.Register(c1, source.Span{}); errDiag != nil {
		t.Fatalf("first registration failed: %v", errDiag)
	}
	c2 := &ResolvedCallable{Canonical: "f", Mangled: mangled, Kind: ast.FnFree, ParamTypes: []types.TypeID{b.Int32}, RetType: b.Int64}
	if _, errDiag := reg.Register(c2, source.Span{}); errDiag == nil {
		t.Fatal("expected Redefinition diagnostic for incompatible signature under the same mangled name")
	}
}

func TestRegisterStructSynthesizesInit(t *testing.T) {
	in := types.NewInterner()
	b := in.Builtins()
	structDecl := &ast.StructDecl{
		Name:   "P",
		Fields: []ast.FieldDecl{{Name: "x", Type: ast.ResolvedDesc(b.Int32, source.Span{})}, {Name: "y", Type: ast.ResolvedDesc(b.Int32, source.Span{})}},
	}
	st, ok := in.MakeStruct("P", []types.Member{{Name: "x", Type: b.Int32}, {Name: "y", Type: b.Int32}})
	if !ok {
		t.Fatal("MakeStruct failed")
	}
	reg := NewRegistry()
	callable, errDiag := reg.RegisterStruct(structDecl, st, in, source.Span{})
	if errDiag != nil {
		t.Fatalf("RegisterStruct failed: %v", errDiag)
	}
	if callable == nil {
		t.Fatal("expected a synthesized init callable")
	}
	if len(callable.ParamTypes) != 2 || callable.ParamTypes[0] != b.Int32 {
		t.Fatalf("unexpected init params: %v", callable.ParamTypes)
	}
	wantRet := in.MakePointerTo(st)
	if callable.RetType != wantRet {
		t.Fatalf("init return type = %v, want *P (%v)", callable.RetType, wantRet)
	}
}

// Registering two callables that share an owner-type name should back that
// name with a single interned string, not one allocation per registration.
func TestRegisterInternsRepeatedOwnerTypeName(t *testing.T) {
	in := types.NewInterner()
	b := in.Builtins()
	reg := NewRegistry()
	owner := "Point"
	c1 := &ResolvedCallable{
		Canonical: "Point::x", Mangled: Mangle(ast.FnInstanceMethod, owner, "x", nil, b.Int32, in),
		Kind: ast.FnInstanceMethod, OwnerType: owner, RetType: b.Int32,
	}
	c2 := &ResolvedCallable{
		Canonical: "Point::y", Mangled: Mangle(ast.FnInstanceMethod, owner, "y", nil, b.Int32, in),
		Kind: ast.FnInstanceMethod, OwnerType: owner, RetType: b.Int32,
	}
	if _, errDiag := reg.Register(c1, source.Span{}); errDiag != nil {
		t.Fatalf("first registration failed: %v", errDiag)
	}
	before := reg.names.Len()
	if _, errDiag := reg.Register(c2, source.Span{}); errDiag != nil {
		t.Fatalf("second registration failed: %v", errDiag)
	}
	// c2 contributes two new strings (its distinct Canonical and Mangled
	// names) but reuses c1's already-interned "Point" OwnerType, so the
	// interner should grow by 2 entries, not 3.
	if got, want := reg.names.Len(), before+2; got != want {
		t.Fatalf("expected the shared owner type to be reused (interner len %d -> %d), got %d", before, want, got)
	}
}

func TestRegisterStructNoInitSuppressesSynthesis(t *testing.T) {
	in := types.NewInterner()
	structDecl := &ast.StructDecl{Name: "Q", Attrs: ast.StructAttributes{NoInit: true}}
	st, _ := in.MakeStruct("Q", nil)
	reg := NewRegistry()
	callable, errDiag := reg.RegisterStruct(structDecl, st, in, source.Span{})
	if errDiag != nil {
		t.Fatalf("unexpected diagnostic: %v", errDiag)
	}
	if callable != nil {
		t.Fatal("no_init struct must not get a synthesized init")
	}
}
