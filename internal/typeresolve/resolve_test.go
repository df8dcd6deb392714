package typeresolve

import (
	"testing"

	"yo/internal/ast"
	"yo/internal/scope"
	"yo/internal/source"
	"yo/internal/types"
)

func TestResolvePrimitiveIsIdempotentAndCanonical(t *testing.T) {
	interner := types.NewInterner()
	env := scope.NewEnv()

	d1 := ast.Nominal("i32", source.Span{})
	got1, errDiag := Resolve(d1, interner, env, nil, true)
	if errDiag != nil {
		t.Fatalf("resolve failed: %v", errDiag)
	}
	if got1 != interner.Builtins().Int32 {
		t.Fatalf("resolve(i32) = %v, want the builtin Int32", got1)
	}

	// Idempotence: resolving the same (now-memoized) desc again returns the
	// identical TypeID (spec.md §8 property 1).
	got2, errDiag := Resolve(d1, interner, env, nil, true)
	if errDiag != nil {
		t.Fatalf("second resolve failed: %v", errDiag)
	}
	if got1 != got2 {
		t.Fatalf("resolve is not idempotent: %v != %v", got1, got2)
	}

	// Canonicalization: a distinct TypeDesc denoting i32 resolves to the
	// same pointer-equal TypeID (spec.md §8 property 2, S1).
	d2 := ast.Nominal("i32", source.Span{})
	got3, errDiag := Resolve(d2, interner, env, nil, true)
	if errDiag != nil {
		t.Fatalf("third resolve failed: %v", errDiag)
	}
	if got3 != got1 {
		t.Fatalf("two nominal descriptors for i32 resolved to different TypeIDs")
	}

	// S1: pointer form matches the builtin's own pointer-to.
	ptrDesc := ast.PointerTo(ast.Nominal("i32", source.Span{}), source.Span{})
	gotPtr, errDiag := Resolve(ptrDesc, interner, env, nil, true)
	if errDiag != nil {
		t.Fatalf("pointer resolve failed: %v", errDiag)
	}
	if gotPtr != interner.MakePointerTo(interner.Builtins().Int32) {
		t.Fatal("*i32 did not resolve to the memoized pointer-to-Int32")
	}
}

func TestResolveMemoizeFalseLeavesDescUntouched(t *testing.T) {
	interner := types.NewInterner()
	env := scope.NewEnv()
	d := ast.Nominal("i64", source.Span{})
	if _, errDiag := Resolve(d, interner, env, nil, false); errDiag != nil {
		t.Fatalf("resolve failed: %v", errDiag)
	}
	if d.IsResolved() {
		t.Fatal("memoize=false must not mutate the descriptor")
	}
}

func TestResolveUnknownNominalFails(t *testing.T) {
	interner := types.NewInterner()
	env := scope.NewEnv()
	_, errDiag := Resolve(ast.Nominal("Frobnicator", source.Span{}), interner, env, nil, true)
	if errDiag == nil {
		t.Fatal("expected UnknownType diagnostic")
	}
}

func TestResolveReferenceCollapsesToReferent(t *testing.T) {
	interner := types.NewInterner()
	env := scope.NewEnv()
	refDesc := ast.ReferenceTo(ast.Nominal("i32", source.Span{}), source.Span{})
	got, errDiag := Resolve(refDesc, interner, env, nil, true)
	if errDiag != nil {
		t.Fatalf("resolve failed: %v", errDiag)
	}
	if got != interner.Builtins().Int32 {
		t.Fatal("reference to i32 must collapse to i32 itself")
	}
}

func TestResolveNominalTemplatedIsUnimplemented(t *testing.T) {
	interner := types.NewInterner()
	env := scope.NewEnv()
	desc := &ast.TypeDesc{Kind: ast.TypeDescNominalTemplated, Name: "Box", Args: []*ast.TypeDesc{ast.Nominal("i32", source.Span{})}}
	_, errDiag := Resolve(desc, interner, env, nil, true)
	if errDiag == nil {
		t.Fatal("expected unimplemented-templated-nominal diagnostic")
	}
}
