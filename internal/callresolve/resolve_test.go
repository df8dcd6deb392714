package callresolve

import (
	"testing"

	"yo/internal/ast"
	"yo/internal/diag"
	"yo/internal/scope"
	"yo/internal/source"
	"yo/internal/symbols"
	"yo/internal/types"
)

var testSpan = source.Span{}

// stubTyper guesses an ast.Ident's type from the env, and defaults every
// ast.NumberLiteral to i64 (spec.md §4.G: an integer literal guesses i64,
// never the width of whichever parameter it happens to be checked against)
// — just enough of the guessType table to drive classification/scoring in
// isolation from internal/elaborate.
type stubTyper struct{ in *types.Interner }

func (s stubTyper) GuessType(env *scope.Env, e ast.Expr) (types.TypeID, *diag.Diagnostic) {
	switch n := e.(type) {
	case *ast.Ident:
		if ty, ok := env.GetType(n.Name); ok {
			return ty, nil
		}
		return types.NoTypeID, diag.New(diag.UnknownIdentifier, testSpan, "unknown identifier %q", n.Name)
	case *ast.NumberLiteral:
		return s.in.Builtins().Int64, nil
	default:
		return types.NoTypeID, diag.New(diag.UnknownIdentifier, testSpan, "unsupported expr")
	}
}

type noopInstantiator struct{}

func (noopInstantiator) Instantiate(decl *ast.FunctionDecl, callable *symbols.ResolvedCallable, omitCodegen bool) *diag.Diagnostic {
	return nil
}

func i32Desc() *ast.TypeDesc { return ast.Nominal("i32", testSpan) }

func intLit(v int64) *ast.NumberLiteral {
	return &ast.NumberLiteral{Span: testSpan, LitKind: ast.NumInteger, IntValue: v}
}

func newResolverFixture() (*Resolver, *types.Interner, *symbols.Registry) {
	in := types.NewInterner()
	reg := symbols.NewRegistry()
	r := New(in, reg, stubTyper{in: in}, noopInstantiator{})
	return r, in, reg
}

func TestClassifyIdentDirectBindingSkipsRegistry(t *testing.T) {
	r, in, _ := newResolverFixture()
	env := scope.NewEnv()
	fnType := in.MakeFunction(in.Builtins().Int32, []types.TypeID{in.Builtins().Int32}, types.CallingConvention(0))
	env.Insert("cb", fnType, "some-handle")

	call := &ast.CallExpr{SpanV: testSpan, Target: &ast.Ident{SpanV: testSpan, Name: "cb"}, Args: []ast.Expr{&ast.Ident{SpanV: testSpan, Name: "cb"}}}
	direct, candidates, _, errDiag := r.classify(env, call)
	if errDiag != nil {
		t.Fatalf("unexpected error: %v", errDiag)
	}
	if direct == nil || candidates != nil {
		t.Fatalf("expected a direct binding with no candidate list, got direct=%v candidates=%v", direct, candidates)
	}
	if direct.Handle != "some-handle" {
		t.Fatalf("expected the binding's handle to carry through, got %v", direct.Handle)
	}
}

func TestClassifyIdentWithNoBindingOrOverloadReportsUnresolvedCall(t *testing.T) {
	r, _, _ := newResolverFixture()
	env := scope.NewEnv()
	call := &ast.CallExpr{SpanV: testSpan, Target: &ast.Ident{SpanV: testSpan, Name: "missing"}}
	_, _, _, errDiag := r.classify(env, call)
	if errDiag == nil || errDiag.Code != diag.UnresolvedCall {
		t.Fatalf("expected diag.UnresolvedCall, got %v", errDiag)
	}
}

// nominalOf resolves one of the fixed builtin type names score()'s
// typeresolve.Resolve call would also accept, so registerFreeFn's synthetic
// Decl carries a Param.Type that actually names the intended type — score()
// reads sig.Params[i].Type, not the ResolvedCallable.ParamTypes slice, to
// determine each parameter's type.
func nominalOf(in *types.Interner, name string) types.TypeID {
	switch name {
	case "i32":
		return in.Builtins().Int32
	case "i64":
		return in.Builtins().Int64
	case "u32":
		return in.Builtins().UInt32
	default:
		panic("nominalOf: unsupported test type name " + name)
	}
}

func registerFreeFn(t *testing.T, in *types.Interner, reg *symbols.Registry, name string, paramNames []string, retName string) *symbols.ResolvedCallable {
	t.Helper()
	params := make([]ast.Param, len(paramNames))
	paramTypes := make([]types.TypeID, len(paramNames))
	for i, pn := range paramNames {
		params[i] = ast.Param{Name: "p", Type: ast.Nominal(pn, testSpan)}
		paramTypes[i] = nominalOf(in, pn)
	}
	ret := nominalOf(in, retName)
	decl := &ast.FunctionDecl{
		SpanV:     testSpan,
		Name:      name,
		Kind:      ast.FnFree,
		Signature: ast.FunctionSignature{Params: params, Ret: ast.Nominal(retName, testSpan)},
	}
	callable := &symbols.ResolvedCallable{
		Canonical:  symbols.CanonicalName(ast.FnFree, "", name),
		Mangled:    symbols.Mangle(ast.FnFree, "", name, paramTypes, ret, in),
		Kind:       ast.FnFree,
		Decl:       decl,
		ParamTypes: paramTypes,
		RetType:    ret,
	}
	registered, errDiag := reg.Register(callable, testSpan)
	if errDiag != nil {
		t.Fatalf("unexpected error registering %s: %v", name, errDiag)
	}
	return registered
}

func TestResolveMatchesExactArityAndTypeOverload(t *testing.T) {
	r, in, reg := newResolverFixture()
	registerFreeFn(t, in, reg, "sum", []string{"i32", "i32"}, "i32")

	env := scope.NewEnv()
	env.Insert("a", in.Builtins().Int32, nil)
	env.Insert("b", in.Builtins().Int32, nil)
	call := &ast.CallExpr{
		SpanV:  testSpan,
		Target: &ast.Ident{SpanV: testSpan, Name: "sum"},
		Args:   []ast.Expr{&ast.Ident{SpanV: testSpan, Name: "a"}, &ast.Ident{SpanV: testSpan, Name: "b"}},
	}
	callable, errDiag := r.Resolve(env, call, false)
	if errDiag != nil {
		t.Fatalf("unexpected error: %v", errDiag)
	}
	if callable.Canonical != "sum" {
		t.Fatalf("expected sum to resolve, got %+v", callable)
	}
}

func TestResolveRejectsArityMismatch(t *testing.T) {
	r, in, reg := newResolverFixture()
	registerFreeFn(t, in, reg, "sum", []string{"i32", "i32"}, "i32")

	env := scope.NewEnv()
	env.Insert("a", in.Builtins().Int32, nil)
	call := &ast.CallExpr{
		SpanV:  testSpan,
		Target: &ast.Ident{SpanV: testSpan, Name: "sum"},
		Args:   []ast.Expr{&ast.Ident{SpanV: testSpan, Name: "a"}},
	}
	_, errDiag := r.Resolve(env, call, false)
	if errDiag == nil || errDiag.Code != diag.NoViableOverload {
		t.Fatalf("expected diag.NoViableOverload, got %v", errDiag)
	}
}

// A literal argument against a sole i32-typed overload is a literal
// coercion (i64 guessed type != i32 param type), not an exact match — it
// still resolves uniquely since there is only one candidate to score.
func TestResolveCoercesLiteralArgumentToSoleOverload(t *testing.T) {
	r, in, reg := newResolverFixture()
	registerFreeFn(t, in, reg, "take", []string{"i32"}, "i32")

	env := scope.NewEnv()
	call := &ast.CallExpr{
		SpanV:  testSpan,
		Target: &ast.Ident{SpanV: testSpan, Name: "take"},
		Args:   []ast.Expr{intLit(3)},
	}
	callable, errDiag := r.Resolve(env, call, false)
	if errDiag != nil {
		t.Fatalf("unexpected error: %v", errDiag)
	}
	if callable.Canonical != "take" {
		t.Fatalf("expected take to resolve via literal coercion, got %+v", callable)
	}
}

// TestResolveReportsAmbiguousCallWhenLiteralCoercesEquallyToBothOverloads
// exercises the ambiguity spec.md §4.F requires: since an integer literal
// guesses i64 regardless of its value, f(1) against both fn f(i32) and
// fn f(u32) costs the literal-coercion penalty against both candidates
// equally and must tie, rather than one of them winning as an accidental
// "exact" match.
func TestResolveReportsAmbiguousCallWhenLiteralCoercesEquallyToBothOverloads(t *testing.T) {
	r, in, reg := newResolverFixture()
	registerFreeFn(t, in, reg, "f", []string{"i32"}, "i32")
	registerFreeFn(t, in, reg, "f", []string{"u32"}, "u32")

	env := scope.NewEnv()
	call := &ast.CallExpr{
		SpanV:  testSpan,
		Target: &ast.Ident{SpanV: testSpan, Name: "f"},
		Args:   []ast.Expr{intLit(1)},
	}
	_, errDiag := r.Resolve(env, call, false)
	if errDiag == nil || errDiag.Code != diag.AmbiguousCall {
		t.Fatalf("expected diag.AmbiguousCall, got %v", errDiag)
	}
}

func TestUnwrapPointersReportsDepthAndLeaf(t *testing.T) {
	leaf, depth := unwrapPointers(ast.PointerTo(ast.PointerTo(ast.Nominal("T", testSpan), testSpan), testSpan))
	if depth != 2 || leaf.Kind != ast.TypeDescNominal || leaf.Name != "T" {
		t.Fatalf("unexpected unwrap result: leaf=%+v depth=%d", leaf, depth)
	}
}

func TestMergeDeductionRejectsConflictingExprDeductions(t *testing.T) {
	m := map[string]deduced{}
	if err := mergeDeduction(m, "T", types.TypeID(1), reasonExpr); err != nil {
		t.Fatalf("unexpected error on first deduction: %v", err)
	}
	if err := mergeDeduction(m, "T", types.TypeID(2), reasonExpr); err == nil {
		t.Fatal("expected a conflict error for two different expr-deduced types")
	}
}
