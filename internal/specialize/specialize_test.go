package specialize

import (
	"testing"

	"yo/internal/ast"
	"yo/internal/source"
)

func idFunctionDecl() *ast.FunctionDecl {
	span := source.Span{Start: 1, End: 2}
	t := ast.Nominal("T", span)
	return &ast.FunctionDecl{
		SpanV: span,
		Name:  "id",
		Kind:  ast.FnFree,
		Signature: ast.FunctionSignature{
			Params:         []ast.Param{{Name: "x", Type: t}},
			Ret:            ast.Nominal("T", span),
			TemplateParams: []string{"T"},
		},
		Body: &ast.Composite{SpanV: span, Statements: []ast.Stmt{
			&ast.ReturnStmt{SpanV: span, Value: &ast.Ident{SpanV: span, Name: "x"}},
		}},
	}
}

func TestFunctionSubstitutesNominalTemplateParams(t *testing.T) {
	decl := idFunctionDecl()
	mapping := Mapping{"T": ast.Nominal("i64", source.Span{})}

	clone := Function(decl, mapping)

	if len(clone.Signature.TemplateParams) != 0 {
		t.Fatal("specialized declaration must have an empty template-parameter list")
	}
	if clone.Signature.Params[0].Type.Name != "i64" {
		t.Fatalf("param type not substituted: got %q", clone.Signature.Params[0].Type.Name)
	}
	if clone.Signature.Ret.Name != "i64" {
		t.Fatalf("return type not substituted: got %q", clone.Signature.Ret.Name)
	}
	// Original left untouched.
	if decl.Signature.Params[0].Type.Name != "T" {
		t.Fatal("specialization must not mutate the source declaration")
	}
}

func TestFunctionPreservesStructureWhenNoTemplateParamsMentioned(t *testing.T) {
	span := source.Span{Start: 5, End: 9}
	decl := &ast.FunctionDecl{
		SpanV: span,
		Name:  "plain",
		Kind:  ast.FnFree,
		Signature: ast.FunctionSignature{
			Params: []ast.Param{{Name: "x", Type: ast.Nominal("i32", span)}},
			Ret:    ast.Nominal("i32", span),
		},
		Body: &ast.Composite{SpanV: span, Statements: []ast.Stmt{
			&ast.ReturnStmt{SpanV: span, Value: &ast.Ident{SpanV: span, Name: "x"}},
		}},
	}

	clone := Function(decl, Mapping{"Unused": ast.Nominal("f64", span)})

	if clone.Name != decl.Name || clone.Signature.Params[0].Type.Name != "i32" || clone.Signature.Ret.Name != "i32" {
		t.Fatal("specialize.Function with no matching substitution must be structurally equal (spec.md §8 property 3)")
	}
	if clone.Body == decl.Body {
		t.Fatal("clone must be a structurally independent copy, not the same object")
	}
	ret := clone.Body.Statements[0].(*ast.ReturnStmt)
	if ret.Value.(*ast.Ident).Name != "x" {
		t.Fatal("body must be preserved verbatim")
	}
}

func TestFunctionIntrinsicBodyNotCloned(t *testing.T) {
	span := source.Span{}
	decl := &ast.FunctionDecl{
		SpanV: span,
		Name:  "trap",
		Kind:  ast.FnFree,
		Attrs: ast.FunctionAttributes{Intrinsic: true},
		Signature: ast.FunctionSignature{
			Ret:            ast.Nominal("void", span),
			TemplateParams: []string{"T"},
		},
	}
	clone := Function(decl, Mapping{"T": ast.Nominal("i32", span)})
	if clone.Body != nil {
		t.Fatal("an intrinsic declaration's (empty) body must not be cloned")
	}
}
