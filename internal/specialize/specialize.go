// Package specialize implements the Template Specializer of spec.md §4.E: a
// pure structural clone of a template declaration with a type-descriptor
// substitution map applied.
//
// Grounded on yo/TemplateSpecialization.cpp's cloneFunctionDecl/cloneStmt/
// cloneExpr walk. This package holds no state and touches neither the
// registry nor a scope, per spec.md §4.E: "Specialization is pure."
package specialize

import "yo/internal/ast"

// Mapping is a map from template-parameter name to its fully-resolved
// substitute TypeDesc (spec.md §4.E's `mapping: name → TypeDesc`).
type Mapping = map[string]*ast.TypeDesc

// Function returns a deep clone of decl with every TypeDesc of Nominal kind
// whose name is a key of mapping replaced by a clone of the mapped
// descriptor. The clone's template-parameter list is always empty (spec.md
// §4.E's contract), attributes are copied by value, and an intrinsic
// declaration's (necessarily empty) body is left nil rather than re-cloned.
func Function(decl *ast.FunctionDecl, mapping Mapping) *ast.FunctionDecl {
	clone := &ast.FunctionDecl{
		SpanV:     decl.SpanV,
		Name:      decl.Name,
		Kind:      decl.Kind,
		OwnerType: decl.OwnerType,
		Attrs:     decl.Attrs,
		Signature: ast.FunctionSignature{
			Ret:      ast.CloneTypeDesc(decl.Signature.Ret, mapping),
			Variadic: decl.Signature.Variadic,
			// TemplateParams intentionally empty: the result is no longer a
			// template signature (spec.md §4.E: "The returned declaration
			// has an empty template-parameter list").
		},
	}
	clone.Signature.Params = make([]ast.Param, len(decl.Signature.Params))
	for i, p := range decl.Signature.Params {
		clone.Signature.Params[i] = ast.Param{Name: p.Name, Type: ast.CloneTypeDesc(p.Type, mapping)}
	}
	if decl.Attrs.Intrinsic {
		return clone
	}
	clone.Body = ast.CloneComposite(decl.Body, mapping)
	return clone
}

// Struct returns a deep clone of decl with template-parameter substitution
// applied to every field type. Provided for completeness against spec.md
// §4.E's "function, struct, or impl-block declaration"; the Call Resolver
// (spec.md §4.F) only ever drives Function, since templated-struct
// instantiation is itself unimplemented (spec.md §4.B NominalTemplated).
func Struct(decl *ast.StructDecl, mapping Mapping) *ast.StructDecl {
	clone := &ast.StructDecl{SpanV: decl.SpanV, Name: decl.Name, Attrs: decl.Attrs}
	clone.Fields = make([]ast.FieldDecl, len(decl.Fields))
	for i, f := range decl.Fields {
		clone.Fields[i] = ast.FieldDecl{Name: f.Name, Type: ast.CloneTypeDesc(f.Type, mapping)}
	}
	return clone
}

// ImplBlock returns a deep clone of decl with every method specialized
// through Function.
func ImplBlock(decl *ast.ImplBlock, mapping Mapping) *ast.ImplBlock {
	clone := &ast.ImplBlock{SpanV: decl.SpanV, TypeName: decl.TypeName}
	clone.Methods = make([]*ast.FunctionDecl, len(decl.Methods))
	for i, m := range decl.Methods {
		clone.Methods[i] = Function(m, mapping)
	}
	return clone
}
