package driver

import (
	"yo/internal/ast"
	"yo/internal/diag"
	"yo/internal/symbols"
	"yo/internal/typeresolve"
	"yo/internal/types"
)

// declareTypealias resolves decl.Target and registers decl.Name in the
// global nominal table (spec.md §5: type aliases register before structs,
// so a struct field may reference an alias name).
func (d *Driver) declareTypealias(decl *ast.TypealiasDecl) *diag.Diagnostic {
	id, errDiag := typeresolve.Resolve(decl.Target, d.Interner, d.Env, d.Elaborator, true)
	if errDiag != nil {
		return errDiag
	}
	d.Env.InsertNominal(decl.Name, id)
	return nil
}

// declareStructShell reserves decl's TypeID and nominal name before any
// field type is resolved, per types.Interner.SetStructMembers's doc comment
// (self-referential structs).
func (d *Driver) declareStructShell(decl *ast.StructDecl) (types.TypeID, *diag.Diagnostic) {
	id, ok := d.Interner.MakeStruct(decl.Name, nil)
	if !ok {
		return types.NoTypeID, diag.New(diag.Redefinition, decl.SpanV, "redefinition of struct %q", decl.Name)
	}
	d.Env.InsertNominal(decl.Name, id)
	return id, nil
}

// resolveStructFields resolves decl's field types now that every struct
// name (including decl's own) is visible in the nominal table, populates
// id's member list, and registers the implicit static init method (spec.md
// §4.D).
func (d *Driver) resolveStructFields(decl *ast.StructDecl, id types.TypeID) *diag.Diagnostic {
	members := make([]types.Member, len(decl.Fields))
	for i, f := range decl.Fields {
		fieldType, errDiag := typeresolve.Resolve(f.Type, d.Interner, d.Env, d.Elaborator, true)
		if errDiag != nil {
			return errDiag
		}
		members[i] = types.Member{Name: f.Name, Type: fieldType}
	}
	d.Interner.SetStructMembers(id, members)
	_, errDiag := d.Registry.RegisterStruct(decl, id, d.Interner, decl.SpanV)
	return errDiag
}

// declareFunction registers decl's signature — as a template placeholder if
// its signature carries template parameters, otherwise as a fully resolved,
// mangled ResolvedCallable — per spec.md §4.D/§4.F. Returns (nil, nil) for
// nothing further to do only if decl itself was malformed in a way that
// produces no diagnostic, which never happens today; kept as a return shape
// so a future relaxed case (e.g. an extern re-declaration) has somewhere to
// return early without a diagnostic.
func (d *Driver) declareFunction(decl *ast.FunctionDecl) (*symbols.ResolvedCallable, *diag.Diagnostic) {
	if decl.Signature.IsTemplate() {
		return d.Registry.RegisterTemplate(decl), nil
	}

	params := make([]types.TypeID, len(decl.Signature.Params))
	for i, p := range decl.Signature.Params {
		ty, errDiag := typeresolve.Resolve(p.Type, d.Interner, d.Env, d.Elaborator, true)
		if errDiag != nil {
			return nil, errDiag
		}
		params[i] = ty
	}
	ret, errDiag := typeresolve.Resolve(decl.Signature.Ret, d.Interner, d.Env, d.Elaborator, true)
	if errDiag != nil {
		return nil, errDiag
	}

	mangled := symbols.LinkageName(decl.Kind, decl.OwnerType, decl.Name, params, ret, d.Interner, decl.Attrs)
	callable := &symbols.ResolvedCallable{
		Canonical:  symbols.CanonicalName(decl.Kind, decl.OwnerType, decl.Name),
		Mangled:    mangled,
		Kind:       decl.Kind,
		OwnerType:  decl.OwnerType,
		Decl:       decl,
		ParamTypes: params,
		RetType:    ret,
		Variadic:   decl.Signature.Variadic,
		Offset:     symbols.ArgumentOffset(decl.Kind),
	}
	return d.Registry.Register(callable, decl.SpanV)
}
