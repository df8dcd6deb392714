package symbols

import (
	"yo/internal/ast"
	"yo/internal/diag"
	"yo/internal/source"
	"yo/internal/types"
)

// ResolvedCallable is spec.md §3's triple of (signature, declaration
// reference, emitted-function handle), plus the argument offset spec.md's
// glossary defines. Handle is opaque to this package — it is whatever the
// Emitter collaborator (internal/driver) returned from declareFunction, or
// nil before the declaration has been emitted.
type ResolvedCallable struct {
	Canonical string
	Mangled   string
	Kind      ast.FunctionKind
	OwnerType string
	Decl      *ast.FunctionDecl
	ParamTypes []types.TypeID
	RetType   types.TypeID
	Variadic  bool
	Offset    int
	Handle    any
}

// sameSignature reports whether two callables share resolved parameter and
// return types and variadic-ness — the equality spec.md §4.D calls on to
// decide idempotent re-registration from Redefinition.
func sameSignature(a, b *ResolvedCallable) bool {
	if a.RetType != b.RetType || a.Variadic != b.Variadic || len(a.ParamTypes) != len(b.ParamTypes) {
		return false
	}
	for i := range a.ParamTypes {
		if a.ParamTypes[i] != b.ParamTypes[i] {
			return false
		}
	}
	return true
}

// Registry is the Callable Registry of spec.md §4.D.
type Registry struct {
	overloads map[string][]*ResolvedCallable // canonical name -> ordered list
	resolved  map[string]*ResolvedCallable   // mangled name -> callable
	names     *source.Interner               // dedupes repeated canonical/mangled/owner strings
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		overloads: make(map[string][]*ResolvedCallable),
		resolved:  make(map[string]*ResolvedCallable),
		names:     source.NewInterner(),
	}
}

// intern folds s through the Registry's string interner, so every
// ResolvedCallable naming the same owner type or canonical/mangled name
// (common across a module's overload set) shares one backing string rather
// than allocating a fresh copy per registration.
func (r *Registry) intern(s string) string {
	if s == "" {
		return s
	}
	return r.names.MustLookup(r.names.Intern(s))
}

// Overloads returns the ordered candidate list registered under canonical,
// in source-registration order (spec.md's testable property 4: "overload
// resolution is deterministic in the source order of registered overloads").
func (r *Registry) Overloads(canonical string) []*ResolvedCallable {
	return r.overloads[canonical]
}

// LookupMangled returns the callable previously registered under mangled.
func (r *Registry) LookupMangled(mangled string) (*ResolvedCallable, bool) {
	c, ok := r.resolved[mangled]
	return c, ok
}

// Register inserts callable into both tables. It fails with *diag.Diagnostic
// (code diag.Redefinition) if callable.Mangled is already present under an
// incompatible signature; re-registering an equal signature is a silent,
// idempotent no-op that returns the pre-existing callable (spec.md §4.D:
// "succeeds silently if [signatures] are equal (idempotent forward
// declaration)").
func (r *Registry) Register(callable *ResolvedCallable, span source.Span) (*ResolvedCallable, *diag.Diagnostic) {
	callable.Canonical = r.intern(callable.Canonical)
	callable.Mangled = r.intern(callable.Mangled)
	callable.OwnerType = r.intern(callable.OwnerType)
	if existing, ok := r.resolved[callable.Mangled]; ok {
		if sameSignature(existing, callable) {
			return existing, nil
		}
		return nil, diag.New(diag.Redefinition, span,
			"redefinition of %q with an incompatible signature", callable.Mangled)
	}
	r.resolved[callable.Mangled] = callable
	r.overloads[callable.Canonical] = append(r.overloads[callable.Canonical], callable)
	return callable, nil
}

// RegisterTemplate adds decl (a function whose signature is a template
// signature, spec.md §3) as an overload candidate without a mangled name:
// a template's mangled name only exists once concrete argument types are
// deduced, so it never enters the mangled-name table until
// internal/callresolve specializes and re-registers it (spec.md §4.F
// "Template instantiation").
func (r *Registry) RegisterTemplate(decl *ast.FunctionDecl) *ResolvedCallable {
	canonical := r.intern(CanonicalName(decl.Kind, decl.OwnerType, decl.Name))
	callable := &ResolvedCallable{
		Canonical: canonical,
		Kind:      decl.Kind,
		OwnerType: r.intern(decl.OwnerType),
		Decl:      decl,
		Offset:    ArgumentOffset(decl.Kind),
	}
	r.overloads[canonical] = append(r.overloads[canonical], callable)
	return callable
}

// IsTemplate reports whether c represents an uninstantiated template
// candidate (spec.md §3: "A signature is a template signature iff its
// template-parameter list is non-empty").
func (c *ResolvedCallable) IsTemplate() bool {
	return c.Decl != nil && c.Decl.Signature.IsTemplate()
}

// RegisterStruct implicitly registers the static `init` callable for a
// freshly created struct type, per spec.md §4.D: "Registering a struct:
// also implicitly registers a static init method whose parameters are the
// struct's fields in declaration order and whose return type is a pointer
// to the struct, unless the struct bears a no-init attribute." Returns nil,
// nil if attrs.NoInit suppresses synthesis.
func (r *Registry) RegisterStruct(decl *ast.StructDecl, structType types.TypeID, interner *types.Interner, span source.Span) (*ResolvedCallable, *diag.Diagnostic) {
	if decl.Attrs.NoInit {
		return nil, nil
	}
	ptrType := interner.MakePointerTo(structType)
	params := make([]types.TypeID, len(decl.Fields))
	fnParams := make([]ast.Param, len(decl.Fields))
	for i, f := range decl.Fields {
		params[i] = f.Type.Resolved
		fnParams[i] = ast.Param{Name: f.Name, Type: f.Type}
	}
	initDecl := &ast.FunctionDecl{
		SpanV:     span,
		Name:      "init",
		Kind:      ast.FnStaticMethod,
		OwnerType: decl.Name,
		Signature: ast.FunctionSignature{Params: fnParams, Ret: ast.ResolvedDesc(ptrType, span)},
	}
	callable := &ResolvedCallable{
		Canonical:  CanonicalName(ast.FnStaticMethod, decl.Name, "init"),
		Mangled:    Mangle(ast.FnStaticMethod, decl.Name, "init", params, ptrType, interner),
		Kind:       ast.FnStaticMethod,
		OwnerType:  decl.Name,
		Decl:       initDecl,
		ParamTypes: params,
		RetType:    ptrType,
		Offset:     ArgumentOffset(ast.FnStaticMethod),
	}
	return r.Register(callable, span)
}
