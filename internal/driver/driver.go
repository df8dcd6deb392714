// Package driver implements the Module Driver of spec.md §4.H/§5/§6: the
// per-declaration ordering guarantee, the Emitter/ModuleLoader collaborator
// contracts, and the glue that wires the Type Interner, Callable Registry,
// Call Resolver, and Expression Elaborator into one compilation unit.
//
// Grounded on surge/internal/driver's diagnose.go (a Bag-per-unit,
// stop-on-first-error-per-declaration shape) and on IRGen.cpp's top-level
// generate() pass ordering (typealiases, then structs, then function
// forward-declarations, then function bodies).
package driver

import (
	"yo/internal/ast"
	"yo/internal/callresolve"
	"yo/internal/diag"
	"yo/internal/elaborate"
	"yo/internal/scope"
	"yo/internal/symbols"
	"yo/internal/types"
)

// Emitter is the opaque code-generation collaborator of spec.md §6:
// "low-level IR emission against any backend library" — this repo never
// implements it, only defines the surface the Module Driver calls once a
// declaration has been fully elaborated. A real backend (LLVM, a bytecode
// VM, anything) lives entirely outside this module (spec.md §1 Non-goals).
type Emitter interface {
	// DeclareFunction reserves a callable's linkage without emitting a
	// body, mirroring a forward declaration; returns an opaque handle
	// stored on the ResolvedCallable.
	DeclareFunction(mangled string, params []types.TypeID, ret types.TypeID) (any, error)
	// DefineFunction attaches body to a previously declared handle.
	DefineFunction(handle any, body *ast.Composite) error
	// GetTypeAllocSize returns the target's byte width for t, used by the
	// sizeof intrinsic when an Emitter is present (internal/elaborate falls
	// back to its own host-independent estimate otherwise, see
	// Elaborator.AllocSize).
	GetTypeAllocSize(t types.TypeID) uint64
}

// ModuleLoader resolves a `use` directive's module name to its already
// parsed declarations (spec.md §1: parsing precedes this core; ModuleLoader
// only ever hands back an already-built ast.File).
type ModuleLoader interface {
	Load(name string) (*ast.File, error)
}

// Driver is spec.md §4.H's Module Driver.
type Driver struct {
	Interner   *types.Interner
	Registry   *symbols.Registry
	Env        *scope.Env
	Elaborator *elaborate.Elaborator
	Resolver   *callresolve.Resolver
	Emitter    Emitter
	Loader     ModuleLoader
}

// New wires the four semantic-core components together, closing the
// Elaborator<->Resolver initialization cycle documented in
// internal/elaborate's package comment.
func New(emitter Emitter, loader ModuleLoader) *Driver {
	interner := types.NewInterner()
	registry := symbols.NewRegistry()
	elab := elaborate.New(interner, registry)
	resolver := callresolve.New(interner, registry, elab, nil)
	d := &Driver{
		Interner:   interner,
		Registry:   registry,
		Env:        scope.NewEnv(),
		Elaborator: elab,
		Resolver:   resolver,
		Emitter:    emitter,
		Loader:     loader,
	}
	elab.SetResolver(resolver)
	resolver.Emit = d
	return d
}

// Run processes file per spec.md §5's ordering guarantee: type aliases,
// then structs, then function/method forward declarations, then function
// bodies, accumulating one Diagnostic per failed top-level declaration into
// the returned Bag (SPEC_FULL.md §3's documented relaxation of §7's
// otherwise-fatal error model) rather than aborting the whole unit.
func (d *Driver) Run(file *ast.File) *diag.Bag {
	bag := diag.NewBag()

	aliases, structs, functions, impls := bucketDecls(file.Decls)

	for _, a := range aliases {
		if errDiag := d.declareTypealias(a); errDiag != nil {
			bag.Add(errDiag)
		}
	}
	structTypes := make(map[*ast.StructDecl]types.TypeID, len(structs))
	for _, s := range structs {
		id, errDiag := d.declareStructShell(s)
		if errDiag != nil {
			bag.Add(errDiag)
			continue
		}
		structTypes[s] = id
	}
	for _, s := range structs {
		id, ok := structTypes[s]
		if !ok {
			continue
		}
		if errDiag := d.resolveStructFields(s, id); errDiag != nil {
			bag.Add(errDiag)
		}
	}
	if id, ok := d.Interner.LookupStructByName("String"); ok {
		d.Elaborator.SetStringType(id)
	}

	var callables []*symbols.ResolvedCallable
	for _, fn := range functions {
		c, errDiag := d.declareFunction(fn)
		if errDiag != nil {
			bag.Add(errDiag)
			continue
		}
		if c != nil {
			callables = append(callables, c)
		}
	}
	for _, blk := range impls {
		for _, m := range blk.Methods {
			if m.OwnerType == "" {
				m.OwnerType = blk.TypeName
			}
			c, errDiag := d.declareFunction(m)
			if errDiag != nil {
				bag.Add(errDiag)
				continue
			}
			if c != nil {
				callables = append(callables, c)
			}
		}
	}

	for _, c := range callables {
		if c.IsTemplate() || c.Decl.Body == nil {
			continue // templates elaborate lazily, on first call (spec.md §4.F)
		}
		if errDiag := d.defineFunction(c); errDiag != nil {
			bag.Add(errDiag)
		}
	}

	return bag
}

// bucketDecls partitions file.Decls by kind, preserving source order within
// each bucket (spec.md's testable property 4 extends naturally to
// declaration processing order, not just overload registration order).
func bucketDecls(decls []ast.Decl) (aliases []*ast.TypealiasDecl, structs []*ast.StructDecl, functions []*ast.FunctionDecl, impls []*ast.ImplBlock) {
	for _, d := range decls {
		switch n := d.(type) {
		case *ast.TypealiasDecl:
			aliases = append(aliases, n)
		case *ast.StructDecl:
			structs = append(structs, n)
		case *ast.FunctionDecl:
			functions = append(functions, n)
		case *ast.ImplBlock:
			impls = append(impls, n)
		}
	}
	return
}

// Instantiate satisfies callresolve.Instantiator: it is invoked exactly once
// per freshly specialized template callable, immediately after Resolve
// registers it (spec.md §4.F). It elaborates the specialized body against
// the shared global environment and, unless omitCodegen was requested,
// hands the result to the Emitter.
func (d *Driver) Instantiate(decl *ast.FunctionDecl, callable *symbols.ResolvedCallable, omitCodegen bool) *diag.Diagnostic {
	return d.elaborateAndEmit(decl, callable, omitCodegen)
}
