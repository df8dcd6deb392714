// Package typeresolve implements the Type Descriptor Resolver of spec.md
// §4.B: mapping a syntactic ast.TypeDesc to a canonical types.TypeID in a
// scoped environment.
//
// Grounded on yo/lib/parse/TypeDesc.cpp's resolve() dispatch and on
// surge/internal/sema's resolveType helpers for the "consult the nominal
// table, fall back to primitives" shape.
package typeresolve

import (
	"yo/internal/ast"
	"yo/internal/diag"
	"yo/internal/scope"
	"yo/internal/types"
)

// GuessTyper is the subset of the Expression Elaborator the Decltype case
// needs (spec.md §4.B: "Decltype: invoke the Expression Elaborator's
// guessType on the wrapped expression"). internal/elaborate implements it;
// kept as an interface here to avoid a resolver <-> elaborator import cycle
// (the elaborator itself calls Resolve for CastExpr destinations).
type GuessTyper interface {
	GuessType(env *scope.Env, e ast.Expr) (types.TypeID, *diag.Diagnostic)
}

func primitiveByName(b types.Builtins, name string) (types.TypeID, bool) {
	switch name {
	case "void":
		return b.Void, true
	case "bool":
		return b.Bool, true
	case "i8":
		return b.Int8, true
	case "i16":
		return b.Int16, true
	case "i32":
		return b.Int32, true
	case "i64":
		return b.Int64, true
	case "u8":
		return b.UInt8, true
	case "u16":
		return b.UInt16, true
	case "u32":
		return b.UInt32, true
	case "u64":
		return b.UInt64, true
	case "f64":
		return b.Float64, true
	default:
		return types.NoTypeID, false
	}
}

// Resolve maps desc to its canonical Type, per spec.md §4.B. When memoize is
// true (the default the spec describes), desc is mutated in place to cache
// the result; speculative overload scoring passes false so a rejected
// candidate leaves no residue on the AST.
func Resolve(desc *ast.TypeDesc, interner *types.Interner, env *scope.Env, elab GuessTyper, memoize bool) (types.TypeID, *diag.Diagnostic) {
	if desc == nil {
		return types.NoTypeID, nil
	}
	if desc.IsResolved() {
		return desc.Resolved, nil
	}

	var result types.TypeID

	switch desc.Kind {
	case ast.TypeDescNominal:
		if id, ok := primitiveByName(interner.Builtins(), desc.Name); ok {
			result = id
			break
		}
		id, ok := env.LookupNominal(desc.Name)
		if !ok {
			return types.NoTypeID, diag.New(diag.UnknownType, desc.Span, "unknown type %q", desc.Name)
		}
		result = id

	case ast.TypeDescPointer:
		inner, d := Resolve(desc.Inner, interner, env, elab, memoize)
		if d != nil {
			return types.NoTypeID, d
		}
		result = interner.MakePointerTo(inner)

	case ast.TypeDescReference:
		// References collapse to their referent at this layer (spec.md §4.B,
		// SPEC_FULL.md §4 open-question resolution 1).
		inner, d := Resolve(desc.Inner, interner, env, elab, memoize)
		if d != nil {
			return types.NoTypeID, d
		}
		result = inner

	case ast.TypeDescFunction:
		ret, d := Resolve(desc.Ret, interner, env, elab, memoize)
		if d != nil {
			return types.NoTypeID, d
		}
		params := make([]types.TypeID, len(desc.Params))
		for i, p := range desc.Params {
			pid, d := Resolve(p, interner, env, elab, memoize)
			if d != nil {
				return types.NoTypeID, d
			}
			params[i] = pid
		}
		result = interner.MakeFunction(ret, params, desc.Conv)

	case ast.TypeDescDecltype:
		if elab == nil {
			return types.NoTypeID, diag.New(diag.UnknownType, desc.Span, "decltype resolution requires an elaborator")
		}
		id, d := elab.GuessType(env, desc.Expr)
		if d != nil {
			return types.NoTypeID, d
		}
		result = id

	case ast.TypeDescNominalTemplated:
		// Reserved: spec.md §4.B treats templated-struct instantiation as
		// unimplemented (SPEC_FULL.md §4 open-question resolution 2).
		return types.NoTypeID, diag.New(diag.UnimplementedTemplatedNominal, desc.Span,
			"templated nominal type %q is not implemented", desc.Name)

	case ast.TypeDescTuple:
		// spec.md §4.B's resolve algorithm never names a Tuple case; like
		// NominalTemplated it has AST support with no completed resolution
		// path in the source this spec was distilled from.
		return types.NoTypeID, diag.New(diag.UnimplementedTemplatedNominal, desc.Span,
			"tuple type resolution is not implemented")

	default:
		return types.NoTypeID, diag.New(diag.UnknownType, desc.Span, "malformed type descriptor")
	}

	if memoize {
		desc.MarkResolved(result)
	}
	return result, nil
}
