// Package ast defines the syntactic tree consumed by the semantic core:
// TypeDesc (spec.md §3, the syntactic mirror of types.Type) plus the
// declaration/statement/expression node kinds the Module Driver, Call
// Resolver, and Expression Elaborator walk.
//
// Grounded on yo/AST.h's node hierarchy and on spec.md §9's redesign note:
// "an AST is a tree, not a graph; use single-owner trees with interior
// references into the type interner". Unlike surge/internal/ast (an
// arena/ID-indexed AST, appropriate for a parser-owned tree shared across
// passes), this package uses plain pointer trees — the core never parses
// text, it receives an already-built tree from a caller (or a test) and owns
// it exclusively for the duration of one compilation.
package ast

import (
	"yo/internal/source"
	"yo/internal/types"
)

// TypeDescKind is the closed sum of syntactic type-expression variants
// (spec.md §3's TypeDesc).
type TypeDescKind uint8

const (
	TypeDescInvalid TypeDescKind = iota
	TypeDescNominal
	TypeDescNominalTemplated
	TypeDescPointer
	TypeDescReference
	TypeDescFunction
	TypeDescTuple
	TypeDescDecltype
	TypeDescResolved
)

func (k TypeDescKind) String() string {
	switch k {
	case TypeDescNominal:
		return "nominal"
	case TypeDescNominalTemplated:
		return "nominal-templated"
	case TypeDescPointer:
		return "pointer"
	case TypeDescReference:
		return "reference"
	case TypeDescFunction:
		return "function"
	case TypeDescTuple:
		return "tuple"
	case TypeDescDecltype:
		return "decltype"
	case TypeDescResolved:
		return "resolved"
	default:
		return "invalid"
	}
}

// TypeDesc is the syntactic mirror of types.Type (spec.md §3). It carries a
// source location and is mutable in exactly one way: Resolve may flip Kind
// to TypeDescResolved and set Resolved, memoizing the resolution in place
// (spec.md §4.B: "the input desc is mutated to cache the resolved Type").
//
// Only the fields relevant to Kind are meaningful; this mirrors the
// original's tagged-union TypeDesc (Design Notes §9: "Unions with manual
// discriminator... replace with a discriminated sum" — here, a single
// exported struct with a Kind tag rather than an interface, since a TypeDesc
// needs to be mutated in place by the resolver, which an interface value
// cannot be).
type TypeDesc struct {
	Kind TypeDescKind
	Span source.Span

	// TypeDescNominal / TypeDescNominalTemplated
	Name string
	Args []*TypeDesc // TypeDescNominalTemplated only

	// TypeDescPointer / TypeDescReference
	Inner *TypeDesc

	// TypeDescFunction
	Params []*TypeDesc
	Ret    *TypeDesc
	Conv   types.CallingConvention

	// TypeDescTuple
	Members []*TypeDesc

	// TypeDescDecltype
	Expr Expr

	// TypeDescResolved (also the memoization cache once any kind resolves)
	Resolved types.TypeID
}

// Nominal builds an unresolved nominal TypeDesc.
func Nominal(name string, span source.Span) *TypeDesc {
	return &TypeDesc{Kind: TypeDescNominal, Name: name, Span: span}
}

// PointerTo builds an unresolved pointer TypeDesc wrapping inner.
func PointerTo(inner *TypeDesc, span source.Span) *TypeDesc {
	return &TypeDesc{Kind: TypeDescPointer, Inner: inner, Span: span}
}

// ReferenceTo builds an unresolved reference TypeDesc wrapping inner.
func ReferenceTo(inner *TypeDesc, span source.Span) *TypeDesc {
	return &TypeDesc{Kind: TypeDescReference, Inner: inner, Span: span}
}

// FunctionDesc builds an unresolved function-type TypeDesc.
func FunctionDesc(ret *TypeDesc, params []*TypeDesc, conv types.CallingConvention, span source.Span) *TypeDesc {
	return &TypeDesc{Kind: TypeDescFunction, Ret: ret, Params: params, Conv: conv, Span: span}
}

// ResolvedDesc wraps an already-known Type, useful for synthetic nodes the
// core builds itself (e.g. the Specializer's substitution targets, or the
// Module Driver's synthesized struct-init signature).
func ResolvedDesc(t types.TypeID, span source.Span) *TypeDesc {
	return &TypeDesc{Kind: TypeDescResolved, Resolved: t, Span: span}
}

// IsResolved reports whether d has already been memoized to a Type.
func (d *TypeDesc) IsResolved() bool {
	return d.Kind == TypeDescResolved
}

// MarkResolved mutates d in place to cache t, per spec.md §4.B's memoization
// contract. The pre-resolution payload (Name, Inner, ...) is left untouched;
// callers must not read it once IsResolved reports true. Only
// internal/typeresolve calls this outside of tests.
func (d *TypeDesc) MarkResolved(t types.TypeID) {
	d.Kind = TypeDescResolved
	d.Resolved = t
}
