// Package elaborate implements the Expression Elaborator of spec.md §4.G
// (guessType and implicit-coercion typechecking) and the fixed intrinsic
// dispatch of spec.md §4.H.
//
// Grounded on yo/IRGen.cpp's IRGenerator::guessType/typecheckAndCoerce and on
// the Intrinsic.cpp handler table for the arithmetic/comparison/cast
// intrinsics. The Elaborator is deliberately the one concrete type that
// closes the mutual dependency between spec.md §4.F and §4.G: it satisfies
// both callresolve.ExprTyper and typeresolve.GuessTyper structurally, and
// holds a *callresolve.Resolver to delegate non-intrinsic call targets,
// without either lower package importing this one.
package elaborate

import (
	"yo/internal/ast"
	"yo/internal/callresolve"
	"yo/internal/diag"
	"yo/internal/scope"
	"yo/internal/symbols"
	"yo/internal/typeresolve"
	"yo/internal/types"
)

// Elaborator is spec.md §4.G's Expression Elaborator.
type Elaborator struct {
	Interner *types.Interner
	Registry *symbols.Registry
	Resolver *callresolve.Resolver

	// stringType is the resolved handle for the source language's boxed
	// String struct, if the module under compilation declares one; a
	// StringLiteral with LitKind == StringNormalString guesses to a pointer
	// to it. Populated by internal/driver (through SetStringType) once the
	// struct table is known (spec.md §5's ordering guarantee: structs
	// register before any function body is elaborated).
	stringType types.TypeID
}

// New constructs an Elaborator. Callers must call SetResolver once the
// Resolver referencing this Elaborator has been built, since the two hold
// each other by interface (see the package doc comment).
func New(interner *types.Interner, registry *symbols.Registry) *Elaborator {
	return &Elaborator{Interner: interner, Registry: registry}
}

// SetResolver wires the Call Resolver collaborator in after construction,
// breaking the Elaborator<->Resolver initialization cycle.
func (e *Elaborator) SetResolver(r *callresolve.Resolver) { e.Resolver = r }

// SetStringType records the resolved handle of the boxed String struct type,
// used to guess the type of a StringNormalString literal.
func (e *Elaborator) SetStringType(t types.TypeID) { e.stringType = t }

// GuessType computes the type an expression would produce without mutating
// it, per spec.md §4.G's guessType table. It satisfies both
// callresolve.ExprTyper and typeresolve.GuessTyper.
func (e *Elaborator) GuessType(env *scope.Env, expr ast.Expr) (types.TypeID, *diag.Diagnostic) {
	b := e.Interner.Builtins()
	switch n := expr.(type) {
	case *ast.NumberLiteral:
		return e.numberLiteralType(n), nil

	case *ast.StringLiteral:
		if n.LitKind == ast.StringByteString {
			return e.Interner.MakePointerTo(b.Int8), nil
		}
		if e.stringType == types.NoTypeID {
			return e.Interner.MakePointerTo(b.Int8), nil
		}
		return e.Interner.MakePointerTo(e.stringType), nil

	case *ast.Ident:
		ty, ok := env.GetType(n.Name)
		if !ok {
			return types.NoTypeID, diag.New(diag.UnknownIdentifier, n.SpanV, "unknown identifier %q", n.Name)
		}
		return ty, nil

	case *ast.CastExpr:
		return e.guessCast(env, n)

	case *ast.UnaryExpr:
		return e.guessUnary(env, n)

	case *ast.BinOp:
		return e.guessBinOp(env, n)

	case *ast.CallExpr:
		return e.guessCall(env, n)

	case *ast.MemberExpr:
		return e.guessMember(env, n)

	case *ast.SubscriptExpr:
		return e.guessSubscript(env, n)

	case *ast.MatchExpr:
		if len(n.Branches) == 0 {
			return types.NoTypeID, diag.New(diag.InvalidMatchPattern, n.SpanV, "match has no branches")
		}
		return e.GuessType(env, n.Branches[0].Value)

	case *ast.StaticDeclRefExpr:
		return types.NoTypeID, diag.New(diag.UnresolvedCall, n.SpanV,
			"%s::%s is not usable as a value expression outside a call", n.TypeName, n.MemberName)

	case *ast.RawIRValue:
		return n.Type, nil

	default:
		return types.NoTypeID, diag.New(diag.UnknownIdentifier, expr.Loc(), "unrecognized expression node")
	}
}

func (e *Elaborator) numberLiteralType(n *ast.NumberLiteral) types.TypeID {
	b := e.Interner.Builtins()
	switch n.LitKind {
	case ast.NumInteger:
		return b.Int64
	case ast.NumCharacter:
		return b.UInt8
	case ast.NumBoolean:
		return b.Bool
	case ast.NumDouble:
		return b.Float64
	default:
		return b.Int64
	}
}

func (e *Elaborator) guessCast(env *scope.Env, n *ast.CastExpr) (types.TypeID, *diag.Diagnostic) {
	if _, errDiag := e.GuessType(env, n.Operand); errDiag != nil {
		return types.NoTypeID, errDiag
	}
	return typeresolve.Resolve(n.Dest, e.Interner, env, e, true)
}

func (e *Elaborator) guessUnary(env *scope.Env, n *ast.UnaryExpr) (types.TypeID, *diag.Diagnostic) {
	operandType, errDiag := e.GuessType(env, n.Operand)
	if errDiag != nil {
		return types.NoTypeID, errDiag
	}
	switch n.Op {
	case ast.UnaryNeg:
		got, ok := e.Interner.Lookup(operandType)
		if !ok || !got.IsNumerical() {
			return types.NoTypeID, diag.New(diag.InvalidOperator, n.SpanV, "unary - requires a numeric operand")
		}
		return operandType, nil
	case ast.UnaryNot:
		if operandType != e.Interner.Builtins().Bool {
			return types.NoTypeID, diag.New(diag.InvalidOperator, n.SpanV, "unary ! requires a bool operand")
		}
		return operandType, nil
	case ast.UnaryDeref:
		got, ok := e.Interner.Lookup(operandType)
		if !ok || !got.IsPointer() {
			return types.NoTypeID, diag.New(diag.InvalidOperator, n.SpanV, "cannot dereference a non-pointer")
		}
		return got.Pointee, nil
	case ast.UnaryAddrOf:
		return e.Interner.MakePointerTo(operandType), nil
	default:
		return types.NoTypeID, diag.New(diag.InvalidOperator, n.SpanV, "unrecognized unary operator")
	}
}

// guessBinOp normalizes b into its intrinsic call form (spec.md §4.G
// "Operator normalization") and guesses that instead; logical-and/or short
// circuit and never route through the generic arithmetic intrinsics.
func (e *Elaborator) guessBinOp(env *scope.Env, b *ast.BinOp) (types.TypeID, *diag.Diagnostic) {
	if b.Op == ast.OpLogicalAnd || b.Op == ast.OpLogicalOr {
		call := logicalCallOf(b)
		return e.guessIntrinsic(env, call.Target.(*ast.Ident).Name, call)
	}
	call := normalizeBinOp(b)
	if call == nil {
		return types.NoTypeID, diag.New(diag.InvalidOperator, b.SpanV, "unrecognized binary operator")
	}
	return e.guessCall(env, call)
}

func logicalCallOf(b *ast.BinOp) *ast.CallExpr {
	name := IntrinsicLAnd
	if b.Op == ast.OpLogicalOr {
		name = IntrinsicLOr
	}
	return &ast.CallExpr{SpanV: b.SpanV, Target: &ast.Ident{SpanV: b.SpanV, Name: name}, Args: []ast.Expr{b.Left, b.Right}}
}

// guessCall dispatches an intrinsic call by name (spec.md §4.H) before
// falling back to the Call Resolver for an ordinary user-defined callable
// (spec.md §4.F). This is the split recorded in DESIGN.md: the Resolver
// itself never special-cases intrinsic names.
func (e *Elaborator) guessCall(env *scope.Env, call *ast.CallExpr) (types.TypeID, *diag.Diagnostic) {
	if ident, ok := call.Target.(*ast.Ident); ok && IsIntrinsic(ident.Name) {
		return e.guessIntrinsic(env, ident.Name, call)
	}
	if e.Resolver == nil {
		return types.NoTypeID, diag.New(diag.UnresolvedCall, call.SpanV, "call resolver is not wired")
	}
	callable, errDiag := e.Resolver.Resolve(env, call, true)
	if errDiag != nil {
		if ident, ok := call.Target.(*ast.Ident); ok {
			if suggestion, ok := suggestIntrinsic(ident.Name); ok {
				errDiag.WithNote(call.SpanV, "did you mean the intrinsic %q?", suggestion)
			}
		}
		return types.NoTypeID, errDiag
	}
	return callable.RetType, nil
}

func (e *Elaborator) guessMember(env *scope.Env, n *ast.MemberExpr) (types.TypeID, *diag.Diagnostic) {
	targetType, errDiag := e.GuessType(env, n.Target)
	if errDiag != nil {
		return types.NoTypeID, errDiag
	}
	t, ok := e.Interner.Lookup(targetType)
	if !ok || !t.IsPointer() {
		return types.NoTypeID, diag.New(diag.InvalidOperator, n.SpanV, "member access target is not a pointer")
	}
	pointee, ok := e.Interner.Lookup(t.Pointee)
	if !ok || !pointee.IsStruct() {
		return types.NoTypeID, diag.New(diag.InvalidOperator, n.SpanV, "member access target does not point to a struct")
	}
	field, ok := pointee.Struct.Member(n.Member)
	if !ok {
		return types.NoTypeID, diag.New(diag.UnknownIdentifier, n.SpanV, "%s has no field %q", pointee.Struct.Name, n.Member)
	}
	return field.Type, nil
}

func (e *Elaborator) guessSubscript(env *scope.Env, n *ast.SubscriptExpr) (types.TypeID, *diag.Diagnostic) {
	targetType, errDiag := e.GuessType(env, n.Target)
	if errDiag != nil {
		return types.NoTypeID, errDiag
	}
	if _, errDiag := e.numericOperand(env, n.Index); errDiag != nil {
		return types.NoTypeID, errDiag
	}
	t, ok := e.Interner.Lookup(targetType)
	if !ok || !t.IsPointer() {
		return types.NoTypeID, diag.New(diag.InvalidOperator, n.SpanV, "subscript target is not a pointer")
	}
	return t.Pointee, nil
}
