package elaborate

import (
	"yo/internal/ast"
	"yo/internal/diag"
	"yo/internal/scope"
	"yo/internal/source"
	"yo/internal/types"
)

// coerceTo wraps expr in a static CastExpr to target when expr's guessed
// type differs and the value-fits rule of spec.md §4.G allows it; otherwise
// it returns a diagnostic with the given mismatch code. A non-literal
// mismatch is never coercible — only a NumberLiteral operand may be
// implicitly widened (spec.md's property 6: "coercing a numeric literal ...
// never changes its represented value").
func (e *Elaborator) coerceTo(expr ast.Expr, from, target types.TypeID, span source.Span, mismatch diag.Code) (ast.Expr, *diag.Diagnostic) {
	if from == target {
		return expr, nil
	}
	lit, ok := expr.(*ast.NumberLiteral)
	if !ok {
		return nil, diag.New(mismatch, span, "cannot use a value of type %s where %s is expected",
			e.Interner.Str(from), e.Interner.Str(target))
	}
	targetTy, ok := e.Interner.Lookup(target)
	if !ok || !targetTy.IsNumerical() || !ast.NumberLiteralFits(lit, targetTy.Numerical) {
		return nil, diag.New(mismatch, span, "literal does not fit in target type %s", e.Interner.Str(target))
	}
	return &ast.CastExpr{SpanV: span, CastKind: ast.CastStatic, Dest: ast.ResolvedDesc(target, span), Operand: lit}, nil
}

// Elaborate runs the full, tree-mutating elaboration pass over expr (spec.md
// §4.G): it normalizes BinOp nodes into their canonical intrinsic call form,
// recurses into every subexpression, folds the compile-time-constant
// intrinsics (sizeof/__typename/__is_same/__is_pointer) into literal nodes,
// and inserts implicit literal-coercion casts around intrinsic and call
// arguments. It returns the (possibly replaced) expression and its type.
func (e *Elaborator) Elaborate(env *scope.Env, expr ast.Expr) (ast.Expr, types.TypeID, *diag.Diagnostic) {
	switch n := expr.(type) {
	case *ast.NumberLiteral, *ast.StringLiteral, *ast.Ident, *ast.RawIRValue:
		t, errDiag := e.GuessType(env, expr)
		return expr, t, errDiag

	case *ast.UnaryExpr:
		operand, _, errDiag := e.Elaborate(env, n.Operand)
		if errDiag != nil {
			return nil, types.NoTypeID, errDiag
		}
		n.Operand = operand
		t, errDiag := e.guessUnary(env, n)
		return n, t, errDiag

	case *ast.CastExpr:
		operand, _, errDiag := e.Elaborate(env, n.Operand)
		if errDiag != nil {
			return nil, types.NoTypeID, errDiag
		}
		n.Operand = operand
		t, errDiag := e.guessCast(env, n)
		return n, t, errDiag

	case *ast.MemberExpr:
		target, _, errDiag := e.Elaborate(env, n.Target)
		if errDiag != nil {
			return nil, types.NoTypeID, errDiag
		}
		n.Target = target
		t, errDiag := e.guessMember(env, n)
		return n, t, errDiag

	case *ast.SubscriptExpr:
		target, _, errDiag := e.Elaborate(env, n.Target)
		if errDiag != nil {
			return nil, types.NoTypeID, errDiag
		}
		index, _, errDiag := e.Elaborate(env, n.Index)
		if errDiag != nil {
			return nil, types.NoTypeID, errDiag
		}
		n.Target, n.Index = target, index
		t, errDiag := e.guessSubscript(env, n)
		return n, t, errDiag

	case *ast.MatchExpr:
		return e.elaborateMatch(env, n)

	case *ast.BinOp:
		if n.Op == ast.OpLogicalAnd || n.Op == ast.OpLogicalOr {
			return e.elaborateLogical(env, n)
		}
		call := normalizeBinOp(n)
		if call == nil {
			return nil, types.NoTypeID, diag.New(diag.InvalidOperator, n.SpanV, "unrecognized binary operator")
		}
		return e.Elaborate(env, call)

	case *ast.CallExpr:
		return e.elaborateCall(env, n)

	case *ast.StaticDeclRefExpr:
		return nil, types.NoTypeID, diag.New(diag.UnresolvedCall, n.SpanV,
			"%s::%s is not usable as a value expression outside a call", n.TypeName, n.MemberName)

	default:
		return nil, types.NoTypeID, diag.New(diag.UnknownIdentifier, expr.Loc(), "unrecognized expression node")
	}
}

// elaborateLogical elaborates both operands of && / || in place. Short-
// circuit evaluation is the Emitter's concern (branching on the first
// operand's value); this layer only establishes both operands are bool and
// leaves the intrinsic call in the tree for the Module Driver to lower.
func (e *Elaborator) elaborateLogical(env *scope.Env, b *ast.BinOp) (ast.Expr, types.TypeID, *diag.Diagnostic) {
	left, leftType, errDiag := e.Elaborate(env, b.Left)
	if errDiag != nil {
		return nil, types.NoTypeID, errDiag
	}
	right, rightType, errDiag := e.Elaborate(env, b.Right)
	if errDiag != nil {
		return nil, types.NoTypeID, errDiag
	}
	boolT := e.Interner.Builtins().Bool
	if leftType != boolT || rightType != boolT {
		return nil, types.NoTypeID, diag.New(diag.InvalidOperator, b.SpanV, "logical operators require bool operands")
	}
	b.Left, b.Right = left, right
	call := logicalCallOf(b)
	return call, boolT, nil
}

func (e *Elaborator) elaborateMatch(env *scope.Env, n *ast.MatchExpr) (ast.Expr, types.TypeID, *diag.Diagnostic) {
	if len(n.Branches) == 0 {
		return nil, types.NoTypeID, diag.New(diag.InvalidMatchPattern, n.SpanV, "match has no branches")
	}
	subject, _, errDiag := e.Elaborate(env, n.Subject)
	if errDiag != nil {
		return nil, types.NoTypeID, errDiag
	}
	n.Subject = subject
	var resultType types.TypeID
	for i := range n.Branches {
		if n.Branches[i].Pattern != nil {
			pattern, _, errDiag := e.Elaborate(env, n.Branches[i].Pattern)
			if errDiag != nil {
				return nil, types.NoTypeID, errDiag
			}
			n.Branches[i].Pattern = pattern
		}
		value, valueType, errDiag := e.Elaborate(env, n.Branches[i].Value)
		if errDiag != nil {
			return nil, types.NoTypeID, errDiag
		}
		n.Branches[i].Value = value
		if i == 0 {
			resultType = valueType
		} else if valueType != resultType {
			coerced, errDiag := e.coerceTo(value, valueType, resultType, n.Branches[i].Span, diag.TypeMismatchAssignment)
			if errDiag != nil {
				return nil, types.NoTypeID, diag.New(diag.InvalidMatchPattern, n.Branches[i].Span,
					"match branch produces %s, expected %s", e.Interner.Str(valueType), e.Interner.Str(resultType))
			}
			n.Branches[i].Value = coerced
		}
	}
	return n, resultType, nil
}

// elaborateCall elaborates a call's arguments in place, dispatching to the
// fixed intrinsic table (spec.md §4.H) or the Call Resolver (spec.md §4.F)
// exactly as guessCall does, but additionally folding compile-time-constant
// intrinsics and inserting literal-coercion casts around arguments.
func (e *Elaborator) elaborateCall(env *scope.Env, call *ast.CallExpr) (ast.Expr, types.TypeID, *diag.Diagnostic) {
	if ident, ok := call.Target.(*ast.Ident); ok && IsIntrinsic(ident.Name) {
		if folded, ok, errDiag := e.FoldConstantIntrinsic(env, call); errDiag != nil {
			return nil, types.NoTypeID, errDiag
		} else if ok {
			t, errDiag := e.guessIntrinsic(env, ident.Name, call)
			return folded, t, errDiag
		}
		for i, arg := range call.Args {
			elaborated, _, errDiag := e.Elaborate(env, arg)
			if errDiag != nil {
				return nil, types.NoTypeID, errDiag
			}
			call.Args[i] = elaborated
		}
		if err := e.coerceIntrinsicArgs(env, ident.Name, call); err != nil {
			return nil, types.NoTypeID, err
		}
		t, errDiag := e.guessIntrinsic(env, ident.Name, call)
		return call, t, errDiag
	}

	for i, arg := range call.Args {
		elaborated, _, errDiag := e.Elaborate(env, arg)
		if errDiag != nil {
			return nil, types.NoTypeID, errDiag
		}
		call.Args[i] = elaborated
	}
	if e.Resolver == nil {
		return nil, types.NoTypeID, diag.New(diag.UnresolvedCall, call.SpanV, "call resolver is not wired")
	}
	callable, errDiag := e.Resolver.Resolve(env, call, false)
	if errDiag != nil {
		if ident, ok := call.Target.(*ast.Ident); ok {
			if suggestion, ok := suggestIntrinsic(ident.Name); ok {
				errDiag.WithNote(call.SpanV, "did you mean the intrinsic %q?", suggestion)
			}
		}
		return nil, types.NoTypeID, errDiag
	}
	if callable.Decl != nil {
		for i := range call.Args {
			pi := i + callable.Offset
			if pi >= len(callable.ParamTypes) {
				break // trailing variadic arguments are never coerced
			}
			argType, errDiag := e.GuessType(env, call.Args[i])
			if errDiag != nil {
				return nil, types.NoTypeID, errDiag
			}
			coerced, errDiag := e.coerceTo(call.Args[i], argType, callable.ParamTypes[pi], call.SpanV, diag.TypeMismatchArgument)
			if errDiag != nil {
				return nil, types.NoTypeID, errDiag
			}
			call.Args[i] = coerced
		}
	}
	return call, callable.RetType, nil
}

// coerceIntrinsicArgs applies the common-numeric-type coercion the
// arithmetic/bitwise/comparison intrinsics require (spec.md §4.H: "both
// operands to be of equal numeric type, after literal coercion"), wrapping
// whichever operand is the literal.
func (e *Elaborator) coerceIntrinsicArgs(env *scope.Env, name string, call *ast.CallExpr) *diag.Diagnostic {
	switch name {
	case IntrinsicAdd, IntrinsicSub, IntrinsicMul, IntrinsicDiv, IntrinsicMod,
		IntrinsicAnd, IntrinsicOr, IntrinsicXor, IntrinsicShl, IntrinsicShr,
		IntrinsicEq, IntrinsicLt, IntrinsicGt:
		if len(call.Args) != 2 {
			return nil
		}
		lt, errDiag := e.GuessType(env, call.Args[0])
		if errDiag != nil {
			return errDiag
		}
		rt, errDiag := e.GuessType(env, call.Args[1])
		if errDiag != nil {
			return errDiag
		}
		if lt == rt {
			return nil
		}
		if lit, ok := call.Args[0].(*ast.NumberLiteral); ok {
			if coerced, errDiag := e.coerceTo(lit, lt, rt, call.SpanV, diag.TypeMismatchArgument); errDiag == nil {
				call.Args[0] = coerced
				return nil
			}
		}
		if lit, ok := call.Args[1].(*ast.NumberLiteral); ok {
			if coerced, errDiag := e.coerceTo(lit, rt, lt, call.SpanV, diag.TypeMismatchArgument); errDiag == nil {
				call.Args[1] = coerced
				return nil
			}
		}
		return nil // leave the mismatch for guessIntrinsic to report precisely
	default:
		return nil
	}
}
