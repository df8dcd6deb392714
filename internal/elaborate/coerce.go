package elaborate

import (
	"yo/internal/ast"
	"yo/internal/diag"
	"yo/internal/scope"
	"yo/internal/source"
	"yo/internal/typeresolve"
	"yo/internal/types"
)

// ElaborateFunction runs the full elaboration pass over fn's body: binding
// its parameters into a fresh scope marker, then walking every statement,
// normalizing operators, coercing literals, and folding constant intrinsics
// in place. retType is fn's already-resolved return type (internal/driver
// resolves signatures before calling this, per spec.md §5's ordering
// guarantee).
func (e *Elaborator) ElaborateFunction(env *scope.Env, fn *ast.FunctionDecl, paramTypes []types.TypeID, retType types.TypeID) *diag.Diagnostic {
	if fn.Body == nil {
		return nil // intrinsic/extern declaration: no body to elaborate
	}
	marker := env.GetMarker()
	defer env.RemoveAllSinceMarker(marker)
	for i, p := range fn.Signature.Params {
		if i < len(paramTypes) {
			env.Insert(p.Name, paramTypes[i], nil)
		}
	}
	return e.elaborateComposite(env, fn.Body, retType)
}

func (e *Elaborator) elaborateComposite(env *scope.Env, c *ast.Composite, retType types.TypeID) *diag.Diagnostic {
	marker := env.GetMarker()
	defer env.RemoveAllSinceMarker(marker)
	for _, s := range c.Statements {
		if errDiag := e.elaborateStmt(env, s, retType); errDiag != nil {
			return errDiag
		}
	}
	return nil
}

func (e *Elaborator) elaborateStmt(env *scope.Env, s ast.Stmt, retType types.TypeID) *diag.Diagnostic {
	switch n := s.(type) {
	case *ast.Composite:
		return e.elaborateComposite(env, n, retType)

	case *ast.VarDecl:
		if n.Init == nil {
			if n.Type == nil {
				return diag.New(diag.NoInitialValue, n.SpanV, "variable %q has neither a declared type nor an initializer", n.Name)
			}
			declared, errDiag := typeresolve.Resolve(n.Type, e.Interner, env, e, true)
			if errDiag != nil {
				return errDiag
			}
			env.Insert(n.Name, declared, nil)
			return nil
		}
		elaborated, initType, errDiag := e.Elaborate(env, n.Init)
		if errDiag != nil {
			return errDiag
		}
		n.Init = elaborated
		declared := initType
		if n.Type != nil {
			declared, errDiag = typeresolve.Resolve(n.Type, e.Interner, env, e, true)
			if errDiag != nil {
				return errDiag
			}
			coerced, errDiag := e.coerceTo(n.Init, initType, declared, n.SpanV, diag.TypeMismatchAssignment)
			if errDiag != nil {
				return errDiag
			}
			n.Init = coerced
		}
		env.Insert(n.Name, declared, nil)
		return nil

	case *ast.Assignment:
		elaboratedTarget, targetType, errDiag := e.Elaborate(env, n.Target)
		if errDiag != nil {
			return errDiag
		}
		n.Target = elaboratedTarget
		elaboratedValue, valueType, errDiag := e.Elaborate(env, n.Value)
		if errDiag != nil {
			return errDiag
		}
		coerced, errDiag := e.coerceTo(elaboratedValue, valueType, targetType, n.SpanV, diag.TypeMismatchAssignment)
		if errDiag != nil {
			return errDiag
		}
		n.Value = coerced
		return nil

	case *ast.ReturnStmt:
		if n.Value == nil {
			if retType != e.Interner.Builtins().Void {
				return diag.New(diag.TypeMismatchReturn, n.SpanV, "missing return value")
			}
			return nil
		}
		elaborated, valueType, errDiag := e.Elaborate(env, n.Value)
		if errDiag != nil {
			return errDiag
		}
		coerced, errDiag := e.coerceTo(elaborated, valueType, retType, n.SpanV, diag.TypeMismatchReturn)
		if errDiag != nil {
			return errDiag
		}
		n.Value = coerced
		return nil

	case *ast.IfStmt:
		if errDiag := e.elaborateCondition(env, &n.Cond, n.SpanV); errDiag != nil {
			return errDiag
		}
		if errDiag := e.elaborateComposite(env, n.Then, retType); errDiag != nil {
			return errDiag
		}
		if n.Else != nil {
			return e.elaborateStmt(env, n.Else, retType)
		}
		return nil

	case *ast.WhileStmt:
		if errDiag := e.elaborateCondition(env, &n.Cond, n.SpanV); errDiag != nil {
			return errDiag
		}
		return e.elaborateComposite(env, n.Body, retType)

	case *ast.ForLoop:
		return nil // out of scope, spec.md §9

	case *ast.ExprStmt:
		elaborated, _, errDiag := e.Elaborate(env, n.X)
		if errDiag != nil {
			return errDiag
		}
		n.X = elaborated
		return nil

	default:
		return diag.New(diag.InvalidOperator, s.Loc(), "unrecognized statement node")
	}
}

// elaborateCondition elaborates *cond in place and requires it guess to
// bool, per spec.md §4.G's implicit rule that if/while conditions are
// boolean-valued (no coercion is defined from a numeric condition).
func (e *Elaborator) elaborateCondition(env *scope.Env, cond *ast.Expr, span source.Span) *diag.Diagnostic {
	elaborated, condType, errDiag := e.Elaborate(env, *cond)
	if errDiag != nil {
		return errDiag
	}
	*cond = elaborated
	if condType != e.Interner.Builtins().Bool {
		return diag.New(diag.TypeMismatchAssignment, span, "condition must be a bool expression")
	}
	return nil
}
