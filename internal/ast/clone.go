package ast

// CloneTypeDesc produces a structurally independent copy of d. Every
// TypeDescNominal node whose Name is a key of subst is replaced by a clone
// of the mapped replacement (spec.md §4.E: "every TypeDesc of Nominal kind
// whose name is a key in mapping is replaced ... All other TypeDesc nodes
// are cloned preserving their kind"). Source locations are copied verbatim.
// A nil d clones to nil.
func CloneTypeDesc(d *TypeDesc, subst map[string]*TypeDesc) *TypeDesc {
	if d == nil {
		return nil
	}
	if d.Kind == TypeDescNominal {
		if replacement, ok := subst[d.Name]; ok {
			return CloneTypeDesc(replacement, nil)
		}
	}
	clone := &TypeDesc{Kind: d.Kind, Span: d.Span, Name: d.Name, Conv: d.Conv, Resolved: d.Resolved}
	clone.Inner = CloneTypeDesc(d.Inner, subst)
	clone.Ret = CloneTypeDesc(d.Ret, subst)
	clone.Expr = CloneExpr(d.Expr, subst)
	if d.Args != nil {
		clone.Args = make([]*TypeDesc, len(d.Args))
		for i, a := range d.Args {
			clone.Args[i] = CloneTypeDesc(a, subst)
		}
	}
	if d.Params != nil {
		clone.Params = make([]*TypeDesc, len(d.Params))
		for i, p := range d.Params {
			clone.Params[i] = CloneTypeDesc(p, subst)
		}
	}
	if d.Members != nil {
		clone.Members = make([]*TypeDesc, len(d.Members))
		for i, m := range d.Members {
			clone.Members[i] = CloneTypeDesc(m, subst)
		}
	}
	return clone
}

// CloneExpr deep-clones an expression tree, substituting nominal type
// descriptors reached through CastExpr destinations along the way (a
// template body may cast to a template-parameter type). subst may be nil.
func CloneExpr(e Expr, subst map[string]*TypeDesc) Expr {
	if e == nil {
		return nil
	}
	switch n := e.(type) {
	case *NumberLiteral:
		cp := *n
		return &cp
	case *StringLiteral:
		cp := *n
		return &cp
	case *Ident:
		cp := *n
		return &cp
	case *CastExpr:
		return &CastExpr{SpanV: n.SpanV, CastKind: n.CastKind, Dest: CloneTypeDesc(n.Dest, subst), Operand: CloneExpr(n.Operand, subst)}
	case *UnaryExpr:
		return &UnaryExpr{SpanV: n.SpanV, Op: n.Op, Operand: CloneExpr(n.Operand, subst)}
	case *BinOp:
		return &BinOp{SpanV: n.SpanV, Op: n.Op, Left: CloneExpr(n.Left, subst), Right: CloneExpr(n.Right, subst)}
	case *CallExpr:
		args := make([]Expr, len(n.Args))
		for i, a := range n.Args {
			args[i] = CloneExpr(a, subst)
		}
		var targs []*TypeDesc
		if n.TemplateArgs != nil {
			targs = make([]*TypeDesc, len(n.TemplateArgs))
			for i, t := range n.TemplateArgs {
				targs[i] = CloneTypeDesc(t, subst)
			}
		}
		return &CallExpr{SpanV: n.SpanV, Target: CloneExpr(n.Target, subst), Args: args, TemplateArgs: targs}
	case *MemberExpr:
		return &MemberExpr{SpanV: n.SpanV, Target: CloneExpr(n.Target, subst), Member: n.Member}
	case *SubscriptExpr:
		return &SubscriptExpr{SpanV: n.SpanV, Target: CloneExpr(n.Target, subst), Index: CloneExpr(n.Index, subst)}
	case *MatchExpr:
		branches := make([]MatchBranch, len(n.Branches))
		for i, b := range n.Branches {
			branches[i] = MatchBranch{Span: b.Span, Pattern: CloneExpr(b.Pattern, subst), Value: CloneExpr(b.Value, subst)}
		}
		return &MatchExpr{SpanV: n.SpanV, Subject: CloneExpr(n.Subject, subst), Branches: branches}
	case *StaticDeclRefExpr:
		cp := *n
		return &cp
	case *RawIRValue:
		cp := *n
		return &cp
	default:
		panic("ast: CloneExpr: unhandled expression kind")
	}
}

// CloneStmt deep-clones a statement tree, threading subst through every
// embedded TypeDesc and expression.
func CloneStmt(s Stmt, subst map[string]*TypeDesc) Stmt {
	if s == nil {
		return nil
	}
	switch n := s.(type) {
	case *Composite:
		return CloneComposite(n, subst)
	case *VarDecl:
		return &VarDecl{SpanV: n.SpanV, Name: n.Name, Type: CloneTypeDesc(n.Type, subst), Init: CloneExpr(n.Init, subst)}
	case *Assignment:
		return &Assignment{SpanV: n.SpanV, Target: CloneExpr(n.Target, subst), Value: CloneExpr(n.Value, subst)}
	case *ReturnStmt:
		return &ReturnStmt{SpanV: n.SpanV, Value: CloneExpr(n.Value, subst)}
	case *IfStmt:
		return &IfStmt{SpanV: n.SpanV, Cond: CloneExpr(n.Cond, subst), Then: CloneComposite(n.Then, subst), Else: CloneStmt(n.Else, subst)}
	case *WhileStmt:
		return &WhileStmt{SpanV: n.SpanV, Cond: CloneExpr(n.Cond, subst), Body: CloneComposite(n.Body, subst)}
	case *ForLoop:
		cp := *n
		return &cp
	case *ExprStmt:
		return &ExprStmt{SpanV: n.SpanV, X: CloneExpr(n.X, subst)}
	default:
		panic("ast: CloneStmt: unhandled statement kind")
	}
}

// CloneComposite clones a block, preserving nil (an intrinsic's absent
// body must stay absent, spec.md §4.E: "If the input declaration is marked
// intrinsic, its body (which must be empty) is not re-cloned").
func CloneComposite(c *Composite, subst map[string]*TypeDesc) *Composite {
	if c == nil {
		return nil
	}
	out := &Composite{SpanV: c.SpanV, Statements: make([]Stmt, len(c.Statements))}
	for i, st := range c.Statements {
		out.Statements[i] = CloneStmt(st, subst)
	}
	return out
}
