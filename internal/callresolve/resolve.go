// Package callresolve implements the Call Resolver of spec.md §4.F: target
// classification, overload scoring, template-argument deduction, and
// on-demand template instantiation for a call expression.
//
// Grounded on yo/IRGen.cpp's resolveCall/scoreOverloadCandidate/
// deduceTemplateArguments and on TemplateSpecialization.cpp for the
// instantiate-on-demand path. The Resolver never imports internal/elaborate
// (which itself depends on this package for CallExpr/BinOp handling); it
// takes an ExprTyper and an Instantiator as collaborators instead, avoiding
// an import cycle while preserving spec.md's "G/F drive per-expression
// elaboration" mutual relationship.
package callresolve

import (
	"errors"

	"yo/internal/ast"
	"yo/internal/diag"
	"yo/internal/scope"
	"yo/internal/source"
	"yo/internal/specialize"
	"yo/internal/symbols"
	"yo/internal/typeresolve"
	"yo/internal/types"
)

// errDeductionConflict signals a template-deduction failure internal to
// mergeDeduction; it never escapes this package as a Go error, only as a
// rejected candidate (spec.md §4.F: deduction failure just drops the
// candidate, it is not itself a fatal diagnostic unless every candidate is
// eliminated).
var errDeductionConflict = errors.New("callresolve: template deduction conflict")

// ExprTyper guesses the type an expression would produce — the Expression
// Elaborator's guessType (spec.md §4.G), needed here for argument-type
// guessing during deduction and parameter-compatibility scoring.
type ExprTyper interface {
	GuessType(env *scope.Env, e ast.Expr) (types.TypeID, *diag.Diagnostic)
}

// Instantiator is invoked exactly once per freshly-created template
// specialization, after Resolve has registered it, to declare and (unless
// omitCodegen was requested) define its body against the Emitter
// collaborator. internal/driver supplies this, closing over its Elaborator
// and Emitter; internal/callresolve never touches either directly.
type Instantiator interface {
	Instantiate(decl *ast.FunctionDecl, callable *symbols.ResolvedCallable, omitCodegen bool) *diag.Diagnostic
}

// Resolver is spec.md §4.F's Call Resolver.
type Resolver struct {
	Interner *types.Interner
	Registry *symbols.Registry
	Typer    ExprTyper
	Emit     Instantiator
}

// New constructs a Resolver over the given collaborators.
func New(interner *types.Interner, registry *symbols.Registry, typer ExprTyper, emit Instantiator) *Resolver {
	return &Resolver{Interner: interner, Registry: registry, Typer: typer, Emit: emit}
}

// deductionReason tracks why a template parameter was deduced to a given
// type, used to arbitrate conflicting deductions per spec.md §4.F step 2.
type deductionReason uint8

const (
	reasonNone deductionReason = iota
	reasonExplicit
	reasonExpr
	reasonLiteral
)

type deduced struct {
	ty     types.TypeID
	reason deductionReason
}

// candidateResult is one scored, still-viable candidate.
type candidateResult struct {
	callable *symbols.ResolvedCallable
	score    int
	mapping  map[string]*ast.TypeDesc // nil for non-template candidates
}

// Resolve selects (and, for a template winner, instantiates on demand) the
// target callable of call. omitCodegen mirrors spec.md §4.F's flag: when
// true, template instantiation proceeds structurally only, without invoking
// the Instantiator's Emitter-facing half (SPEC_FULL.md §3).
func (r *Resolver) Resolve(env *scope.Env, call *ast.CallExpr, omitCodegen bool) (*symbols.ResolvedCallable, *diag.Diagnostic) {
	direct, candidates, argOffsetOverride, errDiag := r.classify(env, call)
	if errDiag != nil {
		return nil, errDiag
	}
	if direct != nil {
		return direct, nil
	}

	var results []candidateResult
	for _, c := range candidates {
		res, ok, errDiag := r.score(env, call, c, argOffsetOverride)
		if errDiag != nil {
			return nil, errDiag
		}
		if ok {
			results = append(results, res)
		}
	}
	if len(results) == 0 {
		return nil, diag.New(diag.NoViableOverload, call.SpanV, "no viable overload for this call")
	}
	best := results[0]
	tie := false
	for _, res := range results[1:] {
		if res.score < best.score {
			best, tie = res, false
		} else if res.score == best.score {
			tie = true
		}
	}
	if tie {
		d := diag.New(diag.AmbiguousCall, call.SpanV, "ambiguous call: multiple candidates score %d", best.score)
		for _, res := range results {
			if res.score == best.score {
				d.WithNote(res.callable.Decl.Loc(), "candidate %s", res.callable.Canonical)
			}
		}
		return nil, d
	}

	if best.mapping == nil {
		return best.callable, nil
	}
	return r.instantiate(env, best.callable, best.mapping, call.SpanV, omitCodegen)
}

// classify implements spec.md §4.F's target-classification order. It
// returns either a direct-call binding (already fully resolved, no scoring
// needed) or a candidate list plus an argument-offset override (used by the
// MemberExpr instance-method case, whose implicit self slot never appears in
// call.Args).
func (r *Resolver) classify(env *scope.Env, call *ast.CallExpr) (direct *symbols.ResolvedCallable, candidates []*symbols.ResolvedCallable, offsetOverride int, errDiag *diag.Diagnostic) {
	switch target := call.Target.(type) {
	case *ast.Ident:
		if binding, ok := env.GetBinding(target.Name); ok {
			ty, tok := env.GetType(target.Name)
			if tok {
				if t, ok := r.Interner.Lookup(ty); ok && t.IsFunction() {
					return &symbols.ResolvedCallable{
						Canonical:  target.Name,
						Kind:       ast.FnFree,
						ParamTypes: t.Fn.Params,
						RetType:    t.Fn.Return,
						Handle:     binding,
					}, nil, 0, nil
				}
			}
		}
		list := r.Registry.Overloads(target.Name)
		if len(list) == 0 {
			return nil, nil, 0, diag.New(diag.UnresolvedCall, call.SpanV, "no function named %q", target.Name)
		}
		return nil, list, 0, nil

	case *ast.StaticDeclRefExpr:
		canonical := symbols.CanonicalName(ast.FnStaticMethod, target.TypeName, target.MemberName)
		list := r.Registry.Overloads(canonical)
		if len(list) == 0 {
			return nil, nil, 0, diag.New(diag.UnresolvedCall, call.SpanV, "no static method %s", canonical)
		}
		return nil, list, 0, nil

	case *ast.MemberExpr:
		targetType, errDiag := r.Typer.GuessType(env, target.Target)
		if errDiag != nil {
			return nil, nil, 0, errDiag
		}
		t, ok := r.Interner.Lookup(targetType)
		if !ok || !t.IsPointer() {
			return nil, nil, 0, diag.New(diag.UnresolvedCall, call.SpanV, "member call target is not a pointer")
		}
		pointee, ok := r.Interner.Lookup(t.Pointee)
		if !ok || !pointee.IsStruct() {
			return nil, nil, 0, diag.New(diag.UnresolvedCall, call.SpanV, "member call target does not point to a struct")
		}
		if field, ok := pointee.Struct.Member(target.Member); ok {
			if ft, ok := r.Interner.Lookup(field.Type); ok && ft.IsFunction() {
				return &symbols.ResolvedCallable{
					Canonical:  pointee.Struct.Name + "::" + target.Member,
					Kind:       ast.FnFree,
					ParamTypes: ft.Fn.Params,
					RetType:    ft.Fn.Return,
				}, nil, 0, nil
			}
		}
		canonical := symbols.CanonicalName(ast.FnInstanceMethod, pointee.Struct.Name, target.Member)
		list := r.Registry.Overloads(canonical)
		if len(list) == 0 {
			return nil, nil, 0, diag.New(diag.UnresolvedCall, call.SpanV, "no instance method %s", canonical)
		}
		return nil, list, symbols.ArgumentOffset(ast.FnInstanceMethod), nil

	default:
		return nil, nil, 0, diag.New(diag.UnresolvedCall, call.SpanV, "call target is not resolvable")
	}
}

// score evaluates one candidate per spec.md §4.F's arity check, template
// deduction, and parameter-compatibility scoring. ok is false (with a nil
// diagnostic) when the candidate is simply rejected, as opposed to a hard
// failure.
func (r *Resolver) score(env *scope.Env, call *ast.CallExpr, c *symbols.ResolvedCallable, offsetOverride int) (candidateResult, bool, *diag.Diagnostic) {
	offset := c.Offset
	if offsetOverride != 0 {
		offset = offsetOverride
	}
	sig := c.Decl.Signature
	declaredCount := len(sig.Params)
	isTemplate := sig.IsTemplate()

	if sig.Variadic {
		minArgs := declaredCount - offset - 1
		if len(call.Args) < minArgs {
			return candidateResult{}, false, nil
		}
	} else if len(call.Args) != declaredCount-offset {
		return candidateResult{}, false, nil
	}

	marker := env.Nominal.Marker()
	defer env.Nominal.RemoveAllSinceMarker(marker)

	score := 0
	if isTemplate {
		score = 2
	}

	var mapping map[string]*ast.TypeDesc
	if isTemplate {
		m := make(map[string]deduced, len(sig.TemplateParams))
		for i, targ := range call.TemplateArgs {
			if i >= len(sig.TemplateParams) {
				break
			}
			ty, errDiag := typeresolve.Resolve(targ, r.Interner, env, r.Typer.(typeresolve.GuessTyper), false)
			if errDiag != nil {
				return candidateResult{}, false, nil
			}
			m[sig.TemplateParams[i]] = deduced{ty: ty, reason: reasonExplicit}
		}
		templateSet := make(map[string]bool, len(sig.TemplateParams))
		for _, n := range sig.TemplateParams {
			templateSet[n] = true
		}
		checkedCount := declaredCount - offset
		for i := 0; i < checkedCount && i < len(call.Args); i++ {
			paramDesc := sig.Params[offset+i].Type
			leaf, depth := unwrapPointers(paramDesc)
			if leaf == nil || leaf.Kind != ast.TypeDescNominal || !templateSet[leaf.Name] {
				continue
			}
			argType, errDiag := r.Typer.GuessType(env, call.Args[i])
			if errDiag != nil {
				return candidateResult{}, false, errDiag
			}
			for k := 0; k < depth; k++ {
				t, ok := r.Interner.Lookup(argType)
				if !ok || !t.IsPointer() {
					return candidateResult{}, false, nil // not deeply enough a pointer
				}
				argType = t.Pointee
			}
			reason := reasonExpr
			if _, isLit := call.Args[i].(*ast.NumberLiteral); isLit {
				reason = reasonLiteral
			}
			if err := mergeDeduction(m, leaf.Name, argType, reason); err != nil {
				return candidateResult{}, false, nil
			}
		}
		for _, n := range sig.TemplateParams {
			if _, ok := m[n]; !ok {
				return candidateResult{}, false, nil // deduction failure: unset entry
			}
		}
		mapping = make(map[string]*ast.TypeDesc, len(m))
		for name, d := range m {
			env.InsertNominal(name, d.ty)
			mapping[name] = ast.ResolvedDesc(d.ty, call.SpanV)
		}
	}

	checkedCount := declaredCount - offset
	for i := 0; i < checkedCount && i < len(call.Args); i++ {
		paramDesc := sig.Params[offset+i].Type
		paramType, errDiag := typeresolve.Resolve(paramDesc, r.Interner, env, r.Typer.(typeresolve.GuessTyper), false)
		if errDiag != nil {
			return candidateResult{}, false, nil
		}
		argType, errDiag := r.Typer.GuessType(env, call.Args[i])
		if errDiag != nil {
			return candidateResult{}, false, errDiag
		}
		if argType == paramType {
			continue
		}
		if lit, ok := call.Args[i].(*ast.NumberLiteral); ok {
			if t, ok := r.Interner.Lookup(paramType); ok && t.IsNumerical() && ast.NumberLiteralFits(lit, t.Numerical) {
				score++
				continue
			}
		}
		return candidateResult{}, false, nil
	}

	return candidateResult{callable: c, score: score, mapping: mapping}, true, nil
}

// unwrapPointers walks Pointer TypeDesc layers, returning the leaf and the
// pointer depth (spec.md §4.F step 2: "walk through pointer indirections in
// the declared parameter TypeDesc, recording a count k").
func unwrapPointers(d *ast.TypeDesc) (*ast.TypeDesc, int) {
	depth := 0
	for d != nil && d.Kind == ast.TypeDescPointer {
		d = d.Inner
		depth++
	}
	return d, depth
}

// mergeDeduction applies spec.md §4.F step 2's priority rules to m[name].
func mergeDeduction(m map[string]deduced, name string, ty types.TypeID, reason deductionReason) error {
	existing, ok := m[name]
	if !ok {
		m[name] = deduced{ty: ty, reason: reason}
		return nil
	}
	switch {
	case existing.reason == reasonExplicit:
		if existing.ty != ty {
			return errDeductionConflict
		}
	case existing.reason == reasonLiteral && reason == reasonExpr:
		m[name] = deduced{ty: ty, reason: reason}
	case existing.reason == reasonExpr && reason == reasonExpr:
		if existing.ty != ty {
			return errDeductionConflict
		}
	// reasonLiteral vs reasonLiteral, or new reason == reasonLiteral: keep
	// the existing entry (first literal deduction wins until an Expr
	// overwrites it).
	default:
	}
	return nil
}

// instantiate specializes, registers, and (unless omitCodegen) emits the
// winning template candidate, memoizing by mangled name (spec.md §8
// property 5: "given two calls that deduce the same mapping, the resolver
// returns pointer-equal emitter handles").
func (r *Resolver) instantiate(env *scope.Env, template *symbols.ResolvedCallable, mapping map[string]*ast.TypeDesc, span source.Span, omitCodegen bool) (*symbols.ResolvedCallable, *diag.Diagnostic) {
	clone := specialize.Function(template.Decl, mapping)

	params := make([]types.TypeID, len(clone.Signature.Params))
	for i, p := range clone.Signature.Params {
		ty, errDiag := typeresolve.Resolve(p.Type, r.Interner, env, r.Typer.(typeresolve.GuessTyper), true)
		if errDiag != nil {
			return nil, errDiag
		}
		params[i] = ty
	}
	ret, errDiag := typeresolve.Resolve(clone.Signature.Ret, r.Interner, env, r.Typer.(typeresolve.GuessTyper), true)
	if errDiag != nil {
		return nil, errDiag
	}

	mangled := symbols.LinkageName(clone.Kind, clone.OwnerType, clone.Name, params, ret, r.Interner, clone.Attrs)
	callable := &symbols.ResolvedCallable{
		Canonical:  template.Canonical,
		Mangled:    mangled,
		Kind:       clone.Kind,
		OwnerType:  clone.OwnerType,
		Decl:       clone,
		ParamTypes: params,
		RetType:    ret,
		Variadic:   clone.Signature.Variadic,
		Offset:     symbols.ArgumentOffset(clone.Kind),
	}
	registered, errDiag := r.Registry.Register(callable, span)
	if errDiag != nil {
		return nil, errDiag
	}
	if registered.Handle == nil && r.Emit != nil {
		if errDiag := r.Emit.Instantiate(registered.Decl, registered, omitCodegen); errDiag != nil {
			return nil, errDiag
		}
	}
	return registered, nil
}
