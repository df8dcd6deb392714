package driver

import (
	"yo/internal/ast"
	"yo/internal/diag"
	"yo/internal/symbols"
)

// defineFunction elaborates and (if an Emitter is wired) emits one
// already-registered, non-template callable's body.
func (d *Driver) defineFunction(c *symbols.ResolvedCallable) *diag.Diagnostic {
	return d.elaborateAndEmit(c.Decl, c, false)
}

// elaborateAndEmit runs the Expression Elaborator over decl's body against
// the shared global environment, then — unless omitCodegen was requested or
// no Emitter is wired — declares and defines it against the Emitter,
// recording the returned handle on callable so a second call site referring
// to the same callable is a no-op (spec.md §8 property 5: pointer-equal
// emitter handles for the same resolved callable).
func (d *Driver) elaborateAndEmit(fn *ast.FunctionDecl, callable *symbols.ResolvedCallable, omitCodegen bool) *diag.Diagnostic {
	if fn == nil || fn.Body == nil {
		return nil
	}
	if errDiag := d.Elaborator.ElaborateFunction(d.Env, fn, callable.ParamTypes, callable.RetType); errDiag != nil {
		return errDiag
	}
	if omitCodegen || d.Emitter == nil || callable.Handle != nil {
		return nil
	}
	handle, err := d.Emitter.DeclareFunction(callable.Mangled, callable.ParamTypes, callable.RetType)
	if err != nil {
		return diag.New(diag.Redefinition, fn.SpanV, "emitter failed to declare %q: %v", callable.Mangled, err)
	}
	if err := d.Emitter.DefineFunction(handle, fn.Body); err != nil {
		return diag.New(diag.Redefinition, fn.SpanV, "emitter failed to define %q: %v", callable.Mangled, err)
	}
	callable.Handle = handle
	return nil
}
