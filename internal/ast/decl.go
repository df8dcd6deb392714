package ast

import "yo/internal/source"

// DeclKind is the closed sum of top-level declaration node kinds
// (spec.md §3).
type DeclKind uint8

const (
	DeclInvalid DeclKind = iota
	DeclFunction
	DeclStruct
	DeclImplBlock
	DeclTypealias
)

func (k DeclKind) String() string {
	switch k {
	case DeclFunction:
		return "function"
	case DeclStruct:
		return "struct"
	case DeclImplBlock:
		return "impl-block"
	case DeclTypealias:
		return "typealias"
	default:
		return "invalid"
	}
}

// Decl is implemented by every top-level declaration node kind.
type Decl interface {
	DeclKind() DeclKind
	Loc() source.Span
}

// FunctionKind distinguishes how a function participates in name
// resolution — the "kind" half of spec.md §4.D's canonical-name derivation,
// and the first letter of §6's mangled-name format (G|S|I|O).
type FunctionKind uint8

const (
	FnFree FunctionKind = iota
	FnStaticMethod
	FnInstanceMethod
	FnOperator
)

func (k FunctionKind) MangledPrefix() byte {
	switch k {
	case FnFree:
		return 'G'
	case FnStaticMethod:
		return 'S'
	case FnInstanceMethod:
		return 'I'
	case FnOperator:
		return 'O'
	default:
		return '?'
	}
}

// SideEffectKind is the recognized value set of the side_effects=... function
// attribute (spec.md §6).
type SideEffectKind uint8

const (
	SideEffectNone SideEffectKind = iota
	SideEffectIO
	SideEffectUnknown
)

// FunctionAttributes mirrors the function-decl attribute set of spec.md §6.
// When both Mangle and NoMangle are set, internal/symbols.LinkageName uses
// Mangle; nothing rejects the combination.
type FunctionAttributes struct {
	NoMangle     bool
	Mangle       string
	Intrinsic    bool
	Variadic     bool
	Inline       bool
	AlwaysInline bool
	Extern       bool
	Startup      bool
	Shutdown     bool
	SideEffects  SideEffectKind
}

// Param is one (name, type) function parameter.
type Param struct {
	Name string
	Type *TypeDesc
}

// FunctionSignature is spec.md §3's FunctionSignature: ordered parameter
// TypeDescs, return TypeDesc, variadic flag, and template-parameter names.
// It carries no calling-convention field. Its own IsTemplate predicate is
// what §3 calls a "template signature".
type FunctionSignature struct {
	Params         []Param
	Ret            *TypeDesc
	Variadic       bool
	TemplateParams []string
}

// IsTemplate reports whether sig has a non-empty template-parameter list
// (spec.md §3: "A signature is a template signature iff its
// template-parameter list is non-empty").
func (sig FunctionSignature) IsTemplate() bool {
	return len(sig.TemplateParams) > 0
}

// FunctionDecl is a function, static method, instance method, or operator
// declaration (spec.md §9's redesign note replaces the original's
// multiple-inheritance FunctionDecl/Signature-holder with this owned-struct
// composition).
type FunctionDecl struct {
	SpanV     source.Span
	Name      string
	Kind      FunctionKind
	OwnerType string // enclosing struct name for Static/InstanceMethod/Operator, else ""
	Signature FunctionSignature
	Attrs     FunctionAttributes
	Body      *Composite // nil for intrinsic/extern declarations
}

func (f *FunctionDecl) DeclKind() DeclKind { return DeclFunction }
func (f *FunctionDecl) Loc() source.Span   { return f.SpanV }

// StructAttributes mirrors the struct-decl attribute set of spec.md §6.
type StructAttributes struct {
	NoInit bool
	// Packed is recognized (Attributes.cpp) but layout-inert at this layer;
	// see SPEC_FULL.md §3.
	Packed bool
}

// FieldDecl is one (name, type) struct field, in declaration order.
type FieldDecl struct {
	Name string
	Type *TypeDesc
}

type StructDecl struct {
	SpanV  source.Span
	Name   string
	Fields []FieldDecl
	Attrs  StructAttributes
}

func (s *StructDecl) DeclKind() DeclKind { return DeclStruct }
func (s *StructDecl) Loc() source.Span   { return s.SpanV }

// ImplBlock groups a set of methods declared against TypeName
// (`impl TypeName { ... }`).
type ImplBlock struct {
	SpanV    source.Span
	TypeName string
	Methods  []*FunctionDecl
}

func (i *ImplBlock) DeclKind() DeclKind { return DeclImplBlock }
func (i *ImplBlock) Loc() source.Span   { return i.SpanV }

type TypealiasDecl struct {
	SpanV  source.Span
	Name   string
	Target *TypeDesc
}

func (t *TypealiasDecl) DeclKind() DeclKind { return DeclTypealias }
func (t *TypealiasDecl) Loc() source.Span   { return t.SpanV }

// File is the ordered sequence of top-level declarations the Module Driver
// consumes (spec.md §6's "AST consumption boundary").
type File struct {
	Decls []Decl
}
