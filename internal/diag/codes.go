package diag

// Code identifies the kind of a Diagnostic. Numbering follows the teacher's
// convention of grouping codes by compiler phase in blocks of 100; this core
// only ever occupies the 4000s ("semantic middle-end") block since lexing and
// parsing precede it and code generation is an opaque Emitter collaborator.
type Code uint16

const (
	UnknownCode Code = 0

	// Type resolution (§4.B)
	UnknownType              Code = 4000
	UnimplementedTemplatedNominal Code = 4001

	// Name/scope environment (§4.C)
	UnknownIdentifier Code = 4010

	// Callable registry (§4.D)
	Redefinition              Code = 4100
	IncompatibleRedeclaration Code = 4101

	// Call resolver (§4.F)
	UnresolvedCall          Code = 4200
	AmbiguousCall           Code = 4201
	NoViableOverload        Code = 4202
	TemplateDeductionFailure Code = 4203

	// Expression elaborator (§4.G)
	TypeMismatchAssignment Code = 4300
	TypeMismatchReturn     Code = 4301
	TypeMismatchArgument   Code = 4302
	TypeMismatchCast       Code = 4303
	InvalidCast            Code = 4304
	InvalidOperator        Code = 4305
	InvalidMatchPattern    Code = 4306

	// Module driver / declarations (§4.H)
	NoInitialValue Code = 4400

	// Intrinsics (§4.H)
	UnknownIntrinsic Code = 4410
)

// String returns a short machine-stable name, used by the CLI and by tests
// that assert on "which kind of error fired" without string-matching messages.
func (c Code) String() string {
	switch c {
	case UnknownType:
		return "unknown-type"
	case UnimplementedTemplatedNominal:
		return "unimplemented-templated-nominal"
	case UnknownIdentifier:
		return "unknown-identifier"
	case Redefinition:
		return "redefinition"
	case IncompatibleRedeclaration:
		return "incompatible-redeclaration"
	case UnresolvedCall:
		return "unresolved-call"
	case AmbiguousCall:
		return "ambiguous-call"
	case NoViableOverload:
		return "no-viable-overload"
	case TemplateDeductionFailure:
		return "template-deduction-failure"
	case TypeMismatchAssignment:
		return "type-mismatch-assignment"
	case TypeMismatchReturn:
		return "type-mismatch-return"
	case TypeMismatchArgument:
		return "type-mismatch-argument"
	case TypeMismatchCast:
		return "type-mismatch-cast"
	case InvalidCast:
		return "invalid-cast"
	case InvalidOperator:
		return "invalid-operator"
	case InvalidMatchPattern:
		return "invalid-match-pattern"
	case NoInitialValue:
		return "no-initial-value"
	case UnknownIntrinsic:
		return "unknown-intrinsic"
	default:
		return "unknown-code"
	}
}
