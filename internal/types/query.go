package types

import "strings"

// IsVoid, IsNumerical, IsPointer, IsFunction, IsStruct classify a looked-up
// Type, mirroring yo/IRGen's Type::isVoidTy/isPointerTy/... predicates.

func (t Type) IsVoid() bool      { return t.Kind == KindVoid }
func (t Type) IsNumerical() bool { return t.Kind == KindNumerical }
func (t Type) IsPointer() bool   { return t.Kind == KindPointer }
func (t Type) IsFunction() bool  { return t.Kind == KindFunction }
func (t Type) IsStruct() bool    { return t.Kind == KindStruct }

// Str renders a Type the way yo/IRGen's Type::str() does, resolving nested
// TypeIDs through in.
func (in *Interner) Str(id TypeID) string {
	t, ok := in.Lookup(id)
	if !ok {
		return "<invalid>"
	}
	switch t.Kind {
	case KindVoid:
		return "void"
	case KindNumerical:
		return t.Numerical.String()
	case KindPointer:
		return "*" + in.Str(t.Pointee)
	case KindFunction:
		var sb strings.Builder
		sb.WriteString("#[callingConvention=")
		sb.WriteString(t.Fn.Convention.String())
		sb.WriteString("] (")
		for i, p := range t.Fn.Params {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(in.Str(p))
		}
		sb.WriteString(") -> ")
		sb.WriteString(in.Str(t.Fn.Return))
		return sb.String()
	case KindStruct:
		return t.Struct.Name
	default:
		return "<invalid>"
	}
}

// Name returns the nominal name of id: the struct name for a struct type, or
// the primitive spelling otherwise. It never recurses through pointers,
// matching yo/IRGen's Type::getName (distinct from the recursive Type::str).
func (in *Interner) Name(id TypeID) string {
	t, ok := in.Lookup(id)
	if !ok {
		return "<invalid>"
	}
	switch t.Kind {
	case KindStruct:
		return t.Struct.Name
	case KindNumerical:
		return t.Numerical.String()
	case KindVoid:
		return "void"
	default:
		return in.Str(id)
	}
}
