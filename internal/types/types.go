// Package types implements the Type Interner (spec.md §4.A): the single
// source of truth for canonical type identity across one compilation unit.
//
// Grounded on yo/IRGen's Type.h (Type/NumericalType/PointerType/FunctionType/
// StructType) and on surge/internal/types/interner.go's TypeID-indexed arena
// approach. TypeID plays the role the original's `Type*` pointer plays:
// spec.md §3 requires "Type identity is pointer-equality" — here, equal
// TypeIDs stand in for equal pointers, and the Interner is the only thing
// that ever manufactures one.
package types

// Kind is the closed sum described in spec.md §3.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindVoid
	KindNumerical
	KindPointer
	KindFunction
	KindStruct
)

func (k Kind) String() string {
	switch k {
	case KindVoid:
		return "void"
	case KindNumerical:
		return "numerical"
	case KindPointer:
		return "pointer"
	case KindFunction:
		return "function"
	case KindStruct:
		return "struct"
	default:
		return "invalid"
	}
}

// NumericalKind enumerates the ten numeric primitives from spec.md §3.
type NumericalKind uint8

const (
	Bool NumericalKind = iota
	Int8
	Int16
	Int32
	Int64
	UInt8
	UInt16
	UInt32
	UInt64
	Float64
)

// IsSigned reports whether k is a signed integer kind. Bool and Float64 are
// neither signed nor unsigned for the purposes of arithmetic promotion.
func (k NumericalKind) IsSigned() bool {
	switch k {
	case Int8, Int16, Int32, Int64:
		return true
	default:
		return false
	}
}

// IsInteger reports whether k is an integer kind (as opposed to Bool or
// Float64).
func (k NumericalKind) IsInteger() bool {
	switch k {
	case Int8, Int16, Int32, Int64, UInt8, UInt16, UInt32, UInt64:
		return true
	default:
		return false
	}
}

// BitWidth returns the primitive's width in bits.
func (k NumericalKind) BitWidth() uint8 {
	switch k {
	case Bool, Int8, UInt8:
		return 8
	case Int16, UInt16:
		return 16
	case Int32, UInt32:
		return 32
	case Int64, UInt64, Float64:
		return 64
	default:
		return 0
	}
}

func (k NumericalKind) String() string {
	switch k {
	case Bool:
		return "bool"
	case Int8:
		return "i8"
	case Int16:
		return "i16"
	case Int32:
		return "i32"
	case Int64:
		return "i64"
	case UInt8:
		return "u8"
	case UInt16:
		return "u16"
	case UInt32:
		return "u32"
	case UInt64:
		return "u64"
	case Float64:
		return "f64"
	default:
		return "?"
	}
}

// TypeID is the canonical, pointer-equality-equivalent handle for a Type.
// Two TypeIDs are equal if and only if the Interner that produced them
// considers the underlying types identical (spec.md §3's "Type identity is
// pointer-equality" invariant).
type TypeID uint32

// NoTypeID is never returned by a successful interning operation.
const NoTypeID TypeID = 0

// CallingConvention mirrors yo/IRGen's CallingConvention enum (§3: Function
// holds "a single enumerated value").
type CallingConvention uint8

const (
	ConventionC CallingConvention = iota
)

func (c CallingConvention) String() string {
	switch c {
	case ConventionC:
		return "C"
	default:
		return "?"
	}
}

// Type is the canonical representation stored once per distinct structural
// identity inside an Interner (except for Struct, see StructInfo's doc
// comment). Only the Interner constructs values of this type.
type Type struct {
	Kind Kind

	Numerical NumericalKind // valid iff Kind == KindNumerical

	Pointee TypeID // valid iff Kind == KindPointer

	Fn *FnInfo // valid iff Kind == KindFunction

	Struct *StructInfo // valid iff Kind == KindStruct
}

// FnInfo holds the structural payload of a Function type. Function types are
// interned structurally: two FnInfo values with equal fields produce the same
// TypeID (spec.md §4.A: "Equality of ... function types is structural").
type FnInfo struct {
	Return     TypeID
	Params     []TypeID
	Convention CallingConvention
}

// StructInfo holds the payload of a Struct type. Struct types are created
// once, by name, and never re-interned structurally (spec.md §4.A: "Equality
// of struct types is by identity, not by structural member equality") — the
// Interner hands out a fresh TypeID for every MakeStruct call and the
// Registry layer above it is what actually prevents duplicate names
// (spec.md §4.D's Redefinition check lives in internal/symbols, not here;
// the Interner's own MakeStruct still refuses a duplicate name directly per
// spec.md §4.A so the invariant holds even if a caller bypasses the
// registry).
type StructInfo struct {
	Name    string
	Members []Member
}

// Member is one (field-name, field-type) pair of a StructInfo.
type Member struct {
	Name string
	Type TypeID
}

// HasMember reports whether the struct declares a field called name.
func (s *StructInfo) HasMember(name string) bool {
	_, ok := s.Member(name)
	return ok
}

// Member returns the field called name and its declaration index, or
// (Member{}, false) if no such field exists.
func (s *StructInfo) Member(name string) (Member, bool) {
	for _, m := range s.Members {
		if m.Name == name {
			return m, true
		}
	}
	return Member{}, false
}

// Index returns the declaration-order index of the field called name.
func (s *StructInfo) Index(name string) (int, bool) {
	for i, m := range s.Members {
		if m.Name == name {
			return i, true
		}
	}
	return 0, false
}
