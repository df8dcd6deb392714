package types

import (
	"fmt"

	"fortio.org/safecast"
)

// Builtins caches the TypeIDs of every primitive, created once during
// Interner construction (spec.md §4.A: "Primitives are created once during
// interner initialization and never destroyed").
type Builtins struct {
	Void    TypeID
	Bool    TypeID
	Int8    TypeID
	Int16   TypeID
	Int32   TypeID
	Int64   TypeID
	UInt8   TypeID
	UInt16  TypeID
	UInt32  TypeID
	UInt64  TypeID
	Float64 TypeID
}

// Interner is the Type Interner of spec.md §4.A. It owns every Type value
// created during one compilation; nothing outside this package constructs a
// Type directly.
type Interner struct {
	types    []Type
	index    map[structuralKey]TypeID // Function dedup, by structural key
	pointers map[TypeID]TypeID        // memoized T -> *T (spec.md §4.A getPointerTo)
	names    map[string]TypeID        // struct name -> TypeID, enforces uniqueness
	builtins Builtins
}

// structuralKey identifies a Function type by its structural shape; Pointer
// types are memoized through the pointers map instead. Struct types are intentionally never given a structuralKey: spec.md
// §4.A requires struct identity to be by creation, not by member equality.
type structuralKey struct {
	kind   Kind
	pointee TypeID
	ret    TypeID
	params string // params encoded as a fixed-width string, see paramsKey
	conv   CallingConvention
}

// NewInterner constructs an Interner with every primitive already interned.
func NewInterner() *Interner {
	in := &Interner{
		index:    make(map[structuralKey]TypeID, 64),
		pointers: make(map[TypeID]TypeID, 64),
		names:    make(map[string]TypeID, 16),
	}
	in.types = append(in.types, Type{Kind: KindInvalid}) // NoTypeID sentinel
	in.builtins.Void = in.push(Type{Kind: KindVoid})
	in.builtins.Bool = in.push(Type{Kind: KindNumerical, Numerical: Bool})
	in.builtins.Int8 = in.push(Type{Kind: KindNumerical, Numerical: Int8})
	in.builtins.Int16 = in.push(Type{Kind: KindNumerical, Numerical: Int16})
	in.builtins.Int32 = in.push(Type{Kind: KindNumerical, Numerical: Int32})
	in.builtins.Int64 = in.push(Type{Kind: KindNumerical, Numerical: Int64})
	in.builtins.UInt8 = in.push(Type{Kind: KindNumerical, Numerical: UInt8})
	in.builtins.UInt16 = in.push(Type{Kind: KindNumerical, Numerical: UInt16})
	in.builtins.UInt32 = in.push(Type{Kind: KindNumerical, Numerical: UInt32})
	in.builtins.UInt64 = in.push(Type{Kind: KindNumerical, Numerical: UInt64})
	in.builtins.Float64 = in.push(Type{Kind: KindNumerical, Numerical: Float64})
	return in
}

// Builtins returns the cached primitive TypeIDs.
func (in *Interner) Builtins() Builtins { return in.builtins }

// push appends t unconditionally and returns its fresh TypeID.
func (in *Interner) push(t Type) TypeID {
	n, err := safecast.Conv[uint32](len(in.types))
	if err != nil {
		panic(fmt.Errorf("types: too many interned types: %w", err))
	}
	id := TypeID(n)
	in.types = append(in.types, t)
	return id
}

// Lookup returns the Type stored under id.
func (in *Interner) Lookup(id TypeID) (Type, bool) {
	if id == NoTypeID || int(id) >= len(in.types) {
		return Type{}, false
	}
	return in.types[id], true
}

// MustLookup is Lookup, panicking on an invalid id.
func (in *Interner) MustLookup(id TypeID) Type {
	t, ok := in.Lookup(id)
	if !ok {
		panic("types: invalid TypeID")
	}
	return t
}

// Numerical returns the TypeID for a given primitive numeric kind.
func (in *Interner) Numerical(k NumericalKind) TypeID {
	switch k {
	case Bool:
		return in.builtins.Bool
	case Int8:
		return in.builtins.Int8
	case Int16:
		return in.builtins.Int16
	case Int32:
		return in.builtins.Int32
	case Int64:
		return in.builtins.Int64
	case UInt8:
		return in.builtins.UInt8
	case UInt16:
		return in.builtins.UInt16
	case UInt32:
		return in.builtins.UInt32
	case UInt64:
		return in.builtins.UInt64
	case Float64:
		return in.builtins.Float64
	default:
		return NoTypeID
	}
}

// MakePointerTo returns the unique pointer-to-pointee type, memoized per
// spec.md §4.A: "T.getPointerTo() returns the same instance on repeated
// calls."
func (in *Interner) MakePointerTo(pointee TypeID) TypeID {
	if existing, ok := in.pointers[pointee]; ok {
		return existing
	}
	id := in.push(Type{Kind: KindPointer, Pointee: pointee})
	in.pointers[pointee] = id
	return id
}

// MakeFunction returns the unique function type for (ret, params, conv),
// interning structurally (spec.md §4.A: "Equality of ... function types is
// structural").
func (in *Interner) MakeFunction(ret TypeID, params []TypeID, conv CallingConvention) TypeID {
	key := structuralKey{kind: KindFunction, ret: ret, params: paramsKey(params), conv: conv}
	if id, ok := in.index[key]; ok {
		return id
	}
	cloned := make([]TypeID, len(params))
	copy(cloned, params)
	id := in.push(Type{Kind: KindFunction, Fn: &FnInfo{Return: ret, Params: cloned, Convention: conv}})
	in.index[key] = id
	return id
}

// MakeStruct creates and returns a brand-new struct type. It fails (ok=false)
// if a struct with this name was already registered through this Interner
// (spec.md §4.A: "makeStruct(...) ... fails if a struct of that name already
// exists").
func (in *Interner) MakeStruct(name string, members []Member) (TypeID, bool) {
	if _, exists := in.names[name]; exists {
		return NoTypeID, false
	}
	cloned := make([]Member, len(members))
	copy(cloned, members)
	id := in.push(Type{Kind: KindStruct, Struct: &StructInfo{Name: name, Members: cloned}})
	in.names[name] = id
	return id, true
}

// SetStructMembers populates the member list of a struct type created
// earlier via MakeStruct. This two-step creation lets the Module Driver
// reserve a struct's TypeID (and register its nominal name) before
// resolving its field types, so a field may reference the struct's own name
// (self-referential structs via a pointer field) without a chicken-and-egg
// problem at the Interner layer. Returns false if id does not name a struct.
func (in *Interner) SetStructMembers(id TypeID, members []Member) bool {
	t, ok := in.Lookup(id)
	if !ok || t.Kind != KindStruct {
		return false
	}
	cloned := make([]Member, len(members))
	copy(cloned, members)
	t.Struct.Members = cloned
	return true
}

// LookupStructByName returns the TypeID previously created for name, if any.
func (in *Interner) LookupStructByName(name string) (TypeID, bool) {
	id, ok := in.names[name]
	return id, ok
}

// paramsKey encodes a parameter-type list into a string usable as a map key
// component. TypeID is a uint32, so a fixed 4-byte-per-id encoding is
// injective over distinct slices.
func paramsKey(params []TypeID) string {
	buf := make([]byte, len(params)*4)
	for i, p := range params {
		buf[i*4] = byte(p)
		buf[i*4+1] = byte(p >> 8)
		buf[i*4+2] = byte(p >> 16)
		buf[i*4+3] = byte(p >> 24)
	}
	return string(buf)
}
