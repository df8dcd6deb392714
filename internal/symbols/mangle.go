// Package symbols implements the Callable Registry of spec.md §4.D: the
// canonical-name -> overload-list table and the mangled-name -> resolved-
// callable table, plus the mangling scheme of spec.md §6 and the struct
// `init` synthesis of spec.md §4.D.
//
// Grounded on surge/internal/symbols (a canonical-name/overload-list
// registry over an arena of declarations) for the two-table shape, and on
// yo/Mangling.h for the exact mangled-name grammar.
package symbols

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	"yo/internal/ast"
	"yo/internal/types"
)

// CanonicalName derives spec.md §4.D's canonical name: "a deterministic
// string identifying a function or method by kind, enclosing type, and
// plain name, but not by parameter types." Two overloads of the same
// function share a canonical name; only their mangled names differ.
//
// name and ownerType are normalized to NFC first, the same
// golang.org/x/text/unicode/norm the teacher's own intrinsic_string.go uses
// so two source identifiers that differ only in combining-mark
// decomposition (e.g. "café" typed as an "e" plus a combining acute vs. the
// precomposed "é") are registered as the same overload set rather than two.
func CanonicalName(kind ast.FunctionKind, ownerType, name string) string {
	name = norm.NFC.String(name)
	if ownerType == "" {
		return name
	}
	return norm.NFC.String(ownerType) + "::" + name
}

// ArgumentOffset returns the implicit leading-argument count for kind
// (spec.md glossary: "1 for instance methods, 0 otherwise"). Static methods
// and free functions never get an implicit offset regardless of calling
// convention (SPEC_FULL.md §3, confirmed against the original's
// argumentOffsetForCallingConvention).
func ArgumentOffset(kind ast.FunctionKind) int {
	if kind == ast.FnInstanceMethod {
		return 1
	}
	return 0
}

// encodeType renders id per spec.md §6's fixed-prefix type encoding.
func encodeType(interner *types.Interner, id types.TypeID) string {
	t, ok := interner.Lookup(id)
	if !ok {
		return "?"
	}
	switch t.Kind {
	case types.KindVoid:
		return "v"
	case types.KindNumerical:
		switch t.Numerical {
		case types.Bool:
			return "b"
		case types.Int8:
			return "c"
		case types.UInt8:
			return "C"
		case types.Int16:
			return "s"
		case types.UInt16:
			return "S"
		case types.Int32:
			return "i"
		case types.UInt32:
			return "I"
		case types.Int64:
			return "l"
		case types.UInt64:
			return "L"
		case types.Float64:
			return "d"
		}
	case types.KindPointer:
		return "P" + encodeType(interner, t.Pointee)
	case types.KindFunction:
		var sb strings.Builder
		sb.WriteString("F")
		sb.WriteString(encodeType(interner, t.Fn.Return))
		for _, p := range t.Fn.Params {
			sb.WriteString(encodeType(interner, p))
		}
		return sb.String()
	case types.KindStruct:
		return "N" + t.Struct.Name
	}
	return "?"
}

// Mangle produces the mangled linkage name of spec.md §6 for a callable
// identified by kind, canonical, and its fully-resolved parameter/return
// types:
//
//	$<kind><scope><name>$_<p1>_<p2>..._<pn>$<return>
//
// A no-mangle function exposes plainName verbatim; an explicit-mangle
// function exposes explicitMangle verbatim (spec.md §6). Callers apply that
// override before falling back to Mangle.
func Mangle(kind ast.FunctionKind, ownerType, plainName string, params []types.TypeID, ret types.TypeID, interner *types.Interner) string {
	var sb strings.Builder
	sb.WriteByte('$')
	sb.WriteByte(kind.MangledPrefix())
	if ownerType != "" {
		sb.WriteString(ownerType)
		sb.WriteByte('.')
	}
	sb.WriteString(plainName)
	sb.WriteByte('$')
	for _, p := range params {
		sb.WriteByte('_')
		sb.WriteString(encodeType(interner, p))
	}
	sb.WriteByte('$')
	sb.WriteString(encodeType(interner, ret))
	return sb.String()
}

// LinkageName resolves the exact external symbol per spec.md §6: an
// explicit mangle= attribute wins, then no_mangle, then the computed
// mangling.
func LinkageName(kind ast.FunctionKind, ownerType, plainName string, params []types.TypeID, ret types.TypeID, interner *types.Interner, attrs ast.FunctionAttributes) string {
	if attrs.Mangle != "" {
		return attrs.Mangle
	}
	if attrs.NoMangle {
		return plainName
	}
	return Mangle(kind, ownerType, plainName, params, ret, interner)
}
