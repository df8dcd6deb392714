package ast

import "yo/internal/types"

// NumberLiteralFits implements spec.md §4.G's "value-fits rule": whether n's
// value can be represented in target without loss, signedness taken from
// target. Integer literals also trivially fit f64 (spec.md: "Integer
// literals also trivially coerce to f64"). Shared by internal/callresolve
// (parameter-compatibility scoring) and internal/elaborate
// (typecheckAndCoerce), neither of which may import the other.
func NumberLiteralFits(n *NumberLiteral, target types.NumericalKind) bool {
	if target == types.Float64 {
		return n.LitKind == NumInteger || n.LitKind == NumDouble || n.LitKind == NumCharacter
	}
	if n.LitKind == NumDouble {
		return false
	}
	var value int64
	switch n.LitKind {
	case NumInteger:
		value = n.IntValue
	case NumCharacter:
		value = n.IntValue
	case NumBoolean:
		if target != types.Bool {
			return false
		}
		return true
	default:
		return false
	}
	if target == types.Bool {
		return value == 0 || value == 1
	}
	width := target.BitWidth()
	if target.IsSigned() {
		lo := -(int64(1) << (width - 1))
		hi := int64(1)<<(width-1) - 1
		return value >= lo && value <= hi
	}
	if value < 0 {
		return false
	}
	if width >= 64 {
		return true
	}
	hi := int64(1)<<width - 1
	return value <= hi
}
