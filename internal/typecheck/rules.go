package typecheck

import "github.com/joosc/compiler/internal/typesys"

// The classification and conversion rules below are transcribed from
// original_source/types/typechecker_utils.cpp. isNumeric and
// isPrimitive already exist as typesys.TypeId.IsIntegral/IsPrimitive;
// the rest build on them exactly the way the original builds on its
// own IsNumeric/IsPrimitive.

func isNumeric(t typesys.TypeId) bool { return t.IsIntegral() }

// canonical maps any array TypeId to the single registered array type
// so it can be looked up in the TypeInfoMap, which only ever stores
// array edges under that one canonical id (see TypeInfoMap.LookupTypeInfo).
// IsAncestor, unlike LookupTypeInfo, does not do this itself.
func (c *Checker) canonical(t typesys.TypeId) typesys.TypeId {
	if t.NDims > 0 {
		return c.arrayType
	}
	return t
}

func isPrimitiveWidening(lhs, rhs typesys.TypeId) bool {
	if !isNumeric(lhs) || !isNumeric(rhs) {
		return false
	}
	switch rhs.Base {
	case typesys.ByteBase:
		return lhs.Base == typesys.ShortBase || lhs.Base == typesys.IntBase
	case typesys.ShortBase, typesys.CharBase:
		return lhs.Base == typesys.IntBase
	default: // int widens to nothing
		return false
	}
}

func isPrimitiveNarrowing(lhs, rhs typesys.TypeId) bool {
	if !isNumeric(lhs) || !isNumeric(rhs) {
		return false
	}
	switch rhs.Base {
	case typesys.ByteBase:
		return lhs.Base == typesys.CharBase
	case typesys.ShortBase:
		return lhs.Base == typesys.ByteBase || lhs.Base == typesys.CharBase
	case typesys.CharBase:
		return lhs.Base == typesys.ByteBase || lhs.Base == typesys.ShortBase
	case typesys.IntBase:
		return lhs.Base == typesys.ByteBase || lhs.Base == typesys.CharBase || lhs.Base == typesys.ShortBase
	default:
		return false
	}
}

func (c *Checker) isReferenceWidening(lhs, rhs typesys.TypeId) bool {
	if !lhs.IsReference() || !rhs.IsReference() {
		return false
	}
	if lhs.IsNull() {
		return false // nothing widens to null
	}
	if rhs.IsNull() {
		return true // null widens to any reference type
	}
	return c.tim.IsAncestor(c.canonical(rhs), c.canonical(lhs))
}

// isAssignable reports whether a value of type rhs may be assigned to
// (or passed/returned as) a location of type lhs.
func (c *Checker) isAssignable(lhs, rhs typesys.TypeId) bool {
	if lhs == rhs {
		return true
	}
	if lhs.NDims == rhs.NDims && lhs.NDims > 0 {
		lb, rb := typesys.TypeId{Base: lhs.Base}, typesys.TypeId{Base: rhs.Base}
		if lb.IsPrimitive() || rb.IsPrimitive() {
			return false
		}
		return c.isAssignable(lb, rb)
	}
	if isPrimitiveWidening(lhs, rhs) {
		return true
	}
	if c.isReferenceWidening(lhs, rhs) {
		return true
	}
	return false
}

// isCastable reports whether an expression of type rhs may be cast to lhs.
func (c *Checker) isCastable(lhs, rhs typesys.TypeId) bool {
	if lhs == rhs {
		return true
	}
	if lhs.IsPrimitive() && rhs.IsPrimitive() {
		return isPrimitiveWidening(lhs, rhs) || isPrimitiveNarrowing(lhs, rhs)
	}
	if lhs.IsReference() && rhs.IsReference() {
		return c.isAssignable(lhs, rhs) || c.isAssignable(rhs, lhs)
	}
	return false
}

// isComparable reports whether lhs and rhs may appear on either side
// of == or !=.
func (c *Checker) isComparable(lhs, rhs typesys.TypeId) bool {
	if lhs == rhs {
		return true
	}
	if isNumeric(lhs) && isNumeric(rhs) {
		return true
	}
	if isNumeric(lhs) || isNumeric(rhs) {
		return false
	}
	if lhs.IsNull() || rhs.IsNull() {
		return true
	}
	return c.isAssignable(lhs, rhs) || c.isAssignable(rhs, lhs)
}
