// Package ir lowers a typed, constant-folded, dataflow-checked program
// (internal/ast, after internal/typecheck, internal/constfold, and
// internal/dataflow have all run) into the flat per-method opcode
// stream spec.md §4.7 describes: a linear array of Op values, each a
// type tag plus a [begin, end) window into a shared u64 argument
// vector, replacing the in-memory pointer graph of the AST with
// indices a backend can consume without walking Go structures.
//
// Grounded throughout on original_source/ir/ir_generator.{h,cpp},
// ir/stream.h, ir/size.h/.cpp, and ir/mem.h/mem_impl.h.
package ir

import (
	"fmt"

	"github.com/joosc/compiler/internal/typesys"
)

// SizeClass is the IR's native width vocabulary (spec.md §4.7); every
// Mem and every CONST/arithmetic opcode is tagged with one.
type SizeClass uint8

const (
	SizeBool SizeClass = iota
	SizeByte
	SizeShort
	SizeChar
	SizeInt
	SizePtr
)

var sizeClassNames = [...]string{"bool", "byte", "short", "char", "int", "ptr"}

// String names a size class the way dump-ir's JSON output refers to
// it.
func (s SizeClass) String() string {
	if int(s) < len(sizeClassNames) {
		return sizeClassNames[s]
	}
	return fmt.Sprintf("SizeClass(%d)", int(s))
}

// SizeClassFrom maps a resolved TypeId to its IR size class. Grounded
// on ir/size.cpp's SizeClassFrom: every reference type (arrays,
// classes, interfaces, null) lowers to a pointer-sized slot.
func SizeClassFrom(tid typesys.TypeId) SizeClass {
	if tid.NDims == 0 {
		switch tid.Base {
		case typesys.BoolBase:
			return SizeBool
		case typesys.ByteBase:
			return SizeByte
		case typesys.ShortBase:
			return SizeShort
		case typesys.CharBase:
			return SizeChar
		case typesys.IntBase:
			return SizeInt
		}
	}
	return SizePtr
}
