// Package codegen documents the handoff point a real i386 text
// emitter would occupy: the same RuntimeLinkIds / ir.CompUnit values
// original_source/asm_writer.h's AsmWriter consumed to emit AT&T
// syntax assembly. Actual instruction selection and register
// allocation are out of scope (spec.md's Non-goals) — this package
// exists so the seam between ir.Program and a backend is a typed,
// named function rather than an implicit "and then you'd write
// assembly" gap.
package codegen

import (
	"fmt"
	"io"

	"github.com/joosc/compiler/internal/ir"
)

// Emit would lower unit to i386 assembly text and write it to w. It
// currently only reports what it would have emitted, matching
// original_source/joosc.cpp's own CompilerBackend, whose text-emission
// loop is itself TODO-stubbed upstream.
func Emit(w io.Writer, unit ir.CompUnit) error {
	_, err := fmt.Fprintf(w, "# %s: %d method(s) — i386 emission not implemented\n", unit.Filename, len(unit.Methods))
	return err
}
