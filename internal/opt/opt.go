// Package opt is the peephole optimization stage's placeholder:
// grounded on original_source/opt/peep.cpp, which is itself a
// skeleton upstream (its pass bodies are stubs), this package carries
// the Pass/Pipeline shape forward without reverse-engineering passes
// the original never actually implemented. See spec.md §9's Open
// Question — optimization is explicitly out of scope for this
// compiler, and this package exists only so internal/driver has a
// typed seam to call into if that ever changes.
package opt

import "github.com/joosc/compiler/internal/ir"

// Pass transforms one compilation unit's IR in place, mirroring
// peep.cpp's per-pass shape (a pass receives a CompUnit and may rewrite
// its methods' Ops/Args).
type Pass interface {
	Name() string
	Run(unit *ir.CompUnit)
}

// Pipeline runs a sequence of Passes over every unit of a Program.
// The zero value runs zero passes, which is this compiler's permanent
// configuration — see the package doc.
type Pipeline struct {
	Passes []Pass
}

// Run applies every pass in order to every unit of prog, in place.
func (p Pipeline) Run(prog *ir.Program) {
	for i := range prog.Units {
		for _, pass := range p.Passes {
			pass.Run(&prog.Units[i])
		}
	}
}
