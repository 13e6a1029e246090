// Package weeder runs the syntactic legality checks that sit between
// parsing and name resolution: modifier legality, one-type-per-file and
// filename-matches-type-name, integer literal range, assignment
// left-hand-side shape, call shape, and top-level statement shape.
// None of these checks need a symbol table — they are decidable from
// the parse tree alone (spec.md §1's "weeder" stage), which is why they
// run before internal/typeset ever builds one.
package weeder

import (
	"github.com/joosc/compiler/internal/ast"
	"github.com/joosc/compiler/internal/diagnostics"
	"github.com/joosc/compiler/internal/token"
)

// Weed runs every check against prog in sequence, mirroring
// weeder.cpp's WeedProgram: each pass may rewrite the tree (int-literal
// folding) and always reports into out, never stopping early. fs
// resolves each CompilationUnit's source file name for the
// filename-matches-type-name check.
func Weed(fs *token.FileSet, prog *ast.Program, out *diagnostics.List) *ast.Program {
	prog = foldIntLiterals(prog, out)
	checkAssignmentTargets(prog, out)
	checkCallShape(prog, out)
	checkTopLevelTypes(prog, out)
	checkModifiers(prog, out)
	checkStructure(fs, prog, out)
	return prog
}
