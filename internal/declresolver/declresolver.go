// Package declresolver is the single-pass rewriter that turns every
// syntactic type reference in a parsed program into a resolved
// typesys.TypeId, and feeds every type/field/method declaration into an
// internal/typeinfo.Builder. It runs after internal/typeset has
// assigned every declared type a dense id and before
// internal/typeinfo.Builder.Build constructs the program's
// TypeInfoMap, matching spec.md §4.3.
package declresolver

import (
	"github.com/joosc/compiler/internal/ast"
	"github.com/joosc/compiler/internal/diagnostics"
	"github.com/joosc/compiler/internal/typeinfo"
	"github.com/joosc/compiler/internal/typeset"
)

// CollectTypeNames registers every compilation unit's top-level type
// declarations into b, package-qualified, so that a subsequent
// b.Build() assigns each one a dense TypeId. This is the "TypeSet
// build" pipeline stage (spec.md §2); it runs before a Resolver exists,
// since a Resolver needs the completed TypeSet to look resolved ids
// back up.
func CollectTypeNames(prog *ast.Program, b *typeset.Builder) {
	for _, u := range prog.Units {
		for _, td := range u.Types {
			b.Put(u.Package.Parts, td.Name, td.NameRange)
		}
	}
}

// Resolver rewrites one program's worth of compilation units against an
// already-built TypeSet, registering every declaration with tib as it
// goes.
type Resolver struct {
	ts  typeset.TypeSet
	tib *typeinfo.Builder
	out *diagnostics.List
}

// New returns a Resolver. ts must already hold every program-wide
// declared type (typeset.Builder.Build's result); tib accumulates the
// declarations this Resolver discovers, for a later tib.Build().
func New(ts typeset.TypeSet, tib *typeinfo.Builder, out *diagnostics.List) *Resolver {
	return &Resolver{ts: ts, tib: tib, out: out}
}

// Resolve rewrites prog's compilation units, returning a new Program.
// Every unit is copied, whether or not anything in it changed.
func (r *Resolver) Resolve(prog *ast.Program) *ast.Program {
	units := make([]*ast.CompilationUnit, len(prog.Units))
	for i, u := range prog.Units {
		units[i] = r.resolveUnit(u)
	}
	return &ast.Program{Units: units}
}

func (r *Resolver) resolveUnit(u *ast.CompilationUnit) *ast.CompilationUnit {
	scoped := r.ts.WithPackage(u.Package).WithImports(u.Imports, r.out)

	types := make([]*ast.TypeDecl, len(u.Types))
	for i, td := range u.Types {
		types[i] = r.resolveType(td, u.Package, scoped)
	}

	nu := *u
	nu.Types = types
	return &nu
}
