package weeder

import (
	"github.com/joosc/compiler/internal/ast"
	"github.com/joosc/compiler/internal/diagnostics"
	"github.com/joosc/compiler/internal/token"
)

// checkStructure validates the file-level shape of each compilation
// unit, grounded on weeder/structure_visitor.cpp: at most one type per
// file, and the type's name must match its file's basename. It also
// validates that every constructor is named after its enclosing type,
// a check the original keeps in its parser rather than a dedicated
// visitor, but which belongs here since it needs no symbol table.
func checkStructure(fs *token.FileSet, prog *ast.Program, out *diagnostics.List) {
	for _, unit := range prog.Units {
		if len(unit.Types) > 1 {
			for _, t := range unit.Types {
				out.Addf(diagnostics.MultipleTypesPerCompUnitError, t.NameRange,
					"Joos does not support multiple types per file")
			}
			continue
		}
		if len(unit.Types) == 0 {
			continue
		}

		t := unit.Types[0]
		expected := t.Name + ".java"
		if name := fs.Name(unit.File); baseName(name) != expected {
			out.Addf(diagnostics.IncorrectFileNameError, t.NameRange,
				"must be in a file named "+expected)
		}

		for _, c := range t.Constructors {
			if c.Name != t.Name {
				out.Addf(diagnostics.ConstructorNameError, c.NameRange,
					"constructor name must match the enclosing type's name")
			}
		}
	}
}

func baseName(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' || path[i] == '\\' {
			return path[i+1:]
		}
	}
	return path
}
