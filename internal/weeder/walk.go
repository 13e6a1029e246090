package weeder

import "github.com/joosc/compiler/internal/ast"

// walkAllExprs runs v over every expression reachable from prog (field
// initializers and method/constructor bodies), discarding the
// rewritten tree — used by checks that only report diagnostics and
// have no need to replace nodes.
func walkAllExprs(prog *ast.Program, v *ast.Visitor) {
	for _, unit := range prog.Units {
		for _, t := range unit.Types {
			for _, f := range t.Fields {
				ast.RewriteExpr(f.Init, v)
			}
			for _, m := range t.Methods {
				if m.Body != nil {
					ast.RewriteStmt(m.Body, v)
				}
			}
			for _, c := range t.Constructors {
				if c.Body != nil {
					ast.RewriteStmt(c.Body, v)
				}
			}
		}
	}
}
