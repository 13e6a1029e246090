package weeder

import (
	"github.com/joosc/compiler/internal/ast"
	"github.com/joosc/compiler/internal/diagnostics"
)

// checkAssignmentTargets validates that every AssignExpr's left-hand
// side is an lvalue — an identifier, a field access, or an array
// access — grounded on weeder/assignment_visitor.cpp.
func checkAssignmentTargets(prog *ast.Program, out *diagnostics.List) {
	v := &ast.Visitor{
		ExprHook: func(e ast.Expr) (ast.Expr, ast.Action) {
			a, ok := e.(*ast.AssignExpr)
			if !ok {
				return e, ast.Recurse
			}
			switch a.LHS.(type) {
			case *ast.Ident, *ast.FieldAccessExpr, *ast.ArrayAccessExpr:
			default:
				out.Addf(diagnostics.InvalidLHSError, a.LHS.Pos(), "invalid left-hand-side of assignment")
			}
			return e, ast.Recurse
		},
	}
	walkAllExprs(prog, v)
}
