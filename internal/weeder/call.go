package weeder

import (
	"github.com/joosc/compiler/internal/ast"
	"github.com/joosc/compiler/internal/diagnostics"
)

// checkCallShape validates the receiver of every CallExpr, grounded on
// weeder/call_visitor.cpp. A bare `this(args)` constructor-delegation
// call (Receiver is ThisExpr, no method Name) is specifically called
// out as ExplicitThisCallError since Joos, unlike full Java, does not
// support it; any other receiver shape that isn't nil (implicit this),
// an Ident, a FieldAccessExpr, or an explicit ThisExpr.method() is an
// InvalidCallError.
func checkCallShape(prog *ast.Program, out *diagnostics.List) {
	v := &ast.Visitor{
		ExprHook: func(e ast.Expr) (ast.Expr, ast.Action) {
			c, ok := e.(*ast.CallExpr)
			if !ok {
				return e, ast.Recurse
			}
			if c.ExplicitThis && c.Name == "" {
				out.Addf(diagnostics.ExplicitThisCallError, c.Range,
					"cannot call explicit 'this' constructor in Joos")
				return e, ast.RecursePrune
			}
			switch c.Receiver.(type) {
			case nil, *ast.Ident, *ast.FieldAccessExpr, *ast.ThisExpr:
			default:
				out.Addf(diagnostics.InvalidCallError, c.Range, "cannot call non-method")
				return e, ast.RecursePrune
			}
			return e, ast.Recurse
		},
	}
	walkAllExprs(prog, v)
}
