package weeder

import (
	"github.com/joosc/compiler/internal/ast"
	"github.com/joosc/compiler/internal/diagnostics"
	"github.com/joosc/compiler/internal/token"
)

// checkTopLevelTypes validates `void` usage, `new` target shape,
// `instanceof` right-hand-side shape, and the restricted set of
// expressions Joos allows as a standalone statement — grounded on
// weeder/type_visitor.cpp.
func checkTopLevelTypes(prog *ast.Program, out *diagnostics.List) {
	for _, unit := range prog.Units {
		for _, t := range unit.Types {
			for _, f := range t.Fields {
				checkNotVoid(f.Type, out)
			}
			for _, m := range t.Methods {
				for _, p := range m.Params {
					checkNotVoid(p.Type, out)
				}
				if m.Body != nil {
					checkBlockShape(m.Body, out)
				}
			}
			for _, c := range t.Constructors {
				for _, p := range c.Params {
					checkNotVoid(p.Type, out)
				}
				if c.Body != nil {
					checkBlockShape(c.Body, out)
				}
			}
		}
	}

	v := &ast.Visitor{
		ExprHook: func(e ast.Expr) (ast.Expr, ast.Action) {
			switch n := e.(type) {
			case *ast.CastExpr:
				checkNotVoid(n.Type, out)
			case *ast.InstanceOfExpr:
				checkNotVoid(n.Type, out)
				if n.Type.Primitive != token.ILLEGAL && n.Type.NDims == 0 {
					out.Addf(diagnostics.InvalidInstanceOfTypeError, n.Range,
						"right-hand-side of 'instanceof' must be a reference type or an array")
				}
			case *ast.NewObjectExpr:
				checkNotVoid(n.Type, out)
				if (n.Type.Primitive != token.ILLEGAL || n.Type.IsVoid) && n.Type.NDims == 0 {
					out.Addf(diagnostics.NewNonReferenceTypeError, n.Range,
						"can only instantiate non-array reference types")
				}
			case *ast.NewArrayExpr:
				checkNotVoid(n.ElemType, out)
			}
			return e, ast.Recurse
		},
		StmtHook: func(s ast.Stmt) (ast.Stmt, ast.Action) {
			if l, ok := s.(*ast.LocalVarDecl); ok {
				checkNotVoid(l.Type, out)
			}
			return s, ast.Recurse
		},
	}
	walkAllExprs(prog, v)
}

func checkNotVoid(t ast.TypeRef, out *diagnostics.List) {
	if t.IsVoid {
		out.Addf(diagnostics.InvalidVoidTypeError, t.Pos(),
			"'void' is only valid as the return type of a method")
	}
}

func checkBlockShape(b *ast.Block, out *diagnostics.List) {
	for _, s := range b.Stmts {
		switch n := s.(type) {
		case *ast.ExprStmt:
			if !isTopLevelExpr(n.X) {
				out.Addf(diagnostics.InvalidTopLevelStatement, n.Range,
					"a top level statement can only be an assignment, a method call, or a class instantiation")
			}
		case *ast.IfStmt:
			if then, ok := n.Then.(*ast.Block); ok {
				checkBlockShape(then, out)
			}
			if els, ok := n.Else.(*ast.Block); ok {
				checkBlockShape(els, out)
			}
		case *ast.WhileStmt:
			if body, ok := n.Body.(*ast.Block); ok {
				checkBlockShape(body, out)
			}
		case *ast.ForStmt:
			checkForClauseShape(n, out)
			if body, ok := n.Body.(*ast.Block); ok {
				checkBlockShape(body, out)
			}
		case *ast.Block:
			checkBlockShape(n, out)
		}
	}
}

func checkForClauseShape(f *ast.ForStmt, out *diagnostics.List) {
	if f.Init != nil {
		if _, ok := f.Init.(*ast.LocalVarDecl); !ok {
			if es, ok := f.Init.(*ast.ExprStmt); !ok || !isTopLevelExpr(es.X) {
				out.Addf(diagnostics.InvalidTopLevelStatement, f.Range,
					"a top level statement can only be an assignment, a method call, or a class instantiation")
			}
		}
	}
	if f.Update != nil {
		if es, ok := f.Update.(*ast.ExprStmt); !ok || !isTopLevelExpr(es.X) {
			out.Addf(diagnostics.InvalidTopLevelStatement, f.Range,
				"a top level statement can only be an assignment, a method call, or a class instantiation")
		}
	}
}

// isTopLevelExpr accepts assignment, method call, and object
// instantiation — the only expressions Joos allows to stand alone as
// a statement or a for-loop init/update clause.
func isTopLevelExpr(e ast.Expr) bool {
	if e == nil {
		return true
	}
	switch e.(type) {
	case *ast.AssignExpr, *ast.CallExpr, *ast.NewObjectExpr:
		return true
	default:
		return false
	}
}
