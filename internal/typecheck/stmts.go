package typecheck

import (
	"github.com/joosc/compiler/internal/ast"
	"github.com/joosc/compiler/internal/diagnostics"
	"github.com/joosc/compiler/internal/typesys"
)

// checkStmt type-checks s and every statement/expression it contains,
// returning a rewritten copy. Block and For each bracket their body in
// an explicit EnterScope/LeaveScope pair on c.sym (a While body gets a
// scope of its own only when it is a Block), grounded on
// original_source/types/typechecker.cpp's ScopeGuard usage.
func (c *Checker) checkStmt(s ast.Stmt) ast.Stmt {
	switch n := s.(type) {
	case *ast.Block:
		c.sym.EnterScope()
		defer c.sym.LeaveScope()
		stmts := make([]ast.Stmt, len(n.Stmts))
		for i, st := range n.Stmts {
			stmts[i] = c.checkStmt(st)
		}
		cp := *n
		cp.Stmts = stmts
		return &cp

	case *ast.ExprStmt:
		cp := *n
		cp.X = c.checkExpr(n.X)
		return &cp

	case *ast.LocalVarDecl:
		return c.checkLocalVarDecl(n)

	case *ast.IfStmt:
		cond := c.checkExpr(n.Cond)
		if cond.TypeID() != typesys.Bool {
			c.out.Addf(diagnostics.TypeMismatchError, cond.Pos(), "if condition must be boolean")
		}
		cp := *n
		cp.Cond = cond
		cp.Then = c.checkStmt(n.Then)
		if n.Else != nil {
			cp.Else = c.checkStmt(n.Else)
		}
		return &cp

	case *ast.WhileStmt:
		cond := c.checkExpr(n.Cond)
		if cond.TypeID() != typesys.Bool {
			c.out.Addf(diagnostics.TypeMismatchError, cond.Pos(), "while condition must be boolean")
		}
		cp := *n
		cp.Cond = cond
		cp.Body = c.checkStmt(n.Body)
		return &cp

	case *ast.ForStmt:
		c.sym.EnterScope()
		defer c.sym.LeaveScope()
		cp := *n
		if n.Init != nil {
			cp.Init = c.checkStmt(n.Init)
		}
		if n.Cond != nil {
			cond := c.checkExpr(n.Cond)
			if cond.TypeID() != typesys.Bool {
				c.out.Addf(diagnostics.TypeMismatchError, cond.Pos(), "for condition must be boolean")
			}
			cp.Cond = cond
		}
		if n.Update != nil {
			cp.Update = c.checkStmt(n.Update)
		}
		cp.Body = c.checkStmt(n.Body)
		return &cp

	case *ast.ReturnStmt:
		cp := *n
		if n.Value == nil {
			if !c.retType.IsVoid() {
				c.out.Addf(diagnostics.InvalidReturnError, n.Range, "missing return value")
			}
			return &cp
		}
		val := c.checkExpr(n.Value)
		cp.Value = val
		if !c.isAssignable(c.retType, val.TypeID()) {
			c.out.Addf(diagnostics.InvalidReturnError, n.Range, "returned value does not match the method's return type")
		}
		return &cp

	case *ast.EmptyStmt:
		return n

	default:
		return s
	}
}

func (c *Checker) checkLocalVarDecl(n *ast.LocalVarDecl) ast.Stmt {
	cp := *n
	if n.Init == nil {
		cp.LocalVarID = c.sym.DeclareStart(n.Type.Resolved, n.Name, n.NameRange, c.out)
		c.sym.DeclareEnd()
		return &cp
	}

	vid := c.sym.DeclareStart(n.Type.Resolved, n.Name, n.NameRange, c.out)
	init := c.checkExpr(n.Init)
	c.sym.DeclareEnd()

	cp.LocalVarID = vid
	cp.Init = init
	if !c.isAssignable(n.Type.Resolved, init.TypeID()) {
		c.out.Addf(diagnostics.UnassignableError, init.Pos(), "cannot initialize this local with this value")
	}
	return &cp
}
