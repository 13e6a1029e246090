package dataflow

import (
	"github.com/joosc/compiler/internal/ast"
	"github.com/joosc/compiler/internal/diagnostics"
	"github.com/joosc/compiler/internal/token"
)

// checkReachability runs the reachability/definite-return analysis
// over one method or constructor body (spec.md §4.6.2), grounded on
// dataflow_visitor.cpp's ReachabilityVisitor. Native and abstract
// methods (nil Body) have no body to check.
func checkReachability(m *ast.MethodDecl, out *diagnostics.List) {
	if m.Body == nil {
		return
	}
	r := &reachability{out: out, reachable: true, mayEmit: true}
	r.visitBlock(m.Body)

	isVoid := m.IsConstructor || m.ReturnType.Resolved.IsVoid()
	if r.reachable && !isVoid {
		out.Addf(diagnostics.MethodNeedsReturnError, m.NameRange,
			"can reach the end of the method without returning a value")
	}
}

// reachability tracks the two bits spec.md §4.6.2 names: reachable
// (this point in the program may execute) and mayEmit (suppresses
// cascading UnreachableCodeErrors after the first one in a stretch of
// dead code). A fresh reachability is made for each nested scope
// (an if branch, a loop body) so each branch's own ending reachability
// can be read back independently, exactly mirroring the original's
// per-branch ReachabilityVisitor::Nested() copies.
type reachability struct {
	out       *diagnostics.List
	reachable bool
	mayEmit   bool
}

func (r *reachability) nested() *reachability {
	return &reachability{out: r.out, reachable: r.reachable, mayEmit: r.mayEmit}
}

func (r *reachability) checkReachable(pos token.Range) {
	if !r.reachable && r.mayEmit {
		r.mayEmit = false
		r.out.Addf(diagnostics.UnreachableCodeError, pos, "unreachable code")
	}
}

func (r *reachability) visitBlock(b *ast.Block) {
	for _, s := range b.Stmts {
		r.checkReachable(s.Pos())
		r.visitStmt(s)
	}
	r.mayEmit = true
}

func (r *reachability) visitStmt(s ast.Stmt) {
	switch n := s.(type) {
	case *ast.Block:
		r.visitBlock(n)
	case *ast.ReturnStmt:
		r.reachable = false
	case *ast.IfStmt:
		trueV := r.nested()
		trueV.visitStmt(n.Then)

		falseV := r.nested()
		if n.Else != nil {
			falseV.visitStmt(n.Else)
		}

		// Code after the if is unreachable only if both branches return.
		r.reachable = trueV.reachable || falseV.reachable
	case *ast.WhileStmt:
		r.visitLoop(n.Cond, n.Body)
	case *ast.ForStmt:
		r.visitLoop(n.Cond, n.Body)
	default:
		// LocalVarDecl, ExprStmt, EmptyStmt: no effect on reachability.
	}
}

// visitLoop handles while and for alike (spec.md §4.6.2's three
// constant-condition cases); cond is nil for an omitted for(;;)
// condition, treated as the constant true per ast.ForStmt's own doc
// comment.
func (r *reachability) visitLoop(cond ast.Expr, body ast.Stmt) {
	isConst := true
	constVal := true
	switch {
	case cond == nil:
		constVal = true
	default:
		if v, ok := constBoolCond(cond); ok {
			constVal = v
		} else {
			isConst = false
		}
	}

	switch {
	case isConst && !constVal:
		// Body can never run: it's unreachable, but code after the loop
		// is reached as normal (the loop is just skipped).
		nested := &reachability{out: r.out, reachable: false, mayEmit: r.mayEmit}
		nested.checkReachable(body.Pos())
		r.reachable = true
	case isConst && constVal:
		// Infinite loop with no way out except an internal return: code
		// after the loop is unreachable unless the body returns, which
		// this language has no way to express (no break/continue), so
		// reachable-after is unconditionally false.
		nested := r.nested()
		nested.visitStmt(body)
		r.reachable = false
	default:
		// Condition isn't known at compile time: the loop might run zero
		// or more times, so reachability after it is unaffected either way.
		nested := r.nested()
		nested.visitStmt(body)
	}
}

// constBoolCond reports whether cond is a folded boolean constant and,
// if so, its value. Grounded on dataflow_visitor.cpp's IsConstantBool,
// whose own "TODO: Constant folding" this package's dependency on
// internal/constfold having already run resolves: a constant condition
// is recognized by its ast.ConstExpr wrapper, not by re-deriving
// constant-ness here.
func constBoolCond(cond ast.Expr) (value, isConst bool) {
	c, ok := cond.(*ast.ConstExpr)
	if !ok {
		return false, false
	}
	b, ok := c.Literal.(*ast.BoolLit)
	if !ok {
		return false, false
	}
	return b.Value, true
}
