package ast

// Action tells Rewrite what to do after a hook has looked at a node,
// matching the four traversal outcomes named in spec.md §2.
type Action int

const (
	// Recurse rewrites the node's children, then reconstructs the node
	// only if at least one child actually changed (structural sharing:
	// an unchanged subtree is returned by reference, not reallocated).
	Recurse Action = iota
	// Skip keeps the hook's replacement as-is, without visiting children.
	Skip
	// SkipPrune discards the node entirely (returns nil) without
	// visiting children — used when a node is already known-bad and
	// its children have already been (or will never be) separately
	// diagnosed (spec.md §7 "Pruning").
	SkipPrune
	// RecursePrune visits children (so nested errors still surface) but
	// then discards the node itself, like SkipPrune.
	RecursePrune
)

// Visitor is a set of optional per-kind-group hooks. A hook with no
// opinion returns its input node unchanged together with Recurse, and
// the walk goes on into the node's children; a nil node returned with
// Recurse drops the node, so nil is only meaningful for the Prune
// actions. Hooks left nil are treated as Recurse-with-no-change.
type Visitor struct {
	ExprHook func(Expr) (Expr, Action)
	StmtHook func(Stmt) (Stmt, Action)
}

func (v *Visitor) visitExpr(e Expr) (Expr, Action) {
	if v.ExprHook == nil || e == nil {
		return e, Recurse
	}
	return v.ExprHook(e)
}

func (v *Visitor) visitStmt(s Stmt) (Stmt, Action) {
	if v.StmtHook == nil || s == nil {
		return s, Recurse
	}
	return v.StmtHook(s)
}

// RewriteExpr walks e, applying v's ExprHook at every node.
func RewriteExpr(e Expr, v *Visitor) Expr {
	if e == nil {
		return nil
	}
	node, action := v.visitExpr(e)
	switch action {
	case Skip:
		return node
	case SkipPrune:
		return nil
	case RecursePrune:
		rewriteExprChildren(node, v)
		return nil
	default: // Recurse
		return rewriteExprChildren(node, v)
	}
}

// rewriteExprChildren rewrites e's children and reconstructs e only if
// something changed, else returns e unchanged (structural sharing).
func rewriteExprChildren(e Expr, v *Visitor) Expr {
	switch n := e.(type) {
	case *Ident, *IntLit, *BoolLit, *CharLit, *StringLit, *NullLit, *ThisExpr:
		return e // leaves: no expr children
	case *CastExpr:
		x := RewriteExpr(n.X, v)
		if x == n.X {
			return n
		}
		cp := *n
		cp.X = x
		return &cp
	case *UnaryExpr:
		x := RewriteExpr(n.X, v)
		if x == n.X {
			return n
		}
		cp := *n
		cp.X = x
		return &cp
	case *BinaryExpr:
		x := RewriteExpr(n.X, v)
		y := RewriteExpr(n.Y, v)
		if x == n.X && y == n.Y {
			return n
		}
		cp := *n
		cp.X, cp.Y = x, y
		return &cp
	case *InstanceOfExpr:
		x := RewriteExpr(n.X, v)
		if x == n.X {
			return n
		}
		cp := *n
		cp.X = x
		return &cp
	case *FieldAccessExpr:
		if n.X == nil {
			return n
		}
		x := RewriteExpr(n.X, v)
		if x == n.X {
			return n
		}
		cp := *n
		cp.X = x
		return &cp
	case *ArrayAccessExpr:
		arr := RewriteExpr(n.Array, v)
		idx := RewriteExpr(n.Index, v)
		if arr == n.Array && idx == n.Index {
			return n
		}
		cp := *n
		cp.Array, cp.Index = arr, idx
		return &cp
	case *CallExpr:
		changed := false
		recv := n.Receiver
		if recv != nil {
			nr := RewriteExpr(recv, v)
			if nr != recv {
				changed = true
			}
			recv = nr
		}
		args := rewriteExprSlice(n.Args, v, &changed)
		if !changed {
			return n
		}
		cp := *n
		cp.Receiver, cp.Args = recv, args
		return &cp
	case *NewObjectExpr:
		changed := false
		args := rewriteExprSlice(n.Args, v, &changed)
		if !changed {
			return n
		}
		cp := *n
		cp.Args = args
		return &cp
	case *NewArrayExpr:
		size := RewriteExpr(n.Size, v)
		if size == n.Size {
			return n
		}
		cp := *n
		cp.Size = size
		return &cp
	case *AssignExpr:
		lhs := RewriteExpr(n.LHS, v)
		rhs := RewriteExpr(n.RHS, v)
		if lhs == n.LHS && rhs == n.RHS {
			return n
		}
		cp := *n
		cp.LHS, cp.RHS = lhs, rhs
		return &cp
	case *ConstExpr:
		return n // already folded; idempotent terminus
	default:
		return e
	}
}

func rewriteExprSlice(in []Expr, v *Visitor, changed *bool) []Expr {
	out := in
	for i, e := range in {
		ne := RewriteExpr(e, v)
		if ne != e {
			if out == nil || &out[0] == &in[0] {
				out = make([]Expr, len(in))
				copy(out, in)
			}
			out[i] = ne
			*changed = true
		}
	}
	return out
}

// RewriteStmt walks s, applying v's hooks at every node (statements and,
// transitively, every expression reachable from them).
func RewriteStmt(s Stmt, v *Visitor) Stmt {
	if s == nil {
		return nil
	}
	node, action := v.visitStmt(s)
	switch action {
	case Skip:
		return node
	case SkipPrune:
		return nil
	case RecursePrune:
		rewriteStmtChildren(node, v)
		return nil
	default:
		return rewriteStmtChildren(node, v)
	}
}

func rewriteStmtChildren(s Stmt, v *Visitor) Stmt {
	switch n := s.(type) {
	case *Block:
		changed := false
		stmts := n.Stmts
		for i, st := range n.Stmts {
			ns := RewriteStmt(st, v)
			if ns != st {
				if &stmts[0] == &n.Stmts[0] {
					stmts = make([]Stmt, len(n.Stmts))
					copy(stmts, n.Stmts)
				}
				stmts[i] = ns
				changed = true
			}
		}
		if !changed {
			return n
		}
		cp := *n
		cp.Stmts = stmts
		return &cp
	case *LocalVarDecl:
		init := RewriteExpr(n.Init, v)
		if init == n.Init {
			return n
		}
		cp := *n
		cp.Init = init
		return &cp
	case *ExprStmt:
		x := RewriteExpr(n.X, v)
		if x == n.X {
			return n
		}
		cp := *n
		cp.X = x
		return &cp
	case *IfStmt:
		cond := RewriteExpr(n.Cond, v)
		then := RewriteStmt(n.Then, v)
		els := RewriteStmt(n.Else, v)
		if cond == n.Cond && then == n.Then && els == n.Else {
			return n
		}
		cp := *n
		cp.Cond, cp.Then, cp.Else = cond, then, els
		return &cp
	case *WhileStmt:
		cond := RewriteExpr(n.Cond, v)
		body := RewriteStmt(n.Body, v)
		if cond == n.Cond && body == n.Body {
			return n
		}
		cp := *n
		cp.Cond, cp.Body = cond, body
		return &cp
	case *ForStmt:
		init := RewriteStmt(n.Init, v)
		cond := RewriteExpr(n.Cond, v)
		upd := RewriteStmt(n.Update, v)
		body := RewriteStmt(n.Body, v)
		if init == n.Init && cond == n.Cond && upd == n.Update && body == n.Body {
			return n
		}
		cp := *n
		cp.Init, cp.Cond, cp.Update, cp.Body = init, cond, upd, body
		return &cp
	case *ReturnStmt:
		val := RewriteExpr(n.Value, v)
		if val == n.Value {
			return n
		}
		cp := *n
		cp.Value = val
		return &cp
	case *EmptyStmt:
		return n
	default:
		return s
	}
}
