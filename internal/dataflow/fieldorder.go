package dataflow

import (
	"github.com/joosc/compiler/internal/ast"
	"github.com/joosc/compiler/internal/diagnostics"
	"github.com/joosc/compiler/internal/typeinfo"
	"github.com/joosc/compiler/internal/typesys"
)

// checkFieldOrder walks field's initializer looking for a forward
// reference, grounded on dataflow_visitor.cpp's FieldOrderVisitor: an
// implicit-this field access (ast.FieldAccessExpr with X == nil) that
// names a non-static field declared directly on curType, at or after
// field's own declaration-order position, is a use-before-declared
// FieldOrderError. A field reached through an explicit receiver, a
// static field, or an inherited field is exempt, matching spec.md
// §4.6.1.
func checkFieldOrder(tim typeinfo.TypeInfoMap, curType typesys.TypeId, fieldIndex map[typesys.FieldId]int, curIdx int, field *ast.FieldDecl, out *diagnostics.List) {
	if field.Init == nil {
		return
	}
	w := &fieldOrderWalk{tim: tim, curType: curType, fieldIndex: fieldIndex, curIdx: curIdx, out: out}
	ast.RewriteExpr(field.Init, w.visitor())
}

type fieldOrderWalk struct {
	tim        typeinfo.TypeInfoMap
	curType    typesys.TypeId
	fieldIndex map[typesys.FieldId]int
	curIdx     int
	out        *diagnostics.List
}

// visitor builds the walk's hook. The AssignExpr case reproduces the
// original's "immediate LHS of assignment is exempt" rule (spec.md
// §4.6.1): it visits the assignment's RHS and, if the LHS is itself a
// field deref, that deref's own base (e.g. the `a` in `a.b = ...`) —
// but never the deref node for `b` itself — then returns ast.Skip so
// the generic traversal doesn't also visit the exempted LHS deref.
func (w *fieldOrderWalk) visitor() *ast.Visitor {
	var v *ast.Visitor
	v = &ast.Visitor{
		ExprHook: func(e ast.Expr) (ast.Expr, ast.Action) {
			switch n := e.(type) {
			case *ast.FieldAccessExpr:
				w.checkDeref(n)
				return n, ast.Recurse
			case *ast.AssignExpr:
				if deref, ok := n.LHS.(*ast.FieldAccessExpr); ok {
					if deref.X != nil {
						ast.RewriteExpr(deref.X, v)
					}
					ast.RewriteExpr(n.RHS, v)
					return n, ast.Skip
				}
				return n, ast.Recurse
			default:
				return e, ast.Recurse
			}
		},
	}
	return v
}

func (w *fieldOrderWalk) checkDeref(n *ast.FieldAccessExpr) {
	if n.X != nil {
		return // reached via an explicit receiver: any order allowed
	}
	info, ok := w.tim.LookupTypeInfo(w.curType)
	if !ok {
		return
	}
	finfo, ok := info.Fields.LookupField(n.FieldID)
	if !ok {
		return
	}
	if finfo.ClassType != w.curType {
		return // inherited field: any order allowed
	}
	if finfo.Modifiers.IsStatic() {
		return
	}
	declIdx, ok := w.fieldIndex[n.FieldID]
	if !ok || declIdx < w.curIdx {
		return
	}
	err := diagnostics.New(diagnostics.FieldOrderError, n.Range,
		"field used before its declaration completed").WithSecondary(finfo.Pos)
	w.out.Add(err)
}
