// Package dataflow runs the analysis stage that sits between
// internal/constfold and internal/ir: field forward-reference checking
// and reachability/definite-return checking (spec.md §4.6). It assumes
// prog has already been constant-folded, since recognizing a while/for
// loop's constant condition depends on boolean literals already being
// wrapped in ast.ConstExpr by that stage.
//
// Grounded on original_source/types/dataflow_visitor.{h,cpp}'s
// DataflowVisitor, which dispatches each TypeDecl to a fresh
// FieldOrderVisitor per field and a fresh ReachabilityVisitor per
// method.
package dataflow

import (
	"github.com/joosc/compiler/internal/ast"
	"github.com/joosc/compiler/internal/diagnostics"
	"github.com/joosc/compiler/internal/typeinfo"
	"github.com/joosc/compiler/internal/typesys"
)

// Checker runs every dataflow check over a program.
type Checker struct {
	tim typeinfo.TypeInfoMap
	out *diagnostics.List
}

// New returns a Checker reporting into out.
func New(tim typeinfo.TypeInfoMap, out *diagnostics.List) *Checker {
	return &Checker{tim: tim, out: out}
}

// Check runs the field-order and reachability checks over every type
// in prog. Unlike every earlier stage, it does not rewrite the tree:
// dataflow only reports diagnostics.
func (c *Checker) Check(prog *ast.Program) {
	for _, u := range prog.Units {
		for _, t := range u.Types {
			c.checkType(t)
		}
	}
}

func (c *Checker) checkType(t *ast.TypeDecl) {
	// typeinfo.FieldTable's FieldId allocation order is alphabetical by
	// name (its builder sorts fields to cluster duplicate-name
	// detection), not declaration order, so field-order checking can't
	// compare FieldId values directly for "declared earlier" — it needs
	// each field's position in this type's own declaration-ordered
	// ast.TypeDecl.Fields slice instead.
	fieldIndex := make(map[typesys.FieldId]int, len(t.Fields))
	for i, f := range t.Fields {
		fieldIndex[f.FieldID] = i
	}
	for i, f := range t.Fields {
		checkFieldOrder(c.tim, t.TypeID, fieldIndex, i, f, c.out)
	}

	// The original only runs ReachabilityVisitor over MethodDecl, since
	// its ConstructorDecl is a distinct AST kind it never visits this
	// way; here both methods and constructors share one MethodDecl
	// shape, and unreachable code in a constructor body is exactly as
	// much a bug as in a method's, so both slices are checked the same
	// way (checkReachability's isVoid test already exempts every
	// constructor from MethodNeedsReturnError).
	for _, m := range t.Methods {
		checkReachability(m, c.out)
	}
	for _, ctor := range t.Constructors {
		checkReachability(ctor, c.out)
	}
}
