package typecheck

import (
	"github.com/joosc/compiler/internal/ast"
	"github.com/joosc/compiler/internal/diagnostics"
	"github.com/joosc/compiler/internal/token"
	"github.com/joosc/compiler/internal/typeinfo"
	"github.com/joosc/compiler/internal/typesys"
)

// checkExpr assigns a TypeId to e (and every subexpression of e),
// returning a node carrying that id — a fresh copy if anything
// changed, e unchanged otherwise (ConstExpr already folded is the one
// terminus that never needs visiting again; see ast.RewriteExpr's
// identical idempotence rule).
func (c *Checker) checkExpr(e ast.Expr) ast.Expr {
	switch n := e.(type) {
	case *ast.ConstExpr:
		return n
	case *ast.IntLit:
		cp := *n
		cp.Typ = typesys.Int
		return &cp
	case *ast.BoolLit:
		cp := *n
		cp.Typ = typesys.Bool
		return &cp
	case *ast.CharLit:
		cp := *n
		cp.Typ = typesys.Char
		return &cp
	case *ast.NullLit:
		cp := *n
		cp.Typ = typesys.Null
		return &cp
	case *ast.StringLit:
		cp := *n
		if c.stringType.IsValid() && !c.stringType.IsError() {
			cp.Typ = c.stringType
		} else {
			c.out.Addf(diagnostics.NoStringError, n.Range, "no java.lang.String type available")
			cp.Typ = typesys.ErrorType
		}
		return &cp
	case *ast.ThisExpr:
		cp := *n
		if c.static {
			c.out.Addf(diagnostics.ThisInStaticMemberError, n.Range, "'this' cannot be used in a static context")
			cp.Typ = typesys.ErrorType
		} else {
			cp.Typ = c.curType
		}
		return &cp
	case *ast.Ident:
		return c.checkName(n)
	case *ast.CastExpr:
		return c.checkCast(n)
	case *ast.UnaryExpr:
		return c.checkUnary(n)
	case *ast.BinaryExpr:
		return c.checkBinary(n)
	case *ast.InstanceOfExpr:
		return c.checkInstanceOf(n)
	case *ast.FieldAccessExpr:
		return c.checkFieldAccess(n)
	case *ast.ArrayAccessExpr:
		return c.checkArrayAccess(n)
	case *ast.CallExpr:
		return c.checkCall(n)
	case *ast.NewObjectExpr:
		return c.checkNewObject(n)
	case *ast.NewArrayExpr:
		return c.checkNewArray(n)
	case *ast.AssignExpr:
		return c.checkAssign(n)
	default:
		return e
	}
}

// checkName resolves a bare identifier used as a value: a
// local/parameter, or (failing that) an implicit-this field of the
// enclosing type or one of its ancestors — spec.md §4.4's staged name
// resolution, stages (a) and (b). A bare name can never denote a type
// or package on its own (those only appear as the left side of a
// dotted access, handled by checkFieldAccess/checkCall instead).
func (c *Checker) checkName(n *ast.Ident) ast.Expr {
	if c.sym != nil {
		if tid, vid, ok := c.sym.Resolve(n.Name, n.NameRange, c.out); ok {
			cp := *n
			cp.Typ = tid
			cp.LocalVarID = vid
			return &cp
		}
	}
	if !c.curType.IsValid() || c.curType.IsError() {
		cp := *n
		cp.Typ = typesys.ErrorType
		return &cp
	}
	ctx := typeinfo.Instance
	if c.static {
		ctx = typeinfo.Static
	}
	fid := c.resolveField(c.curType, ctx, n.Name, n.NameRange)
	fa := &ast.FieldAccessExpr{Name: n.Name, NameRange: n.NameRange, Range: n.NameRange, FieldID: fid}
	if finfo, ok := c.tim.LookupFieldInfo(fid); ok {
		fa.Typ = finfo.FieldType
		return fa
	}
	fa.Typ = typesys.ErrorType
	return fa
}

func (c *Checker) checkCast(n *ast.CastExpr) ast.Expr {
	x := c.checkExpr(n.X)
	cp := *n
	cp.X = x
	lhs, rhs := n.Type.Resolved, x.TypeID()
	if (lhs.IsPrimitive() && rhs.IsReference()) || (lhs.IsReference() && rhs.IsPrimitive()) {
		c.out.Addf(diagnostics.IncompatibleCastError, n.Range, "cannot cast between primitive and reference types")
		cp.Typ = typesys.ErrorType
		return &cp
	}
	if !c.isCastable(lhs, rhs) {
		c.out.Addf(diagnostics.IncompatibleCastError, n.Range, "incompatible types in cast")
		cp.Typ = typesys.ErrorType
		return &cp
	}
	cp.Typ = lhs
	return &cp
}

func (c *Checker) checkUnary(n *ast.UnaryExpr) ast.Expr {
	x := c.checkExpr(n.X)
	cp := *n
	cp.X = x
	switch n.Op {
	case token.MINUS:
		if !isNumeric(x.TypeID()) {
			c.out.Addf(diagnostics.UnaryNonNumericError, n.Range, "unary '-' requires a numeric operand")
			cp.Typ = typesys.ErrorType
			return &cp
		}
		cp.Typ = typesys.Int
	case token.NOT:
		if x.TypeID() != typesys.Bool {
			c.out.Addf(diagnostics.UnaryNonBoolError, n.Range, "unary '!' requires a boolean operand")
			cp.Typ = typesys.ErrorType
			return &cp
		}
		cp.Typ = typesys.Bool
	}
	return &cp
}

func (c *Checker) checkBinary(n *ast.BinaryExpr) ast.Expr {
	x := c.checkExpr(n.X)
	y := c.checkExpr(n.Y)
	cp := *n
	cp.X, cp.Y = x, y
	xt, yt := x.TypeID(), y.TypeID()

	switch n.Op {
	case token.AND, token.OR, token.AND_AND, token.OR_OR, token.XOR:
		if xt != typesys.Bool || yt != typesys.Bool {
			c.out.Addf(diagnostics.TypeMismatchError, n.Range, "boolean operator requires boolean operands")
			cp.Typ = typesys.ErrorType
			return &cp
		}
		cp.Typ = typesys.Bool
	case token.LT, token.LEQ, token.GT, token.GEQ:
		if !isNumeric(xt) || !isNumeric(yt) {
			c.out.Addf(diagnostics.TypeMismatchError, n.Range, "relational operator requires numeric operands")
			cp.Typ = typesys.ErrorType
			return &cp
		}
		cp.Typ = typesys.Bool
	case token.EQ, token.NEQ:
		if !c.isComparable(xt, yt) {
			c.out.Addf(diagnostics.IncomparableTypeError, n.Range, "these types cannot be compared")
			cp.Typ = typesys.ErrorType
			return &cp
		}
		cp.Typ = typesys.Bool
	case token.PLUS:
		if xt == c.stringType || yt == c.stringType {
			cp.Typ = c.stringType
			return &cp
		}
		if !isNumeric(xt) || !isNumeric(yt) {
			c.out.Addf(diagnostics.TypeMismatchError, n.Range, "'+' requires numeric operands or a string operand")
			cp.Typ = typesys.ErrorType
			return &cp
		}
		cp.Typ = typesys.Int
	default: // MINUS, STAR, SLASH, PERCENT
		if !isNumeric(xt) || !isNumeric(yt) {
			c.out.Addf(diagnostics.TypeMismatchError, n.Range, "arithmetic operator requires numeric operands")
			cp.Typ = typesys.ErrorType
			return &cp
		}
		cp.Typ = typesys.Int
	}
	return &cp
}

func (c *Checker) checkInstanceOf(n *ast.InstanceOfExpr) ast.Expr {
	x := c.checkExpr(n.X)
	cp := *n
	cp.X = x
	xt, lt := x.TypeID(), n.Type.Resolved
	if xt.IsPrimitive() || lt.IsPrimitive() {
		c.out.Addf(diagnostics.InstanceOfPrimitiveError, n.Range, "'instanceof' cannot be applied to a primitive type")
		cp.Typ = typesys.ErrorType
		return &cp
	}
	if !c.isAssignable(lt, xt) && !c.isAssignable(xt, lt) {
		c.out.Addf(diagnostics.IncompatibleInstanceOfError, n.Range, "incompatible types in 'instanceof'")
		cp.Typ = typesys.ErrorType
		return &cp
	}
	cp.Typ = typesys.Bool
	return &cp
}

func (c *Checker) checkArrayAccess(n *ast.ArrayAccessExpr) ast.Expr {
	arr := c.checkExpr(n.Array)
	idx := c.checkExpr(n.Index)
	cp := *n
	cp.Array, cp.Index = arr, idx

	at := arr.TypeID()
	if !at.IsArray() {
		c.out.Addf(diagnostics.IndexNonArrayError, n.Range, "cannot index a non-array type")
		cp.Typ = typesys.ErrorType
		return &cp
	}
	if !isNumeric(idx.TypeID()) {
		c.out.Addf(diagnostics.TypeMismatchError, idx.Pos(), "array index must be numeric")
		cp.Typ = typesys.ErrorType
		return &cp
	}
	cp.Typ = at.Elem()
	return &cp
}

func (c *Checker) checkNewArray(n *ast.NewArrayExpr) ast.Expr {
	cp := *n
	if n.Size != nil {
		size := c.checkExpr(n.Size)
		cp.Size = size
		if !isNumeric(size.TypeID()) {
			c.out.Addf(diagnostics.TypeMismatchError, size.Pos(), "array size must be numeric")
		}
	}
	elem := n.ElemType.Resolved
	if elem.IsVoid() {
		c.out.Addf(diagnostics.InvalidVoidTypeError, n.Range, "cannot create an array of void")
		cp.Typ = typesys.ErrorType
		return &cp
	}
	cp.Typ = elem.ArrayOf()
	return &cp
}

func (c *Checker) checkNewObject(n *ast.NewObjectExpr) ast.Expr {
	cp := *n
	args := make([]ast.Expr, len(n.Args))
	params := make([]typesys.TypeId, len(n.Args))
	for i, a := range n.Args {
		args[i] = c.checkExpr(a)
		params[i] = args[i].TypeID()
	}
	cp.Args = args

	tid := n.Type.Resolved
	if !tid.IsReference() || tid.IsArray() {
		c.out.Addf(diagnostics.NewNonReferenceTypeError, n.Range, "cannot instantiate a non-reference type")
		cp.Typ = typesys.ErrorType
		return &cp
	}
	ctorName := ""
	if info, ok := c.tim.LookupTypeInfo(tid); ok {
		ctorName = info.Name
	}
	cp.CtorMethodID = c.resolveCall(tid, typeinfo.Constructor, ctorName, params, n.Range)
	cp.Typ = tid
	return &cp
}

// checkAssign types an assignment expression (spec.md §4.4; left as a
// TODO in the original). The left-hand-side shape (identifier, field
// access, or array access) is already validated by
// internal/weeder.checkAssignmentTargets, so only the value types need
// checking here.
func (c *Checker) checkAssign(n *ast.AssignExpr) ast.Expr {
	lhs := c.checkExpr(n.LHS)
	rhs := c.checkExpr(n.RHS)
	cp := *n
	cp.LHS, cp.RHS = lhs, rhs
	if !c.isAssignable(lhs.TypeID(), rhs.TypeID()) {
		c.out.Addf(diagnostics.UnassignableError, n.Range, "cannot assign this value to this target")
		cp.Typ = typesys.ErrorType
		return &cp
	}
	cp.Typ = lhs.TypeID()
	return &cp
}
