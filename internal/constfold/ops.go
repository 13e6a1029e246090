package constfold

import (
	"strconv"

	"github.com/joosc/compiler/internal/ast"
	"github.com/joosc/compiler/internal/token"
	"github.com/joosc/compiler/internal/typesys"
)

// asConst unwraps e into the ConstExpr wrapping it and the literal
// node inside, or reports ok=false if e didn't fold (a non-constant
// operand anywhere blocks folding the parent, matching the original's
// "either lhs_const or rhs_const is nullptr -> return exprptr" rule).
func asConst(e ast.Expr) (*ast.ConstExpr, bool) {
	c, ok := e.(*ast.ConstExpr)
	return c, ok
}

func intValue(lit ast.Expr) (int32, bool) {
	switch n := lit.(type) {
	case *ast.IntLit:
		return n.Value, true
	case *ast.CharLit:
		return int32(n.Value), true
	default:
		return 0, false
	}
}

func boolValue(lit ast.Expr) (bool, bool) {
	n, ok := lit.(*ast.BoolLit)
	if !ok {
		return false, false
	}
	return n.Value, true
}

func stringValue(lit ast.Expr) (string, bool) {
	n, ok := lit.(*ast.StringLit)
	if !ok {
		return "", false
	}
	return n.Value, true
}

// stringify renders a folded literal's value as Java/Joos would in a
// string concatenation: the digits of a numeric literal, "true"/
// "false" for a boolean, the one character of a char literal, or the
// string itself. Grounded on constant_folding.cpp's Stringify, with
// its "TODO: Char" filled in since every other primitive already has a
// case.
func stringify(lit ast.Expr) string {
	switch n := lit.(type) {
	case *ast.IntLit:
		return strconv.FormatInt(int64(n.Value), 10)
	case *ast.CharLit:
		return string(rune(n.Value))
	case *ast.BoolLit:
		if n.Value {
			return "true"
		}
		return "false"
	case *ast.StringLit:
		return n.Value
	case *ast.NullLit:
		return "null"
	default:
		return ""
	}
}

func (f *Folder) isStringConst(c *ast.ConstExpr) bool {
	return c.TypeID() == f.stringType && f.stringType.IsValid() && !f.stringType.IsError()
}

func (f *Folder) foldUnary(n *ast.UnaryExpr) ast.Expr {
	x := ast.RewriteExpr(n.X, f.v)
	cp := *n
	cp.X = x

	xc, ok := asConst(x)
	if !ok {
		return &cp
	}

	switch n.Op {
	case token.MINUS:
		v, ok := intValue(xc.Literal)
		if !ok {
			return &cp
		}
		lit := &ast.IntLit{Value: -v, Range: n.Range}
		lit.Typ = typesys.Int
		return constOf(lit, &cp, typesys.Int)
	case token.NOT:
		v, ok := boolValue(xc.Literal)
		if !ok {
			return &cp
		}
		lit := &ast.BoolLit{Value: !v, Range: n.Range}
		lit.Typ = typesys.Bool
		return constOf(lit, &cp, typesys.Bool)
	default:
		return &cp
	}
}

func (f *Folder) foldBinary(n *ast.BinaryExpr) ast.Expr {
	x := ast.RewriteExpr(n.X, f.v)
	y := ast.RewriteExpr(n.Y, f.v)
	cp := *n
	cp.X, cp.Y = x, y

	xc, xok := asConst(x)
	yc, yok := asConst(y)
	if !xok || !yok {
		return &cp
	}

	switch n.Op {
	case token.AND, token.OR, token.AND_AND, token.OR_OR, token.XOR:
		return f.foldBoolBinary(n, &cp, xc, yc)
	case token.PLUS:
		if f.isStringConst(xc) || f.isStringConst(yc) {
			return f.foldStringConcat(n, &cp, xc, yc)
		}
		return f.foldIntArith(n, &cp, xc, yc)
	case token.MINUS, token.STAR, token.SLASH, token.PERCENT:
		return f.foldIntArith(n, &cp, xc, yc)
	case token.LT, token.LEQ, token.GT, token.GEQ:
		return f.foldRelational(n, &cp, xc, yc)
	case token.EQ, token.NEQ:
		if f.isStringConst(xc) && f.isStringConst(yc) {
			return f.foldStringEquality(n, &cp, xc, yc)
		}
		return f.foldRelational(n, &cp, xc, yc)
	default:
		return &cp
	}
}

func (f *Folder) foldBoolBinary(n *ast.BinaryExpr, orig ast.Expr, xc, yc *ast.ConstExpr) ast.Expr {
	xv, xok := boolValue(xc.Literal)
	yv, yok := boolValue(yc.Literal)
	if !xok || !yok {
		return orig
	}
	var result bool
	switch n.Op {
	case token.OR, token.OR_OR:
		result = xv || yv
	case token.AND, token.AND_AND:
		result = xv && yv
	case token.XOR:
		result = xv != yv
	}
	lit := &ast.BoolLit{Value: result, Range: n.Range}
	lit.Typ = typesys.Bool
	return constOf(lit, orig, typesys.Bool)
}

func (f *Folder) foldIntArith(n *ast.BinaryExpr, orig ast.Expr, xc, yc *ast.ConstExpr) ast.Expr {
	xv, xok := intValue(xc.Literal)
	yv, yok := intValue(yc.Literal)
	if !xok || !yok {
		return orig
	}
	var result int32
	switch n.Op {
	case token.PLUS:
		result = xv + yv
	case token.MINUS:
		result = xv - yv
	case token.STAR:
		result = xv * yv
	case token.SLASH:
		if yv == 0 {
			return orig // never fold a division by zero
		}
		result = xv / yv
	case token.PERCENT:
		if yv == 0 {
			return orig
		}
		result = xv % yv
	}
	lit := &ast.IntLit{Value: result, Range: n.Range}
	lit.Typ = typesys.Int
	return constOf(lit, orig, typesys.Int)
}

func (f *Folder) foldRelational(n *ast.BinaryExpr, orig ast.Expr, xc, yc *ast.ConstExpr) ast.Expr {
	xv, xok := intValue(xc.Literal)
	yv, yok := intValue(yc.Literal)
	if !xok || !yok {
		return orig
	}
	var result bool
	switch n.Op {
	case token.LT:
		result = xv < yv
	case token.LEQ:
		result = xv <= yv
	case token.GT:
		result = xv > yv
	case token.GEQ:
		result = xv >= yv
	case token.EQ:
		result = xv == yv
	case token.NEQ:
		result = xv != yv
	}
	lit := &ast.BoolLit{Value: result, Range: n.Range}
	lit.Typ = typesys.Bool
	return constOf(lit, orig, typesys.Bool)
}

func (f *Folder) foldStringEquality(n *ast.BinaryExpr, orig ast.Expr, xc, yc *ast.ConstExpr) ast.Expr {
	xv, xok := stringValue(xc.Literal)
	yv, yok := stringValue(yc.Literal)
	if !xok || !yok {
		return orig
	}
	eq := xv == yv
	result := eq == (n.Op == token.EQ)
	lit := &ast.BoolLit{Value: result, Range: n.Range}
	lit.Typ = typesys.Bool
	return constOf(lit, orig, typesys.Bool)
}

func (f *Folder) foldStringConcat(n *ast.BinaryExpr, orig ast.Expr, xc, yc *ast.ConstExpr) ast.Expr {
	newStr := stringify(xc.Literal) + stringify(yc.Literal)
	f.strings.Intern(newStr)
	lit := &ast.StringLit{Value: newStr, Range: n.Range}
	lit.Typ = f.stringType
	return constOf(lit, orig, f.stringType)
}

// foldCast handles a constant's cast to another primitive type (8/16/
// 32-bit masking per spec.md §4.5) or, for the identity cast, simply
// propagates the constant — both grounded on constant_folding.cpp's
// CastExpr rewrite. A cast to String (only reachable today through an
// explicit upcast of a constant reference, which this language never
// actually produces) is intentionally left unfolded, since there is no
// way to construct one from valid Joos source.
func (f *Folder) foldCast(n *ast.CastExpr) ast.Expr {
	x := ast.RewriteExpr(n.X, f.v)
	cp := *n
	cp.X = x

	xc, ok := asConst(x)
	if !ok {
		return &cp
	}

	castType := n.Type.Resolved
	rhsType := x.TypeID()
	if castType == rhsType {
		return constOf(xc.Literal, &cp, castType)
	}

	if !castType.IsPrimitive() {
		return &cp
	}

	v, ok := intValue(xc.Literal)
	if !ok {
		return &cp
	}
	u := uint32(v)
	switch castType.Base {
	case typesys.IntBase:
		// no masking
	case typesys.ShortBase:
		u &= 0x0000FFFF
	case typesys.ByteBase, typesys.CharBase:
		u &= 0x000000FF
	default:
		return &cp
	}
	lit := &ast.IntLit{Value: int32(u), Range: n.Range}
	lit.Typ = castType
	return constOf(lit, &cp, castType)
}
