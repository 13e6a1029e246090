package ir

import (
	"fmt"

	"github.com/joosc/compiler/internal/ast"
	"github.com/joosc/compiler/internal/token"
	"github.com/joosc/compiler/internal/typesys"
)

// genExpr lowers e, returning the Mem holding its value. Every case
// mirrors one ExprVisitor override in ir_generator.cpp; the switch
// order follows internal/ast/exprs.go's declaration order.
func (mg *methodGen) genExpr(e ast.Expr) Mem {
	switch n := e.(type) {
	case *ast.ConstExpr:
		return mg.genConstLiteral(n.Literal)
	case *ast.IntLit:
		return mg.genConstLiteral(n)
	case *ast.BoolLit:
		return mg.genConstLiteral(n)
	case *ast.CharLit:
		return mg.genConstLiteral(n)
	case *ast.StringLit:
		return mg.genConstLiteral(n)
	case *ast.NullLit:
		return mg.genConstLiteral(n)
	case *ast.ThisExpr:
		return mg.thisMem
	case *ast.Ident:
		mem, ok := mg.locals[n.LocalVarID]
		if !ok {
			panic(fmt.Sprintf("ir: no local allocated for %q", n.Name))
		}
		return mem
	case *ast.CastExpr:
		return mg.genCast(n)
	case *ast.UnaryExpr:
		return mg.genUnary(n)
	case *ast.BinaryExpr:
		return mg.genBinary(n)
	case *ast.InstanceOfExpr:
		return mg.genInstanceOf(n)
	case *ast.FieldAccessExpr:
		return mg.genFieldRead(n)
	case *ast.ArrayAccessExpr:
		return mg.genArrayRead(n)
	case *ast.CallExpr:
		return mg.genCall(n)
	case *ast.NewObjectExpr:
		return mg.genNewObject(n)
	case *ast.NewArrayExpr:
		return mg.genNewArray(n)
	case *ast.AssignExpr:
		return mg.genAssign(n)
	default:
		panic(fmt.Sprintf("ir: unhandled expression %T", e))
	}
}

func (mg *methodGen) genConstLiteral(lit ast.Expr) Mem {
	switch n := lit.(type) {
	case *ast.IntLit:
		dst := mg.sb.AllocTemp(SizeInt)
		mg.sb.ConstNumeric(dst, n.Value)
		return dst
	case *ast.BoolLit:
		dst := mg.sb.AllocTemp(SizeBool)
		mg.sb.ConstBool(dst, n.Value)
		return dst
	case *ast.CharLit:
		dst := mg.sb.AllocTemp(SizeChar)
		mg.sb.ConstNumeric(dst, int32(n.Value))
		return dst
	case *ast.StringLit:
		dst := mg.sb.AllocTemp(SizePtr)
		id, ok := mg.g.strings.Lookup(n.Value)
		if !ok {
			id = mg.g.strings.Intern(n.Value)
		}
		mg.sb.ConstString(dst, id)
		return dst
	case *ast.NullLit:
		dst := mg.sb.AllocTemp(SizePtr)
		mg.sb.ConstNull(dst)
		return dst
	default:
		panic(fmt.Sprintf("ir: unhandled literal %T", lit))
	}
}

func (mg *methodGen) genUnary(n *ast.UnaryExpr) Mem {
	x := mg.genExpr(n.X)
	switch n.Op {
	case token.MINUS:
		dst := mg.sb.AllocTemp(SizeClassFrom(n.TypeID()))
		mg.sb.Neg(dst, x)
		return dst
	case token.NOT:
		dst := mg.sb.AllocTemp(SizeBool)
		mg.sb.Not(dst, x)
		return dst
	default:
		panic(fmt.Sprintf("ir: unhandled unary operator %v", n.Op))
	}
}

// genBinary lowers every BinaryExpr except the short-circuit operators,
// which need their own control flow (genShortCircuit), and '+' between
// non-numeric operands, which is string concatenation
// (genStringConcat) rather than a single arithmetic opcode.
func (mg *methodGen) genBinary(n *ast.BinaryExpr) Mem {
	switch n.Op {
	case token.AND_AND:
		return mg.genShortCircuit(n, true)
	case token.OR_OR:
		return mg.genShortCircuit(n, false)
	case token.PLUS:
		if n.TypeID() == mg.g.rt.StringType {
			return mg.genStringConcat(n)
		}
	}

	x := mg.genExpr(n.X)
	y := mg.genExpr(n.Y)
	dst := mg.sb.AllocTemp(SizeClassFrom(n.TypeID()))
	switch n.Op {
	case token.PLUS:
		mg.sb.Add(dst, x, y)
	case token.MINUS:
		mg.sb.Sub(dst, x, y)
	case token.STAR:
		mg.sb.Mul(dst, x, y)
	case token.SLASH:
		mg.sb.Div(dst, x, y, n.Range)
	case token.PERCENT:
		mg.sb.Mod(dst, x, y, n.Range)
	case token.LT:
		mg.sb.Lt(dst, x, y)
	case token.LEQ:
		mg.sb.Leq(dst, x, y)
	case token.GT:
		mg.sb.Gt(dst, x, y)
	case token.GEQ:
		mg.sb.Geq(dst, x, y)
	case token.EQ:
		mg.sb.Eq(dst, x, y)
	case token.NEQ:
		mg.sb.Neq(dst, x, y)
	case token.AND:
		mg.sb.And(dst, x, y)
	case token.OR:
		mg.sb.Or(dst, x, y)
	case token.XOR:
		mg.sb.Xor(dst, x, y)
	default:
		panic(fmt.Sprintf("ir: unhandled binary operator %v", n.Op))
	}
	return dst
}

// genShortCircuit lowers && and ||: a local holds the left operand's
// value, and a jump skips evaluating the right operand entirely when
// it can't change the result (spec.md §4.7's "allocate a local for the
// result ... branch past rhs on the short-circuit value").
func (mg *methodGen) genShortCircuit(n *ast.BinaryExpr, isAnd bool) Mem {
	result := mg.sb.AllocLocal(SizeBool)
	x := mg.genExpr(n.X)
	mg.sb.Mov(result, x)

	end := mg.sb.AllocLabel()
	if isAnd {
		notX := mg.sb.AllocTemp(SizeBool)
		mg.sb.Not(notX, result)
		mg.sb.JmpIf(end, notX)
	} else {
		mg.sb.JmpIf(end, result)
	}

	y := mg.genExpr(n.Y)
	mg.sb.Mov(result, y)
	mg.sb.EmitLabel(end)
	return result
}

// genStringConcat lowers a '+' whose result is String: each operand is
// wrapped to a String value first (a non-String operand is stringified
// via String.valueOf for a primitive or StringOps.Str for a reference),
// then joined with String.concat (spec.md §4.7).
func (mg *methodGen) genStringConcat(n *ast.BinaryExpr) Mem {
	xStr := mg.wrapString(mg.genExpr(n.X), n.X.TypeID())
	yStr := mg.wrapString(mg.genExpr(n.Y), n.Y.TypeID())
	dst := mg.sb.AllocTemp(SizePtr)
	mg.sb.DynamicCall(dst, xStr, mg.g.rt.StringConcat, []Mem{yStr}, n.Range)
	return dst
}

func (mg *methodGen) wrapString(mem Mem, tid typesys.TypeId) Mem {
	rt := mg.g.rt
	if tid == rt.StringType {
		return mem
	}
	if tid.IsPrimitive() {
		mid, ok := rt.StringValueOf[tid.Base]
		if !ok {
			panic("ir: no String.valueOf overload for primitive")
		}
		dst := mg.sb.AllocTemp(SizePtr)
		mg.sb.StaticCall(dst, rt.StringType.Base, mid, []Mem{mem}, zeroPos)
		return dst
	}
	dst := mg.sb.AllocTemp(SizePtr)
	mg.sb.StaticCall(dst, rt.StringOpsType.Base, rt.StringOpsStr, []Mem{mem}, zeroPos)
	return dst
}

// staticTypeInfo reads tid's own static TypeInfo slot, the value every
// instanceof/cast check compares the operand's runtime TypeInfo
// against.
func (mg *methodGen) staticTypeInfo(tid typesys.TypeId) Mem {
	dst := mg.sb.AllocTemp(SizePtr)
	mg.sb.FieldDeref(dst, mg.sb.AllocDummy(), mg.g.typeBaseFor(tid), typesys.StaticTypeInfoFieldID)
	return dst
}

func (mg *methodGen) genInstanceOf(n *ast.InstanceOfExpr) Mem {
	x := mg.genExpr(n.X)
	result := mg.sb.AllocLocal(SizeBool)

	nullConst := mg.sb.AllocTemp(SizePtr)
	mg.sb.ConstNull(nullConst)
	isNull := mg.sb.AllocTemp(SizeBool)
	mg.sb.Eq(isNull, x, nullConst)

	isNullLabel := mg.sb.AllocLabel()
	end := mg.sb.AllocLabel()
	mg.sb.JmpIf(isNullLabel, isNull)

	xInfo := mg.sb.AllocTemp(SizePtr)
	mg.sb.GetTypeInfo(xInfo, x)
	targetInfo := mg.staticTypeInfo(n.Type.Resolved)
	mg.sb.StaticCall(result, mg.g.rt.TypeInfoType.Base, mg.g.rt.TypeInfoIsInst, []Mem{xInfo, targetInfo}, n.Range)
	mg.sb.Jmp(end)

	mg.sb.EmitLabel(isNullLabel)
	mg.sb.ConstBool(result, false)

	mg.sb.EmitLabel(end)
	return result
}

// genCast lowers a primitive conversion to a sign/zero-extend or
// truncate by relative width, and a reference conversion to a
// check_cast guarding a same-representation move (spec.md §4.7).
func (mg *methodGen) genCast(n *ast.CastExpr) Mem {
	x := mg.genExpr(n.X)
	target := n.Type.Resolved

	if target.IsPrimitive() {
		dst := mg.sb.AllocTemp(SizeClassFrom(target))
		src := n.X.TypeID()
		switch {
		case target == src:
			mg.sb.Mov(dst, x)
		case primitiveWidth(target.Base) > primitiveWidth(src.Base):
			if isSignedPrimitive(src.Base) {
				mg.sb.SignExtend(dst, x)
			} else {
				mg.sb.ZeroExtend(dst, x)
			}
		default:
			mg.sb.Truncate(dst, x)
		}
		return dst
	}

	dst := mg.sb.AllocTemp(SizePtr)
	mg.sb.Mov(dst, x)
	mg.sb.CheckCast(dst, mg.g.typeBaseFor(target), n.Range)
	return dst
}

// primitiveWidth orders Joos's integral primitives by bit width; char
// and short share a width but differ in signedness, so a cast between
// them is a (no-op-at-the-bit-level) truncate rather than an extend.
func primitiveWidth(base int32) int {
	switch base {
	case typesys.ByteBase:
		return 1
	case typesys.ShortBase, typesys.CharBase:
		return 2
	default:
		return 4
	}
}

func isSignedPrimitive(base int32) bool {
	return base != typesys.CharBase
}

func (mg *methodGen) genFieldRead(n *ast.FieldAccessExpr) Mem {
	obj, typeBase, fid := mg.resolveField(n.X, n.FieldID)
	dst := mg.sb.AllocTemp(SizeClassFrom(n.TypeID()))
	mg.sb.FieldDeref(dst, obj, typeBase, fid)
	return dst
}

// resolveField returns the obj Mem, type_base, and FieldId a
// FieldAccessExpr's field_deref/field_addr should use: obj is a dummy
// handle for a static field (field_addr/field_deref's opcode shape
// always takes one, used or not), this for an implicit-this instance
// field, or x's own value for an explicit receiver.
func (mg *methodGen) resolveField(x ast.Expr, fid typesys.FieldId) (obj Mem, typeBase int32, id typesys.FieldId) {
	finfo, ok := mg.g.tim.LookupFieldInfo(fid)
	if !ok {
		panic("ir: no FieldInfo for resolved field id")
	}
	typeBase = mg.g.typeBaseFor(finfo.ClassType)
	if finfo.Modifiers.IsStatic() {
		return mg.sb.AllocDummy(), typeBase, fid
	}
	if x != nil {
		return mg.genExpr(x), typeBase, fid
	}
	return mg.thisMem, typeBase, fid
}

func (mg *methodGen) genArrayRead(n *ast.ArrayAccessExpr) Mem {
	arr := mg.genExpr(n.Array)
	idx := mg.genExpr(n.Index)
	dst := mg.sb.AllocTemp(SizeClassFrom(n.TypeID()))
	mg.sb.ArrayDeref(dst, arr, idx, SizeClassFrom(n.TypeID()), n.Range)
	return dst
}

// genCall lowers a method call. Arguments are evaluated before the
// receiver (matching internal/typecheck.checkCall's own evaluation
// order, which types every argument before resolving the receiver's
// shape); a static method call carries no this_mem and dispatches by
// its declaring type's type_base, an instance call always carries
// this_mem and dispatches dynamically, matching
// internal/typeinfo.MethodInfo.Modifiers — not the syntactic call
// shape, which a hidden static method called through an instance
// expression could otherwise make misleading.
func (mg *methodGen) genCall(n *ast.CallExpr) Mem {
	minfo, ok := mg.g.tim.LookupMethodInfo(n.MethodID)
	if !ok {
		panic("ir: no MethodInfo for resolved method id")
	}

	args := make([]Mem, len(n.Args))
	for i, a := range n.Args {
		args[i] = mg.genExpr(a)
	}

	var dst Mem
	if minfo.ReturnType.IsVoid() {
		dst = mg.sb.AllocDummy()
	} else {
		dst = mg.sb.AllocTemp(SizeClassFrom(minfo.ReturnType))
	}

	if minfo.Modifiers.IsStatic() {
		mg.sb.StaticCall(dst, mg.g.typeBaseFor(minfo.ClassType), n.MethodID, args, n.Range)
		return dst
	}

	var this Mem
	if n.Receiver != nil {
		this = mg.genExpr(n.Receiver)
	} else {
		this = mg.thisMem
	}
	mg.sb.DynamicCall(dst, this, n.MethodID, args, n.Range)
	return dst
}

func (mg *methodGen) genNewObject(n *ast.NewObjectExpr) Mem {
	args := make([]Mem, len(n.Args))
	for i, a := range n.Args {
		args[i] = mg.genExpr(a)
	}
	typeBase := mg.g.typeBaseFor(n.Type.Resolved)
	obj := mg.sb.AllocHeap(typeBase)
	callArgs := append([]Mem{obj}, args...)
	mg.sb.StaticCall(mg.sb.AllocDummy(), typeBase, n.CtorMethodID, callArgs, n.Range)
	return obj
}

func (mg *methodGen) genNewArray(n *ast.NewArrayExpr) Mem {
	size := mg.genExpr(n.Size)
	elem := n.ElemType.Resolved
	return mg.sb.AllocArray(SizeClassFrom(elem), mg.g.typeBaseFor(elem), size, n.Range)
}

// genAssign lowers an assignment, evaluating the left-hand side's
// addressing sub-expressions (a field access's receiver, an array
// access's array and index) before the right-hand value, and returns
// the assigned value itself — an assignment is an expression in Joos,
// not just a statement.
func (mg *methodGen) genAssign(n *ast.AssignExpr) Mem {
	switch lhs := n.LHS.(type) {
	case *ast.Ident:
		val := mg.genExpr(n.RHS)
		dst, ok := mg.locals[lhs.LocalVarID]
		if !ok {
			panic(fmt.Sprintf("ir: no local allocated for %q", lhs.Name))
		}
		mg.sb.Mov(dst, val)
		return val

	case *ast.FieldAccessExpr:
		obj, typeBase, fid := mg.resolveField(lhs.X, lhs.FieldID)
		val := mg.genExpr(n.RHS)
		addr := mg.sb.AllocTemp(SizePtr)
		mg.sb.FieldAddr(addr, obj, typeBase, fid)
		mg.sb.MovToAddr(addr, val)
		return val

	case *ast.ArrayAccessExpr:
		arr := mg.genExpr(lhs.Array)
		idx := mg.genExpr(lhs.Index)
		val := mg.genExpr(n.RHS)
		elemType := lhs.TypeID()
		if elemType.IsReference() {
			mg.sb.CheckArrayStore(arr, val, n.Range)
		}
		addr := mg.sb.AllocTemp(SizePtr)
		mg.sb.ArrayAddr(addr, arr, idx, SizeClassFrom(elemType), n.Range)
		mg.sb.MovToAddr(addr, val)
		return val

	default:
		panic(fmt.Sprintf("ir: unhandled assignment target %T", n.LHS))
	}
}
