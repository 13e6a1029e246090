package typecheck

import (
	"github.com/joosc/compiler/internal/ast"
	"github.com/joosc/compiler/internal/token"
	"github.com/joosc/compiler/internal/typeinfo"
	"github.com/joosc/compiler/internal/typesys"
)

// flattenPath reports whether e is a chain of plain dotted identifiers
// (an Ident, or a FieldAccessExpr whose X is itself such a chain), and
// if so returns the dotted name parts in order. Any other shape —
// a call, a cast, an implicit-this field access (X == nil) mid-chain,
// and so on — breaks the chain, since only a syntactically-literal
// dotted name can ever denote a package or type, per spec.md §4.4's
// staged qualified-name resolution.
func flattenPath(e ast.Expr) ([]string, bool) {
	switch n := e.(type) {
	case *ast.Ident:
		return []string{n.Name}, true
	case *ast.FieldAccessExpr:
		if n.X == nil {
			return nil, false
		}
		base, ok := flattenPath(n.X)
		if !ok {
			return nil, false
		}
		return append(base, n.Name), true
	default:
		return nil, false
	}
}

// checkFieldAccess types `x.name`. It first tries treating the whole
// dotted chain (x's path plus name) as a type name one component too
// long — i.e. x's path exactly names a type and name is a static
// member of it — before falling back to evaluating x as an ordinary
// instance-valued expression, exactly mirroring how checkCall resolves
// its receiver.
func (c *Checker) checkFieldAccess(f *ast.FieldAccessExpr) ast.Expr {
	if f.X == nil {
		return c.checkName(&ast.Ident{Name: f.Name, NameRange: f.NameRange})
	}
	if path, ok := flattenPath(f); ok {
		if tid, plen := c.ts.GetPrefix(path, f.Range, c.out); plen == len(path)-1 && tid.IsValid() && !tid.IsError() {
			return c.staticFieldAccess(tid, f.Name, f.Range, f.NameRange)
		}
	}

	x := c.checkExpr(f.X)
	cp := *f
	cp.X = x
	xt := x.TypeID()
	if xt.IsError() || !xt.IsValid() {
		cp.Typ = typesys.ErrorType
		cp.FieldID = typesys.FieldId(typesys.ErrorID)
		return &cp
	}
	cp.FieldID = c.resolveField(xt, typeinfo.Instance, f.Name, f.Range)
	cp.Typ = c.fieldType(xt, cp.FieldID)
	return &cp
}

func (c *Checker) staticFieldAccess(tid typesys.TypeId, name string, rang, nameRange token.Range) ast.Expr {
	fid := c.resolveField(tid, typeinfo.Static, name, nameRange)
	out := &ast.FieldAccessExpr{Name: name, NameRange: nameRange, Range: rang, FieldID: fid}
	out.Typ = c.fieldType(tid, fid)
	return out
}

// fieldType looks up fid's declared type via the global reverse lookup
// rather than ownerType's own FieldTable: a resolved FieldId may name a
// field inherited from an ancestor, and FieldTables are never merged
// with their parent's (typeinfo/members.go's buildFieldTable), so
// looking it up against ownerType's table alone would miss it.
func (c *Checker) fieldType(ownerType typesys.TypeId, fid typesys.FieldId) typesys.TypeId {
	finfo, ok := c.tim.LookupFieldInfo(fid)
	if !ok {
		return typesys.ErrorType
	}
	return finfo.FieldType
}

// checkCall types a method call, following the same receiver-shape
// staging as checkFieldAccess: an omitted receiver is an implicit-this
// (or static-lexical) call on the current type; a receiver that
// flattens to a dotted chain naming a known type exactly is a static
// call; anything else is evaluated as an instance-valued receiver.
func (c *Checker) checkCall(n *ast.CallExpr) ast.Expr {
	args := make([]ast.Expr, len(n.Args))
	params := make([]typesys.TypeId, len(n.Args))
	for i, a := range n.Args {
		args[i] = c.checkExpr(a)
		params[i] = args[i].TypeID()
	}

	var calleeType typesys.TypeId
	var ctx typeinfo.CallContext
	var receiver ast.Expr

	switch {
	case n.Receiver == nil:
		calleeType = c.curType
		if c.static {
			ctx = typeinfo.Static
		} else {
			ctx = typeinfo.Instance
		}
	default:
		if path, ok := flattenPath(n.Receiver); ok {
			if tid, plen := c.ts.GetPrefix(path, n.Range, c.out); plen == len(path) && tid.IsValid() && !tid.IsError() {
				calleeType = tid
				ctx = typeinfo.Static
				break
			}
		}
		receiver = c.checkExpr(n.Receiver)
		calleeType = receiver.TypeID()
		ctx = typeinfo.Instance
	}

	cp := *n
	cp.Receiver = receiver
	cp.Args = args

	if !calleeType.IsValid() || calleeType.IsError() {
		cp.Typ = typesys.ErrorType
		cp.MethodID = typesys.MethodId(typesys.ErrorID)
		return &cp
	}

	cp.MethodID = c.resolveCall(calleeType, ctx, n.Name, params, n.Range)
	if minfo, ok := c.tim.LookupMethodInfo(cp.MethodID); ok {
		cp.Typ = minfo.ReturnType
		return &cp
	}
	cp.Typ = typesys.ErrorType
	return &cp
}
