package declresolver

import (
	"strings"

	"github.com/joosc/compiler/internal/ast"
	"github.com/joosc/compiler/internal/diagnostics"
	"github.com/joosc/compiler/internal/token"
	"github.com/joosc/compiler/internal/typeset"
	"github.com/joosc/compiler/internal/typesys"
)

// resolveName resolves a syntactic qualified name to a TypeId within
// scoped. If no prefix of q resolves at all, it reports
// UnknownTypenameError. If a strict, non-empty prefix resolves to an
// actual type but components remain after it (`foo.bar.baz` where
// `foo.bar` is itself a type, not a package), the trailing components
// can never be a further dotted type name — Joos has no nested types —
// so that is TypeWithTypePrefixError instead. An already-ambiguous name
// (AmbiguousTypeError, reported here by internal/typeset at the point
// of use) is returned as the error type without a second diagnostic.
func (r *Resolver) resolveName(scoped typeset.TypeSet, q ast.QualifiedName) typesys.TypeId {
	id, length := scoped.GetPrefix(q.Parts, q.Range, r.out)
	switch {
	case length == 0:
		r.out.Addf(diagnostics.UnknownTypenameError, q.Range, "cannot find type '"+q.String()+"'")
		return typesys.ErrorType
	case length == len(q.Parts):
		// A valid type, or an error sentinel GetPrefix already
		// reported (duplicate definition or wildcard ambiguity).
		return id
	case id.IsError():
		return typesys.ErrorType // ambiguity already reported by GetPrefix
	default:
		r.out.Addf(diagnostics.TypeWithTypePrefixError, q.Range,
			"'"+q.String()+"' treats the type '"+strings.Join(q.Parts[:length], ".")+"' as a package")
		return typesys.ErrorType
	}
}

// resolveTypeRefNode resolves tr's base (void, a primitive, or a
// qualified name) and pairs it with tr's array dimension count to
// produce the full TypeId, returning a copy of tr with Resolved set.
func (r *Resolver) resolveTypeRefNode(tr ast.TypeRef, scoped typeset.TypeSet) ast.TypeRef {
	var base typesys.TypeId
	switch {
	case tr.IsVoid:
		base = typesys.Void
	case tr.Primitive != token.ILLEGAL:
		base = primitiveTypeId(tr.Primitive)
	default:
		base = r.resolveName(scoped, tr.Name)
	}
	return tr.WithResolved(typesys.TypeId{Base: base.Base, NDims: int32(tr.NDims)})
}

func primitiveTypeId(t token.Type) typesys.TypeId {
	switch t {
	case token.BOOLEAN:
		return typesys.Bool
	case token.BYTE:
		return typesys.Byte
	case token.CHAR:
		return typesys.Char
	case token.SHORT:
		return typesys.Short
	case token.INT:
		return typesys.Int
	default:
		return typesys.ErrorType
	}
}

// typeRefVisitor builds an ast.Visitor that resolves every TypeRef
// embedded in an expression or statement tree — casts, instanceof,
// object/array creation, and local variable declarations — against
// scoped. Field/method/parameter-level TypeRefs are resolved directly
// by resolveField/resolveMethod instead, since those aren't reachable
// through ast.RewriteExpr/RewriteStmt.
func (r *Resolver) typeRefVisitor(scoped typeset.TypeSet) *ast.Visitor {
	return &ast.Visitor{
		ExprHook: func(e ast.Expr) (ast.Expr, ast.Action) {
			switch n := e.(type) {
			case *ast.CastExpr:
				cp := *n
				cp.Type = r.resolveTypeRefNode(n.Type, scoped)
				return &cp, ast.Recurse
			case *ast.InstanceOfExpr:
				cp := *n
				cp.Type = r.resolveTypeRefNode(n.Type, scoped)
				return &cp, ast.Recurse
			case *ast.NewObjectExpr:
				cp := *n
				cp.Type = r.resolveTypeRefNode(n.Type, scoped)
				return &cp, ast.Recurse
			case *ast.NewArrayExpr:
				cp := *n
				cp.ElemType = r.resolveTypeRefNode(n.ElemType, scoped)
				return &cp, ast.Recurse
			default:
				return e, ast.Recurse
			}
		},
		StmtHook: func(s ast.Stmt) (ast.Stmt, ast.Action) {
			n, ok := s.(*ast.LocalVarDecl)
			if !ok {
				return s, ast.Recurse
			}
			cp := *n
			cp.Type = r.resolveTypeRefNode(n.Type, scoped)
			return &cp, ast.Recurse
		},
	}
}
