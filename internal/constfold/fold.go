package constfold

import (
	"github.com/joosc/compiler/internal/ast"
	"github.com/joosc/compiler/internal/typesys"
)

// Folder rewrites one program's expressions into constants where
// possible, interning every string literal and string-concatenation
// result it sees along the way.
type Folder struct {
	stringType typesys.TypeId
	strings    *ConstStringMap
	v          *ast.Visitor
}

// New returns a Folder. stringType is java.lang.String's TypeId
// (internal/runtimesynth); strings accumulates every interned string,
// including ones never folded from a BinaryExpr (plain literals).
func New(stringType typesys.TypeId, strings *ConstStringMap) *Folder {
	f := &Folder{stringType: stringType, strings: strings}
	f.v = f.visitor()
	return f
}

// Fold rewrites every field initializer and method/constructor body in
// prog, following the same per-type/per-method walk as
// internal/weeder's foldIntLiterals.
func (f *Folder) Fold(prog *ast.Program) *ast.Program {
	units := make([]*ast.CompilationUnit, len(prog.Units))
	for i, u := range prog.Units {
		cp := *u
		types := make([]*ast.TypeDecl, len(u.Types))
		for j, t := range u.Types {
			types[j] = f.foldType(t)
		}
		cp.Types = types
		units[i] = &cp
	}
	return &ast.Program{Units: units}
}

func (f *Folder) foldType(t *ast.TypeDecl) *ast.TypeDecl {
	cp := *t
	fields := make([]*ast.FieldDecl, len(t.Fields))
	for i, fd := range t.Fields {
		fc := *fd
		fc.Init = ast.RewriteExpr(fd.Init, f.v)
		fields[i] = &fc
	}
	cp.Fields = fields

	methods := make([]*ast.MethodDecl, len(t.Methods))
	for i, m := range t.Methods {
		methods[i] = f.foldMethod(m)
	}
	cp.Methods = methods

	ctors := make([]*ast.MethodDecl, len(t.Constructors))
	for i, c := range t.Constructors {
		ctors[i] = f.foldMethod(c)
	}
	cp.Constructors = ctors
	return &cp
}

func (f *Folder) foldMethod(m *ast.MethodDecl) *ast.MethodDecl {
	if m.Body == nil {
		return m
	}
	cp := *m
	cp.Body = ast.RewriteStmt(m.Body, f.v).(*ast.Block)
	return &cp
}

// visitor builds the per-node-kind hook. Leaves (int/bool/char/null/
// string literals) always fold, since a bare literal is already
// maximally constant; everything with children that might themselves
// be constants recurses by hand first (post-order, matching the
// original's REWRITE_DECL-per-kind structure) and only folds if every
// child turned out to be an ast.ConstExpr.
func (f *Folder) visitor() *ast.Visitor {
	return &ast.Visitor{
		ExprHook: func(e ast.Expr) (ast.Expr, ast.Action) {
			switch n := e.(type) {
			case *ast.ConstExpr:
				return n, ast.Skip // already folded; idempotent terminus

			case *ast.IntLit:
				return wrapConst(n), ast.Skip
			case *ast.BoolLit:
				return wrapConst(n), ast.Skip
			case *ast.CharLit:
				return wrapConst(n), ast.Skip
			case *ast.NullLit:
				return wrapConst(n), ast.Skip
			case *ast.StringLit:
				f.strings.Intern(n.Value)
				return wrapConst(n), ast.Skip

			case *ast.UnaryExpr:
				return f.foldUnary(n), ast.Skip
			case *ast.BinaryExpr:
				return f.foldBinary(n), ast.Skip
			case *ast.CastExpr:
				return f.foldCast(n), ast.Skip

			default:
				return e, ast.Recurse
			}
		},
	}
}

// wrapConst wraps lit (already carrying its TypeId) in a ConstExpr of
// the same type.
func wrapConst(lit ast.Expr) *ast.ConstExpr {
	return constOf(lit, lit, lit.TypeID())
}

// constOf builds a ConstExpr around literal, remembering orig (the
// expression it was folded from, e.g. the whole BinaryExpr) for
// diagnostics and idempotence.
func constOf(literal, orig ast.Expr, tid typesys.TypeId) *ast.ConstExpr {
	c := &ast.ConstExpr{Literal: literal, Orig: orig}
	c.Typ = tid
	return c
}
