package weeder

import (
	"strconv"

	"github.com/joosc/compiler/internal/ast"
	"github.com/joosc/compiler/internal/diagnostics"
	"github.com/joosc/compiler/internal/token"
)

// foldIntLiterals converts each IntLit's raw decimal text to an int32
// Value and checks it is in range, collapsing UnaryExpr(MINUS, IntLit)
// into a single negative IntLit first so that the most negative int
// (2147483648, which overflows int32 unsigned) is accepted when
// written as a literal "-2147483648" — grounded on
// weeder/int_range_visitor.cpp's ConvertInt(is_negated) special case.
func foldIntLiterals(prog *ast.Program, out *diagnostics.List) *ast.Program {
	v := &ast.Visitor{
		ExprHook: func(e ast.Expr) (ast.Expr, ast.Action) {
			switch n := e.(type) {
			case *ast.IntLit:
				folded, ok := convertInt(n.Literal, false, n.Range, out)
				if !ok {
					return n, ast.Skip
				}
				cp := *n
				cp.Value = folded
				return &cp, ast.Skip
			case *ast.UnaryExpr:
				if n.Op == token.MINUS {
					if lit, ok := n.X.(*ast.IntLit); ok {
						folded, ok := convertInt(lit.Literal, true, unaryRange(n, lit), out)
						if !ok {
							return n, ast.Skip
						}
						cp := *lit
						cp.Value = folded
						cp.Range = unaryRange(n, lit)
						return &cp, ast.Skip
					}
				}
				return n, ast.Recurse
			default:
				return e, ast.Recurse
			}
		},
	}

	units := make([]*ast.CompilationUnit, len(prog.Units))
	for i, u := range prog.Units {
		cp := *u
		types := make([]*ast.TypeDecl, len(u.Types))
		for j, t := range u.Types {
			types[j] = foldTypeDecl(t, v)
		}
		cp.Types = types
		units[i] = &cp
	}
	return &ast.Program{Units: units}
}

func unaryRange(u *ast.UnaryExpr, lit *ast.IntLit) token.Range {
	return token.Range{Begin: u.Pos().Begin, End: lit.Pos().End}
}

func foldTypeDecl(t *ast.TypeDecl, v *ast.Visitor) *ast.TypeDecl {
	cp := *t
	fields := make([]*ast.FieldDecl, len(t.Fields))
	for i, f := range t.Fields {
		fc := *f
		fc.Init = ast.RewriteExpr(f.Init, v)
		fields[i] = &fc
	}
	cp.Fields = fields

	methods := make([]*ast.MethodDecl, len(t.Methods))
	for i, m := range t.Methods {
		methods[i] = foldMethod(m, v)
	}
	cp.Methods = methods

	ctors := make([]*ast.MethodDecl, len(t.Constructors))
	for i, c := range t.Constructors {
		ctors[i] = foldMethod(c, v)
	}
	cp.Constructors = ctors
	return &cp
}

func foldMethod(m *ast.MethodDecl, v *ast.Visitor) *ast.MethodDecl {
	if m.Body == nil {
		return m
	}
	cp := *m
	body := ast.RewriteStmt(m.Body, v)
	cp.Body = body.(*ast.Block)
	return &cp
}

// convertInt parses digits (unsigned decimal text) and negates if
// isNegated, reporting InvalidIntRangeError if the result doesn't fit
// in an int32.
func convertInt(digits string, isNegated bool, r token.Range, out *diagnostics.List) (int32, bool) {
	v, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		out.Addf(diagnostics.InvalidIntRangeError, r, "ints must be between -2^31 and 2^31 - 1 inclusive")
		return 0, false
	}
	if isNegated {
		v = -v
	}
	if v < -2147483648 || v > 2147483647 {
		out.Addf(diagnostics.InvalidIntRangeError, r, "ints must be between -2^31 and 2^31 - 1 inclusive")
		return 0, false
	}
	return int32(v), true
}
