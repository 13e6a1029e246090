package weeder_test

import (
	"testing"

	"github.com/joosc/compiler/internal/ast"
	"github.com/joosc/compiler/internal/diagnostics"
	"github.com/joosc/compiler/internal/token"
	"github.com/joosc/compiler/internal/typesys"
	"github.com/joosc/compiler/internal/weeder"
)

func rng(id token.FileID, a, b int) token.Range {
	return token.Range{Begin: token.Pos{File: id, Offset: a}, End: token.Pos{File: id, Offset: b}}
}

func hasKind(out *diagnostics.List, k diagnostics.Kind) bool {
	for _, e := range out.All() {
		if e.Kind == k {
			return true
		}
	}
	return false
}

func TestClassMustBePublic(t *testing.T) {
	fs := token.NewFileSet()
	id := fs.AddFile("Main.java", []byte("class Main {}\n"))
	typ := &ast.TypeDecl{Kind: typesys.Class, Name: "Main", NameRange: rng(id, 6, 10)}
	unit := &ast.CompilationUnit{File: id, Types: []*ast.TypeDecl{typ}}
	prog := &ast.Program{Units: []*ast.CompilationUnit{unit}}

	var out diagnostics.List
	weeder.Weed(fs, prog, &out)

	if !hasKind(&out, diagnostics.ClassNoAccessModError) {
		t.Fatalf("expected ClassNoAccessModError, got %v", out.All())
	}
}

func TestMultipleTypesPerFile(t *testing.T) {
	fs := token.NewFileSet()
	id := fs.AddFile("Main.java", []byte("class Main {} class Other {}\n"))
	a := &ast.TypeDecl{Modifiers: ast.ModPublic, Name: "Main", NameRange: rng(id, 6, 10)}
	b := &ast.TypeDecl{Modifiers: ast.ModPublic, Name: "Other", NameRange: rng(id, 21, 26)}
	unit := &ast.CompilationUnit{File: id, Types: []*ast.TypeDecl{a, b}}
	prog := &ast.Program{Units: []*ast.CompilationUnit{unit}}

	var out diagnostics.List
	weeder.Weed(fs, prog, &out)

	count := 0
	for _, e := range out.All() {
		if e.Kind == diagnostics.MultipleTypesPerCompUnitError {
			count++
		}
	}
	if count != 2 {
		t.Fatalf("expected 2 MultipleTypesPerCompUnitError, got %d in %v", count, out.All())
	}
}

func TestIncorrectFileName(t *testing.T) {
	fs := token.NewFileSet()
	id := fs.AddFile("Wrong.java", []byte("class Main {}\n"))
	typ := &ast.TypeDecl{Modifiers: ast.ModPublic, Name: "Main", NameRange: rng(id, 6, 10)}
	unit := &ast.CompilationUnit{File: id, Types: []*ast.TypeDecl{typ}}
	prog := &ast.Program{Units: []*ast.CompilationUnit{unit}}

	var out diagnostics.List
	weeder.Weed(fs, prog, &out)

	if !hasKind(&out, diagnostics.IncorrectFileNameError) {
		t.Fatalf("expected IncorrectFileNameError, got %v", out.All())
	}
}

func TestIntLiteralFoldsAndRangeChecks(t *testing.T) {
	fs := token.NewFileSet()
	id := fs.AddFile("Main.java", []byte("class Main { public Main() { int x = -2147483648; } }\n"))

	lit := &ast.IntLit{Literal: "2147483648", Range: rng(id, 38, 48)}
	neg := &ast.UnaryExpr{Op: token.MINUS, X: lit, Range: rng(id, 37, 48)}
	decl := &ast.LocalVarDecl{
		Type: ast.TypeRef{Primitive: token.INT, Range: rng(id, 29, 32)},
		Name: "x", NameRange: rng(id, 33, 34), Init: neg, Range: rng(id, 29, 49),
	}
	body := &ast.Block{Stmts: []ast.Stmt{decl}, Range: rng(id, 28, 51)}
	ctor := &ast.MethodDecl{
		Modifiers: ast.ModPublic, IsConstructor: true, Name: "Main",
		NameRange: rng(id, 20, 24), Body: body, Range: rng(id, 13, 53),
	}
	typ := &ast.TypeDecl{Modifiers: ast.ModPublic, Name: "Main", NameRange: rng(id, 6, 10), Constructors: []*ast.MethodDecl{ctor}}
	unit := &ast.CompilationUnit{File: id, Types: []*ast.TypeDecl{typ}}
	prog := &ast.Program{Units: []*ast.CompilationUnit{unit}}

	var out diagnostics.List
	prog = weeder.Weed(fs, prog, &out)

	if hasKind(&out, diagnostics.InvalidIntRangeError) {
		t.Fatalf("did not expect a range error for -2147483648, got %v", out.All())
	}

	gotDecl := prog.Units[0].Types[0].Constructors[0].Body.Stmts[0].(*ast.LocalVarDecl)
	gotLit, ok := gotDecl.Init.(*ast.IntLit)
	if !ok {
		t.Fatalf("expected the unary-minus/int-lit pair to fold into a single IntLit, got %T", gotDecl.Init)
	}
	if gotLit.Value != -2147483648 {
		t.Fatalf("expected folded value -2147483648, got %d", gotLit.Value)
	}
}

func TestIntLiteralOutOfRange(t *testing.T) {
	fs := token.NewFileSet()
	id := fs.AddFile("Main.java", []byte("class Main { int x = 9999999999; }\n"))

	lit := &ast.IntLit{Literal: "9999999999", Range: rng(id, 22, 32)}
	field := &ast.FieldDecl{
		Modifiers: ast.ModPublic,
		Type:      ast.TypeRef{Primitive: token.INT, Range: rng(id, 13, 16)},
		Name:      "x", NameRange: rng(id, 17, 18), Init: lit, Range: rng(id, 13, 33),
	}
	typ := &ast.TypeDecl{Modifiers: ast.ModPublic, Name: "Main", NameRange: rng(id, 6, 10), Fields: []*ast.FieldDecl{field}}
	unit := &ast.CompilationUnit{File: id, Types: []*ast.TypeDecl{typ}}
	prog := &ast.Program{Units: []*ast.CompilationUnit{unit}}

	var out diagnostics.List
	weeder.Weed(fs, prog, &out)

	if !hasKind(&out, diagnostics.InvalidIntRangeError) {
		t.Fatalf("expected InvalidIntRangeError, got %v", out.All())
	}
}

func TestInvalidAssignmentTarget(t *testing.T) {
	fs := token.NewFileSet()
	id := fs.AddFile("Main.java", []byte("class Main { public Main() { 1 = 2; } }\n"))

	lhs := &ast.IntLit{Literal: "1", Range: rng(id, 30, 31)}
	rhs := &ast.IntLit{Literal: "2", Range: rng(id, 34, 35)}
	assign := &ast.AssignExpr{LHS: lhs, RHS: rhs, Range: rng(id, 30, 35)}
	body := &ast.Block{Stmts: []ast.Stmt{&ast.ExprStmt{X: assign, Range: rng(id, 30, 36)}}, Range: rng(id, 29, 38)}
	ctor := &ast.MethodDecl{Modifiers: ast.ModPublic, IsConstructor: true, Name: "Main", NameRange: rng(id, 20, 24), Body: body, Range: rng(id, 13, 40)}
	typ := &ast.TypeDecl{Modifiers: ast.ModPublic, Name: "Main", NameRange: rng(id, 6, 10), Constructors: []*ast.MethodDecl{ctor}}
	unit := &ast.CompilationUnit{File: id, Types: []*ast.TypeDecl{typ}}
	prog := &ast.Program{Units: []*ast.CompilationUnit{unit}}

	var out diagnostics.List
	weeder.Weed(fs, prog, &out)

	if !hasKind(&out, diagnostics.InvalidLHSError) {
		t.Fatalf("expected InvalidLHSError, got %v", out.All())
	}
}

func TestExplicitThisConstructorCallIsRejected(t *testing.T) {
	fs := token.NewFileSet()
	id := fs.AddFile("Main.java", []byte("class Main { public Main() { this(); } }\n"))

	call := &ast.CallExpr{Receiver: &ast.ThisExpr{Range: rng(id, 29, 33)}, ExplicitThis: true, Range: rng(id, 29, 35)}
	body := &ast.Block{Stmts: []ast.Stmt{&ast.ExprStmt{X: call, Range: rng(id, 29, 36)}}, Range: rng(id, 28, 38)}
	ctor := &ast.MethodDecl{Modifiers: ast.ModPublic, IsConstructor: true, Name: "Main", NameRange: rng(id, 20, 24), Body: body, Range: rng(id, 13, 40)}
	typ := &ast.TypeDecl{Modifiers: ast.ModPublic, Name: "Main", NameRange: rng(id, 6, 10), Constructors: []*ast.MethodDecl{ctor}}
	unit := &ast.CompilationUnit{File: id, Types: []*ast.TypeDecl{typ}}
	prog := &ast.Program{Units: []*ast.CompilationUnit{unit}}

	var out diagnostics.List
	weeder.Weed(fs, prog, &out)

	if !hasKind(&out, diagnostics.ExplicitThisCallError) {
		t.Fatalf("expected ExplicitThisCallError, got %v", out.All())
	}
}
