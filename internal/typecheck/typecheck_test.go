package typecheck_test

import (
	"testing"

	"github.com/joosc/compiler/internal/ast"
	"github.com/joosc/compiler/internal/declresolver"
	"github.com/joosc/compiler/internal/diagnostics"
	"github.com/joosc/compiler/internal/parser"
	"github.com/joosc/compiler/internal/token"
	"github.com/joosc/compiler/internal/typecheck"
	"github.com/joosc/compiler/internal/typeinfo"
	"github.com/joosc/compiler/internal/typeset"
	"github.com/joosc/compiler/internal/typesys"
)

// check parses every src, runs CollectTypeNames+typeset.Build, then
// declresolver and typeinfo.Builder.Build to get a fully resolved
// TypeInfoMap, and finally internal/typecheck.Checker over the result.
// Object doubles as the array type, the same simplification
// internal/declresolver's own tests use: these fixtures don't depend on
// the array type being distinct from Object. Returns the checked
// program and the diagnostics recorded by the Checker alone (earlier
// stage errors fail the test immediately).
func check(t *testing.T, srcs ...string) (*ast.Program, *diagnostics.List) {
	t.Helper()
	fs := token.NewFileSet()
	prog := &ast.Program{}
	for i, src := range srcs {
		id := fs.AddFile("f"+string(rune('0'+i))+".java", []byte(src))
		p := parser.New(id, []byte(src))
		cu := p.ParseCompilationUnit()
		if len(p.Errors()) != 0 {
			t.Fatalf("unexpected parse errors: %v", p.Errors())
		}
		prog.Units = append(prog.Units, cu)
	}

	var setup diagnostics.List
	tb := typeset.NewBuilder()
	declresolver.CollectTypeNames(prog, tb)
	ts := tb.Build(&setup)
	if setup.HasErrors() {
		t.Fatalf("unexpected typeset errors: %v", setup.All())
	}

	objectType := ts.Resolve("Object")
	tib := typeinfo.NewBuilder(objectType, objectType)
	r := declresolver.New(ts, tib, &setup)
	prog = r.Resolve(prog)
	if setup.HasErrors() {
		t.Fatalf("unexpected resolve errors: %v", setup.All())
	}

	tim := tib.Build(&setup)
	if setup.HasErrors() {
		t.Fatalf("unexpected typeinfo errors: %v", setup.All())
	}

	var out diagnostics.List
	stringType := ts.Resolve("String")
	c := typecheck.New(ts, tim, objectType, stringType, &out)
	prog = c.Check(prog)
	return prog, &out
}

func hasKind(out *diagnostics.List, kind diagnostics.Kind) bool {
	for _, e := range out.All() {
		if e.Kind == kind {
			return true
		}
	}
	return false
}

func TestLocalVarDeclAssignsExpressionTypes(t *testing.T) {
	prog, out := check(t, `
public class Object {}
public class Foo {
	public Foo() {}
	public void m() {
		int x = 1 + 2;
		boolean b = x < 3;
	}
}
`)
	if out.HasErrors() {
		t.Fatalf("unexpected errors: %v", out.All())
	}
	m := prog.Units[0].Types[1].Methods[0]
	decl0 := m.Body.Stmts[0].(*ast.LocalVarDecl)
	if decl0.Init.TypeID() != typesys.Int {
		t.Fatalf("1 + 2 typed as %+v, want int", decl0.Init.TypeID())
	}
	decl1 := m.Body.Stmts[1].(*ast.LocalVarDecl)
	if decl1.Init.TypeID() != typesys.Bool {
		t.Fatalf("x < 3 typed as %+v, want boolean", decl1.Init.TypeID())
	}
}

func TestAssignIncompatibleTypeReportsUnassignableError(t *testing.T) {
	_, out := check(t, `
public class Object {}
public class Foo {
	public Foo() {}
	public void m() {
		boolean b = 1;
	}
}
`)
	if !hasKind(out, diagnostics.UnassignableError) {
		t.Fatalf("expected UnassignableError, got %v", out.All())
	}
}

func TestImplicitThisFieldAccess(t *testing.T) {
	prog, out := check(t, `
public class Object {}
public class Foo {
	public int x;
	public Foo() {}
	public int get() {
		return x;
	}
}
`)
	if out.HasErrors() {
		t.Fatalf("unexpected errors: %v", out.All())
	}
	m := prog.Units[0].Types[1].Methods[0]
	ret := m.Body.Stmts[0].(*ast.ReturnStmt)
	fa, ok := ret.Value.(*ast.FieldAccessExpr)
	if !ok {
		t.Fatalf("expected return value rewritten to a FieldAccessExpr, got %T", ret.Value)
	}
	if fa.TypeID() != typesys.Int {
		t.Fatalf("implicit field 'x' typed as %+v, want int", fa.TypeID())
	}
}

func TestThisInStaticMethodReportsThisInStaticMemberError(t *testing.T) {
	_, out := check(t, `
public class Object {}
public class Foo {
	public Foo() {}
	public static Object m() {
		return this;
	}
}
`)
	if !hasKind(out, diagnostics.ThisInStaticMemberError) {
		t.Fatalf("expected ThisInStaticMemberError, got %v", out.All())
	}
}

func TestInheritedFieldResolvedThroughAncestor(t *testing.T) {
	prog, out := check(t, `
public class Object {}
public class Base {
	public int x;
	public Base() {}
}
public class Derived extends Base {
	public Derived() {}
	public int get() {
		return x;
	}
}
`)
	if out.HasErrors() {
		t.Fatalf("unexpected errors: %v", out.All())
	}
	derived := prog.Units[0].Types[2]
	ret := derived.Methods[0].Body.Stmts[0].(*ast.ReturnStmt)
	if ret.Value.TypeID() != typesys.Int {
		t.Fatalf("inherited field 'x' typed as %+v, want int", ret.Value.TypeID())
	}
}

func TestInheritedMethodResolvedThroughAncestor(t *testing.T) {
	_, out := check(t, `
public class Object {}
public class Base {
	public Base() {}
	public int get() { return 1; }
}
public class Derived extends Base {
	public Derived() {}
	public void m() {
		int x = get();
	}
}
`)
	if out.HasErrors() {
		t.Fatalf("unexpected errors calling inherited method: %v", out.All())
	}
}

func TestStaticFieldAccessViaTypeName(t *testing.T) {
	prog, out := check(t, `
public class Object {}
public class Foo {
	public static int x;
	public Foo() {}
}
public class Bar {
	public Bar() {}
	public int get() {
		return Foo.x;
	}
}
`)
	if out.HasErrors() {
		t.Fatalf("unexpected errors: %v", out.All())
	}
	bar := prog.Units[0].Types[2]
	ret := bar.Methods[0].Body.Stmts[0].(*ast.ReturnStmt)
	if ret.Value.TypeID() != typesys.Int {
		t.Fatalf("Foo.x typed as %+v, want int", ret.Value.TypeID())
	}
}

func TestStaticCallViaTypeName(t *testing.T) {
	_, out := check(t, `
public class Object {}
public class Foo {
	public Foo() {}
	public static int get() { return 1; }
}
public class Bar {
	public Bar() {}
	public void m() {
		int x = Foo.get();
	}
}
`)
	if out.HasErrors() {
		t.Fatalf("unexpected errors: %v", out.All())
	}
}

func TestInstanceMethodOnStaticCallReportsError(t *testing.T) {
	_, out := check(t, `
public class Object {}
public class Foo {
	public Foo() {}
	public int get() { return 1; }
}
public class Bar {
	public Bar() {}
	public void m() {
		int x = Foo.get();
	}
}
`)
	if !hasKind(out, diagnostics.StaticMethodOnInstanceError) && !hasKind(out, diagnostics.InstanceMethodOnStaticError) {
		t.Fatalf("expected a static/instance call mismatch error, got %v", out.All())
	}
}

func TestDuplicateLocalVarDeclReportsError(t *testing.T) {
	_, out := check(t, `
public class Object {}
public class Foo {
	public Foo() {}
	public void m() {
		int x = 1;
		int x = 2;
	}
}
`)
	if !hasKind(out, diagnostics.DuplicateVarDeclError) {
		t.Fatalf("expected DuplicateVarDeclError, got %v", out.All())
	}
}

func TestParamShadowedByLocalReportsDuplicateVarDeclError(t *testing.T) {
	_, out := check(t, `
public class Object {}
public class Foo {
	public Foo() {}
	public void m(int x) {
		int x = 2;
	}
}
`)
	if !hasKind(out, diagnostics.DuplicateVarDeclError) {
		t.Fatalf("expected DuplicateVarDeclError, got %v", out.All())
	}
}

func TestVariableInitializerSelfReferenceError(t *testing.T) {
	_, out := check(t, `
public class Object {}
public class Foo {
	public Foo() {}
	public void m() {
		int x = x;
	}
}
`)
	if !hasKind(out, diagnostics.VariableInitializerSelfReferenceError) {
		t.Fatalf("expected VariableInitializerSelfReferenceError, got %v", out.All())
	}
}

func TestLocalShadowingOuterBlockLocalIsRejected(t *testing.T) {
	_, out := check(t, `
public class Object {}
public class Foo {
	public Foo() {}
	public void m() {
		int x = 1;
		{
			int x = 2;
		}
	}
}
`)
	if !hasKind(out, diagnostics.DuplicateVarDeclError) {
		t.Fatalf("expected DuplicateVarDeclError for shadowing across nested blocks, got %v", out.All())
	}
}

func TestLocalGoesOutOfScopeAfterBlock(t *testing.T) {
	_, out := check(t, `
public class Object {}
public class Foo {
	public int x;
	public Foo() {}
	public void m() {
		{
			int y = 1;
		}
		int z = y;
	}
}
`)
	if !hasKind(out, diagnostics.UndefinedReferenceError) {
		t.Fatalf("expected UndefinedReferenceError once y has gone out of scope, got %v", out.All())
	}
}

func TestConstructorBareReturnIsNotAnError(t *testing.T) {
	_, out := check(t, `
public class Object {}
public class Foo {
	public Foo() {
		return;
	}
}
`)
	if out.HasErrors() {
		t.Fatalf("bare return in a constructor must not error: %v", out.All())
	}
}

func TestReturnValueFromVoidMethodReportsInvalidReturnError(t *testing.T) {
	_, out := check(t, `
public class Object {}
public class Foo {
	public Foo() {}
	public void m() {
		return 1;
	}
}
`)
	if !hasKind(out, diagnostics.InvalidReturnError) {
		t.Fatalf("expected InvalidReturnError, got %v", out.All())
	}
}

func TestArrayAccessAndIndexTyping(t *testing.T) {
	prog, out := check(t, `
public class Object {}
public class Foo {
	public Foo() {}
	public int get() {
		int[] xs = new int[3];
		return xs[0];
	}
}
`)
	if out.HasErrors() {
		t.Fatalf("unexpected errors: %v", out.All())
	}
	m := prog.Units[0].Types[1].Methods[0]
	ret := m.Body.Stmts[1].(*ast.ReturnStmt)
	if ret.Value.TypeID() != typesys.Int {
		t.Fatalf("xs[0] typed as %+v, want int", ret.Value.TypeID())
	}
}

func TestIndexNonArrayReportsIndexNonArrayError(t *testing.T) {
	_, out := check(t, `
public class Object {}
public class Foo {
	public Foo() {}
	public void m() {
		int x = 1;
		int y = x[0];
	}
}
`)
	if !hasKind(out, diagnostics.IndexNonArrayError) {
		t.Fatalf("expected IndexNonArrayError, got %v", out.All())
	}
}

func TestCastBetweenPrimitiveAndReferenceReportsIncompatibleCastError(t *testing.T) {
	_, out := check(t, `
public class Object {}
public class Foo {
	public Foo() {}
	public void m() {
		Object o = (Object) 1;
	}
}
`)
	if !hasKind(out, diagnostics.IncompatibleCastError) {
		t.Fatalf("expected IncompatibleCastError, got %v", out.All())
	}
}

func TestInstanceOfPrimitiveReportsError(t *testing.T) {
	_, out := check(t, `
public class Object {}
public class Foo {
	public Foo() {}
	public void m() {
		int x = 1;
		boolean b = x instanceof Object;
	}
}
`)
	if !hasKind(out, diagnostics.InstanceOfPrimitiveError) {
		t.Fatalf("expected InstanceOfPrimitiveError, got %v", out.All())
	}
}

func TestEqualityOfUnrelatedReferenceTypesReportsIncomparableTypeError(t *testing.T) {
	_, out := check(t, `
public class Object {}
public class Foo {
	public Foo() {}
}
public class Bar {
	public Bar() {}
	public boolean m(Foo f, Bar b) {
		return f == b;
	}
}
`)
	if !hasKind(out, diagnostics.IncomparableTypeError) {
		t.Fatalf("expected IncomparableTypeError, got %v", out.All())
	}
}

func TestStringConcatenationWithIntIsAllowed(t *testing.T) {
	prog, out := check(t, `
public class Object {}
public class String {}
public class Foo {
	public Foo() {}
	public String m() {
		String s = "a" + 1;
		return s;
	}
}
`)
	if out.HasErrors() {
		t.Fatalf("unexpected errors: %v", out.All())
	}
	m := prog.Units[0].Types[2].Methods[0]
	decl := m.Body.Stmts[0].(*ast.LocalVarDecl)
	stringType := decl.Type.Resolved
	if decl.Init.TypeID() != stringType {
		t.Fatalf("\"a\" + 1 typed as %+v, want %+v (String)", decl.Init.TypeID(), stringType)
	}
}

func TestWhileAndForConditionMustBeBoolean(t *testing.T) {
	_, out := check(t, `
public class Object {}
public class Foo {
	public Foo() {}
	public void m() {
		while (1) {}
	}
}
`)
	if !hasKind(out, diagnostics.TypeMismatchError) {
		t.Fatalf("expected TypeMismatchError for non-boolean while condition, got %v", out.All())
	}
}

func TestForLoopVariableScopedToTheLoop(t *testing.T) {
	_, out := check(t, `
public class Object {}
public class Foo {
	public Foo() {}
	public void m() {
		for (int i = 0; i < 10; i = i + 1) {}
		int i = 1;
	}
}
`)
	if out.HasErrors() {
		t.Fatalf("'for' init variable must not leak past the loop: %v", out.All())
	}
}
