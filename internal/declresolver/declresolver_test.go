package declresolver_test

import (
	"testing"

	"github.com/joosc/compiler/internal/ast"
	"github.com/joosc/compiler/internal/declresolver"
	"github.com/joosc/compiler/internal/diagnostics"
	"github.com/joosc/compiler/internal/parser"
	"github.com/joosc/compiler/internal/token"
	"github.com/joosc/compiler/internal/typeinfo"
	"github.com/joosc/compiler/internal/typeset"
	"github.com/joosc/compiler/internal/typesys"
)

// build parses every src, runs CollectTypeNames+typeset.Build, then a
// Resolver over the resulting program, and hands back the rewritten
// program plus the built TypeInfoMap for assertions. Fails the test on
// any parse or resolution error.
func build(t *testing.T, srcs ...string) (*ast.Program, typeinfo.TypeInfoMap) {
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

	var out diagnostics.List
	tb := typeset.NewBuilder()
	declresolver.CollectTypeNames(prog, tb)
	ts := tb.Build(&out)
	if out.HasErrors() {
		t.Fatalf("unexpected typeset errors: %v", out.All())
	}

	tib := typeinfo.NewBuilder(ts.Resolve("Object"), ts.Resolve("Object"))
	r := declresolver.New(ts, tib, &out)
	prog = r.Resolve(prog)
	if out.HasErrors() {
		t.Fatalf("unexpected resolve errors: %v", out.All())
	}

	tim := tib.Build(&out)
	if out.HasErrors() {
		t.Fatalf("unexpected typeinfo errors: %v", out.All())
	}
	return prog, tim
}

func TestResolveFieldTypeOfUserDeclaredType(t *testing.T) {
	prog, _ := build(t, `
public class Object {}
public class Foo {
	public Object o;
}
`)
	foo := prog.Units[0].Types[1]
	ft := foo.Fields[0].Type
	if !ft.Resolved.IsValid() || ft.Resolved.IsError() {
		t.Fatalf("field type did not resolve: %+v", ft)
	}
}

func TestResolveExtendsEdgeAndTypeID(t *testing.T) {
	prog, tim := build(t, `
public class Object {}
public class Base {}
public class Derived extends Base {}
`)
	derived := prog.Units[0].Types[2]
	if !derived.TypeID.IsValid() {
		t.Fatalf("Derived.TypeID not set")
	}
	base := prog.Units[0].Types[1]
	if !tim.IsAncestor(derived.TypeID, base.TypeID) {
		t.Fatalf("expected Base to be an ancestor of Derived")
	}
}

func TestResolveCastInstanceofAndNewArrayInsideBody(t *testing.T) {
	prog, _ := build(t, `
public class Object {}
public class Foo {
	public Foo() {}
	public void m() {
		Object o = (Foo) this;
		boolean b = o instanceof Foo;
		int[] xs = new int[3];
	}
}
`)
	m := prog.Units[0].Types[1].Methods[0]
	stmts := m.Body.Stmts

	decl0 := stmts[0].(*ast.LocalVarDecl)
	cast := decl0.Init.(*ast.CastExpr)
	if !cast.Type.Resolved.IsValid() || cast.Type.Resolved.IsError() {
		t.Fatalf("cast type did not resolve: %+v", cast.Type)
	}

	decl1 := stmts[1].(*ast.LocalVarDecl)
	io := decl1.Init.(*ast.InstanceOfExpr)
	if !io.Type.Resolved.IsValid() || io.Type.Resolved.IsError() {
		t.Fatalf("instanceof type did not resolve: %+v", io.Type)
	}

	decl2 := stmts[2].(*ast.LocalVarDecl)
	na := decl2.Init.(*ast.NewArrayExpr)
	if na.ElemType.Resolved != typesys.Int {
		t.Fatalf("new int[3] elem type = %+v, want int", na.ElemType.Resolved)
	}
}

func TestUnknownTypeNameReportsUnknownTypenameError(t *testing.T) {
	fs := token.NewFileSet()
	src := `public class Foo { public Bar b; }`
	id := fs.AddFile("Foo.java", []byte(src))
	p := parser.New(id, []byte(src))
	cu := p.ParseCompilationUnit()
	prog := &ast.Program{Units: []*ast.CompilationUnit{cu}}

	var out diagnostics.List
	tb := typeset.NewBuilder()
	declresolver.CollectTypeNames(prog, tb)
	ts := tb.Build(&out)

	tib := typeinfo.NewBuilder(typesys.TypeId{Base: typesys.FirstUserBase}, typesys.TypeId{Base: typesys.FirstUserBase})
	r := declresolver.New(ts, tib, &out)
	r.Resolve(prog)

	found := false
	for _, e := range out.All() {
		if e.Kind == diagnostics.UnknownTypenameError {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected UnknownTypenameError, got %v", out.All())
	}
}
