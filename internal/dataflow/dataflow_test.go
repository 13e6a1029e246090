package dataflow_test

import (
	"regexp"
	"testing"

	"github.com/joosc/compiler/internal/ast"
	"github.com/joosc/compiler/internal/constfold"
	"github.com/joosc/compiler/internal/dataflow"
	"github.com/joosc/compiler/internal/declresolver"
	"github.com/joosc/compiler/internal/diagnostics"
	"github.com/joosc/compiler/internal/parser"
	"github.com/joosc/compiler/internal/token"
	"github.com/joosc/compiler/internal/typecheck"
	"github.com/joosc/compiler/internal/typeinfo"
	"github.com/joosc/compiler/internal/typeset"
	"github.com/joosc/compiler/internal/weeder"
)

var typeNameRe = regexp.MustCompile(`(?:class|interface)\s+(\w+)`)

// check runs each of srcs (one public type per string) through every
// stage up to and including internal/constfold, then runs
// dataflow.Checker over the result and returns its diagnostics.
func check(t *testing.T, srcs ...string) *diagnostics.List {
	t.Helper()
	fs := token.NewFileSet()
	prog := &ast.Program{}
	for _, src := range srcs {
		m := typeNameRe.FindStringSubmatch(src)
		if m == nil {
			t.Fatalf("could not find a type declaration in source: %s", src)
		}
		id := fs.AddFile(m[1]+".java", []byte(src))
		p := parser.New(id, []byte(src))
		cu := p.ParseCompilationUnit()
		if len(p.Errors()) != 0 {
			t.Fatalf("unexpected parse errors: %v", p.Errors())
		}
		prog.Units = append(prog.Units, cu)
	}

	var setup diagnostics.List
	prog = weeder.Weed(fs, prog, &setup)
	if setup.HasErrors() {
		t.Fatalf("unexpected weeder errors: %v", setup.All())
	}

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

	var checkOut diagnostics.List
	stringType := ts.Resolve("String")
	c := typecheck.New(ts, tim, objectType, stringType, &checkOut)
	prog = c.Check(prog)
	if checkOut.HasErrors() {
		t.Fatalf("unexpected typecheck errors: %v", checkOut.All())
	}

	strings := constfold.NewConstStringMap()
	prog = constfold.New(stringType, strings).Fold(prog)

	var out diagnostics.List
	dataflow.New(tim, &out).Check(prog)
	return &out
}

func hasKind(out *diagnostics.List, kind diagnostics.Kind) bool {
	for _, e := range out.All() {
		if e.Kind == kind {
			return true
		}
	}
	return false
}

const objectSrc = `public class Object {}`

func TestUnreachableCodeAfterReturnReportsErrorOnce(t *testing.T) {
	out := check(t, objectSrc, `
public class A {
	public A() {}
	public int f() {
		return 1;
		return 2;
	}
}
`)
	if !hasKind(out, diagnostics.UnreachableCodeError) {
		t.Fatalf("expected UnreachableCodeError, got %v", out.All())
	}
	n := 0
	for _, e := range out.All() {
		if e.Kind == diagnostics.UnreachableCodeError {
			n++
		}
	}
	if n != 1 {
		t.Fatalf("expected exactly one UnreachableCodeError, got %d: %v", n, out.All())
	}
	if hasKind(out, diagnostics.MethodNeedsReturnError) {
		t.Fatalf("a method ending in an (unreachable) return needs no MethodNeedsReturnError, got %v", out.All())
	}
}

func TestIfWithoutElseOnAllPathsNeedsReturn(t *testing.T) {
	out := check(t, objectSrc, `
public class A {
	public A() {}
	public int f(boolean b) {
		if (b) {
			return 1;
		}
	}
}
`)
	if !hasKind(out, diagnostics.MethodNeedsReturnError) {
		t.Fatalf("expected MethodNeedsReturnError, got %v", out.All())
	}
}

func TestIfElseBothReturningNeedsNoReturn(t *testing.T) {
	out := check(t, objectSrc, `
public class A {
	public A() {}
	public int f(boolean b) {
		if (b) {
			return 1;
		} else {
			return 2;
		}
	}
}
`)
	if hasKind(out, diagnostics.MethodNeedsReturnError) {
		t.Fatalf("both branches return, expected no MethodNeedsReturnError, got %v", out.All())
	}
}

func TestConstantTrueLoopMakesFollowingCodeUnreachable(t *testing.T) {
	out := check(t, objectSrc, `
public class A {
	public A() {}
	public int f() {
		while (true) {
		}
		return 1;
	}
}
`)
	if !hasKind(out, diagnostics.UnreachableCodeError) {
		t.Fatalf("expected UnreachableCodeError after an unconditional while(true), got %v", out.All())
	}
	if hasKind(out, diagnostics.MethodNeedsReturnError) {
		t.Fatalf("an infinite loop never falls off the end, expected no MethodNeedsReturnError, got %v", out.All())
	}
}

func TestConstantFalseLoopBodyIsUnreachableButAfterIsFine(t *testing.T) {
	out := check(t, objectSrc, `
public class A {
	public A() {}
	public void f() {
		while (false) {
			int x = 1;
		}
	}
}
`)
	if !hasKind(out, diagnostics.UnreachableCodeError) {
		t.Fatalf("a while(false) body is never entered, expected UnreachableCodeError, got %v", out.All())
	}
	if hasKind(out, diagnostics.MethodNeedsReturnError) {
		t.Fatalf("void methods never need MethodNeedsReturnError, got %v", out.All())
	}
}

func TestBareForLoopIsTreatedAsConstantTrue(t *testing.T) {
	out := check(t, objectSrc, `
public class A {
	public A() {}
	public int f() {
		for (;;) {
		}
		return 1;
	}
}
`)
	if !hasKind(out, diagnostics.UnreachableCodeError) {
		t.Fatalf("expected UnreachableCodeError after an unconditional for(;;), got %v", out.All())
	}
}

func TestWhileWithUnknownConditionLeavesCodeAfterReachable(t *testing.T) {
	out := check(t, objectSrc, `
public class A {
	public A() {}
	public int f(boolean b) {
		while (b) {
		}
		return 1;
	}
}
`)
	if hasKind(out, diagnostics.UnreachableCodeError) {
		t.Fatalf("a loop with a non-constant condition might not run at all, expected no UnreachableCodeError, got %v", out.All())
	}
}

func TestFieldForwardReferenceReportsError(t *testing.T) {
	out := check(t, objectSrc, `
public class A {
	public A() {}
	public int x = y;
	public int y = 1;
}
`)
	if !hasKind(out, diagnostics.FieldOrderError) {
		t.Fatalf("expected FieldOrderError, got %v", out.All())
	}
}

func TestFieldBackwardReferenceIsFine(t *testing.T) {
	out := check(t, objectSrc, `
public class A {
	public A() {}
	public int x = 1;
	public int y = x;
}
`)
	if hasKind(out, diagnostics.FieldOrderError) {
		t.Fatalf("y refers to x, which is declared earlier, expected no FieldOrderError, got %v", out.All())
	}
}

func TestSelfReferencingFieldInitializerReportsError(t *testing.T) {
	out := check(t, objectSrc, `
public class A {
	public A() {}
	public int x = x;
}
`)
	if !hasKind(out, diagnostics.FieldOrderError) {
		t.Fatalf("a field reading itself in its own initializer should be a FieldOrderError, got %v", out.All())
	}
}

func TestAssignmentLHSIsExemptFromFieldOrder(t *testing.T) {
	out := check(t, objectSrc, `
public class A {
	public A() {}
	public int x = x = 5;
}
`)
	if hasKind(out, diagnostics.FieldOrderError) {
		t.Fatalf("the immediate assignment target is exempt, expected no FieldOrderError, got %v", out.All())
	}
}

func TestStaticFieldForwardReferenceIsExempt(t *testing.T) {
	out := check(t, objectSrc, `
public class A {
	public A() {}
	public static int x = y;
	public static int y = 1;
}
`)
	if hasKind(out, diagnostics.FieldOrderError) {
		t.Fatalf("static fields are exempt from order checking, expected no FieldOrderError, got %v", out.All())
	}
}

func TestInheritedFieldReferenceIsExempt(t *testing.T) {
	out := check(t, objectSrc, `
public class Base {
	public Base() {}
	public int z = 1;
}
`, `
public class Derived extends Base {
	public Derived() {}
	public int w = z;
}
`)
	if hasKind(out, diagnostics.FieldOrderError) {
		t.Fatalf("z is inherited from Base, expected no FieldOrderError, got %v", out.All())
	}
}
