package ir_test

import (
	"regexp"
	"testing"

	"github.com/joosc/compiler/internal/ast"
	"github.com/joosc/compiler/internal/constfold"
	"github.com/joosc/compiler/internal/declresolver"
	"github.com/joosc/compiler/internal/diagnostics"
	"github.com/joosc/compiler/internal/ir"
	"github.com/joosc/compiler/internal/parser"
	"github.com/joosc/compiler/internal/runtimesynth"
	"github.com/joosc/compiler/internal/token"
	"github.com/joosc/compiler/internal/typecheck"
	"github.com/joosc/compiler/internal/typeinfo"
	"github.com/joosc/compiler/internal/typeset"
	"github.com/joosc/compiler/internal/weeder"
)

var typeNameRe = regexp.MustCompile(`(?:class|interface)\s+(\w+)`)

// build runs the runtime support library plus srcs (one public type per
// string) through every stage up to and including internal/ir, and
// returns the lowered ir.Program.
func build(t *testing.T, srcs ...string) ir.Program {
	t.Helper()
	fs := token.NewFileSet()
	prog := &ast.Program{}

	addSource := func(name, src string) {
		id := fs.AddFile(name, []byte(src))
		p := parser.New(id, []byte(src))
		cu := p.ParseCompilationUnit()
		if len(p.Errors()) != 0 {
			t.Fatalf("unexpected parse errors in %s: %v", name, p.Errors())
		}
		prog.Units = append(prog.Units, cu)
	}

	for _, f := range runtimesynth.Files() {
		addSource(f.Name, f.Content)
	}
	for _, src := range srcs {
		m := typeNameRe.FindStringSubmatch(src)
		if m == nil {
			t.Fatalf("could not find a type declaration in source: %s", src)
		}
		addSource(m[1]+".java", src)
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

	objectType := ts.Get([]string{"java", "lang", "Object"}, token.Range{}, nil)
	arrayType := ts.Get([]string{"__joos_internal__", "Array"}, token.Range{}, nil)
	stringType := ts.Get([]string{"java", "lang", "String"}, token.Range{}, nil)

	tib := typeinfo.NewBuilder(objectType, arrayType)
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
	c := typecheck.New(ts, tim, arrayType, stringType, &checkOut)
	prog = c.Check(prog)
	if checkOut.HasErrors() {
		t.Fatalf("unexpected typecheck errors: %v", checkOut.All())
	}

	strings := constfold.NewConstStringMap()
	prog = constfold.New(stringType, strings).Fold(prog)

	rt := ir.LookupRuntimeIds(ts, tim)
	return ir.NewGenerator(tim, strings, rt).Generate(prog)
}

func opCounts(m ir.MethodIR) map[ir.OpType]int {
	counts := map[ir.OpType]int{}
	for _, op := range m.Ops {
		counts[op.Op]++
	}
	return counts
}

func TestEmptyMethodBodyEmitsBareReturn(t *testing.T) {
	p := build(t, `
public class A {
	public A() {}
	public void f() {
	}
}
`)
	var found *ir.MethodIR
	for _, cu := range p.Units {
		for i, m := range cu.Methods {
			if len(m.Ops) > 0 && m.Ops[len(m.Ops)-1].Op == ir.OpRet {
				found = &cu.Methods[i]
			}
		}
	}
	if found == nil {
		t.Fatalf("expected at least one method ending in a ret op")
	}
}

func TestArithmeticExpressionEmitsExpectedOpcodes(t *testing.T) {
	p := build(t, `
public class A {
	public A() {}
	public int f(int x, int y) {
		return x + y * 2;
	}
}
`)
	found := false
	for _, cu := range p.Units {
		for _, m := range cu.Methods {
			counts := opCounts(m)
			if counts[ir.OpMul] == 1 && counts[ir.OpAdd] == 1 {
				found = true
			}
		}
	}
	if !found {
		t.Fatalf("expected a method with exactly one mul and one add op, got units: %+v", p.Units)
	}
}

func TestIfStatementEmitsTwoLabels(t *testing.T) {
	p := build(t, `
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
	found := false
	for _, cu := range p.Units {
		for _, m := range cu.Methods {
			counts := opCounts(m)
			if counts[ir.OpLabel] == 2 && counts[ir.OpJmp] == 1 && counts[ir.OpJmpIf] == 1 {
				found = true
			}
		}
	}
	if !found {
		t.Fatalf("expected an if/else method with two labels, one jmp, one jmp_if")
	}
}

func TestWhileLoopEmitsBackwardJump(t *testing.T) {
	p := build(t, `
public class A {
	public A() {}
	public void f(boolean b) {
		while (b) {
		}
	}
}
`)
	found := false
	for _, cu := range p.Units {
		for _, m := range cu.Methods {
			counts := opCounts(m)
			if counts[ir.OpLabel] == 2 && counts[ir.OpJmp] == 1 && counts[ir.OpJmpIf] == 1 {
				found = true
			}
		}
	}
	if !found {
		t.Fatalf("expected a while-loop method with two labels (start/end)")
	}
}

func TestShortCircuitAndSkipsRHSEvaluation(t *testing.T) {
	p := build(t, `
public class A {
	public A() {}
	public boolean f(boolean x, boolean y) {
		return x && y;
	}
}
`)
	found := false
	for _, cu := range p.Units {
		for _, m := range cu.Methods {
			counts := opCounts(m)
			if counts[ir.OpNot] >= 1 && counts[ir.OpJmpIf] >= 1 && counts[ir.OpLabel] >= 1 {
				found = true
			}
		}
	}
	if !found {
		t.Fatalf("expected && to lower through a not+jmp_if short-circuit")
	}
}

func TestFieldAssignmentEmitsFieldAddr(t *testing.T) {
	p := build(t, `
public class A {
	public int x;
	public A() {}
	public void set(int v) {
		this.x = v;
	}
}
`)
	found := false
	for _, cu := range p.Units {
		for _, m := range cu.Methods {
			counts := opCounts(m)
			if counts[ir.OpFieldAddr] == 1 && counts[ir.OpMovToAddr] >= 1 {
				found = true
			}
		}
	}
	if !found {
		t.Fatalf("expected this.x = v to emit field_addr + mov_to_addr")
	}
}

func TestNewObjectEmitsAllocHeapAndStaticCall(t *testing.T) {
	p := build(t, `
public class A {
	public A() {}
	public A make() {
		return new A();
	}
}
`)
	found := false
	for _, cu := range p.Units {
		for _, m := range cu.Methods {
			counts := opCounts(m)
			if counts[ir.OpAllocHeap] >= 1 && counts[ir.OpStaticCall] >= 1 {
				found = true
			}
		}
	}
	if !found {
		t.Fatalf("expected new A() to emit alloc_heap + static_call to the constructor")
	}
}

func TestInstanceMethodCallEmitsDynamicCall(t *testing.T) {
	p := build(t, `
public class A {
	public A() {}
	public int g() {
		return 1;
	}
	public int f() {
		return this.g();
	}
}
`)
	found := false
	for _, cu := range p.Units {
		for _, m := range cu.Methods {
			counts := opCounts(m)
			if counts[ir.OpDynamicCall] == 1 {
				found = true
			}
		}
	}
	if !found {
		t.Fatalf("expected this.g() to lower to one dynamic_call")
	}
}

func TestStaticMethodCallEmitsStaticCall(t *testing.T) {
	p := build(t, `
public class A {
	public A() {}
	public static int g() {
		return 1;
	}
	public int f() {
		return g();
	}
}
`)
	callCount := 0
	for _, cu := range p.Units {
		for _, m := range cu.Methods {
			callCount += opCounts(m)[ir.OpStaticCall]
		}
	}
	if callCount == 0 {
		t.Fatalf("expected g() to lower to a static_call")
	}
}

func TestArrayAccessEmitsCheckArrayStoreForReferenceElements(t *testing.T) {
	p := build(t, `
public class A {
	public A() {}
	public void f(A[] arr, A v) {
		arr[0] = v;
	}
}
`)
	found := false
	for _, cu := range p.Units {
		for _, m := range cu.Methods {
			counts := opCounts(m)
			if counts[ir.OpCheckArrayStore] == 1 && counts[ir.OpArrayAddr] == 1 {
				found = true
			}
		}
	}
	if !found {
		t.Fatalf("expected a reference-typed array store to emit check_array_store + array_addr")
	}
}

func TestPrimitiveArrayStoreEmitsNoCheckArrayStore(t *testing.T) {
	p := build(t, `
public class A {
	public A() {}
	public void f(int[] arr) {
		arr[0] = 1;
	}
}
`)
	for _, cu := range p.Units {
		for _, m := range cu.Methods {
			if opCounts(m)[ir.OpCheckArrayStore] != 0 {
				t.Fatalf("a primitive array store should never emit check_array_store")
			}
		}
	}
}

func TestReferenceCastEmitsCheckCast(t *testing.T) {
	p := build(t, `
public class A {
	public A() {}
}
`, `
public class B extends A {
	public B() {}
	public A f(A a) {
		return (B) a;
	}
}
`)
	found := false
	for _, cu := range p.Units {
		for _, m := range cu.Methods {
			if opCounts(m)[ir.OpCheckCast] == 1 {
				found = true
			}
		}
	}
	if !found {
		t.Fatalf("expected a reference cast to emit exactly one check_cast op")
	}
}

func TestInstanceOfEmitsGetTypeInfoAndStaticCall(t *testing.T) {
	p := build(t, `
public class A {
	public A() {}
	public boolean f(Object o) {
		return o instanceof A;
	}
}
`)
	found := false
	for _, cu := range p.Units {
		for _, m := range cu.Methods {
			counts := opCounts(m)
			if counts[ir.OpGetTypeInfo] == 1 && counts[ir.OpStaticCall] >= 1 {
				found = true
			}
		}
	}
	if !found {
		t.Fatalf("expected instanceof to emit get_type_info + a static_call to TypeInfo.InstanceOf")
	}
}

func TestTypeInitStreamExistsForEveryDeclaredType(t *testing.T) {
	p := build(t, `
public class A {
	public A() {}
}
`)
	found := false
	for _, cu := range p.Units {
		for _, m := range cu.Methods {
			if m.MethodID == ir.MethodId(-3) { // typesys.TypeInitMethodID
				found = true
			}
		}
	}
	if !found {
		t.Fatalf("expected a type-init stream for A")
	}
}

func TestStringConcatenationWrapsNonStringOperand(t *testing.T) {
	p := build(t, `
public class A {
	public A() {}
	public String f(int x) {
		return "n=" + x;
	}
}
`)
	found := false
	for _, cu := range p.Units {
		for _, m := range cu.Methods {
			if opCounts(m)[ir.OpDynamicCall] >= 1 && opCounts(m)[ir.OpStaticCall] >= 1 {
				found = true
			}
		}
	}
	if !found {
		t.Fatalf(`expected "n=" + x to wrap x via String.valueOf (static_call) then concat (dynamic_call)`)
	}
}
