package typeinfo_test

import (
	"testing"

	"github.com/joosc/compiler/internal/ast"
	"github.com/joosc/compiler/internal/diagnostics"
	"github.com/joosc/compiler/internal/token"
	"github.com/joosc/compiler/internal/typeinfo"
	"github.com/joosc/compiler/internal/typesys"
)

func zr() token.Range { return token.Range{} }

func hasKind(out *diagnostics.List, k diagnostics.Kind) bool {
	for _, e := range out.All() {
		if e.Kind == k {
			return true
		}
	}
	return false
}

func tid(base int32) typesys.TypeId { return typesys.TypeId{Base: base} }

func newBuilder() *typeinfo.Builder {
	return typeinfo.NewBuilder(tid(100), tid(101))
}

func TestCyclicExtendsGraphReportsExtendsCycleError(t *testing.T) {
	b := newBuilder()
	foo, bar, baz := tid(1), tid(2), tid(3)
	b.PutType(foo, ast.ModPublic, typesys.Class, "Foo", "", zr(), []typeinfo.EdgeRef{{Type: bar, Range: zr()}}, nil)
	b.PutType(bar, ast.ModPublic, typesys.Class, "Bar", "", zr(), []typeinfo.EdgeRef{{Type: baz, Range: zr()}}, nil)
	b.PutType(baz, ast.ModPublic, typesys.Class, "Baz", "", zr(), []typeinfo.EdgeRef{{Type: foo, Range: zr()}}, nil)

	var out diagnostics.List
	b.Build(&out)

	if !hasKind(&out, diagnostics.ExtendsCycleError) {
		t.Fatalf("expected ExtendsCycleError, got %v", out.All())
	}
}

func TestDiamondInterfacesBuildCleanly(t *testing.T) {
	b := newBuilder()
	a, bI, c, d := tid(1), tid(2), tid(3), tid(4)
	b.PutType(a, ast.ModPublic, typesys.Interface, "A", "", zr(), nil, nil)
	b.PutType(bI, ast.ModPublic, typesys.Interface, "B", "", zr(), []typeinfo.EdgeRef{{Type: a, Range: zr()}}, nil)
	b.PutType(c, ast.ModPublic, typesys.Interface, "C", "", zr(), []typeinfo.EdgeRef{{Type: a, Range: zr()}}, nil)
	b.PutType(d, ast.ModPublic, typesys.Interface, "D", "", zr(), []typeinfo.EdgeRef{{Type: bI, Range: zr()}, {Type: c, Range: zr()}}, nil)

	var out diagnostics.List
	m := b.Build(&out)
	if out.HasErrors() {
		t.Fatalf("unexpected errors: %v", out.All())
	}

	dInfo, _ := m.LookupTypeInfo(d)
	aInfo, _ := m.LookupTypeInfo(a)
	if dInfo.TopSortIndex <= aInfo.TopSortIndex {
		t.Fatalf("expected D to sort after A, got D=%d A=%d", dInfo.TopSortIndex, aInfo.TopSortIndex)
	}
	if !m.IsAncestor(d, a) {
		t.Fatalf("expected A to be an ancestor of D via both diamond paths")
	}
}

func TestInterfaceExtendingClassIsRejected(t *testing.T) {
	b := newBuilder()
	foo, bar := tid(1), tid(2)
	b.PutType(foo, ast.ModPublic, typesys.Class, "Foo", "", zr(), nil, nil)
	b.PutType(bar, ast.ModPublic, typesys.Interface, "Bar", "", zr(), []typeinfo.EdgeRef{{Type: foo, Range: zr()}}, nil)

	var out diagnostics.List
	b.Build(&out)

	if !hasKind(&out, diagnostics.InterfaceExtendsClassError) {
		t.Fatalf("expected InterfaceExtendsClassError, got %v", out.All())
	}
}

func TestDuplicateMethodReportsMethodDuplicateDefinitionError(t *testing.T) {
	b := newBuilder()
	a := tid(1)
	b.PutType(a, ast.ModPublic, typesys.Class, "A", "", zr(), nil, nil)
	b.PutMethod(a, typesys.Void, nil, ast.ModPublic, "foo", zr(), false, true)
	b.PutMethod(a, typesys.Int, nil, ast.ModPublic, "foo", zr(), false, true)

	var out diagnostics.List
	b.Build(&out)

	if !hasKind(&out, diagnostics.MethodDuplicateDefinitionError) {
		t.Fatalf("expected MethodDuplicateDefinitionError, got %v", out.All())
	}
}

func TestMisnamedConstructorReportsConstructorNameError(t *testing.T) {
	b := newBuilder()
	a := tid(1)
	b.PutType(a, ast.ModPublic, typesys.Class, "A", "", zr(), nil, nil)
	b.PutMethod(a, typesys.Void, nil, ast.ModPublic, "B", zr(), true, true)

	var out diagnostics.List
	b.Build(&out)

	if !hasKind(&out, diagnostics.ConstructorNameError) {
		t.Fatalf("expected ConstructorNameError, got %v", out.All())
	}
}

func TestOverrideWithDifferingReturnTypeIsRejected(t *testing.T) {
	b := newBuilder()
	a, c := tid(1), tid(2)
	b.PutType(a, ast.ModPublic, typesys.Class, "A", "", zr(), nil, nil)
	b.PutType(c, ast.ModPublic, typesys.Class, "C", "", zr(), []typeinfo.EdgeRef{{Type: a, Range: zr()}}, nil)
	b.PutMethod(a, typesys.Void, nil, ast.ModPublic, "foo", zr(), false, true)
	b.PutMethod(a, typesys.Void, nil, ast.ModPublic, "A", zr(), true, true)
	b.PutMethod(c, typesys.Int, nil, ast.ModPublic, "foo", zr(), false, true)
	b.PutMethod(c, typesys.Void, nil, ast.ModPublic, "C", zr(), true, true)

	var out diagnostics.List
	b.Build(&out)

	if !hasKind(&out, diagnostics.DifferingReturnTypeError) {
		t.Fatalf("expected DifferingReturnTypeError, got %v", out.All())
	}
}

func TestExtendingFinalClassIsRejected(t *testing.T) {
	b := newBuilder()
	a, c := tid(1), tid(2)
	b.PutType(a, ast.ModPublic|ast.ModFinal, typesys.Class, "A", "", zr(), nil, nil)
	b.PutType(c, ast.ModPublic, typesys.Class, "C", "", zr(), []typeinfo.EdgeRef{{Type: a, Range: zr()}}, nil)
	b.PutMethod(a, typesys.Void, nil, ast.ModPublic, "A", zr(), true, true)
	b.PutMethod(c, typesys.Void, nil, ast.ModPublic, "C", zr(), true, true)

	var out diagnostics.List
	b.Build(&out)

	if !hasKind(&out, diagnostics.ParentFinalError) {
		t.Fatalf("expected ParentFinalError, got %v", out.All())
	}
}

func TestExtendingClassWithNoConstructorIsRejected(t *testing.T) {
	b := newBuilder()
	a, c := tid(1), tid(2)
	b.PutType(a, ast.ModPublic, typesys.Class, "A", "", zr(), nil, nil)
	b.PutType(c, ast.ModPublic, typesys.Class, "C", "", zr(), []typeinfo.EdgeRef{{Type: a, Range: zr()}}, nil)

	var out diagnostics.List
	b.Build(&out)

	if !hasKind(&out, diagnostics.ParentClassEmptyConstructorError) {
		t.Fatalf("expected ParentClassEmptyConstructorError, got %v", out.All())
	}
}

func TestConcreteSubclassMissingAbstractMethodIsRejected(t *testing.T) {
	b := newBuilder()
	a, bar := tid(1), tid(2)
	b.PutType(a, ast.ModPublic|ast.ModAbstract, typesys.Class, "A", "", zr(), nil, nil)
	b.PutType(bar, ast.ModPublic, typesys.Class, "Bar", "", zr(), []typeinfo.EdgeRef{{Type: a, Range: zr()}}, nil)
	b.PutMethod(a, typesys.Void, nil, ast.ModPublic, "A", zr(), true, true)
	b.PutMethod(a, typesys.Void, nil, ast.ModPublic|ast.ModAbstract, "foo", zr(), false, false)
	b.PutMethod(bar, typesys.Void, nil, ast.ModPublic, "Bar", zr(), true, true)

	var out diagnostics.List
	b.Build(&out)

	if !hasKind(&out, diagnostics.NeedAbstractClassError) {
		t.Fatalf("expected NeedAbstractClassError, got %v", out.All())
	}
}

func TestResolveCallRejectsStaticInstanceMismatch(t *testing.T) {
	b := newBuilder()
	a := tid(1)
	b.PutType(a, ast.ModPublic, typesys.Class, "A", "", zr(), nil, nil)
	b.PutMethod(a, typesys.Void, nil, ast.ModPublic, "bar", zr(), false, true)

	var out diagnostics.List
	m := b.Build(&out)
	if out.HasErrors() {
		t.Fatalf("unexpected build errors: %v", out.All())
	}

	aInfo, _ := m.LookupTypeInfo(a)

	var callErrs diagnostics.List
	mid := aInfo.Methods.ResolveCall(m, a, typeinfo.Static, a, nil, "bar", zr(), &callErrs)
	if !mid.IsError() || !hasKind(&callErrs, diagnostics.StaticMethodOnInstanceError) {
		t.Fatalf("expected StaticMethodOnInstanceError calling an instance method via static syntax, got %v", callErrs.All())
	}
}

func TestResolveAccessRejectsInstanceFieldFromStaticContext(t *testing.T) {
	b := newBuilder()
	a := tid(1)
	b.PutType(a, ast.ModPublic, typesys.Class, "A", "", zr(), nil, nil)
	b.PutField(a, typesys.Int, ast.ModPublic, "x", zr())

	var out diagnostics.List
	m := b.Build(&out)
	if out.HasErrors() {
		t.Fatalf("unexpected build errors: %v", out.All())
	}

	aInfo, _ := m.LookupTypeInfo(a)

	var accessErrs diagnostics.List
	aInfo.Fields.ResolveAccess(m, a, typeinfo.Static, a, "x", zr(), &accessErrs)
	if !hasKind(&accessErrs, diagnostics.InstanceFieldOnStaticError) {
		t.Fatalf("expected InstanceFieldOnStaticError, got %v", accessErrs.All())
	}
}

func TestResolveAccessRejectsCrossPackageProtectedField(t *testing.T) {
	b := newBuilder()
	a, other := tid(1), tid(2)
	b.PutType(a, ast.ModPublic, typesys.Class, "A", "foo", zr(), nil, nil)
	b.PutType(other, ast.ModPublic, typesys.Class, "Other", "baz", zr(), nil, nil)
	b.PutField(a, typesys.Int, ast.ModProtected, "x", zr())

	var out diagnostics.List
	m := b.Build(&out)
	if out.HasErrors() {
		t.Fatalf("unexpected build errors: %v", out.All())
	}

	aInfo, _ := m.LookupTypeInfo(a)

	var accessErrs diagnostics.List
	aInfo.Fields.ResolveAccess(m, other, typeinfo.Instance, a, "x", zr(), &accessErrs)
	if !hasKind(&accessErrs, diagnostics.PermissionError) {
		t.Fatalf("expected PermissionError, got %v", accessErrs.All())
	}
}
