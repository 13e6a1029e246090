// Package typecheck assigns a typesys.TypeId to every expression in a
// resolved program, and validates every assignment, cast, call, field
// access, and control-flow construct spec.md §4.4 names. It runs after
// internal/declresolver and internal/typeinfo.Builder.Build have
// produced a TypeInfoMap with every declaration's member tables, and
// before internal/constfold.
//
// Unlike internal/weeder and internal/declresolver, the Checker does
// not ride the generic ast.Visitor hook (internal/ast/visitor.go):
// that hook fires once per node with no way to run code both before
// and after its children, which a block's EnterScope/LeaveScope pair
// needs. Instead, grounded on the context-threading builder pattern of
// original_source/types/typechecker.h, Checker carries its current
// context (type, static-ness, method return type, symbol table) as
// plain fields and hands out a value copy with the relevant field
// changed whenever it descends into a new type or method.
package typecheck

import (
	"github.com/joosc/compiler/internal/ast"
	"github.com/joosc/compiler/internal/diagnostics"
	"github.com/joosc/compiler/internal/typeinfo"
	"github.com/joosc/compiler/internal/typeset"
	"github.com/joosc/compiler/internal/typesys"
)

// Checker rewrites one program's worth of compilation units against an
// already-built TypeInfoMap.
type Checker struct {
	tim        typeinfo.TypeInfoMap
	arrayType  typesys.TypeId
	stringType typesys.TypeId
	out        *diagnostics.List

	// per-compilation-unit
	ts typeset.TypeSet

	// per-type
	curType typesys.TypeId

	// per-method
	inMethod bool
	static   bool
	retType  typesys.TypeId
	sym      *SymbolTable
}

// New returns a Checker. ts is the program-wide TypeSet (unscoped;
// Checker re-derives the per-unit scoped view the same way
// internal/declresolver does). arrayType and stringType are the
// TypeIds of the synthetic array type and java.lang.String,
// respectively (internal/runtimesynth).
func New(ts typeset.TypeSet, tim typeinfo.TypeInfoMap, arrayType, stringType typesys.TypeId, out *diagnostics.List) *Checker {
	return &Checker{
		tim:        tim,
		arrayType:  arrayType,
		stringType: stringType,
		out:        out,
		ts:         ts,
	}
}

// Check rewrites prog, returning a new Program with every expression's
// TypeId assigned.
func (c *Checker) Check(prog *ast.Program) *ast.Program {
	units := make([]*ast.CompilationUnit, len(prog.Units))
	for i, u := range prog.Units {
		units[i] = c.checkUnit(u)
	}
	return &ast.Program{Units: units}
}

func (c *Checker) checkUnit(u *ast.CompilationUnit) *ast.CompilationUnit {
	var discard diagnostics.List // import errors already reported by declresolver
	uc := *c
	uc.ts = c.ts.WithPackage(u.Package).WithImports(u.Imports, &discard)

	types := make([]*ast.TypeDecl, len(u.Types))
	for i, td := range u.Types {
		types[i] = uc.checkType(td)
	}
	nu := *u
	nu.Types = types
	return &nu
}

func (c *Checker) checkType(td *ast.TypeDecl) *ast.TypeDecl {
	tc := *c
	tc.curType = td.TypeID

	fields := make([]*ast.FieldDecl, len(td.Fields))
	for i, f := range td.Fields {
		fields[i] = tc.checkField(f)
	}

	methods := make([]*ast.MethodDecl, len(td.Methods))
	for i, m := range td.Methods {
		methods[i] = tc.checkMethod(m, false)
	}

	ctors := make([]*ast.MethodDecl, len(td.Constructors))
	for i, m := range td.Constructors {
		ctors[i] = tc.checkMethod(m, true)
	}

	ntd := *td
	ntd.Fields = fields
	ntd.Methods = methods
	ntd.Constructors = ctors
	return &ntd
}

func (c *Checker) checkField(f *ast.FieldDecl) *ast.FieldDecl {
	if f.Init == nil {
		return f
	}
	mc := *c
	mc.inMethod = true
	mc.static = f.Modifiers.IsStatic()
	mc.sym = NewSymbolTable()

	nf := *f
	nf.Init = mc.checkExpr(f.Init)
	if !c.isAssignable(f.Type.Resolved, nf.Init.TypeID()) {
		c.out.Addf(diagnostics.UnassignableError, nf.Init.Pos(),
			"cannot initialize field of this type with this value")
	}
	return &nf
}

func (c *Checker) checkMethod(m *ast.MethodDecl, isCtor bool) *ast.MethodDecl {
	if m.Body == nil {
		return m
	}
	mc := *c
	mc.inMethod = true
	mc.static = m.Modifiers.IsStatic()
	if isCtor {
		mc.retType = typesys.Void
	} else {
		mc.retType = m.ReturnType.Resolved
	}
	mc.sym = NewSymbolTable()
	params := make([]*ast.Param, len(m.Params))
	for i, p := range m.Params {
		np := *p
		np.LocalVarID = mc.sym.DeclareParam(p.Type.Resolved, p.Name, p.NameRange, mc.out)
		params[i] = &np
	}

	nm := *m
	nm.Params = params
	nm.Body = mc.checkStmt(m.Body).(*ast.Block)
	return &nm
}
