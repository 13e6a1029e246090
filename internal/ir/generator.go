package ir

import (
	"fmt"

	"github.com/joosc/compiler/internal/ast"
	"github.com/joosc/compiler/internal/constfold"
	"github.com/joosc/compiler/internal/token"
	"github.com/joosc/compiler/internal/typeinfo"
	"github.com/joosc/compiler/internal/typesys"
)

// zeroPos is used for IR positions with no corresponding Joos source
// location: a compiler-synthesized op (a type-init stream's TypeInfo
// construction, a constructor's implicit instance-init call) has
// nothing to attribute a trap to, the same way ir/runtimelink.go's
// LookupRuntimeIds uses a zero token.Range for its own lookups.
var zeroPos = token.Range{}

// Generator lowers a typed, folded, dataflow-checked *ast.Program into
// an ir.Program, grounded throughout on
// original_source/ir/ir_generator.cpp's MethodIRGenerator (and, for
// the three per-type synthetic streams, on how runtime.cpp's
// GenTypeInfoHolder builds a program's TypeInfo objects — done here as
// IR the generator emits directly, not as a fifth synthesized Joos
// file; see internal/runtimesynth's doc comment for why).
type Generator struct {
	tim     typeinfo.TypeInfoMap
	strings *constfold.ConstStringMap
	rt      RuntimeLinkIds

	typeInfoNumParents typesys.FieldId
}

// NewGenerator returns a Generator ready to lower prog. strings must
// be the same ConstStringMap internal/constfold interned every string
// literal into, so ConstString ops can look up the ids it assigned.
func NewGenerator(tim typeinfo.TypeInfoMap, strings *constfold.ConstStringMap, rt RuntimeLinkIds) *Generator {
	g := &Generator{tim: tim, strings: strings, rt: rt}
	info, ok := tim.LookupTypeInfo(rt.TypeInfoType)
	if !ok {
		panic("internal error: __joos_internal__.TypeInfo has no TypeInfo")
	}
	fid, ok := info.Fields.LookupName("numParents")
	if !ok {
		panic("internal error: __joos_internal__.TypeInfo.numParents not found")
	}
	g.typeInfoNumParents = fid
	return g
}

// Generate lowers every compilation unit in prog.
func (g *Generator) Generate(prog *ast.Program) Program {
	units := make([]CompUnit, 0, len(prog.Units))
	for _, u := range prog.Units {
		units = append(units, g.genUnit(u))
	}
	return Program{Units: units, RtIds: g.rt}
}

func (g *Generator) genUnit(u *ast.CompilationUnit) CompUnit {
	cu := CompUnit{Filename: fmt.Sprintf("f%d.s", u.File)}
	for _, t := range u.Types {
		cu.Methods = append(cu.Methods, g.genType(t)...)
	}
	return cu
}

// typeBaseFor is the type_base an opcode argument should carry for
// tid: every array dimension/element combination shares the single
// runtime Array type (spec.md §3), everything else is tid's own base.
func (g *Generator) typeBaseFor(tid typesys.TypeId) int32 {
	if tid.NDims > 0 {
		return g.rt.ArrayRuntimeType.Base
	}
	return tid.Base
}

// genType emits a TypeDecl's three synthetic streams plus one MethodIR
// per declared method/constructor with a body (spec.md §4.7's
// MethodDecl/ConstructorDecl lowering; abstract and native methods
// have no body to lower and contribute no stream).
func (g *Generator) genType(t *ast.TypeDecl) []MethodIR {
	out := make([]MethodIR, 0, len(t.Methods)+len(t.Constructors)+3)
	out = append(out, g.genTypeInit(t))
	out = append(out, g.genInstanceInit(t))
	out = append(out, g.genStaticInit(t))
	for _, m := range t.Methods {
		if m.Body == nil {
			continue
		}
		out = append(out, g.genMethod(t, m))
	}
	for _, c := range t.Constructors {
		out = append(out, g.genConstructor(t, c))
	}
	return out
}

// genTypeInit builds this type's single runtime TypeInfo object —
// base, a parents array holding every direct extends/implements
// ancestor's own TypeInfo, and a numParents count the generator pokes
// directly since Joos source has no array-length facility to compute
// it itself (internal/runtimesynth's TypeInfo.java doc comment) — and
// stores it into the type's static TypeInfo field slot.
func (g *Generator) genTypeInit(t *ast.TypeDecl) MethodIR {
	sb := NewStreamBuilder()

	info, ok := g.tim.LookupTypeInfo(t.TypeID)
	var ancestors []typesys.TypeId
	if ok {
		for _, e := range info.Extends {
			ancestors = append(ancestors, e.Type)
		}
		for _, e := range info.Implements {
			ancestors = append(ancestors, e.Type)
		}
	}

	lenMem := sb.AllocTemp(SizeInt)
	sb.ConstNumeric(lenMem, int32(len(ancestors)))
	parentsArr := sb.AllocArray(SizePtr, g.rt.TypeInfoType.Base, lenMem, t.Range)

	for i, anc := range ancestors {
		idxMem := sb.AllocTemp(SizeInt)
		sb.ConstNumeric(idxMem, int32(i))
		addr := sb.AllocTemp(SizePtr)
		sb.ArrayAddr(addr, parentsArr, idxMem, SizePtr, zeroPos)
		ancInfo := sb.AllocTemp(SizePtr)
		sb.FieldDeref(ancInfo, sb.AllocDummy(), g.typeBaseFor(anc), typesys.StaticTypeInfoFieldID)
		sb.MovToAddr(addr, ancInfo)
	}

	baseConst := sb.AllocTemp(SizeInt)
	sb.ConstNumeric(baseConst, t.TypeID.Base)

	obj := sb.AllocHeap(g.rt.TypeInfoType.Base)
	sb.StaticCall(sb.AllocDummy(), g.rt.TypeInfoType.Base, g.rt.TypeInfoCtor, []Mem{obj, baseConst, parentsArr}, t.Range)

	npAddr := sb.AllocTemp(SizePtr)
	sb.FieldAddr(npAddr, obj, g.rt.TypeInfoType.Base, g.typeInfoNumParents)
	npConst := sb.AllocTemp(SizeInt)
	sb.ConstNumeric(npConst, int32(len(ancestors)))
	sb.MovToAddr(npAddr, npConst)

	slotAddr := sb.AllocTemp(SizePtr)
	sb.FieldAddr(slotAddr, sb.AllocDummy(), t.TypeID.Base, typesys.StaticTypeInfoFieldID)
	sb.MovToAddr(slotAddr, obj)

	sb.Ret()
	return sb.Build(false, t.TypeID.Base, typesys.TypeInitMethodID)
}

// genInstanceInit chains to the direct parent's own instance-init (so
// a constructor calling its own class's instance-init transitively
// initializes every ancestor's fields too) and then runs this type's
// own field initializers in declaration order.
func (g *Generator) genInstanceInit(t *ast.TypeDecl) MethodIR {
	sb := NewStreamBuilder()
	params := sb.AllocParams([]SizeClass{SizePtr})
	thisMem := params[0]

	info, ok := g.tim.LookupTypeInfo(t.TypeID)
	if ok && len(info.Extends) > 0 {
		parent := info.Extends[0].Type
		sb.StaticCall(sb.AllocDummy(), g.typeBaseFor(parent), typesys.InstanceInitMethodID, []Mem{thisMem}, zeroPos)
	}

	mg := &methodGen{g: g, sb: sb, locals: map[typesys.LocalVarId]Mem{}, curType: t.TypeID, thisMem: thisMem, static: false}
	for _, f := range t.Fields {
		if f.Modifiers.IsStatic() || f.Init == nil {
			continue
		}
		val := mg.genExpr(f.Init)
		addr := sb.AllocTemp(SizePtr)
		sb.FieldAddr(addr, thisMem, t.TypeID.Base, f.FieldID)
		sb.MovToAddr(addr, val)
	}

	sb.Ret()
	return sb.Build(false, t.TypeID.Base, typesys.InstanceInitMethodID)
}

// genStaticInit runs this type's own static field initializers.
// Static-init is never chained to a parent the way instance-init is —
// each type's static fields are independent of its ancestors' — so it
// only ever touches t's own directly-declared fields.
func (g *Generator) genStaticInit(t *ast.TypeDecl) MethodIR {
	sb := NewStreamBuilder()
	mg := &methodGen{g: g, sb: sb, locals: map[typesys.LocalVarId]Mem{}, curType: t.TypeID, static: true}
	for _, f := range t.Fields {
		if !f.Modifiers.IsStatic() || f.Init == nil {
			continue
		}
		val := mg.genExpr(f.Init)
		addr := sb.AllocTemp(SizePtr)
		sb.FieldAddr(addr, sb.AllocDummy(), t.TypeID.Base, f.FieldID)
		sb.MovToAddr(addr, val)
	}
	sb.Ret()
	return sb.Build(false, t.TypeID.Base, typesys.StaticInitMethodID)
}

func (g *Generator) genMethod(t *ast.TypeDecl, m *ast.MethodDecl) MethodIR {
	sb := NewStreamBuilder()
	static := m.Modifiers.IsStatic()

	sizes := make([]SizeClass, 0, len(m.Params)+1)
	if !static {
		sizes = append(sizes, SizePtr)
	}
	for _, p := range m.Params {
		sizes = append(sizes, SizeClassFrom(p.Type.Resolved))
	}
	params := sb.AllocParams(sizes)

	locals := map[typesys.LocalVarId]Mem{}
	var thisMem Mem
	idx := 0
	if !static {
		thisMem = params[0]
		idx = 1
	}
	for i, p := range m.Params {
		locals[p.LocalVarID] = params[idx+i]
	}

	mg := &methodGen{g: g, sb: sb, locals: locals, curType: t.TypeID, thisMem: thisMem, static: static}
	mg.genBlock(m.Body)
	if m.ReturnType.IsVoid {
		sb.Ret()
	}

	isEntry := static && len(m.Params) == 0 && m.Name == "test"
	return sb.Build(isEntry, t.TypeID.Base, m.MethodID)
}

func (g *Generator) genConstructor(t *ast.TypeDecl, c *ast.MethodDecl) MethodIR {
	sb := NewStreamBuilder()
	sizes := make([]SizeClass, 0, len(c.Params)+1)
	sizes = append(sizes, SizePtr)
	for _, p := range c.Params {
		sizes = append(sizes, SizeClassFrom(p.Type.Resolved))
	}
	params := sb.AllocParams(sizes)
	thisMem := params[0]

	locals := map[typesys.LocalVarId]Mem{}
	for i, p := range c.Params {
		locals[p.LocalVarID] = params[i+1]
	}

	sb.StaticCall(sb.AllocDummy(), t.TypeID.Base, typesys.InstanceInitMethodID, []Mem{thisMem}, c.Range)

	mg := &methodGen{g: g, sb: sb, locals: locals, curType: t.TypeID, thisMem: thisMem, static: false}
	mg.genBlock(c.Body)
	sb.Ret()

	return sb.Build(false, t.TypeID.Base, c.MethodID)
}
