package ir

import (
	"github.com/joosc/compiler/internal/token"
	"github.com/joosc/compiler/internal/typesys"
)

// StreamBuilder accumulates one method's Ops/Args vectors. Grounded on
// ir/stream_builder.h's StreamBuilder (whose bodies are themselves
// unimplemented in the original — only its method shapes survive) and
// on ir_generator.cpp's calling convention for each shape.
type StreamBuilder struct {
	ops    []Op
	args   []uint64
	nextID MemId
	labels LabelId
	params []SizeClass
}

// NewStreamBuilder returns an empty builder.
func NewStreamBuilder() *StreamBuilder {
	return &StreamBuilder{nextID: invalidMemID + 1}
}

func (b *StreamBuilder) emit(op OpType, args ...uint64) {
	begin := len(b.args)
	b.args = append(b.args, args...)
	b.ops = append(b.ops, Op{Op: op, Begin: begin, End: len(b.args)})
}

func posArgs(pos token.Range) [2]uint64 {
	return [2]uint64{uint64(pos.Begin.File), uint64(pos.Begin.Offset)}
}

func (b *StreamBuilder) alloc(size SizeClass) Mem {
	m := Mem{id: b.nextID, size: size, valid: true}
	b.nextID++
	return m
}

// AllocTemp allocates a single-use scratch slot, emitting alloc_mem
// with is_immutable=true: a temp is written exactly once by the code
// that follows its allocation, matching every AllocTemp call site in
// ir_generator.cpp.
func (b *StreamBuilder) AllocTemp(size SizeClass) Mem {
	m := b.alloc(size)
	b.emit(OpAllocMem, m.arg(), uint64(size), 1)
	return m
}

// AllocLocal allocates a slot meant to be written more than once (the
// &&/|| short-circuit accumulator, a declared local variable, a loop's
// init-scoped variable), emitting alloc_mem with is_immutable=false.
func (b *StreamBuilder) AllocLocal(size SizeClass) Mem {
	m := b.alloc(size)
	b.emit(OpAllocMem, m.arg(), uint64(size), 0)
	return m
}

// AllocHeap allocates a new heap object of the given class/interface
// type, sized as a pointer.
func (b *StreamBuilder) AllocHeap(typeBase int32) Mem {
	m := b.alloc(SizePtr)
	b.emit(OpAllocHeap, m.arg(), uint64(uint32(typeBase)))
	return m
}

// AllocArray allocates a new array of elemSize-sized elements of
// runtime element type elemTypeBase, length lenMem, sized as a pointer
// (an array is always reference-typed). pos attributes a negative- or
// mismatched-length fault to the `new T[n]` expression that allocated
// it, grounded on ir_generator.cpp's NewArrayExpr passing the element
// TypeId and new-token position through to AllocArray.
func (b *StreamBuilder) AllocArray(elemSize SizeClass, elemTypeBase int32, lenMem Mem, pos token.Range) Mem {
	m := b.alloc(SizePtr)
	p := posArgs(pos)
	b.emit(OpAllocArray, m.arg(), uint64(elemSize), uint64(uint32(elemTypeBase)), lenMem.arg(), p[0], p[1])
	return m
}

// AllocDummy returns an invalid handle for "no result needed" contexts
// (a statement-level call whose return value is discarded, a
// constructor's own is-a-value slot).
func (b *StreamBuilder) AllocDummy() Mem {
	return Mem{id: invalidMemID, valid: false}
}

// Dealloc emits dealloc_mem for m, the explicit replacement for the
// original's RAII-driven MemImpl destructor.
func (b *StreamBuilder) Dealloc(m Mem) {
	if !m.Valid() {
		return
	}
	b.emit(OpDeallocMem, m.arg())
}

// DeallocInReverse deallocates mems in reverse allocation order, the
// stack-discipline helper BlockStmt/ForStmt lowering uses when a
// scope's locals go out of scope together (ir_generator.cpp reverses
// block_locals before erasing them for the same reason).
func (b *StreamBuilder) DeallocInReverse(mems []Mem) {
	for i := len(mems) - 1; i >= 0; i-- {
		b.Dealloc(mems[i])
	}
}

// AllocLabel reserves a new jump target without emitting anything; the
// label only appears in the stream once EmitLabel is called.
func (b *StreamBuilder) AllocLabel() LabelId {
	id := b.labels
	b.labels++
	return id
}

// EmitLabel places label at the current program point.
func (b *StreamBuilder) EmitLabel(label LabelId) {
	b.emit(OpLabel, uint64(label))
}

// AllocParams registers sizes as this method's incoming parameters
// (the original prepends a pointer-sized `this` for non-static methods
// before calling this) and returns their Mems, without emitting
// alloc_mem — parameters arrive via the calling convention, not a
// local allocation.
func (b *StreamBuilder) AllocParams(sizes []SizeClass) []Mem {
	b.params = sizes
	out := make([]Mem, len(sizes))
	for i, s := range sizes {
		out[i] = b.alloc(s)
	}
	return out
}

func (b *StreamBuilder) ConstNumeric(dst Mem, value int32) {
	b.emit(OpConst, dst.arg(), uint64(dst.Size()), uint64(uint32(value)))
}

func (b *StreamBuilder) ConstBool(dst Mem, value bool) {
	v := uint64(0)
	if value {
		v = 1
	}
	b.emit(OpConst, dst.arg(), uint64(dst.Size()), v)
}

func (b *StreamBuilder) ConstNull(dst Mem) {
	b.emit(OpConst, dst.arg(), uint64(SizePtr), 0)
}

// ConstString loads stringID (an index into the program's interned
// string pool, internal/constfold.ConstStringMap) into dst.
func (b *StreamBuilder) ConstString(dst Mem, stringID uint32) {
	b.emit(OpConst, dst.arg(), uint64(SizePtr), uint64(stringID))
}

func (b *StreamBuilder) Mov(dst, src Mem)       { b.emit(OpMov, dst.arg(), src.arg()) }
func (b *StreamBuilder) MovAddr(dst, src Mem)   { b.emit(OpMovAddr, dst.arg(), src.arg()) }
func (b *StreamBuilder) MovToAddr(dst, src Mem) { b.emit(OpMovToAddr, dst.arg(), src.arg()) }

func (b *StreamBuilder) FieldDeref(dst, obj Mem, typeBase int32, fid typesys.FieldId) {
	b.emit(OpFieldDeref, dst.arg(), obj.arg(), uint64(uint32(typeBase)), uint64(uint32(fid)))
}

func (b *StreamBuilder) FieldAddr(dst, obj Mem, typeBase int32, fid typesys.FieldId) {
	b.emit(OpFieldAddr, dst.arg(), obj.arg(), uint64(uint32(typeBase)), uint64(uint32(fid)))
}

// ArrayDeref and ArrayAddr carry pos so the backend can attribute an
// out-of-bounds trap to the indexing expression's source location,
// the same way Div/Mod carry pos for a divide-by-zero trap.
func (b *StreamBuilder) ArrayDeref(dst, array, index Mem, elemSize SizeClass, pos token.Range) {
	p := posArgs(pos)
	b.emit(OpArrayDeref, dst.arg(), array.arg(), index.arg(), uint64(elemSize), p[0], p[1])
}

func (b *StreamBuilder) ArrayAddr(dst, array, index Mem, elemSize SizeClass, pos token.Range) {
	p := posArgs(pos)
	b.emit(OpArrayAddr, dst.arg(), array.arg(), index.arg(), uint64(elemSize), p[0], p[1])
}

func (b *StreamBuilder) Add(dst, lhs, rhs Mem) { b.emit(OpAdd, dst.arg(), lhs.arg(), rhs.arg()) }
func (b *StreamBuilder) Sub(dst, lhs, rhs Mem) { b.emit(OpSub, dst.arg(), lhs.arg(), rhs.arg()) }
func (b *StreamBuilder) Mul(dst, lhs, rhs Mem) { b.emit(OpMul, dst.arg(), lhs.arg(), rhs.arg()) }

// Div and Mod carry pos so the backend can attribute a div-by-zero
// trap to the source location of the division (spec.md §4.7).
func (b *StreamBuilder) Div(dst, lhs, rhs Mem, pos token.Range) {
	p := posArgs(pos)
	b.emit(OpDiv, dst.arg(), lhs.arg(), rhs.arg(), p[0], p[1])
}

func (b *StreamBuilder) Mod(dst, lhs, rhs Mem, pos token.Range) {
	p := posArgs(pos)
	b.emit(OpMod, dst.arg(), lhs.arg(), rhs.arg(), p[0], p[1])
}

func (b *StreamBuilder) Jmp(label LabelId)             { b.emit(OpJmp, uint64(label)) }
func (b *StreamBuilder) JmpIf(label LabelId, cond Mem) { b.emit(OpJmpIf, uint64(label), cond.arg()) }

func (b *StreamBuilder) Lt(dst, lhs, rhs Mem)  { b.emit(OpLt, dst.arg(), lhs.arg(), rhs.arg()) }
func (b *StreamBuilder) Leq(dst, lhs, rhs Mem) { b.emit(OpLeq, dst.arg(), lhs.arg(), rhs.arg()) }
func (b *StreamBuilder) Eq(dst, lhs, rhs Mem)  { b.emit(OpEq, dst.arg(), lhs.arg(), rhs.arg()) }

// Gt, Geq, and Neq are not separate opcodes (spec.md §4.7's opcode set
// is closed at add/sub/mul/div/mod/lt/leq/eq): they are synthesized
// from the three that exist, the same way a>b is lowered as b<a on
// backends with only one comparison direction.
func (b *StreamBuilder) Gt(dst, lhs, rhs Mem)  { b.Lt(dst, rhs, lhs) }
func (b *StreamBuilder) Geq(dst, lhs, rhs Mem) { b.Leq(dst, rhs, lhs) }

func (b *StreamBuilder) Neq(dst, lhs, rhs Mem) {
	b.Eq(dst, lhs, rhs)
	b.Not(dst, dst)
}

func (b *StreamBuilder) Not(dst, src Mem) { b.emit(OpNot, dst.arg(), src.arg()) }
func (b *StreamBuilder) Neg(dst, src Mem) { b.emit(OpNeg, dst.arg(), src.arg()) }

func (b *StreamBuilder) And(dst, lhs, rhs Mem) { b.emit(OpAnd, dst.arg(), lhs.arg(), rhs.arg()) }
func (b *StreamBuilder) Or(dst, lhs, rhs Mem)  { b.emit(OpOr, dst.arg(), lhs.arg(), rhs.arg()) }
func (b *StreamBuilder) Xor(dst, lhs, rhs Mem) { b.emit(OpXor, dst.arg(), lhs.arg(), rhs.arg()) }

func (b *StreamBuilder) SignExtend(dst, src Mem) { b.emit(OpSignExtend, dst.arg(), src.arg()) }
func (b *StreamBuilder) ZeroExtend(dst, src Mem) { b.emit(OpZeroExtend, dst.arg(), src.arg()) }

func (b *StreamBuilder) Truncate(dst, src Mem) {
	b.emit(OpTruncate, dst.arg(), src.arg(), uint64(dst.Size()))
}

func (b *StreamBuilder) StaticCall(dst Mem, typeBase int32, mid typesys.MethodId, args []Mem, pos token.Range) {
	out := make([]uint64, 0, 3+len(args))
	out = append(out, dst.arg(), uint64(uint32(typeBase)), uint64(uint32(mid)), uint64(len(args)))
	for _, a := range args {
		out = append(out, a.arg())
	}
	b.emit(OpStaticCall, out...)
}

func (b *StreamBuilder) DynamicCall(dst, this Mem, mid typesys.MethodId, args []Mem, pos token.Range) {
	out := make([]uint64, 0, 3+len(args))
	out = append(out, dst.arg(), this.arg(), uint64(uint32(mid)), uint64(len(args)))
	for _, a := range args {
		out = append(out, a.arg())
	}
	b.emit(OpDynamicCall, out...)
}

func (b *StreamBuilder) GetTypeInfo(dst, src Mem) { b.emit(OpGetTypeInfo, dst.arg(), src.arg()) }

// CheckArrayStore emits the covariant-array-store runtime check
// (spec.md §4.7, §8 S8): array is the reference being stored into,
// value the rvalue being assigned.
func (b *StreamBuilder) CheckArrayStore(array, value Mem, pos token.Range) {
	p := posArgs(pos)
	b.emit(OpCheckArrayStore, array.arg(), value.arg(), p[0], p[1])
}

// CheckCast emits a reference cast's runtime verification (spec.md
// §4.7, §8): value is null-safe (the backend skips the instanceof
// check and lets a null through) and otherwise must satisfy
// instanceof targetTypeBase or fault, attributed to pos.
func (b *StreamBuilder) CheckCast(value Mem, targetTypeBase int32, pos token.Range) {
	p := posArgs(pos)
	b.emit(OpCheckCast, value.arg(), uint64(uint32(targetTypeBase)), p[0], p[1])
}

// Ret emits a bare return (no values) when called with no argument,
// or a single-value return otherwise; Joos has no multi-value return.
func (b *StreamBuilder) Ret(value ...Mem) {
	if len(value) == 0 {
		b.emit(OpRet, 0)
		return
	}
	b.emit(OpRet, 1, value[0].arg())
}

// Build finalizes the accumulated Ops/Args into a MethodIR.
func (b *StreamBuilder) Build(isEntry bool, typeBase int32, mid typesys.MethodId) MethodIR {
	return MethodIR{
		IsEntry:  isEntry,
		TypeBase: typeBase,
		MethodID: mid,
		Params:   b.params,
		Ops:      b.ops,
		Args:     b.args,
	}
}
