package ir

import (
	"fmt"

	"github.com/joosc/compiler/internal/typesys"
)

// MethodId names a method/constructor an IR stream belongs to, or one
// a static_call/dynamic_call opcode targets. It is typesys.MethodId
// under another name purely so this package's exported artifact shapes
// (spec.md §6) read as self-contained IR types.
type MethodId = typesys.MethodId

// LabelId numbers a jump target local to one method's stream.
type LabelId uint64

// OpType is the complete opcode vocabulary of spec.md §4.7. Each
// constant's comment records its operand shape, exactly as
// ir/stream.h's enum documents each case.
type OpType uint8

const (
	// (mem, size_class, is_immutable)
	OpAllocMem OpType = iota
	// (mem)
	OpDeallocMem
	// (mem, type_base)
	OpAllocHeap
	// (mem, elem_size_class, elem_type_base, len_mem, file, offset) —
	// elem_type_base and the position are carried (beyond spec.md
	// §4.7's summary shape) so the runtime array header records its
	// element's dynamic type for check_array_store, and so an invalid
	// array length can be faulted at the `new T[n]` that allocated it.
	OpAllocArray
	// (label)
	OpLabel
	// (mem, size_class, value)
	OpConst
	// (dst, src)
	OpMov
	// (dst, src)
	OpMovAddr
	// (dst, src)
	OpMovToAddr
	// (dst, obj, type_base, field_id)
	OpFieldDeref
	// (dst, obj, type_base, field_id)
	OpFieldAddr
	// (dst, array, index, elem_size_class, file, offset) — carries the
	// array access expression's source position for an out-of-bounds trap.
	OpArrayDeref
	// (dst, array, index, elem_size_class, file, offset)
	OpArrayAddr
	// (dst, lhs, rhs)
	OpAdd
	// (dst, lhs, rhs)
	OpSub
	// (dst, lhs, rhs)
	OpMul
	// (dst, lhs, rhs, file, offset) — carries the division expression's
	// source position so the backend can attribute a div-by-zero trap.
	OpDiv
	// (dst, lhs, rhs, file, offset)
	OpMod
	// (label)
	OpJmp
	// (label, cond_mem)
	OpJmpIf
	// (dst, lhs, rhs)
	OpLt
	// (dst, lhs, rhs)
	OpLeq
	// (dst, lhs, rhs)
	OpEq
	// (dst, src)
	OpNot
	// (dst, src)
	OpNeg
	// (dst, lhs, rhs)
	OpAnd
	// (dst, lhs, rhs)
	OpOr
	// (dst, lhs, rhs)
	OpXor
	// (dst, src)
	OpSignExtend
	// (dst, src)
	OpZeroExtend
	// (dst, src, to_size_class)
	OpTruncate
	// (dst, type_base, method_id, nargs, arg_mem...)
	OpStaticCall
	// (dst, this_mem, method_id, nargs, arg_mem...)
	OpDynamicCall
	// (dst, src)
	OpGetTypeInfo
	// (has_value, [value_mem])
	OpRet
	// (array_mem, value_mem, file, offset) — a covariant array store's
	// runtime element-type check (spec.md §8 S8).
	OpCheckArrayStore
	// (value_mem, target_type_base, file, offset) — a reference cast's
	// "null short-circuit plus instanceof check that faults on false"
	// (spec.md §4.7), the cast's own dedicated runtime check the same
	// way check_array_store is the covariant array store's.
	OpCheckCast
)

var opTypeNames = [...]string{
	OpAllocMem: "alloc_mem", OpDeallocMem: "dealloc_mem", OpAllocHeap: "alloc_heap",
	OpAllocArray: "alloc_array", OpLabel: "label", OpConst: "const", OpMov: "mov",
	OpMovAddr: "mov_addr", OpMovToAddr: "mov_to_addr", OpFieldDeref: "field_deref",
	OpFieldAddr: "field_addr", OpArrayDeref: "array_deref", OpArrayAddr: "array_addr",
	OpAdd: "add", OpSub: "sub", OpMul: "mul", OpDiv: "div", OpMod: "mod",
	OpJmp: "jmp", OpJmpIf: "jmp_if", OpLt: "lt", OpLeq: "leq", OpEq: "eq",
	OpNot: "not", OpNeg: "neg", OpAnd: "and", OpOr: "or", OpXor: "xor",
	OpSignExtend: "sign_extend", OpZeroExtend: "zero_extend", OpTruncate: "truncate",
	OpStaticCall: "static_call", OpDynamicCall: "dynamic_call", OpGetTypeInfo: "get_type_info",
	OpRet: "ret", OpCheckArrayStore: "check_array_store", OpCheckCast: "check_cast",
}

// String names an opcode the way spec.md §4.7 and dump-ir's JSON
// output both refer to it — snake_case, matching ir/stream.h's own
// enumerator spellings.
func (o OpType) String() string {
	if int(o) < len(opTypeNames) && opTypeNames[o] != "" {
		return opTypeNames[o]
	}
	return fmt.Sprintf("OpType(%d)", int(o))
}

// Op is one instruction: a type tag plus a half-open window into the
// owning Stream's Args vector, matching spec.md §4.7's packing.
type Op struct {
	Op    OpType
	Begin int
	End   int
}

// MethodIR is the lowered IR for one method or constructor body, plus
// the three synthetic per-type streams (type-init, instance-init,
// static-init) TypeDecl lowering emits. Field names mirror spec.md
// §6's external artifact contract exactly.
type MethodIR struct {
	IsEntry  bool
	TypeBase int32
	MethodID MethodId
	Params   []SizeClass
	Ops      []Op
	Args     []uint64
}

// CompUnit groups every method's IR for one source file, named
// "f<fileid>.s" per spec.md §6.
type CompUnit struct {
	Filename string
	Methods  []MethodIR
}

// RuntimeLinkIds is the set of well-known member ids the IR generator
// emits calls/field accesses against, resolved once by name (spec.md
// §4.7). Missing any of these is an internal compiler error, not a
// diagnostic.
type RuntimeLinkIds struct {
	ObjectType typesys.TypeId
	StringType typesys.TypeId

	StringConcat   MethodId
	StringValueOf  map[int32]MethodId // keyed by primitive TypeId.Base
	TypeInfoType   typesys.TypeId
	TypeInfoCtor   MethodId
	TypeInfoIsInst MethodId
	TypeInfoNumTypes typesys.FieldId

	StringOpsType typesys.TypeId
	StringOpsStr  MethodId

	StackFrameType      typesys.TypeId
	StackFramePrint     MethodId
	StackFramePrintEx   MethodId

	ArrayRuntimeType typesys.TypeId
}

// Program is the complete lowered compile: every compilation unit plus
// the resolved runtime hookup ids.
type Program struct {
	Units []CompUnit
	RtIds RuntimeLinkIds
}
