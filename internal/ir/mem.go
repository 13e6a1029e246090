package ir

// MemId is the dense handle StreamBuilder hands out for a storage
// slot. 0 is reserved as the invalid id (AllocDummy's result), so a
// Mem's zero value is never mistaken for a real allocation.
type MemId uint64

const invalidMemID MemId = 0

// Mem is the opaque handle spec.md §4.7 describes: it carries enough
// of its own identity (id, size class, validity) that a builder method
// taking a Mem never needs a side table to know how to reference it in
// an opcode's argument window.
//
// The original's Mem is reference-counted (sptr<MemImpl>) and its
// destructor emits dealloc_mem automatically when the last reference
// drops; Go has no destructors, so that RAII lifetime is replaced with
// an explicit StreamBuilder.Dealloc call at the same points the
// original's scope-exit would have fired — see builder.go's
// DeallocInReverse, which mirrors MethodIRGenerator's BlockStmt/
// ForStmt handling of reversing and erasing block_locals by hand.
type Mem struct {
	id    MemId
	size  SizeClass
	valid bool
}

// Valid reports whether m refers to a real allocation (false for
// AllocDummy's result, matching the original's kInvalidMemId check in
// NewClassExpr's "might not have a result to write to" case).
func (m Mem) Valid() bool { return m.valid }

// Size returns m's size class.
func (m Mem) Size() SizeClass { return m.size }

func (m Mem) arg() uint64 { return uint64(m.id) }
