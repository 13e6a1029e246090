// Package constfold rewrites literal-closed subtrees of a checked,
// typed program into ast.ConstExpr wrappers, per spec.md §4.5. It runs
// after internal/typecheck and before internal/dataflow, whose
// reachability analysis (for `while (false)`/`for (;false;)`) and
// internal/ir's constant operands both depend on folding having
// already happened.
//
// Grounded on original_source/types/constant_folding.cpp's
// ConstantFoldingVisitor: each REWRITE_DECL there recurses into its
// children by hand before deciding whether to fold, which is exactly
// how a hook on internal/ast.Visitor must be written to get
// post-order behavior out of a single per-node callback (unlike
// internal/typecheck, folding needs no enter/leave scope bracketing,
// so the generic Visitor fits here).
package constfold

// ConstStringMap interns every string literal and folded string
// constant, assigning each distinct value a dense uint32 id starting
// at 0 — the constant pool internal/ir's string-load opcodes index
// into. Grounded on original_source/types/constant_folding.h's
// ConstStringMap/StringId and constant_folding.cpp's next_string_id_
// counter.
type ConstStringMap struct {
	ids   map[string]uint32
	order []string
}

// NewConstStringMap returns an empty map.
func NewConstStringMap() *ConstStringMap {
	return &ConstStringMap{ids: map[string]uint32{}}
}

// Intern returns s's id, allocating a new one if s hasn't been seen.
func (m *ConstStringMap) Intern(s string) uint32 {
	if id, ok := m.ids[s]; ok {
		return id
	}
	id := uint32(len(m.order))
	m.ids[s] = id
	m.order = append(m.order, s)
	return id
}

// Lookup returns s's id without interning it.
func (m *ConstStringMap) Lookup(s string) (uint32, bool) {
	id, ok := m.ids[s]
	return id, ok
}

// Strings returns every interned string in id order (index i is the
// string with id i).
func (m *ConstStringMap) Strings() []string {
	return m.order
}

// Len reports how many distinct strings have been interned.
func (m *ConstStringMap) Len() int {
	return len(m.order)
}
