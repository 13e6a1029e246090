package dump

import (
	"sort"
	"strconv"

	"github.com/joosc/compiler/internal/ast"
	"github.com/joosc/compiler/internal/typeinfo"
	"github.com/joosc/compiler/internal/typesys"
)

func itoa(i int) string { return strconv.Itoa(i) }

// sortByTopSortIndex orders ids by their TypeInfo.TopSortIndex, the
// same ancestors-first order internal/typeinfo.Builder assigns, so
// dump-types reads top to bottom the way a reader would want to trace
// an inheritance graph.
func sortByTopSortIndex(types map[typesys.TypeId]typeinfo.TypeInfo, ids []typesys.TypeId) {
	sort.Slice(ids, func(i, j int) bool {
		return types[ids[i]].TopSortIndex < types[ids[j]].TopSortIndex
	})
}

// sortMethodIds and sortFieldIds order strictly by numeric id. Unlike
// internal/typeset.AvailableNames or internal/typeinfo's
// ExtendsCycleError listing, dump output has no user-facing name to
// collate — ordering by id is deterministic. It is not declaration
// order: internal/typeinfo.Builder assigns ids type by type in
// topological order, and within one type sorts fields by name and
// methods by signature before numbering them.
func sortMethodIds(ids []typesys.MethodId) {
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
}

func sortFieldIds(ids []typesys.FieldId) {
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
}

// modifierNames pairs each ast.Modifiers bit dump renders with its
// JSON spelling, checked in a fixed order so the emitted array is
// deterministic.
var modifierNames = []struct {
	bit  ast.Modifiers
	name string
}{
	{ast.ModPublic, "public"},
	{ast.ModProtected, "protected"},
	{ast.ModPrivate, "private"},
	{ast.ModAbstract, "abstract"},
	{ast.ModFinal, "final"},
	{ast.ModStatic, "static"},
	{ast.ModNative, "native"},
}

// modifierStrings renders m's set bits as their Joos keywords, for
// embedding in a dump-types/dump-ir JSON array.
func modifierStrings(m ast.Modifiers) []string {
	names := make([]string, 0, len(modifierNames))
	for _, mn := range modifierNames {
		if m.Has(mn.bit) {
			names = append(names, mn.name)
		}
	}
	return names
}
