package typeset

import (
	"sort"

	"github.com/joosc/compiler/internal/diagnostics"
	"github.com/joosc/compiler/internal/token"
	"github.com/joosc/compiler/internal/typesys"
)

// Builder accumulates every declared type's package-qualified name,
// then produces one TypeSet with dense TypeIds assigned in sorted
// (byte-wise) order of the package-qualified names, not in the order
// types were Put, grounded on types/typeset.h's TypeSetBuilder.
type Builder struct {
	entries []entry
}

type entry struct {
	name string
	pos  token.Range
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Put registers one type declaration's package-qualified name. pkg is
// the dotted package path (nil for the default package); name is the
// bare type name. Duplicate (pkg, name) pairs are resolved in Build.
func (b *Builder) Put(pkg []string, name string, pos token.Range) {
	full := name
	if len(pkg) > 0 {
		full = joinDotted(pkg) + "." + name
	}
	b.entries = append(b.entries, entry{name: full, pos: pos})
}

// Build assigns each distinct name a dense TypeId (starting at
// typesys.FirstUserBase) and returns the resulting TypeSet. Every name
// declared more than once is reported as TypeDuplicateDefinitionError
// (primary at the first declaration, secondary at every later one) and
// resolves to typesys.ErrorType rather than a valid id, so that
// downstream passes can recognize it and suppress cascading errors
// (spec.md §7's blacklist discipline).
func (b *Builder) Build(out *diagnostics.List) TypeSet {
	byName := make(map[string][]token.Range, len(b.entries))
	order := make([]string, 0, len(b.entries))
	for _, e := range b.entries {
		if _, seen := byName[e.name]; !seen {
			order = append(order, e.name)
		}
		byName[e.name] = append(byName[e.name], e.pos)
	}
	sort.Strings(order) // deterministic TypeId assignment across runs

	names := predefined()
	base := int32(typesys.FirstUserBase)
	for _, name := range order {
		positions := byName[name]
		if len(positions) > 1 {
			err := diagnostics.New(diagnostics.TypeDuplicateDefinitionError, positions[0],
				"type '"+name+"' was declared multiple times")
			for _, p := range positions[1:] {
				err = err.WithSecondary(p)
			}
			out.Add(err)
			names[name] = typesys.ErrorType
			continue
		}
		names[name] = typesys.TypeId{Base: base}
		base++
	}

	return TypeSet{original: names}
}

func joinDotted(parts []string) string {
	out := parts[0]
	for _, p := range parts[1:] {
		out += "." + p
	}
	return out
}
