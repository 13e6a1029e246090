// Package typeset resolves qualified names (`a.b.C`) to TypeIds. A
// TypeSet is built once per compile from every declared type's
// package-qualified name (internal/typeset.Builder), then narrowed per
// compilation unit into a scoped view via WithImports, which folds in
// single-type and on-demand (wildcard) imports the way Java/Joos import
// resolution works (spec.md §4.1's "name resolution, stage 1").
package typeset

import (
	"strings"

	"github.com/joosc/compiler/internal/ast"
	"github.com/joosc/compiler/internal/diagnostics"
	"github.com/joosc/compiler/internal/token"
	"github.com/joosc/compiler/internal/typesys"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// nameCollator orders human-facing name lists (AvailableNames, and any
// future wildcard-ambiguity candidate list) deterministically across
// locales/platforms — Go's map iteration order is not stable, and a
// plain byte-wise sort.Strings would vary the reported order for
// names containing non-ASCII characters depending on the host's
// default collation. TypeId *assignment* in Builder.Build stays on
// sort.Strings deliberately: that order is load-bearing for dense id
// numbering and must never depend on an external library's tables.
var nameCollator = collate.New(language.English)

// binding pairs a resolved TypeId with the source position that
// brought it into scope, so a later conflict or ambiguity diagnostic
// can point at both the new and the original reference.
type binding struct {
	id  typesys.TypeId
	pos token.Range
}

// TypeSet is an immutable name->TypeId view, grounded on
// original_source/types/typeset_impl.h's ImportScope split: a name can
// be in scope at "comp-unit" precedence (the package's own sibling
// types and single-type imports, where a clash is a hard error) or at
// "wildcard" precedence (on-demand imports, where a clash between two
// wildcards is only an error if the name is actually used). Comp-unit
// scope always wins over wildcard scope, mirroring
// WildcardsOverruledByPackage/WildcardsOverruledBySingleImport in the
// original TypeSet test suite. The zero value is not useful; construct
// one via Builder.Build, then narrow it with WithPackage/WithImports
// once per compilation unit.
type TypeSet struct {
	original map[string]typesys.TypeId // every declared type, package-qualified; never changes
	local    map[string]binding        // comp-unit scope: package siblings + single imports
	wildcard map[string][]binding      // wildcard scope: on-demand imports; may hold >1 distinct id per name
}

// predefined seeds every TypeSet with the primitive and well-known
// sentinel names, grounded on typeset.cpp's TypeSet constructor.
func predefined() map[string]typesys.TypeId {
	return map[string]typesys.TypeId{
		"void":    typesys.Void,
		"boolean": typesys.Bool,
		"byte":    typesys.Byte,
		"char":    typesys.Char,
		"short":   typesys.Short,
		"int":     typesys.Int,
	}
}

// Get resolves qualifiedname to a TypeId only if the whole name (not
// just a prefix of it) was found; returns typesys.Unassigned otherwise.
// A name declared more than once, or an ambiguous wildcard name,
// resolves to typesys.ErrorType.
// r is the range of the name being resolved and out the diagnostic
// sink to use if the name turns out to be an unresolved wildcard
// ambiguity; both may be the zero value/nil when qualifiedname is
// known in advance to resolve unambiguously (e.g. looking up a
// synthetic runtime type against the unscoped base TypeSet).
func (s TypeSet) Get(qualifiedname []string, r token.Range, out *diagnostics.List) typesys.TypeId {
	id, length := s.GetPrefix(qualifiedname, r, out)
	if length < len(qualifiedname) {
		return typesys.Unassigned
	}
	return id
}

// GetPrefix resolves the longest dotted prefix of qualifiedname that
// names a known type, returning that TypeId and the prefix length
// consumed. A caller that wants package-qualified field/method access
// (`pkg.Type.field`) uses the prefix length to know how many leading
// components were the type name, per spec.md §4.1. Comp-unit-scoped
// names take precedence over wildcard-scoped ones; a wildcard name
// contributed by more than one on-demand import is only diagnosed here,
// at the point of use — exactly the "ambiguous short name across
// wildcards (deferred until use)" rule spec.md §4.1 calls for.
func (s TypeSet) GetPrefix(qualifiedname []string, r token.Range, out *diagnostics.List) (typesys.TypeId, int) {
	for i := 0; i < len(qualifiedname); i++ {
		length := len(qualifiedname) - i
		name := strings.Join(qualifiedname[:length], ".")

		if id, ok := s.original[name]; ok {
			return id, length
		}
		if b, ok := s.local[name]; ok {
			return b.id, length
		}
		if cands, ok := s.wildcard[name]; ok {
			if id, ambiguous := resolveWildcard(cands); !ambiguous {
				return id, length
			} else {
				if out != nil {
					err := diagnostics.New(diagnostics.AmbiguousTypeError, r,
						"'"+name+"' is ambiguous between multiple on-demand imports")
					for _, c := range cands {
						err = err.WithSecondary(c.pos)
					}
					out.Add(err)
				}
				return typesys.ErrorType, length
			}
		}
	}
	return typesys.Unassigned, 0
}

// resolveWildcard collapses a wildcard candidate list to a single id
// if every candidate names the same type (repeated/identical wildcard
// imports of the same type are never ambiguous — ShortNameMultipleIdenticalWildcards
// in the original TypeSet test suite), reporting ambiguity only when
// two distinct ids are both in scope.
func resolveWildcard(cands []binding) (id typesys.TypeId, ambiguous bool) {
	id = cands[0].id
	for _, c := range cands[1:] {
		if c.id != id {
			return typesys.Unassigned, true
		}
	}
	return id, false
}

// WithPackage returns a view of s with every type declared in pkg
// available unqualified, as if by an implicit `import pkg.*;` — Java
// and Joos alike let a compilation unit refer to its own package's
// other types without importing them. Unlike an explicit wildcard
// import, a package's own sibling types are comp-unit scoped (not
// wildcard scoped): they take precedence over any wildcard import and
// can never be ambiguous with one (WildcardsOverruledByPackage). A
// nil/default package is a no-op. Called before WithImports, mirroring
// the original TypeSet's WithPackage-then-WithImports chain in
// DeclResolver.
func (s TypeSet) WithPackage(pkg ast.QualifiedName) TypeSet {
	view := TypeSet{
		original: s.original,
		local:    cloneLocal(s.local),
		wildcard: cloneWildcard(s.wildcard),
	}
	if pkg.Parts != nil {
		prefix := pkg.String() + "."
		for name, id := range s.original {
			if !strings.HasPrefix(name, prefix) {
				continue
			}
			rest := name[len(prefix):]
			if strings.Contains(rest, ".") {
				continue // nested package, not a direct member of pkg
			}
			view.local[rest] = binding{id: id}
		}
	}
	return view
}

// WithImports returns a view of s with java.lang implicitly wildcard
// imported, followed by every explicit and wildcard import in imports,
// in source order (spec.md §4.1). It never mutates s.
func (s TypeSet) WithImports(imports []ast.ImportDecl, out *diagnostics.List) TypeSet {
	view := TypeSet{
		original: s.original,
		local:    cloneLocal(s.local),
		wildcard: cloneWildcard(s.wildcard),
	}

	view.insertWildcard("java.lang", token.Range{}, nil)
	for _, imp := range imports {
		if imp.Wildcard {
			view.insertWildcard(imp.Name.String(), imp.Range, out)
		} else {
			view.insertImport(imp, out)
		}
	}
	return view
}

func (s *TypeSet) insertImport(imp ast.ImportDecl, out *diagnostics.List) {
	full := imp.Name.String()
	id, ok := s.original[full]
	if !ok {
		out.Addf(diagnostics.UnknownImportError, imp.Range, "cannot find imported class "+full)
		return
	}
	last := imp.Name.Parts[len(imp.Name.Parts)-1]
	s.insertLocal(last, id, imp.Range, out)
}

// insertWildcard brings every type directly declared in package pkg
// into scope at wildcard precedence. pos is the position of the import
// statement itself (the zero range for the implicit java.lang.* every
// compilation unit gets, matching the "-1:-1" sentinel the original
// TypeSet reports alongside an ambiguity against a java.lang type); out
// is nil for that implicit import, since there is no source location to
// blame and the runtime classes are always present. An explicit
// wildcard whose package has no declared types at all is reported as
// UnknownPackageError: unlike a single import, an on-demand import
// names a package, not a type, so there is no single missing name to
// point at — the diagnostic covers the whole import instead.
func (s *TypeSet) insertWildcard(pkg string, pos token.Range, out *diagnostics.List) {
	prefix := pkg + "."
	found := false
	for name, id := range s.original {
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		rest := name[len(prefix):]
		if strings.Contains(rest, ".") {
			continue // nested package, not a direct member of pkg
		}
		found = true
		s.wildcard[rest] = appendDistinct(s.wildcard[rest], binding{id: id, pos: pos})
	}
	if !found && out != nil {
		out.Addf(diagnostics.UnknownPackageError, pos, "cannot find package '"+pkg+"'")
	}
}

// appendDistinct appends b to cands unless an identical (id) candidate
// is already present, so repeating the same wildcard import (or two
// wildcards that happen to reach the same type) never manufactures a
// spurious ambiguity.
func appendDistinct(cands []binding, b binding) []binding {
	for _, c := range cands {
		if c.id == b.id {
			return cands
		}
	}
	return append(cands, b)
}

// insertLocal adds name->id into the comp-unit (local) scope, the
// overridable-by-nothing, never-ambiguous tier a package's own types
// and single imports share. A clash with a different id already at
// this scope — two single imports of the same short name, or a single
// import clashing with a sibling type — is DuplicateCompUnitNames,
// reported eagerly (not deferred like a wildcard clash) since spec.md
// §4.1 treats the compilation unit's own namespace as required to be
// unambiguous outright.
func (s *TypeSet) insertLocal(name string, id typesys.TypeId, r token.Range, out *diagnostics.List) {
	if existing, ok := s.local[name]; ok {
		if existing.id == id {
			return
		}
		err := diagnostics.New(diagnostics.DuplicateCompUnitNames, r,
			"'"+name+"' is already in scope, referring to a different type")
		if existing.pos != (token.Range{}) {
			err = err.WithSecondary(existing.pos)
		}
		out.Add(err)
		return
	}
	s.local[name] = binding{id: id, pos: r}
}

func cloneLocal(m map[string]binding) map[string]binding {
	out := make(map[string]binding, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func cloneWildcard(m map[string][]binding) map[string][]binding {
	out := make(map[string][]binding, len(m))
	for k, v := range m {
		out[k] = append([]binding(nil), v...)
	}
	return out
}

// AvailableNames returns every name in scope in this view — comp-unit
// names, unambiguous wildcard names, and every original declared
// name — collated into a deterministic order over what would
// otherwise be Go map iteration. No package of the compiler calls it.
// An ambiguous wildcard name is still listed (it is in scope, even
// though using it bare requires a diagnostic); AvailableNames never
// itself reports that diagnostic.
func (s TypeSet) AvailableNames() []string {
	seen := make(map[string]struct{}, len(s.original)+len(s.local)+len(s.wildcard))
	for k := range s.original {
		seen[k] = struct{}{}
	}
	for k := range s.local {
		seen[k] = struct{}{}
	}
	for k := range s.wildcard {
		seen[k] = struct{}{}
	}
	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	nameCollator.SortStrings(keys)
	return keys
}

// Resolve looks up a single name already known to be in scope (used by
// tests to fetch well-known type ids), applying the
// same comp-unit-over-wildcard precedence as GetPrefix but without
// reporting an ambiguity diagnostic — callers that need the diagnostic
// use GetPrefix/Get instead.
func (s TypeSet) Resolve(name string) typesys.TypeId {
	if id, ok := s.original[name]; ok {
		return id
	}
	if b, ok := s.local[name]; ok {
		return b.id
	}
	if cands, ok := s.wildcard[name]; ok {
		id, _ := resolveWildcard(cands)
		return id
	}
	return typesys.Unassigned
}
