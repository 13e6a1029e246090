package typeinfo

import (
	"sort"

	"github.com/joosc/compiler/internal/ast"
	"github.com/joosc/compiler/internal/diagnostics"
	"github.com/joosc/compiler/internal/token"
	"github.com/joosc/compiler/internal/typesys"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// nameCollator orders the type names named in an ExtendsCycleError's
// message and secondary-range list. It only affects message text and
// which secondary range is listed first past the primary one — never
// which types are in the cycle or the TopSortIndex arbitrarily assigned
// to them afterward, so it carries no risk to id assignment the way
// reordering sortedKeys below would.
var nameCollator = collate.New(language.English)

type rawMethod struct {
	classType typesys.TypeId
	modifiers ast.Modifiers
	retType   typesys.TypeId
	pos       token.Range
	sig       MethodSignature
	hasBody   bool
}

type rawField struct {
	classType typesys.TypeId
	modifiers ast.Modifiers
	fieldType typesys.TypeId
	pos       token.Range
	name      string
}

// Builder accumulates every type/method/field declaration in a program
// and produces one validated, immutable TypeInfoMap via Build.
// Grounded on types.TypeInfoMapBuilder.
type Builder struct {
	objectType typesys.TypeId
	arrayType  typesys.TypeId

	types   []*TypeInfo
	methods []rawMethod
	fields  []rawField

	nextMethodID typesys.MethodId
	nextFieldID  typesys.FieldId
}

// NewBuilder returns an empty Builder. objectType and arrayType are
// the resolved ids of java.lang.Object and the synthetic array type
// (internal/runtimesynth supplies both); every class with no explicit
// `extends` is implicitly given objectType as its parent.
func NewBuilder(objectType, arrayType typesys.TypeId) *Builder {
	return &Builder{
		objectType:   objectType,
		arrayType:    arrayType,
		nextMethodID: typesys.MethodId(typesys.FirstValid),
		nextFieldID:  typesys.FieldId(typesys.FirstValid),
	}
}

// PutType registers one type declaration.
func (b *Builder) PutType(tid typesys.TypeId, mods ast.Modifiers, kind typesys.TypeKind, name, pkg string, pos token.Range, extends, implements []EdgeRef) {
	b.types = append(b.types, &TypeInfo{
		Modifiers:  mods,
		Kind:       kind,
		Type:       tid,
		Name:       name,
		Package:    pkg,
		Pos:        pos,
		Extends:    extends,
		Implements: implements,
	})
}

// PutMethod registers one method or constructor declaration. hasBody
// distinguishes a concrete method from an abstract one (an abstract
// class method, or any interface method), which NeedAbstractClassError
// needs to know and which ast.Modifiers alone cannot tell apart for
// interface methods (Joos interface methods carry no `abstract`
// keyword at all).
func (b *Builder) PutMethod(curtid, rettid typesys.TypeId, paramtids []typesys.TypeId, mods ast.Modifiers, name string, pos token.Range, isConstructor, hasBody bool) {
	b.methods = append(b.methods, rawMethod{
		classType: curtid,
		modifiers: mods,
		retType:   rettid,
		pos:       pos,
		sig:       MethodSignature{IsConstructor: isConstructor, Name: name, ParamTypes: paramtids},
		hasBody:   hasBody,
	})
}

// PutField registers one field declaration.
func (b *Builder) PutField(curtid, fieldtype typesys.TypeId, mods ast.Modifiers, name string, pos token.Range) {
	b.fields = append(b.fields, rawField{classType: curtid, modifiers: mods, fieldType: fieldtype, pos: pos, name: name})
}

// Build validates the inheritance graph, assigns a topological order,
// resolves every type's method and field tables (checking overrides
// against already-built ancestors), and returns the resulting
// TypeInfoMap. Every problem found is appended to out; a type or
// member involved in an error is excluded from its table rather than
// aborting the whole build, so downstream passes can keep going and
// report further, independent errors (spec.md §7).
func (b *Builder) Build(out *diagnostics.List) TypeInfoMap {
	types := make(map[typesys.TypeId]*TypeInfo, len(b.types))
	for _, t := range b.types {
		types[t.Type] = t
	}

	deps := b.validateGraph(types, out)
	b.introduceImplicitEdges(types, deps)
	order, badTypes := b.topologicalSort(types, deps, out)

	b.buildMemberTables(types, order, badTypes, out)

	result := make(map[typesys.TypeId]TypeInfo, len(types))
	for tid, t := range types {
		result[tid] = *t
	}
	return TypeInfoMap{types: result, arrayType: b.arrayType, ancestorCache: map[ancestorKey]bool{}}
}

// validateGraph reports DuplicateInheritanceError and the three
// extends/implements kind-mismatch errors, and returns the remaining
// valid edges to use for cycle detection and topological ordering
// (PruneInvalidGraphEdges/ValidateExtendsImplementsGraph's job).
func (b *Builder) validateGraph(types map[typesys.TypeId]*TypeInfo, out *diagnostics.List) map[typesys.TypeId][]typesys.TypeId {
	deps := make(map[typesys.TypeId][]typesys.TypeId, len(types))
	for _, tid := range sortedKeys(types) {
		t := types[tid]
		deps[tid] = append(deps[tid], dedupeEdges(t.Extends, t.Kind, types, true, out)...)
		deps[tid] = append(deps[tid], dedupeEdges(t.Implements, t.Kind, types, false, out)...)
	}
	return deps
}

func dedupeEdges(edges []EdgeRef, ownerKind typesys.TypeKind, types map[typesys.TypeId]*TypeInfo, isExtends bool, out *diagnostics.List) []typesys.TypeId {
	seen := map[typesys.TypeId]bool{}
	var valid []typesys.TypeId
	for _, e := range edges {
		if e.Type.IsError() {
			continue
		}
		if seen[e.Type] {
			out.Addf(diagnostics.DuplicateInheritanceError, e.Range, "named more than once in the same clause")
			continue
		}
		seen[e.Type] = true

		target, ok := types[e.Type]
		if !ok {
			continue // unresolved name; a prior stage already reported it
		}
		switch {
		case isExtends && ownerKind == typesys.Interface && target.Kind == typesys.Class:
			out.Addf(diagnostics.InterfaceExtendsClassError, e.Range, "an interface cannot extend a class")
			continue
		case isExtends && ownerKind == typesys.Class && target.Kind == typesys.Interface:
			out.Addf(diagnostics.ClassExtendInterfaceError, e.Range, "a class cannot extend an interface; use implements")
			continue
		case !isExtends && ownerKind == typesys.Class && target.Kind == typesys.Class:
			out.Addf(diagnostics.ClassImplementsClassError, e.Range, "a class cannot implement another class")
			continue
		}
		valid = append(valid, e.Type)
	}
	return valid
}

// introduceImplicitEdges gives every class but Object an implicit
// dependency on Object when it wrote no extends clause of its own.
func (b *Builder) introduceImplicitEdges(types map[typesys.TypeId]*TypeInfo, deps map[typesys.TypeId][]typesys.TypeId) {
	for tid, t := range types {
		if tid == b.objectType || t.Kind != typesys.Class {
			continue
		}
		if len(t.Extends) == 0 {
			deps[tid] = append(deps[tid], b.objectType)
		}
	}
}

// topologicalSort assigns TopSortIndex via iterative leaf removal
// (Kahn's algorithm): a type becomes ready once every type it depends
// on already has an index. Any type left over once no further progress
// can be made is part of an inheritance cycle; one ExtendsCycleError is
// reported per connected cluster of such types, and they are then given
// an arbitrary order past every acyclic type so the build can proceed.
func (b *Builder) topologicalSort(types map[typesys.TypeId]*TypeInfo, deps map[typesys.TypeId][]typesys.TypeId, out *diagnostics.List) ([]typesys.TypeId, map[typesys.TypeId]bool) {
	done := map[typesys.TypeId]bool{}
	var order []typesys.TypeId
	remaining := sortedKeys(types)

	for len(remaining) > 0 {
		var next []typesys.TypeId
		progressed := false
		for _, tid := range remaining {
			ready := true
			for _, dep := range deps[tid] {
				if !done[dep] {
					if _, inMap := types[dep]; inMap {
						ready = false
						break
					}
				}
			}
			if ready {
				types[tid].TopSortIndex = len(order)
				order = append(order, tid)
				done[tid] = true
				progressed = true
			} else {
				next = append(next, tid)
			}
		}
		if !progressed {
			bad := reportCycles(types, deps, next, out)
			for _, tid := range next {
				types[tid].TopSortIndex = len(order)
				order = append(order, tid)
				done[tid] = true
			}
			return order, bad
		}
		remaining = next
	}
	return order, map[typesys.TypeId]bool{}
}

// reportCycles groups the stalled set into connected clusters (an edge
// between two stalled types, in either direction, joins them) and
// emits one ExtendsCycleError per cluster.
func reportCycles(types map[typesys.TypeId]*TypeInfo, deps map[typesys.TypeId][]typesys.TypeId, stalled []typesys.TypeId, out *diagnostics.List) map[typesys.TypeId]bool {
	stalledSet := map[typesys.TypeId]bool{}
	for _, tid := range stalled {
		stalledSet[tid] = true
	}

	parent := map[typesys.TypeId]typesys.TypeId{}
	var find func(typesys.TypeId) typesys.TypeId
	find = func(x typesys.TypeId) typesys.TypeId {
		if parent[x] != x {
			parent[x] = find(parent[x])
		}
		return parent[x]
	}
	for _, tid := range stalled {
		parent[tid] = tid
	}
	union := func(a, b typesys.TypeId) {
		ra, rb := find(a), find(b)
		if ra != rb {
			parent[ra] = rb
		}
	}
	for _, tid := range stalled {
		for _, dep := range deps[tid] {
			if stalledSet[dep] {
				union(tid, dep)
			}
		}
	}

	clusters := map[typesys.TypeId][]typesys.TypeId{}
	for _, tid := range stalled {
		root := find(tid)
		clusters[root] = append(clusters[root], tid)
	}

	var roots []typesys.TypeId
	for root := range clusters {
		roots = append(roots, root)
	}
	sort.Slice(roots, func(i, j int) bool { return roots[i].Base < roots[j].Base })

	for _, root := range roots {
		members := clusters[root]
		sort.Slice(members, func(i, j int) bool {
			return nameCollator.CompareString(types[members[i]].Name, types[members[j]].Name) < 0
		})

		msg := ""
		for _, tid := range members {
			for _, dep := range deps[tid] {
				if stalledSet[dep] {
					msg += types[tid].Name + "->" + types[dep].Name + ","
				}
			}
		}
		primary := types[members[0]].Pos
		err := diagnostics.New(diagnostics.ExtendsCycleError, primary, "inheritance cycle: "+msg)
		for _, tid := range members[1:] {
			err = err.WithSecondary(types[tid].Pos)
		}
		out.Add(err)
	}
	return stalledSet
}

func sortedKeys(types map[typesys.TypeId]*TypeInfo) []typesys.TypeId {
	keys := make([]typesys.TypeId, 0, len(types))
	for k := range types {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Base != keys[j].Base {
			return keys[i].Base < keys[j].Base
		}
		return keys[i].NDims < keys[j].NDims
	})
	return keys
}
