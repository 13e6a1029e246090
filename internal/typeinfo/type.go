// Package typeinfo builds the program-wide table of declared types,
// their inheritance graph, and their resolved method/field tables —
// the structure spec.md §4.2 calls the TypeInfoMap. It is populated by
// a Builder fed one PutType/PutMethod/PutField call per declaration
// (by internal/declresolver) and produces an immutable TypeInfoMap via
// Build, grounded on original_source/types/type_info_map.{h,cpp} and
// its accompanying tests (type_info_map_test.cpp, method_table_test.cpp,
// field_table_test.cpp).
package typeinfo

import (
	"github.com/joosc/compiler/internal/ast"
	"github.com/joosc/compiler/internal/token"
	"github.com/joosc/compiler/internal/typesys"
)

// EdgeRef is one entry of an extends or implements clause: the
// resolved target type plus the source range of the name as written,
// needed to point a diagnostic at the right place in the clause.
type EdgeRef struct {
	Type  typesys.TypeId
	Range token.Range
}

// TypeInfo is everything known about one declared type once the
// TypeInfoMap has been built: its modifiers, its place in the
// inheritance graph, and its resolved member tables.
type TypeInfo struct {
	Modifiers  ast.Modifiers
	Kind       typesys.TypeKind
	Type       typesys.TypeId
	Name       string
	Package    string
	Pos        token.Range
	Extends    []EdgeRef
	Implements []EdgeRef
	Methods    MethodTable
	Fields     FieldTable

	// TopSortIndex orders every type such that a type's ancestors
	// (everything it extends or implements, transitively) always have
	// a lower index. Types caught in an inheritance cycle are given an
	// arbitrary index past every acyclic type, purely so a total order
	// exists for callers that need one to make progress.
	TopSortIndex int
}

// TypeInfoMap is the immutable result of a Builder.Build. The zero
// value is not useful; use Empty() for a program with no types.
type TypeInfoMap struct {
	types     map[typesys.TypeId]TypeInfo
	arrayType typesys.TypeId

	// ancestorCache memoizes IsAncestor, whose naive recursive form is
	// re-walked by every expression that ever compares two reference
	// types during type checking.
	ancestorCache map[ancestorKey]bool
}

type ancestorKey struct {
	child, ancestor typesys.TypeId
}

var empty = TypeInfoMap{types: map[typesys.TypeId]TypeInfo{}}

// Empty returns the TypeInfoMap for a program with no declared types.
func Empty() TypeInfoMap { return empty }

// LookupTypeInfo returns the TypeInfo for tid. Any array type
// (tid.NDims > 0) shares the single synthetic array TypeInfo set up by
// the Builder, matching spec.md §3's "arrays are one runtime type
// regardless of element type or dimension."
func (m TypeInfoMap) LookupTypeInfo(tid typesys.TypeId) (TypeInfo, bool) {
	if tid.NDims > 0 {
		tid = m.arrayType
	}
	info, ok := m.types[tid]
	if !ok && tid.IsError() {
		return errorTypeInfo, true
	}
	return info, ok
}

// errorTypeInfo is handed back for typesys.ErrorType so that a pass
// chasing a cascading error can keep resolving calls/accesses against
// it (every one of which reports nothing further, since both tables
// are blacklisted) instead of having to special-case "not found".
var errorTypeInfo = TypeInfo{
	Type:    typesys.ErrorType,
	Name:    "<error>",
	Methods: errorMethodTable,
	Fields:  errorFieldTable,
}

// LookupTypeName returns a human-readable, package-qualified name for
// tid, used in diagnostic messages.
func (m TypeInfoMap) LookupTypeName(tid typesys.TypeId) string {
	base := tid
	base.NDims = 0
	info, ok := m.types[base]
	if !ok {
		return "<error>"
	}
	name := info.Name
	if info.Package != "" {
		name = info.Package + "." + info.Name
	}
	for i := int32(0); i < tid.NDims; i++ {
		name += "[]"
	}
	return name
}

// TypeMap returns every TypeInfo keyed by TypeId. Callers must treat
// the returned map as read-only.
func (m TypeInfoMap) TypeMap() map[typesys.TypeId]TypeInfo {
	return m.types
}

// LookupMethodInfo finds the MethodInfo for a previously resolved id
// without already knowing which type declares it — the lookup
// internal/ir needs at a call site, where only the MethodId survives
// from internal/typecheck's resolution and the declaring type (for a
// static_call's type_base, or to tell an overridden instance method
// apart from a hidden static one) has to be recovered from it. Method
// ids are assigned once, densely, by a single Builder, so exactly one
// type's MethodTable ever holds a given id.
func (m TypeInfoMap) LookupMethodInfo(mid typesys.MethodId) (MethodInfo, bool) {
	if mid == errorMethodId {
		return errorMethodInfo, true
	}
	for _, info := range m.types {
		if mi, ok := info.Methods.byID[mid]; ok {
			return mi, true
		}
	}
	return MethodInfo{}, false
}

// LookupFieldInfo is LookupMethodInfo's field-table counterpart.
func (m TypeInfoMap) LookupFieldInfo(fid typesys.FieldId) (FieldInfo, bool) {
	if fid == errorFieldId {
		return errorFieldInfo, true
	}
	for _, info := range m.types {
		if fi, ok := info.Fields.byID[fid]; ok {
			return fi, true
		}
	}
	return FieldInfo{}, false
}

// IsAncestor reports whether ancestor is child itself, or is reachable
// from child by following extends/implements edges — i.e. whether a
// value of type child can be used where ancestor is expected.
func (m TypeInfoMap) IsAncestor(child, ancestor typesys.TypeId) bool {
	if child == ancestor {
		return true
	}
	key := ancestorKey{child, ancestor}
	if v, ok := m.ancestorCache[key]; ok {
		return v
	}
	result := m.isAncestorRec(child, ancestor, map[typesys.TypeId]bool{})
	if m.ancestorCache != nil {
		m.ancestorCache[key] = result
	}
	return result
}

func (m TypeInfoMap) isAncestorRec(child, ancestor typesys.TypeId, seen map[typesys.TypeId]bool) bool {
	if child == ancestor {
		return true
	}
	if seen[child] {
		return false // broke out of a cycle; ValidateExtendsImplementsGraph already reported it
	}
	seen[child] = true

	info, ok := m.types[child]
	if !ok {
		return false
	}
	for _, e := range info.Extends {
		if m.isAncestorRec(e.Type, ancestor, seen) {
			return true
		}
	}
	for _, e := range info.Implements {
		if m.isAncestorRec(e.Type, ancestor, seen) {
			return true
		}
	}
	return false
}
