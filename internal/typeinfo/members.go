package typeinfo

import (
	"sort"

	"github.com/joosc/compiler/internal/ast"
	"github.com/joosc/compiler/internal/diagnostics"
	"github.com/joosc/compiler/internal/typesys"
)

// buildMemberTables builds every type's MethodTable and FieldTable, in
// topological order so that override/hiding checks against a parent
// always see the parent's table fully built. badTypes are excluded
// from override checks (they're already reported as cyclic).
func (b *Builder) buildMemberTables(types map[typesys.TypeId]*TypeInfo, order []typesys.TypeId, badTypes map[typesys.TypeId]bool, out *diagnostics.List) {
	methodsByType := map[typesys.TypeId][]rawMethod{}
	for _, m := range b.methods {
		methodsByType[m.classType] = append(methodsByType[m.classType], m)
	}
	fieldsByType := map[typesys.TypeId][]rawField{}
	for _, f := range b.fields {
		fieldsByType[f.classType] = append(fieldsByType[f.classType], f)
	}

	for _, tid := range order {
		t := types[tid]
		t.Methods = b.buildMethodTable(t, methodsByType[tid], out)
		t.Fields = b.buildFieldTable(t, fieldsByType[tid], out)

		if badTypes[tid] {
			continue
		}
		b.checkClassRules(types, t, out)
		b.checkOverrides(types, t, out)
	}
}

func (b *Builder) buildMethodTable(t *TypeInfo, raw []rawMethod, out *diagnostics.List) MethodTable {
	if len(raw) == 0 {
		return emptyMethodTable
	}

	sort.SliceStable(raw, func(i, j int) bool { return raw[i].sig.key() < raw[j].sig.key() })

	good := map[string]MethodInfo{}
	byID := map[typesys.MethodId]MethodInfo{}
	bad := map[string]bool{}
	hasBadCtor := false

	i := 0
	for i < len(raw) {
		j := i + 1
		for j < len(raw) && raw[j].sig.key() == raw[i].sig.key() {
			j++
		}
		cluster := raw[i:j]

		for _, m := range cluster {
			if m.sig.IsConstructor && m.sig.Name != t.Name {
				out.Addf(diagnostics.ConstructorNameError, m.pos, "constructors must have the same name as their class")
				hasBadCtor = true
			}
		}

		if len(cluster) > 1 {
			kind := "Method"
			if cluster[0].sig.IsConstructor {
				kind = "Constructor"
			}
			err := diagnostics.New(diagnostics.MethodDuplicateDefinitionError, cluster[0].pos,
				kind+" '"+cluster[0].sig.Name+"' was declared multiple times")
			for _, m := range cluster[1:] {
				err = err.WithSecondary(m.pos)
			}
			out.Add(err)
			bad[cluster[0].sig.Name] = true
			i = j
			continue
		}

		m := cluster[0]
		if m.sig.IsConstructor && m.sig.Name != t.Name {
			i = j
			continue // already reported; don't admit a mis-named constructor
		}

		info := MethodInfo{
			MethodID:   b.nextMethodID,
			ClassType:  t.Type,
			Modifiers:  m.modifiers,
			ReturnType: m.retType,
			Pos:        m.pos,
			Signature:  m.sig,
		}
		b.nextMethodID++
		good[m.sig.key()] = info
		byID[info.MethodID] = info
		i = j
	}

	return MethodTable{bySignature: good, byID: byID, badNames: bad, hasBadConstructor: hasBadCtor}
}

func (b *Builder) buildFieldTable(t *TypeInfo, raw []rawField, out *diagnostics.List) FieldTable {
	if len(raw) == 0 {
		return emptyFieldTable
	}

	sort.SliceStable(raw, func(i, j int) bool { return raw[i].name < raw[j].name })

	good := map[string]FieldInfo{}
	byID := map[typesys.FieldId]FieldInfo{}
	bad := map[string]bool{}

	i := 0
	for i < len(raw) {
		j := i + 1
		for j < len(raw) && raw[j].name == raw[i].name {
			j++
		}
		cluster := raw[i:j]

		if len(cluster) > 1 {
			err := diagnostics.New(diagnostics.FieldDuplicateDefinitionError, cluster[0].pos,
				"field '"+cluster[0].name+"' was declared multiple times")
			for _, f := range cluster[1:] {
				err = err.WithSecondary(f.pos)
			}
			out.Add(err)
			bad[cluster[0].name] = true
			i = j
			continue
		}

		f := cluster[0]
		info := FieldInfo{
			FieldID:   b.nextFieldID,
			ClassType: t.Type,
			Modifiers: f.modifiers,
			FieldType: f.fieldType,
			Pos:       f.pos,
			Name:      f.name,
		}
		b.nextFieldID++
		good[f.name] = info
		byID[info.FieldID] = info
		i = j
	}

	return FieldTable{byName: good, byID: byID, badNames: bad}
}

// checkClassRules validates the class-level constraints that apply to
// a type's relationship with its direct superclass: it must not be
// final, and (since Joos synthesizes no implicit constructor) it must
// declare an explicit no-argument constructor if it is ever extended.
func (b *Builder) checkClassRules(types map[typesys.TypeId]*TypeInfo, t *TypeInfo, out *diagnostics.List) {
	if t.Kind != typesys.Class || len(t.Extends) == 0 {
		return
	}
	parentTid := t.Extends[0].Type
	parent, ok := types[parentTid]
	if !ok {
		return
	}

	if parent.Modifiers.IsFinal() {
		out.Add(diagnostics.New(diagnostics.ParentFinalError, t.Extends[0].Range, "cannot extend final type '"+parent.Name+"'").
			WithSecondary(parent.Pos))
	}

	if _, ok := parent.Methods.LookupSignature(MethodSignature{IsConstructor: true, Name: parent.Name}); !ok {
		out.Add(diagnostics.New(diagnostics.ParentClassEmptyConstructorError, parent.Pos,
			"'"+parent.Name+"' must declare a no-argument constructor to be extended").
			WithSecondary(t.Pos))
	}
}

// visibilityOf ranks an access modifier so overrides can be compared:
// public > protected > package-private/private.
func visibilityOf(mods ast.Modifiers) int {
	switch {
	case mods.IsPublic():
		return 2
	case mods.IsProtected():
		return 1
	default:
		return 0
	}
}

// checkOverrides validates every method t declares against the same
// signature inherited from each direct ancestor (return type, static-
// ness, visibility, and finality), and checks that every abstract
// method owed by an ancestor chain is satisfied somewhere concrete if
// t itself is not abstract.
func (b *Builder) checkOverrides(types map[typesys.TypeId]*TypeInfo, t *TypeInfo, out *diagnostics.List) {
	ancestors := directAncestors(t)
	for _, sig := range ownMethodSignatures(t) {
		if sig.IsConstructor {
			continue
		}
		m, _ := t.Methods.LookupSignature(sig)
		for _, aTid := range ancestors {
			ainfo, ok := types[aTid]
			if !ok {
				continue
			}
			p, ok := ainfo.Methods.LookupSignature(sig)
			if !ok {
				continue
			}
			checkOneOverride(m, p, out)
		}
	}

	if t.Kind == typesys.Class && !t.Modifiers.IsAbstract() {
		abstract, concrete := abstractClosure(types, t)
		var missing []string
		for key, info := range abstract {
			if !concrete[key] {
				missing = append(missing, info.Signature.Name)
			}
		}
		if len(missing) > 0 {
			out.Addf(diagnostics.NeedAbstractClassError, t.Pos,
				"'"+t.Name+"' must be abstract, or implement "+missing[0])
		}
	}
}

func checkOneOverride(m, p MethodInfo, out *diagnostics.List) {
	if m.ReturnType != p.ReturnType {
		out.Add(diagnostics.New(diagnostics.DifferingReturnTypeError, m.Pos, "overriding method must have the same return type").WithSecondary(p.Pos))
	}
	if m.Modifiers.IsStatic() != p.Modifiers.IsStatic() {
		out.Add(diagnostics.New(diagnostics.StaticMethodOverrideError, m.Pos, "cannot change a method's static-ness when overriding").WithSecondary(p.Pos))
	}
	if visibilityOf(m.Modifiers) < visibilityOf(p.Modifiers) {
		out.Add(diagnostics.New(diagnostics.LowerVisibilityError, m.Pos, "cannot reduce visibility when overriding").WithSecondary(p.Pos))
	}
	if p.Modifiers.IsFinal() {
		out.Add(diagnostics.New(diagnostics.OverrideFinalMethodError, m.Pos, "cannot override a final method").WithSecondary(p.Pos))
	}
}

func directAncestors(t *TypeInfo) []typesys.TypeId {
	out := make([]typesys.TypeId, 0, len(t.Extends)+len(t.Implements))
	for _, e := range t.Extends {
		out = append(out, e.Type)
	}
	for _, e := range t.Implements {
		out = append(out, e.Type)
	}
	return out
}

func ownMethodSignatures(t *TypeInfo) []MethodSignature {
	out := make([]MethodSignature, 0, len(t.Methods.byID))
	for _, info := range t.Methods.byID {
		out = append(out, info.Signature)
	}
	return out
}

// abstractClosure walks the full ancestor chain of t (transitively,
// guarding against cycles) and returns every abstract method signature
// reachable, plus the set of signatures that are satisfied by a
// concrete method somewhere in that same closure (including t itself).
func abstractClosure(types map[typesys.TypeId]*TypeInfo, t *TypeInfo) (map[string]MethodInfo, map[string]bool) {
	abstract := map[string]MethodInfo{}
	concrete := map[string]bool{}
	visited := map[typesys.TypeId]bool{}

	var visit func(tid typesys.TypeId)
	visit = func(tid typesys.TypeId) {
		if visited[tid] {
			return
		}
		visited[tid] = true
		info, ok := types[tid]
		if !ok {
			return
		}
		for _, m := range info.Methods.byID {
			if m.Signature.IsConstructor {
				continue
			}
			key := m.Signature.key()
			if m.Modifiers.IsAbstract() || info.Kind == typesys.Interface {
				if _, ok := abstract[key]; !ok {
					abstract[key] = m
				}
			} else {
				concrete[key] = true
			}
		}
		for _, a := range directAncestors(info) {
			visit(a)
		}
	}
	visit(t.Type)

	return abstract, concrete
}
