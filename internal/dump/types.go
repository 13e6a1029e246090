package dump

import (
	"github.com/joosc/compiler/internal/typeinfo"
	"github.com/joosc/compiler/internal/typesys"
)

// TypeInfo serializes every type tim knows about to JSON, one entry
// per declared type plus its resolved method and field tables. Types
// are emitted in TopSortIndex order (ancestors first), matching the
// order a reader building up an understanding of the inheritance
// graph would want them in — dump-types is a debugging aid, not a
// wire format, so this order is a readability choice, not a contract.
func TypeInfo(tim typeinfo.TypeInfoMap) (string, error) {
	types := tim.TypeMap()
	ids := make([]typesys.TypeId, 0, len(types))
	for id := range types {
		ids = append(ids, id)
	}
	sortByTopSortIndex(types, ids)

	doc := "{}"
	for i, id := range ids {
		info := types[id]
		base := "types." + itoa(i)
		doc = set(doc, base+".name", info.Name)
		doc = set(doc, base+".package", info.Package)
		doc = set(doc, base+".kind", info.Kind.String())
		doc = set(doc, base+".topSortIndex", info.TopSortIndex)
		doc = set(doc, base+".modifiers", modifierStrings(info.Modifiers))

		extends := make([]string, len(info.Extends))
		for j, e := range info.Extends {
			extends[j] = tim.LookupTypeName(e.Type)
		}
		doc = set(doc, base+".extends", extends)

		implements := make([]string, len(info.Implements))
		for j, e := range info.Implements {
			implements[j] = tim.LookupTypeName(e.Type)
		}
		doc = set(doc, base+".implements", implements)

		doc = dumpMethods(doc, base+".methods", tim, info.Methods.GetMethodMap())
		doc = dumpFields(doc, base+".fields", tim, info.Fields.GetFieldMap())
	}
	return doc, nil
}

func dumpMethods(doc, base string, tim typeinfo.TypeInfoMap, methods map[typesys.MethodId]typeinfo.MethodInfo) string {
	ids := make([]typesys.MethodId, 0, len(methods))
	for id := range methods {
		ids = append(ids, id)
	}
	sortMethodIds(ids)
	for i, id := range ids {
		info := methods[id]
		p := base + "." + itoa(i)
		doc = set(doc, p+".id", int(id))
		doc = set(doc, p+".name", info.Signature.Name)
		doc = set(doc, p+".constructor", info.Signature.IsConstructor)
		doc = set(doc, p+".returnType", tim.LookupTypeName(info.ReturnType))
		doc = set(doc, p+".modifiers", modifierStrings(info.Modifiers))

		params := make([]string, len(info.Signature.ParamTypes))
		for j, pt := range info.Signature.ParamTypes {
			params[j] = tim.LookupTypeName(pt)
		}
		doc = set(doc, p+".params", params)
	}
	return doc
}

func dumpFields(doc, base string, tim typeinfo.TypeInfoMap, fields map[typesys.FieldId]typeinfo.FieldInfo) string {
	ids := make([]typesys.FieldId, 0, len(fields))
	for id := range fields {
		ids = append(ids, id)
	}
	sortFieldIds(ids)
	for i, id := range ids {
		info := fields[id]
		p := base + "." + itoa(i)
		doc = set(doc, p+".id", int(id))
		doc = set(doc, p+".name", info.Name)
		doc = set(doc, p+".type", tim.LookupTypeName(info.FieldType))
		doc = set(doc, p+".modifiers", modifierStrings(info.Modifiers))
	}
	return doc
}
