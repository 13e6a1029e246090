package typecheck

import (
	"github.com/joosc/compiler/internal/diagnostics"
	"github.com/joosc/compiler/internal/token"
	"github.com/joosc/compiler/internal/typeinfo"
	"github.com/joosc/compiler/internal/typesys"
)

// MethodTable and FieldTable hold only the members declared directly
// on one type (see their doc comments in internal/typeinfo); resolving
// a call or access against an inherited member means walking the
// extends/implements graph ourselves, trying each ancestor's own table
// in turn, and reporting against the original (most-derived) type only
// once nothing anywhere in the hierarchy matches.

func directAncestors(info typeinfo.TypeInfo) []typesys.TypeId {
	out := make([]typesys.TypeId, 0, len(info.Extends)+len(info.Implements))
	for _, e := range info.Extends {
		out = append(out, e.Type)
	}
	for _, e := range info.Implements {
		out = append(out, e.Type)
	}
	return out
}

// resolveCall resolves a method/constructor call against calleeType's
// own table or, failing that, each type it (transitively) extends or
// implements. Constructors are never inherited, so ctx == Constructor
// skips the walk entirely.
func (c *Checker) resolveCall(calleeType typesys.TypeId, ctx typeinfo.CallContext, name string, params []typesys.TypeId, pos token.Range) typesys.MethodId {
	info, ok := c.tim.LookupTypeInfo(calleeType)
	if !ok {
		return typesys.MethodId(typesys.ErrorID)
	}
	if ctx != typeinfo.Constructor {
		if mid, found := c.walkMethod(calleeType, ctx, name, params, map[typesys.TypeId]bool{}); found {
			return mid
		}
	}
	return info.Methods.ResolveCall(c.tim, c.curType, ctx, calleeType, params, name, pos, c.out)
}

func (c *Checker) walkMethod(tid typesys.TypeId, ctx typeinfo.CallContext, name string, params []typesys.TypeId, seen map[typesys.TypeId]bool) (typesys.MethodId, bool) {
	if seen[tid] {
		return 0, false
	}
	seen[tid] = true
	info, ok := c.tim.LookupTypeInfo(tid)
	if !ok {
		return 0, false
	}
	var probe diagnostics.List
	mid := info.Methods.ResolveCall(c.tim, c.curType, ctx, tid, params, name, token.Range{}, &probe)
	if !mid.IsError() {
		return mid, true
	}
	for _, a := range directAncestors(info) {
		if mid, found := c.walkMethod(a, ctx, name, params, seen); found {
			return mid, true
		}
	}
	return 0, false
}

// resolveField resolves a field access against calleeType's own table
// or, failing that, each ancestor's.
func (c *Checker) resolveField(calleeType typesys.TypeId, ctx typeinfo.CallContext, name string, pos token.Range) typesys.FieldId {
	info, ok := c.tim.LookupTypeInfo(calleeType)
	if !ok {
		return typesys.FieldId(typesys.ErrorID)
	}
	if fid, found := c.walkField(calleeType, ctx, name, map[typesys.TypeId]bool{}); found {
		return fid
	}
	return info.Fields.ResolveAccess(c.tim, c.curType, ctx, calleeType, name, pos, c.out)
}

func (c *Checker) walkField(tid typesys.TypeId, ctx typeinfo.CallContext, name string, seen map[typesys.TypeId]bool) (typesys.FieldId, bool) {
	if seen[tid] {
		return 0, false
	}
	seen[tid] = true
	info, ok := c.tim.LookupTypeInfo(tid)
	if !ok {
		return 0, false
	}
	var probe diagnostics.List
	fid := info.Fields.ResolveAccess(c.tim, c.curType, ctx, tid, name, token.Range{}, &probe)
	if !fid.IsError() {
		return fid, true
	}
	for _, a := range directAncestors(info) {
		if fid, found := c.walkField(a, ctx, name, seen); found {
			return fid, true
		}
	}
	return 0, false
}
