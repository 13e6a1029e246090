package ir

import (
	"github.com/joosc/compiler/internal/diagnostics"
	"github.com/joosc/compiler/internal/token"
	"github.com/joosc/compiler/internal/typeinfo"
	"github.com/joosc/compiler/internal/typeset"
	"github.com/joosc/compiler/internal/typesys"
)

// LookupRuntimeIds resolves every well-known runtime hookup spec.md
// §4.7 names by type/method/field name, grounded directly on
// ir_generator.cpp's LookupRuntimeIds: each hookup is resolved through
// the same MethodTable.ResolveCall/FieldTable.ResolveAccess machinery
// internal/typecheck uses for ordinary calls, just with the runtime
// support library's own type as both caller and callee. It runs once
// per compile, after internal/typeinfo has built tim, and before
// internal/ir lowers any method body.
//
// A name this function cannot resolve means the runtime support
// library shipped with the compiler is broken, not that the Joos
// program being compiled has an error: it panics rather than
// returning a diagnostic, matching the original's own CHECK()-based
// termination on a LookupRuntimeIds failure — there is no Joos source
// position to attach a user-facing diagnostic to.
func LookupRuntimeIds(ts typeset.TypeSet, tim typeinfo.TypeInfoMap) RuntimeLinkIds {
	var throwaway diagnostics.List
	zeroPos := token.Range{}

	var ids RuntimeLinkIds

	ids.ObjectType = mustType(ts, "java", "lang", "Object")
	ids.StringType = mustType(ts, "java", "lang", "String")
	stringInfo := mustTypeInfo(tim, ids.StringType, "java.lang.String")

	ids.StringConcat = mustCall(stringInfo.Methods, tim, ids.StringType, typeinfo.Instance, ids.StringType,
		[]typesys.TypeId{ids.StringType}, "concat", zeroPos, &throwaway, "java.lang.String.concat")

	ids.StringValueOf = make(map[int32]typesys.MethodId, 5)
	for _, prim := range []typesys.TypeId{typesys.Int, typesys.Short, typesys.Char, typesys.Byte, typesys.Bool} {
		mid := mustCall(stringInfo.Methods, tim, ids.StringType, typeinfo.Static, ids.StringType,
			[]typesys.TypeId{prim}, "valueOf", zeroPos, &throwaway, "java.lang.String.valueOf")
		ids.StringValueOf[prim.Base] = mid
	}

	ids.TypeInfoType = mustType(ts, "__joos_internal__", "TypeInfo")
	typeInfoInfo := mustTypeInfo(tim, ids.TypeInfoType, "__joos_internal__.TypeInfo")

	ids.TypeInfoCtor = mustCall(typeInfoInfo.Methods, tim, ids.TypeInfoType, typeinfo.Constructor, ids.TypeInfoType,
		[]typesys.TypeId{typesys.Int, ids.TypeInfoType.ArrayOf()}, "TypeInfo", zeroPos, &throwaway, "__joos_internal__.TypeInfo constructor")

	ids.TypeInfoIsInst = mustCall(typeInfoInfo.Methods, tim, ids.TypeInfoType, typeinfo.Static, ids.TypeInfoType,
		[]typesys.TypeId{ids.TypeInfoType, ids.TypeInfoType}, "InstanceOf", zeroPos, &throwaway, "__joos_internal__.TypeInfo.InstanceOf")

	ids.TypeInfoNumTypes = typeInfoInfo.Fields.ResolveAccess(tim, ids.TypeInfoType, typeinfo.Static, ids.TypeInfoType,
		"num_types", zeroPos, &throwaway)
	if ids.TypeInfoNumTypes.IsError() {
		panic("internal error: __joos_internal__.TypeInfo.num_types not found")
	}

	ids.StringOpsType = mustType(ts, "__joos_internal__", "StringOps")
	stringOpsInfo := mustTypeInfo(tim, ids.StringOpsType, "__joos_internal__.StringOps")
	ids.StringOpsStr = mustCall(stringOpsInfo.Methods, tim, ids.StringOpsType, typeinfo.Static, ids.StringOpsType,
		[]typesys.TypeId{ids.ObjectType}, "Str", zeroPos, &throwaway, "__joos_internal__.StringOps.Str")

	ids.StackFrameType = mustType(ts, "__joos_internal__", "StackFrame")
	stackFrameInfo := mustTypeInfo(tim, ids.StackFrameType, "__joos_internal__.StackFrame")
	ids.StackFramePrint = mustCall(stackFrameInfo.Methods, tim, ids.StackFrameType, typeinfo.Instance, ids.StackFrameType,
		nil, "Print", zeroPos, &throwaway, "__joos_internal__.StackFrame.Print")
	ids.StackFramePrintEx = mustCall(stackFrameInfo.Methods, tim, ids.StackFrameType, typeinfo.Static, ids.StackFrameType,
		[]typesys.TypeId{typesys.Int}, "PrintException", zeroPos, &throwaway, "__joos_internal__.StackFrame.PrintException")

	ids.ArrayRuntimeType = mustType(ts, "__joos_internal__", "Array")

	return ids
}

func mustType(ts typeset.TypeSet, parts ...string) typesys.TypeId {
	tid := ts.Get(parts, token.Range{}, nil)
	if !tid.IsValid() || tid.IsError() {
		panic("internal error: runtime type " + joinParts(parts) + " not found")
	}
	return tid
}

func joinParts(parts []string) string {
	out := parts[0]
	for _, p := range parts[1:] {
		out += "." + p
	}
	return out
}

func mustTypeInfo(tim typeinfo.TypeInfoMap, tid typesys.TypeId, name string) typeinfo.TypeInfo {
	info, ok := tim.LookupTypeInfo(tid)
	if !ok {
		panic("internal error: runtime type " + name + " has no TypeInfo")
	}
	return info
}

func mustCall(methods typeinfo.MethodTable, tim typeinfo.TypeInfoMap, callerType typesys.TypeId, ctx typeinfo.CallContext, calleeType typesys.TypeId, params []typesys.TypeId, name string, pos token.Range, out *diagnostics.List, full string) typesys.MethodId {
	mid := methods.ResolveCall(tim, callerType, ctx, calleeType, params, name, pos, out)
	if mid.IsError() {
		panic("internal error: runtime method " + full + " not found")
	}
	return mid
}
