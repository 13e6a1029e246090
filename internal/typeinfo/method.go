package typeinfo

import (
	"fmt"
	"strings"

	"github.com/joosc/compiler/internal/ast"
	"github.com/joosc/compiler/internal/diagnostics"
	"github.com/joosc/compiler/internal/token"
	"github.com/joosc/compiler/internal/typesys"
)

// CallContext describes the syntactic shape of a call or field access,
// grounded on types.CallContext.
type CallContext int

const (
	// Instance is a call/access through an instance-valued receiver,
	// or an unqualified name inside an instance method/constructor.
	Instance CallContext = iota
	// Constructor is `new T(...)`.
	Constructor
	// Static is a call/access qualified by a type name (`T.m()`), or an
	// unqualified name inside a static method.
	Static
)

// MethodSignature identifies an overload: Joos has no covariant
// overloading, so (constructor-ness, name, parameter types) is unique
// within one type's own declarations.
type MethodSignature struct {
	IsConstructor bool
	Name          string
	ParamTypes    []typesys.TypeId
}

func (s MethodSignature) key() string {
	var b strings.Builder
	if s.IsConstructor {
		b.WriteByte('C')
	} else {
		b.WriteByte('M')
	}
	b.WriteString(s.Name)
	for _, t := range s.ParamTypes {
		fmt.Fprintf(&b, "|%d:%d", t.Base, t.NDims)
	}
	return b.String()
}

// MethodInfo is everything known about one resolved method or
// constructor declaration.
type MethodInfo struct {
	MethodID   typesys.MethodId
	ClassType  typesys.TypeId
	Modifiers  ast.Modifiers
	ReturnType typesys.TypeId
	Pos        token.Range
	Signature  MethodSignature
}

const errorMethodId = typesys.MethodId(typesys.ErrorID)

var errorMethodInfo = MethodInfo{MethodID: errorMethodId, ReturnType: typesys.ErrorType}

// MethodTable is the resolved, override-validated set of methods and
// constructors declared directly on one type (inherited methods are
// reached by internal/typecheck walking the extends/implements edges
// and calling ResolveCall against each ancestor's own MethodTable,
// mirroring how the original
// leaves inheritance to ResolveCall rather than flattening it into
// each type's table).
type MethodTable struct {
	bySignature map[string]MethodInfo
	byID        map[typesys.MethodId]MethodInfo

	allBlacklisted    bool // every call against this table is an error (error type)
	hasBadConstructor bool // at least one mis-named constructor; blacklists all ctor calls
	badNames          map[string]bool
}

var emptyMethodTable = MethodTable{bySignature: map[string]MethodInfo{}, byID: map[typesys.MethodId]MethodInfo{}}
var errorMethodTable = MethodTable{allBlacklisted: true}

// LookupMethod returns the MethodInfo for a previously resolved id.
func (t MethodTable) LookupMethod(mid typesys.MethodId) (MethodInfo, bool) {
	if mid == errorMethodId {
		return errorMethodInfo, true
	}
	info, ok := t.byID[mid]
	return info, ok
}

// GetMethodMap returns every method or constructor declared directly
// on this type, keyed by id, mirroring FieldTable.GetFieldMap — added
// for internal/dump, which needs to enumerate a whole table rather
// than look up one already-known id.
func (t MethodTable) GetMethodMap() map[typesys.MethodId]MethodInfo {
	return t.byID
}

// LookupSignature returns the MethodInfo declared directly on this
// type matching sig, ignoring access control.
func (t MethodTable) LookupSignature(sig MethodSignature) (MethodInfo, bool) {
	info, ok := t.bySignature[sig.key()]
	return info, ok
}

func (t MethodTable) isBlacklisted(ctx CallContext, name string) bool {
	if t.allBlacklisted {
		return true
	}
	if ctx == Constructor {
		return t.hasBadConstructor
	}
	return t.badNames[name]
}

// ResolveCall resolves one call's method name + Constructor-ness against
// calleeType's MethodTable, applying visibility, static/instance
// context, and abstract-instantiation checks, and returns the MethodId
// on success or errorMethodId (with a diagnostic appended to out) on
// failure.
func (t MethodTable) ResolveCall(tim TypeInfoMap, callerType typesys.TypeId, ctx CallContext, calleeType typesys.TypeId, params []typesys.TypeId, methodName string, pos token.Range, out *diagnostics.List) typesys.MethodId {
	if t.isBlacklisted(ctx, methodName) {
		return errorMethodId
	}

	sig := MethodSignature{IsConstructor: ctx == Constructor, Name: methodName, ParamTypes: params}
	info, ok := t.bySignature[sig.key()]
	if !ok {
		out.Addf(diagnostics.UndefinedMethodError, pos, "no method '"+methodName+"' with this signature")
		return errorMethodId
	}

	switch {
	case ctx == Static && !info.Modifiers.IsStatic():
		out.Addf(diagnostics.StaticMethodOnInstanceError, pos, "'"+methodName+"' is an instance method, not static")
		return errorMethodId
	case ctx == Instance && info.Modifiers.IsStatic():
		out.Addf(diagnostics.InstanceMethodOnStaticError, pos, "'"+methodName+"' is static, called as an instance method")
		return errorMethodId
	}

	if !checkAccessible(tim, callerType, calleeType, info.ClassType, info.Modifiers) {
		err := diagnostics.New(diagnostics.PermissionError, pos, "'"+methodName+"' is not accessible here").WithSecondary(info.Pos)
		out.Add(err)
		return errorMethodId
	}

	if ctx == Constructor {
		if cinfo, ok := tim.LookupTypeInfo(calleeType); ok && cinfo.Modifiers.IsAbstract() {
			out.Addf(diagnostics.NewAbstractClassError, pos, "cannot instantiate abstract type '"+cinfo.Name+"'")
			return errorMethodId
		}
	}

	return info.MethodID
}

// checkAccessible applies Joos's visibility rules: public is always
// visible; protected is visible from the same package or from a
// subtype of the declaring type; anything else (private, or no
// modifier at all) is visible only from the declaring type itself.
func checkAccessible(tim TypeInfoMap, callerType, calleeType, declType typesys.TypeId, mods ast.Modifiers) bool {
	if mods.IsPublic() {
		return true
	}
	declInfo, ok := tim.LookupTypeInfo(declType)
	if !ok {
		return true // declaring type is already in error; don't cascade
	}
	if mods.IsProtected() {
		callerInfo, ok := tim.LookupTypeInfo(callerType)
		if ok && callerInfo.Package == declInfo.Package {
			return true
		}
		return tim.IsAncestor(callerType, declType)
	}
	// private, or no access modifier at all: only the declaring type itself.
	return callerType == declType || calleeType == declType
}
