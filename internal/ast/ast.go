// Package ast defines the Abstract Syntax Tree node types for Joos.
//
// Every node is an immutable value once constructed: passes never
// mutate a node in place. A pass that needs to record a resolved id
// (a TypeId, MethodId, FieldId, or LocalVarId) allocates a new node
// with that id set and returns it from Rewrite (see visitor.go),
// matching spec.md §3's "Lifecycle" note and §9's "pattern: in-place
// mutation for ids" translation guidance.
package ast

import (
	"github.com/joosc/compiler/internal/token"
	"github.com/joosc/compiler/internal/typesys"
)

// Node is the base interface implemented by every AST node.
type Node interface {
	Pos() token.Range
}

// Expr is any node that produces a value. Every Expr carries a TypeId
// slot that starts Unassigned and is set exactly once, by the type
// checker (spec.md §3).
type Expr interface {
	Node
	exprNode()
	TypeID() typesys.TypeId
}

// Stmt is a node that performs an action but produces no value.
type Stmt interface {
	Node
	stmtNode()
}

// Decl is a top-level or member declaration.
type Decl interface {
	Node
	declNode()
}

// baseExpr supplies the common TypeId slot; concrete expression types
// embed it by value (copying a baseExpr when rebuilding a node copies
// its resolved type along, which is what every rewriting pass wants).
type baseExpr struct {
	Typ typesys.TypeId
}

func (b baseExpr) TypeID() typesys.TypeId { return b.Typ }

// Modifiers is a small bitset for declaration modifiers.
type Modifiers uint8

const (
	ModPublic Modifiers = 1 << iota
	ModProtected
	ModPrivate
	ModAbstract
	ModFinal
	ModStatic
	ModNative
)

func (m Modifiers) Has(f Modifiers) bool { return m&f != 0 }

func (m Modifiers) IsProtected() bool { return m.Has(ModProtected) }
func (m Modifiers) IsPublic() bool    { return m.Has(ModPublic) }
func (m Modifiers) IsPrivate() bool   { return m.Has(ModPrivate) }
func (m Modifiers) IsAbstract() bool  { return m.Has(ModAbstract) }
func (m Modifiers) IsFinal() bool     { return m.Has(ModFinal) }
func (m Modifiers) IsStatic() bool    { return m.Has(ModStatic) }
func (m Modifiers) IsNative() bool    { return m.Has(ModNative) }

// QualifiedName is a dotted sequence of identifiers as written in
// source, before any resolution: `a.b.c` in an extends clause, an
// import, or a type reference.
type QualifiedName struct {
	Parts []string
	Range token.Range
}

func (q QualifiedName) Pos() token.Range { return q.Range }
func (q QualifiedName) String() string {
	out := ""
	for i, p := range q.Parts {
		if i > 0 {
			out += "."
		}
		out += p
	}
	return out
}

// TypeRef is the syntactic spelling of a type: either a primitive
// keyword or a qualified class/interface name, plus an array
// dimension count. Resolved holds the TypeId once DeclResolver has run;
// it is typesys.Unassigned until then.
type TypeRef struct {
	Primitive token.Type // zero value (token.ILLEGAL) if not a primitive
	Name      QualifiedName
	NDims     int
	IsVoid    bool
	Range     token.Range
	Resolved  typesys.TypeId
}

func (t TypeRef) Pos() token.Range { return t.Range }

// WithResolved returns a copy of t with Resolved set to id.
func (t TypeRef) WithResolved(id typesys.TypeId) TypeRef {
	t.Resolved = id
	return t
}

// CompilationUnit is one source file: an optional package, its
// imports, and its top-level type declarations (spec.md §3).
type CompilationUnit struct {
	File    token.FileID
	Package QualifiedName // Parts == nil means the default (unnamed) package
	Imports []ImportDecl
	Types   []*TypeDecl
	Range   token.Range
}

func (c *CompilationUnit) Pos() token.Range { return c.Range }

// ImportDecl is either `import a.b.C;` (single) or `import a.b.*;`
// (on-demand wildcard).
type ImportDecl struct {
	Name     QualifiedName
	Wildcard bool
	Range    token.Range
}

func (i ImportDecl) Pos() token.Range { return i.Range }

// Program is the whole compile: every compilation unit. The resolved
// runtime hookup ids are carried by ir.Program, not here.
type Program struct {
	Units []*CompilationUnit
}
