package ast

import (
	"github.com/joosc/compiler/internal/token"
	"github.com/joosc/compiler/internal/typesys"
)

// Block is a brace-delimited sequence of statements; it is itself a
// Stmt so it can appear as a method body or as the body of an if/while/for.
type Block struct {
	Stmts []Stmt
	Range token.Range
}

func (b *Block) Pos() token.Range { return b.Range }
func (b *Block) stmtNode()        {}

// LocalVarDecl declares one local variable, optionally with an
// initializer. Joos forbids C-style comma-separated declarations, so
// one node covers one variable (spec.md §4.4's "Local-decl" rule).
type LocalVarDecl struct {
	Type      TypeRef
	Name      string
	NameRange token.Range
	Init      Expr
	Range     token.Range

	LocalVarID typesys.LocalVarId

	// declaring is true only while the type checker is resolving Init,
	// to detect a local referencing itself in its own initializer
	// (spec.md §4.4, VariableInitializerSelfReferenceError). It is not
	// meaningful outside that single pass.
	declaring bool
}

func (l *LocalVarDecl) Pos() token.Range { return l.Range }
func (l *LocalVarDecl) stmtNode()        {}

// SetDeclaring and IsDeclaring support the type checker's self-reference
// check; they live on the node because the symbol table only stores a
// LocalVarId, not a pointer back to the declaration being checked.
func (l *LocalVarDecl) SetDeclaring(v bool) { l.declaring = v }
func (l *LocalVarDecl) IsDeclaring() bool   { return l.declaring }

type ExprStmt struct {
	X     Expr
	Range token.Range
}

func (e *ExprStmt) Pos() token.Range { return e.Range }
func (e *ExprStmt) stmtNode()        {}

type IfStmt struct {
	Cond  Expr
	Then  Stmt
	Else  Stmt // nil if no else branch
	Range token.Range
}

func (i *IfStmt) Pos() token.Range { return i.Range }
func (i *IfStmt) stmtNode()        {}

type WhileStmt struct {
	Cond  Expr
	Body  Stmt
	Range token.Range
}

func (w *WhileStmt) Pos() token.Range { return w.Range }
func (w *WhileStmt) stmtNode()        {}

// ForStmt's Init/Update are statements (LocalVarDecl or ExprStmt) or
// nil; Cond is nil for an omitted `for(;;)` condition (treated as the
// constant `true`, per Java/Joos convention).
type ForStmt struct {
	Init   Stmt
	Cond   Expr
	Update Stmt
	Body   Stmt
	Range  token.Range
}

func (f *ForStmt) Pos() token.Range { return f.Range }
func (f *ForStmt) stmtNode()        {}

type ReturnStmt struct {
	Value Expr // nil for bare `return;`
	Range token.Range
}

func (r *ReturnStmt) Pos() token.Range { return r.Range }
func (r *ReturnStmt) stmtNode()        {}

// EmptyStmt is a bare `;`.
type EmptyStmt struct {
	Range token.Range
}

func (e *EmptyStmt) Pos() token.Range { return e.Range }
func (e *EmptyStmt) stmtNode()        {}
