package ast

import (
	"github.com/joosc/compiler/internal/token"
	"github.com/joosc/compiler/internal/typesys"
)

type Ident struct {
	baseExpr
	Name      string
	NameRange token.Range

	LocalVarID typesys.LocalVarId // set if this resolves to a local/parameter
}

func (i *Ident) Pos() token.Range { return i.NameRange }
func (i *Ident) exprNode()        {}

func (i *Ident) WithType(t typesys.TypeId) *Ident {
	n := *i
	n.Typ = t
	return &n
}

// IntLit is an integer literal. Literal holds the raw unsigned decimal
// digits as written in source; Value is only meaningful once the
// weeder's range check has run (spec.md's int-range weeding), since a
// bare "2147483648" overflows int32 unless it turns out to be negated
// by an enclosing UnaryExpr(MINUS) that the weeder folds away first.
type IntLit struct {
	baseExpr
	Literal string
	Value   int32
	Range   token.Range
}

func (l *IntLit) Pos() token.Range { return l.Range }
func (l *IntLit) exprNode()        {}

type BoolLit struct {
	baseExpr
	Value bool
	Range token.Range
}

func (l *BoolLit) Pos() token.Range { return l.Range }
func (l *BoolLit) exprNode()        {}

type CharLit struct {
	baseExpr
	Value byte
	Range token.Range
}

func (l *CharLit) Pos() token.Range { return l.Range }
func (l *CharLit) exprNode()        {}

// StringLit's StringID is -1 as parsed and no later stage assigns it:
// internal/ir looks a string constant up by Value in the constant
// folder's ConstStringMap.
type StringLit struct {
	baseExpr
	Value    string
	StringID int32
	Range    token.Range
}

func (l *StringLit) Pos() token.Range { return l.Range }
func (l *StringLit) exprNode()        {}

type NullLit struct {
	baseExpr
	Range token.Range
}

func (l *NullLit) Pos() token.Range { return l.Range }
func (l *NullLit) exprNode()        {}

type ThisExpr struct {
	baseExpr
	Range token.Range
}

func (t *ThisExpr) Pos() token.Range { return t.Range }
func (t *ThisExpr) exprNode()        {}

type CastExpr struct {
	baseExpr
	Type  TypeRef
	X     Expr
	Range token.Range
}

func (c *CastExpr) Pos() token.Range { return c.Range }
func (c *CastExpr) exprNode()        {}

type UnaryExpr struct {
	baseExpr
	Op    token.Type // MINUS or NOT
	X     Expr
	Range token.Range
}

func (u *UnaryExpr) Pos() token.Range { return u.Range }
func (u *UnaryExpr) exprNode()        {}

type BinaryExpr struct {
	baseExpr
	Op    token.Type
	X, Y  Expr
	Range token.Range
}

func (b *BinaryExpr) Pos() token.Range { return b.Range }
func (b *BinaryExpr) exprNode()        {}

type InstanceOfExpr struct {
	baseExpr
	X     Expr
	Type  TypeRef
	Range token.Range
}

func (i *InstanceOfExpr) Pos() token.Range { return i.Range }
func (i *InstanceOfExpr) exprNode()        {}

// FieldAccessExpr is `x.name` (X non-nil) or an implicit-this field
// reference `name` resolved to a field (X nil).
type FieldAccessExpr struct {
	baseExpr
	X         Expr // nil for implicit this
	Name      string
	NameRange token.Range
	Range     token.Range

	FieldID typesys.FieldId
}

func (f *FieldAccessExpr) Pos() token.Range { return f.Range }
func (f *FieldAccessExpr) exprNode()        {}

type ArrayAccessExpr struct {
	baseExpr
	Array Expr
	Index Expr
	Range token.Range
}

func (a *ArrayAccessExpr) Pos() token.Range { return a.Range }
func (a *ArrayAccessExpr) exprNode()        {}

// CallExpr is a method call. Receiver is nil for an unqualified call
// (implicit this, or a static call resolved via lexical scope);
// ExplicitThis distinguishes `this.foo()` from a bare `foo()`, which
// matters for the ExplicitThisCallError restriction on constructors.
type CallExpr struct {
	baseExpr
	Receiver     Expr
	ExplicitThis bool
	Name         string
	NameRange    token.Range
	Args         []Expr
	Range        token.Range

	MethodID typesys.MethodId
}

func (c *CallExpr) Pos() token.Range { return c.Range }
func (c *CallExpr) exprNode()        {}

type NewObjectExpr struct {
	baseExpr
	Type  TypeRef
	Args  []Expr
	Range token.Range

	CtorMethodID typesys.MethodId
}

func (n *NewObjectExpr) Pos() token.Range { return n.Range }
func (n *NewObjectExpr) exprNode()        {}

type NewArrayExpr struct {
	baseExpr
	ElemType TypeRef
	Size     Expr
	Range    token.Range
}

func (n *NewArrayExpr) Pos() token.Range { return n.Range }
func (n *NewArrayExpr) exprNode()        {}

type AssignExpr struct {
	baseExpr
	LHS   Expr
	RHS   Expr
	Range token.Range
}

func (a *AssignExpr) Pos() token.Range { return a.Range }
func (a *AssignExpr) exprNode()        {}

// ConstExpr wraps an expression that the constant folder has reduced
// to a compile-time literal. Orig is kept for diagnostics and for
// idempotence (Fold(Fold(e)) == Fold(e), spec.md §8 law 6): the folder
// recognizes a ConstExpr and returns it unchanged rather than
// re-folding Orig.
type ConstExpr struct {
	baseExpr
	Literal Expr // one of IntLit, BoolLit, CharLit, StringLit, NullLit
	Orig    Expr
}

func (c *ConstExpr) Pos() token.Range { return c.Orig.Pos() }
func (c *ConstExpr) exprNode()        {}
