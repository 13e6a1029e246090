package ast

import (
	"github.com/joosc/compiler/internal/token"
	"github.com/joosc/compiler/internal/typesys"
)

// TypeDecl is a class or interface declaration.
type TypeDecl struct {
	Kind         typesys.TypeKind
	Modifiers    Modifiers
	Name         string
	NameRange    token.Range
	Extends      []QualifiedName
	Implements   []QualifiedName
	Fields       []*FieldDecl
	Methods      []*MethodDecl
	Constructors []*MethodDecl
	Range        token.Range

	// Set by DeclResolver/TypeInfoMap construction.
	TypeID  typesys.TypeId
	Package QualifiedName
}

func (t *TypeDecl) Pos() token.Range { return t.Range }
func (t *TypeDecl) declNode()        {}

// FieldDecl is a field declaration within a class or interface.
type FieldDecl struct {
	Modifiers Modifiers
	Type      TypeRef
	Name      string
	NameRange token.Range
	Init      Expr // nil if uninitialized
	Range     token.Range

	FieldID   typesys.FieldId
	OwnerType typesys.TypeId
}

func (f *FieldDecl) Pos() token.Range { return f.Range }
func (f *FieldDecl) declNode()        {}

// Param is one formal parameter of a method or constructor.
type Param struct {
	Type      TypeRef
	Name      string
	NameRange token.Range

	LocalVarID typesys.LocalVarId
}

func (p Param) Pos() token.Range { return p.NameRange }

// MethodDecl is a method or constructor declaration. IsConstructor
// distinguishes the two; ReturnType has IsVoid=true for void methods,
// and is the zero TypeRef (ignored) for constructors.
type MethodDecl struct {
	Modifiers     Modifiers
	IsConstructor bool
	ReturnType    TypeRef
	Name          string
	NameRange     token.Range
	Params        []*Param
	Body          *Block // nil for abstract/native methods
	Range         token.Range

	MethodID  typesys.MethodId
	OwnerType typesys.TypeId
}

func (m *MethodDecl) Pos() token.Range { return m.Range }
func (m *MethodDecl) declNode()        {}

// ParamTypes returns the resolved parameter TypeIds, in declaration order.
func (m *MethodDecl) ParamTypes() []typesys.TypeId {
	out := make([]typesys.TypeId, len(m.Params))
	for i, p := range m.Params {
		out[i] = p.Type.Resolved
	}
	return out
}
