package typecheck

import (
	"github.com/joosc/compiler/internal/diagnostics"
	"github.com/joosc/compiler/internal/token"
	"github.com/joosc/compiler/internal/typesys"
)

var errorLocalVarID = typesys.LocalVarId(typesys.ErrorID)

// localVar is one live binding: a parameter or a local declared so far
// in the method currently being checked.
type localVar struct {
	name string
	tid  typesys.TypeId
	vid  typesys.LocalVarId
}

// SymbolTable tracks the locals and parameters visible at the current
// point of one method body, grounded on
// original_source/types/symbol_table.h. Joos forbids a local from
// shadowing any other local or parameter anywhere in the same method
// (not just the innermost block), so membership is checked against
// every entry currently on vars, not just the top scope.
type SymbolTable struct {
	vars   []localVar
	marks  []int // vars length at each EnterScope, for LeaveScope to roll back to
	nextID typesys.LocalVarId

	// declaring is the id of the local whose own initializer is
	// currently being type-checked, so a self-reference
	// (`int x = x;`) can be caught; -1 (errorLocalVarID's sibling
	// sentinel, chosen distinct from any real id) when nothing is
	// mid-declaration.
	declaring typesys.LocalVarId
}

// NewSymbolTable returns an empty table. vid allocation starts at
// typesys.FirstValid so that 0 (unassigned) and 1 (error) stay reserved.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{nextID: typesys.LocalVarId(typesys.FirstValid), declaring: -1}
}

// EnterScope opens a new nested block scope.
func (s *SymbolTable) EnterScope() {
	s.marks = append(s.marks, len(s.vars))
}

// LeaveScope closes the innermost open scope, discarding every local
// declared inside it.
func (s *SymbolTable) LeaveScope() {
	n := len(s.marks)
	mark := s.marks[n-1]
	s.marks = s.marks[:n-1]
	s.vars = s.vars[:mark]
}

// DeclareParam registers a parameter; parameters live for the whole
// method and are never subject to the self-reference check.
func (s *SymbolTable) DeclareParam(tid typesys.TypeId, name string, pos token.Range, out *diagnostics.List) typesys.LocalVarId {
	if prior, ok := s.find(name); ok {
		out.Addf(diagnostics.DuplicateVarDeclError, pos, "'"+name+"' is already declared in this method")
		return prior.vid
	}
	vid := s.nextID
	s.nextID++
	s.vars = append(s.vars, localVar{name: name, tid: tid, vid: vid})
	return vid
}

// DeclareStart registers a new local named name ahead of checking its
// initializer, so that the initializer's own Resolve calls can see it
// (to detect a self-reference) without yet letting the *rest of the
// method* shadow it twice. A name already declared anywhere earlier in
// this method reports DuplicateVarDeclError and reuses the existing id
// rather than pushing a duplicate binding.
func (s *SymbolTable) DeclareStart(tid typesys.TypeId, name string, pos token.Range, out *diagnostics.List) typesys.LocalVarId {
	if prior, ok := s.find(name); ok {
		out.Addf(diagnostics.DuplicateVarDeclError, pos, "'"+name+"' is already declared in this method")
		s.declaring = -1
		return prior.vid
	}
	vid := s.nextID
	s.nextID++
	s.vars = append(s.vars, localVar{name: name, tid: tid, vid: vid})
	s.declaring = vid
	return vid
}

// DeclareEnd closes the self-reference window opened by DeclareStart.
func (s *SymbolTable) DeclareEnd() {
	s.declaring = -1
}

func (s *SymbolTable) find(name string) (localVar, bool) {
	for i := len(s.vars) - 1; i >= 0; i-- {
		if s.vars[i].name == name {
			return s.vars[i], true
		}
	}
	return localVar{}, false
}

// Resolve looks up name among the locals and parameters currently in
// scope. ok is false (with a diagnostic already appended to out) if
// name isn't bound, or if it names the local whose own initializer is
// being checked right now.
func (s *SymbolTable) Resolve(name string, pos token.Range, out *diagnostics.List) (typesys.TypeId, typesys.LocalVarId, bool) {
	v, ok := s.find(name)
	if !ok {
		return typesys.ErrorType, errorLocalVarID, false
	}
	if v.vid == s.declaring {
		out.Addf(diagnostics.VariableInitializerSelfReferenceError, pos, "'"+name+"' cannot be used in its own initializer")
		return typesys.ErrorType, errorLocalVarID, false
	}
	return v.tid, v.vid, true
}
