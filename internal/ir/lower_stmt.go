package ir

import (
	"fmt"

	"github.com/joosc/compiler/internal/ast"
	"github.com/joosc/compiler/internal/typesys"
)

// methodGen carries the per-method state statement/expression lowering
// share: the stream under construction, the local/parameter Mem map,
// and enough context (curType, thisMem, static) to resolve an
// implicit-this field access or call the same way internal/typecheck
// resolved it in the first place.
type methodGen struct {
	g       *Generator
	sb      *StreamBuilder
	locals  map[typesys.LocalVarId]Mem
	curType typesys.TypeId
	thisMem Mem
	static  bool
}

// genBlock lowers b's statements in order, tracking every local this
// block directly declares so they can be deallocated together, in
// reverse declaration order, once the block ends — the explicit
// replacement for the original's RAII-driven Mem lifetime (builder.go's
// DeallocInReverse doc comment; mirrors MethodIRGenerator's BlockStmt
// handling).
func (mg *methodGen) genBlock(b *ast.Block) {
	var locals []Mem
	for _, s := range b.Stmts {
		if lvd, ok := s.(*ast.LocalVarDecl); ok {
			locals = append(locals, mg.declareLocal(lvd))
			continue
		}
		mg.genStmt(s)
	}
	mg.sb.DeallocInReverse(locals)
}

// declareLocal allocates lvd's storage, lowers its initializer (if
// any) into it, and registers it for later genExpr(*ast.Ident) lookups
// by LocalVarId.
func (mg *methodGen) declareLocal(lvd *ast.LocalVarDecl) Mem {
	mem := mg.sb.AllocLocal(SizeClassFrom(lvd.Type.Resolved))
	mg.locals[lvd.LocalVarID] = mem
	if lvd.Init != nil {
		val := mg.genExpr(lvd.Init)
		mg.sb.Mov(mem, val)
	}
	return mem
}

func (mg *methodGen) genStmt(s ast.Stmt) {
	switch n := s.(type) {
	case *ast.Block:
		mg.genBlock(n)
	case *ast.LocalVarDecl:
		// Only reachable for a for-loop's Init, which genStmt(*ast.ForStmt)
		// handles itself so the loop-scoped local is deallocated once,
		// after the loop — see ForStmt's case below.
		panic("ir: LocalVarDecl must be lowered by its enclosing Block or ForStmt")
	case *ast.ExprStmt:
		mg.genExpr(n.X)
	case *ast.IfStmt:
		mg.genIf(n)
	case *ast.WhileStmt:
		mg.genWhile(n)
	case *ast.ForStmt:
		mg.genFor(n)
	case *ast.ReturnStmt:
		if n.Value == nil {
			mg.sb.Ret()
		} else {
			mg.sb.Ret(mg.genExpr(n.Value))
		}
	case *ast.EmptyStmt:
		// nothing to emit
	default:
		panic(fmt.Sprintf("ir: unhandled statement %T", s))
	}
}

// jumpUnless emits "if !cond, jump to label" — the shared shape every
// conditional-skip (if/while/for) needs, since the builder only
// provides jmp_if (branch when true).
func (mg *methodGen) jumpUnless(cond Mem, label LabelId) {
	notCond := mg.sb.AllocTemp(SizeBool)
	mg.sb.Not(notCond, cond)
	mg.sb.JmpIf(label, notCond)
}

func (mg *methodGen) genIf(n *ast.IfStmt) {
	cond := mg.genExpr(n.Cond)
	if n.Else == nil {
		end := mg.sb.AllocLabel()
		mg.jumpUnless(cond, end)
		mg.genStmt(n.Then)
		mg.sb.EmitLabel(end)
		return
	}
	elseLabel := mg.sb.AllocLabel()
	end := mg.sb.AllocLabel()
	mg.jumpUnless(cond, elseLabel)
	mg.genStmt(n.Then)
	mg.sb.Jmp(end)
	mg.sb.EmitLabel(elseLabel)
	mg.genStmt(n.Else)
	mg.sb.EmitLabel(end)
}

func (mg *methodGen) genWhile(n *ast.WhileStmt) {
	start := mg.sb.AllocLabel()
	end := mg.sb.AllocLabel()
	mg.sb.EmitLabel(start)
	cond := mg.genExpr(n.Cond)
	mg.jumpUnless(cond, end)
	mg.genStmt(n.Body)
	mg.sb.Jmp(start)
	mg.sb.EmitLabel(end)
}

func (mg *methodGen) genFor(n *ast.ForStmt) {
	var loopLocal Mem
	if n.Init != nil {
		if lvd, ok := n.Init.(*ast.LocalVarDecl); ok {
			loopLocal = mg.declareLocal(lvd)
		} else {
			mg.genStmt(n.Init)
		}
	}

	start := mg.sb.AllocLabel()
	end := mg.sb.AllocLabel()
	mg.sb.EmitLabel(start)
	if n.Cond != nil {
		cond := mg.genExpr(n.Cond)
		mg.jumpUnless(cond, end)
	}
	mg.genStmt(n.Body)
	if n.Update != nil {
		mg.genStmt(n.Update)
	}
	mg.sb.Jmp(start)
	mg.sb.EmitLabel(end)

	mg.sb.Dealloc(loopLocal)
}
