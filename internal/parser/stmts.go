package parser

import (
	"github.com/joosc/compiler/internal/ast"
	"github.com/joosc/compiler/internal/token"
)

func (p *Parser) parseBlock() *ast.Block {
	start := p.expect(token.LBRACE).Range.Begin
	var stmts []ast.Stmt
	for !p.at(token.RBRACE) && !p.at(token.EOF) {
		stmts = append(stmts, p.parseStmt())
	}
	end := p.expect(token.RBRACE).Range.End
	return &ast.Block{Stmts: stmts, Range: rangeFrom(start, end)}
}

func (p *Parser) parseStmt() ast.Stmt {
	switch p.cur().Type {
	case token.LBRACE:
		return p.parseBlock()
	case token.SEMI:
		r := p.advance().Range
		return &ast.EmptyStmt{Range: r}
	case token.IF:
		return p.parseIf()
	case token.WHILE:
		return p.parseWhile()
	case token.FOR:
		return p.parseFor()
	case token.RETURN:
		return p.parseReturn()
	}

	if decl, ok := p.tryLocalVarDecl(); ok {
		p.expect(token.SEMI)
		return decl
	}

	start := p.cur().Range.Begin
	x := p.parseExpr()
	end := p.expect(token.SEMI).Range.End
	return &ast.ExprStmt{X: x, Range: rangeFrom(start, end)}
}

// tryLocalVarDecl speculatively parses a type followed by an
// identifier; on failure it rewinds the cursor so the caller can fall
// back to parsing an expression statement. This is how the grammar's
// LocalVariableDeclarationStatement/ExpressionStatement ambiguity
// (both can start with an identifier) is resolved without a symbol
// table, matching how a hand-written recursive-descent Joos parser
// must do it (the original's LALR(1) grammar resolves it structurally
// instead, since it builds a single parse table up front).
func (p *Parser) tryLocalVarDecl() (*ast.LocalVarDecl, bool) {
	if !p.at(token.VOID) && !isPrimitiveType(p.cur().Type) && !p.at(token.IDENT) {
		return nil, false
	}
	savedPos, savedErrs := p.pos, len(p.errors)

	start := p.cur().Range.Begin
	tr := p.parseType()
	if !p.at(token.IDENT) {
		p.pos, p.errors = savedPos, p.errors[:savedErrs]
		return nil, false
	}
	name := p.advance()

	var init ast.Expr
	if p.at(token.ASSIGN) {
		p.advance()
		init = p.parseExpr()
	}
	end := p.cur().Range.Begin
	if init != nil {
		end = init.Pos().End
	} else {
		end = name.Range.End
	}
	return &ast.LocalVarDecl{
		Type: tr, Name: name.Literal, NameRange: name.Range, Init: init,
		Range: rangeFrom(start, end),
	}, true
}

func (p *Parser) parseIf() ast.Stmt {
	start := p.expect(token.IF).Range.Begin
	p.expect(token.LPAREN)
	cond := p.parseExpr()
	p.expect(token.RPAREN)
	then := p.parseStmt()
	var els ast.Stmt
	end := then.Pos().End
	if p.at(token.ELSE) {
		p.advance()
		els = p.parseStmt()
		end = els.Pos().End
	}
	return &ast.IfStmt{Cond: cond, Then: then, Else: els, Range: rangeFrom(start, end)}
}

func (p *Parser) parseWhile() ast.Stmt {
	start := p.expect(token.WHILE).Range.Begin
	p.expect(token.LPAREN)
	cond := p.parseExpr()
	p.expect(token.RPAREN)
	body := p.parseStmt()
	return &ast.WhileStmt{Cond: cond, Body: body, Range: rangeFrom(start, body.Pos().End)}
}

func (p *Parser) parseFor() ast.Stmt {
	start := p.expect(token.FOR).Range.Begin
	p.expect(token.LPAREN)

	var init ast.Stmt
	if !p.at(token.SEMI) {
		init = p.parseForClauseStmt()
	}
	p.expect(token.SEMI)

	var cond ast.Expr
	if !p.at(token.SEMI) {
		cond = p.parseExpr()
	}
	p.expect(token.SEMI)

	var update ast.Stmt
	if !p.at(token.RPAREN) {
		update = p.parseForClauseStmt()
	}
	p.expect(token.RPAREN)

	body := p.parseStmt()
	return &ast.ForStmt{Init: init, Cond: cond, Update: update, Body: body, Range: rangeFrom(start, body.Pos().End)}
}

// parseForClauseStmt parses the bare statement (no trailing semicolon)
// found in a for-loop's init/update clause: either a local declaration
// or a single expression.
func (p *Parser) parseForClauseStmt() ast.Stmt {
	if decl, ok := p.tryLocalVarDecl(); ok {
		return decl
	}
	start := p.cur().Range.Begin
	x := p.parseExpr()
	return &ast.ExprStmt{X: x, Range: rangeFrom(start, x.Pos().End)}
}

func (p *Parser) parseReturn() ast.Stmt {
	start := p.expect(token.RETURN).Range.Begin
	var val ast.Expr
	if !p.at(token.SEMI) {
		val = p.parseExpr()
	}
	end := p.expect(token.SEMI).Range.End
	return &ast.ReturnStmt{Value: val, Range: rangeFrom(start, end)}
}
