package parser

import (
	"github.com/joosc/compiler/internal/ast"
	"github.com/joosc/compiler/internal/token"
	"github.com/joosc/compiler/internal/typesys"
)

// parseModifiers consumes zero or more modifier keywords. Legality of
// the resulting set (e.g. "a class must be public") is the weeder's
// job, not the parser's — the grammar accepts any combination here.
func (p *Parser) parseModifiers() ast.Modifiers {
	var m ast.Modifiers
	for {
		switch p.cur().Type {
		case token.PUBLIC:
			m |= ast.ModPublic
		case token.PROTECTED:
			m |= ast.ModProtected
		case token.PRIVATE:
			m |= ast.ModPrivate
		case token.ABSTRACT:
			m |= ast.ModAbstract
		case token.FINAL:
			m |= ast.ModFinal
		case token.STATIC:
			m |= ast.ModStatic
		case token.NATIVE:
			m |= ast.ModNative
		default:
			return m
		}
		p.advance()
	}
}

func (p *Parser) parseTypeDecl() *ast.TypeDecl {
	start := p.cur().Range.Begin
	mods := p.parseModifiers()

	var kind typesys.TypeKind
	switch p.cur().Type {
	case token.CLASS:
		kind = typesys.Class
		p.advance()
	case token.INTERFACE:
		kind = typesys.Interface
		p.advance()
	default:
		p.errorf(p.cur().Range, "expected class or interface declaration")
	}

	nameTok := p.expect(token.IDENT)
	td := &ast.TypeDecl{Kind: kind, Modifiers: mods, Name: nameTok.Literal, NameRange: nameTok.Range}

	if p.at(token.EXTENDS) {
		p.advance()
		td.Extends = append(td.Extends, p.parseQualifiedName())
		for p.at(token.COMMA) {
			p.advance()
			td.Extends = append(td.Extends, p.parseQualifiedName())
		}
	}
	if p.at(token.IMPLEMENTS) {
		p.advance()
		td.Implements = append(td.Implements, p.parseQualifiedName())
		for p.at(token.COMMA) {
			p.advance()
			td.Implements = append(td.Implements, p.parseQualifiedName())
		}
	}

	p.expect(token.LBRACE)
	for !p.at(token.RBRACE) && !p.at(token.EOF) {
		p.parseMember(td)
	}
	end := p.expect(token.RBRACE).Range.End

	td.Range = rangeFrom(start, end)
	return td
}

// parseMember parses one field, method, or constructor and appends it
// to td. A constructor is recognized by an identifier immediately
// followed by '(' with no return type in between; the parser does not
// compare that name with the enclosing type's name. The weeder checks
// it (spec.md §4.3 "constructor name == class name"), since a
// mis-named constructor parses as a constructor anyway (kind tracked
// via parser heuristic, not symbol-table lookup).
func (p *Parser) parseMember(td *ast.TypeDecl) {
	start := p.cur().Range.Begin
	mods := p.parseModifiers()

	if p.at(token.IDENT) && p.peek(1).Type == token.LPAREN {
		name := p.advance()
		ctor := p.parseMethodTail(start, mods, ast.TypeRef{}, name, true)
		td.Constructors = append(td.Constructors, ctor)
		return
	}

	rt := p.parseType()
	nameTok := p.expect(token.IDENT)

	if p.at(token.LPAREN) {
		m := p.parseMethodTail(start, mods, rt, nameTok, false)
		td.Methods = append(td.Methods, m)
		return
	}

	// Field declaration.
	var init ast.Expr
	if p.at(token.ASSIGN) {
		p.advance()
		init = p.parseExpr()
	}
	semi := p.expect(token.SEMI)
	td.Fields = append(td.Fields, &ast.FieldDecl{
		Modifiers: mods,
		Type:      rt,
		Name:      nameTok.Literal,
		NameRange: nameTok.Range,
		Init:      init,
		Range:     rangeFrom(start, semi.Range.End),
	})
}

func (p *Parser) parseMethodTail(start token.Pos, mods ast.Modifiers, rt ast.TypeRef, name token.Token, isCtor bool) *ast.MethodDecl {
	p.expect(token.LPAREN)
	var params []*ast.Param
	if !p.at(token.RPAREN) {
		params = append(params, p.parseParam())
		for p.at(token.COMMA) {
			p.advance()
			params = append(params, p.parseParam())
		}
	}
	p.expect(token.RPAREN)

	var body *ast.Block
	var end token.Pos
	if p.at(token.LBRACE) {
		body = p.parseBlock()
		end = body.Range.End
	} else {
		end = p.expect(token.SEMI).Range.End
	}

	return &ast.MethodDecl{
		Modifiers:     mods,
		IsConstructor: isCtor,
		ReturnType:    rt,
		Name:          name.Literal,
		NameRange:     name.Range,
		Params:        params,
		Body:          body,
		Range:         rangeFrom(start, end),
	}
}

func (p *Parser) parseParam() *ast.Param {
	t := p.parseType()
	name := p.expect(token.IDENT)
	return &ast.Param{Type: t, Name: name.Literal, NameRange: name.Range}
}

// primitiveTypeTokens maps a primitive keyword token to itself for use
// as ast.TypeRef.Primitive; parseType only needs to recognize them.
func isPrimitiveType(t token.Type) bool {
	switch t {
	case token.BOOLEAN, token.BYTE, token.CHAR, token.SHORT, token.INT:
		return true
	default:
		return false
	}
}

// parseType parses a type reference: `void`, a primitive, or a
// qualified class/interface name, each optionally followed by one or
// more `[]` array dimensions (spec.md §3's TypeRef).
func (p *Parser) parseType() ast.TypeRef {
	start := p.cur().Range.Begin
	var tr ast.TypeRef

	switch {
	case p.at(token.VOID):
		p.advance()
		tr.IsVoid = true
	case isPrimitiveType(p.cur().Type):
		tr.Primitive = p.cur().Type
		p.advance()
	default:
		tr.Name = p.parseQualifiedName()
	}

	end := p.toks[p.pos-1].Range.End
	for p.at(token.LBRACKET) && p.peek(1).Type == token.RBRACKET {
		p.advance()
		end = p.advance().Range.End
		tr.NDims++
	}
	tr.Range = rangeFrom(start, end)
	tr.Resolved = typesys.Unassigned
	return tr
}
