package parser

import (
	"strconv"

	"github.com/joosc/compiler/internal/ast"
	"github.com/joosc/compiler/internal/token"
	"github.com/joosc/compiler/internal/typesys"
)

func (p *Parser) parseExpr() ast.Expr { return p.parseAssign() }

// parseAssign is the grammar's entry point; Joos only has plain '='
// (no compound assignment operators), and assignment is right-associative.
func (p *Parser) parseAssign() ast.Expr {
	lhs := p.parseOrOr()
	if p.at(token.ASSIGN) {
		p.advance()
		rhs := p.parseAssign()
		return &ast.AssignExpr{LHS: lhs, RHS: rhs, Range: rangeFrom(lhs.Pos().Begin, rhs.Pos().End)}
	}
	return lhs
}

func (p *Parser) parseOrOr() ast.Expr {
	left := p.parseAndAnd()
	for p.at(token.OR_OR) {
		op := p.advance()
		right := p.parseAndAnd()
		left = &ast.BinaryExpr{Op: op.Type, X: left, Y: right, Range: rangeFrom(left.Pos().Begin, right.Pos().End)}
	}
	return left
}

func (p *Parser) parseAndAnd() ast.Expr {
	left := p.parseBitOr()
	for p.at(token.AND_AND) {
		op := p.advance()
		right := p.parseBitOr()
		left = &ast.BinaryExpr{Op: op.Type, X: left, Y: right, Range: rangeFrom(left.Pos().Begin, right.Pos().End)}
	}
	return left
}

func (p *Parser) parseBitOr() ast.Expr {
	left := p.parseBitXor()
	for p.at(token.OR) {
		op := p.advance()
		right := p.parseBitXor()
		left = &ast.BinaryExpr{Op: op.Type, X: left, Y: right, Range: rangeFrom(left.Pos().Begin, right.Pos().End)}
	}
	return left
}

func (p *Parser) parseBitXor() ast.Expr {
	left := p.parseBitAnd()
	for p.at(token.XOR) {
		op := p.advance()
		right := p.parseBitAnd()
		left = &ast.BinaryExpr{Op: op.Type, X: left, Y: right, Range: rangeFrom(left.Pos().Begin, right.Pos().End)}
	}
	return left
}

func (p *Parser) parseBitAnd() ast.Expr {
	left := p.parseEquality()
	for p.at(token.AND) {
		op := p.advance()
		right := p.parseEquality()
		left = &ast.BinaryExpr{Op: op.Type, X: left, Y: right, Range: rangeFrom(left.Pos().Begin, right.Pos().End)}
	}
	return left
}

func (p *Parser) parseEquality() ast.Expr {
	left := p.parseRelational()
	for p.at(token.EQ) || p.at(token.NEQ) {
		op := p.advance()
		right := p.parseRelational()
		left = &ast.BinaryExpr{Op: op.Type, X: left, Y: right, Range: rangeFrom(left.Pos().Begin, right.Pos().End)}
	}
	return left
}

// parseRelational handles <, <=, >, >= and instanceof, which share a
// precedence level in the Joos grammar (spec.md §4.4's expression
// typing rules treat instanceof alongside the comparison operators).
func (p *Parser) parseRelational() ast.Expr {
	left := p.parseAdditive()
	for {
		switch p.cur().Type {
		case token.LT, token.LEQ, token.GT, token.GEQ:
			op := p.advance()
			right := p.parseAdditive()
			left = &ast.BinaryExpr{Op: op.Type, X: left, Y: right, Range: rangeFrom(left.Pos().Begin, right.Pos().End)}
		case token.INSTANCEOF:
			p.advance()
			tr := p.parseType()
			left = &ast.InstanceOfExpr{X: left, Type: tr, Range: rangeFrom(left.Pos().Begin, tr.Range.End)}
		default:
			return left
		}
	}
}

func (p *Parser) parseAdditive() ast.Expr {
	left := p.parseMultiplicative()
	for p.at(token.PLUS) || p.at(token.MINUS) {
		op := p.advance()
		right := p.parseMultiplicative()
		left = &ast.BinaryExpr{Op: op.Type, X: left, Y: right, Range: rangeFrom(left.Pos().Begin, right.Pos().End)}
	}
	return left
}

func (p *Parser) parseMultiplicative() ast.Expr {
	left := p.parseUnary()
	for p.at(token.STAR) || p.at(token.SLASH) || p.at(token.PERCENT) {
		op := p.advance()
		right := p.parseUnary()
		left = &ast.BinaryExpr{Op: op.Type, X: left, Y: right, Range: rangeFrom(left.Pos().Begin, right.Pos().End)}
	}
	return left
}

// castFollowSet is the set of tokens that may start a
// UnaryExpressionNotPlusMinus: when a parenthesized reference type is
// followed by one of these, it's a cast; otherwise the parenthesis was
// just grouping an expression like `(a) - b`. Joos borrows this
// disambiguation directly from Java's grammar — primitive-type casts
// need no such check since a bare primitive keyword can never start an
// expression on its own.
func castFollowSet(t token.Type) bool {
	switch t {
	case token.IDENT, token.INT_LIT, token.STRING_LIT, token.CHAR_LIT,
		token.TRUE, token.FALSE, token.NULL, token.THIS, token.LPAREN, token.NOT, token.NEW:
		return true
	default:
		return false
	}
}

func (p *Parser) parseUnary() ast.Expr {
	switch p.cur().Type {
	case token.NOT, token.MINUS:
		op := p.advance()
		x := p.parseUnary()
		return &ast.UnaryExpr{Op: op.Type, X: x, Range: rangeFrom(op.Range.Begin, x.Pos().End)}
	case token.LPAREN:
		if cast, ok := p.tryParseCast(); ok {
			return cast
		}
	}
	return p.parsePostfix()
}

// tryParseCast speculatively parses "(" Type ")" UnaryExpr. It rewinds
// and reports false if the parenthesized content isn't a type, or (for
// a reference type) if the token following ")" can't start an
// expression — see castFollowSet.
func (p *Parser) tryParseCast() (ast.Expr, bool) {
	savedPos, savedErrs := p.pos, len(p.errors)
	start := p.cur().Range.Begin
	p.advance() // '('

	primitive := isPrimitiveType(p.cur().Type)
	tr := p.parseType()

	if !p.at(token.RPAREN) {
		p.pos, p.errors = savedPos, p.errors[:savedErrs]
		return nil, false
	}

	if !primitive && !castFollowSet(p.peek(1).Type) {
		p.pos, p.errors = savedPos, p.errors[:savedErrs]
		return nil, false
	}

	p.advance() // ')'
	x := p.parseUnary()
	return &ast.CastExpr{Type: tr, X: x, Range: rangeFrom(start, x.Pos().End)}, true
}

func (p *Parser) parsePostfix() ast.Expr {
	left := p.parsePrimary()
	for {
		switch {
		case p.at(token.DOT):
			p.advance()
			name := p.expect(token.IDENT)
			if p.at(token.LPAREN) {
				args := p.parseArgs()
				end := p.toks[p.pos-1].Range.End
				_, explicitThis := left.(*ast.ThisExpr)
				left = &ast.CallExpr{
					Receiver: left, ExplicitThis: explicitThis, Name: name.Literal, NameRange: name.Range,
					Args: args, Range: rangeFrom(left.Pos().Begin, end),
				}
			} else {
				left = &ast.FieldAccessExpr{X: left, Name: name.Literal, NameRange: name.Range, Range: rangeFrom(left.Pos().Begin, name.Range.End)}
			}
		case p.at(token.LBRACKET):
			p.advance()
			idx := p.parseExpr()
			end := p.expect(token.RBRACKET).Range.End
			left = &ast.ArrayAccessExpr{Array: left, Index: idx, Range: rangeFrom(left.Pos().Begin, end)}
		case p.at(token.LPAREN):
			id, ok := left.(*ast.Ident)
			if !ok {
				return left
			}
			args := p.parseArgs()
			end := p.toks[p.pos-1].Range.End
			left = &ast.CallExpr{Name: id.Name, NameRange: id.NameRange, Args: args, Range: rangeFrom(id.NameRange.Begin, end)}
		default:
			return left
		}
	}
}

// parseArgs parses a parenthesized, comma-separated (possibly empty)
// argument list; the caller has verified the current token is '('.
func (p *Parser) parseArgs() []ast.Expr {
	p.expect(token.LPAREN)
	var args []ast.Expr
	if !p.at(token.RPAREN) {
		args = append(args, p.parseExpr())
		for p.at(token.COMMA) {
			p.advance()
			args = append(args, p.parseExpr())
		}
	}
	p.expect(token.RPAREN)
	return args
}

func (p *Parser) parsePrimary() ast.Expr {
	tok := p.cur()
	switch tok.Type {
	case token.INT_LIT:
		p.advance()
		v, err := strconv.ParseUint(tok.Literal, 10, 32)
		lit := &ast.IntLit{Literal: tok.Literal, Range: tok.Range}
		if err == nil {
			lit.Value = int32(v)
		}
		return lit
	case token.STRING_LIT:
		p.advance()
		return &ast.StringLit{Value: tok.Literal, StringID: -1, Range: tok.Range}
	case token.CHAR_LIT:
		p.advance()
		var v byte
		if len(tok.Literal) > 0 {
			v = tok.Literal[0]
		}
		return &ast.CharLit{Value: v, Range: tok.Range}
	case token.TRUE:
		p.advance()
		return &ast.BoolLit{Value: true, Range: tok.Range}
	case token.FALSE:
		p.advance()
		return &ast.BoolLit{Value: false, Range: tok.Range}
	case token.NULL:
		p.advance()
		return &ast.NullLit{Range: tok.Range}
	case token.THIS:
		p.advance()
		return &ast.ThisExpr{Range: tok.Range}
	case token.IDENT:
		p.advance()
		return &ast.Ident{Name: tok.Literal, NameRange: tok.Range}
	case token.LPAREN:
		p.advance()
		x := p.parseExpr()
		p.expect(token.RPAREN)
		return x
	case token.NEW:
		return p.parseNew()
	}

	p.errorf(tok.Range, "expected expression, found %s %q", tok.Type, tok.Literal)
	p.advance()
	return &ast.NullLit{Range: tok.Range}
}

// parseNew parses either object creation (`new Foo(args)`) or array
// creation (`new T[n]`); Joos has no multi-dimensional array literals
// and no array-of-array `new T[][]`, so a single bracket pair suffices.
func (p *Parser) parseNew() ast.Expr {
	start := p.expect(token.NEW).Range.Begin

	var base ast.TypeRef
	if isPrimitiveType(p.cur().Type) {
		base.Primitive = p.cur().Type
		base.Range = p.cur().Range
		p.advance()
	} else {
		base.Name = p.parseQualifiedName()
		base.Range = base.Name.Range
	}
	base.Resolved = typesys.Unassigned

	if p.at(token.LBRACKET) {
		p.advance()
		size := p.parseExpr()
		end := p.expect(token.RBRACKET).Range.End
		return &ast.NewArrayExpr{ElemType: base, Size: size, Range: rangeFrom(start, end)}
	}

	args := p.parseArgs()
	end := p.toks[p.pos-1].Range.End
	return &ast.NewObjectExpr{Type: base, Args: args, Range: rangeFrom(start, end)}
}
