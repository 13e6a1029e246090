// Package parser is the recursive-descent parser for Joos: it consumes
// the token stream internal/lexer produces and builds the internal/ast
// tree the rest of the pipeline operates on. Grounded on
// original_source/parser/parser.cpp's grammar shape (a hand-written
// recursive-descent parser over Joos 1's LALR(1) grammar), translated
// into a Go cursor over a pre-lexed token slice rather than a
// streaming lexer callback, matching the teacher's own
// cursor-over-a-slice parser style.
package parser

import (
	"fmt"

	"github.com/joosc/compiler/internal/ast"
	"github.com/joosc/compiler/internal/lexer"
	"github.com/joosc/compiler/internal/token"
)

// Error is a syntax error: parsing is an external collaborator per
// spec.md §1, so these are never part of the diagnostics.Kind
// inventory — they are fatal before the semantic core ever runs
// (spec.md §7's fail-fast-by-stage).
type Error struct {
	Message string
	Range   token.Range
}

func (e Error) Error() string { return fmt.Sprintf("%s at %s", e.Message, e.Range.Begin) }

// Parser parses one file's token stream into a CompilationUnit.
type Parser struct {
	file   token.FileID
	toks   []token.Token
	pos    int
	errors []Error
}

// New lexes content in full and returns a Parser positioned at its
// first token. Lexer errors are folded into the parser's own error
// list so callers only need to check one place before giving up on a
// file (spec.md §7's "fail fast by stage").
func New(file token.FileID, content []byte) *Parser {
	l := lexer.New(file, content)
	var toks []token.Token
	for {
		t := l.NextToken()
		if t.Type != token.COMMENT {
			toks = append(toks, t)
		}
		if t.Type == token.EOF {
			break
		}
	}
	p := &Parser{file: file, toks: toks}
	for _, le := range l.Errors() {
		p.errors = append(p.errors, Error{Message: le.Message, Range: token.Range{Begin: le.Pos, End: le.Pos}})
	}
	return p
}

func (p *Parser) Errors() []Error { return p.errors }

func (p *Parser) cur() token.Token  { return p.toks[p.pos] }
func (p *Parser) peek(n int) token.Token {
	i := p.pos + n
	if i >= len(p.toks) {
		return p.toks[len(p.toks)-1] // EOF
	}
	return p.toks[i]
}

func (p *Parser) at(t token.Type) bool { return p.cur().Type == t }

func (p *Parser) advance() token.Token {
	t := p.cur()
	if t.Type != token.EOF {
		p.pos++
	}
	return t
}

// expect consumes the current token if it matches t, else records a
// syntax error and returns the current, unconsumed token so callers can keep going
// with best-effort recovery (this pipeline's core stages never see a
// malformed tree: a fatal syntax error aborts before TypeSet build).
func (p *Parser) expect(t token.Type) token.Token {
	if p.cur().Type == t {
		return p.advance()
	}
	p.errorf(p.cur().Range, "expected %s, found %s %q", t, p.cur().Type, p.cur().Literal)
	return p.cur()
}

func (p *Parser) errorf(r token.Range, format string, args ...any) {
	p.errors = append(p.errors, Error{Message: fmt.Sprintf(format, args...), Range: r})
}

func rangeFrom(begin token.Pos, end token.Pos) token.Range {
	return token.Range{Begin: begin, End: end}
}

// ParseCompilationUnit parses one file: an optional package
// declaration, its imports, and its top-level type declarations.
func (p *Parser) ParseCompilationUnit() *ast.CompilationUnit {
	start := p.cur().Range.Begin
	cu := &ast.CompilationUnit{File: p.file}

	if p.at(token.PACKAGE) {
		p.advance()
		cu.Package = p.parseQualifiedName()
		p.expect(token.SEMI)
	}

	for p.at(token.IMPORT) {
		cu.Imports = append(cu.Imports, p.parseImport())
	}

	for p.at(token.CLASS) || p.at(token.PUBLIC) || p.at(token.ABSTRACT) || p.at(token.FINAL) || p.at(token.INTERFACE) {
		cu.Types = append(cu.Types, p.parseTypeDecl())
	}

	cu.Range = rangeFrom(start, p.cur().Range.Begin)
	if !p.at(token.EOF) {
		p.errorf(p.cur().Range, "expected end of file, found %s %q", p.cur().Type, p.cur().Literal)
	}
	return cu
}

func (p *Parser) parseQualifiedName() ast.QualifiedName {
	start := p.cur().Range
	var parts []string
	tok := p.expect(token.IDENT)
	parts = append(parts, tok.Literal)
	end := tok.Range
	for p.at(token.DOT) {
		p.advance()
		tok = p.expect(token.IDENT)
		parts = append(parts, tok.Literal)
		end = tok.Range
	}
	return ast.QualifiedName{Parts: parts, Range: rangeFrom(start.Begin, end.End)}
}

func (p *Parser) parseImport() ast.ImportDecl {
	start := p.expect(token.IMPORT).Range
	nameStart := p.cur().Range
	var parts []string
	tok := p.expect(token.IDENT)
	parts = append(parts, tok.Literal)
	end := tok.Range
	wildcard := false
	for p.at(token.DOT) {
		p.advance()
		if p.at(token.STAR) {
			wildcard = true
			end = p.advance().Range
			break
		}
		tok = p.expect(token.IDENT)
		parts = append(parts, tok.Literal)
		end = tok.Range
	}
	semi := p.expect(token.SEMI)
	return ast.ImportDecl{
		Name:     ast.QualifiedName{Parts: parts, Range: rangeFrom(nameStart.Begin, end.End)},
		Wildcard: wildcard,
		Range:    rangeFrom(start.Begin, semi.Range.End),
	}
}
