package lexer_test

import (
	"testing"

	"github.com/joosc/compiler/internal/lexer"
	"github.com/joosc/compiler/internal/token"
)

func lexAll(t *testing.T, src string) []token.Token {
	t.Helper()
	l := lexer.New(0, []byte(src))
	var toks []token.Token
	for {
		tok := l.NextToken()
		toks = append(toks, tok)
		if tok.Type == token.EOF {
			break
		}
	}
	return toks
}

func TestKeywordsAndIdentifiers(t *testing.T) {
	toks := lexAll(t, "public class Foo extends Bar")
	want := []token.Type{token.PUBLIC, token.CLASS, token.IDENT, token.EXTENDS, token.IDENT, token.EOF}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(toks), len(want))
	}
	for i, w := range want {
		if toks[i].Type != w {
			t.Errorf("token %d: got %v want %v", i, toks[i].Type, w)
		}
	}
}

func TestOperators(t *testing.T) {
	toks := lexAll(t, "== != <= >= && || = < > ! + - * / %")
	want := []token.Type{
		token.EQ, token.NEQ, token.LEQ, token.GEQ, token.AND_AND, token.OR_OR,
		token.ASSIGN, token.LT, token.GT, token.NOT, token.PLUS, token.MINUS,
		token.STAR, token.SLASH, token.PERCENT, token.EOF,
	}
	for i, w := range want {
		if toks[i].Type != w {
			t.Errorf("token %d: got %v want %v", i, toks[i].Type, w)
		}
	}
}

func TestIntegerLiteral(t *testing.T) {
	toks := lexAll(t, "2147483647")
	if toks[0].Type != token.INT_LIT || toks[0].Literal != "2147483647" {
		t.Fatalf("got %+v", toks[0])
	}
}

func TestStringAndCharLiterals(t *testing.T) {
	toks := lexAll(t, `"a1true" '\n'`)
	if toks[0].Type != token.STRING_LIT || toks[0].Literal != "a1true" {
		t.Fatalf("got %+v", toks[0])
	}
	if toks[1].Type != token.CHAR_LIT || toks[1].Literal != "\n" {
		t.Fatalf("got %+v", toks[1])
	}
}

func TestCommentsAreSkipped(t *testing.T) {
	toks := lexAll(t, "int x; // trailing\n/* block */ int y;")
	var types []token.Type
	for _, tk := range toks {
		types = append(types, tk.Type)
	}
	want := []token.Type{token.INT, token.IDENT, token.SEMI, token.INT, token.IDENT, token.SEMI, token.EOF}
	if len(types) != len(want) {
		t.Fatalf("got %v", types)
	}
}

func TestNonASCIIByteIsRejected(t *testing.T) {
	l := lexer.New(0, []byte("int x\xc3\xa9;"))
	for {
		tok := l.NextToken()
		if tok.Type == token.EOF {
			break
		}
	}
	if len(l.Errors()) == 0 {
		t.Fatal("expected a lexer error for non-ASCII byte")
	}
}

func TestPositionsAreByteOffsets(t *testing.T) {
	toks := lexAll(t, "int x")
	if toks[0].Range.Begin.Offset != 0 {
		t.Errorf("got %d", toks[0].Range.Begin.Offset)
	}
	if toks[1].Range.Begin.Offset != 4 {
		t.Errorf("got %d", toks[1].Range.Begin.Offset)
	}
}
