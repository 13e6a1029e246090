package diagnostics_test

import (
	"strings"
	"testing"

	"github.com/joosc/compiler/internal/diagnostics"
	"github.com/joosc/compiler/internal/token"
)

func newFixture(t *testing.T, src string) (*token.FileSet, token.FileID) {
	t.Helper()
	fs := token.NewFileSet()
	id := fs.AddFile("Main.java", []byte(src))
	return fs, id
}

func TestListAddIsAppendOnly(t *testing.T) {
	var l diagnostics.List
	if l.HasErrors() {
		t.Fatalf("empty list must report no errors")
	}
	fs, id := newFixture(t, "class Main {}\n")
	r := token.Range{Begin: token.Pos{File: id, Offset: 0}, End: token.Pos{File: id, Offset: 5}}
	l.Addf(diagnostics.UnknownTypenameError, r, "unknown type Foo")
	l.Addf(diagnostics.TypeMismatchError, r, "expected int, got boolean")
	if l.Len() != 2 {
		t.Fatalf("expected 2 diagnostics, got %d", l.Len())
	}
	_ = fs
}

func TestErrorFormatPointsAtSourceLine(t *testing.T) {
	fs, id := newFixture(t, "class Main {\n  int x = true;\n}\n")
	r := token.Range{
		Begin: token.Pos{File: id, Offset: 22},
		End:   token.Pos{File: id, Offset: 26},
	}
	err := diagnostics.New(diagnostics.TypeMismatchError, r, "expected int, got boolean")
	out := err.Format(fs, false)
	if !strings.Contains(out, "Main.java:2:") {
		t.Fatalf("expected a Main.java:2:... header, got %q", out)
	}
	if !strings.Contains(out, "int x = true;") {
		t.Fatalf("expected the offending source line to be quoted, got %q", out)
	}
	if !strings.Contains(out, "^") {
		t.Fatalf("expected a caret, got %q", out)
	}
}

func TestErrorSimpleIsMachineParseable(t *testing.T) {
	fs, id := newFixture(t, "class Main {}\n")
	r := token.Range{Begin: token.Pos{File: id, Offset: 0}, End: token.Pos{File: id, Offset: 5}}
	err := diagnostics.New(diagnostics.ExtendsCycleError, r, "A extends B extends A")
	got := err.Simple(fs)
	want := "ExtendsCycleError(0:0-5)"
	if got != want {
		t.Fatalf("Simple() = %q, want %q", got, want)
	}
}

func TestErrorSimpleIncludesSecondaryRanges(t *testing.T) {
	fs, id := newFixture(t, "class Main { int x; int x; }\n")
	primary := token.Range{Begin: token.Pos{File: id, Offset: 20}, End: token.Pos{File: id, Offset: 26}}
	earlier := token.Range{Begin: token.Pos{File: id, Offset: 13}, End: token.Pos{File: id, Offset: 19}}
	err := diagnostics.New(diagnostics.DuplicateVarDeclError, primary, "x already declared").WithSecondary(earlier)
	got := err.Simple(fs)
	want := "DuplicateVarDeclError(0:20-26, 0:13-19)"
	if got != want {
		t.Fatalf("Simple() = %q, want %q", got, want)
	}
}

func TestListFormatNumbersMultipleErrors(t *testing.T) {
	fs, id := newFixture(t, "class Main {}\n")
	r := token.Range{Begin: token.Pos{File: id, Offset: 0}, End: token.Pos{File: id, Offset: 5}}
	var l diagnostics.List
	l.Addf(diagnostics.UnknownTypenameError, r, "unknown type Foo")
	l.Addf(diagnostics.TypeMismatchError, r, "expected int, got boolean")
	out := l.Format(fs, false)
	if !strings.Contains(out, "[1/2]") || !strings.Contains(out, "[2/2]") {
		t.Fatalf("expected numbered errors, got %q", out)
	}
}
