package diagnostics_test

import (
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/joosc/compiler/internal/diagnostics"
	"github.com/joosc/compiler/internal/token"
)

// TestSimpleModeSnapshots locks in the machine-parseable Simple()
// rendering for a representative diagnostic list, the same snapshot
// discipline the teacher applies to bytecode chunks — golden-tested
// here since Simple() output is the contract golden/regression tests
// elsewhere in this compiler parse back out.
func TestSimpleModeSnapshots(t *testing.T) {
	fs, id := newFixture(t, "class Main {\n  int x = true;\n  foo();\n}\n")

	var l diagnostics.List
	l.Addf(diagnostics.TypeMismatchError,
		token.Range{Begin: token.Pos{File: id, Offset: 22}, End: token.Pos{File: id, Offset: 26}},
		"expected int, got boolean")
	l.Add(diagnostics.New(diagnostics.UndefinedMethodError,
		token.Range{Begin: token.Pos{File: id, Offset: 33}, End: token.Pos{File: id, Offset: 38}},
		"no method 'foo' with this signature").
		WithSecondary(token.Range{Begin: token.Pos{File: id, Offset: 0}, End: token.Pos{File: id, Offset: 5}}))

	snaps.MatchSnapshot(t, "simple-mode", l.Simple(fs))
}
