// Package dump serializes the compiler's internal artifacts —
// TypeInfoMap and ir.Program — to JSON for the joosc dump-types and
// dump-ir subcommands, provides the --query support built on top of
// that JSON, and pretty-prints the parse subcommand's AST. There is no corresponding original_source
// component: the original never exposed these structures outside its
// own process, so this package's shape is grounded on the dump-style
// debug tooling the rest of the example pack carries (go-snaps'
// snapshot-as-JSON discipline), not on a direct port.
package dump

import (
	"fmt"

	"github.com/kr/pretty"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Query evaluates a gjson path expression against a document built by
// TypeInfo or IR, returning its raw text form. Used by dump-types
// --query and dump-ir --query so a caller can pull out one field
// (e.g. "types.0.methods.#.name") without parsing the whole document.
func Query(doc, path string) string {
	return gjson.Get(doc, path).String()
}

// Pretty renders v with kr/pretty for joosc parse's AST output, the same
// library the teacher's go-snaps dependency chain already pulls in for
// readable struct diffs.
func Pretty(v any) string {
	return fmt.Sprintf("%# v", pretty.Formatter(v))
}

// set is sjson.Set with its error return collapsed to a panic: every
// path this package builds is a compile-time constant shape (no
// caller-supplied path ever reaches it), so a Set failure can only
// mean a programming error in this package, not bad input.
func set(doc, path string, value any) string {
	out, err := sjson.Set(doc, path, value)
	if err != nil {
		panic(fmt.Sprintf("dump: sjson.Set(%q, %v): %v", path, value, err))
	}
	return out
}
