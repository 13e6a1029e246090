package diagnostics

import (
	"fmt"
	"strings"

	"github.com/joosc/compiler/internal/token"
)

// Format renders e in *User* mode (spec.md §6): a "path:line:col:
// error [Kind]: message" header, the offending source line, and a
// caret-and-underline pointing at the primary range, followed by one
// "note:" line per secondary range. If color is true, ANSI codes
// highlight the header and the caret, mirroring the teacher's
// CompilerError.Format.
func (e *Error) Format(fs *token.FileSet, color bool) string {
	var sb strings.Builder
	writeSite(&sb, fs, "error", string(e.Kind), e.Message, e.Primary, color)
	for _, sec := range e.Secondary {
		sb.WriteString("\n")
		writeSite(&sb, fs, "note", "", "", sec, color)
	}
	return sb.String()
}

func writeSite(sb *strings.Builder, fs *token.FileSet, level, kind, message string, r token.Range, color bool) {
	lc := fs.LineCol(r.Begin)
	name := fs.Name(r.Begin.File)

	bold, red, reset := "", "", ""
	if color {
		bold, red, reset = "\033[1m", "\033[1;31m", "\033[0m"
	}

	fmt.Fprintf(sb, "%s:%d:%d: %s%s%s", name, lc.Line, lc.Column, bold, level, reset)
	if kind != "" {
		fmt.Fprintf(sb, " [%s]", kind)
	}
	if message != "" {
		fmt.Fprintf(sb, ": %s", message)
	}
	sb.WriteString("\n")

	line := fs.File(r.Begin.File).Line(lc.Line)
	if line == "" {
		return
	}
	lineNumStr := fmt.Sprintf("%4d | ", lc.Line)
	sb.WriteString(lineNumStr)
	sb.WriteString(line)
	sb.WriteString("\n")

	width := r.End.Offset - r.Begin.Offset
	if width < 1 {
		width = 1
	}
	if r.End.File != r.Begin.File || lc.Column-1+width > len(line) {
		width = 1
	}
	sb.WriteString(strings.Repeat(" ", len(lineNumStr)+lc.Column-1))
	sb.WriteString(red)
	sb.WriteString("^")
	sb.WriteString(strings.Repeat("~", width-1))
	sb.WriteString(reset)
}

// Simple renders e in *Simple* mode (spec.md §6): a single
// machine-parseable line identifying the kind and every range
// involved, with no source text, intended for golden/snapshot tests
// that must not break on source-formatting changes.
func (e *Error) Simple(fs *token.FileSet) string {
	var sb strings.Builder
	sb.WriteString(string(e.Kind))
	sb.WriteString("(")
	writeRange(&sb, e.Primary)
	for _, sec := range e.Secondary {
		sb.WriteString(", ")
		writeRange(&sb, sec)
	}
	sb.WriteString(")")
	return sb.String()
}

func writeRange(sb *strings.Builder, r token.Range) {
	fmt.Fprintf(sb, "%d:%d", r.Begin.File, r.Begin.Offset)
	if r.End.Offset != r.Begin.Offset || r.End.File != r.Begin.File {
		fmt.Fprintf(sb, "-%d", r.End.Offset)
	}
}

// Format renders every diagnostic in report order, numbered when there
// is more than one, mirroring the teacher's FormatErrors.
func (l *List) Format(fs *token.FileSet, color bool) string {
	if len(l.errs) == 0 {
		return ""
	}
	if len(l.errs) == 1 {
		return l.errs[0].Format(fs, color)
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "compilation failed with %d error(s):\n\n", len(l.errs))
	for i, e := range l.errs {
		fmt.Fprintf(&sb, "[%d/%d] ", i+1, len(l.errs))
		sb.WriteString(e.Format(fs, color))
		if i < len(l.errs)-1 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// Simple renders one Simple-mode line per diagnostic, newline-separated,
// in report order.
func (l *List) Simple(fs *token.FileSet) string {
	lines := make([]string, len(l.errs))
	for i, e := range l.errs {
		lines[i] = e.Simple(fs)
	}
	return strings.Join(lines, "\n")
}
