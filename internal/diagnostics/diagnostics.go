// Package diagnostics holds the single structured error channel shared
// by every semantic-analysis stage (weeder, typeset, typeinfo,
// declresolver, typecheck, constfold, dataflow). A List is the one
// mutable object a driver.Session threads through all of them: stages
// never return early on the first error (spec.md §5, §7's "keep
// going") and instead append to it and, when a node can no longer be
// safely analyzed, prune that subtree via ast.SkipPrune/RecursePrune.
package diagnostics

import "github.com/joosc/compiler/internal/token"

// Error is one diagnostic: a Kind drawn from the fixed inventory in
// kind.go, a Primary range it's anchored to, zero or more Secondary
// ranges for "see also" sites (e.g. the earlier declaration in a
// duplicate-definition error), and a human-readable Message.
type Error struct {
	Kind      Kind
	Primary   token.Range
	Secondary []token.Range
	Message   string
}

// New builds an Error with no secondary ranges.
func New(kind Kind, primary token.Range, message string) *Error {
	return &Error{Kind: kind, Primary: primary, Message: message}
}

// WithSecondary returns a copy of e with an additional secondary range.
func (e *Error) WithSecondary(r token.Range) *Error {
	cp := *e
	cp.Secondary = append(append([]token.Range(nil), e.Secondary...), r)
	return &cp
}

// List is an append-only collection of diagnostics. The zero value is
// an empty, usable List.
type List struct {
	errs []*Error
}

// Add appends e to the list. Add is the only mutator: nothing in this
// package ever removes or reorders a reported error, matching the
// "errors accumulate, never retract" rule in spec.md §7.
func (l *List) Add(e *Error) {
	l.errs = append(l.errs, e)
}

// Addf is a convenience wrapper building an Error and appending it.
func (l *List) Addf(kind Kind, primary token.Range, message string) {
	l.Add(New(kind, primary, message))
}

// HasErrors reports whether any diagnostic has been recorded.
// internal/driver consults this between stages and stops before the
// next stage once it is true.
func (l *List) HasErrors() bool { return len(l.errs) > 0 }

// Len reports the number of diagnostics recorded so far.
func (l *List) Len() int { return len(l.errs) }

// All returns the diagnostics in report order. The returned slice must
// not be mutated by the caller.
func (l *List) All() []*Error { return l.errs }
