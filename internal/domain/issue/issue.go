// Package issue collects the recoverable problems a conversion run
// encounters. A collector is injected per invocation so parallel runs
// never contend on shared state.
package issue

import "fmt"

// Kind classifies a recoverable conversion problem.
type Kind string

const (
	KindStructural    Kind = "structural"     // unbalanced quotes or parens
	KindCountMismatch Kind = "count_mismatch" // tuple arity differs from schema
	KindCoercion      Kind = "coercion"       // literal degraded to a typed default
	KindSchema        Kind = "schema"         // malformed column clause
	KindExport        Kind = "export"         // artifact write failure
)

// Issue records one skipped clause, rejected tuple, or degraded value.
type Issue struct {
	Kind    Kind
	Message string
	Offset  int    // byte offset into the statement text, -1 if unknown
	Context string // short excerpt of the offending input, may be empty
}

func (i Issue) String() string {
	if i.Offset >= 0 {
		return fmt.Sprintf("%s at offset %d: %s", i.Kind, i.Offset, i.Message)
	}
	return fmt.Sprintf("%s: %s", i.Kind, i.Message)
}

// Collector receives issues as stages report them.
type Collector interface {
	Report(Issue)
}

// List is the default Collector: an append-only slice.
type List struct {
	issues []Issue
}

func NewList() *List {
	return &List{}
}

func (l *List) Report(i Issue) {
	l.issues = append(l.issues, i)
}

// All returns the collected issues in report order.
func (l *List) All() []Issue {
	return l.issues
}

// Count returns the number of issues of the given kind.
func (l *List) Count(kind Kind) int {
	n := 0
	for _, i := range l.issues {
		if i.Kind == kind {
			n++
		}
	}
	return n
}

func (l *List) Len() int {
	return len(l.issues)
}

// Discard is a Collector that drops everything, for callers that only
// want the stats.
type Discard struct{}

func (Discard) Report(Issue) {}
