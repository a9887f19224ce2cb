// SPDX-License-Identifier: MIT

package diag

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/multierr"
)

// Kind classifies a diagnostic.
type Kind int

const (
	// InputValidation covers malformed or inconsistent user input.
	InputValidation Kind = iota
	// Parse covers raw tokens that could not be read.
	Parse
	// Degenerate covers statistical degeneracy (empty class, missing modality).
	Degenerate
	// Numerical covers zero densities and non-finite quantities.
	Numerical
)

// String returns the lower-case name of k.
func (k Kind) String() string {
	switch k {
	case InputValidation:
		return "input-validation"
	case Parse:
		return "parse"
	case Degenerate:
		return "degenerate"
	case Numerical:
		return "numerical"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Diagnostic is a single finding.
type Diagnostic struct {
	Kind    Kind
	Message string
}

// Error implements error.
func (d Diagnostic) Error() string { return d.Kind.String() + ": " + d.Message }

// Log is an ordered list of diagnostics. The zero value is ready to use.
type Log struct {
	items []Diagnostic
}

// Add appends a diagnostic with a verbatim message. Empty messages are ignored.
func (l *Log) Add(kind Kind, msg string) {
	if msg == "" {
		return
	}
	l.items = append(l.items, Diagnostic{Kind: kind, Message: msg})
}

// Addf appends a formatted diagnostic.
func (l *Log) Addf(kind Kind, format string, args ...any) {
	l.Add(kind, fmt.Sprintf(format, args...))
}

// Append moves all diagnostics of other to the end of l.
func (l *Log) Append(other Log) {
	l.items = append(l.items, other.items...)
}

// Prefix returns a copy of l where every message is preceded by p.
// An empty log stays empty.
func (l Log) Prefix(p string) Log {
	if len(l.items) == 0 {
		return Log{}
	}
	out := Log{items: make([]Diagnostic, len(l.items))}
	for i, d := range l.items {
		out.items[i] = Diagnostic{Kind: d.Kind, Message: p + d.Message}
	}

	return out
}

// Empty reports whether nothing was recorded.
func (l Log) Empty() bool { return len(l.items) == 0 }

// Len returns the number of diagnostics.
func (l Log) Len() int { return len(l.items) }

// Items returns a copy of the recorded diagnostics.
func (l Log) Items() []Diagnostic {
	return append([]Diagnostic(nil), l.items...)
}

// Has reports whether at least one diagnostic of kind k was recorded.
func (l Log) Has(k Kind) bool {
	for _, d := range l.items {
		if d.Kind == k {
			return true
		}
	}

	return false
}

// String concatenates all messages in order, without separators.
func (l Log) String() string {
	var b strings.Builder
	for _, d := range l.items {
		b.WriteString(d.Message)
	}

	return b.String()
}

// Err returns nil for an empty log, otherwise every diagnostic combined
// into a single error. errors.As on the result finds each Diagnostic.
func (l Log) Err() error {
	var err error
	for _, d := range l.items {
		err = multierr.Append(err, d)
	}

	return err
}

// FromErr returns the diagnostics contained in err, or a single
// diagnostic of kind k holding err's text when err is not a Log error.
func FromErr(k Kind, err error) Log {
	var l Log
	if err == nil {
		return l
	}
	for _, e := range multierr.Errors(err) {
		var d Diagnostic
		if errors.As(e, &d) {
			l.items = append(l.items, d)
			continue
		}
		l.Add(k, e.Error())
	}

	return l
}
