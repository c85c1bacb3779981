// Package diagnostics collects the transformer's non-fatal warnings into a
// sink the caller can inspect after a run finishes. A Warning is a
// position-carrying, formatted message, but it never implements the error
// interface: a diagnostic here is never returned as a failure, only
// collected and printed.
package diagnostics

import (
	"fmt"
	"strings"

	"github.com/hawkynt/ilgo/internal/il"
)

// Kind classifies a warning for callers that want to filter or count them.
type Kind string

const (
	// KindUnsupportedNode fires when the dispatcher sees an IL node kind it
	// does not recognize.
	KindUnsupportedNode Kind = "unsupported-node"
	// KindUnknownType classifies a type the type engine cannot resolve and
	// widens to interface{}/any. The transformer records no warning of this
	// kind; that widening is silent.
	KindUnknownType Kind = "unknown-type"
	// KindConflictingParam classifies two call sites disagreeing on a method
	// parameter's type. The transformer records no warning of this kind; the
	// pre-scanner's widening rule resolves the conflict silently.
	KindConflictingParam Kind = "conflicting-param-type"
)

// Warning is one recorded diagnostic.
type Warning struct {
	Kind    Kind
	Message string
	Pos     il.Pos
}

func (w Warning) String() string {
	if w.Pos.Line == 0 {
		return fmt.Sprintf("[%s] %s", w.Kind, w.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", w.Kind, w.Pos.String(), w.Message)
}

// Sink accumulates warnings for a single transform run. Its zero value is
// ready to use. A Sink is owned by exactly one Transformer instance.
type Sink struct {
	warnings []Warning
}

// Warn records a warning. Never returns an error and never panics — a
// correctness bug in the transformer's output is caught downstream, not
// here.
func (s *Sink) Warn(kind Kind, pos il.Pos, format string, args ...any) {
	s.warnings = append(s.warnings, Warning{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		Pos:     pos,
	})
}

// Warnings returns the warnings recorded so far, in emission order.
func (s *Sink) Warnings() []Warning {
	return s.warnings
}

// Empty reports whether no warnings were recorded.
func (s *Sink) Empty() bool {
	return len(s.warnings) == 0
}

// String renders all warnings, one per line, for a host printing to its
// designated sink.
func (s *Sink) String() string {
	var sb strings.Builder
	for _, w := range s.warnings {
		sb.WriteString(w.String())
		sb.WriteString("\n")
	}
	return sb.String()
}
