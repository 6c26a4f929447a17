// Package engine runs one calculation request: it maps an input record to an
// output record holding the validity flag, messages, diagrams, metrics,
// the section layout and the calculation memory.
//
// A calculation is a pure function of its input. The engine keeps no state
// between calls, so identical inputs produce identical outputs.
package engine

import (
	"io"
	"log/slog"
)

// Severity of a diagnostic message
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Kind classifies expected non-conformance
type Kind string

const (
	StructuralInstability  Kind = "StructuralInstability"
	SectionInsufficient    Kind = "SectionInsufficient"
	DetailingInfeasible    Kind = "DetailingInfeasible"
	ServiceabilityExceeded Kind = "ServiceabilityExceeded"
	Info                   Kind = "Info"
)

// Message is one human-readable diagnostic
type Message struct {
	Severity Severity
	Kind     Kind
	Text     string
}

func (m Message) String() string {
	return string(m.Severity) + ": " + m.Text
}

// Invalidates reports whether the message makes the result invalid
func (m Message) Invalidates() bool {
	switch m.Kind {
	case StructuralInstability, SectionInsufficient, DetailingInfeasible:
		return true
	}
	return false
}

// messages is an ordered message list
type messages []Message

func (ms *messages) add(sev Severity, kind Kind, text string) {
	*ms = append(*ms, Message{Severity: sev, Kind: kind, Text: text})
}

func (ms messages) valid() bool {
	for _, m := range ms {
		if m.Invalidates() {
			return false
		}
	}
	return true
}

// Engine runs calculations. It is safe for concurrent use.
type Engine struct {
	log *slog.Logger
}

// New creates an engine logging to logger. A nil logger discards.
func New(logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Engine{log: logger}
}
