package burg

import (
	"fmt"

	"github.com/npillmayer/gburg"
)

// ErrorKind enumerates the failure conditions surfaced by the pipeline.
type ErrorKind int

const (
	// InconsistentConstructor: a constructor appears with two distinct
	// argument signatures.
	InconsistentConstructor ErrorKind = iota + 1
	// DuplicateVariable: a variable name occurs twice in one pattern.
	DuplicateVariable
	// IllFormedTopPattern: a top-level pattern is a bare literal or a bare
	// terminal variable, or terminal/nonterminal name spaces overlap.
	IllFormedTopPattern
	// ZeroCostChainCycle: a cycle of chain rules none of which carries a
	// positive literal cost; emitted propagation might not terminate.
	ZeroCostChainCycle
	// SyntaxError: the specification source is malformed.
	SyntaxError
)

func (k ErrorKind) String() string {
	switch k {
	case InconsistentConstructor:
		return "inconsistent constructor"
	case DuplicateVariable:
		return "duplicate variable"
	case IllFormedTopPattern:
		return "ill-formed top-level pattern"
	case ZeroCostChainCycle:
		return "zero-cost chain cycle"
	case SyntaxError:
		return "syntax error"
	}
	return "error"
}

// Error is the single structured error type raised by all pipeline
// stages. It carries a kind tag, a human-readable message and, where
// known, a source span. The driver converts it to a diagnostic; no stage
// recovers locally.
type Error struct {
	Kind ErrorKind
	Msg  string
	Span gburg.Span
}

func (e *Error) Error() string {
	if e.Span.IsNull() {
		return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
	}
	return fmt.Sprintf("%s %s: %s", e.Span, e.Kind, e.Msg)
}

// Errorf creates a pipeline error without position information.
func Errorf(kind ErrorKind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// ErrorfAt creates a pipeline error pointing at a source span.
func ErrorfAt(kind ErrorKind, span gburg.Span, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...), Span: span}
}
