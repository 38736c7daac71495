package gburg

import "fmt"

// --- A general purpose interface for tokens --------------------------------

// TokType is a category type for a Token. The scanner package defines the
// concrete categories for the specification language.
type TokType int

// TokTypeStringer is a type to be provided by a scanner/parser combination to be able
// to print out token categories.
type TokTypeStringer func(TokType) string

// Tokens represent input tokens of a rule specification. They are produced by
// the scanner and reflect terminals of the specification language.
//
// An example would be a token for an integer cost:
//
//    TokType = Int         // identifier for this kind of tokens
//    Lexeme  = "2"         // lexeme how it appeared in the input stream
//    Value   = 2           // is an int value
//    Span    = 67…68       // occured from position 67 in the input stream
//
// Token.Value() could either have been set by the scanner, or converted from
// Token.Lexeme() by the parser.
type Token interface {
	TokType() TokType
	Lexeme() string
	Value() interface{}
	Span() Span
}

// --- Spans ------------------------------------------------------------

// Span is a small type for capturing a run of input characters. Every rule of
// a specification tracks which input positions it stems from; spans feed the
// source-position map used for diagnostics. A span denotes a start position
// and the position just behind the end.
type Span [2]uint64 // (x…y)

// From returns the start value of a span.
func (s Span) From() uint64 {
	return s[0]
}

// To returns the end value of a span.
func (s Span) To() uint64 {
	return s[1]
}

// Len returns the length of (x…y)
func (s Span) Len() uint64 {
	return s[1] - s[0]
}

func (s Span) IsNull() bool {
	return s == Span{}
}

func (s Span) Extend(other Span) Span {
	if other[0] < s[0] {
		s[0] = other[0]
	}
	if other[1] > s[1] {
		s[1] = other[1]
	}
	return s
}

func (s Span) String() string {
	return fmt.Sprintf("(%d…%d)", s[0], s[1])
}
