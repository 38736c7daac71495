/*
Package scanner implements the lexical analyzer of the specification
language.

The scanner is backed by lexmachine. It produces tokens for identifiers,
integer / string / character literals, code fragments enclosed in
'{:' … ':}', the declaration keywords, the '%%' separator and the
punctuation of the rule syntax. Comments start with '--' and extend to
the end of the line; they are skipped, as is white space.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package scanner

import (
	"github.com/npillmayer/gburg"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'gburg.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("gburg.scanner")
}

// Token types of the specification language. Punctuation tokens carry
// their character value as token type.
const (
	EOF    gburg.TokType = -1
	Ident  gburg.TokType = -2
	Int    gburg.TokType = -3
	String gburg.TokType = -4
	Char   gburg.TokType = -5
	Code   gburg.TokType = -6  // {: … :}
	Term   gburg.TokType = -7  // %term
	Head   gburg.TokType = -8  // %head
	Tail   gburg.TokType = -9  // %tail
	Type   gburg.TokType = -10 // %type
	Sep    gburg.TokType = -11 // %%
)

// TokTypeString returns a printable name for a token type; it implements
// gburg.TokTypeStringer.
func TokTypeString(tt gburg.TokType) string {
	switch tt {
	case EOF:
		return "<eof>"
	case Ident:
		return "identifier"
	case Int:
		return "integer"
	case String:
		return "string"
	case Char:
		return "character"
	case Code:
		return "code fragment"
	case Term:
		return "%term"
	case Head:
		return "%head"
	case Tail:
		return "%tail"
	case Type:
		return "%type"
	case Sep:
		return "%%"
	}
	return "'" + string(rune(tt)) + "'"
}

// Tokenizer is a scanner interface.
type Tokenizer interface {
	NextToken() gburg.Token
	SetErrorHandler(func(error))
}

// Default error reporting function for scanners
func logError(e error) {
	tracer().Errorf("scanner error: " + e.Error())
}

// --- Default tokens --------------------------------------------------------

// DefaultToken is a very unsophisticated token type, produced by the
// lexmachine-backed scanner.
type DefaultToken struct {
	kind   gburg.TokType
	lexeme string
	Val    interface{}
	span   gburg.Span
}

func MakeDefaultToken(typ gburg.TokType, lexeme string, span gburg.Span) DefaultToken {
	return DefaultToken{
		kind:   typ,
		lexeme: lexeme,
		span:   span,
	}
}

func (t DefaultToken) TokType() gburg.TokType {
	return t.kind
}

func (t DefaultToken) Value() interface{} {
	return t.Val
}

func (t DefaultToken) Lexeme() string {
	return t.lexeme
}

func (t DefaultToken) Span() gburg.Span {
	return t.span
}
