package scanner

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/npillmayer/gburg"
	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

// lexmachine adapter for the specification language

// LMAdapter wraps a compiled lexmachine lexer. One adapter serves any
// number of inputs.
type LMAdapter struct {
	Lexer *lexmachine.Lexer
}

// NewLMAdapter compiles the DFA for the specification language. It will
// return an error if compiling failed.
func NewLMAdapter() (*LMAdapter, error) {
	adapter := &LMAdapter{}
	adapter.Lexer = lexmachine.NewLexer()
	adapter.Lexer.Add([]byte(`--[^\n]*\n?`), skip)
	adapter.Lexer.Add([]byte(`( |\t|\n|\r)+`), skip)
	adapter.Lexer.Add([]byte(`%term`), makeToken(Term))
	adapter.Lexer.Add([]byte(`%head`), makeToken(Head))
	adapter.Lexer.Add([]byte(`%tail`), makeToken(Tail))
	adapter.Lexer.Add([]byte(`%type`), makeToken(Type))
	adapter.Lexer.Add([]byte(`%%`), makeToken(Sep))
	adapter.Lexer.Add([]byte(`\{:`), scanCode)
	adapter.Lexer.Add([]byte(`([a-z]|[A-Z]|_)([a-z]|[A-Z]|[0-9]|_)*`), makeToken(Ident))
	adapter.Lexer.Add([]byte(`[0-9]+`), makeToken(Int))
	adapter.Lexer.Add([]byte(`\"[^"]*\"`), makeToken(String))
	adapter.Lexer.Add([]byte(`'([^'\\]|\\.)'`), makeToken(Char))
	for _, lit := range []string{"(", ")", ",", ":", "[", "]"} {
		r := rune(lit[0])
		adapter.Lexer.Add([]byte(`\`+lit), makeToken(gburg.TokType(r)))
	}
	if err := adapter.Lexer.Compile(); err != nil {
		tracer().Errorf("Error compiling DFA: %v", err)
		return nil, err
	}
	return adapter, nil
}

// Scanner creates a scanner for a given input. The scanner will implement
// the Tokenizer interface.
func (lm *LMAdapter) Scanner(input string) (*LMScanner, error) {
	s, err := lm.Lexer.Scanner([]byte(input))
	if err != nil {
		return &LMScanner{}, err
	}
	return &LMScanner{s, logError}, nil
}

// LMScanner is a scanner type for lexmachine scanners, implementing the
// Tokenizer interface.
type LMScanner struct {
	scanner *lexmachine.Scanner
	Error   func(error)
}

var _ Tokenizer = (*LMScanner)(nil)

// SetErrorHandler sets an error handler for the scanner.
func (lms *LMScanner) SetErrorHandler(h func(error)) {
	if h == nil {
		lms.Error = logError
		return
	}
	lms.Error = h
}

// NextToken is part of the Tokenizer interface.
func (lms *LMScanner) NextToken() gburg.Token {
	tok, err, eof := lms.scanner.Next()
	for err != nil {
		lms.Error(err)
		if ui, is := err.(*machines.UnconsumedInput); is {
			lms.scanner.TC = ui.FailTC
		}
		tok, err, eof = lms.scanner.Next()
	}
	if eof {
		return MakeDefaultToken(EOF, "", gburg.Span{0, 0})
	}
	tracer().Debugf("tok is %T | %v", tok, tok)
	return tok.(DefaultToken)
}

// ---------------------------------------------------------------------------

// skip is a pre-defined action which ignores the scanned match.
func skip(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

// makeToken is a pre-defined action which wraps a scanned match into a
// token, converting literal lexemes to their values.
func makeToken(tt gburg.TokType) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		lexeme := string(m.Bytes)
		token := MakeDefaultToken(tt, lexeme,
			gburg.Span{uint64(m.TC), uint64(m.TC + len(m.Bytes))})
		switch tt {
		case Int:
			n, err := strconv.Atoi(lexeme)
			if err != nil {
				return nil, err
			}
			token.Val = n
		case String:
			token.Val = lexeme[1 : len(lexeme)-1]
		case Char:
			r, _, _, err := strconv.UnquoteChar(lexeme[1:len(lexeme)-1], '\'')
			if err != nil {
				return nil, err
			}
			token.Val = r
		}
		return token, nil
	}
}

// scanCode consumes a '{: … :}' code fragment. The lexmachine rule
// matches the opening brace only; the fragment body is scanned here by
// searching for the terminating ':}', which keeps arbitrary code —
// including braces and newlines — inside fragments. Fragments do not
// nest; the first ':}' ends the fragment.
func scanCode(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
	rest := s.Text[s.TC:]
	end := bytes.Index(rest, []byte(":}"))
	if end < 0 {
		return nil, fmt.Errorf("unterminated code fragment at %d", m.TC)
	}
	body := string(rest[:end])
	s.TC += end + 2
	token := MakeDefaultToken(Code, "{:"+body+":}",
		gburg.Span{uint64(m.TC), uint64(s.TC)})
	token.Val = body
	return token, nil
}
