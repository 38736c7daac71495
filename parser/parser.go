/*
Package parser reads rule specifications.

The parser is a straightforward recursive-descent parser over the token
stream of package scanner. It produces a burg.Spec:

    declarations          before the '%%' separator:
      %term t1 t2 …       terminal-type names
      %head {: … :}       code emitted verbatim before the engine
      %tail {: … :}       code emitted verbatim after the engine
      %type n {: T :}     target-type annotation for a nonterminal
    rules                 after the separator:
      nonterm : pattern [ cost ] {: action :}

The pattern grammar is

    pattern ::= number | "string" | 'c' | id ( pattern , … ) | id () | id [: id]

where a bare id abbreviates id:id. The terminal types int, string and
char are predeclared. Variable type tags are resolved after the whole
specification has been read: a tag naming a declared terminal type is
terminal, a tag naming some rule's left-hand side is nonterminal, and any
other tag is treated as an opaque terminal type.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package parser

import (
	"strings"
	"sync"

	"github.com/npillmayer/gburg"
	"github.com/npillmayer/gburg/burg"
	"github.com/npillmayer/gburg/code"
	"github.com/npillmayer/gburg/scanner"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'gburg.parser'.
func tracer() tracing.Trace {
	return tracing.Select("gburg.parser")
}

var lexer *scanner.LMAdapter
var lexerOnce sync.Once // monitors one-time creation of the lexer DFA

func sharedLexer() *scanner.LMAdapter {
	lexerOnce.Do(func() {
		var err error
		tracer().Infof("Creating lexer")
		if lexer, err = scanner.NewLMAdapter(); err != nil {
			panic("Cannot create lexer")
		}
	})
	return lexer
}

// Parse reads a specification from source text. The name identifies the
// input in diagnostics, e.g. a file name.
func Parse(name string, input string) (*burg.Spec, error) {
	scan, err := sharedLexer().Scanner(input)
	if err != nil {
		return nil, err
	}
	p := &parser{
		toks: scan,
		spec: burg.NewSpec(name),
	}
	scan.SetErrorHandler(func(e error) {
		if p.err == nil {
			p.err = burg.Errorf(burg.SyntaxError, "%v", e)
		}
	})
	p.next()
	p.declarations()
	p.expect(scanner.Sep)
	for p.err == nil && p.cur.TokType() != scanner.EOF {
		p.rule()
	}
	if p.err != nil {
		return nil, p.err
	}
	p.resolveTags()
	if err := p.spec.Check(); err != nil {
		return nil, err
	}
	tracer().Infof("parsed specification %s: %d rules", name, len(p.spec.Rules))
	return p.spec, nil
}

type parser struct {
	toks scanner.Tokenizer
	cur  gburg.Token
	spec *burg.Spec
	err  error
}

func (p *parser) next() {
	p.cur = p.toks.NextToken()
}

func (p *parser) at(tt gburg.TokType) bool {
	return p.cur.TokType() == tt
}

func (p *parser) expect(tt gburg.TokType) gburg.Token {
	tok := p.cur
	if p.err != nil {
		return tok
	}
	if tok.TokType() != tt {
		p.fail("expected %s, found %s '%s'",
			scanner.TokTypeString(tt), scanner.TokTypeString(tok.TokType()), tok.Lexeme())
		return tok
	}
	p.next()
	return tok
}

func (p *parser) fail(format string, args ...interface{}) {
	if p.err == nil {
		p.err = burg.ErrorfAt(burg.SyntaxError, p.cur.Span(), format, args...)
	}
}

// --- Declarations ----------------------------------------------------------

func (p *parser) declarations() {
	for p.err == nil {
		switch p.cur.TokType() {
		case scanner.Term:
			p.next()
			if !p.at(scanner.Ident) {
				p.fail("%%term needs at least one terminal-type name")
				return
			}
			for p.at(scanner.Ident) {
				p.spec.Terms[p.cur.Lexeme()] = true
				p.next()
			}
		case scanner.Head:
			p.next()
			tok := p.expect(scanner.Code)
			p.spec.Heads = append(p.spec.Heads, fragment(tok))
		case scanner.Tail:
			p.next()
			tok := p.expect(scanner.Code)
			p.spec.Tails = append(p.spec.Tails, fragment(tok))
		case scanner.Type:
			p.next()
			name := p.expect(scanner.Ident)
			tok := p.expect(scanner.Code)
			p.spec.Types[name.Lexeme()] = strings.TrimSpace(fragment(tok))
		default:
			return
		}
	}
}

// --- Rules -----------------------------------------------------------------

func (p *parser) rule() {
	lhs := p.expect(scanner.Ident)
	p.expect(gburg.TokType(':'))
	pattern := p.pattern()
	cost := burg.Cost(burg.StaticCost(0))
	if p.at(gburg.TokType('[')) {
		p.next()
		cost = p.cost()
		p.expect(gburg.TokType(']'))
	}
	action := p.expect(scanner.Code)
	if p.err != nil {
		return
	}
	r := &burg.Rule{
		Serial:  len(p.spec.Rules),
		Lhs:     lhs.Lexeme(),
		Pattern: pattern,
		Cost:    cost,
		Action:  code.Raw(fragment(action)),
		Span:    lhs.Span().Extend(action.Span()),
	}
	tracer().Debugf("rule: %s", r)
	p.spec.Rules = append(p.spec.Rules, r)
}

func (p *parser) cost() burg.Cost {
	switch p.cur.TokType() {
	case scanner.Int:
		n := p.cur.Value().(int)
		p.next()
		return burg.StaticCost(n)
	case scanner.Code:
		c := burg.DynamicCost(fragment(p.cur))
		p.next()
		return c
	}
	p.fail("expected an integer or a code fragment as cost, found '%s'", p.cur.Lexeme())
	return burg.StaticCost(0)
}

func (p *parser) pattern() burg.Pattern {
	switch p.cur.TokType() {
	case scanner.Int:
		lit := burg.Lit{Value: burg.Int(p.cur.Value().(int))}
		p.next()
		return lit
	case scanner.String:
		lit := burg.Lit{Value: burg.Str(p.cur.Value().(string))}
		p.next()
		return lit
	case scanner.Char:
		lit := burg.Lit{Value: burg.Char(p.cur.Value().(rune))}
		p.next()
		return lit
	case scanner.Ident:
		name := p.cur.Lexeme()
		p.next()
		switch p.cur.TokType() {
		case gburg.TokType('('):
			p.next()
			var args []burg.Pattern
			if !p.at(gburg.TokType(')')) {
				args = append(args, p.pattern())
				for p.at(gburg.TokType(',')) {
					p.next()
					args = append(args, p.pattern())
				}
			}
			p.expect(gburg.TokType(')'))
			return burg.Con{Name: name, Args: args}
		case gburg.TokType(':'):
			p.next()
			ty := p.expect(scanner.Ident)
			return burg.Var{Name: name, Type: burg.NontermType(ty.Lexeme())}
		}
		// a bare id abbreviates id:id
		return burg.Var{Name: name, Type: burg.NontermType(name)}
	}
	p.fail("expected a pattern, found '%s'", p.cur.Lexeme())
	return burg.Var{Name: "<error>", Type: burg.NontermType("<error>")}
}

// --- Tag resolution --------------------------------------------------------

// resolveTags rewrites the provisional type tags of all pattern
// variables, now that terminal declarations and left-hand sides are
// known. Declared terminal types take precedence; names never defined by
// a rule are opaque terminal types.
func (p *parser) resolveTags() {
	nts := p.spec.Nonterminals()
	for _, r := range p.spec.Rules {
		r.Pattern = retag(r.Pattern, p.spec.Terms, nts)
	}
}

func retag(pat burg.Pattern, terms map[string]bool, nts map[string]bool) burg.Pattern {
	switch x := pat.(type) {
	case burg.Var:
		name := x.Type.TypeName()
		if terms[name] || !nts[name] {
			return burg.Var{Name: x.Name, Type: burg.TermType(name)}
		}
		return burg.Var{Name: x.Name, Type: burg.NontermType(name)}
	case burg.Con:
		args := make([]burg.Pattern, len(x.Args))
		for i, a := range x.Args {
			args[i] = retag(a, terms, nts)
		}
		return burg.Con{Name: x.Name, Args: args}
	}
	return pat
}

func fragment(tok gburg.Token) string {
	if s, ok := tok.Value().(string); ok {
		return s
	}
	return tok.Lexeme()
}
