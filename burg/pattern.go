package burg

import (
	"fmt"
	"strconv"
	"strings"
)

// --- Literals --------------------------------------------------------------

// Literal is a literal leaf of a pattern: an integer, a string or a
// character.
type Literal interface {
	literal()
	String() string
}

// Int is an integer literal.
type Int int

// Str is a string literal.
type Str string

// Char is a character literal.
type Char rune

func (Int) literal()  {}
func (Str) literal()  {}
func (Char) literal() {}

func (l Int) String() string  { return strconv.Itoa(int(l)) }
func (l Str) String() string  { return strconv.Quote(string(l)) }
func (l Char) String() string { return "'" + string(rune(l)) + "'" }

// litKind gives literals a stable ordering among each other.
func litKind(l Literal) int {
	switch l.(type) {
	case Int:
		return 0
	case Str:
		return 1
	case Char:
		return 2
	}
	panic(fmt.Sprintf("unknown literal type %T", l))
}

func compareLiterals(a, b Literal) int {
	if k := litKind(a) - litKind(b); k != 0 {
		return k
	}
	switch x := a.(type) {
	case Int:
		return int(x) - int(b.(Int))
	case Str:
		return strings.Compare(string(x), string(b.(Str)))
	case Char:
		return int(rune(x)) - int(rune(b.(Char)))
	}
	return 0
}

// --- Type tags -------------------------------------------------------------

// TypeTag is the type annotation of a rule variable. A variable is either
// of a terminal type (a bare type name, treated opaquely) or of a
// nonterminal type (a name defined as the left-hand side of some rule).
type TypeTag interface {
	typeTag()
	TypeName() string
	IsNonterm() bool
}

// TermType is a terminal type tag.
type TermType string

// NontermType is a nonterminal type tag.
type NontermType string

func (TermType) typeTag()    {}
func (NontermType) typeTag() {}

func (t TermType) TypeName() string    { return string(t) }
func (t NontermType) TypeName() string { return string(t) }

func (TermType) IsNonterm() bool    { return false }
func (NontermType) IsNonterm() bool { return true }

func compareTags(a, b TypeTag) int {
	ka, kb := 0, 0
	if a.IsNonterm() {
		ka = 1
	}
	if b.IsNonterm() {
		kb = 1
	}
	if ka != kb {
		return ka - kb
	}
	return strings.Compare(a.TypeName(), b.TypeName())
}

// --- Patterns --------------------------------------------------------------

// Pattern is a recursive tree: a literal leaf, a variable leaf, or a
// constructor node with an ordered argument list. A constructor with zero
// arguments is distinguished from a bare variable by the presence of the
// argument list.
type Pattern interface {
	pattern()
	String() string
}

// Lit is a literal leaf.
type Lit struct {
	Value Literal
}

// Var is a variable leaf: a name together with its type tag.
type Var struct {
	Name string
	Type TypeTag
}

// Con is a constructor node.
type Con struct {
	Name string
	Args []Pattern
}

func (Lit) pattern() {}
func (Var) pattern() {}
func (Con) pattern() {}

func (p Lit) String() string {
	return p.Value.String()
}

func (p Var) String() string {
	return p.Name + ":" + p.Type.TypeName()
}

func (p Con) String() string {
	args := make([]string, len(p.Args))
	for i, a := range p.Args {
		args[i] = a.String()
	}
	return p.Name + "(" + strings.Join(args, ", ") + ")"
}

// patKind orders the pattern variants: literals before variables before
// constructors.
func patKind(p Pattern) int {
	switch p.(type) {
	case Lit:
		return 0
	case Var:
		return 1
	case Con:
		return 2
	}
	panic(fmt.Sprintf("unknown pattern type %T", p))
}

// Compare is a total order on patterns, consistent with Equivalent: two
// patterns compare equal iff they differ at most in variable names.
// Argument lists compare lexicographically.
func Compare(a, b Pattern) int {
	if k := patKind(a) - patKind(b); k != 0 {
		return k
	}
	switch x := a.(type) {
	case Lit:
		return compareLiterals(x.Value, b.(Lit).Value)
	case Var:
		return compareTags(x.Type, b.(Var).Type)
	case Con:
		y := b.(Con)
		if c := strings.Compare(x.Name, y.Name); c != 0 {
			return c
		}
		if d := len(x.Args) - len(y.Args); d != 0 {
			return d
		}
		for i := range x.Args {
			if c := Compare(x.Args[i], y.Args[i]); c != 0 {
				return c
			}
		}
		return 0
	}
	return 0
}

// Equivalent reports whether two patterns are equal up to variable names.
// Types of variables must match, literal values must match, constructor
// names and argument lists must match structurally.
func Equivalent(a, b Pattern) bool {
	return Compare(a, b) == 0
}

// FoldCons visits every constructor occurrence of a pattern depth-first,
// in argument-list order, threading an accumulator through the visits.
// A constructor node is visited before its arguments.
func FoldCons(p Pattern, acc interface{}, visit func(acc interface{}, name string, args []Pattern) interface{}) interface{} {
	switch x := p.(type) {
	case Con:
		acc = visit(acc, x.Name, x.Args)
		for _, a := range x.Args {
			acc = FoldCons(a, acc, visit)
		}
	}
	return acc
}

// FreeVars returns the variables of a pattern in left-to-right order.
// Duplicates are preserved; callers may reject them (see CheckVars).
func FreeVars(p Pattern) []Var {
	return freeVars(p, nil)
}

func freeVars(p Pattern, vs []Var) []Var {
	switch x := p.(type) {
	case Var:
		vs = append(vs, x)
	case Con:
		for _, a := range x.Args {
			vs = freeVars(a, vs)
		}
	}
	return vs
}

// CheckVars verifies that variable names within a pattern are unique and
// returns a DuplicateVariable error otherwise.
func CheckVars(p Pattern) error {
	seen := map[string]bool{}
	for _, v := range FreeVars(p) {
		if seen[v.Name] {
			return Errorf(DuplicateVariable, "variable '%s' occurs twice in pattern %s", v.Name, p)
		}
		seen[v.Name] = true
	}
	return nil
}

// CanonicalVars maps the variable names of a pattern to canonical names
// v0, v1, … in left-to-right order. The mapping is used when comparing
// rules modulo variable renaming.
func CanonicalVars(p Pattern) map[string]string {
	subst := map[string]string{}
	for _, v := range FreeVars(p) {
		if _, ok := subst[v.Name]; !ok {
			subst[v.Name] = "v" + strconv.Itoa(len(subst))
		}
	}
	return subst
}
