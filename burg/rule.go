package burg

import (
	"strconv"
	"strings"

	"github.com/npillmayer/gburg"
	"github.com/npillmayer/gburg/code"
)

// --- Costs -----------------------------------------------------------------

// Cost is the cost annotation of a rule: either a literal non-negative
// integer or an opaque user-supplied code fragment. Costs are never
// interpreted by the pipeline; they are transported verbatim into the
// emitted program.
type Cost interface {
	cost()
	String() string
}

// StaticCost is a literal non-negative integer cost.
type StaticCost int

// DynamicCost is an opaque cost expression, evaluated at match time in
// scope of the terminal variables at the top level of the rule's pattern.
type DynamicCost string

func (StaticCost) cost()  {}
func (DynamicCost) cost() {}

func (c StaticCost) String() string  { return strconv.Itoa(int(c)) }
func (c DynamicCost) String() string { return "{: " + string(c) + " :}" }

// CompareCosts orders costs for chain-rule propagation: any dynamic cost
// sorts as smaller than any integer; among dynamic costs, the code text
// decides; integer costs compare by value.
func CompareCosts(a, b Cost) int {
	da, aDyn := a.(DynamicCost)
	db, bDyn := b.(DynamicCost)
	switch {
	case aDyn && bDyn:
		return strings.Compare(string(da), string(db))
	case aDyn:
		return -1
	case bDyn:
		return 1
	}
	return int(a.(StaticCost)) - int(b.(StaticCost))
}

// --- Rules -----------------------------------------------------------------

// Rule is one tree-rewriting rule: a left-hand nonterminal, a right-hand
// pattern, a cost and an action. Cost and action are opaque to the
// pipeline. The span points back into the specification source and is
// used for diagnostics only.
type Rule struct {
	Serial  int       // serial number within the specification
	Lhs     string    // left-hand side nonterminal
	Pattern Pattern   // right-hand side pattern
	Cost    Cost      // cost annotation, defaults to 0
	Action  code.Expr // user action, possibly wrapped by the normaliser
	Span    gburg.Span
}

func (r *Rule) String() string {
	var b strings.Builder
	b.WriteString(r.Lhs)
	b.WriteString(": ")
	b.WriteString(r.Pattern.String())
	b.WriteString(" [")
	b.WriteString(r.Cost.String())
	b.WriteString("]")
	if r.Action != nil {
		b.WriteString(" ")
		b.WriteString(r.Action.String())
	}
	return b.String()
}

// IsChain reports whether a rule is a chain rule, i.e. its pattern is a
// single nonterminal-typed variable.
func (r *Rule) IsChain() bool {
	v, ok := r.Pattern.(Var)
	return ok && v.Type.IsNonterm()
}

// CheckTop verifies invariant 1 of the data model: a rule's top-level
// pattern is never a bare literal nor a bare terminal variable.
func (r *Rule) CheckTop() error {
	switch p := r.Pattern.(type) {
	case Lit:
		return ErrorfAt(IllFormedTopPattern, r.Span,
			"rule for '%s': top-level pattern is a bare literal %s", r.Lhs, p)
	case Var:
		if !p.Type.IsNonterm() {
			return ErrorfAt(IllFormedTopPattern, r.Span,
				"rule for '%s': top-level pattern is a bare terminal variable %s", r.Lhs, p)
		}
	}
	return nil
}

// --- Specifications --------------------------------------------------------

// Spec is a complete rule specification, built once by the parser and
// threaded through the pipeline read-only.
type Spec struct {
	Name  string            // name of the specification, e.g. the file name
	Terms map[string]bool   // declared terminal type names
	Heads []string          // head code fragments, emitted verbatim first
	Tails []string          // tail code fragments, emitted verbatim last
	Types map[string]string // nonterminal name ↦ opaque target-type annotation
	Rules []*Rule           // the rules, in declaration order
}

// NewSpec creates an empty specification. The terminal types int, string
// and char are predeclared.
func NewSpec(name string) *Spec {
	return &Spec{
		Name:  name,
		Terms: map[string]bool{"int": true, "string": true, "char": true},
		Types: map[string]string{},
	}
}

// Nonterminals returns the set of all left-hand side names.
func (s *Spec) Nonterminals() map[string]bool {
	nts := map[string]bool{}
	for _, r := range s.Rules {
		nts[r.Lhs] = true
	}
	return nts
}

// SourceMap returns the source-position map of the specification: rule
// serial number to input span. It is used only for diagnostics.
func (s *Spec) SourceMap() map[int]gburg.Span {
	m := make(map[int]gburg.Span, len(s.Rules))
	for _, r := range s.Rules {
		m[r.Serial] = r.Span
	}
	return m
}

// Check verifies the stage-boundary invariants that do not need the typer:
// well-formed top-level patterns, unique variables per pattern, and
// disjointness of declared terminal types and nonterminal names.
func (s *Spec) Check() error {
	nts := s.Nonterminals()
	for n := range nts {
		if s.Terms[n] {
			return Errorf(IllFormedTopPattern,
				"'%s' is declared as a terminal type but defined by a rule", n)
		}
	}
	for _, r := range s.Rules {
		if err := r.CheckTop(); err != nil {
			return err
		}
		if err := CheckVars(r.Pattern); err != nil {
			return err
		}
	}
	tracer().Debugf("specification %s checked, %d rules", s.Name, len(s.Rules))
	return nil
}
