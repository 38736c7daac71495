/*
Package normal implements the rule normaliser.

Normalisation transforms a rule list into an equivalent rule list in which
no constructor pattern's direct argument is itself a constructor pattern.
Nested constructors are lifted into auxiliary nonterminals: a nested
constructor C of arity k becomes a fresh variable of the auxiliary
nonterminal type _C<k>, plus a zero-cost auxiliary rule producing _C<k>
from the lifted sub-pattern. Across one specification, every (C, k) site
shares the same auxiliary, so multiple sites feed rules into it.

The transformation preserves covers and their total costs: auxiliary rules
contribute zero cost, and the action executed for the root nonterminal is
identical up to let-bindings of the lifted sub-match results.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package normal

import (
	"fmt"
	"strconv"

	"github.com/cnf/structhash"
	"github.com/npillmayer/gburg/burg"
	"github.com/npillmayer/gburg/code"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'gburg.normal'.
func tracer() tracing.Trace {
	return tracing.Select("gburg.normal")
}

// Spec normalises a specification. The input is left untouched; the result
// is a fresh specification holding the extended, flattened rule list.
// Normalisation is idempotent: applied to its own output it returns an
// equal rule list.
func Spec(s *burg.Spec) (*burg.Spec, error) {
	rules, err := Rules(s)
	if err != nil {
		return nil, err
	}
	norm := &burg.Spec{
		Name:  s.Name,
		Terms: s.Terms,
		Heads: s.Heads,
		Tails: s.Tails,
		Types: s.Types,
		Rules: rules,
	}
	return norm, nil
}

// Rules normalises the rule list of a specification and returns the
// extended list. Rules already in normal form are passed through
// unchanged; duplicates arising from repeated lifted sub-patterns are
// removed under pattern equivalence.
func Rules(s *burg.Spec) ([]*burg.Rule, error) {
	n := &normaliser{
		userLHS: s.Nonterminals(),
		seen:    map[string]bool{},
	}
	for _, r := range s.Rules {
		if err := r.CheckTop(); err != nil {
			return nil, err
		}
		if err := n.flatten(r); err != nil {
			return nil, err
		}
	}
	tracer().Infof("normalised %d rules into %d", len(s.Rules), len(n.out))
	return n.out, nil
}

// normaliser is the state of one normalisation run. The auxiliary-name
// registry and the fresh-variable counter are scoped to the run; nothing
// here survives it.
type normaliser struct {
	userLHS map[string]bool // left-hand sides of the input specification
	out     []*burg.Rule    // the extended rule list under construction
	seen    map[string]bool // dedup keys of emitted rules
	fresh   int             // fresh-variable counter
	serial  int             // serial numbers for emitted rules
}

// flatten normalises one rule and emits it, followed by the auxiliary
// rules for its lifted sub-patterns, depth-first in argument order.
func (n *normaliser) flatten(r *burg.Rule) error {
	con, ok := r.Pattern.(burg.Con)
	if !ok {
		// chain rule, nothing to lift; copy so that re-serialing does not
		// touch the input
		chain := *r
		n.emit(&chain)
		return nil
	}
	type lift struct {
		names []string // free variables of the lifted sub-pattern
		fresh string   // the variable replacing it
		aux   *burg.Rule
	}
	var lifts []lift
	args := make([]burg.Pattern, len(con.Args))
	for i, arg := range con.Args {
		nested, ok := arg.(burg.Con)
		if !ok {
			args[i] = arg
			continue
		}
		aux := auxName(nested)
		if n.userLHS[aux] {
			return burg.ErrorfAt(burg.InconsistentConstructor, r.Span,
				"auxiliary nonterminal '%s' for %s/%d collides with a user-defined nonterminal",
				aux, nested.Name, len(nested.Args))
		}
		n.fresh++
		v := "_v" + strconv.Itoa(n.fresh)
		args[i] = burg.Var{Name: v, Type: burg.NontermType(aux)}
		sub := varNames(nested)
		lifts = append(lifts, lift{
			names: sub,
			fresh: v,
			aux: &burg.Rule{
				Lhs:     aux,
				Pattern: nested,
				Cost:    burg.StaticCost(0),
				Action:  tupleOf(sub),
				Span:    r.Span,
			},
		})
		tracer().Debugf("lifting %s out of rule for '%s' as %s", nested.Name, r.Lhs, aux)
	}
	action := r.Action
	for i := len(lifts) - 1; i >= 0; i-- {
		if len(lifts[i].names) == 0 {
			continue // sub-match binds nothing
		}
		action = code.Let{Names: lifts[i].names, X: code.Ident(lifts[i].fresh), Body: action}
	}
	n.emit(&burg.Rule{
		Lhs:     r.Lhs,
		Pattern: burg.Con{Name: con.Name, Args: args},
		Cost:    r.Cost,
		Action:  action,
		Span:    r.Span,
	})
	for _, l := range lifts {
		if err := n.flatten(l.aux); err != nil {
			return err
		}
	}
	return nil
}

// emit appends a rule to the output unless an equivalent rule is already
// present. Two rules are the same if they differ at most in variable
// names: left-hand side, pattern, cost and action must agree after
// canonical renaming of the pattern's variables.
func (n *normaliser) emit(r *burg.Rule) {
	key := dedupKey(r)
	if n.seen[key] {
		tracer().Debugf("dropping duplicate rule %s", r)
		return
	}
	n.seen[key] = true
	r.Serial = n.serial
	n.serial++
	n.out = append(n.out, r)
}

func dedupKey(r *burg.Rule) string {
	subst := burg.CanonicalVars(r.Pattern)
	canon := struct {
		Lhs     string
		Pattern string
		Cost    string
		Action  string
	}{
		Lhs:     r.Lhs,
		Pattern: renamePattern(r.Pattern, subst).String(),
		Cost:    r.Cost.String(),
	}
	if r.Action != nil {
		canon.Action = code.Rename(r.Action, subst).String()
	}
	return fmt.Sprintf("%x", structhash.Sha1(canon, 1))
}

func renamePattern(p burg.Pattern, subst map[string]string) burg.Pattern {
	switch x := p.(type) {
	case burg.Var:
		if r, ok := subst[x.Name]; ok {
			return burg.Var{Name: r, Type: x.Type}
		}
	case burg.Con:
		args := make([]burg.Pattern, len(x.Args))
		for i, a := range x.Args {
			args[i] = renamePattern(a, subst)
		}
		return burg.Con{Name: x.Name, Args: args}
	}
	return p
}

// auxName derives the auxiliary nonterminal name for a lifted constructor
// site: the constructor's name and its arity at that site, prefixed with
// an underscore. The identifier mangler leaves such names unchanged.
func auxName(c burg.Con) string {
	return "_" + c.Name + strconv.Itoa(len(c.Args))
}

func varNames(p burg.Pattern) []string {
	vars := burg.FreeVars(p)
	names := make([]string, len(vars))
	for i, v := range vars {
		names[i] = v.Name
	}
	return names
}

// tupleOf builds the action of an auxiliary rule: the tuple of the lifted
// sub-pattern's free variables, in pattern order. The outer rule's action
// destructures it through a let-binding.
func tupleOf(names []string) code.Expr {
	t := make(code.Tuple, len(names))
	for i, name := range names {
		t[i] = code.Ident(name)
	}
	return t
}
