/*
Package twelf emits an independent coverage check for a normalised rule
specification.

The check is a Twelf signature: subject trees become a simple type
family, every constructor of the specification becomes a declared
constant, and per nonterminal a coverage relation is declared whose
clauses mirror the rules. Running Twelf's totality checker on the output
proves — independently of the generated matcher — that every subject
tree is covered. Literal guards are over-approximated: a literal
position covers like a variable position of the same type.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package twelf

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/npillmayer/gburg/burg"
	"github.com/npillmayer/gburg/burg/typer"
)

// Emit writes the coverage-check signature for a normalised
// specification to an output sink.
func Emit(spec *burg.Spec, types *typer.ConsTypes, w io.Writer) error {
	e := &emitter{w: w}
	e.printf("%%%% Coverage check for %s, generated by gburg.\n\n", spec.Name)
	e.printf("tree : type.\n")
	types.Each(func(name string, sig typer.Signature) {
		args := make([]string, len(sig)+1)
		for i := range sig {
			args[i] = "tree"
		}
		args[len(sig)] = "tree"
		e.printf("%s : %s.\n", constName(name), strings.Join(args, " -> "))
	})
	e.printf("\n")
	nts := nonterminals(spec)
	for _, n := range nts {
		e.printf("%s : tree -> type.\n", covName(n))
	}
	e.printf("\n")
	for _, n := range nts {
		e.printf("%%mode %s +T.\n", covName(n))
	}
	e.printf("\n")
	for _, r := range spec.Rules {
		e.clause(r)
	}
	e.printf("\n")
	for _, n := range nts {
		e.printf("%%worlds () (%s _).\n", covName(n))
	}
	for _, n := range nts {
		e.printf("%%total T (%s T).\n", covName(n))
	}
	return e.err
}

type emitter struct {
	w   io.Writer
	err error
}

func (e *emitter) printf(format string, args ...interface{}) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}

// clause emits one coverage clause. Nonterminal argument positions
// become subgoals; terminal and literal positions cover
// unconditionally.
func (e *emitter) clause(r *burg.Rule) {
	head := covName(r.Lhs)
	switch p := r.Pattern.(type) {
	case burg.Var:
		// chain rule: coverage propagates from the chained nonterminal
		e.printf("%s-r%d : %s X <- %s X.\n",
			head, r.Serial, head, covName(p.Type.TypeName()))
	case burg.Con:
		args := make([]string, len(p.Args))
		var subgoals []string
		for i, a := range p.Args {
			args[i] = fmt.Sprintf("X%d", i+1)
			if v, ok := a.(burg.Var); ok && v.Type.IsNonterm() {
				subgoals = append(subgoals,
					fmt.Sprintf(" <- %s X%d", covName(v.Type.TypeName()), i+1))
			}
		}
		term := constName(p.Name)
		if len(args) > 0 {
			term = "(" + term + " " + strings.Join(args, " ") + ")"
		}
		e.printf("%s-r%d : %s %s%s.\n",
			head, r.Serial, head, term, strings.Join(subgoals, ""))
	}
}

func nonterminals(spec *burg.Spec) []string {
	var nts []string
	for n := range spec.Nonterminals() {
		nts = append(nts, n)
	}
	sort.Strings(nts)
	return nts
}

// constName makes a constructor name safe as a Twelf constant.
func constName(c string) string {
	return "c-" + strings.ToLower(c)
}

func covName(n string) string {
	if strings.HasPrefix(n, "_") {
		return "cov-aux-" + strings.ToLower(n[1:])
	}
	return "cov-" + strings.ToLower(n)
}
