/*
Package typer infers constructor signatures.

Every constructor occurring in a rule set must be used consistently: all
occurrences of one constructor name must agree on the number of arguments
and on the kind of every argument position. The typer folds over all
constructor occurrences, computes one signature per occurrence and checks
it against the signatures seen before. Inference is deterministic,
insensitive to rule order, and idempotent.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package typer

import (
	"strings"

	"github.com/emirpasic/gods/maps/treemap"
	"github.com/npillmayer/gburg/burg"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'gburg.typer'.
func tracer() tracing.Trace {
	return tracing.Select("gburg.typer")
}

// --- Argument kinds and signatures -----------------------------------------

// ArgKind is the kind of one constructor argument position: polymorphic
// (the position accepts any nonterminal value or nested constructor) or
// monomorphic of a named terminal type.
type ArgKind interface {
	argKind()
	String() string
}

// Poly marks a polymorphic argument position.
type Poly struct{}

// Mono marks a monomorphic argument position of a named terminal type.
type Mono string

func (Poly) argKind() {}
func (Mono) argKind() {}

func (Poly) String() string   { return "poly" }
func (m Mono) String() string { return string(m) }

// Signature is the ordered argument-kind list of a constructor.
type Signature []ArgKind

// Equal is structural equality of signatures.
func (s Signature) Equal(other Signature) bool {
	if len(s) != len(other) {
		return false
	}
	for i, k := range s {
		if k != other[i] {
			return false
		}
	}
	return true
}

func (s Signature) String() string {
	kinds := make([]string, len(s))
	for i, k := range s {
		kinds[i] = k.String()
	}
	return "(" + strings.Join(kinds, ", ") + ")"
}

// SignatureOf computes the signature of one constructor occurrence from
// its argument patterns. The typer is defined on arbitrary patterns, not
// only normalised ones; a nested constructor argument is polymorphic.
func SignatureOf(args []burg.Pattern) Signature {
	sig := make(Signature, len(args))
	for i, a := range args {
		switch x := a.(type) {
		case burg.Lit:
			switch x.Value.(type) {
			case burg.Int:
				sig[i] = Mono("int")
			case burg.Str:
				sig[i] = Mono("string")
			case burg.Char:
				sig[i] = Mono("char")
			}
		case burg.Var:
			if x.Type.IsNonterm() {
				sig[i] = Poly{}
			} else {
				sig[i] = Mono(x.Type.TypeName())
			}
		case burg.Con:
			sig[i] = Poly{}
		}
	}
	return sig
}

// --- Inference -------------------------------------------------------------

// ConsTypes maps constructor names to their inferred signatures. Iteration
// order is the lexicographic order of constructor names.
type ConsTypes struct {
	m *treemap.Map
}

// Signature returns the inferred signature of a constructor.
func (t *ConsTypes) Signature(name string) (Signature, bool) {
	if v, ok := t.m.Get(name); ok {
		return v.(Signature), true
	}
	return nil, false
}

// Size returns the number of constructors.
func (t *ConsTypes) Size() int {
	return t.m.Size()
}

// Each visits all constructors in name order.
func (t *ConsTypes) Each(visit func(name string, sig Signature)) {
	it := t.m.Iterator()
	for it.Next() {
		visit(it.Key().(string), it.Value().(Signature))
	}
}

// Infer derives the signature of every constructor occurring in the rule
// list. Two occurrences of one constructor with structurally different
// signatures are fatal for the specification.
func Infer(rules []*burg.Rule) (*ConsTypes, error) {
	env := &ConsTypes{m: treemap.NewWithStringComparator()}
	for _, r := range rules {
		rule := r
		result := burg.FoldCons(r.Pattern, error(nil),
			func(acc interface{}, name string, args []burg.Pattern) interface{} {
				if acc != nil {
					return acc
				}
				sig := SignatureOf(args)
				if prev, ok := env.m.Get(name); ok {
					if !prev.(Signature).Equal(sig) {
						return burg.ErrorfAt(burg.InconsistentConstructor, rule.Span,
							"constructor '%s' used with signature %s, but expected %s",
							name, sig, prev.(Signature))
					}
					return nil
				}
				tracer().Debugf("%s ↦ %s", name, sig)
				env.m.Put(name, sig)
				return nil
			})
		if result != nil {
			return nil, result.(error)
		}
	}
	tracer().Infof("inferred signatures for %d constructors", env.Size())
	return env, nil
}
