/*
Package burgrt is the runtime library of emitted matching engines.

Emitted code represents a candidate cover of a subject tree as an Nt: a
cost together with a thunk producing the cover's value on demand. Costs
form a non-negative additive monoid with an absorbing, maximal Infinity.
The package is deliberately tiny; everything interesting happens in the
emitted update and constructor routines.

For a thorough discussion of bottom-up rewrite systems, refer to
Fraser & Hanson, "Engineering a Simple, Efficient Code Generator
Generator", 1992.

----------------------------------------------------------------------

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package burgrt

import "fmt"

// Cost is the cost of a candidate. Costs add saturatingly: Infinity
// absorbs addition and is maximal for comparison.
type Cost int32

// Infinity is the maximal cost. No candidate of infinite cost is ever
// installed by an update routine, and its action must never run.
const Infinity Cost = 1<<31 - 1

// NewCost converts an integer cost expression from emitted code. Costs
// are non-negative; a negative value indicates a broken user cost
// fragment.
func NewCost(n int) Cost {
	if n < 0 {
		panic(fmt.Sprintf("burgrt: negative cost %d", n))
	}
	if n >= int(Infinity) {
		return Infinity
	}
	return Cost(n)
}

// Add is saturating addition.
func (c Cost) Add(d Cost) Cost {
	if c == Infinity || d == Infinity {
		return Infinity
	}
	if sum := int64(c) + int64(d); sum < int64(Infinity) {
		return Cost(sum)
	}
	return Infinity
}

// Less reports c < d.
func (c Cost) Less(d Cost) bool {
	return c < d
}

// Ge reports c ≥ d. Update routines use it as their no-op guard.
func (c Cost) Ge(d Cost) bool {
	return c >= d
}

// Nt is one candidate: the cost of a cover together with the thunk
// running the cover's actions.
type Nt struct {
	Cost   Cost
	Action func() interface{}
}

// Fail is the never-matching candidate. Every field of the emitted
// infinity record holds it.
var Fail = Nt{
	Cost: Infinity,
	Action: func() interface{} {
		panic("burgrt: no cover for this nonterminal")
	},
}

// Choice returns the candidate with minimum cost. The first of several
// equally cheap candidates wins, which keeps matching deterministic.
// Choice of nothing is Fail.
func Choice(xs ...Nt) Nt {
	best := Fail
	for _, x := range xs {
		if x.Cost.Less(best.Cost) {
			best = x
		}
	}
	return best
}

// Matches guards a literal argument position: cost zero if the runtime
// value equals the literal, Infinity otherwise.
func Matches(literal interface{}, value interface{}) Nt {
	if literal == value {
		return Nt{Cost: 0, Action: func() interface{} { return nil }}
	}
	return Fail
}
