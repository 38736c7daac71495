package codegen

import (
	"sort"
	"strings"

	"github.com/emirpasic/gods/maps/treemap"
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/npillmayer/gburg/burg"
)

// === Rule Grouping =========================================================

// Groups is the partitioning of a normalised rule list, as consumed by the
// generator: constructor rules indexed by constructor name, chain rules
// indexed by the nonterminal on their right-hand side, and the ordered set
// of nonterminals.
type Groups struct {
	cons     *treemap.Map            // constructor name ↦ []*burg.Rule
	chains   map[string][]*burg.Rule // nonterminal n ↦ chain rules of the form m : n
	nonterms []string                // sorted left-hand side names
}

// Group partitions a normalised rule list. It rejects chain-rule cycles in
// which no edge carries a positive literal cost: emitted propagation
// terminates through the cost guard only if every cycle gets strictly
// more expensive per round trip.
func Group(rules []*burg.Rule) (*Groups, error) {
	g := &Groups{
		cons:   treemap.NewWithStringComparator(),
		chains: map[string][]*burg.Rule{},
	}
	nts := treeset.NewWith(nontermComparator)
	for _, r := range rules {
		nts.Add(r.Lhs)
		if r.IsChain() {
			n := r.Pattern.(burg.Var).Type.TypeName()
			g.chains[n] = append(g.chains[n], r)
			continue
		}
		con, ok := r.Pattern.(burg.Con)
		if !ok {
			return nil, burg.ErrorfAt(burg.IllFormedTopPattern, r.Span,
				"rule for '%s' is neither a chain rule nor a constructor rule", r.Lhs)
		}
		var rs []*burg.Rule
		if v, found := g.cons.Get(con.Name); found {
			rs = v.([]*burg.Rule)
		}
		g.cons.Put(con.Name, append(rs, r))
	}
	for _, v := range nts.Values() {
		g.nonterms = append(g.nonterms, v.(string))
	}
	// chain propagation order is ascending by cost
	for _, rs := range g.chains {
		sortChains(rs)
	}
	if cycle := g.freeChainCycle(); cycle != nil {
		return nil, burg.Errorf(burg.ZeroCostChainCycle,
			"chain rules over {%s} form a cycle without a positive cost", strings.Join(cycle, ", "))
	}
	tracer().Infof("grouped %d rules: %d constructors, %d nonterminals",
		len(rules), g.cons.Size(), len(g.nonterms))
	return g, nil
}

// Nonterminals returns all left-hand side names. Names beginning with an
// underscore (auxiliaries) sort after ordinary names; within each class
// the order is lexicographic.
func (g *Groups) Nonterminals() []string {
	return g.nonterms
}

// Constructors visits the constructor rules in constructor-name order.
func (g *Groups) Constructors(visit func(name string, rules []*burg.Rule)) {
	it := g.cons.Iterator()
	for it.Next() {
		visit(it.Key().(string), it.Value().([]*burg.Rule))
	}
}

// ConsRules returns the rules whose top-level pattern is the named
// constructor.
func (g *Groups) ConsRules(name string) []*burg.Rule {
	if v, ok := g.cons.Get(name); ok {
		return v.([]*burg.Rule)
	}
	return nil
}

// ChainsFrom returns the chain rules m : n for a nonterminal n, ascending
// by cost.
func (g *Groups) ChainsFrom(n string) []*burg.Rule {
	return g.chains[n]
}

func nontermComparator(a, b interface{}) int {
	s1, s2 := a.(string), b.(string)
	aux1, aux2 := strings.HasPrefix(s1, "_"), strings.HasPrefix(s2, "_")
	if aux1 != aux2 {
		if aux1 {
			return 1
		}
		return -1
	}
	return strings.Compare(s1, s2)
}

// sortChains orders chain rules ascending by cost: any dynamic cost before
// any integer, dynamic costs by code text, integers by value. Ties resolve
// by left-hand side and serial, for reproducible emission.
func sortChains(rs []*burg.Rule) {
	sort.SliceStable(rs, func(i, j int) bool {
		if c := burg.CompareCosts(rs[i].Cost, rs[j].Cost); c != 0 {
			return c < 0
		}
		if rs[i].Lhs != rs[j].Lhs {
			return rs[i].Lhs < rs[j].Lhs
		}
		return rs[i].Serial < rs[j].Serial
	})
}

// freeChainCycle looks for a cycle among chain edges that are "free", i.e.
// carry a zero literal cost or a dynamic cost expression. It returns the
// nonterminals of one such cycle, or nil.
func (g *Groups) freeChainCycle() []string {
	const (
		white = 0
		grey  = 1
		black = 2
	)
	color := map[string]int{}
	var stack []string
	var walk func(n string) []string
	walk = func(n string) []string {
		color[n] = grey
		stack = append(stack, n)
		for _, r := range g.chains[n] {
			if cost, ok := r.Cost.(burg.StaticCost); ok && cost > 0 {
				continue
			}
			m := r.Lhs
			switch color[m] {
			case grey:
				for i, s := range stack {
					if s == m {
						return append([]string{}, stack[i:]...)
					}
				}
				return []string{m, n}
			case white:
				if cycle := walk(m); cycle != nil {
					return cycle
				}
			}
		}
		stack = stack[:len(stack)-1]
		color[n] = black
		return nil
	}
	starts := make([]string, 0, len(g.chains))
	for n := range g.chains {
		starts = append(starts, n)
	}
	sort.Strings(starts)
	for _, n := range starts {
		if color[n] == white {
			if cycle := walk(n); cycle != nil {
				sort.Strings(cycle)
				return cycle
			}
		}
	}
	return nil
}
