package codegen

import (
	"testing"

	"github.com/npillmayer/gburg/burg"
	"github.com/npillmayer/gburg/code"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func chainRule(lhs, n string, cost burg.Cost) *burg.Rule {
	return &burg.Rule{Lhs: lhs, Pattern: burg.Var{Name: "x", Type: burg.NontermType(n)},
		Cost: cost, Action: code.Raw("x")}
}

func conRule(lhs, con string, cost burg.Cost, args ...burg.Pattern) *burg.Rule {
	return &burg.Rule{Lhs: lhs, Pattern: burg.Con{Name: con, Args: args},
		Cost: cost, Action: code.Raw("x")}
}

func TestGroupPartitioning(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gburg.codegen")
	defer teardown()
	//
	rules := []*burg.Rule{
		conRule("e", "ADD", burg.StaticCost(2),
			burg.Var{Name: "x", Type: burg.NontermType("e")},
			burg.Var{Name: "y", Type: burg.NontermType("e")}),
		conRule("e", "CONST", burg.StaticCost(1), burg.Var{Name: "x", Type: burg.TermType("int")}),
		chainRule("s", "e", burg.StaticCost(1)),
	}
	for i, r := range rules {
		r.Serial = i
	}
	g, err := Group(rules)
	if err != nil {
		t.Fatalf("grouping failed: %v", err)
	}
	if len(g.ConsRules("ADD")) != 1 || len(g.ConsRules("CONST")) != 1 {
		t.Errorf("constructor rules misgrouped")
	}
	if len(g.ChainsFrom("e")) != 1 {
		t.Errorf("chain rule s : e not indexed under e")
	}
	nts := g.Nonterminals()
	if len(nts) != 2 || nts[0] != "e" || nts[1] != "s" {
		t.Errorf("nonterminals should be [e s], got %v", nts)
	}
}

func TestGroupSortsAuxiliariesLast(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gburg.codegen")
	defer teardown()
	//
	rules := []*burg.Rule{
		conRule("_CONST1", "CONST", burg.StaticCost(0), burg.Lit{Value: burg.Int(0)}),
		conRule("z", "NIL", burg.StaticCost(0)),
		conRule("a", "NIL", burg.StaticCost(0)),
	}
	g, err := Group(rules)
	if err != nil {
		t.Fatalf("grouping failed: %v", err)
	}
	nts := g.Nonterminals()
	if nts[0] != "a" || nts[1] != "z" || nts[2] != "_CONST1" {
		t.Errorf("auxiliaries must sort after ordinary names, got %v", nts)
	}
}

func TestGroupChainOrder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gburg.codegen")
	defer teardown()
	//
	rules := []*burg.Rule{
		chainRule("a", "e", burg.StaticCost(3)),
		chainRule("b", "e", burg.StaticCost(1)),
		chainRule("c", "e", burg.DynamicCost("f(x)")),
		conRule("e", "NIL", burg.StaticCost(0)),
	}
	g, err := Group(rules)
	if err != nil {
		t.Fatalf("grouping failed: %v", err)
	}
	chains := g.ChainsFrom("e")
	if len(chains) != 3 {
		t.Fatalf("expected 3 chain rules from e, got %d", len(chains))
	}
	// dynamic costs sort before any integer, then ascending by value
	if chains[0].Lhs != "c" || chains[1].Lhs != "b" || chains[2].Lhs != "a" {
		order := []string{chains[0].Lhs, chains[1].Lhs, chains[2].Lhs}
		t.Errorf("chain order should be [c b a], got %v", order)
	}
}

func TestGroupRejectsFreeChainCycle(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gburg.codegen")
	defer teardown()
	//
	rules := []*burg.Rule{
		chainRule("s", "e", burg.StaticCost(0)),
		chainRule("e", "s", burg.DynamicCost("f(x)")),
		conRule("e", "NIL", burg.StaticCost(0)),
	}
	_, err := Group(rules)
	if err == nil {
		t.Fatalf("a zero-cost chain cycle must be rejected")
	}
	e, ok := err.(*burg.Error)
	if !ok || e.Kind != burg.ZeroCostChainCycle {
		t.Errorf("wrong error kind: %v", err)
	}
}

func TestGroupAcceptsPaidChainCycle(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gburg.codegen")
	defer teardown()
	//
	// mutually recursive chain rules with positive costs terminate through
	// the cost guard
	rules := []*burg.Rule{
		chainRule("s", "e", burg.StaticCost(1)),
		chainRule("e", "s", burg.StaticCost(1)),
		conRule("e", "NIL", burg.StaticCost(0)),
	}
	if _, err := Group(rules); err != nil {
		t.Errorf("chain cycle with positive costs should be accepted: %v", err)
	}
}
