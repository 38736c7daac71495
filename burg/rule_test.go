package burg

import (
	"testing"

	"github.com/npillmayer/gburg/code"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestCompareCosts(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gburg.rules")
	defer teardown()
	//
	if CompareCosts(StaticCost(1), StaticCost(2)) >= 0 {
		t.Errorf("1 should sort before 2")
	}
	if CompareCosts(DynamicCost("f(x)"), StaticCost(0)) >= 0 {
		t.Errorf("a dynamic cost should sort before any integer")
	}
	if CompareCosts(StaticCost(0), DynamicCost("f(x)")) <= 0 {
		t.Errorf("an integer should sort after any dynamic cost")
	}
	if CompareCosts(DynamicCost("a"), DynamicCost("b")) >= 0 {
		t.Errorf("dynamic costs should sort by code text")
	}
}

func TestRuleChain(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gburg.rules")
	defer teardown()
	//
	chain := &Rule{Lhs: "s", Pattern: Var{Name: "x", Type: NontermType("e")},
		Cost: StaticCost(1), Action: code.Raw("x")}
	if !chain.IsChain() {
		t.Errorf("%s should be a chain rule", chain)
	}
	conrule := &Rule{Lhs: "e", Pattern: Con{Name: "NIL"}, Cost: StaticCost(0), Action: code.Raw("nil")}
	if conrule.IsChain() {
		t.Errorf("%s should not be a chain rule", conrule)
	}
	termvar := &Rule{Lhs: "e", Pattern: Var{Name: "x", Type: TermType("int")},
		Cost: StaticCost(0), Action: code.Raw("x")}
	if termvar.IsChain() {
		t.Errorf("a bare terminal variable is not a chain rule")
	}
	if err := termvar.CheckTop(); err == nil {
		t.Errorf("a bare terminal variable should be rejected as top-level pattern")
	}
	bareLit := &Rule{Lhs: "e", Pattern: Lit{Value: Int(0)}, Cost: StaticCost(0), Action: code.Raw("0")}
	if err := bareLit.CheckTop(); err == nil {
		t.Errorf("a bare literal should be rejected as top-level pattern")
	}
}

func TestSpecCheck(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gburg.rules")
	defer teardown()
	//
	s := NewSpec("test")
	s.Terms["reg"] = true
	s.Rules = append(s.Rules, &Rule{Lhs: "e", Pattern: Con{Name: "NIL"},
		Cost: StaticCost(0), Action: code.Raw("nil")})
	if err := s.Check(); err != nil {
		t.Errorf("well-formed specification rejected: %v", err)
	}
	s.Rules = append(s.Rules, &Rule{Lhs: "reg", Pattern: Con{Name: "REG"},
		Cost: StaticCost(0), Action: code.Raw("r")})
	if err := s.Check(); err == nil {
		t.Errorf("terminal types and nonterminals must be disjoint")
	}
}
