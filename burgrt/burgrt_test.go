package burgrt

import "testing"

func TestCostAddSaturates(t *testing.T) {
	if c := NewCost(2).Add(NewCost(3)); c != 5 {
		t.Errorf("2+3 should be 5, is %d", c)
	}
	if c := Infinity.Add(NewCost(1)); c != Infinity {
		t.Errorf("infinity should absorb addition")
	}
	if c := NewCost(1).Add(Infinity); c != Infinity {
		t.Errorf("infinity should absorb addition from the right")
	}
	big := Cost(Infinity - 1)
	if c := big.Add(big); c != Infinity {
		t.Errorf("cost addition should saturate at infinity, is %d", c)
	}
}

func TestCostOrder(t *testing.T) {
	if !NewCost(1).Less(NewCost(2)) {
		t.Errorf("1 < 2 expected")
	}
	if !NewCost(0).Less(Infinity) {
		t.Errorf("infinity must be maximal")
	}
	if !Infinity.Ge(Infinity) {
		t.Errorf("Ge must include equality")
	}
}

func TestNewCostRejectsNegative(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("negative costs should panic")
		}
	}()
	NewCost(-1)
}

func TestChoicePicksCheapest(t *testing.T) {
	a := Nt{Cost: 3, Action: func() interface{} { return "a" }}
	b := Nt{Cost: 1, Action: func() interface{} { return "b" }}
	c := Nt{Cost: 1, Action: func() interface{} { return "c" }}
	if got := Choice(a, b, c); got.Action() != "b" {
		t.Errorf("choice should pick the first cheapest candidate, got %v", got.Action())
	}
	if got := Choice(); got.Cost != Infinity {
		t.Errorf("choice of nothing is Fail")
	}
}

func TestMatches(t *testing.T) {
	if m := Matches(0, 0); m.Cost != 0 {
		t.Errorf("equal values should match with cost zero")
	}
	if m := Matches(0, 1); m.Cost != Infinity {
		t.Errorf("unequal values should not match")
	}
	if m := Matches("lo", "lo"); m.Cost != 0 {
		t.Errorf("string literals should match by equality")
	}
	if m := Matches('x', rune('x')); m.Cost != 0 {
		t.Errorf("character literals should match by equality")
	}
}
