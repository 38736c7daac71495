package typer

import (
	"testing"

	"github.com/npillmayer/gburg/burg"
	"github.com/npillmayer/gburg/code"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func con(name string, args ...burg.Pattern) burg.Pattern {
	return burg.Con{Name: name, Args: args}
}

func v(name, ty string) burg.Pattern {
	return burg.Var{Name: name, Type: burg.NontermType(ty)}
}

func tv(name, ty string) burg.Pattern {
	return burg.Var{Name: name, Type: burg.TermType(ty)}
}

func rule(lhs string, p burg.Pattern) *burg.Rule {
	return &burg.Rule{Lhs: lhs, Pattern: p, Cost: burg.StaticCost(1), Action: code.Raw("x")}
}

func TestInferSignatures(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gburg.typer")
	defer teardown()
	//
	// e : ADD(x:e, y:e)       e : ADD(x:e, CONST(0))       e : CONST(x:int)
	rules := []*burg.Rule{
		rule("e", con("ADD", v("x", "e"), v("y", "e"))),
		rule("e", con("ADD", v("x", "e"), con("CONST", burg.Lit{Value: burg.Int(0)}))),
		rule("e", con("CONST", tv("x", "int"))),
	}
	types, err := Infer(rules)
	if err != nil {
		t.Fatalf("inference failed: %v", err)
	}
	if types.Size() != 2 {
		t.Fatalf("expected signatures for 2 constructors, got %d", types.Size())
	}
	addSig, _ := types.Signature("ADD")
	if addSig.String() != "(poly, poly)" {
		t.Errorf("ADD should map to (poly, poly), got %s", addSig)
	}
	constSig, _ := types.Signature("CONST")
	if constSig.String() != "(int)" {
		t.Errorf("CONST should map to (int), got %s", constSig)
	}
}

func TestInferInconsistentArity(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gburg.typer")
	defer teardown()
	//
	rules := []*burg.Rule{
		rule("e", con("FOO", v("x", "e"))),
		rule("e", con("FOO", v("x", "e"), v("y", "e"))),
	}
	_, err := Infer(rules)
	if err == nil {
		t.Fatalf("expected an inconsistent-constructor error for FOO")
	}
	e, ok := err.(*burg.Error)
	if !ok || e.Kind != burg.InconsistentConstructor {
		t.Errorf("wrong error kind: %v", err)
	}
}

func TestInferInconsistentKind(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gburg.typer")
	defer teardown()
	//
	rules := []*burg.Rule{
		rule("e", con("CONST", tv("x", "int"))),
		rule("e", con("CONST", burg.Lit{Value: burg.Str("zero")})),
	}
	if _, err := Infer(rules); err == nil {
		t.Errorf("int vs string argument kinds should be inconsistent")
	}
}

func TestInferOrderInsensitive(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gburg.typer")
	defer teardown()
	//
	a := rule("e", con("ADD", v("x", "e"), v("y", "e")))
	b := rule("e", con("CONST", tv("x", "int")))
	t1, err1 := Infer([]*burg.Rule{a, b})
	t2, err2 := Infer([]*burg.Rule{b, a})
	if err1 != nil || err2 != nil {
		t.Fatalf("inference failed: %v %v", err1, err2)
	}
	equal := t1.Size() == t2.Size()
	t1.Each(func(name string, sig Signature) {
		other, ok := t2.Signature(name)
		if !ok || !sig.Equal(other) {
			equal = false
		}
	})
	if !equal {
		t.Errorf("inference should not depend on rule order")
	}
}

func TestInferIdempotent(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gburg.typer")
	defer teardown()
	//
	rules := []*burg.Rule{
		rule("e", con("ADD", v("x", "e"), v("y", "e"))),
		rule("e", con("CONST", tv("x", "int"))),
	}
	t1, err := Infer(rules)
	if err != nil {
		t.Fatalf("inference failed: %v", err)
	}
	t2, err := Infer(rules)
	if err != nil {
		t.Fatalf("second inference failed: %v", err)
	}
	t1.Each(func(name string, sig Signature) {
		other, ok := t2.Signature(name)
		if !ok || !sig.Equal(other) {
			t.Errorf("repeated inference changed signature of %s", name)
		}
	})
}
