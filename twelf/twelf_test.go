package twelf

import (
	"bytes"
	"strings"
	"testing"

	"github.com/npillmayer/gburg/burg/normal"
	"github.com/npillmayer/gburg/burg/typer"
	"github.com/npillmayer/gburg/parser"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestEmitCoverageSignature(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gburg.rules")
	defer teardown()
	//
	spec, err := parser.Parse("test.brg", `
%%
e : ADD(x:e, y:e) [2] {: x+y :}
e : CONST(x:int)  [1] {: x :}
s : e             [1] {: e :}
`)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	norm, err := normal.Spec(spec)
	if err != nil {
		t.Fatalf("normalisation failed: %v", err)
	}
	types, err := typer.Infer(norm.Rules)
	if err != nil {
		t.Fatalf("typing failed: %v", err)
	}
	var out bytes.Buffer
	if err := Emit(norm, types, &out); err != nil {
		t.Fatalf("emission failed: %v", err)
	}
	s := out.String()
	if !strings.Contains(s, "tree : type.") {
		t.Errorf("tree family missing")
	}
	if !strings.Contains(s, "c-add : tree -> tree -> tree.") {
		t.Errorf("ADD constant missing:\n%s", s)
	}
	if !strings.Contains(s, "cov-e : tree -> type.") {
		t.Errorf("coverage relation for e missing")
	}
	if !strings.Contains(s, "<- cov-e X1 <- cov-e X2") {
		t.Errorf("subgoals for the ADD rule missing:\n%s", s)
	}
	if !strings.Contains(s, "cov-s-r") || !strings.Contains(s, "<- cov-e X.") {
		t.Errorf("chain rule clause missing:\n%s", s)
	}
	if !strings.Contains(s, "%total T (cov-e T).") {
		t.Errorf("totality directive missing")
	}
}
