package code

import (
	"bytes"
	"strings"
	"testing"
)

func TestLowerLet(t *testing.T) {
	// let (z) = y in x+z  ⇒  z := y; return (x+z)
	let := Let{Names: []string{"z"}, X: Ident("y"), Body: Raw("x+z")}
	stmts := LowerLet(let)
	if len(stmts) != 2 {
		t.Fatalf("expected bind and return, got %d statements", len(stmts))
	}
	bind, ok := stmts[0].(Bind)
	if !ok || bind.Name != "z" {
		t.Errorf("first statement should bind z")
	}
	if _, ok := stmts[1].(Return); !ok {
		t.Errorf("last statement should return the body")
	}
}

func TestLowerLetDestructures(t *testing.T) {
	let := Let{Names: []string{"a", "b"}, X: Ident("y"), Body: Raw("a+b")}
	stmts := LowerLet(let)
	if len(stmts) != 3 { // two binds, one return
		t.Fatalf("expected 3 statements, got %d", len(stmts))
	}
	var out bytes.Buffer
	p := NewPrinter(&out)
	p.Decl(FuncDecl{Name: "f", Result: "interface{}", Body: stmts})
	if p.Err() != nil {
		t.Fatalf("print failed: %v", p.Err())
	}
	s := out.String()
	if !strings.Contains(s, `a := y.([]interface{})[0]`) ||
		!strings.Contains(s, `b := y.([]interface{})[1]`) {
		t.Errorf("tuple positions should bind through indexed assertions:\n%s", s)
	}
}

func TestLowerLetSkipsEmptyBinding(t *testing.T) {
	let := Let{Names: nil, X: Ident("y"), Body: Raw("x")}
	stmts := LowerLet(let)
	if len(stmts) != 1 {
		t.Errorf("a sub-match without free variables binds nothing, got %d statements", len(stmts))
	}
}

func TestRenameFollowsStructure(t *testing.T) {
	e := Let{Names: []string{"z"}, X: Ident("v1"), Body: Tuple{Ident("z"), Raw("z+1")}}
	r := Rename(e, map[string]string{"z": "v0", "v1": "v9"}).(Let)
	if r.Names[0] != "v0" {
		t.Errorf("let-bound name should be renamed")
	}
	if r.X.(Ident) != "v9" {
		t.Errorf("let source should be renamed")
	}
	body := r.Body.(Tuple)
	if body[0].(Ident) != "v0" {
		t.Errorf("identifiers inside tuples should be renamed")
	}
	if body[1].(Raw) != "z+1" {
		t.Errorf("raw fragments are opaque and must not be renamed")
	}
}

func TestPrinterDeterministic(t *testing.T) {
	decls := []Decl{
		CommentDecl("engine"),
		StructDecl{Name: "nonterm", Fields: []Field{
			{Name: "e", Type: "burgrt.Nt"},
			{Name: "s", Type: "burgrt.Nt", Comment: "string"},
		}},
		VarDecl{Name: "infinity", X: StructLit{Type: "nonterm", Elems: []KeyedExpr{
			{Key: "e", X: Sel{X: Ident("burgrt"), Name: "Fail"}},
		}}},
	}
	var first string
	for i := 0; i < 3; i++ {
		var out bytes.Buffer
		if err := NewPrinter(&out).Decls(decls); err != nil {
			t.Fatalf("print failed: %v", err)
		}
		if i == 0 {
			first = out.String()
		} else if out.String() != first {
			t.Fatalf("printing is not deterministic")
		}
	}
	if !strings.Contains(first, "s burgrt.Nt // string") {
		t.Errorf("field comment missing:\n%s", first)
	}
}

func TestTuplePrinting(t *testing.T) {
	check := func(e Expr, expected string) {
		t.Helper()
		var out bytes.Buffer
		p := NewPrinter(&out)
		p.Decl(VarDecl{Name: "v", X: e})
		if got := strings.TrimSpace(out.String()); got != "var v = "+expected {
			t.Errorf("expected %q, got %q", "var v = "+expected, got)
		}
	}
	check(Tuple{}, "nil")
	check(Tuple{Ident("z")}, "z")
	check(Tuple{Ident("a"), Ident("b")}, "[]interface{}{a, b}")
}
