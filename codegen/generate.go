package codegen

import (
	"io"
	"strconv"

	"github.com/npillmayer/gburg/burg"
	"github.com/npillmayer/gburg/burg/typer"
	"github.com/npillmayer/gburg/code"
)

// === Engine Synthesis ======================================================

// Generator synthesizes the matching engine for one normalised
// specification. Clients usually run the whole pipeline through
// Generate(); the Generator type is exported for callers that want the
// abstract code tree, e.g. to post-process it before printing.
type Generator struct {
	spec   *burg.Spec
	groups *Groups
	types  *typer.ConsTypes
}

// NewGenerator creates a generator from a normalised specification, its
// rule grouping and the inferred constructor signatures.
func NewGenerator(spec *burg.Spec, groups *Groups, types *typer.ConsTypes) *Generator {
	return &Generator{spec: spec, groups: groups, types: types}
}

// Generate groups a normalised specification and emits the matching
// engine to an output sink. The sink is written sequentially; a write
// failure aborts emission and is propagated (partial output may have
// reached the sink).
func Generate(spec *burg.Spec, types *typer.ConsTypes, w io.Writer) error {
	groups, err := Group(spec.Rules)
	if err != nil {
		return err
	}
	g := NewGenerator(spec, groups, types)
	p := code.NewPrinter(w)
	return p.Decls(g.Emit())
}

// Emit builds the abstract code tree of the emitted program: head
// fragments, the record type, the infinity value, the mutually recursive
// update routines, the mutually recursive constructor routines, and the
// tail fragments. An empty rule list emits only the head fragments.
func (g *Generator) Emit() []code.Decl {
	var decls []code.Decl
	for _, h := range g.spec.Heads {
		decls = append(decls, code.RawDecl(h))
	}
	if len(g.spec.Rules) == 0 {
		tracer().Infof("empty specification, emitting head fragments only")
		return decls
	}
	decls = append(decls, g.recordType(), g.infinity())
	for _, n := range g.groups.Nonterminals() {
		decls = append(decls, g.updateFunc(n))
	}
	g.groups.Constructors(func(name string, rules []*burg.Rule) {
		decls = append(decls, g.conFunc(name, rules))
	})
	for _, t := range g.spec.Tails {
		decls = append(decls, code.RawDecl(t))
	}
	tracer().Infof("emitting %d declarations", len(decls))
	return decls
}

// --- Record type and infinity ----------------------------------------------

// recordType declares the record holding, per nonterminal, the cheapest
// candidate found so far. A user-declared target type shows up as a field
// comment; the runtime shape of every field is burgrt.Nt.
func (g *Generator) recordType() code.Decl {
	record := code.StructDecl{Name: "nonterm"}
	for _, n := range g.groups.Nonterminals() {
		record.Fields = append(record.Fields, code.Field{
			Name:    fieldName(n),
			Type:    "burgrt.Nt",
			Comment: g.spec.Types[n],
		})
	}
	return record
}

// infinity declares the initial record: every field maximally expensive.
func (g *Generator) infinity() code.Decl {
	lit := code.StructLit{Type: "nonterm"}
	for _, n := range g.groups.Nonterminals() {
		lit.Elems = append(lit.Elems, code.KeyedExpr{
			Key: fieldName(n),
			X:   code.Sel{X: code.Ident("burgrt"), Name: "Fail"},
		})
	}
	return code.VarDecl{Name: "infinity", X: lit}
}

// --- Update routines -------------------------------------------------------

// updateFunc synthesizes the update routine of one nonterminal. The
// routine is a no-op whenever the candidate's cost is not below the cost
// already installed; otherwise it installs the candidate and propagates it
// along every chain rule m : n, cheapest chain first, so that the first
// visit plants the minimal cost and redundant visits are pruned by the
// guard.
func (g *Generator) updateFunc(n string) code.Decl {
	nt := code.Ident("nt")
	x := code.Ident("x")
	field := code.Sel{X: x, Name: fieldName(n)}
	body := []code.Stmt{
		code.If{
			Cond: call(sel(sel(nt, "Cost"), "Ge"), sel(field, "Cost")),
			Then: []code.Stmt{code.Return{X: x}},
		},
		code.Assign{LHS: field, X: nt},
	}
	for _, r := range g.groups.ChainsFrom(n) {
		v := r.Pattern.(burg.Var)
		candidate := code.StructLit{Type: "burgrt.Nt", Elems: []code.KeyedExpr{
			{Key: "Cost", X: call(sel(sel(nt, "Cost"), "Add"), g.chainCost(r))},
			{Key: "Action", X: code.Thunk{Body: append(
				[]code.Stmt{code.Bind{Name: v.Name, X: call(sel(nt, "Action")), Discard: true}},
				code.LowerLet(r.Action)...)}},
		}}
		body = append(body, code.Assign{
			LHS: x,
			X:   call(code.Ident(updateName(r.Lhs)), candidate, x),
		})
	}
	body = append(body, code.Return{X: x})
	return code.FuncDecl{
		Name: updateName(n),
		Params: []code.Param{
			{Name: "nt", Type: "burgrt.Nt"},
			{Name: "x", Type: "nonterm"},
		},
		Result: "nonterm",
		Body:   body,
	}
}

// chainCost renders the own cost of a chain rule. A chain rule's pattern
// has no terminal variables, so a dynamic fragment sees no bindings.
func (g *Generator) chainCost(r *burg.Rule) code.Expr {
	switch c := r.Cost.(type) {
	case burg.StaticCost:
		return call(sel(code.Ident("burgrt"), "NewCost"), code.IntLit(int(c)))
	case burg.DynamicCost:
		return call(sel(code.Ident("burgrt"), "NewCost"), code.Raw(c))
	}
	panic("unknown cost variant")
}

// --- Constructor routines --------------------------------------------------

// conFunc synthesizes the constructor routine of one pattern constructor.
// Per nonterminal the constructor can produce, the candidates of all its
// rules are offered to the choice combinator and the winner is passed to
// the nonterminal's update routine; the update calls compose, seeded with
// the infinity record, in nonterminal order.
func (g *Generator) conFunc(name string, rules []*burg.Rule) code.Decl {
	sig, _ := g.types.Signature(name)
	params := make([]code.Param, len(sig))
	for i, kind := range sig {
		params[i] = code.Param{Name: argName(i), Type: paramType(kind)}
	}
	x := code.Ident("x")
	body := []code.Stmt{code.Bind{Name: "x", X: code.Ident("infinity")}}
	produced := map[string][]*burg.Rule{}
	for _, r := range rules {
		produced[r.Lhs] = append(produced[r.Lhs], r)
	}
	for _, n := range g.groups.Nonterminals() {
		rs := produced[n]
		if len(rs) == 0 {
			continue
		}
		candidates := make([]code.Expr, len(rs))
		for i, r := range rs {
			candidates[i] = g.candidate(r)
		}
		choice := candidates[0]
		if len(candidates) > 1 {
			choice = call(sel(code.Ident("burgrt"), "Choice"), candidates...)
		}
		body = append(body, code.Assign{
			LHS: x,
			X:   call(code.Ident(updateName(n)), choice, x),
		})
	}
	body = append(body, code.Return{X: x})
	return code.FuncDecl{
		Name:   conName(name),
		Params: params,
		Result: "nonterm",
		Body:   body,
	}
}

// candidate renders one constructor rule as a burgrt.Nt literal. The cost
// sums the rule's own cost, the field costs of nonterminal argument
// positions, and the matches-guard of literal positions. The action thunk
// binds every rule variable — the raw argument for terminal variables,
// the argument's action result for nonterminal variables — before the
// user action runs.
func (g *Generator) candidate(r *burg.Rule) code.Expr {
	con := r.Pattern.(burg.Con)
	cost := g.ruleCost(r, con)
	var binds []code.Stmt
	for i, arg := range con.Args {
		switch a := arg.(type) {
		case burg.Var:
			if a.Type.IsNonterm() {
				field := code.Sel{X: code.Ident(argName(i)), Name: fieldName(a.Type.TypeName())}
				cost = call(sel(cost, "Add"), sel(field, "Cost"))
				binds = append(binds, code.Bind{
					Name:    a.Name,
					X:       call(sel(field, "Action")),
					Discard: true,
				})
			} else {
				binds = append(binds, code.Bind{Name: a.Name, X: code.Ident(argName(i)), Discard: true})
			}
		case burg.Lit:
			matches := call(sel(code.Ident("burgrt"), "Matches"), litExpr(a.Value), code.Ident(argName(i)))
			cost = call(sel(cost, "Add"), sel(matches, "Cost"))
		}
	}
	return code.StructLit{Type: "burgrt.Nt", Elems: []code.KeyedExpr{
		{Key: "Cost", X: cost},
		{Key: "Action", X: code.Thunk{Body: append(binds, code.LowerLet(r.Action)...)}},
	}}
}

// ruleCost renders the own cost of a constructor rule. A dynamic cost
// fragment is evaluated in scope of the terminal variables at the top
// level of the rule's pattern only; nested variables are not visible to
// cost expressions.
func (g *Generator) ruleCost(r *burg.Rule, con burg.Con) code.Expr {
	switch c := r.Cost.(type) {
	case burg.StaticCost:
		return call(sel(code.Ident("burgrt"), "NewCost"), code.IntLit(int(c)))
	case burg.DynamicCost:
		var binds []code.Stmt
		for i, arg := range con.Args {
			if v, ok := arg.(burg.Var); ok && !v.Type.IsNonterm() {
				binds = append(binds, code.Bind{Name: v.Name, X: code.Ident(argName(i)), Discard: true})
			}
		}
		iife := code.IIFE{Result: "int", Body: append(binds, code.Return{X: code.Raw(c)})}
		return call(sel(code.Ident("burgrt"), "NewCost"), iife)
	}
	panic("unknown cost variant")
}

// --- Helpers ---------------------------------------------------------------

func updateName(n string) string {
	return "update_" + mangle(n)
}

func conName(c string) string {
	return "con" + mangle(c)
}

func fieldName(n string) string {
	return mangle(n)
}

func argName(i int) string {
	return "arg" + strconv.Itoa(i)
}

func paramType(kind typer.ArgKind) string {
	switch k := kind.(type) {
	case typer.Poly:
		return "nonterm"
	case typer.Mono:
		switch string(k) {
		case "int":
			return "int"
		case "string":
			return "string"
		case "char":
			return "rune"
		}
		return "interface{}"
	}
	return "interface{}"
}

func litExpr(l burg.Literal) code.Expr {
	switch v := l.(type) {
	case burg.Int:
		return code.IntLit(int(v))
	case burg.Str:
		return code.StringLit(string(v))
	case burg.Char:
		return code.CharLit(rune(v))
	}
	panic("unknown literal variant")
}

func sel(x code.Expr, name string) code.Expr {
	return code.Sel{X: x, Name: name}
}

func call(fun code.Expr, args ...code.Expr) code.Expr {
	return code.Call{Fun: fun, Args: args}
}
