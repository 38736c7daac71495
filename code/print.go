package code

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// The printer serialises an abstract code tree to Go source. Output is a
// pure function of the input tree: identical trees print byte-identically.

// Printer writes declarations to an output sink. The zero indent level is
// package level. Write errors abort printing and are reported by Err.
type Printer struct {
	w      io.Writer
	indent int
	err    error
}

// NewPrinter creates a printer on an output sink.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

// Err returns the first write error encountered, if any.
func (p *Printer) Err() error {
	return p.err
}

// Decls prints a sequence of declarations, separated by blank lines.
func (p *Printer) Decls(decls []Decl) error {
	for i, d := range decls {
		if i > 0 {
			p.print("\n")
		}
		p.Decl(d)
	}
	return p.err
}

// Decl prints a single declaration.
func (p *Printer) Decl(d Decl) {
	switch decl := d.(type) {
	case RawDecl:
		p.print(string(decl))
		if !strings.HasSuffix(string(decl), "\n") {
			p.print("\n")
		}
	case CommentDecl:
		p.line("// " + string(decl))
	case StructDecl:
		p.line("type " + decl.Name + " struct {")
		p.indent++
		width := 0
		for _, f := range decl.Fields {
			if len(f.Name) > width {
				width = len(f.Name)
			}
		}
		for _, f := range decl.Fields {
			s := f.Name + strings.Repeat(" ", width-len(f.Name)+1) + f.Type
			if f.Comment != "" {
				s += " // " + f.Comment
			}
			p.line(s)
		}
		p.indent--
		p.line("}")
	case VarDecl:
		p.begin("var " + decl.Name + " = ")
		p.expr(decl.X)
		p.end()
	case FuncDecl:
		params := make([]string, len(decl.Params))
		for i, prm := range decl.Params {
			params[i] = prm.Name + " " + prm.Type
		}
		head := "func " + decl.Name + "(" + strings.Join(params, ", ") + ")"
		if decl.Result != "" {
			head += " " + decl.Result
		}
		p.line(head + " {")
		p.indent++
		p.stmts(decl.Body)
		p.indent--
		p.line("}")
	default:
		p.err = fmt.Errorf("printer: unknown declaration %T", d)
	}
}

func (p *Printer) stmts(body []Stmt) {
	for _, s := range body {
		p.stmt(s)
	}
}

func (p *Printer) stmt(s Stmt) {
	switch stmt := s.(type) {
	case Bind:
		p.begin(stmt.Name + " := ")
		p.expr(stmt.X)
		p.end()
		if stmt.Discard {
			p.line("_ = " + stmt.Name)
		}
	case Assign:
		p.begin("")
		p.expr(stmt.LHS)
		p.print(" = ")
		p.expr(stmt.X)
		p.end()
	case If:
		p.begin("if ")
		p.expr(stmt.Cond)
		p.print(" {")
		p.end()
		p.indent++
		p.stmts(stmt.Then)
		p.indent--
		p.line("}")
	case Return:
		p.begin("return ")
		p.expr(stmt.X)
		p.end()
	default:
		p.err = fmt.Errorf("printer: unknown statement %T", s)
	}
}

func (p *Printer) expr(e Expr) {
	switch x := e.(type) {
	case Raw:
		p.print("(" + strings.TrimSpace(string(x)) + ")")
	case Ident:
		p.print(string(x))
	case IntLit:
		p.print(strconv.Itoa(int(x)))
	case StringLit:
		p.print(strconv.Quote(string(x)))
	case CharLit:
		p.print(strconv.QuoteRune(rune(x)))
	case Sel:
		p.expr(x.X)
		p.print("." + x.Name)
	case Call:
		p.expr(x.Fun)
		p.print("(")
		for i, a := range x.Args {
			if i > 0 {
				p.print(", ")
			}
			p.expr(a)
		}
		p.print(")")
	case Binary:
		p.expr(x.X)
		p.print(" " + x.Op + " ")
		p.expr(x.Y)
	case Index:
		p.expr(x.X)
		p.print("[")
		p.expr(x.I)
		p.print("]")
	case Assert:
		p.expr(x.X)
		p.print(".(" + x.Type + ")")
	case Thunk:
		p.print("func() interface{} {")
		p.end()
		p.indent++
		p.stmts(x.Body)
		p.indent--
		p.begin("}")
	case IIFE:
		p.print("func() " + x.Result + " {")
		p.end()
		p.indent++
		p.stmts(x.Body)
		p.indent--
		p.begin("}()")
	case StructLit:
		p.print(x.Type + "{")
		p.end()
		p.indent++
		for _, el := range x.Elems {
			p.begin(el.Key + ": ")
			p.expr(el.X)
			p.print(",")
			p.end()
		}
		p.indent--
		p.begin("}")
	case Tuple:
		// a tuple of length one is its element; the empty tuple is nil
		switch len(x) {
		case 0:
			p.print("nil")
		case 1:
			p.expr(x[0])
		default:
			p.print("[]interface{}{")
			for i, el := range x {
				if i > 0 {
					p.print(", ")
				}
				p.expr(el)
			}
			p.print("}")
		}
	case Let:
		// Lets inside thunks are lowered by the generator; a Let in
		// expression position prints as an invoked function literal.
		p.print("func() interface{} {")
		p.end()
		p.indent++
		p.stmts(LowerLet(x))
		p.indent--
		p.begin("}()")
	default:
		p.err = fmt.Errorf("printer: unknown expression %T", e)
	}
}

// LowerLet flattens a (possibly nested) Let chain into binding statements
// followed by a return of the innermost body. Tuple-destructuring binds
// positions through indexed type assertions.
func LowerLet(e Expr) []Stmt {
	var body []Stmt
	for {
		let, ok := e.(Let)
		if !ok {
			return append(body, Return{X: e})
		}
		switch len(let.Names) {
		case 0:
			// sub-match without free variables, nothing to bind
		case 1:
			body = append(body, Bind{Name: let.Names[0], X: let.X, Discard: true})
		default:
			for i, n := range let.Names {
				body = append(body, Bind{
					Name:    n,
					X:       Index{X: Assert{X: let.X, Type: "[]interface{}"}, I: IntLit(i)},
					Discard: true,
				})
			}
		}
		e = let.Body
	}
}

// --- Low-level output ------------------------------------------------------

func (p *Printer) line(s string) {
	p.begin(s)
	p.end()
}

func (p *Printer) begin(s string) {
	p.print(strings.Repeat("\t", p.indent))
	p.print(s)
}

func (p *Printer) end() {
	p.print("\n")
}

func (p *Printer) print(s string) {
	if p.err != nil {
		return
	}
	_, p.err = io.WriteString(p.w, s)
}
