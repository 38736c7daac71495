package main

import (
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/pterm/pterm"

	"github.com/npillmayer/gburg/burg"
	"github.com/npillmayer/gburg/burg/normal"
	"github.com/npillmayer/gburg/burg/typer"
	"github.com/npillmayer/gburg/codegen"
	"github.com/npillmayer/gburg/parser"
)

// The interactive rule sandbox. Users enter declarations and rules line
// by line and inspect what the pipeline makes of them, without a
// write-compile cycle. It is intended for experiments during the early
// phase of instruction-selector development.
//
//    gburg> e : ADD(x:e, CONST(0)) [1] {: x :}
//    gburg> :norm
//    gburg> :types
//    gburg> :tree
//    gburg> :gen

// sandbox collects the lines entered so far.
type sandbox struct {
	decls []string // %term/%head/%tail/%type lines
	rules []string // rule lines
	repl  *readline.Instance
}

// repl starts interactive mode.
func repl() {
	pterm.Info.Println("Welcome to the gburg sandbox")
	pterm.Info.Println("Enter rules; :help lists commands; quit with <ctrl>D")
	rl, err := readline.New("gburg> ")
	if err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(3)
	}
	box := &sandbox{repl: rl}
	for {
		line, err := box.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		if strings.HasPrefix(line, ":") {
			if box.command(line) {
				break
			}
			continue
		}
		box.add(line)
	}
	println("Good bye!")
}

// add records a declaration or rule line, after a syntax check of the
// whole accumulated specification.
func (box *sandbox) add(line string) {
	decl := strings.HasPrefix(line, "%")
	if decl {
		box.decls = append(box.decls, line)
	} else {
		box.rules = append(box.rules, line)
	}
	if _, err := box.parse(); err != nil {
		pterm.Error.Println(err.Error())
		if decl {
			box.decls = box.decls[:len(box.decls)-1]
		} else {
			box.rules = box.rules[:len(box.rules)-1]
		}
	}
}

func (box *sandbox) parse() (*burg.Spec, error) {
	src := strings.Join(box.decls, "\n") + "\n%%\n" + strings.Join(box.rules, "\n") + "\n"
	return parser.Parse("<sandbox>", src)
}

// command executes a sandbox command; it reports whether to quit.
func (box *sandbox) command(line string) bool {
	switch cmd := strings.Fields(line)[0]; cmd {
	case ":quit", ":q":
		return true
	case ":help":
		pterm.Println(":list   show the specification entered so far")
		pterm.Println(":norm   dump the normalised rules")
		pterm.Println(":types  dump the inferred constructor signatures")
		pterm.Println(":tree   render the pattern of the last rule")
		pterm.Println(":gen    generate the matching engine")
		pterm.Println(":reset  discard all input")
		pterm.Println(":quit   leave the sandbox")
	case ":list":
		for _, l := range box.decls {
			pterm.Println(l)
		}
		for _, l := range box.rules {
			pterm.Println(l)
		}
	case ":reset":
		box.decls = box.decls[:0]
		box.rules = box.rules[:0]
	case ":norm":
		if norm, ok := box.normalised(); ok {
			for _, r := range norm.Rules {
				pterm.Println(r.String())
			}
		}
	case ":types":
		norm, ok := box.normalised()
		if !ok {
			break
		}
		types, err := typer.Infer(norm.Rules)
		if err != nil {
			pterm.Error.Println(err.Error())
			break
		}
		types.Each(func(name string, sig typer.Signature) {
			pterm.Println(name + " ↦ " + sig.String())
		})
	case ":tree":
		spec, err := box.parse()
		if err != nil || len(spec.Rules) == 0 {
			pterm.Error.Println("no rules yet")
			break
		}
		r := spec.Rules[len(spec.Rules)-1]
		pterm.Println(r.Lhs)
		pterm.DefaultTree.WithRoot(patternTree(r.Pattern)).Render()
	case ":gen":
		norm, ok := box.normalised()
		if !ok {
			break
		}
		types, err := typer.Infer(norm.Rules)
		if err != nil {
			pterm.Error.Println(err.Error())
			break
		}
		if err := codegen.Generate(norm, types, os.Stdout); err != nil {
			pterm.Error.Println(err.Error())
		}
	default:
		pterm.Error.Println("unknown command " + cmd + ", try :help")
	}
	return false
}

func (box *sandbox) normalised() (*burg.Spec, bool) {
	spec, err := box.parse()
	if err != nil {
		pterm.Error.Println(err.Error())
		return nil, false
	}
	norm, err := normal.Spec(spec)
	if err != nil {
		pterm.Error.Println(err.Error())
		return nil, false
	}
	return norm, true
}

// patternTree renders a pattern as a tree on the terminal.
func patternTree(p burg.Pattern) pterm.TreeNode {
	ll := leveledPattern(p, pterm.LeveledList{}, 0)
	return pterm.NewTreeFromLeveledList(ll)
}

func leveledPattern(p burg.Pattern, ll pterm.LeveledList, level int) pterm.LeveledList {
	switch x := p.(type) {
	case burg.Con:
		ll = append(ll, pterm.LeveledListItem{Level: level, Text: x.Name})
		for _, a := range x.Args {
			ll = leveledPattern(a, ll, level+1)
		}
	default:
		ll = append(ll, pterm.LeveledListItem{Level: level, Text: p.String()})
	}
	return ll
}
