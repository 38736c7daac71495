package main

import (
	"flag"
	"io/ioutil"
	"os"

	"github.com/pterm/pterm"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"

	"github.com/npillmayer/gburg/burg"
	"github.com/npillmayer/gburg/burg/normal"
	"github.com/npillmayer/gburg/burg/typer"
	"github.com/npillmayer/gburg/codegen"
	"github.com/npillmayer/gburg/parser"
	"github.com/npillmayer/gburg/twelf"
)

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

const version = "0.2"

// trace keys of all module packages, for the -trace flag
var traceKeys = []string{
	"gburg.rules", "gburg.normal", "gburg.typer",
	"gburg.scanner", "gburg.parser", "gburg.codegen",
}

// main() runs the pipeline on a specification file and writes the
// generated matching engine to stdout:
//
//    gburg [-norm|-twelf|-version] [-trace level] specfile
//
// -norm dumps the normalised rules instead of generating, -twelf emits
// an independent coverage-check file. With -i, gburg starts an
// interactive rule sandbox (see repl.go). Diagnostics go to stderr; on
// failure partial output may have been written and should be discarded
// by the caller.
func main() {
	initDisplay()
	gtrace.SyntaxTracer = gologadapter.New()
	dumpNorm := flag.Bool("norm", false, "dump the normalised rules instead of generating code")
	dumpTwelf := flag.Bool("twelf", false, "emit an independent coverage-check file")
	showVersion := flag.Bool("version", false, "print version and exit")
	interactive := flag.Bool("i", false, "start an interactive rule sandbox")
	tlevel := flag.String("trace", "Error", "Trace level [Debug|Info|Error]")
	flag.Parse()
	for _, key := range traceKeys {
		tracing.Select(key).SetTraceLevel(tracing.TraceLevelFromString(*tlevel))
	}
	if *showVersion {
		pterm.Info.Println("gburg " + version)
		return
	}
	if *interactive {
		repl()
		return
	}
	if flag.NArg() != 1 {
		pterm.Error.Println("usage: gburg [-norm|-twelf|-version|-i] [-trace level] specfile")
		os.Exit(1)
	}
	filename := flag.Arg(0)
	src, err := ioutil.ReadFile(filename)
	if err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(1)
	}
	spec, err := parser.Parse(filename, string(src))
	if err != nil {
		fail(err)
	}
	norm, err := normal.Spec(spec)
	if err != nil {
		fail(err)
	}
	types, err := typer.Infer(norm.Rules)
	if err != nil {
		fail(err)
	}
	switch {
	case *dumpNorm:
		for _, r := range norm.Rules {
			pterm.Println(r.String())
		}
	case *dumpTwelf:
		err = twelf.Emit(norm, types, os.Stdout)
	default:
		err = codegen.Generate(norm, types, os.Stdout)
	}
	if err != nil {
		fail(err)
	}
}

func fail(err error) {
	if e, ok := err.(*burg.Error); ok {
		pterm.Error.Println(e.Error())
	} else {
		pterm.Error.Println(err.Error())
	}
	os.Exit(2)
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}
