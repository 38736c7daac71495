/*
Package burg implements the data model of BURG rule specifications.

A specification is a list of tree-rewriting rules. Every rule maps a
pattern over a subject tree to a user-supplied action and carries a cost.
Patterns are recursive trees of literals, typed variables and constructor
nodes. The pipeline stages (normalisation, constructor typing, code
generation) all operate on the types of this package and report failures
through its structured error type.

Pattern utilities provided here are shared by all stages: a structural
equivalence that ignores variable names, a total order consistent with it,
a depth-first fold over constructor occurrences, and free-variable
extraction.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package burg

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'gburg.rules'.
func tracer() tracing.Trace {
	return tracing.Select("gburg.rules")
}
