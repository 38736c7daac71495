/*
Package codegen emits the dynamic-programming matcher for a normalised
rule specification.

The grouper partitions rules into chain rules and constructor rules and
fixes the order of nonterminals. The generator then synthesizes, as an
abstract code tree (package code), a closed matching engine: a record
type with one field per nonterminal, an initial maximally-expensive
record, one update routine per nonterminal propagating chain rules to a
minimum-cost fixpoint, and one constructor routine per pattern
constructor. Clients build their subject tree bottom-up by calling the
constructor routines; every call returns the record of cheapest covers
per nonterminal.

Given identical inputs, emission is byte-identical.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package codegen

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'gburg.codegen'.
func tracer() tracing.Trace {
	return tracing.Select("gburg.codegen")
}
