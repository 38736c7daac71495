/*
Package gburg is a code-generator generator in the BURG tradition.

gburg reads a declarative specification of cost-tagged tree-rewriting
rules and emits Go source implementing a bottom-up dynamic-programming
tree matcher. The emitted matcher covers any subject tree with the
minimum-cost set of rules and hands the client the action thunks of the
winning cover. Package structure is as follows:

■ burg: Package burg holds the data model of a rule specification —
literals, patterns, rules — together with pattern utilities and the
structured error type shared by all pipeline stages.

■ burg/normal: Package normal flattens nested constructor patterns into
rules over auxiliary nonterminals.

■ burg/typer: Package typer infers one argument signature per pattern
constructor and rejects inconsistent uses.

■ scanner, parser: the lexer and parser for the specification language.

■ codegen: Package codegen groups the normalised rules and synthesizes
the dynamic-programming engine as an abstract code tree, then prints it.

■ burgrt: Package burgrt is the small runtime library emitted code
links against.

The base package contains data types which are used throughout all the
other packages.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package gburg
