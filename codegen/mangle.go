package codegen

// The identifier mangler renames nonterminal and constructor names that
// would clash with keywords or with names the generator itself emits.
// Auxiliary names beginning with an underscore pass through unchanged, so
// that grouping order and record field names stay consistent.

var goKeywords = map[string]bool{
	"break": true, "case": true, "chan": true, "const": true, "continue": true,
	"default": true, "defer": true, "else": true, "fallthrough": true, "for": true,
	"func": true, "go": true, "goto": true, "if": true, "import": true,
	"interface": true, "map": true, "package": true, "range": true, "return": true,
	"select": true, "struct": true, "switch": true, "type": true, "var": true,
}

// reserved are identifiers the emitted engine uses itself.
var reserved = map[string]bool{
	"nonterm": true, "infinity": true, "burgrt": true, "nt": true, "x": true,
	"nil": true, "true": true, "false": true,
}

// mangle makes a specification name safe as (part of) an emitted
// identifier.
func mangle(name string) string {
	if name == "" || name[0] == '_' {
		return name
	}
	if goKeywords[name] || reserved[name] {
		return name + "_"
	}
	return name
}
