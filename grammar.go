package qtmeta

import "github.com/simonhull/qtmeta/internal/qt"

// Rule is an alias to qt.Rule, one node of the parsing grammar: either a
// leaf directive or a table of child rules.
type Rule = qt.Rule

// Directive is an alias to qt.Directive.
type Directive = qt.Directive

// Leaf directives for grammar rules.
const (
	// Discard consumes a recognized atom's payload without keeping it.
	Discard = qt.Discard
	// Capture stores a recognized atom's payload on the node.
	Capture = qt.Capture
)

// Leaf returns a leaf rule with the given directive.
func Leaf(d Directive) Rule {
	return qt.Leaf(d)
}

// Container returns a container rule with the given child table.
func Container(children map[string]Rule) Rule {
	return qt.Container(children)
}

// DefaultGrammar returns a copy of the top level of the built-in grammar,
// suitable as a starting point for WithGrammar. The nested tables are
// shared and must not be mutated.
func DefaultGrammar() map[string]Rule {
	g := make(map[string]Rule, len(qt.DefaultGrammar))
	for k, v := range qt.DefaultGrammar {
		g[k] = v
	}
	return g
}
