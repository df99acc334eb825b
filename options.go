package qtmeta

import "github.com/simonhull/qtmeta/internal/qt"

// Option configures parsing behavior.
//
// Options use the functional options pattern:
//
//	atoms, err := qtmeta.Parse(r, size, path,
//	    qtmeta.WithStrictParsing(),
//	)
type Option func(*parseOptions)

// parseOptions holds configuration for a parse.
type parseOptions struct {
	strict  bool               // fail on unknown top-level atoms
	grammar map[string]qt.Rule // nil means the built-in grammar
}

// defaultOptions returns the default configuration.
func defaultOptions() *parseOptions {
	return &parseOptions{
		strict:  false,
		grammar: nil,
	}
}

// WithStrictParsing makes an unrecognized top-level atom type a fatal
// UnknownAtomError.
//
// By default unrecognized atoms are treated as opaque: their payload is
// consumed and nothing is kept. Strict parsing only governs the top level;
// unrecognized atoms below the top level are always opaque, since the
// grammar is deliberately not exhaustive there.
func WithStrictParsing() Option {
	return func(o *parseOptions) {
		o.strict = true
	}
}

// WithGrammar parses with a custom grammar table instead of the built-in
// one. Use DefaultGrammar() as a starting point:
//
//	g := qtmeta.DefaultGrammar()
//	g["uuid"] = qtmeta.Leaf(qtmeta.Capture)
//	atoms, err := qtmeta.Parse(r, size, path, qtmeta.WithGrammar(g))
func WithGrammar(grammar map[string]Rule) Option {
	return func(o *parseOptions) {
		o.grammar = grammar
	}
}
