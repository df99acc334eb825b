// Package qt implements the QuickTime atom-tree reader and the payload
// decoders needed to extract per-track metadata.
package qt

// Directive tells the reader what to do with a recognized leaf atom's
// payload.
type Directive int

const (
	// Discard consumes the payload without keeping it.
	Discard Directive = iota
	// Capture stores the payload verbatim on the node.
	Capture
)

// Rule is one node of the grammar table: either a leaf directive or a table
// of child rules. A non-nil Children map marks a container rule; the
// Directive is only meaningful on leaves.
//
// Classic atoms carry no child count in their header, so the parser needs
// the grammar to know which atoms to descend into and which to treat as
// flat payloads. Types absent from a table are opaque: consumed, not
// descended into.
type Rule struct {
	Directive Directive
	Children  map[string]Rule
}

// Leaf returns a leaf rule with the given directive.
func Leaf(d Directive) Rule {
	return Rule{Directive: d}
}

// Container returns a container rule with the given child table.
func Container(children map[string]Rule) Rule {
	return Rule{Children: children}
}

// IsContainer reports whether the rule describes a container atom.
func (r Rule) IsContainer() bool {
	return r.Children != nil
}

// DefaultGrammar describes every atom type the parser recognizes. It is not
// exhaustive: it only reaches deep enough to capture the track header,
// handler reference and sound sample description atoms, and an atom with no
// children here may still have children in the file (they are skipped with
// the payload). Never mutated after init.
var DefaultGrammar = map[string]Rule{
	"ftyp": Leaf(Discard),
	"moov": Container(map[string]Rule{
		"trak": Container(map[string]Rule{
			"tkhd": Leaf(Capture),
			"mdia": Container(map[string]Rule{
				"mdhd": Leaf(Discard),
				"hdlr": Leaf(Capture),
				"minf": Container(map[string]Rule{
					"vmhd": Leaf(Discard),
					"dinf": Container(map[string]Rule{
						"dref": Leaf(Discard),
					}),
					"stbl": Container(map[string]Rule{
						"stsd": Leaf(Capture),
						"stts": Leaf(Discard),
						"stsc": Leaf(Discard),
						"stsz": Leaf(Discard),
						"stco": Leaf(Discard),
					}),
				}),
			}),
		}),
		"mvhd": Leaf(Discard),
		"iods": Leaf(Discard),
		"udta": Leaf(Discard),
		"clip": Leaf(Discard),
		"ctab": Leaf(Discard),
	}),
	"mdat": Leaf(Discard),
	"free": Leaf(Discard),
	"skip": Leaf(Discard),
	"wide": Leaf(Discard),
	"pnot": Leaf(Discard),
}
