// Package types holds the shared value types of the qtmeta library: the
// atom tree node, per-track metadata records, and the error types surfaced
// through the public API.
package types

import (
	"fmt"
	"io"
	"strings"
)

// Atom is one node of a parsed QuickTime atom tree.
//
// Size is the total declared size of the atom in bytes, header included.
// For extended-dialect atoms the size excludes the 12-byte all-zero
// container header that precedes them in the stream.
//
// Data is non-nil only when the grammar directed the parser to capture the
// payload; container and discarded atoms carry no data.
//
// ID is set only for extended-dialect atoms, which carry a numeric id in
// their header.
type Atom struct {
	Size     uint64
	Type     string
	Data     []byte
	ID       *uint32
	Children []*Atom
}

// String returns an indented textual rendering of the atom and its
// descendants, one atom per line.
func (a *Atom) String() string {
	var b strings.Builder
	a.write(&b, 0)
	return b.String()
}

func (a *Atom) write(b *strings.Builder, depth int) {
	if depth > 0 {
		b.WriteByte('\n')
	}
	for i := 0; i < depth; i++ {
		b.WriteString("  ")
	}
	fmt.Fprintf(b, "- %s (%d)", a.Type, a.Size)
	for _, child := range a.Children {
		child.write(b, depth+1)
	}
}

// Dump writes the textual tree rendering of a whole forest to w, one
// top-level atom per block. It is a diagnostic aid, not a stable format.
func Dump(w io.Writer, forest []*Atom) error {
	for _, a := range forest {
		if _, err := fmt.Fprintln(w, a.String()); err != nil {
			return err
		}
	}
	return nil
}
