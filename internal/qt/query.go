package qt

import (
	"slices"

	"github.com/simonhull/qtmeta/internal/types"
)

// FindByType returns every atom in the forest whose type is one of wanted,
// in pre-order depth-first order. A matching atom is still descended into,
// so same-named atoms nested inside one another are all found.
func FindByType(forest []*types.Atom, wanted ...string) []*types.Atom {
	var found []*types.Atom
	for _, atom := range forest {
		if slices.Contains(wanted, atom.Type) {
			found = append(found, atom)
		}
		found = append(found, FindByType(atom.Children, wanted...)...)
	}
	return found
}
