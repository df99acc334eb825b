package qt

import (
	"fmt"

	"github.com/simonhull/qtmeta/internal/binary"
	"github.com/simonhull/qtmeta/internal/types"
)

// rootQTType is the only type code allowed on a top-level extended-dialect
// atom.
const rootQTType = "sean"

const (
	// probeLen is the length of the all-zero container header that
	// introduces an extended-dialect atom.
	probeLen = 12
	// classicHeaderLen is the minimum bytes needed to start any atom.
	classicHeaderLen = 8
)

// ReadAtoms reads top-level atoms until the stream has too few bytes left
// to start another header. That boundary is the normal end of input;
// running short anywhere inside an atom is a truncation error. A nil rules
// table means DefaultGrammar.
func ReadAtoms(sr *binary.SafeReader, rules map[string]Rule, strict bool) ([]*types.Atom, error) {
	if rules == nil {
		rules = DefaultGrammar
	}

	r := binary.NewReader(sr, 0)
	var atoms []*types.Atom
	for r.Remaining() >= classicHeaderLen {
		atom, err := readAtom(r, nil, rules, strict)
		if err != nil {
			return nil, err
		}
		atoms = append(atoms, atom)
	}
	return atoms, nil
}

// readAtom reads one atom, classic or extended, leaving the cursor
// immediately past it. The dialect is a purely local, per-atom decision:
// twelve zero bytes introduce the extended dialect, anything else is
// classic (the probe does not move the cursor).
func readAtom(r *binary.Reader, parent *types.Atom, rules map[string]Rule, strict bool) (*types.Atom, error) {
	if probe, err := r.Peek(probeLen, "dialect probe"); err == nil && allZero(probe) {
		r.Skip(probeLen)
		return readQTAtom(r, parent, rules, strict)
	}
	// Fewer than probeLen bytes left cannot be an extended header; fall
	// through and let the classic header read report any real shortfall.
	return readClassicAtom(r, parent, rules, strict)
}

func allZero(b []byte) bool {
	for _, v := range b {
		if v != 0 {
			return false
		}
	}
	return true
}

// readClassicAtom reads an atom framed with the plain size+type header.
// The cursor is positioned at the size field.
func readClassicAtom(r *binary.Reader, parent *types.Atom, rules map[string]Rule, strict bool) (*types.Atom, error) {
	start := r.Offset()

	size32, err := binary.ReadValue[uint32](r, "atom size")
	if err != nil {
		return nil, err
	}
	typ, err := r.ReadString(4, "atom type")
	if err != nil {
		return nil, err
	}

	size := uint64(size32)
	switch size32 {
	case 0:
		// Legal only at the top level: payload runs to end of file.
		if parent != nil {
			return nil, &types.StructureError{
				Path:   r.Path(),
				Offset: start,
				Reason: fmt.Sprintf("atom %q declares size 0 below the top level", typ),
			}
		}
		size = uint64(r.Size() - start)
	case 1:
		// True size follows in an 8-byte extended field.
		size, err = binary.ReadValue[uint64](r, "extended atom size")
		if err != nil {
			return nil, err
		}
	}

	headerLen := uint64(r.Offset() - start)
	if size < headerLen {
		return nil, &types.StructureError{
			Path:   r.Path(),
			Offset: start,
			Reason: fmt.Sprintf("atom %q declares size %d, smaller than its %d-byte header", typ, size, headerLen),
		}
	}
	payloadLen := size - headerLen

	atom := &types.Atom{Size: size, Type: typ}

	rule, known := rules[typ]
	if !known {
		if parent == nil && strict {
			return nil, &types.UnknownAtomError{Path: r.Path(), Type: typ, Offset: start}
		}
		// Opaque: consume the payload, keep nothing.
		if err := r.Discard(int64(payloadLen), typ+" payload"); err != nil {
			return nil, err
		}
		return atom, nil
	}

	if rule.IsContainer() {
		// Classic containers declare no child count; read children until
		// their cumulative declared size fills the payload exactly.
		var consumed uint64
		for consumed < payloadLen {
			child, err := readAtom(r, atom, rule.Children, strict)
			if err != nil {
				return nil, err
			}
			atom.Children = append(atom.Children, child)
			consumed += child.Size
		}
		if consumed != payloadLen {
			return nil, &types.StructureError{
				Path:   r.Path(),
				Offset: start,
				Reason: fmt.Sprintf("children of %q consume %d bytes, payload declares %d", typ, consumed, payloadLen),
			}
		}
		return atom, nil
	}

	switch rule.Directive {
	case Capture:
		data, err := r.ReadBytes(int(payloadLen), typ+" payload")
		if err != nil {
			return nil, err
		}
		atom.Data = data
	case Discard:
		if err := r.Discard(int64(payloadLen), typ+" payload"); err != nil {
			return nil, err
		}
	}
	return atom, nil
}

// readQTAtom reads an atom framed with the extended-dialect header. The
// 12-byte zero container header has already been consumed; the declared
// size does not include it.
func readQTAtom(r *binary.Reader, parent *types.Atom, rules map[string]Rule, strict bool) (*types.Atom, error) {
	start := r.Offset()

	size32, err := binary.ReadValue[uint32](r, "atom size")
	if err != nil {
		return nil, err
	}
	typ, err := r.ReadString(4, "atom type")
	if err != nil {
		return nil, err
	}
	if parent == nil && typ != rootQTType {
		return nil, &types.StructureError{
			Path:   r.Path(),
			Offset: start,
			Reason: fmt.Sprintf("root extended atom has type %q, want %q", typ, rootQTType),
		}
	}

	// Rest of the extended header: id, 2 reserved, child count, 4 reserved.
	id, err := binary.ReadValue[uint32](r, "atom id")
	if err != nil {
		return nil, err
	}
	if err := r.Discard(2, "reserved"); err != nil {
		return nil, err
	}
	childCount, err := binary.ReadValue[uint16](r, "child count")
	if err != nil {
		return nil, err
	}
	if err := r.Discard(4, "reserved"); err != nil {
		return nil, err
	}

	size := uint64(size32)
	headerLen := uint64(r.Offset() - start)
	if size < headerLen {
		return nil, &types.StructureError{
			Path:   r.Path(),
			Offset: start,
			Reason: fmt.Sprintf("atom %q declares size %d, smaller than its %d-byte header", typ, size, headerLen),
		}
	}
	payloadLen := size - headerLen

	atom := &types.Atom{Size: size, Type: typ, ID: &id}

	if typ == rootQTType {
		// The sentinel container does not consume a grammar level.
		for i := 0; i < int(childCount); i++ {
			child, err := readAtom(r, atom, rules, strict)
			if err != nil {
				return nil, err
			}
			atom.Children = append(atom.Children, child)
		}
		return atom, checkConsumed(r, atom, start, size)
	}

	rule, known := rules[typ]
	if !known {
		// Below the top level unknown atoms are always opaque; the size
		// covers any children, so skipping the payload skips them too.
		if err := r.Discard(int64(payloadLen), typ+" payload"); err != nil {
			return nil, err
		}
		return atom, checkConsumed(r, atom, start, size)
	}

	if rule.IsContainer() {
		if childCount == 0 {
			return nil, &types.StructureError{
				Path:   r.Path(),
				Offset: start,
				Reason: fmt.Sprintf("container atom %q declares no children", typ),
			}
		}
		// Extended containers are count-driven, not size-driven.
		for i := 0; i < int(childCount); i++ {
			child, err := readAtom(r, atom, rule.Children, strict)
			if err != nil {
				return nil, err
			}
			atom.Children = append(atom.Children, child)
		}
		return atom, checkConsumed(r, atom, start, size)
	}

	if childCount != 0 {
		return nil, &types.StructureError{
			Path:   r.Path(),
			Offset: start,
			Reason: fmt.Sprintf("leaf atom %q declares %d children", typ, childCount),
		}
	}

	switch rule.Directive {
	case Capture:
		data, err := r.ReadBytes(int(payloadLen), typ+" payload")
		if err != nil {
			return nil, err
		}
		atom.Data = data
	case Discard:
		if err := r.Discard(int64(payloadLen), typ+" payload"); err != nil {
			return nil, err
		}
	}
	return atom, checkConsumed(r, atom, start, size)
}

// checkConsumed enforces the extended-dialect invariant that header,
// payload and descendants together consume exactly the declared size.
func checkConsumed(r *binary.Reader, atom *types.Atom, start int64, size uint64) error {
	if consumed := uint64(r.Offset() - start); consumed != size {
		return &types.StructureError{
			Path:   r.Path(),
			Offset: start,
			Reason: fmt.Sprintf("atom %q consumed %d bytes, declared size is %d", atom.Type, consumed, size),
		}
	}
	return nil
}
