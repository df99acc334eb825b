package qt

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/simonhull/qtmeta/internal/types"
)

func TestReadAtoms_ClassicSequence(t *testing.T) {
	data := bytes.Join([][]byte{
		classicAtom("ftyp", []byte("qt  \x00\x00\x02\x00")),
		classicAtom("mdat", make([]byte, 100)),
		classicAtom("free"),
	}, nil)

	atoms, err := parseBytes(data, false)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	if len(atoms) != 3 {
		t.Fatalf("expected 3 atoms, got %d", len(atoms))
	}

	wantTypes := []string{"ftyp", "mdat", "free"}
	wantSizes := []uint64{16, 108, 8}
	for i, atom := range atoms {
		if atom.Type != wantTypes[i] {
			t.Errorf("atom %d: type %q, want %q", i, atom.Type, wantTypes[i])
		}
		if atom.Size != wantSizes[i] {
			t.Errorf("atom %d: size %d, want %d", i, atom.Size, wantSizes[i])
		}
		if atom.Data != nil {
			t.Errorf("atom %d: discarded atom carries data", i)
		}
	}
}

func TestReadAtoms_CursorAdvance(t *testing.T) {
	// Each atom's declared size must equal the bytes consumed for it: two
	// back-to-back atoms parse cleanly only if the cursor lands exactly on
	// the second header.
	first := classicAtom("free", make([]byte, 25))
	second := classicAtom("skip", make([]byte, 3))
	atoms, err := parseBytes(append(first, second...), false)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(atoms) != 2 {
		t.Fatalf("expected 2 atoms, got %d", len(atoms))
	}
	if atoms[0].Size != uint64(len(first)) || atoms[1].Size != uint64(len(second)) {
		t.Errorf("sizes %d/%d, want %d/%d", atoms[0].Size, atoms[1].Size, len(first), len(second))
	}
}

func TestReadAtoms_RoundTrip(t *testing.T) {
	data := classicAtom("moov",
		videoTrak(1, 0x02300000, 0x01400000),
		audioTrak(2, 0xAC440000),
		classicAtom("mvhd", make([]byte, 100)),
	)

	atoms, err := parseBytes(data, false)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(atoms) != 1 {
		t.Fatalf("expected 1 top-level atom, got %d", len(atoms))
	}

	moov := atoms[0]
	if moov.Type != "moov" || moov.Size != uint64(len(data)) {
		t.Fatalf("moov: type %q size %d, want moov/%d", moov.Type, moov.Size, len(data))
	}
	if len(moov.Children) != 3 {
		t.Fatalf("moov: %d children, want 3", len(moov.Children))
	}

	for i, trak := range moov.Children[:2] {
		if trak.Type != "trak" {
			t.Errorf("child %d: type %q, want trak", i, trak.Type)
		}
	}
	if moov.Children[2].Type != "mvhd" {
		t.Errorf("child 2: type %q, want mvhd", moov.Children[2].Type)
	}

	// Captured leaves carry data, discarded ones don't.
	tkhd := FindByType(atoms, "tkhd")
	if len(tkhd) != 2 {
		t.Fatalf("expected 2 tkhd atoms, got %d", len(tkhd))
	}
	if len(tkhd[0].Data) != 84 {
		t.Errorf("tkhd data length %d, want 84", len(tkhd[0].Data))
	}
	mvhd := FindByType(atoms, "mvhd")
	if len(mvhd) != 1 || mvhd[0].Data != nil {
		t.Error("mvhd should be discarded without data")
	}
}

func TestReadAtoms_UnknownTopLevel(t *testing.T) {
	data := bytes.Join([][]byte{
		classicAtom("junk", make([]byte, 10)),
		classicAtom("free"),
	}, nil)

	// Non-strict: opaque, parsing continues.
	atoms, err := parseBytes(data, false)
	if err != nil {
		t.Fatalf("non-strict parse failed: %v", err)
	}
	if len(atoms) != 2 {
		t.Fatalf("expected 2 atoms, got %d", len(atoms))
	}
	if atoms[0].Data != nil || len(atoms[0].Children) != 0 {
		t.Error("opaque atom should have neither data nor children")
	}

	// Strict: fatal.
	_, err = parseBytes(data, true)
	var unknownErr *types.UnknownAtomError
	if !errors.As(err, &unknownErr) {
		t.Fatalf("expected UnknownAtomError, got %T: %v", err, err)
	}
	if unknownErr.Type != "junk" {
		t.Errorf("error names type %q, want junk", unknownErr.Type)
	}
}

func TestReadAtoms_UnknownNestedAlwaysOpaque(t *testing.T) {
	// "junk" is not in moov's table; it must be skipped even under strict
	// parsing, which only governs the top level.
	data := classicAtom("moov",
		classicAtom("junk", make([]byte, 12)),
		classicAtom("mvhd"),
	)

	for _, strict := range []bool{false, true} {
		atoms, err := parseBytes(data, strict)
		if err != nil {
			t.Fatalf("strict=%v: parse failed: %v", strict, err)
		}
		if len(atoms[0].Children) != 2 {
			t.Fatalf("strict=%v: moov has %d children, want 2", strict, len(atoms[0].Children))
		}
		junk := atoms[0].Children[0]
		if junk.Type != "junk" || junk.Data != nil || len(junk.Children) != 0 {
			t.Errorf("strict=%v: nested unknown atom not opaque: %+v", strict, junk)
		}
	}
}

func TestReadAtoms_SizeZeroRoot(t *testing.T) {
	// A top-level size of 0 means "payload runs to end of file".
	data := make([]byte, 8+50)
	copy(data[4:8], "mdat")

	atoms, err := parseBytes(data, false)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(atoms) != 1 {
		t.Fatalf("expected 1 atom, got %d", len(atoms))
	}
	if atoms[0].Size != uint64(len(data)) {
		t.Errorf("size %d, want %d", atoms[0].Size, len(data))
	}
}

func TestReadAtoms_SizeZeroNestedFatal(t *testing.T) {
	child := make([]byte, 16)
	copy(child[4:8], "free") // size 0 below the top level
	data := classicAtom("moov", child)

	_, err := parseBytes(data, false)
	var structErr *types.StructureError
	if !errors.As(err, &structErr) {
		t.Fatalf("expected StructureError, got %T: %v", err, err)
	}
}

func TestReadAtoms_ExtendedSize(t *testing.T) {
	// size == 1 signals an 8-byte extended size field after the type code.
	payload := make([]byte, 40)
	data := make([]byte, 16+len(payload))
	binary.BigEndian.PutUint32(data[0:4], 1)
	copy(data[4:8], "mdat")
	binary.BigEndian.PutUint64(data[8:16], uint64(len(data)))
	copy(data[16:], payload)

	atoms, err := parseBytes(data, false)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if atoms[0].Size != uint64(len(data)) {
		t.Errorf("size %d, want %d", atoms[0].Size, len(data))
	}
}

func TestReadAtoms_MixedDialects(t *testing.T) {
	// Extended sean containing an extended moov containing an extended trak
	// and a classic trak, with classic atoms at the leaves. Mirrors a tree
	// QuickTime itself can produce.
	mdia := classicAtom("mdia", classicAtom("mdhd", make([]byte, 32)))

	qtTrak := qtAtom("trak", 0, 1, mdia)
	classicTrak := classicAtom("trak", mdia)
	moov := qtAtom("moov", 0, 2, qtTrak, classicTrak)
	sean := qtAtom("sean", 1, 1, moov)

	atoms, err := parseBytes(sean, false)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(atoms) != 1 {
		t.Fatalf("expected 1 root atom, got %d", len(atoms))
	}

	root := atoms[0]
	if root.Type != "sean" {
		t.Fatalf("root type %q, want sean", root.Type)
	}
	if root.ID == nil || *root.ID != 1 {
		t.Errorf("root id %v, want 1", root.ID)
	}

	if len(root.Children) != 1 || root.Children[0].Type != "moov" {
		t.Fatalf("unexpected sean children: %+v", root.Children)
	}
	moovAtom := root.Children[0]
	if moovAtom.ID == nil {
		t.Error("extended moov should carry an id")
	}
	if len(moovAtom.Children) != 2 {
		t.Fatalf("moov has %d children, want 2", len(moovAtom.Children))
	}

	extended, classic := moovAtom.Children[0], moovAtom.Children[1]
	if extended.ID == nil {
		t.Error("extended trak should carry an id")
	}
	if classic.ID != nil {
		t.Error("classic trak should not carry an id")
	}
	for i, trak := range moovAtom.Children {
		if len(trak.Children) != 1 || trak.Children[0].Type != "mdia" {
			t.Errorf("trak %d: unexpected children %+v", i, trak.Children)
		}
	}
}

func TestReadAtoms_QTRootSentinel(t *testing.T) {
	// The outermost extended atom must be "sean".
	data := qtAtom("moov", 0, 0)

	_, err := parseBytes(data, false)
	var structErr *types.StructureError
	if !errors.As(err, &structErr) {
		t.Fatalf("expected StructureError, got %T: %v", err, err)
	}
}

func TestReadAtoms_QTLeafWithChildrenFatal(t *testing.T) {
	// tkhd maps to a Capture directive; an extended header declaring
	// children for it is a structural inconsistency.
	badTkhd := qtAtom("tkhd", 0, 1, classicAtom("free"))
	trak := qtAtom("trak", 0, 1, badTkhd)
	moovAtom := qtAtom("moov", 0, 1, trak)
	sean := qtAtom("sean", 1, 1, moovAtom)

	_, err := parseBytes(sean, false)
	var structErr *types.StructureError
	if !errors.As(err, &structErr) {
		t.Fatalf("expected StructureError, got %T: %v", err, err)
	}
}

func TestReadAtoms_QTConsumedMismatch(t *testing.T) {
	// A sean with no children whose declared size exceeds its header must
	// fail the post-check.
	data := qtAtom("sean", 1, 0, make([]byte, 4))

	_, err := parseBytes(data, false)
	var structErr *types.StructureError
	if !errors.As(err, &structErr) {
		t.Fatalf("expected StructureError, got %T: %v", err, err)
	}
}

func TestReadAtoms_TruncatedMidAtom(t *testing.T) {
	// Declared size runs past end of input.
	data := classicAtom("mdat", make([]byte, 50))
	binary.BigEndian.PutUint32(data[0:4], 200)

	_, err := parseBytes(data, false)
	var truncErr *types.TruncatedFileError
	if !errors.As(err, &truncErr) {
		t.Fatalf("expected TruncatedFileError, got %T: %v", err, err)
	}
}

func TestReadAtoms_TruncatedHeader(t *testing.T) {
	// A container whose payload ends in the middle of a child header.
	inner := classicAtom("mvhd", make([]byte, 10))
	data := classicAtom("moov", inner[:11])

	_, err := parseBytes(data, false)
	if err == nil {
		t.Fatal("expected error for truncated child")
	}
}

func TestReadAtoms_TrailingBytesAtTopLevel(t *testing.T) {
	// Fewer than 8 bytes at a top-level boundary cannot start another atom
	// header; this is the normal end of input.
	data := append(classicAtom("free", make([]byte, 4)), 0x00, 0x01, 0x02)

	atoms, err := parseBytes(data, false)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(atoms) != 1 {
		t.Errorf("expected 1 atom, got %d", len(atoms))
	}
}

func TestReadAtoms_ContainerChildSizeMismatch(t *testing.T) {
	// moov declares a 10-byte payload but its only child declares 12.
	child := classicAtom("free", make([]byte, 4)) // 12 bytes
	data := classicAtom("moov", child)
	binary.BigEndian.PutUint32(data[0:4], 8+10)

	_, err := parseBytes(data, false)
	var structErr *types.StructureError
	if !errors.As(err, &structErr) {
		t.Fatalf("expected StructureError, got %T: %v", err, err)
	}
}

func TestReadAtoms_DeclaredSizeSmallerThanHeader(t *testing.T) {
	data := classicAtom("free")
	binary.BigEndian.PutUint32(data[0:4], 5)

	_, err := parseBytes(data, false)
	var structErr *types.StructureError
	if !errors.As(err, &structErr) {
		t.Fatalf("expected StructureError, got %T: %v", err, err)
	}
}

func TestReadAtoms_EmptyInput(t *testing.T) {
	atoms, err := parseBytes(nil, false)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(atoms) != 0 {
		t.Errorf("expected no atoms, got %d", len(atoms))
	}
}
