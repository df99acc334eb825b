package types

import "fmt"

// TruncatedFileError is returned when the stream ends before a header or
// payload is complete. Running out of bytes mid-atom always aborts the parse.
type TruncatedFileError struct {
	Path   string
	What   string
	Offset int64
	Length int
	Size   int64
}

func (e *TruncatedFileError) Error() string {
	if e.Offset >= e.Size {
		return fmt.Sprintf("%s: offset %d out of bounds (file size: %d) while reading %s",
			e.Path, e.Offset, e.Size, e.What)
	}
	return fmt.Sprintf("%s: read of %d bytes at offset %d would exceed file size %d while reading %s",
		e.Path, e.Length, e.Offset, e.Size, e.What)
}

// UnknownAtomError is returned when a top-level atom type is not in the
// grammar and strict parsing is enabled. Without strict parsing the atom is
// skipped as opaque instead.
type UnknownAtomError struct {
	Path   string
	Type   string
	Offset int64
}

func (e *UnknownAtomError) Error() string {
	return fmt.Sprintf("%s: unknown top-level atom %q at offset %d", e.Path, e.Type, e.Offset)
}

// StructureError is returned when the atom tree disagrees with itself:
// declared sizes or child counts that don't match the bytes actually
// consumed, a leaf atom declaring children, or a bad root sentinel.
type StructureError struct {
	Path   string
	Reason string
	Offset int64
}

func (e *StructureError) Error() string {
	return fmt.Sprintf("%s: invalid structure at offset %d: %s", e.Path, e.Offset, e.Reason)
}

// MalformedPayloadError is returned by a payload decoder that received fewer
// bytes than its fixed layout requires.
type MalformedPayloadError struct {
	Atom string
	Need int
	Got  int
}

func (e *MalformedPayloadError) Error() string {
	return fmt.Sprintf("%s payload too short: need %d bytes, have %d", e.Atom, e.Need, e.Got)
}

// MissingAtomError is returned by metadata extraction when a track lacks a
// required atom (hdlr, tkhd or stsd). TrackID is the id from the track's
// header when one could be decoded, zero otherwise; TrackIndex is the
// track's position in discovery order.
type MissingAtomError struct {
	Missing    string
	TrackID    uint32
	TrackIndex int
}

func (e *MissingAtomError) Error() string {
	if e.TrackID != 0 {
		return fmt.Sprintf("track %d: no %q atom found in track", e.TrackID, e.Missing)
	}
	return fmt.Sprintf("track #%d: no %q atom found in track", e.TrackIndex, e.Missing)
}
