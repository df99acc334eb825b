package qtmeta

import (
	"github.com/simonhull/qtmeta/internal/types"
)

// TruncatedFileError is an alias to types.TruncatedFileError: the stream
// ended before a header or payload was complete. Re-exported from
// internal/types to keep the public API in one package.
type TruncatedFileError = types.TruncatedFileError

// UnknownAtomError is an alias to types.UnknownAtomError: a top-level atom
// type outside the grammar, under strict parsing.
type UnknownAtomError = types.UnknownAtomError

// StructureError is an alias to types.StructureError: declared sizes or
// child counts disagree with the bytes actually consumed.
type StructureError = types.StructureError

// MalformedPayloadError is an alias to types.MalformedPayloadError: a
// payload decoder received fewer bytes than its fixed layout requires.
type MalformedPayloadError = types.MalformedPayloadError

// MissingAtomError is an alias to types.MissingAtomError: a track lacks a
// required hdlr, tkhd or stsd atom.
type MissingAtomError = types.MissingAtomError
