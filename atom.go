package qtmeta

import (
	"github.com/simonhull/qtmeta/internal/qt"
	"github.com/simonhull/qtmeta/internal/types"
)

// Atom is an alias to types.Atom, the node type of the parsed atom tree.
// Re-exported from internal/types to keep the public API in one package.
type Atom = types.Atom

// TrackInfo is an alias to types.TrackInfo, the per-track metadata record.
type TrackInfo = types.TrackInfo

// Track kind constants, matching the handler reference component subtype.
const (
	KindVideo = types.KindVideo
	KindAudio = types.KindAudio
)

// Decoded payload records, re-exported from the parser.
type (
	TrackHeader            = qt.TrackHeader
	HandlerReference       = qt.HandlerReference
	SoundSampleDescription = qt.SoundSampleDescription
	SoundSampleEntry       = qt.SoundSampleEntry
)

// DecodeTrackHeader decodes a captured tkhd payload.
func DecodeTrackHeader(data []byte) (TrackHeader, error) {
	return qt.DecodeTrackHeader(data)
}

// DecodeHandlerReference decodes a captured hdlr payload.
func DecodeHandlerReference(data []byte) (HandlerReference, error) {
	return qt.DecodeHandlerReference(data)
}

// DecodeSoundSampleDescription decodes a captured sound stsd payload.
func DecodeSoundSampleDescription(data []byte) (SoundSampleDescription, error) {
	return qt.DecodeSoundSampleDescription(data)
}

// FindByType returns every atom in the forest whose type is one of wanted,
// in pre-order depth-first order. Matching atoms are still descended into.
func FindByType(forest []*Atom, wanted ...string) []*Atom {
	return qt.FindByType(forest, wanted...)
}

// ExtractTrackMetadata builds one metadata record per trak atom found
// anywhere in the forest, in depth-first discovery order. A track missing a
// required hdlr, tkhd or stsd atom fails the whole call with
// MissingAtomError; no partial result is returned.
func ExtractTrackMetadata(forest []*Atom) ([]TrackInfo, error) {
	return qt.ExtractTrackMetadata(forest)
}
