package types

// Track kinds as they appear in the handler reference's component subtype.
// Any other subtype is passed through verbatim in TrackInfo.Kind.
const (
	KindVideo = "vide"
	KindAudio = "soun"
)

// TrackInfo describes one track discovered in a parsed file.
//
// Which fields are meaningful depends on Kind: video tracks carry Width and
// Height, audio tracks carry SampleRate, and any other kind carries only the
// subtype itself. TrackID is the id from the track's header atom when one
// was present in the track's subtree, zero otherwise.
type TrackInfo struct {
	Kind       string
	TrackID    uint32
	Width      float64
	Height     float64
	SampleRate float64
}

// IsVideo reports whether the track is a video track.
func (t TrackInfo) IsVideo() bool {
	return t.Kind == KindVideo
}

// IsAudio reports whether the track is an audio track.
func (t TrackInfo) IsAudio() bool {
	return t.Kind == KindAudio
}
