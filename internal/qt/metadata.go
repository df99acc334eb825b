package qt

import (
	"github.com/simonhull/qtmeta/internal/types"
)

// ExtractTrackMetadata builds one metadata record for every trak atom found
// anywhere in the forest, in depth-first discovery order.
//
// Each track must carry a hdlr atom somewhere in its subtree; video tracks
// must also carry a tkhd and audio tracks an stsd. A missing required atom
// fails the whole call with *types.MissingAtomError, with no partial
// result.
//
// Audio records report only the first sample description entry's rate;
// additional entries are decoded but not surfaced here.
func ExtractTrackMetadata(forest []*types.Atom) ([]types.TrackInfo, error) {
	tracks := FindByType(forest, "trak")

	metadata := make([]types.TrackInfo, 0, len(tracks))
	for i, track := range tracks {
		hdlrAtoms := FindByType(track.Children, "hdlr")
		if len(hdlrAtoms) == 0 {
			return nil, missingAtom("hdlr", track, i)
		}
		hdlr, err := DecodeHandlerReference(hdlrAtoms[0].Data)
		if err != nil {
			return nil, err
		}

		switch hdlr.ComponentSubtype {
		case types.KindVideo:
			tkhdAtoms := FindByType(track.Children, "tkhd")
			if len(tkhdAtoms) == 0 {
				return nil, missingAtom("tkhd", track, i)
			}
			tkhd, err := DecodeTrackHeader(tkhdAtoms[0].Data)
			if err != nil {
				return nil, err
			}
			metadata = append(metadata, types.TrackInfo{
				Kind:    types.KindVideo,
				TrackID: tkhd.TrackID,
				Width:   tkhd.Width,
				Height:  tkhd.Height,
			})

		case types.KindAudio:
			stsdAtoms := FindByType(track.Children, "stsd")
			if len(stsdAtoms) == 0 {
				return nil, missingAtom("stsd", track, i)
			}
			stsd, err := DecodeSoundSampleDescription(stsdAtoms[0].Data)
			if err != nil {
				return nil, err
			}
			if len(stsd.Entries) == 0 {
				return nil, &types.MalformedPayloadError{
					Atom: "stsd",
					Need: soundDescHeaderLen + soundEntryLen,
					Got:  len(stsdAtoms[0].Data),
				}
			}
			metadata = append(metadata, types.TrackInfo{
				Kind:       types.KindAudio,
				TrackID:    trackID(track),
				SampleRate: stsd.Entries[0].SampleRate,
			})

		default:
			metadata = append(metadata, types.TrackInfo{
				Kind:    hdlr.ComponentSubtype,
				TrackID: trackID(track),
			})
		}
	}

	return metadata, nil
}

// trackID returns the id from the track's header atom, or zero when no
// decodable tkhd is present.
func trackID(track *types.Atom) uint32 {
	tkhdAtoms := FindByType(track.Children, "tkhd")
	if len(tkhdAtoms) == 0 {
		return 0
	}
	tkhd, err := DecodeTrackHeader(tkhdAtoms[0].Data)
	if err != nil {
		return 0
	}
	return tkhd.TrackID
}

// missingAtom names the offending track by id when its header decodes, by
// discovery index otherwise.
func missingAtom(missing string, track *types.Atom, index int) error {
	return &types.MissingAtomError{
		Missing:    missing,
		TrackID:    trackID(track),
		TrackIndex: index,
	}
}
