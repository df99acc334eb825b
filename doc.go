// Package qtmeta reads QuickTime container files and extracts per-track
// metadata (video frame dimensions, audio sample rate) without decoding any
// compressed media payload.
//
// # Quick Start
//
// Reading track metadata from a file:
//
//	file, err := qtmeta.Open("movie.mov")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	tracks, err := file.Tracks()
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, t := range tracks {
//		switch t.Kind {
//		case qtmeta.KindVideo:
//			fmt.Printf("video: %.0fx%.0f\n", t.Width, t.Height)
//		case qtmeta.KindAudio:
//			fmt.Printf("audio: %.0f Hz\n", t.SampleRate)
//		}
//	}
//
// # Architecture
//
// The library is a grammar-driven recursive-descent parser over the atom
// (box) structure of the container:
//
//	[Parse]                 - bytes to a forest of Atom nodes
//	  ├─ grammar table      - which atoms to descend into, capture or skip
//	  ├─ classic dialect    - 8/16-byte length+type framing
//	  └─ extended dialect   - zero-probed framing with id and child count
//	[FindByType]            - depth-first queries over the forest
//	[ExtractTrackMetadata]  - decoded tkhd/hdlr/stsd into track records
//
// Atoms outside the grammar are consumed opaquely rather than rejected;
// WithStrictParsing makes unrecognized top-level atoms fatal instead.
//
// # Error Handling
//
// All parse failures are fatal and typed: TruncatedFileError,
// UnknownAtomError, StructureError, MalformedPayloadError and
// MissingAtomError. The format is deterministic, so re-parsing identical
// bytes yields the same outcome; there is nothing to retry.
//
// Parsing is fully synchronous and shares no state between calls, so
// concurrent callers parsing different files need no coordination. OpenMany
// parses a batch of files in parallel.
package qtmeta
