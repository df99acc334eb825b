package qt

import (
	"encoding/binary"

	qtbin "github.com/simonhull/qtmeta/internal/binary"
	"github.com/simonhull/qtmeta/internal/types"
)

// TrackHeader is the decoded payload of a tkhd atom.
//
// Volume is converted from 8.8 fixed point, Width and Height from 16.16
// fixed point. Matrix is the 36-byte transformation matrix, passed through
// undecoded.
type TrackHeader struct {
	Version          uint8
	Flags            uint32
	CreationTime     uint32
	ModificationTime uint32
	TrackID          uint32
	Duration         uint32
	Layer            uint16
	AlternateGroup   uint16
	Volume           float64
	Matrix           []byte
	Width            float64
	Height           float64
}

const trackHeaderLen = 84

// DecodeTrackHeader decodes the fixed 84-byte tkhd layout.
//
// Layout: version (1), flags (3), creation time (4), modification time (4),
// track id (4), reserved (4), duration (4), reserved (8), layer (2),
// alternate group (2), volume (2), reserved (2), matrix (36), width (4),
// height (4). All integers big-endian.
func DecodeTrackHeader(data []byte) (TrackHeader, error) {
	if len(data) < trackHeaderLen {
		return TrackHeader{}, &types.MalformedPayloadError{Atom: "tkhd", Need: trackHeaderLen, Got: len(data)}
	}

	be := binary.BigEndian
	return TrackHeader{
		Version:          data[0],
		Flags:            readUint24(data[1:4]),
		CreationTime:     be.Uint32(data[4:8]),
		ModificationTime: be.Uint32(data[8:12]),
		TrackID:          be.Uint32(data[12:16]),
		Duration:         be.Uint32(data[20:24]),
		Layer:            be.Uint16(data[32:34]),
		AlternateGroup:   be.Uint16(data[34:36]),
		Volume:           qtbin.Fixed88(be.Uint16(data[36:38])),
		Matrix:           append([]byte(nil), data[40:76]...),
		Width:            qtbin.Fixed1616(be.Uint32(data[76:80])),
		Height:           qtbin.Fixed1616(be.Uint32(data[80:84])),
	}, nil
}

// HandlerReference is the decoded payload of a hdlr atom. ComponentSubtype
// identifies what kind of stream the enclosing track carries ("vide",
// "soun", or something else).
type HandlerReference struct {
	Version               uint8
	Flags                 uint32
	ComponentType         string
	ComponentSubtype      string
	ComponentManufacturer string
	ComponentFlags        uint32
	ComponentFlagsMask    uint32
}

const handlerReferenceLen = 24

// DecodeHandlerReference decodes the fixed 24-byte hdlr layout: version
// (1), flags (3), component type (4), component subtype (4), component
// manufacturer (4), component flags (4), component flags mask (4).
func DecodeHandlerReference(data []byte) (HandlerReference, error) {
	if len(data) < handlerReferenceLen {
		return HandlerReference{}, &types.MalformedPayloadError{Atom: "hdlr", Need: handlerReferenceLen, Got: len(data)}
	}

	be := binary.BigEndian
	return HandlerReference{
		Version:               data[0],
		Flags:                 readUint24(data[1:4]),
		ComponentType:         string(data[4:8]),
		ComponentSubtype:      string(data[8:12]),
		ComponentManufacturer: string(data[12:16]),
		ComponentFlags:        be.Uint32(data[16:20]),
		ComponentFlagsMask:    be.Uint32(data[20:24]),
	}, nil
}

// SoundSampleEntry is one 36-byte record of a sound stsd table. SampleRate
// is converted from 16.16 fixed point.
type SoundSampleEntry struct {
	Size               uint32
	DataFormat         string
	DataReferenceIndex uint16
	Version            uint16
	RevisionLevel      uint16
	Vendor             uint32
	Channels           uint16
	SampleSize         uint16
	CompressionID      uint16
	PacketSize         uint16
	SampleRate         float64
}

// SoundSampleDescription is the decoded payload of a sound stsd atom.
type SoundSampleDescription struct {
	Version uint8
	Flags   uint32
	Entries []SoundSampleEntry
}

const (
	soundDescHeaderLen = 8
	soundEntryLen      = 36
)

// DecodeSoundSampleDescription decodes a sound sample description table:
// version (1), flags (3), entry count (4), then exactly entry-count
// records at a fixed 36-byte stride. Entries declaring a larger size are
// still stepped over at the fixed stride.
func DecodeSoundSampleDescription(data []byte) (SoundSampleDescription, error) {
	if len(data) < soundDescHeaderLen {
		return SoundSampleDescription{}, &types.MalformedPayloadError{Atom: "stsd", Need: soundDescHeaderLen, Got: len(data)}
	}

	be := binary.BigEndian
	count := be.Uint32(data[4:8])

	need := uint64(soundDescHeaderLen) + uint64(count)*soundEntryLen
	if uint64(len(data)) < need {
		return SoundSampleDescription{}, &types.MalformedPayloadError{Atom: "stsd", Need: int(need), Got: len(data)}
	}

	desc := SoundSampleDescription{
		Version: data[0],
		Flags:   readUint24(data[1:4]),
		Entries: make([]SoundSampleEntry, 0, count),
	}

	pos := soundDescHeaderLen
	for i := uint32(0); i < count; i++ {
		entry := data[pos : pos+soundEntryLen]
		desc.Entries = append(desc.Entries, SoundSampleEntry{
			Size:               be.Uint32(entry[0:4]),
			DataFormat:         string(entry[4:8]),
			DataReferenceIndex: be.Uint16(entry[14:16]),
			Version:            be.Uint16(entry[16:18]),
			RevisionLevel:      be.Uint16(entry[18:20]),
			Vendor:             be.Uint32(entry[20:24]),
			Channels:           be.Uint16(entry[24:26]),
			SampleSize:         be.Uint16(entry[26:28]),
			CompressionID:      be.Uint16(entry[28:30]),
			PacketSize:         be.Uint16(entry[30:32]),
			SampleRate:         qtbin.Fixed1616(be.Uint32(entry[32:36])),
		})
		pos += soundEntryLen
	}

	return desc, nil
}

// readUint24 reads a 3-byte big-endian integer (atom flag fields).
func readUint24(b []byte) uint32 {
	return uint32(b[0])<<16 | uint32(b[1])<<8 | uint32(b[2])
}
