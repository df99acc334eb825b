package qt

import (
	"bytes"
	"encoding/binary"

	qtbin "github.com/simonhull/qtmeta/internal/binary"
	"github.com/simonhull/qtmeta/internal/types"
)

// Synthetic atom builders shared by the parser, query and metadata tests.

// classicAtom frames body as a classic atom of the given type.
func classicAtom(typ string, body ...[]byte) []byte {
	payload := bytes.Join(body, nil)
	out := make([]byte, 8+len(payload))
	binary.BigEndian.PutUint32(out[0:4], uint32(8+len(payload)))
	copy(out[4:8], typ)
	copy(out[8:], payload)
	return out
}

// qtAtom frames body as an extended-dialect atom, 12-byte zero container
// header included. The declared size excludes the container header.
func qtAtom(typ string, id uint32, childCount uint16, body ...[]byte) []byte {
	payload := bytes.Join(body, nil)
	out := make([]byte, 12+20+len(payload))
	binary.BigEndian.PutUint32(out[12:16], uint32(20+len(payload)))
	copy(out[16:20], typ)
	binary.BigEndian.PutUint32(out[20:24], id)
	binary.BigEndian.PutUint16(out[26:28], childCount)
	copy(out[32:], payload)
	return out
}

// tkhdPayload builds an 84-byte track header with the given id and
// fixed-point volume, width and height.
func tkhdPayload(trackID uint32, volume uint16, width, height uint32) []byte {
	p := make([]byte, 84)
	binary.BigEndian.PutUint32(p[12:16], trackID)
	binary.BigEndian.PutUint16(p[36:38], volume)
	binary.BigEndian.PutUint32(p[76:80], width)
	binary.BigEndian.PutUint32(p[80:84], height)
	return p
}

// hdlrPayload builds a 24-byte handler reference with the given component
// subtype.
func hdlrPayload(subtype string) []byte {
	p := make([]byte, 24)
	copy(p[4:8], "mhlr")
	copy(p[8:12], subtype)
	copy(p[12:16], "appl")
	return p
}

// stsdPayload builds a sound sample description with one 36-byte entry per
// fixed-point sample rate.
func stsdPayload(rates ...uint32) []byte {
	p := make([]byte, 8+soundEntryLen*len(rates))
	binary.BigEndian.PutUint32(p[4:8], uint32(len(rates)))
	for i, rate := range rates {
		entry := p[8+soundEntryLen*i:]
		binary.BigEndian.PutUint32(entry[0:4], soundEntryLen)
		copy(entry[4:8], "mp4a")
		binary.BigEndian.PutUint16(entry[24:26], 2)
		binary.BigEndian.PutUint32(entry[32:36], rate)
	}
	return p
}

// videoTrak builds a complete classic video track atom.
func videoTrak(trackID, width, height uint32) []byte {
	return classicAtom("trak",
		classicAtom("tkhd", tkhdPayload(trackID, 0x0100, width, height)),
		classicAtom("mdia",
			classicAtom("hdlr", hdlrPayload("vide"))))
}

// audioTrak builds a complete classic audio track atom.
func audioTrak(trackID, rate uint32) []byte {
	return classicAtom("trak",
		classicAtom("tkhd", tkhdPayload(trackID, 0x0100, 0, 0)),
		classicAtom("mdia",
			classicAtom("hdlr", hdlrPayload("soun")),
			classicAtom("minf",
				classicAtom("stbl",
					classicAtom("stsd", stsdPayload(rate))))))
}

// parseBytes runs the reader over an in-memory synthetic file.
func parseBytes(data []byte, strict bool) ([]*types.Atom, error) {
	sr := qtbin.NewSafeReader(bytes.NewReader(data), int64(len(data)), "test")
	return ReadAtoms(sr, nil, strict)
}
