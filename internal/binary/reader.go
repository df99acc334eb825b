// Package binary provides bounds-checked big-endian reading primitives for
// the atom parser.
package binary

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/simonhull/qtmeta/internal/types"
)

// SafeReader wraps io.ReaderAt with bounds checking and helpful error
// messages. Reads past the declared size return *types.TruncatedFileError.
type SafeReader struct {
	r    io.ReaderAt
	path string
	size int64
}

// NewSafeReader creates a new SafeReader.
func NewSafeReader(r io.ReaderAt, size int64, path string) *SafeReader {
	return &SafeReader{
		r:    r,
		size: size,
		path: path,
	}
}

// Path returns the file path associated with this reader.
func (sr *SafeReader) Path() string {
	return sr.path
}

// Size returns the total size of the underlying stream.
func (sr *SafeReader) Size() int64 {
	return sr.size
}

// ReadAt reads bytes at the given offset with context for error messages.
func (sr *SafeReader) ReadAt(b []byte, off int64, what string) error {
	if off < 0 || off >= sr.size || off+int64(len(b)) > sr.size {
		return &types.TruncatedFileError{
			Path:   sr.path,
			What:   what,
			Offset: off,
			Length: len(b),
			Size:   sr.size,
		}
	}

	n, err := sr.r.ReadAt(b, off)
	if err != nil && err != io.EOF {
		return fmt.Errorf("%s: failed to read %s at offset %d: %w", sr.path, what, off, err)
	}

	if n < len(b) {
		return &types.TruncatedFileError{
			Path:   sr.path,
			What:   what,
			Offset: off,
			Length: len(b),
			Size:   sr.size,
		}
	}

	return nil
}

// Read reads a value of type T from the given offset in big-endian byte
// order (the container format is big-endian throughout).
func Read[T uint8 | uint16 | uint32 | uint64](sr *SafeReader, off int64, what string) (T, error) {
	var zero T

	buf := make([]byte, typeSize(zero))
	if err := sr.ReadAt(buf, off, what); err != nil {
		return zero, err
	}

	var val T
	switch any(zero).(type) {
	case uint8:
		val = T(buf[0])
	case uint16:
		val = T(binary.BigEndian.Uint16(buf))
	case uint32:
		val = T(binary.BigEndian.Uint32(buf))
	case uint64:
		val = T(binary.BigEndian.Uint64(buf))
	}

	return val, nil
}

func typeSize[T uint8 | uint16 | uint32 | uint64](zero T) int {
	switch any(zero).(type) {
	case uint8:
		return 1
	case uint16:
		return 2
	case uint32:
		return 4
	case uint64:
		return 8
	}
	return 0
}

// Reader provides sequential reading with automatic offset tracking.
// The atom parser is forward-only except for the dialect probe, which is
// served by Peek without moving the cursor.
type Reader struct {
	*SafeReader
	offset int64
}

// NewReader creates a new Reader starting at the given offset.
func NewReader(sr *SafeReader, offset int64) *Reader {
	return &Reader{
		SafeReader: sr,
		offset:     offset,
	}
}

// ReadValue reads a big-endian numeric value and advances the offset.
func ReadValue[T uint8 | uint16 | uint32 | uint64](r *Reader, what string) (T, error) {
	val, err := Read[T](r.SafeReader, r.offset, what)
	if err != nil {
		var zero T
		return zero, err
	}

	var zero T
	r.offset += int64(typeSize(zero))
	return val, nil
}

// ReadString reads a string of the given length and advances the offset.
func (r *Reader) ReadString(length int, what string) (string, error) {
	buf, err := r.ReadBytes(length, what)
	if err != nil {
		return "", err
	}
	return string(buf), nil
}

// ReadBytes reads n bytes and advances the offset. The bounds check runs
// before the allocation, so a forged size fails as a truncation error
// rather than an oversized allocation.
func (r *Reader) ReadBytes(n int, what string) ([]byte, error) {
	if n == 0 {
		return []byte{}, nil
	}
	if n < 0 || int64(n) > r.size-r.offset {
		return nil, &types.TruncatedFileError{
			Path:   r.path,
			What:   what,
			Offset: r.offset,
			Length: n,
			Size:   r.size,
		}
	}

	buf := make([]byte, n)
	if err := r.SafeReader.ReadAt(buf, r.offset, what); err != nil {
		return nil, err
	}

	r.offset += int64(n)
	return buf, nil
}

// Peek reads n bytes at the current offset without advancing it.
func (r *Reader) Peek(n int, what string) ([]byte, error) {
	buf := make([]byte, n)
	if err := r.SafeReader.ReadAt(buf, r.offset, what); err != nil {
		return nil, err
	}
	return buf, nil
}

// Skip advances the offset by n bytes without bounds checking. Use Discard
// when the skipped region must exist.
func (r *Reader) Skip(n int64) {
	r.offset += n
}

// Discard advances the offset by n bytes, failing with a truncation error
// if the stream does not contain them. This bounds skips for opaque and
// discarded atoms to the stream itself.
func (r *Reader) Discard(n int64, what string) error {
	if n < 0 || r.offset+n > r.size {
		return &types.TruncatedFileError{
			Path:   r.path,
			What:   what,
			Offset: r.offset,
			Length: int(n),
			Size:   r.size,
		}
	}
	r.offset += n
	return nil
}

// Offset returns the current offset.
func (r *Reader) Offset() int64 {
	return r.offset
}

// Remaining returns the number of bytes between the cursor and the end of
// the stream.
func (r *Reader) Remaining() int64 {
	return r.size - r.offset
}
