package qtmeta

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"

	qtbin "github.com/simonhull/qtmeta/internal/binary"
	"github.com/simonhull/qtmeta/internal/qt"
	"github.com/simonhull/qtmeta/internal/types"
)

// File is a fully parsed container file.
//
// Parsing is eager: Open reads the whole atom tree (capturing only the
// payloads the grammar asks for) and releases the file handle before
// returning, so a File holds no resources.
type File struct {
	// Path to the container file
	Path string

	// File size in bytes
	Size int64

	// Top-level atoms, in file order
	Atoms []*Atom
}

// Open opens a container file and parses its atom tree.
//
// Options can be provided to customize parsing behavior:
//
//	file, err := qtmeta.Open("movie.mov", qtmeta.WithStrictParsing())
//
// Example:
//
//	file, err := qtmeta.Open("movie.mov")
//	if err != nil {
//		return err
//	}
//	tracks, err := file.Tracks()
func Open(path string, opts ...Option) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat file: %w", err)
	}
	size := stat.Size()

	atoms, err := Parse(f, size, path, opts...)
	if err != nil {
		return nil, err
	}

	return &File{
		Path:  path,
		Size:  size,
		Atoms: atoms,
	}, nil
}

// OpenContext opens a file with context support for cancellation.
//
// This is a thin wrapper around Open() that checks context before starting;
// a single parse is fast enough that mid-parse cancellation is not needed.
func OpenContext(ctx context.Context, path string, opts ...Option) (*File, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return Open(path, opts...)
}

// OpenMany opens multiple container files concurrently.
//
// Files are parsed in parallel using up to runtime.NumCPU() goroutines.
// Results are returned in the same order as the input paths. If any file
// fails to parse, an error is returned and no results are.
//
// Example:
//
//	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
//	defer cancel()
//
//	files, err := qtmeta.OpenMany(ctx, paths...)
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, f := range files {
//		fmt.Printf("%s: %d top-level atoms\n", f.Path, len(f.Atoms))
//	}
func OpenMany(ctx context.Context, paths ...string) ([]*File, error) {
	if len(paths) == 0 {
		return nil, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	results := make([]*File, len(paths))

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			file, err := Open(path)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}

			results[i] = file
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

// Parse reads the sequence of top-level atoms from r.
//
// size is the total stream size; it bounds every read and resolves the
// classic dialect's "size 0 means to end of file" root atoms. path is used
// only in error messages. Parsing stops normally when too few bytes remain
// to start another top-level atom header; running short inside an atom is a
// TruncatedFileError.
func Parse(r io.ReaderAt, size int64, path string, opts ...Option) ([]*Atom, error) {
	options := defaultOptions()
	for _, opt := range opts {
		opt(options)
	}

	sr := qtbin.NewSafeReader(r, size, path)
	return qt.ReadAtoms(sr, options.grammar, options.strict)
}

// ParseBytes parses an in-memory container image.
func ParseBytes(data []byte, opts ...Option) ([]*Atom, error) {
	return Parse(bytes.NewReader(data), int64(len(data)), "(bytes)", opts...)
}

// Tracks extracts per-track metadata from the parsed atom tree.
//
// It returns one record per track in file order, or a MissingAtomError when
// a track lacks a required hdlr, tkhd or stsd atom.
func (f *File) Tracks() ([]TrackInfo, error) {
	return ExtractTrackMetadata(f.Atoms)
}

// Dump writes an indented rendering of the atom tree to w. It is a
// diagnostic aid, not a stable format.
func (f *File) Dump(w io.Writer) error {
	return types.Dump(w, f.Atoms)
}
