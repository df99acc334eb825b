// Command qtdump parses a QuickTime file and prints the dimensions of its
// video tracks and the sample rate of its audio tracks. With --dump it also
// prints the full atom tree.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/simonhull/qtmeta"
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	strict := flag.Bool("strict", false, "fail on unknown top-level atom types")
	dump := flag.Bool("dump", false, "print all atoms in the file")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: qtdump [--strict] [--dump] <file>\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}
	path := flag.Arg(0)

	var opts []qtmeta.Option
	if *strict {
		opts = append(opts, qtmeta.WithStrictParsing())
	}

	log.Info().Str("file", path).Msg("parsing")

	file, err := qtmeta.Open(path, opts...)
	if err != nil {
		log.Error().Err(err).Str("file", path).Msg("parse failed")
		os.Exit(1)
	}

	if *dump {
		if err := file.Dump(os.Stdout); err != nil {
			log.Error().Err(err).Msg("dump failed")
			os.Exit(1)
		}
	}

	tracks, err := file.Tracks()
	if err != nil {
		log.Error().Err(err).Str("file", path).Msg("metadata extraction failed")
		os.Exit(1)
	}

	log.Info().Int("tracks", len(tracks)).Msg("parsed")

	for i, t := range tracks {
		switch t.Kind {
		case qtmeta.KindVideo:
			fmt.Printf("%d: video %gx%g\n", i, t.Width, t.Height)
		case qtmeta.KindAudio:
			fmt.Printf("%d: audio %g Hz\n", i, t.SampleRate)
		default:
			fmt.Printf("%d: %s\n", i, t.Kind)
		}
	}
}
