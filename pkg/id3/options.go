package id3

import (
	"github.com/sirupsen/logrus"

	"github.com/arunjitsingh/id3/internal/artwork"
	internalopts "github.com/arunjitsingh/id3/internal/options"
)

// Sink receives extracted artwork bytes and a lowercase file extension.
type Sink = artwork.Sink

// Options configures reading.
type Options struct {
	// ArtOut is a path prefix; artwork is written to ArtOut + "." + ext.
	ArtOut string
	// Sink overrides ArtOut when set.
	Sink Sink
}

func (opts Options) sink(log logrus.FieldLogger) (Sink, error) {
	if opts.Sink != nil {
		return opts.Sink, nil
	}
	prefix, err := internalopts.ParseArtOut(opts.ArtOut)
	if err != nil || prefix == "" {
		return nil, err
	}
	return artwork.NewFileSink(prefix, log), nil
}
