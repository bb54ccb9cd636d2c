package reader

import (
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/arunjitsingh/id3/internal/artwork"
	"github.com/arunjitsingh/id3/internal/frame"
	"github.com/arunjitsingh/id3/internal/header"
	"github.com/arunjitsingh/id3/internal/version"
)

// Result is a decoded tag.
type Result struct {
	Header header.TagHeader
	Tags   frame.Tags
	Stop   frame.Stop
}

// Reader decodes ID3v2 tags from in-memory buffers. The zero value logs to
// the standard logrus logger and drops artwork.
type Reader struct {
	Log  logrus.FieldLogger
	Sink artwork.Sink
}

// ReadTag decodes the tag at the start of data. Frame faults end iteration
// but are not returned as errors; the partial tags are kept in the result.
func (r Reader) ReadTag(data []byte) (Result, error) {
	log := r.Log
	if log == nil {
		log = logrus.StandardLogger()
	}
	h, err := header.Parse(data)
	if err != nil {
		return Result{}, err
	}
	cfg, err := version.Lookup(h.Major)
	if err != nil {
		var verr *version.UnsupportedVersionError
		if errors.As(err, &verr) {
			verr.Header = h.Raw
		}
		log.WithFields(logrus.Fields{
			"header":  h.RawHex(),
			"version": h.Major,
		}).Error("unknown version")
		return Result{}, err
	}

	frames := header.Frames(data, h)
	log.WithFields(logrus.Fields{
		"version":   h.Version(),
		"body_size": h.BodySize,
		"flags":     h.FlagNames(),
	}).Debug("tag header")

	tags, stop := frame.Parse(frames, cfg, r.Sink, log)
	return Result{Header: h, Tags: tags, Stop: stop}, nil
}
