package frame

import (
	"encoding/hex"
	"errors"
	"fmt"
	"regexp"

	"github.com/sirupsen/logrus"

	"github.com/arunjitsingh/id3/internal/artwork"
	"github.com/arunjitsingh/id3/internal/codec"
)

// ErrFrameOverrun is returned when a frame record extends past the frame region.
var ErrFrameOverrun = errors.New("frame extends past end of tag")

var idPattern = regexp.MustCompile(`[0-9A-Z]+`)

// DecodeFunc turns a frame payload into a field value. The sink is nil when
// no artwork destination is configured.
type DecodeFunc func(payload []byte, sink artwork.Sink) (string, error)

// Mapping binds a frame id to the field it populates.
type Mapping struct {
	Field  string
	Decode DecodeFunc
}

// Config describes the frame header layout of one tag version.
type Config struct {
	IDLength    int
	SizeLength  int
	FlagsLength int
	Mappings    map[string]Mapping
}

// HeaderLength is the size of a frame header in bytes.
func (c Config) HeaderLength() int {
	return c.IDLength + c.SizeLength + c.FlagsLength
}

// Descriptor is the header of a single frame record.
type Descriptor struct {
	ID    string
	Size  uint32
	Flags []byte
}

// Tags maps field names such as "album" to decoded values.
type Tags map[string]string

// StopReason explains why frame iteration ended.
type StopReason int

const (
	// StopEnd means the cursor reached the end of the frame region.
	StopEnd StopReason = iota
	// StopPadding means an id outside [0-9A-Z] was found.
	StopPadding
	// StopFault means a frame could not be read or decoded.
	StopFault
)

func (r StopReason) String() string {
	switch r {
	case StopEnd:
		return "end"
	case StopPadding:
		return "padding"
	case StopFault:
		return "fault"
	default:
		return fmt.Sprintf("StopReason(%d)", int(r))
	}
}

// Stop records where and why iteration ended.
type Stop struct {
	Reason StopReason
	Offset int
	Err    error
}

// Faulted reports whether iteration ended on a decode fault.
func (s Stop) Faulted() bool { return s.Reason == StopFault }

// FrameDecodeError describes a fault while reading one frame record.
type FrameDecodeError struct {
	ID     string
	Offset int
	Err    error
}

func (e *FrameDecodeError) Error() string {
	return fmt.Sprintf("frame %q at offset %d: %v", e.ID, e.Offset, e.Err)
}

func (e *FrameDecodeError) Unwrap() error { return e.Err }

// Parse walks the frame region and decodes every mapped frame. Iteration stops
// at the first id outside [0-9A-Z] or at the first fault; tags decoded up to
// that point are always returned.
func Parse(frames []byte, cfg Config, sink artwork.Sink, log logrus.FieldLogger) (Tags, Stop) {
	if log == nil {
		log = logrus.StandardLogger()
	}
	tags := make(Tags)
	log.WithField("bytes", len(frames)).Debug("size of all frames")
	i := 0
	for i < len(frames) {
		start := i
		desc, next, err := readDescriptor(frames, i, cfg)
		if errors.Is(err, errNotAFrame) {
			return tags, Stop{Reason: StopPadding, Offset: start}
		}
		if err != nil {
			return tags, fault(log, desc.ID, next, err)
		}
		log.WithFields(logrus.Fields{
			"id":    desc.ID,
			"size":  desc.Size,
			"flags": hex.EncodeToString(desc.Flags),
		}).Debug("frame")
		i = next
		end := i + int(desc.Size)
		if end > len(frames) || end < i {
			return tags, fault(log, desc.ID, i, fmt.Errorf("%w: size %d, %d bytes left", ErrFrameOverrun, desc.Size, len(frames)-i))
		}
		data := frames[i:end]
		i = end

		m, ok := cfg.Mappings[desc.ID]
		if !ok {
			continue
		}
		value, err := m.Decode(data, sink)
		if err != nil {
			return tags, fault(log, desc.ID, i, err)
		}
		tags[m.Field] = value
	}
	return tags, Stop{Reason: StopEnd, Offset: i}
}

var errNotAFrame = errors.New("not a frame header")

// readDescriptor reads the frame header at offset i and returns the offset of
// the frame payload.
func readDescriptor(frames []byte, i int, cfg Config) (Descriptor, int, error) {
	var desc Descriptor
	idEnd := min(i+cfg.IDLength, len(frames))
	desc.ID = string(frames[i:idEnd])
	i = idEnd
	if !idPattern.MatchString(desc.ID) {
		return desc, i, errNotAFrame
	}

	sizeEnd := min(i+cfg.SizeLength, len(frames))
	size, err := codec.DecodeSize(frames[i:sizeEnd], codec.IsPictureFrame(desc.ID))
	if err != nil {
		return desc, i, err
	}
	desc.Size = size
	i = sizeEnd

	if i+cfg.FlagsLength > len(frames) {
		return desc, i, fmt.Errorf("%w: flags truncated", ErrFrameOverrun)
	}
	desc.Flags = frames[i : i+cfg.FlagsLength]
	i += cfg.FlagsLength
	return desc, i, nil
}

func fault(log logrus.FieldLogger, id string, offset int, err error) Stop {
	ferr := &FrameDecodeError{ID: id, Offset: offset, Err: err}
	log.WithError(err).WithFields(logrus.Fields{"id": id, "index": offset}).Error("exception raised while parsing frames")
	return Stop{Reason: StopFault, Offset: offset, Err: ferr}
}
