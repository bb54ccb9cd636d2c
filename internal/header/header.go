package header

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/arunjitsingh/id3/internal/codec"
)

// Length is the size of the fixed ID3v2 tag header.
const Length = 10

var (
	// Marker opens every ID3v2 tag.
	Marker = []byte("ID3")

	ErrNoTag           = errors.New("no ID3v2 tag")
	ErrTruncatedHeader = errors.New("tag header truncated")
)

const flagExtendedHeader = 0x40

// TagHeader is the decoded fixed tag header.
type TagHeader struct {
	Major    byte
	Revision byte
	Flags    byte
	BodySize uint32
	Raw      []byte
}

// HasTag reports whether data starts with the ID3v2 marker.
func HasTag(data []byte) bool {
	return bytes.HasPrefix(data, Marker)
}

// Parse decodes the first ten bytes of data.
func Parse(data []byte) (TagHeader, error) {
	if len(data) < Length {
		if !HasTag(data) {
			return TagHeader{}, ErrNoTag
		}
		return TagHeader{}, fmt.Errorf("%w: %d bytes", ErrTruncatedHeader, len(data))
	}
	if !HasTag(data) {
		return TagHeader{}, ErrNoTag
	}
	size, err := codec.DecodeSize(data[6:10], false)
	if err != nil {
		return TagHeader{}, err
	}
	return TagHeader{
		Major:    data[3],
		Revision: data[4],
		Flags:    data[5],
		BodySize: size,
		Raw:      data[:Length],
	}, nil
}

// ExtendedHeader reports whether the extended header flag is set.
func (h TagHeader) ExtendedHeader() bool {
	return h.Flags&flagExtendedHeader != 0
}

// RawHex returns the header bytes as lowercase hex.
func (h TagHeader) RawHex() string {
	return hex.EncodeToString(h.Raw)
}

// Version renders the version as "2.<major>.<revision>".
func (h TagHeader) Version() string {
	return fmt.Sprintf("2.%d.%d", h.Major, h.Revision)
}

var flagDefs = []struct {
	mask byte
	key  string
}{
	{0x80, "unsynchronisation"},
	{0x40, "extended_header"},
	{0x20, "experimental"},
	{0x10, "footer"},
}

// FlagNames lists the header flags that are set.
func (h TagHeader) FlagNames() []string {
	var names []string
	for _, def := range flagDefs {
		if h.Flags&def.mask != 0 {
			names = append(names, def.key)
		}
	}
	return names
}

// Frames returns the frame region of data. The body size is used as an end
// offset from the start of data, not as a length after the header. An
// extended header, if flagged on a v2.3 or v2.4 tag, is skipped.
func Frames(data []byte, h TagHeader) []byte {
	start := Length
	if (h.Major == 3 || h.Major == 4) && h.ExtendedHeader() {
		start = 16 + int(extendedSize(data))
	}
	return region(data, start, int(h.BodySize))
}

func extendedSize(data []byte) uint32 {
	if len(data) < Length+4 {
		return 0
	}
	size, _ := codec.DecodeSize(data[Length:Length+4], false)
	return size
}

func region(data []byte, start, end int) []byte {
	if end > len(data) {
		end = len(data)
	}
	if start > end {
		return data[end:end]
	}
	return data[start:end]
}
