package codec

import (
	"errors"
	"fmt"
	"regexp"
)

// ErrUnsupportedSizeLength is returned when a size field is not 2, 3 or 4 bytes.
var ErrUnsupportedSizeLength = errors.New("unsupported size length")

var picturePattern = regexp.MustCompile(`A?PIC`)

// DecodeSize combines a big endian size field. Synchsafe fields use 7 bits per
// byte; eightBitBytes switches to ordinary 8 bit packing.
func DecodeSize(b []byte, eightBitBytes bool) (uint32, error) {
	bits := uint(7)
	if eightBitBytes {
		bits = 8
	}
	switch len(b) {
	case 2, 3, 4:
	default:
		return 0, fmt.Errorf("%w: %d bytes", ErrUnsupportedSizeLength, len(b))
	}
	var value uint32
	n := len(b)
	for k, by := range b {
		value |= uint32(by) << (bits * uint(n-1-k))
	}
	return value, nil
}

// IsPictureFrame reports whether the frame id carries a picture. Picture frame
// sizes are read with 8 bit packing.
func IsPictureFrame(id string) bool {
	return picturePattern.MatchString(id)
}

// span returns b[from:to] clamped to the bounds of b.
func span(b []byte, from, to int) []byte {
	if from > len(b) {
		from = len(b)
	}
	if to > len(b) {
		to = len(b)
	}
	if to < from {
		to = from
	}
	return b[from:to]
}
