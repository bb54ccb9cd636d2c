package codec

import (
	"encoding/base64"
	"errors"
	"regexp"
	"strings"

	"github.com/arunjitsingh/id3/internal/artwork"
)

// ErrNoImageType is returned when an "image/" MIME prefix is not followed by
// an alphanumeric type.
var ErrNoImageType = errors.New("picture frame has no image type")

const (
	mimePrefix     = "image/"
	artworkOffset  = 6
	mimeJPEG       = "image/jpeg"
	mimePNG        = "image/png"
	legacyTypeJPEG = "JPG"
)

var imageTypePattern = regexp.MustCompile(`[A-Za-z0-9]+`)

// DecodeImage turns a picture frame payload into a base64 data URI. When sink
// is non-nil the payload from offset 6 is handed to it with the lowercase image
// type as file extension.
func DecodeImage(payload []byte, sink artwork.Sink) (string, error) {
	next := 1
	var typ string
	if string(span(payload, 1, 7)) == mimePrefix {
		typ = imageTypePattern.FindString(string(span(payload, 7, 11)))
		if typ == "" {
			return "", ErrNoImageType
		}
		next += len(mimePrefix)
	} else {
		typ = string(span(payload, 1, 4))
	}
	next += len(typ) + 2

	if sink != nil {
		sink.Write(span(payload, artworkOffset, len(payload)), strings.ToLower(typ))
	}

	mime := mimePNG
	if typ == legacyTypeJPEG {
		mime = mimeJPEG
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(span(payload, next, len(payload))), nil
}
