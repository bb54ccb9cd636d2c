package id3

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Field names present in Result.Fields.
const (
	FieldAlbum    = "album"
	FieldArtist   = "artist"
	FieldTitle    = "title"
	FieldYear     = "year"
	FieldDuration = "duration"
	FieldArtwork  = "artwork"
)

// FieldSet offers typed helpers on top of the decoded field map.
type FieldSet struct {
	data map[string]string
}

// FieldSet returns a FieldSet wrapper for the result's fields.
func (r Result) FieldSet() FieldSet {
	return FieldSet{data: r.Fields}
}

// Map exposes the underlying map.
func (fs FieldSet) Map() map[string]string {
	return fs.data
}

// String returns the field with trailing NUL terminators removed.
func (fs FieldSet) String(key string) (string, error) {
	v, ok := fs.data[key]
	if !ok {
		return "", fmt.Errorf("field %q missing", key)
	}
	return strings.TrimRight(v, "\x00"), nil
}

// Int parses the field as a decimal integer.
func (fs FieldSet) Int(key string) (int64, error) {
	s, err := fs.String(key)
	if err != nil {
		return 0, err
	}
	i, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("field %q is not integer: %w", key, err)
	}
	return i, nil
}

// Duration interprets the duration field, stored in milliseconds.
func (fs FieldSet) Duration() (time.Duration, error) {
	ms, err := fs.Int(FieldDuration)
	if err != nil {
		return 0, err
	}
	return time.Duration(ms) * time.Millisecond, nil
}

// Artwork decodes the artwork data URI into its MIME type and bytes.
func (fs FieldSet) Artwork() (string, []byte, error) {
	uri, err := fs.String(FieldArtwork)
	if err != nil {
		return "", nil, err
	}
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return "", nil, fmt.Errorf("field %q is not a data URI", FieldArtwork)
	}
	mime, payload, ok := strings.Cut(rest, ";base64,")
	if !ok {
		return "", nil, fmt.Errorf("field %q is not base64 encoded", FieldArtwork)
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("field %q: %w", FieldArtwork, err)
	}
	return mime, data, nil
}
