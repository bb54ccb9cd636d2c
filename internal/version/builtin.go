package version

import (
	"github.com/arunjitsingh/id3/internal/artwork"
	"github.com/arunjitsingh/id3/internal/codec"
	"github.com/arunjitsingh/id3/internal/frame"
)

// Field names produced by the built-in layouts.
const (
	FieldAlbum    = "album"
	FieldArtist   = "artist"
	FieldTitle    = "title"
	FieldYear     = "year"
	FieldDuration = "duration"
	FieldArtwork  = "artwork"
)

func text(payload []byte, _ artwork.Sink) (string, error) {
	return codec.DecodeText(payload)
}

var (
	// V22 is the v2.2 layout: three byte ids and sizes, no flags.
	V22 = frame.Config{
		IDLength:   3,
		SizeLength: 3,
		Mappings: map[string]frame.Mapping{
			"TAL": {Field: FieldAlbum, Decode: text},
			"TP1": {Field: FieldArtist, Decode: text},
			"TT2": {Field: FieldTitle, Decode: text},
			"TYE": {Field: FieldYear, Decode: text},
			"TLE": {Field: FieldDuration, Decode: text},
			"PIC": {Field: FieldArtwork, Decode: codec.DecodeImage},
		},
	}

	// V23 is shared by v2.3 and v2.4.
	V23 = frame.Config{
		IDLength:    4,
		SizeLength:  4,
		FlagsLength: 2,
		Mappings: map[string]frame.Mapping{
			"TALB": {Field: FieldAlbum, Decode: text},
			"TPE1": {Field: FieldArtist, Decode: text},
			"TIT2": {Field: FieldTitle, Decode: text},
			"TYER": {Field: FieldYear, Decode: text},
			"TLEN": {Field: FieldDuration, Decode: text},
			"APIC": {Field: FieldArtwork, Decode: codec.DecodeImage},
		},
	}
)

func init() {
	Register(2, V22)
	Register(3, V23)
	Register(4, V23)
}
