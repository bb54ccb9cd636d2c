package reader

import (
	"errors"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	"github.com/arunjitsingh/id3/internal/frame"
	"github.com/arunjitsingh/id3/internal/header"
	"github.com/arunjitsingh/id3/internal/version"
)

func synchsafe(n int) []byte {
	return []byte{byte(n>>21) & 0x7F, byte(n>>14) & 0x7F, byte(n>>7) & 0x7F, byte(n) & 0x7F}
}

func buildTag(major byte, flags byte, body []byte, trailing int) []byte {
	out := []byte{'I', 'D', '3', major, 0, flags}
	out = append(out, synchsafe(header.Length+len(body))...)
	out = append(out, body...)
	return append(out, make([]byte, trailing)...)
}

func v23Frame(id, payload string) []byte {
	out := append([]byte(id), synchsafe(len(payload))...)
	out = append(out, 0, 0)
	return append(out, payload...)
}

func TestReadTagV23(t *testing.T) {
	data := buildTag(3, 0, v23Frame("TALB", "\x00Kind of Blue"), 0)
	res, err := Reader{}.ReadTag(data)
	require.NoError(t, err)
	require.Equal(t, frame.Tags{version.FieldAlbum: "Kind of Blue"}, res.Tags)
	require.Equal(t, frame.StopEnd, res.Stop.Reason)
}

func TestReadTagV22(t *testing.T) {
	body := append([]byte("TT2\x00\x00\x06\x00Title"), []byte("TP1\x00\x00\x07\x00Artist")...)
	body = append(body, 0, 0, 0, 0)
	res, err := Reader{}.ReadTag(buildTag(2, 0, body, 0))
	require.NoError(t, err)
	require.Equal(t, frame.Tags{"title": "Title", "artist": "Artist"}, res.Tags)
	require.Equal(t, frame.StopPadding, res.Stop.Reason)
}

func TestReadTagV24ExtendedHeader(t *testing.T) {
	ext := []byte{0, 0, 0, 6, 0, 0}
	ext = append(ext, make([]byte, 6)...)
	body := append(ext, v23Frame("TIT2", "\x00Song")...)
	res, err := Reader{}.ReadTag(buildTag(4, 0x40, body, 0))
	require.NoError(t, err)
	require.Equal(t, frame.Tags{"title": "Song"}, res.Tags)
}

func TestReadTagDoesNotReadPastBody(t *testing.T) {
	body := v23Frame("TALB", "\x00Inside")
	data := buildTag(3, 0, body, 0)
	// a frame after the declared body must not be decoded
	data = append(data, v23Frame("TIT2", "\x00Outside")...)
	res, err := Reader{}.ReadTag(data)
	require.NoError(t, err)
	require.Equal(t, frame.Tags{"album": "Inside"}, res.Tags)
}

func TestReadTagUnsupportedVersion(t *testing.T) {
	log, hook := test.NewNullLogger()
	data := buildTag(9, 0, v23Frame("TALB", "\x00X"), 0)
	res, err := Reader{Log: log}.ReadTag(data)
	require.Error(t, err)
	require.Nil(t, res.Tags)

	var verr *version.UnsupportedVersionError
	require.True(t, errors.As(err, &verr))
	require.Equal(t, data[:header.Length], verr.Header)

	require.Len(t, hook.Entries, 1)
	entry := hook.LastEntry()
	require.Equal(t, logrus.ErrorLevel, entry.Level)
	require.True(t, strings.HasPrefix(entry.Data["header"].(string), "494433090000"))
	require.Equal(t, byte(9), entry.Data["version"])
}

func TestReadTagNoMarker(t *testing.T) {
	_, err := Reader{}.ReadTag([]byte("not a tag at all"))
	require.ErrorIs(t, err, header.ErrNoTag)
}

func TestReadTagFaultKeepsPartialResult(t *testing.T) {
	log, hook := test.NewNullLogger()
	body := v23Frame("TALB", "\x00Album")
	body = append(body, []byte("TIT2\x00\x00\x7F\x7F\x00\x00ab")...)
	res, err := Reader{Log: log}.ReadTag(buildTag(3, 0, body, 0))
	require.NoError(t, err)
	require.Equal(t, frame.Tags{"album": "Album"}, res.Tags)
	require.True(t, res.Stop.Faulted())
	require.Len(t, hook.Entries, 1)
}
