package main

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/arunjitsingh/id3/internal/testutil"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	var out, logs bytes.Buffer
	log := logrus.New()
	log.SetOutput(&logs)
	cmd := newRootCmd(&out, log)
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	err := cmd.Execute()
	return out.String(), logs.String(), err
}

func TestRunHexJSON(t *testing.T) {
	hexStr := testutil.LoadHex(t, "tags/v24_extended.hex")
	out, _, err := execute(t, "--hex", hexStr)
	require.NoError(t, err)

	var fields map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &fields))
	require.Equal(t, map[string]string{"title": "Extended", "artist": "Someone"}, fields)
}

func TestRunFileTableWithArtwork(t *testing.T) {
	dir := t.TempDir()
	data, err := os.ReadFile(testutil.Path(t, "tags/v23_full.hex"))
	require.NoError(t, err)
	raw := make([]byte, len(bytes.TrimSpace(data))/2)
	_, err = hex.Decode(raw, bytes.TrimSpace(data))
	require.NoError(t, err)
	song := filepath.Join(dir, "song.mp3")
	require.NoError(t, os.WriteFile(song, raw, 0o644))

	out, _, err := execute(t, "-f", song, "-a", filepath.Join(dir, "cover"), "--format", "TABLE")
	require.NoError(t, err)
	require.Contains(t, out, "Kind of Blue")
	require.Contains(t, out, "data:image/jpeg;base64,")
	require.Contains(t, out, "ID3v2.3.0")

	art, err := os.ReadFile(filepath.Join(dir, "cover.jpg"))
	require.NoError(t, err)
	// artwork is written from a fixed offset inside the MIME string
	require.True(t, bytes.HasPrefix(art, []byte("/JPG\x00\x03\x00")))
}

func TestRunPositionalFileWithoutTag(t *testing.T) {
	song := filepath.Join(t.TempDir(), "plain.mp3")
	require.NoError(t, os.WriteFile(song, []byte{0xFF, 0xFB, 0x90, 0x00}, 0o644))
	out, logs, err := execute(t, song)
	require.NoError(t, err)
	require.Empty(t, out)
	require.Contains(t, logs, "no ID3v2 tag found")
}

func TestRunRequiresInput(t *testing.T) {
	_, _, err := execute(t)
	require.Error(t, err)
	require.Contains(t, err.Error(), "need an MP3")
}

func TestRunPartialTagWarns(t *testing.T) {
	_, logs, err := execute(t, "--hex", testutil.LoadHex(t, "tags/v23_truncated.hex"))
	require.NoError(t, err)
	require.Contains(t, logs, "partially decoded")
}

func TestRunConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("format = \"table\"\n"), 0o644))
	out, _, err := execute(t, "--config", path, "--hex", testutil.LoadHex(t, "tags/v22_basic.hex"))
	require.NoError(t, err)
	require.Contains(t, out, "Björk")
	require.True(t, strings.Contains(out, "╭"), out)
}

func TestRunInvalidFormat(t *testing.T) {
	_, _, err := execute(t, "--format", "xml", "--hex", "00")
	require.Error(t, err)
}

func TestVersionsCommand(t *testing.T) {
	out, _, err := execute(t, "versions")
	require.NoError(t, err)
	require.Equal(t, "2.2\n2.3\n2.4\n", out)
}

func TestOrderedKeys(t *testing.T) {
	keys := orderedKeys(map[string]string{"zeta": "", "year": "", "title": "", "alpha": ""})
	require.Equal(t, []string{"title", "year", "alpha", "zeta"}, keys)
}
