package artwork

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
)

func TestFileSinkWrite(t *testing.T) {
	dir := t.TempDir()
	log, hook := test.NewNullLogger()
	sink := NewFileSink(filepath.Join(dir, "cover"), log)

	data := []byte{0xFF, 0xD8, 0xFF}
	sink.Write(data, "jpg")
	data[0] = 0 // the sink owns a copy
	sink.Wait()

	got, err := os.ReadFile(filepath.Join(dir, "cover.jpg"))
	require.NoError(t, err)
	require.Equal(t, []byte{0xFF, 0xD8, 0xFF}, got)
	for _, entry := range hook.AllEntries() {
		require.NotEqual(t, logrus.ErrorLevel, entry.Level)
	}
}

func TestFileSinkWriteFailureIsLogged(t *testing.T) {
	log, hook := test.NewNullLogger()
	sink := NewFileSink(filepath.Join(t.TempDir(), "missing", "cover"), log)

	sink.Write([]byte("png"), "png")
	sink.Wait()

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	require.Equal(t, logrus.ErrorLevel, entry.Level)
	require.Contains(t, entry.Data["path"], "cover.png")
}
