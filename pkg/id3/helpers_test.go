package id3

import (
	"testing"

	"github.com/sirupsen/logrus/hooks/test"

	"github.com/arunjitsingh/id3/internal/artwork"
)

func newFileSinkForTest(t *testing.T, prefix string) *artwork.FileSink {
	t.Helper()
	log, _ := test.NewNullLogger()
	return artwork.NewFileSink(prefix, log)
}
