package artwork

import (
	"fmt"
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

// Sink receives extracted artwork bytes. Writes are fire-and-forget: callers
// never learn whether a write succeeded.
type Sink interface {
	Write(data []byte, ext string)
}

// FileSink writes artwork to "<prefix>.<ext>" in the background.
type FileSink struct {
	Prefix string
	Log    logrus.FieldLogger

	wg sync.WaitGroup
}

var _ Sink = (*FileSink)(nil)

// NewFileSink returns a sink writing next to prefix.
func NewFileSink(prefix string, log logrus.FieldLogger) *FileSink {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &FileSink{Prefix: prefix, Log: log}
}

// Path returns the destination for the given extension.
func (s *FileSink) Path(ext string) string {
	return fmt.Sprintf("%s.%s", s.Prefix, ext)
}

// Write copies data and starts the write. Failures are logged.
func (s *FileSink) Write(data []byte, ext string) {
	buf := make([]byte, len(data))
	copy(buf, data)
	path := s.Path(ext)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := os.WriteFile(path, buf, 0o644); err != nil {
			s.logger().WithError(err).WithField("path", path).Error("failed to write artwork")
			return
		}
		s.logger().WithFields(logrus.Fields{"path": path, "bytes": len(buf)}).Debug("artwork written")
	}()
}

// Wait blocks until all pending writes have finished.
func (s *FileSink) Wait() {
	s.wg.Wait()
}

func (s *FileSink) logger() logrus.FieldLogger {
	if s.Log == nil {
		return logrus.StandardLogger()
	}
	return s.Log
}
