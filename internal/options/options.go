package options

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

type contextKey struct{}

// WithLogger stores the provided logger inside the context.
func WithLogger(ctx context.Context, log logrus.FieldLogger) context.Context {
	if log == nil {
		return ctx
	}
	return context.WithValue(ctx, contextKey{}, log)
}

// Logger retrieves the logger from context, falling back to the standard
// logrus logger.
func Logger(ctx context.Context) logrus.FieldLogger {
	if v := ctx.Value(contextKey{}); v != nil {
		if log, ok := v.(logrus.FieldLogger); ok {
			return log
		}
	}
	return logrus.StandardLogger()
}

// ParseArtOut validates an artwork destination prefix. An empty input means
// artwork is not written. A leading "~" expands to the home directory and the
// parent directory must already exist.
func ParseArtOut(input string) (string, error) {
	prefix := strings.TrimSpace(input)
	if prefix == "" {
		return "", nil
	}
	if prefix == "~" || strings.HasPrefix(prefix, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("expand artwork path: %w", err)
		}
		prefix = filepath.Join(home, strings.TrimPrefix(prefix, "~"))
	}
	if strings.HasSuffix(prefix, string(filepath.Separator)) {
		return "", fmt.Errorf("artwork path %q must name a file prefix, not a directory", input)
	}
	dir := filepath.Dir(prefix)
	info, err := os.Stat(dir)
	if err != nil {
		return "", fmt.Errorf("artwork directory: %w", err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("artwork directory %s is not a directory", dir)
	}
	return prefix, nil
}
