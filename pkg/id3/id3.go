package id3

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"unicode"

	"github.com/arunjitsingh/id3/internal/header"
	"github.com/arunjitsingh/id3/internal/options"
	"github.com/arunjitsingh/id3/internal/reader"
	"github.com/arunjitsingh/id3/internal/version"
)

// ErrNoTag is returned for input that does not start with an ID3v2 tag.
var ErrNoTag = header.ErrNoTag

// Result captures the outcome of Read.
type Result struct {
	Version    string
	ByteCount  int
	Fields     map[string]string
	Partial    bool
	StopReason string
}

// String renders a human-readable representation of the result.
func (r Result) String() string {
	summary := map[string]any{
		"version":    r.Version,
		"byte_count": r.ByteCount,
		"stop":       r.StopReason,
	}
	if r.Partial {
		summary["partial"] = true
	}
	if len(r.Fields) > 0 {
		summary["fields"] = r.Fields
	}
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Sprintf("version: %s bytes:%d (marshal error: %v)", r.Version, r.ByteCount, err)
	}
	return string(data)
}

// Read decodes the ID3v2 tag at the start of data. Frames that cannot be
// decoded end iteration early; the fields decoded before them are returned
// with Partial set.
func Read(ctx context.Context, data []byte, opts Options) (Result, error) {
	log := options.Logger(ctx)
	sink, err := opts.sink(log)
	if err != nil {
		return Result{}, err
	}
	if !header.HasTag(data) {
		return Result{}, ErrNoTag
	}
	res, err := reader.Reader{Log: log, Sink: sink}.ReadTag(data)
	if err != nil {
		return Result{}, err
	}
	return Result{
		Version:    res.Header.Version(),
		ByteCount:  len(data),
		Fields:     res.Tags,
		Partial:    res.Stop.Faulted(),
		StopReason: res.Stop.Reason.String(),
	}, nil
}

// SupportedVersions lists the ID3v2 major versions Read understands.
func SupportedVersions() []byte {
	return version.Supported()
}

// ReadHex decodes a hex dump of the start of an MP3 file.
func ReadHex(ctx context.Context, raw string, opts Options) (Result, error) {
	data, err := decodeHex(raw)
	if err != nil {
		return Result{}, err
	}
	return Read(ctx, data, opts)
}

// ReadFile reads the file at path and decodes its tag.
func ReadFile(ctx context.Context, path string, opts Options) (Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Result{}, fmt.Errorf("read %s: %w", path, err)
	}
	return Read(ctx, data, opts)
}

func decodeHex(input string) ([]byte, error) {
	clean := stripWhitespace(input)
	if strings.HasPrefix(clean, "0x") || strings.HasPrefix(clean, "0X") {
		clean = clean[2:]
	}
	if len(clean)%2 != 0 {
		return nil, fmt.Errorf("hex input must contain an even number of digits, got %d", len(clean))
	}
	decoded := make([]byte, len(clean)/2)
	if _, err := hex.Decode(decoded, []byte(clean)); err != nil {
		return nil, fmt.Errorf("decode hex: %w", err)
	}
	return decoded, nil
}

func stripWhitespace(s string) string {
	builder := strings.Builder{}
	builder.Grow(len(s))
	for _, r := range s {
		if unicode.IsSpace(r) || r == '|' || r == '_' {
			continue
		}
		builder.WriteRune(r)
	}
	return builder.String()
}
