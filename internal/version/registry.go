package version

import (
	"fmt"
	"sort"
	"sync"

	"github.com/arunjitsingh/id3/internal/frame"
)

// UnsupportedVersionError is returned for tag major versions without a
// registered frame layout.
type UnsupportedVersionError struct {
	Major  byte
	Header []byte
}

func (e *UnsupportedVersionError) Error() string {
	return fmt.Sprintf("unsupported ID3v2 version %d (header %x)", e.Major, e.Header)
}

var (
	regMu    sync.RWMutex
	registry = map[byte]frame.Config{}
)

// Register stores the frame layout for a major version.
func Register(major byte, cfg frame.Config) {
	regMu.Lock()
	defer regMu.Unlock()
	registry[major] = cfg
}

// Lookup returns the frame layout for a major version.
func Lookup(major byte) (frame.Config, error) {
	regMu.RLock()
	defer regMu.RUnlock()
	cfg, ok := registry[major]
	if !ok {
		return frame.Config{}, &UnsupportedVersionError{Major: major}
	}
	return cfg, nil
}

// Supported lists the registered major versions in ascending order.
func Supported() []byte {
	regMu.RLock()
	defer regMu.RUnlock()
	out := make([]byte, 0, len(registry))
	for major := range registry {
		out = append(out, major)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
