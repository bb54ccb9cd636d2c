package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/sirupsen/logrus"
)

// Output formats understood by the CLI.
const (
	FormatJSON  = "json"
	FormatTable = "table"
)

// Config holds CLI settings read from TOML.
type Config struct {
	ArtOut   string `toml:"art_out"`
	Format   string `toml:"format"`
	LogLevel string `toml:"log_level"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Format:   FormatJSON,
		LogLevel: "info",
	}
}

// DefaultPath is where Load looks when no path is given.
func DefaultPath() (string, error) {
	return expandPath("~/.config/id3tags/config.toml")
}

// Load reads and validates a configuration file. A missing file yields the
// defaults; exists reports whether the file was found.
func Load(path string) (cfg Config, exists bool, err error) {
	cfg = Default()
	if path == "" {
		path, err = DefaultPath()
		if err != nil {
			return cfg, false, err
		}
	} else if path, err = expandPath(path); err != nil {
		return cfg, false, err
	}

	file, err := os.Open(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return cfg, false, nil
	case err != nil:
		return cfg, false, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	if err := toml.NewDecoder(file).DisallowUnknownFields().Decode(&cfg); err != nil {
		return cfg, true, fmt.Errorf("parse config: %w", err)
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return cfg, true, err
	}
	return cfg, true, nil
}

func (c *Config) normalize() {
	c.Format = strings.ToLower(strings.TrimSpace(c.Format))
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	c.ArtOut = strings.TrimSpace(c.ArtOut)
	if c.Format == "" {
		c.Format = FormatJSON
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

// Validate ensures the configuration is usable.
func (c Config) Validate() error {
	switch c.Format {
	case FormatJSON, FormatTable:
	default:
		return fmt.Errorf("format must be %q or %q, got %q", FormatJSON, FormatTable, c.Format)
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	return nil
}

func expandPath(path string) (string, error) {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		path = filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return filepath.Clean(path), nil
}
