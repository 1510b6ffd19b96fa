// File: pkg/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"
)

// EnvConfigPath names the environment variable consulted when no --config flag is given.
const EnvConfigPath = "TXTHISTOGRAM_CONFIG"

// DefaultMaxNestedArchiveBytes caps a single nested archive entry at 64 MiB.
const DefaultMaxNestedArchiveBytes int64 = 64 << 20

// Config holds the configuration options for a histogram run.
type Config struct {
	Interval              int      `yaml:"interval"`                 // Bucket width; 1 disables aggregation.
	TextExtension         string   `yaml:"text_extension"`           // Suffix of files whose words are counted.
	ArchiveExtension      string   `yaml:"archive_extension"`        // Suffix of zip containers to descend into.
	MaxArchiveDepth       int      `yaml:"max_archive_depth"`        // Deepest nested archive level that is still scanned.
	MaxNestedArchiveBytes int64    `yaml:"max_nested_archive_bytes"` // Largest nested archive held in memory while scanning.
	IgnorePatterns        []string `yaml:"ignore"`                   // Doublestar globs relative to the scan root.
	Chart                 Chart    `yaml:"chart"`
}

// Chart configures the optional bitmap output.
type Chart struct {
	Enabled bool   `yaml:"enabled"`
	Width   int    `yaml:"width"`
	Height  int    `yaml:"height"`
	Output  string `yaml:"output"` // Defaults to output.png inside the scan root when empty.
}

// Default returns the configuration used when no file or flags override it.
func Default() Config {
	return Config{
		Interval:              1,
		TextExtension:         ".txt",
		ArchiveExtension:      ".zip",
		MaxArchiveDepth:       32,
		MaxNestedArchiveBytes: DefaultMaxNestedArchiveBytes,
		Chart: Chart{
			Width:  500,
			Height: 500,
		},
	}
}

// Extensions returns the suffixes the file tree walker must match.
func (c Config) Extensions() []string {
	return []string{c.TextExtension, c.ArchiveExtension}
}

// Validate reports the first setting that would make a run meaningless.
func (c Config) Validate() error {
	if c.Interval < 1 {
		return fmt.Errorf("interval must be at least 1, got %d", c.Interval)
	}
	if c.TextExtension == "" || c.ArchiveExtension == "" {
		return errors.New("text and archive extensions must not be empty")
	}
	if strings.EqualFold(c.TextExtension, c.ArchiveExtension) {
		return fmt.Errorf("text and archive extensions must differ, both are %q", c.TextExtension)
	}
	if c.MaxArchiveDepth < 1 {
		return fmt.Errorf("max_archive_depth must be at least 1, got %d", c.MaxArchiveDepth)
	}
	if c.MaxNestedArchiveBytes < 1 {
		return fmt.Errorf("max_nested_archive_bytes must be at least 1, got %d", c.MaxNestedArchiveBytes)
	}
	if c.Chart.Width <= 0 || c.Chart.Height <= 0 {
		return fmt.Errorf("chart dimensions must be positive, got %dx%d", c.Chart.Width, c.Chart.Height)
	}
	for _, p := range c.IgnorePatterns {
		if !doublestar.ValidatePattern(p) {
			return fmt.Errorf("invalid ignore pattern %q", p)
		}
	}
	return nil
}

// Load reads a YAML config file on top of Default.
// An empty path falls back to $TXTHISTOGRAM_CONFIG; a path that does not exist yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config file: %w", err)
	}
	return cfg, nil
}
