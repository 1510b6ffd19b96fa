// File: pkg/discover/ignore.go
package discover

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"go.uber.org/zap"
)

// IgnoreFileName is the per-root file holding extra ignore patterns, one per line.
const IgnoreFileName = ".histignore"

// IgnorePattern is a single doublestar glob, optionally negated with a leading '!'.
type IgnorePattern struct {
	Glob     string // Pattern without the negation prefix.
	Negate   bool   // Re-includes paths matched by earlier patterns.
	Anchored bool   // Matches only from the scan root, never a bare base name.
	Line     string // Original pattern line.
}

// Ignore holds ordered ignore patterns. The last pattern matching a path decides.
type Ignore struct {
	patterns []IgnorePattern
	logger   *zap.Logger
}

// NewIgnore compiles patterns into an Ignore matcher.
func NewIgnore(logger *zap.Logger, patterns ...string) (*Ignore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	ig := &Ignore{logger: logger}
	if err := ig.Add(patterns...); err != nil {
		return nil, err
	}
	return ig, nil
}

// Add appends patterns. Blank lines and '#' comments are skipped.
func (ig *Ignore) Add(lines ...string) error {
	for _, line := range lines {
		p, ok, err := parsePattern(line)
		if err != nil {
			return err
		}
		if ok {
			ig.patterns = append(ig.patterns, p)
		}
	}
	return nil
}

// LoadFile appends the patterns found in file. A missing file is not an error;
// invalid lines are logged and skipped.
func (ig *Ignore) LoadFile(file string) error {
	f, err := os.Open(file)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to open ignore file %s: %w", file, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		p, ok, err := parsePattern(scanner.Text())
		if err != nil {
			ig.logger.Warn("Skipping invalid ignore pattern",
				zap.String("file", file),
				zap.Int("line", lineNo),
				zap.Error(err))
			continue
		}
		if ok {
			ig.patterns = append(ig.patterns, p)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read ignore file %s: %w", file, err)
	}
	ig.logger.Debug("Loaded ignore file", zap.String("file", file), zap.Int("totalPatterns", ig.Len()))
	return nil
}

// Len reports how many patterns are loaded.
func (ig *Ignore) Len() int {
	if ig == nil {
		return 0
	}
	return len(ig.patterns)
}

// Matches reports whether rel, a slash-separated path relative to the scan
// root, is ignored. Unanchored patterns also match the base name at any depth.
func (ig *Ignore) Matches(rel string) bool {
	if ig == nil || rel == "" || rel == "." {
		return false
	}
	ignored := false
	base := path.Base(rel)
	for _, p := range ig.patterns {
		if p.match(rel, base) {
			ignored = !p.Negate
		}
	}
	return ignored
}

func (p IgnorePattern) match(rel, base string) bool {
	if ok, _ := doublestar.Match(p.Glob, rel); ok {
		return true
	}
	if p.Anchored {
		return false
	}
	ok, _ := doublestar.Match(p.Glob, base)
	return ok
}

func parsePattern(line string) (IgnorePattern, bool, error) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return IgnorePattern{}, false, nil
	}

	p := IgnorePattern{Line: line}
	if strings.HasPrefix(trimmed, "!") {
		p.Negate = true
		trimmed = trimmed[1:]
	}
	p.Glob = strings.TrimSuffix(strings.TrimPrefix(trimmed, "/"), "/")
	p.Anchored = strings.HasPrefix(trimmed, "/") || strings.Contains(p.Glob, "/")
	if p.Glob == "" || !doublestar.ValidatePattern(p.Glob) {
		return IgnorePattern{}, false, fmt.Errorf("invalid ignore pattern %q", line)
	}
	return p, true, nil
}

