package histogram

import (
	"fmt"
	"path/filepath"
	"time"

	"txthistogram/pkg/config"
	"txthistogram/pkg/discover"
	"txthistogram/pkg/source"
	"txthistogram/pkg/wordcount"

	"go.uber.org/zap"
)

// Builder runs the discovery, counting and bucketing pipeline.
type Builder struct {
	cfg    config.Config
	logger *zap.Logger

	// discover lists candidate paths under root; replaced in tests.
	discover func(root string) ([]string, error)
	classify func(path string) source.Source
}

// Stats summarises one pipeline run.
type Stats struct {
	Files      int // Paths returned by discovery.
	Documents  int // Documents counted, readable or not.
	Unreadable int
	Elapsed    time.Duration
}

// NewBuilder creates a Builder using cfg's extensions, ignore patterns and archive depth.
func NewBuilder(cfg config.Config, logger *zap.Logger) *Builder {
	if logger == nil {
		logger = zap.NewNop()
	}
	b := &Builder{cfg: cfg, logger: logger}
	b.discover = b.walk
	b.classify = source.NewClassifier(cfg, logger).For
	return b
}

// Build scans root and returns the table bucketed by interval.
func (b *Builder) Build(root string, interval int) (Table, error) {
	t, _, err := b.BuildWithStats(root, interval)
	return t, err
}

// BuildWithStats is Build that also reports what the run touched.
// Individual unreadable files and archives never fail the run.
func (b *Builder) BuildWithStats(root string, interval int) (Table, Stats, error) {
	startTime := time.Now()
	if interval < 1 {
		return Table{}, Stats{}, fmt.Errorf("interval must be at least 1, got %d", interval)
	}
	b.logger.Info("Starting histogram build", zap.String("root", root), zap.Int("interval", interval))

	paths, err := b.discover(root)
	if err != nil {
		return Table{}, Stats{}, err
	}

	counts := b.Count(paths)
	raw := Tally(counts)
	bucketed, err := Bucket(raw, interval)
	if err != nil {
		return Table{}, Stats{}, err
	}

	stats := Stats{
		Files:      len(paths),
		Documents:  len(counts),
		Unreadable: raw.Unreadable,
		Elapsed:    time.Since(startTime),
	}
	b.logger.Info("Histogram build completed",
		zap.Int("files", stats.Files),
		zap.Int("documents", stats.Documents),
		zap.Int("unreadable", stats.Unreadable),
		zap.Duration("elapsed", stats.Elapsed))
	return bucketed, stats, nil
}

// Count reads every path and counts the words of each document it holds.
func (b *Builder) Count(paths []string) []WordCount {
	var counts []WordCount
	for _, path := range paths {
		src := b.classify(path)
		docs, err := src.Documents()
		if err != nil {
			b.logger.Warn("Failed to read archive", zap.String("archive", src.Path()), zap.Error(err))
			continue
		}
		for _, doc := range docs {
			if doc.Err != nil {
				b.logger.Warn("Failed to read file", zap.String("file", doc.Name), zap.Error(doc.Err))
				counts = append(counts, Failed(doc.Name))
				continue
			}
			counts = append(counts, Counted(doc.Name, wordcount.Count(doc.Text)))
		}
	}
	return counts
}

func (b *Builder) walk(root string) ([]string, error) {
	ig, err := discover.NewIgnore(b.logger, b.cfg.IgnorePatterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to compile ignore patterns: %w", err)
	}
	ignoreFile := filepath.Join(root, discover.IgnoreFileName)
	if err := ig.LoadFile(ignoreFile); err != nil {
		b.logger.Warn("Failed to load ignore file", zap.String("file", ignoreFile), zap.Error(err))
	}
	return discover.NewWalker(b.cfg.Extensions(), ig, b.logger).Discover(root), nil
}
