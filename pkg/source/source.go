// Package source turns discovered paths into text documents.
//
// A path is either a plain text file or a zip container whose entries (and
// the entries of any zip nested inside it) are scanned for text files. Both
// kinds implement Source so callers never branch on the file type.
package source

import (
	"strings"

	"txthistogram/pkg/config"

	"go.uber.org/zap"
)

// Document is the text of one file or archive entry.
// Err is set when the content could not be read; Text is empty in that case.
type Document struct {
	Name string // File path, or archive path and entry names joined by "!".
	Text string
	Err  error
}

// Source produces the documents held by one discovered path.
type Source interface {
	Path() string
	// Documents returns the readable and unreadable documents of the source.
	// A non-nil error means the source as a whole could not be opened and
	// contributes no documents.
	Documents() ([]Document, error)
}

// Classifier picks the Source variant for a path by its extension.
type Classifier struct {
	textExt    string
	archiveExt string
	maxDepth   int
	maxNested  int64
	logger     *zap.Logger
}

// NewClassifier builds a classifier from the run configuration.
func NewClassifier(cfg config.Config, logger *zap.Logger) *Classifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Classifier{
		textExt:    cfg.TextExtension,
		archiveExt: cfg.ArchiveExtension,
		maxDepth:   cfg.MaxArchiveDepth,
		maxNested:  cfg.MaxNestedArchiveBytes,
		logger:     logger,
	}
}

// For returns the Source for path. Anything that is not an archive is read as plain text.
func (c *Classifier) For(path string) Source {
	if strings.HasSuffix(path, c.archiveExt) {
		return NewZipArchive(path, c.textExt, c.archiveExt, c.maxDepth, c.maxNested, c.logger)
	}
	return PlainFile{path: path}
}
