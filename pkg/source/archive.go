package source

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
)

// ErrEntryTooLarge is returned when a nested archive exceeds the configured size limit.
var ErrEntryTooLarge = errors.New("archive entry exceeds size limit")

// entrySeparator joins an archive path with the names of the entries inside it.
const entrySeparator = "!"

// ZipArchive is a zip container whose text entries are counted, including
// entries of zip files nested inside it at any depth up to maxDepth.
type ZipArchive struct {
	path       string
	textExt    string
	archiveExt string
	maxDepth   int
	maxNested  int64 // Largest nested archive entry read into memory, in bytes.
	logger     *zap.Logger
}

// NewZipArchive returns the Source for a zip file on disk.
func NewZipArchive(path, textExt, archiveExt string, maxDepth int, maxNested int64, logger *zap.Logger) *ZipArchive {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ZipArchive{
		path:       path,
		textExt:    textExt,
		archiveExt: archiveExt,
		maxDepth:   maxDepth,
		maxNested:  maxNested,
		logger:     logger,
	}
}

func (a *ZipArchive) Path() string { return a.path }

// Documents opens the archive and scans it. The archive handle is closed on
// every path out of this method; a close failure is logged, never returned.
func (a *ZipArchive) Documents() ([]Document, error) {
	rc, err := zip.OpenReader(a.path)
	if err != nil {
		return nil, fmt.Errorf("error opening archive %s: %w", a.path, err)
	}
	defer func() {
		if cerr := rc.Close(); cerr != nil {
			a.logger.Warn("Failed to close archive", zap.String("archive", a.path), zap.Error(cerr))
		}
	}()

	return a.scan(&rc.Reader), nil
}

// frame is one archive on the scan stack.
type frame struct {
	name  string
	files []*zip.File
	next  int
	depth int
}

// scan walks the archive depth first with an explicit stack so that entries
// come out in archive order with nested contents flattened in place.
func (a *ZipArchive) scan(root *zip.Reader) []Document {
	var docs []Document
	stack := []*frame{{name: a.path, files: root.File, depth: 1}}

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		if top.next >= len(top.files) {
			stack = stack[:len(stack)-1]
			continue
		}
		entry := top.files[top.next]
		top.next++
		name := top.name + entrySeparator + entry.Name

		switch {
		case strings.HasSuffix(entry.Name, a.archiveExt):
			if top.depth >= a.maxDepth {
				a.logger.Warn("Skipping nested archive beyond depth limit",
					zap.String("entry", name),
					zap.Int("maxDepth", a.maxDepth))
				continue
			}
			data, err := readEntry(entry, a.maxNested)
			if errors.Is(err, ErrEntryTooLarge) {
				a.logger.Warn("Skipping nested archive above size limit",
					zap.String("entry", name),
					zap.Int64("maxBytes", a.maxNested))
				continue
			}
			if err != nil {
				docs = append(docs, Document{Name: name, Err: err})
				continue
			}
			nested, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
			if err != nil {
				a.logger.Warn("Failed to open nested archive", zap.String("entry", name), zap.Error(err))
				continue
			}
			stack = append(stack, &frame{name: name, files: nested.File, depth: top.depth + 1})

		case strings.HasSuffix(entry.Name, a.textExt):
			data, err := readEntry(entry, 0)
			if err != nil {
				docs = append(docs, Document{Name: name, Err: err})
				continue
			}
			docs = append(docs, Document{Name: name, Text: string(data)})
		}
	}
	return docs
}

// readEntry reads a zip entry fully. A positive limit caps the bytes read;
// larger entries fail with ErrEntryTooLarge.
func readEntry(entry *zip.File, limit int64) (data []byte, err error) {
	rc, err := entry.Open()
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rc.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	if limit <= 0 {
		return io.ReadAll(rc)
	}
	data, err = io.ReadAll(io.LimitReader(rc, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, ErrEntryTooLarge
	}
	return data, nil
}
