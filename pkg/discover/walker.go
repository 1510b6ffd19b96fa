// Package discover finds candidate files under a directory tree.
package discover

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// Walker lists files whose names end with one of a set of extensions.
type Walker struct {
	extensions []string
	ignore     *Ignore
	logger     *zap.Logger
}

// NewWalker creates a walker. A nil ignore matches nothing.
func NewWalker(extensions []string, ignore *Ignore, logger *zap.Logger) *Walker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Walker{
		extensions: extensions,
		ignore:     ignore,
		logger:     logger,
	}
}

// Discover returns the absolute paths of matching files under root.
//
// Directories that cannot be listed, including root itself, contribute no
// files and do not stop the walk. Symlinked files are followed; symlinked
// directories are not descended.
func (w *Walker) Discover(root string) []string {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		w.logger.Debug("Failed to resolve root path", zap.String("path", root), zap.Error(err))
		return nil
	}
	w.logger.Debug("Starting file discovery", zap.String("root", absRoot), zap.Strings("extensions", w.extensions))

	var files []string
	stack := []string{absRoot}
	for len(stack) > 0 {
		dir := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		entries, err := os.ReadDir(dir)
		if err != nil {
			w.logger.Debug("Skipping unreadable directory", zap.String("dir", dir), zap.Error(err))
			continue
		}

		var subdirs []string
		for _, entry := range entries {
			path := filepath.Join(dir, entry.Name())
			if w.ignore.Matches(relativeTo(absRoot, path)) {
				w.logger.Debug("Skipping ignored path", zap.String("path", path))
				continue
			}

			switch entryKind(entry, path) {
			case kindDir:
				subdirs = append(subdirs, path)
			case kindFile:
				if w.matches(entry.Name()) {
					files = append(files, path)
				}
			}
		}

		// Push in reverse so subdirectories are visited in name order.
		for i := len(subdirs) - 1; i >= 0; i-- {
			stack = append(stack, subdirs[i])
		}
	}

	w.logger.Debug("Completed file discovery", zap.String("root", absRoot), zap.Int("files", len(files)))
	return files
}

func (w *Walker) matches(name string) bool {
	for _, ext := range w.extensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}

type kind int

const (
	kindOther kind = iota
	kindFile
	kindDir
)

func entryKind(entry fs.DirEntry, path string) kind {
	mode := entry.Type()
	switch {
	case mode.IsDir():
		return kindDir
	case mode.IsRegular():
		return kindFile
	case mode&fs.ModeSymlink != 0:
		info, err := os.Stat(path)
		if err == nil && info.Mode().IsRegular() {
			return kindFile
		}
	}
	return kindOther
}

// relativeTo returns path relative to root in slash form, as ignore patterns expect.
func relativeTo(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}
