package histogram

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"txthistogram/pkg/config"
	"txthistogram/pkg/discover"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
)

func writeTree(t *testing.T, root string, files map[string][]byte) {
	t.Helper()
	for rel, data := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, data, 0644))
	}
}

// zipOf builds an in-memory zip; entries are written in name order given by names.
func zipOf(t *testing.T, names []string, data map[string][]byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for _, name := range names {
		f, err := w.Create(name)
		require.NoError(t, err)
		_, err = f.Write(data[name])
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func TestBuildPlainFiles(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string][]byte{
		"a.txt":     []byte("hello world"),
		"b.txt":     []byte("one"),
		"readme.md": []byte("not counted at all"),
	})
	b := NewBuilder(config.Default(), zaptest.NewLogger(t))

	table, err := b.Build(root, 1)
	require.NoError(t, err)
	assert.Equal(t, map[int]int{1: 1, 2: 1}, table.Map())

	table, err = b.Build(root, 5)
	require.NoError(t, err)
	assert.Equal(t, map[int]int{0: 2}, table.Map())
}

func TestBuildNestedArchive(t *testing.T) {
	inner := zipOf(t, []string{"inner.txt"}, map[string][]byte{"inner.txt": []byte("x y z")})
	outer := zipOf(t, []string{"nested.zip"}, map[string][]byte{"nested.zip": inner})

	root := t.TempDir()
	writeTree(t, root, map[string][]byte{"sub/outer.zip": outer})

	table, err := NewBuilder(config.Default(), zaptest.NewLogger(t)).Build(root, 1)
	require.NoError(t, err)
	assert.Equal(t, map[int]int{3: 1}, table.Map())
}

func TestBuildUnreadableFile(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string][]byte{"ok.txt": []byte("four words right here")})

	core, logs := observer.New(zapcore.WarnLevel)
	b := NewBuilder(config.Default(), zap.New(core))
	walk := b.discover
	b.discover = func(root string) ([]string, error) {
		paths, err := walk(root)
		return append(paths, filepath.Join(root, "vanished.txt")), err
	}

	for _, interval := range []int{1, 2, 5, 100} {
		table, err := b.Build(root, interval)
		require.NoError(t, err)
		assert.Equal(t, 1, table.Map()[UnreadableKey], "interval %d", interval)
		assert.Equal(t, 1, table.Total(), "interval %d", interval)
	}
	assert.Equal(t, 4, logs.FilterMessage("Failed to read file").Len())
}

func TestBuildPermissionDeniedFile(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced for root")
	}
	root := t.TempDir()
	writeTree(t, root, map[string][]byte{"secret.txt": []byte("hidden words")})
	require.NoError(t, os.Chmod(filepath.Join(root, "secret.txt"), 0))

	table, err := NewBuilder(config.Default(), zaptest.NewLogger(t)).Build(root, 3)
	require.NoError(t, err)
	assert.Equal(t, map[int]int{UnreadableKey: 1}, table.Map())
}

func TestBuildUnopenableArchiveContributesNothing(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string][]byte{
		"broken.zip": []byte("definitely not a zip"),
		"fine.txt":   []byte("a b"),
	})

	core, logs := observer.New(zapcore.WarnLevel)
	table, err := NewBuilder(config.Default(), zap.New(core)).Build(root, 1)
	require.NoError(t, err)
	assert.Equal(t, map[int]int{2: 1}, table.Map())
	assert.Equal(t, 1, logs.FilterMessage("Failed to read archive").Len())
}

func TestBuildEmptyTree(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "a", "b"), 0755))

	table, stats, err := NewBuilder(config.Default(), zaptest.NewLogger(t)).BuildWithStats(root, 4)
	require.NoError(t, err)
	assert.True(t, table.Empty())
	assert.Empty(t, Format(table, 4))
	assert.Zero(t, stats.Files)
	assert.Zero(t, stats.Documents)
}

func TestBuildStatsAndIgnore(t *testing.T) {
	root := t.TempDir()
	archive := zipOf(t, []string{"one.txt", "two.txt"}, map[string][]byte{
		"one.txt": []byte("alpha"),
		"two.txt": []byte("beta gamma"),
	})
	writeTree(t, root, map[string][]byte{
		"bundle.zip":            archive,
		"notes.txt":             []byte("delta epsilon zeta"),
		"skip/ignored.txt":      []byte("should not count"),
		discover.IgnoreFileName: []byte("skip\n"),
	})

	cfg := config.Default()
	cfg.IgnorePatterns = []string{"*.draft.txt"}
	writeTree(t, root, map[string][]byte{"x.draft.txt": []byte("nope")})

	table, stats, err := NewBuilder(cfg, zaptest.NewLogger(t)).BuildWithStats(root, 1)
	require.NoError(t, err)
	assert.Equal(t, map[int]int{1: 1, 2: 1, 3: 1}, table.Map())
	assert.Equal(t, 2, stats.Files)
	assert.Equal(t, 3, stats.Documents)
	assert.Zero(t, stats.Unreadable)
}

func TestBuildRejectsInvalidInterval(t *testing.T) {
	_, err := NewBuilder(config.Default(), nil).Build(t.TempDir(), 0)
	assert.Error(t, err)
}
