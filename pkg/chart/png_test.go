package chart

import (
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"txthistogram/pkg/histogram"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func table(t *testing.T, m map[int]int) histogram.Table {
	t.Helper()
	tb, err := histogram.FromMap(m)
	require.NoError(t, err)
	return tb
}

func TestPNGRenderWritesImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "output.png")
	r := NewPNG(zaptest.NewLogger(t))

	require.NoError(t, r.Render(table(t, map[int]int{0: 5}), 5, 600, 600, path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)

	assert.Equal(t, 600, img.Bounds().Dx())
	assert.Equal(t, 600, img.Bounds().Dy())
	assert.Equal(t, color.RGBAModel.Convert(barColor), color.RGBAModel.Convert(img.At(300, 300)))
	assert.Equal(t, color.RGBAModel.Convert(backgroundColor), color.RGBAModel.Convert(img.At(590, 300)))
}

func TestDrawScalesBarsToMaximum(t *testing.T) {
	img := Draw(table(t, map[int]int{0: 4, 10: 1}), 10, 600, 600)

	// Plot spans y 100..500; the tall bar reaches near the top, the short one a quarter up.
	assert.Equal(t, barColor, img.RGBAAt(200, 150))
	assert.Equal(t, backgroundColor, img.RGBAAt(400, 150))
	assert.Equal(t, barColor, img.RGBAAt(400, 480))
}

func TestDrawEmptyAndUnreadableOnly(t *testing.T) {
	assert.NotPanics(t, func() { Draw(histogram.NewTable(), 1, 120, 90) })
	assert.NotPanics(t, func() { Draw(table(t, map[int]int{-1: 2}), 3, 300, 300) })
	assert.NotPanics(t, func() { Draw(table(t, map[int]int{0: 1, 1: 0, 2: 3}), 1, 7, 7) })
}

func TestPNGRenderErrors(t *testing.T) {
	r := NewPNG(nil)
	tb := table(t, map[int]int{1: 1})

	assert.Error(t, r.Render(tb, 1, 0, 100, filepath.Join(t.TempDir(), "a.png")))
	assert.Error(t, r.Render(tb, 1, 100, -5, filepath.Join(t.TempDir(), "b.png")))
	assert.Error(t, r.Render(tb, 1, 100, 100, filepath.Join(t.TempDir(), "missing", "c.png")))
}
