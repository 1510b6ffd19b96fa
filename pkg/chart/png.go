package chart

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"strconv"

	"txthistogram/pkg/histogram"

	"go.uber.org/zap"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

var (
	backgroundColor = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	inkColor        = color.RGBA{A: 255}
	barColor        = color.RGBA{R: 255, G: 200, A: 255}
	barEdgeColor    = color.RGBA{G: 255, B: 255, A: 255}
)

const (
	chartTitle = "Word Count Histogram"
	xAxisTitle = "Word Count"
	yAxisTitle = "Frequency"
)

var _ Renderer = (*PNG)(nil)

// PNG renders charts as PNG files.
type PNG struct {
	logger *zap.Logger
}

// NewPNG creates a PNG renderer.
func NewPNG(logger *zap.Logger) *PNG {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PNG{logger: logger}
}

// Render draws t and writes it to path, replacing any existing file.
func (p *PNG) Render(t histogram.Table, interval, width, height int, path string) (err error) {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("chart dimensions must be positive, got %dx%d", width, height)
	}
	img := Draw(t, interval, width, height)

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create chart file: %w", err)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close chart file: %w", cerr)
		}
	}()

	if err := png.Encode(out, img); err != nil {
		return fmt.Errorf("failed to encode chart: %w", err)
	}
	p.logger.Debug("Rendered chart", zap.String("path", path), zap.Int("width", width), zap.Int("height", height))
	return nil
}

// Draw lays out the chart on a width x height canvas. The plot occupies the
// middle two thirds in each direction; titles and tick labels use the margins.
func Draw(t histogram.Table, interval, width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(backgroundColor), image.Point{}, draw.Src)

	left, right := width/6, width/6*5
	top, bottom := height/6, height/6*5

	drawCentered(img, chartTitle, image.Rect(0, 0, width, top))
	drawCentered(img, xAxisTitle, image.Rect(0, height-height/6, width, height))
	drawVertical(img, yAxisTitle, image.Rect(0, 0, left/2, height))
	if t.Unreadable > 0 {
		drawCentered(img, fmt.Sprintf("%d files could not be read", t.Unreadable), image.Rect(0, 0, width, top/3))
	}

	hline(img, left, right, bottom, inkColor)
	vline(img, left, top, bottom, inkColor)

	keys := t.Keys()
	maxValue := t.Max()

	drawText(img, "0", left/2, bottom)
	if maxValue > 0 {
		drawText(img, strconv.FormatFloat(float64(maxValue)/2, 'g', 4, 64), left/2, (top+bottom)/2)
		drawText(img, strconv.Itoa(maxValue), left/2, top+basicfont.Face7x13.Ascent)
	}
	if len(keys) == 0 {
		return img
	}

	contentWidth := right - left
	contentHeight := bottom - top
	barWidth := contentWidth / len(keys)
	if barWidth < 1 {
		barWidth = 1
	}
	labelY := bottom + basicfont.Face7x13.Height

	pos := left + 1
	for _, k := range keys {
		v := t.Counts[k]
		if maxValue > 0 && v > 0 {
			barHeight := v * contentHeight / maxValue
			bar := image.Rect(pos+1, bottom-barHeight, pos+barWidth, bottom)
			draw.Draw(img, bar, image.NewUniform(barColor), image.Point{}, draw.Src)
			strokeRect(img, bar, barEdgeColor)
		}
		drawText(img, strconv.Itoa(k), pos, labelY)
		pos += barWidth
	}
	drawText(img, strconv.Itoa(keys[len(keys)-1]+interval), pos, labelY)
	return img
}

func hline(img *image.RGBA, x0, x1, y int, c color.Color) {
	for x := x0; x <= x1; x++ {
		img.Set(x, y, c)
	}
}

func vline(img *image.RGBA, x, y0, y1 int, c color.Color) {
	for y := y0; y <= y1; y++ {
		img.Set(x, y, c)
	}
}

func strokeRect(img *image.RGBA, r image.Rectangle, c color.Color) {
	hline(img, r.Min.X, r.Max.X-1, r.Min.Y, c)
	hline(img, r.Min.X, r.Max.X-1, r.Max.Y-1, c)
	vline(img, r.Min.X, r.Min.Y, r.Max.Y-1, c)
	vline(img, r.Max.X-1, r.Min.Y, r.Max.Y-1, c)
}

func newDrawer(img *image.RGBA) *font.Drawer {
	return &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(inkColor),
		Face: basicfont.Face7x13,
	}
}

// drawText draws s with its baseline starting at (x, y).
func drawText(img *image.RGBA, s string, x, y int) {
	d := newDrawer(img)
	d.Dot = fixed.P(x, y)
	d.DrawString(s)
}

func drawCentered(img *image.RGBA, s string, r image.Rectangle) {
	d := newDrawer(img)
	face := basicfont.Face7x13
	x := r.Min.X + (r.Dx()-d.MeasureString(s).Round())/2
	y := r.Min.Y + (r.Dy()-face.Height)/2 + face.Ascent
	d.Dot = fixed.P(x, y)
	d.DrawString(s)
}

// drawVertical stacks the characters of s top to bottom, centered in r.
func drawVertical(img *image.RGBA, s string, r image.Rectangle) {
	face := basicfont.Face7x13
	runes := []rune(s)
	y := r.Min.Y + (r.Dy()-len(runes)*face.Height)/2 + face.Ascent
	for _, ch := range runes {
		drawCentered(img, string(ch), image.Rect(r.Min.X, y-face.Ascent, r.Max.X, y-face.Ascent+face.Height))
		y += face.Height
	}
}
