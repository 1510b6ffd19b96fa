// Package chart renders bucketed histograms as bitmap bar charts.
package chart

import (
	"txthistogram/pkg/histogram"
)

// Renderer draws a bucketed table to an image file at path.
type Renderer interface {
	Render(t histogram.Table, interval, width, height int, path string) error
}
