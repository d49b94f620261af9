// Package viz serves diagnostic plots of the pulse trains moving
// through the pipeline over HTTP.
package viz

import (
	"image/color"

	"gonum.org/v1/plot"
)

// ImageContainer is one rendered plot.
type ImageContainer struct {
	name string
	data []byte
}

// Producer renders a plot on demand.  GetImage may return nil when
// there is nothing to show yet.
type Producer interface {
	Name() string
	GetImage() *ImageContainer
}

func plotWithDefaults() *plot.Plot {
	p := plot.New()
	p.BackgroundColor = color.Black
	p.Title.TextStyle.Color = color.White
	p.Y.Label.TextStyle.Color = color.White
	p.Y.Color = color.White
	p.X.Label.TextStyle.Color = color.White
	p.X.Color = color.White
	p.Legend.TextStyle.Color = color.White
	p.X.Tick.Color = color.White
	p.Y.Tick.Color = color.White
	p.X.Tick.Label.Color = color.White
	p.Y.Tick.Label.Color = color.White
	return p
}
