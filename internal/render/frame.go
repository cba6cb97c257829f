// Package render draws sketch frames as SVG or PNG.
package render

import (
	"fmt"
	"io"

	"github.com/gogpu/gg"
	"github.com/jbeda/geom"

	"voronoi-cells/round"
)

// Shape is one filled cell.
type Shape struct {
	Points round.Polygon
	Fill   gg.RGBA
}

// Frame is everything needed to paint one step of the sketch.
type Frame struct {
	Width, Height int
	Background    gg.RGBA
	Shapes        []Shape

	Sites      []geom.Coord
	SiteRadius float64
	SiteColor  gg.RGBA
}

// ViewBox is the canvas rectangle in frame coordinates.
func (f *Frame) ViewBox() geom.Rect {
	return geom.Rect{
		Min: geom.Coord{X: 0, Y: 0},
		Max: geom.Coord{X: float64(f.Width), Y: float64(f.Height)},
	}
}

// Encoder writes a frame to w in some image format.
type Encoder func(w io.Writer, f *Frame) error

var encoders = map[string]Encoder{
	"svg": WriteSVG,
	"png": WritePNG,
}

// ContentTypes maps format names to MIME types.
var ContentTypes = map[string]string{
	"svg": "image/svg+xml",
	"png": "image/png",
}

// EncoderFor looks up the encoder for a format name.
func EncoderFor(format string) (Encoder, error) {
	enc, ok := encoders[format]
	if !ok {
		return nil, fmt.Errorf("render: unknown format %q", format)
	}
	return enc, nil
}
