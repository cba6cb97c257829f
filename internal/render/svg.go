package render

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/gogpu/gg"
	"github.com/jbeda/geom"
)

////////////////////////////////////////////////////////////////////////////
// SVG serialization helper

// SVG writes a minimal SVG document.  The first write error sticks and is
// returned by End.
type SVG struct {
	writer *bufio.Writer
	err    error
}

func NewSVG(w io.Writer) *SVG {
	return &SVG{writer: bufio.NewWriter(w)}
}

func (svg *SVG) printf(format string, a ...interface{}) {
	if svg.err != nil {
		return
	}
	_, svg.err = fmt.Fprintf(svg.writer, format, a...)
}

// BUGBUG: not quoting aware
func extraparams(s []string) string {
	ep := ""
	for i := 0; i < len(s); i++ {
		if strings.Index(s[i], "=") > 0 {
			ep += (s[i]) + " "
		} else if len(s[i]) > 0 {
			ep += fmt.Sprintf("style='%s' ", s[i])
		}
	}
	return ep
}

func (svg *SVG) Start(viewBox geom.Rect, s ...string) {
	svg.printf(`<?xml version="1.0"?>
<svg version="1.1"
     width="%g" height="%g"
     viewBox="%f %f %f %f"
     xmlns="http://www.w3.org/2000/svg" %s>
`, viewBox.Width(), viewBox.Height(),
		viewBox.Min.X, viewBox.Min.Y, viewBox.Width(), viewBox.Height(), extraparams(s))
}

func (svg *SVG) End() error {
	svg.printf("</svg>\n")
	if svg.err != nil {
		return svg.err
	}
	return svg.writer.Flush()
}

func (svg *SVG) Rect(r geom.Rect, s ...string) {
	svg.printf("<rect x='%f' y='%f' width='%f' height='%f' %s/>\n",
		r.Min.X, r.Min.Y, r.Width(), r.Height(), extraparams(s))
}

func (svg *SVG) Circle(c geom.Coord, r float64, s ...string) {
	svg.printf("<circle cx='%f' cy='%f' r='%f' %s/>\n", c.X, c.Y, r, extraparams(s))
}

// Polygon draws a closed path through pts.
func (svg *SVG) Polygon(pts []geom.Coord, s ...string) {
	if len(pts) == 0 {
		return
	}
	svg.printf("<path %sd='M%f,%f", extraparams(s), pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		svg.printf("\n  L%f,%f", p.X, p.Y)
	}
	svg.printf(" Z'/>\n")
}

// hexColor formats c as #rrggbb, ignoring alpha.
func hexColor(c gg.RGBA) string {
	b := func(v float64) int {
		return int(math.Round(math.Max(0, math.Min(1, v)) * 255))
	}
	return fmt.Sprintf("#%02x%02x%02x", b(c.R), b(c.G), b(c.B))
}

func fillStyle(c gg.RGBA) string {
	if c.A >= 1 {
		return fmt.Sprintf("fill: %s; stroke: none", hexColor(c))
	}
	return fmt.Sprintf("fill: %s; fill-opacity: %g; stroke: none", hexColor(c), c.A)
}

// WriteSVG renders f as an SVG document.
func WriteSVG(w io.Writer, f *Frame) error {
	s := NewSVG(w)
	s.Start(f.ViewBox())
	if f.Background.A > 0 {
		s.Rect(f.ViewBox(), fillStyle(f.Background))
	}
	for _, shape := range f.Shapes {
		s.Polygon(shape.Points, fillStyle(shape.Fill))
	}
	if f.SiteRadius > 0 {
		style := fillStyle(f.SiteColor)
		for _, c := range f.Sites {
			s.Circle(c, f.SiteRadius, style)
		}
	}
	return s.End()
}
