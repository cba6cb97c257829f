// Package round replaces every corner of a closed polygon with a short
// circular arc.
//
// Each vertex is pushed inward along the bisector of its two edges (the
// miter offset).  Where the offset segments of neighbouring corners cross,
// the crossing nearest the vertex wins.  The offset point is the centre of
// an arc tangent to both edges, and the arc is sampled into a fan of points.
package round

import (
	"errors"
	"fmt"
	"math"

	"github.com/jbeda/geom"
)

// Tunables for the arc fan.
const (
	DefaultSegments = 15
	DefaultSquish   = 0.9
)

var (
	ErrInvalidArgument = errors.New("round: invalid argument")
	ErrTooFewVertices  = fmt.Errorf("%w: polygon needs at least 3 vertices", ErrInvalidArgument)
)

// Polygon is an ordered, closed ring of points.  The last point connects
// back to the first.
type Polygon []geom.Coord

func (p Polygon) at(i int) geom.Coord {
	n := len(p)
	return p[((i%n)+n)%n]
}

// SignedArea is the shoelace area of p.  It is positive when the points run
// counter-clockwise with y pointing up.
func SignedArea(p Polygon) float64 {
	area := 0.0
	n := len(p)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		area += p[i].X * p[j].Y
		area -= p[j].X * p[i].Y
	}
	return area / 2
}

// Finite reports whether every point of p has finite coordinates.
func Finite(p Polygon) bool {
	for _, c := range p {
		if !isFinite(c) {
			return false
		}
	}
	return true
}

// +++ Options

type options struct {
	segments int
	squish   float64
}

type Option func(*options)

// WithSegments sets how many points each corner arc is sampled into.
func WithSegments(n int) Option {
	return func(o *options) { o.segments = n }
}

// WithSquish scales the arc radius.  Values below 1 pull the arc off the
// straight edges.
func WithSquish(f float64) Option {
	return func(o *options) { o.squish = f }
}

func newOptions(opts []Option) options {
	o := options{segments: DefaultSegments, squish: DefaultSquish}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// +++ Bisector

// Bisector is the segment from a polygon vertex to its miter-offset point.
type Bisector struct {
	Origin, Offset geom.Coord
}

// NewBisector offsets cv along the bisector of the corner pv-cv-nv.  The
// distance is m scaled by the miter factor |d1+d2| / (d1·(d1+d2)), which
// blows up as the corner approaches a full reversal.  Positive m offsets to
// the right of the direction of travel.
func NewBisector(pv, cv, nv geom.Coord, m float64) Bisector {
	d1 := unit(cv.Minus(pv))
	d2 := unit(nv.Minus(cv))
	dsum := d1.Plus(d2)

	speed := dsum.Magnitude() / dot(d1, dsum)
	v := setMag(rotate(dsum, -math.Pi/2), speed*m)

	return Bisector{Origin: cv, Offset: cv.Plus(v)}
}

// Intersect returns the crossing point of segments p1-p2 and p3-p4.  The
// point must lie within both segments; parallel segments never cross.
func Intersect(p1, p2, p3, p4 geom.Coord) (geom.Coord, bool) {
	denom := (p4.Y-p3.Y)*(p2.X-p1.X) - (p4.X-p3.X)*(p2.Y-p1.Y)
	if denom == 0 {
		return geom.Coord{}, false
	}
	uA := ((p4.X-p3.X)*(p1.Y-p3.Y) - (p4.Y-p3.Y)*(p1.X-p3.X)) / denom
	uB := ((p2.X-p1.X)*(p1.Y-p3.Y) - (p2.Y-p1.Y)*(p1.X-p3.X)) / denom

	// Written this way round so NaN parameters are rejected too.
	if !(uA >= 0 && uA <= 1 && uB >= 0 && uB <= 1) {
		return geom.Coord{}, false
	}
	return geom.Coord{
		X: p1.X + uA*(p2.X-p1.X),
		Y: p1.Y + uA*(p2.Y-p1.Y),
	}, true
}

// OrthoProjection drops op onto the line through ep with unit direction dir.
func OrthoProjection(dir, ep, op geom.Coord) geom.Coord {
	dv := op.Minus(ep)
	return ep.Plus(dir.Times(dot(dv, dir)))
}

// +++ Arc

// Arc is one rounded corner: a circle around Center, swept from angle
// Start by Sweep radians.
type Arc struct {
	Center geom.Coord
	Radius float64
	Start  float64
	Sweep  float64
}

// Points samples the arc into n points, scaling the radius by squish.  The
// walk runs from the far end of the sweep back towards Start and stops one
// step short of it.  n below 1 yields nil.
func (a Arc) Points(n int, squish float64) []geom.Coord {
	if n < 1 {
		return nil
	}
	pts := make([]geom.Coord, 0, n)
	return a.appendPoints(pts, n, squish)
}

func (a Arc) appendPoints(dst []geom.Coord, n int, squish float64) []geom.Coord {
	t := a.Sweep / float64(n)
	r := a.Radius * squish
	for j := n; j > 0; j-- {
		s, c := math.Sincos(t*float64(j) + a.Start)
		dst = append(dst, geom.Coord{
			X: c*r + a.Center.X,
			Y: s*r + a.Center.Y,
		})
	}
	return dst
}

func validate(p Polygon, magnitude float64, o options) error {
	if len(p) < 3 {
		return fmt.Errorf("%w (got %d)", ErrTooFewVertices, len(p))
	}
	if magnitude < 0 || math.IsNaN(magnitude) {
		return fmt.Errorf("%w: magnitude %v", ErrInvalidArgument, magnitude)
	}
	if o.segments < 1 {
		return fmt.Errorf("%w: segments %d", ErrInvalidArgument, o.segments)
	}
	return nil
}

// Corners computes the arc that replaces each vertex of p.  The offset
// always heads into the polygon regardless of its winding.
func Corners(p Polygon, magnitude float64, opts ...Option) ([]Arc, error) {
	o := newOptions(opts)
	if err := validate(p, magnitude, o); err != nil {
		return nil, err
	}
	return corners(p, magnitude), nil
}

func corners(p Polygon, magnitude float64) []Arc {
	m := magnitude
	if SignedArea(p) > 0 {
		m = -m
	}

	arcs := make([]Arc, len(p))
	for i := range p {
		sv, pv, cv, nv, ev := p.at(i-2), p.at(i-1), p.at(i), p.at(i+1), p.at(i+2)

		pbis := NewBisector(sv, pv, cv, m)
		cbis := NewBisector(pv, cv, nv, m)
		nbis := NewBisector(cv, nv, ev, m)

		v := cbis.Offset
		minDist := math.Inf(1)
		for _, other := range [...]Bisector{pbis, nbis} {
			isec, ok := Intersect(cbis.Origin, cbis.Offset, other.Origin, other.Offset)
			if !ok {
				continue
			}
			if d := cv.DistanceFrom(isec); d < minDist {
				minDist = d
				v = isec
			}
		}

		d1 := unit(cv.Minus(pv))
		d2 := unit(nv.Minus(cv))
		opPrev := OrthoProjection(d1, cv, v)
		opNext := OrthoProjection(d2, cv, v)

		arcs[i] = Arc{
			Center: v,
			Radius: opPrev.DistanceFrom(v),
			Start:  math.Atan2(opNext.Y-v.Y, opNext.X-v.X),
			Sweep:  angleBetween(opNext.Minus(v), opPrev.Minus(v)),
		}
	}
	return arcs
}

// RoundCorners returns p with every corner replaced by an arc fan.  The
// result holds exactly len(p) * segments points.
//
// Degenerate corners (a zero-length edge or an edge doubling straight back)
// are not special-cased and produce non-finite points; use Finite to detect
// them.
func RoundCorners(p Polygon, magnitude float64, opts ...Option) (Polygon, error) {
	o := newOptions(opts)
	if err := validate(p, magnitude, o); err != nil {
		return nil, err
	}

	out := make(Polygon, 0, len(p)*o.segments)
	for _, arc := range corners(p, magnitude) {
		out = arc.appendPoints(out, o.segments, o.squish)
	}
	return out, nil
}
