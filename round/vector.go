package round

import (
	"math"

	"github.com/jbeda/geom"
)

////////////////////////////////////////////////////////////////////////////
// Vector helpers
//
// geom.Coord already gives us Plus, Minus, Times, Magnitude and
// DistanceFrom.  The rest lives here as plain functions so that nothing is
// ever modified in place.

// Comparing floating point is hard; this is good enough for the geometry
// in this package.
const floatEqualThresh = 1e-9

func floatAlmostEqual(a, b float64) bool {
	return math.Abs(a-b) < floatEqualThresh
}

func dot(a, b geom.Coord) float64 {
	return a.X*b.X + a.Y*b.Y
}

func cross(a, b geom.Coord) float64 {
	return a.X*b.Y - a.Y*b.X
}

// unit returns a unit vector pointing along v.  The zero vector stays zero.
func unit(v geom.Coord) geom.Coord {
	m := v.Magnitude()
	if m == 0 {
		return geom.Coord{}
	}
	return v.Times(1 / m)
}

// rotate turns v by angle radians (counter-clockwise in a y-up frame).
func rotate(v geom.Coord, angle float64) geom.Coord {
	s, c := math.Sincos(angle)
	return geom.Coord{
		X: v.X*c - v.Y*s,
		Y: v.X*s + v.Y*c,
	}
}

// setMag returns v rescaled to length m.  A negative m flips the direction.
func setMag(v geom.Coord, m float64) geom.Coord {
	return unit(v).Times(m)
}

// angleBetween is the signed angle that takes a onto b.  A zero cross
// product counts as positive.  Either vector being zero yields 0.
func angleBetween(a, b geom.Coord) float64 {
	ma, mb := a.Magnitude(), b.Magnitude()
	if ma == 0 || mb == 0 {
		return 0
	}
	cos := math.Max(-1, math.Min(1, dot(a, b)/(ma*mb)))
	angle := math.Acos(cos)
	if cross(a, b) < 0 {
		return -angle
	}
	return angle
}

func isFinite(p geom.Coord) bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) &&
		!math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}
