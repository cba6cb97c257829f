// Package palette maps cell indices to fill colours.
package palette

import (
	"math"

	"github.com/gogpu/gg"
)

// ColorBrewer GnBu, light to dark.
var gnbu = []gg.RGBA{
	gg.Hex("#f7fcf0"),
	gg.Hex("#e0f3db"),
	gg.Hex("#ccebc5"),
	gg.Hex("#a8ddb5"),
	gg.Hex("#7bccc4"),
	gg.Hex("#4eb3d3"),
	gg.Hex("#2b8cbe"),
	gg.Hex("#0868ac"),
	gg.Hex("#084081"),
}

// GnBu returns the colour at t along the green-blue ramp.  t is clamped to
// [0, 1].
func GnBu(t float64) gg.RGBA {
	if math.IsNaN(t) || t <= 0 {
		return gnbu[0]
	}
	if t >= 1 {
		return gnbu[len(gnbu)-1]
	}
	x := t * float64(len(gnbu)-1)
	i := int(x)
	return gnbu[i].Lerp(gnbu[i+1], x-float64(i))
}

// Ramp spreads n colours over [0, 1).  n below 1 yields nil.
func Ramp(n int) []gg.RGBA {
	if n < 1 {
		return nil
	}
	cols := make([]gg.RGBA, n)
	for i := range cols {
		cols[i] = GnBu(float64(i) / float64(n))
	}
	return cols
}
