// Package cells moves populations of Voronoi sites around with a damped
// random walk.
package cells

import (
	"math/rand/v2"

	"github.com/jbeda/geom"
	"gonum.org/v1/gonum/stat/distuv"
)

// Tunable constants for the walk.
const (
	DefaultJitter  = 0.1
	DefaultDamping = 0.99
	DefaultMargin  = 4.0
	DefaultTether  = 100.0
)

// Bounds decides when a cell has wandered too far.  An axis is out of
// bounds when the cell is within Margin of the canvas edge or more than
// Tether away from where it started.
type Bounds struct {
	Width, Height float64
	Margin        float64
	Tether        float64
}

func NewBounds(width, height float64) Bounds {
	return Bounds{Width: width, Height: height, Margin: DefaultMargin, Tether: DefaultTether}
}

func (b Bounds) outside(p, origin, size float64) bool {
	return p >= origin+b.Tether || p <= origin-b.Tether ||
		p >= size-b.Margin || p <= b.Margin
}

// OutX reports whether x has left the allowed band around origin.
func (b Bounds) OutX(x, origin float64) bool { return b.outside(x, origin, b.Width) }

// OutY reports whether y has left the allowed band around origin.
func (b Bounds) OutY(y, origin float64) bool { return b.outside(y, origin, b.Height) }

// Population is a group of cells seeded around a common centre.  Origins
// hold the seeded positions and never move.
type Population struct {
	Positions  []geom.Coord
	Origins    []geom.Coord
	Velocities []geom.Coord

	Damping float64
	jitter  distuv.Uniform
}

// NewPopulation scatters n cells around centre with a normal distribution
// of the given spread and gives each a small random velocity.
func NewPopulation(n int, centre geom.Coord, spread float64, src rand.Source) *Population {
	xs := distuv.Normal{Mu: centre.X, Sigma: spread, Src: src}
	ys := distuv.Normal{Mu: centre.Y, Sigma: spread, Src: src}
	jitter := distuv.Uniform{Min: -DefaultJitter, Max: DefaultJitter, Src: src}

	p := &Population{
		Positions:  make([]geom.Coord, n),
		Origins:    make([]geom.Coord, n),
		Velocities: make([]geom.Coord, n),
		Damping:    DefaultDamping,
		jitter:     jitter,
	}
	for i := 0; i < n; i++ {
		p.Positions[i] = geom.Coord{X: xs.Rand(), Y: ys.Rand()}
		p.Velocities[i] = geom.Coord{X: jitter.Rand(), Y: jitter.Rand()}
	}
	copy(p.Origins, p.Positions)
	return p
}

func (p *Population) Len() int { return len(p.Positions) }

// Step advances every cell by one Euler step: nudge the velocity, move,
// damp, then bounce off whatever bound was hit.
func (p *Population) Step(b Bounds) {
	for i := range p.Positions {
		pos, vel, origin := p.Positions[i], p.Velocities[i], p.Origins[i]

		vel.X += p.jitter.Rand()
		vel.Y += p.jitter.Rand()
		pos = pos.Plus(vel)
		vel = vel.Times(p.Damping)

		if b.OutX(pos.X, origin.X) {
			vel.X = -vel.X
		}
		if b.OutY(pos.Y, origin.Y) {
			vel.Y = -vel.Y
		}

		p.Positions[i], p.Velocities[i] = pos, vel
	}
}
