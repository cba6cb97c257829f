package cells

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/jbeda/geom"
)

func TestBounds(t *testing.T) {
	b := NewBounds(200, 100)
	tests := []struct {
		name      string
		v, origin float64
		axis      func(float64, float64) bool
		out       bool
	}{
		{"x inside", 50, 60, b.OutX, false},
		{"x near left wall", 4, 20, b.OutX, true},
		{"x near right wall", 196, 180, b.OutX, true},
		{"x past tether", 170, 60, b.OutX, true},
		{"x before tether", -50, 60, b.OutX, true},
		{"y inside", 50, 50, b.OutY, false},
		{"y near bottom", 97, 50, b.OutY, true},
		{"y near top", 3.5, 50, b.OutY, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.axis(tt.v, tt.origin); got != tt.out {
				t.Errorf("out(%v, origin %v) = %v, want %v", tt.v, tt.origin, got, tt.out)
			}
		})
	}
}

func TestNewPopulation(t *testing.T) {
	centre := geom.Coord{X: 300, Y: 200}
	p := NewPopulation(500, centre, 10, rand.NewPCG(1, 2))

	if p.Len() != 500 {
		t.Fatalf("Len() = %d, want 500", p.Len())
	}

	var mean geom.Coord
	for i, pos := range p.Positions {
		if pos != p.Origins[i] {
			t.Fatalf("origin %d = %v, want %v", i, p.Origins[i], pos)
		}
		v := p.Velocities[i]
		if math.Abs(v.X) > DefaultJitter || math.Abs(v.Y) > DefaultJitter {
			t.Errorf("velocity %d = %v exceeds jitter", i, v)
		}
		mean = mean.Plus(pos)
	}
	mean = mean.Times(1.0 / float64(p.Len()))
	if mean.DistanceFrom(centre) > 3 {
		t.Errorf("mean position = %v, want near %v", mean, centre)
	}
}

func TestNewPopulation_Deterministic(t *testing.T) {
	a := NewPopulation(20, geom.Coord{X: 10, Y: 10}, 5, rand.NewPCG(7, 7))
	b := NewPopulation(20, geom.Coord{X: 10, Y: 10}, 5, rand.NewPCG(7, 7))
	for i := range a.Positions {
		if a.Positions[i] != b.Positions[i] || a.Velocities[i] != b.Velocities[i] {
			t.Fatalf("cell %d differs between identical seeds", i)
		}
	}
	a.Step(NewBounds(100, 100))
	b.Step(NewBounds(100, 100))
	for i := range a.Positions {
		if a.Positions[i] != b.Positions[i] {
			t.Fatalf("cell %d differs after Step", i)
		}
	}
}

func TestStep_Euler(t *testing.T) {
	p := NewPopulation(1, geom.Coord{X: 50, Y: 50}, 0, rand.NewPCG(3, 4))
	p.Positions[0] = geom.Coord{X: 50, Y: 50}
	p.Velocities[0] = geom.Coord{X: 1, Y: -1}

	p.Step(NewBounds(100, 100))

	pos, vel := p.Positions[0], p.Velocities[0]
	// Jitter adds at most DefaultJitter per axis before the move.
	if math.Abs(pos.X-51) > DefaultJitter || math.Abs(pos.Y-49) > DefaultJitter {
		t.Errorf("position = %v, want within jitter of (51, 49)", pos)
	}
	if math.Abs(vel.X-(pos.X-50)*DefaultDamping) > 1e-12 {
		t.Errorf("velocity.X = %v, want damped displacement %v", vel.X, (pos.X-50)*DefaultDamping)
	}
	if math.Abs(vel.Y-(pos.Y-50)*DefaultDamping) > 1e-12 {
		t.Errorf("velocity.Y = %v, want damped displacement %v", vel.Y, (pos.Y-50)*DefaultDamping)
	}
}

func TestStep_Bounce(t *testing.T) {
	p := NewPopulation(1, geom.Coord{X: 50, Y: 50}, 0, rand.NewPCG(5, 6))
	p.Positions[0] = geom.Coord{X: 95, Y: 50}
	p.Velocities[0] = geom.Coord{X: 2, Y: 0}

	p.Step(NewBounds(100, 100))

	if vel := p.Velocities[0]; vel.X >= 0 {
		t.Errorf("velocity.X = %v, want reflected (negative)", vel.X)
	}
}

func TestStep_StaysNearOrigin(t *testing.T) {
	b := NewBounds(800, 600)
	p := NewPopulation(40, geom.Coord{X: 200, Y: 150}, 10, rand.NewPCG(11, 12))
	for i := 0; i < 5000; i++ {
		p.Step(b)
	}
	for i, pos := range p.Positions {
		if pos.DistanceFrom(p.Origins[i]) > 2*b.Tether {
			t.Errorf("cell %d drifted to %v from origin %v", i, pos, p.Origins[i])
		}
	}
}
