package palette

import (
	"math"
	"testing"

	"github.com/gogpu/gg"
)

func near(a, b gg.RGBA) bool {
	const eps = 1e-9
	return math.Abs(a.R-b.R) < eps && math.Abs(a.G-b.G) < eps &&
		math.Abs(a.B-b.B) < eps && math.Abs(a.A-b.A) < eps
}

func TestGnBu(t *testing.T) {
	tests := []struct {
		name   string
		t      float64
		expect gg.RGBA
	}{
		{"start", 0, gg.Hex("#f7fcf0")},
		{"below", -3, gg.Hex("#f7fcf0")},
		{"NaN", math.NaN(), gg.Hex("#f7fcf0")},
		{"end", 1, gg.Hex("#084081")},
		{"above", 2, gg.Hex("#084081")},
		{"middle stop", 0.5, gg.Hex("#7bccc4")},
		{"between stops", 1.0 / 16, gg.Hex("#f7fcf0").Lerp(gg.Hex("#e0f3db"), 0.5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GnBu(tt.t); !near(got, tt.expect) {
				t.Errorf("GnBu(%v) = %+v, want %+v", tt.t, got, tt.expect)
			}
		})
	}
}

func TestRamp(t *testing.T) {
	cols := Ramp(40)
	if len(cols) != 40 {
		t.Fatalf("len(Ramp(40)) = %d, want 40", len(cols))
	}
	if !near(cols[0], GnBu(0)) {
		t.Errorf("Ramp()[0] = %+v, want first stop", cols[0])
	}
	// Darker towards the end.
	for i := 1; i < len(cols); i++ {
		prev := cols[i-1].R + cols[i-1].G + cols[i-1].B
		cur := cols[i].R + cols[i].G + cols[i].B
		if cur > prev+1e-12 {
			t.Errorf("Ramp()[%d] brighter than Ramp()[%d]", i, i-1)
		}
	}
	for _, c := range cols {
		if c.A != 1 {
			t.Errorf("alpha = %v, want 1", c.A)
		}
	}
}

func TestRamp_NonPositive(t *testing.T) {
	for _, n := range []int{0, -1, -40} {
		if cols := Ramp(n); cols != nil {
			t.Errorf("Ramp(%d) = %v, want nil", n, cols)
		}
	}
}
