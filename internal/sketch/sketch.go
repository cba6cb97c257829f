// Package sketch ties the cell populations, the tessellation and the corner
// rounding together into a stream of frames.
package sketch

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/gogpu/gg"
	"github.com/jbeda/geom"

	"voronoi-cells/internal/cells"
	"voronoi-cells/internal/palette"
	"voronoi-cells/internal/render"
	"voronoi-cells/internal/tessellate"
	"voronoi-cells/round"
)

var ErrConfig = errors.New("sketch: invalid config")

// Config holds the tunables of a sketch.
type Config struct {
	Width, Height  int
	CellsA, CellsB int
	// Spread is the standard deviation of the initial cell positions
	// around each population's centre.
	Spread    float64
	Magnitude float64
	Segments  int
	Seed      uint64

	Background gg.RGBA
	SiteRadius float64
	SiteColor  gg.RGBA
}

func DefaultConfig() Config {
	return Config{
		Width:      960,
		Height:     640,
		CellsA:     40,
		CellsB:     40,
		Spread:     10,
		Magnitude:  15,
		Segments:   round.DefaultSegments,
		Seed:       1,
		Background: gg.White,
		SiteRadius: 2,
		SiteColor:  gg.Black,
	}
}

func (c Config) validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: canvas %dx%d", ErrConfig, c.Width, c.Height)
	case c.CellsA < 0 || c.CellsB < 0 || c.CellsA+c.CellsB == 0:
		return fmt.Errorf("%w: cell counts %d and %d", ErrConfig, c.CellsA, c.CellsB)
	case c.Spread < 0:
		return fmt.Errorf("%w: spread %v", ErrConfig, c.Spread)
	case c.Magnitude < 0:
		return fmt.Errorf("%w: magnitude %v", ErrConfig, c.Magnitude)
	case c.Segments < 1:
		return fmt.Errorf("%w: segments %d", ErrConfig, c.Segments)
	}
	return nil
}

// Sketch is a running simulation.  It is not safe for concurrent use.
type Sketch struct {
	cfg    Config
	bounds cells.Bounds
	pops   []*cells.Population
	colors []gg.RGBA
	tick   int
}

func New(cfg Config) (*Sketch, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	w, h := float64(cfg.Width), float64(cfg.Height)
	src := rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15)

	s := &Sketch{
		cfg:    cfg,
		bounds: cells.NewBounds(w, h),
		pops: []*cells.Population{
			cells.NewPopulation(cfg.CellsA, geom.Coord{X: w * 0.25, Y: h * 0.25}, cfg.Spread, src),
			cells.NewPopulation(cfg.CellsB, geom.Coord{X: w * 0.75, Y: h * 0.75}, cfg.Spread, src),
		},
	}
	s.colors = append(palette.Ramp(cfg.CellsA), palette.Ramp(cfg.CellsB)...)

	Logger().Info("sketch created",
		slog.Int("width", cfg.Width), slog.Int("height", cfg.Height),
		slog.Int("cells", cfg.CellsA+cfg.CellsB), slog.Uint64("seed", cfg.Seed))
	return s, nil
}

func (s *Sketch) Config() Config { return s.cfg }

// Ticks is the number of simulation steps taken so far.
func (s *Sketch) Ticks() int { return s.tick }

// Tick advances every population by one step.
func (s *Sketch) Tick() {
	for _, p := range s.pops {
		p.Step(s.bounds)
	}
	s.tick++
}

// Sites returns the current position of every cell, population A first.
func (s *Sketch) Sites() []geom.Coord {
	var sites []geom.Coord
	for _, p := range s.pops {
		sites = append(sites, p.Positions...)
	}
	return sites
}

// Frame tessellates the current sites and rounds every cell.  A cell whose
// polygon is malformed or rounds to non-finite points is left out of the
// frame; the rest are unaffected.
func (s *Sketch) Frame() *render.Frame {
	start := time.Now()
	sites := s.Sites()
	polys := tessellate.Polygons(sites, float64(s.cfg.Width), float64(s.cfg.Height))

	rounded := make([]round.Polygon, len(polys))
	errs := make([]error, len(polys))
	var wg sync.WaitGroup
	for i, poly := range polys {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rounded[i], errs[i] = round.RoundCorners(poly, s.cfg.Magnitude, round.WithSegments(s.cfg.Segments))
		}()
	}
	wg.Wait()

	log := Logger()
	f := &render.Frame{
		Width:      s.cfg.Width,
		Height:     s.cfg.Height,
		Background: s.cfg.Background,
		Shapes:     make([]render.Shape, 0, len(rounded)),
		Sites:      sites,
		SiteRadius: s.cfg.SiteRadius,
		SiteColor:  s.cfg.SiteColor,
	}
	for i, pts := range rounded {
		switch {
		case errs[i] != nil:
			log.Debug("cell skipped", slog.Int("tick", s.tick), slog.Int("cell", i), slog.Any("err", errs[i]))
			continue
		case !round.Finite(pts):
			log.Debug("cell skipped", slog.Int("tick", s.tick), slog.Int("cell", i), slog.String("err", "degenerate corner"))
			continue
		}
		f.Shapes = append(f.Shapes, render.Shape{Points: pts, Fill: s.colors[i]})
	}

	log.Debug("frame built",
		slog.Int("tick", s.tick),
		slog.Int("shapes", len(f.Shapes)),
		slog.Int("skipped", len(polys)-len(f.Shapes)),
		slog.Duration("elapsed", time.Since(start)))
	return f
}
