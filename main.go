// Command voronoi-cells animates two populations of cells as a tessellation
// of rounded Voronoi polygons.
//
// In frames mode it writes a numbered image per frame; in serve mode it
// serves a live preview over HTTP.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"voronoi-cells/internal/render"
	"voronoi-cells/internal/server"
	"voronoi-cells/internal/sketch"
)

type options struct {
	mode   string
	frames int
	out    string
	format string
	addr   string
	fps    int
	debug  bool
	cfg    sketch.Config
}

func parseFlags(args []string) (*options, error) {
	o := &options{cfg: sketch.DefaultConfig()}

	fs := flag.NewFlagSet("voronoi-cells", flag.ContinueOnError)
	fs.StringVar(&o.mode, "mode", "frames", "frames: write images to -out; serve: live preview on -addr")
	fs.IntVar(&o.frames, "frames", 120, "number of frames to write")
	fs.StringVar(&o.out, "out", "output", "output directory for frames")
	fs.StringVar(&o.format, "format", "svg", "frame format: svg or png")
	fs.StringVar(&o.addr, "addr", ":8080", "listen address in serve mode")
	fs.IntVar(&o.fps, "fps", 30, "simulation steps per second in serve mode")
	fs.BoolVar(&o.debug, "debug", false, "log per-frame detail")
	fs.IntVar(&o.cfg.Width, "width", o.cfg.Width, "canvas width")
	fs.IntVar(&o.cfg.Height, "height", o.cfg.Height, "canvas height")
	fs.IntVar(&o.cfg.CellsA, "cells-a", o.cfg.CellsA, "cells in the first population")
	fs.IntVar(&o.cfg.CellsB, "cells-b", o.cfg.CellsB, "cells in the second population")
	fs.Float64Var(&o.cfg.Spread, "spread", o.cfg.Spread, "standard deviation of initial cell positions")
	fs.Float64Var(&o.cfg.Magnitude, "magnitude", o.cfg.Magnitude, "corner rounding magnitude")
	fs.IntVar(&o.cfg.Segments, "segments", o.cfg.Segments, "points per rounded corner")
	fs.Uint64Var(&o.cfg.Seed, "seed", o.cfg.Seed, "random seed")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	switch o.mode {
	case "frames", "serve":
	default:
		return nil, fmt.Errorf("unknown mode %q", o.mode)
	}
	if _, err := render.EncoderFor(o.format); err != nil {
		return nil, err
	}
	return o, nil
}

// writeFrames steps the sketch and writes one file per frame into dir.
func writeFrames(ctx context.Context, sk *sketch.Sketch, n int, dir, format string) error {
	enc, err := render.EncoderFor(format)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	log := sketch.Logger()
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		sk.Tick()
		name := filepath.Join(dir, fmt.Sprintf("frame%04d.%s", i, format))
		if err := writeFile(name, enc, sk.Frame()); err != nil {
			return err
		}
		log.Debug("frame written", slog.String("file", name))
	}
	log.Info("frames written", slog.Int("count", n), slog.String("dir", dir))
	return nil
}

func writeFile(name string, enc render.Encoder, f *render.Frame) error {
	file, err := os.Create(name)
	if err != nil {
		return err
	}
	if err := enc(file, f); err != nil {
		file.Close()
		return fmt.Errorf("encoding %s: %w", name, err)
	}
	return file.Close()
}

func run(ctx context.Context, args []string) error {
	o, err := parseFlags(args)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if o.debug {
		level = slog.LevelDebug
	}
	sketch.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	sk, err := sketch.New(o.cfg)
	if err != nil {
		return err
	}

	if o.mode == "serve" {
		return server.New(sk, o.fps).ListenAndServe(ctx, o.addr)
	}
	return writeFrames(ctx, sk, o.frames, o.out, o.format)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:]); err != nil && !errors.Is(err, context.Canceled) {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "voronoi-cells: %v\n", err)
		os.Exit(1)
	}
}
