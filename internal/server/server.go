// Package server serves a running sketch to a browser.
package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/rs/cors"

	"voronoi-cells/internal/render"
	"voronoi-cells/internal/sketch"
)

const indexHTML = `<!DOCTYPE html>
<html>
<head><title>voronoi-cells</title>
<style>body { margin: 0; background: #fff; }</style>
</head>
<body>
<img id="frame" src="frame.svg" width="%d" height="%d">
<script>
const img = document.getElementById("frame");
img.onload = () => requestAnimationFrame(() => { img.src = "frame.svg?t=" + Date.now(); });
img.onerror = () => setTimeout(() => { img.src = "frame.svg?t=" + Date.now(); }, 1000);
</script>
</body>
</html>
`

// Server advances a sketch on a fixed clock and hands out the most recent
// frame.
type Server struct {
	sk       *sketch.Sketch
	interval time.Duration

	mu    sync.RWMutex
	frame *render.Frame
}

// New wraps sk.  fps below 1 falls back to 30.
func New(sk *sketch.Sketch, fps int) *Server {
	if fps < 1 {
		fps = 30
	}
	s := &Server{sk: sk, interval: time.Second / time.Duration(fps)}
	s.frame = sk.Frame()
	return s
}

// Step advances the sketch once and publishes the new frame.
func (s *Server) Step() {
	s.sk.Tick()
	f := s.sk.Frame()

	s.mu.Lock()
	s.frame = f
	s.mu.Unlock()
}

// Frame returns the most recently published frame.
func (s *Server) Frame() *render.Frame {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.frame
}

// Run steps the sketch every tick until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.Step()
		}
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.indexHandler)
	mux.HandleFunc("/frame.svg", s.frameHandler("svg"))
	mux.HandleFunc("/frame.png", s.frameHandler("png"))
	return cors.Default().Handler(mux)
}

func (s *Server) indexHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	cfg := s.sk.Config()
	_, _ = fmt.Fprintf(w, indexHTML, cfg.Width, cfg.Height)
}

func (s *Server) frameHandler(format string) http.HandlerFunc {
	enc, err := render.EncoderFor(format)
	if err != nil {
		panic(err)
	}
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var buf bytes.Buffer
		if err := enc(&buf, s.Frame()); err != nil {
			sketch.Logger().Warn("frame encode failed", slog.String("format", format), slog.Any("err", err))
			http.Error(w, "encode failed", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", render.ContentTypes[format])
		w.Header().Set("Cache-Control", "no-store")
		_, _ = w.Write(buf.Bytes())
	}
}

// ListenAndServe runs the clock and an HTTP server on addr until ctx is
// cancelled, then shuts the server down.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadTimeout:       5 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ctx, cancel := context.WithCancel(ctx)
	ran := make(chan struct{})
	go func() {
		defer close(ran)
		_ = s.Run(ctx)
	}()
	defer func() {
		cancel()
		<-ran
	}()

	errc := make(chan error, 1)
	go func() {
		sketch.Logger().Info("preview server listening", slog.String("addr", addr))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
	defer stop()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
