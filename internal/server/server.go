// Package server serves sampled card frames over HTTP.
package server

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"honnef.co/go/fluidcard"
	"honnef.co/go/fluidcard/internal/framestore"
	"honnef.co/go/fluidcard/mask"
)

// RecordingStore is the narrow store contract required by the HTTP API.
type RecordingStore interface {
	List(ctx context.Context) ([]framestore.Recording, error)
	Get(ctx context.Context, id uuid.UUID) (framestore.Recording, error)
}

// Server provides the HTTP API.
type Server struct {
	addr      string
	cfg       fluidcard.Config
	scale     float64
	store     RecordingStore
	log       *slog.Logger
	server    *http.Server
	ctx       context.Context
	cancel    context.CancelFunc
	startTime time.Time
}

// Option configures a [Server].
type Option func(*Server)

// WithStore exposes the recordings in store under /api/recordings.
func WithStore(store RecordingStore) Option {
	return func(s *Server) { s.store = store }
}

// WithScale sets the pixels per point of PNG frames.
func WithScale(scale float64) Option {
	return func(s *Server) { s.scale = scale }
}

// WithLogger sets the logger for server events.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) { s.log = l }
}

// NewServer creates a server for cards described by cfg.
func NewServer(addr string, cfg fluidcard.Config, opts ...Option) *Server {
	if addr == "" {
		addr = "127.0.0.1:3000"
	}
	ctx, cancel := context.WithCancel(context.Background())
	s := &Server{
		addr:   addr,
		cfg:    cfg,
		scale:  1,
		log:    fluidcard.Logger(),
		ctx:    ctx,
		cancel: cancel,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the API's routes.
func (s *Server) Handler() http.Handler {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/api/health", s.handleHealth)
	r.GET("/api/config", s.handleConfig)
	r.GET("/api/frame", s.handleFrame)
	if s.store != nil {
		r.GET("/api/recordings", s.handleRecordings)
		r.GET("/api/recordings/:id", s.handleRecording)
	}
	return r
}

// Start begins serving HTTP requests.
func (s *Server) Start() error {
	gin.SetMode(gin.ReleaseMode)

	s.server = &http.Server{
		Handler:           s.Handler(),
		BaseContext:       func(_ net.Listener) context.Context { return s.ctx },
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
	}

	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	s.addr = listener.Addr().String()
	s.startTime = time.Now()
	s.log.Info("serving frames", "addr", s.addr)

	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error("server stopped", "err", err)
		}
	}()
	return nil
}

// Addr returns the address the server listens on.
func (s *Server) Addr() string { return s.addr }

// Stop gracefully shuts down the HTTP server.
func (s *Server) Stop() error {
	s.cancel()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"uptime": time.Since(s.startTime).String(),
	})
}

func (s *Server) handleConfig(c *gin.Context) {
	c.JSON(http.StatusOK, s.cfg)
}

type frameResponse struct {
	fluidcard.Frame
	Outline string `json:"outline"`
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}

func (s *Server) handleFrame(c *gin.Context) {
	dir, err := fluidcard.ParseDirection(c.DefaultQuery("direction", "expand"))
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	t, err := strconv.ParseFloat(c.DefaultQuery("t", "0"), 64)
	if err != nil {
		badRequest(c, "t must be a number")
		return
	}
	width, err := strconv.ParseFloat(c.DefaultQuery("width", "0"), 64)
	if err != nil {
		badRequest(c, "width must be a number")
		return
	}

	f, err := fluidcard.SampleAt(s.cfg, width, dir, t)
	if err != nil {
		if errors.Is(err, fluidcard.ErrInvalidConfiguration) {
			badRequest(c, err.Error())
			return
		}
		s.log.Error("sampling frame failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to sample frame"})
		return
	}

	switch format := c.DefaultQuery("format", "json"); format {
	case "json":
		c.JSON(http.StatusOK, frameResponse{
			Frame:   f,
			Outline: f.Outline.SVG(fluidcard.SVGOptions{MaxPrecision: 3}),
		})
	case "svg":
		var buf bytes.Buffer
		err := f.Outline.WriteSVGDocument(&buf, fluidcard.SVGDocumentOptions{
			SVGOptions: fluidcard.SVGOptions{MaxPrecision: 3},
			ViewBox:    f.Layout.Overlay,
			Overlays: []fluidcard.SVGOverlay{
				{Path: fluidcard.ButtonPath(s.cfg.Button, f.Layout.Button), Fill: "#4a00d0"},
				{Path: f.Indicator(s.cfg.Button), Stroke: "white", Width: 2},
			},
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to write svg"})
			return
		}
		c.Data(http.StatusOK, "image/svg+xml", buf.Bytes())
	case "png":
		img := mask.Image(f, s.cfg.Button, mask.Options{Scale: s.scale, Supersample: 2}, mask.DefaultStyle())
		var buf bytes.Buffer
		if err := mask.WritePNG(&buf, img); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to encode png"})
			return
		}
		c.Data(http.StatusOK, "image/png", buf.Bytes())
	default:
		badRequest(c, "unknown format "+strconv.Quote(format))
	}
}

func (s *Server) handleRecordings(c *gin.Context) {
	recs, err := s.store.List(c.Request.Context())
	if err != nil {
		s.log.Error("listing recordings failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list recordings"})
		return
	}
	if recs == nil {
		recs = []framestore.Recording{}
	}
	c.JSON(http.StatusOK, gin.H{"recordings": recs})
}

func (s *Server) handleRecording(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, "invalid recording id")
		return
	}
	rec, err := s.store.Get(c.Request.Context(), id)
	if errors.Is(err, framestore.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		s.log.Error("reading recording failed", "id", id, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read recording"})
		return
	}
	c.JSON(http.StatusOK, rec)
}
