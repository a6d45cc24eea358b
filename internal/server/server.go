// Package server exposes the catalog's rendering contract as JSON over HTTP.
package server

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/smileynet/swcatalog/internal/catalog"
	"github.com/smileynet/swcatalog/internal/swapi"
)

const shutdownTimeout = 5 * time.Second

// Server serves one Catalog. Each kind is loaded on its first request and
// kept until a retry.
type Server struct {
	cat    *catalog.Catalog
	logger *log.Logger
	access io.Writer

	mu     sync.Mutex
	loaded map[swapi.Kind]*sync.Once
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger for lifecycle lines.
func WithLogger(l *log.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithAccessLog writes one gin access line per request to w.
func WithAccessLog(w io.Writer) Option {
	return func(s *Server) { s.access = w }
}

// New returns a Server for cat.
func New(cat *catalog.Catalog, opts ...Option) *Server {
	s := &Server{
		cat:    cat,
		logger: log.Default(),
		loaded: make(map[swapi.Kind]*sync.Once, len(swapi.Kinds)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetupRouter builds the gin engine with every route registered.
func (s *Server) SetupRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if s.access != nil {
		r.Use(gin.LoggerWithWriter(s.access))
	}

	r.GET("/healthz", s.Health)

	api := r.Group("/api")
	api.GET("/kinds", s.ListKinds)
	api.GET("/:kind", s.GetView)
	api.POST("/:kind/retry", s.Retry)
	api.POST("/:kind/details", s.OpenDetails)
	api.DELETE("/:kind/details", s.CloseDetails)

	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      s.SetupRouter(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 2 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Printf("Starting server on %s", addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	s.logger.Printf("Shutting down server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}

// Health reports liveness.
func (s *Server) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type kindInfo struct {
	Kind        swapi.Kind `json:"kind"`
	Label       string     `json:"label"`
	RelatedKind swapi.Kind `json:"relatedKind"`
}

// ListKinds returns the five kinds in navigation order.
func (s *Server) ListKinds(c *gin.Context) {
	out := make([]kindInfo, 0, len(swapi.Kinds))
	for _, sec := range s.cat.Sections() {
		out = append(out, kindInfo{
			Kind:        sec.Kind(),
			Label:       sec.Kind().Label(),
			RelatedKind: sec.RelatedKind(),
		})
	}
	c.JSON(http.StatusOK, out)
}

// GetView returns the section view, loading the collection on first access.
func (s *Server) GetView(c *gin.Context) {
	sec, ok := s.section(c)
	if !ok {
		return
	}
	s.ensureLoaded(c.Request.Context(), sec)
	c.JSON(http.StatusOK, sec.View())
}

// Retry reloads the collection.
func (s *Server) Retry(c *gin.Context) {
	sec, ok := s.section(c)
	if !ok {
		return
	}
	s.once(sec.Kind()).Do(func() {})
	sec.Retry(context.WithoutCancel(c.Request.Context()))
	c.JSON(http.StatusOK, sec.View())
}

// DetailsRequest names the item whose related records should be resolved.
type DetailsRequest struct {
	URL string `json:"url" binding:"required"`
}

// OpenDetails resolves the related records of one item and returns the view
// with its dialog open.
func (s *Server) OpenDetails(c *gin.Context) {
	sec, ok := s.section(c)
	if !ok {
		return
	}
	var req DetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	ctx := context.WithoutCancel(c.Request.Context())
	s.ensureLoaded(ctx, sec)
	if err := sec.OpenDetailsByURL(ctx, req.URL); err != nil {
		if errors.Is(err, catalog.ErrItemNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		s.logger.Printf("server: opening details: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to open details"})
		return
	}
	c.JSON(http.StatusOK, sec.View())
}

// CloseDetails closes the dialog. The section's cache is kept.
func (s *Server) CloseDetails(c *gin.Context) {
	sec, ok := s.section(c)
	if !ok {
		return
	}
	sec.Close()
	c.JSON(http.StatusOK, sec.View())
}

// section resolves the :kind parameter, writing a 404 when it is unknown.
func (s *Server) section(c *gin.Context) (catalog.Section, bool) {
	kind, err := swapi.ParseKind(c.Param("kind"))
	if err == nil {
		var sec catalog.Section
		if sec, err = s.cat.Section(kind); err == nil {
			return sec, true
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	return nil, false
}

func (s *Server) once(kind swapi.Kind) *sync.Once {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.loaded[kind]
	if !ok {
		o = &sync.Once{}
		s.loaded[kind] = o
	}
	return o
}

// ensureLoaded runs the first load of sec. The load outlives the request
// that triggered it so a dropped client does not leave the section failed.
func (s *Server) ensureLoaded(ctx context.Context, sec catalog.Section) {
	s.once(sec.Kind()).Do(func() {
		sec.Load(context.WithoutCancel(ctx))
	})
}
