// Package server exposes the assessment service over HTTP.
package server

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"fairapi/internal/assess"
	"fairapi/internal/logging"
)

//go:embed openapi.json
var openAPIDocument []byte

// Assessor is the single entry point the HTTP layer calls. *assess.Service
// implements it.
type Assessor interface {
	Assess(ctx context.Context, raw, branch string) (assess.Result, error)
}

// Criterion describes one assessed criterion for GET /criteria.
type Criterion struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// BuildInfo is served on GET /version.
type BuildInfo struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

// Server is the HTTP API surface for assessments.
type Server struct {
	assessor Assessor
	router   chi.Router
	logger   *slog.Logger
	criteria []Criterion
	build    BuildInfo

	readTimeout     time.Duration
	writeTimeout    time.Duration
	shutdownTimeout time.Duration
}

type Option func(*Server)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithCriteria sets the criteria listed on GET /criteria.
func WithCriteria(criteria []Criterion) Option {
	return func(s *Server) {
		s.criteria = append([]Criterion(nil), criteria...)
	}
}

func WithBuildInfo(info BuildInfo) Option {
	return func(s *Server) {
		s.build = info
	}
}

// WithTimeouts configures the http.Server returned by HTTPServer and the
// grace period of Serve. Zero read or shutdown values keep the defaults; a
// zero write timeout disables it.
func WithTimeouts(read, write, shutdown time.Duration) Option {
	return func(s *Server) {
		if read > 0 {
			s.readTimeout = read
		}
		if write >= 0 {
			s.writeTimeout = write
		}
		if shutdown > 0 {
			s.shutdownTimeout = shutdown
		}
	}
}

// New creates a Server routing requests to assessor.
func New(assessor Assessor, opts ...Option) (*Server, error) {
	if assessor == nil {
		return nil, errors.New("server: assessor is nil")
	}
	s := &Server{
		assessor:        assessor,
		router:          chi.NewRouter(),
		logger:          logging.Discard(),
		build:           BuildInfo{Version: "dev", Commit: "unknown", Date: "unknown"},
		readTimeout:     15 * time.Second,
		writeTimeout:    60 * time.Second,
		shutdownTimeout: 10 * time.Second,
	}
	for _, apply := range opts {
		if apply != nil {
			apply(s)
		}
	}
	s.routes()
	return s, nil
}

func (s *Server) routes() {
	r := s.router

	r.Use(requestID)
	r.Use(s.requestLogger)
	r.Use(s.recoverer)
	r.Use(corsMiddleware)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	// CORS preflight
	r.Options("/assess", optionsHandler("GET, POST"))
	r.Options("/check", optionsHandler("POST"))

	r.Get("/", s.handleRoot)
	r.Get("/healthz", s.handleHealth)
	r.Get("/version", s.handleVersion)
	r.Get("/criteria", s.handleCriteria)

	// Assessments
	r.Get("/assess", s.handleAssessQuery)
	r.Post("/assess", s.handleAssessBody)
	r.Post("/check", s.handleCheck)

	// Documentation
	r.Get("/openapi.json", handleOpenAPI)
	r.Get("/docs", http.RedirectHandler("/docs/index.html", http.StatusMovedPermanently).ServeHTTP)
	r.Get("/docs/*", httpSwagger.Handler(httpSwagger.URL("/openapi.json")))
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// HTTPServer creates an *http.Server ready to ListenAndServe.
func (s *Server) HTTPServer(addr string) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadTimeout:       s.readTimeout,
		ReadHeaderTimeout: s.readTimeout,
		WriteTimeout:      s.writeTimeout,
		ErrorLog:          slog.NewLogLogger(s.logger.Handler(), slog.LevelError),
	}
}

// Serve accepts connections on ln until ctx is cancelled, then shuts down
// gracefully. In-flight requests get the configured shutdown timeout.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	if ctx == nil {
		return errors.New("server: ctx is nil")
	}
	if ln == nil {
		return errors.New("server: listener is nil")
	}
	srv := s.HTTPServer(ln.Addr().String())

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()
	s.logger.Info("listening", "addr", ln.Addr().String())

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down", "timeout", s.shutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}

func requestIDFrom(r *http.Request) string {
	return middleware.GetReqID(r.Context())
}
