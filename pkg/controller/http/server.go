package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/secmon-lab/vantagepoint/pkg/domain/model"
	"github.com/secmon-lab/vantagepoint/pkg/domain/types"
	"github.com/secmon-lab/vantagepoint/pkg/utils/logging"
	"github.com/secmon-lab/vantagepoint/pkg/utils/metrics"
)

// AcquisitionUseCase is the event acquisition surface served over HTTP
type AcquisitionUseCase interface {
	LiveEvents(ctx context.Context) *model.Acquisition
	SyntheticEvents(ctx context.Context) []*model.Event
	Events(ctx context.Context, mode types.DataMode) *model.Acquisition
	Refresh(ctx context.Context, includeSynthetic bool)
}

// EnrichmentUseCase is the AI surface served over HTTP
type EnrichmentUseCase interface {
	AnalyzeEvent(ctx context.Context, ev *model.Event) *model.Event
	ExecutiveBrief(ctx context.Context, events []*model.Event) *model.Brief
	Ask(ctx context.Context, events []*model.Event, question string) string
}

type Server struct {
	router        *chi.Mux
	acquisition   AcquisitionUseCase
	enrichment    EnrichmentUseCase
	defaultMode   types.DataMode
	enableMetrics bool
}

type Options func(*Server)

// WithDefaultMode sets the data mode used when a request does not name one
func WithDefaultMode(mode types.DataMode) Options {
	return func(s *Server) {
		s.defaultMode = mode
	}
}

// WithMetrics exposes the Prometheus registry at /metrics
func WithMetrics(enabled bool) Options {
	return func(s *Server) {
		s.enableMetrics = enabled
	}
}

func New(acquisition AcquisitionUseCase, enrichment EnrichmentUseCase, opts ...Options) *Server {
	r := chi.NewRouter()

	s := &Server{
		router:      r,
		acquisition: acquisition,
		enrichment:  enrichment,
		defaultMode: types.DataModeSynthetic,
	}
	for _, opt := range opts {
		opt(s)
	}

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(requestLogger)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)

	r.Get("/health", healthHandler)
	if s.enableMetrics {
		r.Handle("/metrics", metrics.Handler())
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/events/live", s.liveEventsHandler)
		r.Get("/events/synthetic", s.syntheticEventsHandler)
		r.Post("/events/analyze", s.analyzeHandler)
		r.Get("/dashboard", s.dashboardHandler)
		r.Post("/refresh", s.refreshHandler)
		r.Post("/brief", s.briefHandler)
		r.Post("/ask", s.askHandler)
	})

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// accessLogger is a middleware that logs HTTP requests
func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			logging.From(r.Context()).Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
				"user_agent", r.UserAgent(),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}
