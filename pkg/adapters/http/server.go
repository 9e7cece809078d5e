// Package http exposes a figspec engine as a JSON API routed with chi.
package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/aretw0/figspec/pkg/domain"
	"github.com/aretw0/figspec/pkg/observability"
	"github.com/aretw0/figspec/pkg/ports"
)

// maxPatchBytes caps POST /decisions bodies.
const maxPatchBytes = 8 << 20

// Server serves one engine.
type Server struct {
	Engine  ports.Engine
	Metrics *observability.Metrics
	Logger  *slog.Logger
}

// NewHandler creates a new HTTP handler for the engine.
// metrics may be nil, in which case /metrics is not mounted.
func NewHandler(engine ports.Engine, metrics *observability.Metrics, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s := &Server{Engine: engine, Metrics: metrics, Logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.instrument)

	r.Get("/health", s.getHealth)
	r.Get("/status", s.getStatus)
	r.Get("/next", s.getNext)
	r.Get("/skeleton", s.getSkeleton)
	r.Get("/nodes/{id}/children", s.getChildren)
	r.Get("/nodes/{id}/facts", s.getFacts)
	r.Get("/batch", s.getBatch)
	r.Post("/decisions", s.postDecisions)
	r.Get("/validate", s.getValidate)
	r.Get("/export", s.getExport)
	if metrics != nil {
		r.Method(http.MethodGet, "/metrics", metrics.Handler())
	}
	return r
}

// instrument records request counts and latency per route pattern.
func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		code := ww.Status()
		if code == 0 {
			code = http.StatusOK
		}
		s.Logger.Debug("http request", "method", r.Method, "route", route, "code", code, "duration", time.Since(start))

		if s.Metrics == nil {
			return
		}
		s.Metrics.Requests.WithLabelValues(route, r.Method, strconv.Itoa(code)).Inc()
		s.Metrics.RequestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}

func (s *Server) getHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) getStatus(w http.ResponseWriter, r *http.Request) {
	res, err := s.Engine.Status(r.Context())
	s.respond(w, res, err)
}

func (s *Server) getNext(w http.ResponseWriter, r *http.Request) {
	res, err := s.Engine.Next(r.Context())
	s.respond(w, res, err)
}

func (s *Server) getSkeleton(w http.ResponseWriter, r *http.Request) {
	depth, err := intParam(r, "depth", domain.DefaultSkeletonDepth)
	if err != nil {
		s.writeError(w, err)
		return
	}
	res, err := s.Engine.Skeleton(r.Context(), r.URL.Query().Get("node"), depth)
	s.respond(w, res, err)
}

func (s *Server) getChildren(w http.ResponseWriter, r *http.Request) {
	res, err := s.Engine.Children(r.Context(), chi.URLParam(r, "id"))
	s.respond(w, res, err)
}

func (s *Server) getFacts(w http.ResponseWriter, r *http.Request) {
	res, err := s.Engine.Facts(r.Context(), chi.URLParam(r, "id"))
	s.respond(w, res, err)
}

func (s *Server) getBatch(w http.ResponseWriter, r *http.Request) {
	start, err := intParam(r, "start", 0)
	if err != nil {
		s.writeError(w, err)
		return
	}
	count, err := intParam(r, "count", domain.DefaultBatchSize)
	if err != nil {
		s.writeError(w, err)
		return
	}
	res, err := s.Engine.Batch(r.Context(), start, count)
	s.respond(w, res, err)
}

func (s *Server) postDecisions(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxPatchBytes))
	if err != nil {
		s.writeError(w, fmt.Errorf("%w: %v", domain.ErrMalformedPatch, err))
		return
	}
	res, err := s.Engine.Apply(r.Context(), body)
	if err == nil {
		s.Metrics.ObserveApply(res.AppliedCount, len(res.Skipped))
	}
	s.respond(w, res, err)
}

func (s *Server) getValidate(w http.ResponseWriter, r *http.Request) {
	res, err := s.Engine.Validate(r.Context())
	s.respond(w, res, err)
}

func (s *Server) getExport(w http.ResponseWriter, r *http.Request) {
	var absorb *bool
	if v := r.URL.Query().Get("absorb"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			s.writeError(w, fmt.Errorf("%w: absorb: %v", domain.ErrInvalidInput, err))
			return
		}
		absorb = &b
	}
	res, err := s.Engine.Export(r.Context(), absorb)
	s.respond(w, res, err)
}

// -- Helpers --

func intParam(r *http.Request, name string, def int) (int, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", domain.ErrInvalidInput, name, err)
	}
	return n, nil
}

func (s *Server) respond(w http.ResponseWriter, res any, err error) {
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, res)
}

// StatusCode maps engine errors to HTTP status codes.
func StatusCode(err error) int {
	switch {
	case errors.Is(err, domain.ErrUnknownNode):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrMalformedPatch), errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrStateNotFound):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	code := StatusCode(err)
	if code == http.StatusInternalServerError {
		s.Logger.Error("request failed", "error", err)
	}
	s.writeJSON(w, code, map[string]string{"error": err.Error()})
}

func (s *Server) writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Logger.Error("response encode failed", "error", err)
	}
}
