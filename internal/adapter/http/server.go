package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/stormpetrel/bomwatch/internal/adapter/bom"
	"github.com/stormpetrel/bomwatch/internal/domain"
)

// ReadinessChecker reports whether the service is ready to serve traffic.
type ReadinessChecker interface {
	CheckReadiness(ctx context.Context) error
}

// CycleTrigger runs an immediate check cycle on request.
type CycleTrigger interface {
	CheckNow(ctx context.Context) (domain.CheckResult, error)
}

// ResultsReader reads back persisted check results and warning detail.
type ResultsReader interface {
	LastResult(ctx context.Context) (domain.CheckResult, bool, error)
	WarningByID(ctx context.Context, id string) (domain.Warning, bool, error)
}

// Server exposes health, readiness, metrics, and the check/results API.
type Server struct {
	httpServer *http.Server
	trigger    CycleTrigger
	results    ResultsReader
	logger     *slog.Logger
}

// NewServer creates the HTTP server. Routes:
//
//	GET  /healthz        liveness
//	GET  /readyz         readiness (first cycle completed)
//	GET  /metrics        Prometheus metrics
//	POST /check          run a check cycle now, respond with its summary
//	GET  /results        last persisted check summary
//	GET  /warnings/{id}  persisted warning detail for notification click-through
func NewServer(addr string, ready ReadinessChecker, trigger CycleTrigger, results ResultsReader, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 60 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		trigger: trigger,
		results: results,
		logger:  logger,
	}

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", handleReady(ready))
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("POST /check", s.handleCheckNow)
	mux.HandleFunc("GET /results", s.handleResults)
	mux.HandleFunc("GET /warnings/{id}", s.handleWarning)

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func handleReady(checker ReadinessChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := checker.CheckReadiness(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "not ready",
				"error":  err.Error(),
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

// handleCheckNow runs a cycle synchronously and returns its summary. The
// cycle itself never fails; an error here means the scheduler is shutting
// down or the client gave up.
func (s *Server) handleCheckNow(w http.ResponseWriter, r *http.Request) {
	result, err := s.trigger.CheckNow(r.Context())
	if err != nil {
		s.logger.Warn("check-now request failed", "error", err)
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleResults(w http.ResponseWriter, r *http.Request) {
	result, found, err := s.results.LastResult(r.Context())
	if err != nil {
		s.logger.Error("read results failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "results unavailable"})
		return
	}
	if !found {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no check has run yet"})
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// handleWarning resolves a notification click back to its warning. Unknown
// or expired warnings still get a usable link: the generic warnings portal.
func (s *Server) handleWarning(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	warning, found, err := s.results.WarningByID(r.Context(), id)
	if err != nil {
		s.logger.Error("read warning failed", "id", id, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "warning unavailable"})
		return
	}
	if !found {
		writeJSON(w, http.StatusNotFound, map[string]string{
			"error": "warning not found",
			"link":  bom.PortalURL,
		})
		return
	}
	writeJSON(w, http.StatusOK, warning)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}
