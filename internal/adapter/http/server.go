// Package http exposes the statistics pipeline to the map/chart frontend
// and serves the operational endpoints.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/quake-catalogue-service/internal/domain"
)

// StatisticsComputer computes selection statistics over the loaded
// catalogue. Implemented by *pipeline.Pipeline.
type StatisticsComputer interface {
	Catalogue() *domain.Catalogue
	ComputeIndices(ctx context.Context, indices []int) (domain.SelectionStatistics, error)
	CheckReadiness(ctx context.Context) error
}

// Server exposes the catalogue, statistics, health, readiness, and
// metrics HTTP endpoints.
type Server struct {
	httpServer *http.Server
	pipeline   StatisticsComputer
	logger     *slog.Logger
}

// NewServer creates the HTTP server. allowedOrigins feeds the CORS layer;
// the map frontend is served from a different origin.
func NewServer(addr string, p StatisticsComputer, allowedOrigins []string, logger *slog.Logger) *Server {
	s := &Server{
		pipeline: p,
		logger:   logger,
	}

	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	}))

	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleReady)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/events", s.handleEvents)
		r.Get("/statistics", s.handleFullStatistics)
		r.Post("/statistics", s.handleSelectionStatistics)
	})

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

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

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.pipeline.CheckReadiness(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "not ready",
			"error":  err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// eventsResponse carries the full catalogue for map rendering.
type eventsResponse struct {
	Events      []domain.EventRecord `json:"events"`
	DroppedRows int                  `json:"dropped_rows"`
	LoadedAt    time.Time            `json:"loaded_at"`
}

func (s *Server) handleEvents(w http.ResponseWriter, _ *http.Request) {
	cat := s.pipeline.Catalogue()
	writeJSON(w, http.StatusOK, eventsResponse{
		Events:      cat.Records,
		DroppedRows: cat.Warnings,
		LoadedAt:    cat.LoadedAt,
	})
}

// selectionRequest is the selection-change notification from the map
// view: indexes into the catalogue, nil or empty meaning no selection
// (full catalogue).
type selectionRequest struct {
	Indices []int `json:"indices"`
}

// errorResponse is the machine-readable per-selection failure. The
// frontend keeps the previous statistics displayed and shows the reason.
type errorResponse struct {
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

func (s *Server) handleFullStatistics(w http.ResponseWriter, r *http.Request) {
	s.computeAndRespond(w, r, nil)
}

func (s *Server) handleSelectionStatistics(w http.ResponseWriter, r *http.Request) {
	var req selectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Reason:  "bad_request",
			Message: "body must be JSON with an optional \"indices\" array",
		})
		return
	}
	s.computeAndRespond(w, r, req.Indices)
}

func (s *Server) computeAndRespond(w http.ResponseWriter, r *http.Request, indices []int) {
	stats, err := s.pipeline.ComputeIndices(r.Context(), indices)
	if err != nil {
		status, reason := classifyComputeError(err)
		if status == http.StatusInternalServerError {
			s.logger.Error("statistics computation failed", "error", err)
		}
		writeJSON(w, status, errorResponse{Reason: reason, Message: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// classifyComputeError maps pipeline failures to HTTP statuses: the two
// recoverable per-selection errors are unprocessable selections, index
// errors are the caller's fault, anything else is ours.
func classifyComputeError(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrInsufficientData):
		return http.StatusUnprocessableEntity, "insufficient_data"
	case errors.Is(err, domain.ErrInsufficientTimeSpan):
		return http.StatusUnprocessableEntity, "insufficient_time_span"
	case errors.Is(err, domain.ErrSelectionOutOfRange):
		return http.StatusBadRequest, "bad_selection"
	default:
		return http.StatusInternalServerError, "internal"
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}
