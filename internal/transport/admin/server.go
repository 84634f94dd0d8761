// Package admin exposes the operational HTTP surface: health probes,
// Prometheus metrics, and collation run control.
package admin

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kitesearch/collator"
	"github.com/kitesearch/collator/internal/db"
	"github.com/kitesearch/collator/internal/transport/openai"
	healthuc "github.com/kitesearch/collator/internal/usecase/health"
	"github.com/kitesearch/collator/internal/usecase/ingest"
)

// Runner triggers collation runs and reports the latest one.
type Runner interface {
	Run(ctx context.Context) (ingest.RunStats, error)
	Latest() (ingest.RunStats, bool)
}

// IndexStore exposes the search index to operators: document lookup,
// index size, and a full schema rebuild.
type IndexStore interface {
	Get(ctx context.Context, location string) (collator.CatalogDocument, error)
	Count(ctx context.Context) (int, error)
	RebuildIndex(ctx context.Context) error
}

// HealthChecker aggregates readiness checks.
type HealthChecker interface {
	Check(ctx context.Context) healthuc.Report
}

// Server handles the admin API routes.
type Server struct {
	runner Runner
	index  IndexStore
	health HealthChecker
	logger *zap.Logger
}

// NewServer creates an admin API server.
func NewServer(runner Runner, index IndexStore, health HealthChecker, logger *zap.Logger) *Server {
	return &Server{
		runner: runner,
		index:  index,
		health: health,
		logger: logger,
	}
}

// Register mounts the admin routes on the given router.
func (s *Server) Register(r chi.Router) {
	r.Get("/healthz", s.handleLiveness)
	r.Get("/readyz", s.handleReadiness)
	r.Get("/metrics", promhttp.Handler().ServeHTTP)
	r.Post("/v1/collations", s.handleRunCollation)
	r.Get("/v1/collations/latest", s.handleLatestCollation)
	r.Get("/v1/documents", s.handleGetDocument)
	r.Get("/v1/index/stats", s.handleIndexStats)
	r.Post("/v1/index/rebuild", s.handleRebuildIndex)
}

// handleLiveness handles GET /healthz. Liveness is unconditional: the
// process answering is the check.
func (s *Server) handleLiveness(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleReadiness handles GET /readyz.
func (s *Server) handleReadiness(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	status := http.StatusOK
	if report.Status != healthuc.Healthy {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, report)
}

// handleRunCollation handles POST /v1/collations: run one collation
// synchronously and return its stats.
func (s *Server) handleRunCollation(w http.ResponseWriter, r *http.Request) {
	stats, err := s.runner.Run(r.Context())
	if err != nil {
		s.handleRunError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// handleLatestCollation handles GET /v1/collations/latest.
func (s *Server) handleLatestCollation(w http.ResponseWriter, _ *http.Request) {
	stats, ok := s.runner.Latest()
	if !ok {
		writeError(w, http.StatusNotFound, "no_collation_yet", "no collation has run yet")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// handleGetDocument handles GET /v1/documents?location=...
func (s *Server) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	location := r.URL.Query().Get("location")
	if location == "" {
		writeError(w, http.StatusBadRequest, "bad_request", "location query parameter is required")
		return
	}

	doc, err := s.index.Get(r.Context(), location)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			writeError(w, http.StatusNotFound, "document_not_found", "no document at that location")
			return
		}
		s.logger.Error("get document failed", zap.String("location", location), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, doc)
}

// handleIndexStats handles GET /v1/index/stats.
func (s *Server) handleIndexStats(w http.ResponseWriter, r *http.Request) {
	count, err := s.index.Count(r.Context())
	if err != nil {
		s.logger.Error("count documents failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"documents": count})
}

// handleRebuildIndex handles POST /v1/index/rebuild: drop and recreate the
// FT index with the current schema. Documents survive; the store re-indexes
// them under the configured prefix.
func (s *Server) handleRebuildIndex(w http.ResponseWriter, r *http.Request) {
	if err := s.index.RebuildIndex(r.Context()); err != nil {
		s.logger.Error("rebuild index failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "rebuilt"})
}

// handleRunError maps a failed run onto an HTTP status by pipeline stage.
// Upstream failures are 502s; a malformed catalog entity is the caller's
// 422 to act on.
func (s *Server) handleRunError(w http.ResponseWriter, err error) {
	s.logger.Warn("collation run failed", zap.Error(err))

	switch {
	case errors.Is(err, collator.ErrDiscovery):
		writeError(w, http.StatusBadGateway, "discovery_failed", "catalog service could not be located")
	case errors.Is(err, collator.ErrRetrieval):
		writeError(w, http.StatusBadGateway, "catalog_unavailable", "catalog service request failed")
	case errors.Is(err, collator.ErrMapping):
		writeError(w, http.StatusUnprocessableEntity, "mapping_failed", "catalog returned a malformed entity")
	case errors.Is(err, openai.ErrProviderError):
		writeError(w, http.StatusBadGateway, "embedding_provider_error", "embedding provider request failed")
	default:
		s.logger.Error("internal error", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
	}
}

// errorResponse is the admin API error body.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{
		Code:    code,
		Message: message,
	})
}
