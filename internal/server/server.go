// Package server exposes the reconciliation engine over HTTP.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/iwvelando/trid-reconcile/internal/reconcile"
	"github.com/iwvelando/trid-reconcile/pkg/constants"
	"github.com/iwvelando/trid-reconcile/pkg/tolerance"
	"github.com/iwvelando/trid-reconcile/pkg/validation"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const (
	pathDocuments = "documents"
	pathMatched   = "matched"
	pathUnknown   = "none"
)

type handler struct {
	logger        *zap.Logger
	maxUploadSize int64
	version       string
	defaults      tolerance.RuleOptions
	reconciler    *reconcile.Reconciler
	metrics       *Metrics
}

// Options carries the engine defaults applied to requests that omit them.
type Options struct {
	Rules    tolerance.RuleOptions
	Registry *prometheus.Registry
}

// NewHandler constructs the HTTP handler that serves the reconciliation API
// and its metrics. A nil registry gets a private one.
func NewHandler(logger *zap.Logger, maxUploadSize int64, version string, opts Options) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	if maxUploadSize <= 0 {
		maxUploadSize = constants.DefaultMaxUploadSizeBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	reg := opts.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	h := &handler{
		logger:        logger,
		maxUploadSize: maxUploadSize,
		version:       trimmedVersion,
		defaults:      opts.Rules,
		reconciler:    reconcile.New(logger),
		metrics:       NewMetrics(reg),
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/", h.handleHealth)
	r.Get("/api/version", h.handleVersion)
	r.Post("/api/reconcile", h.handleReconcile)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	return r
}

type reconcileResponse struct {
	*reconcile.Result
	Duration string `json:"duration"`
}

func (h *handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": h.version,
	})
}

func (h *handler) handleVersion(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *handler) handleReconcile(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleReconcile"
	start := time.Now()
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)

	var req reconcile.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.metrics.ObserveError(pathUnknown)
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondErrorWithOp(w, r, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request exceeds limit of %d bytes", h.maxUploadSize), op)
			return
		}
		h.respondErrorWithOp(w, r, http.StatusBadRequest, fmt.Sprintf("failed to decode request: %v", err), op)
		return
	}

	path := requestPath(req)
	if err := validation.ValidateRuleOptions(req.Options.Apply(h.defaults)); err != nil {
		h.metrics.ObserveError(path)
		h.respondErrorWithOp(w, r, http.StatusBadRequest, err.Error(), op)
		return
	}
	if req.LoanEstimate != nil {
		req.LoanEstimate.RecomputeTotals()
	}
	if req.ClosingDisclosure != nil {
		req.ClosingDisclosure.RecomputeTotals()
	}

	res, err := h.reconciler.Run(req, h.defaults)
	if err != nil {
		h.metrics.ObserveError(path)
		status := http.StatusInternalServerError
		if errors.Is(err, reconcile.ErrNoInput) || errors.Is(err, reconcile.ErrMissingDocument) {
			status = http.StatusBadRequest
		}
		h.respondErrorWithOp(w, r, status, err.Error(), op)
		return
	}

	elapsed := time.Since(start)
	h.metrics.ObserveResult(path, res, elapsed.Seconds())

	h.logger.Info("reconciliation computed",
		zap.String("op", op),
		zap.String("request_id", middleware.GetReqID(r.Context())),
		zap.String("path", path),
		zap.Int("exceptions", len(res.Exceptions)),
		zap.Float64("total_delta", res.TotalDelta),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, reconcileResponse{Result: res, Duration: elapsed.String()})
}

func requestPath(req reconcile.Request) string {
	switch {
	case len(req.MatchedFees) > 0:
		return pathMatched
	case req.LoanEstimate != nil || req.ClosingDisclosure != nil:
		return pathDocuments
	default:
		return pathUnknown
	}
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, r *http.Request, status int, msg string, op string) {
	h.logger.Error("reconcile request failed",
		zap.String("op", op),
		zap.String("request_id", middleware.GetReqID(r.Context())),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}
