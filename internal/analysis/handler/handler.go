// Package handler is the thin HTTP layer over the analysis service. It
// delegates to the service without embedding analysis logic so transport
// concerns remain isolated.
package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"clausecheck/internal/analysis"
	dErrors "clausecheck/pkg/domain-errors"
	"clausecheck/pkg/platform/httputil"
	"clausecheck/pkg/platform/sentinel"
	"clausecheck/pkg/requestcontext"
)

// Handler wires analysis endpoints to the analysis service.
type Handler struct {
	service          *analysis.Service
	logger           *slog.Logger
	batchParallelism int
}

// Option customizes handler behaviour.
type Option func(*Handler)

// WithBatchParallelism bounds concurrent documents per batch request.
// Values <= 0 leave the service default in place.
func WithBatchParallelism(n int) Option {
	return func(h *Handler) {
		h.batchParallelism = n
	}
}

// New constructs the analysis handler.
func New(service *analysis.Service, logger *slog.Logger, opts ...Option) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	h := &Handler{service: service, logger: logger}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Register mounts analysis endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/analysis/evaluate", h.HandleEvaluate)
	r.Post("/analysis/batch", h.HandleBatch)
	r.Get("/analysis/reports/{id}", h.HandleGetReport)
	r.Post("/coverage/reload", h.HandleCoverageReload)
}

// HandleEvaluate handles POST /analysis/evaluate.
func (h *Handler) HandleEvaluate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[EvaluateRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	report, err := h.service.Evaluate(ctx, req.ToRequest())
	if err != nil {
		h.logger.ErrorContext(ctx, "analysis failed", "request_id", requestID, "error", err)
		httputil.WriteError(w, dErrors.Wrap(dErrors.CodeInternal, "analysis failed", err))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, report)
}

// HandleBatch handles POST /analysis/batch.
func (h *Handler) HandleBatch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[BatchRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	reqs := make([]analysis.Request, len(req.Documents))
	for i := range req.Documents {
		reqs[i] = req.Documents[i].ToRequest()
	}
	reports, err := h.service.EvaluateBatch(ctx, reqs, h.batchParallelism)
	if err != nil {
		h.logger.ErrorContext(ctx, "batch analysis failed", "request_id", requestID, "error", err)
		httputil.WriteError(w, dErrors.Wrap(dErrors.CodeInternal, "batch analysis failed", err))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"reports": reports})
}

// HandleGetReport handles GET /analysis/reports/{id}.
func (h *Handler) HandleGetReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")
	if id == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "report id is required"))
		return
	}

	report, err := h.service.FindReport(ctx, id)
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "report not found"))
	case errors.Is(err, analysis.ErrStoreDisabled):
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnavailable, "report persistence is disabled"))
	case err != nil:
		httputil.WriteError(w, dErrors.Wrap(dErrors.CodeInternal, "report lookup failed", err))
	default:
		httputil.WriteJSON(w, http.StatusOK, report)
	}
}

// HandleCoverageReload handles POST /coverage/reload: explicit invalidate
// then reload of the zone specification.
func (h *Handler) HandleCoverageReload(w http.ResponseWriter, r *http.Request) {
	if err := h.service.ReloadCoverage(); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, err.Error()))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "reloaded"})
}
