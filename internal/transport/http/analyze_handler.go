package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"insightcli/internal/dataprocessing"
	apierrors "insightcli/internal/errors"
	"insightcli/internal/services"
)

// AnalyzeHandler handles ledger upload and analysis requests
type AnalyzeHandler struct {
	service        *services.AnalysisService
	logger         *slog.Logger
	maxUploadBytes int64
}

// NewAnalyzeHandler creates a new analyze handler
func NewAnalyzeHandler(service *services.AnalysisService, maxUploadBytes int64, logger *slog.Logger) *AnalyzeHandler {
	return &AnalyzeHandler{
		service:        service,
		logger:         logger.With(slog.String("handler", "analyze")),
		maxUploadBytes: maxUploadBytes,
	}
}

// Routes returns the analysis routes
func (h *AnalyzeHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Post("/", h.Analyze)
	r.Get("/", h.ListAnalyses)
	r.Get("/{id}", h.GetAnalysis)

	return r
}

// Analyze handles POST /api/analyze. It expects a multipart form with a
// single "file" field holding the ledger CSV.
func (h *AnalyzeHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		h.logger.WarnContext(ctx, "failed to parse multipart form",
			slog.String("error", err.Error()))
		render.Render(w, r, apierrors.NewErrorResponse(
			apierrors.ErrValidation("file", "Upload must be a multipart form with a 'file' field")))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		render.Render(w, r, apierrors.NewErrorResponse(
			apierrors.ErrValidation("file", "Missing 'file' field in upload")))
		return
	}
	defer file.Close()

	h.logger.InfoContext(ctx, "ledger upload received",
		slog.String("filename", header.Filename),
		slog.Int64("size", header.Size))

	analysis, err := h.service.Analyze(ctx, file)
	if err != nil {
		h.renderPipelineError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, analysis)
}

// GetAnalysis handles GET /api/analyze/{id}
func (h *AnalyzeHandler) GetAnalysis(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	analysis, err := h.service.Get(r.Context(), id)
	if err != nil {
		render.Render(w, r, apierrors.NewErrorResponse(apierrors.NotFoundError("analysis")))
		return
	}

	render.JSON(w, r, analysis)
}

// ListAnalyses handles GET /api/analyze
func (h *AnalyzeHandler) ListAnalyses(w http.ResponseWriter, r *http.Request) {
	analyses := h.service.List(r.Context())
	render.JSON(w, r, map[string]interface{}{
		"analyses": analyses,
		"count":    len(analyses),
	})
}

// renderPipelineError maps pipeline failures onto API error responses
func (h *AnalyzeHandler) renderPipelineError(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()

	var schemaErr *dataprocessing.SchemaError
	if errors.As(err, &schemaErr) {
		h.logger.WarnContext(ctx, "ledger schema rejected",
			slog.Any("missing_columns", schemaErr.MissingColumns))
		render.Render(w, r, apierrors.NewErrorResponse(apierrors.ErrSchema(schemaErr)))
		return
	}

	var emptyErr *dataprocessing.EmptyResultError
	if errors.As(err, &emptyErr) {
		h.logger.WarnContext(ctx, "all ledger rows rejected",
			slog.Int("input_rows", emptyErr.Report.InputRows))
		render.Render(w, r, apierrors.NewErrorResponse(apierrors.ErrEmptyResult(emptyErr)))
		return
	}

	var appErr *apierrors.AppError
	if errors.As(err, &appErr) && appErr.Type == apierrors.ErrTypeParsing {
		render.Render(w, r, apierrors.NewErrorResponse(
			apierrors.InvalidRequestWithError(appErr)))
		return
	}

	h.logger.ErrorContext(ctx, "analysis failed",
		slog.String("error", err.Error()))
	render.Render(w, r, apierrors.NewErrorResponse(apierrors.ErrInternalServer))
}
