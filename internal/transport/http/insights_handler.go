package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"insightcli/internal/config"
	apierrors "insightcli/internal/errors"
	"insightcli/internal/insights"
	"insightcli/internal/services"
)

// InsightsRequest is the body accepted by POST /api/insights
type InsightsRequest struct {
	AnalysisID string `json:"analysis_id" validate:"required,uuid4"`
	Kind       string `json:"kind" validate:"omitempty,oneof=pattern risk custom"`
	Question   string `json:"question" validate:"required_if=Kind custom,max=500"`
	Provider   string `json:"provider" validate:"omitempty,oneof=local anthropic openai"`
}

// InsightsHandler handles insight generation requests
type InsightsHandler struct {
	service  *services.AnalysisService
	cfg      config.InsightsConfig
	logger   *slog.Logger
	validate *validator.Validate
}

// NewInsightsHandler creates a new insights handler
func NewInsightsHandler(service *services.AnalysisService, cfg config.InsightsConfig, logger *slog.Logger) *InsightsHandler {
	return &InsightsHandler{
		service:  service,
		cfg:      cfg,
		logger:   logger.With(slog.String("handler", "insights")),
		validate: validator.New(),
	}
}

// Routes returns the insights routes
func (h *InsightsHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Post("/", h.Generate)

	return r
}

// Generate handles POST /api/insights
func (h *InsightsHandler) Generate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req InsightsRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		render.Render(w, r, apierrors.NewErrorResponse(apierrors.InvalidRequestWithError(err)))
		return
	}

	if err := h.validate.Struct(&req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			field := verrs[0].Field()
			render.Render(w, r, apierrors.NewErrorResponse(
				apierrors.ErrValidation(field, "failed '"+verrs[0].Tag()+"' validation")))
			return
		}
		render.Render(w, r, apierrors.NewErrorResponse(apierrors.ErrValidationFailed))
		return
	}

	kind := insights.Kind(req.Kind)
	if kind == "" {
		kind = insights.KindPattern
	}

	generator := h.buildGenerator(ctx, req.Provider)

	result, err := h.service.Insights(ctx, req.AnalysisID, kind, req.Question, generator)
	if err != nil {
		var appErr *apierrors.AppError
		if errors.As(err, &appErr) && appErr.Type == apierrors.ErrTypeNotFound {
			render.Render(w, r, apierrors.NewErrorResponse(apierrors.NotFoundError("analysis")))
			return
		}
		h.logger.ErrorContext(ctx, "insight generation failed",
			slog.String("error", err.Error()))
		render.Render(w, r, apierrors.NewErrorResponse(apierrors.ErrInternalServer))
		return
	}

	render.JSON(w, r, result)
}

// buildGenerator constructs the generator for the requested provider.
// A provider that cannot be built (unknown name, missing API key)
// degrades to local heuristics rather than failing the request.
func (h *InsightsHandler) buildGenerator(ctx context.Context, providerName string) *insights.Generator {
	name := providerName
	if name == "" {
		name = h.cfg.Provider
	}

	provider, err := insights.NewProvider(name, h.providerConfig(name))
	if err != nil {
		h.logger.WarnContext(ctx, "insight provider unavailable, using local heuristics",
			slog.String("provider", name),
			slog.String("error", err.Error()))
		provider = nil
	}

	return insights.NewGenerator(h.logger, provider)
}

// providerConfig builds the provider settings for the named provider. The
// API key follows the requested provider, which may differ from the
// configured one when the request overrides it.
func (h *InsightsHandler) providerConfig(name string) insights.ProviderConfig {
	return insights.ProviderConfig{
		Model:       h.cfg.Model,
		MaxTokens:   h.cfg.MaxTokens,
		Temperature: h.cfg.Temperature,
		Timeout:     h.cfg.Timeout,
		APIKey:      h.cfg.APIKey(name),
	}
}
