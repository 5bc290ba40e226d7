package services

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"insightcli/internal/dataprocessing"
	apperrors "insightcli/internal/errors"
	"insightcli/internal/exporter"
	"insightcli/internal/insights"
	"insightcli/pkg/contracts/domain"
)

// Analysis is a stored, completed ledger analysis
type Analysis struct {
	ID        string                 `json:"analysis_id"`
	CreatedAt time.Time              `json:"created_at"`
	Summary   domain.SummaryStats    `json:"summary"`
	Report    *dataprocessing.CleaningReport `json:"cleaning_report"`
	Analytics map[string]interface{} `json:"analytics"`

	// raw aggregates kept server-side for insight generation
	result *domain.AnalyticsResult
}

// AnalysisService runs the cleaning and analytics pipeline for uploaded
// ledgers and keeps completed analyses in memory so insight requests can
// reference them by ID.
type AnalysisService struct {
	processor *dataprocessing.Processor
	logger    *slog.Logger

	mu       sync.RWMutex
	analyses map[string]*Analysis
}

// NewAnalysisService creates the analysis service
func NewAnalysisService(processor *dataprocessing.Processor, logger *slog.Logger) *AnalysisService {
	return &AnalysisService{
		processor: processor,
		logger:    logger.With(slog.String("service", "analysis")),
		analyses:  make(map[string]*Analysis),
	}
}

// Analyze cleans the uploaded CSV, computes analytics and stores the result
func (s *AnalysisService) Analyze(ctx context.Context, r io.Reader) (*Analysis, error) {
	result, err := s.processor.ProcessReader(ctx, r)
	if err != nil {
		return nil, err
	}

	analysis := &Analysis{
		ID:        uuid.New().String(),
		CreatedAt: time.Now().UTC(),
		Summary:   domain.NewSummaryStats(result.Analytics),
		Report:    result.Report,
		Analytics: exporter.NormalizeAnalytics(result.Analytics),
		result:    result.Analytics,
	}

	s.mu.Lock()
	s.analyses[analysis.ID] = analysis
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "analysis stored",
		slog.String("analysis_id", analysis.ID),
		slog.Int("transactions", result.Analytics.TotalTransactions),
		slog.Int("rejected", result.Report.Rejected))

	return analysis, nil
}

// Get returns a stored analysis by ID
func (s *AnalysisService) Get(ctx context.Context, id string) (*Analysis, error) {
	s.mu.RLock()
	analysis, ok := s.analyses[id]
	s.mu.RUnlock()
	if !ok {
		return nil, apperrors.NewNotFoundError("analysis " + id)
	}
	return analysis, nil
}

// List returns stored analyses, newest first
func (s *AnalysisService) List(ctx context.Context) []*Analysis {
	s.mu.RLock()
	out := make([]*Analysis, 0, len(s.analyses))
	for _, a := range s.analyses {
		out = append(out, a)
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Insights generates insight text for a stored analysis. Only the aggregate
// analytics ever reach the generator; raw rows are never retained.
func (s *AnalysisService) Insights(ctx context.Context, id string, kind insights.Kind, question string, generator *insights.Generator) (*insights.Result, error) {
	analysis, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	switch kind {
	case insights.KindRisk:
		return generator.RiskInsights(ctx, analysis.result), nil
	case insights.KindCustom:
		return generator.CustomInsights(ctx, analysis.result, question), nil
	default:
		return generator.PatternInsights(ctx, analysis.result), nil
	}
}
