package insights

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"insightcli/pkg/contracts/domain"
)

// Kind identifies a built-in insight request shape.
type Kind string

const (
	KindPattern Kind = "pattern"
	KindRisk    Kind = "risk"
	KindCustom  Kind = "custom"
)

// topSummaryEntries bounds how many items per aggregate section flow into
// the provider prompt.
const topSummaryEntries = 10

// Result carries generated insight text plus provenance so callers can tell
// whether a remote provider answered or the local fallback kicked in.
type Result struct {
	Kind     Kind   `json:"kind"`
	Provider string `json:"provider"`
	Text     string `json:"text"`
	Fallback bool   `json:"fallback"`
	Question string `json:"question,omitempty"`
}

// Generator turns aggregate analytics into natural-language insight text.
// Only aggregates ever reach the provider prompt; raw transaction rows stay
// inside the process.
type Generator struct {
	logger   *slog.Logger
	provider Provider
	local    *LocalGenerator
}

// NewGenerator creates a generator. A nil provider means local-only mode.
func NewGenerator(logger *slog.Logger, provider Provider) *Generator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{
		logger:   logger,
		provider: provider,
		local:    NewLocalGenerator(),
	}
}

// PatternInsights highlights trading patterns, concentrations and anomalies.
func (g *Generator) PatternInsights(ctx context.Context, a *domain.AnalyticsResult) *Result {
	prompt := fmt.Sprintf(`You are a trading-data analyst. Based on the aggregate statistics below, identify notable patterns in this transaction ledger.

%s

Respond in markdown with these sections:
## Key Patterns
## Concentrations / Imbalances
## Unusual Activity
## Suggested Follow-ups

Base every statement strictly on the statistics provided. Do not invent numbers.`, buildDataSummary(a, topSummaryEntries))

	return g.generate(ctx, KindPattern, a, "", prompt)
}

// RiskInsights assesses concentration, position and activity risk.
func (g *Generator) RiskInsights(ctx context.Context, a *domain.AnalyticsResult) *Result {
	prompt := fmt.Sprintf(`You are a risk analyst reviewing a trade transaction ledger. Using only the aggregate statistics below, assess the risk profile of this activity.

%s

Respond in markdown with these sections:
## Concentration Risk
## Position Risk
## Activity Risk
## Recommended Controls

Base every statement strictly on the statistics provided. Do not invent numbers.`, buildDataSummary(a, topSummaryEntries))

	return g.generate(ctx, KindRisk, a, "", prompt)
}

// CustomInsights answers a caller-supplied question about the aggregates.
func (g *Generator) CustomInsights(ctx context.Context, a *domain.AnalyticsResult, question string) *Result {
	question = strings.TrimSpace(question)
	prompt := fmt.Sprintf(`You are a trading-data analyst. Answer the question below using only the aggregate statistics that follow. If the statistics cannot answer it, say so explicitly.

Question: %s

%s

Respond in markdown. Base every statement strictly on the statistics provided.`, question, buildDataSummary(a, topSummaryEntries))

	return g.generate(ctx, KindCustom, a, question, prompt)
}

func (g *Generator) generate(ctx context.Context, kind Kind, a *domain.AnalyticsResult, question, prompt string) *Result {
	if g.provider == nil {
		return &Result{
			Kind:     kind,
			Provider: "local",
			Text:     g.local.Generate(ctx, a, question),
			Question: question,
		}
	}

	text, err := g.provider.Complete(ctx, prompt)
	if err != nil {
		g.logger.WarnContext(ctx, "insight provider failed, falling back to local heuristics",
			slog.String("provider", g.provider.Name()),
			slog.String("kind", string(kind)),
			slog.String("error", err.Error()))
		return &Result{
			Kind:     kind,
			Provider: "local",
			Text:     g.local.Generate(ctx, a, question),
			Fallback: true,
			Question: question,
		}
	}

	g.logger.InfoContext(ctx, "insights generated",
		slog.String("provider", g.provider.Name()),
		slog.String("kind", string(kind)))

	return &Result{
		Kind:     kind,
		Provider: g.provider.Name(),
		Text:     strings.TrimSpace(text),
		Question: question,
	}
}
