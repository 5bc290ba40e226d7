// Command insights runs the ledger pipeline on a CSV file and prints
// natural-language insights for the resulting aggregates. Raw rows never
// leave the process; remote providers only see aggregate summaries.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"insightcli/internal/config"
	"insightcli/internal/dataprocessing"
	"insightcli/internal/infrastructure"
	"insightcli/internal/insights"
)

func main() {
	inPath := flag.String("in", "", "input ledger CSV file (required)")
	kind := flag.String("kind", "pattern", "insight kind: pattern, risk, or custom")
	question := flag.String("question", "", "question for custom insights")
	providerName := flag.String("provider", "", "insight provider: local, anthropic, or openai (defaults to configured provider)")
	flag.Parse()

	if *inPath == "" {
		fmt.Fprintln(os.Stderr, "usage: insights -in ledger.csv [-kind pattern|risk|custom] [-question ...] [-provider ...]")
		os.Exit(2)
	}
	if *kind == "custom" && *question == "" {
		fmt.Fprintln(os.Stderr, "custom insights require -question")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Error("Failed to initialize logger", "error", err)
		os.Exit(1)
	}
	defer infrastructure.CloseLogFile()

	ctx := context.Background()

	processor := dataprocessing.NewProcessor(logger, dataprocessing.ProcessorConfig{TopK: cfg.Analytics.TopK})
	result, err := processor.ProcessFile(ctx, *inPath)
	if err != nil {
		logger.ErrorContext(ctx, "pipeline failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	name := *providerName
	if name == "" {
		name = cfg.Insights.Provider
	}

	provider, err := insights.NewProvider(name, insights.ProviderConfig{
		Model:       cfg.Insights.Model,
		MaxTokens:   cfg.Insights.MaxTokens,
		Temperature: cfg.Insights.Temperature,
		Timeout:     cfg.Insights.Timeout,
		APIKey:      cfg.Insights.APIKey(name),
	})
	if err != nil {
		logger.WarnContext(ctx, "provider unavailable, using local heuristics",
			slog.String("provider", name),
			slog.String("error", err.Error()))
		provider = nil
	}

	generator := insights.NewGenerator(logger, provider)

	var out *insights.Result
	switch *kind {
	case "risk":
		out = generator.RiskInsights(ctx, result.Analytics)
	case "custom":
		out = generator.CustomInsights(ctx, result.Analytics, *question)
	default:
		out = generator.PatternInsights(ctx, result.Analytics)
	}

	if out.Fallback {
		fmt.Fprintln(os.Stderr, "note: remote provider failed, showing local heuristic insights")
	}
	fmt.Println(out.Text)
}
