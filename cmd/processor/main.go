// Command processor runs the full ledger pipeline on a CSV file: clean the
// rows, compute analytics, and write the cleaned dataset plus analytics
// reports to the output directory.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"insightcli/internal/config"
	"insightcli/internal/dataprocessing"
	"insightcli/internal/exporter"
	"insightcli/internal/infrastructure"
	"insightcli/pkg/contracts/domain"
)

func main() {
	inPath := flag.String("in", "", "input ledger CSV file (required)")
	outDir := flag.String("out", "", "output directory (defaults to configured reports dir)")
	topK := flag.Int("topk", 0, "number of top tickers for concentration stats (defaults to configured value)")
	flag.Parse()

	if *inPath == "" {
		fmt.Fprintln(os.Stderr, "usage: processor -in ledger.csv [-out dir] [-topk n]")
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

	if *outDir == "" {
		*outDir = cfg.Paths.ReportsDir
	}
	if *topK <= 0 {
		*topK = cfg.Analytics.TopK
	}

	ctx := context.Background()

	processor := dataprocessing.NewProcessor(logger, dataprocessing.ProcessorConfig{TopK: *topK})

	logger.InfoContext(ctx, "processing ledger",
		slog.String("input", *inPath),
		slog.String("output", *outDir))

	result, err := processor.ProcessFile(ctx, *inPath)
	if err != nil {
		logger.ErrorContext(ctx, "pipeline failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logCleaningReport(ctx, logger, result.Report)

	base := strings.TrimSuffix(filepath.Base(*inPath), filepath.Ext(*inPath))

	csvWriter := exporter.NewCSVWriter(logger)
	cleanedPath := filepath.Join(*outDir, base+"_cleaned.csv")
	if err := csvWriter.WriteDataset(cleanedPath, result.Dataset); err != nil {
		logger.ErrorContext(ctx, "failed to write cleaned dataset", slog.String("error", err.Error()))
		os.Exit(1)
	}

	jsonWriter := exporter.NewJSONWriter(logger)
	analyticsPath := filepath.Join(*outDir, base+"_analytics.json")
	if err := jsonWriter.WriteAnalytics(analyticsPath, result.Analytics); err != nil {
		logger.ErrorContext(ctx, "failed to write analytics JSON", slog.String("error", err.Error()))
		os.Exit(1)
	}

	excelWriter := exporter.NewExcelWriter(logger)
	excelPath := filepath.Join(*outDir, base+"_analytics.xlsx")
	if err := excelWriter.WriteAnalytics(excelPath, result.Analytics); err != nil {
		logger.ErrorContext(ctx, "failed to write analytics workbook", slog.String("error", err.Error()))
		os.Exit(1)
	}

	summary := domain.NewSummaryStats(result.Analytics)
	logger.InfoContext(ctx, "pipeline complete",
		slog.Int("transactions", summary.TotalTransactions),
		slog.String("total_volume", summary.TotalVolume),
		slog.String("top_ticker", summary.TopTickerByVolume),
		slog.String("date_range", summary.DateRange),
		slog.String("cleaned_csv", cleanedPath),
		slog.String("analytics_json", analyticsPath),
		slog.String("analytics_xlsx", excelPath))
}

func logCleaningReport(ctx context.Context, logger *slog.Logger, report *dataprocessing.CleaningReport) {
	logger.InfoContext(ctx, "cleaning report",
		slog.Int("input_rows", report.InputRows),
		slog.Int("accepted", report.Accepted),
		slog.Int("rejected", report.Rejected))
	for reason, count := range report.Reasons {
		logger.InfoContext(ctx, "rejection reason",
			slog.String("reason", string(reason)),
			slog.Int("count", count))
	}
}
