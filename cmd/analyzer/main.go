package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"retailcli/internal/analytics"
	"retailcli/internal/config"
	"retailcli/internal/dataprocessing"
	"retailcli/internal/exporter"
	"retailcli/internal/infrastructure"
	"retailcli/internal/validation"
)

func main() {
	inFile := flag.String("in", "", "input .xlsx workbook (defaults to the configured dataset path)")
	outDir := flag.String("out", "", "output directory for report files (defaults to the configured reports dir)")
	topN := flag.Int("top", 0, "number of products in the ranking (defaults to the configured value)")
	metric := flag.String("metric", "", "ranking metric: revenue, quantity, orders, customers")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := infrastructure.MustInitializeLogger(cfg.Logging)
	defer infrastructure.CloseLogFile()

	// Flags override the configured analysis options.
	if *inFile == "" {
		*inFile = cfg.DatasetPath()
	}
	if *outDir == "" {
		*outDir = cfg.Paths.ReportsDir
	}
	if *topN > 0 {
		cfg.Analysis.TopN = *topN
	}
	if *metric != "" {
		cfg.Analysis.RankMetric = *metric
	}

	rankMetric, err := analytics.ParseRankMetric(cfg.Analysis.RankMetric)
	if err != nil {
		logger.Error("Invalid ranking metric", "error", err)
		os.Exit(1)
	}

	ctx := infrastructure.ContextWithTraceID(context.Background())

	if err := run(ctx, logger, cfg, *inFile, *outDir, rankMetric); err != nil {
		infrastructure.WithError(logger, err).ErrorContext(ctx, "Analysis failed")
		os.Exit(1)
	}

	logger.InfoContext(ctx, "Analysis completed successfully",
		slog.String("reports_dir", *outDir))
}

func run(ctx context.Context, logger *slog.Logger, cfg *config.Config, inFile, outDir string, metric analytics.RankMetric) error {
	validator := validation.NewFileValidator(logger)
	if err := validator.ValidateDatasetFile(inFile); err != nil {
		return err
	}
	if err := validator.ValidateOutputDirectory(outDir); err != nil {
		return err
	}

	// Stage 1: load raw rows.
	raw, err := dataprocessing.LoadFile(inFile)
	if err != nil {
		return err
	}

	// Stage 2: clean.
	cleaner := dataprocessing.NewCleaner(logger, dataprocessing.CleanerConfig{
		OutlierMultiplier:   cfg.Analysis.OutlierMultiplier,
		DescriptionSentinel: dataprocessing.DefaultDescriptionSentinel,
	})
	cleaned, stats := cleaner.Clean(ctx, raw)

	// Stage 3: derive summaries.
	trends := analytics.NewTrendAnalyzer(logger).SummarizeByMonth(ctx, cleaned)
	products := analytics.NewProductRanker(logger).TopByMetric(ctx, cleaned, metric, cfg.Analysis.TopN)

	customerAnalyzer := analytics.NewCustomerAnalyzer(logger)
	customers := customerAnalyzer.SummarizeByCustomer(ctx, cleaned)
	concentration := customerAnalyzer.TopDecileConcentration(customers)

	logger.InfoContext(ctx, "customer concentration",
		slog.Float64("top_decile_revenue_share", concentration))

	// Stage 4: aggregate report.
	report, err := analytics.NewReportBuilder(logger).Synthesize(ctx, cleaned)
	if err != nil {
		return err
	}

	// Stage 5: export the five artifacts.
	writer := exporter.NewCSVWriter(outDir)
	if err := writer.WriteCleanedRecords(cleaned); err != nil {
		return err
	}
	if err := writer.WriteMonthlySummaries(trends); err != nil {
		return err
	}
	if err := writer.WriteProductSummaries(products); err != nil {
		return err
	}
	if err := writer.WriteCustomerSummaries(customers); err != nil {
		return err
	}
	return writer.WriteBusinessReport(report, stats, concentration)
}
