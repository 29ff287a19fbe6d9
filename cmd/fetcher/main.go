package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"path/filepath"

	"retailcli/internal/config"
	"retailcli/internal/fetch"
	"retailcli/internal/infrastructure"
	"retailcli/internal/validation"
)

func main() {
	url := flag.String("url", "", "dataset URL (defaults to the configured dataset URL)")
	out := flag.String("out", "", "target file path (defaults to the configured dataset path)")
	quiet := flag.Bool("q", false, "suppress the progress bar")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := infrastructure.MustInitializeLogger(cfg.Logging)
	defer infrastructure.CloseLogFile()

	if *url == "" {
		*url = cfg.Fetch.DatasetURL
	}
	if *out == "" {
		*out = cfg.DatasetPath()
	}

	ctx := infrastructure.ContextWithTraceID(context.Background())

	if err := validation.NewFileValidator(logger).ValidateOutputDirectory(filepath.Dir(*out)); err != nil {
		infrastructure.WithError(logger, err).ErrorContext(ctx, "Target directory unusable")
		os.Exit(1)
	}

	downloader := fetch.NewDownloader(logger, fetch.WithProgress(!*quiet))
	downloaded, err := downloader.Fetch(ctx, *url, *out)
	if err != nil {
		infrastructure.WithError(logger, err).ErrorContext(ctx, "Dataset fetch failed")
		os.Exit(1)
	}

	if downloaded {
		logger.InfoContext(ctx, "Dataset ready", slog.String("path", *out))
	} else {
		logger.InfoContext(ctx, "Using cached dataset", slog.String("path", *out))
	}
}
