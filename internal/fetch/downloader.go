// Package fetch acquires the raw retail dataset over HTTP with a
// cache-if-exists check: an already-downloaded file is never re-fetched.
package fetch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/schollz/progressbar/v3"

	apperrors "retailcli/internal/errors"
)

// Downloader fetches the dataset workbook.
type Downloader struct {
	logger       *slog.Logger
	client       *http.Client
	showProgress bool
}

// Option configures a Downloader.
type Option func(*Downloader)

// WithClient overrides the HTTP client, mainly for tests.
func WithClient(client *http.Client) Option {
	return func(d *Downloader) { d.client = client }
}

// WithProgress toggles the terminal progress bar.
func WithProgress(show bool) Option {
	return func(d *Downloader) { d.showProgress = show }
}

// NewDownloader creates a new dataset downloader.
func NewDownloader(logger *slog.Logger, opts ...Option) *Downloader {
	if logger == nil {
		logger = slog.Default()
	}
	d := &Downloader{
		logger: logger,
		client: &http.Client{Timeout: 10 * time.Minute},
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Fetch downloads url to targetPath unless the file already exists. It
// returns true when a download actually happened and false when the cached
// copy was reused. The body is streamed to a temporary file and renamed into
// place so a failed download never leaves a truncated dataset behind.
func (d *Downloader) Fetch(ctx context.Context, url, targetPath string) (bool, error) {
	if _, err := os.Stat(targetPath); err == nil {
		d.logger.InfoContext(ctx, "dataset already present, skipping download",
			slog.String("path", targetPath))
		return false, nil
	}

	d.logger.InfoContext(ctx, "downloading dataset",
		slog.String("url", url),
		slog.String("path", targetPath))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false, apperrors.NewSourceError("failed to build download request", err)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return false, apperrors.NewSourceError("failed to fetch dataset", err).
			WithContext("url", url)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, apperrors.NewSourceError(
			fmt.Sprintf("dataset server returned status %d", resp.StatusCode), nil).
			WithContext("url", url)
	}

	if err := os.MkdirAll(filepath.Dir(targetPath), 0755); err != nil {
		return false, apperrors.NewStorageError("failed to create dataset directory", err)
	}

	partialPath := targetPath + ".partial"
	file, err := os.Create(partialPath)
	if err != nil {
		return false, apperrors.NewStorageError("failed to create dataset file", err)
	}

	var dest io.Writer = file
	if d.showProgress {
		bar := progressbar.DefaultBytes(resp.ContentLength, "downloading")
		dest = io.MultiWriter(file, bar)
	}

	_, copyErr := io.Copy(dest, resp.Body)
	closeErr := file.Close()
	if copyErr != nil {
		os.Remove(partialPath)
		return false, apperrors.NewSourceError("failed to read dataset body", copyErr)
	}
	if closeErr != nil {
		os.Remove(partialPath)
		return false, apperrors.NewStorageError("failed to finalize dataset file", closeErr)
	}

	if err := os.Rename(partialPath, targetPath); err != nil {
		os.Remove(partialPath)
		return false, apperrors.NewStorageError("failed to move dataset into place", err)
	}

	d.logger.InfoContext(ctx, "dataset downloaded",
		slog.String("path", targetPath))

	return true, nil
}
