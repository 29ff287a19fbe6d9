package validation

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	apperrors "retailcli/internal/errors"
)

// Extensions the loader understands.
var supportedExtensions = map[string]bool{
	".xlsx": true,
	".xlsm": true,
}

// FileValidator checks dataset and output paths before the pipeline runs so
// failures surface with a clear message instead of mid-run.
type FileValidator struct {
	logger *slog.Logger
}

// NewFileValidator creates a new file validator.
func NewFileValidator(logger *slog.Logger) *FileValidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileValidator{logger: logger}
}

// ValidateDatasetFile verifies that the dataset exists, is a regular file
// with content, and carries a supported workbook extension.
func (v *FileValidator) ValidateDatasetFile(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		v.logger.Error("Dataset file does not exist",
			slog.String("path", path))
		return apperrors.NewSourceError("dataset file does not exist: "+path, err)
	}
	if err != nil {
		return apperrors.NewSourceError("failed to stat dataset file: "+path, err)
	}
	if info.IsDir() {
		return apperrors.NewSourceError("dataset path is a directory: "+path, nil)
	}
	if info.Size() == 0 {
		return apperrors.NewSourceError("dataset file is empty: "+path, nil)
	}

	ext := strings.ToLower(filepath.Ext(path))
	if !supportedExtensions[ext] {
		v.logger.Error("Unsupported dataset file extension",
			slog.String("path", path),
			slog.String("extension", ext))
		return apperrors.NewSourceError("unsupported dataset file extension: "+ext, nil)
	}

	v.logger.Debug("Dataset file validated",
		slog.String("path", path),
		slog.Int64("size_bytes", info.Size()))
	return nil
}

// ValidateOutputDirectory ensures the output directory exists and is writable,
// creating it when missing.
func (v *FileValidator) ValidateOutputDirectory(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		v.logger.Error("Failed to create output directory",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return apperrors.NewStorageError("failed to create output directory: "+dir, err)
	}

	probe := filepath.Join(dir, ".write_probe")
	f, err := os.Create(probe)
	if err != nil {
		return apperrors.NewStorageError("output directory is not writable: "+dir, err)
	}
	f.Close()
	os.Remove(probe)

	return nil
}
