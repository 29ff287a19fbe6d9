package exporter

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	apperrors "retailcli/internal/errors"
	"retailcli/pkg/contracts/domain"
)

// WriteBusinessReport writes the business report as indented JSON with a
// small metadata envelope.
func (w *CSVWriter) WriteBusinessReport(report domain.BusinessReport, stats domain.CleaningStats, concentration float64) error {
	fullPath := w.resolvePath(BusinessReportFile)

	slog.Info("writing business report",
		slog.String("path", fullPath))

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return apperrors.NewStorageError("failed to create directory for JSON output", err)
	}

	payload := map[string]interface{}{
		"report":                   report,
		"cleaning_stats":           stats,
		"top_decile_concentration": concentration,
		"generated_at":             time.Now().Format(time.RFC3339),
		"format":                   "business_report_v1",
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return apperrors.NewStorageError("failed to create JSON file for business report", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(payload); err != nil {
		return apperrors.NewStorageError("failed to encode business report to JSON", err)
	}

	return nil
}
