package dataprocessing

import (
	"context"
	"log/slog"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"retailcli/pkg/contracts/domain"
)

// DefaultDescriptionSentinel replaces missing product descriptions.
const DefaultDescriptionSentinel = "Unknown Product"

// timestampLayouts are the accepted invoice date formats, tried in order.
var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05Z07:00",
	"1/2/06 15:04",
	"1/2/2006 15:04",
	"01-02-06 15:04",
	"2006-01-02",
}

// CleanerConfig holds configuration options for the Cleaner.
type CleanerConfig struct {
	// OutlierMultiplier scales the IQR when computing the inlier bound.
	OutlierMultiplier float64
	// DescriptionSentinel replaces missing descriptions.
	DescriptionSentinel string
}

// DefaultCleanerConfig returns the standard cleaning configuration.
func DefaultCleanerConfig() CleanerConfig {
	return CleanerConfig{
		OutlierMultiplier:   1.5,
		DescriptionSentinel: DefaultDescriptionSentinel,
	}
}

// Cleaner applies the validation, normalization, and outlier-removal pipeline
// that turns raw rows into the canonical transaction set.
type Cleaner struct {
	logger            *slog.Logger
	outlierMultiplier float64
	sentinel          string
}

// NewCleaner creates a new cleaner with the given configuration.
func NewCleaner(logger *slog.Logger, config CleanerConfig) *Cleaner {
	if logger == nil {
		logger = slog.Default()
	}
	if config.OutlierMultiplier < 0 {
		config.OutlierMultiplier = 1.5
	}
	if config.DescriptionSentinel == "" {
		config.DescriptionSentinel = DefaultDescriptionSentinel
	}
	return &Cleaner{
		logger:            logger,
		outlierMultiplier: config.OutlierMultiplier,
		sentinel:          config.DescriptionSentinel,
	}
}

// Clean runs the cleaning pipeline in its fixed stage order: identity filter,
// description sentinel, type normalization, derived fields, validity filter,
// and the single-pass IQR outlier filter. Dropping rows is normal-path
// behavior captured in the returned statistics; only rows whose timestamp
// cannot be parsed are counted as malformed. Surviving records keep their
// original relative order.
func (c *Cleaner) Clean(ctx context.Context, records []domain.RawTransaction) ([]domain.Transaction, domain.CleaningStats) {
	stats := domain.CleaningStats{TotalRecords: len(records)}

	c.logger.InfoContext(ctx, "starting data cleaning",
		slog.Int("total_records", len(records)))

	candidates := make([]domain.Transaction, 0, len(records))
	for _, raw := range records {
		// Stage 1: identity filter. Canonicalize first so whitespace-only
		// identifiers count as missing.
		customerID := canonicalCustomerID(raw.CustomerID)
		if customerID == "" {
			stats.MissingCustomer++
			continue
		}

		// Stage 2: description sentinel. Does not drop rows.
		description := raw.Description
		if strings.TrimSpace(description) == "" {
			description = c.sentinel
			stats.FilledDescriptions++
		}

		// Stage 3: type normalization.
		invoiceDate, err := parseTimestamp(raw.InvoiceDate)
		if err != nil {
			stats.MalformedRecords++
			c.logger.DebugContext(ctx, "skipping malformed row",
				slog.String("invoice_no", raw.InvoiceNo),
				slog.String("invoice_date", raw.InvoiceDate))
			continue
		}

		// Stage 4: derived fields.
		tx := domain.Transaction{
			InvoiceNo:   raw.InvoiceNo,
			StockCode:   raw.StockCode,
			Description: description,
			Quantity:    raw.Quantity,
			UnitPrice:   raw.UnitPrice,
			CustomerID:  customerID,
			InvoiceDate: invoiceDate,
			TotalAmount: float64(raw.Quantity) * raw.UnitPrice,
			Year:        invoiceDate.Year(),
			Month:       int(invoiceDate.Month()),
			DayOfWeek:   invoiceDate.Weekday().String(),
			Hour:        invoiceDate.Hour(),
		}

		// Stage 5: validity filter.
		if tx.Quantity <= 0 || tx.UnitPrice <= 0 || tx.TotalAmount <= 0 {
			stats.InvalidRecords++
			continue
		}

		candidates = append(candidates, tx)
	}

	// Stage 6: outlier filter. The bound is computed once from the
	// post-validity population and applied uniformly, not iterated.
	cleaned := candidates
	if len(candidates) > 0 {
		amounts := make([]float64, len(candidates))
		for i, tx := range candidates {
			amounts[i] = tx.TotalAmount
		}
		q1 := quantile(amounts, 0.25)
		q3 := quantile(amounts, 0.75)
		iqr := q3 - q1
		stats.LowerBound = q1 - c.outlierMultiplier*iqr
		stats.UpperBound = q3 + c.outlierMultiplier*iqr

		cleaned = make([]domain.Transaction, 0, len(candidates))
		for _, tx := range candidates {
			if tx.TotalAmount < stats.LowerBound || tx.TotalAmount > stats.UpperBound {
				stats.OutlierRecords++
				continue
			}
			cleaned = append(cleaned, tx)
		}
	}

	stats.RetainedRecords = len(cleaned)
	if stats.TotalRecords > 0 {
		stats.RetentionRate = float64(stats.RetainedRecords) / float64(stats.TotalRecords)
	}

	c.logger.InfoContext(ctx, "data cleaning completed",
		slog.Int("retained", stats.RetainedRecords),
		slog.Int("missing_customer", stats.MissingCustomer),
		slog.Int("filled_descriptions", stats.FilledDescriptions),
		slog.Int("malformed", stats.MalformedRecords),
		slog.Int("invalid", stats.InvalidRecords),
		slog.Int("outliers", stats.OutlierRecords),
		slog.Float64("retention_rate", stats.RetentionRate))

	return cleaned, stats
}

// parseTimestamp parses an invoice date cell. Text layouts are tried first;
// purely numeric values are treated as spreadsheet serial dates.
func parseTimestamp(value string) (time.Time, error) {
	trimmed := strings.TrimSpace(value)
	var lastErr error
	for _, layout := range timestampLayouts {
		t, err := time.Parse(layout, trimmed)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	if serial, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return serialToTime(serial), nil
	}
	return time.Time{}, lastErr
}

// serialToTime converts a spreadsheet serial date (days since 1899-12-30)
// to a time.Time.
func serialToTime(serial float64) time.Time {
	epoch := time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)
	days := int(serial)
	frac := serial - float64(days)
	return epoch.AddDate(0, 0, days).Add(time.Duration(math.Round(frac * 24 * float64(time.Hour))))
}

// canonicalCustomerID normalizes a customer identifier to its canonical
// string form, stripping the ".0" suffix spreadsheet tools append to
// numeric identifiers.
func canonicalCustomerID(id string) string {
	id = strings.TrimSpace(id)
	return strings.TrimSuffix(id, ".0")
}

// quantile computes the q-th quantile of values using linear interpolation
// between closest ranks. values must be non-empty; the input is not modified.
func quantile(values []float64, q float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	if len(sorted) == 1 {
		return sorted[0]
	}

	pos := q * float64(len(sorted)-1)
	lower := int(math.Floor(pos))
	upper := int(math.Ceil(pos))
	if lower == upper {
		return sorted[lower]
	}
	frac := pos - float64(lower)
	return sorted[lower] + frac*(sorted[upper]-sorted[lower])
}
