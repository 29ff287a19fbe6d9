package dataprocessing

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"retailcli/pkg/contracts/domain"
)

func newTestCleaner() *Cleaner {
	return NewCleaner(nil, DefaultCleanerConfig())
}

func rawRow(invoice, stock, desc string, qty int64, price float64, customer, date string) domain.RawTransaction {
	return domain.RawTransaction{
		InvoiceNo:   invoice,
		StockCode:   stock,
		Description: desc,
		Quantity:    qty,
		UnitPrice:   price,
		CustomerID:  customer,
		InvoiceDate: date,
	}
}

func TestClean_ThreeRowExample(t *testing.T) {
	ctx := context.Background()
	raw := []domain.RawTransaction{
		rawRow("A1", "P1", "CANDLE", 5, 2.00, "A", "2021-01-05 10:00:00"),
		rawRow("A2", "P2", "MUG", -1, 3.00, "B", "2021-01-06 10:00:00"),
		rawRow("A3", "P3", "BOWL", 2, 5.00, "", "2021-01-07 10:00:00"),
	}

	cleaned, stats := newTestCleaner().Clean(ctx, raw)

	require.Len(t, cleaned, 1)
	assert.Equal(t, "A", cleaned[0].CustomerID)
	assert.Equal(t, 10.00, cleaned[0].TotalAmount)

	assert.Equal(t, 1, stats.MissingCustomer)
	assert.Equal(t, 1, stats.InvalidRecords)
	assert.Equal(t, 0, stats.OutlierRecords)
	assert.Equal(t, 0, stats.MalformedRecords)
	assert.InDelta(t, 1.0/3.0, stats.RetentionRate, 1e-9)
}

func TestClean_DerivedFields(t *testing.T) {
	ctx := context.Background()
	raw := []domain.RawTransaction{
		// 2010-12-01 was a Wednesday.
		rawRow("536365", "85123A", "HOLDER", 6, 2.55, "17850", "2010-12-01 08:26:00"),
	}

	cleaned, _ := newTestCleaner().Clean(ctx, raw)
	require.Len(t, cleaned, 1)

	tx := cleaned[0]
	assert.InDelta(t, 15.30, tx.TotalAmount, 1e-9)
	assert.Equal(t, 2010, tx.Year)
	assert.Equal(t, 12, tx.Month)
	assert.Equal(t, "Wednesday", tx.DayOfWeek)
	assert.Equal(t, 8, tx.Hour)
	assert.Equal(t, time.December, tx.InvoiceDate.Month())
}

func TestClean_DescriptionSentinel(t *testing.T) {
	ctx := context.Background()
	raw := []domain.RawTransaction{
		rawRow("A1", "P1", "", 1, 1.00, "C1", "2021-01-05 10:00:00"),
		rawRow("A2", "P2", "  ", 1, 1.00, "C1", "2021-01-05 10:01:00"),
		rawRow("A3", "P3", "NAMED", 1, 1.00, "C1", "2021-01-05 10:02:00"),
	}

	cleaned, stats := newTestCleaner().Clean(ctx, raw)
	require.Len(t, cleaned, 3)

	assert.Equal(t, "Unknown Product", cleaned[0].Description)
	assert.Equal(t, "Unknown Product", cleaned[1].Description)
	assert.Equal(t, "NAMED", cleaned[2].Description)
	assert.Equal(t, 2, stats.FilledDescriptions)
}

func TestClean_CustomerIDCanonicalization(t *testing.T) {
	ctx := context.Background()
	raw := []domain.RawTransaction{
		rawRow("A1", "P1", "X", 1, 1.00, "17850.0", "2021-01-05 10:00:00"),
		rawRow("A2", "P1", "X", 1, 1.00, " 12583 ", "2021-01-05 10:01:00"),
	}

	cleaned, _ := newTestCleaner().Clean(ctx, raw)
	require.Len(t, cleaned, 2)
	assert.Equal(t, "17850", cleaned[0].CustomerID)
	assert.Equal(t, "12583", cleaned[1].CustomerID)
}

func TestClean_WhitespaceCustomerIDIsMissing(t *testing.T) {
	ctx := context.Background()
	raw := []domain.RawTransaction{
		rawRow("A1", "P1", "X", 1, 1.00, "   ", "2021-01-05 10:00:00"),
	}

	cleaned, stats := newTestCleaner().Clean(ctx, raw)
	assert.Empty(t, cleaned)
	assert.Equal(t, 1, stats.MissingCustomer)
}

func TestClean_MalformedTimestamp(t *testing.T) {
	ctx := context.Background()
	raw := []domain.RawTransaction{
		rawRow("A1", "P1", "X", 1, 1.00, "C1", "not a date"),
		rawRow("A2", "P1", "X", 1, 1.00, "C1", "2021-01-05 10:00:00"),
	}

	cleaned, stats := newTestCleaner().Clean(ctx, raw)
	require.Len(t, cleaned, 1)
	assert.Equal(t, 1, stats.MalformedRecords)
	assert.Equal(t, "A2", cleaned[0].InvoiceNo)
}

func TestClean_SerialTimestamp(t *testing.T) {
	ctx := context.Background()
	// Spreadsheet serial 40513 = 2010-12-01.
	raw := []domain.RawTransaction{
		rawRow("A1", "P1", "X", 1, 1.00, "C1", "40513"),
	}

	cleaned, stats := newTestCleaner().Clean(ctx, raw)
	require.Len(t, cleaned, 1)
	assert.Equal(t, 0, stats.MalformedRecords)
	assert.Equal(t, 2010, cleaned[0].Year)
	assert.Equal(t, 12, cleaned[0].Month)
	assert.Equal(t, 1, cleaned[0].InvoiceDate.Day())
}

func TestClean_OutlierRemoval(t *testing.T) {
	ctx := context.Background()

	raw := make([]domain.RawTransaction, 0, 10)
	for i := 0; i < 9; i++ {
		raw = append(raw, rawRow("A1", "P1", "X", 5, 2.00, "C1", "2021-01-05 10:00:00"))
	}
	// One transaction two orders of magnitude above the rest.
	raw = append(raw, rawRow("A2", "P2", "Y", 100, 10.00, "C2", "2021-01-05 11:00:00"))

	cleaned, stats := newTestCleaner().Clean(ctx, raw)

	assert.Len(t, cleaned, 9)
	assert.Equal(t, 1, stats.OutlierRecords)
	for _, tx := range cleaned {
		assert.GreaterOrEqual(t, tx.TotalAmount, stats.LowerBound)
		assert.LessOrEqual(t, tx.TotalAmount, stats.UpperBound)
	}
}

func TestClean_ConservationLaw(t *testing.T) {
	ctx := context.Background()
	raw := []domain.RawTransaction{
		rawRow("A1", "P1", "X", 5, 2.00, "C1", "2021-01-05 10:00:00"),
		rawRow("A2", "P2", "Y", -1, 3.00, "C2", "2021-01-06 10:00:00"),
		rawRow("A3", "P3", "Z", 2, 5.00, "", "2021-01-07 10:00:00"),
		rawRow("A4", "P4", "W", 1, 0.00, "C3", "2021-01-08 10:00:00"),
		rawRow("A5", "P5", "V", 1, 1.00, "C4", "garbage"),
		rawRow("A6", "P6", "U", 3, 2.00, "C5", "2021-01-09 10:00:00"),
	}

	cleaned, stats := newTestCleaner().Clean(ctx, raw)

	assert.Equal(t, len(raw), stats.TotalRecords)
	assert.Equal(t, len(cleaned), stats.RetainedRecords)
	assert.Equal(t, stats.TotalRecords, stats.RetainedRecords+stats.Dropped())
}

func TestClean_PreservesOrder(t *testing.T) {
	ctx := context.Background()
	raw := []domain.RawTransaction{
		rawRow("A1", "P1", "X", 1, 1.00, "C1", "2021-01-05 10:00:00"),
		rawRow("A2", "P2", "Y", -1, 1.00, "C1", "2021-01-04 10:00:00"),
		rawRow("A3", "P3", "Z", 1, 1.00, "C1", "2021-01-03 10:00:00"),
		rawRow("A4", "P4", "W", 1, 1.00, "C1", "2021-01-06 10:00:00"),
	}

	cleaned, _ := newTestCleaner().Clean(ctx, raw)
	require.Len(t, cleaned, 3)
	// Original relative order, not chronological order.
	assert.Equal(t, []string{"A1", "A3", "A4"},
		[]string{cleaned[0].InvoiceNo, cleaned[1].InvoiceNo, cleaned[2].InvoiceNo})
}

func TestClean_Idempotence(t *testing.T) {
	ctx := context.Background()
	raw := []domain.RawTransaction{
		rawRow("A1", "P1", "X", 5, 2.00, "C1", "2021-01-05 10:00:00"),
		rawRow("A2", "P2", "Y", 3, 4.00, "C2", "2021-01-06 11:00:00"),
		rawRow("A3", "P3", "Z", -2, 5.00, "C3", "2021-01-07 12:00:00"),
		rawRow("A4", "P4", "", 1, 6.00, "", "2021-01-08 13:00:00"),
		rawRow("A5", "P5", "W", 2000, 3.00, "C4", "2021-01-09 14:00:00"),
	}

	cleaner := newTestCleaner()
	cleaned, _ := cleaner.Clean(ctx, raw)
	require.NotEmpty(t, cleaned)

	// Re-clean the cleaner's own output.
	recleanInput := make([]domain.RawTransaction, 0, len(cleaned))
	for _, tx := range cleaned {
		recleanInput = append(recleanInput, domain.RawTransaction{
			InvoiceNo:   tx.InvoiceNo,
			StockCode:   tx.StockCode,
			Description: tx.Description,
			Quantity:    tx.Quantity,
			UnitPrice:   tx.UnitPrice,
			CustomerID:  tx.CustomerID,
			InvoiceDate: tx.InvoiceDate.Format("2006-01-02 15:04:05"),
		})
	}

	recleaned, stats := cleaner.Clean(ctx, recleanInput)

	assert.Len(t, recleaned, len(cleaned))
	assert.Zero(t, stats.MissingCustomer)
	assert.Zero(t, stats.MalformedRecords)
	assert.Zero(t, stats.InvalidRecords)
	assert.Zero(t, stats.OutlierRecords)
	assert.Equal(t, 1.0, stats.RetentionRate)
}

func TestClean_EmptyInput(t *testing.T) {
	cleaned, stats := newTestCleaner().Clean(context.Background(), nil)
	assert.Empty(t, cleaned)
	assert.Zero(t, stats.TotalRecords)
	assert.Zero(t, stats.RetentionRate)
}

func TestClean_ZeroMultiplier(t *testing.T) {
	ctx := context.Background()
	cleaner := NewCleaner(nil, CleanerConfig{OutlierMultiplier: 0, DescriptionSentinel: "Unknown Product"})

	raw := []domain.RawTransaction{
		rawRow("A1", "P1", "X", 1, 1.00, "C1", "2021-01-05 10:00:00"),
		rawRow("A2", "P2", "Y", 1, 2.00, "C1", "2021-01-05 10:01:00"),
		rawRow("A3", "P3", "Z", 1, 3.00, "C1", "2021-01-05 10:02:00"),
		rawRow("A4", "P4", "W", 1, 4.00, "C1", "2021-01-05 10:03:00"),
		rawRow("A5", "P5", "V", 1, 5.00, "C1", "2021-01-05 10:04:00"),
	}

	// With multiplier 0 the inlier bound collapses to [Q1, Q3] = [2, 4].
	cleaned, stats := cleaner.Clean(ctx, raw)
	assert.Len(t, cleaned, 3)
	assert.Equal(t, 2, stats.OutlierRecords)
	assert.Equal(t, 2.0, stats.LowerBound)
	assert.Equal(t, 4.0, stats.UpperBound)
}

func TestQuantile(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		q      float64
		want   float64
	}{
		{"single value", []float64{5}, 0.25, 5},
		{"median of pair", []float64{1, 3}, 0.5, 2},
		{"q1 interpolated", []float64{1, 2, 3, 4}, 0.25, 1.75},
		{"q3 interpolated", []float64{1, 2, 3, 4}, 0.75, 3.25},
		{"unsorted input", []float64{4, 1, 3, 2}, 0.75, 3.25},
		{"q1 on odd count", []float64{1, 2, 3, 4, 5}, 0.25, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, quantile(tt.values, tt.q), 1e-9)
		})
	}
}
