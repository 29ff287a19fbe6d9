package analytics

import (
	"context"
	"log/slog"
	"sort"
	"time"

	apperrors "retailcli/internal/errors"
	"retailcli/pkg/contracts/domain"
)

// weekdayOrder fixes the deterministic iteration order for weekday buckets.
var weekdayOrder = []string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// ReportBuilder produces the aggregate business report from the cleaned
// transaction set.
type ReportBuilder struct {
	logger *slog.Logger
}

// NewReportBuilder creates a new report builder.
func NewReportBuilder(logger *slog.Logger) *ReportBuilder {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReportBuilder{logger: logger}
}

// Synthesize aggregates the cleaned records into a business report. It fails
// with an EMPTY error when no records exist, since the per-day and
// per-customer denominators would be undefined. Peak detection resolves ties
// deterministically: the earliest date, the lowest hour, and the weekday
// closest to Monday win, because each bucket set is iterated in that order
// and only a strictly greater revenue replaces the current peak.
func (b *ReportBuilder) Synthesize(ctx context.Context, records []domain.Transaction) (domain.BusinessReport, error) {
	if len(records) == 0 {
		return domain.BusinessReport{}, apperrors.NewEmptyDatasetError("no cleaned records to report on").
			WithContext("stage", "report")
	}

	b.logger.InfoContext(ctx, "synthesizing business report",
		slog.Int("record_count", len(records)))

	var report domain.BusinessReport
	customers := make(map[string]struct{})
	products := make(map[string]struct{})
	dailyRevenue := make(map[time.Time]float64)
	var hourlyRevenue [24]float64
	weekdayRevenue := make(map[string]float64)

	minDate := truncateToDate(records[0].InvoiceDate)
	maxDate := minDate
	for _, tx := range records {
		report.TotalRevenue += tx.TotalAmount
		customers[tx.CustomerID] = struct{}{}
		products[tx.StockCode] = struct{}{}

		date := truncateToDate(tx.InvoiceDate)
		if date.Before(minDate) {
			minDate = date
		}
		if date.After(maxDate) {
			maxDate = date
		}
		dailyRevenue[date] += tx.TotalAmount
		hourlyRevenue[tx.Hour] += tx.TotalAmount
		weekdayRevenue[tx.DayOfWeek] += tx.TotalAmount
	}

	report.TotalTransactions = len(records)
	report.UniqueCustomers = len(customers)
	report.UniqueProducts = len(products)
	report.PeriodDays = int(maxDate.Sub(minDate).Hours() / 24)
	report.AvgTransactionValue = report.TotalRevenue / float64(report.TotalTransactions)
	report.RevenuePerCustomer = report.TotalRevenue / float64(report.UniqueCustomers)

	// A single-day dataset spans zero whole days; use a one-day floor so the
	// per-day rate stays defined.
	denominatorDays := report.PeriodDays
	if denominatorDays < 1 {
		denominatorDays = 1
	}
	report.DailyRevenue = report.TotalRevenue / float64(denominatorDays)

	report.BestDay, report.BestDayRevenue = peakDay(dailyRevenue)
	report.PeakHour, report.PeakHourRevenue = peakHour(hourlyRevenue)
	report.BestWeekday, report.BestWeekdayRevenue = peakWeekday(weekdayRevenue)

	b.logger.InfoContext(ctx, "business report synthesized",
		slog.Float64("total_revenue", report.TotalRevenue),
		slog.Int("period_days", report.PeriodDays),
		slog.String("best_day", report.BestDay.Format("2006-01-02")),
		slog.Int("peak_hour", report.PeakHour),
		slog.String("best_weekday", report.BestWeekday))

	return report, nil
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func peakDay(revenue map[time.Time]float64) (time.Time, float64) {
	dates := make([]time.Time, 0, len(revenue))
	for date := range revenue {
		dates = append(dates, date)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	var bestDate time.Time
	var best float64
	for i, date := range dates {
		if i == 0 || revenue[date] > best {
			bestDate = date
			best = revenue[date]
		}
	}
	return bestDate, best
}

func peakHour(revenue [24]float64) (int, float64) {
	bestHour := 0
	best := revenue[0]
	for hour := 1; hour < 24; hour++ {
		if revenue[hour] > best {
			bestHour = hour
			best = revenue[hour]
		}
	}
	return bestHour, best
}

func peakWeekday(revenue map[string]float64) (string, float64) {
	var bestDay string
	var best float64
	for _, day := range weekdayOrder {
		value, exists := revenue[day]
		if !exists {
			continue
		}
		if bestDay == "" || value > best {
			bestDay = day
			best = value
		}
	}
	return bestDay, best
}
