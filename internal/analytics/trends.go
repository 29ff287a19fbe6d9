package analytics

import (
	"context"
	"log/slog"
	"sort"

	"retailcli/pkg/contracts/domain"
)

// TrendAnalyzer groups cleaned transactions by calendar month and computes
// period-over-period summary statistics.
type TrendAnalyzer struct {
	logger *slog.Logger
}

// NewTrendAnalyzer creates a new trend analyzer.
func NewTrendAnalyzer(logger *slog.Logger) *TrendAnalyzer {
	if logger == nil {
		logger = slog.Default()
	}
	return &TrendAnalyzer{logger: logger}
}

type monthAccumulator struct {
	year, month int
	revenue     float64
	count       int
	customers   map[string]struct{}
	products    map[string]struct{}
}

// SummarizeByMonth aggregates transactions into chronologically ordered
// monthly summaries. Growth percentages compare against the unrounded prior
// month; the first month and any month following a zero value carry nil
// growth rather than zero.
func (a *TrendAnalyzer) SummarizeByMonth(ctx context.Context, records []domain.Transaction) []domain.MonthlySummary {
	a.logger.InfoContext(ctx, "analyzing sales trends",
		slog.Int("record_count", len(records)))

	groups := make(map[int]*monthAccumulator)
	for _, tx := range records {
		key := tx.Year*100 + tx.Month
		acc, exists := groups[key]
		if !exists {
			acc = &monthAccumulator{
				year:      tx.Year,
				month:     tx.Month,
				customers: make(map[string]struct{}),
				products:  make(map[string]struct{}),
			}
			groups[key] = acc
		}
		acc.revenue += tx.TotalAmount
		acc.count++
		acc.customers[tx.CustomerID] = struct{}{}
		acc.products[tx.StockCode] = struct{}{}
	}

	keys := make([]int, 0, len(groups))
	for key := range groups {
		keys = append(keys, key)
	}
	sort.Ints(keys)

	summaries := make([]domain.MonthlySummary, 0, len(keys))
	for _, key := range keys {
		acc := groups[key]
		summaries = append(summaries, domain.MonthlySummary{
			Year:                acc.year,
			Month:               acc.month,
			TotalRevenue:        acc.revenue,
			Transactions:        acc.count,
			AvgTransactionValue: acc.revenue / float64(acc.count),
			UniqueCustomers:     len(acc.customers),
			UniqueProducts:      len(acc.products),
		})
	}

	for i := 1; i < len(summaries); i++ {
		prev := summaries[i-1]
		summaries[i].RevenueGrowth = growthPercent(prev.TotalRevenue, summaries[i].TotalRevenue)
		summaries[i].CustomerGrowth = growthPercent(float64(prev.UniqueCustomers), float64(summaries[i].UniqueCustomers))
	}

	a.logger.InfoContext(ctx, "sales trends computed",
		slog.Int("month_count", len(summaries)))

	return summaries
}

// growthPercent returns the percentage change from previous to current, or
// nil when the previous value is zero.
func growthPercent(previous, current float64) *float64 {
	if previous == 0 {
		return nil
	}
	growth := (current - previous) / previous * 100
	return &growth
}
