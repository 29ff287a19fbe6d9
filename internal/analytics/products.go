package analytics

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	apperrors "retailcli/internal/errors"
	"retailcli/pkg/contracts/domain"
)

// RankMetric selects the metric a product ranking sorts by.
type RankMetric string

const (
	MetricRevenue   RankMetric = "revenue"
	MetricQuantity  RankMetric = "quantity"
	MetricOrders    RankMetric = "orders"
	MetricCustomers RankMetric = "customers"
)

// ParseRankMetric validates a metric name from configuration.
func ParseRankMetric(s string) (RankMetric, error) {
	switch RankMetric(s) {
	case MetricRevenue, MetricQuantity, MetricOrders, MetricCustomers:
		return RankMetric(s), nil
	default:
		return "", apperrors.NewConfigError(fmt.Sprintf("unknown rank metric %q", s), nil)
	}
}

// ProductRanker groups cleaned transactions by product and computes ranked
// summaries by a chosen metric.
type ProductRanker struct {
	logger *slog.Logger
}

// NewProductRanker creates a new product ranker.
func NewProductRanker(logger *slog.Logger) *ProductRanker {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProductRanker{logger: logger}
}

type productAccumulator struct {
	stockCode   string
	description string
	quantity    int64
	revenue     float64
	priceSum    float64
	rows        int
	orders      map[string]struct{}
	customers   map[string]struct{}
}

// TopByMetric returns the top n products sorted descending by the given
// metric. The result length is min(n, distinct products); n <= 0 yields an
// empty slice. The sort is stable, so ties keep first-appearance order for
// reproducibility. Products are keyed by (stock code, description) with the
// description acting as a qualifier.
func (r *ProductRanker) TopByMetric(ctx context.Context, records []domain.Transaction, metric RankMetric, n int) []domain.ProductSummary {
	r.logger.InfoContext(ctx, "ranking products",
		slog.String("metric", string(metric)),
		slog.Int("top_n", n),
		slog.Int("record_count", len(records)))

	if n <= 0 {
		return []domain.ProductSummary{}
	}

	groups := make(map[string]*productAccumulator)
	order := make([]string, 0)
	for _, tx := range records {
		key := tx.StockCode + "\x00" + tx.Description
		acc, exists := groups[key]
		if !exists {
			acc = &productAccumulator{
				stockCode:   tx.StockCode,
				description: tx.Description,
				orders:      make(map[string]struct{}),
				customers:   make(map[string]struct{}),
			}
			groups[key] = acc
			order = append(order, key)
		}
		acc.quantity += tx.Quantity
		acc.revenue += tx.TotalAmount
		acc.priceSum += tx.UnitPrice
		acc.rows++
		acc.orders[tx.InvoiceNo] = struct{}{}
		acc.customers[tx.CustomerID] = struct{}{}
	}

	summaries := make([]domain.ProductSummary, 0, len(order))
	for _, key := range order {
		acc := groups[key]
		summary := domain.ProductSummary{
			StockCode:       acc.stockCode,
			Description:     acc.description,
			TotalQuantity:   acc.quantity,
			TotalRevenue:    acc.revenue,
			Orders:          len(acc.orders),
			UniqueCustomers: len(acc.customers),
			AvgUnitPrice:    acc.priceSum / float64(acc.rows),
		}
		// Derived from the group aggregates, not re-derived from raw rows.
		if summary.UniqueCustomers > 0 {
			summary.RevenuePerCustomer = summary.TotalRevenue / float64(summary.UniqueCustomers)
		}
		if summary.Orders > 0 {
			summary.AvgQuantityPerOrder = float64(summary.TotalQuantity) / float64(summary.Orders)
		}
		summaries = append(summaries, summary)
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		return metricValue(summaries[i], metric) > metricValue(summaries[j], metric)
	})

	if n < len(summaries) {
		summaries = summaries[:n]
	}

	r.logger.InfoContext(ctx, "product ranking computed",
		slog.Int("result_count", len(summaries)))

	return summaries
}

func metricValue(s domain.ProductSummary, metric RankMetric) float64 {
	switch metric {
	case MetricQuantity:
		return float64(s.TotalQuantity)
	case MetricOrders:
		return float64(s.Orders)
	case MetricCustomers:
		return float64(s.UniqueCustomers)
	default:
		return s.TotalRevenue
	}
}
