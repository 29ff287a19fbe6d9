package analytics

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"retailcli/pkg/contracts/domain"
)

// CustomerAnalyzer groups cleaned transactions by customer and computes
// per-customer lifetime and spend statistics plus concentration metrics.
type CustomerAnalyzer struct {
	logger *slog.Logger
}

// NewCustomerAnalyzer creates a new customer analyzer.
func NewCustomerAnalyzer(logger *slog.Logger) *CustomerAnalyzer {
	if logger == nil {
		logger = slog.Default()
	}
	return &CustomerAnalyzer{logger: logger}
}

type customerAccumulator struct {
	customerID string
	spent      float64
	items      int64
	rows       int
	first      time.Time
	last       time.Time
	orders     map[string]struct{}
	products   map[string]struct{}
}

// SummarizeByCustomer aggregates transactions into one summary per customer,
// sorted by customer ID for deterministic output. Lifetime is the whole-day
// span between first and last purchase; single-order customers have
// lifetime 0.
func (a *CustomerAnalyzer) SummarizeByCustomer(ctx context.Context, records []domain.Transaction) []domain.CustomerSummary {
	a.logger.InfoContext(ctx, "analyzing customer behavior",
		slog.Int("record_count", len(records)))

	groups := make(map[string]*customerAccumulator)
	for _, tx := range records {
		acc, exists := groups[tx.CustomerID]
		if !exists {
			acc = &customerAccumulator{
				customerID: tx.CustomerID,
				first:      tx.InvoiceDate,
				last:       tx.InvoiceDate,
				orders:     make(map[string]struct{}),
				products:   make(map[string]struct{}),
			}
			groups[tx.CustomerID] = acc
		}
		acc.spent += tx.TotalAmount
		acc.items += tx.Quantity
		acc.rows++
		if tx.InvoiceDate.Before(acc.first) {
			acc.first = tx.InvoiceDate
		}
		if tx.InvoiceDate.After(acc.last) {
			acc.last = tx.InvoiceDate
		}
		acc.orders[tx.InvoiceNo] = struct{}{}
		acc.products[tx.StockCode] = struct{}{}
	}

	ids := make([]string, 0, len(groups))
	for id := range groups {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	summaries := make([]domain.CustomerSummary, 0, len(ids))
	for _, id := range ids {
		acc := groups[id]
		summaries = append(summaries, domain.CustomerSummary{
			CustomerID:     acc.customerID,
			Orders:         len(acc.orders),
			TotalSpent:     acc.spent,
			AvgOrderValue:  acc.spent / float64(acc.rows),
			TotalItems:     acc.items,
			FirstPurchase:  acc.first,
			LastPurchase:   acc.last,
			UniqueProducts: len(acc.products),
			LifetimeDays:   int(acc.last.Sub(acc.first).Hours() / 24),
		})
	}

	a.logger.InfoContext(ctx, "customer behavior computed",
		slog.Int("customer_count", len(summaries)))

	return summaries
}

// TopDecileConcentration returns the share of total spend contributed by the
// top 10% of customers by spend, as a percentage in [0, 100]. The decile
// cutoff truncates (count × 0.1) and is floored at one customer whenever any
// customers exist; an empty population yields 0 by convention.
func (a *CustomerAnalyzer) TopDecileConcentration(summaries []domain.CustomerSummary) float64 {
	if len(summaries) == 0 {
		return 0
	}

	bySpend := make([]domain.CustomerSummary, len(summaries))
	copy(bySpend, summaries)
	sort.SliceStable(bySpend, func(i, j int) bool {
		return bySpend[i].TotalSpent > bySpend[j].TotalSpent
	})

	top := int(float64(len(bySpend)) * 0.1)
	if top < 1 {
		top = 1
	}

	var topSpend, totalSpend float64
	for i, summary := range bySpend {
		totalSpend += summary.TotalSpent
		if i < top {
			topSpend += summary.TotalSpent
		}
	}
	if totalSpend == 0 {
		return 0
	}
	return topSpend / totalSpend * 100
}
