// Package analytics derives summary tables from the cleaned transaction set.
//
// Each analyzer consumes the full cleaned record slice and produces an
// independent read-only snapshot; none of them mutate their input or each
// other's output:
//
// TrendAnalyzer: monthly revenue, customer, and product statistics with
// period-over-period growth rates.
//
// ProductRanker: top-N products by a configurable metric (revenue, quantity,
// orders, customers) with stable tie ordering.
//
// CustomerAnalyzer: per-customer lifetime and spend statistics plus the
// top-decile revenue concentration metric.
//
// ReportBuilder: the aggregate business report with headline totals and
// peak-performance facts (best day, peak hour, best weekday).
package analytics
