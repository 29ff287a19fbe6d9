package domain

import (
	"time"
)

// MonthlySummary aggregates cleaned transactions for one calendar year-month.
// Growth fields compare against the previous month in chronological order and
// are nil for the first month and whenever the previous value is zero.
type MonthlySummary struct {
	Year  int `json:"year" csv:"Year"`
	Month int `json:"month" csv:"Month"`

	TotalRevenue        float64 `json:"total_revenue" csv:"TotalRevenue"`
	Transactions        int     `json:"transactions" csv:"Transactions"`
	AvgTransactionValue float64 `json:"avg_transaction_value" csv:"AvgTransactionValue"`
	UniqueCustomers     int     `json:"unique_customers" csv:"UniqueCustomers"`
	UniqueProducts      int     `json:"unique_products" csv:"UniqueProducts"`

	RevenueGrowth  *float64 `json:"revenue_growth,omitempty" csv:"RevenueGrowth"`
	CustomerGrowth *float64 `json:"customer_growth,omitempty" csv:"CustomerGrowth"`
}

// Label returns the year-month in YYYY-MM form.
func (m MonthlySummary) Label() string {
	return time.Date(m.Year, time.Month(m.Month), 1, 0, 0, 0, 0, time.UTC).Format("2006-01")
}

// ProductSummary aggregates cleaned transactions for one product, identified
// by its stock code with the description as a qualifier.
type ProductSummary struct {
	StockCode   string `json:"stock_code" csv:"StockCode"`
	Description string `json:"description" csv:"Description"`

	TotalQuantity   int64   `json:"total_quantity" csv:"TotalQuantity"`
	TotalRevenue    float64 `json:"total_revenue" csv:"TotalRevenue"`
	Orders          int     `json:"orders" csv:"Orders"`
	UniqueCustomers int     `json:"unique_customers" csv:"UniqueCustomers"`
	AvgUnitPrice    float64 `json:"avg_unit_price" csv:"AvgUnitPrice"`

	// Derived from the group sums above, never re-aggregated from raw rows.
	RevenuePerCustomer  float64 `json:"revenue_per_customer" csv:"RevenuePerCustomer"`
	AvgQuantityPerOrder float64 `json:"avg_quantity_per_order" csv:"AvgQuantityPerOrder"`
}

// CustomerSummary aggregates cleaned transactions for one customer.
type CustomerSummary struct {
	CustomerID string `json:"customer_id" csv:"CustomerID"`

	Orders         int       `json:"orders" csv:"Orders"`
	TotalSpent     float64   `json:"total_spent" csv:"TotalSpent"`
	AvgOrderValue  float64   `json:"avg_order_value" csv:"AvgOrderValue"`
	TotalItems     int64     `json:"total_items" csv:"TotalItems"`
	FirstPurchase  time.Time `json:"first_purchase" csv:"FirstPurchase"`
	LastPurchase   time.Time `json:"last_purchase" csv:"LastPurchase"`
	UniqueProducts int       `json:"unique_products" csv:"UniqueProducts"`

	// Whole days between first and last purchase; 0 for single-order customers.
	LifetimeDays int `json:"lifetime_days" csv:"LifetimeDays"`
}

// BusinessReport is the aggregate report computed over the full cleaned set.
type BusinessReport struct {
	TotalRevenue        float64 `json:"total_revenue"`
	TotalTransactions   int     `json:"total_transactions"`
	UniqueCustomers     int     `json:"unique_customers"`
	UniqueProducts      int     `json:"unique_products"`
	PeriodDays          int     `json:"period_days"`
	DailyRevenue        float64 `json:"daily_revenue"`
	RevenuePerCustomer  float64 `json:"revenue_per_customer"`
	AvgTransactionValue float64 `json:"avg_transaction_value"`

	BestDay            time.Time `json:"best_day"`
	BestDayRevenue     float64   `json:"best_day_revenue"`
	PeakHour           int       `json:"peak_hour"`
	PeakHourRevenue    float64   `json:"peak_hour_revenue"`
	BestWeekday        string    `json:"best_weekday"`
	BestWeekdayRevenue float64   `json:"best_weekday_revenue"`
}
