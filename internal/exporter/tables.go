package exporter

import (
	"strconv"

	"retailcli/pkg/contracts/domain"
)

// Output file names for the five pipeline artifacts.
const (
	CleanedRecordsFile    = "cleaned_transactions.csv"
	MonthlySummariesFile  = "monthly_summaries.csv"
	ProductSummariesFile  = "top_products.csv"
	CustomerSummariesFile = "customer_summaries.csv"
	BusinessReportFile    = "business_report.json"
)

const dateTimeFormat = "2006-01-02 15:04:05"

// WriteCleanedRecords exports the canonical transaction set.
func (w *CSVWriter) WriteCleanedRecords(records []domain.Transaction) error {
	rows := make([][]string, 0, len(records))
	for _, tx := range records {
		rows = append(rows, []string{
			tx.InvoiceNo,
			tx.StockCode,
			tx.Description,
			formatInt(tx.Quantity),
			formatFloat(tx.UnitPrice),
			tx.CustomerID,
			tx.InvoiceDate.Format(dateTimeFormat),
			formatFloat(tx.TotalAmount),
			strconv.Itoa(tx.Year),
			strconv.Itoa(tx.Month),
			tx.DayOfWeek,
			strconv.Itoa(tx.Hour),
		})
	}

	return w.WriteCSV(CleanedRecordsFile, WriteOptions{
		Headers: []string{
			"InvoiceNo", "StockCode", "Description", "Quantity", "UnitPrice",
			"CustomerID", "InvoiceDate", "TotalAmount", "Year", "Month",
			"DayOfWeek", "Hour",
		},
		Records:   rows,
		BOMPrefix: true,
	})
}

// WriteMonthlySummaries exports the chronological monthly trend table.
func (w *CSVWriter) WriteMonthlySummaries(summaries []domain.MonthlySummary) error {
	rows := make([][]string, 0, len(summaries))
	for _, m := range summaries {
		rows = append(rows, []string{
			m.Label(),
			formatFloat(m.TotalRevenue),
			strconv.Itoa(m.Transactions),
			formatFloat(m.AvgTransactionValue),
			strconv.Itoa(m.UniqueCustomers),
			strconv.Itoa(m.UniqueProducts),
			formatGrowth(m.RevenueGrowth),
			formatGrowth(m.CustomerGrowth),
		})
	}

	return w.WriteCSV(MonthlySummariesFile, WriteOptions{
		Headers: []string{
			"YearMonth", "TotalRevenue", "Transactions", "AvgTransactionValue",
			"UniqueCustomers", "UniqueProducts", "RevenueGrowth", "CustomerGrowth",
		},
		Records:   rows,
		BOMPrefix: true,
	})
}

// WriteProductSummaries exports the ranked product table.
func (w *CSVWriter) WriteProductSummaries(summaries []domain.ProductSummary) error {
	rows := make([][]string, 0, len(summaries))
	for _, p := range summaries {
		rows = append(rows, []string{
			p.StockCode,
			p.Description,
			formatInt(p.TotalQuantity),
			formatFloat(p.TotalRevenue),
			strconv.Itoa(p.Orders),
			strconv.Itoa(p.UniqueCustomers),
			formatFloat(p.AvgUnitPrice),
			formatFloat(p.RevenuePerCustomer),
			formatFloat(p.AvgQuantityPerOrder),
		})
	}

	return w.WriteCSV(ProductSummariesFile, WriteOptions{
		Headers: []string{
			"StockCode", "Description", "TotalQuantity", "TotalRevenue",
			"Orders", "UniqueCustomers", "AvgUnitPrice", "RevenuePerCustomer",
			"AvgQuantityPerOrder",
		},
		Records:   rows,
		BOMPrefix: true,
	})
}

// WriteCustomerSummaries exports the per-customer behavior table.
func (w *CSVWriter) WriteCustomerSummaries(summaries []domain.CustomerSummary) error {
	rows := make([][]string, 0, len(summaries))
	for _, c := range summaries {
		rows = append(rows, []string{
			c.CustomerID,
			strconv.Itoa(c.Orders),
			formatFloat(c.TotalSpent),
			formatFloat(c.AvgOrderValue),
			formatInt(c.TotalItems),
			c.FirstPurchase.Format(dateTimeFormat),
			c.LastPurchase.Format(dateTimeFormat),
			strconv.Itoa(c.UniqueProducts),
			strconv.Itoa(c.LifetimeDays),
		})
	}

	return w.WriteCSV(CustomerSummariesFile, WriteOptions{
		Headers: []string{
			"CustomerID", "Orders", "TotalSpent", "AvgOrderValue", "TotalItems",
			"FirstPurchase", "LastPurchase", "UniqueProducts", "LifetimeDays",
		},
		Records:   rows,
		BOMPrefix: true,
	})
}
