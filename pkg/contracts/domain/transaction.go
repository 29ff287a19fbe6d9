package domain

import (
	"time"
)

// RawTransaction represents a single row as read from the retail record source,
// before any validation or normalization. InvoiceDate is kept as the raw cell
// text so that parse failures can be counted during cleaning rather than at load.
type RawTransaction struct {
	InvoiceNo   string  `json:"invoice_no" csv:"InvoiceNo"`
	StockCode   string  `json:"stock_code" csv:"StockCode"`
	Description string  `json:"description" csv:"Description"`
	Quantity    int64   `json:"quantity" csv:"Quantity"`
	UnitPrice   float64 `json:"unit_price" csv:"UnitPrice"`
	CustomerID  string  `json:"customer_id" csv:"CustomerID"`
	InvoiceDate string  `json:"invoice_date" csv:"InvoiceDate"`
}

// Transaction is a cleaned retail transaction. Every field is populated:
// CustomerID is non-empty, Description has been defaulted when missing,
// Quantity and UnitPrice are positive, and TotalAmount lies within the
// inlier bound computed during cleaning. Instances are created once by the
// cleaner and never mutated afterwards.
type Transaction struct {
	InvoiceNo   string    `json:"invoice_no" csv:"InvoiceNo"`
	StockCode   string    `json:"stock_code" csv:"StockCode"`
	Description string    `json:"description" csv:"Description"`
	Quantity    int64     `json:"quantity" csv:"Quantity"`
	UnitPrice   float64   `json:"unit_price" csv:"UnitPrice"`
	CustomerID  string    `json:"customer_id" csv:"CustomerID"`
	InvoiceDate time.Time `json:"invoice_date" csv:"InvoiceDate"`

	// Derived fields computed during cleaning.
	TotalAmount float64 `json:"total_amount" csv:"TotalAmount"`
	Year        int     `json:"year" csv:"Year"`
	Month       int     `json:"month" csv:"Month"`
	DayOfWeek   string  `json:"day_of_week" csv:"DayOfWeek"`
	Hour        int     `json:"hour" csv:"Hour"`
}

// CleaningStats records how many rows each cleaning stage removed plus the
// overall retention rate. It is recomputed on every cleaning run.
type CleaningStats struct {
	TotalRecords       int     `json:"total_records"`
	MissingCustomer    int     `json:"missing_customer"`
	FilledDescriptions int     `json:"filled_descriptions"`
	MalformedRecords   int     `json:"malformed_records"`
	InvalidRecords     int     `json:"invalid_records"`
	OutlierRecords     int     `json:"outlier_records"`
	RetainedRecords    int     `json:"retained_records"`
	RetentionRate      float64 `json:"retention_rate"`

	// Inlier bound on TotalAmount applied by the outlier stage.
	LowerBound float64 `json:"lower_bound"`
	UpperBound float64 `json:"upper_bound"`
}

// Dropped returns the total number of rows removed across all stages.
func (s CleaningStats) Dropped() int {
	return s.MissingCustomer + s.MalformedRecords + s.InvalidRecords + s.OutlierRecords
}
