// Package exporter writes the five pipeline artifacts to disk.
//
// CSVWriter is the core writer: it resolves file names against a base
// directory, creates missing directories, and prefixes a UTF-8 BOM so Excel
// opens the files correctly. The table methods (WriteCleanedRecords,
// WriteMonthlySummaries, WriteProductSummaries, WriteCustomerSummaries)
// export the structured tables; WriteBusinessReport emits the aggregate
// report as indented JSON with cleaning statistics alongside.
package exporter
