// Package dataprocessing turns a raw retail transaction workbook into the
// canonical cleaned record set.
//
// # Architecture
//
// The package is organized into two components:
//
// 1. Loader: Reads the transaction workbook and extracts raw rows in source order
// 2. Cleaner: Applies the validation, normalization, and outlier-removal pipeline
//
// # Usage
//
// Basic loading and cleaning:
//
//	records, err := dataprocessing.LoadFile("data/online_retail.xlsx")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	cleaner := dataprocessing.NewCleaner(logger, dataprocessing.DefaultCleanerConfig())
//	cleaned, stats := cleaner.Clean(ctx, records)
//
// The cleaning stages run in a fixed order (identity filter, description
// sentinel, type normalization, derived fields, validity filter, IQR outlier
// filter) and every dropped row is counted in the returned CleaningStats.
// Re-cleaning already-clean data is a fixed point.
package dataprocessing
