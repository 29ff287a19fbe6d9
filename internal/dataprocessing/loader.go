package dataprocessing

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	apperrors "retailcli/internal/errors"
	"retailcli/pkg/contracts/domain"
)

// requiredColumns are the workbook headers the loader must locate. Matching is
// case-insensitive and ignores embedded spaces ("Invoice No" == "InvoiceNo").
var requiredColumns = []string{
	"invoiceno",
	"stockcode",
	"description",
	"quantity",
	"unitprice",
	"customerid",
	"invoicedate",
}

// LoadFile reads a retail transaction workbook and extracts the raw rows in
// source order. The file is opened, read fully, and closed regardless of the
// outcome. Numeric cells are parsed leniently (thousands separators stripped,
// unparseable values become zero and fall to the validity filter downstream);
// the invoice timestamp is kept as raw text so the cleaner can count parse
// failures per row.
func LoadFile(path string) ([]domain.RawTransaction, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, apperrors.NewSourceError("failed to open workbook", err).
			WithContext("path", path)
	}
	defer f.Close()

	rows, sheetName, err := findTransactionSheet(f)
	if err != nil {
		return nil, err
	}

	slog.Info("found transaction data",
		slog.String("sheet_name", sheetName),
		slog.Int("total_rows", len(rows)))

	headerRow, columnMap := locateHeader(rows)
	if headerRow == -1 {
		return nil, apperrors.NewSchemaError("could not find header row in workbook", nil).
			WithContext("sheet", sheetName)
	}

	var missing []string
	for _, col := range requiredColumns {
		if _, exists := columnMap[col]; !exists {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, apperrors.NewSchemaError(
			fmt.Sprintf("required columns absent: %s", strings.Join(missing, ", ")), nil).
			WithContext("sheet", sheetName)
	}

	records := make([]domain.RawTransaction, 0, len(rows)-headerRow-1)
	for i := headerRow + 1; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row, columnMap) {
			continue
		}

		records = append(records, domain.RawTransaction{
			InvoiceNo:   cellString(row, columnMap, "invoiceno"),
			StockCode:   cellString(row, columnMap, "stockcode"),
			Description: cellString(row, columnMap, "description"),
			Quantity:    cellInt(row, columnMap, "quantity"),
			UnitPrice:   cellFloat(row, columnMap, "unitprice"),
			CustomerID:  cellString(row, columnMap, "customerid"),
			InvoiceDate: cellString(row, columnMap, "invoicedate"),
		})
	}

	slog.Info("workbook loaded",
		slog.String("path", path),
		slog.Int("record_count", len(records)))

	return records, nil
}

// findTransactionSheet returns the rows of the first sheet that contains a
// recognizable transaction header.
func findTransactionSheet(f *excelize.File) ([][]string, string, error) {
	var fallbackRows [][]string
	var fallbackName string

	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil || len(rows) == 0 {
			continue
		}
		if headerRow, _ := locateHeader(rows); headerRow != -1 {
			return rows, name, nil
		}
		// Remember the first non-empty sheet so schema errors can name the
		// columns that were actually missing.
		if fallbackRows == nil {
			fallbackRows = rows
			fallbackName = name
		}
	}

	if fallbackRows != nil {
		return fallbackRows, fallbackName, nil
	}
	return nil, "", apperrors.NewSchemaError("workbook contains no data sheets", nil)
}

// locateHeader scans the leading rows for one containing the invoice and
// price columns, and maps normalized header names to column positions.
func locateHeader(rows [][]string) (int, map[string]int) {
	maxScan := len(rows)
	if maxScan > 10 {
		maxScan = 10
	}

	for i := 0; i < maxScan; i++ {
		columnMap := make(map[string]int)
		for j, header := range rows[i] {
			normalized := normalizeHeader(header)
			if normalized == "" {
				continue
			}
			if _, exists := columnMap[normalized]; !exists {
				columnMap[normalized] = j
			}
		}
		if _, hasInvoice := columnMap["invoiceno"]; !hasInvoice {
			continue
		}
		if _, hasPrice := columnMap["unitprice"]; !hasPrice {
			continue
		}
		return i, columnMap
	}
	return -1, nil
}

// normalizeHeader lowercases a header cell and strips spaces so that
// "Invoice No" and "InvoiceNo" map to the same column.
func normalizeHeader(header string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(header)), " ", "")
}

func isEmptyRow(row []string, columnMap map[string]int) bool {
	for _, colIndex := range columnMap {
		if colIndex < len(row) && strings.TrimSpace(row[colIndex]) != "" {
			return false
		}
	}
	return true
}

func cellString(row []string, columnMap map[string]int, col string) string {
	if idx, exists := columnMap[col]; exists && idx < len(row) {
		return strings.TrimSpace(row[idx])
	}
	return ""
}

func cellFloat(row []string, columnMap map[string]int, col string) float64 {
	if idx, exists := columnMap[col]; exists && idx < len(row) {
		val, _ := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(row[idx]), ",", ""), 64)
		return val
	}
	return 0.0
}

func cellInt(row []string, columnMap map[string]int, col string) int64 {
	if idx, exists := columnMap[col]; exists && idx < len(row) {
		raw := strings.ReplaceAll(strings.TrimSpace(row[idx]), ",", "")
		if val, err := strconv.ParseInt(raw, 10, 64); err == nil {
			return val
		}
		// Quantities occasionally surface as "6.0" after spreadsheet edits.
		val, _ := strconv.ParseFloat(raw, 64)
		return int64(val)
	}
	return 0
}
