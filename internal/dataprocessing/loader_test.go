package dataprocessing

import (
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	apperrors "retailcli/internal/errors"
)

// writeWorkbook builds a minimal retail workbook with the given header row
// and data rows, and returns its path.
func writeWorkbook(t *testing.T, headers []string, rows [][]interface{}) string {
	t.Helper()

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	for col, header := range headers {
		name, err := excelize.ColumnNumberToName(col + 1)
		require.NoError(t, err)
		require.NoError(t, f.SetCellValue(sheet, name+"1", header))
	}
	for rowIdx, row := range rows {
		for col, val := range row {
			name, err := excelize.ColumnNumberToName(col + 1)
			require.NoError(t, err)
			cell := name + strconv.Itoa(rowIdx+2)
			require.NoError(t, f.SetCellValue(sheet, cell, val))
		}
	}

	path := filepath.Join(t.TempDir(), "retail.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

var retailHeaders = []string{
	"InvoiceNo", "StockCode", "Description", "Quantity", "UnitPrice", "CustomerID", "InvoiceDate",
}

func TestLoadFile(t *testing.T) {
	path := writeWorkbook(t, retailHeaders, [][]interface{}{
		{"536365", "85123A", "WHITE HANGING HEART T-LIGHT HOLDER", "6", "2.55", "17850", "2010-12-01 08:26:00"},
		{"536366", "71053", "", "-1", "3.39", "", "2010-12-01 08:28:00"},
	})

	records, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, records, 2)

	first := records[0]
	assert.Equal(t, "536365", first.InvoiceNo)
	assert.Equal(t, "85123A", first.StockCode)
	assert.Equal(t, "WHITE HANGING HEART T-LIGHT HOLDER", first.Description)
	assert.Equal(t, int64(6), first.Quantity)
	assert.Equal(t, 2.55, first.UnitPrice)
	assert.Equal(t, "17850", first.CustomerID)
	assert.Equal(t, "2010-12-01 08:26:00", first.InvoiceDate)

	// Source row order is preserved, including rows that will later be dropped.
	second := records[1]
	assert.Equal(t, "536366", second.InvoiceNo)
	assert.Equal(t, int64(-1), second.Quantity)
	assert.Empty(t, second.CustomerID)
	assert.Empty(t, second.Description)
}

func TestLoadFile_HeaderNormalization(t *testing.T) {
	headers := []string{
		"Invoice No", "Stock Code", "Description", "Quantity", "Unit Price", "Customer ID", "Invoice Date",
	}
	path := writeWorkbook(t, headers, [][]interface{}{
		{"536365", "85123A", "MUG", "2", "1.25", "12583", "2010-12-01 09:00:00"},
	})

	records, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "12583", records[0].CustomerID)
}

func TestLoadFile_LenientNumbers(t *testing.T) {
	path := writeWorkbook(t, retailHeaders, [][]interface{}{
		{"536367", "22745", "POPPY'S PLAYHOUSE", "1,200", "0.85", "13047", "2010-12-01 10:00:00"},
		{"536368", "22746", "GARBLED", "n/a", "oops", "13047", "2010-12-01 10:01:00"},
	})

	records, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, int64(1200), records[0].Quantity)
	// Unparseable numerics become zero and fall to the validity filter.
	assert.Equal(t, int64(0), records[1].Quantity)
	assert.Equal(t, 0.0, records[1].UnitPrice)
}

func TestLoadFile_SchemaMismatch(t *testing.T) {
	headers := []string{"InvoiceNo", "StockCode", "Description", "Quantity", "UnitPrice"}
	path := writeWorkbook(t, headers, [][]interface{}{
		{"536365", "85123A", "MUG", "2", "1.25"},
	})

	_, err := LoadFile(path)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeSchema))
	assert.Contains(t, err.Error(), "customerid")
	assert.Contains(t, err.Error(), "invoicedate")
}

func TestLoadFile_SourceUnavailable(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "does-not-exist.xlsx"))
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeSource))
}

func TestLoadFile_SkipsEmptyRows(t *testing.T) {
	path := writeWorkbook(t, retailHeaders, [][]interface{}{
		{"536365", "85123A", "MUG", "2", "1.25", "12583", "2010-12-01 09:00:00"},
		{"", "", "", "", "", "", ""},
		{"536369", "85123A", "MUG", "1", "1.25", "12583", "2010-12-02 09:00:00"},
	})

	records, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "536369", records[1].InvoiceNo)
}
