package reports

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestFilename(t *testing.T) {
	start := day(2024, 1, 1)
	end := day(2024, 1, 31)

	assert.Equal(t, "Receipts_2024-01-01_2024-01-31.xlsx", Filename(KindReceipts, &start, &end))
	assert.Equal(t, "Receipts_All_All.xlsx", Filename(KindReceipts, nil, nil))
	assert.Equal(t, "Pivot_2024-01-01_All.xlsx", Filename(KindPivot, &start, nil))
}

func TestExportReceipts(t *testing.T) {
	report := &Report{
		Columns:        []string{ColReceiptNo, ColSupervisorID, ColWeaverID, ColWeaverName, ColDate, "Towel", ColSubTotal},
		ProductColumns: []string{"Towel"},
		Rows: []Record{
			{
				ReceiptNo:    "101",
				SupervisorID: "S1",
				WeaverID:     "3",
				WeaverName:   "Ravi",
				Date:         time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
				Quantities:   map[string]float64{"Towel": 5},
				SubTotal:     5,
			},
		},
	}

	data, err := ExportReceipts(report)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, []string{"RECEIPT NO", "SUPERVISOR ID", "LOOM NO", "NAME", "DATE", "TOWEL", "TOTAL"}, rows[0])
	assert.Equal(t, []string{"101", "S1", "3", "Ravi", "2024-01-05", "5", "5"}, rows[1])
}

func TestExportPivot(t *testing.T) {
	table := &PivotTable{
		Rows: []PivotRow{
			{Serial: 1, LoomNo: "3", WeaverName: "Ravi", Quantities: map[string]float64{"Towel": 5, "Lungi": 2}, Total: 7},
		},
		ProductColumns: []string{"Towel", "Lungi"},
		StartDate:      day(2024, 1, 1),
		EndDate:        day(2024, 1, 31),
	}

	data, err := ExportPivot(table, "PRODUCTION REPORT 2024-01-01 TO 2024-01-31")
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	title, err := f.GetCellValue(sheetName, "A1")
	require.NoError(t, err)
	assert.Equal(t, "PRODUCTION REPORT 2024-01-01 TO 2024-01-31", title)

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	require.Len(t, rows, 4)

	assert.Equal(t, []string{"S.NO", "LOOM NO", "NAME", "TOWEL", "LUNGI", "TOTAL"}, rows[1])
	assert.Equal(t, []string{"1", "3", "Ravi", "5", "2", "7"}, rows[2])

	// Grand-total footer
	assert.Equal(t, "GRAND TOTAL", rows[3][0])
	assert.Equal(t, "7", rows[3][len(rows[3])-1])

	// Title banner spans all columns
	merged, err := f.GetMergeCells(sheetName)
	require.NoError(t, err)
	require.Len(t, merged, 1)
	assert.Equal(t, "A1", merged[0].GetStartAxis())
	assert.Equal(t, "F1", merged[0].GetEndAxis())
}
