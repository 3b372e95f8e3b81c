package reports

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
)

const (
	sheetName   = "Sheet1"
	columnWidth = 15.0
)

// ReportKind names the export, used in the generated filename.
type ReportKind string

const (
	KindReceipts ReportKind = "Receipts"
	KindPivot    ReportKind = "Pivot"
)

// Filename derives the deterministic export filename:
// <ReportKind>_<startOrAll>_<endOrAll>.xlsx with dates in year-month-day
// form and "All" for an unset bound.
func Filename(kind ReportKind, start, end *time.Time) string {
	return fmt.Sprintf("%s_%s_%s.xlsx", kind, boundOrAll(start), boundOrAll(end))
}

func boundOrAll(t *time.Time) string {
	if t == nil || t.IsZero() {
		return "All"
	}
	return t.Format(exportDateLayout)
}

// ExportReceipts serializes a flat receipt report into spreadsheet bytes.
// The header row carries the fixed labels; data rows preserve the exact
// column order of the report.
func ExportReceipts(report *Report) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := writeHeaderRow(f, report.Columns, 1); err != nil {
		return nil, err
	}

	for i, rec := range report.Rows {
		for col, key := range report.Columns {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return nil, fmt.Errorf("cell name: %w", err)
			}
			if err := f.SetCellValue(sheetName, cell, recordCellValue(rec, key)); err != nil {
				return nil, fmt.Errorf("set cell: %w", err)
			}
		}
	}

	if err := setColumnWidths(f, len(report.Columns)); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// ExportPivot serializes a pivot table with a merged title banner
// spanning all columns, centered cells and a grand-total footer row.
func ExportPivot(table *PivotTable, title string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	columns := pivotColumns(table)

	lastCol, err := excelize.CoordinatesToCellName(len(columns), 1)
	if err != nil {
		return nil, fmt.Errorf("cell name: %w", err)
	}
	if err := f.MergeCell(sheetName, "A1", lastCol); err != nil {
		return nil, fmt.Errorf("merge title: %w", err)
	}
	if err := f.SetCellValue(sheetName, "A1", title); err != nil {
		return nil, fmt.Errorf("set title: %w", err)
	}

	if err := writeHeaderRow(f, columns, 2); err != nil {
		return nil, err
	}

	for i, row := range table.Rows {
		for col, key := range columns {
			cell, err := excelize.CoordinatesToCellName(col+1, i+3)
			if err != nil {
				return nil, fmt.Errorf("cell name: %w", err)
			}
			if err := f.SetCellValue(sheetName, cell, pivotCellValue(row, key)); err != nil {
				return nil, fmt.Errorf("set cell: %w", err)
			}
		}
	}

	// Grand-total footer, recomputed from the rows
	footerRow := len(table.Rows) + 3
	labelCell, err := excelize.CoordinatesToCellName(1, footerRow)
	if err != nil {
		return nil, fmt.Errorf("cell name: %w", err)
	}
	totalCell, err := excelize.CoordinatesToCellName(len(columns), footerRow)
	if err != nil {
		return nil, fmt.Errorf("cell name: %w", err)
	}
	if err := f.SetCellValue(sheetName, labelCell, "GRAND TOTAL"); err != nil {
		return nil, fmt.Errorf("set footer: %w", err)
	}
	if err := f.SetCellValue(sheetName, totalCell, table.GrandTotal()); err != nil {
		return nil, fmt.Errorf("set footer: %w", err)
	}

	centered, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("create style: %w", err)
	}
	endCell, err := excelize.CoordinatesToCellName(len(columns), footerRow)
	if err != nil {
		return nil, fmt.Errorf("cell name: %w", err)
	}
	if err := f.SetCellStyle(sheetName, "A1", endCell, centered); err != nil {
		return nil, fmt.Errorf("apply style: %w", err)
	}

	if err := setColumnWidths(f, len(columns)); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func pivotColumns(table *PivotTable) []string {
	columns := make([]string, 0, len(table.ProductColumns)+4)
	columns = append(columns, ColSerial, ColWeaverID, ColWeaverName)
	columns = append(columns, table.ProductColumns...)
	columns = append(columns, ColTotal)
	return columns
}

func writeHeaderRow(f *excelize.File, columns []string, row int) error {
	for col, key := range columns {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return fmt.Errorf("cell name: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, HeaderLabel(key)); err != nil {
			return fmt.Errorf("set header: %w", err)
		}
	}
	return nil
}

func setColumnWidths(f *excelize.File, count int) error {
	lastCol, err := excelize.ColumnNumberToName(count)
	if err != nil {
		return fmt.Errorf("column name: %w", err)
	}
	if err := f.SetColWidth(sheetName, "A", lastCol, columnWidth); err != nil {
		return fmt.Errorf("set column width: %w", err)
	}
	return nil
}

func recordCellValue(rec Record, column string) any {
	switch column {
	case ColReceiptNo:
		return rec.ReceiptNo
	case ColSupervisorID:
		return rec.SupervisorID
	case ColWeaverID:
		return rec.WeaverID
	case ColWeaverName:
		return rec.WeaverName
	case ColDate:
		return rec.ExportDate()
	case ColSubTotal:
		return rec.SubTotal
	default:
		return rec.Quantities[column]
	}
}

func pivotCellValue(row PivotRow, column string) any {
	switch column {
	case ColSerial:
		return row.Serial
	case ColWeaverID:
		return row.LoomNo
	case ColWeaverName:
		return row.WeaverName
	case ColTotal:
		return row.Total
	default:
		return row.Quantities[column]
	}
}
