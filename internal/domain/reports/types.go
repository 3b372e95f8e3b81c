// Package reports implements the receipt reporting engine: field
// normalization over loosely-shaped receipt records, flat report rows,
// date-range pivot aggregation keyed by (loom, weaver), numeric-aware
// sorting, spreadsheet export and receipt-number range resolution.
//
// Everything here is pure data shaping over receipts already loaded into
// memory; the Service at the bottom of the package wires the pieces to
// the receipt and product stores.
package reports

import (
	"time"

	"loomledger/internal/core/id"
)

// DateNotAvailable is the display form of a missing or unparseable date.
const DateNotAvailable = "N/A"

// Date layout constants. Exports and filenames use the sortable form,
// on-screen tables use the display form.
const (
	exportDateLayout  = "2006-01-02"
	displayDateLayout = "02/01/2006"
)

// Record is the canonical, normalized view of one receipt. Quantities is
// dense: it holds every catalog product column, zero-filled, keyed by the
// catalog's canonical product name.
type Record struct {
	ID           id.ID
	ReceiptNo    string
	SupervisorID string
	WeaverID     string
	WeaverName   string

	// Date is the zero time when the raw record had no parseable date.
	Date time.Time

	Quantities map[string]float64
	SubTotal   float64
}

// HasDate reports whether the raw record carried a parseable date.
func (r Record) HasDate() bool {
	return !r.Date.IsZero()
}

// DisplayDate returns the on-screen day/month/year form.
func (r Record) DisplayDate() string {
	if !r.HasDate() {
		return DateNotAvailable
	}
	return r.Date.Format(displayDateLayout)
}

// ExportDate returns the sortable year-month-day form, empty when absent.
func (r Record) ExportDate() string {
	if !r.HasDate() {
		return ""
	}
	return r.Date.Format(exportDateLayout)
}

// Report is a flat receipt report: ordered columns plus normalized rows.
type Report struct {
	Columns        []string
	ProductColumns []string
	Rows           []Record
}

// PivotRow is one (loom, weaver) aggregate over a date range. Serial is
// assigned 1-based after final ordering.
type PivotRow struct {
	Serial     int
	LoomNo     string
	WeaverName string

	// Quantities is dense over the pivot's product columns.
	Quantities map[string]float64

	// Total is the sum of this row's quantities, maintained during
	// aggregation and never recomputed by sorting.
	Total float64
}

// PivotTable is the result of a date-range aggregation.
type PivotTable struct {
	Rows           []PivotRow
	ProductColumns []string
	StartDate      time.Time
	EndDate        time.Time
}

// GrandTotal sums all row totals. It is computed fresh on every call so
// it stays consistent with the rows under any post-aggregation reordering.
func (t *PivotTable) GrandTotal() float64 {
	var total float64
	for _, row := range t.Rows {
		total += row.Total
	}
	return total
}
