package reports

import (
	"sort"
	"strconv"
	"time"

	"loomledger/internal/core/apperror"
)

// pivotKey is the grouping key: two receipts aggregate into the same row
// iff both normalized fields match exactly.
type pivotKey struct {
	loomNo     string
	weaverName string
}

// Aggregate groups records by (loomNo, weaverName) within the inclusive
// [start, end] day window and sums per-product quantities into a dense
// pivot table. Rows come back ordered by loomNo (numeric when every
// loomNo is numeric) with 1-based serials reflecting that final order.
func Aggregate(records []Record, start, end time.Time, productColumns []string) (*PivotTable, error) {
	if start.IsZero() || end.IsZero() {
		return nil, apperror.NewValidation("start and end dates are required").
			WithDetail("field", "dateRange")
	}
	if truncateToDay(start).After(truncateToDay(end)) {
		return nil, apperror.NewValidation("start date must not be after end date").
			WithDetail("startDate", start.Format(exportDateLayout)).
			WithDetail("endDate", end.Format(exportDateLayout))
	}

	startDay := truncateToDay(start)
	endDay := truncateToDay(end)

	accumulators := make(map[pivotKey]*PivotRow)
	order := make([]pivotKey, 0)

	for _, rec := range records {
		if !rec.HasDate() {
			continue
		}
		day := truncateToDay(rec.Date)
		if day.Before(startDay) || day.After(endDay) {
			continue
		}

		key := pivotKey{loomNo: rec.WeaverID, weaverName: rec.WeaverName}
		row, ok := accumulators[key]
		if !ok {
			row = &PivotRow{
				LoomNo:     key.loomNo,
				WeaverName: key.weaverName,
				Quantities: zeroFilled(productColumns),
			}
			accumulators[key] = row
			order = append(order, key)
		}

		for _, column := range productColumns {
			qty := rec.Quantities[column]
			row.Quantities[column] += qty
			row.Total += qty
		}
	}

	rows := make([]PivotRow, 0, len(order))
	for _, key := range order {
		rows = append(rows, *accumulators[key])
	}

	orderByLoomNo(rows)
	for i := range rows {
		rows[i].Serial = i + 1
	}

	return &PivotTable{
		Rows:           rows,
		ProductColumns: productColumns,
		StartDate:      startDay,
		EndDate:        endDay,
	}, nil
}

func zeroFilled(columns []string) map[string]float64 {
	quantities := make(map[string]float64, len(columns))
	for _, column := range columns {
		quantities[column] = 0
	}
	return quantities
}

// orderByLoomNo sorts rows ascending by loom number: numerically when
// every loom number parses as a number, lexicographically otherwise.
func orderByLoomNo(rows []PivotRow) {
	allNumeric := true
	numeric := make([]float64, len(rows))
	for i, row := range rows {
		n, err := strconv.ParseFloat(row.LoomNo, 64)
		if err != nil {
			allNumeric = false
			break
		}
		numeric[i] = n
	}

	if allNumeric {
		sort.SliceStable(rows, func(i, j int) bool {
			a, _ := strconv.ParseFloat(rows[i].LoomNo, 64)
			b, _ := strconv.ParseFloat(rows[j].LoomNo, 64)
			return a < b
		})
		return
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].LoomNo < rows[j].LoomNo
	})
}
