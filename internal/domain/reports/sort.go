package reports

import (
	"sort"
	"strconv"
	"strings"
)

// Direction of a sort.
type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// SortRecords orders flat report rows by a column key, in place. The sort
// is stable: rows with equal keys keep their relative input order.
// Comparison is numeric when both operands coerce to numbers, otherwise
// case-insensitive text. Product column keys sort by that product's
// quantity.
func SortRecords(records []Record, column string, dir Direction) {
	sort.SliceStable(records, func(i, j int) bool {
		if dir == Descending {
			return recordLess(records[j], records[i], column)
		}
		return recordLess(records[i], records[j], column)
	})
}

func recordLess(a, b Record, column string) bool {
	switch column {
	case ColDate:
		return a.Date.Before(b.Date)
	case ColSubTotal:
		return a.SubTotal < b.SubTotal
	case ColReceiptNo:
		return valueLess(a.ReceiptNo, b.ReceiptNo)
	case ColSupervisorID:
		return valueLess(a.SupervisorID, b.SupervisorID)
	case ColWeaverID:
		return valueLess(a.WeaverID, b.WeaverID)
	case ColWeaverName:
		return valueLess(a.WeaverName, b.WeaverName)
	default:
		return a.Quantities[column] < b.Quantities[column]
	}
}

// SortPivotRows orders pivot rows by a column key, in place, stable.
// Serial numbers are not reassigned; aggregation owns them.
func SortPivotRows(rows []PivotRow, column string, dir Direction) {
	sort.SliceStable(rows, func(i, j int) bool {
		if dir == Descending {
			return pivotLess(rows[j], rows[i], column)
		}
		return pivotLess(rows[i], rows[j], column)
	})
}

func pivotLess(a, b PivotRow, column string) bool {
	switch column {
	case ColSerial:
		return a.Serial < b.Serial
	case ColTotal:
		return a.Total < b.Total
	case ColWeaverID:
		return valueLess(a.LoomNo, b.LoomNo)
	case ColWeaverName:
		return valueLess(a.WeaverName, b.WeaverName)
	default:
		return a.Quantities[column] < b.Quantities[column]
	}
}

// valueLess is the numeric-aware comparator: identifiers stored as text
// must sort as integers when both sides are numeric ("9" before "10").
func valueLess(a, b string) bool {
	na, errA := strconv.ParseFloat(strings.TrimSpace(a), 64)
	nb, errB := strconv.ParseFloat(strings.TrimSpace(b), 64)
	if errA == nil && errB == nil {
		return na < nb
	}
	return strings.ToLower(a) < strings.ToLower(b)
}
