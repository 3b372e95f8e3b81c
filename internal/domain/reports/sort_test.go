package reports

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func receiptNos(records []Record) []string {
	nos := make([]string, 0, len(records))
	for _, rec := range records {
		nos = append(nos, rec.ReceiptNo)
	}
	return nos
}

func TestSortRecords_NumericAware(t *testing.T) {
	records := []Record{
		{ReceiptNo: "10"},
		{ReceiptNo: "2"},
		{ReceiptNo: "1"},
	}

	SortRecords(records, ColReceiptNo, Ascending)
	assert.Equal(t, []string{"1", "2", "10"}, receiptNos(records))

	SortRecords(records, ColReceiptNo, Descending)
	assert.Equal(t, []string{"10", "2", "1"}, receiptNos(records))
}

func TestSortRecords_TextFallbackCaseInsensitive(t *testing.T) {
	records := []Record{
		{ReceiptNo: "1", WeaverName: "ravi"},
		{ReceiptNo: "2", WeaverName: "Anand"},
		{ReceiptNo: "3", WeaverName: "Mani"},
	}

	SortRecords(records, ColWeaverName, Ascending)
	assert.Equal(t, []string{"2", "3", "1"}, receiptNos(records))
}

func TestSortRecords_Stable(t *testing.T) {
	records := []Record{
		{ReceiptNo: "a", WeaverID: "5"},
		{ReceiptNo: "b", WeaverID: "5"},
		{ReceiptNo: "c", WeaverID: "3"},
		{ReceiptNo: "d", WeaverID: "5"},
	}

	SortRecords(records, ColWeaverID, Ascending)
	assert.Equal(t, []string{"c", "a", "b", "d"}, receiptNos(records))
}

func TestSortRecords_Idempotent(t *testing.T) {
	records := []Record{
		{ReceiptNo: "3"}, {ReceiptNo: "1"}, {ReceiptNo: "2"},
	}

	SortRecords(records, ColReceiptNo, Ascending)
	first := receiptNos(records)

	SortRecords(records, ColReceiptNo, Ascending)
	assert.Equal(t, first, receiptNos(records))
}

func TestSortRecords_ByDate(t *testing.T) {
	records := []Record{
		{ReceiptNo: "late", Date: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)},
		{ReceiptNo: "early", Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		{ReceiptNo: "undated"},
	}

	SortRecords(records, ColDate, Ascending)
	assert.Equal(t, []string{"undated", "early", "late"}, receiptNos(records))
}

func TestSortRecords_ByProductQuantity(t *testing.T) {
	records := []Record{
		{ReceiptNo: "a", Quantities: map[string]float64{"Towel": 9}},
		{ReceiptNo: "b", Quantities: map[string]float64{"Towel": 2}},
	}

	SortRecords(records, "Towel", Ascending)
	assert.Equal(t, []string{"b", "a"}, receiptNos(records))
}

func TestSortPivotRows_DoesNotTouchTotals(t *testing.T) {
	rows := []PivotRow{
		{Serial: 1, LoomNo: "10", Total: 7, Quantities: map[string]float64{"Towel": 7}},
		{Serial: 2, LoomNo: "2", Total: 3, Quantities: map[string]float64{"Towel": 3}},
	}

	SortPivotRows(rows, ColWeaverID, Ascending)

	assert.Equal(t, "2", rows[0].LoomNo)
	assert.Equal(t, 3.0, rows[0].Total)
	assert.Equal(t, "10", rows[1].LoomNo)
	assert.Equal(t, 7.0, rows[1].Total)
	// Serials reflect aggregation order, sorting never reassigns them
	assert.Equal(t, 2, rows[0].Serial)
}

func TestSortPivotRows_ByTotal(t *testing.T) {
	rows := []PivotRow{
		{LoomNo: "1", Total: 5},
		{LoomNo: "2", Total: 1},
		{LoomNo: "3", Total: 3},
	}

	SortPivotRows(rows, ColTotal, Descending)

	assert.Equal(t, []float64{5, 3, 1}, []float64{rows[0].Total, rows[1].Total, rows[2].Total})
}
