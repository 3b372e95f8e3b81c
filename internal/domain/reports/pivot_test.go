package reports

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loomledger/internal/core/apperror"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestAggregate_EndToEnd(t *testing.T) {
	n := NewNormalizer(testCatalog(t), nil)
	records := []Record{
		n.Normalize(rawReceipt(map[string]any{
			"date": "2024-01-05", "loomNo": "3", "weaverName": "Ravi",
			"products": map[string]any{"a": map[string]any{"productName": "Towel", "quantity": 5}},
		})),
		n.Normalize(rawReceipt(map[string]any{
			"date": "2024-01-06", "loomNo": "3", "weaverName": "Ravi",
			"products": map[string]any{"a": map[string]any{"productName": "Lungi", "quantity": 2}},
		})),
	}

	table, err := Aggregate(records, day(2024, 1, 1), day(2024, 1, 31), n.ProductColumns())
	require.NoError(t, err)

	require.Len(t, table.Rows, 1)
	row := table.Rows[0]
	assert.Equal(t, 1, row.Serial)
	assert.Equal(t, "3", row.LoomNo)
	assert.Equal(t, "Ravi", row.WeaverName)
	assert.Equal(t, 5.0, row.Quantities["Towel"])
	assert.Equal(t, 2.0, row.Quantities["Lungi"])
	assert.Equal(t, 7.0, row.Total)
	assert.Equal(t, 7.0, table.GrandTotal())
}

func TestAggregate_InvertedRangeFails(t *testing.T) {
	_, err := Aggregate(nil, day(2024, 2, 1), day(2024, 1, 1), nil)
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}

func TestAggregate_MissingBoundsFail(t *testing.T) {
	_, err := Aggregate(nil, time.Time{}, day(2024, 1, 1), nil)
	require.Error(t, err)
}

func TestAggregate_DateWindowInclusive(t *testing.T) {
	columns := []string{"Towel"}
	records := []Record{
		{WeaverID: "1", WeaverName: "A", Date: day(2024, 1, 1), Quantities: map[string]float64{"Towel": 1}},
		{WeaverID: "2", WeaverName: "B", Date: day(2024, 1, 31), Quantities: map[string]float64{"Towel": 1}},
		{WeaverID: "3", WeaverName: "C", Date: day(2023, 12, 31), Quantities: map[string]float64{"Towel": 1}},
		{WeaverID: "4", WeaverName: "D", Date: day(2024, 2, 1), Quantities: map[string]float64{"Towel": 1}},
		{WeaverID: "5", WeaverName: "E", Quantities: map[string]float64{"Towel": 1}},
	}

	table, err := Aggregate(records, day(2024, 1, 1), day(2024, 1, 31), columns)
	require.NoError(t, err)

	looms := make([]string, 0, len(table.Rows))
	for _, row := range table.Rows {
		looms = append(looms, row.LoomNo)
	}
	assert.Equal(t, []string{"1", "2"}, looms)
}

func TestAggregate_GroupsByLoomAndWeaver(t *testing.T) {
	columns := []string{"Towel"}
	records := []Record{
		{WeaverID: "3", WeaverName: "Ravi", Date: day(2024, 1, 5), Quantities: map[string]float64{"Towel": 2}},
		{WeaverID: "3", WeaverName: "Ravi", Date: day(2024, 1, 6), Quantities: map[string]float64{"Towel": 3}},
		{WeaverID: "3", WeaverName: "Mani", Date: day(2024, 1, 6), Quantities: map[string]float64{"Towel": 1}},
	}

	table, err := Aggregate(records, day(2024, 1, 1), day(2024, 1, 31), columns)
	require.NoError(t, err)

	// Same loom with a different weaver name is a separate row
	require.Len(t, table.Rows, 2)
	assert.Equal(t, 5.0, table.Rows[0].Total)
	assert.Equal(t, "Ravi", table.Rows[0].WeaverName)
	assert.Equal(t, 1.0, table.Rows[1].Total)
	assert.Equal(t, "Mani", table.Rows[1].WeaverName)
	assert.Equal(t, 6.0, table.GrandTotal())
}

func TestAggregate_RowsOrderedByLoomNoNumeric(t *testing.T) {
	columns := []string{"Towel"}
	records := []Record{
		{WeaverID: "10", WeaverName: "A", Date: day(2024, 1, 5), Quantities: map[string]float64{"Towel": 1}},
		{WeaverID: "2", WeaverName: "B", Date: day(2024, 1, 5), Quantities: map[string]float64{"Towel": 1}},
		{WeaverID: "1", WeaverName: "C", Date: day(2024, 1, 5), Quantities: map[string]float64{"Towel": 1}},
	}

	table, err := Aggregate(records, day(2024, 1, 1), day(2024, 1, 31), columns)
	require.NoError(t, err)

	looms := []string{table.Rows[0].LoomNo, table.Rows[1].LoomNo, table.Rows[2].LoomNo}
	assert.Equal(t, []string{"1", "2", "10"}, looms)

	serials := []int{table.Rows[0].Serial, table.Rows[1].Serial, table.Rows[2].Serial}
	assert.Equal(t, []int{1, 2, 3}, serials)
}

func TestAggregate_LexicographicWhenNotAllNumeric(t *testing.T) {
	columns := []string{"Towel"}
	records := []Record{
		{WeaverID: "10", WeaverName: "A", Date: day(2024, 1, 5), Quantities: map[string]float64{"Towel": 1}},
		{WeaverID: "L2", WeaverName: "B", Date: day(2024, 1, 5), Quantities: map[string]float64{"Towel": 1}},
		{WeaverID: "2", WeaverName: "C", Date: day(2024, 1, 5), Quantities: map[string]float64{"Towel": 1}},
	}

	table, err := Aggregate(records, day(2024, 1, 1), day(2024, 1, 31), columns)
	require.NoError(t, err)

	looms := []string{table.Rows[0].LoomNo, table.Rows[1].LoomNo, table.Rows[2].LoomNo}
	assert.Equal(t, []string{"10", "2", "L2"}, looms)
}

func TestAggregate_ZeroFilledColumns(t *testing.T) {
	columns := []string{"Towel", "Lungi"}
	records := []Record{
		{WeaverID: "1", WeaverName: "A", Date: day(2024, 1, 5), Quantities: map[string]float64{"Towel": 4, "Lungi": 0}},
	}

	table, err := Aggregate(records, day(2024, 1, 1), day(2024, 1, 31), columns)
	require.NoError(t, err)

	require.Len(t, table.Rows, 1)
	row := table.Rows[0]
	assert.Contains(t, row.Quantities, "Lungi")
	assert.Equal(t, 0.0, row.Quantities["Lungi"])
	assert.Equal(t, 4.0, row.Total)
}

func TestAggregate_TotalsInvariant(t *testing.T) {
	columns := []string{"Towel", "Lungi"}
	records := []Record{
		{WeaverID: "1", WeaverName: "A", Date: day(2024, 1, 5), Quantities: map[string]float64{"Towel": 4, "Lungi": 1}},
		{WeaverID: "2", WeaverName: "B", Date: day(2024, 1, 6), Quantities: map[string]float64{"Towel": 2, "Lungi": 6}},
	}

	table, err := Aggregate(records, day(2024, 1, 1), day(2024, 1, 31), columns)
	require.NoError(t, err)

	var rowTotalSum float64
	for _, row := range table.Rows {
		var colSum float64
		for _, column := range columns {
			colSum += row.Quantities[column]
		}
		assert.Equal(t, colSum, row.Total)
		rowTotalSum += row.Total
	}
	assert.Equal(t, rowTotalSum, table.GrandTotal())
}
