package reports

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func datePtr(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestFilter_DateBoundsInclusive(t *testing.T) {
	records := []Record{
		{ReceiptNo: "before", Date: time.Date(2024, 1, 4, 23, 0, 0, 0, time.UTC)},
		{ReceiptNo: "onStart", Date: time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)},
		{ReceiptNo: "inside", Date: time.Date(2024, 1, 7, 12, 0, 0, 0, time.UTC)},
		{ReceiptNo: "onEnd", Date: time.Date(2024, 1, 10, 23, 59, 0, 0, time.UTC)},
		{ReceiptNo: "after", Date: time.Date(2024, 1, 11, 0, 0, 0, 0, time.UTC)},
	}

	got := Filter(records, Criteria{
		StartDate: datePtr(2024, 1, 5),
		EndDate:   datePtr(2024, 1, 10),
	})

	nos := make([]string, 0, len(got))
	for _, rec := range got {
		nos = append(nos, rec.ReceiptNo)
	}
	assert.Equal(t, []string{"onStart", "inside", "onEnd"}, nos)
}

func TestFilter_MissingDateExcludedByDateBound(t *testing.T) {
	records := []Record{
		{ReceiptNo: "dated", Date: time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)},
		{ReceiptNo: "undated"},
	}

	got := Filter(records, Criteria{StartDate: datePtr(2024, 1, 1)})
	assert.Len(t, got, 1)
	assert.Equal(t, "dated", got[0].ReceiptNo)

	// But an undated record passes substring-only criteria
	got = Filter(records, Criteria{ReceiptNo: "undated"})
	assert.Len(t, got, 1)
}

func TestFilter_SubstringCaseInsensitive(t *testing.T) {
	records := []Record{
		{ReceiptNo: "101", SupervisorID: "Sup-Alpha", WeaverID: "12"},
		{ReceiptNo: "102", SupervisorID: "sup-beta", WeaverID: "34"},
	}

	got := Filter(records, Criteria{SupervisorID: "ALPHA"})
	assert.Len(t, got, 1)
	assert.Equal(t, "101", got[0].ReceiptNo)

	got = Filter(records, Criteria{WeaverID: "3"})
	assert.Len(t, got, 1)
	assert.Equal(t, "102", got[0].ReceiptNo)
}

func TestFilter_CriteriaCombineWithAND(t *testing.T) {
	records := []Record{
		{ReceiptNo: "101", SupervisorID: "S1", Date: time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)},
		{ReceiptNo: "102", SupervisorID: "S1", Date: time.Date(2024, 2, 5, 0, 0, 0, 0, time.UTC)},
		{ReceiptNo: "103", SupervisorID: "S2", Date: time.Date(2024, 1, 6, 0, 0, 0, 0, time.UTC)},
	}

	got := Filter(records, Criteria{
		StartDate:    datePtr(2024, 1, 1),
		EndDate:      datePtr(2024, 1, 31),
		SupervisorID: "s1",
	})

	assert.Len(t, got, 1)
	assert.Equal(t, "101", got[0].ReceiptNo)
}

func TestFilter_NoCriteriaReturnsAll(t *testing.T) {
	records := []Record{{ReceiptNo: "1"}, {ReceiptNo: "2"}}
	assert.Len(t, Filter(records, Criteria{}), 2)
}
