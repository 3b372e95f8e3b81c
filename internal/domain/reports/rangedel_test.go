package reports

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loomledger/internal/core/apperror"
)

func recordsWithNos(nos ...string) []Record {
	records := make([]Record, 0, len(nos))
	for _, no := range nos {
		records = append(records, Record{ReceiptNo: no})
	}
	return records
}

func TestResolveRange_NumericInclusive(t *testing.T) {
	records := recordsWithNos("99", "100", "103", "106")

	got, err := ResolveRange(records, "100", "105")
	require.NoError(t, err)

	assert.Equal(t, []string{"100", "103"}, receiptNos(got))
}

func TestResolveRange_NumericSymmetry(t *testing.T) {
	records := recordsWithNos("5", "15", "25", "45", "55")

	forward, err := ResolveRange(records, "10", "50")
	require.NoError(t, err)

	backward, err := ResolveRange(records, "50", "10")
	require.NoError(t, err)

	assert.Equal(t, receiptNos(forward), receiptNos(backward))
	assert.Equal(t, []string{"15", "25", "45"}, receiptNos(forward))
}

func TestResolveRange_NumericSkipsNonNumeric(t *testing.T) {
	records := recordsWithNos("100", "R-101", "102")

	got, err := ResolveRange(records, "100", "110")
	require.NoError(t, err)

	assert.Equal(t, []string{"100", "102"}, receiptNos(got))
}

func TestResolveRange_Lexicographic(t *testing.T) {
	records := recordsWithNos("R-2026-00001", "R-2026-00005", "R-2026-00009")

	got, err := ResolveRange(records, "R-2026-00001", "R-2026-00005")
	require.NoError(t, err)

	assert.Equal(t, []string{"R-2026-00001", "R-2026-00005"}, receiptNos(got))
}

func TestResolveRange_LexicographicCaseInsensitiveEitherDirection(t *testing.T) {
	records := recordsWithNos("a1", "B2", "c3")

	forward, err := ResolveRange(records, "A1", "b2")
	require.NoError(t, err)

	backward, err := ResolveRange(records, "b2", "A1")
	require.NoError(t, err)

	assert.Equal(t, []string{"a1", "B2"}, receiptNos(forward))
	assert.Equal(t, receiptNos(forward), receiptNos(backward))
}

func TestResolveRange_EmptyResultIsNotAnError(t *testing.T) {
	records := recordsWithNos("1", "2")

	got, err := ResolveRange(records, "100", "200")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestResolveRange_EmptyTokensRejected(t *testing.T) {
	_, err := ResolveRange(nil, "", "10")
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}
