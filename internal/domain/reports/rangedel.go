package reports

import (
	"strconv"
	"strings"

	"loomledger/internal/core/apperror"
)

// ResolveRange returns the records whose normalized receipt number falls
// inside the inclusive [startToken, endToken] range. When both tokens
// coerce to numbers the range is numeric with min/max normalization, so
// token order never matters. Otherwise tokens compare as
// case-insensitive strings in whichever direction they naturally order.
// An empty result is not an error; callers present it as an empty
// preview.
func ResolveRange(records []Record, startToken, endToken string) ([]Record, error) {
	startToken = strings.TrimSpace(startToken)
	endToken = strings.TrimSpace(endToken)
	if startToken == "" || endToken == "" {
		return nil, apperror.NewValidation("start and end receipt numbers are required").
			WithDetail("field", "range")
	}

	startNum, startErr := strconv.ParseFloat(startToken, 64)
	endNum, endErr := strconv.ParseFloat(endToken, 64)

	if startErr == nil && endErr == nil {
		lo, hi := startNum, endNum
		if lo > hi {
			lo, hi = hi, lo
		}
		return filterRecords(records, func(rec Record) bool {
			n, err := strconv.ParseFloat(strings.TrimSpace(rec.ReceiptNo), 64)
			return err == nil && n >= lo && n <= hi
		}), nil
	}

	lo := strings.ToLower(startToken)
	hi := strings.ToLower(endToken)
	if lo > hi {
		lo, hi = hi, lo
	}
	return filterRecords(records, func(rec Record) bool {
		no := strings.ToLower(strings.TrimSpace(rec.ReceiptNo))
		return no != "" && no >= lo && no <= hi
	}), nil
}

func filterRecords(records []Record, keep func(Record) bool) []Record {
	result := make([]Record, 0)
	for _, rec := range records {
		if keep(rec) {
			result = append(result, rec)
		}
	}
	return result
}
