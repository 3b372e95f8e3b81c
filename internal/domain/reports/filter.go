package reports

import (
	"strings"
	"time"
)

// Criteria narrows a record collection. All set criteria combine with
// logical AND; unset criteria impose no constraint.
type Criteria struct {
	// Date bounds are inclusive at day granularity.
	StartDate *time.Time
	EndDate   *time.Time

	// Case-insensitive substring matches against the normalized field.
	SupervisorID string
	WeaverID     string
	ReceiptNo    string
}

// Filter returns the subset of records matching the criteria. A record
// without a date is excluded by any date bound. Result ordering is the
// caller's concern.
func Filter(records []Record, c Criteria) []Record {
	result := make([]Record, 0, len(records))
	for _, rec := range records {
		if matches(rec, c) {
			result = append(result, rec)
		}
	}
	return result
}

func matches(rec Record, c Criteria) bool {
	if c.StartDate != nil || c.EndDate != nil {
		if !rec.HasDate() {
			return false
		}
		day := truncateToDay(rec.Date)
		if c.StartDate != nil && day.Before(truncateToDay(*c.StartDate)) {
			return false
		}
		if c.EndDate != nil && day.After(truncateToDay(*c.EndDate)) {
			return false
		}
	}

	if !containsFold(rec.SupervisorID, c.SupervisorID) {
		return false
	}
	if !containsFold(rec.WeaverID, c.WeaverID) {
		return false
	}
	if !containsFold(rec.ReceiptNo, c.ReceiptNo) {
		return false
	}

	return true
}

// containsFold reports whether haystack contains needle
// case-insensitively. An empty needle always matches.
func containsFold(haystack, needle string) bool {
	if needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
