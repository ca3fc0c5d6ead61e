// internals/features/attendance/service/filter.go
package service

import (
	"strings"

	attendanceModel "absenku_backend/internals/features/attendance/model"
)

// Filter is the admin list predicate: independent clauses combined with
// AND, empty clauses are identity. The filtered view is always derived
// from a fresh cache snapshot and never stored, so it cannot drift.
type Filter struct {
	// exact calendar-date match, "YYYY-MM-DD"; empty = any day
	Date string

	// case-insensitive substring of the subject's email; empty = anyone
	Email string
}

func (f Filter) IsZero() bool {
	return strings.TrimSpace(f.Date) == "" && strings.TrimSpace(f.Email) == ""
}

// Apply returns the matching subsequence of records, preserving order.
func (f Filter) Apply(records []attendanceModel.AttendanceModel) []attendanceModel.AttendanceModel {
	date := strings.TrimSpace(f.Date)
	email := strings.ToLower(strings.TrimSpace(f.Email))

	if date == "" && email == "" {
		return records
	}

	out := make([]attendanceModel.AttendanceModel, 0, len(records))
	for _, rec := range records {
		if date != "" && rec.Date.String() != date {
			continue
		}
		if email != "" {
			// email lives on the joined profile; a row without its join
			// cannot match an email clause
			if rec.Profile == nil || !strings.Contains(strings.ToLower(rec.Profile.Email), email) {
				continue
			}
		}
		out = append(out, rec)
	}
	return out
}
