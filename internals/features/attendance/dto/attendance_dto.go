// internals/features/attendance/dto/attendance_dto.go
package dto

import (
	"strings"

	"github.com/google/uuid"

	attendanceModel "absenku_backend/internals/features/attendance/model"
)

/* =========================================================
   Requests
   ========================================================= */

// Check-in carries no body; the subject and the times are server-assigned.

type CheckOutRequest struct {
	AttendanceID uuid.UUID `json:"attendance_id" validate:"required"`
	WorkDone     string    `json:"work_done" validate:"required"`
}

func (r *CheckOutRequest) Normalize() {
	r.WorkDone = strings.TrimSpace(r.WorkDone)
}

/* =========================================================
   Responses
   ========================================================= */

// TodayResponse wraps the (possibly absent) today-record together with the
// server's calendar day and derived state, so clients need no date math.
type TodayResponse struct {
	Date   string                           `json:"date"`
	State  string                           `json:"state"`
	Record *attendanceModel.AttendanceModel `json:"record"`
}

/* =========================================================
   Admin list query
   ========================================================= */

type ListAttendanceQuery struct {
	// exact date, "YYYY-MM-DD"
	Date string `query:"date" validate:"omitempty,datetime=2006-01-02"`

	// case-insensitive email substring
	Email string `query:"email" validate:"omitempty,max=120"`
}
