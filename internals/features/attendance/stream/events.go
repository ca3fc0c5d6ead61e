// internals/features/attendance/stream/events.go
package stream

import (
	"github.com/google/uuid"

	attendanceModel "absenku_backend/internals/features/attendance/model"
	profileModel "absenku_backend/internals/features/employee/model"
	"absenku_backend/internals/helpers/dbtime"
)

type Kind string

const (
	KindInsert Kind = "INSERT"
	KindUpdate Kind = "UPDATE"
)

// AttendanceRow is a partial attendance record as carried by a change event.
// Nil pointer = column not present in the payload (UPDATE notifications may
// omit unchanged columns); present fields override, absent fields preserve.
type AttendanceRow struct {
	ID       *uuid.UUID  `json:"id"`
	UserID   *uuid.UUID  `json:"user_id"`
	Date     *dbtime.Day `json:"date"`
	CheckIn  *dbtime.Tod `json:"check_in"`
	CheckOut *dbtime.Tod `json:"check_out"`
	WorkDone *string     `json:"work_done"`

	// Attached only when the row was hydrated from a joined point lookup or
	// a store-acknowledged write, never by the raw feed.
	Profile *profileModel.ProfileModel `json:"-"`
}

// ChangeEvent is the typed, normalized form of one stream notification.
type ChangeEvent struct {
	Kind Kind
	Row  AttendanceRow
}

// RowFromModel converts a full (store-acknowledged or join-fetched) record
// into the partial shape the cache merges.
func RowFromModel(m *attendanceModel.AttendanceModel) AttendanceRow {
	id := m.ID
	userID := m.UserID
	date := m.Date
	return AttendanceRow{
		ID:       &id,
		UserID:   &userID,
		Date:     &date,
		CheckIn:  m.CheckIn,
		CheckOut: m.CheckOut,
		WorkDone: m.WorkDone,
		Profile:  m.Profile,
	}
}
