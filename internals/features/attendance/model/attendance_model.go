// internals/features/attendance/model/attendance_model.go
package model

import (
	"time"

	"github.com/google/uuid"

	profileModel "absenku_backend/internals/features/employee/model"
	"absenku_backend/internals/helpers/dbtime"
)

type AttendanceModel struct {
	// PK, store-assigned, immutable
	ID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:id" json:"id"`

	// Natural key together with Date (one row per user per day)
	UserID uuid.UUID  `gorm:"type:uuid;not null;column:user_id;uniqueIndex:uq_attendance_user_date;index:idx_attendance_user" json:"user_id"`
	Date   dbtime.Day `gorm:"type:date;not null;column:date;uniqueIndex:uq_attendance_user_date" json:"date"`

	// Set exactly once by check-in / check-out, never cleared
	CheckIn  *dbtime.Tod `gorm:"type:time;column:check_in" json:"check_in,omitempty"`
	CheckOut *dbtime.Tod `gorm:"type:time;column:check_out" json:"check_out,omitempty"`

	// Set together with CheckOut
	WorkDone *string `gorm:"type:text;column:work_done" json:"work_done,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`

	// Joined projection for admin views (belongs-to profiles via user_id).
	// JSON key matches the original table name the clients already consume.
	Profile *profileModel.ProfileModel `gorm:"foreignKey:UserID;references:ID" json:"profiles,omitempty"`
}

func (AttendanceModel) TableName() string {
	return "attendance"
}

// HasProfile reports whether the denormalized join is attached.
func (m *AttendanceModel) HasProfile() bool {
	return m != nil && m.Profile != nil
}
