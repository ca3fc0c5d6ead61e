// internals/features/attendance/testutil/builders.go
package testutil

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	attendanceModel "absenku_backend/internals/features/attendance/model"
	"absenku_backend/internals/helpers/dbtime"
)

// BuildRecord assembles an attendance record from its wire-format parts.
// Empty checkIn/checkOut mean the column is NULL.
func BuildRecord(t *testing.T, userID uuid.UUID, date, checkIn, checkOut string) *attendanceModel.AttendanceModel {
	t.Helper()

	d, err := dbtime.ParseDay(date)
	require.NoError(t, err)

	rec := &attendanceModel.AttendanceModel{
		ID:     uuid.New(),
		UserID: userID,
		Date:   d,
	}
	if checkIn != "" {
		ci, err := dbtime.ParseTod(checkIn)
		require.NoError(t, err)
		rec.CheckIn = &ci
	}
	if checkOut != "" {
		co, err := dbtime.ParseTod(checkOut)
		require.NoError(t, err)
		rec.CheckOut = &co
	}
	return rec
}
