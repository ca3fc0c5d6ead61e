package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	attendanceModel "absenku_backend/internals/features/attendance/model"
	"absenku_backend/internals/helpers/dbtime"
)

func stateRec(t *testing.T, checkIn, checkOut string) *attendanceModel.AttendanceModel {
	t.Helper()
	rec := &attendanceModel.AttendanceModel{}
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

func TestStateOf(t *testing.T) {
	assert.Equal(t, StateAbsent, StateOf(nil))
	assert.Equal(t, StateAbsent, StateOf(stateRec(t, "", "")))
	assert.Equal(t, StateCheckedIn, StateOf(stateRec(t, "09:00:00", "")))
	assert.Equal(t, StateCheckedOut, StateOf(stateRec(t, "09:00:00", "17:30:00")))
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "absent", StateAbsent.String())
	assert.Equal(t, "checked_in", StateCheckedIn.String())
	assert.Equal(t, "checked_out", StateCheckedOut.String())
}

func TestCanCheckIn(t *testing.T) {
	assert.NoError(t, canCheckIn(nil))
	assert.ErrorIs(t, canCheckIn(stateRec(t, "09:00:00", "")), ErrAlreadyCheckedIn)
	assert.ErrorIs(t, canCheckIn(stateRec(t, "09:00:00", "17:30:00")), ErrAlreadyCheckedIn)
}

func TestCanCheckOut(t *testing.T) {
	assert.ErrorIs(t, canCheckOut(nil), ErrNotCheckedIn)
	assert.ErrorIs(t, canCheckOut(stateRec(t, "", "")), ErrNotCheckedIn)
	assert.NoError(t, canCheckOut(stateRec(t, "09:00:00", "")))
	assert.ErrorIs(t, canCheckOut(stateRec(t, "09:00:00", "17:30:00")), ErrAlreadyCheckedOut)
}
