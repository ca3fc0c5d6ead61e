package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	attendanceModel "absenku_backend/internals/features/attendance/model"
	profileModel "absenku_backend/internals/features/employee/model"
	"absenku_backend/internals/helpers/dbtime"
)

func filterRec(t *testing.T, date, email string) attendanceModel.AttendanceModel {
	t.Helper()
	d, err := dbtime.ParseDay(date)
	require.NoError(t, err)
	rec := attendanceModel.AttendanceModel{
		ID:     uuid.New(),
		UserID: uuid.New(),
		Date:   d,
	}
	if email != "" {
		rec.Profile = &profileModel.ProfileModel{ID: rec.UserID, Email: email}
	}
	return rec
}

func TestFilter_Apply_EmptyIsIdentity(t *testing.T) {
	recs := []attendanceModel.AttendanceModel{
		filterRec(t, "2024-01-10", "a@example.com"),
		filterRec(t, "2024-01-09", "b@example.com"),
	}

	out := Filter{}.Apply(recs)
	assert.Equal(t, recs, out)
	assert.True(t, Filter{}.IsZero())
}

func TestFilter_Apply_DateOnly(t *testing.T) {
	match := filterRec(t, "2024-01-10", "a@example.com")
	recs := []attendanceModel.AttendanceModel{
		match,
		filterRec(t, "2024-01-09", "b@example.com"),
	}

	out := Filter{Date: "2024-01-10"}.Apply(recs)
	require.Len(t, out, 1)
	assert.Equal(t, match.ID, out[0].ID)
}

func TestFilter_Apply_EmailCaseInsensitiveSubstring(t *testing.T) {
	match := filterRec(t, "2024-01-10", "Budi.Santoso@example.com")
	recs := []attendanceModel.AttendanceModel{
		match,
		filterRec(t, "2024-01-10", "siti@example.com"),
	}

	out := Filter{Email: "bUdI"}.Apply(recs)
	require.Len(t, out, 1)
	assert.Equal(t, match.ID, out[0].ID)
}

func TestFilter_Apply_AndComposition(t *testing.T) {
	match := filterRec(t, "2024-01-10", "budi@example.com")
	recs := []attendanceModel.AttendanceModel{
		match,
		filterRec(t, "2024-01-10", "siti@example.com"), // date matches, email does not
		filterRec(t, "2024-01-09", "budi@example.com"), // email matches, date does not
	}

	out := Filter{Date: "2024-01-10", Email: "budi"}.Apply(recs)
	require.Len(t, out, 1)
	assert.Equal(t, match.ID, out[0].ID)
}

func TestFilter_Apply_EmailClauseExcludesJoinlessRows(t *testing.T) {
	recs := []attendanceModel.AttendanceModel{
		filterRec(t, "2024-01-10", ""), // no joined profile
	}

	out := Filter{Email: "example"}.Apply(recs)
	assert.Empty(t, out)
}

func TestFilter_Apply_PreservesOrder(t *testing.T) {
	first := filterRec(t, "2024-01-10", "a@example.com")
	second := filterRec(t, "2024-01-09", "b@example.com")
	third := filterRec(t, "2024-01-08", "c@example.com")

	out := Filter{Email: "example"}.Apply([]attendanceModel.AttendanceModel{first, second, third})
	require.Len(t, out, 3)
	assert.Equal(t, first.ID, out[0].ID)
	assert.Equal(t, second.ID, out[1].ID)
	assert.Equal(t, third.ID, out[2].ID)
}
