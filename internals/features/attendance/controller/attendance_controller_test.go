package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	attendanceModel "absenku_backend/internals/features/attendance/model"
	"absenku_backend/internals/features/attendance/service"
	"absenku_backend/internals/features/attendance/testutil"
	authMW "absenku_backend/internals/middlewares/auth"
)

// flakyStore simulates a store whose reads fail while writes still land.
type flakyStore struct {
	*testutil.FakeStore
	fetchErr error
}

func (s *flakyStore) FetchByID(ctx context.Context, id uuid.UUID, withJoin bool) (*attendanceModel.AttendanceModel, error) {
	if s.fetchErr != nil {
		return nil, s.fetchErr
	}
	return s.FakeStore.FetchByID(ctx, id, withJoin)
}

func checkOutApp(store *flakyStore, caller uuid.UUID) *fiber.App {
	svc := service.NewAttendanceService(store)
	ctl := NewAttendanceController(svc, nil)

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(authMW.LocUserID, caller)
		return c.Next()
	})
	app.Post("/check-out", ctl.CheckOut)
	return app
}

func checkOutRequest(t *testing.T, attendanceID uuid.UUID) *http.Request {
	t.Helper()
	body, err := json.Marshal(fiber.Map{
		"attendance_id": attendanceID,
		"work_done":     "finished report",
	})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/check-out", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestAttendanceController_CheckOut_StoreErrorFailsClosed(t *testing.T) {
	inner := testutil.NewFakeStore()
	victim := uuid.New()
	rec := testutil.BuildRecord(t, victim, "2024-01-10", "09:00:00", "")
	inner.SeedRecord(rec)

	// the ownership read fails while the conditional update would still
	// succeed; the request must be rejected before any write
	store := &flakyStore{FakeStore: inner, fetchErr: errors.New("transient: connection reset")}
	app := checkOutApp(store, uuid.New())

	resp, err := app.Test(checkOutRequest(t, rec.ID))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	stored, err := inner.FetchByID(context.Background(), rec.ID, false)
	require.NoError(t, err)
	assert.Nil(t, stored.CheckOut, "record must be untouched when ownership cannot be verified")
}

func TestAttendanceController_CheckOut_OtherUsersRecordForbidden(t *testing.T) {
	inner := testutil.NewFakeStore()
	victim := uuid.New()
	rec := testutil.BuildRecord(t, victim, "2024-01-10", "09:00:00", "")
	inner.SeedRecord(rec)

	store := &flakyStore{FakeStore: inner}
	app := checkOutApp(store, uuid.New())

	resp, err := app.Test(checkOutRequest(t, rec.ID))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	stored, err := inner.FetchByID(context.Background(), rec.ID, false)
	require.NoError(t, err)
	assert.Nil(t, stored.CheckOut)
}

func TestAttendanceController_CheckOut_UnknownRecordNotFound(t *testing.T) {
	store := &flakyStore{FakeStore: testutil.NewFakeStore()}
	app := checkOutApp(store, uuid.New())

	resp, err := app.Test(checkOutRequest(t, uuid.New()))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestAttendanceController_CheckOut_OwnerSucceeds(t *testing.T) {
	inner := testutil.NewFakeStore()
	owner := uuid.New()
	rec := testutil.BuildRecord(t, owner, "2024-01-10", "09:00:00", "")
	inner.SeedRecord(rec)

	store := &flakyStore{FakeStore: inner}
	app := checkOutApp(store, owner)

	resp, err := app.Test(checkOutRequest(t, rec.ID))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	stored, err := inner.FetchByID(context.Background(), rec.ID, false)
	require.NoError(t, err)
	require.NotNil(t, stored.CheckOut)
	assert.Equal(t, "finished report", *stored.WorkDone)
}
