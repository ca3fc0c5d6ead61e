// internals/features/attendance/controller/attendance_controller.go
package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	attendanceDTO "absenku_backend/internals/features/attendance/dto"
	attendanceModel "absenku_backend/internals/features/attendance/model"
	"absenku_backend/internals/features/attendance/repository"
	"absenku_backend/internals/features/attendance/service"
	"absenku_backend/internals/features/attendance/view"
	helper "absenku_backend/internals/helpers"
	authMW "absenku_backend/internals/middlewares/auth"
)

type attendanceRecord = attendanceModel.AttendanceModel

type AttendanceController struct {
	Service   *service.AttendanceService
	AdminView *view.View
	Validator *validator.Validate
}

func NewAttendanceController(svc *service.AttendanceService, adminView *view.View) *AttendanceController {
	return &AttendanceController{
		Service:   svc,
		AdminView: adminView,
		Validator: validator.New(),
	}
}

// serviceErrorStatus maps the service taxonomy onto HTTP statuses.
func serviceErrorStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrWorkNoteRequired):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, service.ErrAlreadyCheckedIn),
		errors.Is(err, service.ErrAlreadyCheckedOut),
		errors.Is(err, service.ErrNotCheckedIn):
		return fiber.StatusConflict
	case errors.Is(err, repository.ErrRecordNotFound):
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}

// ===============================
// Handlers (employee)
// ===============================

// POST /api/u/attendance/check-in
func (ctl *AttendanceController) CheckIn(c *fiber.Ctx) error {
	userID, err := authMW.UserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	rec, err := ctl.Service.CheckIn(c.UserContext(), userID)
	if err != nil {
		return helper.JsonError(c, serviceErrorStatus(err), err.Error())
	}
	return helper.JsonCreated(c, "Check-in successful!", rec)
}

// POST /api/u/attendance/check-out
func (ctl *AttendanceController) CheckOut(c *fiber.Ctx) error {
	userID, err := authMW.UserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var req attendanceDTO.CheckOutRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid body")
	}
	req.Normalize()
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}

	// the record must belong to the caller; an unverifiable claim is
	// rejected, never waved through
	owned, err := ctl.Service.Store.FetchByID(c.UserContext(), req.AttendanceID, false)
	if err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Attendance record not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if owned.UserID != userID {
		return helper.JsonError(c, fiber.StatusForbidden, "Not your attendance record")
	}

	rec, err := ctl.Service.CheckOut(c.UserContext(), req.AttendanceID, req.WorkDone)
	if err != nil {
		return helper.JsonError(c, serviceErrorStatus(err), err.Error())
	}
	return helper.JsonUpdated(c, "Check-out successful!", rec)
}

// GET /api/u/attendance/today
func (ctl *AttendanceController) Today(c *fiber.Ctx) error {
	userID, err := authMW.UserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	rec, err := ctl.Service.TodayRecord(c.UserContext(), userID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "", attendanceDTO.TodayResponse{
		Date:   ctl.Service.Today().String(),
		State:  service.StateOf(rec).String(),
		Record: rec,
	})
}

// GET /api/u/attendance
func (ctl *AttendanceController) History(c *fiber.Ctx) error {
	userID, err := authMW.UserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	recs, err := ctl.Service.History(c.UserContext(), userID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	paging := helper.ResolvePaging(c, 20, 200)
	page, total := paginate(recs, paging)
	return helper.JsonList(c, "", page, helper.BuildPaginationFromOffset(total, paging.Offset, paging.Limit))
}

// ===============================
// Handlers (admin)
// ===============================

// GET /api/a/attendance — served from the live admin view when attached,
// straight from the store otherwise. The filtered list is recomputed from a
// fresh snapshot on every request.
func (ctl *AttendanceController) AdminList(c *fiber.Ctx) error {
	var q attendanceDTO.ListAttendanceQuery
	if err := c.QueryParser(&q); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid query")
	}
	if err := ctl.Validator.Struct(&q); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}

	records, err := ctl.snapshot(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	filtered := service.Filter{Date: q.Date, Email: q.Email}.Apply(records)

	paging := helper.ResolvePaging(c, 20, 200)
	page, total := paginate(filtered, paging)
	return helper.JsonList(c, "", page, helper.BuildPaginationFromOffset(total, paging.Offset, paging.Limit))
}

func (ctl *AttendanceController) snapshot(c *fiber.Ctx) ([]attendanceRecord, error) {
	if ctl.AdminView != nil {
		return ctl.AdminView.Cache.List(), nil
	}
	return ctl.Service.Store.ListAll(c.UserContext(), true)
}

func paginate(recs []attendanceRecord, p helper.Paging) ([]attendanceRecord, int64) {
	total := int64(len(recs))
	if p.Offset >= len(recs) {
		return []attendanceRecord{}, total
	}
	end := p.Offset + p.Limit
	if end > len(recs) {
		end = len(recs)
	}
	return recs[p.Offset:end], total
}
