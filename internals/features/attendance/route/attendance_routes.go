// internals/features/attendance/route/attendance_routes.go
package route

import (
	"github.com/gofiber/fiber/v2"

	attendanceController "absenku_backend/internals/features/attendance/controller"
)

// AttendanceUserRoutes: employee-facing operations (subject from token)
func AttendanceUserRoutes(r fiber.Router, ctl *attendanceController.AttendanceController) {
	att := r.Group("/attendance")
	att.Post("/check-in", ctl.CheckIn)
	att.Post("/check-out", ctl.CheckOut)
	att.Get("/today", ctl.Today)
	att.Get("/", ctl.History)
}

// AttendanceAdminRoutes: live, filterable view over everyone's records
func AttendanceAdminRoutes(r fiber.Router, ctl *attendanceController.AttendanceController) {
	att := r.Group("/attendance")
	att.Get("/", ctl.AdminList)
}
