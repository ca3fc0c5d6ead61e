// file: internals/route/index.go
package routes

import (
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"absenku_backend/internals/constants"
	attendanceController "absenku_backend/internals/features/attendance/controller"
	attendanceRoute "absenku_backend/internals/features/attendance/route"
	"absenku_backend/internals/features/attendance/service"
	"absenku_backend/internals/features/attendance/view"
	employeeController "absenku_backend/internals/features/employee/controller"
	employeeRepository "absenku_backend/internals/features/employee/repository"
	employeeRoute "absenku_backend/internals/features/employee/route"
	authMW "absenku_backend/internals/middlewares/auth"
)

var startTime time.Time

// Deps carries the long-lived pieces main.go owns: the DB pool, the
// store-backed service (already attached to the live admin view) and the
// admin view itself.
type Deps struct {
	DB        *gorm.DB
	Service   *service.AttendanceService
	AdminView *view.View
}

func SetupRoutes(app *fiber.App, d Deps) {
	startTime = time.Now()

	attendanceCtl := attendanceController.NewAttendanceController(d.Service, d.AdminView)
	employeeCtl := employeeController.NewEmployeeController(employeeRepository.NewGormProfileStore(d.DB))

	// ===================== PRIVATE (EMPLOYEE) =====================
	log.Println("[INFO] Setting up PRIVATE group...")
	private := app.Group("/api/u",
		authMW.AuthJWT(authMW.AuthJWTOpts{
			Secret:              os.Getenv("JWT_SECRET"),
			AllowCookieFallback: true,
		}),
	)
	attendanceRoute.AttendanceUserRoutes(private, attendanceCtl)

	// ===================== ADMIN =====================
	log.Println("[INFO] Setting up ADMIN group (Auth + RoleCheck)...")
	admin := app.Group("/api/a",
		authMW.AuthJWT(authMW.AuthJWTOpts{
			Secret:              os.Getenv("JWT_SECRET"),
			AllowCookieFallback: true,
		}),
		authMW.RequireRole(constants.RoleAdmin),
	)
	attendanceRoute.AttendanceAdminRoutes(admin, attendanceCtl)
	employeeRoute.EmployeeAdminRoutes(admin, employeeCtl)
}
