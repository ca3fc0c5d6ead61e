// internals/features/employee/route/employee_routes.go
package route

import (
	"github.com/gofiber/fiber/v2"

	employeeController "absenku_backend/internals/features/employee/controller"
)

// EmployeeAdminRoutes: provisioning and employee-id management
func EmployeeAdminRoutes(r fiber.Router, ctl *employeeController.EmployeeController) {
	emp := r.Group("/employees")
	emp.Post("/", ctl.Create)
	emp.Get("/", ctl.List)
	emp.Patch("/:id/employee-id", ctl.AssignEmployeeID)
}
