// internals/features/employee/controller/employee_controller.go
package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	employeeDTO "absenku_backend/internals/features/employee/dto"
	"absenku_backend/internals/features/employee/repository"
	helper "absenku_backend/internals/helpers"
)

type EmployeeController struct {
	Store     repository.ProfileStore
	Validator *validator.Validate
}

func NewEmployeeController(store repository.ProfileStore) *EmployeeController {
	return &EmployeeController{
		Store:     store,
		Validator: validator.New(),
	}
}

// POST /api/a/employees
func (ctl *EmployeeController) Create(c *fiber.Ctx) error {
	var req employeeDTO.CreateEmployeeRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid body")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	p := req.ToModel(string(hash))
	if err := ctl.Store.Create(c.UserContext(), p); err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			return helper.JsonError(c, fiber.StatusConflict, "Email already registered")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonCreated(c, "Employee created successfully!", p)
}

// GET /api/a/employees
func (ctl *EmployeeController) List(c *fiber.Ctx) error {
	out, err := ctl.Store.List(c.UserContext())
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "", out)
}

// PATCH /api/a/employees/:id/employee-id
func (ctl *EmployeeController) AssignEmployeeID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid profile id")
	}

	var req employeeDTO.AssignEmployeeIDRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid body")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}

	p, err := ctl.Store.UpdateEmployeeID(c.UserContext(), id, req.EmployeeID)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Profile not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonUpdated(c, "Employee ID updated successfully!", p)
}
