// internals/features/employee/dto/employee_dto.go
package dto

import (
	"strings"

	profileModel "absenku_backend/internals/features/employee/model"
)

/* =========================================================
   CREATE DTO
   ========================================================= */

type CreateEmployeeRequest struct {
	EmployeeID *string `json:"employee_id" validate:"omitempty,max=32"`
	Name       string  `json:"name" validate:"required,max=120"`
	Email      string  `json:"email" validate:"required,email,max=120"`
	Password   string  `json:"password" validate:"required,min=6"`
	Role       string  `json:"role" validate:"omitempty,oneof=admin employee"`
}

// ToModel: DTO → model (password hashed by the controller)
func (in *CreateEmployeeRequest) ToModel(passwordHash string) *profileModel.ProfileModel {
	role := profileModel.ProfileRoleEmployee
	if in.Role == string(profileModel.ProfileRoleAdmin) {
		role = profileModel.ProfileRoleAdmin
	}
	return &profileModel.ProfileModel{
		EmployeeID:   trimPtr(in.EmployeeID),
		Name:         strings.TrimSpace(in.Name),
		Email:        strings.ToLower(strings.TrimSpace(in.Email)),
		Role:         role,
		PasswordHash: passwordHash,
	}
}

/* =========================================================
   ASSIGN / EDIT EMPLOYEE ID
   ========================================================= */

type AssignEmployeeIDRequest struct {
	EmployeeID string `json:"employee_id" validate:"required,max=32"`
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
