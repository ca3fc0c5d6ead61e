// internals/features/employee/model/profile_model.go
package model

import (
	"time"

	"github.com/google/uuid"

	"absenku_backend/internals/constants"
)

type ProfileRole string

const (
	ProfileRoleAdmin    ProfileRole = ProfileRole(constants.RoleAdmin)
	ProfileRoleEmployee ProfileRole = ProfileRole(constants.RoleEmployee)
)

type ProfileModel struct {
	// PK (matches the auth user id)
	ID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:id" json:"id"`

	// External employee code, assigned later by an admin (nullable)
	EmployeeID *string `gorm:"type:text;column:employee_id" json:"employee_id,omitempty"`

	Name  string `gorm:"type:text;not null;column:name" json:"name"`
	Email string `gorm:"type:text;not null;uniqueIndex:uq_profiles_email;column:email" json:"email"`

	Role ProfileRole `gorm:"type:varchar(16);not null;default:employee;column:role" json:"role"`

	// Credential hash lives here because provisioning happens in this service;
	// token issuance stays external.
	PasswordHash string `gorm:"type:text;not null;column:password_hash" json:"-"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (ProfileModel) TableName() string {
	return "profiles"
}
