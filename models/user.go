package models

import (
	"strings"
	"time"
)

// User roles. Faculty and students hold inherent filing rights; staff need
// explicit capabilities; admin bypasses capability checks but not vice versa.
const (
	RoleAdmin   = "admin"
	RoleStaff   = "staff"
	RoleFaculty = "faculty"
	RoleStudent = "student"
)

// IsAdminRole is the single place the admin role comparison lives.
// Call sites must not re-implement the string compare.
func IsAdminRole(role string) bool {
	return strings.EqualFold(strings.TrimSpace(role), RoleAdmin)
}

// UserProfile carries the slice of the user record this service owns: display
// info plus the denormalized primary-unit pointers, one per grant kind. The
// pointers are maintained transactionally by the grant store; authentication
// and the rest of the profile live in the accounts service.
type UserProfile struct {
	ID                   string    `gorm:"column:id;primaryKey" json:"id"`
	DisplayName          string    `gorm:"column:display_name" json:"display_name"`
	Role                 string    `gorm:"column:role" json:"role"`
	PrimarySchoolDeptID  *string   `gorm:"column:primary_school_dept_id" json:"primary_school_dept_id,omitempty"`
	PrimaryCentralDeptID *string   `gorm:"column:primary_central_dept_id" json:"primary_central_dept_id,omitempty"`
	CreatedAt            time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt            time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (UserProfile) TableName() string { return "user_profiles" }
