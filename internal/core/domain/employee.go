package domain

import (
	"errors"
	"time"
)

// Designation is the closed-set role label carried by every employee.
type Designation string

const (
	DesignationDeveloper       Designation = "Developer"
	DesignationLeadDeveloper   Designation = "Lead Developer"
	DesignationProjectManager  Designation = "Project Manager"
	DesignationHR              Designation = "HR"
	DesignationAdmin           Designation = "Admin"
	DesignationManager         Designation = "Manager"
	DesignationQA              Designation = "QA"
	DesignationTechSupport     Designation = "Tech Support"
	DesignationUXUIDesigner    Designation = "UX/UI Designer"
	DesignationSystemArchitect Designation = "System Architect"
	DesignationEmployee        Designation = "Employee"
)

// StaffDesignations is every designation allowed past staff-only routes.
// Plain "Employee" is deliberately absent.
var StaffDesignations = []Designation{
	DesignationDeveloper, DesignationLeadDeveloper, DesignationProjectManager,
	DesignationHR, DesignationAdmin, DesignationManager, DesignationQA,
	DesignationTechSupport, DesignationUXUIDesigner, DesignationSystemArchitect,
}

// MemberDesignations may be attached to a team as regular members.
var MemberDesignations = []Designation{
	DesignationDeveloper, DesignationLeadDeveloper, DesignationQA,
	DesignationTechSupport, DesignationUXUIDesigner,
}

// ManagerDesignations may be assigned as a team's manager.
var ManagerDesignations = []Designation{
	DesignationManager, DesignationProjectManager, DesignationLeadDeveloper,
}

// AssignableDesignations is the set accepted at account creation. "Employee"
// is included; "Admin" is rejected separately (never assignable via signup).
var AssignableDesignations = append([]Designation{DesignationEmployee}, StaffDesignations...)

// IsStaff reports whether d clears the staff threshold.
func (d Designation) IsStaff() bool {
	return d.In(StaffDesignations)
}

// In reports exact membership of d in the given set. Case-sensitive.
func (d Designation) In(set []Designation) bool {
	for _, s := range set {
		if d == s {
			return true
		}
	}
	return false
}

// Employment status values.
const (
	StatusActive   = "Active"
	StatusInactive = "Inactive"
)

var (
	ErrEmployeeNotFound   = errors.New("employee not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("incorrect email or password")
	ErrInvalidDesignation = errors.New("invalid role designation")
	ErrForbidden          = errors.New("access denied")
	ErrPasswordMismatch   = errors.New("password and confirm password do not match")
	ErrTooManyAttempts    = errors.New("too many failed login attempts")
)

// Employee is an account with credentials and a role designation.
type Employee struct {
	ID                string      `json:"_id" bson:"_id,omitempty"`
	Name              string      `json:"name" bson:"name"`
	Email             string      `json:"email" bson:"email"`
	PasswordHash      string      `json:"-" bson:"password"`
	EmployeeCode      string      `json:"employeeId,omitempty" bson:"employeeId,omitempty"`
	Department        string      `json:"department" bson:"department"`
	Designation       Designation `json:"designation" bson:"designation"`
	Status            string      `json:"status" bson:"status"`
	JoiningDate       time.Time   `json:"joiningDate" bson:"joiningDate"`
	LastLogin         time.Time   `json:"lastLogin,omitempty" bson:"lastLogin,omitempty"`
	PasswordChangedAt time.Time   `json:"-" bson:"passwordChangedAt,omitempty"`
	CreatedAt         time.Time   `json:"createdAt,omitempty" bson:"createdAt,omitempty"`
	UpdatedAt         time.Time   `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
}

// PasswordChangedAfter reports whether the stored credential changed after the
// given token-issuance time. Tokens minted before a password change are dead.
func (e *Employee) PasswordChangedAfter(issuedAt time.Time) bool {
	if e.PasswordChangedAt.IsZero() {
		return false
	}
	return e.PasswordChangedAt.Unix() > issuedAt.Unix()
}
