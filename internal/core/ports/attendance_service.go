package ports

import (
	"context"
	"time"

	"github.com/staffroom/attendance-system/internal/core/domain"
)

// CreateAttendanceInput carries the fields for id-based record creation.
// A zero Date defaults to the current time.
type CreateAttendanceInput struct {
	EmployeeID string
	TeamID     string
	Date       time.Time
	Status     domain.AttendanceStatus
	Type       domain.AttendanceType
}

// UpdateAttendanceInput is a partial update: nil fields keep prior values.
type UpdateAttendanceInput struct {
	Status *domain.AttendanceStatus
	Type   *domain.AttendanceType
}

// AttendanceWithEmployee is a record with the employee's name attached.
type AttendanceWithEmployee struct {
	domain.Attendance
	Employee EmployeeRef `json:"employee"`
}

// AttendanceWithTeam is a record with the team expanded.
type AttendanceWithTeam struct {
	domain.Attendance
	Team *domain.Team `json:"team"`
}

// AttendanceSummary is a record with both references expanded.
type AttendanceSummary struct {
	domain.Attendance
	Employee *EmployeeRef `json:"employee"`
	Team     *domain.Team `json:"team"`
}

// AttendanceService creates, reads, updates, and deletes daily attendance
// records with per-day uniqueness and referential validity enforced.
type AttendanceService interface {
	Create(ctx context.Context, in CreateAttendanceInput) (*domain.Attendance, error)
	// CreateByEmail resolves the employee by email and the team via the
	// two-pass resolver before creating the record.
	CreateByEmail(ctx context.Context, email string, date time.Time, status domain.AttendanceStatus, typ domain.AttendanceType) (*domain.Attendance, error)
	Get(ctx context.Context, employeeID, teamID string, date time.Time) (*domain.Attendance, error)
	Update(ctx context.Context, attendanceID string, in UpdateAttendanceInput) (*domain.Attendance, error)
	// TeamSummary resolves the team managed by the given employee (equality
	// scan) and returns its records with employee names attached.
	TeamSummary(ctx context.Context, managerEmployeeID string) ([]AttendanceWithEmployee, error)
	// EmployeeSummary returns the employee's raw records, failing with
	// domain.ErrNoAttendanceRecords when there are none.
	EmployeeSummary(ctx context.Context, employeeID string) ([]domain.Attendance, error)
	MyAttendance(ctx context.Context, employeeID string) ([]AttendanceWithTeam, error)
	AllSummary(ctx context.Context) ([]AttendanceSummary, error)
	DeleteByEmail(ctx context.Context, email string, date time.Time) error
}
