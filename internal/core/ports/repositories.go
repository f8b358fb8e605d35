package ports

import (
	"context"
	"time"

	"github.com/staffroom/attendance-system/internal/core/domain"
)

// EmployeeUpdate is a partial profile update: nil fields keep prior values.
type EmployeeUpdate struct {
	Name        *string
	Email       *string
	Department  *string
	JoiningDate *time.Time
	Designation *domain.Designation
}

// EmployeeRepository persists employee accounts. Create and Update surface
// domain.ErrEmailTaken on a unique-email collision.
type EmployeeRepository interface {
	Create(ctx context.Context, e *domain.Employee) (*domain.Employee, error)
	FindByID(ctx context.Context, id string) (*domain.Employee, error)
	FindByEmail(ctx context.Context, email string) (*domain.Employee, error)
	FindAll(ctx context.Context) ([]domain.Employee, error)
	FindByIDs(ctx context.Context, ids []string) ([]domain.Employee, error)
	Update(ctx context.Context, id string, upd EmployeeUpdate) (*domain.Employee, error)
	UpdatePassword(ctx context.Context, id, passwordHash string, changedAt time.Time) error
	SetLastLogin(ctx context.Context, id string, at time.Time) error
	Delete(ctx context.Context, id string) error
}

// TeamRepository persists teams. FindAll preserves natural storage order,
// which the two-pass resolver depends on.
type TeamRepository interface {
	Create(ctx context.Context, t *domain.Team) (*domain.Team, error)
	FindByID(ctx context.Context, id string) (*domain.Team, error)
	FindByName(ctx context.Context, name string) (*domain.Team, error)
	FindByNameAndDepartment(ctx context.Context, name, department string) (*domain.Team, error)
	FindAll(ctx context.Context) ([]domain.Team, error)
	AddMember(ctx context.Context, teamID, employeeID string) (*domain.Team, error)
	SetManager(ctx context.Context, teamID, managerID string) (*domain.Team, error)
	DeleteByName(ctx context.Context, name string) (*domain.Team, error)
}

// AttendanceRepository persists daily attendance records.
type AttendanceRepository interface {
	Create(ctx context.Context, a *domain.Attendance) (*domain.Attendance, error)
	FindByID(ctx context.Context, id string) (*domain.Attendance, error)
	// FindOne matches on exact employee, team, and date equality.
	FindOne(ctx context.Context, employeeID, teamID string, date time.Time) (*domain.Attendance, error)
	FindByEmployee(ctx context.Context, employeeID string) ([]domain.Attendance, error)
	FindByTeam(ctx context.Context, teamID string) ([]domain.Attendance, error)
	FindAll(ctx context.Context) ([]domain.Attendance, error)
	// FindByEmployeeInWindow returns the first record whose date falls
	// inside [start, end].
	FindByEmployeeInWindow(ctx context.Context, employeeID string, start, end time.Time) (*domain.Attendance, error)
	Update(ctx context.Context, a *domain.Attendance) error
	// DeleteByEmployeeInWindow removes at most one record in the window and
	// reports how many were removed.
	DeleteByEmployeeInWindow(ctx context.Context, employeeID string, start, end time.Time) (int64, error)
}
