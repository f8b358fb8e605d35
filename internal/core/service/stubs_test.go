package service

import (
	"context"
	"fmt"
	"time"

	"github.com/staffroom/attendance-system/internal/core/domain"
	"github.com/staffroom/attendance-system/internal/core/ports"
)

// --- employee repository stub ---

type stubEmployeeRepo struct {
	employees map[string]*domain.Employee
	nextID    int
}

func newStubEmployeeRepo() *stubEmployeeRepo {
	return &stubEmployeeRepo{employees: make(map[string]*domain.Employee)}
}

func cloneEmployee(e *domain.Employee) *domain.Employee {
	if e == nil {
		return nil
	}
	clone := *e
	return &clone
}

func (r *stubEmployeeRepo) Create(_ context.Context, e *domain.Employee) (*domain.Employee, error) {
	for _, existing := range r.employees {
		if existing.Email == e.Email {
			return nil, domain.ErrEmailTaken
		}
	}
	r.nextID++
	copy := cloneEmployee(e)
	copy.ID = fmt.Sprintf("emp-%d", r.nextID)
	r.employees[copy.ID] = cloneEmployee(copy)
	return cloneEmployee(copy), nil
}

func (r *stubEmployeeRepo) FindByID(_ context.Context, id string) (*domain.Employee, error) {
	e, ok := r.employees[id]
	if !ok {
		return nil, domain.ErrEmployeeNotFound
	}
	return cloneEmployee(e), nil
}

func (r *stubEmployeeRepo) FindByEmail(_ context.Context, email string) (*domain.Employee, error) {
	for _, e := range r.employees {
		if e.Email == email {
			return cloneEmployee(e), nil
		}
	}
	return nil, domain.ErrEmployeeNotFound
}

func (r *stubEmployeeRepo) FindAll(_ context.Context) ([]domain.Employee, error) {
	out := make([]domain.Employee, 0, len(r.employees))
	for _, e := range r.employees {
		out = append(out, *e)
	}
	return out, nil
}

func (r *stubEmployeeRepo) FindByIDs(_ context.Context, ids []string) ([]domain.Employee, error) {
	var out []domain.Employee
	for _, id := range ids {
		if e, ok := r.employees[id]; ok {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (r *stubEmployeeRepo) Update(_ context.Context, id string, upd ports.EmployeeUpdate) (*domain.Employee, error) {
	e, ok := r.employees[id]
	if !ok {
		return nil, domain.ErrEmployeeNotFound
	}
	if upd.Name != nil {
		e.Name = *upd.Name
	}
	if upd.Email != nil {
		e.Email = *upd.Email
	}
	if upd.Department != nil {
		e.Department = *upd.Department
	}
	if upd.JoiningDate != nil {
		e.JoiningDate = *upd.JoiningDate
	}
	if upd.Designation != nil {
		e.Designation = *upd.Designation
	}
	return cloneEmployee(e), nil
}

func (r *stubEmployeeRepo) UpdatePassword(_ context.Context, id, hash string, changedAt time.Time) error {
	e, ok := r.employees[id]
	if !ok {
		return domain.ErrEmployeeNotFound
	}
	e.PasswordHash = hash
	e.PasswordChangedAt = changedAt
	return nil
}

func (r *stubEmployeeRepo) SetLastLogin(_ context.Context, id string, at time.Time) error {
	if e, ok := r.employees[id]; ok {
		e.LastLogin = at
	}
	return nil
}

func (r *stubEmployeeRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.employees[id]; !ok {
		return domain.ErrEmployeeNotFound
	}
	delete(r.employees, id)
	return nil
}

// --- team repository stub (preserves storage order) ---

type stubTeamRepo struct {
	teams  []*domain.Team
	nextID int
}

func newStubTeamRepo() *stubTeamRepo {
	return &stubTeamRepo{}
}

func cloneTeam(t *domain.Team) *domain.Team {
	if t == nil {
		return nil
	}
	clone := *t
	clone.MemberIDs = append([]string(nil), t.MemberIDs...)
	return &clone
}

func (r *stubTeamRepo) Create(_ context.Context, t *domain.Team) (*domain.Team, error) {
	r.nextID++
	copy := cloneTeam(t)
	copy.ID = fmt.Sprintf("team-%d", r.nextID)
	r.teams = append(r.teams, cloneTeam(copy))
	return cloneTeam(copy), nil
}

func (r *stubTeamRepo) FindByID(_ context.Context, id string) (*domain.Team, error) {
	for _, t := range r.teams {
		if t.ID == id {
			return cloneTeam(t), nil
		}
	}
	return nil, domain.ErrTeamNotFound
}

func (r *stubTeamRepo) FindByName(_ context.Context, name string) (*domain.Team, error) {
	for _, t := range r.teams {
		if t.Name == name {
			return cloneTeam(t), nil
		}
	}
	return nil, domain.ErrTeamNotFound
}

func (r *stubTeamRepo) FindByNameAndDepartment(_ context.Context, name, department string) (*domain.Team, error) {
	for _, t := range r.teams {
		if t.Name == name && t.Department == department {
			return cloneTeam(t), nil
		}
	}
	return nil, domain.ErrTeamNotFound
}

func (r *stubTeamRepo) FindAll(_ context.Context) ([]domain.Team, error) {
	out := make([]domain.Team, 0, len(r.teams))
	for _, t := range r.teams {
		out = append(out, *cloneTeam(t))
	}
	return out, nil
}

func (r *stubTeamRepo) AddMember(_ context.Context, teamID, employeeID string) (*domain.Team, error) {
	for _, t := range r.teams {
		if t.ID == teamID {
			if !t.HasMember(employeeID) {
				t.MemberIDs = append(t.MemberIDs, employeeID)
			}
			return cloneTeam(t), nil
		}
	}
	return nil, domain.ErrTeamNotFound
}

func (r *stubTeamRepo) SetManager(_ context.Context, teamID, managerID string) (*domain.Team, error) {
	for _, t := range r.teams {
		if t.ID == teamID {
			t.ManagerID = managerID
			return cloneTeam(t), nil
		}
	}
	return nil, domain.ErrTeamNotFound
}

func (r *stubTeamRepo) DeleteByName(_ context.Context, name string) (*domain.Team, error) {
	for i, t := range r.teams {
		if t.Name == name {
			r.teams = append(r.teams[:i], r.teams[i+1:]...)
			return cloneTeam(t), nil
		}
	}
	return nil, domain.ErrTeamNotFound
}

// --- attendance repository stub (preserves storage order) ---

type stubAttendanceRepo struct {
	records []*domain.Attendance
	nextID  int
}

func newStubAttendanceRepo() *stubAttendanceRepo {
	return &stubAttendanceRepo{}
}

func cloneAttendance(a *domain.Attendance) *domain.Attendance {
	if a == nil {
		return nil
	}
	clone := *a
	return &clone
}

func (r *stubAttendanceRepo) Create(_ context.Context, a *domain.Attendance) (*domain.Attendance, error) {
	for _, existing := range r.records {
		if existing.EmployeeID == a.EmployeeID && existing.Date.Equal(a.Date) {
			return nil, domain.ErrDuplicateAttendance
		}
	}
	r.nextID++
	copy := cloneAttendance(a)
	copy.ID = fmt.Sprintf("att-%d", r.nextID)
	r.records = append(r.records, cloneAttendance(copy))
	return cloneAttendance(copy), nil
}

func (r *stubAttendanceRepo) FindByID(_ context.Context, id string) (*domain.Attendance, error) {
	for _, a := range r.records {
		if a.ID == id {
			return cloneAttendance(a), nil
		}
	}
	return nil, domain.ErrAttendanceNotFound
}

func (r *stubAttendanceRepo) FindOne(_ context.Context, employeeID, teamID string, date time.Time) (*domain.Attendance, error) {
	for _, a := range r.records {
		if a.EmployeeID == employeeID && a.TeamID == teamID && a.Date.Equal(date) {
			return cloneAttendance(a), nil
		}
	}
	return nil, domain.ErrAttendanceNotFound
}

func (r *stubAttendanceRepo) FindByEmployee(_ context.Context, employeeID string) ([]domain.Attendance, error) {
	var out []domain.Attendance
	for _, a := range r.records {
		if a.EmployeeID == employeeID {
			out = append(out, *cloneAttendance(a))
		}
	}
	return out, nil
}

func (r *stubAttendanceRepo) FindByTeam(_ context.Context, teamID string) ([]domain.Attendance, error) {
	var out []domain.Attendance
	for _, a := range r.records {
		if a.TeamID == teamID {
			out = append(out, *cloneAttendance(a))
		}
	}
	return out, nil
}

func (r *stubAttendanceRepo) FindAll(_ context.Context) ([]domain.Attendance, error) {
	out := make([]domain.Attendance, 0, len(r.records))
	for _, a := range r.records {
		out = append(out, *cloneAttendance(a))
	}
	return out, nil
}

func (r *stubAttendanceRepo) FindByEmployeeInWindow(_ context.Context, employeeID string, start, end time.Time) (*domain.Attendance, error) {
	for _, a := range r.records {
		if a.EmployeeID == employeeID && !a.Date.Before(start) && !a.Date.After(end) {
			return cloneAttendance(a), nil
		}
	}
	return nil, domain.ErrAttendanceNotFound
}

func (r *stubAttendanceRepo) Update(_ context.Context, upd *domain.Attendance) error {
	for _, a := range r.records {
		if a.ID == upd.ID {
			*a = *cloneAttendance(upd)
			return nil
		}
	}
	return domain.ErrAttendanceNotFound
}

func (r *stubAttendanceRepo) DeleteByEmployeeInWindow(_ context.Context, employeeID string, start, end time.Time) (int64, error) {
	for i, a := range r.records {
		if a.EmployeeID == employeeID && !a.Date.Before(start) && !a.Date.After(end) {
			r.records = append(r.records[:i], r.records[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}
