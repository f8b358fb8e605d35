package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/staffroom/attendance-system/internal/core/domain"
	"github.com/staffroom/attendance-system/internal/core/ports"
)

// TeamResolver locates the team an employee participates in. Satisfied by
// TeamService.
type TeamResolver interface {
	ResolveTeamForEmployee(ctx context.Context, employeeID string) (*domain.Team, error)
	FindTeamByManager(ctx context.Context, managerID string) (*domain.Team, error)
}

// AttendanceService enforces one record per (employee, calendar day) and
// referential validity over the attendance store.
type AttendanceService struct {
	records   ports.AttendanceRepository
	employees ports.EmployeeRepository
	teams     ports.TeamRepository
	resolver  TeamResolver
	log       zerolog.Logger
}

func NewAttendanceService(
	records ports.AttendanceRepository,
	employees ports.EmployeeRepository,
	teams ports.TeamRepository,
	resolver TeamResolver,
	log zerolog.Logger,
) *AttendanceService {
	return &AttendanceService{
		records:   records,
		employees: employees,
		teams:     teams,
		resolver:  resolver,
		log:       log,
	}
}

func (s *AttendanceService) Create(ctx context.Context, in ports.CreateAttendanceInput) (*domain.Attendance, error) {
	if !domain.ValidStatus(in.Status) {
		return nil, domain.ErrInvalidStatus
	}
	if in.Type == "" {
		in.Type = domain.TypeRegular
	}
	if !domain.ValidType(in.Type) {
		return nil, domain.ErrInvalidType
	}
	if in.Date.IsZero() {
		in.Date = time.Now()
	}

	if _, err := s.employees.FindByID(ctx, in.EmployeeID); err != nil {
		return nil, err
	}
	if _, err := s.teams.FindByID(ctx, in.TeamID); err != nil {
		return nil, err
	}

	// Day-window uniqueness check; the unique (employee, date) index backs
	// this up when two creates for the same day race.
	start, end := domain.DayBounds(in.Date)
	if _, err := s.records.FindByEmployeeInWindow(ctx, in.EmployeeID, start, end); err == nil {
		return nil, domain.ErrDuplicateAttendance
	} else if !errors.Is(err, domain.ErrAttendanceNotFound) {
		return nil, err
	}

	now := time.Now()
	record, err := s.records.Create(ctx, &domain.Attendance{
		EmployeeID: in.EmployeeID,
		TeamID:     in.TeamID,
		Date:       in.Date,
		Status:     in.Status,
		Type:       in.Type,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("employee_id", in.EmployeeID).
		Str("team_id", in.TeamID).
		Str("status", string(in.Status)).
		Msg("attendance recorded")

	return record, nil
}

// CreateByEmail resolves the employee by email and their team via the
// two-pass resolver, then creates the record.
func (s *AttendanceService) CreateByEmail(ctx context.Context, email string, date time.Time, status domain.AttendanceStatus, typ domain.AttendanceType) (*domain.Attendance, error) {
	employee, err := s.employees.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	team, err := s.resolver.ResolveTeamForEmployee(ctx, employee.ID)
	if err != nil {
		return nil, err
	}

	return s.Create(ctx, ports.CreateAttendanceInput{
		EmployeeID: employee.ID,
		TeamID:     team.ID,
		Date:       date,
		Status:     status,
		Type:       typ,
	})
}

// Get matches on exact employee+team+date equality.
func (s *AttendanceService) Get(ctx context.Context, employeeID, teamID string, date time.Time) (*domain.Attendance, error) {
	if _, err := s.employees.FindByID(ctx, employeeID); err != nil {
		return nil, err
	}
	if _, err := s.teams.FindByID(ctx, teamID); err != nil {
		return nil, err
	}
	return s.records.FindOne(ctx, employeeID, teamID, date)
}

// Update applies a partial update: omitted fields keep their prior values.
func (s *AttendanceService) Update(ctx context.Context, attendanceID string, in ports.UpdateAttendanceInput) (*domain.Attendance, error) {
	record, err := s.records.FindByID(ctx, attendanceID)
	if err != nil {
		return nil, err
	}

	if in.Status != nil {
		if !domain.ValidStatus(*in.Status) {
			return nil, domain.ErrInvalidStatus
		}
		record.Status = *in.Status
	}
	if in.Type != nil {
		if !domain.ValidType(*in.Type) {
			return nil, domain.ErrInvalidType
		}
		record.Type = *in.Type
	}
	record.UpdatedAt = time.Now()

	if err := s.records.Update(ctx, record); err != nil {
		return nil, err
	}

	s.log.Info().Str("attendance_id", attendanceID).Msg("attendance updated")
	return record, nil
}

// TeamSummary resolves the team managed by the given employee and returns its
// records with employee names attached. Unlike the two-pass resolver, this is
// a plain equality scan on the manager reference.
func (s *AttendanceService) TeamSummary(ctx context.Context, managerEmployeeID string) ([]ports.AttendanceWithEmployee, error) {
	team, err := s.resolver.FindTeamByManager(ctx, managerEmployeeID)
	if err != nil {
		return nil, err
	}

	records, err := s.records.FindByTeam(ctx, team.ID)
	if err != nil {
		return nil, err
	}

	refs, err := s.employeeRefsFor(ctx, records)
	if err != nil {
		return nil, err
	}

	summary := make([]ports.AttendanceWithEmployee, 0, len(records))
	for _, r := range records {
		entry := ports.AttendanceWithEmployee{Attendance: r}
		if ref, ok := refs[r.EmployeeID]; ok {
			entry.Employee = ports.EmployeeRef{ID: ref.ID, Name: ref.Name}
		}
		summary = append(summary, entry)
	}
	return summary, nil
}

// EmployeeSummary returns the raw records for one employee, failing when
// there are none.
func (s *AttendanceService) EmployeeSummary(ctx context.Context, employeeID string) ([]domain.Attendance, error) {
	if _, err := s.employees.FindByID(ctx, employeeID); err != nil {
		return nil, err
	}
	records, err := s.records.FindByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, domain.ErrNoAttendanceRecords
	}
	return records, nil
}

// MyAttendance returns the employee's records with team details attached, in
// storage order.
func (s *AttendanceService) MyAttendance(ctx context.Context, employeeID string) ([]ports.AttendanceWithTeam, error) {
	records, err := s.records.FindByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	teams := make(map[string]*domain.Team)
	out := make([]ports.AttendanceWithTeam, 0, len(records))
	for _, r := range records {
		entry := ports.AttendanceWithTeam{Attendance: r}
		team, ok := teams[r.TeamID]
		if !ok {
			team, err = s.teams.FindByID(ctx, r.TeamID)
			if err != nil && !errors.Is(err, domain.ErrTeamNotFound) {
				return nil, err
			}
			teams[r.TeamID] = team
		}
		entry.Team = team
		out = append(out, entry)
	}
	return out, nil
}

// AllSummary returns every record with employee and team details attached.
func (s *AttendanceService) AllSummary(ctx context.Context) ([]ports.AttendanceSummary, error) {
	records, err := s.records.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	refs, err := s.employeeRefsFor(ctx, records)
	if err != nil {
		return nil, err
	}

	teams := make(map[string]*domain.Team)
	out := make([]ports.AttendanceSummary, 0, len(records))
	for _, r := range records {
		entry := ports.AttendanceSummary{Attendance: r}
		if ref, ok := refs[r.EmployeeID]; ok {
			e := ref
			entry.Employee = &e
		}
		team, ok := teams[r.TeamID]
		if !ok {
			team, err = s.teams.FindByID(ctx, r.TeamID)
			if err != nil && !errors.Is(err, domain.ErrTeamNotFound) {
				return nil, err
			}
			teams[r.TeamID] = team
		}
		entry.Team = team
		out = append(out, entry)
	}
	return out, nil
}

// DeleteByEmail removes the single record matching (employee, calendar-day
// window of date). The team resolution runs for parity with creation but its
// result does not constrain the delete filter.
func (s *AttendanceService) DeleteByEmail(ctx context.Context, email string, date time.Time) error {
	employee, err := s.employees.FindByEmail(ctx, email)
	if err != nil {
		return err
	}

	if _, err := s.resolver.ResolveTeamForEmployee(ctx, employee.ID); err != nil {
		return err
	}

	if date.IsZero() {
		date = time.Now()
	}
	start, end := domain.DayBounds(date)

	deleted, err := s.records.DeleteByEmployeeInWindow(ctx, employee.ID, start, end)
	if err != nil {
		return err
	}

	s.log.Info().
		Str("employee_id", employee.ID).
		Time("day", start).
		Int64("deleted", deleted).
		Msg("attendance delete by email")
	return nil
}

func (s *AttendanceService) employeeRefsFor(ctx context.Context, records []domain.Attendance) (map[string]ports.EmployeeRef, error) {
	seen := make(map[string]struct{}, len(records))
	ids := make([]string, 0, len(records))
	for _, r := range records {
		if _, ok := seen[r.EmployeeID]; ok {
			continue
		}
		seen[r.EmployeeID] = struct{}{}
		ids = append(ids, r.EmployeeID)
	}

	employees, err := s.employees.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	refs := make(map[string]ports.EmployeeRef, len(employees))
	for _, e := range employees {
		refs[e.ID] = ports.EmployeeRef{ID: e.ID, Name: e.Name, Designation: e.Designation}
	}
	return refs, nil
}
