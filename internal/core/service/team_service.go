package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/staffroom/attendance-system/internal/core/domain"
	"github.com/staffroom/attendance-system/internal/core/ports"
)

// TeamService handles team CRUD, membership management, and the team
// resolution used by the attendance workflow.
type TeamService struct {
	teams     ports.TeamRepository
	employees ports.EmployeeRepository
	log       zerolog.Logger
}

func NewTeamService(teams ports.TeamRepository, employees ports.EmployeeRepository, log zerolog.Logger) *TeamService {
	return &TeamService{teams: teams, employees: employees, log: log}
}

func (s *TeamService) CreateTeam(ctx context.Context, actor *domain.Employee, name, department string) (*domain.Team, error) {
	if actor == nil || !actor.Designation.In([]domain.Designation{domain.DesignationAdmin, domain.DesignationHR}) {
		return nil, fmt.Errorf("%w: only Admin or HR can create teams", domain.ErrForbidden)
	}

	existing, err := s.teams.FindByNameAndDepartment(ctx, name, department)
	if err != nil && !errors.Is(err, domain.ErrTeamNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicateTeam
	}

	team, err := s.teams.Create(ctx, &domain.Team{Name: name, Department: department, MemberIDs: []string{}})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("team_id", team.ID).Str("name", name).Str("department", department).Msg("team created")
	return team, nil
}

// AddMember attaches an employee to a team. Only member-eligible designations
// (Developer, Lead Developer, QA, Tech Support, UX/UI Designer) may join.
func (s *TeamService) AddMember(ctx context.Context, teamID, employeeID string) (*domain.Team, error) {
	employee, err := s.employees.FindByID(ctx, employeeID)
	if err != nil || !employee.Designation.In(domain.MemberDesignations) {
		return nil, domain.ErrInvalidMember
	}

	team, err := s.teams.AddMember(ctx, teamID, employeeID)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("team_id", teamID).Str("employee_id", employeeID).Msg("employee added to team")
	return team, nil
}

// AddManager assigns a manager to a team. A team has at most one manager;
// reassignment is rejected.
func (s *TeamService) AddManager(ctx context.Context, teamID, managerID string) (*domain.Team, error) {
	manager, err := s.employees.FindByID(ctx, managerID)
	if err != nil || !manager.Designation.In(domain.ManagerDesignations) {
		return nil, domain.ErrInvalidManager
	}

	team, err := s.teams.FindByID(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if team.ManagerID != "" {
		return nil, domain.ErrManagerAssigned
	}

	updated, err := s.teams.SetManager(ctx, teamID, managerID)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("team_id", teamID).Str("manager_id", managerID).Msg("manager assigned")
	return updated, nil
}

func (s *TeamService) ListTeams(ctx context.Context) ([]domain.Team, error) {
	teams, err := s.teams.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(teams) == 0 {
		return nil, domain.ErrNoTeams
	}
	return teams, nil
}

// ListTeamsPopulated expands member and manager references to names and
// designations.
func (s *TeamService) ListTeamsPopulated(ctx context.Context) ([]ports.PopulatedTeam, error) {
	teams, err := s.ListTeams(ctx)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(teams)*4)
	for _, t := range teams {
		ids = append(ids, t.MemberIDs...)
		if t.ManagerID != "" {
			ids = append(ids, t.ManagerID)
		}
	}

	refs, err := s.employeeRefs(ctx, ids)
	if err != nil {
		return nil, err
	}

	populated := make([]ports.PopulatedTeam, 0, len(teams))
	for _, t := range teams {
		pt := ports.PopulatedTeam{
			ID:         t.ID,
			Name:       t.Name,
			Department: t.Department,
			Members:    make([]ports.EmployeeRef, 0, len(t.MemberIDs)),
		}
		if ref, ok := refs[t.ManagerID]; ok {
			m := ref
			pt.Manager = &m
		}
		for _, id := range t.MemberIDs {
			if ref, ok := refs[id]; ok {
				pt.Members = append(pt.Members, ref)
			}
		}
		populated = append(populated, pt)
	}
	return populated, nil
}

// TeamEmployees returns the member-designation employees of the named team.
// Actors holding a member designation may only inspect their own team.
func (s *TeamService) TeamEmployees(ctx context.Context, actor *domain.Employee, teamName string) (*domain.Team, []ports.EmployeeRef, error) {
	team, err := s.teams.FindByName(ctx, teamName)
	if err != nil {
		return nil, nil, err
	}

	if actor.Designation.In(domain.MemberDesignations) && !team.HasMember(actor.ID) {
		return nil, nil, fmt.Errorf("%w: you can only view members of your own team", domain.ErrForbidden)
	}

	members, err := s.employees.FindByIDs(ctx, team.MemberIDs)
	if err != nil {
		return nil, nil, err
	}

	refs := make([]ports.EmployeeRef, 0, len(members))
	for _, m := range members {
		if !m.Designation.In(domain.MemberDesignations) {
			continue
		}
		refs = append(refs, ports.EmployeeRef{ID: m.ID, Name: m.Name})
	}
	return team, refs, nil
}

// TeamManager returns the manager of the named team, or nil when unassigned.
func (s *TeamService) TeamManager(ctx context.Context, actor *domain.Employee, teamName string) (*ports.EmployeeRef, error) {
	team, err := s.teams.FindByName(ctx, teamName)
	if err != nil {
		return nil, err
	}

	if actor.Designation.In(domain.MemberDesignations) && !team.HasMember(actor.ID) {
		return nil, fmt.Errorf("%w: you can only view your own team manager", domain.ErrForbidden)
	}

	if team.ManagerID == "" {
		return nil, nil
	}
	manager, err := s.employees.FindByID(ctx, team.ManagerID)
	if err != nil {
		if errors.Is(err, domain.ErrEmployeeNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &ports.EmployeeRef{ID: manager.ID, Name: manager.Name, Designation: manager.Designation}, nil
}

func (s *TeamService) DeleteTeam(ctx context.Context, actor *domain.Employee, teamName string) (*domain.Team, error) {
	if !actor.Designation.In([]domain.Designation{domain.DesignationAdmin, domain.DesignationHR}) {
		return nil, fmt.Errorf("%w: only Admin or HR can delete a team", domain.ErrForbidden)
	}

	if _, err := s.teams.FindByName(ctx, teamName); err != nil {
		return nil, err
	}

	deleted, err := s.teams.DeleteByName(ctx, teamName)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("team_id", deleted.ID).Str("name", teamName).Str("deleted_by", actor.ID).Msg("team deleted")
	return deleted, nil
}

// TeamsForEmail lists every team whose member set contains the employee
// resolved by email.
func (s *TeamService) TeamsForEmail(ctx context.Context, email string) ([]domain.Team, error) {
	employee, err := s.employees.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	teams, err := s.teams.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	var assigned []domain.Team
	for _, t := range teams {
		if t.HasMember(employee.ID) {
			assigned = append(assigned, t)
		}
	}
	if len(assigned) == 0 {
		return nil, domain.ErrEmployeeNotInTeams
	}
	return assigned, nil
}

// ResolveTeamForEmployee finds the team an employee participates in. The scan
// is order-dependent: the membership pass always wins over the managership
// pass. The second pass selects the first team with any manager assigned,
// regardless of whether that manager is the queried employee. That matches
// the behavior callers depend on, even though it looks like it should compare
// the manager id against the employee.
func (s *TeamService) ResolveTeamForEmployee(ctx context.Context, employeeID string) (*domain.Team, error) {
	teams, err := s.teams.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	for i := range teams {
		if teams[i].HasMember(employeeID) {
			return &teams[i], nil
		}
	}

	for i := range teams {
		if teams[i].ManagerID != "" {
			return &teams[i], nil
		}
	}

	return nil, domain.ErrTeamNotFound
}

// FindTeamByManager returns the team whose manager reference equals the given
// id, scanning in storage order.
func (s *TeamService) FindTeamByManager(ctx context.Context, managerID string) (*domain.Team, error) {
	teams, err := s.teams.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	for i := range teams {
		if teams[i].ManagerID != "" && teams[i].ManagerID == managerID {
			return &teams[i], nil
		}
	}
	return nil, domain.ErrTeamNotFound
}

func (s *TeamService) employeeRefs(ctx context.Context, ids []string) (map[string]ports.EmployeeRef, error) {
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
