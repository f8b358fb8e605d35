package ports

import (
	"context"

	"github.com/staffroom/attendance-system/internal/core/domain"
)

// EmployeeRef is the populated (name, designation) view of a referenced employee.
type EmployeeRef struct {
	ID          string             `json:"_id"`
	Name        string             `json:"name"`
	Designation domain.Designation `json:"designation,omitempty"`
}

// PopulatedTeam is a team with member and manager references expanded.
type PopulatedTeam struct {
	ID         string        `json:"_id"`
	Name       string        `json:"name"`
	Department string        `json:"department"`
	Manager    *EmployeeRef  `json:"manager,omitempty"`
	Members    []EmployeeRef `json:"members"`
}

// TeamService covers team CRUD, membership management, and team resolution.
type TeamService interface {
	CreateTeam(ctx context.Context, actor *domain.Employee, name, department string) (*domain.Team, error)
	AddMember(ctx context.Context, teamID, employeeID string) (*domain.Team, error)
	AddManager(ctx context.Context, teamID, managerID string) (*domain.Team, error)
	ListTeams(ctx context.Context) ([]domain.Team, error)
	ListTeamsPopulated(ctx context.Context) ([]PopulatedTeam, error)
	// TeamEmployees returns the member-designation employees of the named
	// team. Member-designation actors may only inspect their own team.
	TeamEmployees(ctx context.Context, actor *domain.Employee, teamName string) (*domain.Team, []EmployeeRef, error)
	// TeamManager returns the manager of the named team, nil when unassigned.
	TeamManager(ctx context.Context, actor *domain.Employee, teamName string) (*EmployeeRef, error)
	DeleteTeam(ctx context.Context, actor *domain.Employee, teamName string) (*domain.Team, error)
	// TeamsForEmail lists every team whose member set contains the employee
	// resolved by email.
	TeamsForEmail(ctx context.Context, email string) ([]domain.Team, error)

	// ResolveTeamForEmployee runs the two-pass resolution: first team whose
	// member set contains the id, otherwise the first team with any manager
	// assigned, otherwise domain.ErrTeamNotFound.
	ResolveTeamForEmployee(ctx context.Context, employeeID string) (*domain.Team, error)
	// FindTeamByManager returns the team whose manager equals the id.
	FindTeamByManager(ctx context.Context, managerID string) (*domain.Team, error)
}
