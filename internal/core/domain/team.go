package domain

import "errors"

var (
	ErrTeamNotFound       = errors.New("team not found")
	ErrNoTeams            = errors.New("no teams found")
	ErrDuplicateTeam      = errors.New("team with this name already exists")
	ErrManagerAssigned    = errors.New("this team already has a manager")
	ErrInvalidMember      = errors.New("employee not valid or not found")
	ErrInvalidManager     = errors.New("manager not found or not valid")
	ErrEmployeeNotInTeams = errors.New("employee is not assigned to any team")
)

// Team groups employees under a department with one optional manager.
// Members hold non-owning references to Employee ids; deleting an employee
// does not cascade here.
type Team struct {
	ID         string   `json:"_id" bson:"_id,omitempty"`
	Name       string   `json:"name" bson:"name"`
	Department string   `json:"department" bson:"department"`
	ManagerID  string   `json:"manager,omitempty" bson:"manager,omitempty"`
	MemberIDs  []string `json:"members" bson:"members"`
}

// HasMember reports whether the employee id is in the member set.
func (t *Team) HasMember(employeeID string) bool {
	for _, id := range t.MemberIDs {
		if id == employeeID {
			return true
		}
	}
	return false
}
