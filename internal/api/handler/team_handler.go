package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/staffroom/attendance-system/internal/api/middleware"
	"github.com/staffroom/attendance-system/internal/core/ports"
)

// TeamHandler handles team CRUD and membership routes.
type TeamHandler struct {
	service ports.TeamService
}

func NewTeamHandler(service ports.TeamService) *TeamHandler {
	return &TeamHandler{service: service}
}

type createTeamRequest struct {
	TeamName   string `json:"teamName"`
	Department string `json:"department"`
}

type addEmployeeRequest struct {
	TeamID     string `json:"teamId" validate:"required"`
	EmployeeID string `json:"employeeId" validate:"required"`
}

type addManagerRequest struct {
	TeamID    string `json:"teamId" validate:"required"`
	ManagerID string `json:"managerId" validate:"required"`
}

type deleteTeamRequest struct {
	DeleteTeam string `json:"deleteTeam" validate:"required"`
}

// Create makes a new team. Name+department pairs must be unique.
func (h *TeamHandler) Create(c echo.Context) error {
	var req createTeamRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if req.TeamName == "" || req.Department == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "please provide team name and department")
	}

	team, err := h.service.CreateTeam(c.Request().Context(), middleware.Identity(c), req.TeamName, req.Department)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, successMsg("team created successfully", team))
}

// AddEmployee attaches an employee to a team's member set.
func (h *TeamHandler) AddEmployee(c echo.Context) error {
	var req addEmployeeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	team, err := h.service.AddMember(c.Request().Context(), req.TeamID, req.EmployeeID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, successMsg("employee added to the team successfully", team))
}

// AddManager assigns a team's single manager slot.
func (h *TeamHandler) AddManager(c echo.Context) error {
	var req addManagerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	team, err := h.service.AddManager(c.Request().Context(), req.TeamID, req.ManagerID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, successMsg("manager assigned successfully", team))
}

// List returns all teams without reference expansion.
func (h *TeamHandler) List(c echo.Context) error {
	teams, err := h.service.ListTeams(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, successMsg("department teams fetched successfully", teams))
}

// ListPopulated returns all teams with members and manager expanded.
func (h *TeamHandler) ListPopulated(c echo.Context) error {
	teams, err := h.service.ListTeamsPopulated(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, successMsg("all teams fetched successfully", teams))
}

// Employees returns the members of the named team.
func (h *TeamHandler) Employees(c echo.Context) error {
	teamName := c.QueryParam("teamName")
	if teamName == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "teamname is required")
	}

	team, members, err := h.service.TeamEmployees(c.Request().Context(), middleware.Identity(c), teamName)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{
		"status":   "success",
		"teamName": team.Name,
		"members":  members,
	})
}

// Manager returns the manager of the named team.
func (h *TeamHandler) Manager(c echo.Context) error {
	teamName := c.QueryParam("teamName")
	if teamName == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "teamname is required")
	}

	manager, err := h.service.TeamManager(c.Request().Context(), middleware.Identity(c), teamName)
	if err != nil {
		return err
	}

	resp := map[string]any{"status": "success"}
	if manager != nil {
		resp["manager"] = manager
	} else {
		resp["manager"] = "No manager assigned"
	}
	return c.JSON(http.StatusOK, resp)
}

// IsEmployeeAssigned lists the teams containing the employee resolved by email.
func (h *TeamHandler) IsEmployeeAssigned(c echo.Context) error {
	email := c.QueryParam("email")
	if email == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "email is required")
	}

	teams, err := h.service.TeamsForEmail(c.Request().Context(), email)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, successMsg("employee is assigned to the following teams", teams))
}

// Delete removes a team by name lookup.
func (h *TeamHandler) Delete(c echo.Context) error {
	var req deleteTeamRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	deleted, err := h.service.DeleteTeam(c.Request().Context(), middleware.Identity(c), req.DeleteTeam)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusAccepted, successMsg("team deleted successfully", deleted))
}
