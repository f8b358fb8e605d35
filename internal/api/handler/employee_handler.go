package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/staffroom/attendance-system/internal/api/middleware"
	"github.com/staffroom/attendance-system/internal/core/domain"
	"github.com/staffroom/attendance-system/internal/core/ports"
)

// EmployeeHandler handles account listing, profile updates, and deletion.
type EmployeeHandler struct {
	service ports.EmployeeService
}

func NewEmployeeHandler(service ports.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{service: service}
}

type updateEmployeeRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Department  string `json:"department"`
	Designation string `json:"designation"`
	JoiningDate string `json:"joiningDate"`
}

// List returns employees. With an employeeId query parameter present the
// listing is unfiltered; otherwise Admin and HR rows are screened out.
func (h *EmployeeHandler) List(c echo.Context) error {
	unfiltered := c.QueryParam("employeeId") != ""

	employees, err := h.service.List(c.Request().Context(), unfiltered)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, success(employees))
}

// Update applies a partial profile update to the employee in the path.
func (h *EmployeeHandler) Update(c echo.Context) error {
	var req updateEmployeeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	upd := ports.EmployeeUpdate{}
	if req.Name != "" {
		upd.Name = &req.Name
	}
	if req.Email != "" {
		upd.Email = &req.Email
	}
	if req.Department != "" {
		upd.Department = &req.Department
	}
	if req.Designation != "" {
		d := domain.Designation(req.Designation)
		upd.Designation = &d
	}
	if req.JoiningDate != "" {
		joining, err := parseDate(req.JoiningDate)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		upd.JoiningDate = &joining
	}

	updated, err := h.service.Update(c.Request().Context(), middleware.Identity(c), c.Param("id"), upd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, success(map[string]any{"user": updated}))
}

// Delete removes the employee in the path. Authentication is required but no
// role gate applies on this route.
func (h *EmployeeHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, successMsg("user deleted successfully", nil))
}
