package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/staffroom/attendance-system/internal/api/metrics"
	"github.com/staffroom/attendance-system/internal/core/domain"
	"github.com/staffroom/attendance-system/internal/core/ports"
)

// AttendanceHandler handles daily attendance CRUD and summaries.
type AttendanceHandler struct {
	service ports.AttendanceService
}

func NewAttendanceHandler(service ports.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{service: service}
}

type createAttendanceRequest struct {
	EmployeeID     string `json:"employeeId" validate:"required"`
	TeamID         string `json:"teamId" validate:"required"`
	Date           string `json:"date"`
	Status         string `json:"status" validate:"required,oneof=Present Absent 'On Leave' Remote"`
	AttendanceType string `json:"attendanceType" validate:"omitempty,oneof=Regular Remote 'Sick Leave' Other"`
}

type updateAttendanceRequest struct {
	AttendanceID   string `json:"attendanceId" validate:"required"`
	Status         string `json:"status"`
	AttendanceType string `json:"attendanceType"`
}

type attendanceByEmailRequest struct {
	Email          string `json:"email" validate:"required"`
	Date           string `json:"date"`
	Status         string `json:"status"`
	AttendanceType string `json:"attendanceType"`
}

// Create records attendance for an explicit employee and team id.
func (h *AttendanceHandler) Create(c echo.Context) error {
	var req createAttendanceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	date, err := parseDate(req.Date)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	record, err := h.service.Create(c.Request().Context(), ports.CreateAttendanceInput{
		EmployeeID: req.EmployeeID,
		TeamID:     req.TeamID,
		Date:       date,
		Status:     domain.AttendanceStatus(req.Status),
		Type:       domain.AttendanceType(req.AttendanceType),
	})
	if err != nil {
		return err
	}
	metrics.AttendanceCreatedTotal.WithLabelValues(string(record.Status)).Inc()

	return c.JSON(http.StatusCreated, successMsg("attendance recorded successfully", record))
}

// Get fetches a single record by exact employee+team+date match.
func (h *AttendanceHandler) Get(c echo.Context) error {
	employeeID := c.QueryParam("employeeId")
	teamID := c.QueryParam("teamId")
	if employeeID == "" || teamID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "employeeid and teamid are required")
	}

	date, err := parseDate(c.QueryParam("date"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	record, err := h.service.Get(c.Request().Context(), employeeID, teamID, date)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, success(record))
}

// Update applies a partial status/type update to an existing record.
func (h *AttendanceHandler) Update(c echo.Context) error {
	var req updateAttendanceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	in := ports.UpdateAttendanceInput{}
	if req.Status != "" {
		s := domain.AttendanceStatus(req.Status)
		in.Status = &s
	}
	if req.AttendanceType != "" {
		t := domain.AttendanceType(req.AttendanceType)
		in.Type = &t
	}

	record, err := h.service.Update(c.Request().Context(), req.AttendanceID, in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, successMsg("attendance updated successfully", record))
}

// TeamSummary returns all records of the team managed by the employee in the
// path, with employee names attached.
func (h *AttendanceHandler) TeamSummary(c echo.Context) error {
	summary, err := h.service.TeamSummary(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, success(summary))
}

// EmployeeSummary returns the raw records for one employee.
func (h *AttendanceHandler) EmployeeSummary(c echo.Context) error {
	employeeID := c.QueryParam("employeeId")
	if employeeID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "employeeid is required")
	}

	records, err := h.service.EmployeeSummary(c.Request().Context(), employeeID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, success(records))
}

// MyAttendance returns the caller's own records with team details attached.
func (h *AttendanceHandler) MyAttendance(c echo.Context) error {
	records, err := h.service.MyAttendance(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, success(records))
}

// AllSummary returns every record with employee and team details attached.
func (h *AttendanceHandler) AllSummary(c echo.Context) error {
	records, err := h.service.AllSummary(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, success(records))
}

// CreateByEmail records attendance resolving the employee by email and the
// team through the resolver.
func (h *AttendanceHandler) CreateByEmail(c echo.Context) error {
	var req attendanceByEmailRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if req.Email == "" || req.Status == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "email and status are required")
	}

	date, err := parseDate(req.Date)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	record, err := h.service.CreateByEmail(c.Request().Context(), req.Email, date,
		domain.AttendanceStatus(req.Status), domain.AttendanceType(req.AttendanceType))
	if err != nil {
		return err
	}
	metrics.AttendanceCreatedTotal.WithLabelValues(string(record.Status)).Inc()

	return c.JSON(http.StatusOK, success(record))
}

// DeleteByEmail removes the record matching (employee, calendar day).
func (h *AttendanceHandler) DeleteByEmail(c echo.Context) error {
	var req attendanceByEmailRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if req.Email == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "email is required")
	}

	date, err := parseDate(req.Date)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.service.DeleteByEmail(c.Request().Context(), req.Email, date); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, successMsg("attendance deleted successfully", nil))
}
