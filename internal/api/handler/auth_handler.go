package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/staffroom/attendance-system/internal/api/metrics"
	"github.com/staffroom/attendance-system/internal/api/middleware"
	"github.com/staffroom/attendance-system/internal/core/domain"
	"github.com/staffroom/attendance-system/internal/core/ports"
)

// AuthHandler handles login, privileged signup, profile echo, and password
// rotation.
type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Status      string             `json:"status"`
	Token       string             `json:"token"`
	Designation domain.Designation `json:"designation"`
	EmployeeID  string             `json:"employeeId"`
}

type signupRequest struct {
	Name            string `json:"name" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required"`
	ConfirmPassword string `json:"confirmPassword" validate:"required"`
	Department      string `json:"department" validate:"required"`
	Designation     string `json:"designation" validate:"required"`
	JoiningDate     string `json:"joiningDate" validate:"required"`
}

type signupResponse struct {
	Status string `json:"status"`
	Token  string `json:"token"`
	Data   any    `json:"data"`
}

type updatePasswordRequest struct {
	Email           string `json:"email" validate:"required"`
	Password        string `json:"password" validate:"required"`
	UpdatePassword  string `json:"updatePassword" validate:"required"`
	ConfirmPassword string `json:"confirmPassword" validate:"required"`
}

// Login authenticates by email and password and issues a bearer token.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "please provide email and password")
	}

	result, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return err
	}
	metrics.LoginsTotal.WithLabelValues("success").Inc()

	return c.JSON(http.StatusOK, loginResponse{
		Status:      "success",
		Token:       result.Token,
		Designation: result.Designation,
		EmployeeID:  result.EmployeeID,
	})
}

// Signup creates an employee account on behalf of the authenticated staff
// caller. Role-creation rules are enforced by the service.
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	joining, err := parseDate(req.JoiningDate)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	created, token, err := h.authService.Signup(c.Request().Context(), middleware.Identity(c), ports.SignupInput{
		Name:            req.Name,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		Department:      req.Department,
		Designation:     domain.Designation(req.Designation),
		JoiningDate:     joining,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, signupResponse{
		Status: "success",
		Token:  token,
		Data:   map[string]any{"user": created},
	})
}

// Me echoes the identity bound by the auth middleware.
func (h *AuthHandler) Me(c echo.Context) error {
	return c.JSON(http.StatusOK, success(map[string]any{"user": middleware.Identity(c)}))
}

// UpdatePassword rotates a credential after verifying the current one. All
// tokens issued before the rotation become stale.
func (h *AuthHandler) UpdatePassword(c echo.Context) error {
	var req updatePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if req.Email == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "please provide email")
	}

	if err := h.authService.UpdatePassword(c.Request().Context(), req.Email, req.Password, req.UpdatePassword, req.ConfirmPassword); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, successMsg("password updated successfully", nil))
}
