package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/staffroom/attendance-system/internal/core/domain"
	"github.com/staffroom/attendance-system/internal/core/ports"
)

// identityKey is the echo context key under which the authenticated employee
// is bound for downstream handlers.
const identityKey = "employee"

// Identity returns the employee bound to the context by Authenticate, or nil.
func Identity(c echo.Context) *domain.Employee {
	e, _ := c.Get(identityKey).(*domain.Employee)
	return e
}

// Authenticate verifies the bearer token, loads the acting employee, and
// binds it to the request context. Tokens issued before the employee's last
// password change are rejected.
func Authenticate(verifier ports.TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, err := bearerToken(c)
			if err != nil {
				return err
			}

			employee, err := verifier.VerifyToken(c.Request().Context(), token)
			if err != nil {
				return err
			}

			c.Set(identityKey, employee)
			return next(c)
		}
	}
}

// AuthenticateStaff is Authenticate plus a staff-designation gate: plain
// "Employee" accounts are rejected.
func AuthenticateStaff(verifier ports.TokenVerifier) echo.MiddlewareFunc {
	auth := Authenticate(verifier)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return auth(func(c echo.Context) error {
			if !Identity(c).Designation.IsStaff() {
				return domain.ErrNotStaff
			}
			return next(c)
		})
	}
}

// RequireStaff enforces the staff gate on a route whose group already ran
// Authenticate.
func RequireStaff() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			employee := Identity(c)
			if employee == nil || !employee.Designation.IsStaff() {
				return domain.ErrNotStaff
			}
			return next(c)
		}
	}
}

func bearerToken(c echo.Context) (string, error) {
	header := c.Request().Header.Get("Authorization")
	if header == "" {
		return "", domain.ErrMissingToken
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", domain.ErrMissingToken
	}
	return parts[1], nil
}
