package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/staffroom/attendance-system/internal/core/domain"
)

// RequireRole allows only the listed designations past. Exact, case-sensitive
// matching against the identity bound by Authenticate.
func RequireRole(allowed ...domain.Designation) echo.MiddlewareFunc {
	set := make(map[domain.Designation]struct{}, len(allowed))
	for _, d := range allowed {
		set[d] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			employee := Identity(c)
			if employee == nil {
				return domain.ErrMissingToken
			}
			if _, ok := set[employee.Designation]; !ok {
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}

// ForbidRole is the inverse gate: it rejects when the bound designation
// equals any of the given values exactly, and lets everything else through.
func ForbidRole(denied ...domain.Designation) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			employee := Identity(c)
			if employee == nil {
				return domain.ErrMissingToken
			}
			for _, d := range denied {
				if employee.Designation == d {
					return domain.ErrForbidden
				}
			}
			return next(c)
		}
	}
}
